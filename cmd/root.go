package cmd

import (
	"context"
	"errors"
	"log"

	"github.com/vj-vijeta/job-hunt-assistant/internal/aggregator"
	"github.com/vj-vijeta/job-hunt-assistant/internal/ai/gemini"
	"github.com/vj-vijeta/job-hunt-assistant/internal/jobs"
	"github.com/vj-vijeta/job-hunt-assistant/internal/provider"
	"github.com/vj-vijeta/job-hunt-assistant/internal/provider/aisearch"
	"github.com/vj-vijeta/job-hunt-assistant/internal/provider/jobicy"
	"github.com/vj-vijeta/job-hunt-assistant/internal/provider/jsearch"
	"github.com/vj-vijeta/job-hunt-assistant/internal/provider/remotive"
	"github.com/vj-vijeta/job-hunt-assistant/internal/secrets"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	app = "job-hunt-assistant"

	defaultProfileFile = "profile.json"
	defaultHistoryFile = "applications.json"
)

type Config struct {
	Search      *jobs.SearchParams `mapstructure:"search"`
	ProfileFile string             `mapstructure:"profile-file"`
	HistoryFile string             `mapstructure:"history-file"`
	Style       string             `mapstructure:"style"`
	Language    string             `mapstructure:"language"`
	AI          *AIConfig          `mapstructure:"ai"`
	Providers   *ProvidersConfig   `mapstructure:"providers"`
}

type AIConfig struct {
	Gemini *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

type ProvidersConfig struct {
	JSearch *JSearchConfig `mapstructure:"jsearch"`
}

type JSearchConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "job-hunt-assistant searches job listings across several providers and generates tailored application documents",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("providers.jsearch.api-key-file", "JSEARCH_API_KEY_FILE"); err != nil {
		log.Fatalf("binding JSEARCH_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is job-hunt-assistant.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// A missing config file is fine, every setting has a flag or env
	// fallback. A present but unparseable one is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.ProfileFile == "" {
		config.ProfileFile = defaultProfileFile
	}
	if config.HistoryFile == "" {
		config.HistoryFile = defaultHistoryFile
	}

	return config, nil
}

// newGeminiGenerator builds the Gemini generator or returns the secrets
// resolution error when no key is configured.
func newGeminiGenerator(ctx context.Context, config *Config, logger *zap.Logger) (*gemini.Generator, error) {
	cfg := &GeminiConfig{}
	if config != nil && config.AI != nil && config.AI.Gemini != nil {
		cfg = config.AI.Gemini
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.APIKey,
		File:  cfg.APIKeyFile,
	})
	if err != nil {
		return nil, err
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Model, logger)
	if err != nil {
		return nil, err
	}

	logger.Debug("gemini generator initialized", zap.String("ai_model", generator.Model()))

	return generator, nil
}

// newAggregator wires every provider in fixed invocation order. The AI
// search comes first, then the keyed variants, then the open directories.
func newAggregator(ctx context.Context, config *Config, logger *zap.Logger) (*aggregator.Aggregator, error) {
	var searchGenerator *gemini.Generator

	generator, err := newGeminiGenerator(ctx, config, logger)
	if err != nil {
		logger.Warn("ai search is unavailable", zap.Error(err))
	} else {
		searchGenerator = generator
	}

	jsearchKey, err := resolveJSearchKey(config)
	if err != nil {
		return nil, err
	}

	jsearchClient := jsearch.New(jsearchKey, logger)

	providers := []provider.Provider{
		newAISearchProvider(searchGenerator, logger),
		jsearchClient,
		jsearch.NewGermany(jsearchClient),
		jobicy.New(logger),
		remotive.New(logger),
	}

	return aggregator.New(providers, logger), nil
}

// newAISearchProvider keeps the provider list stable when the generator
// is missing: an aisearch provider without a generator reports
// Available() == false and is skipped in ALL mode.
func newAISearchProvider(generator *gemini.Generator, logger *zap.Logger) provider.Provider {
	if generator == nil {
		return aisearch.New(nil, logger)
	}

	return aisearch.New(generator, logger)
}

func resolveJSearchKey(config *Config) (string, error) {
	cfg := &JSearchConfig{}
	if config != nil && config.Providers != nil && config.Providers.JSearch != nil {
		cfg = config.Providers.JSearch
	}

	return secrets.Optional(secrets.Source{
		Name:  "jsearch api key",
		Value: cfg.APIKey,
		File:  cfg.APIKeyFile,
	})
}
