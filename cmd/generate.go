package cmd

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strings"

	"github.com/vj-vijeta/job-hunt-assistant/internal/generator"
	"github.com/vj-vijeta/job-hunt-assistant/internal/logger"
	"github.com/vj-vijeta/job-hunt-assistant/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate application materials for a job description file",
	Run: func(cmd *cobra.Command, _ []string) {
		generate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().String("job-file", "", "file with the target job description (required)")
	generateCmd.Flags().String("cv-file", "", "plain text CV file used as the primary generation source")
	generateCmd.Flags().String("style", "", "document tone (professional, creative, modern)")
	generateCmd.Flags().String("language", "", "output language code (en, fr, de, es, it, pt, la)")
	generateCmd.Flags().StringP("out", "o", "", "write the full generated materials JSON to this file")

	generateCmd.MarkFlagRequired("job-file")
}

func generate(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if v, _ := cmd.Flags().GetString("style"); v != "" {
		config.Style = v
	}
	if v, _ := cmd.Flags().GetString("language"); v != "" {
		config.Language = v
	}

	jobFile, _ := cmd.Flags().GetString("job-file")
	jobDescription, err := os.ReadFile(jobFile)
	if err != nil {
		logger.Fatal("reading job description file", zap.Error(err))
	}

	cvText, err := readOptionalFile(cmd.Flag("cv-file").Value.String())
	if err != nil {
		logger.Fatal("reading cv file", zap.Error(err))
	}

	userProfile, err := store.New(config.ProfileFile).Load()
	if err != nil {
		logger.Fatal("loading the profile", zap.Error(err))
	}

	gen, err := newGeminiGenerator(ctx, config, logger)
	if err != nil {
		logger.Fatal("building gemini generator", zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY_FILE or the ai.gemini.api-key-file key in the configuration file"),
		)
	}

	orchestrator := generator.New(gen, gen, logger)

	logger.Info("generating application materials",
		zap.String("style", string(documentStyle(config))),
		zap.String("language", string(languageCode(config))),
	)

	data, err := orchestrator.Generate(ctx, &generator.Request{
		UserInfo:       userProfile.UserInfo,
		Experiences:    userProfile.Experiences,
		CvText:         cvText,
		JobDescription: string(jobDescription),
		Style:          documentStyle(config),
		Language:       languageCode(config),
	})
	if err != nil {
		logger.Fatal("generating application materials", zap.Error(err))
	}

	printMaterials(data)
	printInsights(data.CompanyInsights)

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		if err := writeMaterials(out, data); err != nil {
			logger.Fatal("writing materials file", zap.Error(err))
		}
		logger.Info("wrote materials", zap.String("filename", out))
	}
}

func readOptionalFile(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func writeMaterials(path string, data *generator.GeneratedData) error {
	pretty, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, pretty, 0o600)
}

func dumpMaterials(data *generator.GeneratedData) (string, error) {
	file, err := os.CreateTemp("", "job-hunt-assistant-materials-*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	pretty, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}

	if _, err := file.Write(pretty); err != nil {
		return "", err
	}

	return file.Name(), nil
}
