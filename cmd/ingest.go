package cmd

import (
	"context"
	"log"
	"os"

	"github.com/vj-vijeta/job-hunt-assistant/internal/ingest"
	"github.com/vj-vijeta/job-hunt-assistant/internal/logger"
	"github.com/vj-vijeta/job-hunt-assistant/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Extract profile data from a CV text file and merge it into the stored profile",
	Run: func(cmd *cobra.Command, _ []string) {
		runIngest(cmd)
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().String("cv-file", "", "plain text CV file to ingest (required)")
	ingestCmd.Flags().Bool("no-suggestions", false, "skip the job title suggestion stage")

	ingestCmd.MarkFlagRequired("cv-file")
}

func runIngest(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	cvFile, _ := cmd.Flags().GetString("cv-file")
	cvText, err := os.ReadFile(cvFile)
	if err != nil {
		logger.Fatal("reading cv file", zap.Error(err))
	}

	gen, err := newGeminiGenerator(ctx, config, logger)
	if err != nil {
		logger.Fatal("building gemini generator", zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY_FILE or the ai.gemini.api-key-file key in the configuration file"),
		)
	}

	pipeline := ingest.New(gen, logger)

	logger.Info("analyzing cv text", zap.Int("length", len(cvText)))

	fragment, err := pipeline.Ingest(ctx, string(cvText))
	if err != nil {
		logger.Fatal("extracting profile from cv", zap.Error(err),
			zap.String("state", string(pipeline.State())),
		)
	}

	profileStore := store.New(config.ProfileFile)
	userProfile, err := profileStore.Load()
	if err != nil {
		logger.Fatal("loading the profile", zap.Error(err))
	}

	userProfile.Apply(fragment)

	if err := profileStore.Save(userProfile); err != nil {
		logger.Fatal("saving the profile", zap.Error(err))
	}

	logger.Info("profile updated",
		zap.String("profile_file", config.ProfileFile),
		zap.String("full_name", userProfile.UserInfo.FullName),
		zap.Int("experiences", len(userProfile.Experiences)),
	)

	if cmd.Flag("no-suggestions").Value.String() == "true" {
		return
	}

	titles := pipeline.SuggestTitles(ctx, string(cvText))
	if len(titles) == 0 {
		logger.Info("no job title suggestions available")
		return
	}

	logger.Info("suggested job titles", zap.Strings("titles", titles))
}
