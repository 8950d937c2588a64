package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/vj-vijeta/job-hunt-assistant/internal/generator"
	"github.com/vj-vijeta/job-hunt-assistant/internal/history"
	"github.com/vj-vijeta/job-hunt-assistant/internal/jobs"
	"github.com/vj-vijeta/job-hunt-assistant/internal/logger"
	"github.com/vj-vijeta/job-hunt-assistant/internal/profile"
	"github.com/vj-vijeta/job-hunt-assistant/internal/store"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptBack         = "back"
	PromptMarkApplied  = "Mark as applied"
	PromptShowInsights = "Show company insights"
	PromptDumpToFile   = "Dump materials to file"
	PromptDone         = "Done"
)

var errExit = errors.New("exit requested")

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Search listings, pick one and generate application materials for it",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	addSearchFlags(runCmd)
	runCmd.Flags().BoolP("include-applied", "f", false, "do not exclude listings already marked as applied")
	runCmd.Flags().String("cv-file", "", "plain text CV file used as the primary generation source")
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the job-hunt-assistant", zap.String("version", version))

	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	profileStore := store.New(config.ProfileFile)
	userProfile, err := profileStore.Load()
	if err != nil {
		logger.Fatal("loading the profile", zap.Error(err))
	}

	applied, err := history.Load(config.HistoryFile)
	if err != nil {
		logger.Fatal("loading the application history", zap.Error(err))
	}

	params := searchParamsFromFlags(cmd, config)

	agg, err := newAggregator(ctx, config, logger)
	if err != nil {
		logger.Fatal("building providers", zap.Error(err))
	}

	logger.Info("starting the search", zap.String("query", params.Query))

	results, err := agg.Aggregate(ctx, params)
	if err != nil {
		logger.Fatal("searching job listings", zap.Error(err))
	}

	if results.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no listings found"))
		return
	}

	if cmd.Flag("include-applied").Value.String() == "false" {
		excluded := results.ExcludeURLs(applied.AppliedURLs())
		if len(excluded) > 0 {
			logger.Info("excluding listings already applied to",
				zap.Strings("excluded_listings", excluded),
				zap.Int("listings_left", results.Len()),
			)
		}
	}

	if results.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no listings left after history filter"))
		return
	}

	logger.Info("current list of job listings", zap.Int("count", results.Len()))

	job, err := selectJob(results)
	if err != nil {
		if errors.Is(err, errExit) {
			return
		}
		logger.Fatal("exiting", zap.Error(err))
	}

	cvText, err := readOptionalFile(cmd.Flag("cv-file").Value.String())
	if err != nil {
		logger.Fatal("reading cv file", zap.Error(err))
	}

	data, err := generateForJob(ctx, config, logger, userProfile, cvText, job)
	if err != nil {
		logger.Fatal("generating application materials", zap.Error(err))
	}

	printMaterials(data)

	if err := materialsActions(logger, applied, job, data); err != nil && !errors.Is(err, errExit) {
		logger.Fatal("exiting", zap.Error(err))
	}
}

func selectJob(results *jobs.Jobs) (*jobs.Job, error) {
	items := make([]string, 0, results.Len())
	for _, job := range results.Items {
		items = append(items, fmt.Sprintf("%s / %s / %s (%s)", job.Title, job.Company, job.Location, job.Source))
	}

	jobPrompt := promptui.Select{
		Label: "Choose a listing and press ENTER",
		Items: append(items, PromptBack),
		Size:  10,
	}

	idx, selected, err := jobPrompt.Run()
	if err != nil {
		return nil, err
	}

	if selected == PromptBack {
		return nil, errExit
	}

	return results.Items[idx], nil
}

func generateForJob(ctx context.Context, config *Config, log *zap.Logger, userProfile *profile.Profile, cvText string, job *jobs.Job) (*generator.GeneratedData, error) {
	gen, err := newGeminiGenerator(ctx, config, log)
	if err != nil {
		return nil, fmt.Errorf("building gemini generator: %w", err)
	}

	orchestrator := generator.New(gen, gen, log)

	return orchestrator.Generate(ctx, &generator.Request{
		UserInfo:       userProfile.UserInfo,
		Experiences:    userProfile.Experiences,
		CvText:         cvText,
		JobDescription: job.DescriptionHeader() + job.Description,
		Style:          documentStyle(config),
		Language:       languageCode(config),
	})
}

func materialsActions(log *zap.Logger, applied *history.History, job *jobs.Job, data *generator.GeneratedData) error {
	for {
		actionPrompt := promptui.Select{
			Label: "Proceed?",
			Items: []string{PromptMarkApplied, PromptShowInsights, PromptDumpToFile, PromptDone},
		}

		_, action, err := actionPrompt.Run()
		if err != nil {
			return err
		}

		switch action {
		case PromptMarkApplied:
			applied.Track(job, data)
			if err := applied.Save(); err != nil {
				return fmt.Errorf("saving application history: %w", err)
			}
			log.Info("application tracked",
				zap.String("job_title", job.Title),
				zap.String("company", job.Company),
			)
		case PromptShowInsights:
			printInsights(data.CompanyInsights)
		case PromptDumpToFile:
			filename, err := dumpMaterials(data)
			if err != nil {
				return fmt.Errorf("dump materials to file: %w", err)
			}
			log.Info("dumped materials to file", zap.String("filename", filename))
		case PromptDone:
			return errExit
		default:
			return fmt.Errorf("invalid action: %s", action)
		}
	}
}

func printMaterials(data *generator.GeneratedData) {
	fmt.Println("=== Cover letter ===")
	fmt.Println(data.CoverLetter)

	if analysis := data.JobMatchAnalysis; analysis != nil {
		fmt.Printf("\n=== Job match: %d/100 ===\n%s\n", analysis.MatchScore, analysis.Summary)
		for _, s := range analysis.Strengths {
			fmt.Printf("  + %s\n", s)
		}
		for _, w := range analysis.Weaknesses {
			fmt.Printf("  - %s\n", w)
		}
	}
}

func printInsights(insights *generator.CompanyInsights) {
	if insights == nil {
		fmt.Println("No company insights available for this listing.")
		return
	}

	fmt.Println("=== Company insights ===")
	fmt.Println(insights.Text)
	for _, source := range insights.Sources {
		fmt.Printf("  %s (%s)\n", source.Title, source.URI)
	}
}

func documentStyle(config *Config) profile.DocumentStyle {
	if config != nil && strings.TrimSpace(config.Style) != "" {
		return profile.DocumentStyle(config.Style)
	}

	return profile.StyleProfessional
}

func languageCode(config *Config) profile.LanguageCode {
	if config != nil && strings.TrimSpace(config.Language) != "" {
		return profile.LanguageCode(config.Language)
	}

	return profile.LanguageEnglish
}
