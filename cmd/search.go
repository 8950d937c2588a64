package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/vj-vijeta/job-hunt-assistant/internal/jobs"
	"github.com/vj-vijeta/job-hunt-assistant/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search job listings across the configured providers",
	Run: func(cmd *cobra.Command, _ []string) {
		search(cmd)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	addSearchFlags(searchCmd)
	searchCmd.Flags().Bool("report", false, "print listings grouped by provider")
	searchCmd.Flags().Bool("dump", false, "dump results to a temporary file")
}

// addSearchFlags registers the search parameter flags shared by the
// search and run commands.
func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("query", "q", "", "search query, e.g. a job title")
	cmd.Flags().StringP("location", "l", "", "preferred location")
	cmd.Flags().StringP("source", "s", string(jobs.SourceAll), "provider to query (all, gemini, jsearch, germany, jobicy, remotive)")
	cmd.Flags().StringP("type", "t", "", "employment type (FULLTIME, CONTRACTOR, PARTTIME, INTERN)")
	cmd.Flags().BoolP("remote", "r", false, "remote roles only")
}

func search(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	params := searchParamsFromFlags(cmd, config)

	agg, err := newAggregator(ctx, config, logger)
	if err != nil {
		logger.Fatal("building providers", zap.Error(err))
	}

	logger.Info("starting the search",
		zap.String("query", params.Query),
		zap.String("source", string(params.Source)),
	)

	results, err := agg.Aggregate(ctx, params)
	if err != nil {
		logger.Fatal("searching job listings", zap.Error(err))
	}

	if results.Len() == 0 {
		logger.Info("no results", zap.String("query", params.Query))
		return
	}

	logger.Info("found job listings", zap.Int("count", results.Len()))

	for _, job := range results.Items {
		fmt.Printf("%s / %s / %s / %s (%s)\n", job.Title, job.Company, job.Location, job.URL, job.Source)
	}

	if cmd.Flag("report").Value.String() == "true" {
		pretty, _ := json.MarshalIndent(results.ReportBySource(), "", "  ")
		fmt.Println(string(pretty))
	}

	if cmd.Flag("dump").Value.String() == "true" {
		filename, err := results.DumpToTmpFile()
		if err != nil {
			logger.Fatal("dumping results to file", zap.Error(err))
		}
		logger.Info("dumped results to file", zap.String("filename", filename))
	}
}

// searchParamsFromFlags resolves search params: flags first, config
// defaults second.
func searchParamsFromFlags(cmd *cobra.Command, config *Config) *jobs.SearchParams {
	params := &jobs.SearchParams{}
	if config != nil && config.Search != nil {
		*params = *config.Search
	}

	if v, _ := cmd.Flags().GetString("query"); v != "" {
		params.Query = v
	}
	if v, _ := cmd.Flags().GetString("location"); v != "" {
		params.Location = v
	}
	// The source flag defaults to "all", so only an explicitly set flag
	// may override a configured source.
	if cmd.Flags().Changed("source") {
		v, _ := cmd.Flags().GetString("source")
		params.Source = jobs.Source(v)
	}
	if v, _ := cmd.Flags().GetString("type"); v != "" {
		params.JobType = jobs.JobType(v)
	}
	if v, _ := cmd.Flags().GetBool("remote"); v {
		params.RemoteOnly = true
	}

	return params
}
