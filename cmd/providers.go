package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/vj-vijeta/job-hunt-assistant/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List the job listing providers and their availability",
	Run: func(_ *cobra.Command, _ []string) {
		providers()
	},
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func providers() {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	agg, err := newAggregator(ctx, config, logger)
	if err != nil {
		logger.Fatal("building providers", zap.Error(err))
	}

	for _, p := range agg.Providers() {
		availability := "available"
		if !p.Available() {
			availability = "unavailable (missing credential)"
		}
		fmt.Printf("%-12s %-20s %s\n", p.Source(), p.Name(), availability)
	}
}
