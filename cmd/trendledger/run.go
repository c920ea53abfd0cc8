package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	runDate     string
	runDaysBack int
	runSymbols  []string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one batch calculation and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		date := time.Now()
		if runDate != "" {
			date, err = time.Parse("2006-01-02", runDate)
			if err != nil {
				return fmt.Errorf("parse --date: %w", err)
			}
		}
		daysBack := cfg.Calculation.DaysBack
		if runDaysBack > 0 {
			daysBack = runDaysBack
		}
		symbols := cfg.DataSource.Symbols
		if len(runSymbols) > 0 {
			symbols = runSymbols
		}

		col, _, cleanup, err := buildPipeline(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		result := col.CalculateBatch(context.Background(), symbols, date, daysBack)
		fmt.Printf("batch %s: %d succeeded, %d failed\n", result.RunID, result.Succeeded, result.Failed)
		if result.Failed > 0 {
			return fmt.Errorf("%d of %d symbols failed", result.Failed, len(symbols))
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runDate, "date", "", "calculation date YYYY-MM-DD (default today)")
	runCmd.Flags().IntVar(&runDaysBack, "days-back", 0, "lookback window in days (default from config)")
	runCmd.Flags().StringSliceVar(&runSymbols, "symbols", nil, "symbols to calculate (default from config)")
}
