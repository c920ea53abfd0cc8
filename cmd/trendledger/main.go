package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"TrendLedger/internal/collector"
	"TrendLedger/internal/config"
	"TrendLedger/internal/recorder"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "trendledger",
	Short: "Daily technical indicator calculation and persistence",
	Long: `TrendLedger computes technical indicators (moving averages, momentum,
volatility, volume metrics) from raw OHLCV bars and persists them into a
latest-snapshot table and an append-only history table.`,
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default configs/config.yaml)")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(daemonCmd)
}

func loadConfig() (*config.Config, error) {
	path := cfgPath
	if path == "" {
		path = "configs/config.yaml"
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			path = v
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// buildPipeline wires the bar source, indicator store, and orchestrator.
func buildPipeline(cfg *config.Config) (*collector.Collector, recorder.Store, func(), error) {
	var source collector.BarSource
	var closeBars func() error
	if cfg.DataSource.BarsDBPath != "" {
		bars, err := collector.NewSQLiteBars(cfg.DataSource.BarsDBPath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("init bar store: %w", err)
		}
		source = bars
		closeBars = bars.Close
	} else {
		source = collector.NewYahooBars(cfg.DataSource.YahooInterval, cfg.Proxy)
	}
	log.Printf("[INFO] bar source: %s", source.Name())

	store, err := recorder.NewSQLiteStore(cfg.Database.SQLitePath)
	if err != nil {
		if closeBars != nil {
			closeBars()
		}
		return nil, nil, nil, fmt.Errorf("init indicator store: %w", err)
	}

	cleanup := func() {
		store.Close()
		if closeBars != nil {
			if err := closeBars(); err != nil {
				log.Printf("[WARN] close bar store: %v", err)
			}
		}
	}
	return collector.NewCollector(source, store, cfg.DataSource.Name), store, cleanup, nil
}
