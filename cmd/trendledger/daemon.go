package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"TrendLedger/internal/notifier"
	"TrendLedger/internal/scheduler"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the cron scheduler until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Println("[INFO] TrendLedger starting...")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		col, store, cleanup, err := buildPipeline(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		// Context for graceful shutdown
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var tn *notifier.TelegramNotifier
		if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
			tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		} else {
			log.Println("[WARN] Telegram not configured, notifications disabled")
		}

		sched := scheduler.NewScheduler(ctx, col, store, tn, cfg.DataSource.Symbols, cfg.Calculation.DaysBack)
		if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()

		if tn != nil {
			go tn.StartPolling(ctx, sched.HandleCommand)
			log.Println("[INFO] Telegram polling started")
		}

		if os.Getenv("RUN_ON_START") == "true" {
			log.Println("[INFO] RUN_ON_START enabled, executing batch now")
			go sched.RunBatchNow()
		}

		log.Println("[INFO] TrendLedger is running. Press Ctrl+C to stop.")

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Println("[INFO] shutdown signal received, stopping...")
		cancel()
		log.Println("[INFO] TrendLedger stopped")
		return nil
	},
}
