package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/bassamadnan/mailtriage/config"
	"github.com/bassamadnan/mailtriage/gmail"
	"github.com/bassamadnan/mailtriage/llm"
	"github.com/bassamadnan/mailtriage/pipeline"
	"github.com/bassamadnan/mailtriage/report"
	"github.com/bassamadnan/mailtriage/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render("✖ "+err.Error()))
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Warn("shutdown signal received, cancelling run")
		cancel()
	}()

	fmt.Println(ui.Banner())

	if err := config.Preflight(cfg); err != nil {
		var pf *config.PreflightError
		if errors.As(err, &pf) {
			for _, item := range pf.Missing {
				ui.Warn(item)
			}
		}
		return err
	}

	settings, err := ui.AskSettings(config.DefaultSettings())
	if err != nil {
		return fmt.Errorf("reading run settings: %w", err)
	}

	ui.Step("Connecting to Gmail...")
	client, err := gmail.NewClient(ctx, cfg)
	if err != nil {
		return err
	}
	if addr, err := client.Profile(ctx); err == nil {
		ui.Info("Connected to Gmail account: " + addr)
	} else {
		logger.Warn("could not read Gmail profile", "err", err)
	}

	ai := llm.NewClient(cfg.GroqAPIKey, cfg.GroqModel)

	ui.Step(fmt.Sprintf("Processing up to %d recent emails...", settings.MaxEmails))
	records, err := pipeline.New(client, ai, logger).Run(ctx, settings)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		ui.Warn("No emails found in inbox")
		return nil
	}

	fmt.Println(report.RenderStats(report.BuildStats(records)))
	fmt.Println(report.RenderTable(records))
	if settings.GenerateDrafts {
		fmt.Println(report.RenderDrafts(records))
	}

	path, err := report.ExportCSV(records, cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("exporting CSV: %w", err)
	}
	ui.Success("Results exported to " + path)
	return nil
}
