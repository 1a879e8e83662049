package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/finlens/incomelens/internal/app"
	"github.com/finlens/incomelens/internal/common"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: $INCOMELENS_CONFIG, then config/incomelens.toml)")
	outputPath := flag.String("output", "", "override report output path")
	noBanner := flag.Bool("no-banner", false, "suppress the startup banner")
	flag.Parse()

	a, err := app.NewApp(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	if *outputPath != "" {
		a.Config.Report.OutputPath = *outputPath
	}

	if !*noBanner {
		common.PrintBanner(a.Config)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cancel in-flight provider calls on interrupt.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		a.Logger.Info().Msg("Shutdown signal received")
		cancel()
	}()

	if err := a.RunOnce(ctx); err != nil {
		a.Logger.Error().Err(err).Msg("Analysis failed")
		os.Exit(1)
	}

	scheduled, err := a.StartScheduler(ctx)
	if err != nil {
		a.Logger.Error().Err(err).Msg("Scheduler failed to start")
		os.Exit(1)
	}
	if scheduled {
		// Keep running for scheduled re-runs until interrupted.
		<-ctx.Done()
	}
}
