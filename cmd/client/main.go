// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Danford/PrintChecks/internal/client"
	"github.com/Danford/PrintChecks/internal/config"
	"github.com/Danford/PrintChecks/internal/logger"
	"github.com/Danford/PrintChecks/internal/tui"
	"github.com/Danford/PrintChecks/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	flags, err := config.ParseFlags(os.Args[0], os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.GetClientConfig(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so the client logs to a file only.
	log := logger.NewClientLogger("printchecks-client", cfg.LogFile)

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	log.Info().Str("build", buildInfo.String()).Msg("starting client")

	app, err := client.NewApp(cfg, tui.New(buildInfo, log), log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err = app.Run(ctx); err != nil {
		log.Err(err).Msg("client run error")
		fmt.Fprintf(os.Stderr, "client error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
