// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Danford/PrintChecks/internal/config"
	"github.com/Danford/PrintChecks/internal/handler"
	"github.com/Danford/PrintChecks/internal/logger"
	"github.com/Danford/PrintChecks/internal/server"
	"github.com/Danford/PrintChecks/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("printchecks-server")

	flags, err := config.ParseFlags(os.Args[0], os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error parsing flags")
	}

	cfg, err := config.GetServerConfig(flags)
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Str("backend", cfg.Storage.Backend).Str("http", cfg.Server.HTTPAddress).
		Str("grpc", cfg.Server.GRPCAddress).Msg("received configs")

	kv, err := store.New(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storage")
	}
	defer func() {
		if err := kv.Close(); err != nil {
			log.Err(err).Msg("error closing storage")
		}
	}()

	handlers, err := handler.NewHandlers(kv, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
