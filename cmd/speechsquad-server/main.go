// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	squadapi "github.com/rapidaai/speechsquad/api/squad-api"
	"github.com/rapidaai/speechsquad/config"
	"github.com/rapidaai/speechsquad/pkg/clients/speech"
	"github.com/rapidaai/speechsquad/pkg/commons"
)

func main() {
	flags := config.ServerFlags()
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.GetServerConfig(flags)
	if err != nil {
		panic(err)
	}

	logger, err := commons.NewApplicationLogger(commons.WithLevel(cfg.LogLevel))
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	resources, err := speech.NewResources(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("failed to establish downstream connections: %v", err)
	}
	defer resources.Close()

	service := squadapi.NewService(cfg, resources, logger)
	server := squadapi.NewServer(cfg, service, logger)

	go func() {
		<-ctx.Done()
		logger.Infof("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
