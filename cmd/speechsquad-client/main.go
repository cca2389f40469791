// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/rapidaai/speechsquad/config"
	"github.com/rapidaai/speechsquad/pkg/clients/speech"
	"github.com/rapidaai/speechsquad/pkg/commons"
	"github.com/rapidaai/speechsquad/pkg/dataset"
	"github.com/rapidaai/speechsquad/pkg/loadgen"
)

func main() {
	os.Exit(run())
}

func run() int {
	flags := config.ClientFlags()
	if len(os.Args) < 2 {
		fmt.Println("Usage: speechsquad-client")
		flags.PrintDefaults()
		return 1
	}
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.GetClientConfig(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger, err := commons.NewApplicationLogger(commons.WithLevel(cfg.LogLevel))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	// The coordinator seam is where a multi-process launcher plugs in; a
	// plain invocation runs the whole load from one process.
	var coordinator loadgen.Coordinator = loadgen.SingleProcess{}

	if coordinator.Size() > cfg.NumParallelRequests {
		fmt.Fprintln(os.Stderr, "Specified --num_parallel_requests can not be less than the number of cooperating processes")
		return 1
	}

	outputRootFolder := cfg.OutputRootFolder
	if coordinator.Size() > 1 {
		outputRootFolder = filepath.Join(cfg.OutputRootFolder, "proc"+strconv.Itoa(coordinator.Rank()))
	}
	if cfg.PrintResults {
		coordinator.Barrier()
		if coordinator.Size() > 1 && coordinator.Rank() == 0 {
			if err := os.Mkdir(cfg.OutputRootFolder, 0o777); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to create directory %q: %v\n", cfg.OutputRootFolder, err)
				return 1
			}
		}
		coordinator.Barrier()
		if err := os.Mkdir(outputRootFolder, 0o777); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create directory %q: %v\n", outputRootFolder, err)
			return 1
		}
	}

	// This process's share of the requested parallelism.
	numParallelRequests := cfg.NumParallelRequests / coordinator.Size()
	if coordinator.Rank() < cfg.NumParallelRequests%coordinator.Size() {
		numParallelRequests++
	}

	channelCount := cfg.ResolveChannelNum(numParallelRequests)
	conns := make([]*grpc.ClientConn, 0, channelCount)
	defer func() {
		for _, cc := range conns {
			_ = cc.Close()
		}
	}()
	for i := 0; i < channelCount; i++ {
		cc, err := grpc.NewClient(cfg.SpeechSquadURI, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot create GRPC channel at uri %s: %v\n", cfg.SpeechSquadURI, err)
			return 1
		}
		conns = append(conns, cc)
		if !speech.WaitUntilReady(context.Background(), cc) {
			fmt.Fprintf(os.Stderr, "Cannot create GRPC channel at uri %s\n", cfg.SpeechSquadURI)
			return 1
		}
	}

	squadDataset := dataset.NewSquadEvalDataset()
	if err := squadDataset.LoadFromJSON(cfg.SquadDatasetJSON); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	client, err := loadgen.NewClient(conns, loadgen.ClientOptions{
		QuestionsJSON:       cfg.SquadQuestionsJSON,
		NumParallelRequests: numParallelRequests,
		NumIterations:       cfg.NumIterations,
		LanguageCode:        cfg.LanguageCode,
		PrintResults:        cfg.PrintResults,
		ChunkDurationMs:     cfg.ChunkDurationMs,
		OffsetDuration:      cfg.ResolveOffsetDuration(numParallelRequests),
		TrueConcurrency:     cfg.TrueConcurrency,
		OutputFiles: loadgen.OutputFilenames{
			RootFolder:   outputRootFolder,
			QuestionJSON: cfg.QuestionOutputFilename,
			AnswerJSON:   cfg.AnswerOutputFilename,
			WaveJSON:     cfg.OutputWaveFilename,
		},
	}, squadDataset, coordinator, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer func() { _ = client.Close() }()

	return client.Run()
}
