// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package squadapi exposes the speech squad inference service: a single
// bidirectional stream that takes spoken questions plus a reading-comprehension
// context and answers with synthesized speech.
package squadapi

import (
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/rapidaai/speechsquad/api/squad-api/internal/squadcontext"
	"github.com/rapidaai/speechsquad/config"
	"github.com/rapidaai/speechsquad/pkg/clients/speech"
	"github.com/rapidaai/speechsquad/pkg/commons"
	"github.com/rapidaai/speechsquad/protos"
)

// Service implements protos.SpeechSquadServiceServer. Admission is bounded
// by a weighted semaphore sized threads x contexts_per_thread; stream
// contexts are pooled across requests.
type Service struct {
	logger    commons.Logger
	resources *speech.Resources

	slots    *semaphore.Weighted
	contexts sync.Pool
}

func NewService(cfg *config.ServerConfig, resources *speech.Resources, logger commons.Logger) *Service {
	s := &Service{
		logger:    logger,
		resources: resources,
		slots:     semaphore.NewWeighted(int64(cfg.Threads) * int64(cfg.ContextsPerThread)),
	}
	s.contexts.New = func() interface{} {
		return squadcontext.New(resources, logger)
	}
	return s
}

// SpeechSquadInfer handles one inference stream end to end.
func (s *Service) SpeechSquadInfer(stream protos.SpeechSquadService_SpeechSquadInferServer) error {
	if err := s.slots.Acquire(stream.Context(), 1); err != nil {
		return err
	}
	defer s.slots.Release(1)

	sc := s.contexts.Get().(*squadcontext.Context)
	defer s.contexts.Put(sc)

	return sc.Serve(stream)
}
