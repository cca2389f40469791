// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package speech wraps the three downstream speech services behind small
// adapters. Each adapter borrows a connection from a per-service pool, runs
// its own I/O goroutine and reports back by posting typed events on a channel
// owned by the calling stream.
package speech

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/rapidaai/speechsquad/config"
	"github.com/rapidaai/speechsquad/pkg/commons"
)

// readyTimeout bounds how long each downstream channel may take to become
// ready at startup.
const readyTimeout = 10 * time.Second

// Resources owns the persistent channel pools to the ASR, NLP and TTS
// services. One Resources instance is shared by every squad stream.
type Resources struct {
	logger commons.Logger

	asr *pool
	nlp *pool
	tts *pool

	asrModelName string
}

// NewResources dials cfg.Channels connections to each downstream service and
// blocks until every one of them is ready. A service that cannot be reached
// within the ready timeout fails construction.
func NewResources(ctx context.Context, cfg *config.ServerConfig, logger commons.Logger) (*Resources, error) {
	r := &Resources{
		logger:       logger,
		asrModelName: cfg.ASRModelName,
	}

	var err error
	if r.asr, err = dialPool(ctx, "asr", cfg.ASRServiceURL, cfg.Channels, logger); err != nil {
		return nil, err
	}
	if r.nlp, err = dialPool(ctx, "nlp", cfg.NLPServiceURL, cfg.Channels, logger); err != nil {
		r.Close()
		return nil, err
	}
	if r.tts, err = dialPool(ctx, "tts", cfg.TTSServiceURL, cfg.Channels, logger); err != nil {
		r.Close()
		return nil, err
	}

	logger.Infof("asr connection established to %s", cfg.ASRServiceURL)
	logger.Infof("nlp connection established to %s", cfg.NLPServiceURL)
	logger.Infof("tts connection established to %s", cfg.TTSServiceURL)
	return r, nil
}

// ASRModelName is the model forwarded with every streaming recognition
// configuration. May be empty.
func (r *Resources) ASRModelName() string {
	return r.asrModelName
}

// Close tears down every pooled connection.
func (r *Resources) Close() {
	for _, p := range []*pool{r.asr, r.nlp, r.tts} {
		if p != nil {
			p.close()
		}
	}
}

// pooledConn pairs a client connection with its in-flight stream count so
// the pool can balance new work onto the least loaded channel.
type pooledConn struct {
	cc       *grpc.ClientConn
	inflight atomic.Int64
}

type pool struct {
	name  string
	conns []*pooledConn
}

func dialPool(ctx context.Context, name, target string, channels int, logger commons.Logger) (*pool, error) {
	p := &pool{name: name, conns: make([]*pooledConn, 0, channels)}
	for i := 0; i < channels; i++ {
		cc, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			p.close()
			return nil, fmt.Errorf("dialling %s channel %d to %s: %w", name, i, target, err)
		}
		p.conns = append(p.conns, &pooledConn{cc: cc})

		logger.Debugf("establishing %s connection %d of %d to %s", name, i+1, channels, target)
		if !WaitUntilReady(ctx, cc) {
			p.close()
			return nil, fmt.Errorf("failed to connect to %s at %s", name, target)
		}
	}
	return p, nil
}

// WaitUntilReady blocks until the connection reaches the ready state or the
// ready timeout elapses.
func WaitUntilReady(ctx context.Context, cc *grpc.ClientConn) bool {
	ctx, cancel := context.WithTimeout(ctx, readyTimeout)
	defer cancel()

	cc.Connect()
	for {
		state := cc.GetState()
		if state == connectivity.Ready {
			return true
		}
		if !cc.WaitForStateChange(ctx, state) {
			return false
		}
	}
}

// pick selects a connection with power-of-two-choices over the in-flight
// counters and returns it with a release func the borrower must call once
// its call has fully finished. The two candidates are always distinct.
func (p *pool) pick() (*grpc.ClientConn, func()) {
	chosen := p.conns[0]
	if len(p.conns) > 1 {
		i := rand.Intn(len(p.conns))
		j := rand.Intn(len(p.conns) - 1)
		if j >= i {
			j++
		}
		chosen = p.conns[i]
		if p.conns[j].inflight.Load() < chosen.inflight.Load() {
			chosen = p.conns[j]
		}
	}
	chosen.inflight.Add(1)

	var once sync.Once
	release := func() {
		once.Do(func() { chosen.inflight.Add(-1) })
	}
	return chosen.cc, release
}

func (p *pool) close() {
	for _, c := range p.conns {
		_ = c.cc.Close()
	}
}
