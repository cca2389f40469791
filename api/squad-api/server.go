// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package squadapi

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/soheilhy/cmux"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/rapidaai/speechsquad/config"
	"github.com/rapidaai/speechsquad/pkg/commons"
	"github.com/rapidaai/speechsquad/protos"
)

// Server multiplexes the gRPC inference service and a plain HTTP health
// endpoint on the configured listen address.
type Server struct {
	logger commons.Logger
	uri    string

	grpcServer *grpc.Server
	httpServer *http.Server
	mux        cmux.CMux
}

func NewServer(cfg *config.ServerConfig, service *Service, logger commons.Logger) *Server {
	grpcServer := grpc.NewServer(
		grpc.ChainStreamInterceptor(
			logging.StreamServerInterceptor(interceptorLogger(logger)),
		),
		grpc.ChainUnaryInterceptor(
			logging.UnaryServerInterceptor(interceptorLogger(logger)),
		),
	)
	protos.RegisterSpeechSquadServiceServer(grpcServer, service)

	httpMux := http.NewServeMux()
	httpMux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return &Server{
		logger:     logger,
		uri:        cfg.URI,
		grpcServer: grpcServer,
		httpServer: &http.Server{Handler: httpMux},
	}
}

// ListenAndServe blocks until the listener fails or Shutdown is called.
func (s *Server) ListenAndServe() error {
	listener, err := net.Listen("tcp", s.uri)
	if err != nil {
		return err
	}
	s.logger.Infof("speech squad server listening on %s", s.uri)

	s.mux = cmux.New(listener)
	grpcListener := s.mux.MatchWithWriters(cmux.HTTP2MatchHeaderFieldSendSettings("content-type", "application/grpc"))
	httpListener := s.mux.Match(cmux.HTTP1Fast())

	group := errgroup.Group{}
	group.Go(func() error { return s.grpcServer.Serve(grpcListener) })
	group.Go(func() error { return s.httpServer.Serve(httpListener) })
	group.Go(func() error { return s.mux.Serve() })
	err = group.Wait()
	if errors.Is(err, cmux.ErrServerClosed) || errors.Is(err, cmux.ErrListenerClosed) ||
		errors.Is(err, grpc.ErrServerStopped) || errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight streams and closes the listener.
func (s *Server) Shutdown(ctx context.Context) {
	s.grpcServer.GracefulStop()
	_ = s.httpServer.Shutdown(ctx)
	if s.mux != nil {
		s.mux.Close()
	}
}

func interceptorLogger(l commons.Logger) logging.Logger {
	return logging.LoggerFunc(func(_ context.Context, level logging.Level, msg string, fields ...any) {
		switch level {
		case logging.LevelDebug:
			l.Debugw(msg, fields...)
		case logging.LevelInfo:
			l.Infow(msg, fields...)
		case logging.LevelWarn:
			l.Warnw(msg, fields...)
		default:
			l.Errorw(msg, fields...)
		}
	})
}
