// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package speech

import (
	"context"
	"errors"
	"io"

	"github.com/rapidaai/speechsquad/protos"
)

// ASRStream is a live streaming recognition call. Writes happen from the
// owning stream's event loop; responses and the terminal status arrive as
// events on the channel supplied at creation.
type ASRStream struct {
	stream protos.SpeechRecognition_StreamingRecognizeClient
	cancel context.CancelFunc
}

// NewASRStream opens a recognition stream on a pooled channel and starts its
// reader. The connection slot is released when the reader exits.
func (r *Resources) NewASRStream(ctx context.Context, events chan<- Event) (*ASRStream, error) {
	cc, release := r.asr.pick()

	callCtx, cancel := context.WithCancel(ctx)
	stream, err := protos.NewSpeechRecognitionClient(cc).StreamingRecognize(callCtx)
	if err != nil {
		cancel()
		release()
		return nil, err
	}

	s := &ASRStream{stream: stream, cancel: cancel}
	// The reader posts under the stream context, not the call context, so the
	// finished event still gets through after a deliberate Cancel.
	go s.readLoop(ctx, events, release)
	return s, nil
}

func (s *ASRStream) readLoop(ctx context.Context, events chan<- Event, release func()) {
	defer release()
	for {
		resp, err := s.stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = nil
			}
			post(ctx, events, ASRFinishedEvent{Err: err, Trailer: s.stream.Trailer()})
			return
		}
		if !post(ctx, events, ASRResponseEvent{Response: resp}) {
			return
		}
	}
}

// Write sends one request upstream.
func (s *ASRStream) Write(req *protos.StreamingRecognizeRequest) error {
	return s.stream.Send(req)
}

// CloseWrites half-closes the upload side; the service then emits its final
// results and finishes.
func (s *ASRStream) CloseWrites() error {
	return s.stream.CloseSend()
}

// Cancel aborts the call. The reader still delivers a finished event with
// the cancellation error.
func (s *ASRStream) Cancel() {
	s.cancel()
}
