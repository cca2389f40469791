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

// Synthesize starts the server-streaming synthesis call on a pooled channel.
// Audio chunks arrive as TTSResponseEvents followed by one TTSFinishedEvent
// carrying the trailing metadata.
func (r *Resources) Synthesize(ctx context.Context, req *protos.SynthesizeSpeechRequest, events chan<- Event) {
	cc, release := r.tts.pick()
	go func() {
		defer release()
		stream, err := protos.NewSpeechSynthesisClient(cc).SynthesizeOnline(ctx, req)
		if err != nil {
			post(ctx, events, TTSFinishedEvent{Err: err})
			return
		}
		for {
			resp, err := stream.Recv()
			if err != nil {
				if errors.Is(err, io.EOF) {
					err = nil
				}
				post(ctx, events, TTSFinishedEvent{Err: err, Trailer: stream.Trailer()})
				return
			}
			if !post(ctx, events, TTSResponseEvent{Audio: resp.GetAudio()}) {
				return
			}
		}
	}()
}
