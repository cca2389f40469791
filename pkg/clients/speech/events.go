// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package speech

import (
	"context"

	"google.golang.org/grpc/metadata"

	"github.com/rapidaai/speechsquad/protos"
)

// Event is a downstream notification delivered to the squad stream's event
// loop. Exactly one Finished event is delivered per adapter unless the
// stream context is cancelled first.
type Event interface {
	isEvent()
}

// ASRResponseEvent carries one streaming recognition response.
type ASRResponseEvent struct {
	Response *protos.StreamingRecognizeResponse
}

// ASRFinishedEvent reports the end of the recognition stream. Err is nil on
// a clean finish; Trailer holds the trailing metadata either way.
type ASRFinishedEvent struct {
	Err     error
	Trailer metadata.MD
}

// NLPFinishedEvent reports the completion of the natural query call.
type NLPFinishedEvent struct {
	Response *protos.NaturalQueryResponse
	Err      error
	Trailer  metadata.MD
}

// TTSResponseEvent carries one chunk of synthesized audio.
type TTSResponseEvent struct {
	Audio []byte
}

// TTSFinishedEvent reports the end of the synthesis stream.
type TTSFinishedEvent struct {
	Err     error
	Trailer metadata.MD
}

func (ASRResponseEvent) isEvent() {}
func (ASRFinishedEvent) isEvent() {}
func (NLPFinishedEvent) isEvent() {}
func (TTSResponseEvent) isEvent() {}
func (TTSFinishedEvent) isEvent() {}

// post delivers ev unless the stream has been torn down. Returns false when
// the context won, which tells the producer to stop.
func post(ctx context.Context, events chan<- Event, ev Event) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
