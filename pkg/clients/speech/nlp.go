// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package speech

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/rapidaai/speechsquad/protos"
)

// NaturalQuery issues the unary question-answering call on a pooled channel.
// The result, including trailing metadata, arrives as a single
// NLPFinishedEvent.
func (r *Resources) NaturalQuery(ctx context.Context, req *protos.NaturalQueryRequest, events chan<- Event) {
	cc, release := r.nlp.pick()
	go func() {
		defer release()
		var trailer metadata.MD
		resp, err := protos.NewLanguageUnderstandingClient(cc).NaturalQuery(ctx, req, grpc.Trailer(&trailer))
		post(ctx, events, NLPFinishedEvent{Response: resp, Err: err, Trailer: trailer})
	}()
}
