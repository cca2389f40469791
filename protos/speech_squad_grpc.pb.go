// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package protos

import (
	context "context"

	grpc "google.golang.org/grpc"
)

const (
	SpeechSquadService_SpeechSquadInfer_FullMethodName = "/speechsquad.SpeechSquadService/SpeechSquadInfer"
)

// SpeechSquadServiceClient is the client API for SpeechSquadService.
type SpeechSquadServiceClient interface {
	SpeechSquadInfer(ctx context.Context, opts ...grpc.CallOption) (grpc.BidiStreamingClient[SpeechSquadInferRequest, SpeechSquadInferResponse], error)
}

type speechSquadServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewSpeechSquadServiceClient(cc grpc.ClientConnInterface) SpeechSquadServiceClient {
	return &speechSquadServiceClient{cc}
}

func (c *speechSquadServiceClient) SpeechSquadInfer(ctx context.Context, opts ...grpc.CallOption) (grpc.BidiStreamingClient[SpeechSquadInferRequest, SpeechSquadInferResponse], error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	stream, err := c.cc.NewStream(ctx, &SpeechSquadService_ServiceDesc.Streams[0], SpeechSquadService_SpeechSquadInfer_FullMethodName, cOpts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[SpeechSquadInferRequest, SpeechSquadInferResponse]{ClientStream: stream}
	return x, nil
}

// SpeechSquadService_SpeechSquadInferClient is a named alias kept for
// readability at call sites.
type SpeechSquadService_SpeechSquadInferClient = grpc.BidiStreamingClient[SpeechSquadInferRequest, SpeechSquadInferResponse]

// SpeechSquadServiceServer is the server API for SpeechSquadService.
type SpeechSquadServiceServer interface {
	SpeechSquadInfer(grpc.BidiStreamingServer[SpeechSquadInferRequest, SpeechSquadInferResponse]) error
}

type SpeechSquadService_SpeechSquadInferServer = grpc.BidiStreamingServer[SpeechSquadInferRequest, SpeechSquadInferResponse]

func RegisterSpeechSquadServiceServer(s grpc.ServiceRegistrar, srv SpeechSquadServiceServer) {
	s.RegisterService(&SpeechSquadService_ServiceDesc, srv)
}

func _SpeechSquadService_SpeechSquadInfer_Handler(srv interface{}, stream grpc.ServerStream) error {
	return srv.(SpeechSquadServiceServer).SpeechSquadInfer(&grpc.GenericServerStream[SpeechSquadInferRequest, SpeechSquadInferResponse]{ServerStream: stream})
}

var SpeechSquadService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "speechsquad.SpeechSquadService",
	HandlerType: (*SpeechSquadServiceServer)(nil),
	Methods:     []grpc.MethodDesc{},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "SpeechSquadInfer",
			Handler:       _SpeechSquadService_SpeechSquadInfer_Handler,
			ServerStreams: true,
			ClientStreams: true,
		},
	},
	Metadata: "speech_squad.proto",
}
