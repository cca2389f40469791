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
	SpeechSynthesis_SynthesizeOnline_FullMethodName = "/speechsquad.SpeechSynthesis/SynthesizeOnline"
)

// SpeechSynthesisClient is the client API for SpeechSynthesis.
type SpeechSynthesisClient interface {
	SynthesizeOnline(ctx context.Context, in *SynthesizeSpeechRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[SynthesizeSpeechResponse], error)
}

type speechSynthesisClient struct {
	cc grpc.ClientConnInterface
}

func NewSpeechSynthesisClient(cc grpc.ClientConnInterface) SpeechSynthesisClient {
	return &speechSynthesisClient{cc}
}

func (c *speechSynthesisClient) SynthesizeOnline(ctx context.Context, in *SynthesizeSpeechRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[SynthesizeSpeechResponse], error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	stream, err := c.cc.NewStream(ctx, &SpeechSynthesis_ServiceDesc.Streams[0], SpeechSynthesis_SynthesizeOnline_FullMethodName, cOpts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[SynthesizeSpeechRequest, SynthesizeSpeechResponse]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type SpeechSynthesis_SynthesizeOnlineClient = grpc.ServerStreamingClient[SynthesizeSpeechResponse]

// SpeechSynthesisServer is the server API for SpeechSynthesis.
type SpeechSynthesisServer interface {
	SynthesizeOnline(*SynthesizeSpeechRequest, grpc.ServerStreamingServer[SynthesizeSpeechResponse]) error
}

type SpeechSynthesis_SynthesizeOnlineServer = grpc.ServerStreamingServer[SynthesizeSpeechResponse]

func RegisterSpeechSynthesisServer(s grpc.ServiceRegistrar, srv SpeechSynthesisServer) {
	s.RegisterService(&SpeechSynthesis_ServiceDesc, srv)
}

func _SpeechSynthesis_SynthesizeOnline_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(SynthesizeSpeechRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(SpeechSynthesisServer).SynthesizeOnline(m, &grpc.GenericServerStream[SynthesizeSpeechRequest, SynthesizeSpeechResponse]{ServerStream: stream})
}

var SpeechSynthesis_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "speechsquad.SpeechSynthesis",
	HandlerType: (*SpeechSynthesisServer)(nil),
	Methods:     []grpc.MethodDesc{},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "SynthesizeOnline",
			Handler:       _SpeechSynthesis_SynthesizeOnline_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "speech_tts.proto",
}
