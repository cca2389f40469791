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
	SpeechRecognition_StreamingRecognize_FullMethodName = "/speechsquad.SpeechRecognition/StreamingRecognize"
)

// SpeechRecognitionClient is the client API for SpeechRecognition.
type SpeechRecognitionClient interface {
	StreamingRecognize(ctx context.Context, opts ...grpc.CallOption) (grpc.BidiStreamingClient[StreamingRecognizeRequest, StreamingRecognizeResponse], error)
}

type speechRecognitionClient struct {
	cc grpc.ClientConnInterface
}

func NewSpeechRecognitionClient(cc grpc.ClientConnInterface) SpeechRecognitionClient {
	return &speechRecognitionClient{cc}
}

func (c *speechRecognitionClient) StreamingRecognize(ctx context.Context, opts ...grpc.CallOption) (grpc.BidiStreamingClient[StreamingRecognizeRequest, StreamingRecognizeResponse], error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	stream, err := c.cc.NewStream(ctx, &SpeechRecognition_ServiceDesc.Streams[0], SpeechRecognition_StreamingRecognize_FullMethodName, cOpts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[StreamingRecognizeRequest, StreamingRecognizeResponse]{ClientStream: stream}
	return x, nil
}

type SpeechRecognition_StreamingRecognizeClient = grpc.BidiStreamingClient[StreamingRecognizeRequest, StreamingRecognizeResponse]

// SpeechRecognitionServer is the server API for SpeechRecognition.
type SpeechRecognitionServer interface {
	StreamingRecognize(grpc.BidiStreamingServer[StreamingRecognizeRequest, StreamingRecognizeResponse]) error
}

type SpeechRecognition_StreamingRecognizeServer = grpc.BidiStreamingServer[StreamingRecognizeRequest, StreamingRecognizeResponse]

func RegisterSpeechRecognitionServer(s grpc.ServiceRegistrar, srv SpeechRecognitionServer) {
	s.RegisterService(&SpeechRecognition_ServiceDesc, srv)
}

func _SpeechRecognition_StreamingRecognize_Handler(srv interface{}, stream grpc.ServerStream) error {
	return srv.(SpeechRecognitionServer).StreamingRecognize(&grpc.GenericServerStream[StreamingRecognizeRequest, StreamingRecognizeResponse]{ServerStream: stream})
}

var SpeechRecognition_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "speechsquad.SpeechRecognition",
	HandlerType: (*SpeechRecognitionServer)(nil),
	Methods:     []grpc.MethodDesc{},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "StreamingRecognize",
			Handler:       _SpeechRecognition_StreamingRecognize_Handler,
			ServerStreams: true,
			ClientStreams: true,
		},
	},
	Metadata: "speech_asr.proto",
}
