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
	LanguageUnderstanding_NaturalQuery_FullMethodName = "/speechsquad.LanguageUnderstanding/NaturalQuery"
)

// LanguageUnderstandingClient is the client API for LanguageUnderstanding.
type LanguageUnderstandingClient interface {
	NaturalQuery(ctx context.Context, in *NaturalQueryRequest, opts ...grpc.CallOption) (*NaturalQueryResponse, error)
}

type languageUnderstandingClient struct {
	cc grpc.ClientConnInterface
}

func NewLanguageUnderstandingClient(cc grpc.ClientConnInterface) LanguageUnderstandingClient {
	return &languageUnderstandingClient{cc}
}

func (c *languageUnderstandingClient) NaturalQuery(ctx context.Context, in *NaturalQueryRequest, opts ...grpc.CallOption) (*NaturalQueryResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	out := new(NaturalQueryResponse)
	err := c.cc.Invoke(ctx, LanguageUnderstanding_NaturalQuery_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LanguageUnderstandingServer is the server API for LanguageUnderstanding.
type LanguageUnderstandingServer interface {
	NaturalQuery(context.Context, *NaturalQueryRequest) (*NaturalQueryResponse, error)
}

func RegisterLanguageUnderstandingServer(s grpc.ServiceRegistrar, srv LanguageUnderstandingServer) {
	s.RegisterService(&LanguageUnderstanding_ServiceDesc, srv)
}

func _LanguageUnderstanding_NaturalQuery_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(NaturalQueryRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LanguageUnderstandingServer).NaturalQuery(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: LanguageUnderstanding_NaturalQuery_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LanguageUnderstandingServer).NaturalQuery(ctx, req.(*NaturalQueryRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var LanguageUnderstanding_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "speechsquad.LanguageUnderstanding",
	HandlerType: (*LanguageUnderstandingServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "NaturalQuery",
			Handler:    _LanguageUnderstanding_NaturalQuery_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "speech_nlp.proto",
}
