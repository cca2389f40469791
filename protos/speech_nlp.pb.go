// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package protos

import (
	proto "github.com/golang/protobuf/proto"
)

type NaturalQueryRequest struct {
	Query   string `protobuf:"bytes,1,opt,name=query,proto3" json:"query,omitempty"`
	TopN    int32  `protobuf:"varint,2,opt,name=top_n,json=topN,proto3" json:"top_n,omitempty"`
	Context string `protobuf:"bytes,3,opt,name=context,proto3" json:"context,omitempty"`
}

func (m *NaturalQueryRequest) Reset()         { *m = NaturalQueryRequest{} }
func (m *NaturalQueryRequest) String() string { return proto.CompactTextString(m) }
func (*NaturalQueryRequest) ProtoMessage()    {}

func (m *NaturalQueryRequest) GetQuery() string {
	if m != nil {
		return m.Query
	}
	return ""
}

func (m *NaturalQueryRequest) GetTopN() int32 {
	if m != nil {
		return m.TopN
	}
	return 0
}

func (m *NaturalQueryRequest) GetContext() string {
	if m != nil {
		return m.Context
	}
	return ""
}

type NaturalQueryResult struct {
	Answer string  `protobuf:"bytes,1,opt,name=answer,proto3" json:"answer,omitempty"`
	Score  float32 `protobuf:"fixed32,2,opt,name=score,proto3" json:"score,omitempty"`
}

func (m *NaturalQueryResult) Reset()         { *m = NaturalQueryResult{} }
func (m *NaturalQueryResult) String() string { return proto.CompactTextString(m) }
func (*NaturalQueryResult) ProtoMessage()    {}

func (m *NaturalQueryResult) GetAnswer() string {
	if m != nil {
		return m.Answer
	}
	return ""
}

func (m *NaturalQueryResult) GetScore() float32 {
	if m != nil {
		return m.Score
	}
	return 0
}

type NaturalQueryResponse struct {
	Results []*NaturalQueryResult `protobuf:"bytes,1,rep,name=results,proto3" json:"results,omitempty"`
}

func (m *NaturalQueryResponse) Reset()         { *m = NaturalQueryResponse{} }
func (m *NaturalQueryResponse) String() string { return proto.CompactTextString(m) }
func (*NaturalQueryResponse) ProtoMessage()    {}

func (m *NaturalQueryResponse) GetResults() []*NaturalQueryResult {
	if m != nil {
		return m.Results
	}
	return nil
}
