// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package protos holds the wire types for the speech squad service and its
// three downstream speech services. The messages are hand-maintained mirrors
// of the .proto files in this directory, kept descriptor-free so the module
// vendors cleanly without a protoc toolchain; the gRPC proto codec derives
// the wire format from the struct tags.
package protos

import (
	proto "github.com/golang/protobuf/proto"
)

type AudioEncoding int32

const (
	AudioEncoding_ENCODING_UNSPECIFIED AudioEncoding = 0
	AudioEncoding_LINEAR_PCM           AudioEncoding = 1
	AudioEncoding_FLAC                 AudioEncoding = 2
)

var AudioEncoding_name = map[int32]string{
	0: "ENCODING_UNSPECIFIED",
	1: "LINEAR_PCM",
	2: "FLAC",
}

var AudioEncoding_value = map[string]int32{
	"ENCODING_UNSPECIFIED": 0,
	"LINEAR_PCM":           1,
	"FLAC":                 2,
}

func (x AudioEncoding) String() string {
	if s, ok := AudioEncoding_name[int32(x)]; ok {
		return s
	}
	return "UNKNOWN"
}

type AudioConfig struct {
	Encoding          AudioEncoding `protobuf:"varint,1,opt,name=encoding,proto3,enum=speechsquad.AudioEncoding" json:"encoding,omitempty"`
	SampleRateHertz   int32         `protobuf:"varint,2,opt,name=sample_rate_hertz,json=sampleRateHertz,proto3" json:"sample_rate_hertz,omitempty"`
	LanguageCode      string        `protobuf:"bytes,3,opt,name=language_code,json=languageCode,proto3" json:"language_code,omitempty"`
	AudioChannelCount int32         `protobuf:"varint,4,opt,name=audio_channel_count,json=audioChannelCount,proto3" json:"audio_channel_count,omitempty"`
}

func (m *AudioConfig) Reset()         { *m = AudioConfig{} }
func (m *AudioConfig) String() string { return proto.CompactTextString(m) }
func (*AudioConfig) ProtoMessage()    {}

func (m *AudioConfig) GetEncoding() AudioEncoding {
	if m != nil {
		return m.Encoding
	}
	return AudioEncoding_ENCODING_UNSPECIFIED
}

func (m *AudioConfig) GetSampleRateHertz() int32 {
	if m != nil {
		return m.SampleRateHertz
	}
	return 0
}

func (m *AudioConfig) GetLanguageCode() string {
	if m != nil {
		return m.LanguageCode
	}
	return ""
}

func (m *AudioConfig) GetAudioChannelCount() int32 {
	if m != nil {
		return m.AudioChannelCount
	}
	return 0
}
