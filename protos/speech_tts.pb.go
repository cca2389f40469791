// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package protos

import (
	proto "github.com/golang/protobuf/proto"
)

type SynthesizeSpeechRequest struct {
	Text         string        `protobuf:"bytes,1,opt,name=text,proto3" json:"text,omitempty"`
	LanguageCode string        `protobuf:"bytes,2,opt,name=language_code,json=languageCode,proto3" json:"language_code,omitempty"`
	Encoding     AudioEncoding `protobuf:"varint,3,opt,name=encoding,proto3,enum=speechsquad.AudioEncoding" json:"encoding,omitempty"`
	SampleRateHz int32         `protobuf:"varint,4,opt,name=sample_rate_hz,json=sampleRateHz,proto3" json:"sample_rate_hz,omitempty"`
	VoiceName    string        `protobuf:"bytes,5,opt,name=voice_name,json=voiceName,proto3" json:"voice_name,omitempty"`
}

func (m *SynthesizeSpeechRequest) Reset()         { *m = SynthesizeSpeechRequest{} }
func (m *SynthesizeSpeechRequest) String() string { return proto.CompactTextString(m) }
func (*SynthesizeSpeechRequest) ProtoMessage()    {}

func (m *SynthesizeSpeechRequest) GetText() string {
	if m != nil {
		return m.Text
	}
	return ""
}

func (m *SynthesizeSpeechRequest) GetLanguageCode() string {
	if m != nil {
		return m.LanguageCode
	}
	return ""
}

func (m *SynthesizeSpeechRequest) GetEncoding() AudioEncoding {
	if m != nil {
		return m.Encoding
	}
	return AudioEncoding_ENCODING_UNSPECIFIED
}

func (m *SynthesizeSpeechRequest) GetSampleRateHz() int32 {
	if m != nil {
		return m.SampleRateHz
	}
	return 0
}

func (m *SynthesizeSpeechRequest) GetVoiceName() string {
	if m != nil {
		return m.VoiceName
	}
	return ""
}

type SynthesizeSpeechResponse struct {
	Audio []byte `protobuf:"bytes,1,opt,name=audio,proto3" json:"audio,omitempty"`
}

func (m *SynthesizeSpeechResponse) Reset()         { *m = SynthesizeSpeechResponse{} }
func (m *SynthesizeSpeechResponse) String() string { return proto.CompactTextString(m) }
func (*SynthesizeSpeechResponse) ProtoMessage()    {}

func (m *SynthesizeSpeechResponse) GetAudio() []byte {
	if m != nil {
		return m.Audio
	}
	return nil
}
