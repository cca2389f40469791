// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package protos

import (
	proto "github.com/golang/protobuf/proto"
)

type SpeechSquadConfig struct {
	InputAudioConfig  *AudioConfig `protobuf:"bytes,1,opt,name=input_audio_config,json=inputAudioConfig,proto3" json:"input_audio_config,omitempty"`
	OutputAudioConfig *AudioConfig `protobuf:"bytes,2,opt,name=output_audio_config,json=outputAudioConfig,proto3" json:"output_audio_config,omitempty"`
	SquadContext      string       `protobuf:"bytes,3,opt,name=squad_context,json=squadContext,proto3" json:"squad_context,omitempty"`
}

func (m *SpeechSquadConfig) Reset()         { *m = SpeechSquadConfig{} }
func (m *SpeechSquadConfig) String() string { return proto.CompactTextString(m) }
func (*SpeechSquadConfig) ProtoMessage()    {}

func (m *SpeechSquadConfig) GetInputAudioConfig() *AudioConfig {
	if m != nil {
		return m.InputAudioConfig
	}
	return nil
}

func (m *SpeechSquadConfig) GetOutputAudioConfig() *AudioConfig {
	if m != nil {
		return m.OutputAudioConfig
	}
	return nil
}

func (m *SpeechSquadConfig) GetSquadContext() string {
	if m != nil {
		return m.SquadContext
	}
	return ""
}

type SpeechSquadInferRequest struct {
	// Types that are valid to be assigned to Payload:
	//	*SpeechSquadInferRequest_SpeechSquadConfig
	//	*SpeechSquadInferRequest_AudioContent
	Payload isSpeechSquadInferRequest_Payload `protobuf_oneof:"payload"`
}

func (m *SpeechSquadInferRequest) Reset()         { *m = SpeechSquadInferRequest{} }
func (m *SpeechSquadInferRequest) String() string { return proto.CompactTextString(m) }
func (*SpeechSquadInferRequest) ProtoMessage()    {}

type isSpeechSquadInferRequest_Payload interface {
	isSpeechSquadInferRequest_Payload()
}

type SpeechSquadInferRequest_SpeechSquadConfig struct {
	SpeechSquadConfig *SpeechSquadConfig `protobuf:"bytes,1,opt,name=speech_squad_config,json=speechSquadConfig,proto3,oneof"`
}

type SpeechSquadInferRequest_AudioContent struct {
	AudioContent []byte `protobuf:"bytes,2,opt,name=audio_content,json=audioContent,proto3,oneof"`
}

func (*SpeechSquadInferRequest_SpeechSquadConfig) isSpeechSquadInferRequest_Payload() {}
func (*SpeechSquadInferRequest_AudioContent) isSpeechSquadInferRequest_Payload()      {}

func (m *SpeechSquadInferRequest) GetPayload() isSpeechSquadInferRequest_Payload {
	if m != nil {
		return m.Payload
	}
	return nil
}

func (m *SpeechSquadInferRequest) GetSpeechSquadConfig() *SpeechSquadConfig {
	if x, ok := m.GetPayload().(*SpeechSquadInferRequest_SpeechSquadConfig); ok {
		return x.SpeechSquadConfig
	}
	return nil
}

func (m *SpeechSquadInferRequest) GetAudioContent() []byte {
	if x, ok := m.GetPayload().(*SpeechSquadInferRequest_AudioContent); ok {
		return x.AudioContent
	}
	return nil
}

// XXX_OneofWrappers is for the internal use of the proto package.
func (*SpeechSquadInferRequest) XXX_OneofWrappers() []interface{} {
	return []interface{}{
		(*SpeechSquadInferRequest_SpeechSquadConfig)(nil),
		(*SpeechSquadInferRequest_AudioContent)(nil),
	}
}

type SpeechSquadInferResponseMetadata struct {
	SquadQuestion   string             `protobuf:"bytes,1,opt,name=squad_question,json=squadQuestion,proto3" json:"squad_question,omitempty"`
	SquadAnswer     string             `protobuf:"bytes,2,opt,name=squad_answer,json=squadAnswer,proto3" json:"squad_answer,omitempty"`
	ComponentTiming map[string]float32 `protobuf:"bytes,13,rep,name=component_timing,json=componentTiming,proto3" json:"component_timing,omitempty" protobuf_key:"bytes,1,opt,name=key,proto3" protobuf_val:"fixed32,2,opt,name=value,proto3"`
}

func (m *SpeechSquadInferResponseMetadata) Reset()         { *m = SpeechSquadInferResponseMetadata{} }
func (m *SpeechSquadInferResponseMetadata) String() string { return proto.CompactTextString(m) }
func (*SpeechSquadInferResponseMetadata) ProtoMessage()    {}

func (m *SpeechSquadInferResponseMetadata) GetSquadQuestion() string {
	if m != nil {
		return m.SquadQuestion
	}
	return ""
}

func (m *SpeechSquadInferResponseMetadata) GetSquadAnswer() string {
	if m != nil {
		return m.SquadAnswer
	}
	return ""
}

func (m *SpeechSquadInferResponseMetadata) GetComponentTiming() map[string]float32 {
	if m != nil {
		return m.ComponentTiming
	}
	return nil
}

type SpeechSquadInferResponse struct {
	// Types that are valid to be assigned to Payload:
	//	*SpeechSquadInferResponse_Metadata
	//	*SpeechSquadInferResponse_AudioContent
	Payload isSpeechSquadInferResponse_Payload `protobuf_oneof:"payload"`
}

func (m *SpeechSquadInferResponse) Reset()         { *m = SpeechSquadInferResponse{} }
func (m *SpeechSquadInferResponse) String() string { return proto.CompactTextString(m) }
func (*SpeechSquadInferResponse) ProtoMessage()    {}

type isSpeechSquadInferResponse_Payload interface {
	isSpeechSquadInferResponse_Payload()
}

type SpeechSquadInferResponse_Metadata struct {
	Metadata *SpeechSquadInferResponseMetadata `protobuf:"bytes,1,opt,name=metadata,proto3,oneof"`
}

type SpeechSquadInferResponse_AudioContent struct {
	AudioContent []byte `protobuf:"bytes,2,opt,name=audio_content,json=audioContent,proto3,oneof"`
}

func (*SpeechSquadInferResponse_Metadata) isSpeechSquadInferResponse_Payload()     {}
func (*SpeechSquadInferResponse_AudioContent) isSpeechSquadInferResponse_Payload() {}

func (m *SpeechSquadInferResponse) GetPayload() isSpeechSquadInferResponse_Payload {
	if m != nil {
		return m.Payload
	}
	return nil
}

func (m *SpeechSquadInferResponse) GetMetadata() *SpeechSquadInferResponseMetadata {
	if x, ok := m.GetPayload().(*SpeechSquadInferResponse_Metadata); ok {
		return x.Metadata
	}
	return nil
}

func (m *SpeechSquadInferResponse) GetAudioContent() []byte {
	if x, ok := m.GetPayload().(*SpeechSquadInferResponse_AudioContent); ok {
		return x.AudioContent
	}
	return nil
}

// XXX_OneofWrappers is for the internal use of the proto package.
func (*SpeechSquadInferResponse) XXX_OneofWrappers() []interface{} {
	return []interface{}{
		(*SpeechSquadInferResponse_Metadata)(nil),
		(*SpeechSquadInferResponse_AudioContent)(nil),
	}
}
