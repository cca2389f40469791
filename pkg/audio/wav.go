// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package audio reads and writes the small subset of the WAV format the
// squad pipeline exchanges: 16-bit PCM uploads and float32 synthesis output.
package audio

import (
	"encoding/binary"
	"math"
	"os"

	"github.com/rapidaai/speechsquad/pkg/commons"
	"github.com/rapidaai/speechsquad/protos"
)

// HeaderSize is the canonical 44-byte RIFF header carried at the front of
// every uploaded clip.
const HeaderSize = 44

const (
	formatPCM       = 1
	formatIEEEFloat = 3
)

// Info describes a parsed WAV header.
type Info struct {
	Encoding   protos.AudioEncoding
	SampleRate int
	Channels   int
}

// ParseHeader inspects the fixed header at the front of data. Only RIFF
// containers holding 16-bit linear PCM are supported; FLAC and everything
// else is rejected.
func ParseHeader(data []byte) (Info, error) {
	if len(data) < HeaderSize {
		return Info{}, commons.Statusf(commons.StatusInvalidArg, "audio clip of %d bytes is shorter than a WAV header", len(data))
	}
	tag := string(data[0:4])
	if tag == "fLaC" {
		return Info{}, commons.NewStatus(commons.StatusUnsupported, "FLAC audio is not supported")
	}
	if tag != "RIFF" {
		return Info{}, commons.NewStatus(commons.StatusInvalidArg, "not a RIFF container")
	}
	audioFormat := binary.LittleEndian.Uint16(data[20:22])
	if audioFormat != formatPCM {
		return Info{}, commons.Statusf(commons.StatusUnsupported, "unsupported WAV audio format %d", audioFormat)
	}
	return Info{
		Encoding:   protos.AudioEncoding_LINEAR_PCM,
		SampleRate: int(binary.LittleEndian.Uint32(data[24:28])),
		Channels:   int(binary.LittleEndian.Uint16(data[22:24])),
	}, nil
}

// WriteFloat32WAV writes mono float32 samples to path as an IEEE-float WAV
// file at the given sample rate.
func WriteFloat32WAV(path string, sampleRate int, samples []float32) error {
	dataSize := len(samples) * 4

	header := make([]byte, HeaderSize)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+dataSize))
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], formatIEEEFloat)
	binary.LittleEndian.PutUint16(header[22:24], 1)
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(sampleRate*4))
	binary.LittleEndian.PutUint16(header[32:34], 4)
	binary.LittleEndian.PutUint16(header[34:36], 32)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataSize))

	buf := make([]byte, HeaderSize+dataSize)
	copy(buf, header)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(buf[HeaderSize+i*4:], math.Float32bits(s))
	}
	return os.WriteFile(path, buf, 0o644)
}

// DecodeFloat32 reinterprets little-endian float32 sample bytes. Trailing
// partial samples are dropped.
func DecodeFloat32(data []byte) []float32 {
	samples := make([]float32, 0, len(data)/4)
	for i := 0; i+4 <= len(data); i += 4 {
		samples = append(samples, math.Float32frombits(binary.LittleEndian.Uint32(data[i:])))
	}
	return samples
}
