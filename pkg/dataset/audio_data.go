// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package dataset

import (
	"os"

	"github.com/rapidaai/speechsquad/pkg/audio"
	"github.com/rapidaai/speechsquad/pkg/commons"
	"github.com/rapidaai/speechsquad/protos"
)

// AudioData is one spoken question, fully loaded into memory with its
// decoded header attributes.
type AudioData struct {
	Data       []byte
	Filename   string
	QuestionID string
	Encoding   protos.AudioEncoding
	SampleRate int
	Channels   int
}

// NextProcIndex returns the process with the least allocated bytes, the
// target for the next clip. Linear scan; the process count is small.
func NextProcIndex(allocatedBytes []int64) int {
	index := 0
	for i, bytes := range allocatedBytes {
		if bytes < allocatedBytes[index] {
			index = i
		}
	}
	return index
}

// LoadAudioData reads every clip named by the manifest and keeps the subset
// belonging to procIndex. Clips are dealt greedily to the least loaded
// process so each partition carries a similar number of audio bytes, and
// every process derives the identical partition from the shared manifest.
func LoadAudioData(path, idKey string, procIndex, procCount int, logger commons.Logger) ([]*AudioData, error) {
	entries, err := ParseQuestionsJSON(path, idKey)
	if err != nil {
		return nil, err
	}

	if procCount < 1 {
		procCount = 1
	}
	allocatedBytes := make([]int64, procCount)

	var partition []*AudioData
	for _, entry := range entries {
		data, err := os.ReadFile(entry.AudioFilepath)
		if err != nil {
			return nil, commons.Statusf(commons.StatusNotFound, "cannot read audio file %s: %v", entry.AudioFilepath, err)
		}
		info, err := audio.ParseHeader(data)
		if err != nil {
			return nil, commons.Statusf(commons.StatusInvalidArg, "cannot parse audio file header for file %s: %v", entry.AudioFilepath, err)
		}

		index := NextProcIndex(allocatedBytes)
		allocatedBytes[index] += int64(len(data))
		if index != procIndex {
			continue
		}
		partition = append(partition, &AudioData{
			Data:       data,
			Filename:   entry.AudioFilepath,
			QuestionID: entry.QuestionID,
			Encoding:   info.Encoding,
			SampleRate: info.SampleRate,
			Channels:   info.Channels,
		})
	}

	logger.Infof("loaded %d audio files for process %d", len(partition), procIndex)
	return partition, nil
}
