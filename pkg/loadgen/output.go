// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package loadgen

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/rapidaai/speechsquad/pkg/audio"
	"github.com/rapidaai/speechsquad/pkg/commons"
)

// OutputFilenames names the three result artifacts created inside the
// output root folder.
type OutputFilenames struct {
	RootFolder   string
	QuestionJSON string
	AnswerJSON   string
	WaveJSON     string
}

// OutputFiles serializes result writing across tasks: the question and wave
// manifests are JSON-lines files, the answer file is one JSON object keyed
// by question id, and each synthesized clip lands in a numbered WAV file.
type OutputFiles struct {
	mtx sync.Mutex

	rootDir      string
	questionFile *os.File
	answerFile   *os.File
	waveFile     *os.File
	wavIndex     uint64
}

func NewOutputFiles(names OutputFilenames) (*OutputFiles, error) {
	o := &OutputFiles{rootDir: names.RootFolder}

	var err error
	if o.answerFile, err = os.Create(filepath.Join(names.RootFolder, names.AnswerJSON)); err != nil {
		return nil, err
	}
	if _, err = o.answerFile.WriteString("{"); err != nil {
		o.Close()
		return nil, err
	}
	if o.questionFile, err = os.Create(filepath.Join(names.RootFolder, names.QuestionJSON)); err != nil {
		o.Close()
		return nil, err
	}
	if o.waveFile, err = os.Create(filepath.Join(names.RootFolder, names.WaveJSON)); err != nil {
		o.Close()
		return nil, err
	}
	return o, nil
}

// Close finishes the answer object and closes all three files.
func (o *OutputFiles) Close() error {
	o.mtx.Lock()
	defer o.mtx.Unlock()

	var firstErr error
	if o.answerFile != nil {
		if _, err := o.answerFile.WriteString("}"); err != nil && firstErr == nil {
			firstErr = err
		}
		if err := o.answerFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	for _, f := range []*os.File{o.questionFile, o.waveFile} {
		if f != nil {
			if err := f.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	o.answerFile, o.questionFile, o.waveFile = nil, nil, nil
	return firstErr
}

// WriteResult records the artifacts for one completed stream. It returns a
// non-OK status when the response carried a question but no audio.
func (o *OutputFiles) WriteResult(questionID, audioFilepath string, result *Results) error {
	o.mtx.Lock()
	defer o.mtx.Unlock()

	fmt.Println("-----------------------------------------------------------")
	fmt.Printf("File: %s\n", audioFilepath)

	if result.SquadQuestion == "" {
		fmt.Fprintf(o.questionFile, "{\"audio_filepath\": %q,\"question\": \"\"}\n", audioFilepath)
		return nil
	}

	fmt.Fprintf(o.answerFile, "%q: \"%s\",", questionID, escapeQuotes(result.SquadAnswer))
	fmt.Fprintf(o.questionFile, "{\"audio_filepath\": %q,\"text\": %q}\n", audioFilepath, result.SquadQuestion)

	if len(result.AudioContent) == 0 {
		return commons.NewStatus(commons.StatusInternal, "No audio received in the response")
	}

	outputFilename := filepath.Join(o.rootDir, strconv.FormatUint(o.wavIndex, 10)+".wav")
	o.wavIndex++
	if err := audio.WriteFloat32WAV(outputFilename, 22050, audio.DecodeFloat32(result.AudioContent)); err != nil {
		return commons.Statusf(commons.StatusInternal, "failed to write %s: %v", outputFilename, err)
	}

	latencies := make([]string, 0, len(result.ResponseIntervals))
	for _, interval := range result.ResponseIntervals {
		latencies = append(latencies, "\""+strconv.FormatFloat(interval, 'f', 6, 64)+"\"")
	}
	fmt.Fprintf(o.waveFile, "{\"qid\":%q,\"text\":\"%s\",\"synthesized_audio_path\":%q,\"latencies\":[%s]}\n",
		questionID, escapeQuotes(result.SquadAnswer), outputFilename, strings.Join(latencies, ","))

	fmt.Printf("SQUAD question: %s\n", result.SquadQuestion)
	fmt.Printf("SQUAD answer: %s\n", result.SquadAnswer)
	fmt.Printf("Output File: %s\n", outputFilename)
	return nil
}

func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
