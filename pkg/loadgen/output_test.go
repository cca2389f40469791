// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package loadgen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rapidaai/speechsquad/pkg/audio"
)

func newTestOutputFiles(t *testing.T) (*OutputFiles, string) {
	t.Helper()
	dir := t.TempDir()
	o, err := NewOutputFiles(OutputFilenames{
		RootFolder:   dir,
		QuestionJSON: "squad_question.json",
		AnswerJSON:   "squad_answers.json",
		WaveJSON:     "squad_output_wave.json",
	})
	require.NoError(t, err)
	return o, dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(raw)
}

func TestWriteResult_FullResult(t *testing.T) {
	o, dir := newTestOutputFiles(t)

	samples := []float32{0.25, -0.25, 0.5}
	result := &Results{
		SquadQuestion:     "what is the largest rainforest?",
		SquadAnswer:       `the "Amazon"`,
		AudioContent:      float32Bytes(samples),
		ResponseIntervals: []float64{10.5, 11.25},
	}
	require.NoError(t, o.WriteResult("q1", "/tmp/q1.wav", result))
	require.NoError(t, o.Close())

	answers := readFile(t, filepath.Join(dir, "squad_answers.json"))
	assert.Equal(t, `{"q1": "the \"Amazon\"",}`, answers, "quotes in answers are escaped")

	questions := readFile(t, filepath.Join(dir, "squad_question.json"))
	assert.Contains(t, questions, `"audio_filepath": "/tmp/q1.wav"`)
	assert.Contains(t, questions, `"text": "what is the largest rainforest?"`)

	wave := readFile(t, filepath.Join(dir, "squad_output_wave.json"))
	assert.Contains(t, wave, `"qid":"q1"`)
	assert.Contains(t, wave, `"latencies":["10.500000","11.250000"]`)

	wav := filepath.Join(dir, "0.wav")
	assert.Contains(t, wave, wav)
	raw, err := os.ReadFile(wav)
	require.NoError(t, err)
	assert.Equal(t, samples, audio.DecodeFloat32(raw[audio.HeaderSize:]))
}

func TestWriteResult_EmptyQuestion(t *testing.T) {
	o, dir := newTestOutputFiles(t)

	require.NoError(t, o.WriteResult("q1", "/tmp/q1.wav", &Results{}))
	require.NoError(t, o.Close())

	questions := readFile(t, filepath.Join(dir, "squad_question.json"))
	assert.Contains(t, questions, `"question": ""`)
	assert.Equal(t, "{}", readFile(t, filepath.Join(dir, "squad_answers.json")))
}

func TestWriteResult_NoAudioIsAFailure(t *testing.T) {
	o, _ := newTestOutputFiles(t)
	defer o.Close()

	err := o.WriteResult("q1", "/tmp/q1.wav", &Results{
		SquadQuestion: "anything?",
		SquadAnswer:   "something",
	})
	assert.Error(t, err, "a question with no synthesized audio is an error")
}

func TestWriteResult_WavIndexIncrements(t *testing.T) {
	o, dir := newTestOutputFiles(t)

	for i := 0; i < 2; i++ {
		require.NoError(t, o.WriteResult("q", "/tmp/q.wav", &Results{
			SquadQuestion: "q?",
			SquadAnswer:   "a",
			AudioContent:  float32Bytes([]float32{1}),
		}))
	}
	require.NoError(t, o.Close())

	assert.FileExists(t, filepath.Join(dir, "0.wav"))
	assert.FileExists(t, filepath.Join(dir, "1.wav"))
}
