// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package loadgen

import (
	"context"
	"encoding/binary"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/rapidaai/speechsquad/pkg/audio"
	"github.com/rapidaai/speechsquad/pkg/commons"
	"github.com/rapidaai/speechsquad/pkg/dataset"
	"github.com/rapidaai/speechsquad/protos"
)

// ============================================================================
// Test helpers
// ============================================================================

func float32Bytes(samples []float32) []byte {
	out := make([]byte, len(samples)*4)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(s))
	}
	return out
}

type recvItem struct {
	resp *protos.SpeechSquadInferResponse
	err  error
}

// fakeStream is an in-memory SpeechSquadInfer client stream.
type fakeStream struct {
	mtx     sync.Mutex
	sent    []*protos.SpeechSquadInferRequest
	closed  bool
	sendErr error

	responses chan recvItem
}

func newFakeStream() *fakeStream {
	return &fakeStream{responses: make(chan recvItem, 16)}
}

func (f *fakeStream) Send(req *protos.SpeechSquadInferRequest) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, req)
	return nil
}

func (f *fakeStream) Recv() (*protos.SpeechSquadInferResponse, error) {
	item, ok := <-f.responses
	if !ok {
		return nil, io.EOF
	}
	return item.resp, item.err
}

func (f *fakeStream) CloseSend() error {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.closed = true
	return nil
}

func (f *fakeStream) Header() (metadata.MD, error) { return nil, nil }
func (f *fakeStream) Trailer() metadata.MD         { return nil }
func (f *fakeStream) Context() context.Context     { return context.Background() }
func (f *fakeStream) SendMsg(interface{}) error    { return nil }
func (f *fakeStream) RecvMsg(interface{}) error    { return nil }

func (f *fakeStream) sentRequests() []*protos.SpeechSquadInferRequest {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return append([]*protos.SpeechSquadInferRequest(nil), f.sent...)
}

func (f *fakeStream) writesClosed() bool {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return f.closed
}

func (f *fakeStream) setSendErr(err error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.sendErr = err
}

func testSquadDataset(t *testing.T) *dataset.SquadEvalDataset {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dev.json")
	content := `{"data":[{"paragraphs":[{"context":"Test passage.","qas":[{"question":"why","id":"q1"}]}]}]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ds := dataset.NewSquadEvalDataset()
	require.NoError(t, ds.LoadFromJSON(path))
	return ds
}

// testClip is 44 header bytes plus audioBytes of 16 kHz mono PCM.
func testClip(audioBytes int) *dataset.AudioData {
	return &dataset.AudioData{
		Data:       make([]byte, audio.HeaderSize+audioBytes),
		Filename:   "/tmp/q1.wav",
		QuestionID: "q1",
		Encoding:   protos.AudioEncoding_LINEAR_PCM,
		SampleRate: 16000,
		Channels:   1,
	}
}

func newTestTask(t *testing.T, stream *fakeStream, clip *dataset.AudioData, printResults bool, output *OutputFiles) *Task {
	t.Helper()
	factory := func(context.Context) (protos.SpeechSquadService_SpeechSquadInferClient, error) {
		return stream, nil
	}
	task, err := NewTask(clip, 7, factory, "en-US", 100, printResults,
		testSquadDataset(t), output, commons.NewNopLogger(), time.Now())
	require.NoError(t, err)
	return task
}

// ============================================================================
// Step pacing
// ============================================================================

func TestTask_StepSequence(t *testing.T) {
	stream := newFakeStream()
	// 8000 audio bytes at 16 kHz / 100 ms chunks: 3200-byte chunks.
	task := newTestTask(t, stream, testClip(8000), false, nil)

	// First step sends the configuration.
	require.NoError(t, task.Step())
	assert.Equal(t, TaskSending, task.State())

	sent := stream.sentRequests()
	require.Len(t, sent, 1)
	config := sent[0].GetSpeechSquadConfig()
	require.NotNil(t, config, "first request must carry the configuration")
	assert.Equal(t, "Test passage.", config.GetSquadContext())
	assert.Equal(t, int32(16000), config.GetInputAudioConfig().GetSampleRateHertz())
	assert.Equal(t, int32(22050), config.GetOutputAudioConfig().GetSampleRateHertz())
	assert.InDelta(t, 0.1, task.AudioProcessed(), 1e-9)

	// Second step sends the first chunk, header included.
	require.NoError(t, task.Step())
	sent = stream.sentRequests()
	require.Len(t, sent, 2)
	assert.Len(t, sent[1].GetAudioContent(), 3200+audio.HeaderSize)

	// Then plain chunks until the clip is drained.
	require.NoError(t, task.Step())
	require.NoError(t, task.Step())
	sent = stream.sentRequests()
	require.Len(t, sent, 4)
	assert.Len(t, sent[2].GetAudioContent(), 3200)
	assert.Len(t, sent[3].GetAudioContent(), 1600)

	assert.Equal(t, TaskSendingComplete, task.State())
	assert.True(t, stream.writesClosed(), "upload must be half-closed after the last chunk")
	assert.InDelta(t, 0.25, task.AudioProcessed(), 1e-9, "500 ms of 16 kHz audio")

	err := task.Step()
	assert.Error(t, err, "stepping past sending complete must fail")

	close(stream.responses)
	assert.NoError(t, task.WaitForCompletion())
}

func TestTask_StepScheduling(t *testing.T) {
	stream := newFakeStream()
	task := newTestTask(t, stream, testClip(8000), false, nil)

	before := task.NextTimePoint()
	require.NoError(t, task.Step())
	assert.Equal(t, 100*time.Millisecond, task.NextTimePoint().Sub(before),
		"each full chunk is scheduled one chunk duration later")

	close(stream.responses)
	_ = task.WaitForCompletion()
}

// ============================================================================
// Receiving
// ============================================================================

func fullTimings() map[string]float32 {
	timings := make(map[string]float32)
	for i, component := range Components() {
		timings[component] = float32(i + 1)
	}
	return timings
}

func TestTask_ReceiveFlow(t *testing.T) {
	stream := newFakeStream()
	output, _ := newTestOutputFiles(t)
	defer output.Close()

	task := newTestTask(t, stream, testClip(1600), true, output)
	require.NoError(t, task.Step())
	time.Sleep(time.Millisecond)

	stream.responses <- recvItem{resp: &protos.SpeechSquadInferResponse{
		Payload: &protos.SpeechSquadInferResponse_Metadata{Metadata: &protos.SpeechSquadInferResponseMetadata{
			SquadQuestion: "why?",
			SquadAnswer:   "because",
		}},
	}}
	first := float32Bytes([]float32{0.1, 0.2})
	second := float32Bytes([]float32{0.3})
	stream.responses <- recvItem{resp: &protos.SpeechSquadInferResponse{
		Payload: &protos.SpeechSquadInferResponse_AudioContent{AudioContent: first},
	}}
	stream.responses <- recvItem{resp: &protos.SpeechSquadInferResponse{
		Payload: &protos.SpeechSquadInferResponse_AudioContent{AudioContent: second},
	}}
	stream.responses <- recvItem{resp: &protos.SpeechSquadInferResponse{
		Payload: &protos.SpeechSquadInferResponse_Metadata{Metadata: &protos.SpeechSquadInferResponseMetadata{
			ComponentTiming: fullTimings(),
		}},
	}}
	close(stream.responses)

	require.NoError(t, task.WaitForCompletion())
	assert.Equal(t, TaskReceivingComplete, task.State())
	assert.NoError(t, task.TaskStatus())

	result := task.Result()
	assert.Equal(t, "why?", result.SquadQuestion)
	assert.Equal(t, "because", result.SquadAnswer)
	assert.Equal(t, append(append([]byte(nil), first...), second...), result.AudioContent)
	assert.True(t, result.ReceivedAudio())
	assert.Greater(t, result.ResponseLatency, 0.0)
	assert.Len(t, result.ResponseIntervals, 1, "every audio response after the first records an interval")
	assert.Len(t, result.ComponentTimings, len(Components()))
}

func TestTask_MissingComponentTiming(t *testing.T) {
	stream := newFakeStream()
	task := newTestTask(t, stream, testClip(1600), false, nil)
	require.NoError(t, task.Step())

	timings := fullTimings()
	delete(timings, "tracing.speech_squad.tts_latency")
	stream.responses <- recvItem{resp: &protos.SpeechSquadInferResponse{
		Payload: &protos.SpeechSquadInferResponse_Metadata{Metadata: &protos.SpeechSquadInferResponseMetadata{
			ComponentTiming: timings,
		}},
	}}
	close(stream.responses)

	require.NoError(t, task.WaitForCompletion())
	assert.Error(t, task.TaskStatus(), "a response missing a timing label is a task failure")
}

func TestTask_TerminalStateSurvivesLateStep(t *testing.T) {
	stream := newFakeStream()
	task := newTestTask(t, stream, testClip(8000), false, nil)
	require.NoError(t, task.Step())
	require.Equal(t, TaskSending, task.State())

	stream.responses <- recvItem{err: status.Error(codes.Unavailable, "stream torn down")}
	require.Error(t, task.WaitForCompletion())
	require.Equal(t, TaskReceivingComplete, task.State())

	// A step already in flight when the server terminated sees its sends
	// fail; the terminal state must survive it so the scheduler can still
	// hand the task to the reaper.
	stream.setSendErr(status.Error(codes.Unavailable, "stream torn down"))
	require.NoError(t, task.Step())
	assert.Equal(t, TaskReceivingComplete, task.State(),
		"a completed stream stays completed")
}

func TestTask_ServerError(t *testing.T) {
	stream := newFakeStream()
	task := newTestTask(t, stream, testClip(1600), false, nil)
	require.NoError(t, task.Step())

	stream.responses <- recvItem{err: status.Error(codes.Internal, "asr blew up")}

	err := task.WaitForCompletion()
	require.Error(t, err)
	assert.Equal(t, codes.Internal, status.Code(err))
}
