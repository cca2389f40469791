// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package loadgen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rapidaai/speechsquad/pkg/audio"
	"github.com/rapidaai/speechsquad/pkg/commons"
	"github.com/rapidaai/speechsquad/pkg/dataset"
	"github.com/rapidaai/speechsquad/protos"
)

// TaskState is the sending-side progress of one stream.
type TaskState int32

const (
	TaskStart TaskState = iota
	TaskSending
	TaskSendingComplete
	TaskReceivingComplete
)

func (s TaskState) String() string {
	switch s {
	case TaskStart:
		return "START"
	case TaskSending:
		return "SENDING"
	case TaskSendingComplete:
		return "SENDING_COMPLETE"
	case TaskReceivingComplete:
		return "RECEIVING_COMPLETE"
	default:
		return "UNKNOWN"
	}
}

// StreamFactory opens a new inference stream; the load generator balances
// each call over its channel pool.
type StreamFactory func(ctx context.Context) (protos.SpeechSquadService_SpeechSquadInferClient, error)

// Results accumulates everything one stream sent back.
type Results struct {
	mtx sync.Mutex

	SquadQuestion string
	SquadAnswer   string
	AudioContent  []byte

	// ResponseLatency is the gap between the last upload write and the first
	// response, in milliseconds.
	ResponseLatency float64
	// ResponseIntervals are the gaps between successive responses, in
	// milliseconds.
	ResponseIntervals []float64
	ComponentTimings  map[string]float64

	firstResponse bool
	lastResponse  time.Time
}

// ReceivedAudio reports whether at least one response arrived.
func (r *Results) ReceivedAudio() bool {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return !r.firstResponse
}

// Task paces one spoken question over an inference stream. The scheduler
// calls Step on its goroutine; a dedicated receiver goroutine drains
// responses until the server finishes the stream.
type Task struct {
	audioData       *dataset.AudioData
	corrID          uint32
	languageCode    string
	chunkDurationMs int
	printResults    bool
	squadDataset    *dataset.SquadEvalDataset
	output          *OutputFiles
	logger          commons.Logger

	stream protos.SpeechSquadService_SpeechSquadInferClient
	cancel context.CancelFunc

	state         atomic.Int32
	nextTimePoint time.Time
	sendTime      time.Time
	offset        int
	bytesToSend   int
	// audioProcessed is the seconds of audio this task has pushed.
	audioProcessed float64

	statusMtx  sync.Mutex
	taskStatus error
	grpcErr    error

	result *Results
	done   chan struct{}
}

// NewTask opens the stream and starts its receiver. startTime is the
// scheduled moment of the first Step.
func NewTask(audioData *dataset.AudioData, corrID uint32, factory StreamFactory,
	languageCode string, chunkDurationMs int, printResults bool,
	squadDataset *dataset.SquadEvalDataset, output *OutputFiles,
	logger commons.Logger, startTime time.Time) (*Task, error) {

	ctx, cancel := context.WithCancel(context.Background())
	stream, err := factory(ctx)
	if err != nil {
		cancel()
		return nil, err
	}

	t := &Task{
		audioData:       audioData,
		corrID:          corrID,
		languageCode:    languageCode,
		chunkDurationMs: chunkDurationMs,
		printResults:    printResults,
		squadDataset:    squadDataset,
		output:          output,
		logger:          logger,
		stream:          stream,
		cancel:          cancel,
		nextTimePoint:   startTime,
		result: &Results{
			ComponentTimings: make(map[string]float64),
			firstResponse:    true,
		},
		done: make(chan struct{}),
	}
	go t.receiveLoop()
	return t, nil
}

func (t *Task) ID() uint32                { return t.corrID }
func (t *Task) State() TaskState          { return TaskState(t.state.Load()) }
func (t *Task) NextTimePoint() time.Time  { return t.nextTimePoint }
func (t *Task) AudioProcessed() float64   { return t.audioProcessed }
func (t *Task) Result() *Results          { return t.result }
func (t *Task) AudioData() *dataset.AudioData { return t.audioData }

// TaskStatus reports application-level failures detected while receiving or
// writing results. Nil means clean.
func (t *Task) TaskStatus() error {
	t.statusMtx.Lock()
	defer t.statusMtx.Unlock()
	return t.taskStatus
}

func (t *Task) setTaskStatus(err error) {
	t.statusMtx.Lock()
	defer t.statusMtx.Unlock()
	if t.taskStatus == nil {
		t.taskStatus = err
	}
}

// Step performs the next paced send: the configuration on the first call,
// one audio chunk afterwards. It also computes the size and due time of the
// following chunk.
func (t *Task) Step() error {
	state := t.State()
	if state == TaskSendingComplete {
		return commons.NewStatus(commons.StatusInternal, "Cannot step further from sending complete")
	}

	// Overwritten on every step; at the first response this carries the
	// timestamp of the final upload write.
	now := time.Now()
	t.result.mtx.Lock()
	t.sendTime = now
	t.result.mtx.Unlock()

	t.logger.Debugf("executing step for task %d, state %s", t.corrID, state)

	if state == TaskStart {
		squadContext, err := t.squadDataset.QuestionContext(t.audioData.QuestionID)
		if err != nil {
			return err
		}
		config := &protos.SpeechSquadConfig{
			InputAudioConfig: &protos.AudioConfig{
				Encoding:          t.audioData.Encoding,
				SampleRateHertz:   int32(t.audioData.SampleRate),
				LanguageCode:      t.languageCode,
				AudioChannelCount: int32(t.audioData.Channels),
			},
			OutputAudioConfig: &protos.AudioConfig{
				Encoding:          protos.AudioEncoding_LINEAR_PCM,
				SampleRateHertz:   22050,
				LanguageCode:      "en-US",
				AudioChannelCount: 1,
			},
			SquadContext: squadContext,
		}
		if err := t.stream.Send(&protos.SpeechSquadInferRequest{
			Payload: &protos.SpeechSquadInferRequest_SpeechSquadConfig{SpeechSquadConfig: config},
		}); err != nil {
			t.logger.Debugf("config write failed for task %d: %v", t.corrID, err)
		}
		// RECEIVING_COMPLETE is terminal; a concurrent receiver win sticks.
		t.state.CompareAndSwap(int32(TaskStart), int32(TaskSending))
	} else {
		chunk := t.audioData.Data[t.offset : t.offset+t.bytesToSend]
		t.offset += t.bytesToSend
		if err := t.stream.Send(&protos.SpeechSquadInferRequest{
			Payload: &protos.SpeechSquadInferRequest_AudioContent{AudioContent: chunk},
		}); err != nil {
			if err := t.stream.CloseSend(); err != nil {
				t.logger.Debugf("failed to close writes for task %d: %v", t.corrID, err)
			}
			t.state.CompareAndSwap(int32(TaskSending), int32(TaskSendingComplete))
			t.logger.Debugf("write failed for task %d: %v", t.corrID, err)
		}
	}

	// Size and schedule the next chunk.
	chunkSize := t.audioData.SampleRate * t.chunkDurationMs / 1000 * 2
	headerSize := 0
	if t.offset == 0 {
		headerSize = audio.HeaderSize
	}
	t.bytesToSend = len(t.audioData.Data) - t.offset
	if chunkSize+headerSize < t.bytesToSend {
		t.bytesToSend = chunkSize + headerSize
	}

	if t.bytesToSend == 0 {
		if err := t.stream.CloseSend(); err != nil {
			t.logger.Debugf("failed to close writes for task %d: %v", t.corrID, err)
		}
		t.state.CompareAndSwap(int32(TaskSending), int32(TaskSendingComplete))
		t.logger.Debugf("sending complete for task %d", t.corrID)
	} else {
		waitMs := 1000 * float64(t.bytesToSend-headerSize) / float64(2*t.audioData.SampleRate)
		t.audioProcessed += waitMs / 1000
		t.nextTimePoint = t.nextTimePoint.Add(time.Duration(int(waitMs)) * time.Millisecond)
	}
	return nil
}

// WaitForCompletion blocks until the server finishes the stream and returns
// its terminal status.
func (t *Task) WaitForCompletion() error {
	<-t.done
	t.statusMtx.Lock()
	defer t.statusMtx.Unlock()
	return t.grpcErr
}

func (t *Task) receiveLoop() {
	defer t.cancel()
	for {
		resp, err := t.stream.Recv()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				t.statusMtx.Lock()
				t.grpcErr = err
				t.statusMtx.Unlock()
			}
			t.state.Store(int32(TaskReceivingComplete))
			t.finalize()
			close(t.done)
			return
		}
		t.receiveResponse(resp, time.Now())
	}
}

func (t *Task) receiveResponse(resp *protos.SpeechSquadInferResponse, now time.Time) {
	t.logger.Debugf("received response for task %d", t.corrID)
	t.result.mtx.Lock()
	defer t.result.mtx.Unlock()

	if meta := resp.GetMetadata(); meta != nil {
		if len(meta.GetComponentTiming()) == 0 {
			t.result.SquadQuestion = meta.GetSquadQuestion()
			t.result.SquadAnswer = meta.GetSquadAnswer()
			return
		}
		for _, component := range Components() {
			value, ok := meta.GetComponentTiming()[component]
			if !ok {
				t.setTaskStatus(commons.Statusf(commons.StatusInternal, "Unable to find %s in the response", component))
				continue
			}
			t.result.ComponentTimings[component] = float64(value)
		}
		return
	}

	if t.printResults {
		t.result.AudioContent = append(t.result.AudioContent, resp.GetAudioContent()...)
	}
	if t.result.firstResponse {
		t.result.ResponseLatency = float64(now.Sub(t.sendTime).Microseconds()) / 1000.0
		t.result.firstResponse = false
	} else {
		interval := float64(now.Sub(t.result.lastResponse).Microseconds()) / 1000.0
		t.result.ResponseIntervals = append(t.result.ResponseIntervals, interval)
	}
	t.result.lastResponse = now
}

func (t *Task) finalize() {
	t.statusMtx.Lock()
	failed := t.grpcErr != nil
	t.statusMtx.Unlock()

	if failed || !t.printResults {
		fmt.Print(".")
		return
	}
	if err := t.output.WriteResult(t.audioData.QuestionID, t.audioData.Filename, t.result); err != nil {
		t.setTaskStatus(err)
	}
}
