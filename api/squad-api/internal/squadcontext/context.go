// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package squadcontext drives one inference stream: it validates the client
// protocol, relays audio into streaming recognition, turns the transcript
// into a natural query, synthesizes the answer and assembles the component
// timing map from its own clocks plus downstream trailing metadata.
package squadcontext

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/rapidaai/speechsquad/pkg/clients/speech"
	"github.com/rapidaai/speechsquad/pkg/commons"
	"github.com/rapidaai/speechsquad/protos"
)

// state tracks where the client is in the upload protocol.
type state int

const (
	stateUninitialized state = iota
	stateInitialized
	stateReceivingAudio
	stateAudioUploadComplete
)

// Component timing labels measured by this service. Downstream services
// contribute their own "tracing."-prefixed labels through trailing metadata.
const (
	timingASRLatency = "tracing.speech_squad.asr_latency"
	timingNLPLatency = "tracing.speech_squad.nlp_latency"
	timingTTSLatency = "tracing.speech_squad.tts_latency"
)

const eventBuffer = 32

// clientEvent is one message (or terminal error) read off the squad stream.
type clientEvent struct {
	req *protos.SpeechSquadInferRequest
	err error
}

// Context serves one SpeechSquadInfer stream at a time. Instances are pooled
// by the service and fully reset at the start of every Serve.
type Context struct {
	logger    commons.Logger
	resources *speech.Resources

	// per-stream state
	streamID string
	ctx      context.Context
	stream   protos.SpeechSquadService_SpeechSquadInferServer
	events chan speech.Event
	client chan clientEvent
	asr    *speech.ASRStream

	state        state
	squadContext string
	ttsConfig    *protos.AudioConfig
	question     string
	answer       string
	timings      map[string][]float32
	firstTTS     bool
	debugTTS     bool
	finalErr     error

	asrWritesDone  time.Time
	asrOnComplete  time.Time
	nlpStart       time.Time
	nlpFinish      time.Time
	ttsStart       time.Time
	ttsFirstPacket time.Time
}

func New(resources *speech.Resources, logger commons.Logger) *Context {
	return &Context{
		logger:    logger,
		resources: resources,
	}
}

func (c *Context) reset() {
	c.streamID = uuid.NewString()
	c.ctx = nil
	c.stream = nil
	c.events = nil
	c.client = nil
	c.asr = nil
	c.state = stateUninitialized
	c.squadContext = ""
	c.ttsConfig = nil
	c.question = ""
	c.answer = ""
	c.timings = make(map[string][]float32)
	c.firstTTS = true
	c.debugTTS = false
	c.finalErr = nil
	c.asrWritesDone = time.Time{}
	c.asrOnComplete = time.Time{}
	c.nlpStart = time.Time{}
	c.nlpFinish = time.Time{}
	c.ttsStart = time.Time{}
	c.ttsFirstPacket = time.Time{}
}

// Serve runs the stream to completion. All protocol handling happens on this
// goroutine; the client reader and the downstream adapters only post events.
func (c *Context) Serve(stream protos.SpeechSquadService_SpeechSquadInferServer) error {
	c.reset()

	ctx, cancel := context.WithCancel(stream.Context())
	defer cancel()

	c.ctx = ctx
	c.stream = stream
	c.events = make(chan speech.Event, eventBuffer)
	c.client = make(chan clientEvent, 1)

	// The recognition stream is opened up front so audio can be relayed the
	// moment the configuration message arrives.
	asr, err := c.resources.NewASRStream(ctx, c.events)
	if err != nil {
		c.logger.Errorw("failed to open recognition stream", "stream", c.streamID, "error", err)
		return status.Errorf(codes.Unavailable, "speech recognition unavailable: %v", err)
	}
	c.asr = asr
	c.state = stateInitialized

	go c.readClient(ctx, stream)

	for {
		select {
		case <-ctx.Done():
			return status.FromContextError(ctx.Err()).Err()
		case ev := <-c.client:
			if done, err := c.handleClient(ev); done {
				return err
			}
		case ev := <-c.events:
			if done, err := c.handleEvent(ev); done {
				return err
			}
		}
	}
}

func (c *Context) readClient(ctx context.Context, stream protos.SpeechSquadService_SpeechSquadInferServer) {
	for {
		req, err := stream.Recv()
		select {
		case c.client <- clientEvent{req: req, err: err}:
		case <-ctx.Done():
			return
		}
		if err != nil {
			return
		}
	}
}

func (c *Context) handleClient(ev clientEvent) (bool, error) {
	switch {
	case ev.err == nil:
		c.handleRequest(ev.req)
	case errors.Is(ev.err, io.EOF):
		c.handleUploadComplete()
	default:
		// The client tore the stream down mid-flight; the deferred cancel
		// aborts whichever downstream calls are still running.
		c.logger.Warnw("squad stream receive failed", "error", ev.err)
		return true, ev.err
	}
	return false, nil
}

func (c *Context) handleRequest(req *protos.SpeechSquadInferRequest) {
	if cfg := req.GetSpeechSquadConfig(); cfg != nil {
		if c.state != stateInitialized {
			c.protocolError("received a configuration message on an already configured stream")
			return
		}
		if cfg.GetInputAudioConfig().GetEncoding() != protos.AudioEncoding_LINEAR_PCM {
			c.protocolError("input audio must be LINEAR_PCM")
			return
		}
		c.state = stateReceivingAudio
		c.squadContext = cfg.GetSquadContext()
		c.ttsConfig = cfg.GetOutputAudioConfig()

		input := cfg.GetInputAudioConfig()
		c.logger.Debugw("squad stream initialized",
			"stream", c.streamID,
			"sample_rate", input.GetSampleRateHertz(),
			"channels", input.GetAudioChannelCount(),
			"language", input.GetLanguageCode())

		streamingConfig := &protos.StreamingRecognizeRequest{
			StreamingRequest: &protos.StreamingRecognizeRequest_StreamingConfig{
				StreamingConfig: &protos.StreamingRecognitionConfig{
					InterimResults: false,
					Config: &protos.RecognitionConfig{
						Encoding:                            protos.AudioEncoding_LINEAR_PCM,
						SampleRateHertz:                     input.GetSampleRateHertz(),
						LanguageCode:                        input.GetLanguageCode(),
						AudioChannelCount:                   input.GetAudioChannelCount(),
						MaxAlternatives:                     1,
						EnableWordTimeOffsets:               false,
						EnableAutomaticPunctuation:          false,
						EnableSeparateRecognitionPerChannel: false,
						Model:                               c.resources.ASRModelName(),
					},
				},
			},
		}
		if err := c.asr.Write(streamingConfig); err != nil {
			c.logger.Warnw("failed to write recognition config", "error", err)
		}
		return
	}

	if c.state != stateReceivingAudio {
		c.protocolError("received audio before a configuration message")
		return
	}
	audio := req.GetAudioContent()
	c.logger.Debugf("forwarding %d bytes of audio to recognition", len(audio))
	if err := c.asr.Write(&protos.StreamingRecognizeRequest{
		StreamingRequest: &protos.StreamingRecognizeRequest_AudioContent{AudioContent: audio},
	}); err != nil {
		c.logger.Warnw("failed to forward audio to recognition", "error", err)
	}
}

func (c *Context) handleUploadComplete() {
	if c.state != stateReceivingAudio {
		c.protocolError("client closed the upload before sending a configuration message")
		return
	}
	c.state = stateAudioUploadComplete
	c.asrWritesDone = time.Now()
	if err := c.asr.CloseWrites(); err != nil {
		c.logger.Warnw("failed to close recognition upload", "error", err)
	}
}

// protocolError cancels the recognition stream; the terminal error surfaces
// to the client when the recognition finished event drains through.
func (c *Context) protocolError(msg string) {
	c.logger.Errorf("squad stream %s protocol error: %s", c.streamID, msg)
	if c.finalErr == nil {
		c.finalErr = status.Error(codes.InvalidArgument, msg)
	}
	c.asr.Cancel()
}

func (c *Context) handleEvent(ev speech.Event) (bool, error) {
	switch ev := ev.(type) {
	case speech.ASRResponseEvent:
		c.handleASRResponse(ev.Response)
		return false, nil
	case speech.ASRFinishedEvent:
		return c.handleASRFinished(ev)
	case speech.NLPFinishedEvent:
		return c.handleNLPFinished(ev)
	case speech.TTSResponseEvent:
		return c.handleTTSResponse(ev.Audio)
	case speech.TTSFinishedEvent:
		return c.handleTTSFinished(ev)
	default:
		c.logger.Errorf("unexpected downstream event %T", ev)
		return false, nil
	}
}

func (c *Context) handleASRResponse(resp *protos.StreamingRecognizeResponse) {
	results := resp.GetResults()
	if len(results) == 0 {
		c.logger.Debugf("recognition response carried no results")
		return
	}
	result := results[0]
	if !result.GetIsFinal() {
		c.logger.Debugf("ignoring non-final recognition result")
		return
	}
	c.asrOnComplete = time.Now()

	if len(result.GetAlternatives()) == 0 {
		c.logger.Errorf("final recognition result carried no transcript")
		if c.finalErr == nil {
			c.finalErr = status.Error(codes.Internal, "recognition returned a final result without a transcript")
		}
		c.asr.Cancel()
		return
	}
	top := result.GetAlternatives()[0]
	c.question = top.GetTranscript() + "?"
	c.logger.Debugw("recognition result", "question", c.question, "confidence", top.GetConfidence())
}

func (c *Context) handleASRFinished(ev speech.ASRFinishedEvent) (bool, error) {
	if ev.Err != nil || c.finalErr != nil {
		if c.finalErr == nil {
			c.finalErr = status.Errorf(codes.Internal, "speech recognition failed: %v", ev.Err)
		}
		c.logger.Errorw("recognition stream failed, cancelling squad stream", "error", c.finalErr)
		return true, c.finalErr
	}
	if c.question == "" {
		c.logger.Errorf("recognition finished without a final transcript")
		return true, status.Error(codes.Internal, "recognition produced no final transcript")
	}

	c.extractTimings(ev.Trailer)

	c.logger.Debugf("issuing natural query: %s", c.question)
	c.nlpStart = time.Now()
	c.resources.NaturalQuery(c.ctx, &protos.NaturalQueryRequest{
		Query:   c.question,
		TopN:    1,
		Context: c.squadContext,
	}, c.events)
	return false, nil
}

func (c *Context) handleNLPFinished(ev speech.NLPFinishedEvent) (bool, error) {
	if ev.Err != nil {
		c.logger.Errorw("natural query failed, cancelling squad stream", "error", ev.Err)
		return true, status.Errorf(codes.Internal, "natural query failed: %v", ev.Err)
	}
	results := ev.Response.GetResults()
	if len(results) == 0 {
		c.logger.Errorf("natural query returned no results")
		return true, status.Error(codes.Internal, "natural query returned no results")
	}
	c.nlpFinish = time.Now()
	c.extractTimings(ev.Trailer)

	top := results[0]
	c.answer = top.GetAnswer()
	c.logger.Debugw("natural query complete", "question", c.question, "answer", c.answer, "score", top.GetScore())

	// Relay question and answer before any audio flows back.
	if err := c.stream.Send(&protos.SpeechSquadInferResponse{
		Payload: &protos.SpeechSquadInferResponse_Metadata{
			Metadata: &protos.SpeechSquadInferResponseMetadata{
				SquadQuestion: c.question,
				SquadAnswer:   c.answer,
			},
		},
	}); err != nil {
		c.logger.Warnw("failed to send inference metadata", "error", err)
		return true, err
	}

	text := c.answer
	if text == "" {
		text = "No answer"
	}
	c.firstTTS = true
	c.ttsStart = time.Now()
	c.resources.Synthesize(c.ctx, &protos.SynthesizeSpeechRequest{
		Text:         text,
		LanguageCode: c.ttsConfig.GetLanguageCode(),
		Encoding:     protos.AudioEncoding_LINEAR_PCM,
		SampleRateHz: 22050,
		VoiceName:    "ljspeech",
	}, c.events)
	return false, nil
}

func (c *Context) handleTTSResponse(audio []byte) (bool, error) {
	if c.firstTTS {
		c.ttsFirstPacket = time.Now()
		c.firstTTS = false
	}
	if len(audio) == 0 {
		c.logger.Warnf("received 0 bytes of synthesized audio")
		c.debugTTS = true
		return false, nil
	}
	if err := c.stream.Send(&protos.SpeechSquadInferResponse{
		Payload: &protos.SpeechSquadInferResponse_AudioContent{AudioContent: audio},
	}); err != nil {
		c.logger.Warnw("failed to relay synthesized audio", "error", err)
		return true, err
	}
	return false, nil
}

func (c *Context) handleTTSFinished(ev speech.TTSFinishedEvent) (bool, error) {
	if ev.Err != nil {
		c.logger.Errorw("speech synthesis failed, cancelling squad stream", "error", ev.Err)
		return true, status.Errorf(codes.Internal, "speech synthesis failed: %v", ev.Err)
	}
	if c.debugTTS {
		c.logger.Warnf("synthesis stream finished after producing empty audio chunks")
	}
	c.extractTimings(ev.Trailer)

	// A label reported by more than one downstream phase resolves to the
	// most recently extracted value.
	timings := make(map[string]float32, len(c.timings)+3)
	for k, values := range c.timings {
		timings[k] = values[len(values)-1]
	}
	timings[timingASRLatency] = durationMs(c.asrWritesDone, c.asrOnComplete)
	timings[timingNLPLatency] = durationMs(c.nlpStart, c.nlpFinish)
	timings[timingTTSLatency] = durationMs(c.ttsStart, c.ttsFirstPacket)

	if err := c.stream.Send(&protos.SpeechSquadInferResponse{
		Payload: &protos.SpeechSquadInferResponse_Metadata{
			Metadata: &protos.SpeechSquadInferResponseMetadata{
				ComponentTiming: timings,
			},
		},
	}); err != nil {
		c.logger.Warnw("failed to send component timings", "error", err)
		return true, err
	}
	return true, nil
}

// extractTimings appends "tracing."-prefixed trailing metadata to the
// component timing multimap. Values are millisecond floats; a key may be
// reported by several downstream phases.
func (c *Context) extractTimings(md metadata.MD) {
	for key, values := range md {
		if !strings.HasPrefix(key, "tracing.") || len(values) == 0 {
			continue
		}
		parsed, err := strconv.ParseFloat(values[0], 32)
		if err != nil {
			c.logger.Debugf("skipping unparseable timing %s=%q", key, values[0])
			continue
		}
		c.timings[key] = append(c.timings[key], float32(parsed))
	}
}

func durationMs(start, end time.Time) float32 {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	return float32(end.Sub(start).Microseconds()) / 1000.0
}
