// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package squadapi

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/rapidaai/speechsquad/config"
	"github.com/rapidaai/speechsquad/pkg/clients/speech"
	"github.com/rapidaai/speechsquad/pkg/commons"
	"github.com/rapidaai/speechsquad/protos"
)

// ============================================================================
// Fake downstream services
// ============================================================================

type fakeASR struct {
	transcript string
	// noFinal finishes the stream without ever producing a final result.
	noFinal bool
	// noAlternatives produces a final result with an empty alternative list.
	noAlternatives bool

	mtx        sync.Mutex
	model      string
	sampleRate int32
	audioBytes int
}

func (f *fakeASR) StreamingRecognize(stream protos.SpeechRecognition_StreamingRecognizeServer) error {
	first, err := stream.Recv()
	if err != nil {
		return err
	}
	cfg := first.GetStreamingConfig()
	if cfg == nil {
		return status.Error(codes.InvalidArgument, "first message must be a streaming config")
	}
	f.mtx.Lock()
	f.model = cfg.GetConfig().GetModel()
	f.sampleRate = cfg.GetConfig().GetSampleRateHertz()
	f.mtx.Unlock()

	for {
		req, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		f.mtx.Lock()
		f.audioBytes += len(req.GetAudioContent())
		f.mtx.Unlock()
	}

	stream.SetTrailer(metadata.Pairs(
		"tracing.server_latency.streaming_recognition", "12.5",
		"tracing.queue_wait", "1.5",
	))
	if f.noFinal {
		return nil
	}
	result := &protos.StreamingRecognitionResult{IsFinal: true}
	if !f.noAlternatives {
		result.Alternatives = []*protos.SpeechRecognitionAlternative{
			{Transcript: f.transcript, Confidence: 0.92},
		}
	}
	return stream.Send(&protos.StreamingRecognizeResponse{
		Results: []*protos.StreamingRecognitionResult{result},
	})
}

type fakeNLP struct {
	answer string

	mtx     sync.Mutex
	query   string
	context string
	topN    int32
}

func (f *fakeNLP) NaturalQuery(ctx context.Context, req *protos.NaturalQueryRequest) (*protos.NaturalQueryResponse, error) {
	f.mtx.Lock()
	f.query = req.GetQuery()
	f.context = req.GetContext()
	f.topN = req.GetTopN()
	f.mtx.Unlock()

	_ = grpc.SetTrailer(ctx, metadata.Pairs("tracing.server_latency.natural_query", "3.25"))
	return &protos.NaturalQueryResponse{
		Results: []*protos.NaturalQueryResult{{Answer: f.answer, Score: 0.9}},
	}, nil
}

type fakeTTS struct {
	chunks [][]byte

	mtx   sync.Mutex
	text  string
	voice string
	rate  int32
}

func (f *fakeTTS) SynthesizeOnline(req *protos.SynthesizeSpeechRequest, stream protos.SpeechSynthesis_SynthesizeOnlineServer) error {
	f.mtx.Lock()
	f.text = req.GetText()
	f.voice = req.GetVoiceName()
	f.rate = req.GetSampleRateHz()
	f.mtx.Unlock()

	for _, chunk := range f.chunks {
		if err := stream.Send(&protos.SynthesizeSpeechResponse{Audio: chunk}); err != nil {
			return err
		}
	}
	stream.SetTrailer(metadata.Pairs(
		"tracing.server_latency.speech_synthesis", "7.75",
		"tracing.queue_wait", "9.5",
	))
	return nil
}

// ============================================================================
// Harness
// ============================================================================

func startGRPC(t *testing.T, register func(*grpc.Server)) string {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := grpc.NewServer()
	register(srv)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)
	return lis.Addr().String()
}

func startSquadService(t *testing.T, asr *fakeASR, nlp *fakeNLP, tts *fakeTTS) protos.SpeechSquadServiceClient {
	t.Helper()

	cfg := &config.ServerConfig{
		ASRServiceURL:     startGRPC(t, func(s *grpc.Server) { protos.RegisterSpeechRecognitionServer(s, asr) }),
		NLPServiceURL:     startGRPC(t, func(s *grpc.Server) { protos.RegisterLanguageUnderstandingServer(s, nlp) }),
		TTSServiceURL:     startGRPC(t, func(s *grpc.Server) { protos.RegisterSpeechSynthesisServer(s, tts) }),
		Threads:           1,
		ContextsPerThread: 4,
		Channels:          1,
		ASRModelName:      "quartznet",
	}
	logger := commons.NewNopLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	resources, err := speech.NewResources(ctx, cfg, logger)
	require.NoError(t, err)
	t.Cleanup(resources.Close)

	addr := startGRPC(t, func(s *grpc.Server) {
		protos.RegisterSpeechSquadServiceServer(s, NewService(cfg, resources, logger))
	})
	cc, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = cc.Close() })
	return protos.NewSpeechSquadServiceClient(cc)
}

func sendConfig(t *testing.T, stream protos.SpeechSquadService_SpeechSquadInferClient, squadContext string) {
	t.Helper()
	require.NoError(t, stream.Send(&protos.SpeechSquadInferRequest{
		Payload: &protos.SpeechSquadInferRequest_SpeechSquadConfig{
			SpeechSquadConfig: &protos.SpeechSquadConfig{
				InputAudioConfig: &protos.AudioConfig{
					Encoding:          protos.AudioEncoding_LINEAR_PCM,
					SampleRateHertz:   16000,
					LanguageCode:      "en-US",
					AudioChannelCount: 1,
				},
				OutputAudioConfig: &protos.AudioConfig{
					Encoding:          protos.AudioEncoding_LINEAR_PCM,
					SampleRateHertz:   22050,
					LanguageCode:      "en-US",
					AudioChannelCount: 1,
				},
				SquadContext: squadContext,
			},
		},
	}))
}

func sendAudio(t *testing.T, stream protos.SpeechSquadService_SpeechSquadInferClient, audio []byte) {
	t.Helper()
	require.NoError(t, stream.Send(&protos.SpeechSquadInferRequest{
		Payload: &protos.SpeechSquadInferRequest_AudioContent{AudioContent: audio},
	}))
}

func recvAll(stream protos.SpeechSquadService_SpeechSquadInferClient) ([]*protos.SpeechSquadInferResponse, error) {
	var responses []*protos.SpeechSquadInferResponse
	for {
		resp, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = nil
			}
			return responses, err
		}
		responses = append(responses, resp)
	}
}

// ============================================================================
// End to end
// ============================================================================

func TestSpeechSquadInfer_EndToEnd(t *testing.T) {
	asr := &fakeASR{transcript: "what is the largest rainforest"}
	nlp := &fakeNLP{answer: "The Amazon"}
	tts := &fakeTTS{chunks: [][]byte{{1, 2, 3, 4}, {5, 6}}}
	client := startSquadService(t, asr, nlp, tts)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	stream, err := client.SpeechSquadInfer(ctx)
	require.NoError(t, err)

	sendConfig(t, stream, "The Amazon is the largest rainforest.")
	sendAudio(t, stream, make([]byte, 3200))
	sendAudio(t, stream, make([]byte, 1600))
	require.NoError(t, stream.CloseSend())

	responses, err := recvAll(stream)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(responses), 3, "metadata, audio and timings are expected")

	// Question and answer arrive before any audio.
	meta := responses[0].GetMetadata()
	require.NotNil(t, meta)
	assert.Equal(t, "what is the largest rainforest?", meta.GetSquadQuestion())
	assert.Equal(t, "The Amazon", meta.GetSquadAnswer())

	var audioBack []byte
	for _, resp := range responses[1 : len(responses)-1] {
		audioBack = append(audioBack, resp.GetAudioContent()...)
	}
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, audioBack)

	// The stream closes with the component timing map.
	timings := responses[len(responses)-1].GetMetadata().GetComponentTiming()
	require.NotNil(t, timings)
	assert.InDelta(t, 12.5, timings["tracing.server_latency.streaming_recognition"], 1e-6)
	assert.InDelta(t, 3.25, timings["tracing.server_latency.natural_query"], 1e-6)
	assert.InDelta(t, 7.75, timings["tracing.server_latency.speech_synthesis"], 1e-6)
	assert.InDelta(t, 9.5, timings["tracing.queue_wait"], 1e-6,
		"a label reported by two phases resolves to the later phase's value")
	assert.Contains(t, timings, "tracing.speech_squad.asr_latency")
	assert.Contains(t, timings, "tracing.speech_squad.nlp_latency")
	assert.Contains(t, timings, "tracing.speech_squad.tts_latency")

	// Downstream services saw the relayed parameters.
	asr.mtx.Lock()
	assert.Equal(t, "quartznet", asr.model)
	assert.Equal(t, int32(16000), asr.sampleRate)
	assert.Equal(t, 4800, asr.audioBytes)
	asr.mtx.Unlock()

	nlp.mtx.Lock()
	assert.Equal(t, "what is the largest rainforest?", nlp.query)
	assert.Equal(t, "The Amazon is the largest rainforest.", nlp.context)
	assert.Equal(t, int32(1), nlp.topN)
	nlp.mtx.Unlock()

	tts.mtx.Lock()
	assert.Equal(t, "The Amazon", tts.text)
	assert.Equal(t, "ljspeech", tts.voice)
	assert.Equal(t, int32(22050), tts.rate)
	tts.mtx.Unlock()
}

func TestSpeechSquadInfer_EmptyAnswerSynthesizesFallback(t *testing.T) {
	asr := &fakeASR{transcript: "anything at all"}
	nlp := &fakeNLP{answer: ""}
	tts := &fakeTTS{chunks: [][]byte{{9}}}
	client := startSquadService(t, asr, nlp, tts)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	stream, err := client.SpeechSquadInfer(ctx)
	require.NoError(t, err)

	sendConfig(t, stream, "context")
	sendAudio(t, stream, make([]byte, 320))
	require.NoError(t, stream.CloseSend())

	responses, err := recvAll(stream)
	require.NoError(t, err)
	require.NotEmpty(t, responses)
	assert.Equal(t, "", responses[0].GetMetadata().GetSquadAnswer())

	tts.mtx.Lock()
	assert.Equal(t, "No answer", tts.text, "an unanswerable question is voiced as a fallback")
	tts.mtx.Unlock()
}

func TestSpeechSquadInfer_EmptySynthesisChunksAreSkipped(t *testing.T) {
	asr := &fakeASR{transcript: "a question"}
	nlp := &fakeNLP{answer: "an answer"}
	tts := &fakeTTS{chunks: [][]byte{{}, {7, 8}}}
	client := startSquadService(t, asr, nlp, tts)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	stream, err := client.SpeechSquadInfer(ctx)
	require.NoError(t, err)

	sendConfig(t, stream, "context")
	sendAudio(t, stream, make([]byte, 320))
	require.NoError(t, stream.CloseSend())

	responses, err := recvAll(stream)
	require.NoError(t, err)

	var audioResponses int
	for _, resp := range responses {
		if len(resp.GetAudioContent()) > 0 {
			audioResponses++
		}
	}
	assert.Equal(t, 1, audioResponses, "empty synthesis chunks are dropped, not relayed")
}

// ============================================================================
// Protocol and downstream failures
// ============================================================================

func TestSpeechSquadInfer_AudioBeforeConfig(t *testing.T) {
	client := startSquadService(t,
		&fakeASR{transcript: "x"}, &fakeNLP{answer: "y"}, &fakeTTS{chunks: [][]byte{{1}}})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	stream, err := client.SpeechSquadInfer(ctx)
	require.NoError(t, err)

	sendAudio(t, stream, make([]byte, 320))

	_, err = recvAll(stream)
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestSpeechSquadInfer_DoubleConfig(t *testing.T) {
	client := startSquadService(t,
		&fakeASR{transcript: "x"}, &fakeNLP{answer: "y"}, &fakeTTS{chunks: [][]byte{{1}}})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	stream, err := client.SpeechSquadInfer(ctx)
	require.NoError(t, err)

	sendConfig(t, stream, "context")
	sendConfig(t, stream, "context")

	_, err = recvAll(stream)
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestSpeechSquadInfer_NoFinalTranscript(t *testing.T) {
	client := startSquadService(t,
		&fakeASR{noFinal: true}, &fakeNLP{answer: "y"}, &fakeTTS{chunks: [][]byte{{1}}})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	stream, err := client.SpeechSquadInfer(ctx)
	require.NoError(t, err)

	sendConfig(t, stream, "context")
	sendAudio(t, stream, make([]byte, 320))
	require.NoError(t, stream.CloseSend())

	_, err = recvAll(stream)
	require.Error(t, err)
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestSpeechSquadInfer_FinalResultWithoutAlternatives(t *testing.T) {
	client := startSquadService(t,
		&fakeASR{noAlternatives: true}, &fakeNLP{answer: "y"}, &fakeTTS{chunks: [][]byte{{1}}})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	stream, err := client.SpeechSquadInfer(ctx)
	require.NoError(t, err)

	sendConfig(t, stream, "context")
	sendAudio(t, stream, make([]byte, 320))
	require.NoError(t, stream.CloseSend())

	_, err = recvAll(stream)
	require.Error(t, err)
	assert.Equal(t, codes.Internal, status.Code(err))
}
