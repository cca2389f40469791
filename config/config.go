// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package config defines the server and client configuration surfaces.
// Flags are declared on pflag sets, bound through viper (so every flag can
// also be supplied as an environment variable) and validated with
// go-playground/validator before use.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ServerConfig configures the speech squad server.
type ServerConfig struct {
	URI               string `mapstructure:"uri" validate:"required"`
	ASRServiceURL     string `mapstructure:"asr_service_url" validate:"required"`
	NLPServiceURL     string `mapstructure:"nlp_service_url" validate:"required"`
	TTSServiceURL     string `mapstructure:"tts_service_url" validate:"required"`
	Threads           int    `mapstructure:"threads" validate:"gt=0"`
	ContextsPerThread int    `mapstructure:"contexts_per_thread" validate:"gt=0"`
	Channels          int    `mapstructure:"channels" validate:"gt=0"`
	ASRModelName      string `mapstructure:"asr_model_name"`
	LogLevel          string `mapstructure:"log_level"`
}

// ClientConfig configures the load-generating client.
type ClientConfig struct {
	SquadQuestionsJSON string `mapstructure:"squad_questions_json" validate:"required"`
	SquadDatasetJSON   string `mapstructure:"squad_dataset_json" validate:"required"`
	SpeechSquadURI     string `mapstructure:"speech_squad_uri" validate:"required"`

	NumIterations       int   `mapstructure:"num_iterations" validate:"gt=0"`
	ChannelNum          int   `mapstructure:"channel_num"`
	OffsetDuration      int64 `mapstructure:"offset_duration"`
	TrueConcurrency     bool  `mapstructure:"true_concurrency"`
	NumParallelRequests int   `mapstructure:"num_parallel_requests" validate:"gt=0"`
	ChunkDurationMs     int   `mapstructure:"chunk_duration_ms" validate:"gt=0"`
	ExecutorCount       int   `mapstructure:"executor_count" validate:"gte=0"`

	PrintResults           bool   `mapstructure:"print_results"`
	OutputRootFolder       string `mapstructure:"output_root_folder"`
	QuestionOutputFilename string `mapstructure:"question_output_filename"`
	AnswerOutputFilename   string `mapstructure:"answer_output_filename"`
	OutputWaveFilename     string `mapstructure:"output_wave_filename"`

	LanguageCode string `mapstructure:"language_code"`
	LogLevel     string `mapstructure:"log_level"`
}

// ServerFlags declares the server flag set and its defaults.
func ServerFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("speechsquad-server", pflag.ExitOnError)
	flags.String("uri", "0.0.0.0:1337", "address the squad service listens on")
	flags.String("asr_service_url", "asr.speech.internal:80", "url for the streaming ASR endpoint")
	flags.String("nlp_service_url", "nlp.speech.internal:80", "url for the natural query endpoint")
	flags.String("tts_service_url", "tts.speech.internal:80", "url for the speech synthesis endpoint")
	flags.Int("threads", 10, "number of stream worker threads")
	flags.Int("contexts_per_thread", 100, "maximum concurrent contexts allowed per worker thread")
	flags.Int("channels", 50, "number of persistent channels per downstream service")
	flags.String("asr_model_name", "", "model name forwarded to the ASR service")
	flags.String("log_level", "info", "minimum log level")
	return flags
}

// ClientFlags declares the client flag set and its defaults.
func ClientFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("speechsquad-client", pflag.ExitOnError)
	flags.String("squad_questions_json", "questions.json", "json manifest mapping audio files to question ids")
	flags.String("squad_dataset_json", "dev-v2.0.json", "json file with the SQuAD dataset")
	flags.String("speech_squad_uri", "localhost:50051", "uri of the speech squad server")
	flags.Int("num_iterations", 1, "number of times to loop over the audio files")
	flags.Int("channel_num", -1, "number of grpc channels to create (-1 derives from parallelism)")
	flags.Int64("offset_duration", -1, "minimum offset in microseconds between successive stream launches (-1 derives from chunk duration)")
	flags.Bool("true_concurrency", true, "hand tasks to the reaper only once fully complete")
	flags.Int("num_parallel_requests", 1, "number of parallel streams to keep in flight")
	flags.Int("chunk_duration_ms", 800, "audio chunk duration in milliseconds")
	flags.Int("executor_count", 0, "stream I/O goroutines (0 means hardware concurrency)")
	flags.Bool("print_results", true, "write result artifacts and print per-stream output")
	flags.String("output_root_folder", "./final_results", "folder for returned audio and result json files")
	flags.String("question_output_filename", "squad_question.json", "questions json filename inside the output folder")
	flags.String("answer_output_filename", "squad_answers.json", "answers json filename inside the output folder")
	flags.String("output_wave_filename", "squad_output_wave.json", "tts output and latency json filename inside the output folder")
	flags.String("language_code", "en-US", "language code sent with every stream configuration")
	flags.String("log_level", "info", "minimum log level")
	return flags
}

func newViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.NewWithOptions(viper.KeyDelimiter("__"))
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}
	v.AutomaticEnv()
	return v, nil
}

// GetServerConfig materialises and validates the server configuration from a
// parsed flag set.
func GetServerConfig(flags *pflag.FlagSet) (*ServerConfig, error) {
	v, err := newViper(flags)
	if err != nil {
		return nil, err
	}
	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling server config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validating server config: %w", err)
	}
	return &cfg, nil
}

// GetClientConfig materialises and validates the client configuration from a
// parsed flag set.
func GetClientConfig(flags *pflag.FlagSet) (*ClientConfig, error) {
	v, err := newViper(flags)
	if err != nil {
		return nil, err
	}
	var cfg ClientConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling client config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validating client config: %w", err)
	}
	return &cfg, nil
}

// ResolveChannelNum returns the channel count, deriving ceil(P/100)+1 when
// the flag was left at -1.
func (c *ClientConfig) ResolveChannelNum(parallelRequests int) int {
	if c.ChannelNum == -1 {
		return parallelRequests/100 + 1
	}
	return c.ChannelNum
}

// ResolveOffsetDuration returns the stagger between stream launches,
// spreading the parallel streams uniformly across one chunk period when the
// flag was left at -1.
func (c *ClientConfig) ResolveOffsetDuration(parallelRequests int) time.Duration {
	if c.OffsetDuration == -1 {
		return time.Duration(c.ChunkDurationMs*1000/parallelRequests) * time.Microsecond
	}
	return time.Duration(c.OffsetDuration) * time.Microsecond
}
