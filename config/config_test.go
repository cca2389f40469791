// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Server config
// ============================================================================

func TestGetServerConfig_Defaults(t *testing.T) {
	flags := ServerFlags()
	require.NoError(t, flags.Parse(nil))

	cfg, err := GetServerConfig(flags)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:1337", cfg.URI)
	assert.Equal(t, 10, cfg.Threads)
	assert.Equal(t, 100, cfg.ContextsPerThread)
	assert.Equal(t, 50, cfg.Channels)
	assert.Empty(t, cfg.ASRModelName)
}

func TestGetServerConfig_FlagOverrides(t *testing.T) {
	flags := ServerFlags()
	require.NoError(t, flags.Parse([]string{
		"--uri=127.0.0.1:9000",
		"--asr_service_url=asr:50051",
		"--threads=4",
		"--asr_model_name=citrinet",
	}))

	cfg, err := GetServerConfig(flags)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.URI)
	assert.Equal(t, "asr:50051", cfg.ASRServiceURL)
	assert.Equal(t, 4, cfg.Threads)
	assert.Equal(t, "citrinet", cfg.ASRModelName)
}

func TestGetServerConfig_RejectsInvalid(t *testing.T) {
	flags := ServerFlags()
	require.NoError(t, flags.Parse([]string{"--threads=0"}))

	_, err := GetServerConfig(flags)
	assert.Error(t, err, "zero worker threads must fail validation")
}

// ============================================================================
// Client config
// ============================================================================

func TestGetClientConfig_Defaults(t *testing.T) {
	flags := ClientFlags()
	require.NoError(t, flags.Parse(nil))

	cfg, err := GetClientConfig(flags)
	require.NoError(t, err)

	assert.Equal(t, "localhost:50051", cfg.SpeechSquadURI)
	assert.Equal(t, 1, cfg.NumIterations)
	assert.Equal(t, -1, cfg.ChannelNum)
	assert.Equal(t, int64(-1), cfg.OffsetDuration)
	assert.True(t, cfg.TrueConcurrency)
	assert.Equal(t, 800, cfg.ChunkDurationMs)
	assert.True(t, cfg.PrintResults)
	assert.Equal(t, "en-US", cfg.LanguageCode)
}

func TestResolveChannelNum(t *testing.T) {
	cfg := &ClientConfig{ChannelNum: -1}
	assert.Equal(t, 1, cfg.ResolveChannelNum(1), "low parallelism shares one channel")
	assert.Equal(t, 1, cfg.ResolveChannelNum(99))
	assert.Equal(t, 2, cfg.ResolveChannelNum(100))
	assert.Equal(t, 3, cfg.ResolveChannelNum(250))

	cfg.ChannelNum = 7
	assert.Equal(t, 7, cfg.ResolveChannelNum(250), "explicit channel count wins")
}

func TestResolveOffsetDuration(t *testing.T) {
	cfg := &ClientConfig{OffsetDuration: -1, ChunkDurationMs: 800}
	assert.Equal(t, 800*time.Millisecond, cfg.ResolveOffsetDuration(1))
	assert.Equal(t, 100*time.Millisecond, cfg.ResolveOffsetDuration(8),
		"derived offset spreads launches across one chunk period")

	cfg.OffsetDuration = 2500
	assert.Equal(t, 2500*time.Microsecond, cfg.ResolveOffsetDuration(8),
		"explicit offset is taken as microseconds")
}
