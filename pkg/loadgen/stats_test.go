// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package loadgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_Empty(t *testing.T) {
	_, ok := Summarize(nil)
	assert.False(t, ok)
}

func TestSummarize_SingleSample(t *testing.T) {
	summary, ok := Summarize([]float64{42})
	require.True(t, ok)
	assert.Equal(t, 42.0, summary.Median)
	assert.Equal(t, 42.0, summary.P99)
	assert.Equal(t, 42.0, summary.Avg)
}

func TestSummarize_Percentiles(t *testing.T) {
	// 100 samples: 1..100. Index floor(p*n/100) selects value index+1.
	latencies := make([]float64, 100)
	for i := range latencies {
		latencies[i] = float64(100 - i)
	}

	summary, ok := Summarize(latencies)
	require.True(t, ok)

	assert.Equal(t, 51.0, summary.Median)
	assert.Equal(t, 91.0, summary.P90)
	assert.Equal(t, 96.0, summary.P95)
	assert.Equal(t, 100.0, summary.P99)
	assert.Equal(t, 50.5, summary.Avg)
}

func TestComponents_Stable(t *testing.T) {
	components := Components()
	require.Len(t, components, 6)
	assert.Contains(t, components, "tracing.server_latency.streaming_recognition")
	assert.Contains(t, components, "tracing.speech_squad.tts_latency")
}
