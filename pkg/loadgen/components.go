// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package loadgen paces spoken questions against the squad service and
// measures the pipeline's latency components under load.
package loadgen

// ClientLatencyLabel names the client-observed first-response latency in
// the aggregated report.
const ClientLatencyLabel = "Client Latency"

// Components lists the timing labels every successful response must carry:
// the three downstream server latencies plus the three squad-measured ones.
func Components() []string {
	return []string{
		"tracing.server_latency.natural_query",
		"tracing.server_latency.speech_synthesis",
		"tracing.server_latency.streaming_recognition",
		"tracing.speech_squad.asr_latency",
		"tracing.speech_squad.nlp_latency",
		"tracing.speech_squad.tts_latency",
	}
}
