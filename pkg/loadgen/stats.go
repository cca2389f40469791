// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package loadgen

import (
	"fmt"
	"math"
	"slices"
)

// LatencySummary holds the percentile digest of one latency series.
type LatencySummary struct {
	Median float64
	P90    float64
	P95    float64
	P99    float64
	Avg    float64
}

// Summarize computes the percentile digest of latencies. Returns false when
// the series is empty.
func Summarize(latencies []float64) (LatencySummary, bool) {
	if len(latencies) == 0 {
		return LatencySummary{}, false
	}
	sorted := slices.Clone(latencies)
	slices.Sort(sorted)

	n := float64(len(sorted))
	index := func(percentile float64) int {
		return int(math.Floor(percentile * n / 100.0))
	}

	var sum float64
	for _, l := range sorted {
		sum += l
	}

	return LatencySummary{
		Median: sorted[index(50)],
		P90:    sorted[index(90)],
		P95:    sorted[index(95)],
		P99:    sorted[index(99)],
		Avg:    sum / n,
	}, true
}

func (c *Client) printLatencies(latencies []float64, name string) {
	fmt.Println("-----------------------------------------------------------")
	summary, ok := Summarize(latencies)
	if !ok {
		return
	}
	fmt.Printf(" %s (ms):\n", name)
	fmt.Printf("\t\tMedian\t\t90th\t\t95th\t\t99th\t\tAvg\n")
	fmt.Printf("\t\t%.5g\t\t%.5g\t\t%.5g\t\t%.5g\t\t%.5g\n",
		summary.Median, summary.P90, summary.P95, summary.P99, summary.Avg)
	c.averageLatency[name] = summary.Avg
}

// printStats reports the per-process percentile tables: every component
// label followed by the client-observed latency.
func (c *Client) printStats() {
	for _, component := range Components() {
		c.printLatencies(c.componentTimings[component], component)
	}
	c.printLatencies(c.responseLatencies, ClientLatencyLabel)
}
