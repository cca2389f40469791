// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package loadgen

// Coordinator synchronizes the load-generator processes when the requested
// parallelism is partitioned across several of them. Rank 0 aggregates the
// cross-process totals for the final report.
type Coordinator interface {
	// Rank is this process's index, in [0, Size).
	Rank() int
	// Size is the number of cooperating processes.
	Size() int
	// Barrier blocks until every process has reached it.
	Barrier()
	// AllReduceSumInt returns the sum of value across all processes, on all
	// of them.
	AllReduceSumInt(value int) int
	// ReduceSumInt returns the sum of value across all processes on rank 0;
	// other ranks get their own value back.
	ReduceSumInt(value int) int
	// ReduceSumFloat64 is ReduceSumInt for float64 values.
	ReduceSumFloat64(value float64) float64
}

// SingleProcess is the coordinator for the common one-process run: every
// collective is the identity.
type SingleProcess struct{}

func (SingleProcess) Rank() int                              { return 0 }
func (SingleProcess) Size() int                              { return 1 }
func (SingleProcess) Barrier()                               {}
func (SingleProcess) AllReduceSumInt(value int) int          { return value }
func (SingleProcess) ReduceSumInt(value int) int             { return value }
func (SingleProcess) ReduceSumFloat64(value float64) float64 { return value }
