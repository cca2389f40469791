// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package loadgen

import "sync"

// SyncQueue is an unbounded FIFO handing completed tasks from the scheduler
// to the reaper. Get blocks until an item is available.
type SyncQueue[T any] struct {
	mtx   sync.Mutex
	cond  *sync.Cond
	items []T
}

func NewSyncQueue[T any]() *SyncQueue[T] {
	q := &SyncQueue[T]{}
	q.cond = sync.NewCond(&q.mtx)
	return q
}

func (q *SyncQueue[T]) Put(item T) {
	q.mtx.Lock()
	defer q.mtx.Unlock()
	q.items = append(q.items, item)
	q.cond.Signal()
}

func (q *SyncQueue[T]) Get() T {
	q.mtx.Lock()
	defer q.mtx.Unlock()
	for len(q.items) == 0 {
		q.cond.Wait()
	}
	item := q.items[0]
	q.items = q.items[1:]
	return item
}

func (q *SyncQueue[T]) Empty() bool {
	q.mtx.Lock()
	defer q.mtx.Unlock()
	return len(q.items) == 0
}
