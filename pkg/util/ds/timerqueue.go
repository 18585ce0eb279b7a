// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package ds

import (
	"sync"

	"github.com/emirpasic/gods/trees/binaryheap"
)

// TimerQueue orders entries by a due tick. Entries with the same due tick pop in
// insertion order.

type TimerQueue[T any] struct {
	lock    *sync.Mutex
	dueHeap *binaryheap.Heap // heap of dueEntry (sorted by due, then seq)
	seq     uint64
}

type dueEntry[T any] struct {
	Due int64
	Seq uint64
	Val T
}

func dueComparator[T any](aArg, bArg any) int {
	a := aArg.(dueEntry[T])
	b := bArg.(dueEntry[T])
	if a.Due != b.Due {
		if a.Due < b.Due {
			return -1
		}
		return 1
	}
	if a.Seq < b.Seq {
		return -1
	} else if a.Seq > b.Seq {
		return 1
	}
	return 0
}

func MakeTimerQueue[T any]() *TimerQueue[T] {
	return &TimerQueue[T]{
		lock:    &sync.Mutex{},
		dueHeap: binaryheap.NewWith(dueComparator[T]),
	}
}

func (tq *TimerQueue[T]) Push(due int64, val T) {
	tq.lock.Lock()
	defer tq.lock.Unlock()
	tq.seq++
	tq.dueHeap.Push(dueEntry[T]{Due: due, Seq: tq.seq, Val: val})
}

// PopDue removes and returns every entry due at or before now, in order.
func (tq *TimerQueue[T]) PopDue(now int64) []T {
	tq.lock.Lock()
	defer tq.lock.Unlock()
	var rtn []T
	for {
		if tq.dueHeap.Empty() {
			break
		}
		// we know it isn't empty, so we ignore "ok"
		topI, _ := tq.dueHeap.Peek()
		top := topI.(dueEntry[T])
		if top.Due > now {
			break
		}
		tq.dueHeap.Pop()
		rtn = append(rtn, top.Val)
	}
	return rtn
}

func (tq *TimerQueue[T]) Len() int {
	tq.lock.Lock()
	defer tq.lock.Unlock()
	return tq.dueHeap.Size()
}
