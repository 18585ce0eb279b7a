// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package frameadapter

import (
	"sync"

	"github.com/wavetermdev/waveframe/pkg/frameapi"
	"github.com/wavetermdev/waveframe/pkg/panichandler"
)

// Scheduler coalesces update requests: any number of Schedule calls before the next
// tick produce one flush.  It owns a single native timer, created on first use and
// reused for every flush.
type Scheduler struct {
	lock    *sync.Mutex
	timers  frameapi.TimerAPI
	timer   frameapi.Timer
	pending bool
	flushFn func()
}

func MakeScheduler(timers frameapi.TimerAPI, flushFn func()) *Scheduler {
	return &Scheduler{
		lock:    &sync.Mutex{},
		timers:  timers,
		flushFn: flushFn,
	}
}

func (s *Scheduler) Schedule() {
	s.lock.Lock()
	if s.pending {
		s.lock.Unlock()
		return
	}
	s.pending = true
	if s.timer == frameapi.NoTimer {
		s.timer = s.timers.CreateTimer()
	}
	timer := s.timer
	s.lock.Unlock()
	s.timers.StartTimer(timer, 0, false, s.fire)
}

func (s *Scheduler) fire() {
	defer func() {
		panichandler.PanicHandlerNoError("frameadapter:flush", recover())
	}()
	s.lock.Lock()
	s.pending = false
	s.lock.Unlock()
	if s.flushFn != nil {
		s.flushFn()
	}
}

func (s *Scheduler) Pending() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.pending
}
