// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package frameadapter

import (
	"cmp"
	"fmt"
	"log"
	"slices"

	"github.com/wavetermdev/waveframe/pkg/frameapi"
	"github.com/wavetermdev/waveframe/pkg/frameprops"
	"github.com/wavetermdev/waveframe/pkg/panichandler"
	"github.com/wavetermdev/waveframe/pkg/util/ds"
)

type triggerKey struct {
	Frame frameapi.Frame
	Event frameapi.FrameEvent
}

// the binding only remembers the handler's id; the handler itself lives in the
// trigger's condition and goes away when the condition is cleared
type triggerBinding struct {
	Trigger   frameapi.Trigger
	HandlerId string
}

type triggerKit interface {
	frameapi.TriggerAPI
	SetEnable(frame frameapi.Frame, enabled bool)
}

// triggerTable keeps at most one native trigger per (frame, event).
type triggerTable struct {
	kit      triggerKit
	bindings *ds.SyncMap[triggerKey, triggerBinding]
}

func makeTriggerTable(kit triggerKit) *triggerTable {
	return &triggerTable{
		kit:      kit,
		bindings: ds.MakeSyncMap[triggerKey, triggerBinding](),
	}
}

func (tt *triggerTable) setHandler(frame frameapi.Frame, event frameapi.FrameEvent, newHandler *frameprops.Handler, oldHandler *frameprops.Handler) {
	key := triggerKey{Frame: frame, Event: event}
	binding, ok := tt.bindings.GetEx(key)
	if ok && oldHandler != nil && binding.HandlerId != oldHandler.Id {
		log.Printf("[frameadapter] %s %s: bound handler %s is not the previous handler %s, reusing trigger\n", frame, event, binding.HandlerId, oldHandler.Id)
	}
	if newHandler == nil {
		if ok {
			tt.bindings.Delete(key)
			tt.kit.DestroyTrigger(binding.Trigger)
		}
		return
	}
	trigger := binding.Trigger
	if !ok {
		trigger = tt.kit.CreateTrigger()
		tt.kit.RegisterFrameEvent(trigger, frame, event)
	} else {
		tt.kit.ClearConditions(trigger)
	}
	tt.kit.AddCondition(trigger, tt.makeCondition(frame, event, newHandler))
	tt.bindings.Set(key, triggerBinding{Trigger: trigger, HandlerId: newHandler.Id})
}

func (tt *triggerTable) makeCondition(frame frameapi.Frame, event frameapi.FrameEvent, handler *frameprops.Handler) func() bool {
	debugStr := fmt.Sprintf("%s %s handler", frame, event)
	return func() bool {
		defer func() {
			panichandler.PanicHandlerNoError(debugStr, recover())
		}()
		if event == frameapi.EventControlClick {
			// drop keyboard focus so the control doesn't stay pressed
			tt.kit.SetEnable(frame, false)
			tt.kit.SetEnable(frame, true)
		}
		handler.Call()
		return false
	}
}

// releaseFrame destroys every trigger bound to frame and returns how many there were.
func (tt *triggerTable) releaseFrame(frame frameapi.Frame) int {
	released := tt.bindings.DeleteFn(func(key triggerKey, _ triggerBinding) bool {
		return key.Frame == frame
	})
	slices.SortFunc(released, func(a, b triggerBinding) int {
		return cmp.Compare(a.Trigger, b.Trigger)
	})
	for _, binding := range released {
		tt.kit.DestroyTrigger(binding.Trigger)
	}
	return len(released)
}

func (tt *triggerTable) handlerId(frame frameapi.Frame, event frameapi.FrameEvent) (string, bool) {
	binding, ok := tt.bindings.GetEx(triggerKey{Frame: frame, Event: event})
	return binding.HandlerId, ok
}

func (tt *triggerTable) count() int {
	return tt.bindings.Len()
}
