// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package recordkit

import (
	"sort"

	"github.com/wavetermdev/waveframe/pkg/frameapi"
)

// Tick advances the simulated clock by one tick and runs every timer that came due.
// Callbacks run without the kit lock held so they may call back into the kit.
func (k *Kit) Tick() int {
	k.lock.Lock()
	k.now++
	now := k.now
	k.lock.Unlock()
	fired := 0
	for _, tf := range k.queue.PopDue(now) {
		k.lock.Lock()
		tnode := k.timers[tf.timer]
		live := tnode != nil && tnode.gen == tf.gen
		if live && tf.periodic {
			k.queue.Push(now+tf.ticks, tf)
		}
		k.lock.Unlock()
		if !live || tf.fn == nil {
			continue
		}
		fired++
		tf.fn()
	}
	return fired
}

// RunTicks ticks n times and returns the number of timer callbacks run.
func (k *Kit) RunTicks(n int) int {
	total := 0
	for i := 0; i < n; i++ {
		total += k.Tick()
	}
	return total
}

func (k *Kit) PendingTimers() int {
	return k.queue.Len()
}

// Fire dispatches a native frame event to every trigger registered for it and
// returns how many conditions ran.
func (k *Kit) Fire(frame frameapi.Frame, event frameapi.FrameEvent) int {
	key := frameEventKey{Frame: frame, Event: event}
	k.lock.Lock()
	var conds []func() bool
	var ids []frameapi.Trigger
	for id := range k.triggers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		tnode := k.triggers[id]
		for _, ek := range tnode.events {
			if ek == key {
				conds = append(conds, tnode.conds...)
				break
			}
		}
	}
	k.lock.Unlock()
	for _, cond := range conds {
		cond()
	}
	return len(conds)
}

func (k *Kit) Calls() []Call {
	k.lock.Lock()
	defer k.lock.Unlock()
	rtn := make([]Call, len(k.calls))
	copy(rtn, k.calls)
	return rtn
}

func (k *Kit) CallNames() []string {
	k.lock.Lock()
	defer k.lock.Unlock()
	rtn := make([]string, len(k.calls))
	for i, c := range k.calls {
		rtn[i] = c.Name
	}
	return rtn
}

func (k *Kit) CountCalls(name string) int {
	k.lock.Lock()
	defer k.lock.Unlock()
	count := 0
	for _, c := range k.calls {
		if c.Name == name {
			count++
		}
	}
	return count
}

// FindCalls returns the recorded calls with the given name, in order.
func (k *Kit) FindCalls(name string) []Call {
	k.lock.Lock()
	defer k.lock.Unlock()
	var rtn []Call
	for _, c := range k.calls {
		if c.Name == name {
			rtn = append(rtn, c)
		}
	}
	return rtn
}

func (k *Kit) ResetCalls() {
	k.lock.Lock()
	defer k.lock.Unlock()
	k.calls = nil
}

func (k *Kit) Origin() frameapi.Frame {
	return k.origin
}

func (k *Kit) Exists(frame frameapi.Frame) bool {
	k.lock.Lock()
	defer k.lock.Unlock()
	return k.frames[frame] != nil
}

func (k *Kit) Children(frame frameapi.Frame) []frameapi.Frame {
	k.lock.Lock()
	defer k.lock.Unlock()
	node := k.frames[frame]
	if node == nil {
		return nil
	}
	rtn := make([]frameapi.Frame, 0, node.children.Size())
	node.children.Each(func(_ int, v any) {
		rtn = append(rtn, v.(frameapi.Frame))
	})
	return rtn
}

func (k *Kit) Attr(frame frameapi.Frame, attr string) (any, bool) {
	k.lock.Lock()
	defer k.lock.Unlock()
	node := k.frames[frame]
	if node == nil {
		return nil, false
	}
	v, ok := node.attrs[attr]
	return v, ok
}

func (k *Kit) Points(frame frameapi.Frame) []string {
	k.lock.Lock()
	defer k.lock.Unlock()
	node := k.frames[frame]
	if node == nil {
		return nil
	}
	return append([]string(nil), node.points...)
}

func (k *Kit) TooltipOf(frame frameapi.Frame) frameapi.Frame {
	k.lock.Lock()
	defer k.lock.Unlock()
	if node := k.frames[frame]; node != nil {
		return node.tooltip
	}
	return frameapi.NoFrame
}

func (k *Kit) TriggerCount() int {
	k.lock.Lock()
	defer k.lock.Unlock()
	return len(k.triggers)
}

// TriggersFor returns the live triggers registered for (frame, event).
func (k *Kit) TriggersFor(frame frameapi.Frame, event frameapi.FrameEvent) []frameapi.Trigger {
	key := frameEventKey{Frame: frame, Event: event}
	k.lock.Lock()
	defer k.lock.Unlock()
	var rtn []frameapi.Trigger
	for id, tnode := range k.triggers {
		for _, ek := range tnode.events {
			if ek == key {
				rtn = append(rtn, id)
				break
			}
		}
	}
	sort.Slice(rtn, func(i, j int) bool { return rtn[i] < rtn[j] })
	return rtn
}

type FrameInfo struct {
	Id         frameapi.Frame `json:"id"`
	Name       string         `json:"name"`
	TypeName   string         `json:"typename,omitempty"`
	Inherits   string         `json:"inherits,omitempty"`
	CreateKind CreateKind     `json:"createkind"`
	Priority   int            `json:"priority,omitempty"`
	Context    int            `json:"context,omitempty"`
	Tooltip    frameapi.Frame `json:"tooltip,omitempty"`
	Attrs      map[string]any `json:"attrs,omitempty"`
	Points     []string       `json:"points,omitempty"`
	Children   []FrameInfo    `json:"children,omitempty"`
}

// Snapshot returns the live frame tree rooted at the origin frame.
func (k *Kit) Snapshot() FrameInfo {
	k.lock.Lock()
	defer k.lock.Unlock()
	return k.snapshot_nolock(k.frames[k.origin])
}

func (k *Kit) Info(frame frameapi.Frame) (FrameInfo, bool) {
	k.lock.Lock()
	defer k.lock.Unlock()
	node := k.frames[frame]
	if node == nil {
		return FrameInfo{}, false
	}
	return k.snapshot_nolock(node), true
}

func (k *Kit) snapshot_nolock(node *frameNode) FrameInfo {
	info := FrameInfo{
		Id:         node.id,
		Name:       node.name,
		TypeName:   node.typeName,
		Inherits:   node.inherits,
		CreateKind: node.createKind,
		Priority:   node.priority,
		Context:    node.context,
		Tooltip:    node.tooltip,
		Points:     append([]string(nil), node.points...),
	}
	if len(node.attrs) > 0 {
		info.Attrs = make(map[string]any, len(node.attrs))
		for name, v := range node.attrs {
			info.Attrs[name] = v
		}
	}
	node.children.Each(func(_ int, v any) {
		if child := k.frames[v.(frameapi.Frame)]; child != nil {
			info.Children = append(info.Children, k.snapshot_nolock(child))
		}
	})
	return info
}
