// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package recordkit is an in-memory frameapi.Toolkit. It keeps a frame tree,
// triggers and timers the way the native toolkit would and records every call made
// against it, so adapter behavior can be asserted (tests) or inspected (framectl).
package recordkit

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/wavetermdev/waveframe/pkg/frameapi"
	"github.com/wavetermdev/waveframe/pkg/util/ds"
)

// TickSeconds is the simulated duration of one host tick.
const TickSeconds = 1.0 / 32

const GameUIName = "ConsoleUIBackdrop"

type Call struct {
	Name string `json:"name"`
	Args []any  `json:"args,omitempty"`
}

func (c Call) String() string {
	var sb strings.Builder
	sb.WriteString(c.Name)
	sb.WriteString("(")
	for i, arg := range c.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		if s, ok := arg.(string); ok {
			sb.WriteString(fmt.Sprintf("%q", s))
			continue
		}
		sb.WriteString(fmt.Sprint(arg))
	}
	sb.WriteString(")")
	return sb.String()
}

type CreateKind string

const (
	CreateKind_ByType CreateKind = "bytype"
	CreateKind_Simple CreateKind = "simple"
	CreateKind_Plain  CreateKind = "plain"
	CreateKind_Origin CreateKind = "origin"
)

type frameNode struct {
	id         frameapi.Frame
	name       string
	typeName   string
	inherits   string
	createKind CreateKind
	priority   int
	context    int
	parent     frameapi.Frame
	children   *arraylist.List
	attrs      map[string]any
	points     []string
	tooltip    frameapi.Frame
}

type frameEventKey struct {
	Frame frameapi.Frame
	Event frameapi.FrameEvent
}

type triggerNode struct {
	id     frameapi.Trigger
	events []frameEventKey
	conds  []func() bool
}

type timerNode struct {
	id  frameapi.Timer
	gen uint64
}

type timerFire struct {
	timer    frameapi.Timer
	gen      uint64
	periodic bool
	ticks    int64
	fn       func()
}

type Kit struct {
	lock     *sync.Mutex
	nextId   int64
	now      int64
	calls    []Call
	frames   map[frameapi.Frame]*frameNode
	triggers map[frameapi.Trigger]*triggerNode
	timers   map[frameapi.Timer]*timerNode
	queue    *ds.TimerQueue[timerFire]
	origin   frameapi.Frame
}

var _ frameapi.Toolkit = (*Kit)(nil)

func MakeKit() *Kit {
	k := &Kit{
		lock:     &sync.Mutex{},
		frames:   make(map[frameapi.Frame]*frameNode),
		triggers: make(map[frameapi.Trigger]*triggerNode),
		timers:   make(map[frameapi.Timer]*timerNode),
		queue:    ds.MakeTimerQueue[timerFire](),
	}
	k.origin = k.newFrame_nolock(GameUIName, "FRAME", "", CreateKind_Origin, frameapi.NoFrame, 0, 0)
	return k
}

func (k *Kit) allocId_nolock() int64 {
	k.nextId++
	return k.nextId
}

func (k *Kit) record_nolock(name string, args ...any) {
	k.calls = append(k.calls, Call{Name: name, Args: args})
}

func (k *Kit) newFrame_nolock(name string, typeName string, inherits string, kind CreateKind, parent frameapi.Frame, priority int, context int) frameapi.Frame {
	id := frameapi.Frame(k.allocId_nolock())
	node := &frameNode{
		id:         id,
		name:       name,
		typeName:   typeName,
		inherits:   inherits,
		createKind: kind,
		priority:   priority,
		context:    context,
		parent:     parent,
		children:   arraylist.New(),
		attrs:      make(map[string]any),
	}
	k.frames[id] = node
	if parentNode := k.frames[parent]; parentNode != nil {
		parentNode.children.Add(id)
	}
	return id
}

func (k *Kit) CreateFrameByType(typeName string, name string, parent frameapi.Frame, inherits string, context int) frameapi.Frame {
	k.lock.Lock()
	defer k.lock.Unlock()
	k.record_nolock("CreateFrameByType", typeName, name, parent, inherits, context)
	return k.newFrame_nolock(name, typeName, inherits, CreateKind_ByType, parent, 0, context)
}

func (k *Kit) CreateSimpleFrame(name string, parent frameapi.Frame, context int) frameapi.Frame {
	k.lock.Lock()
	defer k.lock.Unlock()
	k.record_nolock("CreateSimpleFrame", name, parent, context)
	return k.newFrame_nolock(name, "", "", CreateKind_Simple, parent, 0, context)
}

func (k *Kit) CreateFrame(name string, parent frameapi.Frame, priority int, context int) frameapi.Frame {
	k.lock.Lock()
	defer k.lock.Unlock()
	k.record_nolock("CreateFrame", name, parent, priority, context)
	return k.newFrame_nolock(name, "", "", CreateKind_Plain, parent, priority, context)
}

// DestroyFrame destroys the frame and all of its descendants.
func (k *Kit) DestroyFrame(frame frameapi.Frame) {
	k.lock.Lock()
	defer k.lock.Unlock()
	k.record_nolock("DestroyFrame", frame)
	node := k.frames[frame]
	if node == nil {
		return
	}
	if parentNode := k.frames[node.parent]; parentNode != nil {
		if idx := parentNode.children.IndexOf(frame); idx >= 0 {
			parentNode.children.Remove(idx)
		}
	}
	k.destroyTree_nolock(node)
}

func (k *Kit) destroyTree_nolock(node *frameNode) {
	node.children.Each(func(_ int, v any) {
		if child := k.frames[v.(frameapi.Frame)]; child != nil {
			k.destroyTree_nolock(child)
		}
	})
	delete(k.frames, node.id)
}

func (k *Kit) GetParent(frame frameapi.Frame) frameapi.Frame {
	k.lock.Lock()
	defer k.lock.Unlock()
	k.record_nolock("GetParent", frame)
	if node := k.frames[frame]; node != nil {
		return node.parent
	}
	return frameapi.NoFrame
}

func (k *Kit) GetChildrenCount(frame frameapi.Frame) int {
	k.lock.Lock()
	defer k.lock.Unlock()
	k.record_nolock("GetChildrenCount", frame)
	if node := k.frames[frame]; node != nil {
		return node.children.Size()
	}
	return 0
}

func (k *Kit) GetChild(frame frameapi.Frame, index int) frameapi.Frame {
	k.lock.Lock()
	defer k.lock.Unlock()
	k.record_nolock("GetChild", frame, index)
	node := k.frames[frame]
	if node == nil {
		return frameapi.NoFrame
	}
	v, ok := node.children.Get(index)
	if !ok {
		return frameapi.NoFrame
	}
	return v.(frameapi.Frame)
}

func (k *Kit) GetOriginFrame(origin frameapi.OriginFrame, index int) frameapi.Frame {
	k.lock.Lock()
	defer k.lock.Unlock()
	k.record_nolock("GetOriginFrame", int(origin), index)
	if origin == frameapi.OriginGameUI && index == 0 {
		return k.origin
	}
	return frameapi.NoFrame
}

func (k *Kit) setAttr(name string, frame frameapi.Frame, attr string, val any, args ...any) {
	k.lock.Lock()
	defer k.lock.Unlock()
	k.record_nolock(name, append([]any{frame}, args...)...)
	if node := k.frames[frame]; node != nil {
		node.attrs[attr] = val
	}
}

func (k *Kit) SetText(frame frameapi.Frame, text string) {
	k.setAttr("SetText", frame, "text", text, text)
}

func (k *Kit) SetTextSizeLimit(frame frameapi.Frame, size int) {
	k.setAttr("SetTextSizeLimit", frame, "maxLength", size, size)
}

func (k *Kit) SetTextColor(frame frameapi.Frame, color int) {
	k.setAttr("SetTextColor", frame, "textColor", color, color)
}

func (k *Kit) SetTexture(frame frameapi.Frame, texFile string, flag int, blend bool) {
	k.setAttr("SetTexture", frame, "texture", []any{texFile, flag, blend}, texFile, flag, blend)
}

func (k *Kit) SetModel(frame frameapi.Frame, modelFile string, cameraIndex int) {
	k.setAttr("SetModel", frame, "model", []any{modelFile, cameraIndex}, modelFile, cameraIndex)
}

func (k *Kit) SetAlpha(frame frameapi.Frame, alpha int) {
	k.setAttr("SetAlpha", frame, "alpha", alpha, alpha)
}

func (k *Kit) SetLevel(frame frameapi.Frame, level int) {
	k.setAttr("SetLevel", frame, "level", level, level)
}

func (k *Kit) SetVisible(frame frameapi.Frame, visible bool) {
	k.setAttr("SetVisible", frame, "visible", visible, visible)
}

func (k *Kit) SetEnable(frame frameapi.Frame, enabled bool) {
	k.setAttr("SetEnable", frame, "enabled", enabled, enabled)
}

func (k *Kit) SetVertexColor(frame frameapi.Frame, color int) {
	k.setAttr("SetVertexColor", frame, "vertexColor", color, color)
}

func (k *Kit) SetValue(frame frameapi.Frame, value float64) {
	k.setAttr("SetValue", frame, "value", value, value)
}

func (k *Kit) SetSize(frame frameapi.Frame, width float64, height float64) {
	k.setAttr("SetSize", frame, "size", []any{width, height}, width, height)
}

func (k *Kit) SetStepSize(frame frameapi.Frame, stepSize float64) {
	k.setAttr("SetStepSize", frame, "stepSize", stepSize, stepSize)
}

func (k *Kit) SetTooltip(frame frameapi.Frame, tooltip frameapi.Frame) {
	k.lock.Lock()
	defer k.lock.Unlock()
	k.record_nolock("SetTooltip", frame, tooltip)
	if node := k.frames[frame]; node != nil {
		node.tooltip = tooltip
	}
}

func (k *Kit) SetFont(frame frameapi.Frame, fileName string, height float64, flags int) {
	k.setAttr("SetFont", frame, "font", []any{fileName, height, flags}, fileName, height, flags)
}

func (k *Kit) SetMinMaxValue(frame frameapi.Frame, min float64, max float64) {
	k.setAttr("SetMinMaxValue", frame, "minMaxValue", []any{min, max}, min, max)
}

func (k *Kit) SetScale(frame frameapi.Frame, scale float64) {
	k.setAttr("SetScale", frame, "scale", scale, scale)
}

func (k *Kit) SetSpriteAnimate(frame frameapi.Frame, primaryProp int, flags int) {
	k.setAttr("SetSpriteAnimate", frame, "spriteAnimate", []any{primaryProp, flags}, primaryProp, flags)
}

func (k *Kit) SetTextAlignment(frame frameapi.Frame, vert frameapi.TextJustify, horz frameapi.TextJustify) {
	k.setAttr("SetTextAlignment", frame, "textAlignment", []any{int(vert), int(horz)}, int(vert), int(horz))
}

func (k *Kit) ClearAllPoints(frame frameapi.Frame) {
	k.lock.Lock()
	defer k.lock.Unlock()
	k.record_nolock("ClearAllPoints", frame)
	if node := k.frames[frame]; node != nil {
		node.points = nil
	}
}

func (k *Kit) SetAllPoints(frame frameapi.Frame, relative frameapi.Frame) {
	k.lock.Lock()
	defer k.lock.Unlock()
	k.record_nolock("SetAllPoints", frame, relative)
	if node := k.frames[frame]; node != nil {
		node.points = append(node.points, fmt.Sprintf("all->%s", relative))
	}
}

func (k *Kit) SetPoint(frame frameapi.Frame, point frameapi.FramePoint, relative frameapi.Frame, relativePoint frameapi.FramePoint, x float64, y float64) {
	k.lock.Lock()
	defer k.lock.Unlock()
	k.record_nolock("SetPoint", frame, point, relative, relativePoint, x, y)
	if node := k.frames[frame]; node != nil {
		node.points = append(node.points, fmt.Sprintf("%s->%s.%s(%g,%g)", point, relative, relativePoint, x, y))
	}
}

func (k *Kit) SetAbsPoint(frame frameapi.Frame, point frameapi.FramePoint, x float64, y float64) {
	k.lock.Lock()
	defer k.lock.Unlock()
	k.record_nolock("SetAbsPoint", frame, point, x, y)
	if node := k.frames[frame]; node != nil {
		node.points = append(node.points, fmt.Sprintf("%s->abs(%g,%g)", point, x, y))
	}
}

func (k *Kit) CreateTrigger() frameapi.Trigger {
	k.lock.Lock()
	defer k.lock.Unlock()
	id := frameapi.Trigger(k.allocId_nolock())
	k.record_nolock("CreateTrigger")
	k.triggers[id] = &triggerNode{id: id}
	return id
}

func (k *Kit) DestroyTrigger(trigger frameapi.Trigger) {
	k.lock.Lock()
	defer k.lock.Unlock()
	k.record_nolock("DestroyTrigger", trigger)
	delete(k.triggers, trigger)
}

func (k *Kit) RegisterFrameEvent(trigger frameapi.Trigger, frame frameapi.Frame, event frameapi.FrameEvent) {
	k.lock.Lock()
	defer k.lock.Unlock()
	k.record_nolock("RegisterFrameEvent", trigger, frame, event)
	if tnode := k.triggers[trigger]; tnode != nil {
		tnode.events = append(tnode.events, frameEventKey{Frame: frame, Event: event})
	}
}

func (k *Kit) ClearConditions(trigger frameapi.Trigger) {
	k.lock.Lock()
	defer k.lock.Unlock()
	k.record_nolock("ClearConditions", trigger)
	if tnode := k.triggers[trigger]; tnode != nil {
		tnode.conds = nil
	}
}

func (k *Kit) AddCondition(trigger frameapi.Trigger, cond func() bool) {
	k.lock.Lock()
	defer k.lock.Unlock()
	k.record_nolock("AddCondition", trigger)
	if tnode := k.triggers[trigger]; tnode != nil {
		tnode.conds = append(tnode.conds, cond)
	}
}

func (k *Kit) CreateTimer() frameapi.Timer {
	k.lock.Lock()
	defer k.lock.Unlock()
	id := frameapi.Timer(k.allocId_nolock())
	k.record_nolock("CreateTimer")
	k.timers[id] = &timerNode{id: id}
	return id
}

func timeoutTicks(timeout float64) int64 {
	ticks := int64(math.Ceil(timeout / TickSeconds))
	if ticks < 1 {
		return 1
	}
	return ticks
}

// StartTimer (re)starts the timer. Restarting drops the previous schedule.
func (k *Kit) StartTimer(timer frameapi.Timer, timeout float64, periodic bool, fn func()) {
	k.lock.Lock()
	defer k.lock.Unlock()
	k.record_nolock("StartTimer", timer, timeout, periodic)
	tnode := k.timers[timer]
	if tnode == nil {
		return
	}
	tnode.gen++
	ticks := timeoutTicks(timeout)
	k.queue.Push(k.now+ticks, timerFire{timer: timer, gen: tnode.gen, periodic: periodic, ticks: ticks, fn: fn})
}
