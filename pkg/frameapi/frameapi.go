// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package frameapi describes the native UI toolkit surface the frame adapter drives.
// The toolkit owns every handle; callers only ask for frames, triggers and timers to be
// created or destroyed.
package frameapi

import (
	"fmt"
	"strings"
)

// Frame is an opaque native frame handle. NoFrame is the null handle.
type Frame int64

const NoFrame Frame = 0

func (f Frame) IsNull() bool {
	return f == NoFrame
}

func (f Frame) String() string {
	if f == NoFrame {
		return "frame:null"
	}
	return fmt.Sprintf("frame:%d", int64(f))
}

// Trigger is an opaque native trigger handle.
type Trigger int64

const NoTrigger Trigger = 0

// Timer is an opaque native timer handle.
type Timer int64

const NoTimer Timer = 0

type FramePoint int

const (
	PointTopLeft FramePoint = iota
	PointTop
	PointTopRight
	PointLeft
	PointCenter
	PointRight
	PointBottomLeft
	PointBottom
	PointBottomRight
)

var framePointNames = map[FramePoint]string{
	PointTopLeft:     "topleft",
	PointTop:         "top",
	PointTopRight:    "topright",
	PointLeft:        "left",
	PointCenter:      "center",
	PointRight:       "right",
	PointBottomLeft:  "bottomleft",
	PointBottom:      "bottom",
	PointBottomRight: "bottomright",
}

func (p FramePoint) String() string {
	if name, ok := framePointNames[p]; ok {
		return name
	}
	return fmt.Sprintf("framepoint(%d)", int(p))
}

func normalizeName(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", "")
	return strings.ReplaceAll(s, "_", "")
}

// ParseFramePoint accepts "topleft", "top-left", "TOP_LEFT" and so on.
func ParseFramePoint(s string) (FramePoint, bool) {
	s = normalizeName(s)
	for p, name := range framePointNames {
		if name == s {
			return p, true
		}
	}
	return 0, false
}

type FrameEvent int

const (
	EventControlClick FrameEvent = iota + 1
	EventMouseEnter
	EventMouseLeave
	EventMouseUp
	EventMouseDown
	EventMouseWheel
	EventCheckboxChecked
	EventCheckboxUnchecked
	EventEditboxTextChanged
	EventPopupmenuItemChanged
	EventMouseDoubleClick
	EventSpriteAnimUpdate
	EventSliderValueChanged
	EventDialogCancel
	EventDialogAccept
	EventEditboxEnter
)

var frameEventNames = map[FrameEvent]string{
	EventControlClick:         "control_click",
	EventMouseEnter:           "mouse_enter",
	EventMouseLeave:           "mouse_leave",
	EventMouseUp:              "mouse_up",
	EventMouseDown:            "mouse_down",
	EventMouseWheel:           "mouse_wheel",
	EventCheckboxChecked:      "checkbox_checked",
	EventCheckboxUnchecked:    "checkbox_unchecked",
	EventEditboxTextChanged:   "editbox_text_changed",
	EventPopupmenuItemChanged: "popupmenu_item_changed",
	EventMouseDoubleClick:     "mouse_doubleclick",
	EventSpriteAnimUpdate:     "sprite_anim_update",
	EventSliderValueChanged:   "slider_value_changed",
	EventDialogCancel:         "dialog_cancel",
	EventDialogAccept:         "dialog_accept",
	EventEditboxEnter:         "editbox_enter",
}

func (e FrameEvent) String() string {
	if name, ok := frameEventNames[e]; ok {
		return name
	}
	return fmt.Sprintf("frameevent(%d)", int(e))
}

func ParseFrameEvent(s string) (FrameEvent, bool) {
	s = strings.ToLower(s)
	for e, name := range frameEventNames {
		if name == s {
			return e, true
		}
	}
	return 0, false
}

type TextJustify int

const (
	JustifyTop TextJustify = iota
	JustifyMiddle
	JustifyBottom
	JustifyLeft
	JustifyCenter
	JustifyRight
)

var textJustifyNames = map[TextJustify]string{
	JustifyTop:    "top",
	JustifyMiddle: "middle",
	JustifyBottom: "bottom",
	JustifyLeft:   "left",
	JustifyCenter: "center",
	JustifyRight:  "right",
}

func (j TextJustify) String() string {
	if name, ok := textJustifyNames[j]; ok {
		return name
	}
	return fmt.Sprintf("textjustify(%d)", int(j))
}

func ParseTextJustify(s string) (TextJustify, bool) {
	s = normalizeName(s)
	for j, name := range textJustifyNames {
		if name == s {
			return j, true
		}
	}
	return 0, false
}

type OriginFrame int

const (
	OriginGameUI OriginFrame = iota
	OriginWorldFrame
	OriginConsoleUI
)

// FrameFactory creates and destroys native frames.
type FrameFactory interface {
	CreateFrameByType(typeName string, name string, parent Frame, inherits string, context int) Frame
	CreateSimpleFrame(name string, parent Frame, context int) Frame
	CreateFrame(name string, parent Frame, priority int, context int) Frame
	DestroyFrame(frame Frame)
}

// FrameTree navigates the native frame hierarchy.
type FrameTree interface {
	GetParent(frame Frame) Frame
	GetChildrenCount(frame Frame) int
	GetChild(frame Frame, index int) Frame
	GetOriginFrame(origin OriginFrame, index int) Frame
}

// FrameSetter holds the per-property native setters.
type FrameSetter interface {
	SetText(frame Frame, text string)
	SetTextSizeLimit(frame Frame, size int)
	SetTextColor(frame Frame, color int)
	SetTexture(frame Frame, texFile string, flag int, blend bool)
	SetModel(frame Frame, modelFile string, cameraIndex int)
	SetAlpha(frame Frame, alpha int)
	SetLevel(frame Frame, level int)
	SetVisible(frame Frame, visible bool)
	SetEnable(frame Frame, enabled bool)
	SetVertexColor(frame Frame, color int)
	SetValue(frame Frame, value float64)
	SetSize(frame Frame, width float64, height float64)
	SetStepSize(frame Frame, stepSize float64)
	SetTooltip(frame Frame, tooltip Frame)
	SetFont(frame Frame, fileName string, height float64, flags int)
	SetMinMaxValue(frame Frame, min float64, max float64)
	SetScale(frame Frame, scale float64)
	SetSpriteAnimate(frame Frame, primaryProp int, flags int)
	SetTextAlignment(frame Frame, vert TextJustify, horz TextJustify)
	ClearAllPoints(frame Frame)
	SetAllPoints(frame Frame, relative Frame)
	SetPoint(frame Frame, point FramePoint, relative Frame, relativePoint FramePoint, x float64, y float64)
	SetAbsPoint(frame Frame, point FramePoint, x float64, y float64)
}

// TriggerAPI exposes the event subscription primitives. A condition returning true
// lets the native trigger proceed to its actions.
type TriggerAPI interface {
	CreateTrigger() Trigger
	DestroyTrigger(trigger Trigger)
	RegisterFrameEvent(trigger Trigger, frame Frame, event FrameEvent)
	ClearConditions(trigger Trigger)
	AddCondition(trigger Trigger, cond func() bool)
}

// TimerAPI exposes one-shot/periodic timers that fire on the UI thread.
type TimerAPI interface {
	CreateTimer() Timer
	StartTimer(timer Timer, timeout float64, periodic bool, fn func())
}

type Toolkit interface {
	FrameFactory
	FrameTree
	FrameSetter
	TriggerAPI
	TimerAPI
}
