// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package frameadapter lets a declarative reconciler drive a native frame toolkit.
// The reconciler owns the tree diffing; the adapter turns created, updated and
// removed nodes into ordered native calls, and owns the native resources tied to
// property values (event triggers, tooltip frames).
package frameadapter

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"

	"github.com/wavetermdev/waveframe/pkg/frameapi"
	"github.com/wavetermdev/waveframe/pkg/frameprops"
	"github.com/wavetermdev/waveframe/pkg/unitconv"
	"github.com/wavetermdev/waveframe/pkg/util/ds"
	"github.com/wavetermdev/waveframe/pkg/util/utilfn"
)

// Renderer is the reconciler side of the boundary.  Render mounts declarative content
// into an existing frame (used for tooltips); FlushUpdates commits pending updates and
// runs once per scheduled tick.
type Renderer interface {
	Render(content any, into frameapi.Frame)
	FlushUpdates()
}

type AdapterOpts struct {
	Converter *unitconv.Converter
	Renderer  Renderer
	DebugLog  bool
}

type Adapter struct {
	kit      frameapi.Toolkit
	conv     *unitconv.Converter
	triggers *triggerTable
	tooltips *ds.SyncMap[frameapi.Frame, frameapi.Frame]
	sched    *Scheduler
	debugLog bool

	lock     *sync.Mutex
	renderer Renderer
}

func MakeAdapter(kit frameapi.Toolkit, opts AdapterOpts) *Adapter {
	conv := opts.Converter
	if conv == nil {
		conv = unitconv.MakeConverter()
	}
	a := &Adapter{
		kit:      kit,
		conv:     conv,
		triggers: makeTriggerTable(kit),
		tooltips: ds.MakeSyncMap[frameapi.Frame, frameapi.Frame](),
		debugLog: opts.DebugLog,
		lock:     &sync.Mutex{},
		renderer: opts.Renderer,
	}
	a.sched = MakeScheduler(kit, a.flush)
	return a
}

func (a *Adapter) logf(format string, args ...any) {
	log.Printf("[frameadapter] "+format+"\n", args...)
}

func (a *Adapter) SetRenderer(r Renderer) {
	a.lock.Lock()
	defer a.lock.Unlock()
	a.renderer = r
}

func (a *Adapter) getRenderer() Renderer {
	a.lock.Lock()
	defer a.lock.Unlock()
	return a.renderer
}

func (a *Adapter) Converter() *unitconv.Converter {
	return a.conv
}

// SetPixelScale sets the width (in pixels) that spans the 4:3 screen area.  Sizes
// and offsets applied after the call use the new scale; nothing already applied is
// recomputed.
func (a *Adapter) SetPixelScale(width float64) {
	a.conv.SetPixelScale(width)
}

// Defaults returns a copy of the prop default table.
func (a *Adapter) Defaults() frameprops.Props {
	return frameprops.DefaultTable()
}

func (a *Adapter) GetParent(frame frameapi.Frame) frameapi.Frame {
	return a.kit.GetParent(frame)
}

type creationProps struct {
	Parent   frameapi.Frame
	Name     string
	Priority int
	Context  int
	Inherits string
	TypeName string
	IsSimple *bool
	Ref      *frameprops.Ref
	OnLoad   frameprops.OnLoadFn
}

func isSet(props frameprops.Props, name frameprops.PropName) (any, bool) {
	v, ok := props[string(name)]
	if !ok || utilfn.IsNilValue(v) {
		return nil, false
	}
	return v, true
}

func decodeCreationProps(kind string, parent frameapi.Frame, props frameprops.Props) (creationProps, error) {
	cp := creationProps{
		Parent:   parent,
		Name:     frameprops.DefaultFrameName,
		TypeName: nativeTypeName(kind),
	}
	var err error
	if v, ok := isSet(props, frameprops.Prop_ParentFrame); ok {
		var pf frameapi.Frame
		if pf, err = frameprops.AsFrame(frameprops.Prop_ParentFrame, v); err != nil {
			return cp, err
		}
		if !pf.IsNull() {
			cp.Parent = pf
		}
	}
	if cp.Parent.IsNull() {
		return cp, configErrorf(string(frameprops.Prop_ParentFrame), "expected parent frame for %s", kind)
	}
	if v, ok := isSet(props, frameprops.Prop_Name); ok {
		if cp.Name, err = frameprops.AsString(frameprops.Prop_Name, v); err != nil {
			return cp, err
		}
	}
	if v, ok := isSet(props, frameprops.Prop_Priority); ok {
		if cp.Priority, err = frameprops.AsInt(frameprops.Prop_Priority, v); err != nil {
			return cp, err
		}
	}
	if v, ok := isSet(props, frameprops.Prop_Context); ok {
		if cp.Context, err = frameprops.AsInt(frameprops.Prop_Context, v); err != nil {
			return cp, err
		}
	}
	if v, ok := isSet(props, frameprops.Prop_Inherits); ok {
		if cp.Inherits, err = frameprops.AsString(frameprops.Prop_Inherits, v); err != nil {
			return cp, err
		}
	}
	if v, ok := isSet(props, frameprops.Prop_TypeName); ok {
		if cp.TypeName, err = frameprops.AsString(frameprops.Prop_TypeName, v); err != nil {
			return cp, err
		}
	}
	if v, ok := isSet(props, frameprops.Prop_IsSimple); ok {
		b, err := frameprops.AsBool(frameprops.Prop_IsSimple, v)
		if err != nil {
			return cp, err
		}
		cp.IsSimple = &b
	}
	if v, ok := isSet(props, frameprops.Prop_Ref); ok {
		if cp.Ref, err = frameprops.AsRef(frameprops.Prop_Ref, v); err != nil {
			return cp, err
		}
	}
	if v, ok := isSet(props, frameprops.Prop_OnLoad); ok {
		if cp.OnLoad, err = frameprops.AsOnLoad(frameprops.Prop_OnLoad, v); err != nil {
			return cp, err
		}
	}
	return cp, nil
}

// CreateFrame creates the native frame for a declarative node of the given kind.  A
// parentFrame prop overrides parent.  Only creation-only props (and ref/onLoad) are
// consumed here; the reconciler applies the rest through UpdateFrameProperties.
func (a *Adapter) CreateFrame(kind string, parent frameapi.Frame, props frameprops.Props) (frameapi.Frame, error) {
	cp, err := decodeCreationProps(kind, parent, props)
	if err != nil {
		return frameapi.NoFrame, err
	}
	simple := kind == "simple-frame"
	if cp.IsSimple != nil {
		simple = *cp.IsSimple
	}
	var frame frameapi.Frame
	switch {
	case simple:
		frame = a.kit.CreateSimpleFrame(cp.Name, cp.Parent, cp.Context)
	case cp.TypeName != "":
		frame = a.kit.CreateFrameByType(cp.TypeName, cp.Name, cp.Parent, cp.Inherits, cp.Context)
	default:
		frame = a.kit.CreateFrame(cp.Name, cp.Parent, cp.Priority, cp.Context)
	}
	if a.debugLog {
		a.logf("created %s kind=%s type=%q parent=%s", frame, kind, cp.TypeName, cp.Parent)
	}
	if cp.Ref != nil {
		cp.Ref.Current = frame
	}
	if cp.OnLoad != nil {
		cp.OnLoad(frame)
	}
	return frame, nil
}

// CleanupFrame destroys frame, the triggers bound to it, and its tooltip frame.
func (a *Adapter) CleanupFrame(frame frameapi.Frame) {
	a.kit.DestroyFrame(frame)
	a.triggers.releaseFrame(frame)
	if tooltip, ok := a.tooltips.GetAndDelete(frame); ok {
		a.CleanupFrame(tooltip)
	}
}

// UpdateFrameProperties diffs prev against next.  Props missing from next are reset to
// their defaults, then props whose value changed are applied.  Every prop is applied
// on its own: a failure is logged and collected, and the pass continues.
func (a *Adapter) UpdateFrameProperties(frame frameapi.Frame, prev frameprops.Props, next frameprops.Props) error {
	var errs []error
	for _, name := range orderedPropNames(prev) {
		if _, ok := next[name]; ok {
			continue
		}
		if err := a.applyProp(frame, name, nil, prev[name]); err != nil {
			a.logf("error clearing %s on %s: %v", name, frame, err)
			errs = append(errs, err)
		}
	}
	for _, name := range orderedPropNames(next) {
		nextVal := next[name]
		prevVal := prev[name]
		if utilfn.PropValEqual(nextVal, prevVal) {
			continue
		}
		if err := a.applyProp(frame, name, nextVal, prevVal); err != nil {
			a.logf("error setting %s on %s: %v", name, frame, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ApplyProps applies every prop in props to a freshly created frame.
func (a *Adapter) ApplyProps(frame frameapi.Frame, props frameprops.Props) error {
	return a.UpdateFrameProperties(frame, nil, props)
}

// ScheduleUpdate requests a flush on the next tick.  Repeated calls before the tick
// coalesce into one flush.
func (a *Adapter) ScheduleUpdate() {
	a.sched.Schedule()
}

func (a *Adapter) UpdatePending() bool {
	return a.sched.Pending()
}

func (a *Adapter) flush() {
	renderer := a.getRenderer()
	if renderer == nil {
		a.logf("flush with no renderer")
		return
	}
	renderer.FlushUpdates()
}

// TriggerCount returns the number of live trigger bindings.
func (a *Adapter) TriggerCount() int {
	return a.triggers.count()
}

// BoundHandlerId returns the id of the handler bound to (frame, event).
func (a *Adapter) BoundHandlerId(frame frameapi.Frame, event frameapi.FrameEvent) (string, bool) {
	return a.triggers.handlerId(frame, event)
}

// orderedPropNames sorts by schema order; unknown names go last, alphabetically.
func orderedPropNames(props frameprops.Props) []string {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	slices.SortFunc(names, func(x, y string) int {
		xi, yi := frameprops.SchemaIndex(frameprops.PropName(x)), frameprops.SchemaIndex(frameprops.PropName(y))
		switch {
		case xi >= 0 && yi >= 0:
			return xi - yi
		case xi >= 0:
			return -1
		case yi >= 0:
			return 1
		}
		return strings.Compare(x, y)
	})
	return names
}

func (a *Adapter) String() string {
	return fmt.Sprintf("frameadapter(scale=%g triggers=%d tooltips=%d)", a.conv.Scale(), a.triggers.count(), a.tooltips.Len())
}
