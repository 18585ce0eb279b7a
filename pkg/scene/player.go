// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package scene

import (
	"fmt"
	"log"

	"github.com/wavetermdev/waveframe/pkg/frameadapter"
	"github.com/wavetermdev/waveframe/pkg/frameapi"
	"github.com/wavetermdev/waveframe/pkg/frameapi/recordkit"
	"github.com/wavetermdev/waveframe/pkg/frameprops"
	"github.com/wavetermdev/waveframe/pkg/unitconv"
)

type PlayerOpts struct {
	Converter *unitconv.Converter
	DebugLog  bool
}

// Player creates a scene's frames on a recordkit through a frame adapter and runs its
// steps.  It also stands in for the reconciler: it is the adapter's Renderer, mounting
// tooltip content and counting flushes.
type Player struct {
	kit     *recordkit.Kit
	adapter *frameadapter.Adapter

	frames   map[string]frameapi.Frame
	props    map[string]frameprops.Props
	parents  map[string]string
	handlers map[string]*frameprops.Handler
	refs     map[string]*frameprops.Ref
	mounted  map[frameapi.Frame][]frameapi.Frame

	events  []string
	flushes int
	errs    []string
}

type Result struct {
	Calls   []recordkit.Call    `json:"calls"`
	Events  []string            `json:"events,omitempty"`
	Flushes int                 `json:"flushes"`
	Errors  []string            `json:"errors,omitempty"`
	Tree    recordkit.FrameInfo `json:"tree"`
}

func MakePlayer(opts PlayerOpts) *Player {
	kit := recordkit.MakeKit()
	p := &Player{
		kit:      kit,
		frames:   make(map[string]frameapi.Frame),
		props:    make(map[string]frameprops.Props),
		parents:  make(map[string]string),
		handlers: make(map[string]*frameprops.Handler),
		refs:     make(map[string]*frameprops.Ref),
		mounted:  make(map[frameapi.Frame][]frameapi.Frame),
	}
	p.adapter = frameadapter.MakeAdapter(kit, frameadapter.AdapterOpts{
		Converter: opts.Converter,
		Renderer:  p,
		DebugLog:  opts.DebugLog,
	})
	return p
}

func (p *Player) Kit() *recordkit.Kit {
	return p.kit
}

func (p *Player) Adapter() *frameadapter.Adapter {
	return p.adapter
}

func (p *Player) Frame(id string) (frameapi.Frame, bool) {
	frame, ok := p.frames[id]
	return frame, ok
}

func (p *Player) Events() []string {
	return append([]string(nil), p.events...)
}

func (p *Player) Flushes() int {
	return p.flushes
}

func (p *Player) Errors() []string {
	return append([]string(nil), p.errs...)
}

func (p *Player) recordErr(err error) {
	if err == nil {
		return
	}
	log.Printf("[scene] %v\n", err)
	p.errs = append(p.errs, err.Error())
}

// Play creates the scene's frames and runs its steps.  Adapter errors are recorded
// and play continues; a step that names an unknown frame stops play.
func (p *Player) Play(scene *Scene) error {
	if scene.PixelScale > 0 {
		p.adapter.SetPixelScale(scene.PixelScale)
	}
	if err := p.mountSpecs(scene.Frames, ""); err != nil {
		return err
	}
	for idx, step := range scene.Steps {
		if err := p.runStep(step); err != nil {
			return fmt.Errorf("step %d (%s): %w", idx, step.Kind(), err)
		}
	}
	return nil
}

func (p *Player) Result() Result {
	return Result{
		Calls:   p.kit.Calls(),
		Events:  p.Events(),
		Flushes: p.flushes,
		Errors:  p.Errors(),
		Tree:    p.kit.Snapshot(),
	}
}

func (p *Player) mountSpecs(specs []FrameSpec, parentId string) error {
	for _, spec := range specs {
		pid := parentId
		if spec.Parent != "" {
			pid = spec.Parent
		}
		parent := p.kit.Origin()
		if pid != "" {
			var ok bool
			parent, ok = p.frames[pid]
			if !ok {
				return fmt.Errorf("frame %q: unknown parent %q", spec.Id, pid)
			}
		}
		frame, err := p.mount(spec, parent)
		if err != nil {
			return fmt.Errorf("frame %q: %w", spec.Id, err)
		}
		if spec.Id != "" {
			p.frames[spec.Id] = frame
			p.parents[spec.Id] = pid
		}
		if err := p.mountSpecs(spec.Children, spec.Id); err != nil {
			return err
		}
	}
	return nil
}

// mount creates one frame and applies its props.  The id is registered by the caller
// once creation succeeds.
func (p *Player) mount(spec FrameSpec, parent frameapi.Frame) (frameapi.Frame, error) {
	props, err := p.convertProps(spec.Props)
	if err != nil {
		return frameapi.NoFrame, err
	}
	frame, err := p.adapter.CreateFrame(spec.Kind, parent, props)
	if err != nil {
		return frameapi.NoFrame, err
	}
	p.recordErr(p.adapter.ApplyProps(frame, props))
	if spec.Id != "" {
		p.props[spec.Id] = props
	}
	return frame, nil
}

func (p *Player) lookup(id string) (frameapi.Frame, error) {
	frame, ok := p.frames[id]
	if !ok {
		return frameapi.NoFrame, fmt.Errorf("unknown frame id %q", id)
	}
	return frame, nil
}

func (p *Player) runStep(step Step) error {
	switch step.Kind() {
	case "update":
		frame, err := p.lookup(step.Update)
		if err != nil {
			return err
		}
		next, err := p.convertProps(step.Props)
		if err != nil {
			return err
		}
		p.recordErr(p.adapter.UpdateFrameProperties(frame, p.props[step.Update], next))
		p.props[step.Update] = next
	case "cleanup":
		frame, err := p.lookup(step.Cleanup)
		if err != nil {
			return err
		}
		if tooltip, ok := p.adapter.TooltipOf(frame); ok {
			delete(p.mounted, tooltip)
		}
		p.adapter.CleanupFrame(frame)
		p.forget(step.Cleanup)
	case "fire":
		frame, err := p.lookup(step.Fire)
		if err != nil {
			return err
		}
		event, err := parseEvent(step.Event)
		if err != nil {
			return err
		}
		p.kit.Fire(frame, event)
	case "tick":
		p.kit.RunTicks(step.Tick)
	case "schedule":
		for i := 0; i < step.Schedule; i++ {
			p.adapter.ScheduleUpdate()
		}
	default:
		return fmt.Errorf("step has no action")
	}
	return nil
}

// forget drops id and every id created beneath it; the native frames are already gone.
func (p *Player) forget(id string) {
	delete(p.frames, id)
	delete(p.props, id)
	delete(p.parents, id)
	for childId, parentId := range p.parents {
		if parentId == id {
			p.forget(childId)
		}
	}
}

// Render mounts tooltip content into a tooltip frame, replacing whatever was mounted
// there before.  content is a string (shorthand for a text frame), a *FrameSpec, or
// nil to unmount.
func (p *Player) Render(content any, into frameapi.Frame) {
	for _, frame := range p.mounted[into] {
		p.adapter.CleanupFrame(frame)
	}
	delete(p.mounted, into)
	var spec FrameSpec
	switch tv := content.(type) {
	case nil:
		return
	case string:
		spec = FrameSpec{Kind: "text", Props: map[string]any{"text": tv}}
	case *FrameSpec:
		spec = *tv
	case FrameSpec:
		spec = tv
	default:
		p.recordErr(fmt.Errorf("cannot render %T into %s", content, into))
		return
	}
	frame, err := p.mountTree(spec, into)
	if err != nil {
		p.recordErr(fmt.Errorf("rendering into %s: %w", into, err))
		return
	}
	p.mounted[into] = append(p.mounted[into], frame)
}

func (p *Player) mountTree(spec FrameSpec, parent frameapi.Frame) (frameapi.Frame, error) {
	frame, err := p.mount(spec, parent)
	if err != nil {
		return frameapi.NoFrame, err
	}
	for _, child := range spec.Children {
		if _, err := p.mountTree(child, frame); err != nil {
			p.recordErr(fmt.Errorf("rendering into %s: %w", frame, err))
		}
	}
	return frame, nil
}

func (p *Player) FlushUpdates() {
	p.flushes++
}

// Replay plays scene on a fresh player and returns what happened.
func Replay(scene *Scene, opts PlayerOpts) (Result, error) {
	p := MakePlayer(opts)
	err := p.Play(scene)
	return p.Result(), err
}
