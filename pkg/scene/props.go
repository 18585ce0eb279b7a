// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package scene

import (
	"fmt"
	"strings"

	"github.com/wavetermdev/waveframe/pkg/frameapi"
	"github.com/wavetermdev/waveframe/pkg/frameprops"
	"github.com/wavetermdev/waveframe/pkg/util/utilfn"
	"github.com/wavetermdev/waveframe/pkg/utilds"
)

// scene files can only hold plain data, so a few props are spelled differently:
//   - event props take a label; the player turns each label into one Handler
//   - ref takes a name; the player keeps one Ref per name
//   - tooltip takes a string (a text frame) or a frame spec
//   - parentFrame and anchor "relative" may name a frame with "#id"

const frameIdPrefix = "#"

func (p *Player) convertProps(raw map[string]any) (frameprops.Props, error) {
	if raw == nil {
		return nil, nil
	}
	rtn := make(frameprops.Props, len(raw))
	for name, val := range raw {
		conv, err := p.convertProp(frameprops.PropName(name), val)
		if err != nil {
			return nil, err
		}
		rtn[name] = conv
	}
	return rtn, nil
}

func (p *Player) convertProp(name frameprops.PropName, val any) (any, error) {
	if val == nil {
		return nil, nil
	}
	if _, isEvent := frameprops.EventProps[name]; isEvent {
		label, ok := val.(string)
		if !ok {
			return nil, utilds.SubErrorf(utilds.ErrCode_Config, string(name), "%s: expected a handler label, got %v", name, val)
		}
		return p.handler(label), nil
	}
	switch name {
	case frameprops.Prop_Ref:
		refName, ok := val.(string)
		if !ok {
			return nil, utilds.SubErrorf(utilds.ErrCode_Config, string(name), "ref: expected a name, got %v", val)
		}
		return p.ref(refName), nil
	case frameprops.Prop_Tooltip:
		if s, ok := val.(string); ok {
			return s, nil
		}
		var spec FrameSpec
		if err := utilfn.DoMapStructure(&spec, val); err != nil {
			return nil, utilds.SubErrorf(utilds.ErrCode_Config, string(name), "tooltip: %w", err)
		}
		return &spec, nil
	case frameprops.Prop_ParentFrame:
		return p.resolveFrameId(val)
	case frameprops.Prop_Position:
		return p.convertPosition(val)
	}
	return val, nil
}

func (p *Player) convertPosition(val any) (any, error) {
	switch tv := val.(type) {
	case []any:
		rtn := make([]any, len(tv))
		for i, entry := range tv {
			conv, err := p.convertPosition(entry)
			if err != nil {
				return nil, err
			}
			rtn[i] = conv
		}
		return rtn, nil
	case map[string]any:
		rel, ok := tv["relative"]
		if !ok {
			return tv, nil
		}
		frame, err := p.resolveFrameId(rel)
		if err != nil {
			return nil, err
		}
		rtn := make(map[string]any, len(tv))
		for k, v := range tv {
			rtn[k] = v
		}
		rtn["relative"] = frame
		return rtn, nil
	}
	return val, nil
}

// resolveFrameId swaps a "#id" string for the frame created for that id.  Any other
// value is returned as is.
func (p *Player) resolveFrameId(val any) (any, error) {
	s, ok := val.(string)
	if !ok || !strings.HasPrefix(s, frameIdPrefix) {
		return val, nil
	}
	id := strings.TrimPrefix(s, frameIdPrefix)
	frame, ok := p.frames[id]
	if !ok {
		return nil, utilds.Errorf(utilds.ErrCode_Config, "unknown frame id %q", id)
	}
	return frame, nil
}

func (p *Player) handler(label string) *frameprops.Handler {
	if h, ok := p.handlers[label]; ok {
		return h
	}
	h := frameprops.NewLabeledHandler(label, func() {
		p.events = append(p.events, label)
	})
	p.handlers[label] = h
	return h
}

func (p *Player) ref(name string) *frameprops.Ref {
	if r, ok := p.refs[name]; ok {
		return r
	}
	r := &frameprops.Ref{}
	p.refs[name] = r
	return r
}

// Ref returns the frame the named ref currently holds.
func (p *Player) Ref(name string) frameapi.Frame {
	if r, ok := p.refs[name]; ok {
		return r.Current
	}
	return frameapi.NoFrame
}

func parseEvent(name string) (frameapi.FrameEvent, error) {
	if ev, ok := frameapi.ParseFrameEvent(name); ok {
		return ev, nil
	}
	if ev, ok := frameprops.EventProps[frameprops.PropName(name)]; ok {
		return ev, nil
	}
	return 0, fmt.Errorf("unknown frame event %q", name)
}
