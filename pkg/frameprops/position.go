// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package frameprops

import (
	"fmt"

	"github.com/wavetermdev/waveframe/pkg/frameapi"
	"github.com/wavetermdev/waveframe/pkg/util/utilfn"
	"github.com/wavetermdev/waveframe/pkg/utilds"
)

const (
	PositionToken_Parent = "parent"
	PositionToken_Clear  = "clear"
)

type RelativeSymbol string

const (
	Relative_Parent          RelativeSymbol = "parent"
	Relative_Previous        RelativeSymbol = "previous"
	Relative_Children        RelativeSymbol = "children"
	Relative_ChildrenReverse RelativeSymbol = "children-reverse"
)

func (s RelativeSymbol) Valid() bool {
	switch s {
	case Relative_Parent, Relative_Previous, Relative_Children, Relative_ChildrenReverse:
		return true
	}
	return false
}

// RelativeTarget is either a symbolic reference resolved against the frame tree at
// apply time, or a direct frame handle.
type RelativeTarget struct {
	Symbol RelativeSymbol `json:"symbol,omitempty"`
	Frame  frameapi.Frame `json:"frame,omitempty"`
}

func RelativeTo(frame frameapi.Frame) RelativeTarget {
	return RelativeTarget{Frame: frame}
}

func RelativeSym(sym RelativeSymbol) RelativeTarget {
	return RelativeTarget{Symbol: sym}
}

// IsZero reports an unset target, which anchors to the parent.
func (r RelativeTarget) IsZero() bool {
	return r.Symbol == "" && r.Frame.IsNull()
}

func (r RelativeTarget) IsSymbolic() bool {
	return r.Symbol != ""
}

func (r RelativeTarget) String() string {
	if r.IsSymbolic() {
		return string(r.Symbol)
	}
	return r.Frame.String()
}

type Anchor struct {
	Point         frameapi.FramePoint `json:"point"`
	Relative      RelativeTarget      `json:"relative"`
	RelativePoint frameapi.FramePoint `json:"relativePoint"`
	X             *float64            `json:"x,omitempty"`
	Y             *float64            `json:"y,omitempty"`
}

func (a Anchor) Offset() (float64, float64) {
	return valOr(a.X, 0), valOr(a.Y, 0)
}

type AbsAnchor struct {
	Point frameapi.FramePoint `json:"point"`
	X     *float64            `json:"x,omitempty"`
	Y     *float64            `json:"y,omitempty"`
}

func (a AbsAnchor) Offset() (float64, float64) {
	return valOr(a.X, 0), valOr(a.Y, 0)
}

// PositionEntry is one entry of a position prop: a token ("parent" or "clear") or an anchor.
type PositionEntry struct {
	Token  string
	Anchor *Anchor
}

type AbsPositionEntry struct {
	Clear  bool
	Anchor *AbsAnchor
}

func DecodePositions(v any) ([]PositionEntry, error) {
	if utilfn.IsNilValue(v) {
		return nil, nil
	}
	switch tv := v.(type) {
	case []PositionEntry:
		return tv, nil
	case []Anchor:
		rtn := make([]PositionEntry, len(tv))
		for i := range tv {
			anchor := tv[i]
			rtn[i] = PositionEntry{Anchor: &anchor}
		}
		return rtn, nil
	case []any:
		rtn := make([]PositionEntry, 0, len(tv))
		for idx, item := range tv {
			entry, err := decodePositionEntry(item)
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", idx, err)
			}
			rtn = append(rtn, entry)
		}
		return rtn, nil
	}
	entry, err := decodePositionEntry(v)
	if err != nil {
		return nil, err
	}
	return []PositionEntry{entry}, nil
}

func decodePositionEntry(v any) (PositionEntry, error) {
	switch tv := v.(type) {
	case PositionEntry:
		return tv, nil
	case string:
		if tv == PositionToken_Parent || tv == PositionToken_Clear {
			return PositionEntry{Token: tv}, nil
		}
		return PositionEntry{}, utilds.SubErrorf(utilds.ErrCode_Config, string(Prop_Position), "invalid position token %q (expected %q or %q)", tv, PositionToken_Parent, PositionToken_Clear)
	case Anchor:
		return PositionEntry{Anchor: &tv}, nil
	case *Anchor:
		if tv == nil {
			return PositionEntry{}, utilds.SubErrorf(utilds.ErrCode_Config, string(Prop_Position), "nil anchor")
		}
		anchor := *tv
		return PositionEntry{Anchor: &anchor}, nil
	case map[string]any:
		anchor, err := decodeAnchorMap(tv)
		if err != nil {
			return PositionEntry{}, err
		}
		return PositionEntry{Anchor: &anchor}, nil
	}
	return PositionEntry{}, utilds.SubErrorf(utilds.ErrCode_Config, string(Prop_Position), "invalid position entry %v (%T)", v, v)
}

func decodeAnchorMap(m map[string]any) (Anchor, error) {
	if _, ok := m["point"]; !ok {
		return Anchor{}, utilds.SubErrorf(utilds.ErrCode_Config, string(Prop_Position), "anchor is missing \"point\"")
	}
	if _, ok := m["relativePoint"]; !ok {
		return Anchor{}, utilds.SubErrorf(utilds.ErrCode_Config, string(Prop_Position), "anchor is missing \"relativePoint\"")
	}
	anchor := Anchor{Relative: RelativeSym(Relative_Parent)}
	err := utilfn.DoMapStructureWithHook(&anchor, m, propDecodeHook)
	if err != nil {
		return Anchor{}, utilds.SubErrorf(utilds.ErrCode_Config, string(Prop_Position), "invalid anchor: %w", err)
	}
	return anchor, nil
}

func DecodeAbsPositions(v any) ([]AbsPositionEntry, error) {
	if utilfn.IsNilValue(v) {
		return nil, nil
	}
	switch tv := v.(type) {
	case []AbsPositionEntry:
		return tv, nil
	case []AbsAnchor:
		rtn := make([]AbsPositionEntry, len(tv))
		for i := range tv {
			anchor := tv[i]
			rtn[i] = AbsPositionEntry{Anchor: &anchor}
		}
		return rtn, nil
	case []any:
		rtn := make([]AbsPositionEntry, 0, len(tv))
		for idx, item := range tv {
			entry, err := decodeAbsPositionEntry(item)
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", idx, err)
			}
			rtn = append(rtn, entry)
		}
		return rtn, nil
	}
	entry, err := decodeAbsPositionEntry(v)
	if err != nil {
		return nil, err
	}
	return []AbsPositionEntry{entry}, nil
}

func decodeAbsPositionEntry(v any) (AbsPositionEntry, error) {
	switch tv := v.(type) {
	case AbsPositionEntry:
		return tv, nil
	case string:
		if tv == PositionToken_Clear {
			return AbsPositionEntry{Clear: true}, nil
		}
		return AbsPositionEntry{}, utilds.SubErrorf(utilds.ErrCode_Config, string(Prop_AbsPosition), "invalid absPosition token %q (expected %q)", tv, PositionToken_Clear)
	case AbsAnchor:
		return AbsPositionEntry{Anchor: &tv}, nil
	case *AbsAnchor:
		if tv == nil {
			return AbsPositionEntry{}, utilds.SubErrorf(utilds.ErrCode_Config, string(Prop_AbsPosition), "nil anchor")
		}
		anchor := *tv
		return AbsPositionEntry{Anchor: &anchor}, nil
	case map[string]any:
		if _, ok := tv["point"]; !ok {
			return AbsPositionEntry{}, utilds.SubErrorf(utilds.ErrCode_Config, string(Prop_AbsPosition), "anchor is missing \"point\"")
		}
		var anchor AbsAnchor
		err := utilfn.DoMapStructureWithHook(&anchor, tv, propDecodeHook)
		if err != nil {
			return AbsPositionEntry{}, utilds.SubErrorf(utilds.ErrCode_Config, string(Prop_AbsPosition), "invalid anchor: %w", err)
		}
		return AbsPositionEntry{Anchor: &anchor}, nil
	}
	return AbsPositionEntry{}, utilds.SubErrorf(utilds.ErrCode_Config, string(Prop_AbsPosition), "invalid absPosition entry %v (%T)", v, v)
}
