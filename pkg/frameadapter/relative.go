// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package frameadapter

import (
	"slices"

	"github.com/wavetermdev/waveframe/pkg/frameapi"
	"github.com/wavetermdev/waveframe/pkg/frameprops"
)

// anchoring against "children" uses the first child for these points...
var firstChildRelativePoints = []frameapi.FramePoint{
	frameapi.PointTopLeft,
	frameapi.PointTop,
	frameapi.PointLeft,
}

// ...and the last child for these
var lastChildRelativePoints = []frameapi.FramePoint{
	frameapi.PointRight,
	frameapi.PointBottom,
	frameapi.PointBottomRight,
}

// resolveRelative turns a relative target into a frame.  NoFrame means "previous" was
// used on a first child; the caller falls back to the parent (previousToParentPoint).
func resolveRelative(tree frameapi.FrameTree, frame frameapi.Frame, target frameprops.RelativeTarget, relativePoint frameapi.FramePoint) (frameapi.Frame, error) {
	if target.IsZero() {
		target = frameprops.RelativeSym(frameprops.Relative_Parent)
	}
	if !target.IsSymbolic() {
		return target.Frame, nil
	}
	switch target.Symbol {
	case frameprops.Relative_Parent:
		return tree.GetParent(frame), nil

	case frameprops.Relative_Previous:
		parent := tree.GetParent(frame)
		count := tree.GetChildrenCount(parent)
		index := -1
		for i := 0; i < count; i++ {
			if tree.GetChild(parent, i) == frame {
				index = i
				break
			}
		}
		if index > 0 {
			return tree.GetChild(parent, index-1), nil
		}
		return frameapi.NoFrame, nil

	case frameprops.Relative_Children:
		if slices.Contains(firstChildRelativePoints, relativePoint) {
			return tree.GetChild(frame, 0), nil
		}
		if slices.Contains(lastChildRelativePoints, relativePoint) {
			return lastChild(tree, frame), nil
		}
		return frameapi.NoFrame, childrenPointError(target.Symbol, relativePoint)

	case frameprops.Relative_ChildrenReverse:
		if slices.Contains(lastChildRelativePoints, relativePoint) {
			return tree.GetChild(frame, 0), nil
		}
		if slices.Contains(firstChildRelativePoints, relativePoint) {
			return lastChild(tree, frame), nil
		}
		return frameapi.NoFrame, childrenPointError(target.Symbol, relativePoint)
	}
	return frameapi.NoFrame, configErrorf(string(frameprops.Prop_Position), "invalid relative target %q", string(target.Symbol))
}

func lastChild(tree frameapi.FrameTree, frame frameapi.Frame) frameapi.Frame {
	count := tree.GetChildrenCount(frame)
	if count == 0 {
		return frameapi.NoFrame
	}
	return tree.GetChild(frame, count-1)
}

func childrenPointError(sym frameprops.RelativeSymbol, relativePoint frameapi.FramePoint) error {
	return configErrorf(string(frameprops.Prop_Position), "when using relative=%s, expected relativePoint to be in %v or %v, got %s", sym, firstChildRelativePoints, lastChildRelativePoints, relativePoint)
}

// previousToParentPoint maps the point used against a previous sibling to the point
// used against the parent when there is no previous sibling.  Stacking to the right
// starts from the parent's left edge, stacking downward from its top.
func previousToParentPoint(relativePoint frameapi.FramePoint) (frameapi.FramePoint, bool) {
	switch relativePoint {
	case frameapi.PointRight:
		return frameapi.PointLeft, true
	case frameapi.PointBottom:
		return frameapi.PointTop, true
	case frameapi.PointBottomLeft:
		return frameapi.PointTopLeft, true
	case frameapi.PointBottomRight:
		return frameapi.PointTopRight, true
	}
	return 0, false
}
