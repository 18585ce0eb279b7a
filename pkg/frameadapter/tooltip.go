// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package frameadapter

import (
	"github.com/wavetermdev/waveframe/pkg/frameapi"
	"github.com/wavetermdev/waveframe/pkg/frameprops"
	"github.com/wavetermdev/waveframe/pkg/util/utilfn"
)

const TooltipFrameName = "Tooltip"

// setTooltip renders content into the frame's tooltip frame, creating the tooltip frame
// (a container under the game UI origin) the first time.  Clearing a tooltip that was
// never created is a no-op; clearing an existing one renders nil into it.
func (a *Adapter) setTooltip(frame frameapi.Frame, content any) error {
	renderer := a.getRenderer()
	if renderer == nil {
		return configErrorf(string(frameprops.Prop_Tooltip), "%s: tooltip requires a renderer", frame)
	}
	tooltip, ok := a.tooltips.GetEx(frame)
	if !ok {
		if utilfn.IsNilValue(content) {
			return nil
		}
		origin := a.kit.GetOriginFrame(frameapi.OriginGameUI, 0)
		var err error
		tooltip, err = a.CreateFrame("container", origin, frameprops.Props{string(frameprops.Prop_Name): TooltipFrameName})
		if err != nil {
			return err
		}
		a.tooltips.Set(frame, tooltip)
		a.kit.SetTooltip(frame, tooltip)
	}
	renderer.Render(content, tooltip)
	return nil
}

// TooltipOf returns the tooltip frame created for frame, if any.
func (a *Adapter) TooltipOf(frame frameapi.Frame) (frameapi.Frame, bool) {
	return a.tooltips.GetEx(frame)
}
