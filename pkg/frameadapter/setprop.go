// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package frameadapter

import (
	"errors"
	"fmt"

	"github.com/wavetermdev/waveframe/pkg/frameapi"
	"github.com/wavetermdev/waveframe/pkg/frameprops"
	"github.com/wavetermdev/waveframe/pkg/panichandler"
	"github.com/wavetermdev/waveframe/pkg/util/utilfn"
)

// propSetter applies one resolved value (never nil unless the prop's default is nil).
// oldVal is the value the prop had in the previous property set.
type propSetter func(a *Adapter, frame frameapi.Frame, val any, oldVal any) error

var propSetters map[frameprops.PropName]propSetter

func init() {
	propSetters = makePropSetters()
}

func makePropSetters() map[frameprops.PropName]propSetter {
	rtn := map[frameprops.PropName]propSetter{
		frameprops.Prop_Text: func(a *Adapter, frame frameapi.Frame, val any, _ any) error {
			s, err := frameprops.AsString(frameprops.Prop_Text, val)
			if err != nil {
				return err
			}
			a.kit.SetText(frame, s)
			return nil
		},
		frameprops.Prop_MaxLength:   intSetter(frameprops.Prop_MaxLength, frameapi.FrameSetter.SetTextSizeLimit),
		frameprops.Prop_TextColor:   intSetter(frameprops.Prop_TextColor, frameapi.FrameSetter.SetTextColor),
		frameprops.Prop_Alpha:       intSetter(frameprops.Prop_Alpha, frameapi.FrameSetter.SetAlpha),
		frameprops.Prop_Level:       intSetter(frameprops.Prop_Level, frameapi.FrameSetter.SetLevel),
		frameprops.Prop_VertexColor: intSetter(frameprops.Prop_VertexColor, frameapi.FrameSetter.SetVertexColor),
		frameprops.Prop_Visible:     boolSetter(frameprops.Prop_Visible, frameapi.FrameSetter.SetVisible),
		frameprops.Prop_Enabled:     boolSetter(frameprops.Prop_Enabled, frameapi.FrameSetter.SetEnable),
		frameprops.Prop_Value:       floatSetter(frameprops.Prop_Value, frameapi.FrameSetter.SetValue),
		frameprops.Prop_StepSize:    floatSetter(frameprops.Prop_StepSize, frameapi.FrameSetter.SetStepSize),
		frameprops.Prop_Scale:       floatSetter(frameprops.Prop_Scale, frameapi.FrameSetter.SetScale),

		frameprops.Prop_Texture: func(a *Adapter, frame frameapi.Frame, val any, _ any) error {
			tex, err := frameprops.AsTexture(val)
			if err != nil {
				return err
			}
			a.kit.SetTexture(frame, tex.TexFile, tex.Flag, tex.Blend)
			return nil
		},
		frameprops.Prop_Model: func(a *Adapter, frame frameapi.Frame, val any, _ any) error {
			model, err := frameprops.AsModel(val)
			if err != nil {
				return err
			}
			a.kit.SetModel(frame, model.ModelFile, model.CameraIndex)
			return nil
		},
		frameprops.Prop_Size: func(a *Adapter, frame frameapi.Frame, val any, _ any) error {
			size, err := frameprops.AsSize(val)
			if err != nil {
				return err
			}
			a.kit.SetSize(frame, a.conv.Convert(size.Width), a.conv.Convert(size.Height))
			return nil
		},
		frameprops.Prop_Font: func(a *Adapter, frame frameapi.Frame, val any, _ any) error {
			font, err := frameprops.AsFont(val)
			if err != nil {
				return err
			}
			a.kit.SetFont(frame, font.FileName, font.Height, font.Flags)
			return nil
		},
		frameprops.Prop_MinMaxValue: func(a *Adapter, frame frameapi.Frame, val any, _ any) error {
			mm, err := frameprops.AsMinMax(val)
			if err != nil {
				return err
			}
			a.kit.SetMinMaxValue(frame, mm.Min, mm.Max)
			return nil
		},
		frameprops.Prop_SpriteAnimate: func(a *Adapter, frame frameapi.Frame, val any, _ any) error {
			sa, err := frameprops.AsSpriteAnimate(val)
			if err != nil {
				return err
			}
			a.kit.SetSpriteAnimate(frame, sa.PrimaryProp, sa.Flags)
			return nil
		},
		frameprops.Prop_TextAlignment: func(a *Adapter, frame frameapi.Frame, val any, _ any) error {
			align, err := frameprops.AsTextAlignment(val)
			if err != nil {
				return err
			}
			a.kit.SetTextAlignment(frame, align.Vert, align.Horz)
			return nil
		},

		frameprops.Prop_Tooltip: func(a *Adapter, frame frameapi.Frame, val any, _ any) error {
			return a.setTooltip(frame, val)
		},
		frameprops.Prop_Position: func(a *Adapter, frame frameapi.Frame, val any, _ any) error {
			entries, err := frameprops.DecodePositions(val)
			if err != nil {
				return err
			}
			return a.applyPositions(frame, entries)
		},
		frameprops.Prop_AbsPosition: func(a *Adapter, frame frameapi.Frame, val any, _ any) error {
			entries, err := frameprops.DecodeAbsPositions(val)
			if err != nil {
				return err
			}
			for _, entry := range entries {
				if entry.Clear {
					a.kit.ClearAllPoints(frame)
					continue
				}
				x, y := entry.Anchor.Offset()
				a.kit.SetAbsPoint(frame, entry.Anchor.Point, a.conv.Convert(x), a.conv.Convert(y))
			}
			return nil
		},
		frameprops.Prop_Ref: func(a *Adapter, frame frameapi.Frame, val any, _ any) error {
			ref, err := frameprops.AsRef(frameprops.Prop_Ref, val)
			if err != nil {
				return err
			}
			if ref != nil {
				ref.Current = frame
			}
			return nil
		},
	}
	for name, event := range frameprops.EventProps {
		rtn[name] = eventSetter(name, event)
	}
	for _, name := range frameprops.AllProps() {
		if frameprops.IsCreationOnly(name) {
			rtn[name] = func(*Adapter, frameapi.Frame, any, any) error { return nil }
		}
	}
	return rtn
}

func intSetter(name frameprops.PropName, fn func(frameapi.FrameSetter, frameapi.Frame, int)) propSetter {
	return func(a *Adapter, frame frameapi.Frame, val any, _ any) error {
		v, err := frameprops.AsInt(name, val)
		if err != nil {
			return err
		}
		fn(a.kit, frame, v)
		return nil
	}
}

func floatSetter(name frameprops.PropName, fn func(frameapi.FrameSetter, frameapi.Frame, float64)) propSetter {
	return func(a *Adapter, frame frameapi.Frame, val any, _ any) error {
		v, err := frameprops.AsFloat(name, val)
		if err != nil {
			return err
		}
		fn(a.kit, frame, v)
		return nil
	}
}

func boolSetter(name frameprops.PropName, fn func(frameapi.FrameSetter, frameapi.Frame, bool)) propSetter {
	return func(a *Adapter, frame frameapi.Frame, val any, _ any) error {
		v, err := frameprops.AsBool(name, val)
		if err != nil {
			return err
		}
		fn(a.kit, frame, v)
		return nil
	}
}

func eventSetter(name frameprops.PropName, event frameapi.FrameEvent) propSetter {
	return func(a *Adapter, frame frameapi.Frame, val any, oldVal any) error {
		newHandler, err := frameprops.AsHandler(name, val)
		if err != nil {
			return err
		}
		// a malformed old value just means there is no old handler to match
		oldHandler, _ := frameprops.AsHandler(name, oldVal)
		a.triggers.setHandler(frame, event, newHandler, oldHandler)
		return nil
	}
}

// applyPositions applies each entry in order.  A bad entry is reported but does not
// stop the entries after it.
func (a *Adapter) applyPositions(frame frameapi.Frame, entries []frameprops.PositionEntry) error {
	var errs []error
	for idx, entry := range entries {
		switch {
		case entry.Token == frameprops.PositionToken_Clear:
			a.kit.ClearAllPoints(frame)
		case entry.Token == frameprops.PositionToken_Parent:
			a.kit.SetAllPoints(frame, a.kit.GetParent(frame))
		case entry.Anchor != nil:
			anchor := entry.Anchor
			relative, err := resolveRelative(a.kit, frame, anchor.Relative, anchor.RelativePoint)
			if err != nil {
				errs = append(errs, fmt.Errorf("position entry %d: %w", idx, err))
				continue
			}
			x, y := anchor.Offset()
			x, y = a.conv.Convert(x), a.conv.Convert(y)
			if !relative.IsNull() {
				a.kit.SetPoint(frame, anchor.Point, relative, anchor.RelativePoint, x, y)
				continue
			}
			// "previous" on a first child: anchor to the parent instead
			if parentPoint, ok := previousToParentPoint(anchor.RelativePoint); ok {
				a.kit.SetPoint(frame, anchor.Point, a.kit.GetParent(frame), parentPoint, x, y)
			}
		default:
			errs = append(errs, configErrorf(string(frameprops.Prop_Position), "position entry %d is empty", idx))
		}
	}
	return errors.Join(errs...)
}

// applyProp resolves a nil value to the prop's default and dispatches to its setter.
// A panicking setter is turned into an error.
func (a *Adapter) applyProp(frame frameapi.Frame, name string, value any, oldValue any) (rtnErr error) {
	defer func() {
		panicErr := panichandler.PanicHandler(fmt.Sprintf("frameadapter:setprop %q", name), recover())
		if panicErr != nil {
			rtnErr = panicErr
		}
	}()
	prop := frameprops.PropName(name)
	setter, ok := propSetters[prop]
	if !ok {
		return configErrorf(name, "unknown prop %q (value %v)", name, value)
	}
	val := value
	if utilfn.IsNilValue(val) {
		val, _ = frameprops.Default(prop)
	}
	if a.debugLog {
		a.logf("%s set %s = %v", frame, name, val)
	}
	return setter(a, frame, val, oldValue)
}
