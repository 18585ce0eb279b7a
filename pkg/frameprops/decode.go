// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package frameprops

import (
	"reflect"

	"github.com/wavetermdev/waveframe/pkg/frameapi"
	"github.com/wavetermdev/waveframe/pkg/util/utilfn"
	"github.com/wavetermdev/waveframe/pkg/utilds"
)

// Prop values arrive either typed (from Go callers) or loosely typed (decoded JSON or
// YAML: strings, float64s and map[string]any).  The As* functions accept both and
// return a config error naming the prop on a mismatch.

var (
	framePointType     = reflect.TypeOf(frameapi.FramePoint(0))
	textJustifyType    = reflect.TypeOf(frameapi.TextJustify(0))
	relativeTargetType = reflect.TypeOf(RelativeTarget{})
	frameType          = reflect.TypeOf(frameapi.NoFrame)
)

func propDecodeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	switch to {
	case framePointType:
		if s, ok := data.(string); ok {
			p, ok := frameapi.ParseFramePoint(s)
			if !ok {
				return nil, utilds.Errorf(utilds.ErrCode_Config, "invalid frame point %q", s)
			}
			return p, nil
		}
	case textJustifyType:
		if s, ok := data.(string); ok {
			j, ok := frameapi.ParseTextJustify(s)
			if !ok {
				return nil, utilds.Errorf(utilds.ErrCode_Config, "invalid text justify %q", s)
			}
			return j, nil
		}
	case relativeTargetType:
		return toRelativeTarget(data)
	}
	return data, nil
}

func toRelativeTarget(data any) (any, error) {
	switch tv := data.(type) {
	case RelativeTarget:
		return tv, nil
	case RelativeSymbol:
		if !tv.Valid() {
			return nil, utilds.Errorf(utilds.ErrCode_Config, "invalid relative target %q", string(tv))
		}
		return RelativeSym(tv), nil
	case string:
		sym := RelativeSymbol(tv)
		if !sym.Valid() {
			return nil, utilds.Errorf(utilds.ErrCode_Config, "invalid relative target %q", tv)
		}
		return RelativeSym(sym), nil
	case frameapi.Frame:
		return RelativeTo(tv), nil
	case map[string]any:
		return tv, nil
	}
	if n, ok := utilfn.ToInt(data); ok {
		return RelativeTo(frameapi.Frame(n)), nil
	}
	return nil, utilds.Errorf(utilds.ErrCode_Config, "invalid relative target %v (%T)", data, data)
}

func typeError(prop PropName, expected string, v any) error {
	return utilds.SubErrorf(utilds.ErrCode_Config, string(prop), "prop %q: expected %s, got %v (%T)", prop, expected, v, v)
}

func AsString(prop PropName, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", typeError(prop, "string", v)
	}
	return s, nil
}

func AsBool(prop PropName, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, typeError(prop, "bool", v)
	}
	return b, nil
}

func AsInt(prop PropName, v any) (int, error) {
	i, ok := utilfn.ToInt(v)
	if !ok {
		return 0, typeError(prop, "integer", v)
	}
	return i, nil
}

func AsFloat(prop PropName, v any) (float64, error) {
	f, ok := utilfn.ToFloat64(v)
	if !ok {
		return 0, typeError(prop, "number", v)
	}
	return f, nil
}

// AsFrame accepts a frame handle or an integer handle value.  nil is NoFrame.
func AsFrame(prop PropName, v any) (frameapi.Frame, error) {
	if utilfn.IsNilValue(v) {
		return frameapi.NoFrame, nil
	}
	if f, ok := v.(frameapi.Frame); ok {
		return f, nil
	}
	if i, ok := utilfn.ToInt(v); ok {
		return frameapi.Frame(i), nil
	}
	return frameapi.NoFrame, typeError(prop, "frame handle", v)
}

// AsHandler returns nil for an absent handler.  Bare funcs are rejected: a handler's
// identity has to survive re-renders, so it must be a *Handler (see NewHandler).
func AsHandler(prop PropName, v any) (*Handler, error) {
	if utilfn.IsNilValue(v) {
		return nil, nil
	}
	h, ok := v.(*Handler)
	if !ok {
		return nil, typeError(prop, "*frameprops.Handler", v)
	}
	return h, nil
}

func AsRef(prop PropName, v any) (*Ref, error) {
	if utilfn.IsNilValue(v) {
		return nil, nil
	}
	r, ok := v.(*Ref)
	if !ok {
		return nil, typeError(prop, "*frameprops.Ref", v)
	}
	return r, nil
}

func AsOnLoad(prop PropName, v any) (OnLoadFn, error) {
	if utilfn.IsNilValue(v) {
		return nil, nil
	}
	fn, ok := v.(func(frameapi.Frame))
	if !ok {
		return nil, typeError(prop, "func(frameapi.Frame)", v)
	}
	return fn, nil
}

type resolver[V any] interface {
	Resolve() V
}

// decodeRecord accepts the resolved value type, the partial record type (or a
// pointer to it), or a map of the record's json fields.
func decodeRecord[T resolver[V], V any](prop PropName, v any) (V, error) {
	var zero V
	switch tv := v.(type) {
	case V:
		return tv, nil
	case T:
		return tv.Resolve(), nil
	case *T:
		if tv == nil {
			var empty T
			return empty.Resolve(), nil
		}
		return (*tv).Resolve(), nil
	case map[string]any:
		var rec T
		err := utilfn.DoMapStructureWithHook(&rec, tv, propDecodeHook)
		if err != nil {
			return zero, utilds.SubErrorf(utilds.ErrCode_Config, string(prop), "prop %q: %w", prop, err)
		}
		return rec.Resolve(), nil
	}
	return zero, typeError(prop, reflect.TypeOf((*T)(nil)).Elem().String(), v)
}

func AsFont(v any) (FontValue, error) {
	return decodeRecord[Font, FontValue](Prop_Font, v)
}

func AsMinMax(v any) (MinMaxValue, error) {
	return decodeRecord[MinMax, MinMaxValue](Prop_MinMaxValue, v)
}

func AsModel(v any) (ModelValue, error) {
	return decodeRecord[Model, ModelValue](Prop_Model, v)
}

func AsSpriteAnimate(v any) (SpriteAnimateValue, error) {
	return decodeRecord[SpriteAnimate, SpriteAnimateValue](Prop_SpriteAnimate, v)
}

func AsTextAlignment(v any) (TextAlignmentValue, error) {
	return decodeRecord[TextAlignment, TextAlignmentValue](Prop_TextAlignment, v)
}

func AsSize(v any) (SizeValue, error) {
	return decodeRecord[Size, SizeValue](Prop_Size, v)
}

// AsTexture also accepts a bare file name, shorthand for {texFile: name}.
func AsTexture(v any) (TextureValue, error) {
	if s, ok := v.(string); ok {
		return Texture{TexFile: &s}.Resolve(), nil
	}
	return decodeRecord[Texture, TextureValue](Prop_Texture, v)
}
