// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package frameprops

import (
	"github.com/google/uuid"
	"github.com/wavetermdev/waveframe/pkg/frameapi"
)

const DefaultFrameName = "AnonymousFrame"

var (
	DefaultFont          = FontValue{FileName: "", Height: 16, Flags: 0}
	DefaultMinMax        = MinMaxValue{Min: -999999999, Max: 999999999}
	DefaultModel         = ModelValue{ModelFile: "", CameraIndex: 0}
	DefaultSpriteAnimate = SpriteAnimateValue{PrimaryProp: 0, Flags: 0}
	DefaultTextAlignment = TextAlignmentValue{Vert: frameapi.JustifyTop, Horz: frameapi.JustifyLeft}
	DefaultTexture       = TextureValue{TexFile: "", Flag: 0, Blend: true}
	DefaultSize          = SizeValue{Width: 0, Height: 0}
)

// Handler is an event handler prop value. Its Id is the handler's identity: the
// adapter keys trigger bindings by it, and two Handlers are the same handler only if
// they are the same pointer.
type Handler struct {
	Id    string
	Label string
	Fn    func()
}

func NewHandler(fn func()) *Handler {
	return &Handler{Id: uuid.New().String(), Fn: fn}
}

func NewLabeledHandler(label string, fn func()) *Handler {
	return &Handler{Id: uuid.New().String(), Label: label, Fn: fn}
}

func (h *Handler) Call() {
	if h == nil || h.Fn == nil {
		return
	}
	h.Fn()
}

// Ref receives the frame handle when the frame is created or the ref prop is applied.
type Ref struct {
	Current frameapi.Frame
}

type OnLoadFn = func(frame frameapi.Frame)

// nil entries are props whose default is "absent"
var defaultTable = map[PropName]any{
	Prop_Name:     DefaultFrameName,
	Prop_Priority: 0,
	Prop_IsSimple: true,
	Prop_TypeName: nil,
	Prop_Inherits: "",
	Prop_Context:  0,
	Prop_Key:      nil,

	Prop_Children:    nil,
	Prop_ParentFrame: nil,
	Prop_OnLoad:      nil,

	Prop_Alpha:         255,
	Prop_Enabled:       true,
	Prop_Font:          DefaultFont,
	Prop_Level:         0,
	Prop_MaxLength:     9999,
	Prop_MinMaxValue:   DefaultMinMax,
	Prop_Model:         DefaultModel,
	Prop_Scale:         1.0,
	Prop_SpriteAnimate: DefaultSpriteAnimate,
	Prop_StepSize:      0.0,
	Prop_Text:          "",
	Prop_TextAlignment: DefaultTextAlignment,
	Prop_TextColor:     0xffffff,
	Prop_Texture:       DefaultTexture,
	Prop_Tooltip:       nil,
	Prop_Value:         0.0,
	Prop_VertexColor:   0xffffff,
	Prop_Visible:       true,
	Prop_Position:      nil,
	Prop_AbsPosition:   nil,
	Prop_Size:          DefaultSize,
	Prop_Ref:           nil,

	Prop_OnClick:                nil,
	Prop_OnMouseEnter:           nil,
	Prop_OnMouseLeave:           nil,
	Prop_OnMouseUp:              nil,
	Prop_OnMouseDown:            nil,
	Prop_OnMouseWheel:           nil,
	Prop_OnCheckboxChecked:      nil,
	Prop_OnCheckboxUnchecked:    nil,
	Prop_OnEditboxTextChanged:   nil,
	Prop_OnPopupmenuItemChanged: nil,
	Prop_OnDoubleClick:          nil,
	Prop_OnSpriteAnimUpdate:     nil,
	Prop_OnSliderChanged:        nil,
	Prop_OnDialogCancel:         nil,
	Prop_OnDialogAccept:         nil,
	Prop_OnEditboxEnter:         nil,
}

// Default returns the value a prop takes when a property set omits it.
func Default(name PropName) (any, bool) {
	v, ok := defaultTable[name]
	return v, ok
}

// DefaultTable returns a copy of the default property table keyed by prop name.
func DefaultTable() Props {
	rtn := make(Props, len(defaultTable))
	for name, v := range defaultTable {
		rtn[string(name)] = v
	}
	return rtn
}
