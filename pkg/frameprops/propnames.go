// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package frameprops is the declarative property schema for native frames: the closed
// set of property names, their defaults, and the value types the adapter accepts.
package frameprops

import (
	"github.com/wavetermdev/waveframe/pkg/frameapi"
)

type PropName string

// Props is one declarative property set, keyed by PropName strings.
type Props = map[string]any

// creation-only
const (
	Prop_Name     PropName = "name"
	Prop_Priority PropName = "priority"
	Prop_IsSimple PropName = "isSimple"
	Prop_TypeName PropName = "typeName"
	Prop_Inherits PropName = "inherits"
	Prop_Context  PropName = "context"
	Prop_Key      PropName = "key"
)

// lifecycle (consumed by the reconciler or at creation)
const (
	Prop_Children    PropName = "children"
	Prop_ParentFrame PropName = "parentFrame"
	Prop_OnLoad      PropName = "onLoad"
)

const (
	Prop_Alpha         PropName = "alpha"
	Prop_Enabled       PropName = "enabled"
	Prop_Font          PropName = "font"
	Prop_Level         PropName = "level"
	Prop_MaxLength     PropName = "maxLength"
	Prop_MinMaxValue   PropName = "minMaxValue"
	Prop_Model         PropName = "model"
	Prop_Scale         PropName = "scale"
	Prop_SpriteAnimate PropName = "spriteAnimate"
	Prop_StepSize      PropName = "stepSize"
	Prop_Text          PropName = "text"
	Prop_TextAlignment PropName = "textAlignment"
	Prop_TextColor     PropName = "textColor"
	Prop_Texture       PropName = "texture"
	Prop_Tooltip       PropName = "tooltip"
	Prop_Value         PropName = "value"
	Prop_VertexColor   PropName = "vertexColor"
	Prop_Visible       PropName = "visible"
	Prop_Position      PropName = "position"
	Prop_AbsPosition   PropName = "absPosition"
	Prop_Size          PropName = "size"
	Prop_Ref           PropName = "ref"
)

const (
	Prop_OnClick                PropName = "onClick"
	Prop_OnMouseEnter           PropName = "onMouseEnter"
	Prop_OnMouseLeave           PropName = "onMouseLeave"
	Prop_OnMouseUp              PropName = "onMouseUp"
	Prop_OnMouseDown            PropName = "onMouseDown"
	Prop_OnMouseWheel           PropName = "onMouseWheel"
	Prop_OnCheckboxChecked      PropName = "onCheckboxChecked"
	Prop_OnCheckboxUnchecked    PropName = "onCheckboxUnchecked"
	Prop_OnEditboxTextChanged   PropName = "onEditboxTextChanged"
	Prop_OnPopupmenuItemChanged PropName = "onPopupmenuItemChanged"
	Prop_OnDoubleClick          PropName = "onDoubleClick"
	Prop_OnSpriteAnimUpdate     PropName = "onSpriteAnimUpdate"
	Prop_OnSliderChanged        PropName = "onSliderChanged"
	Prop_OnDialogCancel         PropName = "onDialogCancel"
	Prop_OnDialogAccept         PropName = "onDialogAccept"
	Prop_OnEditboxEnter         PropName = "onEditboxEnter"
)

type Category int

const (
	Category_Immutable Category = iota
	Category_Lifecycle
	Category_Scalar
	Category_Compound
	Category_Layout
	Category_Tooltip
	Category_Ref
	Category_Event
)

func (c Category) String() string {
	switch c {
	case Category_Immutable:
		return "immutable"
	case Category_Lifecycle:
		return "lifecycle"
	case Category_Scalar:
		return "scalar"
	case Category_Compound:
		return "compound"
	case Category_Layout:
		return "layout"
	case Category_Tooltip:
		return "tooltip"
	case Category_Ref:
		return "ref"
	case Category_Event:
		return "event"
	}
	return "unknown"
}

type propInfo struct {
	Name     PropName
	Category Category
}

// declaration order is also the order the adapter applies props within one pass
var propSchema = []propInfo{
	{Prop_Name, Category_Immutable},
	{Prop_Priority, Category_Immutable},
	{Prop_IsSimple, Category_Immutable},
	{Prop_TypeName, Category_Immutable},
	{Prop_Inherits, Category_Immutable},
	{Prop_Context, Category_Immutable},
	{Prop_Key, Category_Immutable},

	{Prop_Children, Category_Lifecycle},
	{Prop_ParentFrame, Category_Lifecycle},
	{Prop_OnLoad, Category_Lifecycle},

	{Prop_Alpha, Category_Scalar},
	{Prop_Enabled, Category_Scalar},
	{Prop_Font, Category_Compound},
	{Prop_Level, Category_Scalar},
	{Prop_MaxLength, Category_Scalar},
	{Prop_MinMaxValue, Category_Compound},
	{Prop_Model, Category_Compound},
	{Prop_Scale, Category_Scalar},
	{Prop_SpriteAnimate, Category_Compound},
	{Prop_StepSize, Category_Scalar},
	{Prop_Text, Category_Scalar},
	{Prop_TextAlignment, Category_Compound},
	{Prop_TextColor, Category_Scalar},
	{Prop_Texture, Category_Compound},
	{Prop_Tooltip, Category_Tooltip},
	{Prop_Value, Category_Scalar},
	{Prop_VertexColor, Category_Scalar},
	{Prop_Visible, Category_Scalar},
	{Prop_Size, Category_Compound},
	{Prop_Position, Category_Layout},
	{Prop_AbsPosition, Category_Layout},
	{Prop_Ref, Category_Ref},

	{Prop_OnClick, Category_Event},
	{Prop_OnMouseEnter, Category_Event},
	{Prop_OnMouseLeave, Category_Event},
	{Prop_OnMouseUp, Category_Event},
	{Prop_OnMouseDown, Category_Event},
	{Prop_OnMouseWheel, Category_Event},
	{Prop_OnCheckboxChecked, Category_Event},
	{Prop_OnCheckboxUnchecked, Category_Event},
	{Prop_OnEditboxTextChanged, Category_Event},
	{Prop_OnPopupmenuItemChanged, Category_Event},
	{Prop_OnDoubleClick, Category_Event},
	{Prop_OnSpriteAnimUpdate, Category_Event},
	{Prop_OnSliderChanged, Category_Event},
	{Prop_OnDialogCancel, Category_Event},
	{Prop_OnDialogAccept, Category_Event},
	{Prop_OnEditboxEnter, Category_Event},
}

var EventProps = map[PropName]frameapi.FrameEvent{
	Prop_OnClick:                frameapi.EventControlClick,
	Prop_OnMouseEnter:           frameapi.EventMouseEnter,
	Prop_OnMouseLeave:           frameapi.EventMouseLeave,
	Prop_OnMouseUp:              frameapi.EventMouseUp,
	Prop_OnMouseDown:            frameapi.EventMouseDown,
	Prop_OnMouseWheel:           frameapi.EventMouseWheel,
	Prop_OnCheckboxChecked:      frameapi.EventCheckboxChecked,
	Prop_OnCheckboxUnchecked:    frameapi.EventCheckboxUnchecked,
	Prop_OnEditboxTextChanged:   frameapi.EventEditboxTextChanged,
	Prop_OnPopupmenuItemChanged: frameapi.EventPopupmenuItemChanged,
	Prop_OnDoubleClick:          frameapi.EventMouseDoubleClick,
	Prop_OnSpriteAnimUpdate:     frameapi.EventSpriteAnimUpdate,
	Prop_OnSliderChanged:        frameapi.EventSliderValueChanged,
	Prop_OnDialogCancel:         frameapi.EventDialogCancel,
	Prop_OnDialogAccept:         frameapi.EventDialogAccept,
	Prop_OnEditboxEnter:         frameapi.EventEditboxEnter,
}

var propIndex = func() map[PropName]int {
	rtn := make(map[PropName]int, len(propSchema))
	for idx, info := range propSchema {
		rtn[info.Name] = idx
	}
	return rtn
}()

// AllProps returns every known property name in schema order.
func AllProps() []PropName {
	rtn := make([]PropName, len(propSchema))
	for i, info := range propSchema {
		rtn[i] = info.Name
	}
	return rtn
}

func IsKnown(name PropName) bool {
	_, ok := propIndex[name]
	return ok
}

// SchemaIndex returns the position of name in schema order, or -1 if unknown.
func SchemaIndex(name PropName) int {
	idx, ok := propIndex[name]
	if !ok {
		return -1
	}
	return idx
}

func CategoryOf(name PropName) (Category, bool) {
	idx, ok := propIndex[name]
	if !ok {
		return 0, false
	}
	return propSchema[idx].Category, true
}

// IsCreationOnly reports props that are consumed when a frame is created and never
// re-applied on update.
func IsCreationOnly(name PropName) bool {
	cat, ok := CategoryOf(name)
	return ok && (cat == Category_Immutable || cat == Category_Lifecycle)
}
