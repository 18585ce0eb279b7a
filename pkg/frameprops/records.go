// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package frameprops

import (
	"github.com/wavetermdev/waveframe/pkg/frameapi"
)

// Compound props are partial records: every field is optional and a missing field
// resolves to that field's default on its own.

func Ptr[T any](v T) *T {
	return &v
}

func valOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

type Font struct {
	FileName *string  `json:"fileName,omitempty"`
	Height   *float64 `json:"height,omitempty"`
	Flags    *int     `json:"flags,omitempty"`
}

type FontValue struct {
	FileName string  `json:"fileName"`
	Height   float64 `json:"height"`
	Flags    int     `json:"flags"`
}

func (f Font) Resolve() FontValue {
	return FontValue{
		FileName: valOr(f.FileName, DefaultFont.FileName),
		Height:   valOr(f.Height, DefaultFont.Height),
		Flags:    valOr(f.Flags, DefaultFont.Flags),
	}
}

type MinMax struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

type MinMaxValue struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (m MinMax) Resolve() MinMaxValue {
	return MinMaxValue{
		Min: valOr(m.Min, DefaultMinMax.Min),
		Max: valOr(m.Max, DefaultMinMax.Max),
	}
}

type Model struct {
	ModelFile   *string `json:"modelFile,omitempty"`
	CameraIndex *int    `json:"cameraIndex,omitempty"`
}

type ModelValue struct {
	ModelFile   string `json:"modelFile"`
	CameraIndex int    `json:"cameraIndex"`
}

func (m Model) Resolve() ModelValue {
	return ModelValue{
		ModelFile:   valOr(m.ModelFile, DefaultModel.ModelFile),
		CameraIndex: valOr(m.CameraIndex, DefaultModel.CameraIndex),
	}
}

type SpriteAnimate struct {
	PrimaryProp *int `json:"primaryProp,omitempty"`
	Flags       *int `json:"flags,omitempty"`
}

type SpriteAnimateValue struct {
	PrimaryProp int `json:"primaryProp"`
	Flags       int `json:"flags"`
}

func (s SpriteAnimate) Resolve() SpriteAnimateValue {
	return SpriteAnimateValue{
		PrimaryProp: valOr(s.PrimaryProp, DefaultSpriteAnimate.PrimaryProp),
		Flags:       valOr(s.Flags, DefaultSpriteAnimate.Flags),
	}
}

// Texture may also be given as a bare file name string.
type Texture struct {
	TexFile *string `json:"texFile,omitempty"`
	Flag    *int    `json:"flag,omitempty"`
	Blend   *bool   `json:"blend,omitempty"`
}

type TextureValue struct {
	TexFile string `json:"texFile"`
	Flag    int    `json:"flag"`
	Blend   bool   `json:"blend"`
}

func (t Texture) Resolve() TextureValue {
	return TextureValue{
		TexFile: valOr(t.TexFile, DefaultTexture.TexFile),
		Flag:    valOr(t.Flag, DefaultTexture.Flag),
		Blend:   valOr(t.Blend, DefaultTexture.Blend),
	}
}

type TextAlignment struct {
	Vert *frameapi.TextJustify `json:"vert,omitempty"`
	Horz *frameapi.TextJustify `json:"horz,omitempty"`
}

type TextAlignmentValue struct {
	Vert frameapi.TextJustify `json:"vert"`
	Horz frameapi.TextJustify `json:"horz"`
}

func (t TextAlignment) Resolve() TextAlignmentValue {
	return TextAlignmentValue{
		Vert: valOr(t.Vert, DefaultTextAlignment.Vert),
		Horz: valOr(t.Horz, DefaultTextAlignment.Horz),
	}
}

// Size fields are in either normalized or pixel units (see unitconv).
type Size struct {
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

type SizeValue struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (s Size) Resolve() SizeValue {
	return SizeValue{
		Width:  valOr(s.Width, DefaultSize.Width),
		Height: valOr(s.Height, DefaultSize.Height),
	}
}
