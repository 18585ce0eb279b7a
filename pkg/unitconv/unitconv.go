// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package unitconv maps sizes and offsets into the toolkit's measurement space.
// Values strictly between -1 and 1 are already normalized (0.8 spans the width of the
// 4:3 box, 0.6 its height); anything else is treated as pixels and divided by the
// pixel scale.
package unitconv

import "sync"

const BaseWidth = 1600
const AspectFactor = 1.25

const DefaultScale = BaseWidth * AspectFactor

type Converter struct {
	lock  *sync.RWMutex
	scale float64
}

func MakeConverter() *Converter {
	return &Converter{lock: &sync.RWMutex{}, scale: DefaultScale}
}

// SetPixelScale sets the pixel width of the full screen. It stays in effect for every
// later conversion; there is no reset.
func (c *Converter) SetPixelScale(width float64) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.scale = width * AspectFactor
}

func (c *Converter) Scale() float64 {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.scale
}

func (c *Converter) Convert(size float64) float64 {
	if size > -1 && size < 1 {
		return size
	}
	return size / c.Scale()
}
