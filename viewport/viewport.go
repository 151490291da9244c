// Copyright © 2015-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package viewport is the rectangular float4 pixel buffer the CPU
// render backend writes radiance into (§3, §6).
//
// Package viewport is provided as part of the rainbow photon mapping
// renderer.
package viewport

import "github.com/gazed/rainbow/geom"

// Viewport is a W*H array of Vector4 pixels, row-major, origin at the
// top-left.
type Viewport struct {
	width, height int
	pixels        []geom.Vector4
}

// New returns a viewport of the given dimensions, cleared to black.
func New(width, height int) *Viewport {
	return &Viewport{
		width:  width,
		height: height,
		pixels: make([]geom.Vector4, width*height),
	}
}

// Width and Height return the viewport's dimensions.
func (v *Viewport) Width() int  { return v.width }
func (v *Viewport) Height() int { return v.height }

func (v *Viewport) index(x, y int) int { return y*v.width + x }

// GetPixel returns the color at (x,y).
func (v *Viewport) GetPixel(x, y int) geom.Vector4 {
	return v.pixels[v.index(x, y)]
}

// SetPixel writes the color at (x,y).
func (v *Viewport) SetPixel(x, y int, c geom.Vector4) {
	v.pixels[v.index(x, y)] = c
}

// Clear resets every pixel to c. Calling Clear repeatedly with the
// same color is idempotent.
func (v *Viewport) Clear(c geom.Vector4) {
	for i := range v.pixels {
		v.pixels[i] = c
	}
}

// Pixels returns the backing pixel array, row-major from the
// top-left.
func (v *Viewport) Pixels() []geom.Vector4 {
	return v.pixels
}
