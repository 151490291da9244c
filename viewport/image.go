// Copyright © 2015-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package viewport

import (
	"image"
	"image/color"
)

// AsImage adapts a Viewport to image.Image, mapping each Vector4
// radiance value to 8-bit channels via a linear clamp to [0,1] (no
// sRGB gamma curve is applied), so a rendered frame
// can be written out with image/png or resampled with
// golang.org/x/image/draw.
func (v *Viewport) AsImage() image.Image {
	return &viewportImage{v: v}
}

type viewportImage struct {
	v *Viewport
}

func (i *viewportImage) ColorModel() color.Model { return color.NRGBAModel }

func (i *viewportImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, i.v.width, i.v.height)
}

func (i *viewportImage) At(x, y int) color.Color {
	c := i.v.GetPixel(x, y)
	return color.NRGBA{
		R: clamp8(c.X()),
		G: clamp8(c.Y()),
		B: clamp8(c.Z()),
		A: 255,
	}
}

func clamp8(f float32) uint8 {
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return uint8(f * 255)
}
