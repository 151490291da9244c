// Copyright © 2015-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package viewport

import (
	"image/color"
	"testing"

	"github.com/gazed/rainbow/geom"
)

func TestSetGetPixel(t *testing.T) {
	v := New(4, 3)
	c := geom.Vector4{0.1, 0.2, 0.3, 1}
	v.SetPixel(2, 1, c)
	if got := v.GetPixel(2, 1); got != c {
		t.Fatalf("got %v, want %v", got, c)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	v := New(4, 4)
	black := geom.Vector4{0, 0, 0, 1}
	v.Clear(black)
	first := append([]geom.Vector4(nil), v.Pixels()...)
	v.Clear(black)
	second := v.Pixels()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("pixel %d changed across idempotent Clear: %v -> %v", i, first[i], second[i])
		}
	}
}

func TestClearOverwritesPriorContents(t *testing.T) {
	v := New(2, 2)
	v.SetPixel(0, 0, geom.Vector4{1, 1, 1, 1})
	v.Clear(geom.Vector4{0, 0, 0, 0})
	if got := v.GetPixel(0, 0); got != (geom.Vector4{0, 0, 0, 0}) {
		t.Fatalf("got %v after clear, want zero", got)
	}
}

func TestAsImageBounds(t *testing.T) {
	v := New(5, 7)
	img := v.AsImage()
	b := img.Bounds()
	if b.Dx() != 5 || b.Dy() != 7 {
		t.Fatalf("got bounds %v, want 5x7", b)
	}
}

func TestAsImageClampsRadiance(t *testing.T) {
	v := New(1, 1)
	v.SetPixel(0, 0, geom.Vector4{2.0, -1.0, 0.5, 1})
	img := v.AsImage()
	got := img.At(0, 0).(color.NRGBA)
	if got.R != 255 {
		t.Fatalf("R = %d, want 255 (clamped)", got.R)
	}
	if got.G != 0 {
		t.Fatalf("G = %d, want 0 (clamped)", got.G)
	}
}
