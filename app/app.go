// Copyright © 2015-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package app is the out-of-core-scope Application surface (§6):
// camera input dispatch and a Director-style callback interface for an
// interactive host loop. Neither the photon mapping pipeline nor its
// tests depend on this package; it exists only to the extent §6
// requires it.
package app

import (
	"github.com/gazed/rainbow/camera"
	"github.com/gazed/rainbow/geom"
	"github.com/gazed/rainbow/render"
	"github.com/gazed/rainbow/viewport"
)

// Input is the current frame's user input, refreshed once per Update
// call, mirroring the engine's Input/convertInput split between raw
// device state and per-tick deltas.
type Input struct {
	Mx, My   int            // current cursor location
	DeltaX   int            // mouse movement since the last frame
	DeltaY   int
	Dragging bool           // true while the left mouse button is held
	Down     map[string]int // keys currently pressed, keyed by name
	Dt       float64        // seconds since the last Update call
}

// Director is implemented by the interactive host application. A host
// loop calls Dispatch to turn input into camera motion, then Update to
// let the application react before deciding whether to re-render.
type Director interface {
	// Create is called once after the backend and scene are ready.
	Create(backend render.Backend, cam *camera.Camera, vp *viewport.Viewport)

	// Update is called every frame with the latest input; it returns
	// true if the scene changed and the frame needs to be re-rendered.
	Update(in *Input, cam *camera.Camera) (redraw bool)
}

// rotateScale and translateSpeed are the §6 input constants.
const (
	rotateScale   = 0.01 // radians per pixel of mouse drag
	translateSpeed = 1.0  // world units per second
)

// Dispatch applies one frame of §6 input to cam: mouse left-drag
// rotates, W/A/S/D/E/Q translate along the camera's own axes. It
// reports whether the camera actually changed, so a caller can skip an
// unnecessary re-render.
func Dispatch(in *Input, cam *camera.Camera) (moved bool) {
	if in.Dragging && (in.DeltaX != 0 || in.DeltaY != 0) {
		cam.Rotate(float32(in.DeltaX)*rotateScale, -float32(in.DeltaY)*rotateScale)
		moved = true
	}

	right, up, forward := cam.AxisVectors()
	dist := float32(translateSpeed * in.Dt)
	offset := geom.Vector3{}

	applyAxis := func(key string, axis geom.Vector3) {
		if _, down := in.Down[key]; !down {
			return
		}
		offset = offset.Add(axis.Scale(dist))
	}

	applyAxis("W", forward)
	applyAxis("S", forward.Neg())
	applyAxis("A", right.Neg())
	applyAxis("D", right)
	applyAxis("E", up)
	applyAxis("Q", up.Neg())

	if offset != (geom.Vector3{}) {
		cam.Move(offset)
		moved = true
	}
	return moved
}
