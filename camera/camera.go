// Copyright © 2015-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package camera holds a pose (position, yaw, pitch, field of view)
// and derives the right/up/forward basis and per-pixel view rays the
// CPU backend casts each frame (§4.6).
//
// Package camera is provided as part of the rainbow photon mapping
// renderer.
package camera

import (
	"math"

	"github.com/gazed/rainbow/geom"
)

// Camera stores pose and field-of-view. HorizontalFOV is unused and
// reserved, matching the source's NaN placeholder.
type Camera struct {
	Position               geom.Vector3
	Yaw, Pitch             float32
	VerticalFOV            float32
	HorizontalFOV          float32
}

// New returns a camera at the origin looking down +Z.
func New() *Camera {
	return &Camera{
		VerticalFOV:   math.Pi / 2,
		HorizontalFOV: float32(math.NaN()),
	}
}

// Move translates the camera's position by offset.
func (c *Camera) Move(offset geom.Vector3) {
	c.Position = c.Position.Add(offset)
}

// Rotate adds dyaw/dpitch to the camera's angles without clamping.
func (c *Camera) Rotate(dyaw, dpitch float32) {
	c.Yaw += dyaw
	c.Pitch += dpitch
}

// AxisVectors returns the columns of the yaw/pitch/roll=0 rotation
// matrix: right, up, forward, in that order.
func (c *Camera) AxisVectors() (right, up, forward geom.Vector3) {
	sy, cy := sincos(c.Yaw)
	sp, cp := sincos(c.Pitch)

	right = geom.Vector3{cy, 0, -sy}
	up = geom.Vector3{sy * sp, cp, cy * sp}
	forward = geom.Vector3{sy * cp, -sp, cy * cp}
	return right, up, forward
}

func sincos(a float32) (s, c float32) {
	sf, cf := math.Sincos(float64(a))
	return float32(sf), float32(cf)
}

// ViewRay constructs the eye ray for pixel (x,y) in a w×h viewport
// (§4.1 step 1, §4.6). w and h must both be greater than 1.
func (c *Camera) ViewRay(x, y, w, h int) geom.Ray {
	right, up, forward := c.AxisVectors()

	xn := float32(x)/float32(w-1) - 0.5
	yn := -(float32(y)/float32(h-1) - 0.5)

	dir := right.Scale(xn).Add(up.Scale(yn)).Add(forward).Normalize()
	return geom.Ray{Origin: c.Position, Direction: dir}
}
