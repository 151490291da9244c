// Copyright © 2015-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package render declares the RenderingBackend contract a progressive
// photon mapping implementation satisfies (§4.1, §6); render/cpu is
// the CPU implementation. A compute-shader or GPU-accelerated backend
// would implement the same interface.
package render

import (
	"github.com/gazed/rainbow/camera"
	"github.com/gazed/rainbow/scene"
	"github.com/gazed/rainbow/viewport"
)

// Backend associates itself with an immutable scene and writes
// per-frame radiance into a viewport.
type Backend interface {
	// Prepare associates the backend with scene and reserves working
	// buffers sized for a width x height viewport. Must be called
	// before Render.
	Prepare(s *scene.Scene, width, height int) error

	// Render writes pixel radiance for cam into vp, which must have
	// the dimensions passed to Prepare. Not required to be reentrant;
	// may be called repeatedly with the same or a different camera.
	Render(cam *camera.Camera, vp *viewport.Viewport) error
}
