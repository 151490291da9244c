// Copyright © 2015-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package cpu implements render.Backend as a progressive photon
// mapping pass run entirely on the CPU (§4.1): eye-ray hitpoint
// generation, photon emission and tracing, k-d tree build, and
// parallel radiance estimation.
//
// Package cpu is provided as part of the rainbow photon mapping
// renderer.
package cpu

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/gazed/rainbow/camera"
	"github.com/gazed/rainbow/geom"
	"github.com/gazed/rainbow/photonmap"
	"github.com/gazed/rainbow/pool"
	"github.com/gazed/rainbow/scene"
	"github.com/gazed/rainbow/viewport"
)

// hitpoint mirrors §3's Hitpoint record.
type hitpoint struct {
	pixelX, pixelY int
	position       geom.Vector3
	normal         geom.Vector3
	incoming       geom.Vector3
	materialIndex  uint32
	radianceEst    geom.Vector4
	radius         float32
}

// Backend is the CPU RenderingBackend. Not safe to Render concurrently
// with itself; Prepare must be called once before the first Render.
type Backend struct {
	cfg   config
	pool  *pool.Pool
	scene *scene.Scene
	w, h  int

	hitpoints     []hitpoint
	hitpointsMu   sync.Mutex
	emitted       []photonmap.Photon
	traced        []photonmap.Photon
}

// New constructs a CPU backend with the §4.1 defaults, overridable via
// Option.
func New(opts ...Option) *Backend {
	cfg := configDefaults
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Backend{cfg: cfg}
}

// Prepare associates the backend with an immutable scene, records the
// width x height viewport size Render expects, and starts its worker
// pool.
func (b *Backend) Prepare(s *scene.Scene, width, height int) error {
	if s == nil {
		return fmt.Errorf("cpu: Prepare called with a nil scene")
	}
	if !s.Loaded() {
		return fmt.Errorf("cpu: Prepare called with a scene that was never Load'ed")
	}
	b.scene = s
	b.w, b.h = width, height
	b.pool = pool.New(b.cfg.workers)
	return nil
}

// Render executes one full progressive photon mapping pass, writing
// radiance for every surviving eye-ray hitpoint into vp and leaving
// every other pixel at its prior cleared value.
func (b *Backend) Render(cam *camera.Camera, vp *viewport.Viewport) error {
	if b.scene == nil {
		return fmt.Errorf("cpu: Render called before Prepare")
	}
	if vp.Width() != b.w || vp.Height() != b.h {
		return fmt.Errorf("cpu: viewport %dx%d does not match the %dx%d Prepare call", vp.Width(), vp.Height(), b.w, b.h)
	}

	rng := rand.New(rand.NewSource(b.cfg.seed))
	vp.Clear(geom.Vector4{0, 0, 0, 1})

	timeSection(b.cfg.log, "Hitpoint Generation", func() {
		b.generateHitpoints(cam)
	})

	timeSection(b.cfg.log, "Photon Generation", func() {
		b.emitted = b.scene.GeneratePhotons(b.cfg.photonCount, rng, b.emitted)
	})

	timeSection(b.cfg.log, "Photon Tracing", func() {
		b.tracePhotons(rng)
	})

	var photonMap *photonmap.Map
	timeSection(b.cfg.log, "Build Photon Map", func() {
		photonMap = photonmap.Build(b.traced, photonmap.DefaultMaxChildren)
	})

	timeSection(b.cfg.log, "Estimate Radiance", func() {
		b.estimateRadiance(photonMap)
	})

	b.writePixels(vp)
	return nil
}

// generateHitpoints casts one eye ray per pixel, parallelised over
// rows via the task pool; appends are serialised by hitpointsMu (§4.1
// step 1).
func (b *Backend) generateHitpoints(cam *camera.Camera) {
	b.hitpoints = b.hitpoints[:0]
	b.pool.ParallelFor(0, b.h, func(y int) {
		for x := 0; x < b.w; x++ {
			ray := cam.ViewRay(x, y, b.w, b.h)
			hit, ok := b.scene.ShootRay(ray)
			if !ok {
				continue
			}
			hp := hitpoint{
				pixelX:        x,
				pixelY:        y,
				position:      hit.Position,
				normal:        hit.Normal,
				incoming:      ray.Direction,
				materialIndex: hit.MaterialIndex,
				radianceEst:   geom.Vector4{},
				radius:        1.0,
			}
			b.hitpointsMu.Lock()
			b.hitpoints = append(b.hitpoints, hp)
			b.hitpointsMu.Unlock()
		}
	})
}

// tracePhotons bounces each emitted photon up to MaxBounces times,
// depositing a copy at every surface hit (§4.1 step 3). Sequential,
// matching the source's plain loop over the emitted buffer.
func (b *Backend) tracePhotons(rng *rand.Rand) {
	b.traced = b.traced[:0]
	for _, photon := range b.emitted {
		origin := photon.Position.Add(photon.Direction.Scale(b.cfg.epsilon))
		direction := photon.Direction
		color := photon.Color

		for bounce := 0; bounce < b.cfg.maxBounces; bounce++ {
			hit, ok := b.scene.ShootRay(geom.Ray{Origin: origin, Direction: direction})
			if !ok {
				break
			}
			b.traced = append(b.traced, photonmap.Photon{
				Position:  hit.Position,
				Direction: direction,
				Color:     color,
			})

			z := hit.Normal
			x := geom.Orthogonal(z)
			y := x.Cross(z)
			local := geom.SampleHemisphereCosineWeighted(rng.Float32(), rng.Float32())
			direction = x.Scale(local.X()).Add(y.Scale(local.Y())).Add(z.Scale(local.Z())).Normalize()
			color = color.Mul(b.scene.Materials[hit.MaterialIndex].Diffuse)
			origin = hit.Position.Add(direction.Scale(b.cfg.epsilon))
		}
	}
}

// estimateRadiance gathers each hitpoint's K nearest photons in
// parallel and accumulates the diffuse radiance estimator (§4.1 step
// 5).
func (b *Backend) estimateRadiance(photonMap *photonmap.Map) {
	const invPi = float32(1 / math.Pi)
	pool.ParallelForEach(b.pool, b.hitpoints, func(hp *hitpoint) {
		neighbors := photonMap.KNearest(hp.position, b.cfg.k)
		hp.radianceEst = geom.Vector4{}
		if len(neighbors) == 0 {
			hp.radius = 0
			return
		}
		hp.radius = neighbors[len(neighbors)-1].Position.Sub(hp.position).Length()

		diffuse := b.scene.Materials[hp.materialIndex].Diffuse
		for _, p := range neighbors {
			nDotL := hp.normal.Dot(p.Direction.Neg())
			if nDotL < 0 {
				nDotL = 0
			}
			hp.radianceEst = hp.radianceEst.Add(diffuse.Mul(p.Color).Scale(invPi * nDotL))
		}
	})
}

// writePixels converts each hitpoint's accumulated estimate into a
// final radiance value and writes it to vp (§4.1 step 6).
func (b *Backend) writePixels(vp *viewport.Viewport) {
	totalFlux := b.scene.TotalFlux
	n := float32(b.cfg.photonCount)
	for _, hp := range b.hitpoints {
		if hp.radius <= 0 {
			continue
		}
		denom := math.Pi * hp.radius * hp.radius * n
		radiance := hp.radianceEst.Scale(totalFlux / denom)
		vp.SetPixel(hp.pixelX, hp.pixelY, radiance)
	}
}

// Close releases the backend's worker pool.
func (b *Backend) Close() {
	if b.pool != nil {
		b.pool.Close()
	}
}
