// Copyright © 2015-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package scene holds the material/vertex/triangle tables of a loaded
// mesh, the octree built over its triangles, and the two scene-level
// queries the rendering backend drives every frame: ShootRay and
// GeneratePhotons (§3, §4.5).
//
// Package scene is provided as part of the rainbow photon mapping
// renderer.
package scene

import (
	"math/rand"

	"github.com/gazed/rainbow/geom"
	"github.com/gazed/rainbow/octree"
	"github.com/gazed/rainbow/photonmap"
)

// Material is 32 bytes in the source: a diffuse and an emissive color.
type Material struct {
	Diffuse, Emissive geom.Vector4
}

// Emits reports whether the material has any positive emissive
// channel.
func (m Material) Emits() bool {
	return m.Emissive.HasPositiveChannel()
}

// TriangleRef identifies a triangle by its three vertex indices and a
// material index, valid against the Scene's vertex and material
// tables.
type TriangleRef struct {
	Indices  [3]uint32
	Material uint32
}

// HitPoint is the result of a successful ShootRay, carrying the
// information the render backend needs to seed a per-pixel estimate.
type HitPoint struct {
	Distance       float32
	Position       geom.Vector3
	Normal         geom.Vector3
	MaterialIndex  uint32
}

// Scene holds the mesh tables described in §3: parallel vertex/normal
// arrays, a triangle table, a material table, the subset of triangles
// with positive emissive intensity, their total flux, and the octree
// built over the full triangle table.
type Scene struct {
	Materials       []Material
	VertexPositions []geom.Vector3
	VertexNormals   []geom.Vector3
	Triangles       []TriangleRef
	EmissiveTriangles []TriangleRef
	TotalFlux       float32

	octree *octree.Tree
	loaded bool
}

// New returns an empty, unloaded Scene. Load must be called before it
// can be Prepared by a render.Backend.
func New() *Scene {
	return &Scene{}
}

// Empty returns a loaded Scene with no geometry, for the CLI's
// "missing scene path" fallback (§6): every ShootRay misses and
// GeneratePhotons returns nothing, producing a blank render rather
// than a PreconditionViolated error.
func Empty() *Scene {
	s := &Scene{}
	s.classify()
	s.buildOctree()
	s.loaded = true
	return s
}

func (s *Scene) triangle(ref TriangleRef) geom.Triangle {
	return geom.Triangle{V: [3]geom.Vector3{
		s.VertexPositions[ref.Indices[0]],
		s.VertexPositions[ref.Indices[1]],
		s.VertexPositions[ref.Indices[2]],
	}}
}

func triangleArea(t geom.Triangle) float32 {
	e1 := t.V[1].Sub(t.V[0])
	e2 := t.V[2].Sub(t.V[0])
	return e1.Cross(e2).Length() * 0.5
}

// classify records the emissive-triangle subset and accumulates
// total_flux, called once after the triangle table is populated.
func (s *Scene) classify() {
	s.EmissiveTriangles = s.EmissiveTriangles[:0]
	s.TotalFlux = 0
	for _, ref := range s.Triangles {
		mat := s.Materials[ref.Material]
		if !mat.Emits() {
			continue
		}
		s.EmissiveTriangles = append(s.EmissiveTriangles, ref)
		area := triangleArea(s.triangle(ref))
		e := mat.Emissive
		s.TotalFlux += (e.X() + e.Y() + e.Z()) * area
	}
}

// buildOctree constructs and flattens the spatial index over the
// triangle table (§3: "Octree is rebuilt on load").
func (s *Scene) buildOctree() {
	t := octree.New(s.VertexPositions, octree.DefaultMaxDepth, octree.DefaultTrianglesPerCell)
	for _, ref := range s.Triangles {
		t.Insert(octree.TriangleRef{Indices: ref.Indices, Material: ref.Material})
	}
	t.Build()
	s.octree = t
}

// ShootRay iterates the full triangle table and returns the nearest
// positive-distance hit, per §4.2's parity mandate: the octree is not
// consulted. The returned normal is
// the barycentric-interpolated, renormalized mix of the three vertex
// normals.
func (s *Scene) ShootRay(r geom.Ray) (*HitPoint, bool) {
	var best *geom.RayTriangleHit
	var bestRef TriangleRef
	for _, ref := range s.Triangles {
		hit, ok := geom.IntersectRayTriangle(r, s.triangle(ref))
		if !ok {
			continue
		}
		if best == nil || hit.Distance < best.Distance {
			h := hit
			best = &h
			bestRef = ref
		}
	}
	if best == nil {
		return nil, false
	}

	n0 := s.VertexNormals[bestRef.Indices[0]]
	n1 := s.VertexNormals[bestRef.Indices[1]]
	n2 := s.VertexNormals[bestRef.Indices[2]]
	bc := best.Barycentric
	normal := n0.Scale(bc.X()).Add(n1.Scale(bc.Y())).Add(n2.Scale(bc.Z())).Normalize()

	return &HitPoint{
		Distance:      best.Distance,
		Position:      best.Point,
		Normal:        normal,
		MaterialIndex: bestRef.Material,
	}, true
}

// Photon is re-exported from photonmap for callers that only import
// scene.
type Photon = photonmap.Photon

// GeneratePhotons emits exactly n photons into out (which is grown as
// needed and truncated to length n), per §4.5. If the scene has no
// emissive triangles, out is truncated to zero length: EmissiveEmpty
// is not an error.
func (s *Scene) GeneratePhotons(n int, rng *rand.Rand, out []Photon) []Photon {
	out = out[:0]
	if len(s.EmissiveTriangles) == 0 {
		return out
	}
	for i := 0; i < n; i++ {
		ref := s.EmissiveTriangles[rng.Intn(len(s.EmissiveTriangles))]
		tri := s.triangle(ref)

		u1, u2 := rng.Float32(), rng.Float32()
		u := u1
		v := (1 - u) * u2
		w := 1 - u - v

		point := tri.V[0].Scale(u).Add(tri.V[1].Scale(v)).Add(tri.V[2].Scale(w))

		n0 := s.VertexNormals[ref.Indices[0]]
		n1 := s.VertexNormals[ref.Indices[1]]
		n2 := s.VertexNormals[ref.Indices[2]]
		z := n0.Scale(u).Add(n1.Scale(v)).Add(n2.Scale(w)).Normalize()
		x := geom.Orthogonal(z)
		y := x.Cross(z)

		dLocal := geom.SampleHemisphereCosineWeighted(rng.Float32(), rng.Float32())
		dir := x.Scale(dLocal.X()).Add(y.Scale(dLocal.Y())).Add(z.Scale(dLocal.Z())).Normalize()

		out = append(out, Photon{
			Position:  point,
			Direction: dir,
			Color:     s.Materials[ref.Material].Emissive,
		})
	}
	return out
}

// Loaded reports whether Load has succeeded at least once.
func (s *Scene) Loaded() bool { return s.loaded }

// Octree returns the spatial index built over the scene's triangles by
// Load, for diagnostics; nil until a scene has been loaded.
func (s *Scene) Octree() *octree.Tree { return s.octree }
