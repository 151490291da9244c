// Copyright © 2015-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package scene

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/gazed/rainbow/geom"
)

const testObj = `o box
v 0 0 0
v 1 0 0
v 0 1 0
v 0 0 1
v 1 0 1
v 0 1 1
vn 0 0 1
vn 0 0 1
vn 0 0 1
vn 0 1 0
vn 0 1 0
vn 0 1 0
mtllib box.mtl
usemtl floor
f 1//1 2//2 3//3
usemtl light
f 4//4 5//5 6//6
`

const testMtl = `newmtl floor
Kd 0.8 0.8 0.8
Ke 0 0 0
newmtl light
Kd 0 0 0
Ke 5 5 5
`

func writeTestScene(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	objPath := filepath.Join(dir, "box.obj")
	if err := os.WriteFile(objPath, []byte(testObj), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "box.mtl"), []byte(testMtl), 0o644); err != nil {
		t.Fatal(err)
	}
	return objPath
}

func TestLoadPopulatesTables(t *testing.T) {
	s := New()
	if err := s.Load(writeTestScene(t)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !s.Loaded() {
		t.Fatal("scene not marked loaded")
	}
	if len(s.Triangles) != 2 {
		t.Fatalf("got %d triangles, want 2", len(s.Triangles))
	}
	if len(s.Materials) != 2 {
		t.Fatalf("got %d materials, want 2", len(s.Materials))
	}
	if len(s.EmissiveTriangles) != 1 {
		t.Fatalf("got %d emissive triangles, want 1", len(s.EmissiveTriangles))
	}
	if s.TotalFlux <= 0 {
		t.Fatalf("expected positive total flux, got %v", s.TotalFlux)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	s := New()
	if err := s.Load("/nonexistent/scene.obj"); err == nil {
		t.Fatal("expected error loading a nonexistent scene")
	}
}

// buildScene constructs a scene directly (bypassing Load) with one
// emissive quad (two triangles) at y=1 over a diffuse floor quad at
// y=0, mirroring spec.md's emissive-Cornell-box scenario.
func buildScene() *Scene {
	s := New()
	s.Materials = []Material{
		{Diffuse: geom.Vector4{0.8, 0.8, 0.8, 1}},
		{Emissive: geom.Vector4{5, 5, 5, 1}},
	}
	s.VertexPositions = []geom.Vector3{
		{-1, 0, -1}, {1, 0, -1}, {1, 0, 1}, {-1, 0, 1}, // floor
		{-1, 1, -1}, {1, 1, -1}, {1, 1, 1}, {-1, 1, 1}, // emissive ceiling
	}
	up := geom.Vector3{0, 1, 0}
	down := geom.Vector3{0, -1, 0}
	s.VertexNormals = []geom.Vector3{up, up, up, up, down, down, down, down}
	s.Triangles = []TriangleRef{
		{Indices: [3]uint32{0, 1, 2}, Material: 0},
		{Indices: [3]uint32{0, 2, 3}, Material: 0},
		{Indices: [3]uint32{4, 6, 5}, Material: 1},
		{Indices: [3]uint32{4, 7, 6}, Material: 1},
	}
	s.classify()
	s.buildOctree()
	s.loaded = true
	return s
}

func TestShootRayHitsNearestSurface(t *testing.T) {
	s := buildScene()
	ray := geom.Ray{Origin: geom.Vector3{0, 5, 0}, Direction: geom.Vector3{0, -1, 0}}
	hit, ok := s.ShootRay(ray)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Distance <= 0 {
		t.Fatalf("ShootRay returned non-positive distance %v", hit.Distance)
	}
	if hit.Distance < 3.9 || hit.Distance > 4.1 {
		t.Fatalf("expected to hit the emissive ceiling at distance ~4, got %v", hit.Distance)
	}
}

func TestShootRayMissReturnsFalse(t *testing.T) {
	s := buildScene()
	ray := geom.Ray{Origin: geom.Vector3{0, 5, 0}, Direction: geom.Vector3{0, 1, 0}}
	if _, ok := s.ShootRay(ray); ok {
		t.Fatal("expected no hit shooting away from the scene")
	}
}

func TestGeneratePhotonsCornellBox(t *testing.T) {
	s := buildScene()
	rng := rand.New(rand.NewSource(1))
	photons := s.GeneratePhotons(10000, rng, nil)
	if len(photons) != 10000 {
		t.Fatalf("got %d photons, want 10000", len(photons))
	}
	const topY = 1.0
	for i, p := range photons {
		if p.Position.Y() > topY+1e-4 {
			t.Fatalf("photon %d at y=%v above emissive plane", i, p.Position.Y())
		}
		if !p.Color.HasPositiveChannel() {
			t.Fatalf("photon %d has non-positive color %v", i, p.Color)
		}
		if d := p.Direction.Length(); d < 0.999 || d > 1.001 {
			t.Fatalf("photon %d direction not unit length: %v", i, d)
		}
	}
}

func TestGeneratePhotonsEmissiveEmpty(t *testing.T) {
	s := New()
	s.Materials = []Material{{Diffuse: geom.Vector4{1, 1, 1, 1}}}
	s.VertexPositions = []geom.Vector3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	s.VertexNormals = []geom.Vector3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}}
	s.Triangles = []TriangleRef{{Indices: [3]uint32{0, 1, 2}, Material: 0}}
	s.classify()

	rng := rand.New(rand.NewSource(1))
	photons := s.GeneratePhotons(100, rng, nil)
	if len(photons) != 0 {
		t.Fatalf("expected no photons from a scene with no emissive triangles, got %d", len(photons))
	}
}
