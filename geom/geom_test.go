// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package geom

import (
	"math"
	"testing"
)

const eps = 1e-5

func aeq(a, b float32) bool {
	return float64(a)-float64(b) < eps && float64(b)-float64(a) < eps
}

func TestRayTriangleHit(t *testing.T) {
	tri := Triangle{V: [3]Vector3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}}
	r := Ray{Origin: Vector3{0.25, 0.25, 1}, Direction: Vector3{0, 0, -1}}
	hit, ok := IntersectRayTriangle(r, tri)
	if !ok {
		t.Fatal("expected a hit")
	}
	if !aeq(hit.Distance, 1) {
		t.Errorf("distance: got %v want 1", hit.Distance)
	}
	want := Vector3{0.25, 0.25, 0}
	for i := range want {
		if !aeq(hit.Point[i], want[i]) {
			t.Errorf("point[%d]: got %v want %v", i, hit.Point[i], want[i])
		}
	}
	wantBary := Vector3{0.25, 0.25, 0.5}
	for i := range wantBary {
		if !aeq(hit.Barycentric[i], wantBary[i]) {
			t.Errorf("barycentric[%d]: got %v want %v", i, hit.Barycentric[i], wantBary[i])
		}
	}
}

func TestRayTriangleParallelMiss(t *testing.T) {
	tri := Triangle{V: [3]Vector3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}}
	r := Ray{Origin: Vector3{0.25, 0.25, 1}, Direction: Vector3{1, 0, 0}}
	if _, ok := IntersectRayTriangle(r, tri); ok {
		t.Error("expected no hit for a ray parallel to the triangle plane")
	}
}

func TestRayAwayFromTriangleMisses(t *testing.T) {
	tri := Triangle{V: [3]Vector3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}}
	r := Ray{Origin: Vector3{0.25, 0.25, 1}, Direction: Vector3{0, 0, 1}}
	if _, ok := IntersectRayTriangle(r, tri); ok {
		t.Error("expected no hit for a ray pointing away from the triangle")
	}
}

func TestIntersectTriangleAABB(t *testing.T) {
	box := AABB{Min: Vector3{-1, -1, -1}, Max: Vector3{1, 1, 1}}
	inside := Triangle{V: [3]Vector3{{0, 0, 0}, {0.5, 0, 0}, {0, 0.5, 0}}}
	if !IntersectTriangleAABB(inside, box) {
		t.Error("triangle fully inside the box should overlap")
	}

	outside := Triangle{V: [3]Vector3{{10, 10, 10}, {11, 10, 10}, {10, 11, 10}}}
	if IntersectTriangleAABB(outside, box) {
		t.Error("triangle far outside the box should not overlap")
	}
}

func TestOrthogonalVector(t *testing.T) {
	normals := []Vector3{
		{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {0.6, 0.8, 0}, {0.267, 0.534, 0.801},
	}
	for _, n := range normals {
		n = n.Normalize()
		orth := Orthogonal(n)
		if !aeq(orth.Length(), 1) {
			t.Errorf("Orthogonal(%v) not unit length: %v", n, orth.Length())
		}
		if d := n.Dot(orth); !aeq(d, 0) {
			t.Errorf("Orthogonal(%v) not perpendicular: dot=%v", n, d)
		}
	}
}

func TestSampleHemisphereCosineWeighted(t *testing.T) {
	for _, uv := range [][2]float32{{0, 0}, {0.25, 0.75}, {0.9, 0.1}, {0.5, 0.5}} {
		d := SampleHemisphereCosineWeighted(uv[0], uv[1])
		if d[2] < 0 {
			t.Errorf("SampleHemisphereCosineWeighted(%v) has negative z: %v", uv, d)
		}
		if l := d.Length(); !aeq(l, 1) {
			t.Errorf("SampleHemisphereCosineWeighted(%v) not unit length: %v", uv, l)
		}
	}
}

func TestVectorArithmetic(t *testing.T) {
	a := Vector3{1, 2, 3}
	b := Vector3{4, 5, 6}
	if got := a.Add(b); got != (Vector3{5, 7, 9}) {
		t.Errorf("Add: got %v", got)
	}
	if got := a.Cross(b); got != (Vector3{-3, 6, -3}) {
		t.Errorf("Cross: got %v", got)
	}
	if got := math.Abs(float64(a.Dot(b) - 32)); got > 1e-6 {
		t.Errorf("Dot: got %v want 32", a.Dot(b))
	}
}
