// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package geom

import "math"

// Ray is a half-line used for eye and photon intersection queries.
// Direction is expected to be unit length except immediately after
// the epsilon offset applied before a photon bounce trace (§4.8).
type Ray struct {
	Origin, Direction Vector3
}

// At returns the point along the ray at parameter t.
func (r Ray) At(t float32) Vector3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Triangle is three world-space positions.
type Triangle struct {
	V [3]Vector3
}

// Center returns the triangle's centroid.
func (t Triangle) Center() Vector3 {
	const third = 1.0 / 3.0
	return t.V[0].Add(t.V[1]).Add(t.V[2]).Scale(third)
}

// Normal returns the triangle's (non-interpolated) face normal.
func (t Triangle) Normal() Vector3 {
	return t.V[1].Sub(t.V[0]).Cross(t.V[2].Sub(t.V[0])).Normalize()
}

// AABB is an axis-aligned bounding box with the invariant Min ≤ Max
// componentwise.
type AABB struct {
	Min, Max Vector3
}

// EmptyAABB returns a degenerate box suitable as the starting point
// for a min/max accumulation (§4.2's root-cell construction).
func EmptyAABB() AABB {
	inf := float32(math.Inf(1))
	return AABB{
		Min: Vector3{inf, inf, inf},
		Max: Vector3{-inf, -inf, -inf},
	}
}

// Extend enlarges the box, if necessary, to include p.
func (b AABB) Extend(p Vector3) AABB {
	return AABB{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Center returns the box's midpoint.
func (b AABB) Center() Vector3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Extent returns the box's full side lengths.
func (b AABB) Extent() Vector3 {
	return b.Max.Sub(b.Min)
}

// HalfExtent returns the box's half side lengths.
func (b AABB) HalfExtent() Vector3 {
	return b.Extent().Scale(0.5)
}

// Vertices returns the 8 corner points of the box.
func (b AABB) Vertices() [8]Vector3 {
	c := b.Center()
	h := b.HalfExtent()
	signs := [8]Vector3{
		{-1, -1, -1}, {-1, -1, 1}, {-1, 1, -1}, {-1, 1, 1},
		{1, -1, -1}, {1, -1, 1}, {1, 1, -1}, {1, 1, 1},
	}
	var out [8]Vector3
	for i, s := range signs {
		out[i] = c.Add(Vector3{s[0] * h[0], s[1] * h[1], s[2] * h[2]})
	}
	return out
}

// RayTriangleHit is the result of a successful ray/triangle
// intersection.
type RayTriangleHit struct {
	Point        Vector3
	Barycentric  Vector3 // (u, v, w) with w = 1-u-v
	Distance     float32
}

// epsilon bounds the |determinant| ≤ ε parallel-edge degeneracy test
// (§7, ArithmeticDegeneracy).
const epsilon = 1e-7

// IntersectRayTriangle implements the Möller–Trumbore ray/triangle
// intersection test (§4.2/§7). It returns ok=false for parallel rays,
// out-of-range barycentric coordinates, or a negative distance.
func IntersectRayTriangle(r Ray, t Triangle) (hit RayTriangleHit, ok bool) {
	e1 := t.V[1].Sub(t.V[0])
	e2 := t.V[2].Sub(t.V[0])
	pvec := r.Direction.Cross(e2)
	det := e1.Dot(pvec)
	if det > -epsilon && det < epsilon {
		return hit, false
	}
	invDet := 1 / det
	tvec := r.Origin.Sub(t.V[0])
	u := invDet * tvec.Dot(pvec)
	if u < 0 || u > 1 {
		return hit, false
	}
	qvec := tvec.Cross(e1)
	v := invDet * r.Direction.Dot(qvec)
	if v < 0 || u+v > 1 {
		return hit, false
	}
	dist := invDet * e2.Dot(qvec)
	if dist < 0 {
		return hit, false
	}
	hit = RayTriangleHit{
		Point:       r.At(dist),
		Barycentric: Vector3{u, v, 1 - u - v},
		Distance:    dist,
	}
	return hit, true
}

// IntersectTriangleAABB reports whether triangle t overlaps box b
// using the Separating Axis Theorem over all 13 candidate axes: the
// 3 box normals, the triangle normal, and the 9 edge/box-normal cross
// products (§4.2).
func IntersectTriangleAABB(t Triangle, b AABB) bool {
	project := func(points []Vector3, axis Vector3) (min, max float32) {
		min = float32(math.Inf(1))
		max = float32(math.Inf(-1))
		for _, p := range points {
			d := axis.Dot(p)
			if d < min {
				min = d
			}
			if d > max {
				max = d
			}
		}
		return
	}

	verts := t.V[:]

	boxNormals := [3]Vector3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	for i, axis := range boxNormals {
		min, max := project(verts, axis)
		if max < b.Min[i] || min > b.Max[i] {
			return false
		}
	}

	triNormal := t.Normal()
	triOffset := triNormal.Dot(t.V[0])
	boxVerts := b.Vertices()
	bmin, bmax := project(boxVerts[:], triNormal)
	if bmax < triOffset || bmin > triOffset {
		return false
	}

	edges := [3]Vector3{
		t.V[0].Sub(t.V[1]),
		t.V[1].Sub(t.V[2]),
		t.V[2].Sub(t.V[0]),
	}
	for _, e := range edges {
		for _, n := range boxNormals {
			axis := e.Cross(n)
			bMin, bMax := project(boxVerts[:], axis)
			tMin, tMax := project(verts, axis)
			if bMax < tMin || bMin > tMax {
				return false
			}
		}
	}

	return true
}
