// Copyright © 2015-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package octree implements the spatial subdivision of scene triangles
// and its flattened, cache-friendly form described in §3. The scene
// builds it on load, but no ray query in this module traverses it:
// ShootRay, used for both eye rays and photon bounces, stays a linear
// scan over all triangles for parity with the source (§4.2).
//
// Package octree is provided as part of the rainbow photon mapping
// renderer.
package octree

import "github.com/gazed/rainbow/geom"

// TriangleRef identifies a triangle by its three vertex indices and a
// material index, matching scene.TriangleRef without creating an
// import cycle between octree and scene.
type TriangleRef struct {
	Indices  [3]uint32
	Material uint32
}

// Node is the flattened, array-indexed form of a built octree, ready
// for iteration or upload (§3's 80-byte OctreeData analog). A negative
// ParentIndex or Children entry means "none".
type Node struct {
	AABBMin, AABBMax geom.Vector3
	TrianglesBegin   uint32
	TrianglesEnd     uint32
	ParentIndex      int32
	Children         [8]int32
}

// cell is the transient build-time tree node. Triangles live only in
// leaves; an internal cell's Triangles slice is always empty.
type cell struct {
	depth     int
	aabb      geom.AABB
	triangles []TriangleRef
	children  []*cell
}

// Tree builds and stores a triangle octree. MaxDepth and
// TrianglesPerCell are fixed at construction (§4.2).
type Tree struct {
	vertices         []geom.Vector3
	maxDepth         int
	trianglesPerCell int
	root             *cell

	nodes     []Node
	triangles []TriangleRef
}

// DefaultMaxDepth and DefaultTrianglesPerCell are the parameters named
// in §4.2.
const (
	DefaultMaxDepth         = 6
	DefaultTrianglesPerCell = 200
)

// New creates an octree whose root AABB is the bounding box of the
// given vertex positions. Call Insert for each scene triangle, then
// Build to flatten the tree.
func New(vertices []geom.Vector3, maxDepth, trianglesPerCell int) *Tree {
	bounds := geom.EmptyAABB()
	for _, v := range vertices {
		bounds = bounds.Extend(v)
	}
	return &Tree{
		vertices:         vertices,
		maxDepth:         maxDepth,
		trianglesPerCell: trianglesPerCell,
		root:             &cell{depth: 0, aabb: bounds},
	}
}

func (t *Tree) triangle(ref TriangleRef) geom.Triangle {
	return geom.Triangle{V: [3]geom.Vector3{
		t.vertices[ref.Indices[0]],
		t.vertices[ref.Indices[1]],
		t.vertices[ref.Indices[2]],
	}}
}

// Insert walks the tree from the root, descending into every child
// whose AABB overlaps the triangle, and appending to any leaf cell
// whose AABB overlaps it, splitting that leaf if it then exceeds
// TrianglesPerCell and is still above MaxDepth (§4.2).
func (t *Tree) Insert(ref TriangleRef) {
	tri := t.triangle(ref)
	t.insert(t.root, ref, tri)
}

func (t *Tree) insert(c *cell, ref TriangleRef, tri geom.Triangle) {
	if len(c.children) > 0 {
		for _, child := range c.children {
			t.insert(child, ref, tri)
		}
		return
	}
	if !geom.IntersectTriangleAABB(tri, c.aabb) {
		return
	}
	c.triangles = append(c.triangles, ref)
	if len(c.triangles) > t.trianglesPerCell && c.depth < t.maxDepth {
		t.split(c)
	}
}

// split produces exactly 8 equal-size children by halving the cell's
// AABB along each axis at its center, then redistributes the parent's
// triangles into whichever children their AABB overlaps (a triangle
// may land in more than one child).
func (t *Tree) split(c *cell) {
	center := c.aabb.Center()
	childExtent := c.aabb.Extent().Scale(0.5)
	childHalf := childExtent.Scale(0.5)

	directions := [8]geom.Vector3{
		{1, 1, 1}, {-1, 1, 1}, {1, -1, 1}, {-1, -1, 1},
		{1, 1, -1}, {-1, 1, -1}, {1, -1, -1}, {-1, -1, -1},
	}

	c.children = make([]*cell, 0, 8)
	for _, dir := range directions {
		childCenter := center.Add(geom.Vector3{
			dir[0] * childHalf[0], dir[1] * childHalf[1], dir[2] * childHalf[2],
		})
		child := &cell{
			depth: c.depth + 1,
			aabb: geom.AABB{
				Min: childCenter.Sub(childHalf),
				Max: childCenter.Add(childHalf),
			},
		}
		c.children = append(c.children, child)
		for _, ref := range c.triangles {
			t.insert(child, ref, t.triangle(ref))
		}
	}
	c.triangles = nil
}

// Build flattens the transient tree into the Node/TriangleRef arrays
// returned by Nodes/Triangles, assigning each cell an index via a
// single traversal and recording parent/child indices (§3, §9's note
// on the flattened form being a DAG, not a cyclic structure).
func (t *Tree) Build() {
	ids := map[*cell]int32{}
	var count int32
	var triangleCount int
	t.traverse(func(c, _ *cell) {
		ids[c] = count
		count++
		triangleCount += len(c.triangles)
	})

	t.nodes = make([]Node, 0, count)
	t.triangles = make([]TriangleRef, 0, triangleCount)

	t.traverse(func(c, parent *cell) {
		n := Node{
			AABBMin:        c.aabb.Min,
			AABBMax:        c.aabb.Max,
			TrianglesBegin: uint32(len(t.triangles)),
			TrianglesEnd:   uint32(len(t.triangles) + len(c.triangles)),
			ParentIndex:    -1,
		}
		if parent != nil {
			n.ParentIndex = ids[parent]
		}
		for i := range n.Children {
			n.Children[i] = -1
		}
		if len(c.children) == 8 {
			for i, child := range c.children {
				n.Children[i] = ids[child]
			}
		}
		t.nodes = append(t.nodes, n)
		t.triangles = append(t.triangles, c.triangles...)
	})
}

func (t *Tree) traverse(fn func(c, parent *cell)) {
	var walk func(c, parent *cell)
	walk = func(c, parent *cell) {
		fn(c, parent)
		for _, child := range c.children {
			walk(child, c)
		}
	}
	walk(t.root, nil)
}

// Nodes returns the flattened cell array produced by Build.
func (t *Tree) Nodes() []Node { return t.nodes }

// Triangles returns the flattened triangle array produced by Build,
// ordered so that each Node's [TrianglesBegin,TrianglesEnd) slices it
// directly.
func (t *Tree) Triangles() []TriangleRef { return t.triangles }
