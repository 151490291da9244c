// Copyright © 2015-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package photonmap implements the balanced k-d tree photon map used
// to estimate incoming radiance at a hitpoint: a median-split spatial
// index over emitted photons supporting k-nearest-neighbour queries
// with branch pruning (§4.3).
//
// Package photonmap is provided as part of the rainbow photon mapping
// renderer.
package photonmap

import (
	"math"
	"sort"

	"github.com/gazed/rainbow/geom"
)

// Photon is a discrete packet of light energy deposited at a surface
// hit (§3).
type Photon struct {
	Position, Direction geom.Vector3
	Color               geom.Vector4
}

// DefaultMaxChildren is the default leaf capacity named in §4.3.
const DefaultMaxChildren = 100

// node is either a leaf, identified by a non-empty [begin,end) slice
// of the photon array, or an internal node with a split plane.
type node struct {
	begin, end  int // leaf range into Map.photons; end==0 && begin==0 means "unset"
	isLeaf      bool
	planeAxis   int
	planePos    float32
}

// Map is a balanced k-d tree over a fixed slice of photons, stored as
// an implicit heap array (left=2i+1, right=2i+2), matching the
// source's PhotonMap.
type Map struct {
	photons     []Photon
	nodes       []node
	maxChildren int
}

// Build partitions photons into a new Map. maxChildren of 0 or less
// uses DefaultMaxChildren. The input slice is reordered in place by
// the partition sort, mirroring the source's std::sort over the raw
// photon buffer.
func Build(photons []Photon, maxChildren int) *Map {
	if maxChildren <= 0 {
		maxChildren = DefaultMaxChildren
	}
	m := &Map{photons: photons, maxChildren: maxChildren}
	if len(photons) == 0 {
		return m
	}

	leafCount := math.Max(1, float64(len(photons))/float64(maxChildren))
	depth := math.Ceil(math.Log2(leafCount))
	nodeCount := int(math.Pow(2, depth+1) - 1)
	m.nodes = make([]node, nodeCount)
	m.insert(0, 0, 0, len(photons))
	return m
}

func (m *Map) insert(nodeIndex, axis, begin, end int) {
	count := end - begin
	if count <= m.maxChildren {
		m.nodes[nodeIndex] = node{begin: begin, end: end, isLeaf: true}
		return
	}

	slice := m.photons[begin:end]
	sort.Slice(slice, func(i, j int) bool {
		return slice[i].Position[axis] < slice[j].Position[axis]
	})

	medianOffset := count / 2
	median := slice[medianOffset]

	m.nodes[nodeIndex] = node{
		planeAxis: axis,
		planePos:  median.Position[axis],
	}

	nextAxis := (axis + 1) % 3
	m.insert(left(nodeIndex), nextAxis, begin, begin+medianOffset)
	m.insert(right(nodeIndex), nextAxis, begin+medianOffset, end)
}

func left(i int) int  { return 2*i + 1 }
func right(i int) int { return 2*i + 2 }

// KNearest returns the k photons nearest to q, sorted by ascending
// squared distance. If k >= the number of photons in the map, all
// photons are returned sorted. KNearest is safe to call concurrently
// from multiple goroutines once Build has returned (§5).
func (m *Map) KNearest(q geom.Vector3, k int) []Photon {
	if len(m.photons) == 0 {
		return nil
	}
	result := make([]Photon, 0, 3*m.maxChildren)
	result = m.query(0, q, k, result)

	sort.Slice(result, func(i, j int) bool {
		return squaredDistance(result[i].Position, q) < squaredDistance(result[j].Position, q)
	})
	if len(result) > k {
		result = result[:k]
	}
	return result
}

func squaredDistance(a, b geom.Vector3) float32 {
	return a.Sub(b).SquaredLength()
}

func (m *Map) query(nodeIndex int, q geom.Vector3, k int, result []Photon) []Photon {
	n := m.nodes[nodeIndex]
	if n.isLeaf {
		return append(result, m.photons[n.begin:n.end]...)
	}

	signedDist := q[n.planeAxis] - n.planePos
	distSquared := signedDist * signedDist

	near, far := left(nodeIndex), right(nodeIndex)
	if q[n.planeAxis] >= n.planePos {
		near, far = far, near
	}

	result = m.query(near, q, k, result)

	maxPhotonDistSquared := float32(math.Inf(1))
	if len(result) > 0 {
		maxPhotonDistSquared = worstDistance(result, q)
	}
	if len(result) < k || maxPhotonDistSquared > distSquared {
		result = m.query(far, q, k, result)
	}

	sort.Slice(result, func(i, j int) bool {
		return squaredDistance(result[i].Position, q) < squaredDistance(result[j].Position, q)
	})
	if len(result) > k {
		result = result[:k]
	}
	return result
}

// worstDistance returns the squared distance of the farthest photon
// currently in result, used as the current search radius. result is
// scanned in full because photons appended straight from a leaf are
// not yet sorted.
func worstDistance(result []Photon, q geom.Vector3) float32 {
	var worst float32
	for _, p := range result {
		if d := squaredDistance(p.Position, q); d > worst {
			worst = d
		}
	}
	return worst
}
