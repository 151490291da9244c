// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package scene

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gazed/rainbow/geom"
)

// Load reads mesh data from the Wavefront OBJ file at path and its
// companion MTL file (named by the OBJ's mtllib directive, resolved
// relative to path's directory), populates the scene tables in §3, and
// builds the octree over the resulting triangle table. Returns an
// error iff the import failed or no triangles were read (§4.5).
func (s *Scene) Load(path string) error {
	objFile, err := os.Open(path)
	if err != nil {
		return loadFailed(err)
	}
	defer objFile.Close()

	mesh, err := parseObj(objFile)
	if err != nil {
		return loadFailed(err)
	}

	var mats []mtlMaterial
	if mesh.mtllib != "" {
		mtlPath := filepath.Join(filepath.Dir(path), mesh.mtllib)
		mtlFile, err := os.Open(mtlPath)
		if err != nil {
			return loadFailed(err)
		}
		mats, err = parseMtl(mtlFile)
		mtlFile.Close()
		if err != nil {
			return loadFailed(err)
		}
	}

	materialIndex := make(map[string]uint32, len(mats))
	var materials []Material
	for _, m := range mats {
		materialIndex[m.name] = uint32(len(materials))
		materials = append(materials, Material{Diffuse: m.kd, Emissive: m.ke})
	}
	if len(materials) == 0 {
		// an OBJ with no mtllib still renders, with a single default
		// non-emissive material.
		materials = append(materials, Material{Diffuse: geom.Vector4{0.8, 0.8, 0.8, 1}})
	}

	// Combine each face corner's (vertex, normal) index pair into a
	// single vertex, matching the teacher's obj2MshData vmap dedup:
	// the OBJ format indexes positions and normals independently, but
	// the renderer needs parallel vertex_positions/vertex_normals
	// tables addressed by one shared index.
	type pair struct{ v, n int }
	combined := make(map[pair]uint32)
	var positions, normals []geom.Vector3
	var triangles []TriangleRef

	for _, f := range mesh.faces {
		matIdx := uint32(0)
		if idx, ok := materialIndex[f.materialName]; ok {
			matIdx = idx
		}
		var tri TriangleRef
		tri.Material = matIdx
		for corner := 0; corner < 3; corner++ {
			v, n := f.v[corner], f.n[corner]
			if v < 0 || v >= len(mesh.positions) {
				return loadFailed(fmt.Errorf("vertex index %d out of range", v))
			}
			if n < 0 || n >= len(mesh.normals) {
				return loadFailed(fmt.Errorf("normal index %d out of range", n))
			}
			key := pair{v, n}
			idx, ok := combined[key]
			if !ok {
				idx = uint32(len(positions))
				combined[key] = idx
				positions = append(positions, mesh.positions[v])
				normals = append(normals, mesh.normals[n])
			}
			tri.Indices[corner] = idx
		}
		triangles = append(triangles, tri)
	}
	if len(triangles) == 0 {
		return loadFailed(fmt.Errorf("no triangles read from mesh"))
	}

	s.Materials = materials
	s.VertexPositions = positions
	s.VertexNormals = normals
	s.Triangles = triangles

	s.classify()
	s.buildOctree()
	s.loaded = true
	return nil
}
