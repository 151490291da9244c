// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package scene

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/gazed/rainbow/geom"
)

// objMesh is the intermediate result of parsing a Wavefront OBJ file:
// global vertex/normal arrays and a face list referencing them plus a
// material name, in file order.
type objMesh struct {
	positions []geom.Vector3
	normals   []geom.Vector3
	faces     []objFace
	mtllib    string
}

type objFace struct {
	// vertex/normal indices, one triple per corner, already 0-based
	v, n         [3]int
	materialName string
}

// parseObj loads a Wavefront OBJ file containing a single triangle
// mesh with vertex normals. This loader supports a limited subset of
// the full specification:
//    https://en.wikipedia.org/wiki/Wavefront_.obj_file#File_format
// The Reader r is expected to be opened and closed by the caller.
func parseObj(r io.Reader) (*objMesh, error) {
	mesh := &objMesh{}
	currentMaterial := ""

	reader := bufio.NewReader(r)
	line, e1 := reader.ReadString('\n')
	for ; e1 == nil; line, e1 = reader.ReadString('\n') {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		tokens := strings.Split(line, " ")
		var f1, f2, f3 float32
		var s1, s2, s3 string
		switch tokens[0] {
		case "v":
			if _, e := fmt.Sscanf(line, "v %f %f %f", &f1, &f2, &f3); e != nil {
				return nil, fmt.Errorf("could not parse vertex %q: %w", line, e)
			}
			mesh.positions = append(mesh.positions, geom.Vector3{f1, f2, f3})
		case "vn":
			if _, e := fmt.Sscanf(line, "vn %f %f %f", &f1, &f2, &f3); e != nil {
				return nil, fmt.Errorf("could not parse normal %q: %w", line, e)
			}
			mesh.normals = append(mesh.normals, geom.Vector3{f1, f2, f3})
		case "f":
			if _, e := fmt.Sscanf(line, "f %s %s %s", &s1, &s2, &s3); e != nil {
				return nil, fmt.Errorf("could not parse face %q: %w", line, e)
			}
			face := objFace{materialName: currentMaterial}
			corners := [3]string{s1, s2, s3}
			for i, corner := range corners {
				v, n, e := parseFaceIndex(corner)
				if e != nil {
					return nil, e
				}
				face.v[i], face.n[i] = v, n
			}
			mesh.faces = append(mesh.faces, face)
		case "mtllib":
			if len(tokens) >= 2 {
				mesh.mtllib = strings.TrimSpace(tokens[1])
			}
		case "usemtl":
			if len(tokens) >= 2 {
				currentMaterial = strings.TrimSpace(tokens[1])
			}
		case "o", "g", "s": // object/group name, smoothing group - ignored
		}
	}
	if len(mesh.positions) == 0 || len(mesh.faces) == 0 {
		return nil, fmt.Errorf("minimally need vertex and face data")
	}
	return mesh, nil
}

// parseFaceIndex turns a face index point "v//n" or "v/t/n" into
// 0-based vertex and normal indices; the texture index, if present,
// is discarded since the renderer has no texturing stage.
func parseFaceIndex(findex string) (v, n int, err error) {
	var t int
	if _, err = fmt.Sscanf(findex, "%d//%d", &v, &n); err != nil {
		t = 0
		if _, err = fmt.Sscanf(findex, "%d/%d/%d", &v, &t, &n); err != nil {
			return 0, 0, fmt.Errorf("bad face index %q: %w", findex, err)
		}
	}
	return v - 1, n - 1, nil
}
