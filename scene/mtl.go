// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package scene

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gazed/rainbow/geom"
)

// mtlMaterial is the intermediate per-material record read from a
// Wavefront MTL file, extended beyond the teacher's Ka/Kd/Ks/d/Ns
// parse with the Ke (emissive) channel §3's emissive-triangle subset
// requires.
type mtlMaterial struct {
	name     string
	kd       geom.Vector4
	ke       geom.Vector4
	alpha    float32
}

// parseMtl loads a Wavefront MTL file which is a text representation
// of one or more material descriptions. See:
//    https://en.wikipedia.org/wiki/Wavefront_.obj_file#File_format
// The Reader r is expected to be opened and closed by the caller.
func parseMtl(r io.Reader) ([]mtlMaterial, error) {
	var mats []mtlMaterial
	var cur *mtlMaterial

	reader := bufio.NewReader(r)
	line, e1 := reader.ReadString('\n')
	for ; e1 == nil; line, e1 = reader.ReadString('\n') {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		tokens := strings.Split(line, " ")
		var f1, f2, f3 float32
		switch tokens[0] {
		case "newmtl":
			mats = append(mats, mtlMaterial{name: strings.TrimSpace(strings.TrimPrefix(line, "newmtl"))})
			cur = &mats[len(mats)-1]
			cur.alpha = 1
		case "Kd": // diffuse
			if cur == nil {
				break
			}
			if _, e := fmt.Sscanf(line, "Kd %f %f %f", &f1, &f2, &f3); e != nil {
				return nil, fmt.Errorf("could not parse diffuse values: %w", e)
			}
			cur.kd = geom.Vector4{f1, f2, f3, 1}
		case "Ke": // emissive
			if cur == nil {
				break
			}
			if _, e := fmt.Sscanf(line, "Ke %f %f %f", &f1, &f2, &f3); e != nil {
				return nil, fmt.Errorf("could not parse emissive values: %w", e)
			}
			cur.ke = geom.Vector4{f1, f2, f3, 1}
		case "d": // transparency
			if cur == nil || len(tokens) < 2 {
				break
			}
			a, _ := strconv.ParseFloat(strings.TrimSpace(tokens[1]), 32)
			cur.alpha = float32(a)
		case "Ka", "Ks", "Ns", "Ni", "illum": // parsed by the teacher, unused by this spec
		}
		if e1 != nil {
			break
		}
	}
	return mats, nil
}
