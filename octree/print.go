// Copyright © 2015-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package octree

import (
	"fmt"
	"strings"
)

// String renders a human-readable dump of the built octree, one line
// per cell indented by depth, for use in -verbose diagnostics. Ported from the source's Octree::Print/PrintCell debugging
// helper.
func (t *Tree) String() string {
	var b strings.Builder
	t.writeCell(&b, t.root)
	return b.String()
}

func (t *Tree) writeCell(b *strings.Builder, c *cell) {
	fmt.Fprintf(b, "%s[%v-%v]: %d\n", strings.Repeat(" ", c.depth), c.aabb.Min, c.aabb.Max, len(c.triangles))
	for _, child := range c.children {
		t.writeCell(b, child)
	}
}
