// Package mesh converts between triangle soups (the interchange format most
// callers and file formats use) and solid.Solid.
package mesh

import (
	"github.com/bloodmagesoftware/venture-csg/geom"
	"github.com/bloodmagesoftware/venture-csg/idgen"
	"github.com/bloodmagesoftware/venture-csg/solid"
	"github.com/bloodmagesoftware/venture-csg/vec3"
)

// FromTriangles builds a Solid out of a triangle soup, one 3-vertex
// geom.Polygon per triangle. The returned Solid has IsCanonicalized and
// IsRetesselated both false. Malformed triangles (degenerate, zero-area
// within geom.AreaEPS) are skipped rather than causing an error, per the
// "should not crash" contract on mesh import.
func FromTriangles(tris [][3]vec3.Vec3, tags *idgen.Counter) solid.Solid {
	polys := make([]*geom.Polygon, 0, len(tris))
	for _, tri := range tris {
		verts := []geom.Vertex{
			geom.NewVertex(tri[0]),
			geom.NewVertex(tri[1]),
			geom.NewVertex(tri[2]),
		}
		p, err := geom.NewPolygonFromVertices(verts, nil)
		if err != nil {
			continue
		}
		polys = append(polys, p)
	}
	return solid.New(polys)
}

// ToTriangles fan-triangulates every polygon in s — valid because every
// Polygon is convex by construction — returning the triangle positions and
// a parallel per-triangle color stream. A polygon's Shared metadata is read
// back into the color stream when it implements geom.Color; otherwise
// geom.DefaultColor is used.
func ToTriangles(s solid.Solid) (tris [][3]vec3.Vec3, colors [][3][3]float64) {
	for _, p := range s.Polygons {
		col := colorOf(p.Shared)
		rgb := [3]float64{col.R, col.G, col.B}
		for i := 1; i+1 < len(p.Vertices); i++ {
			tris = append(tris, [3]vec3.Vec3{p.Vertices[0].Pos, p.Vertices[i].Pos, p.Vertices[i+1].Pos})
			colors = append(colors, [3][3]float64{rgb, rgb, rgb})
		}
	}
	return tris, colors
}

func colorOf(shared geom.Shared) geom.Color {
	if c, ok := shared.(geom.Color); ok {
		return c
	}
	return geom.DefaultColor
}
