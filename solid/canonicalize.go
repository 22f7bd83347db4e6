package solid

import (
	"github.com/bloodmagesoftware/venture-csg/fuzzy"
	"github.com/bloodmagesoftware/venture-csg/geom"
	"github.com/bloodmagesoftware/venture-csg/idgen"
)

// Canonicalize dedups near-identical vertices and planes onto single
// instances (via fuzzy.Factory), collapses Shared values with equal hashes
// onto the first one seen, assigns each new vertex, plane and output
// polygon an operation-scoped tag from tags, drops consecutive duplicate
// vertices within a polygon, and discards any polygon left with fewer than
// three vertices. Idempotent: a Solid already marked canonicalized is
// returned unchanged.
func Canonicalize(s Solid, tags *idgen.Counter) Solid {
	if s.canonicalized {
		return s
	}
	if tags == nil {
		tags = idgen.New()
	}

	vertices := fuzzy.NewFactory[geom.Vertex](3, geom.EPS)
	planes := fuzzy.NewFactory[geom.Plane](4, geom.EPS)
	sharedByHash := make(map[uint64]geom.Shared)

	canonVertex := func(v geom.Vertex) geom.Vertex {
		return vertices.LookupOrCreate([]float64{v.Pos.X, v.Pos.Y, v.Pos.Z}, func(vals []float64) geom.Vertex {
			nv := geom.NewVertex(v.Pos)
			nv.Tag = tags.Next()
			return nv
		})
	}
	canonPlane := func(p geom.Plane) geom.Plane {
		return planes.LookupOrCreate([]float64{p.Normal.X, p.Normal.Y, p.Normal.Z, p.W}, func(vals []float64) geom.Plane {
			np := geom.NewPlane(p.Normal, p.W)
			np.Tag = tags.Next()
			return np
		})
	}
	// canonShared collapses Shared descriptors with identical content
	// hashes onto a single instance, the first one seen for that hash —
	// exact-match collapse, not a fuzzy.Factory tolerance match, since
	// Hash() already defines content equality for Shared.
	canonShared := func(shared geom.Shared) geom.Shared {
		if shared == nil {
			return nil
		}
		h := shared.Hash()
		if existing, ok := sharedByHash[h]; ok {
			return existing
		}
		sharedByHash[h] = shared
		return shared
	}

	out := make([]*geom.Polygon, 0, len(s.Polygons))
	for _, poly := range s.Polygons {
		verts := make([]geom.Vertex, 0, len(poly.Vertices))
		for _, v := range poly.Vertices {
			cv := canonVertex(v)
			if len(verts) > 0 && cv.SameAs(verts[len(verts)-1]) {
				continue
			}
			verts = append(verts, cv)
		}
		if len(verts) > 1 && verts[0].SameAs(verts[len(verts)-1]) {
			verts = verts[:len(verts)-1]
		}
		if len(verts) < 3 {
			continue
		}

		plane := canonPlane(poly.Plane)
		shared := canonShared(poly.Shared)
		np, err := geom.NewPolygon(verts, plane, shared)
		if err != nil {
			continue
		}
		np.Tag = tags.Next()
		out = append(out, np)
	}

	return s.withPolygons(out, true, s.retesselated)
}
