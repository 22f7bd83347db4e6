package geom

import (
	"sync"

	"github.com/bloodmagesoftware/venture-csg/csgerr"
	"github.com/bloodmagesoftware/venture-csg/vec3"
)

// Polygon is an ordered ring of >=3 vertices, assumed coplanar and convex,
// whose outward-facing normal equals Plane.Normal. Shared is opaque
// per-surface metadata preserved through every operation.
//
// A Polygon's bounding box and bounding sphere are expensive enough (O(n)
// over the vertex ring) that PolygonTreeNode's sphere-vs-plane early-out
// would dominate cost if recomputed per split, so both are cached lazily
// behind sync.Once — cheap to construct, computed once per polygon no
// matter how many times it is tested against planes.
type Polygon struct {
	Vertices []Vertex
	Plane    Plane
	Shared   Shared
	Tag      uint64

	boundsOnce  sync.Once
	bounds      Bounds
	sphereOnce  sync.Once
	sphere      Sphere
}

// NewPolygon builds a Polygon from vertices and an explicit plane. In debug
// mode (Debug=true) it checks that the vertex ring is convex, returning
// csgerr.ErrInvalidInput if not.
func NewPolygon(vertices []Vertex, plane Plane, shared Shared) (*Polygon, error) {
	if len(vertices) < 3 {
		return nil, csgerr.ErrInvalidInput
	}
	p := &Polygon{Vertices: vertices, Plane: plane, Shared: shared}
	if Debug && !checkIfConvex(p) {
		return nil, csgerr.ErrInvalidInput
	}
	return p, nil
}

// NewPolygonFromVertices derives the plane from the first three vertices.
// Collinear or coincident leading vertices (zero-area) are surfaced as
// csgerr.ErrDegenerate rather than producing a polygon with a meaningless
// zero-length normal.
func NewPolygonFromVertices(vertices []Vertex, shared Shared) (*Polygon, error) {
	if len(vertices) < 3 {
		return nil, csgerr.ErrInvalidInput
	}
	plane, err := PlaneFromPoints(vertices[0].Pos, vertices[1].Pos, vertices[2].Pos)
	if err != nil {
		return nil, err
	}
	return NewPolygon(vertices, plane, shared)
}

// Flipped returns a new Polygon with reversed vertex order and a flipped
// plane, so the outward normal still matches the new winding.
func (p *Polygon) Flipped() *Polygon {
	n := len(p.Vertices)
	verts := make([]Vertex, n)
	for i, v := range p.Vertices {
		verts[n-1-i] = v.Flipped()
	}
	return &Polygon{Vertices: verts, Plane: p.Plane.Flipped(), Shared: p.Shared}
}

// Bounds returns the polygon's axis-aligned bounding box, computed once and
// cached.
func (p *Polygon) Bounds() Bounds {
	p.boundsOnce.Do(func() {
		min, max := p.Vertices[0].Pos, p.Vertices[0].Pos
		for _, v := range p.Vertices[1:] {
			min = min.Min(v.Pos)
			max = max.Max(v.Pos)
		}
		p.bounds = Bounds{Min: min, Max: max}
	})
	return p.bounds
}

// BoundingSphere returns the polygon's bounding sphere (centroid + max
// vertex distance), computed once and cached.
func (p *Polygon) BoundingSphere() Sphere {
	p.sphereOnce.Do(func() {
		var centroid vec3.Vec3
		for _, v := range p.Vertices {
			centroid = centroid.Add(v.Pos)
		}
		centroid = centroid.Scale(1 / float64(len(p.Vertices)))
		var r2 float64
		for _, v := range p.Vertices {
			if d := centroid.DistanceSquared(v.Pos); d > r2 {
				r2 = d
			}
		}
		p.sphere = Sphere{Center: centroid, Radius: sqrt(r2)}
	})
	return p.sphere
}

func sqrt(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return vec3.New(x, 0, 0).Length()
}

// SameAs reports whether p and other are the same polygon. If both carry a
// nonzero tag, identity is tag equality; otherwise it falls back to
// structural equality: the same vertices in the same order, the same plane
// and the same Shared.
func (p *Polygon) SameAs(other *Polygon) bool {
	if p.Tag != 0 && other.Tag != 0 {
		return p.Tag == other.Tag
	}
	if len(p.Vertices) != len(other.Vertices) || !p.Plane.SameAs(other.Plane) || !SameShared(p.Shared, other.Shared) {
		return false
	}
	for i, v := range p.Vertices {
		if !v.SameAs(other.Vertices[i]) {
			return false
		}
	}
	return true
}

// checkIfConvex verifies that successive edge-pair signed cross products,
// projected onto the polygon's normal, do not change sign (beyond AreaEPS).
// Referenced but left undefined by the distilled source; implemented here
// per the kernel's own convexity contract.
func checkIfConvex(p *Polygon) bool {
	n := len(p.Vertices)
	if n < 3 {
		return false
	}
	var sign float64
	for i := 0; i < n; i++ {
		a := p.Vertices[i].Pos
		b := p.Vertices[(i+1)%n].Pos
		c := p.Vertices[(i+2)%n].Pos
		cross := b.Sub(a).Cross(c.Sub(b)).Dot(p.Plane.Normal)
		if cross > AreaEPS || cross < -AreaEPS {
			if sign == 0 {
				sign = cross
			} else if (sign > 0) != (cross > 0) {
				return false
			}
		}
	}
	return true
}
