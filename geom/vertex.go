package geom

import "github.com/bloodmagesoftware/venture-csg/vec3"

// Vertex wraps one position in space plus an identity tag assigned by
// canonicalization. There is no vertex-local orientation data in the
// kernel — a polygon's winding alone determines its outward normal.
type Vertex struct {
	Pos vec3.Vec3
	Tag uint64
}

// NewVertex builds an untagged vertex at pos. Tag is assigned later by
// solid.Canonicalize via fuzzy.Factory.
func NewVertex(pos vec3.Vec3) Vertex {
	return Vertex{Pos: pos}
}

// Flipped returns the vertex unchanged: flipping a polygon reverses vertex
// order, but an individual vertex carries no direction to invert.
func (v Vertex) Flipped() Vertex {
	return v
}

// Interpolate returns the point t of the way from v to other. The result is
// a fresh geometric value and is untagged (Tag=0) until canonicalized.
func (v Vertex) Interpolate(other Vertex, t float64) Vertex {
	return Vertex{Pos: v.Pos.Lerp(other.Pos, t)}
}

// SameAs reports whether v and other are the same vertex. If both carry a
// nonzero tag, identity is tag equality (O(1), valid post-canonicalization);
// otherwise it falls back to structural (exact position) equality.
func (v Vertex) SameAs(other Vertex) bool {
	if v.Tag != 0 && other.Tag != 0 {
		return v.Tag == other.Tag
	}
	return v.Pos == other.Pos
}
