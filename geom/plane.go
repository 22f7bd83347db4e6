package geom

import (
	"math"

	"github.com/bloodmagesoftware/venture-csg/csgerr"
	"github.com/bloodmagesoftware/venture-csg/vec3"
)

// Plane is the half-space boundary { p : Normal.p = W }, with Normal always
// unit length. Equality is Normal-equal and W-equal.
type Plane struct {
	Normal vec3.Vec3
	W      float64
	Tag    uint64
}

// NewPlane builds a plane from an already-unit normal and offset. Callers
// deriving a plane from points should use PlaneFromPoints instead.
func NewPlane(normal vec3.Vec3, w float64) Plane {
	return Plane{Normal: normal, W: w}
}

// PlaneFromPoints derives the plane through three points, with outward
// normal (b-a) x (c-a), normalized. Points that are collinear or coincident
// (within AreaEPS) yield a cross product with no well-defined direction, so
// this returns csgerr.ErrDegenerate rather than silently handing back a
// zero-length normal.
func PlaneFromPoints(a, b, c vec3.Vec3) (Plane, error) {
	cross := b.Sub(a).Cross(c.Sub(a))
	if cross.Dot(cross) <= AreaEPS*AreaEPS {
		return Plane{}, csgerr.ErrDegenerate
	}
	n := cross.Unit()
	return Plane{Normal: n, W: n.Dot(a)}, nil
}

// Flipped returns the plane with both normal and offset negated — the same
// point set, opposite front/back sense.
func (p Plane) Flipped() Plane {
	return Plane{Normal: p.Normal.Negate(), W: -p.W}
}

// SignedDistance returns Normal.p - W: positive in front, negative behind,
// zero (within EPS elsewhere) on the plane.
func (p Plane) SignedDistance(point vec3.Vec3) float64 {
	return p.Normal.Dot(point) - p.W
}

// SameAs reports whether p and other are the same plane, by tag when both
// are tagged, else by exact (Normal, W) equality.
func (p Plane) SameAs(other Plane) bool {
	if p.Tag != 0 && other.Tag != 0 {
		return p.Tag == other.Tag
	}
	return p.Normal == other.Normal && p.W == other.W
}

// SplitLineBetweenPoints returns the point where the segment p1->p2 crosses
// the plane, with the line parameter t clamped to [0,1]. A parallel or
// ill-conditioned segment (zero denominator) yields t=0, i.e. p1 — the same
// NaN-safe convention as the source's "0 chosen on NaN" rule.
func (p Plane) SplitLineBetweenPoints(p1, p2 vec3.Vec3) vec3.Vec3 {
	direction := p2.Sub(p1)
	denom := p.Normal.Dot(direction)
	var t float64
	if denom == 0 {
		t = 0
	} else {
		t = (p.W - p.Normal.Dot(p1)) / denom
		if math.IsNaN(t) {
			t = 0
		}
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	return p1.Lerp(p2, t)
}
