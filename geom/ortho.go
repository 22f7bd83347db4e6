package geom

import "github.com/bloodmagesoftware/venture-csg/vec3"

// Vec2 is a 2D point used by the retesselation sweep after projecting a
// coplanar polygon group onto its shared plane.
type Vec2 struct {
	X, Y float64
}

// OrthoNormalBasis is an orthonormal (u, v) basis spanning a plane, used to
// project 3D points into the plane's own 2D coordinate system and back.
type OrthoNormalBasis struct {
	U, V, Normal vec3.Vec3
}

// NewOrthoNormalBasis builds a basis for the given plane normal. An
// arbitrary but deterministic choice of "up" reference is made to pick U:
// the world axis least aligned with normal, so the basis never degenerates.
func NewOrthoNormalBasis(normal vec3.Vec3) OrthoNormalBasis {
	n := normal.Unit()
	var reference vec3.Vec3
	ax, ay, az := abs(n.X), abs(n.Y), abs(n.Z)
	switch {
	case ax <= ay && ax <= az:
		reference = vec3.New(1, 0, 0)
	case ay <= ax && ay <= az:
		reference = vec3.New(0, 1, 0)
	default:
		reference = vec3.New(0, 0, 1)
	}
	u := reference.Sub(n.Scale(reference.Dot(n))).Unit()
	v := n.Cross(u)
	return OrthoNormalBasis{U: u, V: v, Normal: n}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// To2D projects a 3D point (assumed to lie on the basis's plane) into the
// basis's 2D coordinate system.
func (b OrthoNormalBasis) To2D(p vec3.Vec3) Vec2 {
	return Vec2{X: p.Dot(b.U), Y: p.Dot(b.V)}
}

// To3D is the inverse of To2D, given any point known to lie on the plane at
// offset planeW along Normal.
func (b OrthoNormalBasis) To3D(p Vec2, planeW float64) vec3.Vec3 {
	origin := b.Normal.Scale(planeW)
	return origin.Add(b.U.Scale(p.X)).Add(b.V.Scale(p.Y))
}
