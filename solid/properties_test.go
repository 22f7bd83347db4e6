package solid

import (
	"math"
	"testing"

	"github.com/bloodmagesoftware/venture-csg/geom"
	"github.com/bloodmagesoftware/venture-csg/vec3"
	"github.com/stretchr/testify/require"
)

// TestPlanePropertyTransformUnderNonUniformScale verifies that a plane
// leaf's Transform uses the inverse-transpose for the normal rather than
// TransformDirection's forward linear map: under a non-uniform scale,
// points that were on the original plane must still lie on the
// transformed plane. This is an internal (package solid) test so it can
// unwrap the unexported planeValue the public Transformable interface
// otherwise keeps opaque.
func TestPlanePropertyTransformUnderNonUniformScale(t *testing.T) {
	n := vec3.New(1, 1, 0).Unit()
	plane := geom.NewPlane(n, 1)
	leaf := NewPlaneProperty(plane)

	scaleX2 := Matrix4{
		2, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}

	// Two points known to lie on the original plane (n.p = 1, i.e.
	// x+y = sqrt(2)): (sqrt2, 0, 0) and (0, sqrt2, 0).
	p1 := vec3.New(math.Sqrt2, 0, 0)
	p2 := vec3.New(0, math.Sqrt2, 0)
	tp1 := scaleX2.TransformPoint(p1)
	tp2 := scaleX2.TransformPoint(p2)

	out, ok := leaf.Transform(scaleX2).(planeValue)
	require.True(t, ok)

	require.InDelta(t, 0, out.Plane.SignedDistance(tp1), 1e-9)
	require.InDelta(t, 0, out.Plane.SignedDistance(tp2), 1e-9)
}

// TestTransformNormalMatchesForwardMapUnderRotation verifies
// Matrix4.TransformNormal agrees with TransformDirection for a pure
// rotation, where the forward map and inverse-transpose coincide.
func TestTransformNormalMatchesForwardMapUnderRotation(t *testing.T) {
	// 90-degree rotation about Z.
	rot := Matrix4{
		0, -1, 0, 0,
		1, 0, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
	n := vec3.New(1, 0, 0)

	viaDirection := rot.TransformDirection(n)
	viaNormal := rot.TransformNormal(n)

	require.InDelta(t, viaDirection.X, viaNormal.X, 1e-9)
	require.InDelta(t, viaDirection.Y, viaNormal.Y, 1e-9)
	require.InDelta(t, viaDirection.Z, viaNormal.Z, 1e-9)
}
