// Package vec3 provides an immutable 3D vector type and the pure arithmetic
// the CSG kernel builds on. Every operation returns a new value; there is no
// in-place mutation anywhere in this package.
package vec3

import (
	"math"

	"github.com/bloodmagesoftware/venture-csg/csgerr"
)

// Vec3 is an immutable point or direction in 3-space. Equality is exact
// component equality, so Vec3 is safe to use as a map key.
type Vec3 struct {
	X, Y, Z float64
}

// New constructs a Vec3 from three explicit components. This is the one
// canonical constructor; FromArray/FromXY/FromScalar below are explicit
// converters for the other shapes the kernel historically accepted.
func New(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Zero is the additive identity.
var Zero = Vec3{}

// FromArray builds a Vec3 from a 3-element slice, rejecting any other
// length with csgerr.ErrInvalidInput.
func FromArray(a []float64) (Vec3, error) {
	if len(a) != 3 {
		return Vec3{}, csgerr.ErrInvalidInput
	}
	return Vec3{X: a[0], Y: a[1], Z: a[2]}, nil
}

// FromXY builds a Vec3 with Z=0 from a 2-element slice.
func FromXY(a []float64) (Vec3, error) {
	if len(a) != 2 {
		return Vec3{}, csgerr.ErrInvalidInput
	}
	return Vec3{X: a[0], Y: a[1], Z: 0}, nil
}

// FromScalar broadcasts a single scalar across all three components.
func FromScalar(s float64) Vec3 {
	return Vec3{X: s, Y: s, Z: s}
}

// Add returns v+other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Sub returns v-other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Negate returns -v.
func (v Vec3) Negate() Vec3 {
	return Vec3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// Dot returns the dot product v.other.
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product v x other.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// LengthSquared returns |v|^2, avoiding the sqrt when only comparisons are
// needed.
func (v Vec3) LengthSquared() float64 {
	return v.Dot(v)
}

// Length returns |v|.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// Unit returns v normalized to unit length. The zero vector normalizes to
// itself rather than producing NaNs.
func (v Vec3) Unit() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Lerp returns the point t of the way from v to other (t=0 -> v, t=1 ->
// other). t is not clamped; callers that need clamping (e.g. plane/line
// intersection) do so explicitly.
func (v Vec3) Lerp(other Vec3, t float64) Vec3 {
	return v.Add(other.Sub(v).Scale(t))
}

// Min returns the componentwise minimum of v and other.
func (v Vec3) Min(other Vec3) Vec3 {
	return Vec3{X: math.Min(v.X, other.X), Y: math.Min(v.Y, other.Y), Z: math.Min(v.Z, other.Z)}
}

// Max returns the componentwise maximum of v and other.
func (v Vec3) Max(other Vec3) Vec3 {
	return Vec3{X: math.Max(v.X, other.X), Y: math.Max(v.Y, other.Y), Z: math.Max(v.Z, other.Z)}
}

// DistanceSquared returns |v-other|^2.
func (v Vec3) DistanceSquared(other Vec3) float64 {
	return v.Sub(other).LengthSquared()
}

// Distance returns |v-other|.
func (v Vec3) Distance(other Vec3) float64 {
	return math.Sqrt(v.DistanceSquared(other))
}
