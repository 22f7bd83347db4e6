package solid

import (
	"github.com/bloodmagesoftware/venture-csg/geom"
	"github.com/bloodmagesoftware/venture-csg/vec3"
)

// Matrix4 is a minimal row-major 4x4 affine transform, just enough for
// Properties.Transform: translation, rotation, and scale composed by the
// caller. Only the parts a Transformable needs (point and direction
// transforms) are implemented — this is not a general linear-algebra
// package.
type Matrix4 [16]float64

// Identity4 is the identity transform.
var Identity4 = Matrix4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// TransformPoint applies m to p as a homogeneous point (implicit w=1).
func (m Matrix4) TransformPoint(p vec3.Vec3) vec3.Vec3 {
	return vec3.New(
		m[0]*p.X+m[1]*p.Y+m[2]*p.Z+m[3],
		m[4]*p.X+m[5]*p.Y+m[6]*p.Z+m[7],
		m[8]*p.X+m[9]*p.Y+m[10]*p.Z+m[11],
	)
}

// TransformDirection applies m to v as a direction (implicit w=0, no
// translation component). This is the forward linear map: correct for
// ordinary vectors (Line.Direction), but NOT for surface normals under a
// non-uniform scale or shear — use TransformNormal for those.
func (m Matrix4) TransformDirection(v vec3.Vec3) vec3.Vec3 {
	return vec3.New(
		m[0]*v.X+m[1]*v.Y+m[2]*v.Z,
		m[4]*v.X+m[5]*v.Y+m[6]*v.Z,
		m[8]*v.X+m[9]*v.Y+m[10]*v.Z,
	)
}

// TransformNormal applies m's inverse-transpose to n, the correct map for a
// plane/surface normal under a general (including non-uniform scale or
// shear) invertible linear part — TransformDirection's forward map would
// rotate a normal out of alignment with its transformed surface in that
// case. Since the result is renormalized by the caller, the 1/det scale
// factor of the true inverse is dropped; only its sign is kept, so an
// orientation-reversing transform (negative determinant) still flips the
// normal the right way. A singular linear part (det 0, e.g. a zero scale
// axis) gets no sign correction, and the result can be the zero vector,
// which vec3.Vec3.Unit leaves unchanged rather than producing NaNs.
func (m Matrix4) TransformNormal(n vec3.Vec3) vec3.Vec3 {
	a, b, c := m[0], m[1], m[2]
	d, e, f := m[4], m[5], m[6]
	g, h, i := m[8], m[9], m[10]

	det := a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)

	// Rows of the cofactor matrix C; (1/det)*C*n = (M^-1)^T * n.
	r0 := vec3.New(e*i-f*h, -(d*i-f*g), d*h-e*g)
	r1 := vec3.New(-(b*i-c*h), a*i-c*g, -(a*h-b*g))
	r2 := vec3.New(b*f-c*e, -(a*f-c*d), a*e-b*d)

	result := vec3.New(r0.Dot(n), r1.Dot(n), r2.Dot(n))
	if det < 0 {
		result = result.Negate()
	}
	return result
}

// Line is one of the leaf value kinds a Properties tree may carry — e.g. a
// symmetry axis or a construction reference line hung on a Solid by a
// caller, transformed alongside it.
type Line struct {
	Origin, Direction vec3.Vec3
}

// Transformable is anything a PropertyNode's Leaf can hold: it knows how to carry
// itself through an affine transform.
type Transformable interface {
	Transform(m Matrix4) Transformable
}

// vec3Value and planeValue adapt vec3.Vec3/geom.Plane to Transformable so
// callers can hang arbitrary geometric values on a Solid's Properties tree.
type vec3Value struct{ vec3.Vec3 }

func (v vec3Value) Transform(m Matrix4) Transformable {
	return vec3Value{m.TransformPoint(v.Vec3)}
}

// NewVec3Property wraps a point for storage in a Properties tree.
func NewVec3Property(v vec3.Vec3) Transformable {
	return vec3Value{v}
}

func (l Line) Transform(m Matrix4) Transformable {
	return Line{Origin: m.TransformPoint(l.Origin), Direction: m.TransformDirection(l.Direction)}
}

// planeValue adapts geom.Plane to Transformable. A plane is carried through
// m by transforming a point on the plane with TransformPoint and its normal
// with TransformNormal (the inverse-transpose, not the forward linear map),
// then recomputing W from the two — correct under translation, rotation,
// and non-uniform scale alike, not just the uniform-scale case the forward
// map would get right.
type planeValue struct{ geom.Plane }

func (p planeValue) Transform(m Matrix4) Transformable {
	point := p.Plane.Normal.Scale(p.Plane.W)
	tp := m.TransformPoint(point)
	tn := m.TransformNormal(p.Plane.Normal).Unit()
	return planeValue{geom.NewPlane(tn, tn.Dot(tp))}
}

// NewPlaneProperty wraps a plane for storage in a Properties tree.
func NewPlaneProperty(p geom.Plane) Transformable {
	return planeValue{p}
}

// PropertyNode is one node of the tagged-variant Properties tree: either a
// leaf (Leaf holds one Transformable) or a sub-map (Map, named children).
// Exactly one of Leaf/Map is set.
type PropertyNode struct {
	Leaf Transformable
	Map  PropertyMap
}

// PropertyMap is a named collection of PropertyNodes.
type PropertyMap map[string]PropertyNode

// Properties is the root of a Solid's opaque per-solid metadata tree.
type Properties struct {
	Root PropertyMap
}

// NewProperties returns an empty Properties tree.
func NewProperties() Properties {
	return Properties{Root: PropertyMap{}}
}

// Transform returns a new Properties tree with every leaf transformed by m.
func (p Properties) Transform(m Matrix4) Properties {
	return Properties{Root: transformMap(p.Root, m)}
}

func transformMap(pm PropertyMap, m Matrix4) PropertyMap {
	if pm == nil {
		return nil
	}
	out := make(PropertyMap, len(pm))
	for k, node := range pm {
		if node.Leaf != nil {
			out[k] = PropertyNode{Leaf: node.Leaf.Transform(m)}
		} else {
			out[k] = PropertyNode{Map: transformMap(node.Map, m)}
		}
	}
	return out
}

// MergeProperties merges b into a, preferring a's value on key collision
// and recursing when both sides hold a sub-map at the same key.
func MergeProperties(a, b Properties) Properties {
	return Properties{Root: mergeMap(a.Root, b.Root)}
}

func mergeMap(a, b PropertyMap) PropertyMap {
	out := make(PropertyMap, len(a)+len(b))
	for k, v := range b {
		out[k] = v
	}
	for k, v := range a {
		existing, ok := out[k]
		if ok && existing.Leaf == nil && v.Leaf == nil {
			out[k] = PropertyNode{Map: mergeMap(v.Map, existing.Map)}
		} else {
			out[k] = v
		}
	}
	return out
}
