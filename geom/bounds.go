package geom

import "github.com/bloodmagesoftware/venture-csg/vec3"

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max vec3.Vec3
}

// Union returns the smallest Bounds containing both b and other.
func (b Bounds) Union(other Bounds) Bounds {
	return Bounds{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// Disjoint reports whether b and other do not overlap on at least one axis.
func (b Bounds) Disjoint(other Bounds) bool {
	return b.Max.X < other.Min.X || other.Max.X < b.Min.X ||
		b.Max.Y < other.Min.Y || other.Max.Y < b.Min.Y ||
		b.Max.Z < other.Min.Z || other.Max.Z < b.Min.Z
}

// Sphere is a bounding sphere used for the cheap sphere-vs-plane early-out
// in PolygonTreeNode.SplitByPlane.
type Sphere struct {
	Center vec3.Vec3
	Radius float64
}
