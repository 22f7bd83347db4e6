package geom

import (
	"math"
)

// Shared is the opaque per-surface metadata a Polygon carries through every
// kernel operation untouched (e.g. color). Implementations must be
// comparable by content so solid.Canonicalize can collapse identical
// descriptors to one instance; Hash need not be cryptographic, only stable
// for equal values and cheap.
type Shared interface {
	Hash() uint64
}

// Color is the provided Shared implementation: an RGB triple in [0,1]
// consumed by mesh.ToTriangles as the per-vertex color stream.
type Color struct {
	R, G, B float64
}

// DefaultColor is used by mesh.ToTriangles when a polygon's Shared is nil.
var DefaultColor = Color{R: 1, G: 1, B: 1}

// Hash implements Shared with an FNV-1a-style mix over the quantized
// components, stable for equal colors and cheap to compute.
func (c Color) Hash() uint64 {
	h := uint64(14695981039346656037)
	for _, v := range [3]float64{c.R, c.G, c.B} {
		q := uint64(math.Round(v * 1e6))
		h ^= q
		h *= 1099511628211
	}
	return h
}

// SameShared reports whether two Shared values describe the same surface
// metadata: nil equals nil, and otherwise their hashes must match.
func SameShared(a, b Shared) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Hash() == b.Hash()
}
