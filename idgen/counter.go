// Package idgen supplies the monotonic tag counter used to give vertices,
// planes, and polygons an identity that survives canonicalization. A Counter
// is owned by a single Boolean operation (or a single Solid construction
// call); it is never a package-level global, so concurrent Boolean calls
// never contend on it and results stay deterministic within one call.
package idgen

import "sync/atomic"

// Counter is a thread-safe monotonically increasing source of identity tags.
// The zero value is ready to use and its first Next() returns 1 — a tag of 0
// is reserved to mean "untagged" so zero-valued Vertex/Plane/Polygon structs
// compare structurally instead of falsely matching each other by tag.
type Counter struct {
	n atomic.Uint64
}

// New returns a fresh Counter scoped to one operation.
func New() *Counter {
	return &Counter{}
}

// Next returns the next unique tag. Safe for concurrent use, though the
// kernel itself is single-threaded per spec.
func (c *Counter) Next() uint64 {
	return c.n.Add(1)
}
