// Package solid implements the Solid value type and the Boolean, fuzzy
// canonicalization, and retesselation operations layered on top of
// bsptree and geom.
package solid

import (
	"sync"

	"github.com/bloodmagesoftware/venture-csg/geom"
)

// boundsCache holds a Solid's lazily-computed bounding box behind a
// pointer. Solid itself is copied freely (value receivers throughout
// unionPair/finish/MergeProperties/withPolygons), so the cache cannot live
// inline as a sync.Once field — copying a live sync.Once is a vet
// copylocks violation, and a per-copy Once would defeat the cache anyway,
// recomputing bounds on every copy instead of sharing one answer.
type boundsCache struct {
	once      sync.Once
	bounds    geom.Bounds
	hasBounds bool
}

// Solid is an immutable-by-convention value holding a closed polyhedral
// surface as a set of coplanar convex polygons, plus opaque per-solid
// metadata. Two flags record whether Canonicalize/Retesselate have already
// run, so Boolean operations can skip redundant passes.
type Solid struct {
	Polygons      []*geom.Polygon
	Properties    Properties
	canonicalized bool
	retesselated  bool
	cache         *boundsCache
}

// New builds a Solid from polygons with empty Properties. The polygons are
// taken as-is: neither canonicalized nor retesselated.
func New(polygons []*geom.Polygon) Solid {
	return Solid{Polygons: polygons, Properties: NewProperties(), cache: &boundsCache{}}
}

// IsCanonicalized reports whether this value is known to already be the
// output of Canonicalize (no further dedup would change it).
func (s Solid) IsCanonicalized() bool { return s.canonicalized }

// IsRetesselated reports whether this value is known to already be the
// output of Retesselate.
func (s Solid) IsRetesselated() bool { return s.retesselated }

// Bounds returns the axis-aligned bounding box over every polygon, cached
// after first computation the same way geom.Polygon caches its own bounds.
// The cache is shared across every copy of s (it lives behind a pointer),
// so copying a Solid never forces a recompute.
func (s Solid) Bounds() geom.Bounds {
	c := s.cache
	if c == nil {
		c = &boundsCache{}
	}
	c.once.Do(func() {
		if len(s.Polygons) == 0 {
			return
		}
		b := s.Polygons[0].Bounds()
		for _, p := range s.Polygons[1:] {
			b = b.Union(p.Bounds())
		}
		c.bounds = b
		c.hasBounds = true
	})
	return c.bounds
}

// MayOverlap is a cheap pre-filter: two solids whose bounding boxes are
// disjoint cannot intersect, so a Boolean operation can take a fast path
// (Union returns the untouched concatenation). Difference and Intersection
// do not call it.
func (a Solid) MayOverlap(b Solid) bool {
	ab, bb := a.Bounds(), b.Bounds()
	if (a.cache == nil || !a.cache.hasBounds) || (b.cache == nil || !b.cache.hasBounds) {
		return true
	}
	return !ab.Disjoint(bb)
}

// withPolygons returns a copy of s with new polygon content and reset
// derived flags/caches — the bounds cache in particular must not leak
// across distinct polygon sets.
func (s Solid) withPolygons(polys []*geom.Polygon, canonical, retess bool) Solid {
	return Solid{
		Polygons:      polys,
		Properties:    s.Properties,
		canonicalized: canonical,
		retesselated:  retess,
		cache:         &boundsCache{},
	}
}
