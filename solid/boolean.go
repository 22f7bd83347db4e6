package solid

import (
	"github.com/bloodmagesoftware/venture-csg/bsptree"
	"github.com/bloodmagesoftware/venture-csg/geom"
	"github.com/bloodmagesoftware/venture-csg/idgen"
)

// raw builds an uncanonicalized, unretesselated Solid from a pairwise
// Boolean step's harvested polygons, with its own bounds cache so a
// chained reduction (Union's balanced-tree pairing, Difference/
// Intersection's left fold) doesn't recompute bounds on every MayOverlap
// check against it.
func raw(polys []*geom.Polygon, props Properties) Solid {
	return Solid{Polygons: polys, Properties: props, cache: &boundsCache{}}
}

// finish runs Retesselate then Canonicalize on a harvested Boolean result.
// Per the facade's data flow, this happens once on the final result of an
// operation, never on intermediate pairwise results of an n-ary reduction —
// retesselating every intermediate pairing would repeat work the final
// pass already subsumes.
func finish(s Solid, tags *idgen.Counter) Solid {
	return Canonicalize(Retesselate(s), tags)
}

// unionPair computes the raw Boolean union of two solids: A.clipTo(B);
// B.clipTo(A); B.invert(); B.clipTo(A); B.invert(); then the polygons of A
// and B are simply gathered side by side — unlike Difference and
// Intersection, union never feeds B's survivors into A's tree with
// addPolygons. Operands with disjoint bounding boxes skip the BSP
// entirely: nothing from either side can lie on, in front of, or behind
// any plane from the other, so concatenation alone is already correct.
func unionPair(a, b Solid) Solid {
	if !a.MayOverlap(b) {
		combined := make([]*geom.Polygon, 0, len(a.Polygons)+len(b.Polygons))
		combined = append(combined, a.Polygons...)
		combined = append(combined, b.Polygons...)
		return raw(combined, MergeProperties(a.Properties, b.Properties))
	}

	ta := bsptree.NewBspTreeFromPolygons(nil, a.Polygons)
	tb := bsptree.NewBspTreeFromPolygons(nil, b.Polygons)

	ta.ClipTo(tb, false)
	tb.ClipTo(ta, false)
	tb.Invert()
	tb.ClipTo(ta, false)
	tb.Invert()

	combined := make([]*geom.Polygon, 0)
	combined = append(combined, ta.AllPolygons()...)
	combined = append(combined, tb.AllPolygons()...)
	return raw(combined, MergeProperties(a.Properties, b.Properties))
}

// Union computes the Boolean union of one or more solids, reducing them
// pairwise via a balanced binary tree (rather than a left-to-right fold) so
// BSP depth stays O(log n) in the operand count instead of O(n).
// Retesselate/Canonicalize run exactly once, on the final reduced result.
func Union(tags *idgen.Counter, solids ...Solid) Solid {
	if len(solids) == 0 {
		return New(nil)
	}
	if tags == nil {
		tags = idgen.New()
	}

	pending := solids
	for len(pending) > 1 {
		var next []Solid
		for i := 0; i+1 < len(pending); i += 2 {
			next = append(next, unionPair(pending[i], pending[i+1]))
		}
		if len(pending)%2 == 1 {
			next = append(next, pending[len(pending)-1])
		}
		pending = next
	}
	return finish(pending[0], tags)
}

// Difference computes a minus (b1 union b2 union ...), reducing
// left-to-right: each subtrahend is subtracted from the accumulated raw
// result in turn. Retesselate/Canonicalize run once, after every
// subtrahend has been applied.
func Difference(tags *idgen.Counter, a Solid, subtrahends ...Solid) Solid {
	if tags == nil {
		tags = idgen.New()
	}
	acc := a
	for _, b := range subtrahends {
		acc = differencePair(acc, b)
	}
	return finish(acc, tags)
}

// differencePair follows the classic invert/clip/invert sequence, with the
// asymmetric clipTo(..., true) against b retained: it also strips b's
// coplanar-front fragments (surfaces flush with a's own boundary) so the
// cut seam is taken from a, not duplicated.
func differencePair(a, b Solid) Solid {
	ta := bsptree.NewBspTreeFromPolygons(nil, a.Polygons)
	tb := bsptree.NewBspTreeFromPolygons(nil, b.Polygons)

	ta.Invert()
	ta.ClipTo(tb, false)
	tb.ClipTo(ta, true)
	ta.AddPolygons(tb.AllPolygons())
	ta.Invert()

	return raw(ta.AllPolygons(), MergeProperties(a.Properties, b.Properties))
}

// Intersection computes the Boolean intersection of one or more solids,
// reduced left-to-right. Retesselate/Canonicalize run once, on the final
// result.
func Intersection(tags *idgen.Counter, solids ...Solid) Solid {
	if len(solids) == 0 {
		return New(nil)
	}
	if tags == nil {
		tags = idgen.New()
	}
	acc := solids[0]
	for _, s := range solids[1:] {
		acc = intersectionPair(acc, s)
	}
	return finish(acc, tags)
}

func intersectionPair(a, b Solid) Solid {
	if len(a.Polygons) == 0 || len(b.Polygons) == 0 {
		return raw(nil, MergeProperties(a.Properties, b.Properties))
	}
	ta :=bsptree.NewBspTreeFromPolygons(nil, a.Polygons)
	tb := bsptree.NewBspTreeFromPolygons(nil, b.Polygons)

	ta.Invert()
	tb.ClipTo(ta, false)
	tb.Invert()
	ta.ClipTo(tb, false)
	tb.ClipTo(ta, false)
	ta.AddPolygons(tb.AllPolygons())
	ta.Invert()

	return raw(ta.AllPolygons(), MergeProperties(a.Properties, b.Properties))
}
