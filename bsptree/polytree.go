// Package bsptree implements the polygon derivation tree and the BSP tree
// built over it: PolygonTreeNode (§4.2 of the kernel spec) and BspNode /
// BspTree (§4.3).
package bsptree

import (
	"github.com/bloodmagesoftware/venture-csg/csgerr"
	"github.com/bloodmagesoftware/venture-csg/geom"
)

// PolygonTreeNode is a node in the derivation tree over one original input
// polygon. A leaf holds a live polygon; an interior node holds children,
// one per fragment produced by a SPANNING split.
//
// polygon is not nulled the instant a node gains children: it is kept as a
// cache of the node's full pre-split coverage ("lazy un-splitting" — the
// node's two fragments together cover exactly the same area, so there is
// nothing geometrically to redo). The cache is only invalidated — set to
// nil — the first time any descendant leaf is removed, since at that point
// the node's fragments no longer fully cover the original area and the
// un-split shortcut would silently hide a hole. GetPolygons and Invert both
// honor the cache: a non-nil polygon field is authoritative regardless of
// whether children exist.
type PolygonTreeNode struct {
	parent   *PolygonTreeNode
	children []*PolygonTreeNode
	polygon  *geom.Polygon
	removed  bool
}

// NewPolygonTreeRoot creates the root of a polygon derivation forest. The
// root holds only children — one per polygon ever added to the owning
// BspTree — and never carries a polygon of its own.
func NewPolygonTreeRoot() *PolygonTreeNode {
	return &PolygonTreeNode{}
}

// AddChild appends a new leaf child holding polygon and returns it.
func (n *PolygonTreeNode) AddChild(polygon *geom.Polygon) *PolygonTreeNode {
	child := &PolygonTreeNode{parent: n, polygon: polygon}
	n.children = append(n.children, child)
	return child
}

// Polygon returns the node's own polygon, or nil if none is cached (true
// for the root, for a removed node, and for a split node whose cache has
// been invalidated).
func (n *PolygonTreeNode) Polygon() *geom.Polygon {
	return n.polygon
}

// Removed reports whether this node has been removed from the forest.
func (n *PolygonTreeNode) Removed() bool {
	return n.removed
}

// GetPolygons performs a breadth-first traversal, emitting node.polygon
// whenever it is non-nil (authoritative, per the cache rule above) and
// otherwise recursing into children. A historically-split-but-fully-intact
// node therefore re-emits as the single polygon it was before the split.
func (n *PolygonTreeNode) GetPolygons(out *[]*geom.Polygon) {
	queue := []*PolygonTreeNode{n}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		if node.polygon != nil {
			*out = append(*out, node.polygon)
		} else {
			queue = append(queue, node.children...)
		}
	}
}

// CollectLeaves gathers the PolygonTreeNode references GetPolygons would
// have emitted polygons for, but as node references rather than bare
// polygons — the input BspNode.ClipPolygons needs the nodes themselves so
// it can call Remove() on the ones that do not survive.
func (n *PolygonTreeNode) CollectLeaves(out *[]*PolygonTreeNode) {
	queue := []*PolygonTreeNode{n}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		if node.polygon != nil {
			*out = append(*out, node)
		} else {
			queue = append(queue, node.children...)
		}
	}
}

// Invert walks the whole subtree and replaces every polygon (cache entries
// and true leaves alike) with its flipped version, so that whichever
// representation GetPolygons later prefers is already consistent.
func (n *PolygonTreeNode) Invert() {
	stack := []*PolygonTreeNode{n}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node.polygon != nil {
			node.polygon = node.polygon.Flipped()
		}
		stack = append(stack, node.children...)
	}
}

// Remove marks the leaf removed, detaches it from its parent's children,
// and invalidates the pre-split cache of every ancestor up to (but
// excluding) the root, since those ancestors no longer fully cover their
// original area.
func (n *PolygonTreeNode) Remove() {
	if n.removed {
		return
	}
	csgerr.Assertf(n.parent != nil, "cannot remove the root of a polygon tree")
	csgerr.Assertf(len(n.children) == 0, "cannot remove a node with live children")

	parent := n.parent
	idx := -1
	for i, c := range parent.children {
		if c == n {
			idx = i
			break
		}
	}
	csgerr.Assertf(idx >= 0, "node missing from parent's children list")

	parent.children = append(parent.children[:idx], parent.children[idx+1:]...)
	n.removed = true
	n.polygon = nil

	for cur := parent; cur != nil && cur.polygon != nil; cur = cur.parent {
		cur.polygon = nil
	}
}

// SplitByPlane descends to live leaves and classifies each against plane.
// Interior nodes (already split) recurse into their real children rather
// than consulting their own cache, since the cache by definition does not
// reflect the finer structure a further split needs. A leaf is classified
// via a cheap bounding-sphere-vs-plane test before falling back to
// geom.SplitPolygonByPlane; a SPANNING result creates two new leaf
// children (front, back) without invalidating n's own cache.
func (n *PolygonTreeNode) SplitByPlane(plane geom.Plane, coplanarFront, coplanarBack, front, back *[]*PolygonTreeNode) {
	if n.removed {
		return
	}
	if len(n.children) > 0 {
		for _, c := range n.children {
			c.SplitByPlane(plane, coplanarFront, coplanarBack, front, back)
		}
		return
	}
	if n.polygon == nil {
		return
	}

	sphere := n.polygon.BoundingSphere()
	tol := sphere.Radius + geom.EPS
	d := plane.SignedDistance(sphere.Center)
	if d > tol {
		*front = append(*front, n)
		return
	}
	if d < -tol {
		*back = append(*back, n)
		return
	}

	kind, frontPoly, backPoly := geom.SplitPolygonByPlane(plane, n.polygon)
	switch kind {
	case geom.CoplanarFront:
		*coplanarFront = append(*coplanarFront, n)
	case geom.CoplanarBack:
		*coplanarBack = append(*coplanarBack, n)
	case geom.Front:
		*front = append(*front, n)
	case geom.Back:
		*back = append(*back, n)
	case geom.Spanning:
		if frontPoly != nil {
			fc := n.AddChild(frontPoly)
			*front = append(*front, fc)
		}
		if backPoly != nil {
			bc := n.AddChild(backPoly)
			*back = append(*back, bc)
		}
	}
}
