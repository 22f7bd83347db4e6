package bsptree

import (
	"github.com/bloodmagesoftware/venture-csg/geom"
	"github.com/bloodmagesoftware/venture-csg/idgen"
)

// BspNode is one node of the spatial partition: a splitting plane (nil
// until the first insertion picks one), front/back children, the list of
// PolygonTreeNode references lying on this node's own plane, and a parent
// pointer.
type BspNode struct {
	plane    *geom.Plane
	front    *BspNode
	back     *BspNode
	parent   *BspNode
	polygons []*PolygonTreeNode
}

// NewBspNode creates an empty BspNode with no plane yet.
func NewBspNode(parent *BspNode) *BspNode {
	return &BspNode{parent: parent}
}

type splitJob struct {
	node  *BspNode
	nodes []*PolygonTreeNode
}

// AddPolygonTreeNodes inserts nodes into this BspNode. The first polygon
// seen picks this node's plane (no SAH, no median heuristic — the first
// available plane is used, per the kernel's insertion-order-determinism
// requirement). Every input node is then split by that plane: coplanar
// fragments are filed on this node; front/back fragments recurse into (or
// create) the front/back children. Driven by an explicit work stack so
// deep trees never overflow the native call stack.
func (n *BspNode) AddPolygonTreeNodes(nodes []*PolygonTreeNode) {
	if len(nodes) == 0 {
		return
	}
	stack := []splitJob{{node: n, nodes: nodes}}
	for len(stack) > 0 {
		job := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node, ns := job.node, job.nodes
		if len(ns) == 0 {
			continue
		}

		if node.plane == nil {
			p := ns[0].Polygon().Plane
			node.plane = &p
		}

		var frontNodes, backNodes []*PolygonTreeNode
		for _, pn := range ns {
			if pn.Removed() {
				continue
			}
			var cf, cb, f, b []*PolygonTreeNode
			pn.SplitByPlane(*node.plane, &cf, &cb, &f, &b)
			node.polygons = append(node.polygons, cf...)
			node.polygons = append(node.polygons, cb...)
			frontNodes = append(frontNodes, f...)
			backNodes = append(backNodes, b...)
		}

		if len(frontNodes) > 0 {
			if node.front == nil {
				node.front = NewBspNode(node)
			}
			stack = append(stack, splitJob{node.front, frontNodes})
		}
		if len(backNodes) > 0 {
			if node.back == nil {
				node.back = NewBspNode(node)
			}
			stack = append(stack, splitJob{node.back, backNodes})
		}
	}
}

// Invert swaps solid/empty meaning across the whole subtree: every plane is
// flipped and every front/back pair is swapped. Leaf polygons are inverted
// separately, through the parallel PolygonTreeNode.Invert on the owning
// BspTree. Iterative, per the kernel's no-native-recursion discipline.
func (n *BspNode) Invert() {
	stack := []*BspNode{n}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node == nil {
			continue
		}
		if node.plane != nil {
			flipped := node.plane.Flipped()
			node.plane = &flipped
		}
		node.front, node.back = node.back, node.front
		stack = append(stack, node.front, node.back)
	}
}

// ClipPolygons classifies an incoming set of PolygonTreeNode references
// against this node's plane (and, recursively, its descendants' planes).
// Coplanar-front nodes join the front bucket unless alsoRemoveCoplanarFront
// is set, in which case they join the back bucket instead (used by
// Difference to keep the cut surface on one side only). A node that
// reaches a missing back subtree is removed (it lies inside the solid
// there); a node that reaches a missing front subtree survives
// unchanged (front of a leaf subtree is outside the solid). A BspNode with
// no plane at all represents an empty operand and everything reaching it
// simply survives.
func (n *BspNode) ClipPolygons(nodes []*PolygonTreeNode, alsoRemoveCoplanarFront bool) {
	if len(nodes) == 0 {
		return
	}
	stack := []splitJob{{node: n, nodes: nodes}}
	for len(stack) > 0 {
		job := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node, ns := job.node, job.nodes
		if len(ns) == 0 {
			continue
		}
		if node.plane == nil {
			continue
		}

		var frontList, backList []*PolygonTreeNode
		for _, pn := range ns {
			if pn.Removed() {
				continue
			}
			var cf, cb, f, b []*PolygonTreeNode
			pn.SplitByPlane(*node.plane, &cf, &cb, &f, &b)
			if alsoRemoveCoplanarFront {
				backList = append(backList, cf...)
			} else {
				frontList = append(frontList, cf...)
			}
			backList = append(backList, cb...)
			frontList = append(frontList, f...)
			backList = append(backList, b...)
		}

		if len(frontList) > 0 && node.front != nil {
			stack = append(stack, splitJob{node.front, frontList})
		}
		if len(backList) > 0 {
			if node.back != nil {
				stack = append(stack, splitJob{node.back, backList})
			} else {
				for _, pn := range backList {
					pn.Remove()
				}
			}
		}
	}
}

// BspTree owns one root PolygonTreeNode (the forest of every polygon ever
// added, with its derivation history) and one root BspNode (the spatial
// index over references into that forest). Both are exclusively owned by
// one Boolean operation and discarded after harvest.
type BspTree struct {
	PolyRoot *PolygonTreeNode
	BspRoot  *BspNode
	tags     *idgen.Counter
}

// NewBspTree creates an empty tree. tags is the operation-scoped identity
// counter (nil is fine — polygons simply stay untagged until
// solid.Canonicalize assigns tags via fuzzy.Factory).
func NewBspTree(tags *idgen.Counter) *BspTree {
	return &BspTree{PolyRoot: NewPolygonTreeRoot(), BspRoot: NewBspNode(nil), tags: tags}
}

// NewBspTreeFromPolygons builds a tree and immediately inserts polygons.
func NewBspTreeFromPolygons(tags *idgen.Counter, polygons []*geom.Polygon) *BspTree {
	t := NewBspTree(tags)
	t.AddPolygons(polygons)
	return t
}

// AddPolygons wraps each polygon in a fresh PolygonTreeNode leaf under the
// forest root, then inserts those leaves into the BSP.
func (t *BspTree) AddPolygons(polygons []*geom.Polygon) {
	nodes := make([]*PolygonTreeNode, len(polygons))
	for i, p := range polygons {
		nodes[i] = t.PolyRoot.AddChild(p)
	}
	t.BspRoot.AddPolygonTreeNodes(nodes)
}

// AllPolygons harvests every surviving polygon from the forest.
func (t *BspTree) AllPolygons() []*geom.Polygon {
	var out []*geom.Polygon
	t.PolyRoot.GetPolygons(&out)
	return out
}

// Invert inverts both the spatial index and the polygon forest.
func (t *BspTree) Invert() {
	t.BspRoot.Invert()
	t.PolyRoot.Invert()
}

// ClipTo clips every polygon currently in t against other's BSP.
func (t *BspTree) ClipTo(other *BspTree, alsoRemoveCoplanarFront bool) {
	var leaves []*PolygonTreeNode
	t.PolyRoot.CollectLeaves(&leaves)
	other.BspRoot.ClipPolygons(leaves, alsoRemoveCoplanarFront)
}
