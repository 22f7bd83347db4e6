// Package csgerr defines the sentinel error kinds shared across the CSG
// kernel packages (vec3, geom, bsptree, fuzzy, solid, mesh). Every non-fatal
// failure returned by the kernel wraps one of these with errors.Is in mind;
// callers should never need to match on string content.
package csgerr

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "csg: ..." for consistency across packages
// and easy grepping. Do not wrap these again with the same prefix; add
// call-site context with fmt.Errorf("...: %w", err) instead.

var (
	// ErrInvalidInput marks malformed input: a vector constructed from a
	// wrong-length tuple, a polygon with fewer than three vertices, or (in
	// debug mode) a non-convex polygon.
	ErrInvalidInput = errors.New("csg: invalid input")

	// ErrDegenerate marks a geometric degeneracy that the kernel refuses to
	// silently paper over: parallel planes in a plane-intersection helper,
	// or a line with no well-defined direction vector.
	ErrDegenerate = errors.New("csg: degenerate geometry")

	// ErrAssertion marks a PolygonTree invariant violation: removing the
	// root, removing a node with live children, or a node missing from its
	// parent's children list. Reaching this means the tree is corrupt and
	// any further output would be silently wrong, so callers that see an
	// *AssertionError panic should treat it as a programmer error, not a
	// recoverable condition.
	ErrAssertion = errors.New("csg: polygon tree invariant violated")
)

// AssertionError wraps ErrAssertion with the specific invariant that failed.
// PolygonTreeNode methods panic with this type rather than returning it,
// per the kernel's fail-fast policy for corrupted tree state.
type AssertionError struct {
	Invariant string
}

func (e *AssertionError) Error() string {
	return "csg: polygon tree invariant violated: " + e.Invariant
}

func (e *AssertionError) Unwrap() error {
	return ErrAssertion
}

// Assertf panics with an *AssertionError built from the given invariant
// description when cond is false. Used by bsptree.PolygonTreeNode.Remove to
// enforce its preconditions: the node is not the root, has no live
// children, and is listed in its parent's children.
func Assertf(cond bool, invariant string) {
	if !cond {
		panic(&AssertionError{Invariant: invariant})
	}
}
