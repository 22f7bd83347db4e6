package solid_test

import (
	"math"
	"testing"

	"github.com/bloodmagesoftware/venture-csg/geom"
	"github.com/bloodmagesoftware/venture-csg/idgen"
	"github.com/bloodmagesoftware/venture-csg/solid"
	"github.com/bloodmagesoftware/venture-csg/vec3"
	"github.com/stretchr/testify/require"
)

func requireVec3Near(t *testing.T, want, got vec3.Vec3, tol float64) {
	t.Helper()
	require.InDelta(t, want.X, got.X, tol)
	require.InDelta(t, want.Y, got.Y, tol)
	require.InDelta(t, want.Z, got.Z, tol)
}

// rotateZ rotates v about the Z axis by radians, used to build the
// 45-degree-rotated cube in the octagon-prism intersection scenario.
func rotateZ(v vec3.Vec3, radians float64) vec3.Vec3 {
	s, c := math.Sin(radians), math.Cos(radians)
	return vec3.New(v.X*c-v.Y*s, v.X*s+v.Y*c, v.Z)
}

// cubeRotatedZ45 returns a cube of the same shape as cube, rotated 45
// degrees about the Z axis. The plane is re-derived from the rotated
// vertices (rather than rotating Plane.Normal by hand) so the outward
// normal stays consistent with the new winding automatically.
func cubeRotatedZ45(t *testing.T) solid.Solid {
	t.Helper()
	base := cube(t)
	out := make([]*geom.Polygon, len(base.Polygons))
	for i, p := range base.Polygons {
		verts := make([]geom.Vertex, len(p.Vertices))
		for j, v := range p.Vertices {
			verts[j] = geom.NewVertex(rotateZ(v.Pos, math.Pi/4))
		}
		np, err := geom.NewPolygonFromVertices(verts, p.Shared)
		require.NoError(t, err)
		out[i] = np
	}
	return solid.New(out)
}

func quadAt(t *testing.T, corners [4]vec3.Vec3) *geom.Polygon {
	t.Helper()
	verts := make([]geom.Vertex, 4)
	for i, c := range corners {
		verts[i] = geom.NewVertex(c)
	}
	p, err := geom.NewPolygonFromVertices(verts, nil)
	require.NoError(t, err)
	return p
}

// cube returns a unit cube centered at origin (half-extent 1), with
// outward-facing normals on all six sides.
func cube(t *testing.T) solid.Solid {
	t.Helper()
	polys := []*geom.Polygon{
		quadAt(t, [4]vec3.Vec3{{X: -1, Y: -1, Z: -1}, {X: -1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: 1, Y: -1, Z: -1}}),
		quadAt(t, [4]vec3.Vec3{{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1}}),
		quadAt(t, [4]vec3.Vec3{{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: 1}, {X: -1, Y: -1, Z: 1}}),
		quadAt(t, [4]vec3.Vec3{{X: -1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: -1}}),
		quadAt(t, [4]vec3.Vec3{{X: -1, Y: -1, Z: -1}, {X: -1, Y: -1, Z: 1}, {X: -1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: -1}}),
		quadAt(t, [4]vec3.Vec3{{X: 1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: -1, Z: 1}}),
	}
	return solid.New(polys)
}

// cubeAt returns a cube translated by d.
func cubeAt(t *testing.T, d vec3.Vec3) solid.Solid {
	t.Helper()
	base := cube(t)
	out := make([]*geom.Polygon, len(base.Polygons))
	for i, p := range base.Polygons {
		verts := make([]geom.Vertex, len(p.Vertices))
		for j, v := range p.Vertices {
			verts[j] = geom.NewVertex(v.Pos.Add(d))
		}
		np, err := geom.NewPolygon(verts, geom.NewPlane(p.Plane.Normal, p.Plane.W+p.Plane.Normal.Dot(d)), p.Shared)
		require.NoError(t, err)
		out[i] = np
	}
	return solid.New(out)
}

func TestCanonicalizeIsIdempotent(t *testing.T) {
	tags := idgen.New()
	a := solid.Canonicalize(cube(t), tags)
	b := solid.Canonicalize(a, tags)
	require.Len(t, b.Polygons, len(a.Polygons))
	require.True(t, b.IsCanonicalized())
}

func TestCanonicalizeDropsDegeneratePolygon(t *testing.T) {
	verts := []geom.Vertex{
		geom.NewVertex(vec3.New(0, 0, 0)),
		geom.NewVertex(vec3.New(0, 0, 0)),
		geom.NewVertex(vec3.New(1, 0, 0)),
		geom.NewVertex(vec3.New(1, 1, 0)),
	}
	p, err := geom.NewPolygon(verts, geom.NewPlane(vec3.New(0, 0, 1), 0), nil)
	require.NoError(t, err)

	out := solid.Canonicalize(solid.New([]*geom.Polygon{p}), idgen.New())
	for _, poly := range out.Polygons {
		require.GreaterOrEqual(t, len(poly.Vertices), 3)
	}
}

func TestRetesselateSingletonGroupIsNoop(t *testing.T) {
	c := cube(t)
	r := solid.Retesselate(c)
	require.Len(t, r.Polygons, len(c.Polygons))
	require.True(t, r.IsRetesselated())
}

func TestRetesselateMergesSplitQuad(t *testing.T) {
	left := quadAt(t, [4]vec3.Vec3{{X: -1, Y: -1, Z: 0}, {X: 0, Y: -1, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: -1, Y: 1, Z: 0}})
	right := quadAt(t, [4]vec3.Vec3{{X: 0, Y: -1, Z: 0}, {X: 1, Y: -1, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0}})

	merged := solid.Retesselate(solid.New([]*geom.Polygon{left, right}))
	require.Len(t, merged.Polygons, 1)
	require.Len(t, merged.Polygons[0].Vertices, 4)
}

func TestRetesselateIsIdempotent(t *testing.T) {
	left := quadAt(t, [4]vec3.Vec3{{X: -1, Y: -1, Z: 0}, {X: 0, Y: -1, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: -1, Y: 1, Z: 0}})
	right := quadAt(t, [4]vec3.Vec3{{X: 0, Y: -1, Z: 0}, {X: 1, Y: -1, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0}})

	once := solid.Retesselate(solid.New([]*geom.Polygon{left, right}))
	twice := solid.Retesselate(once)
	require.Len(t, twice.Polygons, len(once.Polygons))
}

func TestUnionOfDisjointCubesConcatenates(t *testing.T) {
	a := cube(t)
	b := cubeAt(t, vec3.New(10, 0, 0))
	u := solid.Union(idgen.New(), a, b)
	require.Len(t, u.Polygons, len(a.Polygons)+len(b.Polygons))
}

func TestUnionOfOverlappingCubesIsNonEmpty(t *testing.T) {
	a := cube(t)
	b := cubeAt(t, vec3.New(1, 0, 0))
	u := solid.Union(idgen.New(), a, b)
	require.NotEmpty(t, u.Polygons)
}

func TestDifferenceOfDisjointCubesIsUnchanged(t *testing.T) {
	a := cube(t)
	b := cubeAt(t, vec3.New(10, 0, 0))
	d := solid.Difference(idgen.New(), a, b)
	require.Len(t, d.Polygons, len(a.Polygons))
}

func TestIntersectionOfDisjointCubesIsEmpty(t *testing.T) {
	a := cube(t)
	b := cubeAt(t, vec3.New(10, 0, 0))
	i := solid.Intersection(idgen.New(), a, b)
	require.Empty(t, i.Polygons)
}

func TestIntersectionOfIdenticalCubesIsNonEmpty(t *testing.T) {
	a := cube(t)
	b := cube(t)
	i := solid.Intersection(idgen.New(), a, b)
	require.NotEmpty(t, i.Polygons)
}

// TestDifferenceAnnihilatesSelf verifies §8's annihilation law: A minus A
// is empty after retesselation/canonicalization.
func TestDifferenceAnnihilatesSelf(t *testing.T) {
	a := cube(t)
	d := solid.Difference(idgen.New(), a, a)
	require.Empty(t, d.Polygons)
}

// TestIntersectionWithEmptyAnnihilates verifies §8's other annihilation
// case: A intersected with the empty solid is empty.
func TestIntersectionWithEmptyAnnihilates(t *testing.T) {
	a := cube(t)
	empty := solid.New(nil)
	i := solid.Intersection(idgen.New(), a, empty)
	require.Empty(t, i.Polygons)
}

// TestUnionIsCommutative verifies §8's commutativity law up to polygon
// reordering: A∪B and B∪A must canonicalize to the same polygon count and
// the same AABB.
func TestUnionIsCommutative(t *testing.T) {
	a := cube(t)
	b := cubeAt(t, vec3.New(1, 0, 0))

	ab := solid.Union(idgen.New(), a, b)
	ba := solid.Union(idgen.New(), b, a)

	require.Len(t, ba.Polygons, len(ab.Polygons))
	abBounds, baBounds := ab.Bounds(), ba.Bounds()
	requireVec3Near(t, abBounds.Min, baBounds.Min, 1e-9)
	requireVec3Near(t, abBounds.Max, baBounds.Max, 1e-9)
}

// TestIntersectionIsCommutative mirrors TestUnionIsCommutative for
// intersection.
func TestIntersectionIsCommutative(t *testing.T) {
	a := cube(t)
	b := cubeAt(t, vec3.New(1, 0, 0))

	ab := solid.Intersection(idgen.New(), a, b)
	ba := solid.Intersection(idgen.New(), b, a)

	require.Len(t, ba.Polygons, len(ab.Polygons))
	abBounds, baBounds := ab.Bounds(), ba.Bounds()
	requireVec3Near(t, abBounds.Min, baBounds.Min, 1e-9)
	requireVec3Near(t, abBounds.Max, baBounds.Max, 1e-9)
}

// TestDeMorganAABBOfUnion verifies §8's weak De Morgan topology law: the
// AABB of A∪B equals the componentwise min/max union of AABB(A) and
// AABB(B).
func TestDeMorganAABBOfUnion(t *testing.T) {
	a := cube(t)
	b := cubeAt(t, vec3.New(1, 0, 0))
	u := solid.Union(idgen.New(), a, b)

	want := a.Bounds().Union(b.Bounds())
	got := u.Bounds()
	requireVec3Near(t, want.Min, got.Min, 1e-9)
	requireVec3Near(t, want.Max, got.Max, 1e-9)
}

// TestDifferenceOfOverlappingCubesIsOneByTwoByTwoBox is scenario 3 from
// §8: A = cube side 2 at origin, B = same cube translated (1,0,0); A∖B is
// a 1x2x2 box with AABB (-1,-1,-1)..(0,1,1).
func TestDifferenceOfOverlappingCubesIsOneByTwoByTwoBox(t *testing.T) {
	a := cube(t)
	b := cubeAt(t, vec3.New(1, 0, 0))
	d := solid.Difference(idgen.New(), a, b)

	require.NotEmpty(t, d.Polygons)
	bounds := d.Bounds()
	requireVec3Near(t, vec3.New(-1, -1, -1), bounds.Min, 1e-6)
	requireVec3Near(t, vec3.New(0, 1, 1), bounds.Max, 1e-6)
}

// TestIntersectionOfOverlappingCubesIsOneByTwoByTwoBox is scenario 4 from
// §8: A∩B for the same operands is a 1x2x2 box with AABB (0,-1,-1)..(1,1,1).
func TestIntersectionOfOverlappingCubesIsOneByTwoByTwoBox(t *testing.T) {
	a := cube(t)
	b := cubeAt(t, vec3.New(1, 0, 0))
	i := solid.Intersection(idgen.New(), a, b)

	require.NotEmpty(t, i.Polygons)
	bounds := i.Bounds()
	requireVec3Near(t, vec3.New(0, -1, -1), bounds.Min, 1e-6)
	requireVec3Near(t, vec3.New(1, 1, 1), bounds.Max, 1e-6)
}

// TestIntersectionOfRotatedCubesHasNoTriangles is scenario 5 from §8: A =
// cube side 2 at origin, B = the same cube rotated 45 degrees about Z; A∩B
// is an octagonal prism, and no triangles should remain once retesselation
// has re-merged the BSP's clip fragments back into maximal convex faces.
func TestIntersectionOfRotatedCubesHasNoTriangles(t *testing.T) {
	a := cube(t)
	b := cubeRotatedZ45(t)
	i := solid.Intersection(idgen.New(), a, b)

	require.NotEmpty(t, i.Polygons)
	for _, p := range i.Polygons {
		require.NotEqual(t, 3, len(p.Vertices), "retesselation should have merged away any triangular clip fragment")
	}
}

// TestUnionOfNearDuplicateCubesMergesViaFuzzyFactory is scenario 6 from
// §8: B is A translated by EPS/2, well within the fuzzy tolerance. After
// canonicalization, A∪B should have collapsed onto the same polygon count
// as canonicalize(A) alone.
func TestUnionOfNearDuplicateCubesMergesViaFuzzyFactory(t *testing.T) {
	a := cube(t)
	b := cubeAt(t, vec3.New(geom.EPS/2, 0, 0))

	u := solid.Union(idgen.New(), a, b)
	canonA := solid.Canonicalize(cube(t), idgen.New())

	require.Len(t, u.Polygons, len(canonA.Polygons))
}
