package solid

import (
	"math"
	"sort"

	"github.com/bloodmagesoftware/venture-csg/geom"
)

// yBinFactor controls how aggressively the sweep snaps nearby Y
// coordinates onto a shared value before grouping vertices into strips —
// ten times finer than EPS, so two fragments' shared edge lands on exactly
// the same strip boundary even after float round-trips through a split.
const yBinFactor = 10 / geom.EPS

// Retesselate rebuilds larger convex polygons from each group of coplanar,
// identically-shared polygon fragments, undoing the fragmentation a
// Boolean operation's splitting leaves behind. Groups of size one pass
// through untouched. The result is marked retesselated but not
// canonicalized — callers normally follow with Canonicalize.
func Retesselate(s Solid) Solid {
	if s.retesselated {
		return s
	}
	groups, order := groupCoplanar(s.Polygons)

	out := make([]*geom.Polygon, 0, len(s.Polygons))
	for _, key := range order {
		out = append(out, retesselateGroup(groups[key])...)
	}
	return s.withPolygons(out, false, true)
}

type groupKey struct {
	nx, ny, nz, w int64
	sharedHash    uint64
	hasShared     bool
}

func keyFor(p *geom.Polygon) groupKey {
	round := func(v float64) int64 { return int64(math.Round(v / geom.EPS)) }
	k := groupKey{
		nx: round(p.Plane.Normal.X),
		ny: round(p.Plane.Normal.Y),
		nz: round(p.Plane.Normal.Z),
		w:  round(p.Plane.W),
	}
	if p.Shared != nil {
		k.hasShared = true
		k.sharedHash = p.Shared.Hash()
	}
	return k
}

func groupCoplanar(polys []*geom.Polygon) (map[groupKey][]*geom.Polygon, []groupKey) {
	groups := make(map[groupKey][]*geom.Polygon)
	var order []groupKey
	for _, p := range polys {
		k := keyFor(p)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], p)
	}
	return groups, order
}

// retesselateGroup merges one group of coplanar, identically-surfaced
// polygon fragments into as few convex polygons as possible, via a
// strip-by-strip planar sweep: project to 2D, snap shared Y coordinates
// together, sweep ascending Y emitting one quad per active polygon per
// strip, merge horizontally adjacent quads that share an edge, and chain
// vertically adjacent quads whose edges continue without a convexity
// break.
func retesselateGroup(polys []*geom.Polygon) []*geom.Polygon {
	if len(polys) <= 1 {
		return polys
	}

	plane := polys[0].Plane
	shared := polys[0].Shared
	basis := geom.NewOrthoNormalBasis(plane.Normal)

	type projected struct {
		verts []geom.Vec2
	}
	proj := make([]projected, len(polys))
	for i, p := range polys {
		verts := make([]geom.Vec2, len(p.Vertices))
		for j, v := range p.Vertices {
			verts[j] = basis.To2D(v.Pos)
		}
		proj[i] = projected{verts: verts}
	}

	yBins := make(map[int64]float64)
	snapY := func(y float64) float64 {
		bin := int64(math.Round(y * yBinFactor))
		for _, b := range [3]int64{bin, bin - 1, bin + 1} {
			if existing, ok := yBins[b]; ok {
				yBins[bin] = existing
				return existing
			}
		}
		yBins[bin] = y
		return y
	}
	for i := range proj {
		for j := range proj[i].verts {
			proj[i].verts[j].Y = snapY(proj[i].verts[j].Y)
		}
	}
	for i := range proj {
		proj[i].verts = reverse2D(proj[i].verts)
	}

	type sweepPoly struct {
		leftChain, rightChain []geom.Vec2
		minY, maxY            float64
	}
	sps := make([]sweepPoly, 0, len(proj))
	for _, pr := range proj {
		if len(pr.verts) < 3 {
			continue
		}
		top, bottom := apexIndices(pr.verts)
		chainA := walkChain(pr.verts, top, bottom, 1)
		chainB := walkChain(pr.verts, top, bottom, -1)
		left, right := chainA, chainB
		if avgX(chainA) > avgX(chainB) {
			left, right = chainB, chainA
		}
		sps = append(sps, sweepPoly{leftChain: left, rightChain: right, minY: pr.verts[top].Y, maxY: pr.verts[bottom].Y})
	}
	if len(sps) == 0 {
		return polys
	}

	ySet := make(map[float64]struct{})
	for _, sp := range sps {
		for _, v := range sp.leftChain {
			ySet[v.Y] = struct{}{}
		}
		for _, v := range sp.rightChain {
			ySet[v.Y] = struct{}{}
		}
	}
	ys := make([]float64, 0, len(ySet))
	for y := range ySet {
		ys = append(ys, y)
	}
	sort.Float64s(ys)

	type column struct {
		leftTop, leftBottom, rightTop, rightBottom geom.Vec2
		leftSlope, rightSlope                      float64
	}
	type openPoly struct {
		leftPts, rightPts             []geom.Vec2
		lastLeftSlope, lastRightSlope float64
		hasSlope                      bool
	}
	var open []*openPoly
	var finishedLeft, finishedRight [][]geom.Vec2

	closeOpen := func(o *openPoly) {
		finishedLeft = append(finishedLeft, o.leftPts)
		finishedRight = append(finishedRight, o.rightPts)
	}

	for k := 0; k+1 < len(ys); k++ {
		yTop, yBottom := ys[k], ys[k+1]
		if yBottom-yTop < geom.EPS {
			continue
		}

		var cols []column
		for _, sp := range sps {
			if sp.minY > yTop+geom.EPS || sp.maxY < yBottom-geom.EPS {
				continue
			}
			lt := geom.Vec2{X: xAtY(sp.leftChain, yTop), Y: yTop}
			lb := geom.Vec2{X: xAtY(sp.leftChain, yBottom), Y: yBottom}
			rt := geom.Vec2{X: xAtY(sp.rightChain, yTop), Y: yTop}
			rb := geom.Vec2{X: xAtY(sp.rightChain, yBottom), Y: yBottom}
			cols = append(cols, column{lt, lb, rt, rb, slopeOf(lt, lb), slopeOf(rt, rb)})
		}
		if len(cols) == 0 {
			continue
		}
		sort.Slice(cols, func(i, j int) bool {
			return cols[i].leftTop.X+cols[i].rightTop.X < cols[j].leftTop.X+cols[j].rightTop.X
		})

		merged := cols[:1]
		for _, c := range cols[1:] {
			last := &merged[len(merged)-1]
			if close2D(last.rightTop, c.leftTop) && close2D(last.rightBottom, c.leftBottom) {
				last.rightTop, last.rightBottom, last.rightSlope = c.rightTop, c.rightBottom, c.rightSlope
				continue
			}
			merged = append(merged, c)
		}

		usedOpen := make([]bool, len(open))
		var stillOpen []*openPoly
		for _, m := range merged {
			matched := -1
			for i, o := range open {
				if usedOpen[i] {
					continue
				}
				if !close2D(o.leftPts[len(o.leftPts)-1], m.leftTop) || !close2D(o.rightPts[len(o.rightPts)-1], m.rightTop) {
					continue
				}
				if o.hasSlope {
					d1 := m.leftSlope - o.lastLeftSlope
					d2 := m.rightSlope - o.lastRightSlope
					if d1 < -geom.EPS || d2 > geom.EPS {
						continue
					}
				}
				matched = i
				break
			}
			if matched >= 0 {
				o := open[matched]
				usedOpen[matched] = true
				o.leftPts = append(o.leftPts, m.leftBottom)
				o.rightPts = append(o.rightPts, m.rightBottom)
				o.lastLeftSlope, o.lastRightSlope, o.hasSlope = m.leftSlope, m.rightSlope, true
				stillOpen = append(stillOpen, o)
			} else {
				stillOpen = append(stillOpen, &openPoly{
					leftPts:       []geom.Vec2{m.leftTop, m.leftBottom},
					rightPts:      []geom.Vec2{m.rightTop, m.rightBottom},
					lastLeftSlope: m.leftSlope, lastRightSlope: m.rightSlope, hasSlope: true,
				})
			}
		}
		for i, o := range open {
			if !usedOpen[i] {
				closeOpen(o)
			}
		}
		open = stillOpen
	}
	for _, o := range open {
		closeOpen(o)
	}

	result := make([]*geom.Polygon, 0, len(finishedLeft))
	for i := range finishedLeft {
		ring := buildClosedRing(finishedLeft[i], finishedRight[i])
		ring = dedupConsecutive2D(ring)
		if len(ring) < 3 {
			continue
		}
		ring = ensureCCW2D(ring)
		verts := make([]geom.Vertex, len(ring))
		for j, p2 := range ring {
			verts[j] = geom.NewVertex(basis.To3D(p2, plane.W))
		}
		np, err := geom.NewPolygon(verts, plane, shared)
		if err != nil {
			continue
		}
		result = append(result, np)
	}
	if len(result) == 0 {
		return polys
	}
	return result
}

func apexIndices(verts []geom.Vec2) (top, bottom int) {
	top, bottom = 0, 0
	for i, v := range verts {
		if v.Y < verts[top].Y {
			top = i
		}
		if v.Y > verts[bottom].Y {
			bottom = i
		}
	}
	return top, bottom
}

func walkChain(verts []geom.Vec2, start, end, dir int) []geom.Vec2 {
	n := len(verts)
	chain := []geom.Vec2{verts[start]}
	i := start
	for i != end {
		i = ((i+dir)%n + n) % n
		chain = append(chain, verts[i])
	}
	return chain
}

func avgX(chain []geom.Vec2) float64 {
	if len(chain) <= 2 {
		sum := 0.0
		for _, v := range chain {
			sum += v.X
		}
		return sum / float64(len(chain))
	}
	sum := 0.0
	for _, v := range chain[1 : len(chain)-1] {
		sum += v.X
	}
	return sum / float64(len(chain)-2)
}

func xAtY(chain []geom.Vec2, y float64) float64 {
	flat := -1
	for i := 0; i+1 < len(chain); i++ {
		a, b := chain[i], chain[i+1]
		lo, hi := a.Y, b.Y
		if lo > hi {
			lo, hi = hi, lo
		}
		if y >= lo-geom.EPS && y <= hi+geom.EPS {
			if math.Abs(b.Y-a.Y) < geom.EPS {
				// A horizontal edge: the sloped edge next to it gives this
				// chain's own end of it, so keep looking.
				if flat < 0 {
					flat = i
				}
				continue
			}
			t := (y - a.Y) / (b.Y - a.Y)
			return a.X + t*(b.X-a.X)
		}
	}
	if flat >= 0 {
		return chain[flat].X
	}
	if y <= chain[0].Y {
		return chain[0].X
	}
	return chain[len(chain)-1].X
}

func slopeOf(top, bottom geom.Vec2) float64 {
	dy := bottom.Y - top.Y
	if math.Abs(dy) < geom.EPS {
		return 0
	}
	return (bottom.X - top.X) / dy
}

func close2D(a, b geom.Vec2) bool {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx+dy*dy < geom.EPSSquared
}

func reverse2D(v []geom.Vec2) []geom.Vec2 {
	out := make([]geom.Vec2, len(v))
	for i, p := range v {
		out[len(v)-1-i] = p
	}
	return out
}

// buildClosedRing stitches a chained run's left/right boundary point lists
// into one closed 2D ring: the right chain top-to-bottom, then the left
// chain reversed (bottom-to-top), tracing the run's outline once.
func buildClosedRing(leftPts, rightPts []geom.Vec2) []geom.Vec2 {
	ring := make([]geom.Vec2, 0, len(leftPts)+len(rightPts))
	ring = append(ring, rightPts...)
	for i := len(leftPts) - 1; i >= 0; i-- {
		ring = append(ring, leftPts[i])
	}
	return ring
}

func dedupConsecutive2D(verts []geom.Vec2) []geom.Vec2 {
	if len(verts) < 2 {
		return verts
	}
	out := make([]geom.Vec2, 0, len(verts))
	for _, v := range verts {
		if len(out) > 0 && close2D(out[len(out)-1], v) {
			continue
		}
		out = append(out, v)
	}
	if len(out) > 1 && close2D(out[0], out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}

func signedArea2D(verts []geom.Vec2) float64 {
	var area float64
	n := len(verts)
	for i := 0; i < n; i++ {
		a, b := verts[i], verts[(i+1)%n]
		area += a.X*b.Y - b.X*a.Y
	}
	return area / 2
}

func ensureCCW2D(verts []geom.Vec2) []geom.Vec2 {
	if signedArea2D(verts) < 0 {
		return reverse2D(verts)
	}
	return verts
}
