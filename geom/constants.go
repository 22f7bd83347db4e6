package geom

// EPS is the single distance tolerance governing split classification,
// vertex/plane dedup, and the quantization quantum used by fuzzy.Factory
// (multiplier = 1/EPS).
const EPS = 1e-5

// EPSSquared is the squared tolerance used for positional dedup, where
// comparing squared distances avoids a sqrt.
const EPSSquared = EPS * EPS

// AngleEPS is the angular tolerance, in degrees, kept as recognized
// configuration alongside EPS and AreaEPS. No kernel code reads it; the
// retesselation convexity gate compares slopes against EPS.
const AngleEPS = 0.1

// AreaEPS bounds the signed area below which a polygon's convexity check
// treats a near-zero cross product as collinear rather than a sign flip.
const AreaEPS = 4.99e-12

// Debug gates the convexity check in NewPolygon, mirroring the source's
// _CSGDEBUG flag. bsptree does not read it: PolygonTreeNode.Remove checks
// its preconditions in every build, and no other tree-shape invariant is
// checked. It is off by default because the convexity check is O(n) per
// polygon.
var Debug = false
