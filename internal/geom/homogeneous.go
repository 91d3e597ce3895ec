package geom

import "math"

// infEps is the relative tolerance on W below which a homogeneous point is
// treated as lying on the line at infinity.
const infEps = 1e-12

// Homogeneous is a point of the projective plane in homogeneous coordinates.
// The all-zero triple is not a valid point and is never produced by this
// package.
type Homogeneous struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
}

// Finite wraps a euclidean point as a homogeneous one with W = 1.
func Finite(p Point) Homogeneous {
	return Homogeneous{X: p.X, Y: p.Y, W: 1}
}

// AtInfinity reports whether the point lies at (or numerically
// indistinguishably close to) the line at infinity.
func (h Homogeneous) AtInfinity() bool {
	scale := math.Max(math.Max(math.Abs(h.X), math.Abs(h.Y)), 1)
	return math.Abs(h.W) <= infEps*scale
}

// Euclidean projects the point to euclidean coordinates. ok is false for
// points at infinity.
func (h Homogeneous) Euclidean() (Point, bool) {
	if h.AtInfinity() {
		return Point{}, false
	}
	return Point{X: h.X / h.W, Y: h.Y / h.W}, true
}

// Normalize returns a canonical representative of the projective point:
// components scaled so the largest magnitude is 1, with the overall sign
// fixed so the first non-zero component is positive. Canonical forms of any
// two scalings of the same point compare equal up to float tolerance, which
// makes them usable as deterministic ordering keys.
func (h Homogeneous) Normalize() Homogeneous {
	m := math.Max(math.Abs(h.X), math.Max(math.Abs(h.Y), math.Abs(h.W)))
	if m == 0 {
		return h
	}
	n := Homogeneous{X: h.X / m, Y: h.Y / m, W: h.W / m}
	if n.X < 0 || (n.X == 0 && n.Y < 0) || (n.X == 0 && n.Y == 0 && n.W < 0) {
		n.X, n.Y, n.W = -n.X, -n.Y, -n.W
	}
	return n
}

// Less orders canonical forms lexicographically by (X, Y, W). Both operands
// should be outputs of Normalize.
func (h Homogeneous) Less(o Homogeneous) bool {
	if h.X != o.X {
		return h.X < o.X
	}
	if h.Y != o.Y {
		return h.Y < o.Y
	}
	return h.W < o.W
}

// LineCoefficients returns the homogeneous coefficients (a, b, c) of the
// line a·x + b·y + c = 0 through the endpoints of s, scaled so the normal
// (a, b) has unit norm. ok is false for zero-length segments.
func LineCoefficients(s Segment) (a, b, c float64, ok bool) {
	a = s.Start.Y - s.End.Y
	b = s.End.X - s.Start.X
	n := math.Hypot(a, b)
	if n < eps {
		return 0, 0, 0, false
	}
	c = (s.Start.X*s.End.Y - s.End.X*s.Start.Y) / n
	return a / n, b / n, c, true
}

// Intersect computes the intersection of the supporting lines of a and b as
// the cross product of their unit-normal line coefficients. Strictly
// parallel distinct lines produce a valid point at infinity; ok is false
// only for degenerate pairs: zero-length segments, or coincident supporting
// lines whose cross product vanishes entirely.
func Intersect(sa, sb Segment) (Homogeneous, bool) {
	a1, b1, c1, ok := LineCoefficients(sa)
	if !ok {
		return Homogeneous{}, false
	}
	a2, b2, c2, ok := LineCoefficients(sb)
	if !ok {
		return Homogeneous{}, false
	}
	h := Homogeneous{
		X: b1*c2 - b2*c1,
		Y: c1*a2 - a1*c2,
		W: a1*b2 - b1*a2,
	}
	if math.Abs(h.X) < eps && math.Abs(h.Y) < eps && math.Abs(h.W) < eps {
		return Homogeneous{}, false
	}
	return h, true
}
