package vanish

import (
	"math"

	"github.com/perceptionworks/vanish/internal/geom"
)

// consistencyError measures how well seg supports the vanishing point vp.
//
// It constructs the line through the segment midpoint and vp (for vp at
// infinity the homogeneous coordinates act as a pure direction) and returns
// the maximum perpendicular distance of the two endpoints to that line,
// divided by the segment length.
//
// Decision on the endpoint combination: the two endpoint distances are equal
// by symmetry about the midpoint, so maximum and average coincide; maximum is
// used so the definition stays valid if the anchor point ever changes. The
// length normalization keeps long segments from dominating threshold
// calibration, so InlierThreshold is a fraction of segment length.
//
// The function is pure and deterministic. Degenerate geometry (vanishing
// point numerically at the midpoint, zero-length segment) yields +Inf, never
// NaN, so such pairs always fail the inlier threshold.
func consistencyError(seg geom.Segment, vp geom.Homogeneous) float64 {
	length := seg.Length()
	if length < minUsableLength {
		return math.Inf(1)
	}
	m := seg.Midpoint()
	// Direction from the midpoint toward vp. For W = 0 this reduces to the
	// ideal direction itself.
	dx := vp.X - vp.W*m.X
	dy := vp.Y - vp.W*m.Y
	d1 := geom.DistToDirectedLine(seg.Start, m, dx, dy)
	d2 := geom.DistToDirectedLine(seg.End, m, dx, dy)
	return math.Max(d1, d2) / length
}

// isInlier applies the configured consistency cutoff.
func isInlier(seg geom.Segment, vp geom.Homogeneous, threshold float64) bool {
	return consistencyError(seg, vp) < threshold
}
