package vanish

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/perceptionworks/vanish/internal/geom"
)

// VanishingPoint pairs an estimated vanishing point with the segments that
// support it. The representative point is refit over all members rather than
// reused from any single seed hypothesis, since clustering may have merged
// segments originating from slightly different hypotheses.
type VanishingPoint struct {
	Point    geom.Homogeneous `json:"point"`
	Segments []geom.Segment   `json:"segments"`
}

// Result is the immutable outcome of one pipeline run. Every input segment
// appears exactly once: under exactly one vanishing point, or in Outliers.
// Vanishing points are ordered by decreasing support, then by canonical
// coordinates; supporting segments keep input order.
type Result struct {
	VanishingPoints []VanishingPoint `json:"vanishing_points"`
	Outliers        []geom.Segment   `json:"outliers"`
}

// refitVP re-estimates a cluster's representative point as the least squares
// solution over all member lines: the homogeneous point v minimizing
// Σ (lᵢ·v)² is the right singular vector of the stacked unit-normal line
// coefficient matrix with the smallest singular value. The formulation
// handles at-infinity representatives (parallel member lines) without any
// special casing.
func refitVP(segs []geom.Segment, usable []int, members []int) (geom.Homogeneous, bool) {
	rows := make([]float64, 0, len(members)*3)
	for _, u := range members {
		a, b, c, ok := geom.LineCoefficients(segs[usable[u]])
		if !ok {
			continue
		}
		rows = append(rows, a, b, c)
	}
	m := len(rows) / 3
	if m < 2 {
		return geom.Homogeneous{}, false
	}

	var svd mat.SVD
	if !svd.Factorize(mat.NewDense(m, 3, rows), mat.SVDFullV) {
		return geom.Homogeneous{}, false
	}
	var v mat.Dense
	svd.VTo(&v)

	// Singular values are ordered descending; the last right singular
	// vector spans the (approximate) null space.
	h := geom.Homogeneous{X: v.At(0, 2), Y: v.At(1, 2), W: v.At(2, 2)}
	if math.IsNaN(h.X) || math.IsNaN(h.Y) || math.IsNaN(h.W) {
		return geom.Homogeneous{}, false
	}
	if h.X == 0 && h.Y == 0 && h.W == 0 {
		return geom.Homogeneous{}, false
	}
	return h.Normalize(), true
}

// assemble converts the final cluster partition into a Result. Clusters
// below MinClusterSize, unusable input segments, and the members of the rare
// cluster whose refit fails all land in the outlier list, preserving the
// partition invariant.
func assemble(segs []geom.Segment, usable []int, clusters []cluster, opts Options) *Result {
	claimed := make([]bool, len(segs))
	var vps []VanishingPoint
	for _, c := range clusters {
		if len(c.members) < opts.MinClusterSize {
			continue
		}
		point, ok := refitVP(segs, usable, c.members)
		if !ok {
			continue
		}
		members := make([]geom.Segment, 0, len(c.members))
		for _, u := range c.members {
			members = append(members, segs[usable[u]])
			claimed[usable[u]] = true
		}
		vps = append(vps, VanishingPoint{Point: point, Segments: members})
	}

	sort.SliceStable(vps, func(i, j int) bool {
		if len(vps[i].Segments) != len(vps[j].Segments) {
			return len(vps[i].Segments) > len(vps[j].Segments)
		}
		return vps[i].Point.Less(vps[j].Point)
	})

	outliers := make([]geom.Segment, 0)
	for i, s := range segs {
		if !claimed[i] {
			outliers = append(outliers, s)
		}
	}
	return &Result{VanishingPoints: vps, Outliers: outliers}
}
