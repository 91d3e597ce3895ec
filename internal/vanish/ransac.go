package vanish

import "github.com/perceptionworks/vanish/internal/geom"

// selectHypotheses reduces the raw pool to a working set of plausible
// vanishing points with a sequential multi-model RANSAC pass: the hypothesis
// with the largest inlier set over the residual segments is taken, its
// inliers leave contention, and the round repeats until no hypothesis keeps
// MinSupport residual inliers. The returned order is the selection order
// (decreasing residual support).
//
// Ties on support are broken by the canonical homogeneous coordinates of the
// candidates, ascending. The key depends only on the point itself, not on
// pool position, so exhaustive-mode selection is stable under permutations
// of the input segment list.
func selectHypotheses(segs []geom.Segment, usable []int, pool []Hypothesis, opts Options) []Hypothesis {
	inliers := make([]bitset, len(pool))
	for k, h := range pool {
		bs := newBitset(len(usable))
		for u, si := range usable {
			if isInlier(segs[si], h.Point, opts.InlierThreshold) {
				bs.set(u)
			}
		}
		inliers[k] = bs
	}

	remaining := newBitset(len(usable))
	for u := range usable {
		remaining.set(u)
	}

	taken := make([]bool, len(pool))
	var selected []Hypothesis
	for {
		best := -1
		bestCount := 0
		var bestKey geom.Homogeneous
		for k := range pool {
			if taken[k] {
				continue
			}
			c := intersectionCount(inliers[k], remaining)
			if c < opts.MinSupport {
				continue
			}
			key := pool[k].Point.Normalize()
			if best == -1 || c > bestCount || (c == bestCount && key.Less(bestKey)) {
				best, bestCount, bestKey = k, c, key
			}
		}
		if best == -1 {
			break
		}
		taken[best] = true
		remaining.andNot(inliers[best])
		selected = append(selected, pool[best])
	}
	return selected
}
