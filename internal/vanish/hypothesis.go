package vanish

import (
	"math/rand"

	"github.com/perceptionworks/vanish/internal/geom"
)

// minUsableLength is the segment length below which a segment cannot define
// a line and is excluded from hypothesis generation (it still appears in the
// final outlier list).
const minUsableLength = 1e-6

// Hypothesis is a candidate vanishing point. It is derived from exactly one
// segment pair at creation time and never mutated. The homogeneous form
// keeps strictly parallel pairs representable as first-class points at
// infinity instead of a failure case.
type Hypothesis struct {
	Point geom.Homogeneous

	// a and b index the generating pair within the usable segment slice.
	a, b int
}

// usableSegments returns the indices of segments long enough to define a
// supporting line.
func usableSegments(segs []geom.Segment) []int {
	idx := make([]int, 0, len(segs))
	for i, s := range segs {
		if s.Length() > minUsableLength {
			idx = append(idx, i)
		}
	}
	return idx
}

// hypothesisFrom intersects the supporting lines of the pair (a, b).
func hypothesisFrom(segs []geom.Segment, usable []int, a, b int) (Hypothesis, error) {
	h, ok := geom.Intersect(segs[usable[a]], segs[usable[b]])
	if !ok {
		return Hypothesis{}, errDegenerate
	}
	return Hypothesis{Point: h, a: a, b: b}, nil
}

// generateHypotheses assembles the hypothesis pool.
//
// With at most opts.ExhaustiveBelow usable segments every distinct pair is
// tried exactly once, in index order, which makes the pool fully
// deterministic. Above that, pairs are drawn uniformly from rng until
// opts.SampleBudget non-degenerate hypotheses exist or the attempt cap is
// exhausted. Degenerate pairs are skipped and redrawn; they never count as
// success and never surface to the caller.
func generateHypotheses(segs []geom.Segment, usable []int, opts Options, rng *rand.Rand) ([]Hypothesis, error) {
	n := len(usable)
	if n < 2 {
		return nil, ErrInsufficientSegments
	}

	if n <= opts.ExhaustiveBelow {
		pool := make([]Hypothesis, 0, n*(n-1)/2)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				h, err := hypothesisFrom(segs, usable, i, j)
				if err != nil {
					continue
				}
				pool = append(pool, h)
			}
		}
		if len(pool) == 0 {
			// Every pair was degenerate (e.g. all segments collinear):
			// nothing to vote on, a legitimate empty outcome.
			return nil, ErrNoVanishingPoint
		}
		return pool, nil
	}

	pool := make([]Hypothesis, 0, opts.SampleBudget)
	for attempts := 0; len(pool) < opts.SampleBudget; attempts++ {
		if attempts >= opts.MaxSampleAttempts {
			return nil, ErrInsufficientSamples
		}
		i := rng.Intn(n)
		j := rng.Intn(n - 1)
		if j >= i {
			j++
		}
		h, err := hypothesisFrom(segs, usable, i, j)
		if err != nil {
			continue
		}
		pool = append(pool, h)
	}
	return pool, nil
}
