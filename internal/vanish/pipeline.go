package vanish

import (
	"math/rand"

	"github.com/perceptionworks/vanish/internal/geom"
)

// FindVanishingPoints runs the full pipeline on one image's segments.
//
// The call is synchronous and self-contained: the hypothesis pool,
// preference matrix and cluster set are owned by this run alone, so distinct
// runs may execute concurrently without locking. The input slice is read,
// never modified.
//
// Error outcomes (all recoverable, matchable with errors.Is):
//   - ErrInsufficientSegments: fewer than two usable segments.
//   - ErrInsufficientSamples: sampling cap hit before the hypothesis budget.
//   - ErrNoVanishingPoint: no hypothesis or cluster reached the configured
//     support; the image simply lacks dominant linear structure.
func FindVanishingPoints(segs []geom.Segment, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	usable := usableSegments(segs)
	if len(usable) < 2 {
		return nil, ErrInsufficientSegments
	}

	rng := rand.New(rand.NewSource(opts.RandomSeed))
	pool, err := generateHypotheses(segs, usable, opts, rng)
	if err != nil {
		return nil, err
	}

	voting := pool
	if opts.PreselectHypotheses {
		voting = selectHypotheses(segs, usable, pool, opts)
		if len(voting) == 0 {
			return nil, ErrNoVanishingPoint
		}
	}

	prefs := buildPreferences(segs, usable, voting, opts.InlierThreshold)
	clusters := jlinkage(prefs)

	res := assemble(segs, usable, clusters, opts)
	if len(res.VanishingPoints) == 0 {
		return nil, ErrNoVanishingPoint
	}
	return res, nil
}
