package vanish

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perceptionworks/vanish/internal/geom"
)

func TestUsableSegmentsFiltersZeroLength(t *testing.T) {
	segs := []geom.Segment{
		geom.Seg(0, 0, 10, 0),
		geom.Seg(5, 5, 5, 5), // zero length
		geom.Seg(0, 0, 0, 10),
	}
	assert.Equal(t, []int{0, 2}, usableSegments(segs))
}

func TestGenerateHypothesesExhaustive(t *testing.T) {
	segs := []geom.Segment{
		geom.Seg(0, 0, 10, 0),
		geom.Seg(0, 0, 0, 10),
		geom.Seg(0, 10, 10, 10),
	}
	usable := usableSegments(segs)
	opts := DefaultOptions().withDefaults()

	pool, err := generateHypotheses(segs, usable, opts, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	// All three pairs are non-degenerate: 0-1 and 1-2 intersect finitely,
	// 0-2 are parallel and intersect at infinity.
	assert.Len(t, pool, 3)

	atInf := 0
	for _, h := range pool {
		if h.Point.AtInfinity() {
			atInf++
		}
	}
	assert.Equal(t, 1, atInf)
}

func TestGenerateHypothesesAllPairsDegenerate(t *testing.T) {
	// Two collinear segments: the only pair is degenerate, leaving nothing
	// to vote on.
	segs := []geom.Segment{
		geom.Seg(0, 0, 10, 10),
		geom.Seg(20, 20, 30, 30),
	}
	usable := usableSegments(segs)
	_, err := generateHypotheses(segs, usable, DefaultOptions().withDefaults(), rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrNoVanishingPoint)
}

func TestGenerateHypothesesInsufficientSegments(t *testing.T) {
	segs := []geom.Segment{geom.Seg(0, 0, 10, 0)}
	_, err := generateHypotheses(segs, usableSegments(segs), DefaultOptions().withDefaults(), rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrInsufficientSegments)
}

func TestGenerateHypothesesSamplingDeterministic(t *testing.T) {
	segs := fanSegments(geom.Point{X: 300, Y: 200}, 20)
	usable := usableSegments(segs)
	opts := DefaultOptions().withDefaults()
	opts.SampleBudget = 50
	opts.MaxSampleAttempts = 500

	a, err := generateHypotheses(segs, usable, opts, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	b, err := generateHypotheses(segs, usable, opts, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	assert.Equal(t, a, b, "same seed must reproduce the same pool")
	assert.Len(t, a, 50)
}

func TestGenerateHypothesesAttemptCapExhausted(t *testing.T) {
	// Thirteen segments on the same supporting line: above the exhaustive
	// cutoff, and every sampled pair is degenerate.
	segs := make([]geom.Segment, 13)
	for i := range segs {
		x := float64(i * 20)
		segs[i] = geom.Seg(x, x, x+10, x+10)
	}
	usable := usableSegments(segs)
	opts := DefaultOptions().withDefaults()
	opts.SampleBudget = 10
	opts.MaxSampleAttempts = 200

	_, err := generateHypotheses(segs, usable, opts, rand.New(rand.NewSource(7)))
	assert.ErrorIs(t, err, ErrInsufficientSamples)
}

// fanSegments builds n segments whose supporting lines all pass exactly
// through vp, each with a distinct direction.
func fanSegments(vp geom.Point, n int) []geom.Segment {
	segs := make([]geom.Segment, n)
	for i := 0; i < n; i++ {
		// Spread below 180 degrees so every direction is distinct.
		rad := float64(i) * 160 / float64(n) * math.Pi / 180
		dx, dy := math.Cos(rad), math.Sin(rad)
		segs[i] = geom.Segment{
			Start: geom.Point{X: vp.X + 80*dx, Y: vp.Y + 80*dy},
			End:   geom.Point{X: vp.X + 180*dx, Y: vp.Y + 180*dy},
		}
	}
	return segs
}
