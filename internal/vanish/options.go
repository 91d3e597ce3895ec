package vanish

// Options configures one run of the vanishing point pipeline.
type Options struct {
	// InlierThreshold is the consistency cutoff: a segment supports a
	// hypothesis when its midpoint-line error, normalized by segment
	// length, falls strictly below this value.
	InlierThreshold float64

	// MinSupport is the minimum inlier count for the model selector to keep
	// a hypothesis. The run fails with ErrNoVanishingPoint when not even the
	// first selection round reaches it.
	MinSupport int

	// MinClusterSize is the minimum number of member segments for a final
	// cluster to be reported as a vanishing point; smaller clusters are
	// flattened into the outlier list.
	MinClusterSize int

	// SampleBudget is the number of non-degenerate hypotheses the generator
	// collects in sampling mode. Degenerate pairs do not count toward it.
	SampleBudget int

	// MaxSampleAttempts caps the total number of pair draws, including
	// degenerate ones. Exhausting the cap before the budget is met fails
	// the run with ErrInsufficientSamples. Zero means 10x SampleBudget.
	MaxSampleAttempts int

	// ExhaustiveBelow switches the generator to deterministic exhaustive
	// pair enumeration when the usable segment count is at or below this
	// value.
	ExhaustiveBelow int

	// PreselectHypotheses runs the sequential RANSAC selector before
	// clustering. When false, J-linkage votes over the full hypothesis pool
	// (pure J-linkage mode).
	PreselectHypotheses bool

	// RandomSeed seeds pair sampling. Runs with identical input and seed
	// are bit-for-bit reproducible; production callers may seed from any
	// non-deterministic source.
	RandomSeed int64
}

// DefaultOptions returns the calibrated defaults.
//
// InlierThreshold is a fraction of segment length (the consistency measure
// is length-normalized), so 0.05 corresponds to a 3px endpoint deviation on
// a 60px segment.
func DefaultOptions() Options {
	return Options{
		InlierThreshold:     0.05,
		MinSupport:          4,
		MinClusterSize:      2,
		SampleBudget:        500,
		ExhaustiveBelow:     12,
		PreselectHypotheses: true,
	}
}

// withDefaults fills unset numeric knobs from DefaultOptions.
// PreselectHypotheses is taken as given: false is a meaningful setting.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.InlierThreshold <= 0 {
		o.InlierThreshold = def.InlierThreshold
	}
	if o.MinSupport <= 0 {
		o.MinSupport = def.MinSupport
	}
	if o.MinClusterSize <= 0 {
		o.MinClusterSize = def.MinClusterSize
	}
	if o.SampleBudget <= 0 {
		o.SampleBudget = def.SampleBudget
	}
	if o.MaxSampleAttempts <= 0 {
		o.MaxSampleAttempts = 10 * o.SampleBudget
	}
	if o.ExhaustiveBelow <= 0 {
		o.ExhaustiveBelow = def.ExhaustiveBelow
	}
	return o
}
