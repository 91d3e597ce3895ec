package vanish

import "errors"

// Sentinel errors returned by FindVanishingPoints. All of them are
// recoverable outcomes for the caller to interpret; none indicate a
// malfunction of the pipeline itself.
var (
	// ErrInsufficientSegments means fewer than two usable segments were
	// supplied, so no hypothesis could be formed.
	ErrInsufficientSegments = errors.New("vanish: fewer than two usable segments")

	// ErrInsufficientSamples means the sampling attempt cap was exhausted
	// before the hypothesis budget was met: the image has too few segments
	// forming non-degenerate pairs.
	ErrInsufficientSamples = errors.New("vanish: sample attempt cap exhausted")

	// ErrNoVanishingPoint means no hypothesis reached MinSupport, or no
	// final cluster reached MinClusterSize. A legitimate empty outcome for
	// images without strong linear structure.
	ErrNoVanishingPoint = errors.New("vanish: no vanishing point found")
)

// errDegenerate marks a sampled pair whose supporting lines are coincident
// or undefined. The generator absorbs it (the pair is skipped and redrawn);
// it never escapes the package.
var errDegenerate = errors.New("vanish: degenerate segment pair")
