// Package vanish estimates vanishing points from a set of 2D line segments
// by multi-model fitting: no Manhattan-world assumption, no known camera
// intrinsics, and no fixed number of vanishing points.
//
// # Pipeline
//
// One call to FindVanishingPoints runs five stages in sequence:
//
//  1. Hypothesis generation: segment pairs are sampled (or exhaustively
//     enumerated for small inputs) and intersected in homogeneous
//     coordinates, building a pool of candidate vanishing points.
//  2. Consistency scoring: each (segment, hypothesis) pair gets a scalar
//     error measuring how well the segment points at the hypothesis.
//  3. Model selection: a sequential multi-model RANSAC pass keeps the
//     hypotheses with the strongest residual support, without fixing their
//     count in advance.
//  4. J-linkage clustering: segments are agglomeratively merged by the
//     Jaccard distance between their binary hypothesis-preference sets,
//     until no informative merge remains.
//  5. Assembly: each surviving cluster is refit to a representative
//     vanishing point over all of its member lines; undersized clusters
//     become outliers.
//
// # Determinism and Concurrency
//
// A run is single-threaded, holds no state across calls, and uses no global
// randomness: pair sampling is driven entirely by Options.RandomSeed, so two
// runs over identical input with the same seed produce identical results.
// Independent calls may execute concurrently.
//
// # Outcomes
//
// Images without dominant linear structure are an expected terminal outcome,
// reported as ErrNoVanishingPoint rather than a malfunction. The method is a
// heuristic approximation: it does not guarantee a globally optimal
// partition of the segments.
package vanish
