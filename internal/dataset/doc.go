// Package dataset loads ground truth for vanishing point benchmarks.
//
// A Dataset carries image paths and per-image ground truth: vanishing
// points, the line segment groups that define them, the vertical vanishing
// point when one qualifies, and the derived horizon line. Derived fields are
// computed once at construction so evaluation code can index them directly.
package dataset
