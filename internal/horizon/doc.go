// Package horizon derives a horizon line estimate from a set of detected
// vanishing points.
//
// The estimate leans on two assumptions about upright photographs: a vertical
// vanishing point, when present, is far from the principal point along the
// image's vertical axis, and the horizon is perpendicular to the direction
// toward it. Horizontal vanishing points then vote on the intercept. Every
// failure mode degrades to a flat line through the principal point rather
// than an error, since a plausible horizon is more useful to callers than
// none.
package horizon
