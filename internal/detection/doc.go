// Package detection extracts straight line segments from images.
//
// Segments are the raw material of vanishing point estimation: each detected
// segment is evidence of a 3D line whose projection converges with its
// parallel peers. Detection runs a Hough transform over a Canny edge map,
// with thresholds derived from image statistics, and reports endpoints in
// pixel coordinates.
//
// Coordinates use the standard image convention: (0,0) top-left, X
// rightward, Y downward.
package detection
