// Package geom provides the planar geometry primitives shared by the
// vanishing point pipeline: points, line segments, homogeneous coordinates,
// and the distance and intersection helpers built on them.
//
// # Coordinate System
//
// All coordinates are in image pixel space: (0,0) is the top-left corner,
// X increases rightward, Y increases downward. Coordinates are float64
// because detectors emit sub-pixel endpoints and intersection points
// routinely fall far outside the image frame.
//
// # Homogeneous Coordinates
//
// Candidate vanishing points are represented as homogeneous triples
// (X, Y, W) rather than raw 2D points. A finite point (x, y) corresponds to
// (x, y, 1) up to scale; a point at infinity in direction (dx, dy) is
// (dx, dy, 0). This lets strictly parallel segment pairs produce a valid,
// first-class intersection instead of a sentinel value, and keeps the
// consistency math uniform across both cases.
package geom
