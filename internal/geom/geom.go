package geom

import "math"

// eps is the tolerance below which lengths and homogeneous components are
// treated as zero in degeneracy checks.
const eps = 1e-9

// Point is a location in image pixel coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dist returns the euclidean distance to q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Segment is a finite line segment between two endpoints. Segments are
// immutable values: detectors produce them once per image and the pipeline
// never modifies them.
type Segment struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// Seg builds a segment from raw endpoint coordinates.
func Seg(x1, y1, x2, y2 float64) Segment {
	return Segment{Start: Point{X: x1, Y: y1}, End: Point{X: x2, Y: y2}}
}

// Length returns the euclidean length of the segment.
func (s Segment) Length() float64 {
	return s.Start.Dist(s.End)
}

// Midpoint returns the point halfway between the endpoints.
func (s Segment) Midpoint() Point {
	return Point{X: (s.Start.X + s.End.X) / 2, Y: (s.Start.Y + s.End.Y) / 2}
}

// Angle returns the direction from Start to End in degrees in [0, 360).
func (s Segment) Angle() float64 {
	deg := math.Atan2(s.End.Y-s.Start.Y, s.End.X-s.Start.X) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

// PointToLineDist returns the perpendicular distance from p to the infinite
// line through the endpoints of line. Zero-length lines yield +Inf rather
// than NaN so degenerate inputs always fail any distance threshold.
func PointToLineDist(p Point, line Segment) float64 {
	length := line.Length()
	if length < eps {
		return math.Inf(1)
	}
	num := math.Abs((line.End.Y-line.Start.Y)*p.X - (line.End.X-line.Start.X)*p.Y +
		line.End.X*line.Start.Y - line.End.Y*line.Start.X)
	return num / length
}

// DistToDirectedLine returns the perpendicular distance from p to the line
// through origin with direction (dx, dy). A numerically zero direction
// yields +Inf.
func DistToDirectedLine(p, origin Point, dx, dy float64) float64 {
	n := math.Hypot(dx, dy)
	if n < eps {
		return math.Inf(1)
	}
	return math.Abs(dx*(p.Y-origin.Y)-dy*(p.X-origin.X)) / n
}

// Centroid returns the center of mass of points. ok is false for an empty
// set.
func Centroid(points []Point) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}
	var sx, sy float64
	for _, p := range points {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(points))
	return Point{X: sx / n, Y: sy / n}, true
}

// Intersections returns the finite pairwise intersection points of the
// supporting lines of segs. Parallel, coincident and zero-length pairs
// contribute nothing. Points are not deduplicated.
func Intersections(segs []Segment) []Point {
	var pts []Point
	for i := 0; i < len(segs); i++ {
		for j := i + 1; j < len(segs); j++ {
			h, ok := Intersect(segs[i], segs[j])
			if !ok {
				continue
			}
			if p, finite := h.Euclidean(); finite {
				pts = append(pts, p)
			}
		}
	}
	return pts
}

// Bounds returns the axis-aligned bounding box of points. ok is false for an
// empty set.
func Bounds(points []Point) (min, max Point, ok bool) {
	if len(points) == 0 {
		return Point{}, Point{}, false
	}
	min, max = points[0], points[0]
	for _, p := range points[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max, true
}

// PointOnRectBorder returns the point on the border of the rectangle
// (0,0)-(w,h) at the given angle, in degrees, measured from the rectangle
// center. Used to pin far-away vanishing points to the image edge when
// drawing.
//
// The rectangle is grown into a square, the border point is found there, and
// the result is scaled back onto the rectangle.
func PointOnRectBorder(w, h, angleDeg float64) Point {
	size := math.Max(w, h)
	if size <= 0 {
		return Point{}
	}
	b := pointOnSquareBorder(size, angleDeg)
	return Point{X: b.X * (w / size), Y: b.Y * (h / size)}
}

// pointOnSquareBorder finds the border point of the square (0,0)-(size,size)
// at the given angle from its center. Based on https://stackoverflow.com/a/1343531.
func pointOnSquareBorder(size, angleDeg float64) Point {
	angle := angleDeg * math.Pi / 180
	half := size / 2
	absCos := math.Abs(math.Cos(angle))
	absSin := math.Abs(math.Sin(angle))
	var magnitude float64
	if half*absSin <= half*absCos {
		magnitude = half / absCos
	} else {
		magnitude = half / absSin
	}
	return Point{
		X: half + math.Cos(angle)*magnitude,
		Y: half + math.Sin(angle)*magnitude,
	}
}
