package detection

import (
	"image"
	"math"
	"sort"

	"github.com/perceptionworks/vanish/internal/geom"
	"github.com/perceptionworks/vanish/internal/imaging"
)

// rhoTolerance is the band, in pixels, around a Hough peak's line within
// which edge pixels count as belonging to the line.
const rhoTolerance = 2.0

// Options controls segment detection. Lengths are expressed as fractions of
// the image diagonal so the same settings work across image sizes.
type Options struct {
	// MinLength is the shortest segment to keep, as a fraction of the
	// image diagonal.
	MinLength float64

	// MaxLength is the longest segment to keep, as a fraction of the
	// image diagonal. Overlong detections usually come from merged
	// collinear structures.
	MaxLength float64

	// MaxSegments caps the number of returned segments; the strongest
	// (by Hough votes) are kept.
	MaxSegments int

	// EdgeSigma is the thresholding sigma for automatic Canny threshold
	// selection. Higher values admit more edges.
	EdgeSigma float64
}

// DefaultOptions returns the detection settings used when callers have no
// opinion. They suit outdoor and indoor photographs around 1-2 megapixels.
func DefaultOptions() Options {
	return Options{
		MinLength:   0.05,
		MaxLength:   1.0,
		MaxSegments: 50,
		EdgeSigma:   0.33,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MinLength == 0 {
		o.MinLength = d.MinLength
	}
	if o.MaxLength == 0 {
		o.MaxLength = d.MaxLength
	}
	if o.MaxSegments == 0 {
		o.MaxSegments = d.MaxSegments
	}
	if o.EdgeSigma == 0 {
		o.EdgeSigma = d.EdgeSigma
	}
	return o
}

// Segments finds straight line segments in an image with a Hough transform
// over its Canny edge map.
//
// Edge pixels vote for (rho, theta) line parameter cells; local maxima above
// a vote threshold become candidate lines, and each candidate's endpoints
// are traced from the extreme edge pixels lying within rhoTolerance of it.
// Results are ordered by decreasing vote count, ties broken by line
// parameters, so the output is deterministic for a given image.
func Segments(img image.Image, opts Options) []geom.Segment {
	opts = opts.withDefaults()

	low, high := imaging.AutoThresholds(img, opts.EdgeSigma)
	edges := imaging.EdgeMask(img, low, high)
	width, height := edges.Width(), edges.Height()
	if width == 0 || height == 0 {
		return nil
	}

	diagonal := math.Hypot(float64(width), float64(height))
	minLen := opts.MinLength * diagonal
	maxLen := opts.MaxLength * diagonal

	acc := vote(edges, width, height)
	peaks := findPeaks(acc, int(math.Max(minLen/2, 2)))

	sort.Slice(peaks, func(i, j int) bool {
		if peaks[i].votes != peaks[j].votes {
			return peaks[i].votes > peaks[j].votes
		}
		if peaks[i].rho != peaks[j].rho {
			return peaks[i].rho < peaks[j].rho
		}
		return peaks[i].theta < peaks[j].theta
	})

	segments := make([]geom.Segment, 0, opts.MaxSegments)
	for _, p := range peaks {
		if len(segments) >= opts.MaxSegments {
			break
		}
		seg, ok := traceSegment(edges, p, width, height)
		if !ok {
			continue
		}
		if l := seg.Length(); l < minLen || l > maxLen {
			continue
		}
		segments = append(segments, seg)
	}
	return segments
}

// accumulator is the Hough vote space: rows indexed by shifted rho, columns
// by theta in whole degrees [0, 180).
type accumulator struct {
	votes   [][]int
	maxDist int
}

type peak struct {
	rho   int
	theta int
	votes int
}

func vote(edges imaging.Mask, width, height int) accumulator {
	maxDist := int(math.Hypot(float64(width), float64(height)))
	acc := accumulator{votes: make([][]int, maxDist*2), maxDist: maxDist}
	for i := range acc.votes {
		acc.votes[i] = make([]int, 180)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !edges[y][x] {
				continue
			}
			for theta := 0; theta < 180; theta++ {
				angle := float64(theta) * math.Pi / 180
				rho := float64(x)*math.Cos(angle) + float64(y)*math.Sin(angle)
				rhoIdx := int(rho) + maxDist
				if rhoIdx >= 0 && rhoIdx < maxDist*2 {
					acc.votes[rhoIdx][theta]++
				}
			}
		}
	}
	return acc
}

// findPeaks returns accumulator cells at or above threshold that are local
// maxima within a 5x5 neighborhood (theta wraps around).
func findPeaks(acc accumulator, threshold int) []peak {
	rows := len(acc.votes)
	var peaks []peak
	for rhoIdx := 0; rhoIdx < rows; rhoIdx++ {
		for theta := 0; theta < 180; theta++ {
			v := acc.votes[rhoIdx][theta]
			if v < threshold {
				continue
			}
			isMax := true
			for dr := -2; dr <= 2 && isMax; dr++ {
				for dt := -2; dt <= 2 && isMax; dt++ {
					if dr == 0 && dt == 0 {
						continue
					}
					nr := rhoIdx + dr
					nt := (theta + dt + 180) % 180
					if nr >= 0 && nr < rows && acc.votes[nr][nt] > v {
						isMax = false
					}
				}
			}
			if isMax {
				peaks = append(peaks, peak{rho: rhoIdx - acc.maxDist, theta: theta, votes: v})
			}
		}
	}
	return peaks
}

// traceSegment locates a peak's endpoints: among edge pixels within
// rhoTolerance of the peak's line, the two extremes of the projection onto
// the line's direction.
func traceSegment(edges imaging.Mask, p peak, width, height int) (geom.Segment, bool) {
	angle := float64(p.theta) * math.Pi / 180
	cosA, sinA := math.Cos(angle), math.Sin(angle)
	rho := float64(p.rho)

	found := false
	minProj, maxProj := math.MaxFloat64, -math.MaxFloat64
	var start, end geom.Point
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !edges[y][x] {
				continue
			}
			fx, fy := float64(x), float64(y)
			if math.Abs(fx*cosA+fy*sinA-rho) >= rhoTolerance {
				continue
			}
			// Projection onto the line direction (-sin, cos).
			proj := -fx*sinA + fy*cosA
			if proj < minProj {
				minProj = proj
				start = geom.Point{X: fx, Y: fy}
			}
			if proj > maxProj {
				maxProj = proj
				end = geom.Point{X: fx, Y: fy}
			}
			found = true
		}
	}
	if !found {
		return geom.Segment{}, false
	}
	return geom.Segment{Start: start, End: end}, true
}
