package horizon

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/perceptionworks/vanish/internal/geom"
)

// Line is a horizon estimate in slope-intercept form, y = Slope*x + Intercept
// in pixel coordinates.
type Line struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// At returns the line's y value at the given x.
func (l Line) At(x float64) float64 {
	return l.Slope*x + l.Intercept
}

// ChooseVerticalVP looks for a vertical vanishing point among vps: one whose
// direction from the principal point is within 45 degrees of vertical and
// whose distance exceeds twice the principal point's y coordinate. Among the
// qualifiers the most distant wins. ok is false when none qualifies.
func ChooseVerticalVP(vps []geom.Point, principal geom.Point) (best geom.Point, ok bool) {
	bestMag := 0.0
	for _, vp := range vps {
		vx, vy := vp.X-principal.X, vp.Y-principal.Y
		angle := math.Atan2(vy, vx) * 180 / math.Pi
		if !(45 <= angle && angle <= 135) && !(-135 <= angle && angle <= -45) {
			continue
		}
		mag := math.Hypot(vx, vy)
		if mag > principal.Y*2 && (!ok || mag > bestMag) {
			best, bestMag, ok = vp, mag, true
		}
	}
	return best, ok
}

// FindHorizon estimates the horizon line from vanishing points.
//
// When the vertical vanishing point is already known (e.g. from dataset
// ground truth) pass it in; otherwise pass nil and it is chosen from vps.
// The slope is the negative reciprocal of the principal-to-vertical
// direction; the intercept is fit over the remaining, horizontal vanishing
// points. With no usable vanishing points at all the result is a flat line
// through the principal point.
func FindHorizon(vps []geom.Point, principal geom.Point, vertical *geom.Point) Line {
	if len(vps) == 0 && vertical == nil {
		return Line{Slope: 0, Intercept: principal.Y}
	}

	if vertical == nil {
		if v, ok := ChooseVerticalVP(vps, principal); ok {
			vertical = &v
		}
	}

	slope := 0.0
	horizontal := vps
	if vertical != nil {
		dx, dy := vertical.X-principal.X, vertical.Y-principal.Y
		// A perpendicular line has the negative reciprocal slope; a
		// horizontal principal-to-vertical direction degrades to flat.
		if dy != 0 {
			slope = -dx / dy
		}
		horizontal = make([]geom.Point, 0, len(vps))
		for _, vp := range vps {
			if vp != *vertical {
				horizontal = append(horizontal, vp)
			}
		}
	}

	if len(horizontal) == 0 {
		return Line{Slope: slope, Intercept: principal.Y}
	}

	intercept := fitIntercept(horizontal, slope)
	if math.IsNaN(intercept) {
		intercept = principal.Y
	}
	return Line{Slope: slope, Intercept: intercept}
}

// fitIntercept solves the fixed-slope least squares problem: the intercept c
// minimizing Σ (yᵢ - slope*xᵢ - c)². Returns NaN when the solve fails.
func fitIntercept(points []geom.Point, slope float64) float64 {
	m := len(points)
	ones := mat.NewDense(m, 1, nil)
	ys := mat.NewVecDense(m, nil)
	for i, p := range points {
		ones.Set(i, 0, 1)
		ys.SetVec(i, p.Y-slope*p.X)
	}
	var c mat.VecDense
	if err := c.SolveVec(ones, ys); err != nil {
		return math.NaN()
	}
	return c.AtVec(0)
}
