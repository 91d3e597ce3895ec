package scoring

import (
	"math"
	"sort"

	"github.com/perceptionworks/vanish/internal/geom"
	"github.com/perceptionworks/vanish/internal/horizon"
)

// HorizonError measures the worst vertical distance between a detected
// horizon and the ground truth across the image's x extent, normalized by
// image height. ok is false when either line is missing.
func HorizonError(gt, dt *horizon.Line, width, height float64) (float64, bool) {
	if gt == nil || dt == nil {
		return 0, false
	}
	left := math.Abs(gt.At(0) - dt.At(0))
	right := math.Abs(gt.At(width) - dt.At(width))
	return math.Max(left, right) / height, true
}

// VPDirectionError measures, for each ground truth vanishing point, the
// angular error of its matched detection as seen from the principal point.
// Detections are claimed greedily in order of increasing angular distance;
// each may be claimed once. The result has one entry per ground truth point,
// NaN where no detection remains to match it.
func VPDirectionError(gtVPs, dtVPs []geom.Point, width, height int) []float64 {
	principal := geom.Point{X: float64(width / 2), Y: float64(height / 2)}

	type pair struct {
		diff   float64
		gt, dt int
	}
	pairs := make([]pair, 0, len(gtVPs)*len(dtVPs))
	for g, gtVP := range gtVPs {
		ga := angleFrom(principal, gtVP)
		for d, dtVP := range dtVPs {
			da := angleFrom(principal, dtVP)
			// Fold the difference into [0, 180]: direction is what
			// matters, not orientation along the ray.
			diff := 180 - math.Abs(math.Abs(ga-da)-180)
			pairs = append(pairs, pair{diff: diff, gt: g, dt: d})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].diff < pairs[j].diff })

	errs := make([]float64, len(gtVPs))
	for i := range errs {
		errs[i] = math.NaN()
	}
	claimedGT := make([]bool, len(gtVPs))
	claimedDT := make([]bool, len(dtVPs))
	for _, p := range pairs {
		if claimedGT[p.gt] || claimedDT[p.dt] {
			continue
		}
		claimedGT[p.gt] = true
		claimedDT[p.dt] = true
		errs[p.gt] = p.diff
	}
	return errs
}

// LocationAccuracyError measures average log distance between matched
// ground truth and detected vanishing points. Matching is greedy by
// increasing distance, and unmatched points on either side are ignored, so
// missed or extra detections do not inflate the score.
func LocationAccuracyError(gtVPs, dtVPs []geom.Point) float64 {
	if len(gtVPs) == 0 || len(dtVPs) == 0 {
		return 0
	}

	type pair struct {
		dist   float64
		gt, dt int
	}
	pairs := make([]pair, 0, len(gtVPs)*len(dtVPs))
	for g, gtVP := range gtVPs {
		for d, dtVP := range dtVPs {
			pairs = append(pairs, pair{dist: gtVP.Dist(dtVP), gt: g, dt: d})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].dist < pairs[j].dist })

	claimedGT := make([]bool, len(gtVPs))
	claimedDT := make([]bool, len(dtVPs))
	total := 0.0
	for _, p := range pairs {
		if claimedGT[p.gt] || claimedDT[p.dt] {
			continue
		}
		claimedGT[p.gt] = true
		claimedDT[p.dt] = true
		if p.dist > 0 {
			total += math.Log(p.dist)
		}
	}
	return total / float64(min(len(gtVPs), len(dtVPs)))
}

// ModelCountError is positive when too many vanishing points were detected
// and negative when too few.
func ModelCountError(gtVPs, dtVPs []geom.Point) int {
	return len(dtVPs) - len(gtVPs)
}

func angleFrom(from, to geom.Point) float64 {
	return math.Atan2(to.Y-from.Y, to.X-from.X) * 180 / math.Pi
}
