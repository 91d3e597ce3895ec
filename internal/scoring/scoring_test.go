package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perceptionworks/vanish/internal/geom"
	"github.com/perceptionworks/vanish/internal/horizon"
)

func line(slope, intercept float64) *horizon.Line {
	return &horizon.Line{Slope: slope, Intercept: intercept}
}

func pts(coords ...float64) []geom.Point {
	out := make([]geom.Point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		out = append(out, geom.Point{X: coords[i], Y: coords[i+1]})
	}
	return out
}

func TestHorizonErrorPerfectFit(t *testing.T) {
	e, ok := HorizonError(line(1, 1), line(1, 1), 100, 100)
	require.True(t, ok)
	assert.Equal(t, 0.0, e)

	e, ok = HorizonError(line(2, 8), line(2, 8), 100, 100)
	require.True(t, ok)
	assert.Equal(t, 0.0, e)
}

func TestHorizonErrorUneven(t *testing.T) {
	e, _ := HorizonError(line(1, 0), line(2, 0), 100, 100)
	assert.Equal(t, 1.0, e)

	e, _ = HorizonError(line(-1, 100), line(2, 0), 100, 100)
	assert.Equal(t, 2.0, e)
}

func TestHorizonErrorHeightNormalized(t *testing.T) {
	e, _ := HorizonError(line(1, 0), line(2, 0), 100, 50)
	assert.Equal(t, 2.0, e)

	e, _ = HorizonError(line(1, 0), line(2, 0), 100, 10)
	assert.Equal(t, 10.0, e)
}

func TestHorizonErrorOutOfImageBounds(t *testing.T) {
	e, _ := HorizonError(line(1, 0), line(1, 500), 100, 100)
	assert.Equal(t, 5.0, e)
}

func TestHorizonErrorPerpendicular(t *testing.T) {
	e, _ := HorizonError(line(1, 0), line(-1, 0), 100, 100)
	assert.Equal(t, 2.0, e)
}

func TestHorizonErrorMissing(t *testing.T) {
	_, ok := HorizonError(nil, line(1, 0), 100, 100)
	assert.False(t, ok)
	_, ok = HorizonError(line(1, 0), nil, 100, 100)
	assert.False(t, ok)
}

func TestVPDirectionErrorSameVPs(t *testing.T) {
	vps := pts(1, 1, -2, -2)
	assert.Equal(t, []float64{0, 0}, VPDirectionError(vps, vps, 200, 200))
}

func TestVPDirectionErrorSameDirection(t *testing.T) {
	assert.Equal(t, []float64{0}, VPDirectionError(pts(1, 1), pts(3, 3), 200, 200))
}

func TestVPDirectionErrorNoVPs(t *testing.T) {
	assert.Empty(t, VPDirectionError(nil, nil, 200, 200))
	assert.Empty(t, VPDirectionError(nil, pts(1, 1), 200, 200))

	errs := VPDirectionError(pts(1, 1), nil, 200, 200)
	require.Len(t, errs, 1)
	assert.True(t, math.IsNaN(errs[0]))
}

func TestVPDirectionErrorImageDims(t *testing.T) {
	assert.Equal(t, []float64{0}, VPDirectionError(pts(1, 1), pts(2, 2), 200, 200))
	assert.Equal(t, []float64{0}, VPDirectionError(pts(1, 1), pts(2, 2), 0, 0))

	errs := VPDirectionError(pts(1, 1), pts(2, 2), 200, 100)
	require.Len(t, errs, 1)
	assert.InDelta(t, 0.24, errs[0], 0.005)
}

func TestVPDirectionErrorGreedyMatch(t *testing.T) {
	errs := VPDirectionError(pts(200, 200), pts(100, 200), 200, 200)
	require.Len(t, errs, 1)
	assert.InDelta(t, 45, errs[0], 1e-9)

	errs = VPDirectionError(pts(200, 200, 100, 500), pts(200, 400, 100, 600), 200, 200)
	require.Len(t, errs, 2)
	assert.InDelta(t, 26.57, errs[0], 0.005)
	assert.InDelta(t, 0, errs[1], 1e-9)
}

func TestLocationAccuracyErrorExactMatches(t *testing.T) {
	gt := pts(0, 0, 1, 1, 2, 2)
	assert.Equal(t, 0.0, LocationAccuracyError(gt, gt))
	assert.Equal(t, 0.0, LocationAccuracyError(gt, pts(0, 0)))
	assert.Equal(t, 0.0, LocationAccuracyError(gt, append(pts(0, 0, 1, 1, 2, 2), geom.Point{X: 10, Y: 10})))
	assert.Equal(t, 0.0, LocationAccuracyError(nil, pts(1, 1)))
	assert.Equal(t, 0.0, LocationAccuracyError(pts(1, 1), nil))
}

func TestLocationAccuracyErrorNearestMatch(t *testing.T) {
	gt := pts(0, 0, 1, 1, 2, 2)

	// (10, 0) is nearest to (2, 2): log(sqrt(68)) over one match.
	e := LocationAccuracyError(gt, pts(10, 0))
	assert.InDelta(t, math.Log(math.Sqrt(68)), e, 1e-9)

	// Adding (11, 1) claims (1, 1) at distance 10 after (2, 2) is taken.
	e = LocationAccuracyError(gt, pts(10, 0, 11, 1))
	want := (math.Log(math.Sqrt(68)) + math.Log(10.0)) / 2
	assert.InDelta(t, want, e, 1e-9)

	// A far detection scores its log distance.
	e = LocationAccuracyError(gt, pts(1000, 0))
	assert.InDelta(t, 6.9, e, 0.01)
}

func TestModelCountError(t *testing.T) {
	gt := pts(0, 0, 1, 1, 2, 2)
	assert.Equal(t, 0, ModelCountError(gt, gt))
	assert.Equal(t, -2, ModelCountError(gt, pts(10, 10)))
	assert.Equal(t, 1, ModelCountError(gt, append(pts(0, 0, 1, 1, 2, 2), geom.Point{X: 3, Y: 3})))
}
