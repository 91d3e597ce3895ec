package imaging

import (
	"errors"
	"image"
	"image/color"
	"math"

	ext "github.com/disintegration/imaging"

	"github.com/perceptionworks/vanish/internal/geom"
)

// ErrNegativeBorder is returned when a border size below zero is requested.
var ErrNegativeBorder = errors.New("imaging: negative borders are unsupported")

// Border returns a copy of img with solid-color strips added on every side:
// left pixels on the left and right, top pixels on the top and bottom.
func Border(img image.Image, left, top int, fill color.Color) (*image.NRGBA, error) {
	if left < 0 || top < 0 {
		return nil, ErrNegativeBorder
	}
	bounds := img.Bounds()
	canvas := ext.New(bounds.Dx()+2*left, bounds.Dy()+2*top, fill)
	return ext.Paste(canvas, img, image.Pt(left, top)), nil
}

// BorderToFit grows an image with borders until the given points fit inside,
// up to maxBorder pixels per side. Vanishing points often land far outside
// the frame; bordering lets them be rendered in context.
//
// Returns the bordered image, the input points shifted into the new
// coordinate system, and the applied shift. Any other coordinates computed
// against the original image must be translated by the same shift.
func BorderToFit(img image.Image, points []geom.Point, fill color.Color, maxBorder int) (*image.NRGBA, []geom.Point, geom.Point, error) {
	if len(points) == 0 {
		return ext.Clone(img), nil, geom.Point{}, nil
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	left, top := borderSize(width, height, points, maxBorder)

	bordered, err := Border(img, left, top, fill)
	if err != nil {
		return nil, nil, geom.Point{}, err
	}

	shift := geom.Point{X: float64(left), Y: float64(top)}
	shifted := make([]geom.Point, len(points))
	for i, p := range points {
		shifted[i] = geom.Point{X: p.X + shift.X, Y: p.Y + shift.Y}
	}
	return bordered, shifted, shift, nil
}

// borderSize finds per-side border sizes that make the points fit alongside
// the original frame, each capped at maxBorder.
func borderSize(width, height int, points []geom.Point, maxBorder int) (left, top int) {
	all := append([]geom.Point{{X: 0, Y: 0}, {X: float64(width), Y: float64(height)}}, points...)
	lo, hi, ok := geom.Bounds(all)
	if !ok {
		return 0, 0
	}

	widthAdj := math.Max((hi.X-lo.X)-float64(width), 0)
	heightAdj := math.Max((hi.Y-lo.Y)-float64(height), 0)
	widthAdj = math.Min(widthAdj, float64(maxBorder)*2)
	heightAdj = math.Min(heightAdj, float64(maxBorder)*2)
	return int(math.Ceil(widthAdj / 2)), int(math.Ceil(heightAdj / 2))
}
