package dataset

import (
	"github.com/perceptionworks/vanish/internal/geom"
	"github.com/perceptionworks/vanish/internal/horizon"
)

// Dataset is an in-memory benchmark dataset. Slices indexed by image are
// parallel: ImagePaths[i], VPs[i], Segments[i], VerticalVPs[i] and
// Horizons[i] all describe the same image.
type Dataset struct {
	ImagePaths []string

	// Width and Height are the pixel dimensions shared by all images.
	Width, Height int

	// VPs holds the ground truth vanishing points per image.
	VPs [][]geom.Point

	// Segments holds the ground truth line segments per image, grouped by
	// the vanishing point they belong to.
	Segments [][][]geom.Segment

	// VerticalVPs holds the vertical vanishing point per image, nil where
	// none qualifies.
	VerticalVPs []*geom.Point

	// Horizons holds the ground truth horizon line per image.
	Horizons []horizon.Line
}

// New builds a Dataset and derives the vertical vanishing point and horizon
// line for every image from its ground truth vanishing points.
func New(paths []string, width, height int, vps [][]geom.Point, segments [][][]geom.Segment) *Dataset {
	principal := geom.Point{X: float64(width / 2), Y: float64(height / 2)}

	verticals := make([]*geom.Point, len(vps))
	horizons := make([]horizon.Line, len(vps))
	for i, imageVPs := range vps {
		if v, ok := horizon.ChooseVerticalVP(imageVPs, principal); ok {
			verticals[i] = &v
		}
		horizons[i] = horizon.FindHorizon(imageVPs, principal, verticals[i])
	}

	return &Dataset{
		ImagePaths:  paths,
		Width:       width,
		Height:      height,
		VPs:         vps,
		Segments:    segments,
		VerticalVPs: verticals,
		Horizons:    horizons,
	}
}

// WithMask returns a Dataset restricted to the images at the given indices,
// in the given order. Derived fields are carried over, not recomputed.
func (d *Dataset) WithMask(indices []int) *Dataset {
	out := &Dataset{
		ImagePaths:  make([]string, 0, len(indices)),
		Width:       d.Width,
		Height:      d.Height,
		VPs:         make([][]geom.Point, 0, len(indices)),
		Segments:    make([][][]geom.Segment, 0, len(indices)),
		VerticalVPs: make([]*geom.Point, 0, len(indices)),
		Horizons:    make([]horizon.Line, 0, len(indices)),
	}
	for _, i := range indices {
		out.ImagePaths = append(out.ImagePaths, d.ImagePaths[i])
		out.VPs = append(out.VPs, d.VPs[i])
		out.Segments = append(out.Segments, d.Segments[i])
		out.VerticalVPs = append(out.VerticalVPs, d.VerticalVPs[i])
		out.Horizons = append(out.Horizons, d.Horizons[i])
	}
	return out
}
