package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	ext "github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/perceptionworks/vanish/internal/geom"
	"github.com/perceptionworks/vanish/internal/horizon"
)

// OutlierColor marks segments that support no vanishing point.
var OutlierColor = color.NRGBA{R: 128, G: 128, B: 128, A: 255}

// Palette returns n visually distinct, fully saturated colors with hues
// stepped evenly around the color wheel. The same n always yields the same
// colors, keeping renders reproducible.
func Palette(n int) []color.NRGBA {
	if n <= 0 {
		return nil
	}
	out := make([]color.NRGBA, n)
	for i := 0; i < n; i++ {
		hue := float64(i) * 360 / float64(n)
		r, g, b := colorful.Hsv(hue, 0.85, 0.92).RGB255()
		out[i] = color.NRGBA{R: r, G: g, B: b, A: 255}
	}
	return out
}

// Overlay clones an image into a drawable canvas.
func Overlay(img image.Image) *image.NRGBA {
	return ext.Clone(img)
}

// DrawSegment draws one line segment with the given thickness.
func DrawSegment(dst *image.NRGBA, s geom.Segment, c color.Color, thickness int) {
	dx := s.End.X - s.Start.X
	dy := s.End.Y - s.Start.Y
	steps := int(math.Max(math.Abs(dx), math.Abs(dy)))
	if steps == 0 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		drawDisc(dst, s.Start.X+t*dx, s.Start.Y+t*dy, c, thickness/2)
	}
}

// DrawSegments draws every segment in one color.
func DrawSegments(dst *image.NRGBA, segs []geom.Segment, c color.Color, thickness int) {
	for _, s := range segs {
		DrawSegment(dst, s, c, thickness)
	}
}

// DrawPoint draws a filled circle at a point.
func DrawPoint(dst *image.NRGBA, p geom.Point, c color.Color, radius int) {
	drawDisc(dst, p.X, p.Y, c, radius)
}

// DrawClusters draws segment groups, one palette color per group, and
// returns the colors used, index-aligned with the groups.
func DrawClusters(dst *image.NRGBA, groups [][]geom.Segment, thickness int) []color.NRGBA {
	palette := Palette(len(groups))
	for i, segs := range groups {
		DrawSegments(dst, segs, palette[i], thickness)
	}
	return palette
}

// DrawHorizon draws a horizon line across the full image width.
func DrawHorizon(dst *image.NRGBA, l horizon.Line, c color.Color, thickness int) {
	w := float64(dst.Bounds().Dx())
	DrawSegment(dst, geom.Seg(0, l.At(0), w, l.At(w)), c, thickness)
}

// DrawFittedPoint draws a point, projecting it onto the image border when it
// lies outside the frame. The border position preserves the point's
// direction from the image center, so off-frame vanishing points appear on
// the correct side.
func DrawFittedPoint(dst *image.NRGBA, p geom.Point, c color.Color, radius int) {
	w := float64(dst.Bounds().Dx())
	h := float64(dst.Bounds().Dy())
	if p.X < 0 || p.X > w || p.Y < 0 || p.Y > h {
		angle := geom.Seg(w/2, h/2, p.X, p.Y).Angle()
		p = geom.PointOnRectBorder(w, h, angle)
	}
	DrawPoint(dst, p, c, radius)
}

// Rendering is an encoded render result, ready for transport.
type Rendering struct {
	// Width of the rendered image in pixels.
	Width int `json:"width"`

	// Height of the rendered image in pixels.
	Height int `json:"height"`

	// ImageBase64 is the rendered image encoded as base64 PNG.
	ImageBase64 string `json:"image_base64"`

	// MimeType is always "image/png".
	MimeType string `json:"mime_type"`
}

// EncodePNG encodes a rendered image as base64 PNG.
func EncodePNG(img image.Image) (*Rendering, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode rendering: %w", err)
	}
	return &Rendering{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// drawDisc fills a circle of the given radius, clipped to the image.
func drawDisc(dst *image.NRGBA, cx, cy float64, c color.Color, radius int) {
	if radius < 0 {
		radius = 0
	}
	x0, y0 := int(math.Round(cx)), int(math.Round(cy))
	bounds := dst.Bounds()
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			x, y := x0+dx, y0+dy
			if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
				dst.Set(x, y, c)
			}
		}
	}
}
