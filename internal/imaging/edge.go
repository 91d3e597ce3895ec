package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/anthonynsimon/bild/blur"
)

// blurRadius is the Gaussian pre-blur applied before gradient computation,
// matching the conventional Canny sigma of roughly 1.4.
const blurRadius = 1.4

// Mask is a binary edge map indexed [y][x], sized to the source image.
type Mask [][]bool

// Width returns the mask's pixel width.
func (m Mask) Width() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Height returns the mask's pixel height.
func (m Mask) Height() int {
	return len(m)
}

// Count returns the number of edge pixels.
func (m Mask) Count() int {
	n := 0
	for _, row := range m {
		for _, v := range row {
			if v {
				n++
			}
		}
	}
	return n
}

// AutoThresholds derives Canny thresholds from image statistics: the median
// luminance widened by sigma on each side, clamped to [0, 255]. Higher sigma
// admits more edges. A sigma of 0.33 works well for photographs.
func AutoThresholds(img image.Image, sigma float64) (low, high int) {
	var histogram [256]int
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			histogram[luminance8(img.At(x, y))]++
		}
	}

	total := bounds.Dx() * bounds.Dy()
	median := 0
	for cum, v := 0, 0; v < 256; v++ {
		cum += histogram[v]
		if cum*2 >= total {
			median = v
			break
		}
	}

	low = int(math.Max(0, (1-sigma)*float64(median)))
	high = int(math.Min(255, (1+sigma)*float64(median)))
	return low, high
}

// EdgeMask runs Canny edge detection and returns the binary edge map.
//
// The stages are the standard ones: Gaussian pre-blur, luminance conversion,
// Sobel gradients, non-maximum suppression along the gradient direction, and
// double-threshold hysteresis. Pixels between the thresholds survive only
// when adjacent to a strong edge. Thresholds are on the 0-255 luminance
// scale; AutoThresholds picks reasonable ones.
func EdgeMask(img image.Image, thresholdLow, thresholdHigh int) Mask {
	blurred := blur.Gaussian(img, blurRadius)
	bounds := blurred.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	gray := make([][]float64, height)
	for y := 0; y < height; y++ {
		gray[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			gray[y][x] = float64(luminance8(blurred.At(x+bounds.Min.X, y+bounds.Min.Y)))
		}
	}

	magnitude := make([][]float64, height)
	direction := make([][]float64, height)
	for y := 0; y < height; y++ {
		magnitude[y] = make([]float64, width)
		direction[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			gx := sobelAt(gray, x, y, width, height, false)
			gy := sobelAt(gray, x, y, width, height, true)
			magnitude[y][x] = math.Hypot(gx, gy)
			direction[y][x] = math.Atan2(gy, gx)
		}
	}

	suppressed := nonMaxSuppress(magnitude, direction, width, height)

	low := float64(thresholdLow)
	high := float64(thresholdHigh)
	mask := make(Mask, height)
	for y := 0; y < height; y++ {
		mask[y] = make([]bool, width)
		for x := 0; x < width; x++ {
			switch {
			case suppressed[y][x] >= high:
				mask[y][x] = true
			case suppressed[y][x] >= low:
				mask[y][x] = hasStrongNeighbor(suppressed, x, y, width, height, high)
			}
		}
	}
	return mask
}

// sobelAt applies one 3x3 Sobel kernel at (x, y) with replicated borders.
func sobelAt(gray [][]float64, x, y, width, height int, vertical bool) float64 {
	kernel := [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	if vertical {
		kernel = [3][3]float64{
			{-1, -2, -1},
			{0, 0, 0},
			{1, 2, 1},
		}
	}
	var sum float64
	for ky := -1; ky <= 1; ky++ {
		for kx := -1; kx <= 1; kx++ {
			py := clamp(y+ky, 0, height-1)
			px := clamp(x+kx, 0, width-1)
			sum += gray[py][px] * kernel[ky+1][kx+1]
		}
	}
	return sum
}

// nonMaxSuppress thins ridges to single-pixel width by zeroing any pixel that
// is not a local maximum along its gradient direction. The one-pixel image
// border is always suppressed.
func nonMaxSuppress(magnitude, direction [][]float64, width, height int) [][]float64 {
	out := make([][]float64, height)
	for y := 0; y < height; y++ {
		out[y] = make([]float64, width)
		if y == 0 || y == height-1 {
			continue
		}
		for x := 1; x < width-1; x++ {
			angle := direction[y][x]
			mag := magnitude[y][x]

			var n1, n2 float64
			switch {
			case (angle >= -math.Pi/8 && angle < math.Pi/8) || angle >= 7*math.Pi/8 || angle < -7*math.Pi/8:
				n1, n2 = magnitude[y][x-1], magnitude[y][x+1]
			case (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8):
				n1, n2 = magnitude[y-1][x+1], magnitude[y+1][x-1]
			case (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8):
				n1, n2 = magnitude[y-1][x], magnitude[y+1][x]
			default:
				n1, n2 = magnitude[y-1][x-1], magnitude[y+1][x+1]
			}

			if mag >= n1 && mag >= n2 {
				out[y][x] = mag
			}
		}
	}
	return out
}

func hasStrongNeighbor(suppressed [][]float64, x, y, width, height int, high float64) bool {
	for ky := -1; ky <= 1; ky++ {
		for kx := -1; kx <= 1; kx++ {
			py := clamp(y+ky, 0, height-1)
			px := clamp(x+kx, 0, width-1)
			if suppressed[py][px] >= high {
				return true
			}
		}
	}
	return false
}

// EdgeDetectResult is an edge map rendered as a base64 PNG, white on black.
type EdgeDetectResult struct {
	// Width of the output image in pixels (same as input).
	Width int `json:"width"`

	// Height of the output image in pixels (same as input).
	Height int `json:"height"`

	// ImageBase64 is the edge image encoded as base64 PNG.
	ImageBase64 string `json:"image_base64"`

	// MimeType is always "image/png".
	MimeType string `json:"mime_type"`
}

// EdgeDetect runs EdgeMask and renders the result as a grayscale PNG for
// clients that want to inspect the edge map directly.
func EdgeDetect(img image.Image, thresholdLow, thresholdHigh int) (*EdgeDetectResult, error) {
	mask := EdgeMask(img, thresholdLow, thresholdHigh)
	width, height := mask.Width(), mask.Height()

	out := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if mask[y][x] {
				out.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode edge image: %w", err)
	}
	return &EdgeDetectResult{
		Width:       width,
		Height:      height,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// luminance8 converts a color to 8-bit luminance using ITU-R BT.601 weights.
func luminance8(c color.Color) int {
	r, g, b, _ := c.RGBA()
	lum := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
	return clamp(int(math.Round(lum)), 0, 255)
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
