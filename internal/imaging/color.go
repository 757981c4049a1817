package imaging

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBColor holds the raw channel values of a pixel.
type RGBColor struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
//
// HSL is often more intuitive for color manipulation than RGB:
//   - Hue represents the color type (red, green, blue, etc.)
//   - Saturation represents color intensity (gray to vivid)
//   - Lightness represents brightness (black to white)
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a pixel color in several representations.
//
// RGB carries the stored channel values on the image's own scale. Hex and
// HSL are computed after normalizing by the image max, so a 16-bit or
// legacy PPM image reports the same hex as its 8-bit equivalent.
type ColorResult struct {
	Hex string   `json:"hex"` // Hex format "#RRGGBB"
	RGB RGBColor `json:"rgb"`
	HSL HSLColor `json:"hsl"`
}

// SampleColor returns the color of the pixel at row r, column c.
//
// # Errors
//
//   - ErrOutOfRange if (r, c) is outside the buffer.
func SampleColor(b *Buffer, r, c int) (*ColorResult, error) {
	p, err := b.PixelAt(r, c)
	if err != nil {
		return nil, err
	}
	return describeColor(p, b.max), nil
}

func describeColor(p Pixel, max int) *ColorResult {
	c := toColorful(p, max)
	h, s, l := c.Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	return &ColorResult{
		Hex: strings.ToUpper(c.Clamped().Hex()),
		RGB: RGBColor{R: p[0], G: p[1], B: p[2]},
		HSL: HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)},
	}
}

func toColorful(p Pixel, max int) colorful.Color {
	m := float64(max)
	return colorful.Color{R: float64(p[0]) / m, G: float64(p[1]) / m, B: float64(p[2]) / m}
}

// ColorFrequency is one distinct color and how often it occurs.
type ColorFrequency struct {
	Hex        string   `json:"hex"`
	RGB        RGBColor `json:"rgb"`
	Pixels     int      `json:"pixels"`
	Percentage float64  `json:"percentage"` // 0-100
}

// DominantColorsResult lists the most frequent colors, most common first.
type DominantColorsResult struct {
	Distinct int              `json:"distinct"` // number of distinct colors in the image
	Colors   []ColorFrequency `json:"colors"`
}

// DominantColors returns up to count of the most frequent exact colors of
// b. Ties are ordered by channel values so the result is deterministic.
//
// Unlike a quantized palette this counts exact pixel values, which makes it
// suitable for checking mosaic output.
func DominantColors(b *Buffer, count int) (*DominantColorsResult, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: color count must be positive, got %d", ErrInvalidArgument, count)
	}

	counts := make(map[Pixel]int)
	for _, p := range b.pix {
		counts[p]++
	}

	colors := make([]ColorFrequency, 0, len(counts))
	for p, n := range counts {
		colors = append(colors, ColorFrequency{
			Hex:        describeColor(p, b.max).Hex,
			RGB:        RGBColor{R: p[0], G: p[1], B: p[2]},
			Pixels:     n,
			Percentage: math.Round(float64(n)/float64(len(b.pix))*10000) / 100,
		})
	}

	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Pixels != colors[j].Pixels {
			return colors[i].Pixels > colors[j].Pixels
		}
		a, c := colors[i].RGB, colors[j].RGB
		if a.R != c.R {
			return a.R < c.R
		}
		if a.G != c.G {
			return a.G < c.G
		}
		return a.B < c.B
	})

	distinct := len(colors)
	if len(colors) > count {
		colors = colors[:count]
	}

	return &DominantColorsResult{Distinct: distinct, Colors: colors}, nil
}
