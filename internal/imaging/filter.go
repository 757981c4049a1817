package imaging

import (
	"fmt"
	"sort"
)

// FilterKind identifies one of the fixed convolution filters.
type FilterKind int

const (
	Blur FilterKind = iota
	Sharpen
)

// EdgeMode decides which neighbors of a pixel take part in a convolution.
type EdgeMode int

const (
	// EdgeClip skips kernel positions that fall outside the image.
	EdgeClip EdgeMode = iota

	// EdgeLegacy also skips row 0 and column 0 as neighbors, reproducing
	// the dark border of the first version of this tool.
	EdgeLegacy
)

var filterNames = map[FilterKind]string{
	Blur:    "blur",
	Sharpen: "sharpen",
}

// Gaussian blur:
//
//	1/16 1/8 1/16
//	1/8  1/4 1/8
//	1/16 1/8 1/16
var blurKernel = [][]float64{
	{0.0625, 0.125, 0.0625},
	{0.125, 0.25, 0.125},
	{0.0625, 0.125, 0.0625},
}

var sharpenKernel = [][]float64{
	{-0.125, -0.125, -0.125, -0.125, -0.125},
	{-0.125, 0.25, 0.25, 0.25, -0.125},
	{-0.125, 0.25, 1.0, 0.25, -0.125},
	{-0.125, 0.25, 0.25, 0.25, -0.125},
	{-0.125, -0.125, -0.125, -0.125, -0.125},
}

// ConvolutionFilter maps each pixel to a kernel-weighted sum of its
// neighborhood.
type ConvolutionFilter struct {
	kind FilterKind
	edge EdgeMode
}

// NewFilter returns the filter of the given kind using the given edge mode.
func NewFilter(kind FilterKind, edge EdgeMode) (ConvolutionFilter, error) {
	if _, ok := filterNames[kind]; !ok {
		return ConvolutionFilter{}, fmt.Errorf("%w: unknown filter kind %d", ErrInvalidArgument, kind)
	}
	if edge != EdgeClip && edge != EdgeLegacy {
		return ConvolutionFilter{}, fmt.Errorf("%w: unknown edge mode %d", ErrInvalidArgument, edge)
	}
	return ConvolutionFilter{kind: kind, edge: edge}, nil
}

// ParseFilter looks a filter up by name ("blur" or "sharpen"). The filter
// uses EdgeClip.
func ParseFilter(name string) (ConvolutionFilter, error) {
	for kind, n := range filterNames {
		if n == name {
			return ConvolutionFilter{kind: kind}, nil
		}
	}
	return ConvolutionFilter{}, fmt.Errorf("%w: unknown filter %q", ErrInvalidArgument, name)
}

// ParseEdgeMode maps "clip" (or "") and "legacy" to an EdgeMode.
func ParseEdgeMode(name string) (EdgeMode, error) {
	switch name {
	case "", "clip":
		return EdgeClip, nil
	case "legacy":
		return EdgeLegacy, nil
	}
	return EdgeClip, fmt.Errorf("%w: unknown edge mode %q", ErrInvalidArgument, name)
}

// FilterNames lists every filter name in sorted order.
func FilterNames() []string {
	names := make([]string, 0, len(filterNames))
	for _, n := range filterNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// WithEdge returns a copy of f using the given edge mode.
func (f ConvolutionFilter) WithEdge(edge EdgeMode) ConvolutionFilter {
	f.edge = edge
	return f
}

// Kind returns the filter kind.
func (f ConvolutionFilter) Kind() FilterKind { return f.kind }

// Edge returns the edge mode.
func (f ConvolutionFilter) Edge() EdgeMode { return f.edge }

func (f ConvolutionFilter) String() string { return filterNames[f.kind] }

// Kernel returns a copy of the filter kernel.
func (f ConvolutionFilter) Kernel() [][]float64 {
	src := f.kernel()
	k := make([][]float64, len(src))
	for i, row := range src {
		k[i] = append([]float64(nil), row...)
	}
	return k
}

func (f ConvolutionFilter) kernel() [][]float64 {
	if f.kind == Sharpen {
		return sharpenKernel
	}
	return blurKernel
}

// inside reports whether (r, c) may contribute to a window.
func (f ConvolutionFilter) inside(r, c, height, width int) bool {
	if f.edge == EdgeLegacy {
		return r > 0 && r < height && c > 0 && c < width
	}
	return r >= 0 && r < height && c >= 0 && c < width
}

// At computes the unclamped filter output for the pixel at (row, col).
//
// Each channel is the float sum of kernel weight times neighbor channel
// over the neighbors that lie inside the window, truncated toward zero.
func (f ConvolutionFilter) At(src *Buffer, row, col int) Pixel {
	kernel := f.kernel()
	rng := (len(kernel) - 1) / 2

	var acc [3]float64
	for di := -rng; di <= rng; di++ {
		for dj := -rng; dj <= rng; dj++ {
			r, c := row+di, col+dj
			if !f.inside(r, c, src.height, src.width) {
				continue
			}
			w := kernel[di+rng][dj+rng]
			p := src.at(r, c)
			for k := 0; k < 3; k++ {
				acc[k] += w * float64(p[k])
			}
		}
	}
	return Pixel{int(acc[0]), int(acc[1]), int(acc[2])}
}

// Filter convolves every pixel of src with f and returns a new buffer named
// name. Outputs depend only on src, never on other outputs. Channels are
// clamped to the max of src.
func Filter(src *Buffer, name string, f ConvolutionFilter) *Buffer {
	pix := make([]Pixel, len(src.pix))
	for r := 0; r < src.height; r++ {
		for c := 0; c < src.width; c++ {
			pix[r*src.width+c] = ClampPixel(f.At(src, r, c), src.max)
		}
	}
	return newBufferFrom(name, src.height, src.width, src.max, pix)
}
