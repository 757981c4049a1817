package imaging

import "fmt"

// DefaultMax is the maximum channel value used when a buffer is built
// without an explicit one.
const DefaultMax = 255

// MaxValue is the largest maximum channel value a buffer may declare, the
// 16-bit netpbm limit.
const MaxValue = 65535

// Pixel is a red, green, blue triple.
//
// Channel values are not bounded by the type. Operations that produce
// pixels clamp them to [0, max] of the image they read (see Clamp).
type Pixel [3]int

// Buffer is an immutable raster image: a height x width grid of pixels plus
// the maximum channel value of the image.
//
// A Buffer never changes after construction. Every operation in this package
// builds a new Buffer, so a *Buffer can be shared freely between goroutines.
type Buffer struct {
	name   string
	height int
	width  int
	max    int
	pix    []Pixel // row-major, len == height*width
}

// NewBuffer builds a buffer from a decoded grid.
//
// Parameters:
//   - name: logical name of the image. Must not be empty.
//   - grid: rows of pixels. Must be non-empty and rectangular.
//   - max: maximum channel value. Zero selects DefaultMax.
//
// The grid is copied, so the caller may keep using its slices.
//
// # Errors
//
//   - ErrInvalidArgument if the name is empty, the grid is empty, any row
//     differs in length from the first, or max is negative or above
//     MaxValue.
func NewBuffer(name string, grid [][]Pixel, max int) (*Buffer, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty image name", ErrInvalidArgument)
	}
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, fmt.Errorf("%w: empty pixel grid for %q", ErrInvalidArgument, name)
	}
	if max < 0 || max > MaxValue {
		return nil, fmt.Errorf("%w: max value %d outside [0,%d]", ErrInvalidArgument, max, MaxValue)
	}
	if max == 0 {
		max = DefaultMax
	}

	height, width := len(grid), len(grid[0])
	pix := make([]Pixel, 0, height*width)
	for r, row := range grid {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d pixels, want %d", ErrInvalidArgument, r, len(row), width)
		}
		pix = append(pix, row...)
	}

	return &Buffer{name: name, height: height, width: width, max: max, pix: pix}, nil
}

// newBufferFrom wraps an already-owned pixel slice. Used by operations that
// compute a fresh slice and need no validation.
func newBufferFrom(name string, height, width, max int, pix []Pixel) *Buffer {
	return &Buffer{name: name, height: height, width: width, max: max, pix: pix}
}

// Name returns the logical name the buffer was created under.
func (b *Buffer) Name() string { return b.name }

// Height returns the number of rows.
func (b *Buffer) Height() int { return b.height }

// Width returns the number of columns.
func (b *Buffer) Width() int { return b.width }

// Max returns the maximum channel value of the image.
func (b *Buffer) Max() int { return b.max }

// PixelAt returns a copy of the pixel at row r, column c.
//
// # Errors
//
//   - ErrOutOfRange if r or c is negative or not less than the respective
//     dimension.
func (b *Buffer) PixelAt(r, c int) (Pixel, error) {
	if r < 0 || r >= b.height || c < 0 || c >= b.width {
		return Pixel{}, fmt.Errorf("%w: (%d,%d) outside %dx%d image", ErrOutOfRange, r, c, b.height, b.width)
	}
	return b.pix[r*b.width+c], nil
}

// at is the unchecked accessor used inside the package.
func (b *Buffer) at(r, c int) Pixel {
	return b.pix[r*b.width+c]
}

// Grid returns an independently owned copy of the pixel grid.
func (b *Buffer) Grid() [][]Pixel {
	grid := make([][]Pixel, b.height)
	for r := range grid {
		row := make([]Pixel, b.width)
		copy(row, b.pix[r*b.width:(r+1)*b.width])
		grid[r] = row
	}
	return grid
}

// Rename returns a copy of the buffer carrying a different name.
func (b *Buffer) Rename(name string) *Buffer {
	pix := make([]Pixel, len(b.pix))
	copy(pix, b.pix)
	return newBufferFrom(name, b.height, b.width, b.max, pix)
}

// Equal reports whether two buffers have the same dimensions, max value and
// pixels. Names are ignored.
func (b *Buffer) Equal(o *Buffer) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.height != o.height || b.width != o.width || b.max != o.max {
		return false
	}
	for i := range b.pix {
		if b.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}

// mapPixels builds a new buffer by applying fn to every pixel and clamping
// the result to the source max.
func (b *Buffer) mapPixels(name string, fn func(Pixel) Pixel) *Buffer {
	pix := make([]Pixel, len(b.pix))
	for i, p := range b.pix {
		pix[i] = ClampPixel(fn(p), b.max)
	}
	return newBufferFrom(name, b.height, b.width, b.max, pix)
}

// Clamp restricts v to [0, max].
func Clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// ClampPixel clamps every channel of p to [0, max].
func ClampPixel(p Pixel, max int) Pixel {
	return Pixel{Clamp(p[0], max), Clamp(p[1], max), Clamp(p[2], max)}
}
