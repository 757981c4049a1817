package imaging

import "fmt"

// FlipAxis selects the mirror direction of Flip.
type FlipAxis int

const (
	// FlipHorizontal mirrors the image left to right (columns reversed).
	FlipHorizontal FlipAxis = iota

	// FlipVertical mirrors the image top to bottom (rows reversed).
	FlipVertical
)

func (a FlipAxis) String() string {
	if a == FlipVertical {
		return "vertical"
	}
	return "horizontal"
}

// ParseFlipAxis maps "horizontal" and "vertical" to a FlipAxis.
func ParseFlipAxis(name string) (FlipAxis, error) {
	switch name {
	case "horizontal", "horizontal-flip":
		return FlipHorizontal, nil
	case "vertical", "vertical-flip":
		return FlipVertical, nil
	}
	return FlipHorizontal, fmt.Errorf("%w: unknown flip axis %q", ErrInvalidArgument, name)
}

// Brighten adds delta to every channel of every pixel, clamped to the max of
// src.
func Brighten(src *Buffer, name string, delta int) *Buffer {
	return src.mapPixels(name, func(p Pixel) Pixel {
		return Pixel{p[0] + delta, p[1] + delta, p[2] + delta}
	})
}

// Flip mirrors src across the given axis.
func Flip(src *Buffer, name string, axis FlipAxis) *Buffer {
	h, w := src.height, src.width
	pix := make([]Pixel, len(src.pix))
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			if axis == FlipVertical {
				pix[(h-1-r)*w+c] = src.at(r, c)
			} else {
				pix[r*w+(w-1-c)] = src.at(r, c)
			}
		}
	}
	return newBufferFrom(name, h, w, src.max, pix)
}
