package imaging

import (
	"fmt"
	"sort"
)

// TransformKind identifies one of the fixed per-pixel color transforms.
type TransformKind int

const (
	RedComponent TransformKind = iota
	GreenComponent
	BlueComponent
	ValueComponent
	IntensityComponent
	LumaComponent
	Sepia
)

// transformStrategy selects how a transform computes its output.
type transformStrategy int

const (
	strategyMatrix transformStrategy = iota
	strategyIntensity
	strategyValue
)

type transformSpec struct {
	name     string
	strategy transformStrategy
	matrix   [3][3]float64
	grey     bool
}

var lumaRow = [3]float64{0.2126, 0.7152, 0.0722}

var transformSpecs = map[TransformKind]transformSpec{
	RedComponent: {
		name:   "red-component",
		matrix: [3][3]float64{{1, 0, 0}, {1, 0, 0}, {1, 0, 0}},
		grey:   true,
	},
	GreenComponent: {
		name:   "green-component",
		matrix: [3][3]float64{{0, 1, 0}, {0, 1, 0}, {0, 1, 0}},
		grey:   true,
	},
	BlueComponent: {
		name:   "blue-component",
		matrix: [3][3]float64{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		grey:   true,
	},
	ValueComponent: {
		name:     "value-component",
		strategy: strategyValue,
		grey:     true,
	},
	IntensityComponent: {
		name:     "intensity-component",
		strategy: strategyIntensity,
		grey:     true,
	},
	LumaComponent: {
		name:   "luma-component",
		matrix: [3][3]float64{lumaRow, lumaRow, lumaRow},
		grey:   true,
	},
	Sepia: {
		name: "sepia",
		matrix: [3][3]float64{
			{0.393, 0.769, 0.189},
			{0.349, 0.686, 0.168},
			{0.272, 0.534, 0.131},
		},
	},
}

// ColorTransform is a per-pixel color mapping. The zero value is the
// red-component transform; build others with NewTransform or
// ParseTransform.
type ColorTransform struct {
	kind TransformKind
}

// NewTransform returns the transform of the given kind.
func NewTransform(kind TransformKind) (ColorTransform, error) {
	if _, ok := transformSpecs[kind]; !ok {
		return ColorTransform{}, fmt.Errorf("%w: unknown transform kind %d", ErrInvalidArgument, kind)
	}
	return ColorTransform{kind: kind}, nil
}

// ParseTransform looks a transform up by its command name, for example
// "luma-component" or "sepia".
func ParseTransform(name string) (ColorTransform, error) {
	for kind, spec := range transformSpecs {
		if spec.name == name {
			return ColorTransform{kind: kind}, nil
		}
	}
	return ColorTransform{}, fmt.Errorf("%w: unknown transform %q", ErrInvalidArgument, name)
}

// TransformNames lists every transform command name in sorted order.
func TransformNames() []string {
	names := make([]string, 0, len(transformSpecs))
	for _, spec := range transformSpecs {
		names = append(names, spec.name)
	}
	sort.Strings(names)
	return names
}

// Kind returns the transform kind.
func (t ColorTransform) Kind() TransformKind { return t.kind }

// String returns the command name of the transform.
func (t ColorTransform) String() string { return transformSpecs[t.kind].name }

// Greyscale reports whether the transform produces identical channels and
// so supports ChannelValue.
func (t ColorTransform) Greyscale() bool { return transformSpecs[t.kind].grey }

// Apply maps a single pixel. The result is not clamped.
//
// Matrix transforms compute each output channel as the dot product of a
// matrix row with the input, truncated toward zero. Intensity divides the
// channel sum by three with integer division; value takes the largest
// channel.
func (t ColorTransform) Apply(p Pixel) Pixel {
	spec := transformSpecs[t.kind]
	switch spec.strategy {
	case strategyIntensity:
		v := (p[0] + p[1] + p[2]) / 3
		return Pixel{v, v, v}
	case strategyValue:
		v := max(p[0], p[1], p[2])
		return Pixel{v, v, v}
	default:
		var out Pixel
		for k, row := range spec.matrix {
			out[k] = int(row[0]*float64(p[0]) + row[1]*float64(p[1]) + row[2]*float64(p[2]))
		}
		return out
	}
}

// ChannelValue returns the single grey level the transform assigns to p.
// It is what histograms tally.
//
// # Errors
//
//   - ErrInvalidArgument for transforms that are not greyscale (sepia).
func (t ColorTransform) ChannelValue(p Pixel) (int, error) {
	if !t.Greyscale() {
		return 0, fmt.Errorf("%w: %s has no single channel value", ErrInvalidArgument, t)
	}
	return t.Apply(p)[0], nil
}

// Transform applies t to every pixel of src and returns a new buffer named
// name. Channels are clamped to the max of src.
func Transform(src *Buffer, name string, t ColorTransform) *Buffer {
	return src.mapPixels(name, t.Apply)
}
