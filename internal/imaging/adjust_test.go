package imaging

import (
	"errors"
	"testing"
)

func TestBrighten(t *testing.T) {
	src := mustBuffer(t, "src", [][]Pixel{
		{{255, 63, 63}, {255, 62, 62}, {250, 59, 132}},
		{{240, 58, 220}, {210, 78, 251}, {253, 62, 75}},
	}, 255)

	out := Brighten(src, "bright", 10)

	want := mustBuffer(t, "want", [][]Pixel{
		{{255, 73, 73}, {255, 72, 72}, {255, 69, 142}},
		{{250, 68, 230}, {220, 88, 255}, {255, 72, 85}},
	}, 255)
	if !out.Equal(want) {
		t.Errorf("got %v, want %v", out.Grid(), want.Grid())
	}
	if p, _ := src.PixelAt(0, 2); p != (Pixel{250, 59, 132}) {
		t.Errorf("source modified: got %v", p)
	}
}

func TestBrighten_Darken(t *testing.T) {
	src := mustBuffer(t, "src", [][]Pixel{{{5, 50, 200}}}, 255)

	out := Brighten(src, "dark", -20)

	if p, _ := out.PixelAt(0, 0); p != (Pixel{0, 30, 180}) {
		t.Errorf("got %v, want [0 30 180]", p)
	}
}

func TestFlip(t *testing.T) {
	src := mustBuffer(t, "src", [][]Pixel{
		{{1, 1, 1}, {2, 2, 2}, {3, 3, 3}},
		{{4, 4, 4}, {5, 5, 5}, {6, 6, 6}},
	}, 255)

	h := Flip(src, "h", FlipHorizontal)
	wantH := mustBuffer(t, "wh", [][]Pixel{
		{{3, 3, 3}, {2, 2, 2}, {1, 1, 1}},
		{{6, 6, 6}, {5, 5, 5}, {4, 4, 4}},
	}, 255)
	if !h.Equal(wantH) {
		t.Errorf("horizontal: got %v", h.Grid())
	}

	v := Flip(src, "v", FlipVertical)
	wantV := mustBuffer(t, "wv", [][]Pixel{
		{{4, 4, 4}, {5, 5, 5}, {6, 6, 6}},
		{{1, 1, 1}, {2, 2, 2}, {3, 3, 3}},
	}, 255)
	if !v.Equal(wantV) {
		t.Errorf("vertical: got %v", v.Grid())
	}
}

func TestFlip_TwiceIsIdentity(t *testing.T) {
	grid := [][]Pixel{
		{{10, 20, 30}, {40, 50, 60}},
		{{70, 80, 90}, {100, 110, 120}},
		{{130, 140, 150}, {160, 170, 180}},
	}
	src := mustBuffer(t, "src", grid, 255)

	for _, axis := range []FlipAxis{FlipHorizontal, FlipVertical} {
		if out := Flip(Flip(src, "once", axis), "twice", axis); !out.Equal(src) {
			t.Errorf("%s flip twice: got %v", axis, out.Grid())
		}
	}
}

func TestParseFlipAxis(t *testing.T) {
	tests := map[string]FlipAxis{
		"horizontal":      FlipHorizontal,
		"horizontal-flip": FlipHorizontal,
		"vertical":        FlipVertical,
		"vertical-flip":   FlipVertical,
	}
	for name, want := range tests {
		got, err := ParseFlipAxis(name)
		if err != nil || got != want {
			t.Errorf("ParseFlipAxis(%q): got %v, %v", name, got, err)
		}
	}
	if _, err := ParseFlipAxis("diagonal"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got %v, want ErrInvalidArgument", err)
	}
}
