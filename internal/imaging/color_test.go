package imaging

import (
	"errors"
	"testing"
)

// createPatternBuffer creates a buffer with a different color in each
// quadrant: red, green, blue, white
func createPatternBuffer(t *testing.T, height, width int) *Buffer {
	t.Helper()
	grid := make([][]Pixel, height)
	for r := range grid {
		grid[r] = make([]Pixel, width)
		for c := range grid[r] {
			switch {
			case r < height/2 && c < width/2:
				grid[r][c] = Pixel{255, 0, 0} // Red top-left
			case r < height/2:
				grid[r][c] = Pixel{0, 255, 0} // Green top-right
			case c < width/2:
				grid[r][c] = Pixel{0, 0, 255} // Blue bottom-left
			default:
				grid[r][c] = Pixel{255, 255, 255} // White bottom-right
			}
		}
	}
	return mustBuffer(t, "pattern", grid, 255)
}

func TestSampleColor(t *testing.T) {
	b := mustBuffer(t, "img", uniformGrid(10, 10, Pixel{255, 128, 64}), 255)

	result, err := SampleColor(b, 5, 5)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}

	// Check hex
	if result.Hex != "#FF8040" {
		t.Errorf("Hex: got %s, want #FF8040", result.Hex)
	}

	// Check RGB
	if result.RGB != (RGBColor{R: 255, G: 128, B: 64}) {
		t.Errorf("RGB: got %+v, want (255,128,64)", result.RGB)
	}

	// Orange: hue around 20 degrees, fully saturated
	if result.HSL.H < 15 || result.HSL.H > 25 {
		t.Errorf("HSL.H: got %d, want ~20", result.HSL.H)
	}
	if result.HSL.S < 95 {
		t.Errorf("HSL.S: got %d, want ~100", result.HSL.S)
	}
}

func TestSampleColor_Grey(t *testing.T) {
	b := mustBuffer(t, "img", uniformGrid(1, 1, Pixel{128, 128, 128}), 255)

	result, err := SampleColor(b, 0, 0)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}
	if result.HSL.H != 0 || result.HSL.S != 0 {
		t.Errorf("grey should have no hue or saturation: got %+v", result.HSL)
	}
}

func TestSampleColor_NormalizesByMax(t *testing.T) {
	b := mustBuffer(t, "img", uniformGrid(1, 1, Pixel{100, 0, 50}), 100)

	result, err := SampleColor(b, 0, 0)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}
	if result.Hex != "#FF0080" {
		t.Errorf("Hex: got %s, want #FF0080", result.Hex)
	}
	if result.RGB != (RGBColor{R: 100, G: 0, B: 50}) {
		t.Errorf("RGB should keep stored values: got %+v", result.RGB)
	}
}

func TestSampleColor_OutOfBounds(t *testing.T) {
	b := mustBuffer(t, "img", uniformGrid(10, 10, Pixel{}), 255)

	tests := []struct {
		name string
		r, c int
	}{
		{"negative row", -1, 5},
		{"negative col", 5, -1},
		{"row too large", 10, 5},
		{"col too large", 5, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SampleColor(b, tt.r, tt.c); !errors.Is(err, ErrOutOfRange) {
				t.Errorf("got %v, want ErrOutOfRange", err)
			}
		})
	}
}

func TestDominantColors(t *testing.T) {
	b := createPatternBuffer(t, 10, 10)

	result, err := DominantColors(b, 3)
	if err != nil {
		t.Fatalf("DominantColors failed: %v", err)
	}

	if result.Distinct != 4 {
		t.Errorf("Distinct: got %d, want 4", result.Distinct)
	}
	if len(result.Colors) != 3 {
		t.Fatalf("Colors: got %d, want 3", len(result.Colors))
	}

	// Equal counts are ordered by channel values.
	wantHex := []string{"#0000FF", "#00FF00", "#FF0000"}
	for i, c := range result.Colors {
		if c.Hex != wantHex[i] {
			t.Errorf("Colors[%d].Hex: got %s, want %s", i, c.Hex, wantHex[i])
		}
		if c.Pixels != 25 {
			t.Errorf("Colors[%d].Pixels: got %d, want 25", i, c.Pixels)
		}
		if c.Percentage != 25 {
			t.Errorf("Colors[%d].Percentage: got %v, want 25", i, c.Percentage)
		}
	}
}

func TestDominantColors_MostFrequentFirst(t *testing.T) {
	grid := uniformGrid(3, 3, Pixel{10, 10, 10})
	grid[0][0] = Pixel{200, 0, 0}

	result, err := DominantColors(mustBuffer(t, "img", grid, 255), 10)
	if err != nil {
		t.Fatalf("DominantColors failed: %v", err)
	}
	if len(result.Colors) != 2 {
		t.Fatalf("Colors: got %d, want 2", len(result.Colors))
	}
	if result.Colors[0].Pixels != 8 || result.Colors[1].Pixels != 1 {
		t.Errorf("order: got %d then %d", result.Colors[0].Pixels, result.Colors[1].Pixels)
	}
}

func TestDominantColors_InvalidCount(t *testing.T) {
	b := mustBuffer(t, "img", uniformGrid(2, 2, Pixel{}), 255)

	if _, err := DominantColors(b, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got %v, want ErrInvalidArgument", err)
	}
}
