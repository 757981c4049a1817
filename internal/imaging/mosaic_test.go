package imaging

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSegmenter(opts ...SegmenterOption) *Segmenter {
	opts = append([]SegmenterOption{WithRand(rand.New(rand.NewPCG(1, 2)))}, opts...)
	return NewSegmenter(opts...)
}

// gradientBuffer creates an image whose pixels are all distinct
func gradientBuffer(t *testing.T, height, width int) *Buffer {
	t.Helper()
	grid := make([][]Pixel, height)
	for r := range grid {
		grid[r] = make([]Pixel, width)
		for c := range grid[r] {
			grid[r][c] = Pixel{r * 255 / height, c * 255 / width, (r + c) % 256}
		}
	}
	return mustBuffer(t, "gradient", grid, 255)
}

func TestPlaceSeeds_Quadrants(t *testing.T) {
	s := newTestSegmenter()

	seeds, err := s.PlaceSeeds(20, 40, 8)
	require.NoError(t, err)
	require.Len(t, seeds, 8)

	// Two seeds per quadrant, in quadrant order.
	inQuadrant := func(sd Seed, q int) bool {
		top := sd.Row < 10
		left := sd.Col < 20
		switch q {
		case 0:
			return top && left
		case 1:
			return top && !left
		case 2:
			return !top && left
		default:
			return !top && !left
		}
	}
	for i, sd := range seeds {
		assert.True(t, inQuadrant(sd, i/2), "seed %d %+v not in quadrant %d", i, sd, i/2)
	}

	// Seeds in the same quadrant keep the minimum distance.
	minDist := (20+40)/8 + 1
	for q := 0; q < 4; q++ {
		a, b := seeds[2*q], seeds[2*q+1]
		dr, dc := a.Row-b.Row, a.Col-b.Col
		assert.GreaterOrEqual(t, dr*dr+dc*dc, minDist*minDist, "quadrant %d", q)
	}
}

func TestPlaceSeeds_RemainderGoesLast(t *testing.T) {
	s := newTestSegmenter()

	seeds, err := s.PlaceSeeds(100, 100, 3)
	require.NoError(t, err)
	require.Len(t, seeds, 3)

	// Targets are 0, 1, 2, 3: top-right, bottom-left and bottom-right get
	// one seed each.
	assert.True(t, seeds[0].Row < 50 && seeds[0].Col >= 50, "seed 0 %+v", seeds[0])
	assert.True(t, seeds[1].Row >= 50 && seeds[1].Col < 50, "seed 1 %+v", seeds[1])
	assert.True(t, seeds[2].Row >= 50 && seeds[2].Col >= 50, "seed 2 %+v", seeds[2])
}

func TestPlaceSeeds_Deterministic(t *testing.T) {
	a, err := newTestSegmenter().PlaceSeeds(64, 48, 12)
	require.NoError(t, err)
	b, err := newTestSegmenter().PlaceSeeds(64, 48, 12)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestPlaceSeeds_Errors(t *testing.T) {
	s := newTestSegmenter(WithMaxAttempts(10))

	_, err := s.PlaceSeeds(10, 10, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.PlaceSeeds(10, 10, -3)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.PlaceSeeds(0, 10, 4)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// Each quadrant of a 2x2 image is a single pixel, so a second seed in
	// the same quadrant can never be far enough away.
	_, err = s.PlaceSeeds(2, 2, 100)
	assert.ErrorIs(t, err, ErrSeedPlacementFailed)

	// Two seeds in a 2x2 quadrant need a distance of 2, but the quadrant
	// diagonal is only sqrt(2), so the attempt budget runs out.
	_, err = s.PlaceSeeds(4, 4, 8)
	assert.ErrorIs(t, err, ErrSeedPlacementFailed)
}

func TestPlaceSeeds_HugeCount(t *testing.T) {
	s := newTestSegmenter(WithMaxAttempts(10))

	for _, count := range []int{101, 1 << 40, math.MaxInt} {
		seeds, err := s.PlaceSeeds(10, 10, count)
		assert.ErrorIs(t, err, ErrSeedPlacementFailed, "count=%d", count)
		assert.Nil(t, seeds)
	}

	// A 3x3 image has 1x1 quadrants: nine seeds fit the image but the
	// first quadrant would need two.
	_, err := s.PlaceSeeds(3, 3, 9)
	assert.ErrorIs(t, err, ErrSeedPlacementFailed)

	_, err = s.PlaceSeeds(math.MaxInt/2, math.MaxInt/2, 1<<40)
	assert.ErrorIs(t, err, ErrSeedPlacementFailed)
}

func TestThreeQuarters(t *testing.T) {
	for n := 0; n < 100; n++ {
		assert.Equal(t, 3*n/4, threeQuarters(n), "n=%d", n)
	}
	assert.Equal(t, math.MaxInt/4*3+2, threeQuarters(math.MaxInt))
}

func TestPlaceSeeds_SinglePixel(t *testing.T) {
	seeds, err := newTestSegmenter().PlaceSeeds(1, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []Seed{{Row: 0, Col: 0}}, seeds)
}

func TestCluster_TieGoesToFirstSeed(t *testing.T) {
	seeds := []Seed{{Row: 0, Col: 0}, {Row: 0, Col: 2}}

	seg := Cluster(1, 3, seeds)

	assert.Equal(t, []int{0, 0, 1}, seg.Assign)
	assert.Equal(t, []int{2, 1}, seg.Sizes)
}

func TestCluster_Manhattan(t *testing.T) {
	// (3,3) is 6 from (0,0) and 5 from (3,8) by Manhattan distance.
	// Euclidean distance would pick (0,0) instead (4.24 vs 5).
	seeds := []Seed{{Row: 0, Col: 0}, {Row: 3, Col: 8}}

	seg := Cluster(4, 9, seeds)

	assert.Equal(t, 1, seg.Assign[3*9+3])
}

func TestSegmentationMosaic_MeanColors(t *testing.T) {
	src := gradientBuffer(t, 30, 40)
	s := newTestSegmenter()

	seg, err := s.Segment(src, 6)
	require.NoError(t, err)
	out := seg.Mosaic(src, "mosaic")

	assert.Equal(t, "mosaic", out.Name())
	assert.Equal(t, src.Height(), out.Height())
	assert.Equal(t, src.Width(), out.Width())

	var sums [6][3]int
	for i, p := range src.pix {
		for k := 0; k < 3; k++ {
			sums[seg.Assign[i]][k] += p[k]
		}
	}
	for i, p := range out.pix {
		cl := seg.Assign[i]
		n := seg.Sizes[cl]
		want := Pixel{sums[cl][0] / n, sums[cl][1] / n, sums[cl][2] / n}
		require.Equal(t, want, p, "pixel %d in cluster %d", i, cl)
	}
}

func TestSegmenterMosaic_DistinctColors(t *testing.T) {
	src := gradientBuffer(t, 50, 50)

	for _, n := range []int{1, 4, 7, 16} {
		out, err := newTestSegmenter().Mosaic(src, "m", n)
		require.NoError(t, err, "n=%d", n)

		colors := make(map[Pixel]bool)
		for _, p := range out.pix {
			colors[p] = true
		}
		assert.LessOrEqual(t, len(colors), n, "n=%d", n)
		assertClamped(t, out)
	}
}

func TestSegmenterMosaic_UniformImage(t *testing.T) {
	src := mustBuffer(t, "flat", uniformGrid(8, 8, Pixel{12, 34, 56}), 255)

	out, err := newTestSegmenter().Mosaic(src, "m", 4)
	require.NoError(t, err)

	assert.True(t, out.Equal(src))
}

func TestSegmenterMosaic_SinglePixel(t *testing.T) {
	src := mustBuffer(t, "dot", [][]Pixel{{{9, 8, 7}}}, 255)

	out, err := newTestSegmenter().Mosaic(src, "m", 1)
	require.NoError(t, err)

	assert.True(t, out.Equal(src))
}

func TestWithMaxAttempts_IgnoresNonPositive(t *testing.T) {
	s := NewSegmenter(WithMaxAttempts(0), WithMaxAttempts(-5))
	assert.Equal(t, DefaultMaxAttempts, s.maxAttempts)

	s = NewSegmenter(WithMaxAttempts(25))
	assert.Equal(t, 25, s.maxAttempts)
}
