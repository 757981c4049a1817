package imaging

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

// DefaultMaxAttempts is the number of random draws a Segmenter may spend on
// a single seed before giving up.
const DefaultMaxAttempts = 10000

// maxPrealloc caps the seed slice capacity reserved up front.
const maxPrealloc = 4096

// Seed is the anchor coordinate of one mosaic region.
type Seed struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Segmentation is the result of clustering an image around a set of seeds.
type Segmentation struct {
	// Seeds in generation order: quadrant by quadrant (top-left, top-right,
	// bottom-left, bottom-right), and by acceptance within a quadrant.
	Seeds []Seed

	// Assign holds, for every pixel in row-major order, the index into
	// Seeds of the nearest seed.
	Assign []int

	// Sizes holds the number of pixels assigned to each seed.
	Sizes []int
}

// Segmenter partitions images into seed-anchored regions.
//
// A Segmenter is safe for concurrent use; draws from its random source are
// serialized.
type Segmenter struct {
	mu          sync.Mutex
	rng         *rand.Rand
	maxAttempts int
}

// SegmenterOption configures a Segmenter.
type SegmenterOption func(*Segmenter)

// WithRand sets the random source used for seed placement.
func WithRand(rng *rand.Rand) SegmenterOption {
	return func(s *Segmenter) { s.rng = rng }
}

// WithMaxAttempts sets the per-seed draw budget. Values below one are
// ignored.
func WithMaxAttempts(n int) SegmenterOption {
	return func(s *Segmenter) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// NewSegmenter creates a segmenter. Without WithRand it seeds itself from
// the clock.
func NewSegmenter(opts ...SegmenterOption) *Segmenter {
	s := &Segmenter{maxAttempts: DefaultMaxAttempts}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		now := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(now, now>>17|1))
	}
	return s
}

// quadrant is a half-open row/column window used for seed placement.
type quadrant struct {
	row0, rows int
	col0, cols int
}

// quadrants splits an image into four windows by integer-halving each
// dimension. A dimension of one pixel yields a span of one so that every
// quadrant can hold a seed.
func quadrants(height, width int) [4]quadrant {
	hh, hw := height/2, width/2
	rows, cols := max(hh, 1), max(hw, 1)
	return [4]quadrant{
		{row0: 0, rows: rows, col0: 0, cols: cols},
		{row0: 0, rows: rows, col0: hw, cols: cols},
		{row0: hh, rows: rows, col0: 0, cols: cols},
		{row0: hh, rows: rows, col0: hw, cols: cols},
	}
}

// PlaceSeeds picks count seeds for an image of the given size.
//
// Quadrants receive count/4, count/2, 3*count/4 and count seeds
// cumulatively, so any remainder lands in the bottom-right quadrant. A
// random draw is accepted only if its Euclidean distance to every seed
// already accepted in the same quadrant is at least
// (height+width)/count + 1.
//
// # Errors
//
//   - ErrInvalidArgument if count or a dimension is not positive.
//   - ErrSeedPlacementFailed if count exceeds the pixels of the image or of
//     a quadrant, or if a seed could not be placed within the attempt
//     budget.
func (s *Segmenter) PlaceSeeds(height, width, count int) ([]Seed, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: seed count must be positive, got %d", ErrInvalidArgument, count)
	}
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: image size %dx%d", ErrInvalidArgument, height, width)
	}

	// Seeds in one quadrant sit on distinct pixels, so a quadrant can never
	// take more seeds than it has pixels.
	if height > math.MaxInt/width || count > height*width {
		return nil, fmt.Errorf("%w: %d seeds do not fit a %dx%d image", ErrSeedPlacementFailed, count, height, width)
	}
	quads := quadrants(height, width)
	targets := [4]int{count / 4, count / 2, threeQuarters(count), count}
	prev := 0
	for qi, q := range quads {
		if want := targets[qi] - prev; want > q.rows*q.cols {
			return nil, fmt.Errorf("%w: quadrant %d needs %d seeds but has %d pixels", ErrSeedPlacementFailed, qi+1, want, q.rows*q.cols)
		}
		prev = targets[qi]
	}

	minDist := (height+width)/count + 1
	minDist2 := minDist * minDist

	s.mu.Lock()
	defer s.mu.Unlock()

	seeds := make([]Seed, 0, min(count, maxPrealloc))
	for qi, q := range quads {
		want := targets[qi] - len(seeds)
		placed := make([]Seed, 0, min(want, maxPrealloc))
		attempts := 0
		for len(seeds) < targets[qi] {
			if attempts >= s.maxAttempts {
				return nil, fmt.Errorf("%w: quadrant %d placed %d of %d seeds after %d attempts (min distance %d)",
					ErrSeedPlacementFailed, qi+1, len(placed), want, attempts, minDist)
			}
			attempts++

			cand := Seed{Row: q.row0 + s.rng.IntN(q.rows), Col: q.col0 + s.rng.IntN(q.cols)}
			if tooClose(cand, placed, minDist2) {
				continue
			}
			placed = append(placed, cand)
			seeds = append(seeds, cand)
			attempts = 0
		}
	}
	return seeds, nil
}

// threeQuarters returns 3*n/4 for n >= 0 without overflowing.
func threeQuarters(n int) int {
	r := n - n/4
	if n%4 != 0 {
		r--
	}
	return r
}

func tooClose(cand Seed, placed []Seed, minDist2 int) bool {
	for _, p := range placed {
		dr, dc := cand.Row-p.Row, cand.Col-p.Col
		if dr*dr+dc*dc < minDist2 {
			return true
		}
	}
	return false
}

// Cluster assigns every pixel of an image of the given size to its nearest
// seed by Manhattan distance. Ties go to the seed that comes first in seeds.
func Cluster(height, width int, seeds []Seed) *Segmentation {
	seg := &Segmentation{
		Seeds:  seeds,
		Assign: make([]int, height*width),
		Sizes:  make([]int, len(seeds)),
	}
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			best, bestDist := 0, -1
			for i, sd := range seeds {
				d := abs(r-sd.Row) + abs(c-sd.Col)
				if bestDist < 0 || d < bestDist {
					best, bestDist = i, d
				}
			}
			seg.Assign[r*width+c] = best
			seg.Sizes[best]++
		}
	}
	return seg
}

// Segment places count seeds on src and clusters its pixels around them.
func (s *Segmenter) Segment(src *Buffer, count int) (*Segmentation, error) {
	seeds, err := s.PlaceSeeds(src.height, src.width, count)
	if err != nil {
		return nil, err
	}
	return Cluster(src.height, src.width, seeds), nil
}

// Mosaic flattens every region of the segmentation to the truncated mean
// color of its original pixels and returns the result as a new buffer named
// name.
func (seg *Segmentation) Mosaic(src *Buffer, name string) *Buffer {
	sums := make([][3]int, len(seg.Seeds))
	for i, p := range src.pix {
		s := &sums[seg.Assign[i]]
		s[0] += p[0]
		s[1] += p[1]
		s[2] += p[2]
	}

	means := make([]Pixel, len(seg.Seeds))
	for i, s := range sums {
		n := seg.Sizes[i]
		if n == 0 {
			continue
		}
		means[i] = ClampPixel(Pixel{s[0] / n, s[1] / n, s[2] / n}, src.max)
	}

	pix := make([]Pixel, len(src.pix))
	for i := range pix {
		pix[i] = means[seg.Assign[i]]
	}
	return newBufferFrom(name, src.height, src.width, src.max, pix)
}

// Mosaic segments src into count regions and returns the mean-colored result
// named name.
func (s *Segmenter) Mosaic(src *Buffer, name string, count int) (*Buffer, error) {
	seg, err := s.Segment(src, count)
	if err != nil {
		return nil, err
	}
	return seg.Mosaic(src, name), nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
