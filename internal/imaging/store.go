package imaging

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"
)

// Edit is one entry of the store's append-only history.
type Edit struct {
	Op     string    `json:"op"`
	Source string    `json:"source,omitempty"`
	Dest   string    `json:"dest"`
	Params string    `json:"params,omitempty"`
	At     time.Time `json:"at"`
}

// Store holds named images and the history of edits applied to them.
//
// Every operation reads one image by name, computes a brand-new buffer, and
// stores it under a destination name, replacing whatever was there.
// Operations that fail leave both the images and the history untouched.
//
// Store is safe for concurrent use by multiple goroutines. Buffers are
// immutable, so the lock is only held to look an image up or to insert a
// finished result; computation runs unlocked.
//
// # Example Usage
//
//	store := imaging.NewStore()
//	_ = store.LoadGrid("koala", grid, 255)
//	sepia, _ := imaging.NewTransform(imaging.Sepia)
//	if _, err := store.ApplyTransform("koala", "koala-sepia", sepia); err != nil {
//	    log.Fatal(err)
//	}
type Store struct {
	mu        sync.RWMutex
	images    map[string]*Buffer
	history   []Edit
	segmenter *Segmenter
	now       func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithSegmenter sets the segmenter used by ApplyMosaic.
func WithSegmenter(s *Segmenter) StoreOption {
	return func(st *Store) { st.segmenter = s }
}

// WithClock sets the time source used to stamp history entries.
func WithClock(now func() time.Time) StoreOption {
	return func(st *Store) { st.now = now }
}

// NewStore creates and initializes a new empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		images: make(map[string]*Buffer),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.segmenter == nil {
		s.segmenter = NewSegmenter()
	}
	return s
}

// Load adds buf under its own name, replacing any image with that name.
func (s *Store) Load(buf *Buffer) error {
	if buf == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidArgument)
	}
	s.put(buf, Edit{Op: "load", Dest: buf.name})
	return nil
}

// LoadGrid builds a buffer from a decoded grid and adds it under name. A max
// of zero selects DefaultMax.
func (s *Store) LoadGrid(name string, grid [][]Pixel, max int) error {
	buf, err := NewBuffer(name, grid, max)
	if err != nil {
		return err
	}
	return s.Load(buf)
}

// Get returns the image stored under name. The returned buffer is immutable.
//
// # Errors
//
//   - ErrNotFound if no image has that name.
func (s *Store) Get(name string) (*Buffer, error) {
	s.mu.RLock()
	buf, ok := s.images[name]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return buf, nil
}

// Export returns a copy of the grid and the max value of the image stored
// under name, ready to be handed to an encoder.
func (s *Store) Export(name string) ([][]Pixel, int, error) {
	buf, err := s.Get(name)
	if err != nil {
		return nil, 0, err
	}
	return buf.Grid(), buf.max, nil
}

// ImageInfo describes a stored image without its pixels.
type ImageInfo struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Max    int    `json:"max"`
}

// Info returns the dimensions and max value of the image stored under name.
func (s *Store) Info(name string) (*ImageInfo, error) {
	buf, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	return buf.Info(), nil
}

// Info describes the buffer without its pixels.
func (b *Buffer) Info() *ImageInfo {
	return &ImageInfo{Name: b.name, Width: b.width, Height: b.height, Max: b.max}
}

// IsEmpty reports whether the store holds no images.
func (s *Store) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.images) == 0
}

// Names returns the names of all stored images in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	names := make([]string, 0, len(s.images))
	for name := range s.images {
		names = append(names, name)
	}
	s.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Evict removes the image stored under name. Missing names are ignored.
func (s *Store) Evict(name string) {
	s.mu.Lock()
	delete(s.images, name)
	s.mu.Unlock()
}

// Clear removes every image. The history is kept.
func (s *Store) Clear() {
	s.mu.Lock()
	s.images = make(map[string]*Buffer)
	s.mu.Unlock()
}

// History returns a copy of the edit history, oldest first.
func (s *Store) History() []Edit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Edit, len(s.history))
	copy(out, s.history)
	return out
}

// ApplyTransform stores the result of t applied to src under dst and
// describes the stored image.
func (s *Store) ApplyTransform(src, dst string, t ColorTransform) (*ImageInfo, error) {
	return s.apply("transform", src, dst, t.String(), func(buf *Buffer) (*Buffer, error) {
		return Transform(buf, dst, t), nil
	})
}

// ApplyFilter stores the result of f applied to src under dst.
func (s *Store) ApplyFilter(src, dst string, f ConvolutionFilter) (*ImageInfo, error) {
	params := f.String()
	if f.Edge() == EdgeLegacy {
		params += " edge=legacy"
	}
	return s.apply("filter", src, dst, params, func(buf *Buffer) (*Buffer, error) {
		return Filter(buf, dst, f), nil
	})
}

// ApplyMosaic stores a mosaic of src with seedCount regions under dst.
//
// # Errors
//
//   - ErrInvalidArgument if seedCount is not positive.
//   - ErrNotFound if src does not exist.
//   - ErrSeedPlacementFailed if the seeds do not fit the image.
func (s *Store) ApplyMosaic(src, dst string, seedCount int) (*ImageInfo, error) {
	if seedCount <= 0 {
		return nil, fmt.Errorf("%w: seed count must be positive, got %d", ErrInvalidArgument, seedCount)
	}
	return s.apply("mosaic", src, dst, "seeds="+strconv.Itoa(seedCount), func(buf *Buffer) (*Buffer, error) {
		return s.segmenter.Mosaic(buf, dst, seedCount)
	})
}

// AdjustBrightness stores src with delta added to every channel under dst.
func (s *Store) AdjustBrightness(src, dst string, delta int) (*ImageInfo, error) {
	return s.apply("brightness", src, dst, "delta="+strconv.Itoa(delta), func(buf *Buffer) (*Buffer, error) {
		return Brighten(buf, dst, delta), nil
	})
}

// Flip stores src mirrored across axis under dst.
func (s *Store) Flip(src, dst string, axis FlipAxis) (*ImageInfo, error) {
	return s.apply("flip", src, dst, axis.String(), func(buf *Buffer) (*Buffer, error) {
		return Flip(buf, dst, axis), nil
	})
}

// Histogram tallies the levels t assigns to the image stored under name.
func (s *Store) Histogram(name string, t ColorTransform) (*Histogram, error) {
	buf, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	return ComputeHistogram(buf, t)
}

// SampleColor returns the color at (r, c) of the image stored under name.
func (s *Store) SampleColor(name string, r, c int) (*ColorResult, error) {
	buf, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	return SampleColor(buf, r, c)
}

// DominantColors returns the most frequent colors of the image stored under
// name.
func (s *Store) DominantColors(name string, count int) (*DominantColorsResult, error) {
	buf, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	return DominantColors(buf, count)
}

// apply runs op on the image named src and stores the result under dst.
// The returned info describes the buffer that was stored, even if another
// caller replaces dst right after.
func (s *Store) apply(op, src, dst, params string, fn func(*Buffer) (*Buffer, error)) (*ImageInfo, error) {
	if dst == "" {
		return nil, fmt.Errorf("%w: empty destination name", ErrInvalidArgument)
	}
	buf, err := s.Get(src)
	if err != nil {
		return nil, err
	}
	out, err := fn(buf)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", op, src, err)
	}
	s.put(out, Edit{Op: op, Source: src, Dest: dst, Params: params})
	return out.Info(), nil
}

func (s *Store) put(buf *Buffer, e Edit) {
	e.At = s.now()
	s.mu.Lock()
	s.images[buf.name] = buf
	s.history = append(s.history, e)
	s.mu.Unlock()
}
