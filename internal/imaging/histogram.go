package imaging

// Histogram tallies the grey level a transform assigns to every pixel.
type Histogram struct {
	// Channel is the command name of the transform that produced the levels.
	Channel string `json:"channel"`

	// Counts[v] is the number of pixels whose level is v. It has max+1
	// entries (256 for 8-bit images).
	Counts []int `json:"counts"`

	// Total is the number of pixels tallied, height*width.
	Total int `json:"total"`

	// Peak is the largest single count, used to scale plots.
	Peak int `json:"peak"`
}

// ComputeHistogram runs the channel-value accessor of t over every pixel of
// src. Levels are clamped to [0, max] before tallying.
//
// # Errors
//
//   - ErrInvalidArgument if t is not a greyscale transform.
func ComputeHistogram(src *Buffer, t ColorTransform) (*Histogram, error) {
	h := &Histogram{
		Channel: t.String(),
		Counts:  make([]int, src.max+1),
		Total:   len(src.pix),
	}
	for _, p := range src.pix {
		v, err := t.ChannelValue(p)
		if err != nil {
			return nil, err
		}
		v = Clamp(v, src.max)
		h.Counts[v]++
		if h.Counts[v] > h.Peak {
			h.Peak = h.Counts[v]
		}
	}
	return h, nil
}
