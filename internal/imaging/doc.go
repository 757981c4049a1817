// Package imaging provides the editing engine behind the MCP server.
//
// Images are held as immutable Buffers: a grid of integer RGB pixels plus
// the image's maximum channel value. Every operation reads a buffer and
// builds a new one, so buffers can be shared between goroutines without
// copying. The Store keeps buffers under names and records each edit.
//
// # Coordinate System
//
// Pixels are addressed as (row, column), both 0-based:
//   - row 0 is the top row
//   - column 0 is the leftmost column
//
// # Operations
//
//   - Transform: per-pixel color matrices (red/green/blue/value/intensity/
//     luma components and sepia)
//   - Filter: 3x3 Gaussian blur and 5x5 sharpen convolutions
//   - Brighten and Flip: channel offset and mirroring
//   - Segmenter.Mosaic: random seeds, Manhattan clustering, mean fill
//   - ComputeHistogram, SampleColor, DominantColors: read-only analysis
//
// # Clamping
//
// Every channel an operation writes is clamped to [0, max] of the source
// buffer. Buffers built directly with NewBuffer are not clamped, so input
// values are kept as given until the first edit.
//
// # Error Handling
//
// Errors wrap one of the sentinels in errors.go (ErrNotFound, ErrOutOfRange,
// ErrInvalidArgument, ErrSeedPlacementFailed). Use errors.Is to test them.
package imaging
