package codec

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	pimg "github.com/ironsheep/photo-edit-mcp/internal/imaging"
)

// ReadPPM parses a plain ("P3") PPM image into a buffer named name,
// keeping the file's max value. Text from '#' to the end of a line is a
// comment.
func ReadPPM(r io.Reader, name string) (*pimg.Buffer, error) {
	// Lines are read whole, whatever their length, so files that put every
	// sample on one line still parse.
	var tokens []string
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		tokens = append(tokens, strings.Fields(line)...)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read PPM: %w", err)
		}
	}

	if len(tokens) == 0 || tokens[0] != "P3" {
		return nil, fmt.Errorf("invalid PPM file: plain file should begin with P3")
	}
	if len(tokens) < 4 {
		return nil, fmt.Errorf("invalid PPM file: truncated header")
	}

	header := make([]int, 3)
	for i := range header {
		v, err := strconv.Atoi(tokens[i+1])
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("invalid PPM header value %q", tokens[i+1])
		}
		header[i] = v
	}
	width, height, maxValue := header[0], header[1], header[2]
	if maxValue > pimg.MaxValue {
		return nil, fmt.Errorf("invalid PPM file: max value %d above %d", maxValue, pimg.MaxValue)
	}

	// Compare against the samples present before multiplying, so huge
	// dimensions cannot overflow or drive the allocations below.
	samples := tokens[4:]
	pixels := len(samples) / 3
	if height > pixels || width > pixels/height {
		return nil, fmt.Errorf("invalid PPM file: %dx%d image but only %d samples", width, height, len(samples))
	}

	grid := make([][]pimg.Pixel, height)
	for y := range grid {
		row := make([]pimg.Pixel, width)
		for x := range row {
			for k := 0; k < 3; k++ {
				tok := samples[(y*width+x)*3+k]
				v, err := strconv.Atoi(tok)
				if err != nil {
					return nil, fmt.Errorf("invalid PPM sample %q at (%d,%d): %w", tok, y, x, err)
				}
				row[x][k] = v
			}
		}
		grid[y] = row
	}
	return pimg.NewBuffer(name, grid, maxValue)
}

// WritePPM writes buf as a plain PPM, one pixel per line.
func WritePPM(w io.Writer, buf *pimg.Buffer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n%d\n", buf.Width(), buf.Height(), buf.Max())
	for y := 0; y < buf.Height(); y++ {
		for x := 0; x < buf.Width(); x++ {
			p, _ := buf.PixelAt(y, x)
			fmt.Fprintf(bw, "%d %d %d\n", p[0], p[1], p[2])
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write PPM: %w", err)
	}
	return nil
}
