package codec

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/clone"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder

	pimg "github.com/ironsheep/photo-edit-mcp/internal/imaging"
)

// Read loads the image file at path into a buffer named name.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not a valid image of a supported format
//   - Returns pimg.ErrInvalidArgument if name is empty
func Read(path, name string) (*pimg.Buffer, error) {
	if isPPM(path) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open image: %w", err)
		}
		defer f.Close()
		return ReadPPM(f, name)
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return FromImage(img, name)
}

// Write encodes buf to path. The extension selects the format.
//
// # Errors
//
//   - Returns error if the extension is not a supported format
//   - Returns error if the file cannot be created or written
func Write(path string, buf *pimg.Buffer) error {
	if isPPM(path) {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create image: %w", err)
		}
		if err := WritePPM(f, buf); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}

	if _, err := imaging.FormatFromFilename(path); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	if err := imaging.Save(ToImage(buf), path); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}

// EncodeBase64PNG encodes buf as a PNG and returns it base64 encoded.
func EncodeBase64PNG(buf *pimg.Buffer) (string, error) {
	var out bytes.Buffer
	if err := imaging.Encode(&out, ToImage(buf), imaging.PNG); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(out.Bytes()), nil
}

// FromImage converts a decoded image to a buffer with a max of 255.
//
// Opaque images are converted with bild's RGBA clone. Images with
// transparency are converted to non-premultiplied NRGBA first so that the
// stored color channels are not darkened by their alpha.
func FromImage(img image.Image, name string) (*pimg.Buffer, error) {
	var (
		pix    []uint8
		stride int
		bounds = img.Bounds()
	)
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		rgba := clone.AsRGBA(img)
		pix, stride = rgba.Pix, rgba.Stride
	} else {
		nrgba := imaging.Clone(img)
		pix, stride = nrgba.Pix, nrgba.Stride
	}

	grid := make([][]pimg.Pixel, bounds.Dy())
	for y := range grid {
		row := make([]pimg.Pixel, bounds.Dx())
		for x := range row {
			i := y*stride + x*4
			row[x] = pimg.Pixel{int(pix[i]), int(pix[i+1]), int(pix[i+2])}
		}
		grid[y] = row
	}
	return pimg.NewBuffer(name, grid, pimg.DefaultMax)
}

// ToImage converts buf to an opaque 8-bit image. Channels are rescaled from
// [0, max] to [0, 255] when max is not 255.
func ToImage(buf *pimg.Buffer) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, buf.Width(), buf.Height()))
	max := buf.Max()
	for y := 0; y < buf.Height(); y++ {
		for x := 0; x < buf.Width(); x++ {
			p, _ := buf.PixelAt(y, x)
			img.SetNRGBA(x, y, color.NRGBA{
				R: scale8(p[0], max),
				G: scale8(p[1], max),
				B: scale8(p[2], max),
				A: 255,
			})
		}
	}
	return img
}

// scale8 maps v from [0, max] to [0, 255]. Buffers cap max at
// pimg.MaxValue, so v*255 cannot overflow.
func scale8(v, max int) uint8 {
	v = pimg.Clamp(v, max)
	if max == 255 {
		return uint8(v)
	}
	return uint8((v*255 + max/2) / max)
}

func isPPM(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".ppm")
}
