package terrain

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/Faultbox/midgard-heightmap/internal/engine/imageio"
)

// LoadHeightfield reads and decodes the image at path.
// Only the first channel of each pixel is kept.
func LoadHeightfield(path string) (*Heightfield, error) {
	img, format, err := imageio.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	hf, err := fromImage(img, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return hf, nil
}

// DecodeHeightfield decodes an image stream into a heightfield.
func DecodeHeightfield(r io.Reader) (*Heightfield, error) {
	img, format, err := imageio.Decode(r, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return fromImage(img, format)
}

func fromImage(img image.Image, format string) (*Heightfield, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: %s image is %dx%d", ErrEmptyHeightfield, format, b.Dx(), b.Dy())
	}

	return HeightfieldFromImage(img), nil
}

// HeightfieldFromImage extracts the first channel of img.
//
// Gray images contribute their luminance, Gray16 its high byte, and every
// other color model the red channel of its non-premultiplied 8-bit form.
func HeightfieldFromImage(img image.Image) *Heightfield {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	hf := &Heightfield{
		Width:   w,
		Height:  h,
		Samples: make([]uint8, w*h),
	}

	switch src := img.(type) {
	case *image.Gray:
		for y := range h {
			row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			copy(hf.Samples[y*w:(y+1)*w], row[:w])
		}
	case *image.Gray16:
		for y := range h {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			for x := range w {
				hf.Samples[y*w+x] = src.Pix[off+x*2]
			}
		}
	case *image.NRGBA:
		for y := range h {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			for x := range w {
				hf.Samples[y*w+x] = src.Pix[off+x*4]
			}
		}
	default:
		for y := range h {
			for x := range w {
				c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				hf.Samples[y*w+x] = c.R
			}
		}
	}

	return hf
}

// At returns the raw sample at (x, y). Coordinates must be in range.
func (hf *Heightfield) At(x, y int) uint8 {
	return hf.Samples[y*hf.Width+x]
}

// Normalized returns the sample at (x, y) scaled to [0, 1].
func (hf *Heightfield) Normalized(x, y int) float32 {
	return float32(hf.At(x, y)) / 255.0
}
