// Package texture loads images from disk and uploads them as GPU textures.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io/fs"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-heightmap/internal/engine/gpu"
	"github.com/Faultbox/midgard-heightmap/internal/engine/imageio"
	"github.com/Faultbox/midgard-heightmap/internal/logger"
)

// Load reads and decodes an image file into RGBA. The top row of the image
// is the first row in memory, so texcoord v=0 samples the same image row as
// heightfield row 0.
func Load(path string) (*image.RGBA, error) {
	img, format, err := imageio.Load(path)
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}

	logger.Debug("texture decoded",
		zap.String("path", path),
		zap.String("format", format),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
	)

	return ImageToRGBA(img), nil
}

// ImageToRGBA converts any image.Image to *image.RGBA with its origin at (0, 0).
func ImageToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// White returns a size x size opaque white image.
func White(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

// Upload creates a mipmapped, repeating texture from img.
func Upload(dev gpu.Device, img *image.RGBA) (uint32, error) {
	tex, err := dev.CreateTexture(img, gpu.TextureOptions{Mipmaps: true, Repeat: true})
	if err != nil {
		return 0, fmt.Errorf("texture: upload: %w", err)
	}
	return tex, nil
}

// LoadOrWhite loads and uploads the texture at path. A missing file, or an
// empty path, yields a plain white texture instead; the second result
// reports whether the file was used.
func LoadOrWhite(dev gpu.Device, path string) (uint32, bool, error) {
	if path != "" {
		img, err := Load(path)
		switch {
		case err == nil:
			tex, err := Upload(dev, img)
			return tex, err == nil, err
		case errors.Is(err, fs.ErrNotExist):
			logger.Warn("texture not found, using white", zap.String("path", path))
		default:
			return 0, false, err
		}
	}

	tex, err := Upload(dev, White(2))
	return tex, false, err
}
