// Package imageio decodes the image formats accepted for heightmaps and
// color textures.
//
// Formats are chosen explicitly rather than through image.Decode: the TGA
// decoder registers itself with an empty magic string, which would claim
// every stream sniffed after it.
package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// ErrUnknownFormat is returned when no decoder recognizes the data.
var ErrUnknownFormat = errors.New("unknown image format")

type format struct {
	name   string
	magic  string // '?' matches any byte
	decode func(io.Reader) (image.Image, error)
}

var formats = []format{
	{"png", "\x89PNG\r\n\x1a\n", png.Decode},
	{"jpeg", "\xff\xd8", jpeg.Decode},
	{"gif", "GIF8", gif.Decode},
	{"bmp", "BM", bmp.Decode},
	{"tiff", "II*\x00", tiff.Decode},
	{"tiff", "MM\x00*", tiff.Decode},
	{"webp", "RIFF????WEBP", webp.Decode},
}

// maxMagic is the longest magic string above.
const maxMagic = 12

// Load opens and decodes the image at path. Open errors are returned
// wrapped, so errors.Is(err, fs.ErrNotExist) holds for a missing file.
func Load(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	img, name, err := Decode(f, path)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return img, name, nil
}

// Decode decodes r and returns the format name. filename selects TGA by
// extension; TGA has no signature, so a stream matching no other format is
// also tried as TGA when filename is empty.
func Decode(r io.Reader, filename string) (image.Image, string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".tga" {
		return decodeTGA(r)
	}

	br := bufio.NewReader(r)
	// A short read only limits which signatures can match.
	header, _ := br.Peek(maxMagic)

	for _, f := range formats {
		if !match(f.magic, header) {
			continue
		}
		img, err := f.decode(br)
		if err != nil {
			return nil, f.name, fmt.Errorf("%s: %w", f.name, err)
		}
		return img, f.name, nil
	}

	if filename == "" {
		return decodeTGA(br)
	}
	return nil, "", fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
}

func decodeTGA(r io.Reader) (image.Image, string, error) {
	img, err := tga.Decode(r)
	if err != nil {
		return nil, "tga", fmt.Errorf("tga: %w", err)
	}
	return img, "tga", nil
}

func match(magic string, b []byte) bool {
	if len(magic) > len(b) {
		return false
	}
	for i := range len(magic) {
		if magic[i] != '?' && magic[i] != b[i] {
			return false
		}
	}
	return true
}
