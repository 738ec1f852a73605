// Package texture decodes image files into pixel data ready for upload.
//
// Decoding is kept free of OpenGL so it can run and be tested headless;
// gpu.NewTexture uploads the result.
package texture

import (
	"errors"
	"fmt"
	"image"
	stddraw "image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Format is the channel layout of uploaded pixel data.
type Format int

const (
	FormatRGB Format = iota
	FormatRGBA
)

// String returns the manifest name of the format.
func (f Format) String() string {
	if f == FormatRGBA {
		return "rgba"
	}
	return "rgb"
}

// Channels returns the bytes per pixel.
func (f Format) Channels() int {
	if f == FormatRGBA {
		return 4
	}
	return 3
}

// ParseFormat converts "rgb" or "rgba" into a Format. An empty name derives
// the format from path.
func ParseFormat(name, path string) (Format, error) {
	switch strings.ToLower(name) {
	case "":
		return FormatFor(path), nil
	case "rgb":
		return FormatRGB, nil
	case "rgba":
		return FormatRGBA, nil
	default:
		return FormatRGB, fmt.Errorf("unknown texture format %q", name)
	}
}

// FormatFor picks the format from the file type: formats that carry alpha
// load as RGBA, everything else as RGB.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".webp", ".tif", ".tiff":
		return FormatRGBA
	default:
		return FormatRGB
	}
}

// Sniff picks the format from the magic bytes at the start of a file.
// ok is false when the header is not a recognised image type.
func Sniff(head []byte) (f Format, ok bool) {
	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return FormatRGB, false
	}
	switch kind.Extension {
	case "png", "webp", "tif":
		return FormatRGBA, true
	case "jpg", "bmp":
		return FormatRGB, true
	default:
		return FormatRGB, false
	}
}

// MaxSize is the largest edge a decoded image keeps. Larger images are
// scaled down.
const MaxSize = 4096

// ErrEmptyImage is returned for images with no pixels.
var ErrEmptyImage = errors.New("empty image")

// Image is decoded pixel data, bottom row first as OpenGL expects.
type Image struct {
	Width  int
	Height int
	Format Format
	Pix    []byte
}

// LoadFile decodes the image at path.
func LoadFile(path string, format Format) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening texture: %w", err)
	}
	defer f.Close()

	img, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// Decode reads any registered image type (JPEG, PNG, BMP, TIFF, WebP) and
// converts it to format.
func Decode(r io.Reader, format Format) (*Image, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding texture: %w", err)
	}
	return FromImage(src, format)
}

// FromImage converts src to format, flips it vertically and clamps its size
// to MaxSize.
func FromImage(src image.Image, format Format) (*Image, error) {
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrEmptyImage
	}

	w, h := fit(b.Dx(), b.Dy(), MaxSize)
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	if w != b.Dx() || h != b.Dy() {
		draw.CatmullRom.Scale(rgba, rgba.Bounds(), src, b, draw.Src, nil)
	} else {
		stddraw.Draw(rgba, rgba.Bounds(), src, b.Min, stddraw.Src)
	}

	ch := format.Channels()
	out := &Image{Width: w, Height: h, Format: format, Pix: make([]byte, w*h*ch)}
	for y := 0; y < h; y++ {
		srcRow := rgba.Pix[y*rgba.Stride : y*rgba.Stride+w*4]
		dstRow := out.Pix[(h-1-y)*w*ch : (h-y)*w*ch]
		if ch == 4 {
			copy(dstRow, srcRow)
			continue
		}
		for x := 0; x < w; x++ {
			copy(dstRow[x*3:x*3+3], srcRow[x*4:x*4+3])
		}
	}
	return out, nil
}

// Solid returns a 1x1 image of one colour.
func Solid(r, g, b, a uint8) *Image {
	return &Image{Width: 1, Height: 1, Format: FormatRGBA, Pix: []byte{r, g, b, a}}
}

// fit scales (w, h) down so neither edge exceeds limit, keeping the aspect
// ratio.
func fit(w, h, limit int) (int, int) {
	if w <= limit && h <= limit {
		return w, h
	}
	if w >= h {
		return limit, max(1, h*limit/w)
	}
	return max(1, w*limit/h), limit
}
