// Package inputs loads texture inputs for a shader surface: decoding
// happens entirely on the CPU so that a bad source never touches the
// GL driver, and upload is a separate step run only for sources that
// decoded cleanly.
package inputs

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/disintegration/imaging"
	gl "github.com/go-gl/gl/v4.1-core/gl"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/glshade/glshade/gldriver"
)

// Source describes one texture input. Exactly one of Path, Image and
// Pixels should be set; they are consulted in that order. Pixels is raw
// RGBA8, row-major and tightly packed, so its length must equal
// Width*Height*4.
type Source struct {
	Path          string
	Image         image.Image
	Pixels        []byte
	Width, Height int

	// FlipV flips the image vertically before upload, for sources whose
	// origin convention is top-left.
	FlipV bool
}

// Name identifies the source in log output.
func (s Source) Name() string {
	if s.Path != "" {
		return s.Path
	}
	return "<memory>"
}

// Decode resolves a source to tightly packed RGBA8 pixels. It returns
// an error for a missing or undecodable file, a nil in-memory image, or
// a raw pixel buffer whose length does not match its dimensions.
func Decode(src Source) (*image.RGBA, error) {
	img, err := sourceImage(src)
	if err != nil {
		return nil, err
	}

	if src.FlipV {
		img = imaging.FlipV(img)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba, nil
}

func sourceImage(src Source) (image.Image, error) {
	switch {
	case src.Path != "":
		f, err := os.Open(src.Path)
		if err != nil {
			return nil, fmt.Errorf("open texture %q: %w", src.Path, err)
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("decode texture %q: %w", src.Path, err)
		}
		return img, nil

	case src.Image != nil:
		return src.Image, nil

	case src.Pixels != nil:
		if src.Width <= 0 || src.Height <= 0 {
			return nil, fmt.Errorf("raw texture has invalid dimensions %dx%d", src.Width, src.Height)
		}
		if want := src.Width * src.Height * 4; len(src.Pixels) != want {
			return nil, fmt.Errorf("raw texture has %d bytes, want %d for %dx%d RGBA",
				len(src.Pixels), want, src.Width, src.Height)
		}
		return &image.RGBA{
			Pix:    src.Pixels,
			Stride: src.Width * 4,
			Rect:   image.Rect(0, 0, src.Width, src.Height),
		}, nil
	}
	return nil, fmt.Errorf("empty texture source")
}

// Upload creates one texture object bound to the given texture unit
// with linear filtering and clamp-to-edge wrapping, and uploads the
// image as mip level 0. It returns the texture handle, which the
// caller owns.
func Upload(g gldriver.Funcs, unit int, rgba *image.RGBA) uint32 {
	id := g.CreateTexture()
	g.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	g.BindTexture(gl.TEXTURE_2D, id)

	g.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	g.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	g.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	g.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	size := rgba.Rect.Size()
	g.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(size.X), int32(size.Y),
		gl.RGBA, gl.UNSIGNED_BYTE, rgba.Pix)
	return id
}
