package codec

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"

	"github.com/mayomeir007/quadfx"
)

// JPEGQuality is the fixed quality of lossy saves.
const JPEGQuality = 100

// Ext returns the lower case extension of path without the leading dot.
func Ext(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Acceptable reports whether path names a PNG or JPEG file, ignoring case.
func Acceptable(path string) bool {
	switch Ext(path) {
	case "png", "jpg":
		return true
	}
	return false
}

// Encoder returns the encoder for a target extension: lossy JPEG for "jpg",
// lossless PNG for anything else.
func Encoder(ext string) imgio.Encoder {
	if strings.EqualFold(ext, "jpg") {
		return imgio.JPEGEncoder(JPEGQuality)
	}
	return imgio.PNGEncoder()
}

// ToImage wraps or converts b into an image of pixel format f.
// RGBA formats alias the buffer memory.
func ToImage(b *quadfx.Buffer, f quadfx.Format) (image.Image, error) {
	pix := b.Buffer()
	if pix == nil {
		return nil, quadfx.ErrReleased
	}
	d := b.Dims()
	if f.Shape() != d.Shape {
		return nil, fmt.Errorf("%w: format %s cannot hold %s pixels", quadfx.ErrEncode, f, d.Shape)
	}
	rect := image.Rect(0, 0, d.Width, d.Height)
	switch f {
	case quadfx.FormatNRGBA:
		return &image.NRGBA{Pix: pix, Stride: d.Stride, Rect: rect}, nil
	case quadfx.FormatRGBA:
		return &image.RGBA{Pix: pix, Stride: d.Stride, Rect: rect}, nil
	case quadfx.FormatRGB:
		m := image.NewNRGBA(rect)
		for y := 0; y < d.Height; y++ {
			src := pix[y*d.Stride:]
			dst := m.Pix[y*m.Stride:]
			for x := 0; x < d.Width; x++ {
				dst[4*x] = src[3*x]
				dst[4*x+1] = src[3*x+1]
				dst[4*x+2] = src[3*x+2]
				dst[4*x+3] = 255
			}
		}
		return m, nil
	}
	return nil, fmt.Errorf("%w: unknown format %s", quadfx.ErrEncode, f)
}

// Encode writes b to w in the codec selected by ext.
func Encode(w io.Writer, b *quadfx.Buffer, f quadfx.Format, ext string) error {
	img, err := ToImage(b, f)
	if err != nil {
		return err
	}
	if err = Encoder(ext)(w, img); err != nil {
		return fmt.Errorf("%w: %w", quadfx.ErrEncode, err)
	}
	return nil
}

// Save encodes the current bytes of b to path, picking the codec from the extension.
// The file is written next to the target and renamed over it once complete so
// an aborted save never leaves a truncated image behind.
func Save(path string, b *quadfx.Buffer, f quadfx.Format) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*")
	if err != nil {
		return fmt.Errorf("%w: %w", quadfx.ErrEncode, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("%w: %w", quadfx.ErrEncode, err)
	}
	bw := bufio.NewWriter(tmp)
	if err = Encode(bw, b, f, Ext(path)); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("%w: %w", quadfx.ErrEncode, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", quadfx.ErrEncode, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %w", quadfx.ErrEncode, err)
	}
	quadfx.Logger().Info("saved image", "path", path, "format", f, "codec", Ext(path))
	return nil
}
