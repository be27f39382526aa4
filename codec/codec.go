// Package codec converts between encoded PNG/JPEG files and quadfx pixel buffers.
package codec

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"

	"github.com/mayomeir007/quadfx"
)

// rowAlign is the byte alignment of RGB rows. Packed RGBA rows are always aligned.
const rowAlign = 4

// Open reads and decodes the image file at path.
func Open(path string) (*quadfx.Buffer, quadfx.Format, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}
	return Decode(data)
}

// Decode decodes PNG or JPEG bytes into a new buffer and returns the pixel format
// needed to encode it back. Malformed input fails with [quadfx.ErrDecode]; images that are
// not 3 or 4 bytes per pixel fail with [quadfx.ErrUnsupportedChannelLayout].
func Decode(data []byte) (*quadfx.Buffer, quadfx.Format, error) {
	img, name, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", quadfx.ErrDecode, err)
	}
	b, f, err := FromImage(img)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", name, err)
	}
	quadfx.Logger().Debug("decoded image", "codec", name, "model", fmt.Sprintf("%T", img),
		"width", b.Dims().Width, "height", b.Dims().Height, "stride", b.Dims().Stride, "format", f)
	return b, f, nil
}

// FromImage copies img into a new buffer. Images with 8-bit RGBA storage keep their bytes
// verbatim; opaque RGBA and JPEG color models are stored as RGB rows padded to 4 bytes.
func FromImage(img image.Image) (*quadfx.Buffer, quadfx.Format, error) {
	switch m := img.(type) {
	case *image.NRGBA:
		b, err := packRGBA(m.Pix, m.Stride, m.PixOffset, m.Rect)
		return b, quadfx.FormatNRGBA, err
	case *image.RGBA:
		if m.Opaque() {
			b, err := packRGB(m)
			return b, quadfx.FormatRGB, err
		}
		b, err := packRGBA(m.Pix, m.Stride, m.PixOffset, m.Rect)
		return b, quadfx.FormatRGBA, err
	case *image.YCbCr, *image.CMYK:
		bounds := img.Bounds()
		rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
		b, err := packRGB(rgba)
		return b, quadfx.FormatRGB, err
	}
	return nil, 0, fmt.Errorf("%w: %T pixel model", quadfx.ErrUnsupportedChannelLayout, img)
}

func packRGBA(pix []byte, stride int, offset func(x, y int) int, r image.Rectangle) (*quadfx.Buffer, error) {
	d := quadfx.PackedDims(r.Dx(), r.Dy(), quadfx.ShapeRGBA8888)
	b, err := quadfx.NewBuffer(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", quadfx.ErrDecode, err)
	}
	dst := b.Buffer()
	for y := 0; y < d.Height; y++ {
		off := offset(r.Min.X, r.Min.Y+y)
		copy(dst[y*d.Stride:y*d.Stride+d.SizeRow()], pix[off:off+d.SizeRow()])
	}
	return b, nil
}

// packRGB drops the alpha channel of an opaque image.
func packRGB(m *image.RGBA) (*quadfx.Buffer, error) {
	r := m.Rect
	d := quadfx.PackedDims(r.Dx(), r.Dy(), quadfx.ShapeRGB888)
	d.Stride = (d.Stride + rowAlign - 1) / rowAlign * rowAlign
	b, err := quadfx.NewBuffer(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", quadfx.ErrDecode, err)
	}
	dst := b.Buffer()
	for y := 0; y < d.Height; y++ {
		src := m.Pix[m.PixOffset(r.Min.X, r.Min.Y+y):]
		row := dst[y*d.Stride:]
		for x := 0; x < d.Width; x++ {
			row[3*x] = src[4*x]
			row[3*x+1] = src[4*x+1]
			row[3*x+2] = src[4*x+2]
		}
	}
	return b, nil
}
