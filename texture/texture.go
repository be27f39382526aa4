// Package texture keeps a GPU-resident texture in step with a CPU pixel buffer.
package texture

import (
	"errors"

	"github.com/mayomeir007/quadfx"
)

var (
	// ErrNoTexture is returned by Reload and Bind before the first Upload.
	ErrNoTexture = errors.New("texture not uploaded")
	// ErrSizeMismatch is returned by Reload when the buffer size differs from the texture.
	ErrSizeMismatch = errors.New("texture size mismatch")
)

// Handle is an opaque reference to a bound texture handed to the renderer.
type Handle interface {
	Label() string
}

// Sync owns a single texture. Implementations never inspect or modify pixel
// content beyond converting it into the texel format.
type Sync interface {
	// Upload creates or replaces the texture image with the bytes of b.
	Upload(b *quadfx.Buffer) error
	// Reload rewrites the pixels of the existing texture without reallocating it.
	// b must have the dimensions of the last Upload.
	Reload(b *quadfx.Buffer) error
	// Bind exposes the texture to the renderer.
	Bind() (Handle, error)
	Unbind()
	// Release frees the texture. Safe to call when nothing is uploaded.
	Release()
	// Valid reports whether a texture is currently allocated.
	Valid() bool
}

// Staged appends the pixels of img to dst as tightly packed 8-bit RGBA texels, the layout
// uploaded to the GPU. RGB pixels get an opaque alpha and row padding is dropped.
func Staged(dst []byte, img quadfx.Image) ([]byte, error) {
	d := img.Dims()
	if err := d.Validate(); err != nil {
		return dst, err
	}
	var scratch []byte
	if buffered, ok := img.(quadfx.ImageBuffered); !ok || buffered.Buffer() == nil {
		scratch = make([]byte, d.SizeRow())
	}
	n := len(dst)
	dst = append(dst, make([]byte, 4*d.Width*d.Height)...)
	out := dst[n:]
	for y := 0; y < d.Height; y++ {
		row, err := quadfx.ImageRow(scratch, img, y)
		if err != nil {
			return dst[:n], err
		}
		texels := out[4*d.Width*y : 4*d.Width*(y+1)]
		if d.Shape == quadfx.ShapeRGBA8888 {
			copy(texels, row)
			continue
		}
		for x := 0; x < d.Width; x++ {
			texels[4*x] = row[3*x]
			texels[4*x+1] = row[3*x+1]
			texels[4*x+2] = row[3*x+2]
			texels[4*x+3] = 255
		}
	}
	return dst, nil
}
