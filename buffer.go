package quadfx

import (
	"bytes"
	"fmt"
	"io"
)

// Buffer is an owned pixel buffer. It is acquired with [NewBuffer] or [Buffer.Clone]
// and given back with [Buffer.Release], after which the pixel memory is no longer reachable
// through the Buffer. Release is idempotent so a Load/Unload/Load sequence
// can release unconditionally.
type Buffer struct {
	dims Dims
	pix  []byte
}

var _ ImageBuffered = (*Buffer)(nil)

// NewBuffer allocates a zeroed buffer large enough to hold an image of dims d,
// including row padding on every row.
func NewBuffer(d Dims) (*Buffer, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &Buffer{dims: d, pix: make([]byte, d.Stride*d.Height)}, nil
}

// WrapBuffer takes ownership of pix as the backing memory of an image of dims d.
func WrapBuffer(d Dims, pix []byte) (*Buffer, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if int64(len(pix)) < d.Size() {
		return nil, fmt.Errorf("%w: %d bytes cannot hold %dx%d %s at stride %d",
			ErrDimsMismatch, len(pix), d.Width, d.Height, d.Shape, d.Stride)
	}
	return &Buffer{dims: d, pix: pix}, nil
}

// Dims implements [Image].
func (b *Buffer) Dims() Dims { return b.dims }

// Buffer implements [ImageBuffered]. Returns nil after Release.
func (b *Buffer) Buffer() []byte { return b.pix }

// Pix is an alias of Buffer.
func (b *Buffer) Pix() []byte { return b.pix }

// ReadAt implements [io.ReaderAt].
func (b *Buffer) ReadAt(p []byte, off int64) (int, error) {
	if b.pix == nil {
		return 0, ErrReleased
	}
	if off < 0 {
		return 0, fmt.Errorf("negative offset %d", off)
	}
	if off >= int64(len(b.pix)) {
		return 0, io.EOF
	}
	n := copy(p, b.pix[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Released reports whether the buffer memory has been given back.
func (b *Buffer) Released() bool { return b.pix == nil }

// Release drops the pixel memory. Calling Release more than once is a no-op.
func (b *Buffer) Release() {
	b.pix = nil
}

// Clone returns a new buffer with identical dims and a verbatim copy of the bytes.
func (b *Buffer) Clone() (*Buffer, error) {
	if b.pix == nil {
		return nil, ErrReleased
	}
	pix := make([]byte, len(b.pix))
	copy(pix, b.pix)
	return &Buffer{dims: b.dims, pix: pix}, nil
}

// CopyFrom overwrites b with the bytes of src. Both buffers must share dims.
func (b *Buffer) CopyFrom(src *Buffer) error {
	if b.pix == nil || src.pix == nil {
		return ErrReleased
	}
	if !b.dims.SameShape(src.dims) {
		return fmt.Errorf("%w: %+v != %+v", ErrDimsMismatch, b.dims, src.dims)
	}
	copy(b.pix, src.pix)
	return nil
}

// Equal reports whether both buffers have the same dims and bytes.
func (b *Buffer) Equal(other *Buffer) bool {
	return b.dims == other.dims && bytes.Equal(b.pix, other.pix)
}

// Pixel returns the bytes of pixel (x,y). The returned slice aliases the buffer.
func (b *Buffer) Pixel(x, y int) []byte {
	off := b.dims.Offset(x, y)
	return b.pix[off : off+b.dims.Depth()]
}
