package texture

import (
	"bytes"
	"errors"
	"testing"

	"github.com/mayomeir007/quadfx"
)

func newBuffer(t *testing.T, width, height, stride int, shape quadfx.Shape) *quadfx.Buffer {
	t.Helper()
	b, err := quadfx.NewBuffer(quadfx.Dims{Width: width, Height: height, Stride: stride, Shape: shape})
	if err != nil {
		t.Fatal(err)
	}
	pix := b.Buffer()
	for i := range pix {
		pix[i] = byte(i * 7)
	}
	return b
}

func TestStaged(t *testing.T) {
	rgb := newBuffer(t, 3, 2, 12, quadfx.ShapeRGB888)
	got, err := Staged(nil, rgb)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3*2*4 {
		t.Fatalf("got %d texel bytes, want 24", len(got))
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			texel := got[4*(3*y+x):]
			px := rgb.Pixel(x, y)
			if !bytes.Equal(texel[:3], px) || texel[3] != 255 {
				t.Errorf("texel (%d,%d) = %v, want %v with opaque alpha", x, y, texel[:4], px)
			}
		}
	}

	rgba := newBuffer(t, 3, 2, 12, quadfx.ShapeRGBA8888)
	got, err = Staged(got[:0], rgba)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, rgba.Buffer()) {
		t.Error("packed RGBA should stage verbatim")
	}

	rgba.Release()
	if _, err := Staged(nil, rgba); err != quadfx.ErrReleased {
		t.Errorf("got %v, want ErrReleased", err)
	}
}

// unbuffered exposes a buffer only through io.ReaderAt.
type unbuffered struct {
	b *quadfx.Buffer
}

func (u unbuffered) Dims() quadfx.Dims                       { return u.b.Dims() }
func (u unbuffered) ReadAt(p []byte, off int64) (int, error) { return u.b.ReadAt(p, off) }

func TestStagedUnbuffered(t *testing.T) {
	for _, shape := range []quadfx.Shape{quadfx.ShapeRGB888, quadfx.ShapeRGBA8888} {
		b := newBuffer(t, 5, 3, 24, shape)
		want, err := Staged(nil, b)
		if err != nil {
			t.Fatal(err)
		}
		got, err := Staged(nil, unbuffered{b})
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("%s: staging through ReadAt differs from buffered staging", shape)
		}
	}
}

func TestMemoryLifecycle(t *testing.T) {
	var m Memory
	a := newBuffer(t, 4, 4, 16, quadfx.ShapeRGBA8888)
	if m.Valid() {
		t.Fatal("fresh texture should not be valid")
	}
	if err := m.Reload(a); !errors.Is(err, ErrNoTexture) {
		t.Errorf("reload before upload: got %v", err)
	}
	if _, err := m.Bind(); !errors.Is(err, ErrNoTexture) {
		t.Errorf("bind before upload: got %v", err)
	}

	if err := m.Upload(a); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(m.Texels(), a.Buffer()) {
		t.Error("texture does not hold uploaded buffer")
	}

	b := newBuffer(t, 4, 4, 16, quadfx.ShapeRGBA8888)
	for i := range b.Buffer() {
		b.Buffer()[i] ^= 0xff
	}
	if err := m.Reload(b); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(m.Texels(), b.Buffer()) {
		t.Error("texture does not hold reloaded buffer")
	}
	if uploads, reloads, allocs := m.Stats(); uploads != 1 || reloads != 1 || allocs != 1 {
		t.Errorf("stats = %d,%d,%d; want 1,1,1", uploads, reloads, allocs)
	}

	h, err := m.Bind()
	if err != nil {
		t.Fatal(err)
	}
	if h.Label() == "" || !m.Bound() {
		t.Error("bind did not expose a handle")
	}
	m.Unbind()
	if m.Bound() {
		t.Error("still bound after Unbind")
	}

	small := newBuffer(t, 2, 2, 8, quadfx.ShapeRGBA8888)
	if err := m.Reload(small); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("got %v, want ErrSizeMismatch", err)
	}
	if err := m.Upload(small); err != nil {
		t.Fatal(err)
	}
	if _, _, allocs := m.Stats(); allocs != 2 {
		t.Errorf("upload with new size should reallocate, got %d allocations", allocs)
	}

	m.Release()
	m.Release()
	if m.Valid() {
		t.Error("texture valid after Release")
	}
}
