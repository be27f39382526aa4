package filters

import (
	"math/rand"
	"testing"

	"github.com/mayomeir007/quadfx"
)

// newTestBuffer allocates a buffer with stride padded up to a multiple of align bytes.
func newTestBuffer(t *testing.T, width, height int, shape quadfx.Shape, align int) *quadfx.Buffer {
	t.Helper()
	stride := width * shape.BytesPerPixel()
	if align > 1 {
		stride = (stride + align - 1) / align * align
	}
	b, err := quadfx.NewBuffer(quadfx.Dims{Width: width, Height: height, Stride: stride, Shape: shape})
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// generateRandomSquares fills b with random colored squares on a black opaque background.
// Alpha bytes of RGBA buffers are randomized per square so alpha preservation is observable.
func generateRandomSquares(rng *rand.Rand, b *quadfx.Buffer, numSquares, minSize, maxSize int) {
	d := b.Dims()
	if d.Shape.HasAlpha() {
		for y := 0; y < d.Height; y++ {
			for x := 0; x < d.Width; x++ {
				b.Pixel(x, y)[3] = 255
			}
		}
	}
	for i := 0; i < numSquares; i++ {
		size := minSize + rng.Intn(maxSize-minSize+1)
		x := rng.Intn(d.Width)
		y := rng.Intn(d.Height)
		c := []byte{
			uint8(64 + rng.Intn(192)),
			uint8(64 + rng.Intn(192)),
			uint8(64 + rng.Intn(192)),
			uint8(rng.Intn(256)),
		}
		fillRect(b, x, y, size, size, c)
	}
}

// fillRect sets a rectangle of pixels to c, clipped to the buffer bounds.
func fillRect(b *quadfx.Buffer, x, y, w, h int, c []byte) {
	d := b.Dims()
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			px, py := x+dx, y+dy
			if px >= 0 && px < d.Width && py >= 0 && py < d.Height {
				copy(b.Pixel(px, py), c)
			}
		}
	}
}

func uniformBuffer(t *testing.T, width, height int, c []byte) *quadfx.Buffer {
	t.Helper()
	shape, err := quadfx.ShapeForDepth(len(c))
	if err != nil {
		t.Fatal(err)
	}
	b := newTestBuffer(t, width, height, shape, 1)
	fillRect(b, 0, 0, width, height, c)
	return b
}

func mustClone(t *testing.T, b *quadfx.Buffer) *quadfx.Buffer {
	t.Helper()
	c, err := b.Clone()
	if err != nil {
		t.Fatal(err)
	}
	return c
}
