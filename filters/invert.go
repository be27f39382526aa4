package filters

import "github.com/mayomeir007/quadfx"

// NewInvert creates a filter that inverts the color channels of images of the given shape.
// Alpha is copied unchanged.
func NewInvert(shape quadfx.Shape) *PointFilter {
	return &PointFilter{
		In:  shape,
		Out: shape,
		Fn:  invertRow,
	}
}

// Invert toggles every color channel byte v of b to 255-v in place.
// The alpha byte of RGBA pixels and row padding are left untouched,
// so applying Invert twice restores b exactly.
func Invert(b *quadfx.Buffer) error {
	_, err := NewInvert(b.Dims().Shape).Process(nil, b, nil)
	return err
}

func invertRow(dst, src []byte, depth int) {
	for i := 0; i+depth <= len(src); i += depth {
		dst[i] = 255 - src[i]
		dst[i+1] = 255 - src[i+1]
		dst[i+2] = 255 - src[i+2]
		if depth == 4 {
			dst[i+3] = src[i+3]
		}
	}
}
