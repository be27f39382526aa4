package filters

import (
	"fmt"
	"math"

	"github.com/mayomeir007/quadfx"
)

// truncGuard absorbs the round-off of normalized kernel weights so that
// a constant region reproduces its value exactly after truncation.
const truncGuard = 1e-9

// MaxStrength is the largest accepted blur strength percentage. At 100%
// the radius spans half of the image dimension.
const MaxStrength = 100

// Radii maps a blur strength percentage to the horizontal and vertical kernel radius
// for an image of the given size. Both are floored to integers.
func Radii(strengthPercent float64, width, height int) (horizontal, vertical int) {
	factor := strengthPercent / 100
	return int(factor * float64(width) / 2), int(factor * float64(height) / 2)
}

// Blur recomputes dst from src as a separable Gaussian blur of the given strength,
// optionally inverting the result. dst never feeds back into its own blur so
// repeated calls with the same arguments give identical bytes.
//
// When either radius is zero dst becomes an exact copy of src.
// Samples beyond the image border are skipped and their weight is lost, which
// darkens pixels closer than one radius to an edge. Alpha bytes of dst are never
// written by the blur passes.
//
// Channel sums are truncated after adding a guard of 1e-9, so a sum that falls a
// rounding error short of an integer yields that integer rather than the one below.
func Blur(dst, src *quadfx.Buffer, strengthPercent float64, alsoInvert bool) error {
	if math.IsNaN(strengthPercent) || strengthPercent < 0 || strengthPercent > MaxStrength {
		return fmt.Errorf("%w: blur strength %v outside 0..%d", quadfx.ErrInvalidParameter, strengthPercent, MaxStrength)
	}
	if dst.Released() || src.Released() {
		return quadfx.ErrReleased
	}
	d := src.Dims()
	if !dst.Dims().SameShape(d) {
		return fmt.Errorf("%w: blur %+v into %+v", quadfx.ErrDimsMismatch, d, dst.Dims())
	}
	rh, rv := Radii(strengthPercent, d.Width, d.Height)
	if rh == 0 || rv == 0 {
		quadfx.Logger().Debug("blur radius zero, restoring source", "width", d.Width, "height", d.Height, "strength", strengthPercent)
		if err := dst.CopyFrom(src); err != nil {
			return err
		}
	} else {
		kh, err := kernelForRadius(rh)
		if err != nil {
			return err
		}
		kv, err := kernelForRadius(rv)
		if err != nil {
			return err
		}
		quadfx.Logger().Debug("blur", "width", d.Width, "height", d.Height, "radiusH", rh, "radiusV", rv)
		if err = HorizontalPass(dst, src, kh); err != nil {
			return err
		}
		if err = VerticalPass(dst, kv); err != nil {
			return err
		}
	}
	if alsoInvert {
		return Invert(dst)
	}
	return nil
}

// HorizontalPass convolves every row of src with k and stores the color channels in dst.
// Only src is read.
func HorizontalPass(dst, src *quadfx.Buffer, k Kernel) error {
	d := src.Dims()
	if !dst.Dims().SameShape(d) {
		return quadfx.ErrDimsMismatch
	}
	in, out := src.Buffer(), dst.Buffer()
	if in == nil || out == nil {
		return quadfx.ErrReleased
	}
	depth := d.Depth()
	r := k.Radius
	for y := 0; y < d.Height; y++ {
		row := in[y*d.Stride : y*d.Stride+d.SizeRow()]
		for x := 0; x < d.Width; x++ {
			var acc [3]float64
			for i := -r; i <= r; i++ {
				sx := x + i
				if sx < 0 || sx >= d.Width {
					continue
				}
				w := k.Weights[i+r]
				p := row[sx*depth:]
				acc[0] += w * float64(p[0])
				acc[1] += w * float64(p[1])
				acc[2] += w * float64(p[2])
			}
			storeColor(out[y*d.Stride+x*depth:], acc)
		}
	}
	return nil
}

// VerticalPass convolves every column of b with k in place. Each column is
// copied to scratch space first so already written rows are never sampled.
func VerticalPass(b *quadfx.Buffer, k Kernel) error {
	pix := b.Buffer()
	if pix == nil {
		return quadfx.ErrReleased
	}
	d := b.Dims()
	depth := d.Depth()
	r := k.Radius
	column := make([]byte, 3*d.Height)
	for x := 0; x < d.Width; x++ {
		for y := 0; y < d.Height; y++ {
			copy(column[3*y:3*y+3], pix[d.Offset(x, y):])
		}
		for y := 0; y < d.Height; y++ {
			var acc [3]float64
			for i := -r; i <= r; i++ {
				sy := y + i
				if sy < 0 || sy >= d.Height {
					continue
				}
				w := k.Weights[i+r]
				p := column[3*sy:]
				acc[0] += w * float64(p[0])
				acc[1] += w * float64(p[1])
				acc[2] += w * float64(p[2])
			}
			storeColor(pix[y*d.Stride+x*depth:], acc)
		}
	}
	return nil
}

// storeColor truncates the weighted sums toward zero into the first three bytes of dst.
func storeColor(dst []byte, acc [3]float64) {
	for c := range acc {
		v := acc[c] + truncGuard
		if v >= 255 {
			dst[c] = 255
		} else {
			dst[c] = uint8(v)
		}
	}
}
