package quadfx

import (
	"errors"
	"image"
	"io"
)

// Image is a whole-buffer view of raw 8-bit pixel memory as decoded from disk.
// Row spacing is homogenous and given by the Stride of Dims, which may exceed
// the packed row size when rows are padded for alignment.
type Image interface {
	// Dims returns information on in-memory image structure.
	Dims() Dims
	// ReadAt reads from the image buffer of pixels.
	//
	// Users should always try casting [Image] to [ImageBuffered]
	// to see if they can work with the image in-memory which is more efficient.
	io.ReaderAt
}

type ImageBuffered interface {
	Image
	// Buffer returns the raw underlying buffer for images stored in memory
	// or nil to signal the buffer has been released.
	Buffer() []byte
}

// Shape is the in-memory layout of a single pixel.
type Shape int

const (
	shapeUndefined Shape = iota // undefined
	ShapeRGB888                 // rgb888
	ShapeRGBA8888               // rgba8888
)

func (sh Shape) String() string {
	switch sh {
	case ShapeRGB888:
		return "rgb888"
	case ShapeRGBA8888:
		return "rgba8888"
	default:
		return "undefined"
	}
}

// BytesPerPixel returns the channel depth of the shape, or -1 for unknown shapes.
func (sh Shape) BytesPerPixel() int {
	switch sh {
	case ShapeRGB888:
		return 3
	case ShapeRGBA8888:
		return 4
	}
	return -1
}

func (sh Shape) BitsPerPixel() int {
	bpp := sh.BytesPerPixel()
	if bpp < 0 {
		return -1
	}
	return 8 * bpp
}

// HasAlpha reports whether the last byte of every pixel is an alpha channel.
func (sh Shape) HasAlpha() bool { return sh == ShapeRGBA8888 }

// ColorChannels is the number of leading bytes of a pixel that hold color.
func (sh Shape) ColorChannels() int {
	if sh.BytesPerPixel() < 0 {
		return 0
	}
	return 3
}

// ShapeForDepth returns the shape with the given number of bytes per pixel.
func ShapeForDepth(depth int) (Shape, error) {
	switch depth {
	case 3:
		return ShapeRGB888, nil
	case 4:
		return ShapeRGBA8888, nil
	}
	return shapeUndefined, ErrUnsupportedChannelLayout
}

type Dims struct {
	Width  int
	Height int
	// Stride is the row pitch in bytes.
	Stride int
	Shape  Shape
}

// PackedDims returns dims with rows packed tightly.
func PackedDims(width, height int, shape Shape) Dims {
	return Dims{Width: width, Height: height, Stride: width * shape.BytesPerPixel(), Shape: shape}
}

func (d Dims) Validate() error {
	pixbits := d.Shape.BitsPerPixel()
	if d.Height <= 0 || d.Width <= 0 {
		return errors.New("empty image")
	} else if pixbits < 1 {
		return ErrUnsupportedChannelLayout
	} else if d.SizeRow() > d.Stride {
		return errors.New("stride smaller than pixel row size")
	}
	return nil
}

// Depth returns the bytes per pixel of the image.
func (d Dims) Depth() int { return d.Shape.BytesPerPixel() }

func (d Dims) NumPixels() int64 {
	return int64(d.Height) * int64(d.Width)
}

// Size returns the readable section size of raw image in bytes.
func (d Dims) Size() int64 {
	if d.Height == 0 || d.Width == 0 {
		return 0
	}
	return int64(d.Height-1)*int64(d.Stride) + int64(d.SizeRow())
}

// SizeRow returns the number of bytes occupied by pixels in a row, excluding padding.
func (d Dims) SizeRow() int {
	return d.Width * d.Shape.BytesPerPixel()
}

// Offset returns the index of the first byte of pixel (x,y).
func (d Dims) Offset(x, y int) int {
	return y*d.Stride + x*d.Shape.BytesPerPixel()
}

// SameShape reports whether both dims describe an identically laid out buffer.
func (d Dims) SameShape(other Dims) bool { return d == other }

// ImageRow returns the pixel bytes of a row without padding. Buffered images
// return a slice aliasing their memory, other images are read into dst, which
// must hold at least [Dims.SizeRow] bytes.
func ImageRow(dst []byte, img Image, row int) ([]byte, error) {
	d := img.Dims()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if row < 0 || row >= d.Height {
		return nil, errors.New("row out of bounds")
	}
	rowSize := d.SizeRow()
	off := int64(row) * int64(d.Stride)
	if buffered, ok := img.(ImageBuffered); ok {
		if buf := buffered.Buffer(); buf != nil {
			return buf[off : off+int64(rowSize)], nil
		}
	}
	if len(dst) < rowSize {
		return nil, io.ErrShortBuffer
	}
	n, err := img.ReadAt(dst[:rowSize], off)
	if n == rowSize {
		return dst[:rowSize], nil
	}
	if err == nil {
		err = io.ErrUnexpectedEOF
	}
	return nil, err
}

// ValidateProcessArgs gets the write destination buffer for a filter and checks its inputs:
//   - Source [Dims.Validate] early validation. srcDims is always returned as called by src.Dims.
//   - Valid ROI argument.
//   - Valid input image for buffered in-place operations. In-place rejects non-nil ROI.
//   - Shape match for in-place operations.
//   - dst buffer size when dstShape.Stride is set. Use dstShape.Stride=0 to omit this check.
func ValidateProcessArgs(dst []byte, dstShape Dims, src Image, roi *image.Rectangle) (_ []byte, srcDims Dims, err error) {
	srcDims = src.Dims()
	if err = srcDims.Validate(); err != nil {
		return nil, srcDims, err
	}
	var requiredMinDstSize int64
	if roi != nil {
		if roi.Max.X < 0 || roi.Min.X < 0 || roi.Min.Y < 0 || roi.Max.Y < 0 {
			return nil, srcDims, errors.New("negative ROI")
		} else if roi.Max.X > srcDims.Width || roi.Max.Y > srcDims.Height {
			return nil, srcDims, errors.New("ROI exceeds image bounds")
		} else if roi.Empty() {
			return nil, srcDims, errors.New("empty ROI")
		}
		requiredMinDstSize = int64(dstShape.Stride) * int64(roi.Dy())
	} else {
		requiredMinDstSize = int64(dstShape.Stride) * int64(dstShape.Height)
	}
	if dst == nil {
		if roi != nil {
			return nil, srcDims, errors.New("in-place operation does not support ROI")
		}
		if dstShape.Shape != srcDims.Shape {
			return nil, srcDims, errors.New("src must match filter output shape for in-place op")
		}
		buffered, ok := src.(ImageBuffered)
		if !ok {
			return nil, srcDims, errors.New("src does not implement ImageBuffered for in-place op")
		}
		buf := buffered.Buffer()
		if buf == nil {
			return nil, srcDims, ErrReleased
		} else if len(buf) < int(srcDims.Size()) {
			return nil, srcDims, errors.New("src ImageBuffered returned a buffer too small to represent complete image")
		}
		dst = buf
		// In-place writes land at the source stride.
		requiredMinDstSize = srcDims.Size()
	}
	if int64(len(dst)) < requiredMinDstSize {
		return dst, srcDims, errors.New("destination buffer not large enough to store output")
	}
	return dst, srcDims, nil
}
