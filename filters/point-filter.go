package filters

import (
	"errors"
	"image"

	"github.com/mayomeir007/quadfx"
)

var errShapeMismatch = errors.New("pixel shape mismatch")

// PointFunc processes a contiguous row of pixels.
// dst and src contain rowWidth pixels worth of bytes, depth bytes per pixel.
// The function should iterate through pixels: for i := 0; i < len(src); i += depth { ... }
type PointFunc func(dst, src []byte, depth int)

// PointFilter applies a per-pixel transformation using a callback function.
// It handles the iteration, buffering, and ROI logic common to all per-pixel filters.
// The callback is invoked once per row with contiguous pixel data.
type PointFilter struct {
	In  quadfx.Shape
	Out quadfx.Shape
	Fn  PointFunc
}

// ShapeIO returns expected output and input shape of the filter.
func (f *PointFilter) ShapeIO() (output, input quadfx.Shape) {
	return f.Out, f.In
}

// Process processes src and writes the result to dst, returning the dims of the result.
// A nil dst processes src in place, which requires src to be a [quadfx.ImageBuffered]
// and roi to be nil. In-place output keeps the source row pitch.
func (f *PointFilter) Process(dst []byte, src quadfx.Image, roi *image.Rectangle) (quadfx.Dims, error) {
	if f.Fn == nil {
		return quadfx.Dims{}, errNilPixelFunc
	}

	outShape, inShape := f.ShapeIO()
	srcDims := src.Dims()
	if srcDims.Shape != inShape {
		return quadfx.Dims{}, errShapeMismatch
	}

	inBytesPerPixel := inShape.BytesPerPixel()
	outBytesPerPixel := outShape.BytesPerPixel()

	// Calculate output dimensions based on ROI or full image.
	var outWidth, outHeight int
	if roi != nil {
		outWidth, outHeight = roi.Dx(), roi.Dy()
	} else {
		outWidth, outHeight = srcDims.Width, srcDims.Height
	}
	outStride := outWidth * outBytesPerPixel
	inPlace := dst == nil
	if inPlace {
		outStride = srcDims.Stride
	}

	dstDims := quadfx.Dims{
		Width:  outWidth,
		Height: outHeight,
		Stride: outStride,
		Shape:  outShape,
	}

	dst, _, err := quadfx.ValidateProcessArgs(dst, dstDims, src, roi)
	if err != nil {
		return quadfx.Dims{}, err
	}

	// Determine source region to process.
	startX, startY := 0, 0
	endX, endY := srcDims.Width, srcDims.Height
	if roi != nil {
		startX, startY = roi.Min.X, roi.Min.Y
		endX, endY = roi.Max.X, roi.Max.Y
	}

	// Try to get direct buffer access for better performance.
	var srcBuf []byte
	if buffered, ok := src.(quadfx.ImageBuffered); ok {
		srcBuf = buffered.Buffer()
	}

	srcRowBytes := srcDims.SizeRow()
	rowBuf := make([]byte, srcRowBytes) // Fallback buffer for ReadAt.

	for y := startY; y < endY; y++ {
		var srcRow []byte
		srcRowStart := y * srcDims.Stride
		if srcBuf != nil {
			srcRow = srcBuf[srcRowStart : srcRowStart+srcRowBytes]
		} else {
			_, err := src.ReadAt(rowBuf, int64(srcRowStart))
			if err != nil {
				return quadfx.Dims{}, err
			}
			srcRow = rowBuf
		}

		dstY := y - startY
		dstRowStart := dstY * outStride
		srcStart := startX * inBytesPerPixel
		srcEnd := endX * inBytesPerPixel

		f.Fn(dst[dstRowStart:dstRowStart+outWidth*outBytesPerPixel], srcRow[srcStart:srcEnd], inBytesPerPixel)
	}

	return dstDims, nil
}

var errNilPixelFunc = errorString("nil PointFunc")

type errorString string

func (e errorString) Error() string { return string(e) }
