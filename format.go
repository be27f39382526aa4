package quadfx

// Format identifies the Go pixel model an image was decoded from
// so that it can be rebuilt identically on encode.
type Format int

const (
	formatUndefined Format = iota
	// FormatNRGBA is non-premultiplied RGBA, as decoded from most PNG files.
	FormatNRGBA
	// FormatRGBA is alpha-premultiplied RGBA.
	FormatRGBA
	// FormatRGB is opaque RGB, as decoded from JPEG files.
	FormatRGB
)

func (f Format) String() string {
	switch f {
	case FormatNRGBA:
		return "nrgba"
	case FormatRGBA:
		return "rgba"
	case FormatRGB:
		return "rgb"
	default:
		return "undefined"
	}
}

// Shape returns the in-memory pixel shape used to hold images of format f.
func (f Format) Shape() Shape {
	switch f {
	case FormatNRGBA, FormatRGBA:
		return ShapeRGBA8888
	case FormatRGB:
		return ShapeRGB888
	}
	return shapeUndefined
}
