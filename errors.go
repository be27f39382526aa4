package quadfx

import "errors"

// Error taxonomy shared by the codec, filters and store packages.
// Callers match with errors.Is; concrete causes are wrapped with %w.
var (
	// ErrDecode is returned when input bytes are not a supported image encoding.
	ErrDecode = errors.New("image decode failed")
	// ErrUnsupportedChannelLayout is returned when a decoded image is not 3 or 4 bytes per pixel.
	ErrUnsupportedChannelLayout = errors.New("unsupported channel layout")
	// ErrEncode is returned when the codec fails to write an image.
	ErrEncode = errors.New("image encode failed")
	// ErrInvalidParameter is returned for out of range effect parameters.
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrNotLoaded        = errors.New("no image loaded")
	ErrDimsMismatch     = errors.New("buffer dimensions mismatch")
	ErrReleased         = errors.New("buffer released")
	// ErrUnsupportedPath is returned for paths without a .png or .jpg extension.
	ErrUnsupportedPath = errors.New("file type not supported")
)
