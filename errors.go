package imgadjust

import "errors"

var (
	// ErrDecodeFailure is returned when the selected file is not a readable image.
	ErrDecodeFailure = errors.New("decode failure")
	// ErrNoImageLoaded is returned by operations that need a loaded image.
	ErrNoImageLoaded = errors.New("no image loaded")
	// ErrEncodeFailure is returned when the edited image can not be written.
	ErrEncodeFailure = errors.New("encode failure")
	// ErrUnsupportedFormat is returned for file extensions without a codec.
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrInvalidParameter is returned for out-of-range control values.
	ErrInvalidParameter = errors.New("invalid parameter")
)
