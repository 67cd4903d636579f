package imgadjust

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP decoder.
	_ "golang.org/x/image/tiff" // Register TIFF decoder.
	_ "golang.org/x/image/webp" // Register WebP decoder.
)

// EncodeOptions controls encoding of the edited image.
type EncodeOptions struct {
	JPEGQuality    int // 1-100
	PNGCompression png.CompressionLevel
}

// Decode reads an image and converts it to a PixelBuffer.
// When autoOrient is set, the EXIF orientation of JPEG input is applied.
func Decode(r io.Reader, autoOrient bool) (*PixelBuffer, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecodeFailure, err)
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecodeFailure, err)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(autoOrient))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecodeFailure, err)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, "", fmt.Errorf("%w: empty image", ErrDecodeFailure)
	}
	return FromImage(img), format, nil
}

// DecodeFile reads and decodes the image at path.
func DecodeFile(path string, autoOrient bool) (*PixelBuffer, string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecodeFailure, err)
	}
	defer f.Close()

	buf, format, err := Decode(f, autoOrient)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return buf, format, nil
}

// FormatForPath returns the encoding format implied by the path extension.
func FormatForPath(path string) (imaging.Format, error) {
	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	return f, nil
}

// Encode writes buf to w in the given format.
func Encode(w io.Writer, buf *PixelBuffer, format imaging.Format, opt EncodeOptions) error {
	if buf == nil {
		return ErrNoImageLoaded
	}
	if opt.JPEGQuality <= 0 {
		opt.JPEGQuality = defaultJPEGQuality
	}
	if err := imaging.Encode(w, buf.Image(), format,
		imaging.JPEGQuality(opt.JPEGQuality),
		imaging.PNGCompressionLevel(opt.PNGCompression),
	); err != nil {
		return fmt.Errorf("%w: %v", ErrEncodeFailure, err)
	}
	return nil
}

// EncodeFile writes buf to path in the format implied by its extension.
// Nothing is written when encoding fails.
func EncodeFile(path string, buf *PixelBuffer, opt EncodeOptions) error {
	format, err := FormatForPath(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodeFailure, err)
	}
	var out bytes.Buffer
	if err := Encode(&out, buf, format, opt); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Clean(path), out.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrEncodeFailure, err)
	}
	return nil
}

// SupportedLoadExtensions lists extensions accepted by the load filter.
func SupportedLoadExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".bmp", ".gif", ".tif", ".tiff", ".webp"}
}

// SupportedSaveExtensions lists extensions offered for saving, preferred first.
func SupportedSaveExtensions() []string {
	return []string{".jpg", ".png", ".jpeg", ".gif", ".tif", ".tiff", ".bmp"}
}

// HasLoadExtension reports whether path passes the load filter.
func HasLoadExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedLoadExtensions() {
		if e == ext {
			return true
		}
	}
	return false
}

// NormalizeSavePath appends the default .jpg extension to a path without one.
func NormalizeSavePath(path string) string {
	if path == "" || filepath.Ext(path) != "" {
		return path
	}
	return path + defaultSaveExt
}
