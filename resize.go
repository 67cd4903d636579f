package imgadjust

import (
	"fmt"
	"strings"

	"github.com/nfnt/resize"
)

// Interpolation selects the resampling algorithm.
type Interpolation int

const (
	// InterpolationArea averages the covered source area when downscaling
	// and interpolates linearly when upscaling.
	InterpolationArea Interpolation = iota
	// InterpolationNearest is nearest-neighbor sampling.
	InterpolationNearest
	// InterpolationBilinear is linear sampling.
	InterpolationBilinear
	// InterpolationBicubic is cubic sampling.
	InterpolationBicubic
	// InterpolationMitchellNetravali is Mitchell-Netravali sampling.
	InterpolationMitchellNetravali
	// InterpolationLanczos2 is Lanczos sampling with a=2.
	InterpolationLanczos2
	// InterpolationLanczos3 is Lanczos sampling with a=3.
	InterpolationLanczos3
)

var interpolationNames = [...]string{"area", "nearest", "bilinear", "bicubic", "mitchell", "lanczos2", "lanczos3"}

func (i Interpolation) String() string {
	if i < 0 || int(i) >= len(interpolationNames) {
		return fmt.Sprintf("interpolation(%d)", int(i))
	}
	return interpolationNames[i]
}

// ParseInterpolation resolves an interpolation by name.
func ParseInterpolation(name string) (Interpolation, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range interpolationNames {
		if n == name {
			return Interpolation(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown interpolation %q", ErrInvalidParameter, name)
}

// Resample returns src resized to w×h. Dimensions below 1 are raised to 1.
func Resample(src *PixelBuffer, w, h int, interp Interpolation) *PixelBuffer {
	if src == nil {
		return nil
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if src.Width == 0 || src.Height == 0 {
		return NewPixelBuffer(w, h)
	}
	if w == src.Width && h == src.Height {
		return src.Clone()
	}

	switch interp {
	case InterpolationArea:
		out := NewPixelBuffer(w, h)
		pix := resampleRGB8(src.Pix, src.Width, src.Height, src.Stride*channels, w, h, areaKernelDef)
		copyRGB8(out.Pix, out.Stride*channels, w, h, pix)
		return out
	case InterpolationNearest:
		out := NewPixelBuffer(w, h)
		nearestScale(out, src)
		return out
	default:
		return FromImage(resize.Resize(uint(w), uint(h), src.Image(), nfntInterpolation(interp)))
	}
}

func nfntInterpolation(interp Interpolation) resize.InterpolationFunction {
	switch interp {
	case InterpolationBicubic:
		return resize.Bicubic
	case InterpolationMitchellNetravali:
		return resize.MitchellNetravali
	case InterpolationLanczos2:
		return resize.Lanczos2
	case InterpolationLanczos3:
		return resize.Lanczos3
	default:
		return resize.Bilinear
	}
}

func nearestScale(dst, src *PixelBuffer) {
	sw, sh := src.Width, src.Height
	dw, dh := dst.Width, dst.Height
	parallelFor(dh, func(start, end int) {
		for y := start; y < end; y++ {
			sy := y * sh / dh
			in := src.Pix[sy*src.Stride*channels:]
			row := dst.Pix[y*dst.Stride*channels:]
			for x := 0; x < dw; x++ {
				sx := x * sw / dw
				copy(row[x*channels:x*channels+channels], in[sx*channels:sx*channels+channels])
			}
		}
	})
}
