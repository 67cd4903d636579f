package imgadjust

// LUT maps an input channel intensity to an output intensity.
type LUT [256]uint8

// Identity reports whether the table maps every value to itself.
func (l *LUT) Identity() bool {
	for i, v := range l {
		if int(v) != i {
			return false
		}
	}
	return true
}

// BrightnessContrastLUT builds the table for v*(contrast/50) + (brightness-50),
// rounded half to even and clamped to [0, 255].
func BrightnessContrastLUT(brightness, contrast int) LUT {
	var l LUT
	offset := neutralLevel * (brightness - neutralLevel)
	for v := range l {
		// Scaled by 50 to keep the arithmetic exact.
		l[v] = roundDiv50(v*contrast + offset)
	}
	return l
}

// CurveLUT builds the table i*gain/50 clamped to [0, 255], truncated toward zero.
func CurveLUT(gain int) LUT {
	var l LUT
	for i := range l {
		v := i * gain / neutralLevel
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		l[i] = uint8(v)
	}
	return l
}

func roundDiv50(num int) uint8 {
	if num <= 0 {
		return 0
	}
	q, r := num/neutralLevel, num%neutralLevel
	if 2*r > neutralLevel || (2*r == neutralLevel && q%2 == 1) {
		q++
	}
	if q > 255 {
		return 255
	}
	return uint8(q)
}

// BrightnessContrast applies the brightness/contrast transform uniformly to all channels of src.
// It returns nil for a nil source.
func BrightnessContrast(src *PixelBuffer, brightness, contrast int) *PixelBuffer {
	if src == nil {
		return nil
	}
	l := BrightnessContrastLUT(brightness, contrast)
	out := applyLUT(src, &l, &l, &l)
	return matchSize(out, src.Width, src.Height)
}

// ColorCurves applies an independent gain curve to each channel of src.
// It returns nil for a nil source.
func ColorCurves(src *PixelBuffer, redGain, greenGain, blueGain int) *PixelBuffer {
	if src == nil {
		return nil
	}
	r, g, b := CurveLUT(redGain), CurveLUT(greenGain), CurveLUT(blueGain)
	out := applyLUT(src, &r, &g, &b)
	return matchSize(out, src.Width, src.Height)
}

// Adjust recomputes an edited buffer from original using the transform of family.
// The families do not compose: the result depends only on original and the parameters
// of the given family. FamilyScale yields an unmodified copy.
func Adjust(original *PixelBuffer, p Parameters, family Family) *PixelBuffer {
	if original == nil {
		return nil
	}
	switch family {
	case FamilyBrightnessContrast:
		return BrightnessContrast(original, p.Brightness, p.Contrast)
	case FamilyColorCurves:
		return ColorCurves(original, p.RedGain, p.GreenGain, p.BlueGain)
	default:
		return original.Clone()
	}
}

func applyLUT(src *PixelBuffer, r, g, b *LUT) *PixelBuffer {
	out := NewPixelBuffer(src.Width, src.Height)
	parallelFor(src.Height, func(start, end int) {
		for y := start; y < end; y++ {
			in := src.Pix[y*src.Stride*channels:]
			row := out.Pix[y*out.Stride*channels:]
			for x := 0; x < src.Width; x++ {
				off := x * channels
				row[off+0] = r[in[off+0]]
				row[off+1] = g[in[off+1]]
				row[off+2] = b[in[off+2]]
			}
		}
	})
	return out
}

// matchSize resamples buf to w×h when its dimensions drifted.
func matchSize(buf *PixelBuffer, w, h int) *PixelBuffer {
	if buf.Width == w && buf.Height == h {
		return buf
	}
	return Resample(buf, w, h, InterpolationArea)
}
