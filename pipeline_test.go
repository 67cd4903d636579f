package imgadjust

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformBuffer(w, h int, c color.RGBA) *PixelBuffer {
	buf := NewPixelBuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf.SetRGB(x, y, c.R, c.G, c.B)
		}
	}
	return buf
}

// gradientBuffer covers every channel value at least once.
func gradientBuffer(w, h int) *PixelBuffer {
	buf := NewPixelBuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := (y*w + x) % 256
			buf.SetRGB(x, y, uint8(v), uint8(255-v), uint8((v*7)%256))
		}
	}
	return buf
}

func TestBrightnessContrastExample(t *testing.T) {
	src := uniformBuffer(4, 4, color.RGBA{R: 128, G: 128, B: 128})

	out := BrightnessContrast(src, 70, 50)
	require.NotNil(t, out)
	assert.Equal(t, 4, out.Width)
	assert.Equal(t, 4, out.Height)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, color.RGBA{R: 148, G: 148, B: 148, A: 0xFF}, out.RGBAt(x, y))
		}
	}
}

func TestColorCurvesExample(t *testing.T) {
	src := uniformBuffer(4, 4, color.RGBA{R: 128, G: 128, B: 128})

	out := ColorCurves(src, 100, 50, 0)
	require.NotNil(t, out)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, color.RGBA{R: 255, G: 128, B: 0, A: 0xFF}, out.RGBAt(x, y))
		}
	}
}

func TestNeutralTransformsAreIdentity(t *testing.T) {
	src := gradientBuffer(32, 16)

	bc := BrightnessContrastLUT(50, 50)
	assert.True(t, bc.Identity())
	assert.True(t, BrightnessContrast(src, 50, 50).Equal(src))

	curve := CurveLUT(50)
	assert.True(t, curve.Identity())
	assert.True(t, ColorCurves(src, 50, 50, 50).Equal(src))
}

func TestBrightnessContrastMonotonicAndBounded(t *testing.T) {
	for c := 0; c <= 100; c += 5 {
		for b := 0; b <= 100; b += 5 {
			l := BrightnessContrastLUT(b, c)
			for v := 1; v < 256; v++ {
				if l[v] < l[v-1] {
					t.Fatalf("not monotonic at b=%d c=%d v=%d: %d < %d", b, c, v, l[v], l[v-1])
				}
			}
		}
	}
}

func TestBrightnessContrastClamps(t *testing.T) {
	l := BrightnessContrastLUT(0, 50)
	assert.Equal(t, uint8(0), l[0])
	assert.Equal(t, uint8(0), l[50])
	assert.Equal(t, uint8(1), l[51])

	l = BrightnessContrastLUT(100, 100)
	assert.Equal(t, uint8(50), l[0])
	assert.Equal(t, uint8(255), l[200])
	assert.Equal(t, uint8(255), l[255])

	l = BrightnessContrastLUT(50, 0)
	for v := range l {
		assert.Equal(t, uint8(0), l[v])
	}
}

func TestBrightnessContrastRoundsHalfToEven(t *testing.T) {
	// 1*25/50 = 0.5, 3*25/50 = 1.5
	l := BrightnessContrastLUT(50, 25)
	assert.Equal(t, uint8(0), l[1])
	assert.Equal(t, uint8(2), l[3])
	assert.Equal(t, uint8(2), l[4])
}

func TestCurveLUTTruncates(t *testing.T) {
	l := CurveLUT(75)
	assert.Equal(t, uint8(1), l[1]) // 1.5
	assert.Equal(t, uint8(4), l[3]) // 4.5
	assert.Equal(t, uint8(255), l[200])

	l = CurveLUT(0)
	for v := range l {
		assert.Equal(t, uint8(0), l[v])
	}
}

func TestAdjustDoesNotCompose(t *testing.T) {
	src := gradientBuffer(16, 16)
	p := DefaultParameters()
	p.Brightness = 80
	p.RedGain = 20

	curves := Adjust(src, p, FamilyColorCurves)
	assert.True(t, curves.Equal(ColorCurves(src, 20, 50, 50)))

	bc := Adjust(src, p, FamilyBrightnessContrast)
	assert.True(t, bc.Equal(BrightnessContrast(src, 80, 50)))

	assert.True(t, Adjust(src, p, FamilyScale).Equal(src))
}

func TestAdjustKeepsOriginal(t *testing.T) {
	src := gradientBuffer(8, 8)
	before := src.Clone()

	_ = Adjust(src, Parameters{Brightness: 100, Contrast: 100}, FamilyBrightnessContrast)
	_ = Adjust(src, Parameters{RedGain: 0, GreenGain: 100, BlueGain: 7}, FamilyColorCurves)

	assert.True(t, src.Equal(before))
}

func TestAdjustNilOriginal(t *testing.T) {
	assert.Nil(t, Adjust(nil, DefaultParameters(), FamilyBrightnessContrast))
	assert.Nil(t, BrightnessContrast(nil, 50, 50))
	assert.Nil(t, ColorCurves(nil, 50, 50, 50))
}

func TestMatchSize(t *testing.T) {
	src := uniformBuffer(6, 4, color.RGBA{R: 10, G: 20, B: 30})

	same := matchSize(src, 6, 4)
	assert.Same(t, src, same)

	resized := matchSize(src, 3, 2)
	assert.Equal(t, 3, resized.Width)
	assert.Equal(t, 2, resized.Height)
	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 0xFF}, resized.RGBAt(2, 1))
}
