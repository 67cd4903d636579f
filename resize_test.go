package imgadjust

import (
	"image/color"
	"testing"
)

func BenchmarkResample(b *testing.B) {
	src := gradientBuffer(1200, 800)

	benches := []struct {
		name   string
		interp Interpolation
	}{
		{name: "area", interp: InterpolationArea},
		{name: "nearest", interp: InterpolationNearest},
		{name: "bilinear", interp: InterpolationBilinear},
		{name: "lanczos3", interp: InterpolationLanczos3},
	}
	for _, bench := range benches {
		bench := bench
		b.Run(bench.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = Resample(src, 300, 200, bench.interp)
			}
		})
	}
}

func TestResampleDimensions(t *testing.T) {
	src := gradientBuffer(40, 30)

	for _, interp := range []Interpolation{
		InterpolationArea, InterpolationNearest, InterpolationBilinear, InterpolationBicubic,
		InterpolationMitchellNetravali, InterpolationLanczos2, InterpolationLanczos3,
	} {
		for _, size := range [][2]int{{20, 15}, {80, 60}, {4, 3}, {41, 29}} {
			out := Resample(src, size[0], size[1], interp)
			if out.Width != size[0] || out.Height != size[1] {
				t.Fatalf("%s: dims mismatch: got %dx%d want %dx%d", interp, out.Width, out.Height, size[0], size[1])
			}
			if len(out.Pix) != size[0]*size[1]*3 {
				t.Fatalf("%s: unexpected pix length %d", interp, len(out.Pix))
			}
		}
	}
}

func TestResampleUniformStaysUniform(t *testing.T) {
	c := color.RGBA{R: 200, G: 100, B: 50, A: 0xFF}
	src := uniformBuffer(30, 20, c)

	for _, interp := range []Interpolation{InterpolationArea, InterpolationNearest, InterpolationBilinear} {
		for _, size := range [][2]int{{15, 10}, {60, 40}, {7, 3}} {
			out := Resample(src, size[0], size[1], interp)
			for y := 0; y < out.Height; y++ {
				for x := 0; x < out.Width; x++ {
					if got := out.RGBAt(x, y); got != c {
						t.Fatalf("%s %dx%d: pixel (%d,%d) = %v, want %v", interp, size[0], size[1], x, y, got, c)
					}
				}
			}
		}
	}
}

func TestResampleAreaAveragesBlocks(t *testing.T) {
	src := NewPixelBuffer(4, 2)
	// Left 2x2 block alternates 0 and 200, right block is constant 60.
	src.SetRGB(0, 0, 0, 0, 0)
	src.SetRGB(1, 0, 200, 200, 200)
	src.SetRGB(0, 1, 200, 200, 200)
	src.SetRGB(1, 1, 0, 0, 0)
	for y := 0; y < 2; y++ {
		for x := 2; x < 4; x++ {
			src.SetRGB(x, y, 60, 60, 60)
		}
	}

	out := Resample(src, 2, 1, InterpolationArea)
	if got := out.RGBAt(0, 0); got.R != 100 || got.G != 100 || got.B != 100 {
		t.Fatalf("left block: got %v want 100", got)
	}
	if got := out.RGBAt(1, 0); got.R != 60 {
		t.Fatalf("right block: got %v want 60", got)
	}
}

func TestResampleSameSizeCopies(t *testing.T) {
	src := gradientBuffer(10, 10)
	out := Resample(src, 10, 10, InterpolationArea)
	if !out.Equal(src) {
		t.Fatal("same-size resample changed pixels")
	}
	out.SetRGB(0, 0, 1, 2, 3)
	if out.Equal(src) {
		t.Fatal("same-size resample shares memory with source")
	}
}

func TestResampleClampsToOnePixel(t *testing.T) {
	out := Resample(gradientBuffer(10, 10), 0, -3, InterpolationArea)
	if out.Width != 1 || out.Height != 1 {
		t.Fatalf("got %dx%d want 1x1", out.Width, out.Height)
	}
	if Resample(nil, 10, 10, InterpolationArea) != nil {
		t.Fatal("expected nil for nil source")
	}
}

func TestParseInterpolation(t *testing.T) {
	for i, name := range interpolationNames {
		got, err := ParseInterpolation(name)
		if err != nil {
			t.Fatalf("parse %s: %v", name, err)
		}
		if got != Interpolation(i) {
			t.Fatalf("parse %s: got %v", name, got)
		}
	}
	if _, err := ParseInterpolation("sinc"); err == nil {
		t.Fatal("expected error for unknown interpolation")
	}
}

func TestParallelForCoversRange(t *testing.T) {
	seen := make([]int, 1000)
	parallelFor(len(seen), func(start, end int) {
		for i := start; i < end; i++ {
			seen[i]++
		}
	})
	for i, n := range seen {
		if n != 1 {
			t.Fatalf("index %d visited %d times", i, n)
		}
	}
}

func TestResampleAreaFractionalRatio(t *testing.T) {
	row := NewPixelBuffer(3, 1)
	col := NewPixelBuffer(1, 3)
	for i, v := range []uint8{0, 90, 180} {
		row.SetRGB(i, 0, v, v, v)
		col.SetRGB(0, i, v, v, v)
	}

	// 3 -> 2 covers [0, 1.5) and [1.5, 3).
	out := Resample(row, 2, 1, InterpolationArea)
	if got := [2]uint8{out.RGBAt(0, 0).R, out.RGBAt(1, 0).R}; got != [2]uint8{30, 150} {
		t.Fatalf("row: got %v want [30 150]", got)
	}
	out = Resample(col, 1, 2, InterpolationArea)
	if got := [2]uint8{out.RGBAt(0, 0).G, out.RGBAt(0, 1).G}; got != [2]uint8{30, 150} {
		t.Fatalf("column: got %v want [30 150]", got)
	}

	src := NewPixelBuffer(4, 1)
	for i, v := range []uint8{0, 60, 120, 180} {
		src.SetRGB(i, 0, v, v, v)
	}
	out = Resample(src, 3, 1, InterpolationArea)
	want := [3]uint8{15, 90, 165}
	for x := 0; x < 3; x++ {
		if got := out.RGBAt(x, 0).B; got != want[x] {
			t.Fatalf("4 -> 3 pixel %d: got %d want %d", x, got, want[x])
		}
	}
}

func TestCoverageWeightsSumToOne(t *testing.T) {
	for _, c := range [][2]int{{3, 2}, {7, 3}, {100, 33}, {41, 20}} {
		w := coverageWeights(c[1], float64(c[0])/float64(c[1]))
		for y := 0; y < c[1]; y++ {
			var sum float32
			for i := 0; i < w.filterLength; i++ {
				sum += w.coeffs[y*w.filterLength+i]
			}
			if sum < 0.999 || sum > 1.001 {
				t.Fatalf("%d -> %d row %d: weights sum to %f", c[0], c[1], y, sum)
			}
		}
	}
}
