package imgadjust

import (
	"math"
	"runtime"
	"sync"
)

type resampleWeights struct {
	coeffs       []float32
	start        []int
	filterLength int
}

type kernelDef struct {
	interp Interpolation
	taps   int
	kernel func(float64) float64
	// coverage weighs source pixels by how much of them each destination
	// pixel covers when shrinking, kernel is used only for enlarging.
	coverage bool
}

type weightsKey struct {
	src    int
	dst    int
	interp Interpolation
}

var areaKernelDef = kernelDef{interp: InterpolationArea, taps: 2, kernel: linearKernel, coverage: true}

var weightsCache sync.Map

var float32Pool = sync.Pool{
	New: func() any {
		buf := make([]float32, 0)
		return &buf
	},
}

var (
	maxParallelWorkers = 0
	workerSemOnce      sync.Once
	workerSem          chan struct{}
)

// resampleRGB8 resizes interleaved RGB rows with a separable filter,
// horizontally into a float buffer, then vertically into the result.
func resampleRGB8(src []uint8, srcW, srcH, srcStride, dstW, dstH int, def kernelDef) []uint8 {
	scaleX := float64(srcW) / float64(dstW)
	scaleY := float64(srcH) / float64(dstH)
	wx := getWeights(srcW, dstW, def, scaleX)
	wy := getWeights(srcH, dstH, def, scaleY)

	temp := getFloat32(dstW * srcH * channels)
	parallelFor(srcH, func(start, end int) {
		for y := start; y < end; y++ {
			row := src[y*srcStride:]
			outRow := temp[y*dstW*channels:]
			for x := 0; x < dstW; x++ {
				s := wx.start[x]
				base := x * wx.filterLength
				var r, g, b float32
				for i := 0; i < wx.filterLength; i++ {
					xi := s + i
					if xi < 0 {
						xi = 0
					} else if xi >= srcW {
						xi = srcW - 1
					}
					off := xi * channels
					w := wx.coeffs[base+i]
					r += float32(row[off+0]) * w
					g += float32(row[off+1]) * w
					b += float32(row[off+2]) * w
				}
				outOff := x * channels
				outRow[outOff+0] = r
				outRow[outOff+1] = g
				outRow[outOff+2] = b
			}
		}
	})

	out := make([]uint8, dstW*dstH*channels)
	parallelFor(dstH, func(start, end int) {
		for y := start; y < end; y++ {
			s := wy.start[y]
			base := y * wy.filterLength
			row := out[y*dstW*channels:]
			for x := 0; x < dstW; x++ {
				var r, g, b float32
				for i := 0; i < wy.filterLength; i++ {
					yi := s + i
					if yi < 0 {
						yi = 0
					} else if yi >= srcH {
						yi = srcH - 1
					}
					off := (yi*dstW + x) * channels
					w := wy.coeffs[base+i]
					r += temp[off+0] * w
					g += temp[off+1] * w
					b += temp[off+2] * w
				}
				outOff := x * channels
				row[outOff+0] = clampToByte(r)
				row[outOff+1] = clampToByte(g)
				row[outOff+2] = clampToByte(b)
			}
		}
	})

	putFloat32(temp)
	return out
}

func getWeights(src, dst int, def kernelDef, scale float64) resampleWeights {
	if src <= 0 || dst <= 0 {
		return resampleWeights{}
	}
	key := weightsKey{src: src, dst: dst, interp: def.interp}
	if cached, ok := weightsCache.Load(key); ok {
		return cached.(resampleWeights)
	}
	if def.coverage && scale >= 1 {
		weights := coverageWeights(dst, scale)
		weightsCache.Store(key, weights)
		return weights
	}
	kernel := def.kernel
	filterLength := def.taps * int(math.Max(math.Ceil(scale), 1))
	filterFactor := math.Min(1.0/scale, 1.0)
	coeffs := make([]float32, dst*filterLength)
	start := make([]int, dst)
	for y := 0; y < dst; y++ {
		interpX := scale*(float64(y)+0.5) - 0.5
		start[y] = int(math.Floor(interpX)) - filterLength/2 + 1
		interpX -= float64(start[y])
		base := y * filterLength
		var sum float64
		for i := 0; i < filterLength; i++ {
			in := (interpX - float64(i)) * filterFactor
			w := kernel(in)
			coeffs[base+i] = float32(w)
			sum += w
		}
		normalize(coeffs[base:base+filterLength], sum)
	}
	weights := resampleWeights{coeffs: coeffs, start: start, filterLength: filterLength}
	weightsCache.Store(key, weights)
	return weights
}

// coverageWeights maps destination pixel y to the source span
// [y*scale, (y+1)*scale) and weighs each source pixel by its overlap with it.
func coverageWeights(dst int, scale float64) resampleWeights {
	filterLength := int(math.Ceil(scale)) + 1
	coeffs := make([]float32, dst*filterLength)
	start := make([]int, dst)
	for y := 0; y < dst; y++ {
		lo, hi := float64(y)*scale, float64(y+1)*scale
		start[y] = int(math.Floor(lo))
		base := y * filterLength
		var sum float64
		for i := 0; i < filterLength; i++ {
			p := float64(start[y] + i)
			w := math.Min(hi, p+1) - math.Max(lo, p)
			if w <= 0 {
				continue
			}
			coeffs[base+i] = float32(w)
			sum += w
		}
		normalize(coeffs[base:base+filterLength], sum)
	}
	return resampleWeights{coeffs: coeffs, start: start, filterLength: filterLength}
}

func normalize(coeffs []float32, sum float64) {
	if sum == 0 {
		return
	}
	inv := float32(1.0 / sum)
	for i := range coeffs {
		coeffs[i] *= inv
	}
}

// parallelFor splits [0, total) into contiguous chunks processed concurrently.
// It returns when every chunk is done.
func parallelFor(total int, fn func(start, end int)) {
	if total <= 0 {
		return
	}
	capacity := runtime.GOMAXPROCS(0)
	if maxParallelWorkers > 0 && capacity > maxParallelWorkers {
		capacity = maxParallelWorkers
	}
	if capacity < 1 {
		capacity = 1
	}
	workerSemOnce.Do(func() {
		workerSem = make(chan struct{}, capacity)
	})
	if cap(workerSem) < capacity {
		capacity = cap(workerSem)
		if capacity < 1 {
			capacity = 1
		}
	}
	workers := capacity
	if workers > total {
		workers = total
	}
	if workers <= 1 {
		fn(0, total)
		return
	}
	step := (total + workers - 1) / workers
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		start := i * step
		end := start + step
		if end > total {
			end = total
		}
		if start >= end {
			break
		}
		workerSem <- struct{}{}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			defer func() { <-workerSem }()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

func getFloat32(n int) []float32 {
	bufPtr := float32Pool.Get().(*[]float32)
	buf := *bufPtr
	if cap(buf) < n {
		return make([]float32, n)
	}
	return buf[:n]
}

func putFloat32(buf []float32) {
	if buf == nil {
		return
	}
	for i := range buf {
		buf[i] = 0
	}
	buf = buf[:0]
	float32Pool.Put(&buf)
}

func linearKernel(in float64) float64 {
	in = math.Abs(in)
	if in <= 1 {
		return 1 - in
	}
	return 0
}

func clampToByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

func copyRGB8(dst []uint8, dstStride, dstW, dstH int, src []uint8) {
	rowSize := dstW * channels
	for y := 0; y < dstH; y++ {
		copy(dst[y*dstStride:y*dstStride+rowSize], src[y*rowSize:(y+1)*rowSize])
	}
}
