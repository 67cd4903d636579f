package imgadjust

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Channel indexes within a PixelBuffer pixel.
const (
	ChannelRed = iota
	ChannelGreen
	ChannelBlue

	channels = 3
)

// PixelBuffer stores an 8-bit RGB raster, channel order R, G, B.
// Pix holds Height rows of Stride pixels, each pixel taking 3 bytes.
type PixelBuffer struct {
	Width  int
	Height int
	Stride int // pixels per row, in RGB triplets
	Pix    []uint8
}

// NewPixelBuffer allocates a zeroed buffer of the given dimensions.
func NewPixelBuffer(width, height int) *PixelBuffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Stride: width,
		Pix:    make([]uint8, width*height*channels),
	}
}

// FromImage converts img to a PixelBuffer. Alpha is discarded, colors are taken unpremultiplied.
func FromImage(img image.Image) *PixelBuffer {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := NewPixelBuffer(w, h)

	src, ok := img.(*image.NRGBA)
	if !ok {
		src = image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(src, src.Rect, img, b.Min, draw.Src)
	}

	parallelFor(h, func(start, end int) {
		for y := start; y < end; y++ {
			row := src.Pix[src.PixOffset(src.Rect.Min.X, src.Rect.Min.Y+y):]
			dst := out.Pix[y*out.Stride*channels:]
			for x := 0; x < w; x++ {
				s := x * 4
				d := x * channels
				dst[d+0] = row[s+0]
				dst[d+1] = row[s+1]
				dst[d+2] = row[s+2]
			}
		}
	})
	return out
}

// Image returns an opaque NRGBA copy of the buffer.
func (p *PixelBuffer) Image() *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, p.Width, p.Height))
	parallelFor(p.Height, func(start, end int) {
		for y := start; y < end; y++ {
			row := p.Pix[y*p.Stride*channels:]
			out := dst.Pix[y*dst.Stride:]
			for x := 0; x < p.Width; x++ {
				s := x * channels
				d := x * 4
				out[d+0] = row[s+0]
				out[d+1] = row[s+1]
				out[d+2] = row[s+2]
				out[d+3] = 0xFF
			}
		}
	})
	return dst
}

// Clone returns a deep copy with a compact stride.
func (p *PixelBuffer) Clone() *PixelBuffer {
	if p == nil {
		return nil
	}
	out := NewPixelBuffer(p.Width, p.Height)
	rowSize := p.Width * channels
	for y := 0; y < p.Height; y++ {
		copy(out.Pix[y*rowSize:(y+1)*rowSize], p.Pix[y*p.Stride*channels:])
	}
	return out
}

// RGBAt returns the channel values at (x, y).
func (p *PixelBuffer) RGBAt(x, y int) color.RGBA {
	i := (y*p.Stride + x) * channels
	return color.RGBA{R: p.Pix[i], G: p.Pix[i+1], B: p.Pix[i+2], A: 0xFF}
}

// SetRGB sets the channel values at (x, y).
func (p *PixelBuffer) SetRGB(x, y int, r, g, b uint8) {
	i := (y*p.Stride + x) * channels
	p.Pix[i] = r
	p.Pix[i+1] = g
	p.Pix[i+2] = b
}

// Equal reports whether both buffers have the same dimensions and pixel data.
func (p *PixelBuffer) Equal(o *PixelBuffer) bool {
	if p == nil || o == nil {
		return p == o
	}
	if p.Width != o.Width || p.Height != o.Height {
		return false
	}
	rowSize := p.Width * channels
	for y := 0; y < p.Height; y++ {
		a := p.Pix[y*p.Stride*channels : y*p.Stride*channels+rowSize]
		b := o.Pix[y*o.Stride*channels : y*o.Stride*channels+rowSize]
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
	}
	return true
}

// Bounds returns the buffer rectangle anchored at the origin.
func (p *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.Width, p.Height)
}
