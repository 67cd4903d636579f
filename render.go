package imgadjust

import (
	"image"
	"math"
	"sync"
)

// Surface displays rendered bitmaps. Show replaces the visible bitmap in place.
type Surface interface {
	Show(bitmap *image.NRGBA)
}

// Canvas is an in-memory Surface. It keeps the last shown bitmap alive
// for as long as the canvas exists.
type Canvas struct {
	Label string

	mu     sync.Mutex
	bitmap *image.NRGBA
	shown  int
}

// NewCanvas creates an empty labelled canvas.
func NewCanvas(label string) *Canvas {
	return &Canvas{Label: label}
}

// Show implements Surface.
func (c *Canvas) Show(bitmap *image.NRGBA) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.bitmap = bitmap
	c.shown++
}

// Bitmap returns the currently displayed bitmap or nil.
func (c *Canvas) Bitmap() *image.NRGBA {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.bitmap
}

// Size returns the dimensions of the displayed bitmap.
func (c *Canvas) Size() (w, h int) {
	b := c.Bitmap()
	if b == nil {
		return 0, 0
	}
	return b.Rect.Dx(), b.Rect.Dy()
}

// Renders returns how many bitmaps were shown.
func (c *Canvas) Renders() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.shown
}

// PreviewSize returns the display dimensions of a w×h buffer at scale percent,
// rounded to nearest and at least 1 pixel each.
func PreviewSize(w, h, scale int) (int, int) {
	pw := int(math.Round(float64(w) * float64(scale) / 100))
	ph := int(math.Round(float64(h) * float64(scale) / 100))
	if pw < 1 {
		pw = 1
	}
	if ph < 1 {
		ph = 1
	}
	return pw, ph
}

// Renderer produces display bitmaps from pixel buffers.
type Renderer struct {
	Interpolation Interpolation
}

// Bitmap returns buf resized for scale percent as a displayable image.
// It returns nil for a nil buffer.
func (r Renderer) Bitmap(buf *PixelBuffer, scale int) *image.NRGBA {
	if buf == nil {
		return nil
	}
	w, h := PreviewSize(buf.Width, buf.Height, scale)
	if w == buf.Width && h == buf.Height {
		return buf.Image()
	}
	return Resample(buf, w, h, r.Interpolation).Image()
}

// Render displays buf on surface at scale percent.
// Rendering a nil buffer is reported and otherwise ignored.
func (r Renderer) Render(surface Surface, buf *PixelBuffer, scale int) {
	if buf == nil {
		Logger().Warn("no image to display")
		return
	}
	if surface == nil {
		return
	}
	surface.Show(r.Bitmap(buf, scale))
}

// Render displays buf on surface at scale percent using area resampling.
func Render(surface Surface, buf *PixelBuffer, scale int) {
	Renderer{Interpolation: InterpolationArea}.Render(surface, buf, scale)
}
