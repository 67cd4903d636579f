package imgadjust

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

const (
	sheetPadding     = 10
	sheetLabelHeight = 20
)

var sheetBackground = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}

// ComposeSheet draws the original and edited previews side by side on a gray
// background, each labelled above its bitmap. Missing bitmaps leave an empty slot.
func ComposeSheet(original, edited *image.NRGBA) *image.RGBA {
	slots := []struct {
		label string
		img   *image.NRGBA
	}{
		{label: labelOriginal, img: original},
		{label: labelEdited, img: edited},
	}

	width, height := sheetPadding, 0
	for _, s := range slots {
		w, h := 0, 0
		if s.img != nil {
			w, h = s.img.Bounds().Dx(), s.img.Bounds().Dy()
		}
		if w < 100 {
			w = 100
		}
		width += w + sheetPadding
		if h > height {
			height = h
		}
	}
	height += 2*sheetPadding + sheetLabelHeight

	dc := gg.NewContext(width, height)
	dc.SetColor(sheetBackground)
	dc.Clear()

	x := sheetPadding
	for _, s := range slots {
		w := 100
		if s.img != nil && s.img.Bounds().Dx() > w {
			w = s.img.Bounds().Dx()
		}
		dc.SetColor(color.White)
		dc.DrawStringAnchored(s.label, float64(x)+float64(w)/2, sheetPadding+sheetLabelHeight/2, 0.5, 0.5)
		if s.img != nil {
			dc.DrawImage(s.img, x, sheetPadding+sheetLabelHeight)
		}
		x += w + sheetPadding
	}

	return dc.Image().(*image.RGBA)
}
