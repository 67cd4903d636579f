package imgadjust

const (
	minLevel     = 0
	maxLevel     = 100
	neutralLevel = 50

	minScale     = 10
	maxScale     = 200
	defaultScale = 100
)

const (
	defaultJPEGQuality = 95
	defaultSaveExt     = ".jpg"
)

const (
	labelOriginal = "Original Image"
	labelEdited   = "Edited Image"
)
