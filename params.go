package imgadjust

import (
	"fmt"
	"strings"
)

// Parameters holds the slider state that determines the edited buffer.
type Parameters struct {
	Brightness   int // [0, 100], 50 is neutral
	Contrast     int // [0, 100], 50 is neutral
	RedGain      int // [0, 100], 50 is neutral
	GreenGain    int // [0, 100], 50 is neutral
	BlueGain     int // [0, 100], 50 is neutral
	ScalePercent int // [10, 200], 100 is actual size
}

// DefaultParameters returns neutral adjustments at 100% scale.
func DefaultParameters() Parameters {
	return Parameters{
		Brightness:   neutralLevel,
		Contrast:     neutralLevel,
		RedGain:      neutralLevel,
		GreenGain:    neutralLevel,
		BlueGain:     neutralLevel,
		ScalePercent: defaultScale,
	}
}

// Validate checks every value against its control range.
func (p Parameters) Validate() error {
	for _, c := range Controls() {
		if err := c.Check(p.Get(c)); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the value of a control.
func (p Parameters) Get(c Control) int {
	switch c {
	case ControlBrightness:
		return p.Brightness
	case ControlContrast:
		return p.Contrast
	case ControlRed:
		return p.RedGain
	case ControlGreen:
		return p.GreenGain
	case ControlBlue:
		return p.BlueGain
	case ControlScale:
		return p.ScalePercent
	default:
		return 0
	}
}

func (p *Parameters) set(c Control, v int) {
	switch c {
	case ControlBrightness:
		p.Brightness = v
	case ControlContrast:
		p.Contrast = v
	case ControlRed:
		p.RedGain = v
	case ControlGreen:
		p.GreenGain = v
	case ControlBlue:
		p.BlueGain = v
	case ControlScale:
		p.ScalePercent = v
	}
}

// Family groups controls that trigger the same transform.
type Family int

const (
	// FamilyBrightnessContrast is triggered by brightness and contrast.
	FamilyBrightnessContrast Family = iota
	// FamilyColorCurves is triggered by red, green and blue gains.
	FamilyColorCurves
	// FamilyScale only changes preview size.
	FamilyScale
)

func (f Family) String() string {
	switch f {
	case FamilyBrightnessContrast:
		return "brightness-contrast"
	case FamilyColorCurves:
		return "color-curves"
	case FamilyScale:
		return "scale"
	default:
		return fmt.Sprintf("family(%d)", int(f))
	}
}

// Control identifies one slider.
type Control int

const (
	ControlBrightness Control = iota
	ControlContrast
	ControlRed
	ControlGreen
	ControlBlue
	ControlScale
)

var controlNames = [...]string{"brightness", "contrast", "red", "green", "blue", "scale"}

// Controls lists all sliders in display order.
func Controls() []Control {
	return []Control{ControlBrightness, ControlContrast, ControlRed, ControlGreen, ControlBlue, ControlScale}
}

// ParseControl resolves a control by name, case-insensitively.
func ParseControl(name string) (Control, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range controlNames {
		if n == name {
			return Control(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown control %q", ErrInvalidParameter, name)
}

func (c Control) String() string {
	if c < 0 || int(c) >= len(controlNames) {
		return fmt.Sprintf("control(%d)", int(c))
	}
	return controlNames[c]
}

// Family returns the transform family the control triggers.
func (c Control) Family() Family {
	switch c {
	case ControlBrightness, ControlContrast:
		return FamilyBrightnessContrast
	case ControlRed, ControlGreen, ControlBlue:
		return FamilyColorCurves
	default:
		return FamilyScale
	}
}

// Range returns the inclusive bounds of the control.
func (c Control) Range() (lo, hi int) {
	if c == ControlScale {
		return minScale, maxScale
	}
	return minLevel, maxLevel
}

// Check validates v against the control range.
func (c Control) Check(v int) error {
	lo, hi := c.Range()
	if v < lo || v > hi {
		return fmt.Errorf("%w: %s=%d out of range [%d, %d]", ErrInvalidParameter, c, v, lo, hi)
	}
	return nil
}
