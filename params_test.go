package imgadjust

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParameters(t *testing.T) {
	p := DefaultParameters()
	require.NoError(t, p.Validate())
	assert.Equal(t, Parameters{
		Brightness: 50, Contrast: 50, RedGain: 50, GreenGain: 50, BlueGain: 50, ScalePercent: 100,
	}, p)
}

func TestControlRanges(t *testing.T) {
	for _, c := range Controls() {
		lo, hi := c.Range()
		assert.NoError(t, c.Check(lo), c.String())
		assert.NoError(t, c.Check(hi), c.String())
		assert.True(t, errors.Is(c.Check(lo-1), ErrInvalidParameter), c.String())
		assert.True(t, errors.Is(c.Check(hi+1), ErrInvalidParameter), c.String())
	}

	lo, hi := ControlScale.Range()
	assert.Equal(t, 10, lo)
	assert.Equal(t, 200, hi)
}

func TestParseControl(t *testing.T) {
	for _, c := range Controls() {
		parsed, err := ParseControl(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	c, err := ParseControl(" Red ")
	require.NoError(t, err)
	assert.Equal(t, ControlRed, c)

	_, err = ParseControl("saturation")
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestControlFamily(t *testing.T) {
	assert.Equal(t, FamilyBrightnessContrast, ControlBrightness.Family())
	assert.Equal(t, FamilyBrightnessContrast, ControlContrast.Family())
	assert.Equal(t, FamilyColorCurves, ControlRed.Family())
	assert.Equal(t, FamilyColorCurves, ControlGreen.Family())
	assert.Equal(t, FamilyColorCurves, ControlBlue.Family())
	assert.Equal(t, FamilyScale, ControlScale.Family())
}

func TestParametersValidate(t *testing.T) {
	p := DefaultParameters()
	p.ScalePercent = 5
	assert.ErrorIs(t, p.Validate(), ErrInvalidParameter)

	p = DefaultParameters()
	p.BlueGain = 101
	assert.ErrorIs(t, p.Validate(), ErrInvalidParameter)
}
