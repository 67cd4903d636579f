package imgadjust

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"sync"
	"time"
)

// State is the lifecycle state of a Session.
type State int

const (
	// StateEmpty means no image is loaded and adjustment controls are disabled.
	StateEmpty State = iota
	// StateLoaded means an image is present and controls are enabled.
	StateLoaded
)

func (s State) String() string {
	if s == StateLoaded {
		return "loaded"
	}
	return "empty"
}

// SessionOptions controls Session behavior.
type SessionOptions struct {
	// Interpolation selects the preview resampler.
	Interpolation  Interpolation
	JPEGQuality    int
	PNGCompression png.CompressionLevel
	// AutoOrient applies the EXIF orientation of loaded JPEG files.
	AutoOrient bool
	// Logger overrides the package logger for this session.
	Logger *slog.Logger
}

// Session owns the original and edited buffers of one image and the current
// adjustment parameters. The edited buffer is always recomputed from the
// original and swapped in whole, so readers never observe partial results.
type Session struct {
	mu sync.Mutex

	original *PixelBuffer
	edited   *PixelBuffer
	params   Parameters
	format   string
	// gen changes whenever the pixel state or the pixel controls change.
	// An adjustment publishes only if gen is the one it started from.
	gen uint64

	// afterCompute runs between computing and publishing an adjustment.
	afterCompute func()

	opt      SessionOptions
	renderer Renderer

	originalSurface Surface
	editedSurface   Surface
}

// NewSession creates an empty session rendering to the given surfaces.
// Either surface may be nil.
func NewSession(originalSurface, editedSurface Surface, opts ...func(o *SessionOptions)) *Session {
	opt := SessionOptions{
		Interpolation: InterpolationArea,
		JPEGQuality:   defaultJPEGQuality,
		AutoOrient:    true,
	}
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}

	return &Session{
		params:          DefaultParameters(),
		opt:             opt,
		renderer:        Renderer{Interpolation: opt.Interpolation},
		originalSurface: originalSurface,
		editedSurface:   editedSurface,
	}
}

func (s *Session) logger() *slog.Logger {
	if s.opt.Logger != nil {
		return s.opt.Logger
	}
	return Logger()
}

// State returns the lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.original == nil {
		return StateEmpty
	}
	return StateLoaded
}

// ControlsEnabled reports whether adjustment sliders and Reset/Save are enabled.
func (s *Session) ControlsEnabled() bool {
	return s.State() == StateLoaded
}

// Parameters returns the current slider values.
func (s *Session) Parameters() Parameters {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.params
}

// Format returns the decoder name of the loaded image, e.g. "jpeg".
func (s *Session) Format() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.format
}

// Original returns a copy of the original buffer, or nil when empty.
func (s *Session) Original() *PixelBuffer {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.original.Clone()
}

// Edited returns a copy of the edited buffer, or nil when empty.
func (s *Session) Edited() *PixelBuffer {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.edited.Clone()
}

// Load decodes the image at path and makes it the original.
// On failure the session is left untouched and the error wraps ErrDecodeFailure.
func (s *Session) Load(path string) error {
	buf, format, err := DecodeFile(path, s.opt.AutoOrient)
	if err != nil {
		s.logger().Error("unable to load image", "path", path, "error", err)
		return err
	}

	s.load(buf, format)
	s.logger().Info("image loaded", "path", path, "format", format, "width", buf.Width, "height", buf.Height)
	return nil
}

// LoadImage makes an in-memory image the original.
func (s *Session) LoadImage(img image.Image) error {
	if img == nil || img.Bounds().Empty() {
		return fmt.Errorf("%w: empty image", ErrDecodeFailure)
	}
	s.load(FromImage(img), "")
	return nil
}

func (s *Session) load(buf *PixelBuffer, format string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.original = buf
	s.edited = buf.Clone()
	s.format = format
	s.params = DefaultParameters()
	s.gen++
	s.renderLocked()
}

// Set validates and stores one control value without recomputing anything.
func (s *Session) Set(c Control, v int) error {
	if c < ControlBrightness || c > ControlScale {
		return fmt.Errorf("%w: unknown control %d", ErrInvalidParameter, int(c))
	}
	if err := c.Check(v); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.params.set(c, v)
	if c.Family() != FamilyScale {
		s.gen++
	}
	return nil
}

// Apply sets a control and triggers its family, as moving a slider does.
func (s *Session) Apply(c Control, v int) error {
	if err := s.Set(c, v); err != nil {
		return err
	}
	switch c.Family() {
	case FamilyBrightnessContrast:
		s.AdjustBrightnessContrast()
	case FamilyColorCurves:
		s.AdjustColorCurves()
	default:
		s.Rescale()
	}
	return nil
}

// AdjustBrightnessContrast recomputes the edited buffer from the original using the
// current brightness and contrast, then re-renders. It is a no-op when empty.
func (s *Session) AdjustBrightnessContrast() {
	s.adjust(FamilyBrightnessContrast)
}

// AdjustColorCurves recomputes the edited buffer from the original using the
// current channel gains, then re-renders. It is a no-op when empty.
func (s *Session) AdjustColorCurves() {
	s.adjust(FamilyColorCurves)
}

func (s *Session) adjust(family Family) {
	s.mu.Lock()
	original, params, gen := s.original, s.params, s.gen
	s.mu.Unlock()

	if original == nil {
		return
	}

	started := time.Now()
	edited := Adjust(original, params, family)

	if s.afterCompute != nil {
		s.afterCompute()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Load, Reset or a newer control value landed while computing.
	if s.gen != gen {
		s.logger().Debug("dropped stale adjustment", "family", family.String())
		return
	}
	s.gen++
	s.edited = edited
	s.renderLocked()

	s.logger().Debug("adjusted",
		"family", family.String(),
		"brightness", params.Brightness,
		"contrast", params.Contrast,
		"red", params.RedGain,
		"green", params.GreenGain,
		"blue", params.BlueGain,
		"elapsed", time.Since(started),
	)
}

// Reset restores the edited buffer to the original and all controls except scale
// to their defaults, then re-renders at the current scale. It is a no-op when empty.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.original == nil {
		return
	}
	scale := s.params.ScalePercent
	s.edited = s.original.Clone()
	s.params = DefaultParameters()
	s.params.ScalePercent = scale
	s.gen++
	s.renderLocked()
}

// Rescale re-renders both previews at the current scale without touching pixel data.
func (s *Session) Rescale() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.original == nil {
		return
	}
	s.renderLocked()
}

// PreviewSize returns the display size of the original at the current scale.
func (s *Session) PreviewSize() (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.original == nil {
		return 0, 0, ErrNoImageLoaded
	}
	w, h := PreviewSize(s.original.Width, s.original.Height, s.params.ScalePercent)
	return w, h, nil
}

// Save writes the edited buffer to path in the format implied by its extension.
// The edited buffer is unaffected by failures.
func (s *Session) Save(path string) error {
	s.mu.Lock()
	edited := s.edited
	s.mu.Unlock()

	if edited == nil {
		s.logger().Error("no image to save")
		return ErrNoImageLoaded
	}

	err := EncodeFile(path, edited, EncodeOptions{
		JPEGQuality:    s.opt.JPEGQuality,
		PNGCompression: s.opt.PNGCompression,
	})
	if err != nil {
		s.logger().Error("unable to save image", "path", path, "error", err)
		return fmt.Errorf("save %s: %w", path, err)
	}

	s.logger().Info("image saved", "path", path)
	return nil
}

func (s *Session) renderLocked() {
	scale := s.params.ScalePercent
	s.renderer.Render(s.originalSurface, s.original, scale)
	s.renderer.Render(s.editedSurface, s.edited, scale)
}
