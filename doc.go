// Package imgadjust provides a pure-Go image adjustment session: brightness/contrast and
// per-channel color curves applied non-destructively to a loaded image, with scaled previews
// of the original and edited buffers and saving to the format implied by the file extension.
//
// The adjustment pipeline and the renderer are free of any UI dependency; an adapter (see
// cmd/imgadjust) drives a Session with explicit method calls.
package imgadjust
