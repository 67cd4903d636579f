package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/vearutop/imgadjust"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "apply":
		if err := runApply(os.Args[2:]); err != nil {
			fail(err)
		}
	case "session":
		if err := runSession(os.Args[2:], os.Stdin, os.Stdout); err != nil {
			fail(err)
		}
	case "info":
		if err := runInfo(os.Args[2:], os.Stdout); err != nil {
			fail(err)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: imgadjust <command> [args]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  apply   -in input.jpg -out output.png [-brightness 50] [-contrast 50] [-red 50] [-green 50] [-blue 50]")
	fmt.Fprintln(os.Stderr, "          [-mode bc|curves] [-scale 100] [-preview-out p.png] [-sheet-out s.png] [-q 95] [-interp area] [-v]")
	fmt.Fprintln(os.Stderr, "  session [-script commands.txt] [-interp area] [-q 95] [-v]")
	fmt.Fprintln(os.Stderr, "  info    -in input.jpg")
}

func setupLogger(verbose bool, w io.Writer) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	imgadjust.SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func sessionOptions(interp string, quality int) (func(o *imgadjust.SessionOptions), error) {
	in, err := imgadjust.ParseInterpolation(interp)
	if err != nil {
		return nil, err
	}
	return func(o *imgadjust.SessionOptions) {
		o.Interpolation = in
		o.JPEGQuality = quality
	}, nil
}

func runApply(args []string) error {
	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	inPath := fs.String("in", "", "input image")
	outPath := fs.String("out", "", "output image, format from extension (default .jpg)")
	brightness := fs.Int("brightness", 50, "brightness [0, 100]")
	contrast := fs.Int("contrast", 50, "contrast [0, 100]")
	red := fs.Int("red", 50, "red gain [0, 100]")
	green := fs.Int("green", 50, "green gain [0, 100]")
	blue := fs.Int("blue", 50, "blue gain [0, 100]")
	mode := fs.String("mode", "", "transform family: bc or curves, inferred from flags when empty")
	scale := fs.Int("scale", 100, "preview scale percent [10, 200]")
	previewOut := fs.String("preview-out", "", "write scaled edited preview")
	sheetOut := fs.String("sheet-out", "", "write side-by-side comparison sheet")
	q := fs.Int("q", 95, "JPEG quality")
	interp := fs.String("interp", "area", "preview interpolation")
	verbose := fs.Bool("v", false, "debug logging")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" || *outPath == "" {
		return errors.New("missing required arguments")
	}
	setupLogger(*verbose, os.Stderr)

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	family, err := applyFamily(*mode, set)
	if err != nil {
		return err
	}

	opt, err := sessionOptions(*interp, *q)
	if err != nil {
		return err
	}
	original, edited := imgadjust.NewCanvas("Original Image"), imgadjust.NewCanvas("Edited Image")
	s := imgadjust.NewSession(original, edited, opt)
	if err := s.Load(*inPath); err != nil {
		return err
	}

	values := map[imgadjust.Control]int{
		imgadjust.ControlBrightness: *brightness,
		imgadjust.ControlContrast:   *contrast,
		imgadjust.ControlRed:        *red,
		imgadjust.ControlGreen:      *green,
		imgadjust.ControlBlue:       *blue,
		imgadjust.ControlScale:      *scale,
	}
	for _, c := range imgadjust.Controls() {
		if err := s.Set(c, values[c]); err != nil {
			return err
		}
	}

	switch family {
	case imgadjust.FamilyBrightnessContrast:
		s.AdjustBrightnessContrast()
	case imgadjust.FamilyColorCurves:
		s.AdjustColorCurves()
	}
	s.Rescale()

	if err := s.Save(imgadjust.NormalizeSavePath(*outPath)); err != nil {
		return err
	}
	if *previewOut != "" {
		if err := writePreview(*previewOut, edited); err != nil {
			return fmt.Errorf("write preview: %w", err)
		}
	}
	if *sheetOut != "" {
		if err := imaging.Save(imgadjust.ComposeSheet(original.Bitmap(), edited.Bitmap()), filepath.Clean(*sheetOut)); err != nil {
			return fmt.Errorf("write sheet: %w", err)
		}
	}
	return nil
}

// applyFamily picks the transform family of a one-shot run.
// Without an explicit mode, flags of only one family may be given.
func applyFamily(mode string, set map[string]bool) (imgadjust.Family, error) {
	switch mode {
	case "bc":
		return imgadjust.FamilyBrightnessContrast, nil
	case "curves":
		return imgadjust.FamilyColorCurves, nil
	case "":
	default:
		return 0, fmt.Errorf("unknown mode %q, use bc or curves", mode)
	}

	bc := set["brightness"] || set["contrast"]
	curves := set["red"] || set["green"] || set["blue"]
	switch {
	case bc && curves:
		return 0, errors.New("brightness/contrast and color curves can not be combined, pick one with -mode")
	case curves:
		return imgadjust.FamilyColorCurves, nil
	case bc:
		return imgadjust.FamilyBrightnessContrast, nil
	default:
		return imgadjust.FamilyScale, nil
	}
}

func runSession(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("session", flag.ContinueOnError)
	script := fs.String("script", "", "read commands from file instead of stdin")
	q := fs.Int("q", 95, "JPEG quality")
	interp := fs.String("interp", "area", "preview interpolation")
	verbose := fs.Bool("v", false, "debug logging")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	setupLogger(*verbose, os.Stderr)

	in := stdin
	if *script != "" {
		f, err := os.Open(filepath.Clean(*script))
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	opt, err := sessionOptions(*interp, *q)
	if err != nil {
		return err
	}
	return newREPL(stdout, opt).run(in)
}

func runInfo(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	inPath := fs.String("in", "", "input image")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" {
		return errors.New("missing required arguments")
	}
	f, err := os.Open(filepath.Clean(*inPath))
	if err != nil {
		return err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return fmt.Errorf("%w: %v", imgadjust.ErrDecodeFailure, err)
	}
	fmt.Fprintf(stdout, "%s %dx%d\n", format, cfg.Width, cfg.Height)
	return nil
}

func writePreview(path string, c *imgadjust.Canvas) error {
	bitmap := c.Bitmap()
	if bitmap == nil {
		return imgadjust.ErrNoImageLoaded
	}
	return imaging.Save(bitmap, filepath.Clean(path))
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
