package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/vearutop/imgadjust"
)

// repl maps text commands to session calls, one line per input event.
// Errors are reported and the loop continues.
type repl struct {
	out      io.Writer
	session  *imgadjust.Session
	original *imgadjust.Canvas
	edited   *imgadjust.Canvas
}

var errQuit = errors.New("quit")

func newREPL(out io.Writer, opts ...func(o *imgadjust.SessionOptions)) *repl {
	r := &repl{
		out:      out,
		original: imgadjust.NewCanvas("Original Image"),
		edited:   imgadjust.NewCanvas("Edited Image"),
	}
	r.session = imgadjust.NewSession(r.original, r.edited, opts...)
	return r
}

func (r *repl) run(in io.Reader) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		err := r.exec(line)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(r.out, "error:", err)
		}
	}
	return sc.Err()
}

func (r *repl) exec(line string) error {
	fields := strings.Fields(line)
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit":
		return errQuit
	case "help":
		r.help()
		return nil
	case "status":
		r.status()
		return nil
	case "load":
		if len(args) != 1 {
			return errors.New("usage: load <path>")
		}
		if !imgadjust.HasLoadExtension(args[0]) {
			return fmt.Errorf("%w: %s, expected one of %s", imgadjust.ErrDecodeFailure, args[0],
				strings.Join(imgadjust.SupportedLoadExtensions(), " "))
		}
		if err := r.session.Load(args[0]); err != nil {
			return err
		}
		r.status()
		return nil
	case "reset":
		r.session.Reset()
		return nil
	case "save":
		if len(args) != 1 {
			return errors.New("usage: save <path>")
		}
		path := imgadjust.NormalizeSavePath(args[0])
		if err := r.session.Save(path); err != nil {
			return err
		}
		fmt.Fprintln(r.out, "Image saved to:", path)
		return nil
	case "preview":
		if len(args) != 2 {
			return errors.New("usage: preview <original-out> <edited-out>")
		}
		if err := writePreview(args[0], r.original); err != nil {
			return err
		}
		return writePreview(args[1], r.edited)
	case "sheet":
		if len(args) != 1 {
			return errors.New("usage: sheet <path>")
		}
		if !r.session.ControlsEnabled() {
			return imgadjust.ErrNoImageLoaded
		}
		return imaging.Save(imgadjust.ComposeSheet(r.original.Bitmap(), r.edited.Bitmap()), filepath.Clean(args[0]))
	}

	c, err := imgadjust.ParseControl(cmd)
	if err != nil {
		return fmt.Errorf("unknown command %q, try help", cmd)
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: %s <value>", c)
	}
	v, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not a number", imgadjust.ErrInvalidParameter, c, args[0])
	}
	return r.session.Apply(c, v)
}

func (r *repl) status() {
	if !r.session.ControlsEnabled() {
		fmt.Fprintln(r.out, "state: empty")
		return
	}
	p := r.session.Parameters()
	orig := r.session.Original()
	w, h := r.edited.Size()
	fmt.Fprintf(r.out, "state: loaded %dx%d preview %dx%d brightness=%d contrast=%d red=%d green=%d blue=%d scale=%d\n",
		orig.Width, orig.Height, w, h, p.Brightness, p.Contrast, p.RedGain, p.GreenGain, p.BlueGain, p.ScalePercent)
}

func (r *repl) help() {
	fmt.Fprintln(r.out, "Commands:")
	fmt.Fprintln(r.out, "  load <path>                  load an image ("+strings.Join(imgadjust.SupportedLoadExtensions(), " ")+")")
	for _, c := range imgadjust.Controls() {
		lo, hi := c.Range()
		fmt.Fprintf(r.out, "  %-28s set %s [%d, %d]\n", c.String()+" <value>", c, lo, hi)
	}
	fmt.Fprintln(r.out, "  reset                        restore the original and default controls")
	fmt.Fprintln(r.out, "  save <path>                  save the edited image ("+strings.Join(imgadjust.SupportedSaveExtensions(), " ")+")")
	fmt.Fprintln(r.out, "  preview <orig> <edited>      write the current preview bitmaps")
	fmt.Fprintln(r.out, "  sheet <path>                 write a side-by-side comparison")
	fmt.Fprintln(r.out, "  status, help, quit")
}
