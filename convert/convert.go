// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package convert

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"

	// Extra input formats; imaging registers jpeg, png and gif.
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Opts describes the target bitmap.
type Opts struct {
	// Width and Height of the output in pixels.
	Width  int
	Height int
	// Colors is the maximum number of palette entries, at most 256.
	Colors int
	// Progress, when set, receives one line per pipeline stage.
	Progress func(msg string)
}

// DefaultOpts produces bitmaps for the 2.9" badge: 296x128, four gray levels.
var DefaultOpts = Opts{
	Width:  296,
	Height: 128,
	Colors: 4,
}

// Ext is the extension of derived output paths.
const Ext = ".bmp"

// Stage identifies a step of the conversion pipeline.
type Stage int

// Pipeline stages, in order.
const (
	StageDecode Stage = iota
	StageGrayscale
	StageResize
	StageCanvas
	StageQuantize
	StageEncode
)

var stageNames = [...]string{"decode", "grayscale", "resize", "canvas", "quantize", "encode"}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return stageNames[s]
}

// StageError is returned when a pipeline stage fails.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return e.Stage.String() + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *StageError) Unwrap() error {
	return e.Err
}

// Cause implements the github.com/pkg/errors causer interface.
func (e *StageError) Cause() error {
	return e.Err
}

func stageErr(s Stage, err error) error {
	return &StageError{Stage: s, Err: err}
}

// Convert reads the image at in and writes it to out as a paletted BMP of
// exactly opts.Width x opts.Height with at most opts.Colors colors.
func Convert(in, out string, opts *Opts) error {
	if err := opts.validate(); err != nil {
		return err
	}
	opts.progress("Opening %s...", in)
	src, err := imaging.Open(in)
	if err != nil {
		return stageErr(StageDecode, errors.Wrapf(err, "open %s", in))
	}
	img, err := Image(src, opts)
	if err != nil {
		return err
	}
	opts.progress("Saving to %s...", out)
	if err := writeBMP(out, img); err != nil {
		return stageErr(StageEncode, err)
	}
	return nil
}

// Image runs the pipeline after decoding: grayscale, downscale to fit,
// center on a white canvas and quantize.
func Image(src image.Image, opts *Opts) (*image.Paletted, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	opts.progress("Converting to grayscale...")
	gray := grayscale(src)
	if gray.Rect.Empty() {
		return nil, stageErr(StageGrayscale, errors.Errorf("empty image %v", src.Bounds()))
	}

	opts.progress("Resizing to %dx%d...", opts.Width, opts.Height)
	fit := imaging.Fit(gray, opts.Width, opts.Height, imaging.Lanczos)
	fb := fit.Bounds()
	if fb.Empty() {
		return nil, stageErr(StageResize, errors.Errorf("%v resized to nothing", gray.Rect.Size()))
	}

	canvas := image.NewGray(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(canvas, canvas.Rect, image.White, image.Point{}, draw.Src)
	off := centerOffset(canvas.Rect.Size(), fb.Size())
	if off.X < 0 || off.Y < 0 {
		return nil, stageErr(StageCanvas, errors.Errorf("%v does not fit %v", fb.Size(), canvas.Rect.Size()))
	}
	draw.Draw(canvas, fb.Sub(fb.Min).Add(off), fit, fb.Min, draw.Src)

	opts.progress("Converting to %d-bit color depth...", opts.Depth())
	p := quantize.MedianCutQuantizer{Aggregation: quantize.Mean}
	palette := p.Quantize(make(color.Palette, 0, opts.Colors), canvas)
	if len(palette) == 0 {
		return nil, stageErr(StageQuantize, errors.New("no palette"))
	}
	dst := image.NewPaletted(canvas.Rect, palette)
	// draw.Src on a paletted destination maps to the nearest entry without
	// dithering.
	draw.Draw(dst, dst.Rect, canvas, image.Point{}, draw.Src)
	return dst, nil
}

// OutputPath derives the output path from the input path by replacing its
// extension with Ext, or appending Ext when there is none.
func OutputPath(in string) string {
	return strings.TrimSuffix(in, filepath.Ext(in)) + Ext
}

// centerOffset returns the top-left corner placing size inside canvas, with
// the odd pixel going to the bottom and right.
func centerOffset(canvas, size image.Point) image.Point {
	return image.Pt((canvas.X-size.X)/2, (canvas.Y-size.Y)/2)
}

// grayscale returns the ITU-R 601-2 luma of src. Alpha is ignored: a
// transparent pixel keeps the luminance of its stored color.
func grayscale(src image.Image) *image.Gray {
	b := src.Bounds()
	g := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			g.Pix[y*g.Stride+x] = luma(c.R, c.G, c.B)
		}
	}
	return g
}

func luma(r, g, b uint8) uint8 {
	return uint8((299*uint32(r) + 587*uint32(g) + 114*uint32(b) + 500) / 1000)
}

func writeBMP(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()
	w := bufio.NewWriter(f)
	if err := bmp.Encode(w, img); err != nil {
		return errors.Wrapf(err, "encode %s", path)
	}
	return errors.Wrapf(w.Flush(), "write %s", path)
}

// Depth returns the number of bits per pixel needed to index Colors, at
// least 1.
func (o *Opts) Depth() int {
	d := 1
	for 1<<d < o.Colors {
		d++
	}
	return d
}

func (o *Opts) validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return errors.Errorf("convert: invalid size %dx%d", o.Width, o.Height)
	}
	if o.Colors < 1 || o.Colors > 256 {
		return errors.Errorf("convert: invalid color count %d", o.Colors)
	}
	return nil
}

func (o *Opts) progress(format string, a ...interface{}) {
	if o.Progress != nil {
		o.Progress(fmt.Sprintf(format, a...))
	}
}
