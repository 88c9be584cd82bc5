// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package screen implements a 2D display.Drawer that outputs to a terminal
// using ANSI color codes.
//
// Useful to run the slideshow on a development host while the badge is not
// at hand.
package screen

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"
)

// Opts represents the options available for this display.
type Opts struct {
	// Width and Height of the emulated panel in pixels.
	Width  int
	Height int
	// Scale is the number of panel pixels per terminal cell, in both
	// directions. Values below 1 are treated as 1.
	Scale   int
	Palette *ansi256.Palette
	// W receives the output; it defaults to a colorable stdout.
	W io.Writer

	_ struct{}
}

// Dev is a panel emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	scale   int
	palette ansi256.Palette

	pixels *image.NRGBA
	buf    bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	scale := opts.Scale
	if scale < 1 {
		scale = 1
	}
	d := &Dev{
		w:       w,
		scale:   scale,
		palette: *p,
		pixels:  image.NewNRGBA(image.Rect(0, 0, opts.Width, opts.Height)),
	}
	draw.Draw(d.pixels, d.pixels.Bounds(), image.White, image.Point{}, draw.Src)
	return d
}

func (d *Dev) String() string {
	return fmt.Sprintf("Screen{%dx%d}", d.pixels.Rect.Dx(), d.pixels.Rect.Dy())
}

// Halt implements conn.Resource.
//
// It resets the terminal attributes so the console is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.pixels.Rect
}

// Draw implements display.Drawer.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	draw.Draw(d.pixels, r.Intersect(d.Bounds()), src, sp, draw.Src)
	_, err := d.refresh()
	return err
}

// Frame returns the text last sent to the console.
func (d *Dev) Frame() string {
	return d.buf.String()
}

func (d *Dev) refresh() (int64, error) {
	d.buf.Reset()
	// Home the cursor and clear, so each frame replaces the previous one.
	_, _ = d.buf.WriteString("\033[H\033[2J\033[0m")
	b := d.pixels.Rect
	for y := b.Min.Y; y < b.Max.Y; y += d.scale {
		for x := b.Min.X; x < b.Max.X; x += d.scale {
			_, _ = io.WriteString(&d.buf, d.palette.Block(d.pixels.NRGBAAt(x, y)))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	return io.Copy(d.w, bytes.NewReader(d.buf.Bytes()))
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
