// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package image2bit implements a 2-bit grayscale image, the native frame
// buffer format of four-level e-paper panels.
//
// Pixels are packed four to a byte, the leftmost pixel in the two most
// significant bits.
package image2bit

import (
	"image"
	"image/color"
)

// Gray2 is a 2-bit gray level, 0 (black) to 3 (white). Only the lower two bits
// of Y are used.
type Gray2 struct {
	Y uint8
}

// The four levels a Gray2 can take.
var (
	Black     = Gray2{0}
	DarkGray  = Gray2{1}
	LightGray = Gray2{2}
	White     = Gray2{3}
)

// RGBA implements color.Color.
func (c Gray2) RGBA() (r, g, b, a uint32) {
	y := uint32(c.Y&0x03) * 0x5555
	return y, y, y, 0xFFFF
}

func convert(c color.Color) color.Color {
	if g, ok := c.(Gray2); ok {
		return g
	}
	r, g, b, _ := c.RGBA()
	y := (299*r + 587*g + 114*b + 500) / 1000
	return Gray2{Y: uint8(y >> 14)}
}

// Gray2Model converts any color to the nearest lower Gray2 level.
var Gray2Model = color.ModelFunc(convert)

// Packed is an in-memory 2-bit grayscale image.
type Packed struct {
	Pix    []byte
	Stride int
	Rect   image.Rectangle
}

// NewPacked returns a Packed image with the given bounds, all pixels black.
func NewPacked(r image.Rectangle) *Packed {
	w, h := r.Dx(), r.Dy()
	if w <= 0 || h <= 0 {
		return &Packed{Rect: r}
	}
	stride := (w + 3) / 4
	return &Packed{
		Pix:    make([]byte, stride*h),
		Stride: stride,
		Rect:   r,
	}
}

// ColorModel implements image.Image.
func (p *Packed) ColorModel() color.Model {
	return Gray2Model
}

// Bounds implements image.Image.
func (p *Packed) Bounds() image.Rectangle {
	return p.Rect
}

// At implements image.Image.
func (p *Packed) At(x, y int) color.Color {
	return p.Gray2At(x, y)
}

// Gray2At returns the level of the pixel at (x, y). Pixels outside the bounds
// are black.
func (p *Packed) Gray2At(x, y int) Gray2 {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return Gray2{}
	}
	offset, shift := p.pixOffset(x, y)
	return Gray2{Y: (p.Pix[offset] >> shift) & 0x03}
}

// Set implements draw.Image.
func (p *Packed) Set(x, y int, c color.Color) {
	p.SetGray2(x, y, Gray2Model.Convert(c).(Gray2))
}

// SetGray2 sets the level of the pixel at (x, y) without color conversion.
func (p *Packed) SetGray2(x, y int, c Gray2) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	offset, shift := p.pixOffset(x, y)
	p.Pix[offset] = (p.Pix[offset] &^ (0x03 << shift)) | ((c.Y & 0x03) << shift)
}

// BitAt returns one bit of the level at (x, y): plane 1 is the high bit, plane
// 0 the low bit.
func (p *Packed) BitAt(x, y int, plane uint) bool {
	return (p.Gray2At(x, y).Y>>plane)&1 == 1
}

func (p *Packed) pixOffset(x, y int) (int, uint) {
	dx := x - p.Rect.Min.X
	offset := (y-p.Rect.Min.Y)*p.Stride + dx/4
	shift := uint(6 - 2*(dx&3))
	return offset, shift
}
