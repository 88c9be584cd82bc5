// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package image2bit

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGray2Model(t *testing.T) {
	for _, tc := range []struct {
		in   color.Color
		want Gray2
	}{
		{color.Black, Black},
		{color.White, White},
		{color.Gray{Y: 0x60}, DarkGray},
		{color.Gray{Y: 0xA0}, LightGray},
		{color.NRGBA{R: 255, G: 255, B: 255, A: 255}, White},
		{LightGray, LightGray},
	} {
		if got := Gray2Model.Convert(tc.in); got != tc.want {
			t.Errorf("Convert(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestGray2RGBA(t *testing.T) {
	for _, tc := range []struct {
		c    Gray2
		want uint32
	}{
		{Black, 0},
		{DarkGray, 0x5555},
		{LightGray, 0xAAAA},
		{White, 0xFFFF},
		{Gray2{Y: 0xFF}, 0xFFFF},
	} {
		r, g, b, a := tc.c.RGBA()
		if r != tc.want || g != tc.want || b != tc.want || a != 0xFFFF {
			t.Errorf("%v.RGBA() = %x,%x,%x,%x, want %x", tc.c, r, g, b, a, tc.want)
		}
	}
}

func TestPacked(t *testing.T) {
	img := NewPacked(image.Rect(2, 1, 9, 3))
	if img.Stride != 2 {
		t.Fatalf("Stride = %d, want 2", img.Stride)
	}

	levels := []Gray2{White, DarkGray, LightGray, Black, White, LightGray, DarkGray}
	for i, l := range levels {
		img.SetGray2(2+i, 2, l)
	}

	for i, want := range levels {
		if got := img.Gray2At(2+i, 2); got != want {
			t.Errorf("Gray2At(%d, 2) = %v, want %v", 2+i, got, want)
		}
	}

	if diff := cmp.Diff(img.Pix, []byte{0, 0, 0b11_01_10_00, 0b11_10_01_00}); diff != "" {
		t.Errorf("Pix difference (-got +want):\n%s", diff)
	}

	// Out of bounds writes are ignored and reads are black.
	img.SetGray2(0, 0, White)
	if got := img.Gray2At(0, 0); got != Black {
		t.Errorf("Gray2At(0, 0) = %v, want black", got)
	}
}

func TestPackedBitAt(t *testing.T) {
	img := NewPacked(image.Rect(0, 0, 4, 1))
	for x, l := range []Gray2{Black, DarkGray, LightGray, White} {
		img.SetGray2(x, 0, l)
	}

	for x, want := range [][2]bool{{false, false}, {false, true}, {true, false}, {true, true}} {
		if got := img.BitAt(x, 0, 1); got != want[0] {
			t.Errorf("BitAt(%d, 0, 1) = %t, want %t", x, got, want[0])
		}
		if got := img.BitAt(x, 0, 0); got != want[1] {
			t.Errorf("BitAt(%d, 0, 0) = %t, want %t", x, got, want[1])
		}
	}
}

func TestPackedDraw(t *testing.T) {
	img := NewPacked(image.Rect(0, 0, 8, 8))
	draw.Draw(img, image.Rect(2, 2, 6, 6), &image.Uniform{color.White}, image.Point{}, draw.Src)

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			want := Black
			if x >= 2 && x < 6 && y >= 2 && y < 6 {
				want = White
			}
			if got := img.Gray2At(x, y); got != want {
				t.Errorf("Gray2At(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestNewPackedEmpty(t *testing.T) {
	img := NewPacked(image.Rectangle{})
	if len(img.Pix) != 0 {
		t.Errorf("len(Pix) = %d, want 0", len(img.Pix))
	}
	if got := img.At(0, 0); got != Black {
		t.Errorf("At(0, 0) = %v, want black", got)
	}
}
