// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1680_test

import (
	"image"
	"image/draw"
	"log"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/GermanBionicSystems/badgeshow/image2bit"
	"github.com/GermanBionicSystems/badgeshow/ssd1680"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Use spireg SPI bus registry to find the first available SPI bus.
	b, err := spireg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer b.Close()

	dev, err := ssd1680.NewHat(b, &ssd1680.EPD2in9Gray)
	if err != nil {
		log.Fatalf("Failed to initialize driver: %v", err)
	}

	if err := dev.Init(); err != nil {
		log.Fatalf("Failed to initialize display: %v", err)
	}

	// Dark gray text on a white background with a light gray band.
	img := image2bit.NewPacked(dev.Bounds())
	draw.Draw(img, img.Bounds(), &image.Uniform{image2bit.White}, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, 90, 296, 128), &image.Uniform{image2bit.LightGray}, image.Point{}, draw.Src)
	f := basicfont.Face7x13
	drawer := font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image2bit.DarkGray},
		Face: f,
		Dot:  fixed.P(4, img.Bounds().Dy()-1-f.Descent),
	}
	drawer.DrawString("Hello from the badge!")

	if err := dev.Draw(dev.Bounds(), img, image.Point{}); err != nil {
		log.Fatal(err)
	}
}
