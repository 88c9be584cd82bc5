// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package slideshow

import (
	"fmt"
	"image"
	"os"

	// Slides are BMP files; PNG is accepted for convenience on a host.
	_ "image/png"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	log "github.com/s00500/env_logger"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

// Render shows slide i with its "Slide i/N" label. On failure an error screen
// naming the slide path is shown instead and the error is returned; the
// current index is left unchanged either way.
func (c *Controller) Render(i int) error {
	path := c.slides[i]

	err := c.drawSlide(i)
	if err == nil {
		log.Infof("Showing slide %d: %s", i+1, path)
		return nil
	}

	log.Errorf("Error loading slide %d: %v", i, err)
	if perr := c.draw(c.errorFrame(path)); perr != nil {
		log.Errorf("Error showing error screen: %v", perr)
	}
	return err
}

func (c *Controller) drawSlide(i int) error {
	img, err := c.load(c.slides[i])
	if err != nil {
		return err
	}
	return c.draw(c.slideFrame(img, fmt.Sprintf("Slide %d/%d", i+1, len(c.slides))))
}

func (c *Controller) draw(frame image.Image) error {
	b := c.panel.Bounds()
	if err := c.panel.Draw(b, frame, image.Point{}); err != nil {
		return fmt.Errorf("slideshow: draw on %s: %w", c.panel, err)
	}
	return nil
}

// newContext returns a white drawing context the size of the panel, set up
// for black text.
func (c *Controller) newContext() *gg.Context {
	b := c.panel.Bounds()
	dc := gg.NewContext(b.Dx(), b.Dy())
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(c.face)
	dc.SetRGB(0, 0, 0)
	return dc
}

func (c *Controller) slideFrame(img image.Image, label string) image.Image {
	dc := c.newContext()
	dc.DrawImage(img, 0, 0)
	dc.DrawStringAnchored(label, float64(c.opts.LabelAt.X), float64(c.opts.LabelAt.Y), 0, 1)
	return dc.Image()
}

func (c *Controller) errorFrame(path string) image.Image {
	dc := c.newContext()
	at := c.opts.LabelAt
	width := float64(dc.Width() - 2*at.X)
	dc.DrawStringWrapped("Error loading\n"+path, float64(at.X), float64(at.Y), 0, 0, width, 1.5, gg.AlignLeft)
	return dc.Image()
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// defaultFace returns Go Regular at a size close to the badge terminal font,
// falling back to the fixed 7x13 face.
func defaultFace() font.Face {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return basicfont.Face7x13
	}
	return truetype.NewFace(f, &truetype.Options{Size: 12})
}
