// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package slideshow

import (
	"context"
	"errors"
	"image"
	"time"

	log "github.com/s00500/env_logger"
	"golang.org/x/image/font"
	"periph.io/x/conn/v3/display"
)

// Button is a physical input sampled by the loop.
type Button interface {
	// Pressed reports whether the button was newly pressed since the last
	// call.
	Pressed() bool
}

// Opts holds the slideshow parameters. They are fixed for the lifetime of a
// Controller.
type Opts struct {
	// Slides lists the bitmap files shown, in order. It must not be empty.
	Slides []string
	// AutoAdvance is the interval after which the next slide is shown
	// without input. Zero or negative disables it.
	AutoAdvance time.Duration
	// Debounce is the pause after a button press during which no input is
	// read.
	Debounce time.Duration
	// Poll is the pause between two loop iterations.
	Poll time.Duration
	// LabelAt is the top-left corner of the "Slide i/N" label.
	LabelAt image.Point
	// Face is the font used for the label and error messages. The Go
	// Regular font is used when nil.
	Face font.Face
}

// DefaultOpts is the configuration of the badge: four slides under /images,
// a new slide every five seconds.
var DefaultOpts = Opts{
	Slides: []string{
		"/images/slide1.bmp",
		"/images/slide2.bmp",
		"/images/slide3.bmp",
		"/images/slide4.bmp",
	},
	AutoAdvance: 5 * time.Second,
	Debounce:    200 * time.Millisecond,
	Poll:        100 * time.Millisecond,
	LabelAt:     image.Pt(5, 5),
}

// Controller owns the current slide and drives the panel.
type Controller struct {
	panel      display.Drawer
	prev, next Button
	slides     []string
	opts       Opts
	face       font.Face

	index       int
	lastAdvance time.Time

	now   func() time.Time
	sleep func(time.Duration)
	load  func(path string) (image.Image, error)
}

// New returns a Controller showing opts.Slides on panel. A nil button is
// never pressed.
func New(panel display.Drawer, prev, next Button, opts *Opts) (*Controller, error) {
	if panel == nil {
		return nil, errors.New("slideshow: no panel")
	}
	if len(opts.Slides) == 0 {
		return nil, errors.New("slideshow: no slides")
	}
	if prev == nil {
		prev = released{}
	}
	if next == nil {
		next = released{}
	}
	face := opts.Face
	if face == nil {
		face = defaultFace()
	}
	c := &Controller{
		panel:  panel,
		prev:   prev,
		next:   next,
		slides: append([]string(nil), opts.Slides...),
		opts:   *opts,
		face:   face,
		now:    time.Now,
		sleep:  time.Sleep,
		load:   loadImage,
	}
	c.lastAdvance = c.now()
	return c, nil
}

// Index returns the current slide index, in [0, Len()).
func (c *Controller) Index() int {
	return c.index
}

// Len returns the number of slides.
func (c *Controller) Len() int {
	return len(c.slides)
}

// Advance moves to the next slide, wrapping after the last one, and renders
// it.
func (c *Controller) Advance() error {
	c.index = (c.index + 1) % len(c.slides)
	return c.Render(c.index)
}

// Retreat moves to the previous slide, wrapping before the first one, and
// renders it.
func (c *Controller) Retreat() error {
	c.index = (c.index - 1 + len(c.slides)) % len(c.slides)
	return c.Render(c.index)
}

// Run shows the current slide and then polls the buttons until ctx is
// cancelled. It returns ctx.Err().
func (c *Controller) Run(ctx context.Context) error {
	_ = c.Render(c.index)
	c.lastAdvance = c.now()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.tick()
		c.sleep(c.opts.Poll)
	}
}

// tick runs one iteration of the loop, without the trailing poll pause.
// Manual navigation is handled before the timer so a press always defers
// auto-advance by a full interval.
func (c *Controller) tick() {
	if c.prev.Pressed() {
		_ = c.Retreat()
		c.lastAdvance = c.now()
		c.sleep(c.opts.Debounce)
	}

	if c.next.Pressed() {
		_ = c.Advance()
		c.lastAdvance = c.now()
		c.sleep(c.opts.Debounce)
	}

	if c.opts.AutoAdvance > 0 && c.now().Sub(c.lastAdvance) >= c.opts.AutoAdvance {
		log.Debugf("auto-advance after %s", c.opts.AutoAdvance)
		_ = c.Advance()
		c.lastAdvance = c.now()
	}
}

type released struct{}

func (released) Pressed() bool { return false }
