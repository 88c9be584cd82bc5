// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// slideshow shows bitmaps on the e-paper badge and steps through them with
// two buttons.
//
// Set LOG=debug for verbose output.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/GermanBionicSystems/badgeshow/button"
	"github.com/GermanBionicSystems/badgeshow/screen"
	"github.com/GermanBionicSystems/badgeshow/slideshow"
	"github.com/GermanBionicSystems/badgeshow/ssd1680"
	log "github.com/s00500/env_logger"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// PanelKind selects the display the slides are drawn on.
type PanelKind int

// Valid PanelKind.
const (
	EPD PanelKind = iota
	Term
)

// Set sets the PanelKind to a value represented by the string s. Set
// implements the flag.Value interface.
func (p *PanelKind) Set(s string) error {
	switch s {
	case "epd":
		*p = EPD
	case "term":
		*p = Term
	default:
		return fmt.Errorf("unknown panel %q: expected either epd or term", s)
	}
	return nil
}

func (p *PanelKind) String() string {
	if *p == Term {
		return "term"
	}
	return "epd"
}

// slideList is a comma separated list of paths.
type slideList []string

// Set implements the flag.Value interface.
func (l *slideList) Set(s string) error {
	var paths []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return errors.New("no slides")
	}
	*l = paths
	return nil
}

func (l *slideList) String() string {
	return strings.Join(*l, ",")
}

// openPanel returns the display and a function putting it to sleep and
// releasing the bus it uses.
func openPanel(kind PanelKind) (display.Drawer, func(), error) {
	if kind == Term {
		return screen.New(&screen.Opts{Width: 296, Height: 128, Scale: 2}), func() {}, nil
	}
	b, err := spireg.Open("")
	if err != nil {
		return nil, nil, err
	}
	dev, err := ssd1680.NewHat(b, &ssd1680.EPD2in9Gray)
	if err != nil {
		b.Close()
		return nil, nil, err
	}
	if err := dev.Init(); err != nil {
		b.Close()
		return nil, nil, err
	}
	// Runs after Halt; the panel keeps its white image while asleep.
	return dev, func() {
		if err := dev.Sleep(); err != nil {
			log.Errorf("Failed to put %s to sleep: %v", dev, err)
		}
		b.Close()
	}, nil
}

// openButton returns the button on the named periph pin, or on line of chip
// when chip is set. A pin that does not exist gives no button.
func openButton(name, chip string, line int) (slideshow.Button, func(), error) {
	if chip != "" {
		b, err := button.NewLine(chip, line, &button.DefaultOpts)
		if err != nil {
			return nil, nil, err
		}
		return b, func() { b.Close() }, nil
	}
	p := gpioreg.ByName(name)
	if p == nil {
		log.Warnf("No GPIO pin %q, button disabled", name)
		return nil, func() {}, nil
	}
	b, err := button.New(p, &button.DefaultOpts)
	if err != nil {
		return nil, nil, err
	}
	return b, func() {}, nil
}

func mainImpl() error {
	opts := slideshow.DefaultOpts
	kind := EPD
	slides := slideList(opts.Slides)
	flag.Var(&kind, "panel", "display to use: epd or term")
	flag.Var(&slides, "images", "comma separated list of slide bitmaps")
	flag.DurationVar(&opts.AutoAdvance, "auto", opts.AutoAdvance, "auto-advance interval, 0 to disable")
	flag.DurationVar(&opts.Debounce, "debounce", opts.Debounce, "pause after a button press")
	flag.DurationVar(&opts.Poll, "poll", opts.Poll, "button polling interval")
	prevName := flag.String("prev", "GPIO5", "GPIO pin of the previous button")
	nextName := flag.String("next", "GPIO6", "GPIO pin of the next button")
	chip := flag.String("gpiochip", "", "read buttons through this GPIO character device instead, e.g. gpiochip0")
	prevLine := flag.Int("prev-line", 5, "line offset of the previous button on -gpiochip")
	nextLine := flag.Int("next-line", 6, "line offset of the next button on -gpiochip")
	flag.Parse()
	if flag.NArg() != 0 {
		return fmt.Errorf("unexpected argument: %s", flag.Args())
	}
	opts.Slides = slides

	if _, err := host.Init(); err != nil {
		return err
	}

	panel, closePanel, err := openPanel(kind)
	if err != nil {
		return err
	}
	defer closePanel()
	defer func() {
		if err := panel.Halt(); err != nil {
			log.Errorf("Failed to halt %s: %v", panel, err)
		}
	}()

	prev, closePrev, err := openButton(*prevName, *chip, *prevLine)
	if err != nil {
		return err
	}
	defer closePrev()
	next, closeNext, err := openButton(*nextName, *chip, *nextLine)
	if err != nil {
		return err
	}
	defer closeNext()

	c, err := slideshow.New(panel, prev, next, &opts)
	if err != nil {
		return err
	}
	log.Infof("Starting slideshow of %d slides on %s", c.Len(), panel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := c.Run(ctx); !errors.Is(err, context.Canceled) {
		return err
	}
	log.Infof("Stopped")
	return nil
}

func main() {
	if err := mainImpl(); err != nil {
		log.Errorf("slideshow: %v", err)
		os.Exit(1)
	}
}
