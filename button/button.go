// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package button

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
	"periph.io/x/conn/v3/gpio"
)

// Opts describes how a button is wired.
type Opts struct {
	// ActiveLow is set when a pressed button pulls the line to ground.
	ActiveLow bool
	// Pull is the bias applied to the input line.
	Pull gpio.Pull
}

// DefaultOpts matches buttons wired between the pin and ground with the
// internal pull-up enabled.
var DefaultOpts = Opts{
	ActiveLow: true,
	Pull:      gpio.PullUp,
}

// edge turns level samples into press events.
type edge struct {
	down bool
}

// update records the current state and reports whether it is a new press.
func (e *edge) update(down bool) bool {
	pressed := down && !e.down
	e.down = down
	return pressed
}

// Pin is a button read through a periph GPIO pin.
type Pin struct {
	p         gpio.PinIn
	activeLow bool
	edge      edge
}

// New configures p as an input and returns a button reading it.
func New(p gpio.PinIn, opts *Opts) (*Pin, error) {
	if err := p.In(opts.Pull, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("button: failed to configure %s: %w", p, err)
	}
	b := &Pin{p: p, activeLow: opts.ActiveLow}
	// A button held during startup is not a press.
	b.edge.down = b.Down()
	return b, nil
}

// Down reports whether the button is currently held.
func (b *Pin) Down() bool {
	return (b.p.Read() == gpio.Low) == b.activeLow
}

// Pressed reports whether the button went down since the previous call.
func (b *Pin) Pressed() bool {
	return b.edge.update(b.Down())
}

func (b *Pin) String() string {
	return fmt.Sprintf("button.Pin{%s}", b.p)
}

// Line is a button read through a Linux GPIO character device line.
type Line struct {
	l         *gpiocdev.Line
	activeLow bool
	edge      edge
}

// NewLine requests the line at offset on chip (for example "gpiochip0") as
// an input.
func NewLine(chip string, offset int, opts *Opts) (*Line, error) {
	bias := gpiocdev.WithBiasDisabled
	switch opts.Pull {
	case gpio.PullUp:
		bias = gpiocdev.WithPullUp
	case gpio.PullDown:
		bias = gpiocdev.WithPullDown
	}
	l, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsInput, bias, gpiocdev.WithConsumer("badgeshow"))
	if err != nil {
		return nil, fmt.Errorf("button: failed to request %s:%d: %w", chip, offset, err)
	}
	b := &Line{l: l, activeLow: opts.ActiveLow}
	b.edge.down = b.Down()
	return b, nil
}

// Down reports whether the button is currently held. Read errors count as
// released.
func (b *Line) Down() bool {
	v, err := b.l.Value()
	if err != nil {
		return false
	}
	return (v == 0) == b.activeLow
}

// Pressed reports whether the button went down since the previous call.
func (b *Line) Pressed() bool {
	return b.edge.update(b.Down())
}

// Close releases the line.
func (b *Line) Close() error {
	return b.l.Close()
}
