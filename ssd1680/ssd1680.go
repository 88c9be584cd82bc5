// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1680

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/GermanBionicSystems/badgeshow/image2bit"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/host/v3/rpi"
)

// Commands
const (
	driverOutputControl            byte = 0x01
	gateDrivingVoltageControl      byte = 0x03
	sourceDrivingVoltageControl    byte = 0x04
	deepSleepMode                  byte = 0x10
	dataEntryModeSetting           byte = 0x11
	swReset                        byte = 0x12
	tempSensorSelect               byte = 0x18
	masterActivation               byte = 0x20
	displayUpdateControl1          byte = 0x21
	displayUpdateControl2          byte = 0x22
	writeRAMBW                     byte = 0x24
	writeRAMRed                    byte = 0x26
	writeVcomRegister              byte = 0x2C
	writeLutRegister               byte = 0x32
	borderWaveformControl          byte = 0x3C
	endOptionEOPT                  byte = 0x3F
	setRAMXAddressStartEndPosition byte = 0x44
	setRAMYAddressStartEndPosition byte = 0x45
	setRAMXAddressCounter          byte = 0x4E
	setRAMYAddressCounter          byte = 0x4F
)

// Flags for the displayUpdateControl2 command
const (
	displayUpdateDisableClock byte = 1 << iota
	displayUpdateDisableAnalog
	displayUpdateDisplay
	displayUpdateMode2
	displayUpdateLoadLUTFromOTP
	displayUpdateLoadTemperature
	displayUpdateEnableClock
	displayUpdateEnableAnalog
)

// Length of the waveform part of a LUT and of a LUT that also carries the
// voltage settings.
const (
	lutWaveformSize = 153
	lutFullSize     = 159
)

// busyTimeout bounds every wait on the busy line. A full 4-gray refresh takes
// a few seconds.
const busyTimeout = 10 * time.Second

// Dev defines the handler which is used to access the display.
type Dev struct {
	c conn.Conn

	dc   gpio.PinOut
	cs   gpio.PinOut
	rst  gpio.PinOut
	busy gpio.PinIn

	bounds image.Rectangle
	buffer *image2bit.Packed

	opts *Opts
}

// Corner describes a corner on the physical device and is used to define the
// origin for drawing operations.
type Corner uint8

const (
	TopLeft Corner = iota
	TopRight
	BottomRight
	BottomLeft
)

// LUT contains the waveform that is used to program the display. It is either
// 153 bytes of waveform or 159 bytes where the trailing six bytes hold the
// EOPT, gate, source and VCOM voltages.
type LUT []byte

// Opts defines the structure of the display configuration.
type Opts struct {
	// Width and Height of the panel in its native (portrait) orientation.
	Width  int
	Height int
	// Origin is the corner used as (0, 0) by Draw.
	Origin Corner
	// LUT is loaded into the controller on Init. When empty the waveform
	// stored in the controller OTP is used.
	LUT LUT
}

// EPD2in9Gray contains the configuration of the 2.9" 296x128 grayscale panel
// found on badge boards, drawn in landscape orientation. It carries no LUT;
// set one for the two intermediate gray levels.
var EPD2in9Gray = Opts{
	Width:  128,
	Height: 296,
	Origin: TopRight,
}

// flipPt returns a new image.Point with the X and Y coordinates exchanged.
func flipPt(pt image.Point) image.Point {
	return image.Point{X: pt.Y, Y: pt.X}
}

// New creates new handler which is used to access the display.
func New(p spi.Port, dc, cs, rst gpio.PinOut, busy gpio.PinIn, opts *Opts) (*Dev, error) {
	if n := len(opts.LUT); n != 0 && n != lutWaveformSize && n != lutFullSize {
		return nil, fmt.Errorf("ssd1680: LUT must be %d or %d bytes, got %d", lutWaveformSize, lutFullSize, n)
	}

	c, err := p.Connect(4*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("ssd1680: failed to connect over spi: %w", err)
	}

	if err := busy.In(gpio.Float, gpio.NoEdge); err != nil {
		return nil, err
	}

	displaySize := image.Pt(opts.Width, opts.Height)

	// The physical X axis is sized to have one-byte alignment on the (0,0)
	// on-display position after rotation.
	bufferSize := image.Pt((opts.Width+7)/8*8, opts.Height)

	switch opts.Origin {
	case TopLeft, BottomRight:
	case TopRight, BottomLeft:
		displaySize = flipPt(displaySize)
		bufferSize = flipPt(bufferSize)
	default:
		return nil, fmt.Errorf("ssd1680: unknown corner %v", opts.Origin)
	}

	d := &Dev{
		c:      c,
		dc:     dc,
		cs:     cs,
		rst:    rst,
		busy:   busy,
		bounds: image.Rectangle{Max: displaySize},
		buffer: image2bit.NewPacked(image.Rectangle{Max: bufferSize}),
		opts:   opts,
	}

	draw.Src.Draw(d.buffer, d.buffer.Bounds(), &image.Uniform{image2bit.White}, image.Point{})

	return d, nil
}

// NewHat creates new handler which is used to access the display. The
// common e-paper HAT pin assignment is used.
func NewHat(p spi.Port, opts *Opts) (*Dev, error) {
	dc := rpi.P1_22
	cs := rpi.P1_24
	rst := rpi.P1_11
	busy := rpi.P1_18
	return New(p, dc, cs, rst, busy, opts)
}

// Init resets the controller and configures it for 4-gray full refreshes.
func (d *Dev) Init() error {
	if err := d.Reset(); err != nil {
		return err
	}

	eh := errorHandler{d: *d}

	initDisplay(&eh, d.opts)

	return eh.err
}

// Clear fills the whole display with a single color.
func (d *Dev) Clear(c color.Color) error {
	return d.Draw(d.bounds, &image.Uniform{
		C: image2bit.Gray2Model.Convert(c),
	}, image.Point{})
}

// ColorModel returns the 2-bit gray color model.
func (d *Dev) ColorModel() color.Model {
	return image2bit.Gray2Model
}

// Bounds returns the bounds for the configured display and origin.
func (d *Dev) Bounds() image.Rectangle {
	return d.bounds
}

// Draw draws the given image to the display. Only the destination area is
// uploaded; the whole panel is refreshed afterwards.
func (d *Dev) Draw(dstRect image.Rectangle, src image.Image, srcPts image.Point) error {
	opts := drawOpts{
		devSize: d.bounds.Max,
		origin:  d.opts.Origin,
		buffer:  d.buffer,
		dstRect: dstRect,
		src:     src,
		srcPts:  srcPts,
	}

	eh := errorHandler{d: *d}

	drawImage(&eh, &opts)

	if eh.err == nil {
		updateDisplay(&eh, d.opts)
	}

	return eh.err
}

// Halt clears the display to white.
func (d *Dev) Halt() error {
	return d.Clear(image2bit.White)
}

// String returns a string containing configuration information.
func (d *Dev) String() string {
	return fmt.Sprintf("ssd1680.Dev{%s, %s, Width: %d, Height: %d}", d.c, d.dc, d.bounds.Dx(), d.bounds.Dy())
}

// Sleep makes the controller enter deep sleep mode. It can be woken up by
// calling Init again.
func (d *Dev) Sleep() error {
	eh := errorHandler{d: *d}

	deepSleep(&eh)

	return eh.err
}

// Reset the hardware.
func (d *Dev) Reset() error {
	eh := errorHandler{d: *d}

	eh.rstOut(gpio.High)
	time.Sleep(20 * time.Millisecond)
	eh.rstOut(gpio.Low)
	time.Sleep(2 * time.Millisecond)
	eh.rstOut(gpio.High)
	time.Sleep(20 * time.Millisecond)

	return eh.err
}

var _ display.Drawer = &Dev{}
