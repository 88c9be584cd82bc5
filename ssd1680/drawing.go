// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1680

import (
	"encoding/binary"
	"image"
	"image/draw"

	"github.com/GermanBionicSystems/badgeshow/image2bit"
)

// planes maps each RAM bank to the bit of the 2-bit level it stores. The
// 4-gray waveform reads the high bit from the black/white bank and the low bit
// from the red bank.
var planes = []struct {
	cmd byte
	bit uint
}{
	{cmd: writeRAMBW, bit: 1},
	{cmd: writeRAMRed, bit: 0},
}

// setMemoryArea configures the target drawing area (horizontal is in bytes,
// vertical in pixels).
func setMemoryArea(ctrl controller, area image.Rectangle) {
	startX, endX := uint8(area.Min.X), uint8(area.Max.X-1)
	startY, endY := uint16(area.Min.Y), uint16(area.Max.Y-1)

	startEndY := [4]byte{}
	binary.LittleEndian.PutUint16(startEndY[0:], startY)
	binary.LittleEndian.PutUint16(startEndY[2:], endY)

	ctrl.sendCommand(dataEntryModeSetting)
	ctrl.sendData([]byte{
		// Y increment, X increment; update address counter in X direction
		0b011,
	})

	ctrl.sendCommand(setRAMXAddressStartEndPosition)
	ctrl.sendData([]byte{startX, endX})

	ctrl.sendCommand(setRAMYAddressStartEndPosition)
	ctrl.sendData(startEndY[:4])

	ctrl.sendCommand(setRAMXAddressCounter)
	ctrl.sendData([]byte{startX})

	ctrl.sendCommand(setRAMYAddressCounter)
	ctrl.sendData(startEndY[:2])
}

type drawOpts struct {
	devSize image.Point
	origin  Corner
	buffer  *image2bit.Packed
	dstRect image.Rectangle
	src     image.Image
	srcPts  image.Point
}

type drawSpec struct {
	// Amount by which buffer contents must be moved to align with the physical
	// top-left corner of the display.
	BufferDstOffset image.Point

	// Destination in buffer in pixels.
	BufferDstRect image.Rectangle

	// Destination in device RAM, rotated and shifted to match the origin.
	MemDstRect image.Rectangle

	// Area to send to device; horizontally in bytes (thus aligned to
	// 8 pixels), vertically in pixels. Computed from MemDstRect.
	MemRect image.Rectangle
}

// spec pre-computes the various offsets required for sending image updates to
// the device.
func (o *drawOpts) spec() drawSpec {
	s := drawSpec{
		BufferDstRect: image.Rectangle{Max: o.devSize}.Intersect(o.dstRect),
	}

	switch o.origin {
	case TopRight:
		s.BufferDstOffset.Y = o.buffer.Bounds().Dy() - o.devSize.Y
	case BottomRight, BottomLeft:
		s.BufferDstOffset.Y = o.buffer.Bounds().Dy() - o.devSize.Y
		s.BufferDstOffset.X = o.buffer.Bounds().Dx() - o.devSize.X
	}

	if s.BufferDstRect.Empty() {
		return s
	}

	switch o.origin {
	case TopLeft:
		s.MemDstRect = s.BufferDstRect

	case TopRight:
		s.MemDstRect.Min.X = o.devSize.Y - s.BufferDstRect.Max.Y
		s.MemDstRect.Max.X = o.devSize.Y - s.BufferDstRect.Min.Y

		s.MemDstRect.Min.Y = s.BufferDstRect.Min.X
		s.MemDstRect.Max.Y = s.BufferDstRect.Max.X

	case BottomRight:
		s.MemDstRect.Min.X = o.devSize.X - s.BufferDstRect.Max.X
		s.MemDstRect.Max.X = o.devSize.X - s.BufferDstRect.Min.X

		s.MemDstRect.Min.Y = o.devSize.Y - s.BufferDstRect.Max.Y
		s.MemDstRect.Max.Y = o.devSize.Y - s.BufferDstRect.Min.Y

	case BottomLeft:
		s.MemDstRect.Min.X = s.BufferDstRect.Min.Y
		s.MemDstRect.Max.X = s.BufferDstRect.Max.Y

		s.MemDstRect.Min.Y = o.devSize.X - s.BufferDstRect.Max.X
		s.MemDstRect.Max.Y = o.devSize.X - s.BufferDstRect.Min.X
	}

	s.BufferDstRect = s.BufferDstRect.Add(s.BufferDstOffset)

	s.MemRect.Min.X = s.MemDstRect.Min.X / 8
	s.MemRect.Max.X = (s.MemDstRect.Max.X + 7) / 8
	s.MemRect.Min.Y = s.MemDstRect.Min.Y
	s.MemRect.Max.Y = s.MemDstRect.Max.Y

	return s
}

// posFor returns the function mapping a RAM position (row, byte column in
// pixels, bit) to the logical buffer position.
func (o *drawOpts) posFor() func(destY, destX, bit int) image.Point {
	switch o.origin {
	case TopRight:
		return func(destY, destX, bit int) image.Point {
			return image.Point{
				X: destY,
				Y: o.devSize.Y - destX - bit - 1,
			}
		}

	case BottomRight:
		return func(destY, destX, bit int) image.Point {
			return image.Point{
				X: o.devSize.X - destX - bit - 1,
				Y: o.devSize.Y - destY - 1,
			}
		}

	case BottomLeft:
		return func(destY, destX, bit int) image.Point {
			return image.Point{
				X: o.devSize.X - destY - 1,
				Y: destX + bit,
			}
		}
	}

	return func(destY, destX, bit int) image.Point {
		return image.Point{
			X: destX + bit,
			Y: destY,
		}
	}
}

// sendImage sends one bit plane of the buffer to the RAM bank selected by
// cmd after setting up the registers.
func (o *drawOpts) sendImage(ctrl controller, cmd byte, plane uint, spec *drawSpec) {
	if spec.MemRect.Empty() {
		return
	}

	setMemoryArea(ctrl, spec.MemRect)

	ctrl.sendCommand(cmd)

	posFor := o.posFor()
	rowData := make([]byte, spec.MemRect.Dx())

	for destY := spec.MemRect.Min.Y; destY < spec.MemRect.Max.Y; destY++ {
		for destX := 0; destX < len(rowData); destX++ {
			rowData[destX] = 0

			for bit := 0; bit < 8; bit++ {
				bufPos := posFor(destY, (spec.MemRect.Min.X+destX)*8, bit)
				bufPos = bufPos.Add(spec.BufferDstOffset)

				if o.buffer.BitAt(bufPos.X, bufPos.Y, plane) {
					rowData[destX] |= 0x80 >> bit
				}
			}
		}

		ctrl.sendData(rowData)
	}
}

func drawImage(ctrl controller, opts *drawOpts) {
	s := opts.spec()

	if s.MemRect.Empty() {
		return
	}

	// The buffer is kept in logical orientation. Rotation and alignment with
	// the origin happens while sending the image data.
	draw.Src.Draw(opts.buffer, s.BufferDstRect, opts.src, opts.srcPts)

	for _, p := range planes {
		opts.sendImage(ctrl, p.cmd, p.bit, &s)
	}
}
