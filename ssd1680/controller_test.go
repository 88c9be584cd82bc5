// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1680

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type record struct {
	cmd  byte
	data []byte
}

type fakeController []record

func (r *fakeController) sendCommand(cmd byte) {
	*r = append(*r, record{
		cmd: cmd,
	})
}

func (r *fakeController) sendData(data []byte) {
	cur := &(*r)[len(*r)-1]
	cur.data = append(cur.data, data...)
}

func (*fakeController) waitUntilIdle() {
}

func TestInitDisplay(t *testing.T) {
	for _, tc := range []struct {
		name string
		opts Opts
		want []record
	}{
		{
			name: "otp waveform",
			opts: EPD2in9Gray,
			want: []record{
				{cmd: swReset},
				{cmd: driverOutputControl, data: []byte{0x27, 0x01, 0x00}},
				{cmd: borderWaveformControl, data: []byte{0x04}},
				{cmd: displayUpdateControl1, data: []byte{0x00, 0x80}},
				{cmd: tempSensorSelect, data: []byte{0x80}},
			},
		},
		{
			name: "waveform only",
			opts: Opts{
				Width:  16,
				Height: 8,
				LUT:    bytes.Repeat([]byte{'W'}, lutWaveformSize),
			},
			want: []record{
				{cmd: swReset},
				{cmd: driverOutputControl, data: []byte{7, 0, 0}},
				{cmd: borderWaveformControl, data: []byte{0x04}},
				{cmd: displayUpdateControl1, data: []byte{0x00, 0x80}},
				{cmd: tempSensorSelect, data: []byte{0x80}},
				{cmd: writeLutRegister, data: bytes.Repeat([]byte{'W'}, lutWaveformSize)},
			},
		},
		{
			name: "waveform and voltages",
			opts: Opts{
				Width:  128,
				Height: 296,
				LUT: append(bytes.Repeat([]byte{'W'}, lutWaveformSize),
					0x22, 0x17, 0x41, 0xAE, 0x32, 0x28),
			},
			want: []record{
				{cmd: swReset},
				{cmd: driverOutputControl, data: []byte{0x27, 0x01, 0x00}},
				{cmd: borderWaveformControl, data: []byte{0x04}},
				{cmd: displayUpdateControl1, data: []byte{0x00, 0x80}},
				{cmd: tempSensorSelect, data: []byte{0x80}},
				{cmd: writeLutRegister, data: bytes.Repeat([]byte{'W'}, lutWaveformSize)},
				{cmd: endOptionEOPT, data: []byte{0x22}},
				{cmd: gateDrivingVoltageControl, data: []byte{0x17}},
				{cmd: sourceDrivingVoltageControl, data: []byte{0x41, 0xAE, 0x32}},
				{cmd: writeVcomRegister, data: []byte{0x28}},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var got fakeController

			initDisplay(&got, &tc.opts)

			if diff := cmp.Diff([]record(got), tc.want, cmpopts.EquateEmpty(), cmp.AllowUnexported(record{})); diff != "" {
				t.Errorf("initDisplay() difference (-got +want):\n%s", diff)
			}
		})
	}
}

func TestUpdateDisplay(t *testing.T) {
	for _, tc := range []struct {
		name string
		opts Opts
		want []record
	}{
		{
			name: "otp waveform",
			opts: EPD2in9Gray,
			want: []record{
				{cmd: displayUpdateControl2, data: []byte{0xf7}},
				{cmd: masterActivation},
			},
		},
		{
			name: "custom waveform",
			opts: Opts{LUT: make(LUT, lutWaveformSize)},
			want: []record{
				{cmd: displayUpdateControl2, data: []byte{0xc7}},
				{cmd: masterActivation},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var got fakeController

			updateDisplay(&got, &tc.opts)

			if diff := cmp.Diff([]record(got), tc.want, cmpopts.EquateEmpty(), cmp.AllowUnexported(record{})); diff != "" {
				t.Errorf("updateDisplay() difference (-got +want):\n%s", diff)
			}
		})
	}
}

func TestDeepSleep(t *testing.T) {
	var got fakeController

	deepSleep(&got)

	want := []record{
		{cmd: deepSleepMode, data: []byte{0x01}},
	}
	if diff := cmp.Diff([]record(got), want, cmp.AllowUnexported(record{})); diff != "" {
		t.Errorf("deepSleep() difference (-got +want):\n%s", diff)
	}
}
