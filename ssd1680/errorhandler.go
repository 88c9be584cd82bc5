// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1680

import (
	"errors"
	"time"

	"periph.io/x/conn/v3/gpio"
)

var errBusyTimeout = errors.New("ssd1680: timed out waiting for the busy line")

// errorHandler implements controller on top of the real pins and SPI
// connection.
//
// The first failure is kept in err and every later call is a no-op, so a
// whole command sequence can be written without checking each step; the
// caller inspects err once at the end.
type errorHandler struct {
	d   Dev
	err error
}

// do runs f unless an earlier step failed.
func (eh *errorHandler) do(f func() error) {
	if eh.err == nil {
		eh.err = f()
	}
}

func (eh *errorHandler) rstOut(l gpio.Level) {
	eh.do(func() error { return eh.d.rst.Out(l) })
}

// transfer writes w with the D/C line at dc (low for a command, high for
// data), framed by chip select.
func (eh *errorHandler) transfer(dc gpio.Level, w []byte) {
	eh.do(func() error { return eh.d.dc.Out(dc) })
	eh.do(func() error { return eh.d.cs.Out(gpio.Low) })
	eh.do(func() error { return eh.d.c.Tx(w, nil) })
	eh.do(func() error { return eh.d.cs.Out(gpio.High) })
}

func (eh *errorHandler) sendCommand(cmd byte) {
	eh.transfer(gpio.Low, []byte{cmd})
}

func (eh *errorHandler) sendData(data []byte) {
	eh.transfer(gpio.High, data)
}

// waitUntilIdle polls the busy line, giving up after busyTimeout.
func (eh *errorHandler) waitUntilIdle() {
	eh.do(func() error {
		deadline := time.Now().Add(busyTimeout)
		for eh.d.busy.Read() == gpio.High {
			if time.Now().After(deadline) {
				return errBusyTimeout
			}
			time.Sleep(10 * time.Millisecond)
		}
		return nil
	})
}
