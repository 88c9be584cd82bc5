// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1680

import (
	"testing"

	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/spi/spitest"
)

func TestErrorHandler(t *testing.T) {
	port := spitest.Playback{
		Playback: conntest.Playback{
			Ops: []conntest.IO{
				{W: []byte{swReset}},
			},
			DontPanic: true,
		},
	}
	dc := &gpiotest.Pin{N: "DC"}
	cs := &gpiotest.Pin{N: "CS"}
	eh := errorHandler{d: Dev{c: &port, dc: dc, cs: cs, rst: &gpiotest.Pin{}, busy: &gpiotest.Pin{}}}

	eh.sendCommand(swReset)
	eh.waitUntilIdle()
	if eh.err != nil {
		t.Fatalf("unexpected error: %v", eh.err)
	}
	if dc.L != gpio.Low || cs.L != gpio.High {
		t.Errorf("after a command DC = %s, CS = %s", dc.L, cs.L)
	}

	// Not in the recorded exchange.
	eh.sendData([]byte{0x01})
	if eh.err == nil {
		t.Fatal("unexpected transfer succeeded")
	}
	first := eh.err
	if cs.L != gpio.Low {
		t.Errorf("CS = %s, want it left selected after the failed transfer", cs.L)
	}

	eh.sendCommand(masterActivation)
	eh.rstOut(gpio.Low)
	if eh.err != first {
		t.Errorf("error replaced by %v, want %v kept", eh.err, first)
	}
	if dc.L != gpio.High {
		t.Errorf("DC changed after a failure")
	}
}
