// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1680

type controller interface {
	sendCommand(byte)
	sendData([]byte)
	waitUntilIdle()
}

func initDisplay(ctrl controller, opts *Opts) {
	ctrl.waitUntilIdle()
	ctrl.sendCommand(swReset)
	ctrl.waitUntilIdle()

	ctrl.sendCommand(driverOutputControl)
	ctrl.sendData([]byte{
		byte((opts.Height - 1) & 0xFF),
		byte((opts.Height - 1) >> 8),
		0x00,
	})

	ctrl.sendCommand(borderWaveformControl)
	ctrl.sendData([]byte{0x04})

	// Normal RAM content option; both planes feed the waveform.
	ctrl.sendCommand(displayUpdateControl1)
	ctrl.sendData([]byte{0x00, 0x80})

	// Internal temperature sensor.
	ctrl.sendCommand(tempSensorSelect)
	ctrl.sendData([]byte{0x80})

	if len(opts.LUT) > 0 {
		loadLUT(ctrl, opts.LUT)
	}

	ctrl.waitUntilIdle()
}

// loadLUT uploads a custom waveform and, when present, the voltages stored
// after it.
func loadLUT(ctrl controller, lut LUT) {
	ctrl.sendCommand(writeLutRegister)
	ctrl.sendData(lut[:lutWaveformSize])
	ctrl.waitUntilIdle()

	if len(lut) < lutFullSize {
		return
	}

	ctrl.sendCommand(endOptionEOPT)
	ctrl.sendData(lut[153:154])

	ctrl.sendCommand(gateDrivingVoltageControl)
	ctrl.sendData(lut[154:155])

	ctrl.sendCommand(sourceDrivingVoltageControl)
	ctrl.sendData(lut[155:158])

	ctrl.sendCommand(writeVcomRegister)
	ctrl.sendData(lut[158:159])
}

func updateDisplay(ctrl controller, opts *Opts) {
	flags := displayUpdateDisableClock |
		displayUpdateDisableAnalog |
		displayUpdateDisplay |
		displayUpdateEnableClock |
		displayUpdateEnableAnalog

	if len(opts.LUT) == 0 {
		flags |= displayUpdateLoadLUTFromOTP | displayUpdateLoadTemperature
	}

	ctrl.sendCommand(displayUpdateControl2)
	ctrl.sendData([]byte{flags})

	ctrl.sendCommand(masterActivation)
	ctrl.waitUntilIdle()
}

// deepSleep enters deep sleep mode 1; RAM content is retained.
func deepSleep(ctrl controller) {
	ctrl.sendCommand(deepSleepMode)
	ctrl.sendData([]byte{0x01})
}
