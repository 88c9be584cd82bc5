// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ssd1680 controls e-paper panels driven by the Solomon Systech
// SSD1680, such as the 2.9" 296x128 panel of badge boards, in four-level
// grayscale mode.
//
// Each 2-bit pixel is split over the two RAM banks of the controller: the
// high bit goes to the black/white bank, the low bit to the red bank. Every
// Draw is followed by a full refresh.
//
// The four levels need a grayscale waveform in Opts.LUT. Without one the
// controller refreshes with the waveform stored in its OTP, which on most
// panels is a black and white waveform that ignores the red bank: pixels then
// show as black (levels 0 and 1) or white (levels 2 and 3). Grayscale
// waveforms depend on the panel batch and are supplied by its vendor.
package ssd1680
