// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package button reads momentary push buttons and reports presses.
//
// Buttons are sampled, not interrupt driven: each call to Pressed reads the
// line and returns true only on the transition from released to held. There
// is no debouncing here; callers pause after a press.
//
// Two backends are provided: Pin uses any periph gpio.PinIn, Line uses the
// Linux GPIO character device directly.
package button
