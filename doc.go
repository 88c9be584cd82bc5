// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package badgeshow is a slideshow for a 2.9" 296x128 four gray level
// e-paper badge.
//
// cmd/slideshow steps through pre-converted bitmaps with two buttons and a
// timer; cmd/convert turns arbitrary images into those bitmaps. The
// supporting packages are the SSD1680 panel driver (ssd1680), its 2-bit
// frame buffer format (image2bit), a terminal emulation of the panel
// (screen) and GPIO push buttons (button).
package badgeshow
