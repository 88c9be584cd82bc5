// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package slideshow shows a fixed list of bitmaps on a display.Drawer and
// steps through them with two buttons or on a timer.
//
// The loop is a single goroutine polling the buttons at a fixed interval.
// A press moves one slide back or forward, restarts the auto-advance timer
// and pauses polling for the debounce interval. A slide that cannot be loaded
// or drawn is replaced by an error screen; the loop keeps running and the
// operator can navigate away.
package slideshow
