// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package convert turns arbitrary images into bitmaps the badge can show.
//
// The pipeline decodes the source, converts it to grayscale, shrinks it to
// fit the panel while keeping its aspect ratio, centers it on a white canvas
// and reduces it to an adaptive palette of a few gray levels. The result is
// written as an uncompressed paletted BMP. Images smaller than the panel are
// never enlarged.
//
// Each failure is reported as a *StageError naming the step that failed.
package convert
