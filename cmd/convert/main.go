// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// convert turns an image into a bitmap for the e-paper badge.
//
// Usage:
//
//	convert [--width 296] [--height 128] [--colors 4] <input_image> [output_image]
//
// Without an output path the input path is reused with a .bmp extension.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/GermanBionicSystems/badgeshow/convert"
	cli "github.com/urfave/cli/v2"
)

const (
	widthFlagName  = "width"
	heightFlagName = "height"
	colorsFlagName = "colors"
)

func newApp(stdout io.Writer) *cli.App {
	return &cli.App{
		Name:      "convert",
		Usage:     "convert an image to a 2-bit grayscale BMP for the badge",
		ArgsUsage: "<input_image> [output_image]",
		Description: "Example:\n   convert photo.jpg slide1.bmp\n\n" +
			"Supported input formats: JPEG, PNG, GIF, BMP, TIFF, WebP.",
		Writer:    stdout,
		ErrWriter: stdout,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  widthFlagName,
				Value: convert.DefaultOpts.Width,
				Usage: "output width in pixels",
			},
			&cli.IntFlag{
				Name:  heightFlagName,
				Value: convert.DefaultOpts.Height,
				Usage: "output height in pixels",
			},
			&cli.IntFlag{
				Name:  colorsFlagName,
				Value: convert.DefaultOpts.Colors,
				Usage: "maximum number of gray levels",
			},
		},
		Action: convertAction,
		// Errors are turned into an exit code by run.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

func convertAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		_ = cli.ShowAppHelp(ctx)
		return cli.Exit("", 1)
	}
	// Arguments past the output path are ignored.
	input := ctx.Args().Get(0)
	output := ctx.Args().Get(1)
	if output == "" {
		output = convert.OutputPath(input)
	}

	w := ctx.App.Writer
	opts := convert.Opts{
		Width:  ctx.Int(widthFlagName),
		Height: ctx.Int(heightFlagName),
		Colors: ctx.Int(colorsFlagName),
		Progress: func(msg string) {
			fmt.Fprintln(w, msg)
		},
	}
	if err := convert.Convert(input, output, &opts); err != nil {
		fmt.Fprintf(w, "✗ Error converting image: %v\n", err)
		return cli.Exit("", 1)
	}
	fmt.Fprintf(w, "✓ Successfully converted %s to %s\n", input, output)
	fmt.Fprintf(w, "  Size: %dx%d\n", opts.Width, opts.Height)
	fmt.Fprintf(w, "  Format: %d-bit grayscale BMP\n", opts.Depth())
	return nil
}

// run executes the tool and returns the process exit code.
func run(args []string, stdout io.Writer) int {
	if err := newApp(stdout).Run(args); err != nil {
		var ec cli.ExitCoder
		if errors.As(err, &ec) {
			return ec.ExitCode()
		}
		fmt.Fprintf(stdout, "✗ %v\n", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args, os.Stdout))
}
