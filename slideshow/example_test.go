// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package slideshow_test

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"

	"github.com/GermanBionicSystems/badgeshow/button"
	"github.com/GermanBionicSystems/badgeshow/screen"
	"github.com/GermanBionicSystems/badgeshow/slideshow"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Emulate the badge in the terminal, two cells per panel pixel.
	panel := screen.New(&screen.Opts{Width: 296, Height: 128, Scale: 2})
	defer panel.Halt()

	prev, err := button.New(gpioreg.ByName("GPIO5"), &button.DefaultOpts)
	if err != nil {
		log.Fatal(err)
	}
	next, err := button.New(gpioreg.ByName("GPIO6"), &button.DefaultOpts)
	if err != nil {
		log.Fatal(err)
	}

	c, err := slideshow.New(panel, prev, next, &slideshow.DefaultOpts)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := c.Run(ctx); !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}
