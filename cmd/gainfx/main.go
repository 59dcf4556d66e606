// Command gainfx applies the gain effect to an image file.
//
// It plays the part of a host application: it decodes the input into a
// source clip, allocates the output clip, runs the render on a worker pool
// and encodes the result.
//
//	gainfx render in.png out.tiff --scale 1.5 --depth 16
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/gogpu/gain/cmd/gainfx/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := commands.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
