package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/drittich/media-device-copier/internal/cli"
)

func main() {
	if err := run(); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", exitErr.Err)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Interrupts stop the batch between files
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.NewRootCommand().ExecuteContext(ctx)
}
