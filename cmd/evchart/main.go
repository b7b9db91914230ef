package main

import (
	"errors"
	"fmt"
	"os"

	"ev-chart-station/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		if !errors.Is(err, cli.ErrInvalidStation) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
