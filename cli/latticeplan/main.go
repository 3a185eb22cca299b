// Package main is the CLI command itself.
package main

import (
	"os"

	"go.viam.com/latticeplan/cli"
	"go.viam.com/latticeplan/logging"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		logging.Global().Errorw("latticeplan failed", "error", err)
		os.Exit(1)
	}
}
