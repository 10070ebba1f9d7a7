// ABOUTME: Entry point for the beep CLI
// ABOUTME: Registers commands and global logging flags
package main

import (
	"fmt"
	"os"

	"github.com/Sendspin/beep-go/cmd/beep/commands"
	"github.com/Sendspin/beep-go/internal/version"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:    version.Product,
		Usage:   "Play sequences of tones through the audio device",
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Log file path (default: stderr)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Before: commands.SetupLogging,
		After:  commands.CloseLogging,
		Commands: []*cli.Command{
			commands.Play(),
			commands.Keys(),
			commands.Backends(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
