// ABOUTME: backends command
// ABOUTME: Lists the available audio output backends
package commands

import (
	"fmt"

	"github.com/Sendspin/beep-go/pkg/audio/output"
	"github.com/urfave/cli/v2"
)

// Backends returns the backends command
func Backends() *cli.Command {
	return &cli.Command{
		Name:  "backends",
		Usage: "List audio output backends",
		Action: func(c *cli.Context) error {
			for _, name := range output.Names() {
				marker := " "
				if name == output.DefaultBackend {
					marker = "*"
				}
				fmt.Fprintf(c.App.Writer, "%s %s\n", marker, name)
			}
			return nil
		},
	}
}
