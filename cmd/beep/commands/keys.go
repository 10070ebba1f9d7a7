// ABOUTME: keys command
// ABOUTME: Interactive keyboard beeper TUI
package commands

import (
	"time"

	"github.com/Sendspin/beep-go/internal/ui"
	"github.com/urfave/cli/v2"
)

// Keys returns the keys command
func Keys() *cli.Command {
	return &cli.Command{
		Name:  "keys",
		Usage: "Play notes from the keyboard",
		Flags: append(soundFlags(), &cli.DurationFlag{
			Name:  "length",
			Usage: "How long each note sounds",
			Value: defaultNoteLength,
		}),
		Action: runKeys,
	}
}

const defaultNoteLength = 250 * time.Millisecond

func runKeys(c *cli.Context) error {
	seq, err := newSequencer(c)
	if err != nil {
		return err
	}
	defer seq.Close()

	// Open the device before the alt screen so failures are readable
	if err := seq.Initialize(c.Context); err != nil {
		return err
	}

	return ui.Run(seq, ui.Config{
		NoteLength: c.Duration("length"),
		Volume:     seq.Volume(),
		Waveform:   seq.Waveform().String(),
		Backend:    c.String("backend"),
	})
}
