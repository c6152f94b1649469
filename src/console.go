package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/jinjor/mono-synth/src/audio"
)

const consoleHelp = `commands:
  set <module> [index] <field> <value>   e.g. set osc 1 shape 0.3
  note_on <note> [velocity]
  note_off <note>
  all_notes_off
  pitch_bend <0..16383>
  cc <number> <0..127>
  aftertouch <0..127>
  sustain <0..127>
  load <patch.yaml>
  levels
  quit`

// runConsole reads commands from an interactive prompt and prints the
// display events they produce. EOF or "quit" ends the daemon.
func runConsole(ctx context.Context, a *audio.Audio) error {
	rl, err := readline.New("> ")
	if err != nil {
		return err
	}
	defer rl.Close()
	stop := context.AfterFunc(ctx, func() {
		rl.Close()
	})
	defer stop()
	go printDisplay(ctx, rl.Stdout(), a.DisplayCh)

	for {
		line, err := rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			return errQuit
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			fmt.Fprintln(rl.Stderr(), err)
			continue
		}
		command := strings.Fields(line)
		if len(command) == 0 {
			continue
		}
		switch command[0] {
		case "quit", "exit":
			return errQuit
		case "help":
			fmt.Fprintln(rl.Stdout(), consoleHelp)
			continue
		case "levels":
			l := a.Levels()
			fmt.Fprintf(rl.Stdout(), "peak %.1f dB, rms %.1f dB\n", l.Peak, l.RMS)
			continue
		}
		select {
		case a.CommandCh <- command:
		case <-ctx.Done():
			return nil
		}
	}
}

func printDisplay(ctx context.Context, w io.Writer, ch <-chan audio.DisplayEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-ch:
			fmt.Fprintf(w, "%s: %s\n", ev.Key, ev.Text)
		}
	}
}
