package audio

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	gomidi "gitlab.com/gomidi/midi"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/rtmididrv"
)

// ListenToMidiIn forwards messages from the MIDI input whose name contains
// port (the first input when port is empty) to MidiCh until ctx is done.
// Messages that do not fit in MidiCh are dropped and counted.
func (a *Audio) ListenToMidiIn(ctx context.Context, port string) error {
	drv, err := rtmididrv.New()
	if err != nil {
		log.Printf("[WARN] failed to initialize MIDI driver: %v", err)
		return nil
	}
	defer func() {
		if err := drv.Close(); err != nil {
			log.Printf("failed to close MIDI driver: %v", err)
		}
	}()
	ins, err := drv.Ins()
	if err != nil {
		log.Printf("[WARN] failed to get MIDI IN: %v", err)
		return nil
	}
	in, err := findMidiIn(ins, port)
	if err != nil {
		log.Printf("[WARN] %v", err)
		return nil
	}
	if err := in.Open(); err != nil {
		log.Printf("[WARN] failed to open MIDI IN: %v", err)
		return nil
	}
	log.Println("opened " + in.String())
	defer func() {
		if err := in.Close(); err != nil {
			log.Printf("failed to close MIDI IN: %v", err)
		}
	}()
	if err := in.SetListener(func(data []byte, deltaMicroseconds int64) {
		a.forwardMidi(data)
	}); err != nil {
		return fmt.Errorf("failed to set MIDI listener: %w", err)
	}
	defer func() {
		log.Println("stop listening MIDI IN...")
		if err := in.StopListening(); err != nil {
			log.Printf("failed to stop listening: %v", err)
		}
	}()
	<-ctx.Done()
	return nil
}

func findMidiIn(ins []gomidi.In, port string) (gomidi.In, error) {
	for _, in := range ins {
		if port == "" || strings.Contains(in.String(), port) {
			return in, nil
		}
	}
	if port == "" {
		return nil, fmt.Errorf("MIDI IN not found")
	}
	return nil, fmt.Errorf("no MIDI IN matches %q", port)
}

func (a *Audio) forwardMidi(data []byte) {
	msg := make([]byte, len(data))
	copy(msg, data)
	select {
	case a.MidiCh <- msg:
	default:
		a.midiDrops.Add(1)
	}
}

func (a *Audio) acceptsChannel(ch uint8) bool {
	return a.opts.MidiChannel == 0 || int(ch)+1 == a.opts.MidiChannel
}

// handleMidi classifies one raw message and applies it.
func (a *Audio) handleMidi(data []byte) error {
	msg := midi.Message(data)
	var ch, key, vel, cc, value, pressure uint8
	var rel int16
	var abs uint16
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		if a.acceptsChannel(ch) {
			a.noteOn(int(key), int(vel))
		}
	case msg.GetNoteEnd(&ch, &key):
		if a.acceptsChannel(ch) {
			a.voice.noteOff(int(key))
		}
	case msg.GetControlChange(&ch, &cc, &value):
		if a.acceptsChannel(ch) {
			return a.controlChange(cc, value)
		}
	case msg.GetPitchBend(&ch, &rel, &abs):
		if a.acceptsChannel(ch) {
			a.pitchBend(abs)
		}
	case msg.GetAfterTouch(&ch, &pressure):
		if a.acceptsChannel(ch) {
			return a.setControl(keyboardKey("aftertouch"), normalizeMidiValue(pressure))
		}
	default:
		debugf("ignored MIDI message %v", msg)
	}
	return nil
}

// ListDevices writes the available audio outputs and MIDI inputs to w.
func ListDevices(w io.Writer) error {
	if err := listOutputDevices(w); err != nil {
		fmt.Fprintf(w, "audio outputs: %v\n", err)
	}
	drv, err := rtmididrv.New()
	if err != nil {
		return fmt.Errorf("failed to initialize MIDI driver: %w", err)
	}
	defer drv.Close()
	ins, err := drv.Ins()
	if err != nil {
		return fmt.Errorf("failed to get MIDI IN: %w", err)
	}
	fmt.Fprintln(w, "MIDI inputs:")
	for _, in := range ins {
		fmt.Fprintf(w, "  %d: %s\n", in.Number(), in.String())
	}
	return nil
}
