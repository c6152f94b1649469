// Command render plays a note list through the synth engine and writes the
// result to a WAV file.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jinjor/mono-synth/src/audio"
	wav "github.com/youpy/go-wav"
)

const (
	channels      = 2
	bitsPerSample = 16
)

var (
	out        = flag.String("o", "out.wav", "output WAV file")
	notes      = flag.String("notes", "60:0.5,64:0.5,67:0.5,72:1", "comma separated note:seconds list; a note of - is a rest")
	patch      = flag.String("patch", "", "patch file to apply first")
	sampleRate = flag.Int("sample-rate", 48000, "sample rate")
	bufferSize = flag.Int("buffer-size", 256, "frames per buffer")
	velocity   = flag.Int("velocity", 100, "note velocity")
	tail       = flag.Duration("tail", time.Second, "time rendered after the last note is released")
)

type step struct {
	note    int // -1 is a rest
	seconds float64
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lshortfile)
	steps, err := parseNotes(*notes)
	if err != nil {
		log.Fatalf("error: %v\n", err)
	}
	if err := render(steps); err != nil {
		log.Fatalf("error: %v\n", err)
	}
}

func parseNotes(s string) ([]step, error) {
	var steps []step
	for _, item := range strings.Split(s, ",") {
		noteStr, secStr, ok := strings.Cut(strings.TrimSpace(item), ":")
		if !ok {
			return nil, fmt.Errorf("expected note:seconds, got %q", item)
		}
		seconds, err := strconv.ParseFloat(secStr, 64)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("invalid duration %q", secStr)
		}
		note := -1
		if noteStr != "-" {
			note, err = strconv.Atoi(noteStr)
			if err != nil {
				return nil, fmt.Errorf("invalid note %q", noteStr)
			}
		}
		steps = append(steps, step{note: note, seconds: seconds})
	}
	return steps, nil
}

func render(steps []step) error {
	opts := audio.DefaultOptions()
	opts.SampleRate = *sampleRate
	opts.BufferSize = *bufferSize
	opts.Channels = channels
	a, err := audio.NewAudio(opts)
	if err != nil {
		return err
	}
	defer a.Close()
	if *patch != "" {
		if err := a.Exec([]string{"load", *patch}); err != nil {
			return err
		}
	}

	buffersFor := func(seconds float64) int {
		return int(math.Ceil(seconds * float64(*sampleRate) / float64(*bufferSize)))
	}
	total := buffersFor(tail.Seconds())
	for _, s := range steps {
		total += buffersFor(s.seconds)
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()
	w := wav.NewWriter(f, uint32(total**bufferSize), channels, uint32(*sampleRate), bitsPerSample)

	buf := make([]float32, *bufferSize*channels)
	samples := make([]wav.Sample, *bufferSize)
	write := func(buffers int) error {
		for i := 0; i < buffers; i++ {
			clear(buf)
			a.Process(buf)
			for j := range samples {
				samples[j].Values[0] = toInt16(buf[j*channels])
				samples[j].Values[1] = toInt16(buf[j*channels+1])
			}
			if err := w.WriteSamples(samples); err != nil {
				return err
			}
		}
		return nil
	}
	for _, s := range steps {
		if s.note >= 0 {
			if err := a.Exec([]string{"note_on", strconv.Itoa(s.note), strconv.Itoa(*velocity)}); err != nil {
				return err
			}
		}
		if err := write(buffersFor(s.seconds)); err != nil {
			return err
		}
		if s.note >= 0 {
			if err := a.Exec([]string{"note_off", strconv.Itoa(s.note)}); err != nil {
				return err
			}
		}
	}
	if err := write(buffersFor(tail.Seconds())); err != nil {
		return err
	}
	stats := a.Stats()
	log.Printf("wrote %s: %d frames, %d non-finite, %d panics", *out, total**bufferSize,
		stats.NonFinite.Load(), stats.RecoveredPanics.Load())
	return nil
}

func toInt16(v float32) int {
	return int(math.Max(-1, math.Min(1, float64(v))) * 32767)
}
