package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"testing"
	"time"
)

func expectNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Errorf("expected no error, but got: %v", err)
	}
}

func expectError(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Errorf("expected %v, but got: %v", target, err)
	}
}

func expectEqual(t *testing.T, actual, expected interface{}) {
	t.Helper()
	if actual != expected {
		t.Errorf("expected %v, but got: %v", expected, actual)
	}
}

func expectNearlyEqual(t *testing.T, actual, expected float64) {
	t.Helper()
	expectNearlyEqualWithin(t, actual, expected, 0.0001)
}

func expectNearlyEqualWithin(t *testing.T, actual, expected, tolerance float64) {
	t.Helper()
	if math.Abs(actual-expected) > tolerance {
		t.Errorf("expected %v, but got: %v", expected, actual)
	}
}

func expectTrue(t *testing.T, cond bool, format string, args ...interface{}) {
	t.Helper()
	if !cond {
		t.Errorf(format, args...)
	}
}

func newTestAudio(t *testing.T, opts Options) *Audio {
	t.Helper()
	a, err := NewAudio(opts)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { expectNoError(t, a.Close()) })
	return a
}

func drainEvents(a *Audio) []event {
	var evs []event
	a.events.drain(func(ev event) { evs = append(evs, ev) })
	return evs
}

func TestNewAudioRejectsBadOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.SampleRate = 8000
	_, err := NewAudio(opts)
	expectError(t, err, ErrInvalidValue)

	opts = DefaultOptions()
	opts.MidiChannel = 17
	_, err = NewAudio(opts)
	expectError(t, err, ErrInvalidValue)
}

func TestUpdateSet(t *testing.T) {
	a := newTestAudio(t, DefaultOptions())
	expectNoError(t, a.update([]string{"set", "filter", "cutoff", "0"}))
	expectEqual(t, a.params.filter.cutoff.Load(), 0.0)
	expectNoError(t, a.update([]string{"set", "osc", "2", "coarse_tune", "1"}))
	expectEqual(t, a.params.osc[2].coarseTune.Load(), int32(12))
	expectNoError(t, a.update([]string{"set", "effect", "delay", "enabled", "1"}))
	expectEqual(t, a.params.effects[effectDelay].enabled.Load(), true)
}

func TestUpdateErrors(t *testing.T) {
	a := newTestAudio(t, DefaultOptions())
	expectError(t, a.update(nil), ErrUnknownCommand)
	expectError(t, a.update([]string{"poly"}), ErrUnknownCommand)
	expectError(t, a.update([]string{"set", "osc", "4", "shape", "0"}), ErrIndexOutOfRange)
	expectError(t, a.update([]string{"set", "osc", "1", "color", "0"}), ErrUnknownControl)
	expectError(t, a.update([]string{"set", "chorus", "rate", "0"}), ErrUnknownControl)
	expectError(t, a.update([]string{"set", "osc", "1", "shape", "abc"}), ErrInvalidValue)
	expectError(t, a.update([]string{"set", "osc", "1", "shape"}), ErrInvalidValue)
	expectError(t, a.update([]string{"set", "filter", "cutoff", "NaN"}), ErrInvalidValue)
	expectError(t, a.update([]string{"note_on", "x"}), ErrInvalidValue)
	expectError(t, a.update([]string{"note_on"}), ErrInvalidValue)
}

func TestNoteCommands(t *testing.T) {
	a := newTestAudio(t, DefaultOptions())
	expectNoError(t, a.update([]string{"note_on", "60"}))
	expectNoError(t, a.update([]string{"note_on", "64", "30"}))
	expectNoError(t, a.update([]string{"note_off", "64"}))
	expectNoError(t, a.update([]string{"note_off", "60"}))
	evs := drainEvents(a)
	expectEqual(t, len(evs), 4)
	expectEqual(t, evs[0], event{kind: eventNoteOn, note: 60, velocity: defaultVelocity})
	expectEqual(t, evs[1], event{kind: eventNoteOn, note: 64, velocity: 30})
	expectEqual(t, evs[2].kind, eventRetune)
	expectEqual(t, evs[2].note, 60)
	expectEqual(t, evs[3].kind, eventGateOff)
}

func TestNoteOnWithZeroVelocityReleases(t *testing.T) {
	a := newTestAudio(t, DefaultOptions())
	expectNoError(t, a.update([]string{"note_on", "60"}))
	expectNoError(t, a.update([]string{"note_on", "60", "0"}))
	evs := drainEvents(a)
	expectEqual(t, len(evs), 2)
	expectEqual(t, evs[1].kind, eventGateOff)
}

func TestSustainDefersGateOff(t *testing.T) {
	a := newTestAudio(t, DefaultOptions())
	expectNoError(t, a.update([]string{"cc", "64", "127"}))
	expectNoError(t, a.update([]string{"note_on", "60"}))
	expectNoError(t, a.update([]string{"note_off", "60"}))
	expectEqual(t, len(drainEvents(a)), 1)
	expectNoError(t, a.update([]string{"sustain", "0"}))
	evs := drainEvents(a)
	expectEqual(t, len(evs), 1)
	expectEqual(t, evs[0].kind, eventGateOff)
}

func TestPitchBendCommand(t *testing.T) {
	a := newTestAudio(t, DefaultOptions())
	expectNoError(t, a.update([]string{"pitch_bend", "16383"}))
	expectEqual(t, a.params.keyboard.pitchBend.Load(), int32(1200))
	expectNoError(t, a.update([]string{"pitch_bend", "8192"}))
	expectEqual(t, a.params.keyboard.pitchBend.Load(), int32(0))
}

func TestControlChangeMapsToControl(t *testing.T) {
	a := newTestAudio(t, DefaultOptions())
	expectNoError(t, a.update([]string{"cc", "74", "0"}))
	expectEqual(t, a.params.filter.cutoff.Load(), 0.0)
	expectNoError(t, a.update([]string{"cc", "1", "127"}))
	expectEqual(t, a.params.keyboard.modWheel.Load(), 1.0)
	// unmapped numbers are ignored
	expectNoError(t, a.update([]string{"cc", "9", "127"}))
}

func TestDisplayEvents(t *testing.T) {
	opts := DefaultOptions()
	opts.Display = true
	a := newTestAudio(t, opts)
	expectNoError(t, a.update([]string{"set", "osc", "1", "shape", "0"}))
	ev := <-a.DisplayCh
	expectEqual(t, ev.Key.String(), "osc.1.shape")
	expectEqual(t, ev.Text, "Sine")
	expectNoError(t, a.update([]string{"set", "mixer", "output_mute", "1"}))
	ev = <-a.DisplayCh
	expectEqual(t, ev.Text, "on")
}

func TestDisplayUnblocksOnClose(t *testing.T) {
	opts := DefaultOptions()
	opts.Display = true
	a, err := NewAudio(opts)
	expectNoError(t, err)
	for i := 0; i < displayBufferSize; i++ {
		expectNoError(t, a.update([]string{"set", "filter", "cutoff", "0.5"}))
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.update([]string{"set", "filter", "cutoff", "0.5"})
	}()
	expectNoError(t, a.Close())
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Error("display send did not return after Close")
	}
}

func TestProcessWritesConfiguredSlots(t *testing.T) {
	opts := DefaultOptions()
	opts.Channels = 4
	opts.LeftChannel = 1
	opts.RightChannel = 3
	a := newTestAudio(t, opts)
	expectNoError(t, a.update([]string{"note_on", "69", "127"}))
	out := make([]float32, opts.BufferSize*opts.Channels)
	for i := range out {
		out[i] = 7
	}
	a.Process(out)
	written := false
	for f := 0; f < opts.BufferSize; f++ {
		frame := out[f*4 : f*4+4]
		expectEqual(t, frame[0], float32(7))
		expectEqual(t, frame[2], float32(7))
		if frame[1] != 0 && frame[1] != 7 {
			written = true
		}
	}
	expectTrue(t, written, "left slot was never written")
}

func TestReadSilence(t *testing.T) {
	a := newTestAudio(t, DefaultOptions())
	buf := make([]byte, 3*a.opts.BufferSize*a.opts.Channels*bitDepthInBytes)
	for i := range buf {
		buf[i] = 0xAA
	}
	n, err := a.Read(buf)
	expectNoError(t, err)
	expectEqual(t, n, len(buf))
	for _, b := range buf {
		if b != 0 {
			t.Fatalf("expected silence, but got %v", b)
		}
	}
}

func TestReadAfterCancel(t *testing.T) {
	a := newTestAudio(t, DefaultOptions())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a.ctx = ctx
	_, err := a.Read(make([]byte, 16))
	expectEqual(t, err, io.EOF)
}

func TestWriteBuffer(t *testing.T) {
	buf := make([]byte, 8)
	writeBuffer([]float32{1, -1, 0, 2}, buf)
	expectEqual(t, buf[0], byte(0xFF))
	expectEqual(t, buf[1], byte(0x7F))
	expectEqual(t, buf[2], byte(0x01))
	expectEqual(t, buf[3], byte(0x80))
	expectEqual(t, buf[4], byte(0))
	expectEqual(t, buf[5], byte(0))
	expectEqual(t, buf[6], byte(0xFF))
	expectEqual(t, buf[7], byte(0x7F))
}

func TestStartWithoutChannelsRetriesUntilCancel(t *testing.T) {
	opts := DefaultOptions()
	opts.Channels = 0
	opts.DeviceRetry = 10 * time.Millisecond
	a := newTestAudio(t, opts)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	expectNoError(t, a.Start(ctx))
}

func TestBenchmark(t *testing.T) {
	times := 1000

	a := newTestAudio(t, DefaultOptions())
	for i := 0; i < int(numEffects); i++ {
		expectNoError(t, a.update([]string{"set", "effect", fmt.Sprint(i), "enabled", "1"}))
	}
	expectNoError(t, a.update([]string{"set", "keyboard", "hard_sync", "1"}))
	expectNoError(t, a.update([]string{"set", "filter", "poles", "1"}))
	expectNoError(t, a.update([]string{"set", "osc", "2", "shape", "0.65"}))
	expectNoError(t, a.update([]string{"note_on", "60"}))
	out := make([]float32, a.opts.BufferSize*a.opts.Channels)
	start := time.Now()
	for n := 0; n < times; n++ {
		a.Process(out)
	}
	averageProcessTime := time.Since(start).Seconds() / float64(times) * 1000
	fmt.Printf("average process time: %.3fms\n", averageProcessTime)
	expectEqual(t, a.stats.RecoveredPanics.Load(), uint64(0))
}
