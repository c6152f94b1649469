package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const (
	defaultSampleRate  = 48000
	defaultBufferSize  = 256
	defaultChannels    = 2
	defaultDeviceRetry = 2 * time.Second
	defaultVelocity    = 100
	bitDepthInBytes    = 2
	displayBufferSize  = 256
	midiBufferSize     = 1024
)

var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrUnknownControl  = errors.New("unknown control")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrInvalidValue    = errors.New("invalid value")
	ErrNoDevice        = errors.New("no audio device")
)

// ----- Logging ----- //

var debugLogging atomic.Bool

// SetDebugLogging turns [DEBUG] lines on or off.
func SetDebugLogging(on bool) {
	debugLogging.Store(on)
}

func debugf(format string, args ...any) {
	if debugLogging.Load() {
		log.Output(2, "[DEBUG] "+fmt.Sprintf(format, args...))
	}
}

// ----- Options ----- //

// Options configures the engine and its output device.
type Options struct {
	Backend      string // "oto" or "portaudio"
	Device       string
	SampleRate   int
	BufferSize   int
	Channels     int
	LeftChannel  int
	RightChannel int
	DeviceRetry  time.Duration
	MidiChannel  int  // 0 listens on every channel, 1..16 on one
	Display      bool // publish DisplayEvents on DisplayCh
}

// DefaultOptions returns stereo output at 48 kHz through oto.
func DefaultOptions() Options {
	return Options{
		Backend:      "oto",
		SampleRate:   defaultSampleRate,
		BufferSize:   defaultBufferSize,
		Channels:     defaultChannels,
		LeftChannel:  0,
		RightChannel: 1,
		DeviceRetry:  defaultDeviceRetry,
	}
}

// ----- Audio ----- //

// Audio owns the synthesizer. Control input arrives on CommandCh and
// MidiCh and is handled by one goroutine; the output device pulls samples
// through Read or Process.
type Audio struct {
	ctx       context.Context
	opts      Options
	params    *Params
	events    *eventBuffer
	voice     *voice
	engine    *engine
	stats     *Stats
	tap       *outputTap
	floatBuf  []float32
	CommandCh chan []string
	MidiCh    chan []byte
	DisplayCh chan DisplayEvent
	midiDrops atomic.Uint64

	analyzerMu sync.Mutex
	analyzer   *analyzer

	done      chan struct{}
	closeOnce sync.Once
}

var _ io.Reader = (*Audio)(nil)

// NewAudio builds the engine and starts the command goroutine. No device is
// opened until Start.
func NewAudio(opts Options) (*Audio, error) {
	if opts.SampleRate < minSampleRate || opts.SampleRate > maxSampleRate {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidValue, opts.SampleRate)
	}
	if opts.BufferSize <= 0 {
		return nil, fmt.Errorf("%w: buffer size %d", ErrInvalidValue, opts.BufferSize)
	}
	if opts.MidiChannel < 0 || opts.MidiChannel > 16 {
		return nil, fmt.Errorf("%w: MIDI channel %d", ErrInvalidValue, opts.MidiChannel)
	}
	if opts.DeviceRetry <= 0 {
		opts.DeviceRetry = defaultDeviceRetry
	}
	params := NewParams()
	params.SetOutputChannels(opts.LeftChannel, opts.RightChannel)
	events := newEventBuffer(eventBufferSize)
	stats := &Stats{}
	tap := newOutputTap(fftSize)
	a := &Audio{
		ctx:       context.Background(),
		opts:      opts,
		params:    params,
		events:    events,
		voice:     newVoice(events, params),
		engine:    newEngine(opts.SampleRate, opts.BufferSize, params, events, stats, tap),
		stats:     stats,
		tap:       tap,
		floatBuf:  make([]float32, opts.BufferSize*max(opts.Channels, 1)),
		CommandCh: make(chan []string, 256),
		MidiCh:    make(chan []byte, midiBufferSize),
		analyzer:  newAnalyzer(tap, fftSize),
		done:      make(chan struct{}),
	}
	if opts.Display {
		a.DisplayCh = make(chan DisplayEvent, displayBufferSize)
	}
	go processCommands(a)
	return a, nil
}

// Params exposes the parameter store for direct control.
func (a *Audio) Params() *Params {
	return a.params
}

// Stats exposes the audio thread counters.
func (a *Audio) Stats() *Stats {
	return a.stats
}

// Close stops the command goroutine.
func (a *Audio) Close() error {
	a.closeOnce.Do(func() {
		log.Println("Closing Audio...")
		close(a.done)
		close(a.CommandCh)
	})
	return nil
}

// Start opens the configured backend and blocks until ctx is done. When the
// device cannot be opened, or the stream ends on its own, it logs and tries
// again after Options.DeviceRetry.
func (a *Audio) Start(ctx context.Context) error {
	a.ctx = ctx
	t := time.NewTicker(a.opts.DeviceRetry)
	defer t.Stop()
	for {
		err := a.runBackend(ctx)
		if ctx.Err() != nil {
			log.Println("Start() ended.")
			return nil
		}
		if err != nil {
			log.Printf("[WARN] audio output unavailable: %v", err)
		} else {
			log.Println("[WARN] audio stream stopped, reopening")
		}
		select {
		case <-ctx.Done():
			log.Println("Start() ended.")
			return nil
		case <-t.C:
		}
	}
}

func (a *Audio) runBackend(ctx context.Context) error {
	if a.opts.Channels <= 0 {
		return fmt.Errorf("%w: %d output channels", ErrNoDevice, a.opts.Channels)
	}
	switch a.opts.Backend {
	case "", "oto":
		return a.runOto(ctx)
	case "portaudio":
		return a.runPortAudio(ctx)
	}
	return fmt.Errorf("%w: backend %q", ErrNoDevice, a.opts.Backend)
}

// Process renders one interleaved buffer. It is the callback for push
// style backends.
func (a *Audio) Process(out []float32) {
	a.engine.process(out, a.opts.Channels)
}

// Read renders 16-bit little endian interleaved frames for pull style
// backends.
func (a *Audio) Read(buf []byte) (int, error) {
	select {
	case <-a.ctx.Done():
		return 0, io.EOF
	default:
	}
	ch := a.opts.Channels
	if ch <= 0 {
		return 0, fmt.Errorf("%w: %d output channels", ErrNoDevice, ch)
	}
	bytesPerFrame := bitDepthInBytes * ch
	frames := len(buf) / bytesPerFrame
	chunk := len(a.floatBuf) / ch
	for done := 0; done < frames; {
		n := min(chunk, frames-done)
		out := a.floatBuf[:n*ch]
		clear(out)
		a.engine.process(out, ch)
		writeBuffer(out, buf[done*bytesPerFrame:])
		done += n
	}
	return frames * bytesPerFrame, nil
}

func writeBuffer(out []float32, buf []byte) {
	const max = 32767
	for i, v := range out {
		b := int16(clamp(float64(v), -1, 1) * max)
		buf[2*i] = byte(b)
		buf[2*i+1] = byte(b >> 8)
	}
}

// GetFFT returns the magnitude spectrum of the latest output.
func (a *Audio) GetFFT() []float64 {
	a.analyzerMu.Lock()
	defer a.analyzerMu.Unlock()
	return a.analyzer.spectrum()
}

// Levels returns the peak and RMS of the latest output.
func (a *Audio) Levels() Levels {
	a.analyzerMu.Lock()
	defer a.analyzerMu.Unlock()
	return a.analyzer.levels()
}

// WatchHealth logs changes in the audio thread counters until ctx is done.
func (a *Audio) WatchHealth(ctx context.Context, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	var last healthCounters
	for {
		select {
		case <-ctx.Done():
			log.Println("WatchHealth() ended.")
			return nil
		case <-t.C:
			now := a.healthCounters()
			now.report(last)
			last = now
		}
	}
}

type healthCounters struct {
	dropped, nonFinite, panics, eventWaits, eventDrops, midiDrops uint64
}

func (a *Audio) healthCounters() healthCounters {
	return healthCounters{
		dropped:    a.stats.DroppedFrames.Load(),
		nonFinite:  a.stats.NonFinite.Load(),
		panics:     a.stats.RecoveredPanics.Load(),
		eventWaits: a.events.waits.Load(),
		eventDrops: a.events.drops.Load(),
		midiDrops:  a.midiDrops.Load(),
	}
}

func (h healthCounters) report(prev healthCounters) {
	if d := h.panics - prev.panics; d > 0 {
		log.Printf("[WARN] recovered %d panics in the audio callback", d)
	}
	if d := h.nonFinite - prev.nonFinite; d > 0 {
		log.Printf("[WARN] replaced %d non-finite samples", d)
	}
	if d := h.eventDrops - prev.eventDrops; d > 0 {
		log.Printf("[WARN] dropped %d note events, is the output stream running?", d)
	}
	if d := h.midiDrops - prev.midiDrops; d > 0 {
		log.Printf("[WARN] dropped %d MIDI messages", d)
	}
	if d := h.dropped - prev.dropped; d > 0 {
		debugf("dropped %d frames", d)
	}
	if d := h.eventWaits - prev.eventWaits; d > 0 {
		debugf("event queue was full %d times", d)
	}
}

// ----- Commands ----- //

func processCommands(a *Audio) {
	for {
		select {
		case command, ok := <-a.CommandCh:
			if !ok {
				log.Println("processCommands() ended.")
				return
			}
			if err := a.update(command); err != nil {
				log.Printf("[WARN] dropped command %q: %v", strings.Join(command, " "), err)
			}
		case data := <-a.MidiCh:
			if err := a.handleMidi(data); err != nil {
				log.Printf("[WARN] dropped MIDI message % X: %v", data, err)
			}
		}
	}
}

// Exec runs one command synchronously. It must not be used while commands
// are also sent on CommandCh or MidiCh.
func (a *Audio) Exec(command []string) error {
	return a.update(command)
}

func (a *Audio) update(command []string) error {
	if len(command) == 0 {
		return fmt.Errorf("%w: empty", ErrUnknownCommand)
	}
	args := command[1:]
	switch command[0] {
	case "set":
		key, rest, err := controlKeyFromArgs(args)
		if err != nil {
			return err
		}
		if len(rest) != 1 {
			return fmt.Errorf("%w: set %s needs one value", ErrInvalidValue, key)
		}
		x, err := strconv.ParseFloat(rest[0], 64)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidValue, rest[0])
		}
		return a.setControl(key, x)
	case "note_on":
		nums, err := parseInts(args, 1, 2)
		if err != nil {
			return err
		}
		velocity := defaultVelocity
		if len(nums) == 2 {
			velocity = nums[1]
		}
		a.noteOn(nums[0], velocity)
	case "note_off":
		nums, err := parseInts(args, 1, 1)
		if err != nil {
			return err
		}
		a.voice.noteOff(nums[0])
	case "all_notes_off":
		a.voice.allNotesOff()
	case "pitch_bend":
		nums, err := parseInts(args, 1, 1)
		if err != nil {
			return err
		}
		a.pitchBend(uint16(clampInt(nums[0], 0, pitchBendMax)))
	case "cc":
		nums, err := parseInts(args, 2, 2)
		if err != nil {
			return err
		}
		return a.controlChange(uint8(clampInt(nums[0], 0, 127)), uint8(clampInt(nums[1], 0, 127)))
	case "aftertouch":
		nums, err := parseInts(args, 1, 1)
		if err != nil {
			return err
		}
		return a.setControl(keyboardKey("aftertouch"), normalizeMidiValue(uint8(clampInt(nums[0], 0, 127))))
	case "sustain":
		nums, err := parseInts(args, 1, 1)
		if err != nil {
			return err
		}
		return a.setControl(keyboardKey("sustain"), normalizeMidiValue(uint8(clampInt(nums[0], 0, 127))))
	case "load":
		if len(args) != 1 {
			return fmt.Errorf("%w: load needs a path", ErrInvalidValue)
		}
		return a.LoadPatch(args[0])
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, command[0])
	}
	return nil
}

func parseInts(args []string, minArgs, maxArgs int) ([]int, error) {
	if len(args) < minArgs || len(args) > maxArgs {
		return nil, fmt.Errorf("%w: expected %d to %d arguments, got %d", ErrInvalidValue, minArgs, maxArgs, len(args))
	}
	nums := make([]int, len(args))
	for i, s := range args {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidValue, s)
		}
		nums[i] = n
	}
	return nums, nil
}

func (a *Audio) noteOn(note, velocity int) {
	if velocity <= 0 {
		a.voice.noteOff(note)
		return
	}
	a.voice.noteOn(note, velocity)
	debugf("note on %s velocity %d", noteName(clampInt(note, minNoteNumber, maxNoteNumber)), velocity)
}

func (a *Audio) pitchBend(value uint16) {
	cents := a.params.setPitchBend(value)
	a.display(DisplayEvent{
		Key:   keyboardKey("pitch_bend"),
		Value: float64(cents),
		Text:  fmt.Sprintf("%d cents", cents),
	})
}

func (a *Audio) controlChange(cc, value uint8) error {
	key, ok := controlForCC(cc)
	if !ok {
		debugf("no control for CC %d", cc)
		return nil
	}
	return a.setControl(key, normalizeMidiValue(value))
}

// setControl applies one control. Sustain and all-notes-off act on the
// held notes instead of the parameter store.
func (a *Audio) setControl(key ControlKey, x float64) error {
	var ev DisplayEvent
	switch {
	case key.Module == ModuleKeyboard && key.Field == "sustain":
		on := normalToBool(x)
		a.voice.setSustain(on)
		ev = DisplayEvent{Key: key, Value: boolValue(on), Text: onOff(on)}
	case key.Module == ModuleKeyboard && key.Field == "all_notes_off":
		a.voice.allNotesOff()
		ev = DisplayEvent{Key: key, Value: 1, Text: "all notes off"}
	default:
		var err error
		ev, err = a.params.Apply(key, x)
		if err != nil {
			return err
		}
	}
	a.display(ev)
	return nil
}

// display blocks while DisplayCh is full so that a slow reader slows the
// control side down. The audio thread never gets here.
func (a *Audio) display(ev DisplayEvent) {
	debugf("%s = %s", ev.Key, ev.Text)
	if a.DisplayCh == nil {
		return
	}
	select {
	case a.DisplayCh <- ev:
	case <-a.done:
	}
}
