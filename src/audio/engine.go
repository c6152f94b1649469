package audio

import (
	"math"
	"sync/atomic"
)

// ----- Engine ----- //

// Stats counts conditions met on the audio thread, which never logs.
type Stats struct {
	Buffers         atomic.Uint64
	DroppedFrames   atomic.Uint64
	NonFinite       atomic.Uint64
	RecoveredPanics atomic.Uint64
}

// engine renders interleaved output buffers. Only the audio thread calls
// into it; it reads the parameter table once per buffer and takes note
// events from the event buffer.
type engine struct {
	sampleRate int
	bufferSize int
	params     *Params
	events     *eventBuffer
	stats      *Stats
	tap        *outputTap

	snap      paramSnapshot
	oscs      [numOscillators]*oscillator
	applied   [numOscillators]oscSnapshot
	sync      hardSync
	envelopes [numEnvelopes]*adsr
	lfos      [numLFOs]*lfo
	lfoResets [numLFOs]uint32
	filter    *filter
	filterMod filterModulation
	mixer     *mixer
	effects   *effectsChain

	note      int
	velocity  float64
	glide     transitiveValue
	lastLeft  float64
	lastRight float64
}

func newEngine(sampleRate, bufferSize int, params *Params, events *eventBuffer, stats *Stats, tap *outputTap) *engine {
	e := &engine{
		sampleRate: sampleRate,
		bufferSize: bufferSize,
		params:     params,
		events:     events,
		stats:      stats,
		tap:        tap,
		filter:     newFilter(sampleRate),
		mixer:      newMixer(),
		effects:    newEffectsChain(sampleRate),
		note:       middleC,
	}
	for i := range e.oscs {
		role := syncNone
		switch i {
		case syncMasterOsc:
			role = syncMaster
		case syncSlaveOsc:
			role = syncSlave
		}
		e.oscs[i] = newOscillator(sampleRate, role)
		e.applied[i] = oscSnapshot{shape: defaultWaveShape, shapeParam1: unsetShapeParam, shapeParam2: unsetShapeParam}
	}
	for i := range e.envelopes {
		e.envelopes[i] = newADSR(sampleRate)
	}
	for i := range e.lfos {
		e.lfos[i] = newLFO(sampleRate)
	}
	e.glide.init(noteToFreq(e.note))
	e.loadParams()
	return e
}

func (e *engine) handleEvent(ev event) {
	switch ev.kind {
	case eventNoteOn:
		legato := e.envelopes[ampEnvelope].active()
		e.setNote(ev.note, legato)
		e.velocity = float64(ev.velocity) / 127
		if e.snap.keySync {
			for _, o := range e.oscs {
				o.reset()
			}
		}
		for _, env := range e.envelopes {
			env.gateOn()
		}
	case eventRetune:
		e.setNote(ev.note, true)
	case eventGateOff:
		for _, env := range e.envelopes {
			env.gateOff()
		}
	}
}

func (e *engine) setNote(note int, legato bool) {
	e.note = note
	target := noteToFreq(note)
	if legato && e.snap.portamento {
		e.glide.linear(e.snap.portamentoTime*e.bufferSize, target)
		return
	}
	e.glide.init(target)
}

func (e *engine) loadParams() {
	s := &e.snap
	e.params.load(s)

	for i, o := range e.oscs {
		want := &s.osc[i]
		have := &e.applied[i]
		if want.shape != have.shape {
			o.setShape(want.shape)
		}
		if want.shapeParam1 != have.shapeParam1 && want.shapeParam1 >= 0 {
			o.setShapeParameter1(want.shapeParam1)
		}
		if want.shapeParam2 != have.shapeParam2 && want.shapeParam2 >= 0 {
			o.setShapeParameter2(want.shapeParam2)
		}
		o.clipBoost = want.clipBoost
		o.inverted = want.inverted
		*have = *want
	}
	e.sync.enabled = s.hardSync

	for i, env := range e.envelopes {
		p := &s.envelopes[i]
		env.setAttack(p.attack)
		env.setSustain(p.sustain)
		env.setDecay(p.decay)
		env.setRelease(p.release)
		env.setInverted(p.inverted)
	}
	e.filterMod.envelopeAmount = s.envelopes[filterEnvelope].amount
	e.filterMod.keyTracking = s.keyTracking

	for i, l := range e.lfos {
		p := &s.lfos[i]
		l.setFrequency(p.frequency)
		l.setCenter(p.center)
		l.setRange(p.rangePP)
		l.setShape(p.shape)
		l.setPhase(p.phase)
		if p.resets != e.lfoResets[i] {
			e.lfoResets[i] = p.resets
			l.reset()
		}
	}

	e.filter.setResonance(s.resonance)
	e.filter.setPoles(s.poles)

	e.mixer.inputs = s.inputs
	e.mixer.constantLevel = s.constantLevel
	e.mixer.outputLevel = s.outputLevel
	e.mixer.outputPan = s.outputBalance
	e.mixer.outputMute = s.outputMute
}

// process renders one buffer of interleaved samples. Only the configured
// left and right slots are written.
func (e *engine) process(out []float32, channels int) {
	defer func() {
		if r := recover(); r != nil {
			e.stats.RecoveredPanics.Add(1)
			e.silence(out, channels)
		}
	}()
	e.stats.Buffers.Add(1)
	if channels <= 0 {
		e.stats.DroppedFrames.Add(uint64(len(out)))
		return
	}
	e.events.drain(e.handleEvent)
	e.loadParams()

	frames := len(out) / channels
	if rest := len(out) % channels; rest != 0 {
		e.stats.DroppedFrames.Add(1)
	}
	left, right := e.snap.left, e.snap.right
	for f := 0; f < frames; f++ {
		l, r := e.nextFrame()
		frame := out[f*channels : (f+1)*channels]
		if left >= 0 && left < channels {
			frame[left] = float32(l)
		}
		if right >= 0 && right < channels {
			frame[right] = float32(r)
		}
		if e.tap != nil {
			e.tap.write(l)
		}
	}
}

func (e *engine) silence(out []float32, channels int) {
	if channels <= 0 {
		return
	}
	left, right := e.snap.left, e.snap.right
	for f := 0; f+channels <= len(out); f += channels {
		if left >= 0 && left < channels {
			out[f+left] = 0
		}
		if right >= 0 && right < channels {
			out[f+right] = 0
		}
	}
}

func (e *engine) nextFrame() (float64, float64) {
	s := &e.snap
	e.glide.step()
	bendRatio := 1.0
	if base := noteToFreq(e.note); base > 0 {
		bendRatio = e.glide.value / base
	}

	cutoffLFO := e.lfos[filterLFO].generate(noModulation)
	vibrato := e.lfos[modWheelLFO].generate(noModulation)
	mod := noModulation
	if s.vibratoDepth > 0 {
		mod = modulatedBy(math.Exp2(vibrato * s.vibratoDepth / 12))
	}

	ampLevel := e.envelopes[ampEnvelope].generate()
	filterLevel := e.envelopes[filterEnvelope].generate()
	velocity := scaleVelocity(e.velocity, s.velocityCurve)

	var samples [numOscillators]float64
	for i, o := range e.oscs {
		p := &s.osc[i]
		freq := tune(e.note, p.coarseTune, p.fineTune, s.pitchBend) * bendRatio
		var sync *hardSync
		if i != subOscillator {
			sync = &e.sync
		}
		samples[i] = vca(o.generate(freq, mod, sync), ampLevel, velocity)
	}
	e.sync.triggered = false

	left, right := e.mixer.quadMix(samples)
	e.filter.setCutoff(e.filterMod.cutoff(s.cutoff, filterLevel, cutoffLFO, e.glide.value))
	left, right = e.filter.process(left, right)
	left, right = e.mixer.outputMix(left, right)
	left, right = e.effects.process(left, right, &s.effects)

	if !isFinite(left) || !isFinite(right) {
		e.stats.NonFinite.Add(1)
		return e.lastLeft, e.lastRight
	}
	e.lastLeft, e.lastRight = left, right
	return left, right
}
