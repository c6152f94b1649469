package audio

import "sync/atomic"

// ----- Parameter Store ----- //

// Params is the parameter table shared between control goroutines and the
// audio thread. Every field is stored atomically on its own; a reader may see
// some fields of a multi-field update before others.
type Params struct {
	osc       [numOscillators]oscParams
	envelopes [numEnvelopes]envelopeParams
	lfos      [numLFOs]lfoParams
	filter    filterParams
	mixer     mixerParams
	keyboard  keyboardParams
	effects   [numEffects]effectParamsStore
	output    outputParams
}

const (
	numOscillators = numMixerInputs
	numEnvelopes   = 2
	numLFOs        = 2

	subOscillator     = 0
	syncMasterOsc     = 1
	syncSlaveOsc      = 2
	ampEnvelope       = 0
	filterEnvelope    = 1
	filterLFO         = 0
	modWheelLFO       = 1
	unsetShapeParam   = -1.0
	defaultSubCoarse  = -12
	defaultKeySync    = true
	defaultPortamento = 7 // buffers
	defaultBendRange  = maxPitchBendRange
	defaultVelCurve   = 1.0
)

type oscParams struct {
	shape       atomic.Int32
	shapeParam1 atomicFloat64
	shapeParam2 atomicFloat64
	coarseTune  atomic.Int32
	fineTune    atomic.Int32
	clipBoost   atomic.Int32
	inverted    atomic.Bool
}

type envelopeParams struct {
	attack   atomicFloat64 // ms
	decay    atomicFloat64 // ms
	sustain  atomicFloat64
	release  atomicFloat64 // ms
	amount   atomicFloat64
	inverted atomic.Bool
}

type lfoParams struct {
	frequency atomicFloat64
	center    atomicFloat64
	rangePP   atomicFloat64
	phase     atomicFloat64
	shape     atomic.Int32
	resets    atomic.Uint32
}

type filterParams struct {
	cutoff      atomicFloat64
	resonance   atomicFloat64
	keyTracking atomicFloat64
	poles       atomic.Int32
}

type mixerInputParams struct {
	level   atomicFloat64
	balance atomicFloat64
	mute    atomic.Bool
}

type mixerParams struct {
	inputs        [numMixerInputs]mixerInputParams
	constantLevel atomic.Bool
	outputLevel   atomicFloat64
	outputBalance atomicFloat64
	outputMute    atomic.Bool
}

type keyboardParams struct {
	keySync        atomic.Bool
	hardSync       atomic.Bool
	portamento     atomic.Bool
	portamentoTime atomic.Int32 // buffers
	pitchBendRange atomic.Int32 // semitones
	pitchBend      atomic.Int32 // cents
	velocityCurve  atomicFloat64
	modWheel       atomicFloat64
	aftertouch     atomicFloat64
	note           atomic.Int32
	velocity       atomic.Int32
}

type effectParamsStore struct {
	enabled atomic.Bool
	params  [numEffectParams]atomicFloat64
}

type outputParams struct {
	left  atomic.Int32
	right atomic.Int32
}

// NewParams returns a parameter table holding the power-on patch.
func NewParams() *Params {
	p := &Params{}
	for i := range p.osc {
		o := &p.osc[i]
		o.shape.Store(int32(defaultWaveShape))
		o.shapeParam1.Store(unsetShapeParam)
		o.shapeParam2.Store(unsetShapeParam)
		p.mixer.inputs[i].level.Store(defaultQuadLevel)
	}
	p.osc[subOscillator].coarseTune.Store(defaultSubCoarse)
	p.mixer.inputs[subOscillator].level.Store(defaultSubLevel)

	for i := range p.envelopes {
		e := &p.envelopes[i]
		e.attack.Store(defaultAttackMs)
		e.decay.Store(defaultDecayMs)
		e.sustain.Store(defaultSustainLevel)
		e.release.Store(defaultReleaseMs)
	}
	p.envelopes[filterEnvelope].amount.Store(defaultFilterEnvAmount)

	for i := range p.lfos {
		l := &p.lfos[i]
		l.frequency.Store(defaultLFOFrequency)
		l.center.Store(defaultLFOCenter)
		l.rangePP.Store(defaultLFORange)
		l.phase.Store(defaultLFOPhase)
		l.shape.Store(int32(defaultLFOShape))
	}
	// The filter LFO is silent until a range is dialled in.
	p.lfos[filterLFO].rangePP.Store(0)

	p.filter.cutoff.Store(defaultCutoff)
	p.filter.resonance.Store(defaultResonance)
	p.filter.poles.Store(defaultPoles)

	p.mixer.outputLevel.Store(defaultOutputLevel)
	p.mixer.outputBalance.Store(defaultOutputBalance)

	p.keyboard.keySync.Store(defaultKeySync)
	p.keyboard.portamentoTime.Store(defaultPortamento)
	p.keyboard.pitchBendRange.Store(defaultBendRange)
	p.keyboard.velocityCurve.Store(defaultVelCurve)

	for i := range p.effects {
		for j, v := range defaultEffectParams[i] {
			p.effects[i].params[j].Store(v)
		}
	}

	p.output.left.Store(0)
	p.output.right.Store(1)
	return p
}

// SetOutputChannels selects the interleaved slots written for left and
// right. A negative index disables that side.
func (p *Params) SetOutputChannels(left, right int) {
	p.output.left.Store(int32(left))
	p.output.right.Store(int32(right))
}

// ----- Snapshot ----- //

type oscSnapshot struct {
	shape       waveShape
	shapeParam1 float64
	shapeParam2 float64
	coarseTune  int
	fineTune    int
	clipBoost   int
	inverted    bool
}

type envelopeSnapshot struct {
	attack, decay, sustain, release, amount float64
	inverted                                bool
}

type lfoSnapshot struct {
	frequency, center, rangePP, phase float64
	shape                             waveShape
	resets                            uint32
}

type paramSnapshot struct {
	osc            [numOscillators]oscSnapshot
	envelopes      [numEnvelopes]envelopeSnapshot
	lfos           [numLFOs]lfoSnapshot
	cutoff         float64
	resonance      float64
	keyTracking    float64
	poles          int
	inputs         [numMixerInputs]mixerInput
	constantLevel  bool
	outputLevel    float64
	outputBalance  float64
	outputMute     bool
	keySync        bool
	hardSync       bool
	portamento     bool
	portamentoTime int
	pitchBend      int
	velocityCurve  float64
	vibratoDepth   float64
	effects        [numEffects]effectParams
	left, right    int
}

// load copies every field the audio thread needs for one buffer.
func (p *Params) load(s *paramSnapshot) {
	for i := range p.osc {
		o := &p.osc[i]
		s.osc[i] = oscSnapshot{
			shape:       waveShape(o.shape.Load()),
			shapeParam1: o.shapeParam1.Load(),
			shapeParam2: o.shapeParam2.Load(),
			coarseTune:  int(o.coarseTune.Load()),
			fineTune:    int(o.fineTune.Load()),
			clipBoost:   int(o.clipBoost.Load()),
			inverted:    o.inverted.Load(),
		}
		in := &p.mixer.inputs[i]
		s.inputs[i] = mixerInput{level: in.level.Load(), pan: in.balance.Load(), mute: in.mute.Load()}
	}
	for i := range p.envelopes {
		e := &p.envelopes[i]
		s.envelopes[i] = envelopeSnapshot{
			attack:   e.attack.Load(),
			decay:    e.decay.Load(),
			sustain:  e.sustain.Load(),
			release:  e.release.Load(),
			amount:   e.amount.Load(),
			inverted: e.inverted.Load(),
		}
	}
	for i := range p.lfos {
		l := &p.lfos[i]
		s.lfos[i] = lfoSnapshot{
			frequency: l.frequency.Load(),
			center:    l.center.Load(),
			rangePP:   l.rangePP.Load(),
			phase:     l.phase.Load(),
			shape:     waveShape(l.shape.Load()),
			resets:    l.resets.Load(),
		}
	}
	s.cutoff = p.filter.cutoff.Load()
	s.resonance = p.filter.resonance.Load()
	s.keyTracking = p.filter.keyTracking.Load()
	s.poles = int(p.filter.poles.Load())

	s.constantLevel = p.mixer.constantLevel.Load()
	s.outputLevel = p.mixer.outputLevel.Load()
	s.outputBalance = p.mixer.outputBalance.Load()
	s.outputMute = p.mixer.outputMute.Load()

	k := &p.keyboard
	s.keySync = k.keySync.Load()
	s.hardSync = k.hardSync.Load()
	s.portamento = k.portamento.Load()
	s.portamentoTime = int(k.portamentoTime.Load())
	s.pitchBend = int(k.pitchBend.Load())
	s.velocityCurve = k.velocityCurve.Load()
	s.vibratoDepth = clamp(k.modWheel.Load()+k.aftertouch.Load(), 0, 1)

	for i := range p.effects {
		e := &p.effects[i]
		s.effects[i].enabled = e.enabled.Load()
		for j := range e.params {
			s.effects[i].params[j] = e.params[j].Load()
		}
	}
	s.left = int(p.output.left.Load())
	s.right = int(p.output.right.Load())
}
