package audio

import "math"

// ----- Wave Shape ----- //

type waveShape int

const (
	waveSine waveShape = iota
	waveTriangle
	waveSquare
	waveSaw
	waveRamp
	wavePulse
	waveSupersaw
	waveAM
	waveFM
	waveNoise
	numWaveShapes
)

var waveShapeNames = [...]string{
	waveSine:     "Sine",
	waveTriangle: "Triangle",
	waveSquare:   "Square",
	waveSaw:      "Saw",
	waveRamp:     "Ramp",
	wavePulse:    "Pulse",
	waveSupersaw: "Supersaw",
	waveAM:       "AM",
	waveFM:       "FM",
	waveNoise:    "Noise",
}

func (w waveShape) String() string {
	if w < 0 || w >= numWaveShapes {
		return "Unknown"
	}
	return waveShapeNames[w]
}

const tau = 2 * math.Pi

// modulation is an optional per-sample modulation input. Oscillators treat
// it as a frequency ratio, except where a shape documents otherwise.
type modulation struct {
	value float64
	ok    bool
}

var noModulation = modulation{}

func modulatedBy(v float64) modulation {
	return modulation{value: v, ok: true}
}

func (m modulation) ratio() float64 {
	if m.ok {
		return m.value
	}
	return 1
}

// ----- Wave Generator ----- //

type waveGenerator interface {
	nextSample(freq float64, mod modulation) float64
	setShapeParameter1(p float64)
	setShapeParameter2(p float64)
	// setPhase takes a normalized phase in [0,1].
	setPhase(p float64)
	reset()
	shape() waveShape
}

func newWaveGenerator(shape waveShape, sampleRate int) waveGenerator {
	switch shape {
	case waveTriangle:
		return newXWave(waveTriangle, sampleRate, triangleAt)
	case waveSquare:
		return newXWave(waveSquare, sampleRate, squareAt)
	case waveSaw:
		return newXWave(waveSaw, sampleRate, sawAt)
	case waveRamp:
		return newXWave(waveRamp, sampleRate, rampAt)
	case wavePulse:
		return newPulse(sampleRate)
	case waveSupersaw:
		return newSupersaw(sampleRate)
	case waveAM:
		return newAM(sampleRate)
	case waveFM:
		return newFM(sampleRate)
	case waveNoise:
		return newNoise()
	}
	return newSine(sampleRate)
}

// ----- Hard Sync ----- //

type syncRole int

const (
	syncNone syncRole = iota
	syncMaster
	syncSlave
)

// hardSync is the trigger shared by a master oscillator and its slaves for
// the duration of one frame.
type hardSync struct {
	enabled   bool
	triggered bool
}

// ----- Oscillator ----- //

const defaultWaveShape = waveSaw

type oscillator struct {
	sampleRate int
	gen        waveGenerator
	role       syncRole
	cycle      float64
	clipBoost  int
	inverted   bool
	param1     float64
	param2     float64
	hasParam1  bool
	hasParam2  bool
}

func newOscillator(sampleRate int, role syncRole) *oscillator {
	return &oscillator{
		sampleRate: sampleRate,
		gen:        newWaveGenerator(defaultWaveShape, sampleRate),
		role:       role,
	}
}

func (o *oscillator) shape() waveShape {
	return o.gen.shape()
}

// setShape rebuilds the generator. State is not carried across shapes.
func (o *oscillator) setShape(shape waveShape) {
	if shape == o.gen.shape() {
		return
	}
	o.gen = newWaveGenerator(shape, o.sampleRate)
	o.cycle = 0
	if o.hasParam1 {
		o.gen.setShapeParameter1(o.param1)
	}
	if o.hasParam2 {
		o.gen.setShapeParameter2(o.param2)
	}
}

func (o *oscillator) setShapeParameter1(p float64) {
	o.param1, o.hasParam1 = p, true
	o.gen.setShapeParameter1(p)
}

func (o *oscillator) setShapeParameter2(p float64) {
	o.param2, o.hasParam2 = p, true
	o.gen.setShapeParameter2(p)
}

func (o *oscillator) setPhase(p float64) {
	o.gen.setPhase(p)
}

func (o *oscillator) reset() {
	o.gen.reset()
	o.cycle = 0
}

func (o *oscillator) generate(freq float64, mod modulation, sync *hardSync) float64 {
	if sync != nil && sync.enabled {
		switch o.role {
		case syncSlave:
			if sync.triggered {
				o.reset()
			}
		case syncMaster:
			o.cycle += freq * mod.ratio() / float64(o.sampleRate)
			if o.cycle >= 1 {
				o.cycle -= math.Floor(o.cycle)
				sync.triggered = true
			}
		}
	}
	s := o.gen.nextSample(freq, mod)
	if o.clipBoost > 0 {
		s = clamp(s*float64(1+o.clipBoost), -1, 1)
	}
	if o.inverted {
		s = -s
	}
	return s
}
