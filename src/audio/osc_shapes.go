package audio

import (
	"math"
	"math/rand"
)

// ----- Sine ----- //

type sine struct {
	sampleRate float64
	phase      float64
}

func newSine(sampleRate int) *sine {
	return &sine{sampleRate: float64(sampleRate)}
}

func (s *sine) nextSample(freq float64, mod modulation) float64 {
	s.phase += tau / s.sampleRate * freq * mod.ratio()
	if s.phase >= tau {
		s.phase = 0
	} else if s.phase < 0 {
		s.phase += tau
	}
	return math.Sin(s.phase)
}

func (s *sine) setShapeParameter1(float64) {}
func (s *sine) setShapeParameter2(float64) {}
func (s *sine) setPhase(p float64)         { s.phase = tau * clamp(p, 0, 1) }
func (s *sine) reset()                     { s.phase = 0 }
func (s *sine) shape() waveShape           { return waveSine }

// ----- X Coordinate Waves ----- //

// xWave evaluates a closed-form wave at an x coordinate counted in samples.
type xWave struct {
	kind       waveShape
	sampleRate float64
	x          float64
	phase      float64
	hasPhase   bool
	at         func(freq, x, sampleRate float64) float64
}

func newXWave(kind waveShape, sampleRate int, at func(freq, x, sampleRate float64) float64) *xWave {
	return &xWave{kind: kind, sampleRate: float64(sampleRate), at: at}
}

func (w *xWave) nextSample(freq float64, mod modulation) float64 {
	w.x = advanceX(w.x, &w.hasPhase, w.phase, freq, w.sampleRate)
	y := w.at(freq, w.x, w.sampleRate)
	w.x += mod.ratio()
	return y
}

// advanceX applies a pending phase and wraps x into one period.
func advanceX(x float64, hasPhase *bool, phase, freq, sampleRate float64) float64 {
	if freq <= 0 {
		return x
	}
	period := sampleRate / freq
	if *hasPhase {
		*hasPhase = false
		x = phase * period
	}
	if x >= period {
		x = math.Mod(x, period)
	}
	return x
}

func (w *xWave) setShapeParameter1(float64) {}
func (w *xWave) setShapeParameter2(float64) {}
func (w *xWave) setPhase(p float64)         { w.phase, w.hasPhase = clamp(p, 0, 1), true }
func (w *xWave) reset()                     { w.x = 0 }
func (w *xWave) shape() waveShape           { return w.kind }

func triangleAt(freq, x, sampleRate float64) float64 {
	return 2 / math.Pi * math.Asin(math.Sin(freq*tau*x/sampleRate))
}

func squareAt(freq, x, sampleRate float64) float64 {
	if math.Sin(freq*tau*x/sampleRate) >= 0 {
		return 1
	}
	return -1
}

func sawAt(freq, x, sampleRate float64) float64 {
	return -2 / math.Pi * math.Atan(1/math.Tan(freq*math.Pi*x/sampleRate))
}

func rampAt(freq, x, sampleRate float64) float64 {
	return 2 / math.Pi * math.Atan(1/math.Tan(freq*math.Pi*x/sampleRate))
}

// ----- Pulse ----- //

const (
	defaultPulseWidth     = 0.5
	modulationToDutyShift = 0.5
)

type pulse struct {
	sampleRate float64
	x          float64
	width      float64
	phase      float64
	hasPhase   bool
}

func newPulse(sampleRate int) *pulse {
	return &pulse{sampleRate: float64(sampleRate), width: defaultPulseWidth}
}

// nextSample reads a modulation as a duty offset rather than a ratio.
func (p *pulse) nextSample(freq float64, mod modulation) float64 {
	if freq == 0 {
		return 0
	}
	duty := p.width
	if mod.ok {
		duty = mod.value - modulationToDutyShift
	}
	p.x = advanceX(p.x, &p.hasPhase, p.phase, freq, p.sampleRate)
	y := -1.0
	if math.Sin(freq*tau*p.x/p.sampleRate) >= duty {
		y = 1
	}
	p.x++
	return y
}

func (p *pulse) setShapeParameter1(v float64) { p.width = clamp(v, 0, 1) }
func (p *pulse) setShapeParameter2(float64)   {}
func (p *pulse) setPhase(v float64)           { p.phase, p.hasPhase = clamp(v, 0, 1), true }
func (p *pulse) reset()                       { p.x = 0 }
func (p *pulse) shape() waveShape             { return wavePulse }

// ----- Noise ----- //

type noise struct {
	rnd *rand.Rand
}

func newNoise() *noise {
	return &noise{rnd: rand.New(rand.NewSource(rand.Int63()))}
}

func (n *noise) nextSample(freq float64, mod modulation) float64 {
	if freq == 0 {
		return 0
	}
	return (n.rnd.Float64()*2 - 1) * mod.ratio()
}

func (n *noise) setShapeParameter1(float64) {}
func (n *noise) setShapeParameter2(float64) {}
func (n *noise) setPhase(float64)           {}
func (n *noise) reset()                     {}
func (n *noise) shape() waveShape           { return waveNoise }
