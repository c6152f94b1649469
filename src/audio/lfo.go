package audio

// ----- LFO ----- //

const (
	minLFOCenter        = -1.0
	maxLFOCenter        = 1.0
	minLFORange         = 0.001
	maxLFORange         = 2.0
	defaultLFOCenter    = 0.0
	defaultLFORange     = 2.0
	defaultLFOPhase     = 0.0
	defaultLFOFrequency = 0.1
	defaultLFOShape     = waveSine
)

// lfo is an oscillator used as a modulation source around a center value.
type lfo struct {
	osc       *oscillator
	center    float64
	rangePP   float64
	frequency float64
	phase     float64
}

func newLFO(sampleRate int) *lfo {
	o := newOscillator(sampleRate, syncNone)
	o.setShape(defaultLFOShape)
	return &lfo{
		osc:       o,
		center:    defaultLFOCenter,
		rangePP:   defaultLFORange,
		frequency: defaultLFOFrequency,
		phase:     defaultLFOPhase,
	}
}

func (l *lfo) setCenter(center float64) {
	l.center = clamp(center, minLFOCenter, maxLFOCenter)
}

// setRange sets the peak-to-peak range. Zero is kept as exact silence.
func (l *lfo) setRange(r float64) {
	if r == 0 {
		l.rangePP = 0
		return
	}
	l.rangePP = clamp(r, minLFORange, maxLFORange)
}

func (l *lfo) setFrequency(freq float64) {
	l.frequency = clamp(freq, 0, maxLFOFrequency)
}

func (l *lfo) setPhase(phase float64) {
	phase = clamp(phase, 0, 1)
	if phase == l.phase {
		return
	}
	l.phase = phase
	l.osc.setPhase(phase)
}

func (l *lfo) setShape(shape waveShape) {
	if shape == l.osc.shape() {
		return
	}
	l.osc.setShape(shape)
	l.osc.setPhase(l.phase)
}

func (l *lfo) reset() {
	l.osc.reset()
	l.osc.setPhase(l.phase)
}

func (l *lfo) generate(mod modulation) float64 {
	if l.rangePP == 0 || l.frequency == 0 {
		return 0
	}
	return l.center + l.osc.generate(l.frequency, mod, nil)*l.rangePP/2
}
