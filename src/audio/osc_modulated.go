package audio

// ----- AM ----- //

const (
	minAMRatio     = 0.5
	maxAMRatio     = 8.0
	defaultAMRatio = 4.0
	defaultAMDepth = 1.0
)

type am struct {
	carrier   *sine
	modulator *sine
	ratio     float64
	depth     float64
}

func newAM(sampleRate int) *am {
	return &am{
		carrier:   newSine(sampleRate),
		modulator: newSine(sampleRate),
		ratio:     defaultAMRatio,
		depth:     defaultAMDepth,
	}
}

func (a *am) nextSample(freq float64, mod modulation) float64 {
	m := a.modulator.nextSample(freq*a.ratio, noModulation)
	return a.carrier.nextSample(freq, mod) * ((1 - a.depth) + a.depth*m)
}

func (a *am) setShapeParameter1(p float64) { a.ratio = normalToRange(p, minAMRatio, maxAMRatio) }
func (a *am) setShapeParameter2(p float64) { a.depth = normalToRange(p, 0, 1) }

func (a *am) setPhase(p float64) {
	a.carrier.setPhase(p)
	a.modulator.setPhase(p)
}

func (a *am) reset() {
	a.carrier.reset()
	a.modulator.reset()
}

func (a *am) shape() waveShape { return waveAM }

// ----- FM ----- //

const (
	maxFMIndex     = 10.0
	defaultFMIndex = 1.0
	defaultFMRatio = 1.0
	maxFMMultiple  = 10
)

var fmMusicalRatios = [...]float64{1.0 / 4, 1.0 / 3, 1.0 / 2, 2.0 / 3, 3.0 / 4, 1, 4.0 / 3, 3.0 / 2}

type fm struct {
	carrier   *sine
	modulator *sine
	index     float64
	ratio     float64
}

func newFM(sampleRate int) *fm {
	return &fm{
		carrier:   newSine(sampleRate),
		modulator: newSine(sampleRate),
		index:     defaultFMIndex,
		ratio:     defaultFMRatio,
	}
}

func (f *fm) nextSample(freq float64, mod modulation) float64 {
	m := f.modulator.nextSample(freq*f.ratio, mod)
	return f.carrier.nextSample(freq+m*f.index*freq*f.ratio, noModulation)
}

func (f *fm) setShapeParameter1(p float64) { f.index = normalToRange(p, 0, maxFMIndex) }
func (f *fm) setShapeParameter2(p float64) { f.ratio = fmRatio(p) }

// fmRatio picks a musical ratio below 0.5 and an integer multiple above.
func fmRatio(p float64) float64 {
	p = sanitize(p)
	if p < 0.5 {
		i := int(p / 0.5 * float64(len(fmMusicalRatios)))
		return fmMusicalRatios[clampInt(i, 0, len(fmMusicalRatios)-1)]
	}
	return float64(normalToIntRange((p-0.5)/0.5, 1, maxFMMultiple))
}

func (f *fm) setPhase(p float64) {
	f.carrier.setPhase(p)
	f.modulator.setPhase(p)
}

func (f *fm) reset() {
	f.carrier.reset()
	f.modulator.reset()
}

func (f *fm) shape() waveShape { return waveFM }
