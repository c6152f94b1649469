package audio

import "math"

// ----- Filter ----- //

const (
	defaultCutoff    = maxCutoff
	minResonance     = 0.05
	maxResonance     = 1.0
	defaultResonance = maxResonance
	defaultPoles     = 2
	denormalGuard    = 1e-25
)

// svfSection is one Chamberlin state-variable stage for a single channel.
type svfSection struct {
	low, high, band float64
}

func (s *svfSection) process(in, coeff, resonance float64) float64 {
	s.low += coeff * s.band
	s.high = resonance*in - s.low - resonance*s.band
	s.band += coeff*s.high + denormalGuard
	s.band -= denormalGuard
	return s.low
}

func (s *svfSection) finite() bool {
	return isFinite(s.low) && isFinite(s.high) && isFinite(s.band)
}

type filterChannel struct {
	sections [2]svfSection
	last     float64
}

type filter struct {
	sampleRate float64
	cutoff     float64
	resonance  float64
	poles      int
	coeff      float64
	channels   [2]filterChannel
}

func newFilter(sampleRate int) *filter {
	f := &filter{
		sampleRate: float64(sampleRate),
		resonance:  defaultResonance,
		poles:      defaultPoles,
	}
	f.setCutoff(defaultCutoff)
	return f
}

func filterCoefficient(cutoff, sampleRate float64) float64 {
	return 2 * math.Sin(math.Pi*cutoff/(sampleRate*2))
}

func (f *filter) setCutoff(cutoff float64) {
	cutoff = clamp(cutoff, 0, maxCutoff)
	if cutoff == f.cutoff && f.coeff != 0 {
		return
	}
	f.cutoff = cutoff
	f.coeff = filterCoefficient(cutoff, f.sampleRate)
}

func (f *filter) setResonance(r float64) {
	f.resonance = clamp(r, minResonance, maxResonance)
}

func (f *filter) setPoles(poles int) {
	f.poles = clampInt(poles, 1, 4)
}

// process filters a stereo pair. With more than two poles a second section
// runs on the original input and its output is used.
func (f *filter) process(left, right float64) (float64, float64) {
	return f.processChannel(&f.channels[0], left), f.processChannel(&f.channels[1], right)
}

func (f *filter) processChannel(c *filterChannel, in float64) float64 {
	out := c.sections[0].process(in, f.coeff, f.resonance)
	if f.poles > 2 {
		out = c.sections[1].process(in, f.coeff, f.resonance)
	}
	if !isFinite(out) || !c.sections[0].finite() || !c.sections[1].finite() {
		c.sections[0] = svfSection{}
		c.sections[1] = svfSection{}
		return c.last
	}
	c.last = out
	return out
}
