package audio

import "math"

// ----- Filter Modulation ----- //

const (
	envelopeModOctaves = 7.0
	lfoModOctaves      = 2.0
	keyTrackingOctaves = 1.0
)

// filterModulation sums envelope, LFO and key tracking in octaves and
// applies the result to a base cutoff.
type filterModulation struct {
	envelopeAmount float64
	keyTracking    float64
}

func (m *filterModulation) octaves(envelope, lfo, noteFreq float64) float64 {
	o := envelope*m.envelopeAmount*envelopeModOctaves + lfo*lfoModOctaves
	if m.keyTracking != 0 && noteFreq > 0 {
		o += m.keyTracking * keyTrackingOctaves * math.Log2(noteFreq/noteToFreq(middleC))
	}
	return o
}

func (m *filterModulation) cutoff(base, envelope, lfo, noteFreq float64) float64 {
	o := m.octaves(envelope, lfo, noteFreq)
	if o == 0 {
		return clamp(base, 0, maxCutoff)
	}
	c := base * math.Exp2(o)
	if !isFinite(c) {
		return maxCutoff
	}
	return clamp(c, 0, maxCutoff)
}
