package audio

import (
	"math"
	"testing"
)

func TestFilterCoefficient(t *testing.T) {
	expectNearlyEqualWithin(t, filterCoefficient(20000, 48000), 2*math.Sin(math.Pi*20000/96000), 1e-12)
	expectNearlyEqualWithin(t, filterCoefficient(20000, 48000), 1.2175229, 1e-6)
	expectEqual(t, filterCoefficient(0, 48000), 0.0)
}

func TestFilterPassesDC(t *testing.T) {
	f := newFilter(48000)
	f.setCutoff(1000)
	var l, r float64
	for i := 0; i < 48000; i++ {
		l, r = f.process(0.5, -0.5)
	}
	expectNearlyEqual(t, l, 0.5)
	expectNearlyEqual(t, r, -0.5)
}

func TestFilterAttenuatesHighFrequency(t *testing.T) {
	f := newFilter(48000)
	f.setCutoff(200)
	s := newSine(48000)
	peak := 0.0
	for i := 0; i < 48000; i++ {
		l, _ := f.process(s.nextSample(10000, noModulation), 0)
		if i > 4800 {
			peak = math.Max(peak, math.Abs(l))
		}
	}
	if peak > 0.01 {
		t.Errorf("expected strong attenuation, got peak %v", peak)
	}
}

// The second section is fed the original input rather than the first
// section's output, so four poles sound the same as two.
func TestFilterFourPolesMatchesTwoPoles(t *testing.T) {
	two := newFilter(48000)
	four := newFilter(48000)
	two.setCutoff(800)
	four.setCutoff(800)
	two.setPoles(2)
	four.setPoles(4)
	s := newSine(48000)
	for i := 0; i < 1000; i++ {
		in := s.nextSample(440, noModulation)
		a, _ := two.process(in, in)
		b, _ := four.process(in, in)
		expectEqual(t, b, a)
	}
}

func TestFilterRecoversFromNonFinite(t *testing.T) {
	f := newFilter(48000)
	f.setCutoff(1000)
	good, _ := f.process(0.3, 0.3)
	out, _ := f.process(math.NaN(), 0.3)
	expectEqual(t, out, good)
	next, _ := f.process(0.3, 0.3)
	if !isFinite(next) {
		t.Errorf("expected a finite sample after reset, got %v", next)
	}
}

func TestFilterModulation(t *testing.T) {
	m := &filterModulation{envelopeAmount: 0}
	expectEqual(t, m.cutoff(1000, 1, 0, 440), 1000.0)

	m.envelopeAmount = 1.0 / 7
	expectNearlyEqual(t, m.cutoff(1000, 1, 0, 440), 2000)
	expectNearlyEqual(t, m.cutoff(1000, 0, 0.5, 440), 2000)
	expectEqual(t, m.cutoff(15000, 1, 1, 440), maxCutoff)

	k := &filterModulation{keyTracking: 1}
	expectNearlyEqualWithin(t, k.cutoff(1000, 0, 0, noteToFreq(72)), 2000, 0.01)
	expectNearlyEqual(t, k.cutoff(1000, 0, 0, noteToFreq(middleC)), 1000)
}
