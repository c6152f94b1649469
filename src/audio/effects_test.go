package audio

import (
	"math"
	"testing"
)

func params(enabled bool, p ...float64) *effectParams {
	e := &effectParams{enabled: enabled}
	copy(e.params[:], p)
	return e
}

func expectPair(t *testing.T, l, r, expectedL, expectedR float64) {
	t.Helper()
	if math.Abs(l-expectedL) > 0.0001 || math.Abs(r-expectedR) > 0.0001 {
		t.Errorf("expected (%v, %v), but got: (%v, %v)", expectedL, expectedR, l, r)
	}
}

func TestWaveFolder(t *testing.T) {
	l, r := waveFold(0.8, -0.8, params(true, 0.5, 0.5))
	expectPair(t, l, r, 0.2, -0.2)

	l, r = waveFold(0.8, -0.9, params(true, 0.7, 0.3))
	expectPair(t, l, r, -0.2, -0.5)

	l, r = waveFold(0.8, -0.8, params(true, 0.5, -1))
	expectPair(t, l, r, 0.2, -0.2)

	l, r = waveFold(0.8, -0.8, params(true, -0.1, 0.5))
	expectPair(t, l, r, 0.8, -0.8)
}

func TestWaveFolderFoldsRepeatedly(t *testing.T) {
	l, _ := waveFold(1.0, 0, params(true, 0.8, 0.8))
	expectNearlyEqual(t, l, 0.2)
	l, _ = waveFold(0.7, 0, params(true, 0.8, 0.8))
	expectNearlyEqual(t, l, -0.1)
}

func TestClipper(t *testing.T) {
	l, r := clip(0.6, -0.6, params(true, 0.4))
	expectPair(t, l, r, 0.4, -0.4)

	l, r = clip(0.6, 0.2, params(true, 0.4, 0, 0, 1))
	expectPair(t, l, r, 0, 0.2)

	l, r = clip(0.3, -0.3, params(true, 1, 1, 1))
	expectPair(t, l, r, 1, -1)
}

func TestGate(t *testing.T) {
	l, r := gate(0.1, -0.5, params(true, 0.2, 1))
	expectPair(t, l, r, 0, -0.5)

	l, r = gate(0.1, -0.5, params(true, 0, 1))
	expectPair(t, l, r, 0.1, -0.5)
}

func TestRectifier(t *testing.T) {
	l, r := rectify(0.5, -0.3, params(true, 1))
	expectPair(t, l, r, 0.5, 0.3)
	l, r = rectify(0.5, -0.3, params(true, 0))
	expectPair(t, l, r, 0.5, 0)
}

func TestBitShifter(t *testing.T) {
	// 1 - 0.8 maps to 4 bits, 8 levels per polarity.
	l, r := bitShift(0.5, -0.3, params(true, 0.8))
	expectPair(t, l, r, 0.5, -0.375)
}

func TestSaturationPassesThroughAtZero(t *testing.T) {
	for mode := 0.0; mode <= 1; mode += 0.2 {
		l, r := saturate(0.5, -0.5, params(true, mode, 0, 1))
		expectPair(t, l, r, 0.5, -0.5)
	}
}

func TestSaturationIsOdd(t *testing.T) {
	for mode := saturationAnalog; mode < numSaturationModes; mode++ {
		a := saturateSample(0.4, mode, 0.5)
		b := saturateSample(-0.4, mode, 0.5)
		expectNearlyEqual(t, a, -b)
		if math.IsNaN(a) {
			t.Errorf("mode %d produced NaN", mode)
		}
	}
}

func TestSaturationAmountCapped(t *testing.T) {
	l, _ := saturate(0.5, 0, params(true, 0.4, 5, 1))
	m, _ := saturate(0.5, 0, params(true, 0.4, maxSaturation, 1))
	expectEqual(t, l, m)
	if math.IsInf(l, 0) {
		t.Errorf("asymptotic curve should stay finite")
	}
}

func TestCompressor(t *testing.T) {
	l, r := compress(0.3, -0.3, params(true, 0.5, 0, 0))
	expectPair(t, l, r, 0.3, -0.3)

	// ratio 1 + round(0.5*19) = 11
	l, r = compress(0.9, -0.9, params(true, 0.5, 0.5, 0))
	expectPair(t, l, r, 0.5+0.4/11, -(0.5 + 0.4/11))

	l, _ = compress(0.2, 0, params(true, 1, 0, 1))
	expectNearlyEqual(t, l, 0.8)
}

func TestDelayResetOnDisable(t *testing.T) {
	d := newDelay()
	on := params(true, 0.5, 0, 0.5)
	for i := 0; i < 1000; i++ {
		d.process(0.5, -0.5, on)
	}
	if d.cursor == 0 {
		t.Fatalf("expected cursor to advance")
	}
	l, r := d.process(0.7, -0.4, params(false, 0.5, 0, 0.5))
	expectPair(t, l, r, 0.7, -0.4)
	expectEqual(t, d.cursor, 0)
	expectEqual(t, d.currentDelay, float64(minDelaySamples))
	for i := range d.left {
		if d.left[i] != 0 || d.right[i] != 0 {
			t.Fatalf("buffer not cleared at %d", i)
		}
	}
}

func TestDelayEcho(t *testing.T) {
	d := newDelay()
	p := params(true, 1, 0, 1)
	l, _ := d.process(1, 1, p)
	expectEqual(t, l, 1.0)
	echoed := false
	for i := 1; i < 2*minDelaySamples; i++ {
		l, _ = d.process(0, 0, p)
		if l > 0.5 {
			echoed = true
			break
		}
	}
	if !echoed {
		t.Errorf("expected the impulse to come back")
	}
}

func TestInterpolateFallsBack(t *testing.T) {
	expectEqual(t, interpolate(0.5, math.Inf(1), 0.5), 0.5)
	expectEqual(t, interpolate(0.5, 1, 0.5), 0.75)
}

func TestTremolo(t *testing.T) {
	tr := newTremolo(48000)
	p := params(true, 0.1, 0, 0)
	l, r := tr.process(0.8, -0.8, p)
	expectPair(t, l, r, 0.8, -0.8)

	l, r = tr.process(0.8, -0.8, params(false))
	expectPair(t, l, r, 0.8, -0.8)
}

func TestEffectLFOResyncsOnlyOnChange(t *testing.T) {
	a := newAutoPan(48000)
	p := params(true, 0.1, 1, 0)
	a.process(1, 1, p)
	gen := a.lfo.osc.gen
	a.process(1, 1, p)
	if a.lfo.osc.gen != gen {
		t.Errorf("generator replaced without a shape change")
	}
	p.params[2] = 1
	a.process(1, 1, p)
	expectEqual(t, a.lfo.osc.shape(), waveNoise)
}

func TestAutoPanZeroWidthSilencesTheLFO(t *testing.T) {
	a := newAutoPan(48000)
	l, r := a.process(1, 1, params(true, 0.1, 0, 0))
	expectPair(t, l, r, 1, 0)
}

func TestEffectsChainOrder(t *testing.T) {
	c := newEffectsChain(48000)
	var p [numEffects]effectParams
	for i := range p {
		p[i].params = defaultEffectParams[i]
	}
	l, r := c.process(0.6, -0.6, &p)
	expectPair(t, l, r, 0.6, -0.6)

	p[effectClipper] = *params(true, 0.4)
	p[effectRectifier] = *params(true, 1)
	l, r = c.process(0.6, -0.6, &p)
	expectPair(t, l, r, 0.4, 0.4)
}
