package audio

import (
	"math"
	"testing"
)

func TestBitreverse(t *testing.T) {
	expectEqual(t, bitReverse(0, 8), 0)
	expectEqual(t, bitReverse(1, 8), 4)
	expectEqual(t, bitReverse(2, 8), 2)
	expectEqual(t, bitReverse(3, 8), 6)
	expectEqual(t, bitReverse(4, 8), 1)
	expectEqual(t, bitReverse(5, 8), 5)
	expectEqual(t, bitReverse(6, 8), 3)
	expectEqual(t, bitReverse(7, 8), 7)
}

func TestFFT(t *testing.T) {
	f := newFFT(8)
	in := []float64{0, 0.25, 0.5, 0.75, 1, 0.75, 0.5, 0.25}
	x := make([]complex128, len(in))
	for i, v := range in {
		x[i] = complex(v, 0)
	}
	f.calc(x)
	expectNearlyEqual(t, real(x[0]), 4)
	expectNearlyEqual(t, real(x[1]), -(1 + math.Sqrt(2)/2))
	expectNearlyEqual(t, real(x[2]), 0)
	expectNearlyEqual(t, real(x[3]), -(1 - math.Sqrt(2)/2))
	expectNearlyEqual(t, real(x[4]), 0)
	expectNearlyEqual(t, real(x[5]), -(1 - math.Sqrt(2)/2))
	expectNearlyEqual(t, real(x[6]), 0)
	expectNearlyEqual(t, real(x[7]), -(1 + math.Sqrt(2)/2))
}

func TestHannWindow(t *testing.T) {
	w := hannWindow(8)
	expectEqual(t, w[0], float32(0))
	expectNearlyEqual(t, float64(w[4]), 1)
	expectNearlyEqual(t, float64(w[2]), 0.5)
}

func TestOutputTapSnapshotOrder(t *testing.T) {
	tap := newOutputTap(4)
	for i := 1; i <= 6; i++ {
		tap.write(float64(i))
	}
	got := make([]float32, 3)
	tap.snapshot(got)
	expectEqual(t, got[0], float32(4))
	expectEqual(t, got[1], float32(5))
	expectEqual(t, got[2], float32(6))
}

func TestAnalyzerLevels(t *testing.T) {
	tap := newOutputTap(64)
	a := newAnalyzer(tap, 64)
	for i := 0; i < 64; i++ {
		v := 0.5
		if i%2 == 1 {
			v = -0.5
		}
		tap.write(v)
	}
	l := a.levels()
	expectNearlyEqualWithin(t, l.Peak, -6.0206, 1e-3)
	expectNearlyEqualWithin(t, l.RMS, -6.0206, 1e-3)

	silent := newAnalyzer(newOutputTap(64), 64)
	expectTrue(t, math.IsInf(silent.levels().Peak, -1), "expected -inf peak for silence")
}

func TestAnalyzerSpectrumPeak(t *testing.T) {
	const size = 256
	const bin = 16
	tap := newOutputTap(size)
	a := newAnalyzer(tap, size)
	for i := 0; i < size; i++ {
		tap.write(math.Sin(2 * math.Pi * bin * float64(i) / size))
	}
	spectrum := a.spectrum()
	expectEqual(t, len(spectrum), size/2)
	best := 0
	for i, v := range spectrum {
		if v > spectrum[best] {
			best = i
		}
	}
	expectEqual(t, best, bin)
	expectNearlyEqualWithin(t, spectrum[bin], 0.5, 1e-3)
}
