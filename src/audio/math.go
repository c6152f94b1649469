package audio

import (
	"math"
	"sync/atomic"
)

// ----- Utility ----- //

const epsilon = 1e-6

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= epsilon
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func signOf(v float64) float64 {
	if math.Signbit(v) {
		return -1
	}
	return 1
}

const minDBFS = -70.0

func dbfsToSample(db float64) float64 {
	if !isFinite(db) || db <= minDBFS {
		return 0
	}
	return math.Pow(10, db/20)
}

func sampleToDbfs(sample float64) float64 {
	a := math.Abs(sample)
	if !isFinite(a) || a == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(a)
}

// frequencyFromCents moves a frequency by the given number of cents.
func frequencyFromCents(freq float64, cents float64) float64 {
	if !isFinite(freq) || !isFinite(cents) {
		return 0
	}
	return math.Abs(freq) * math.Pow(2, cents/1200)
}

// normalizeMidiValue maps a 7-bit MIDI value to [0,1]. 64 lands exactly on 0.5.
func normalizeMidiValue(v uint8) float64 {
	if v == 64 {
		return 0.5
	}
	return clamp(float64(v)/127, 0, 1)
}

// ----- Atomic Float ----- //

type atomicFloat64 struct {
	bits atomic.Uint64
}

func newAtomicFloat64(v float64) *atomicFloat64 {
	a := &atomicFloat64{}
	a.Store(v)
	return a
}

func (a *atomicFloat64) Load() float64 {
	return math.Float64frombits(a.bits.Load())
}

func (a *atomicFloat64) Store(v float64) {
	a.bits.Store(math.Float64bits(v))
}
