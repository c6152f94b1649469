package audio

import (
	"math"
	"testing"
)

func TestConvertersStayInRange(t *testing.T) {
	type converter struct {
		name     string
		f        func(float64) float64
		min, max float64
	}
	converters := []converter{
		{"cutoff", normalToCutoff, 0, maxCutoff},
		{"level", normalToLevel, 0, maxLevel},
		{"lfo frequency", normalToLFOFrequency, 0, maxLFOFrequency},
		{"portamento", func(x float64) float64 { return float64(normalToPortamentoTime(x)) }, 0, maxPortamentoTime},
		{"attack", attackCurve.milliseconds, 0, maxEnvelopeTimeMs},
		{"decay", decayCurve.milliseconds, 0, maxEnvelopeTimeMs},
		{"release", releaseCurve.milliseconds, 0, maxEnvelopeTimeMs},
		{"coarse", func(x float64) float64 { return float64(normalToCoarseTune(x)) }, -12, 12},
		{"fine", func(x float64) float64 { return float64(normalToFineTune(x)) }, -99, 99},
		{"clip boost", func(x float64) float64 { return float64(normalToClipBoost(x)) }, 0, maxClipBoost},
		{"bend range", func(x float64) float64 { return float64(normalToPitchBendRange(x)) }, 2, 12},
		{"balance", normalToBalance, -1, 1},
		{"poles", func(x float64) float64 { return float64(normalToPoles(x)) }, 1, 4},
		{"shape", func(x float64) float64 { return float64(normalToWaveShape(x)) }, 0, float64(numWaveShapes - 1)},
	}
	for _, c := range converters {
		for i := 0; i <= 100; i++ {
			x := float64(i) / 100
			v := c.f(x)
			if v < c.min || v > c.max {
				t.Errorf("%s(%v) = %v, outside [%v, %v]", c.name, x, v, c.min, c.max)
			}
		}
		if v := c.f(1); v != c.max {
			t.Errorf("%s(1) = %v, expected %v", c.name, v, c.max)
		}
		if v := c.f(-3); v != c.f(0) {
			t.Errorf("%s(-3) = %v, expected %v", c.name, v, c.f(0))
		}
	}
}

func TestExponentialConvertersZero(t *testing.T) {
	expectEqual(t, normalToCutoff(0), 0.0)
	expectEqual(t, normalToLevel(0), 0.0)
	expectEqual(t, normalToLFOFrequency(0), 0.0)
	expectEqual(t, normalToPortamentoTime(0), 0)
	expectEqual(t, normalToCutoff(math.NaN()), 0.0)
}

func TestNormalToIntRange(t *testing.T) {
	expectEqual(t, normalToIntRange(0.5, 0, 10), 5)
	expectEqual(t, normalToIntRange(0.5, 10, 0), 5)
	expectEqual(t, normalToIntRange(0.24, 0, 10), 2)
	expectEqual(t, normalToIntRange(0.26, 0, 10), 3)
	expectEqual(t, normalToIntRange(-0.5, 0, 10), 0)
	expectEqual(t, normalToIntRange(1.5, 0, 10), 10)
	expectEqual(t, normalToIntRange(0.5, -50, 50), 0)
}

func TestNormalToRange(t *testing.T) {
	expectNearlyEqual(t, normalToRange(0.25, 0, 8), 2)
	expectNearlyEqual(t, normalToRange(0.25, 8, 0), 2)
	expectEqual(t, normalToRange(0, -1, 1), -1.0)
	expectEqual(t, normalToRange(1, -1, 1), 1.0)
}

func TestNormalToPoles(t *testing.T) {
	expectEqual(t, normalToPoles(0), 1)
	expectEqual(t, normalToPoles(0.25), 1)
	expectEqual(t, normalToPoles(0.26), 2)
	expectEqual(t, normalToPoles(0.5), 2)
	expectEqual(t, normalToPoles(0.75), 3)
	expectEqual(t, normalToPoles(1), 4)
}

func TestNormalToBool(t *testing.T) {
	expectEqual(t, normalToBool(0.49), false)
	expectEqual(t, normalToBool(0.5), true)
	expectEqual(t, normalToBool(normalizeMidiValue(64)), true)
	expectEqual(t, normalToBool(normalizeMidiValue(63)), false)
}

func TestEnvelopeCurve(t *testing.T) {
	expectEqual(t, attackCurve.milliseconds(0), 0.0)
	expectEqual(t, attackCurve.milliseconds(0.25), 175.0)
	expectEqual(t, attackCurve.milliseconds(0.5), 700.0)
	expectEqual(t, attackCurve.milliseconds(0.75), 3025.0)
	expectEqual(t, attackCurve.milliseconds(1), 10000.0)
}

func TestVelocityCurve(t *testing.T) {
	expectEqual(t, normalToVelocityCurve(0), 0.0)
	expectNearlyEqual(t, normalToVelocityCurve(0.25), 0.625)
	expectNearlyEqual(t, normalToVelocityCurve(0.5), 1.0)
	expectNearlyEqual(t, normalToVelocityCurve(0.75), 2.5)
	expectNearlyEqual(t, normalToVelocityCurve(1), maxVelocityCurve)

	expectNearlyEqual(t, scaleVelocity(0.5, 1), 0.5)
	expectNearlyEqual(t, scaleVelocity(0.5, 0), 1)
	expectNearlyEqual(t, scaleVelocity(0.5, 2), 0.25)
}

func TestPitchBendToCents(t *testing.T) {
	expectEqual(t, pitchBendToCents(0, 2), -200)
	expectEqual(t, pitchBendToCents(8192, 2), 0)
	expectEqual(t, pitchBendToCents(12288, 2), 100)
	expectEqual(t, pitchBendToCents(16383, 2), 200)
	expectEqual(t, pitchBendToCents(4096, 12), -600)
}

func TestNormalToResonance(t *testing.T) {
	expectEqual(t, normalToResonance(0), maxResonance)
	expectEqual(t, normalToResonance(1), minResonance)
}

func TestDbfs(t *testing.T) {
	expectNearlyEqual(t, sampleToDbfs(1), 0)
	expectNearlyEqualWithin(t, sampleToDbfs(0.5), -6.0206, 1e-3)
	expectTrue(t, math.IsInf(sampleToDbfs(0), -1), "0 should be -inf dBFS")
	expectEqual(t, dbfsToSample(-80), 0.0)
	expectNearlyEqual(t, dbfsToSample(0), 1)
}
