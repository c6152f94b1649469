package audio

import "math"

// Converters map a normalized control value in [0,1] to engineering units.
// All of them clamp their input and output and treat NaN as 0.

const (
	cutoffCurve        = 9.903487
	maxCutoff          = 20000.0
	levelCurve         = 6.908
	maxLevel           = 1.0
	lfoFrequencyCurve  = 13.81551
	maxLFOFrequency    = 1000.0
	portamentoCurve    = 6.2146
	maxPortamentoTime  = 500
	minVelocityCurve   = 0.25
	maxVelocityCurve   = 4.0
	pitchBendZero      = 8192
	pitchBendMax       = 16383
	minPitchBendRange  = 2
	maxPitchBendRange  = 12
	minEnvelopeTimeMs  = 0.0
	maxEnvelopeTimeMs  = 10000.0
	maxClipBoost       = 30
	maxCoarseTune      = 12
	maxFineTune        = 99
	numWaveShapeValues = int(numWaveShapes)
)

type envelopeCurve struct {
	cx, cy   float64
	min, max float64
}

var (
	attackCurve  = envelopeCurve{cx: 0.5, cy: 700, min: minEnvelopeTimeMs, max: maxEnvelopeTimeMs}
	decayCurve   = envelopeCurve{cx: 0.5, cy: 1000, min: minEnvelopeTimeMs, max: maxEnvelopeTimeMs}
	releaseCurve = envelopeCurve{cx: 0.5, cy: 1000, min: minEnvelopeTimeMs, max: maxEnvelopeTimeMs}
)

func sanitize(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return clamp(x, 0, 1)
}

func normalToRange(x, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}
	x = sanitize(x)
	if x >= 1 {
		return max
	}
	return clamp(min+x*(max-min), min, max)
}

type integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32
}

func normalToIntRange[T integer](x float64, min, max T) T {
	if min > max {
		min, max = max, min
	}
	x = sanitize(x)
	v := T(math.Round(x * float64(max-min)))
	v += min
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func normalToBool(x float64) bool {
	return sanitize(x) >= 0.5
}

func normalToPoles(x float64) int {
	return clampInt(int(math.Ceil(4*sanitize(x))), 1, 4)
}

func normalToWaveShape(x float64) waveShape {
	return waveShape(normalToIntRange(x, 0, numWaveShapeValues-1))
}

func exponentialCurve(x, k, max float64) float64 {
	x = sanitize(x)
	if x == 0 {
		return 0
	}
	if x >= 1 {
		return max
	}
	return clamp(math.Exp(k*x), 0, max)
}

func normalToCutoff(x float64) float64 {
	return exponentialCurve(x, cutoffCurve, maxCutoff)
}

func normalToLevel(x float64) float64 {
	x = sanitize(x)
	if x == 0 {
		return 0
	}
	if x >= 1 {
		return maxLevel
	}
	return clamp(math.Exp(levelCurve*x)/1000, 0, maxLevel)
}

func normalToLFOFrequency(x float64) float64 {
	x = sanitize(x)
	if x == 0 {
		return 0
	}
	if x >= 1 {
		return maxLFOFrequency
	}
	return clamp(math.Exp(lfoFrequencyCurve*x)/100, 0, maxLFOFrequency)
}

// normalToPortamentoTime returns a glide time in output buffers.
func normalToPortamentoTime(x float64) int {
	x = sanitize(x)
	if x == 0 {
		return 0
	}
	if x >= 1 {
		return maxPortamentoTime
	}
	return clampInt(int(math.Round(math.Exp(portamentoCurve*x))), 0, maxPortamentoTime)
}

// milliseconds returns the envelope stage time for x in whole milliseconds.
func (c envelopeCurve) milliseconds(x float64) float64 {
	x = sanitize(x)
	if x == 0 {
		return 0
	}
	if x >= 1 {
		return c.max
	}
	var ms float64
	if x < c.cx {
		r := x / c.cx
		ms = math.Trunc(c.min + (c.cy-c.min)*r*r)
	} else {
		r := (x - c.cx) / c.cx
		ms = c.cy + math.Round((c.max-c.cy)*r*r)
	}
	return clamp(ms, c.min, c.max)
}

func normalToVelocityCurve(x float64) float64 {
	x = sanitize(x)
	if x == 0 {
		return 0
	}
	if x <= 0.5 {
		return minVelocityCurve + (x/0.5)*(1-minVelocityCurve)
	}
	return clamp(1+((x-0.5)/0.5)*(maxVelocityCurve-1), 1, maxVelocityCurve)
}

// scaleVelocity applies a velocity curve exponent to a normalized velocity.
func scaleVelocity(velocity, curve float64) float64 {
	velocity = sanitize(velocity)
	switch {
	case nearlyEqual(curve, 1):
		return velocity
	case nearlyEqual(curve, 0):
		return 1
	}
	return clamp(math.Pow(velocity, curve), 0, 1)
}

func normalToPitchBendRange(x float64) int {
	return normalToIntRange(x, minPitchBendRange, maxPitchBendRange)
}

// pitchBendToCents converts a 14-bit pitch bend value into cents for a
// bend range given in semitones.
func pitchBendToCents(value uint16, rangeSemitones int) int {
	max := rangeSemitones * 100
	switch {
	case value == pitchBendZero:
		return 0
	case value >= pitchBendMax:
		return max
	}
	cents := int((float64(value) - pitchBendZero) / pitchBendZero * float64(max))
	return clampInt(cents, -max, max)
}

func normalToCoarseTune(x float64) int {
	return normalToIntRange(x, -maxCoarseTune, maxCoarseTune)
}

func normalToFineTune(x float64) int {
	return normalToIntRange(x, -maxFineTune, maxFineTune)
}

func normalToClipBoost(x float64) int {
	return normalToIntRange(x, 0, maxClipBoost)
}

func normalToBalance(x float64) float64 {
	return normalToRange(x, -1, 1)
}

func normalToResonance(x float64) float64 {
	return normalToRange(1-sanitize(x), minResonance, maxResonance)
}
