package audio

import "math"

const (
	maxThreshold     = 1.0
	maxGateCut       = 1.0
	minBits          = 1
	maxBits          = 16
	maxSaturation    = 0.99
	minCompressRatio = 1
	maxCompressRatio = 20
	minMakeupGain    = 1.0
	maxMakeupGain    = 4.0
)

// ----- Wave Folder ----- //

func waveFold(left, right float64, p *effectParams) (float64, float64) {
	if p.params[0] < 0 {
		return left, right
	}
	pos := 1 - p.params[0]
	neg := pos
	if p.params[1] >= 0 {
		neg = 1 - p.params[1]
	}
	return foldSample(left, pos, neg), foldSample(right, pos, neg)
}

const maxFolds = 8

// foldSample reflects s back across whichever threshold it exceeds until it
// lies between them.
func foldSample(s, pos, neg float64) float64 {
	pos = math.Min(math.Abs(pos), 1)
	neg = math.Max(-math.Abs(neg), -1)
	for i := 0; i < maxFolds; i++ {
		switch {
		case s > pos:
			s = pos - (s - pos)
		case s < neg:
			s = neg + (neg - s)
		default:
			return s
		}
	}
	return clamp(s, neg, pos)
}

// ----- Clipper ----- //

func clip(left, right float64, p *effectParams) (float64, float64) {
	threshold := math.Min(p.params[0], maxThreshold)
	notch := p.params[3] >= 0.5
	pre := 1 + math.Abs(p.params[1])
	post := 1 + math.Abs(p.params[2])
	f := func(s float64) float64 {
		boosted := s * pre
		if math.Abs(boosted) > threshold {
			if notch {
				boosted = 0
			} else {
				boosted = threshold * signOf(s)
			}
		}
		return clamp(boosted*post, -1, 1)
	}
	return f(left), f(right)
}

// ----- Gate ----- //

func gate(left, right float64, p *effectParams) (float64, float64) {
	threshold := math.Min(p.params[0], maxGateCut)
	if threshold == 0 {
		return left, right
	}
	pre := math.Abs(p.params[1])
	post := 1 + math.Abs(p.params[2])
	f := func(s float64) float64 {
		boosted := s * pre
		if math.Abs(boosted) < threshold {
			return 0
		}
		return clamp(boosted*post, -1, 1)
	}
	return f(left), f(right)
}

// ----- Rectifier ----- //

func rectify(left, right float64, p *effectParams) (float64, float64) {
	if p.params[0] >= 0.5 {
		return math.Abs(left), math.Abs(right)
	}
	return math.Max(left, 0), math.Max(right, 0)
}

// ----- Bit Shifter ----- //

func bitShift(left, right float64, p *effectParams) (float64, float64) {
	bits := normalToIntRange(1-p.params[0], minBits, maxBits)
	levels := math.Exp2(float64(bits)) / 2
	f := func(s float64) float64 {
		return math.Ceil(math.Abs(s)*levels) / levels * signOf(s)
	}
	return f(left), f(right)
}

// ----- Saturation ----- //

type saturationMode int

const (
	saturationAnalog saturationMode = iota
	saturationTube
	saturationCubic
	saturationAsymptotic
	saturationSine
	saturationChebyshev
	numSaturationModes
)

func saturate(left, right float64, p *effectParams) (float64, float64) {
	mode := saturationMode(normalToIntRange(p.params[0], 0, int(numSaturationModes)-1))
	amount := math.Min(math.Max(p.params[1], 0), maxSaturation)
	if amount == 0 {
		return left, right
	}
	gainReduction := p.params[2]
	return saturateSample(left, mode, amount) * gainReduction, saturateSample(right, mode, amount) * gainReduction
}

func saturateSample(s float64, mode saturationMode, a float64) float64 {
	switch mode {
	case saturationTube:
		return signOf(s) * (1 - math.Exp(-math.Abs(s)*2*a)) * (1 + a*(3-1.5*a))
	case saturationCubic:
		x := s * 3 * a
		var y float64
		if math.Abs(x) < 1 {
			y = x - x*x*x/3
		} else {
			y = signOf(x) * 2 / 3
		}
		return y * (1 + a*(2-a))
	case saturationAsymptotic:
		k := 2 * a / (1 - a)
		return (1 + k) * s / (1 + k*math.Abs(s)) * (1 + 0.2*a)
	case saturationSine:
		return math.Sin(s*a*math.Pi/2) * (1 + a*(1.5-0.5*a))
	case saturationChebyshev:
		x := clamp(s, -1, 1)
		t3 := 4*x*x*x - 3*x
		return x*(1-a) + t3*a*(0.25+0.5*a)
	}
	return math.Atan(s*(1+9*a)) * 2 / math.Pi * (1 + math.Sqrt(1-a)*a*3)
}

// ----- Compressor ----- //

func compress(left, right float64, p *effectParams) (float64, float64) {
	threshold := math.Min(p.params[0], maxThreshold)
	ratio := float64(normalToIntRange(p.params[1], minCompressRatio, maxCompressRatio))
	gain := normalToRange(p.params[2], minMakeupGain, maxMakeupGain)
	f := func(s float64) float64 {
		a := math.Abs(s)
		if a <= threshold {
			return s * gain
		}
		return (threshold + (a-threshold)/ratio) * gain * signOf(s)
	}
	return f(left), f(right)
}
