package audio

// ----- Mixer ----- //

const (
	numMixerInputs       = 4
	quadFixedDivisor     = 4.0
	defaultQuadLevel     = 1.0
	defaultSubLevel      = 0.0
	defaultOutputLevel   = 0.5
	defaultOutputBalance = 0.0
)

type mixerInput struct {
	level float64
	pan   float64
	mute  bool
}

type mixer struct {
	inputs        [numMixerInputs]mixerInput
	constantLevel bool
	outputLevel   float64
	outputPan     float64
	outputMute    bool
}

func newMixer() *mixer {
	m := &mixer{outputLevel: defaultOutputLevel, outputPan: defaultOutputBalance}
	for i := range m.inputs {
		m.inputs[i].level = defaultQuadLevel
	}
	m.inputs[0].level = defaultSubLevel
	return m
}

// applyPan attenuates one side by the pan amount. It is not equal power.
func applyPan(left, right, pan float64) (float64, float64) {
	switch {
	case pan > 0:
		left *= 1 - pan
	case pan < 0:
		right *= 1 + pan
	}
	return left, right
}

func (m *mixer) quadMix(samples [numMixerInputs]float64) (float64, float64) {
	var left, right, levelSum float64
	for i, in := range m.inputs {
		levelSum += in.level
		s := 0.0
		if !in.mute {
			s = in.level * samples[i]
		}
		l, r := applyPan(s, s, in.pan)
		left += l
		right += r
	}
	divisor := quadFixedDivisor
	if m.constantLevel {
		if levelSum == 0 {
			return 0, 0
		}
		divisor = levelSum
	}
	return left / divisor, right / divisor
}

func (m *mixer) outputMix(left, right float64) (float64, float64) {
	if m.outputMute {
		return 0, 0
	}
	return applyPan(left*m.outputLevel, right*m.outputLevel, m.outputPan)
}
