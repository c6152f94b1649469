package audio

// ----- ADSR ----- //

type adsrStage int

const (
	stageOff adsrStage = iota
	stageAttack
	stageDecay
	stageSustain
	stageRelease
)

func (s adsrStage) String() string {
	switch s {
	case stageAttack:
		return "attack"
	case stageDecay:
		return "decay"
	case stageSustain:
		return "sustain"
	case stageRelease:
		return "release"
	}
	return "off"
}

const (
	minSampleRate          = 44100
	maxSampleRate          = 96000
	minStageMs             = 0.05
	maxStageMs             = 10000.0
	defaultSustainLevel    = 0.8
	defaultStageIncrement  = 0.0002
	defaultDecayMs         = 100.0
	defaultAttackMs        = 5.0
	defaultReleaseMs       = 200.0
	defaultFilterEnvAmount = 0.0
)

/*
  1 +     x
    |    / \
  s +   /   x------x
    |  /            \
  0 +-x--------------x---
    |a  |d  |s     |r |
*/

type adsr struct {
	msPerSample      float64
	stage            adsrStage
	level            float64
	sustain          float64
	decayMs          float64
	attackIncrement  float64
	decayIncrement   float64
	releaseIncrement float64
	inverted         bool
}

func newADSR(sampleRate int) *adsr {
	sampleRate = clampInt(sampleRate, minSampleRate, maxSampleRate)
	return &adsr{
		msPerSample:      1000 / float64(sampleRate),
		stage:            stageOff,
		sustain:          defaultSustainLevel,
		decayMs:          defaultDecayMs,
		attackIncrement:  defaultStageIncrement,
		decayIncrement:   defaultStageIncrement,
		releaseIncrement: defaultStageIncrement,
	}
}

func (a *adsr) increment(ms float64, distance float64) float64 {
	if ms <= a.msPerSample {
		return distance
	}
	ms = clamp(ms, minStageMs, maxStageMs)
	return distance / (ms / a.msPerSample)
}

func (a *adsr) setAttack(ms float64) {
	a.attackIncrement = a.increment(ms, 1)
}

func (a *adsr) setDecay(ms float64) {
	a.decayMs = ms
	a.decayIncrement = a.increment(ms, 1-a.sustain)
}

func (a *adsr) setSustain(level float64) {
	a.sustain = clamp(level, 0, 1)
	a.decayIncrement = a.increment(a.decayMs, 1-a.sustain)
}

func (a *adsr) setRelease(ms float64) {
	a.releaseIncrement = a.increment(ms, 1)
}

func (a *adsr) setInverted(inverted bool) {
	a.inverted = inverted
}

// gateOn restarts the attack from whatever level the envelope is at.
func (a *adsr) gateOn() {
	a.stage = stageAttack
}

func (a *adsr) gateOff() {
	switch a.stage {
	case stageAttack, stageDecay, stageSustain:
		a.stage = stageRelease
	}
}

func (a *adsr) reset() {
	a.stage = stageOff
	a.level = 0
}

func (a *adsr) active() bool {
	return a.stage != stageOff
}

func (a *adsr) generate() float64 {
	switch a.stage {
	case stageAttack:
		a.level += a.attackIncrement
		if a.level >= 1 {
			a.level = 1
			a.stage = stageDecay
		}
	case stageDecay:
		a.level -= a.decayIncrement
		if a.level <= a.sustain {
			a.level = a.sustain
			a.stage = stageSustain
		}
	case stageSustain:
		a.level = a.sustain
	case stageRelease:
		a.level -= a.releaseIncrement
		if a.level <= 0 {
			a.level = 0
			a.stage = stageOff
		}
	}
	if a.inverted {
		return 1 - a.level
	}
	return a.level
}
