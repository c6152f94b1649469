package audio

// ----- Effects ----- //

type effectKind int

const (
	effectWaveFolder effectKind = iota
	effectClipper
	effectGate
	effectRectifier
	effectBitShifter
	effectSaturation
	effectCompressor
	effectDelay
	effectAutoPan
	effectTremolo
	numEffects
)

var effectNames = [...]string{
	effectWaveFolder: "wave_folder",
	effectClipper:    "clipper",
	effectGate:       "gate",
	effectRectifier:  "rectifier",
	effectBitShifter: "bit_shifter",
	effectSaturation: "saturation",
	effectCompressor: "compressor",
	effectDelay:      "delay",
	effectAutoPan:    "auto_pan",
	effectTremolo:    "tremolo",
}

func (k effectKind) String() string {
	if k < 0 || k >= numEffects {
		return "unknown"
	}
	return effectNames[k]
}

const numEffectParams = 4

type effectParams struct {
	enabled bool
	params  [numEffectParams]float64
}

var defaultEffectParams = [numEffects][numEffectParams]float64{
	effectWaveFolder: {0, -1, 0, 0},
	effectClipper:    {1, 0, 0, 0},
	effectGate:       {0, 1, 0, 0},
	effectRectifier:  {0, 0, 0, 0},
	effectBitShifter: {0, 0, 0, 0},
	effectSaturation: {0, 0, 1, 0},
	effectCompressor: {1, 0, 0, 0},
	effectDelay:      {0.5, 0.5, 0.5, 0},
	effectAutoPan:    {0.1, 1, 0, 0},
	effectTremolo:    {0.1, 1, 0, 0},
}

type effect interface {
	process(left, right float64, p *effectParams) (float64, float64)
}

type statelessEffect func(left, right float64, p *effectParams) (float64, float64)

func (f statelessEffect) process(left, right float64, p *effectParams) (float64, float64) {
	return f(left, right, p)
}

// effectsChain runs every slot in a fixed order. Disabled slots pass the
// signal through, except that stateful effects still observe the change.
type effectsChain struct {
	effects [numEffects]effect
}

func newEffectsChain(sampleRate int) *effectsChain {
	return &effectsChain{effects: [numEffects]effect{
		effectWaveFolder: statelessEffect(waveFold),
		effectClipper:    statelessEffect(clip),
		effectGate:       statelessEffect(gate),
		effectRectifier:  statelessEffect(rectify),
		effectBitShifter: statelessEffect(bitShift),
		effectSaturation: statelessEffect(saturate),
		effectCompressor: statelessEffect(compress),
		effectDelay:      newDelay(),
		effectAutoPan:    newAutoPan(sampleRate),
		effectTremolo:    newTremolo(sampleRate),
	}}
}

func (c *effectsChain) process(left, right float64, params *[numEffects]effectParams) (float64, float64) {
	for i, e := range c.effects {
		p := &params[i]
		if _, ok := e.(statelessEffect); ok && !p.enabled {
			continue
		}
		left, right = e.process(left, right, p)
	}
	return left, right
}
