package audio

import "math"

const (
	effectLFOCenter = 0.5
	maxAutoPanWidth = 1.0
	maxTremoloDepth = 1.0
)

// effectLFO keeps an LFO in step with three effect parameters: rate, range
// and shape. Each is pushed to the LFO only when it changes.
type effectLFO struct {
	lfo       *lfo
	rate      float64
	width     float64
	shape     float64
	maxWidth  float64
	hasSynced bool
}

func newEffectLFO(sampleRate int, maxWidth float64) *effectLFO {
	l := newLFO(sampleRate)
	l.setCenter(effectLFOCenter)
	return &effectLFO{lfo: l, maxWidth: maxWidth}
}

func (e *effectLFO) sync(p *effectParams) {
	if !e.hasSynced || !nearlyEqual(e.rate, p.params[0]) {
		e.rate = p.params[0]
		e.lfo.setFrequency(normalToLFOFrequency(e.rate))
	}
	if !e.hasSynced || !nearlyEqual(e.width, p.params[1]) {
		e.width = p.params[1]
		e.lfo.setRange(normalToRange(e.width, 0, e.maxWidth))
	}
	if !e.hasSynced || !nearlyEqual(e.shape, p.params[2]) {
		e.shape = p.params[2]
		e.lfo.setShape(normalToWaveShape(e.shape))
	}
	e.hasSynced = true
}

// ----- Auto Pan ----- //

type autoPan struct {
	*effectLFO
}

func newAutoPan(sampleRate int) *autoPan {
	return &autoPan{newEffectLFO(sampleRate, maxAutoPanWidth)}
}

func (a *autoPan) process(left, right float64, p *effectParams) (float64, float64) {
	if !p.enabled {
		return left, right
	}
	a.sync(p)
	v := a.lfo.generate(noModulation) * math.Pi / 2
	return left * math.Cos(v), right * math.Sin(v)
}

// ----- Tremolo ----- //

type tremolo struct {
	*effectLFO
}

func newTremolo(sampleRate int) *tremolo {
	return &tremolo{newEffectLFO(sampleRate, maxTremoloDepth)}
}

func (t *tremolo) process(left, right float64, p *effectParams) (float64, float64) {
	if !p.enabled {
		return left, right
	}
	t.sync(p)
	g := 1 - t.lfo.generate(noModulation)
	return left * g, right * g
}
