package audio

import "math"

// ----- Delay ----- //

const (
	maxDelaySamples      = 1 << 17
	minDelaySamples      = 256
	delaySmoothingFactor = 0.0005
)

// delay is a stereo echo with a smoothed, fractional delay time.
type delay struct {
	left, right  []float64
	cursor       int
	enabled      bool
	currentDelay float64
}

func newDelay() *delay {
	return &delay{
		left:         make([]float64, maxDelaySamples),
		right:        make([]float64, maxDelaySamples),
		currentDelay: minDelaySamples,
	}
}

func (d *delay) reset() {
	clear(d.left)
	clear(d.right)
	d.cursor = 0
	d.currentDelay = minDelaySamples
}

func (d *delay) process(left, right float64, p *effectParams) (float64, float64) {
	if d.enabled && !p.enabled {
		d.reset()
	}
	d.enabled = p.enabled
	if !d.enabled {
		return left, right
	}
	amount := p.params[0]
	feedback := p.params[2]
	target := float64(normalToIntRange(p.params[1], minDelaySamples, maxDelaySamples))

	d.currentDelay += (target - d.currentDelay) * delaySmoothingFactor
	whole := math.Floor(d.currentDelay)
	frac := d.currentDelay - whole

	const mask = maxDelaySamples - 1
	read := (d.cursor + maxDelaySamples - int(whole)) & mask
	next := (read + maxDelaySamples - 1) & mask

	delayedLeft := interpolate(d.left[read], d.left[next], frac) * feedback
	delayedRight := interpolate(d.right[read], d.right[next], frac) * feedback

	d.left[d.cursor] = left + delayedLeft
	d.right[d.cursor] = right + delayedRight
	d.cursor = (d.cursor + 1) & mask

	return left + delayedLeft*amount, right + delayedRight*amount
}

func interpolate(a, b, frac float64) float64 {
	v := a*(1-frac) + b*frac
	if !isFinite(v) {
		return a
	}
	return v
}
