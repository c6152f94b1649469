package audio

// ----- Transitive Value ----- //

// transitiveValue glides linearly from its current value to a target over a
// fixed number of frames. It drives portamento.
type transitiveValue struct {
	initialValue float64
	targetValue  float64
	value        float64
	duration     int // frames
	pos          int
}

func (tv *transitiveValue) init(value float64) {
	tv.initialValue = value
	tv.targetValue = value
	tv.value = value
	tv.duration = 0
	tv.pos = 0
}

func (tv *transitiveValue) linear(frames int, targetValue float64) {
	if frames <= 0 || tv.value == 0 {
		tv.init(targetValue)
		return
	}
	tv.initialValue = tv.value
	tv.targetValue = targetValue
	tv.duration = frames
	tv.pos = 0
}

func (tv *transitiveValue) gliding() bool {
	return tv.pos < tv.duration
}

// step advances one frame and reports whether the glide just ended.
func (tv *transitiveValue) step() bool {
	if !tv.gliding() {
		return false
	}
	tv.pos++
	if tv.pos >= tv.duration {
		tv.value = tv.targetValue
		tv.duration = 0
		tv.pos = 0
		return true
	}
	t := float64(tv.pos) / float64(tv.duration)
	tv.value = t*tv.targetValue + (1-t)*tv.initialValue
	return false
}
