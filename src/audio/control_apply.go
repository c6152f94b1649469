package audio

import (
	"fmt"
	"math"
)

// DisplayEvent carries the resolved value of a control for a user interface.
type DisplayEvent struct {
	Key   ControlKey
	Value float64
	Text  string
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func levelText(level float64) string {
	db := sampleToDbfs(level)
	if math.IsInf(db, -1) {
		return "-inf dB"
	}
	return fmt.Sprintf("%.1f dB", db)
}

// Apply converts a normalized control value and stores it. Effect
// parameters take raw values in [-1,1]. Keyboard sustain and all-notes-off
// are note handling and are rejected here.
func (p *Params) Apply(key ControlKey, x float64) (DisplayEvent, error) {
	if err := key.validate(); err != nil {
		return DisplayEvent{}, err
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return DisplayEvent{}, fmt.Errorf("%w: %v for %s", ErrInvalidValue, x, key)
	}
	var value float64
	var text string
	switch key.Module {
	case ModuleOsc:
		value, text = p.applyOsc(key.Index, key.Field, x)
	case ModuleEnvelope:
		value, text = p.applyEnvelope(key.Index, key.Field, x)
	case ModuleLFO:
		value, text = p.applyLFO(key.Index, key.Field, x)
	case ModuleFilter:
		value, text = p.applyFilter(key.Field, x)
	case ModuleMixer:
		value, text = p.applyMixer(key.Field, x)
	case ModuleKeyboard:
		var err error
		value, text, err = p.applyKeyboard(key.Field, x)
		if err != nil {
			return DisplayEvent{}, err
		}
	case ModuleEffect:
		value, text = p.applyEffect(key.Index, key.Field, x)
	}
	return DisplayEvent{Key: key, Value: value, Text: text}, nil
}

func (p *Params) applyOsc(i int, field string, x float64) (float64, string) {
	o := &p.osc[i]
	in := &p.mixer.inputs[i]
	switch field {
	case "shape":
		shape := normalToWaveShape(x)
		o.shape.Store(int32(shape))
		return float64(shape), shape.String()
	case "shape_parameter1":
		v := sanitize(x)
		o.shapeParam1.Store(v)
		return v, fmt.Sprintf("%.2f", v)
	case "shape_parameter2":
		v := sanitize(x)
		o.shapeParam2.Store(v)
		return v, fmt.Sprintf("%.2f", v)
	case "coarse_tune":
		v := normalToCoarseTune(x)
		o.coarseTune.Store(int32(v))
		return float64(v), fmt.Sprintf("%+d st", v)
	case "fine_tune":
		v := normalToFineTune(x)
		o.fineTune.Store(int32(v))
		return float64(v), fmt.Sprintf("%+d cents", v)
	case "clip_boost":
		v := normalToClipBoost(x)
		o.clipBoost.Store(int32(v))
		return float64(v), fmt.Sprintf("%d", v)
	case "polarity":
		v := normalToBool(x)
		o.inverted.Store(v)
		if v {
			return 1, "inverted"
		}
		return 0, "normal"
	case "level":
		v := normalToLevel(x)
		in.level.Store(v)
		return v, levelText(v)
	case "mute":
		v := normalToBool(x)
		in.mute.Store(v)
		return boolValue(v), onOff(v)
	}
	v := normalToBalance(x)
	in.balance.Store(v)
	return v, fmt.Sprintf("%.2f", v)
}

func (p *Params) applyEnvelope(i int, field string, x float64) (float64, string) {
	e := &p.envelopes[i]
	var target *atomicFloat64
	var v float64
	switch field {
	case "attack":
		target, v = &e.attack, attackCurve.milliseconds(x)
	case "decay":
		target, v = &e.decay, decayCurve.milliseconds(x)
	case "release":
		target, v = &e.release, releaseCurve.milliseconds(x)
	case "sustain":
		v = sanitize(x)
		e.sustain.Store(v)
		return v, fmt.Sprintf("%.2f", v)
	case "amount":
		v = sanitize(x)
		e.amount.Store(v)
		return v, fmt.Sprintf("%.2f", v)
	default:
		b := normalToBool(x)
		e.inverted.Store(b)
		return boolValue(b), onOff(b)
	}
	target.Store(v)
	return v, fmt.Sprintf("%.0f ms", v)
}

func (p *Params) applyLFO(i int, field string, x float64) (float64, string) {
	l := &p.lfos[i]
	switch field {
	case "frequency":
		v := normalToLFOFrequency(x)
		l.frequency.Store(v)
		return v, fmt.Sprintf("%.2f Hz", v)
	case "center":
		v := normalToRange(x, minLFOCenter, maxLFOCenter)
		l.center.Store(v)
		return v, fmt.Sprintf("%.2f", v)
	case "range":
		v := normalToRange(x, 0, maxLFORange)
		l.rangePP.Store(v)
		return v, fmt.Sprintf("%.2f", v)
	case "shape":
		shape := normalToWaveShape(x)
		l.shape.Store(int32(shape))
		return float64(shape), shape.String()
	case "phase":
		v := sanitize(x)
		l.phase.Store(v)
		return v, fmt.Sprintf("%.2f", v)
	}
	n := l.resets.Add(1)
	return float64(n), "reset"
}

func (p *Params) applyFilter(field string, x float64) (float64, string) {
	f := &p.filter
	switch field {
	case "cutoff":
		v := normalToCutoff(x)
		f.cutoff.Store(v)
		return v, fmt.Sprintf("%.0f Hz", v)
	case "resonance":
		v := normalToResonance(x)
		f.resonance.Store(v)
		return v, fmt.Sprintf("%.2f", v)
	case "poles":
		v := normalToPoles(x)
		f.poles.Store(int32(v))
		return float64(v), fmt.Sprintf("%d-pole", v)
	}
	v := sanitize(x)
	f.keyTracking.Store(v)
	return v, fmt.Sprintf("%.2f", v)
}

func (p *Params) applyMixer(field string, x float64) (float64, string) {
	m := &p.mixer
	switch field {
	case "output_level":
		v := normalToLevel(x)
		m.outputLevel.Store(v)
		return v, levelText(v)
	case "output_balance":
		v := normalToBalance(x)
		m.outputBalance.Store(v)
		return v, fmt.Sprintf("%.2f", v)
	case "output_mute":
		v := normalToBool(x)
		m.outputMute.Store(v)
		return boolValue(v), onOff(v)
	}
	v := normalToBool(x)
	m.constantLevel.Store(v)
	return boolValue(v), onOff(v)
}

func (p *Params) applyKeyboard(field string, x float64) (float64, string, error) {
	k := &p.keyboard
	switch field {
	case "key_sync", "hard_sync", "portamento":
		v := normalToBool(x)
		switch field {
		case "key_sync":
			k.keySync.Store(v)
		case "hard_sync":
			k.hardSync.Store(v)
		default:
			k.portamento.Store(v)
		}
		return boolValue(v), onOff(v), nil
	case "portamento_time":
		v := normalToPortamentoTime(x)
		k.portamentoTime.Store(int32(v))
		return float64(v), fmt.Sprintf("%d buffers", v), nil
	case "pitch_bend_range":
		v := normalToPitchBendRange(x)
		k.pitchBendRange.Store(int32(v))
		return float64(v), fmt.Sprintf("%d st", v), nil
	case "velocity_curve":
		v := normalToVelocityCurve(x)
		k.velocityCurve.Store(v)
		return v, fmt.Sprintf("%.2f", v), nil
	case "mod_wheel":
		v := sanitize(x)
		k.modWheel.Store(v)
		return v, fmt.Sprintf("%.2f", v), nil
	case "aftertouch":
		v := sanitize(x)
		k.aftertouch.Store(v)
		return v, fmt.Sprintf("%.2f", v), nil
	}
	return 0, "", fmt.Errorf("%w: keyboard.%s is a note event", ErrUnknownControl, field)
}

func (p *Params) applyEffect(i int, field string, x float64) (float64, string) {
	e := &p.effects[i]
	if field == "enabled" {
		v := normalToBool(x)
		e.enabled.Store(v)
		return boolValue(v), onOff(v)
	}
	j := int(field[1] - '0')
	v := clamp(x, -1, 1)
	e.params[j].Store(v)
	return v, fmt.Sprintf("%.2f", v)
}

// setPitchBend stores a 14-bit pitch bend using the current bend range.
func (p *Params) setPitchBend(value uint16) int {
	cents := pitchBendToCents(value, int(p.keyboard.pitchBendRange.Load()))
	p.keyboard.pitchBend.Store(int32(cents))
	return cents
}
