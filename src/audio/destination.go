package audio

// ----- Control Change Destination ----- //

type ccDestination struct {
	cc  uint8
	key ControlKey
}

func oscKey(i int, field string) ControlKey {
	return ControlKey{Module: ModuleOsc, Index: i, Field: field}
}

func envKey(i int, field string) ControlKey {
	return ControlKey{Module: ModuleEnvelope, Index: i, Field: field}
}

func lfoKey(i int, field string) ControlKey {
	return ControlKey{Module: ModuleLFO, Index: i, Field: field}
}

func keyboardKey(field string) ControlKey {
	return ControlKey{Module: ModuleKeyboard, Field: field}
}

func filterKey(field string) ControlKey {
	return ControlKey{Module: ModuleFilter, Field: field}
}

func mixerKey(field string) ControlKey {
	return ControlKey{Module: ModuleMixer, Field: field}
}

// ccTable maps MIDI control change numbers to controls. Oscillator ranges
// run sub, 1, 2, 3.
var ccTable = buildCCTable()

func buildCCTable() [128]*ControlKey {
	var dests []ccDestination
	add := func(cc uint8, key ControlKey) {
		dests = append(dests, ccDestination{cc: cc, key: key})
	}
	add(1, keyboardKey("mod_wheel"))
	add(3, keyboardKey("velocity_curve"))
	add(5, keyboardKey("pitch_bend_range"))
	add(7, mixerKey("output_level"))
	add(8, mixerKey("output_mute"))
	add(10, mixerKey("output_balance"))
	for i := 0; i < numOscillators; i++ {
		add(uint8(12+2*i), oscKey(i, "shape_parameter1"))
		add(uint8(13+2*i), oscKey(i, "shape_parameter2"))
		add(uint8(40+i), oscKey(i, "shape"))
		add(uint8(44+i), oscKey(i, "coarse_tune"))
		add(uint8(48+i), oscKey(i, "fine_tune"))
		add(uint8(52+i), oscKey(i, "level"))
		add(uint8(56+i), oscKey(i, "mute"))
		add(uint8(60+i), oscKey(i, "balance"))
		add(uint8(66+i), oscKey(i, "clip_boost"))
	}
	add(20, keyboardKey("key_sync"))
	add(37, keyboardKey("portamento_time"))
	add(38, keyboardKey("hard_sync"))
	add(64, keyboardKey("sustain"))
	add(65, keyboardKey("portamento"))
	add(70, filterKey("poles"))
	add(71, filterKey("resonance"))
	add(72, envKey(ampEnvelope, "release"))
	add(73, envKey(ampEnvelope, "attack"))
	add(74, filterKey("cutoff"))
	add(75, envKey(ampEnvelope, "decay"))
	add(79, envKey(ampEnvelope, "sustain"))
	add(80, envKey(ampEnvelope, "inverted"))
	add(85, envKey(filterEnvelope, "attack"))
	add(86, envKey(filterEnvelope, "decay"))
	add(87, envKey(filterEnvelope, "sustain"))
	add(88, envKey(filterEnvelope, "release"))
	add(89, envKey(filterEnvelope, "inverted"))
	add(90, envKey(filterEnvelope, "amount"))
	add(91, filterKey("key_tracking"))
	add(102, lfoKey(modWheelLFO, "frequency"))
	add(103, lfoKey(modWheelLFO, "center"))
	add(104, lfoKey(modWheelLFO, "range"))
	add(105, lfoKey(modWheelLFO, "shape"))
	add(106, lfoKey(modWheelLFO, "phase"))
	add(107, lfoKey(modWheelLFO, "reset"))
	add(108, lfoKey(filterLFO, "frequency"))
	add(109, lfoKey(filterLFO, "range"))
	add(110, lfoKey(filterLFO, "shape"))
	add(111, lfoKey(filterLFO, "phase"))
	add(112, lfoKey(filterLFO, "reset"))
	add(123, keyboardKey("all_notes_off"))

	var table [128]*ControlKey
	for i := range dests {
		table[dests[i].cc] = &dests[i].key
	}
	return table
}

// controlForCC returns the control a CC number drives, if any.
func controlForCC(cc uint8) (ControlKey, bool) {
	if int(cc) >= len(ccTable) || ccTable[cc] == nil {
		return ControlKey{}, false
	}
	return *ccTable[cc], true
}
