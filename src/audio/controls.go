package audio

import (
	"fmt"
	"strconv"
	"strings"
)

// ----- Control Key ----- //

// Module names one block of the synthesizer's controls.
type Module int

const (
	ModuleOsc Module = iota
	ModuleEnvelope
	ModuleLFO
	ModuleFilter
	ModuleMixer
	ModuleKeyboard
	ModuleEffect
	numModules
)

var moduleNames = [...]string{
	ModuleOsc:      "osc",
	ModuleEnvelope: "envelope",
	ModuleLFO:      "lfo",
	ModuleFilter:   "filter",
	ModuleMixer:    "mixer",
	ModuleKeyboard: "keyboard",
	ModuleEffect:   "effect",
}

// moduleSizes is the number of instances of each module. Zero means the
// module takes no index.
var moduleSizes = [...]int{
	ModuleOsc:      numOscillators,
	ModuleEnvelope: numEnvelopes,
	ModuleLFO:      numLFOs,
	ModuleEffect:   int(numEffects),
}

var moduleFields = [...][]string{
	ModuleOsc:      {"shape", "shape_parameter1", "shape_parameter2", "coarse_tune", "fine_tune", "clip_boost", "polarity", "level", "mute", "balance"},
	ModuleEnvelope: {"attack", "decay", "sustain", "release", "inverted", "amount"},
	ModuleLFO:      {"frequency", "center", "range", "shape", "phase", "reset"},
	ModuleFilter:   {"cutoff", "resonance", "poles", "key_tracking"},
	ModuleMixer:    {"output_level", "output_balance", "output_mute", "constant_level"},
	ModuleKeyboard: {"key_sync", "hard_sync", "portamento", "portamento_time", "pitch_bend_range", "velocity_curve", "mod_wheel", "aftertouch", "sustain", "all_notes_off"},
	ModuleEffect:   {"enabled", "p0", "p1", "p2", "p3"},
}

func (m Module) String() string {
	if m < 0 || m >= numModules {
		return "unknown"
	}
	return moduleNames[m]
}

func (m Module) indexed() bool {
	return moduleSizes[m] > 0
}

func moduleFromString(s string) (Module, bool) {
	for m, name := range moduleNames {
		if name == s {
			return Module(m), true
		}
	}
	return 0, false
}

// ControlKey addresses one control, e.g. osc.1.shape or filter.cutoff.
type ControlKey struct {
	Module Module
	Index  int
	Field  string
}

func (k ControlKey) String() string {
	if k.Module.indexed() {
		return fmt.Sprintf("%s.%d.%s", k.Module, k.Index, k.Field)
	}
	return fmt.Sprintf("%s.%s", k.Module, k.Field)
}

func (k ControlKey) validate() error {
	if k.Module < 0 || k.Module >= numModules {
		return fmt.Errorf("%w: module %d", ErrUnknownControl, k.Module)
	}
	if k.Module.indexed() && (k.Index < 0 || k.Index >= moduleSizes[k.Module]) {
		return fmt.Errorf("%w: %s index %d", ErrIndexOutOfRange, k.Module, k.Index)
	}
	for _, f := range moduleFields[k.Module] {
		if f == k.Field {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownControl, k)
}

// ParseControlKey parses the dotted form produced by ControlKey.String.
func ParseControlKey(s string) (ControlKey, error) {
	key, rest, err := controlKeyFromArgs(strings.Split(s, "."))
	if err != nil {
		return key, err
	}
	if len(rest) != 0 {
		return key, fmt.Errorf("%w: %q", ErrUnknownControl, s)
	}
	return key, nil
}

// controlKeyFromArgs reads "<module> [index] <field>" from the front of args
// and returns what follows. Effects may be indexed by name.
func controlKeyFromArgs(args []string) (ControlKey, []string, error) {
	var key ControlKey
	if len(args) == 0 {
		return key, nil, fmt.Errorf("%w: empty control", ErrUnknownControl)
	}
	m, ok := moduleFromString(args[0])
	if !ok {
		return key, nil, fmt.Errorf("%w: module %q", ErrUnknownControl, args[0])
	}
	key.Module = m
	args = args[1:]
	if m.indexed() {
		if len(args) == 0 {
			return key, nil, fmt.Errorf("%w: %s needs an index", ErrUnknownControl, m)
		}
		index, err := parseIndex(m, args[0])
		if err != nil {
			return key, nil, err
		}
		key.Index = index
		args = args[1:]
	}
	if len(args) == 0 {
		return key, nil, fmt.Errorf("%w: %s needs a field", ErrUnknownControl, m)
	}
	key.Field = args[0]
	if err := key.validate(); err != nil {
		return key, nil, err
	}
	return key, args[1:], nil
}

func parseIndex(m Module, s string) (int, error) {
	if m == ModuleEffect {
		for i, name := range effectNames {
			if name == s {
				return i, nil
			}
		}
	}
	index, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s index %q", ErrIndexOutOfRange, m, s)
	}
	return index, nil
}
