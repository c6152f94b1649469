package audio

// ----- Voice ----- //

const maxHeldNotes = 128

// voice tracks held keys on the control side and turns them into gate
// events with last-note priority. It is not safe for concurrent use.
type voice struct {
	events      *eventBuffer
	params      *Params
	activeNotes []int
	velocity    int
	sustain     bool
	pending     bool // gate off deferred by the sustain pedal
}

func newVoice(events *eventBuffer, params *Params) *voice {
	return &voice{
		events:      events,
		params:      params,
		activeNotes: make([]int, 0, maxHeldNotes),
	}
}

func (v *voice) current() (int, bool) {
	if len(v.activeNotes) == 0 {
		return 0, false
	}
	return v.activeNotes[0], true
}

func (v *voice) noteOn(note, velocity int) {
	note = clampInt(note, minNoteNumber, maxNoteNumber)
	velocity = clampInt(velocity, 0, 127)
	v.remove(note)
	if len(v.activeNotes) == cap(v.activeNotes) {
		v.activeNotes = v.activeNotes[:len(v.activeNotes)-1]
	}
	v.activeNotes = v.activeNotes[:len(v.activeNotes)+1]
	copy(v.activeNotes[1:], v.activeNotes)
	v.activeNotes[0] = note
	v.velocity = velocity
	v.pending = false
	v.params.keyboard.note.Store(int32(note))
	v.params.keyboard.velocity.Store(int32(velocity))
	v.events.push(event{kind: eventNoteOn, note: note, velocity: velocity})
}

func (v *voice) noteOff(note int) {
	was, ok := v.current()
	if !ok {
		return
	}
	v.remove(note)
	next, ok := v.current()
	switch {
	case !ok:
		v.release()
	case next != was:
		v.params.keyboard.note.Store(int32(next))
		v.events.push(event{kind: eventRetune, note: next, velocity: v.velocity})
	}
}

func (v *voice) remove(note int) {
	removed := 0
	for i := 0; i < len(v.activeNotes); i++ {
		if v.activeNotes[i] == note {
			removed++
		} else {
			v.activeNotes[i-removed] = v.activeNotes[i]
		}
	}
	v.activeNotes = v.activeNotes[:len(v.activeNotes)-removed]
}

func (v *voice) release() {
	if v.sustain {
		v.pending = true
		return
	}
	v.events.push(event{kind: eventGateOff})
}

func (v *voice) setSustain(on bool) {
	v.sustain = on
	if !on && v.pending {
		v.pending = false
		if len(v.activeNotes) == 0 {
			v.events.push(event{kind: eventGateOff})
		}
	}
}

func (v *voice) allNotesOff() {
	v.activeNotes = v.activeNotes[:0]
	v.pending = false
	v.events.push(event{kind: eventGateOff})
}
