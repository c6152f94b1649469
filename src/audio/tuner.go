package audio

//go:generate go run ../gentables -o note_table.gen.go

type noteEntry struct {
	frequency float64
	name      string
}

const (
	minNoteNumber = 0
	maxNoteNumber = len(noteTable) - 1
	middleC       = 60
)

var (
	minNoteFrequency = noteTable[minNoteNumber].frequency
	maxNoteFrequency = noteTable[maxNoteNumber].frequency
)

func noteToFreq(note int) float64 {
	return noteTable[clampInt(note, minNoteNumber, maxNoteNumber)].frequency
}

func noteName(note int) string {
	return noteTable[clampInt(note, minNoteNumber, maxNoteNumber)].name
}

// tune resolves the frequency of a note shifted by an interval in semitones,
// bent by pitchBend cents and detuned by fine cents. The bent frequency stays
// inside the note table's range.
func tune(note int, interval int, fine int, pitchBend int) float64 {
	freq := noteToFreq(clampInt(note+interval, minNoteNumber, maxNoteNumber))
	if pitchBend != 0 {
		freq = clamp(frequencyFromCents(freq, float64(pitchBend)), minNoteFrequency, maxNoteFrequency)
	}
	if fine != 0 {
		freq = frequencyFromCents(freq, float64(fine))
	}
	return freq
}
