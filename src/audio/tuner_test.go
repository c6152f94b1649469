package audio

import "testing"

func TestNoteTable(t *testing.T) {
	expectEqual(t, len(noteTable), 128)
	expectEqual(t, noteToFreq(69), 440.0)
	expectEqual(t, noteToFreq(60), 261.626)
	expectEqual(t, noteToFreq(0), 8.176)
	expectEqual(t, noteToFreq(127), 12543.854)
	expectEqual(t, noteToFreq(-5), noteToFreq(0))
	expectEqual(t, noteToFreq(200), noteToFreq(127))
	expectEqual(t, noteName(69), "A4")
	expectEqual(t, noteName(60), "C4")
}

func TestTune(t *testing.T) {
	expectEqual(t, tune(69, 0, 0, 0), 440.0)
	expectEqual(t, tune(69, 12, 0, 0), noteToFreq(81))
	expectEqual(t, tune(69, -12, 0, 0), noteToFreq(57))
	expectNearlyEqual(t, tune(69, 0, 0, 1200), 880)
	expectNearlyEqual(t, tune(69, 0, 0, -1200), 220)
	expectNearlyEqualWithin(t, tune(69, 0, 99, 0), 440*1.05885, 1e-2)
}

func TestTuneClampsToTable(t *testing.T) {
	expectEqual(t, tune(127, 12, 0, 0), noteToFreq(127))
	expectEqual(t, tune(127, 0, 0, 1200), maxNoteFrequency)
	expectEqual(t, tune(0, 0, 0, -1200), minNoteFrequency)
	expectEqual(t, tune(0, -12, 0, 0), noteToFreq(0))
}

func TestTransitiveValue(t *testing.T) {
	var tv transitiveValue
	tv.init(100)
	tv.linear(4, 200)
	expectEqual(t, tv.gliding(), true)
	tv.step()
	expectNearlyEqual(t, tv.value, 125)
	tv.step()
	tv.step()
	expectEqual(t, tv.step(), true)
	expectEqual(t, tv.value, 200.0)
	expectEqual(t, tv.gliding(), false)

	tv.linear(0, 300)
	expectEqual(t, tv.value, 300.0)
}
