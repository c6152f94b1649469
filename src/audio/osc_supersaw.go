package audio

import "math"

// ----- Supersaw ----- //

const supersawOutputLevel = 0.3

var supersawSpread = [...]float64{-12, -7, -4, 0, 4, 7, 12} // cents

type supersaw struct {
	sampleRate float64
	x          [len(supersawSpread)]float64
	ratios     [len(supersawSpread)]float64
	phase      float64
	hasPhase   bool
}

func newSupersaw(sampleRate int) *supersaw {
	s := &supersaw{sampleRate: float64(sampleRate)}
	for i, cents := range supersawSpread {
		s.ratios[i] = math.Pow(2, cents/1200)
	}
	return s
}

func (s *supersaw) nextSample(freq float64, mod modulation) float64 {
	sum := 0.0
	for i := range s.x {
		pending := s.hasPhase
		s.x[i] = advanceX(s.x[i], &pending, s.phase, freq*s.ratios[i], s.sampleRate)
		sum += sawAt(freq*s.ratios[i], s.x[i], s.sampleRate)
		s.x[i] += mod.ratio()
	}
	if freq > 0 {
		s.hasPhase = false
	}
	return sum * supersawOutputLevel
}

func (s *supersaw) setShapeParameter1(float64) {}
func (s *supersaw) setShapeParameter2(float64) {}

func (s *supersaw) setPhase(p float64) {
	s.phase = clamp(p, 0, 1)
	s.hasPhase = true
}

func (s *supersaw) reset() {
	for i := range s.x {
		s.x[i] = 0
	}
}

func (s *supersaw) shape() waveShape { return waveSupersaw }
