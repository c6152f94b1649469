package audio

import (
	"math"
	"math/cmplx"
	"sync/atomic"

	"github.com/viterin/vek/vek32"
)

// ----- Output Tap ----- //

const fftSize = 2048

// outputTap keeps the most recent output samples. The audio thread writes;
// any goroutine may take a snapshot. A snapshot racing a write may mix two
// buffers, which is fine for metering.
type outputTap struct {
	samples []atomic.Uint32
	pos     atomic.Uint64
}

func newOutputTap(size int) *outputTap {
	if size <= 0 || size&(size-1) != 0 {
		panic("tap size must be a power of 2")
	}
	return &outputTap{samples: make([]atomic.Uint32, size)}
}

func (t *outputTap) write(v float64) {
	i := t.pos.Load()
	t.samples[i&uint64(len(t.samples)-1)].Store(math.Float32bits(float32(v)))
	t.pos.Store(i + 1)
}

// snapshot copies the latest len(dst) samples, oldest first.
func (t *outputTap) snapshot(dst []float32) {
	mask := uint64(len(t.samples) - 1)
	end := t.pos.Load()
	start := end - uint64(len(dst))
	for i := range dst {
		dst[i] = math.Float32frombits(t.samples[(start+uint64(i))&mask].Load())
	}
}

// ----- FFT ----- //

type fft struct {
	bitReverseTable []int
	wTable          []complex128
	buf             []complex128
}

func newFFT(length int) *fft {
	return &fft{
		bitReverseTable: makeBitReverseTable(length),
		wTable:          makeWTable(length),
		buf:             make([]complex128, length),
	}
}

func makeBitReverseTable(n int) []int {
	table := make([]int, n)
	for i := range table {
		table[i] = bitReverse(i, n)
	}
	return table
}

func bitReverse(k, n int) int {
	m := 0
	for ; n > 1; n = n >> 1 {
		m = m<<1 + k&1
		k = k >> 1
	}
	return m
}

func makeWTable(n int) []complex128 {
	table := make([]complex128, n)
	w := -2.0 * math.Pi / float64(n)
	for i := range table {
		table[i] = cmplx.Exp(complex(0, w*float64(i)))
	}
	return table
}

// calc runs an in-place radix-2 transform. len(x) must equal the size the
// fft was built for.
func (f *fft) calc(x []complex128) {
	n := len(x)
	for i := 0; i < n; i++ {
		rev := f.bitReverseTable[i]
		if i < rev {
			x[i], x[rev] = x[rev], x[i]
		}
	}
	for m := 1; m < n; m = m << 1 {
		step := m << 1
		for k := 0; k < m; k++ {
			w := f.wTable[n/step*k]
			for i := k; i < n; i += step {
				j := i + m
				tmp := x[j] * w
				x[j] = x[i] - tmp
				x[i] = x[i] + tmp
			}
		}
	}
}

// calcAbs replaces x with the magnitudes of its transform.
func (f *fft) calcAbs(x []float32) {
	for i, v := range x {
		f.buf[i] = complex(float64(v), 0)
	}
	f.calc(f.buf)
	for i := range x {
		x[i] = float32(cmplx.Abs(f.buf[i]))
	}
}

func hannWindow(n int) []float32 {
	w := make([]float32, n)
	for i := range w {
		w[i] = float32(0.5 - 0.5*math.Cos(2.0*math.Pi*float64(i)/float64(n)))
	}
	return w
}

// ----- Analyzer ----- //

// Levels is the peak and RMS of the latest output window, in dBFS.
type Levels struct {
	Peak float64
	RMS  float64
}

// analyzer reads the output tap on the control side.
type analyzer struct {
	tap    *outputTap
	fft    *fft
	window []float32
	frame  []float32
	tmp    []float32
}

func newAnalyzer(tap *outputTap, size int) *analyzer {
	return &analyzer{
		tap:    tap,
		fft:    newFFT(size),
		window: hannWindow(size),
		frame:  make([]float32, size),
		tmp:    make([]float32, size),
	}
}

func (a *analyzer) levels() Levels {
	a.tap.snapshot(a.frame)
	squares := vek32.Mul_Into(a.tmp, a.frame, a.frame)
	rms := math.Sqrt(float64(vek32.Mean(squares)))
	vek32.Abs_Inplace(a.frame)
	peak := float64(vek32.Max(a.frame))
	return Levels{Peak: sampleToDbfs(peak), RMS: sampleToDbfs(rms)}
}

// spectrum returns the windowed magnitude spectrum up to the Nyquist bin,
// scaled so that a full-scale sine reads about 0.5.
func (a *analyzer) spectrum() []float64 {
	a.tap.snapshot(a.frame)
	vek32.Mul_Inplace(a.frame, a.window)
	a.fft.calcAbs(a.frame)
	n := len(a.frame)
	vek32.MulNumber_Inplace(a.frame, 2/float32(n))
	out := make([]float64, n/2)
	for i := range out {
		out[i] = float64(a.frame[i])
	}
	return out
}
