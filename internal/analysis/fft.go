package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/san-kum/rovsim/internal/dynamo"
	"github.com/san-kum/rovsim/internal/metrics"
)

// Spectrum is a one-sided power spectrum.
type Spectrum struct {
	Freqs []float64
	Power []float64
}

// PowerSpectrum returns |X(k)|²/n for the first half of the bins of the
// mean-removed signal.
func PowerSpectrum(data []float64) []float64 {
	n := len(data)
	if n == 0 {
		return nil
	}

	var mean float64
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i, v := range data {
		centered[i] = v - mean
	}

	bins := fft.FFTReal(centered)
	ps := make([]float64, n/2+1)
	for i := range ps {
		a := cmplx.Abs(bins[i])
		ps[i] = a * a / float64(n)
	}
	return ps
}

// ComputeSpectrum pairs the power spectrum of data sampled every dt
// seconds with bin frequencies in Hz.
func ComputeSpectrum(data []float64, dt float64) (*Spectrum, error) {
	if len(data) < 2 {
		return nil, dynamo.ErrNoSamples
	}
	ps := PowerSpectrum(data)
	df := 1 / (dt * float64(len(data)))

	s := &Spectrum{
		Freqs: make([]float64, len(ps)),
		Power: ps,
	}
	for i := range s.Freqs {
		s.Freqs[i] = float64(i) * df
	}
	return s, nil
}

// DominantFrequency returns the frequency and power of the strongest
// bin above DC.
func DominantFrequency(data []float64, dt float64) (freq, power float64, err error) {
	s, err := ComputeSpectrum(data, dt)
	if err != nil {
		return 0, 0, err
	}
	best := 1
	for i := 2; i < len(s.Power); i++ {
		if s.Power[i] > s.Power[best] {
			best = i
		}
	}
	return s.Freqs[best], s.Power[best], nil
}

// Report summarizes the oscillation content of a run.
type Report struct {
	DominantHz    float64
	DominantPower float64
	ZeroCrossings int
}

// Analyze looks at the depth error of res.
func Analyze(res *dynamo.Result, dt float64) (*Report, error) {
	errs := metrics.Errors(res)

	hz, p, err := DominantFrequency(errs, dt)
	if err != nil {
		return nil, err
	}
	return &Report{
		DominantHz:    hz,
		DominantPower: p,
		ZeroCrossings: ZeroCrossings(errs),
	}, nil
}

// ZeroCrossings counts sign changes, ignoring exact zeros.
func ZeroCrossings(data []float64) int {
	n := 0
	prev := 0.0
	for _, v := range data {
		if v == 0 {
			continue
		}
		if prev != 0 && (v > 0) != (prev > 0) {
			n++
		}
		prev = v
	}
	return n
}
