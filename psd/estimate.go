package psd

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// Estimate computes the one-sided periodogram of a signal sampled every dt.
// The density is scaled so that its sum times the bin width 1/(N dt) equals
// the mean-square of the signal.
func Estimate(signal []float64, dt float64) (freqs, density []float64, err error) {
	var (
		N = len(signal)
	)
	if N < 2 {
		err = fmt.Errorf("need at least 2 samples for a spectral estimate, have %d", N)
		return
	}
	if dt <= 0 {
		err = fmt.Errorf("sample interval must be positive, have %v", dt)
		return
	}
	var (
		fft    = fourier.NewFFT(N)
		coeffs = fft.Coefficients(nil, signal)
		NF     = len(coeffs)
		scale  = dt / float64(N)
	)
	freqs, density = make([]float64, NF), make([]float64, NF)
	for k, c := range coeffs {
		mag := cmplx.Abs(c)
		density[k] = mag * mag * scale
		// Fold negative frequencies, DC and Nyquist (even N) appear once
		if k != 0 && !(N%2 == 0 && k == NF-1) {
			density[k] *= 2
		}
		freqs[k] = fft.Freq(k) / dt
	}
	return
}

// TotalPower integrates a periodogram returned by Estimate
func TotalPower(freqs, density []float64) float64 {
	if len(freqs) < 2 {
		return 0
	}
	return floats.Sum(density) * (freqs[1] - freqs[0])
}
