package psd

import (
	"math"

	"github.com/notargets/gojabber/interpolant"
	"github.com/notargets/gojabber/types"
)

/*
	The power of a one-sided PSD S(f) within [f1, f2] is the integral of S over
	that range. A broadband spectrum is discretized into waves of frequency f_k
	whose power P_k is the integral of S over the bin surrounding f_k; a cosine
	carrying mean-square power P_k has amplitude sqrt(2 P_k).

	With a piecewise representation of S the bin integrals are computed in
	closed form per segment. With only a callable S a midpoint Riemann sum is
	used instead.
*/

// PSD is a continuous one-sided power spectral density
type PSD interface {
	Eval(f float64) float64
	Min() float64 // Lowest frequency of the tabulated data
	Max() float64 // Highest frequency of the tabulated data
	Integrate(f1, f2 float64) float64
}

// slopeTol is how close a log-log slope must be to -1 to use the logarithmic antiderivative
const slopeTol = 1.e-12

// Interval is the frequency bin [Left, Right] around a center frequency
type Interval struct {
	Left, Right float64
}

func (iv Interval) DF() float64 { return iv.Right - iv.Left }

// ComputeInterval bounds the bin of freqs[i]. Interior bins end at the
// midpoint to each neighbor (arithmetic or on a log10 scale), the first bin
// starts at freqs[0] and the last bin ends at freqs[N-1].
func ComputeInterval(freqs []float64, i int, method types.IntervalMethod) (iv Interval) {
	var (
		N   = len(freqs)
		mid func(a, b float64) float64
	)
	switch method {
	case types.MidpointLog10:
		mid = func(a, b float64) float64 { return math.Sqrt(a * b) }
	default:
		mid = func(a, b float64) float64 { return 0.5 * (a + b) }
	}
	iv.Left, iv.Right = freqs[i], freqs[i]
	if i > 0 {
		iv.Left = mid(freqs[i-1], freqs[i])
	}
	if i < N-1 {
		iv.Right = mid(freqs[i], freqs[i+1])
	}
	return
}

// Discretize computes the power in the bin of each ascending center frequency
// by exact integration. The outer edges of the first and last bins are
// extended to the bounds of the PSD data.
func Discretize(p PSD, freqs []float64, method types.IntervalMethod) (powers []float64) {
	var (
		N = len(freqs)
	)
	powers = make([]float64, N)
	for i := range freqs {
		iv := ComputeInterval(freqs, i, method)
		if i == 0 {
			iv.Left = p.Min()
		}
		if i == N-1 {
			iv.Right = p.Max()
		}
		powers[i] = p.Integrate(iv.Left, iv.Right)
	}
	return
}

// DiscretizeRiemann computes P_k = S(f_k) * Δf_k for ascending center frequencies
func DiscretizeRiemann(S func(f float64) float64, freqs []float64, method types.IntervalMethod) (powers []float64) {
	powers = make([]float64, len(freqs))
	for i, f := range freqs {
		powers[i] = S(f) * ComputeInterval(freqs, i, method).DF()
	}
	return
}

// LinearIntegral integrates m(x-x0)+y0 over [a, b]
func LinearIntegral(x0, y0, m, a, b float64) float64 {
	return 0.5 * (b - a) * (m*(a+b-2*x0) + 2*y0)
}

// LogLogIntegral integrates y0*(x/x0)^m over [a, b]
func LogLogIntegral(x0, y0, m, a, b float64) float64 {
	if math.Abs(m+1) < slopeTol {
		return x0 * y0 * (math.Log(b) - math.Log(a))
	}
	return (y0 / (m + 1)) * (b*math.Pow(b/x0, m) - a*math.Pow(a/x0, m))
}

type segmented interface {
	Segment(x float64) int
	Knots() (x, y, m []float64)
}

// integrate sums the closed form integral of each segment clipped to [a, b]
func integrate(pw segmented, a, b float64, segInt func(x0, y0, m, a, b float64) float64) (sum float64) {
	if a == b {
		return
	}
	if a > b {
		return -integrate(pw, b, a, segInt)
	}
	var (
		X, Y, M = pw.Knots()
		iA, iB  = pw.Segment(a), pw.Segment(b)
	)
	for i := iA; i <= iB; i++ {
		lo, hi := X[i], X[i+1]
		if i == iA {
			lo = a
		}
		if i == iB {
			hi = b
		}
		sum += segInt(X[i], Y[i], M[i+1], lo, hi)
	}
	return
}

// PWLinearPSD is a PSD linearly interpolated between digitized points
type PWLinearPSD struct {
	*interpolant.PWLinear
}

func NewPWLinearPSD(freq, psd []float64) (p *PWLinearPSD, err error) {
	var (
		pw *interpolant.PWLinear
	)
	if pw, err = interpolant.NewPWLinear(freq, psd); err != nil {
		return
	}
	p = &PWLinearPSD{pw}
	return
}

func (p *PWLinearPSD) Integrate(f1, f2 float64) float64 {
	return integrate(p.PWLinear, f1, f2, LinearIntegral)
}

// PWLogLogPSD is a PSD interpolated linearly on log10-log10 scaling
type PWLogLogPSD struct {
	*interpolant.PWLogLog
}

func NewPWLogLogPSD(freq, psd []float64) (p *PWLogLogPSD, err error) {
	var (
		pw *interpolant.PWLogLog
	)
	if pw, err = interpolant.NewPWLogLog(freq, psd); err != nil {
		return
	}
	p = &PWLogLogPSD{pw}
	return
}

func (p *PWLogLogPSD) Integrate(f1, f2 float64) float64 {
	return integrate(p.PWLogLog, f1, f2, LogLogIntegral)
}

// NewPSD builds the PSD for the given interpolation law
func NewPSD(ft types.FunctionType, freq, psd []float64) (p PSD, err error) {
	switch ft {
	case types.PiecewiseLogLog:
		var pl *PWLogLogPSD
		if pl, err = NewPWLogLogPSD(freq, psd); err == nil {
			p = pl
		}
	default:
		var pl *PWLinearPSD
		if pl, err = NewPWLinearPSD(freq, psd); err == nil {
			p = pl
		}
	}
	return
}
