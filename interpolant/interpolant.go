package interpolant

import (
	"fmt"
	"math"
	"sort"
)

// Function is a continuous R->R function
type Function interface {
	Eval(x float64) float64
}

/*
	A piecewise function is stored as its knots (X[i], Y[i]) and the slope M[i]
	of the segment that ends at knot i. M[0] duplicates M[1] so that any knot
	can be used as the left end of the segment that follows it.

	Evaluation outside of [X[0], X[N-1]] extrapolates with the first or the
	last segment, no extra segment is created beyond the end knots.
*/
type knots struct {
	X, Y, M []float64
}

func newKnots(x, y []float64, slope func(x0, y0, x1, y1 float64) float64) (k knots, err error) {
	var (
		N = len(x)
	)
	if N != len(y) {
		err = fmt.Errorf("mismatched interpolant data, have %d x values and %d y values", N, len(y))
		return
	}
	if N < 2 {
		err = fmt.Errorf("interpolant needs at least 2 points, have %d", N)
		return
	}
	k = knots{
		X: make([]float64, N),
		Y: make([]float64, N),
		M: make([]float64, N),
	}
	copy(k.X, x)
	copy(k.Y, y)
	for i := 1; i < N; i++ {
		if !(x[i] > x[i-1]) {
			err = fmt.Errorf("interpolant x values must be strictly increasing, x[%d]=%v, x[%d]=%v",
				i-1, x[i-1], i, x[i])
			return
		}
		k.M[i] = slope(x[i-1], y[i-1], x[i], y[i])
	}
	k.M[0] = k.M[1]
	return
}

// Segment returns the index of the left knot of the segment active at x
func (k *knots) Segment(x float64) (i int) {
	var (
		N = len(k.X)
	)
	// First knot strictly greater than x
	i = sort.Search(N, func(j int) bool { return k.X[j] > x })
	if i == 0 {
		i++
	}
	if i == N {
		i--
	}
	i--
	return
}

func (k *knots) Min() float64 { return k.X[0] }

func (k *knots) Max() float64 { return k.X[len(k.X)-1] }

// Knots returns the knot abscissas, ordinates and segment slopes
func (k *knots) Knots() (x, y, m []float64) { return k.X, k.Y, k.M }

// PWLinear is a piecewise linear interpolant
type PWLinear struct {
	knots
}

func NewPWLinear(x, y []float64) (pw *PWLinear, err error) {
	var (
		k knots
	)
	if k, err = newKnots(x, y, LinearSlope); err != nil {
		return
	}
	pw = &PWLinear{k}
	return
}

func LinearSlope(x0, y0, x1, y1 float64) float64 {
	return (y1 - y0) / (x1 - x0)
}

func (pw *PWLinear) Eval(x float64) float64 {
	var (
		i = pw.Segment(x)
	)
	return pw.M[i+1]*(x-pw.X[i]) + pw.Y[i]
}

// PWLogLog is a piecewise interpolant that is linear on log10-log10 scaling
type PWLogLog struct {
	knots
}

func NewPWLogLog(x, y []float64) (pw *PWLogLog, err error) {
	var (
		k knots
	)
	if k, err = newKnots(x, y, LogLogSlope); err != nil {
		return
	}
	for i := range k.X {
		if k.X[i] <= 0 || k.Y[i] <= 0 {
			err = fmt.Errorf("log-log interpolant needs positive data, have (%v, %v) at %d",
				k.X[i], k.Y[i], i)
			return
		}
	}
	pw = &PWLogLog{k}
	return
}

func LogLogSlope(x0, y0, x1, y1 float64) float64 {
	return math.Log10(y1/y0) / math.Log10(x1/x0)
}

func (pw *PWLogLog) Eval(x float64) float64 {
	var (
		i = pw.Segment(x)
	)
	return pw.Y[i] * math.Pow(x/pw.X[i], pw.M[i+1])
}
