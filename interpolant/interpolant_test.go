package interpolant

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPWLinear(t *testing.T) {
	var (
		X = []float64{1, 3, 5, 7}
		Y = []float64{2, 4, -6, -8}
	)
	pw, err := NewPWLinear(X, Y)
	require.NoError(t, err)
	{ // Passes through the knots
		for i := range X {
			assert.InDelta(t, Y[i], pw.Eval(X[i]), 1.e-14)
		}
	}
	{ // Interior of each segment
		assert.InDelta(t, 3., pw.Eval(2), 1.e-14)
		assert.InDelta(t, -1., pw.Eval(4), 1.e-14)
		assert.InDelta(t, -7., pw.Eval(6), 1.e-14)
	}
	{ // Extrapolates with the boundary segment slopes
		assert.InDelta(t, 0., pw.Eval(-1), 1.e-14)
		assert.InDelta(t, -10., pw.Eval(9), 1.e-14)
	}
	{ // Segment lookup uses upper bound semantics
		assert.Equal(t, 0, pw.Segment(0.5))
		assert.Equal(t, 0, pw.Segment(1))
		assert.Equal(t, 1, pw.Segment(3))
		assert.Equal(t, 2, pw.Segment(7))
		assert.Equal(t, 2, pw.Segment(100))
		assert.Equal(t, 1., pw.Min())
		assert.Equal(t, 7., pw.Max())
	}
	{ // Input data is copied
		X[0] = -100
		assert.Equal(t, 1., pw.Min())
		X[0] = 1
	}
}

func TestPWLogLog(t *testing.T) {
	var (
		X = []float64{1e3, 10e3, 50e3, 95e3}
		Y = []float64{1e-6, 1e-7, 5e-7, 5e-8}
	)
	pw, err := NewPWLogLog(X, Y)
	require.NoError(t, err)
	for i := range X {
		assert.True(t, near(Y[i], pw.Eval(X[i]), 1.e-12))
	}
	{ // Straight line on log-log axes between knots
		m := math.Log10(Y[2]/Y[1]) / math.Log10(X[2]/X[1])
		f := 20e3
		assert.True(t, near(Y[1]*math.Pow(f/X[1], m), pw.Eval(f), 1.e-12))
		mid := math.Sqrt(X[0] * X[1])
		assert.True(t, near(math.Sqrt(Y[0]*Y[1]), pw.Eval(mid), 1.e-12))
	}
	{ // Extrapolation below and above the data
		m0 := math.Log10(Y[1]/Y[0]) / math.Log10(X[1]/X[0])
		assert.True(t, near(Y[0]*math.Pow(0.5, m0), pw.Eval(500), 1.e-12))
		mN := math.Log10(Y[3]/Y[2]) / math.Log10(X[3]/X[2])
		assert.True(t, near(Y[2]*math.Pow(150e3/X[2], mN), pw.Eval(150e3), 1.e-12))
	}
}

func TestInterpolantErrors(t *testing.T) {
	var err error
	_, err = NewPWLinear([]float64{1, 2, 3}, []float64{1, 2})
	assert.Error(t, err)
	_, err = NewPWLinear([]float64{1}, []float64{1})
	assert.Error(t, err)
	_, err = NewPWLinear([]float64{1, 1, 2}, []float64{1, 2, 3})
	assert.Error(t, err)
	_, err = NewPWLinear([]float64{3, 2}, []float64{1, 2})
	assert.Error(t, err)
	_, err = NewPWLogLog([]float64{1, 2}, []float64{1, -2})
	assert.Error(t, err)
	_, err = NewPWLogLog([]float64{0, 2}, []float64{1, 2})
	assert.Error(t, err)
}

func near(a, b float64, tolI ...float64) (l bool) {
	var (
		tol float64
	)
	if len(tolI) == 0 {
		tol = 1.e-08
	} else {
		tol = tolI[0]
	}
	bound := math.Max(tol, tol*math.Abs(a))
	if math.Abs(a-b) <= bound {
		l = true
	}
	return
}
