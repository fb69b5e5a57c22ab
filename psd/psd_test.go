package psd

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gojabber/types"
)

func exactLinearIntegral(x0, y0, x1, y1, a, b float64) float64 {
	m := (y1 - y0) / (x1 - x0)
	return 0.5 * (b - a) * (m*(a+b-2*x0) + 2*y0)
}

func exactLogLogIntegral(x0, y0, x1, y1, a, b float64) float64 {
	m := math.Log10(y1/y0) / math.Log10(x1/x0)
	if math.Abs(m+1) < 1.e-12 {
		return x0 * y0 * math.Log(b/a)
	}
	return (y0 / (m + 1)) * (b*math.Pow(b/x0, m) - a*math.Pow(a/x0, m))
}

func TestClosedForms(t *testing.T) {
	assert.True(t, near(4.950495e-6, exactLinearIntegral(1e1, 1e-8, 1e3, 1e-12, 1e1, 1e3), 1.e-12))
	assert.True(t, near(9.9e-8, exactLogLogIntegral(1e1, 1e-8, 1e3, 1e-12, 1e1, 1e3), 1.e-12))
	assert.True(t, near(1e-7*math.Log(100), exactLogLogIntegral(1e1, 1e-8, 1e3, 1e-10, 1e1, 1e3), 1.e-12))
}

func TestComputeInterval(t *testing.T) {
	var (
		freqs = []float64{0.1e3, 10e3, 40e3}
	)
	{ // Arithmetic midpoints
		exact := []Interval{{0.1e3, 5.05e3}, {5.05e3, 25e3}, {25e3, 40e3}}
		for i := range freqs {
			assert.Equal(t, exact[i], ComputeInterval(freqs, i, types.Midpoint))
		}
	}
	{ // Log10 midpoints
		exact := []Interval{{0.1e3, 1e3}, {1e3, 20e3}, {20e3, 40e3}}
		for i := range freqs {
			iv := ComputeInterval(freqs, i, types.MidpointLog10)
			assert.True(t, near(exact[i].Left, iv.Left, 1.e-14))
			assert.True(t, near(exact[i].Right, iv.Right, 1.e-14))
		}
	}
	{ // A single frequency has a zero width bin
		iv := ComputeInterval([]float64{5}, 0, types.Midpoint)
		assert.Equal(t, 0., iv.DF())
	}
}

func TestPWLinearPSDIntegrate(t *testing.T) {
	{ // Single segment reproduces the closed form exactly
		var (
			X = []float64{1, 3}
			Y = []float64{2, 4}
		)
		p, err := NewPWLinearPSD(X, Y)
		require.NoError(t, err)
		for _, a := range []float64{0.5, 1.0, 1.5} {
			for _, b := range []float64{3.5, 4.0, 4.5} {
				assert.Equal(t, exactLinearIntegral(X[0], Y[0], X[1], Y[1], a, b), p.Integrate(a, b))
			}
		}
	}
	{ // Multiple segments, segment boundaries act as break points
		var (
			X = []float64{1, 3, 5, 7}
			Y = []float64{2, 4, -6, -8}
		)
		p, err := NewPWLinearPSD(X, Y)
		require.NoError(t, err)
		type bound struct {
			v   float64
			seg int
		}
		for _, a := range []bound{{0.5, 0}, {1.0, 0}, {1.5, 0}, {3.0, 1}, {3.3, 1}} {
			for _, b := range []bound{{3.5, 1}, {5.0, 2}, {5.5, 2}, {7.0, 2}, {8.0, 2}} {
				var exact float64
				for i := a.seg; i <= b.seg; i++ {
					lo, hi := X[i], X[i+1]
					if i == a.seg {
						lo = a.v
					}
					if i == b.seg {
						hi = b.v
					}
					exact += exactLinearIntegral(X[i], Y[i], X[i+1], Y[i+1], lo, hi)
				}
				assert.True(t, near(exact, p.Integrate(a.v, b.v), 1.e-13), "a=%v b=%v", a.v, b.v)
			}
		}
		// Reversed bounds flip sign, empty range is zero
		assert.True(t, near(-p.Integrate(1.5, 5.5), p.Integrate(5.5, 1.5), 1.e-14))
		assert.Equal(t, 0., p.Integrate(2, 2))
	}
}

func TestPWLogLogPSDIntegrate(t *testing.T) {
	{ // Single segment, slope != -1
		var (
			X = []float64{5e3, 20e3}
			Y = []float64{1e-8, 1e-9}
		)
		p, err := NewPWLogLogPSD(X, Y)
		require.NoError(t, err)
		for _, a := range []float64{2.5e3, 5e3, 10e3} {
			for _, b := range []float64{15e3, 20e3, 25e3} {
				assert.True(t, near(exactLogLogIntegral(X[0], Y[0], X[1], Y[1], a, b), p.Integrate(a, b), 1.e-13))
			}
		}
	}
	{ // Single segment, slope == -1 uses the logarithmic antiderivative
		var (
			X = []float64{1e3, 10e3}
			Y = []float64{1e-6, 1e-7}
		)
		p, err := NewPWLogLogPSD(X, Y)
		require.NoError(t, err)
		_, _, M := p.Knots()
		require.True(t, math.Abs(M[1]+1) < 1.e-12)
		for _, a := range []float64{0.5e3, 1e3, 2.5e3} {
			for _, b := range []float64{7.5e3, 10e3, 15e3} {
				exact := X[0] * Y[0] * math.Log(b/a)
				assert.True(t, near(exact, p.Integrate(a, b), 1.e-13))
			}
		}
	}
	{ // Multiple segments
		var (
			X = []float64{1e3, 10e3, 50e3, 95e3}
			Y = []float64{1e-6, 1e-7, 5e-7, 5e-8}
		)
		p, err := NewPWLogLogPSD(X, Y)
		require.NoError(t, err)
		type bound struct {
			v   float64
			seg int
		}
		for _, a := range []bound{{0.5e3, 0}, {1e3, 0}, {5e3, 0}, {10e3, 1}, {15e3, 1}} {
			for _, b := range []bound{{30e3, 1}, {50e3, 2}, {75e3, 2}, {95e3, 2}, {150e3, 2}} {
				var exact float64
				for i := a.seg; i <= b.seg; i++ {
					lo, hi := X[i], X[i+1]
					if i == a.seg {
						lo = a.v
					}
					if i == b.seg {
						hi = b.v
					}
					exact += exactLogLogIntegral(X[i], Y[i], X[i+1], Y[i+1], lo, hi)
				}
				assert.True(t, near(exact, p.Integrate(a.v, b.v), 1.e-12), "a=%v b=%v", a.v, b.v)
			}
		}
	}
}

func TestDiscretize(t *testing.T) {
	var (
		X     = []float64{1e3, 10e3, 50e3, 95e3}
		Y     = []float64{1e-6, 1e-7, 5e-7, 5e-8}
		freqs = []float64{7e3, 32e3, 95e3}
	)
	p, err := NewPWLogLogPSD(X, Y)
	require.NoError(t, err)
	{ // Exact discretization, outer bins extend to the PSD bounds
		var (
			ivs = []Interval{
				{X[0], math.Sqrt(freqs[0] * freqs[1])},
				{math.Sqrt(freqs[0] * freqs[1]), math.Sqrt(freqs[1] * freqs[2])},
				{math.Sqrt(freqs[1] * freqs[2]), X[3]},
			}
		)
		powers := Discretize(p, freqs, types.MidpointLog10)
		require.Equal(t, len(freqs), len(powers))
		var total float64
		for i := range freqs {
			assert.Equal(t, p.Integrate(ivs[i].Left, ivs[i].Right), powers[i])
			total += powers[i]
		}
		// Bins tile the PSD range, so total power is conserved
		assert.True(t, near(p.Integrate(X[0], X[3]), total, 1.e-12))
	}
	{ // Riemann sum against a callable PSD
		S := func(f float64) float64 { return 2 * f }
		powers := DiscretizeRiemann(S, freqs, types.Midpoint)
		assert.True(t, near(S(7e3)*(32e3-7e3)/2, powers[0], 1.e-14))
		assert.True(t, near(S(32e3)*(95e3-7e3)/2, powers[1], 1.e-14))
		assert.True(t, near(S(95e3)*(95e3-32e3)/2, powers[2], 1.e-14))
		powers = DiscretizeRiemann(S, freqs, types.MidpointLog10)
		assert.True(t, near(S(32e3)*(math.Sqrt(32e3*95e3)-math.Sqrt(7e3*32e3)), powers[1], 1.e-14))
	}
}

func TestLowFrequencyLimitTF(t *testing.T) {
	assert.InDelta(t, 0.23175337604870483, LowFrequencyLimitTF(6.0, 1.4, types.Slow), 1.e-14)
	assert.InDelta(t, 0.907933119227385, LowFrequencyLimitTF(6.0, 1.4, types.Fast), 1.e-14)
	{
		freqs := []float64{1, 2, 3}
		powers := []float64{1, 1, 1}
		ApplyTransfer(func(f float64) float64 { return f * f }, freqs, powers)
		assert.Equal(t, []float64{1, 4, 9}, powers)
	}
}

func TestEstimate(t *testing.T) {
	var (
		N   = 1024
		dt  = 1.e-5
		amp = 3.
		f0  = 64. / (float64(N) * dt) // Lands exactly on a bin
		sig = make([]float64, N)
	)
	for i := range sig {
		sig[i] = amp * math.Cos(2*math.Pi*f0*float64(i)*dt+0.3)
	}
	freqs, density, err := Estimate(sig, dt)
	require.NoError(t, err)
	assert.Equal(t, N/2+1, len(freqs))
	{ // Peak sits at the tone frequency
		var kMax int
		for k := range density {
			if density[k] > density[kMax] {
				kMax = k
			}
		}
		assert.True(t, near(f0, freqs[kMax], 1.e-10))
	}
	{ // Parseval: integrated density equals the mean-square, A^2/2 for a tone
		var ms float64
		for _, v := range sig {
			ms += v * v
		}
		ms /= float64(N)
		assert.True(t, near(ms, TotalPower(freqs, density), 1.e-10))
		assert.True(t, near(0.5*amp*amp, TotalPower(freqs, density), 1.e-10))
	}
	_, _, err = Estimate([]float64{1}, dt)
	assert.Error(t, err)
	_, _, err = Estimate(sig, 0)
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
