package spectrum

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/notargets/gojabber/interpolant"
	"github.com/notargets/gojabber/psd"
	"github.com/notargets/gojabber/types"
	"github.com/notargets/gojabber/waves"
)

// Every randomized quantity draws from its own generator, seeded by the caller

func newUniform(min, max float64, seed uint64) distuv.Uniform {
	return distuv.Uniform{Min: min, Max: max, Src: rand.NewPCG(seed, seed)}
}

// FrequencyPolicy places n center frequencies in [fmin, fmax]. Output is ascending.
type FrequencyPolicy interface {
	Frequencies(fmin, fmax float64, n int) []float64
	isFrequencyPolicy()
}

// Uniform spaces frequencies linearly, including both ends
type Uniform struct{}

// UniformLog spaces frequencies in a geometric progression, including both ends
type UniformLog struct{}

// Random samples frequencies uniformly in [fmin, fmax)
type Random struct{ Seed uint64 }

// RandomLog samples log10 frequencies uniformly in [log10 fmin, log10 fmax)
type RandomLog struct{ Seed uint64 }

func (Uniform) isFrequencyPolicy()    {}
func (UniformLog) isFrequencyPolicy() {}
func (Random) isFrequencyPolicy()     {}
func (RandomLog) isFrequencyPolicy()  {}

func (Uniform) Frequencies(fmin, fmax float64, n int) (freqs []float64) {
	freqs = make([]float64, n)
	if n == 1 {
		freqs[0] = 0.5 * (fmin + fmax)
		return
	}
	floats.Span(freqs, fmin, fmax)
	return
}

func (UniformLog) Frequencies(fmin, fmax float64, n int) (freqs []float64) {
	freqs = make([]float64, n)
	if n == 1 {
		freqs[0] = math.Sqrt(fmin * fmax)
		return
	}
	floats.LogSpan(freqs, fmin, fmax)
	return
}

func (r Random) Frequencies(fmin, fmax float64, n int) (freqs []float64) {
	var (
		dist = newUniform(fmin, fmax, r.Seed)
	)
	freqs = make([]float64, n)
	for i := range freqs {
		freqs[i] = dist.Rand()
	}
	sort.Float64s(freqs)
	return
}

func (r RandomLog) Frequencies(fmin, fmax float64, n int) (freqs []float64) {
	var (
		dist = newUniform(math.Log10(fmin), math.Log10(fmax), r.Seed)
	)
	freqs = make([]float64, n)
	for i := range freqs {
		freqs[i] = math.Pow(10, dist.Rand())
	}
	sort.Float64s(freqs)
	return
}

func NewFrequencyPolicy(method types.DiscMethod, seed uint64) (fp FrequencyPolicy, err error) {
	switch method {
	case types.Uniform:
		fp = Uniform{}
	case types.UniformLog:
		fp = UniformLog{}
	case types.Random:
		fp = Random{Seed: seed}
	case types.RandomLog:
		fp = RandomLog{Seed: seed}
	default:
		err = fmt.Errorf("unknown discretization method %d", method)
	}
	return
}

// DirectionPolicy assigns a unit direction of length dim to each of n waves
type DirectionPolicy interface {
	Directions(n, dim int) ([][]float64, error)
	isDirectionPolicy()
}

// Constant reuses one direction for every wave
type Constant struct{ Vector []float64 }

// RandomXYAngle draws an angle in the xy plane uniformly from [MinAngle, MaxAngle] degrees
type RandomXYAngle struct {
	MinAngle, MaxAngle float64
	Seed               uint64
}

func (Constant) isDirectionPolicy()      {}
func (RandomXYAngle) isDirectionPolicy() {}

func (c Constant) Directions(n, dim int) (dirs [][]float64, err error) {
	var (
		kHat []float64
	)
	if kHat, err = waves.Project(c.Vector, dim); err != nil {
		return
	}
	if kHat, err = waves.Normalize(kHat); err != nil {
		return
	}
	dirs = make([][]float64, n)
	for i := range dirs {
		dirs[i] = make([]float64, dim)
		copy(dirs[i], kHat)
	}
	return
}

func (r RandomXYAngle) Directions(n, dim int) (dirs [][]float64, err error) {
	if dim < 2 {
		err = fmt.Errorf("random xy angle directions need at least 2 dimensions, have %d", dim)
		return
	}
	if r.MinAngle > r.MaxAngle {
		err = fmt.Errorf("minimum angle %v exceeds maximum angle %v", r.MinAngle, r.MaxAngle)
		return
	}
	var (
		deg2rad = math.Pi / 180
		dist    = newUniform(r.MinAngle*deg2rad, r.MaxAngle*deg2rad, r.Seed)
	)
	dirs = make([][]float64, n)
	for i := range dirs {
		theta := dist.Rand()
		dirs[i] = make([]float64, dim)
		dirs[i][0], dirs[i][1] = math.Cos(theta), math.Sin(theta)
	}
	return
}

// Phases draws n phases uniformly in [0, 2π)
func Phases(seed uint64, n int) (phases []float64) {
	var (
		dist = newUniform(0, 2*math.Pi, seed)
	)
	phases = make([]float64, n)
	for i := range phases {
		phases[i] = math.Mod(dist.Rand(), 2*math.Pi)
	}
	return
}

// Transfer produces the power transfer function χ(f) applied to discretized
// powers. A nil χ leaves the powers unchanged.
type Transfer interface {
	Chi(bf waves.BaseFlow, branch types.Branch) func(f float64) float64
	isTransfer()
}

type NoTransfer struct{}

// LowFrequencyLimit applies the frequency independent shock transfer χ(M̄)
type LowFrequencyLimit struct{}

// InputTransfer applies a user supplied χ(f)
type InputTransfer struct{ TF interpolant.Function }

func (NoTransfer) isTransfer()        {}
func (LowFrequencyLimit) isTransfer() {}
func (InputTransfer) isTransfer()     {}

func (NoTransfer) Chi(waves.BaseFlow, types.Branch) func(f float64) float64 { return nil }

func (LowFrequencyLimit) Chi(bf waves.BaseFlow, branch types.Branch) func(f float64) float64 {
	chi := psd.LowFrequencyLimitTF(bf.Mach(), bf.Gamma, branch)
	return func(float64) float64 { return chi }
}

func (it InputTransfer) Chi(waves.BaseFlow, types.Branch) func(f float64) float64 {
	return it.TF.Eval
}
