package acoustic_field

import (
	"errors"
	"fmt"

	"github.com/notargets/gojabber/types"
	"github.com/notargets/gojabber/utils"
	"github.com/notargets/gojabber/waves"
)

var (
	ErrFinalized    = errors.New("acoustic field is finalized")
	ErrNotFinalized = errors.New("acoustic field is not finalized")
)

/*
AcousticField evaluates the perturbation a set of planar acoustic waves
imposes on a uniform base flow at a fixed cloud of points.

Waves are added while building, Finalize freezes the wave list and
precomputes the invariants, after which Compute can be called any number of
times with any time value. Compute overwrites the output fields of the
instance, so one instance must not be computed from multiple goroutines.
*/
type AcousticField struct {
	dim, numPoints int
	coords         [][]float64 // coords[d][i]
	base           waves.BaseFlow
	c              float64
	kernel         types.Kernel
	procLimit      int

	waves     []waves.Wave
	finalized bool

	in  KernelInput
	out Fields
	acc []Accumulator
	pm  *utils.PartitionMap
}

// NewAcousticField copies interleaved point coordinates, x_i at coords[i*dim+d],
// into one array per dimension. A procLimit of 0 uses every CPU.
func NewAcousticField(dim int, coords []float64, base waves.BaseFlow, kernel types.Kernel,
	procLimit int) (af *AcousticField, err error) {
	if dim < 1 || dim > 3 {
		err = fmt.Errorf("dimension must be 1, 2 or 3, have %d", dim)
		return
	}
	if len(coords)%dim != 0 {
		err = fmt.Errorf("%w: %d coordinates is not a multiple of dimension %d",
			waves.ErrLengthMismatch, len(coords), dim)
		return
	}
	if base.Dim() != dim {
		err = fmt.Errorf("%w: base flow velocity has %d components, dimension is %d",
			waves.ErrLengthMismatch, base.Dim(), dim)
		return
	}
	if err = base.Validate(); err != nil {
		return
	}
	if kernel != types.GridPoint && kernel != types.WaveInner {
		err = fmt.Errorf("unknown kernel %d", kernel)
		return
	}
	var (
		N = len(coords) / dim
	)
	af = &AcousticField{
		dim:       dim,
		numPoints: N,
		coords:    make([][]float64, dim),
		base:      base,
		c:         base.SoundSpeed(),
		kernel:    kernel,
		procLimit: procLimit,
	}
	af.base.U = append([]float64(nil), base.U...)
	for d := 0; d < dim; d++ {
		af.coords[d] = make([]float64, N)
		for i := 0; i < N; i++ {
			af.coords[d][i] = coords[i*dim+d]
		}
	}
	return
}

func (af *AcousticField) AddWave(w waves.Wave) (err error) {
	if af.finalized {
		return ErrFinalized
	}
	af.waves = append(af.waves, w)
	return
}

func (af *AcousticField) AddWaves(ws []waves.Wave) (err error) {
	if af.finalized {
		return ErrFinalized
	}
	af.waves = append(af.waves, ws...)
	return
}

/*
Finalize resolves the dispersion relation of every wave and precomputes

	ω_w = 2πf_w
	k̃_w = ±k̂_w, negated on the slow branch
	phase_w,i = k_w (k̂_w · x_i) + φ_w

then allocates the output fields. Any invalid wave fails the whole field.
*/
func (af *AcousticField) Finalize() (err error) {
	if af.finalized {
		return ErrFinalized
	}
	var (
		N, W = af.numPoints, len(af.waves)
		in   = KernelInput{
			Dim:       af.dim,
			NumPoints: N,
			NumWaves:  W,
			Order:     af.kernel,
			RhoBar:    af.base.Rho,
			PBar:      af.base.P,
			Gamma:     af.base.Gamma,
			U:         af.base.U,
			Amplitude: make([]float64, W),
			Omega:     make([]float64, W),
			ModKHat:   make([]float64, af.dim*W),
			Phase:     make([]float64, W*N),
		}
		kx = make([]float64, N)
	)
	for w, wave := range af.waves {
		var (
			omega, k float64
			modKHat  []float64
		)
		if omega, k, modKHat, err = waves.Resolve(wave, af.base); err != nil {
			err = fmt.Errorf("wave %d: %w", w+1, err)
			return
		}
		in.Amplitude[w], in.Omega[w] = wave.Amplitude, omega
		// k̂ = s k̃ with s = ±1
		ks := k * wave.Branch.Sign()
		utils.Fill(kx, wave.Phase)
		for d := 0; d < af.dim; d++ {
			in.ModKHat[d*W+w] = modKHat[d]
			kd := ks * modKHat[d]
			for i, x := range af.coords[d] {
				kx[i] += kd * x
			}
		}
		if af.kernel == types.GridPoint {
			copy(in.Phase[w*N:(w+1)*N], kx)
		} else {
			for i, ph := range kx {
				in.Phase[i*W+w] = ph
			}
		}
	}
	af.in = in
	af.out = NewFields(af.dim, N)
	if af.kernel == types.GridPoint {
		af.pm = utils.NewPartitionMap(utils.ParallelDegree(af.procLimit, W), W)
		af.acc = make([]Accumulator, af.pm.ParallelDegree)
		for np := range af.acc {
			af.acc[np] = NewAccumulator(af.dim, N)
		}
	} else {
		af.pm = utils.NewPartitionMap(utils.ParallelDegree(af.procLimit, N), N)
	}
	af.finalized = true
	return
}

// Compute evaluates density, momentum and energy at every point at time t
func (af *AcousticField) Compute(t float64) (err error) {
	if !af.finalized {
		return ErrNotFinalized
	}
	ComputeKernel(&af.in, t, af.out, af.acc, af.pm)
	return
}

func (af *AcousticField) Dim() int { return af.dim }
func (af *AcousticField) NumPoints() int { return af.numPoints }
func (af *AcousticField) NumWaves() int { return len(af.waves) }
func (af *AcousticField) SoundSpeed() float64 { return af.c }
func (af *AcousticField) Kernel() types.Kernel { return af.kernel }
func (af *AcousticField) BaseFlow() waves.BaseFlow { return af.base }
func (af *AcousticField) Waves() []waves.Wave { return af.waves }
func (af *AcousticField) Coord(d int) []float64 { return af.coords[d] }
func (af *AcousticField) ParallelDegree() (np int) {
	if af.pm != nil {
		np = af.pm.ParallelDegree
	}
	return
}

// Density, Momentum and Energy view the result of the last Compute
func (af *AcousticField) Density() []float64 { return af.out.Rho }

func (af *AcousticField) Momentum(d int) []float64 {
	var (
		N = af.numPoints
	)
	return af.out.RhoV[d*N : (d+1)*N]
}

func (af *AcousticField) Energy() []float64 { return af.out.RhoE }
