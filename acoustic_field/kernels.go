package acoustic_field

import (
	"math"
	"sync"

	"github.com/notargets/gojabber/types"
	"github.com/notargets/gojabber/utils"
)

/*
	For every point i the kernels evaluate, with c_w,i = cos(phase[w,i] - ω_w t)

		S[i]    = Σ_w p'_w c_w,i
		SV_d[i] = Σ_w p'_w c_w,i k̃_w,d        (k̃ is the sign folded direction)

	and then
		ρ    = ρ̄ + S/c̄²
		u_d  = Ū_d + SV_d/(ρ̄ c̄)
		ρu_d = ρ u_d
		ρE   = p̄/(γ-1) + S/(γ-1) + ½ ρ |u|²

	The scale factors are constant over the waves, so only the amplitude
	weighted sums are accumulated in the hot loops.
*/

// KernelInput holds the finalized invariants. Layouts:
//
//	ModKHat[d*NumWaves + w]
//	Phase[w*NumPoints + i] for the GridPoint kernel, Phase[i*NumWaves + w] for the Wave kernel
type KernelInput struct {
	Dim, NumPoints, NumWaves int
	Order                    types.Kernel
	RhoBar, PBar, Gamma      float64
	U                        []float64
	Amplitude, Omega         []float64
	ModKHat                  []float64
	Phase                    []float64
}

// Fields are conserved variables at each point, RhoV is stored [d*NumPoints + i]
type Fields struct {
	Rho, RhoV, RhoE []float64
}

func NewFields(dim, numPoints int) Fields {
	return Fields{
		Rho:  make([]float64, numPoints),
		RhoV: make([]float64, dim*numPoints),
		RhoE: make([]float64, numPoints),
	}
}

// Accumulator holds the wave sums S and SV for every point, SV is stored [d*NumPoints + i]
type Accumulator struct {
	S, SV []float64
}

func NewAccumulator(dim, numPoints int) Accumulator {
	return Accumulator{
		S:  make([]float64, numPoints),
		SV: make([]float64, dim*numPoints),
	}
}

func (acc Accumulator) zero() {
	utils.Fill(acc.S, 0)
	utils.Fill(acc.SV, 0)
}

func (acc Accumulator) add(other Accumulator) {
	for i, v := range other.S {
		acc.S[i] += v
	}
	for i, v := range other.SV {
		acc.SV[i] += v
	}
}

type gridPointFunc func(in *KernelInput, t float64, wMin, wMax int, acc Accumulator)
type waveFunc func(in *KernelInput, t float64, iMin, iMax int, out Fields)

var (
	gridPointKernels = [4]gridPointFunc{nil, gridPoint1D, gridPoint2D, gridPoint3D}
	waveKernels      = [4]waveFunc{nil, wave1D, wave2D, wave3D}
)

/*
ComputeKernel evaluates the fields at time t into out.

The GridPoint order loops waves outside and points inside. With more than one
partition the waves are split across goroutines, each summing into its own
accumulator from acc, then the accumulators are reduced in partition order.
acc must hold pm.ParallelDegree accumulators sized to the point count.

The Wave order loops points outside and waves inside. The points are split
across goroutines and no reduction is needed, acc is unused.
*/
func ComputeKernel(in *KernelInput, t float64, out Fields, acc []Accumulator, pm *utils.PartitionMap) {
	var (
		NP = pm.ParallelDegree
		wg sync.WaitGroup
	)
	switch in.Order {
	case types.GridPoint:
		kernel := gridPointKernels[in.Dim]
		if NP == 1 {
			acc[0].zero()
			kernel(in, t, 0, in.NumWaves, acc[0])
		} else {
			for np := 0; np < NP; np++ {
				wg.Add(1)
				go func(np int) {
					wMin, wMax := pm.GetBucketRange(np)
					acc[np].zero()
					kernel(in, t, wMin, wMax, acc[np])
					wg.Done()
				}(np)
			}
			wg.Wait()
			for np := 1; np < NP; np++ {
				acc[0].add(acc[np])
			}
		}
		finish(in, acc[0], out)
	case types.WaveInner:
		kernel := waveKernels[in.Dim]
		if NP == 1 {
			kernel(in, t, 0, in.NumPoints, out)
			return
		}
		for np := 0; np < NP; np++ {
			wg.Add(1)
			go func(np int) {
				iMin, iMax := pm.GetBucketRange(np)
				kernel(in, t, iMin, iMax, out)
				wg.Done()
			}(np)
		}
		wg.Wait()
	}
}

type factors struct {
	invCSq, invRhoC, invGm1, rhoE0 float64
}

func newFactors(in *KernelInput) (f factors) {
	var (
		cSq = in.Gamma * in.PBar / in.RhoBar
	)
	f.invCSq = 1 / cSq
	f.invRhoC = 1 / (in.RhoBar * math.Sqrt(cSq))
	f.invGm1 = 1 / (in.Gamma - 1)
	f.rhoE0 = in.PBar * f.invGm1
	return
}

func finish(in *KernelInput, acc Accumulator, out Fields) {
	var (
		N   = in.NumPoints
		f   = newFactors(in)
		rho float64
	)
	for i := 0; i < N; i++ {
		rho = in.RhoBar + acc.S[i]*f.invCSq
		var uSq float64
		for d := 0; d < in.Dim; d++ {
			u := in.U[d] + acc.SV[d*N+i]*f.invRhoC
			uSq += u * u
			out.RhoV[d*N+i] = rho * u
		}
		out.Rho[i] = rho
		out.RhoE[i] = f.rhoE0 + acc.S[i]*f.invGm1 + 0.5*rho*uSq
	}
}

func gridPoint1D(in *KernelInput, t float64, wMin, wMax int, acc Accumulator) {
	var (
		N   = in.NumPoints
		S   = acc.S
		SV0 = acc.SV[0:N]
	)
	for w := wMin; w < wMax; w++ {
		var (
			amp   = in.Amplitude[w]
			ampK0 = amp * in.ModKHat[w]
			omt   = in.Omega[w] * t
			phase = in.Phase[w*N : (w+1)*N]
		)
		for i, ph := range phase {
			c := math.Cos(ph - omt)
			S[i] += amp * c
			SV0[i] += ampK0 * c
		}
	}
}

func gridPoint2D(in *KernelInput, t float64, wMin, wMax int, acc Accumulator) {
	var (
		N   = in.NumPoints
		W   = in.NumWaves
		S   = acc.S
		SV0 = acc.SV[0:N]
		SV1 = acc.SV[N : 2*N]
	)
	for w := wMin; w < wMax; w++ {
		var (
			amp   = in.Amplitude[w]
			ampK0 = amp * in.ModKHat[w]
			ampK1 = amp * in.ModKHat[W+w]
			omt   = in.Omega[w] * t
			phase = in.Phase[w*N : (w+1)*N]
		)
		for i, ph := range phase {
			c := math.Cos(ph - omt)
			S[i] += amp * c
			SV0[i] += ampK0 * c
			SV1[i] += ampK1 * c
		}
	}
}

func gridPoint3D(in *KernelInput, t float64, wMin, wMax int, acc Accumulator) {
	var (
		N   = in.NumPoints
		W   = in.NumWaves
		S   = acc.S
		SV0 = acc.SV[0:N]
		SV1 = acc.SV[N : 2*N]
		SV2 = acc.SV[2*N : 3*N]
	)
	for w := wMin; w < wMax; w++ {
		var (
			amp   = in.Amplitude[w]
			ampK0 = amp * in.ModKHat[w]
			ampK1 = amp * in.ModKHat[W+w]
			ampK2 = amp * in.ModKHat[2*W+w]
			omt   = in.Omega[w] * t
			phase = in.Phase[w*N : (w+1)*N]
		)
		for i, ph := range phase {
			c := math.Cos(ph - omt)
			S[i] += amp * c
			SV0[i] += ampK0 * c
			SV1[i] += ampK1 * c
			SV2[i] += ampK2 * c
		}
	}
}

func wave1D(in *KernelInput, t float64, iMin, iMax int, out Fields) {
	var (
		W  = in.NumWaves
		f  = newFactors(in)
		K0 = in.ModKHat[0:W]
	)
	for i := iMin; i < iMax; i++ {
		var (
			phase  = in.Phase[i*W : (i+1)*W]
			s, sv0 float64
		)
		for w, ph := range phase {
			ac := in.Amplitude[w] * math.Cos(ph-in.Omega[w]*t)
			s += ac
			sv0 += ac * K0[w]
		}
		var (
			rho = in.RhoBar + s*f.invCSq
			u0  = in.U[0] + sv0*f.invRhoC
		)
		out.Rho[i] = rho
		out.RhoV[i] = rho * u0
		out.RhoE[i] = f.rhoE0 + s*f.invGm1 + 0.5*rho*u0*u0
	}
}

func wave2D(in *KernelInput, t float64, iMin, iMax int, out Fields) {
	var (
		N  = in.NumPoints
		W  = in.NumWaves
		f  = newFactors(in)
		K0 = in.ModKHat[0:W]
		K1 = in.ModKHat[W : 2*W]
	)
	for i := iMin; i < iMax; i++ {
		var (
			phase       = in.Phase[i*W : (i+1)*W]
			s, sv0, sv1 float64
		)
		for w, ph := range phase {
			ac := in.Amplitude[w] * math.Cos(ph-in.Omega[w]*t)
			s += ac
			sv0 += ac * K0[w]
			sv1 += ac * K1[w]
		}
		var (
			rho = in.RhoBar + s*f.invCSq
			u0  = in.U[0] + sv0*f.invRhoC
			u1  = in.U[1] + sv1*f.invRhoC
		)
		out.Rho[i] = rho
		out.RhoV[i] = rho * u0
		out.RhoV[N+i] = rho * u1
		out.RhoE[i] = f.rhoE0 + s*f.invGm1 + 0.5*rho*(u0*u0+u1*u1)
	}
}

func wave3D(in *KernelInput, t float64, iMin, iMax int, out Fields) {
	var (
		N  = in.NumPoints
		W  = in.NumWaves
		f  = newFactors(in)
		K0 = in.ModKHat[0:W]
		K1 = in.ModKHat[W : 2*W]
		K2 = in.ModKHat[2*W : 3*W]
	)
	for i := iMin; i < iMax; i++ {
		var (
			phase            = in.Phase[i*W : (i+1)*W]
			s, sv0, sv1, sv2 float64
		)
		for w, ph := range phase {
			ac := in.Amplitude[w] * math.Cos(ph-in.Omega[w]*t)
			s += ac
			sv0 += ac * K0[w]
			sv1 += ac * K1[w]
			sv2 += ac * K2[w]
		}
		var (
			rho = in.RhoBar + s*f.invCSq
			u0  = in.U[0] + sv0*f.invRhoC
			u1  = in.U[1] + sv1*f.invRhoC
			u2  = in.U[2] + sv2*f.invRhoC
		)
		out.Rho[i] = rho
		out.RhoV[i] = rho * u0
		out.RhoV[N+i] = rho * u1
		out.RhoV[2*N+i] = rho * u2
		out.RhoE[i] = f.rhoE0 + s*f.invGm1 + 0.5*rho*(u0*u0+u1*u1+u2*u2)
	}
}
