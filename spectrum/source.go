package spectrum

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/notargets/gojabber/psd"
	"github.com/notargets/gojabber/types"
	"github.com/notargets/gojabber/waves"
)

var ErrOutsidePSD = errors.New("discretization range exits the psd data")

// Source is one of SingleWave, WaveSpectrum, PSDSource or WaveCSV
type Source interface {
	Waves(bf waves.BaseFlow) ([]waves.Wave, error)
	isSource()
}

// SingleWave is one wave, phase in degrees
type SingleWave struct {
	Amplitude, Frequency, Phase float64
	Branch                      types.Branch
	Direction                   []float64
}

// WaveSpectrum is a list of waves given as parallel arrays, phases in degrees
type WaveSpectrum struct {
	Amplitudes, Frequencies, Phases []float64
	Branches                        []types.Branch
	Directions                      [][]float64
}

// PSDSource synthesizes NumWaves waves from a power spectral density. When
// PSD is set bin powers are integrated exactly, otherwise Callable is
// integrated with a midpoint Riemann sum.
type PSDSource struct {
	PSD              psd.PSD
	Callable         func(f float64) float64
	ScaleFactor      float64 // Dimensionalizes the amplitudes
	MinFreq, MaxFreq float64
	NumWaves         int
	Interval         types.IntervalMethod
	Frequencies      FrequencyPolicy
	Direction        DirectionPolicy
	PhaseSeed        uint64
	Branch           types.Branch
	Transfer         Transfer // Optional
}

// WaveCSV reads waves from a file in the wave interchange format
type WaveCSV struct {
	File string
}

func (SingleWave) isSource()   {}
func (WaveSpectrum) isSource() {}
func (PSDSource) isSource()    {}
func (WaveCSV) isSource()      {}

const deg2rad = math.Pi / 180

func (sw SingleWave) Waves(bf waves.BaseFlow) (ws []waves.Wave, err error) {
	var (
		kHat []float64
	)
	if kHat, err = waves.Normalize(sw.Direction); err != nil {
		return
	}
	ws = []waves.Wave{{
		Amplitude: sw.Amplitude,
		Frequency: sw.Frequency,
		Phase:     sw.Phase * deg2rad,
		Branch:    sw.Branch,
		Direction: kHat,
	}}
	return
}

func (sp WaveSpectrum) Waves(bf waves.BaseFlow) (ws []waves.Wave, err error) {
	var (
		N = len(sp.Amplitudes)
	)
	if len(sp.Frequencies) != N || len(sp.Phases) != N || len(sp.Branches) != N || len(sp.Directions) != N {
		err = fmt.Errorf("%w: wave spectrum has %d amplitudes, %d frequencies, %d phases, %d branches, %d directions",
			waves.ErrLengthMismatch, N, len(sp.Frequencies), len(sp.Phases), len(sp.Branches), len(sp.Directions))
		return
	}
	ws = make([]waves.Wave, N)
	for i := range ws {
		var kHat []float64
		if kHat, err = waves.Normalize(sp.Directions[i]); err != nil {
			err = fmt.Errorf("wave spectrum entry %d: %w", i, err)
			return
		}
		ws[i] = waves.Wave{
			Amplitude: sp.Amplitudes[i],
			Frequency: sp.Frequencies[i],
			Phase:     sp.Phases[i] * deg2rad,
			Branch:    sp.Branches[i],
			Direction: kHat,
		}
	}
	return
}

func (wc WaveCSV) Waves(bf waves.BaseFlow) (ws []waves.Wave, err error) {
	var (
		raw []waves.Wave
	)
	if raw, err = waves.ReadWavesFile(wc.File); err != nil {
		return
	}
	ws = make([]waves.Wave, len(raw))
	for i, wv := range raw {
		if wv.Direction, err = waves.Normalize(wv.Direction); err != nil {
			err = fmt.Errorf("%s wave %d: %w", wc.File, i+1, err)
			return
		}
		ws[i] = wv
	}
	return
}

func (ps PSDSource) Validate() (err error) {
	switch {
	case ps.PSD == nil && ps.Callable == nil:
		err = fmt.Errorf("psd source has neither a PSD nor a callable")
	case ps.NumWaves < 1:
		err = fmt.Errorf("psd source needs at least one wave, have %d", ps.NumWaves)
	case !(ps.MinFreq > 0) || !(ps.MinFreq < ps.MaxFreq):
		err = fmt.Errorf("psd discretization range must satisfy 0 < min < max, have [%v, %v]", ps.MinFreq, ps.MaxFreq)
	case ps.PSD != nil && (ps.MinFreq < ps.PSD.Min() || ps.MaxFreq > ps.PSD.Max()):
		err = fmt.Errorf("%w: range [%v, %v], data [%v, %v]",
			ErrOutsidePSD, ps.MinFreq, ps.MaxFreq, ps.PSD.Min(), ps.PSD.Max())
	case ps.Frequencies == nil:
		err = fmt.Errorf("psd source has no frequency policy")
	case ps.Direction == nil:
		err = fmt.Errorf("psd source has no direction policy")
	}
	return
}

/*
Waves synthesizes the spectrum:
 1. place NumWaves center frequencies in [MinFreq, MaxFreq], sorted ascending
 2. compute the power in the bin of each frequency
 3. apply the transfer function, if any
 4. amplitude = sqrt(2 P) * ScaleFactor, a cosine of amplitude V carries power V²/2
 5. draw phases from the phase generator and directions from the direction policy
*/
func (ps PSDSource) Waves(bf waves.BaseFlow) (ws []waves.Wave, err error) {
	var (
		freqs, powers, phases []float64
		dirs                  [][]float64
	)
	if err = ps.Validate(); err != nil {
		return
	}
	freqs = ps.Frequencies.Frequencies(ps.MinFreq, ps.MaxFreq, ps.NumWaves)
	if ps.PSD != nil {
		powers = psd.Discretize(ps.PSD, freqs, ps.Interval)
	} else {
		powers = psd.DiscretizeRiemann(ps.Callable, freqs, ps.Interval)
	}
	if ps.Transfer != nil {
		if chi := ps.Transfer.Chi(bf, ps.Branch); chi != nil {
			psd.ApplyTransfer(chi, freqs, powers)
		}
	}
	phases = Phases(ps.PhaseSeed, ps.NumWaves)
	if dirs, err = ps.Direction.Directions(ps.NumWaves, bf.Dim()); err != nil {
		return
	}
	ws = make([]waves.Wave, ps.NumWaves)
	for i := range ws {
		ws[i] = waves.Wave{
			Amplitude: math.Sqrt(2*powers[i]) * ps.ScaleFactor,
			Frequency: freqs[i],
			Phase:     phases[i],
			Branch:    ps.Branch,
			Direction: dirs[i],
		}
	}
	return
}

// Build expands every source into waves. Sources are synthesized
// concurrently, the result preserves source order.
func Build(sources []Source, bf waves.BaseFlow) (ws []waves.Wave, err error) {
	var (
		wg      sync.WaitGroup
		results = make([][]waves.Wave, len(sources))
		errs    = make([]error, len(sources))
	)
	for n := range sources {
		wg.Add(1)
		go func(n int) {
			results[n], errs[n] = sources[n].Waves(bf)
			wg.Done()
		}(n)
	}
	wg.Wait()
	for n := range sources {
		if errs[n] != nil {
			err = fmt.Errorf("source %d: %w", n+1, errs[n])
			return
		}
		ws = append(ws, results[n]...)
	}
	return
}
