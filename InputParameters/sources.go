package InputParameters

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gojabber/interpolant"
	"github.com/notargets/gojabber/psd"
	"github.com/notargets/gojabber/readfiles"
	"github.com/notargets/gojabber/spectrum"
	"github.com/notargets/gojabber/types"
	"github.com/notargets/gojabber/waves"
)

// SourceParameters is one entry of Sources. Type selects which of the
// grouped keys apply; phases are in degrees.
type SourceParameters struct {
	Type string `json:"Type"` // SingleWave, WaveSpectrum, PSD or WaveCSV

	// SingleWave
	Amplitude float64   `json:"Amplitude"`
	Frequency float64   `json:"Frequency"`
	Phase     float64   `json:"Phase"`
	DirVector []float64 `json:"DirVector"`
	Speed     string    `json:"Speed"` // S or F, also used by PSD

	// WaveSpectrum
	Amplitudes  []float64   `json:"Amplitudes"`
	Frequencies []float64   `json:"Frequencies"`
	Phases      []float64   `json:"Phases"`
	DirVectors  [][]float64 `json:"DirVectors"`
	Speeds      []string    `json:"Speeds"`

	// WaveCSV
	File string `json:"File"`

	// PSD
	InputPSD         *FunctionParameters      `json:"InputPSD"`
	ScaleFactor      *float64                 `json:"ScaleFactor"` // Defaults to 1
	PhaseSeed        uint64                   `json:"PhaseSeed"`
	Discretization   DiscretizationParameters `json:"Discretization"`
	Direction        DirectionParameters      `json:"Direction"`
	TransferFunction *TransferParameters      `json:"TransferFunction"`
}

// FunctionParameters is a piecewise function through tabulated data
type FunctionParameters struct {
	Type string       `json:"Type"` // PiecewiseLinear or PiecewiseLogLog
	Data XYParameters `json:"Data"`
}

type XYParameters struct {
	Type string    `json:"Type"` // Here or FromCSV
	X    []float64 `json:"XData"`
	Y    []float64 `json:"YData"`
	File string    `json:"File"`
}

type DiscretizationParameters struct {
	Min      float64          `json:"Min"`
	Max      float64          `json:"Max"`
	N        int              `json:"NumWaves"`
	Interval string           `json:"Interval"` // Midpoint or MidpointLog
	Method   MethodParameters `json:"Method"`
}

type MethodParameters struct {
	Type string `json:"Type"` // Uniform, UniformLog, Random or RandomLog
	Seed uint64 `json:"Seed"`
}

type DirectionParameters struct {
	Type     string    `json:"Type"` // Constant or RandomXYAngle
	Vector   []float64 `json:"Vector"`
	MinAngle float64   `json:"MinAngle"` // Degrees
	MaxAngle float64   `json:"MaxAngle"`
	Seed     uint64    `json:"Seed"`
}

type TransferParameters struct {
	Type    string              `json:"Type"` // None, LowFrequencyLimit or Input
	InputTF *FunctionParameters `json:"InputTF"`
}

func (sp SourceParameters) String() (s string) {
	st, err := types.NewSourceType(sp.Type)
	if err != nil {
		return fmt.Sprintf("%s{}", sp.Type)
	}
	switch st {
	case types.SingleWave:
		s = fmt.Sprintf("SingleWave{amp=%g freq=%g phase=%g dir=%v speed=%s}",
			sp.Amplitude, sp.Frequency, sp.Phase, sp.DirVector, sp.Speed)
	case types.WaveSpectrum:
		s = fmt.Sprintf("WaveSpectrum{%d waves}", len(sp.Amplitudes))
	case types.PSD:
		s = fmt.Sprintf("PSD{N=%d range=[%g, %g] method=%s interval=%s direction=%s speed=%s}",
			sp.Discretization.N, sp.Discretization.Min, sp.Discretization.Max,
			sp.Discretization.Method.Type, sp.Discretization.Interval, sp.Direction.Type, sp.Speed)
	case types.WaveCSV:
		s = fmt.Sprintf("WaveCSV{%s}", sp.File)
	}
	return
}

// ToSources converts every source entry, errors name the failing entry
func (ip *InputParameters) ToSources() (sources []spectrum.Source, err error) {
	sources = make([]spectrum.Source, len(ip.Sources))
	for i := range ip.Sources {
		if sources[i], err = ip.Sources[i].Source(); err != nil {
			err = fmt.Errorf("source %d (%s): %w", i+1, ip.Sources[i].Type, err)
			sources = nil
			return
		}
	}
	return
}

func (sp *SourceParameters) Source() (src spectrum.Source, err error) {
	var (
		st types.SourceType
	)
	if st, err = types.NewSourceType(sp.Type); err != nil {
		return
	}
	switch st {
	case types.SingleWave:
		var br types.Branch
		if br, err = types.NewBranch(sp.Speed); err != nil {
			return
		}
		src = spectrum.SingleWave{
			Amplitude: sp.Amplitude,
			Frequency: sp.Frequency,
			Phase:     sp.Phase,
			Branch:    br,
			Direction: sp.DirVector,
		}
	case types.WaveSpectrum:
		var (
			brs = make([]types.Branch, len(sp.Speeds))
		)
		for i, s := range sp.Speeds {
			if brs[i], err = types.NewBranch(s); err != nil {
				return
			}
		}
		src = spectrum.WaveSpectrum{
			Amplitudes:  sp.Amplitudes,
			Frequencies: sp.Frequencies,
			Phases:      sp.Phases,
			Branches:    brs,
			Directions:  sp.DirVectors,
		}
	case types.WaveCSV:
		if len(sp.File) == 0 {
			err = fmt.Errorf("wave csv source needs a File")
			return
		}
		src = spectrum.WaveCSV{File: sp.File}
	case types.PSD:
		src, err = sp.psdSource()
	}
	return
}

func (sp *SourceParameters) psdSource() (src spectrum.Source, err error) {
	var (
		ps = spectrum.PSDSource{
			ScaleFactor: 1,
			MinFreq:     sp.Discretization.Min,
			MaxFreq:     sp.Discretization.Max,
			NumWaves:    sp.Discretization.N,
			PhaseSeed:   sp.PhaseSeed,
		}
		dm types.DiscMethod
	)
	if sp.InputPSD == nil {
		err = fmt.Errorf("psd source needs an InputPSD")
		return
	}
	if ps.PSD, err = sp.InputPSD.PSD(); err != nil {
		return
	}
	if sp.ScaleFactor != nil {
		ps.ScaleFactor = *sp.ScaleFactor
	}
	if ps.Branch, err = types.NewBranch(sp.Speed); err != nil {
		return
	}
	if len(sp.Discretization.Interval) != 0 {
		if ps.Interval, err = types.NewIntervalMethod(sp.Discretization.Interval); err != nil {
			return
		}
	}
	if dm, err = types.NewDiscMethod(sp.Discretization.Method.Type); err != nil {
		return
	}
	if ps.Frequencies, err = spectrum.NewFrequencyPolicy(dm, sp.Discretization.Method.Seed); err != nil {
		return
	}
	if ps.Direction, err = sp.Direction.Policy(); err != nil {
		return
	}
	if sp.TransferFunction != nil {
		if ps.Transfer, err = sp.TransferFunction.Transfer(); err != nil {
			return
		}
	}
	if err = ps.Validate(); err != nil {
		return
	}
	src = ps
	return
}

func (dp DirectionParameters) Policy() (dir spectrum.DirectionPolicy, err error) {
	var (
		dm types.DirectionMethod
	)
	if dm, err = types.NewDirectionMethod(dp.Type); err != nil {
		return
	}
	switch dm {
	case types.ConstantDirection:
		dir = spectrum.Constant{Vector: dp.Vector}
	case types.RandomXYAngle:
		dir = spectrum.RandomXYAngle{MinAngle: dp.MinAngle, MaxAngle: dp.MaxAngle, Seed: dp.Seed}
	}
	return
}

func (tp TransferParameters) Transfer() (tr spectrum.Transfer, err error) {
	var (
		tf types.TransferFunction
	)
	if tf, err = types.NewTransferFunction(tp.Type); err != nil {
		return
	}
	switch tf {
	case types.NoTransfer:
		tr = spectrum.NoTransfer{}
	case types.LowFrequencyLimit:
		tr = spectrum.LowFrequencyLimit{}
	case types.InputTransfer:
		if tp.InputTF == nil {
			err = fmt.Errorf("input transfer function needs an InputTF")
			return
		}
		var fn interpolant.Function
		if fn, err = tp.InputTF.Function(); err != nil {
			return
		}
		tr = spectrum.InputTransfer{TF: fn}
	}
	return
}

// XY returns the tabulated data, read from file for FromCSV
func (xp XYParameters) XY() (x, y []float64, err error) {
	var (
		ix types.InputXY
	)
	if ix, err = types.NewInputXY(xp.Type); err != nil {
		return
	}
	switch ix {
	case types.Here:
		x, y = xp.X, xp.Y
	case types.FromCSV:
		x, y, err = readfiles.ReadXYFile(xp.File)
	}
	return
}

func (fp FunctionParameters) PSD() (p psd.PSD, err error) {
	var (
		ft   types.FunctionType
		x, y []float64
	)
	if ft, err = types.NewFunctionType(fp.Type); err != nil {
		return
	}
	if x, y, err = fp.Data.XY(); err != nil {
		return
	}
	p, err = psd.NewPSD(ft, x, y)
	return
}

func (fp FunctionParameters) Function() (fn interpolant.Function, err error) {
	var (
		ft   types.FunctionType
		x, y []float64
	)
	if ft, err = types.NewFunctionType(fp.Type); err != nil {
		return
	}
	if x, y, err = fp.Data.XY(); err != nil {
		return
	}
	switch ft {
	case types.PiecewiseLogLog:
		var pw *interpolant.PWLogLog
		if pw, err = interpolant.NewPWLogLog(x, y); err == nil {
			fn = pw
		}
	default:
		var pw *interpolant.PWLinear
		if pw, err = interpolant.NewPWLinear(x, y); err == nil {
			fn = pw
		}
	}
	return
}

func (ip *InputParameters) Flow() waves.BaseFlow {
	return waves.BaseFlow{
		Rho:   ip.BaseFlow.Rho,
		P:     ip.BaseFlow.P,
		U:     ip.BaseFlow.U,
		Gamma: ip.BaseFlow.Gamma,
	}
}

func (ip *InputParameters) Kernel() (types.Kernel, error) {
	return types.NewKernel(ip.Computation.Kernel)
}

// Coords returns the interleaved point cloud
func (pp PointParameters) Coords(dim int) (coords []float64, err error) {
	if len(pp.File) != 0 {
		return readfiles.ReadPointsFile(pp.File, dim)
	}
	if len(pp.Min) != dim || len(pp.Max) != dim || len(pp.N) != dim {
		err = fmt.Errorf("%w: point grid needs %d entries in each of Min, Max and NumPoints, have %d, %d, %d",
			waves.ErrLengthMismatch, dim, len(pp.Min), len(pp.Max), len(pp.N))
		return
	}
	var (
		axes = make([][]float64, dim)
		Np   = 1
	)
	for d := range axes {
		if pp.N[d] < 1 {
			err = fmt.Errorf("point grid needs at least one point along axis %d", d)
			return
		}
		axes[d] = make([]float64, pp.N[d])
		if pp.N[d] == 1 {
			axes[d][0] = pp.Min[d]
		} else {
			floats.Span(axes[d], pp.Min[d], pp.Max[d])
		}
		Np *= pp.N[d]
	}
	// x varies fastest
	coords = make([]float64, Np*dim)
	for i := 0; i < Np; i++ {
		ii := i
		for d := 0; d < dim; d++ {
			coords[i*dim+d] = axes[d][ii%pp.N[d]]
			ii /= pp.N[d]
		}
	}
	return
}
