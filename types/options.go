package types

import (
	"fmt"
	"strings"
)

// Branch selects the root of the acoustic dispersion relation a wave follows
type Branch uint8

const (
	Fast Branch = iota
	Slow
)

var BranchNameMap = map[string]Branch{
	"f":    Fast,
	"fast": Fast,
	"s":    Slow,
	"slow": Slow,
}

func (b Branch) String() string {
	return [...]string{"Fast", "Slow"}[b]
}

// Char is the single character used by the wave interchange format
func (b Branch) Char() byte {
	if b == Slow {
		return 'S'
	}
	return 'F'
}

// Sign is -1 for the slow branch and +1 for the fast branch
func (b Branch) Sign() float64 {
	if b == Slow {
		return -1
	}
	return 1
}

func NewBranch(label string) (b Branch, err error) {
	return lookup("branch", label, BranchNameMap)
}

// Kernel selects the loop ordering of the field evaluation kernel
type Kernel uint8

const (
	GridPoint Kernel = iota // Outer loop over waves, inner loop over grid points
	WaveInner               // Outer loop over grid points, inner loop over waves
)

var KernelNameMap = map[string]Kernel{
	"gridpoint": GridPoint,
	"wave":      WaveInner,
}

func (k Kernel) String() string {
	return [...]string{"GridPoint", "Wave"}[k]
}

func NewKernel(label string) (k Kernel, err error) {
	return lookup("kernel", label, KernelNameMap)
}

// IntervalMethod selects how the frequency bin around a center frequency is bounded
type IntervalMethod uint8

const (
	Midpoint IntervalMethod = iota
	MidpointLog10
)

var IntervalNameMap = map[string]IntervalMethod{
	"midpoint":      Midpoint,
	"midpointlog":   MidpointLog10,
	"midpointlog10": MidpointLog10,
}

func (im IntervalMethod) String() string {
	return [...]string{"Midpoint", "MidpointLog"}[im]
}

func NewIntervalMethod(label string) (im IntervalMethod, err error) {
	return lookup("interval method", label, IntervalNameMap)
}

// DiscMethod selects how center frequencies are placed in a discretization range
type DiscMethod uint8

const (
	Uniform DiscMethod = iota
	UniformLog
	Random
	RandomLog
)

var DiscMethodNameMap = map[string]DiscMethod{
	"uniform":    Uniform,
	"uniformlog": UniformLog,
	"random":     Random,
	"randomlog":  RandomLog,
}

func (dm DiscMethod) String() string {
	return [...]string{"Uniform", "UniformLog", "Random", "RandomLog"}[dm]
}

func NewDiscMethod(label string) (dm DiscMethod, err error) {
	return lookup("discretization method", label, DiscMethodNameMap)
}

// DirectionMethod selects how wave directions are assigned within a spectrum
type DirectionMethod uint8

const (
	ConstantDirection DirectionMethod = iota
	RandomXYAngle
)

var DirectionNameMap = map[string]DirectionMethod{
	"constant":      ConstantDirection,
	"randomxyangle": RandomXYAngle,
}

func (dm DirectionMethod) String() string {
	return [...]string{"Constant", "RandomXYAngle"}[dm]
}

func NewDirectionMethod(label string) (dm DirectionMethod, err error) {
	return lookup("direction method", label, DirectionNameMap)
}

// FunctionType selects the interpolation law of a piecewise function
type FunctionType uint8

const (
	PiecewiseLinear FunctionType = iota
	PiecewiseLogLog
)

var FunctionNameMap = map[string]FunctionType{
	"piecewiselinear": PiecewiseLinear,
	"piecewiseloglog": PiecewiseLogLog,
}

func (ft FunctionType) String() string {
	return [...]string{"PiecewiseLinear", "PiecewiseLogLog"}[ft]
}

func NewFunctionType(label string) (ft FunctionType, err error) {
	return lookup("function type", label, FunctionNameMap)
}

// InputXY selects where tabulated x,y data comes from
type InputXY uint8

const (
	Here InputXY = iota
	FromCSV
)

var InputXYNameMap = map[string]InputXY{
	"here":    Here,
	"fromcsv": FromCSV,
}

func (ix InputXY) String() string {
	return [...]string{"Here", "FromCSV"}[ix]
}

func NewInputXY(label string) (ix InputXY, err error) {
	return lookup("xy input", label, InputXYNameMap)
}

// TransferFunction selects the post-processing applied to discretized powers
type TransferFunction uint8

const (
	NoTransfer TransferFunction = iota
	LowFrequencyLimit
	InputTransfer
)

var TransferNameMap = map[string]TransferFunction{
	"none":              NoTransfer,
	"lowfrequencylimit": LowFrequencyLimit,
	"input":             InputTransfer,
}

func (tf TransferFunction) String() string {
	return [...]string{"None", "LowFrequencyLimit", "Input"}[tf]
}

func NewTransferFunction(label string) (tf TransferFunction, err error) {
	return lookup("transfer function", label, TransferNameMap)
}

// SourceType enumerates the closed set of acoustic source kinds
type SourceType uint8

const (
	SingleWave SourceType = iota
	WaveSpectrum
	PSD
	WaveCSV
)

var SourceNameMap = map[string]SourceType{
	"singlewave":   SingleWave,
	"wavespectrum": WaveSpectrum,
	"psd":          PSD,
	"wavecsv":      WaveCSV,
}

func (st SourceType) String() string {
	return [...]string{"SingleWave", "WaveSpectrum", "PSD", "WaveCSV"}[st]
}

func NewSourceType(label string) (st SourceType, err error) {
	return lookup("source type", label, SourceNameMap)
}

func lookup[T any](kind, label string, names map[string]T) (val T, err error) {
	var (
		ok bool
	)
	if val, ok = names[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown %s: \"%s\"", kind, label)
	}
	return
}
