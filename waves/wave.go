package waves

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gojabber/types"
)

var (
	ErrZeroDirection        = errors.New("wave direction has zero length")
	ErrDegenerateDispersion = errors.New("propagation speed along the wave direction is zero")
	ErrLengthMismatch       = errors.New("parallel arrays have mismatched lengths")
)

// Wave is a single planar acoustic wave. Amplitude is the pressure amplitude,
// Frequency is in Hz and Phase in radians.
type Wave struct {
	Amplitude float64
	Frequency float64
	Phase     float64
	Branch    types.Branch
	Direction []float64
}

func (w Wave) String() string {
	return fmt.Sprintf("p'=%g f=%g phi=%g %s dir=%v", w.Amplitude, w.Frequency, w.Phase, w.Branch, w.Direction)
}

// BaseFlow is the uniform flow the waves perturb. The length of U sets the
// spatial dimension.
type BaseFlow struct {
	Rho, P float64
	U      []float64
	Gamma  float64
}

func (bf BaseFlow) Dim() int { return len(bf.U) }

func (bf BaseFlow) SoundSpeed() float64 {
	return math.Sqrt(bf.Gamma * bf.P / bf.Rho)
}

func (bf BaseFlow) Mach() float64 {
	return floats.Norm(bf.U, 2) / bf.SoundSpeed()
}

func (bf BaseFlow) Validate() (err error) {
	switch {
	case bf.Dim() < 1 || bf.Dim() > 3:
		err = fmt.Errorf("base flow velocity must have 1 to 3 components, have %d", bf.Dim())
	case !(bf.Rho > 0):
		err = fmt.Errorf("base flow density must be positive, have %v", bf.Rho)
	case !(bf.P > 0):
		err = fmt.Errorf("base flow pressure must be positive, have %v", bf.P)
	case !(bf.Gamma > 1):
		err = fmt.Errorf("ratio of specific heats must exceed 1, have %v", bf.Gamma)
	}
	return
}

// Normalize returns a unit length copy of v
func Normalize(v []float64) (u []float64, err error) {
	var (
		n = floats.Norm(v, 2)
	)
	if n == 0 || math.IsNaN(n) {
		err = ErrZeroDirection
		return
	}
	u = make([]float64, len(v))
	floats.ScaleTo(u, 1/n, v)
	return
}

// Project sizes a direction to dim components. Missing components are zero,
// extra components must be zero.
func Project(dir []float64, dim int) (p []float64, err error) {
	p = make([]float64, dim)
	for d, v := range dir {
		if d < dim {
			p[d] = v
		} else if v != 0 {
			err = fmt.Errorf("direction %v has a nonzero component beyond dimension %d", dir, dim)
			return
		}
	}
	return
}

/*
Resolve solves the local dispersion relation of a wave in the base flow:

	k = ω / (U·k̂ ± c)

with -c for the slow branch and +c for the fast branch. modKHat is the unit
direction k̂ for the fast branch and -k̂ for the slow branch, which is the
direction of the acoustic velocity perturbation for a positive amplitude.
*/
func Resolve(w Wave, bf BaseFlow) (omega, k float64, modKHat []float64, err error) {
	var (
		dim   = bf.Dim()
		c     = bf.SoundSpeed()
		s     = w.Branch.Sign()
		kHat  []float64
		denom float64
	)
	if !(w.Frequency > 0) {
		err = fmt.Errorf("wave frequency must be positive, have %v", w.Frequency)
		return
	}
	if kHat, err = Project(w.Direction, dim); err != nil {
		return
	}
	if kHat, err = Normalize(kHat); err != nil {
		return
	}
	denom = floats.Dot(bf.U, kHat) + s*c
	if math.Abs(denom) <= 1.e-12*c {
		err = fmt.Errorf("%w: %s", ErrDegenerateDispersion, w)
		return
	}
	omega = 2 * math.Pi * w.Frequency
	k = omega / denom
	modKHat = kHat
	floats.Scale(s, modKHat)
	return
}
