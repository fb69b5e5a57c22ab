package psd

import (
	"github.com/notargets/gojabber/types"
	"github.com/notargets/gojabber/utils"
)

// LowFrequencyLimitTF is the analytic low frequency limit of the power
// transfer function χ across a normal shock, from Chaudhry and Candler (2017).
// mach is the freestream Mach number.
func LowFrequencyLimitTF(mach, gamma float64, branch types.Branch) (chi float64) {
	var (
		s     = branch.Sign()
		num   = mach*mach + s*2*mach - s/mach
		denom = gamma*mach*mach - 0.5*(gamma-1)
	)
	chi = utils.POW(num/denom, 2)
	return
}

// ApplyTransfer scales each power by χ(f)
func ApplyTransfer(chi func(f float64) float64, freqs, powers []float64) {
	for i, f := range freqs {
		powers[i] *= chi(f)
	}
}
