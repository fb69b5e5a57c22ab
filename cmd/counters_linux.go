//go:build linux

package cmd

import (
	perf "github.com/hodgesds/perf-utils"
)

// countCycles runs f under a hardware CPU cycle counter
func countCycles(f func() error) (cycles uint64, err error) {
	var (
		pv *perf.ProfileValue
	)
	if pv, err = perf.CPUCycles(f); err != nil {
		return
	}
	cycles = pv.Value
	return
}
