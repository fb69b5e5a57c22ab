package utils

import (
	"fmt"
	"math"
	"runtime"
)

type MemUsage struct {
	Alloc, TotalAlloc, Sys uint64 // MiB
	NumGC                  uint32
}

func GetMemUsage() (mu MemUsage) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	// For info on each, see: https://golang.org/pkg/runtime/#MemStats
	bToMb := func(b uint64) uint64 {
		return b / 1024 / 1024
	}
	mu = MemUsage{bToMb(m.Alloc), bToMb(m.TotalAlloc), bToMb(m.Sys), m.NumGC}
	return
}

func (mu MemUsage) String() string {
	return fmt.Sprintf("Alloc = %v MiB TotalAlloc = %v MiB Sys = %v MiB NumGC = %v",
		mu.Alloc, mu.TotalAlloc, mu.Sys, mu.NumGC)
}

// IsFinite is false when any entry of any array is NaN or infinite
func IsFinite(A ...[]float64) bool {
	for _, v := range A {
		for _, f := range v {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return false
			}
		}
	}
	return true
}
