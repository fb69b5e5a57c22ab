/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/notargets/gojabber/acoustic_field"
	"github.com/notargets/gojabber/spectrum"
	"github.com/notargets/gojabber/types"
	"github.com/notargets/gojabber/utils"
	"github.com/notargets/gojabber/waves"
)

type ProfileModel struct {
	Dim, NumPoints, NumWaves, Steps int
	Seed                            uint64
	ProfileDir                      string
	Memory                          bool
}

// ProfileResult is the timing of repeated Compute calls for one kernel
type ProfileResult struct {
	Kernel         types.Kernel
	ParallelDegree int
	PerCompute     time.Duration
	Cycles         uint64 // Zero when hardware counters are unavailable
}

// ProfileCmd represents the profile command
var ProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Time the field kernels on a random point cloud",
	Long: `Builds a random point cloud and wave set, then times repeated Compute calls
with each kernel. Optionally writes a CPU or memory profile of the whole run`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
			m   = &ProfileModel{}
		)
		m.Dim, _ = cmd.Flags().GetInt("dim")
		m.NumPoints, _ = cmd.Flags().GetInt("points")
		m.NumWaves, _ = cmd.Flags().GetInt("waves")
		m.Steps, _ = cmd.Flags().GetInt("steps")
		seed, _ := cmd.Flags().GetInt("seed")
		m.Seed = uint64(seed)
		m.ProfileDir, _ = cmd.Flags().GetString("profileDir")
		m.Memory, _ = cmd.Flags().GetBool("memory")
		logger, err := newLogger(viper.GetBool("verbose"))
		exitOnError(nil, err)
		defer logger.Sync()
		if len(m.ProfileDir) != 0 {
			mode := profile.CPUProfile
			if m.Memory {
				mode = profile.MemProfile
			}
			defer profile.Start(mode, profile.ProfilePath(m.ProfileDir), profile.NoShutdownHook).Stop()
		}
		results, err := Profile(m, procLimit(0), logger)
		exitOnError(logger, err)
		for _, r := range results {
			fmt.Printf("%-10s NP=%-3d %12v per Compute %14d cycles\n",
				r.Kernel.String(), r.ParallelDegree, r.PerCompute, r.Cycles)
		}
	},
}

func init() {
	rootCmd.AddCommand(ProfileCmd)
	ProfileCmd.Flags().IntP("dim", "d", 3, "dimension of the point cloud")
	ProfileCmd.Flags().IntP("points", "N", 10000, "number of points")
	ProfileCmd.Flags().IntP("waves", "W", 200, "number of waves")
	ProfileCmd.Flags().IntP("steps", "s", 20, "Compute calls per kernel")
	ProfileCmd.Flags().Int("seed", 1, "random seed for the cloud and waves")
	ProfileCmd.Flags().String("profileDir", "", "write a pprof profile to this directory")
	ProfileCmd.Flags().Bool("memory", false, "memory instead of CPU profile")
}

// RandomProblem builds a cloud in [-1, 1]^dim and log spaced waves from 100 Hz to 10 kHz
func RandomProblem(m *ProfileModel) (bf waves.BaseFlow, coords []float64, ws []waves.Wave, err error) {
	var (
		cloud = distuv.Uniform{Min: -1, Max: 1, Src: rand.NewPCG(m.Seed, m.Seed+1)}
		dirs  [][]float64
		dp    spectrum.DirectionPolicy
	)
	if m.Dim < 1 || m.Dim > 3 {
		err = fmt.Errorf("dimension must be 1, 2 or 3, have %d", m.Dim)
		return
	}
	bf = waves.BaseFlow{Rho: 1.225, P: 101325, U: make([]float64, m.Dim), Gamma: 1.4}
	bf.U[0] = 0.3 * bf.SoundSpeed()
	coords = make([]float64, m.Dim*m.NumPoints)
	for i := range coords {
		coords[i] = cloud.Rand()
	}
	if m.Dim == 1 {
		dp = spectrum.Constant{Vector: []float64{1}}
	} else {
		dp = spectrum.RandomXYAngle{MinAngle: -180, MaxAngle: 180, Seed: m.Seed + 2}
	}
	if dirs, err = dp.Directions(m.NumWaves, m.Dim); err != nil {
		return
	}
	var (
		freqs  = spectrum.RandomLog{Seed: m.Seed + 3}.Frequencies(100, 1.e4, m.NumWaves)
		phases = spectrum.Phases(m.Seed+4, m.NumWaves)
	)
	ws = make([]waves.Wave, m.NumWaves)
	for w := range ws {
		branch := types.Fast
		if w%2 == 1 {
			branch = types.Slow
		}
		ws[w] = waves.Wave{Amplitude: 1, Frequency: freqs[w], Phase: phases[w], Branch: branch, Direction: dirs[w]}
	}
	return
}

func Profile(m *ProfileModel, procLimit int, logger *zap.Logger) (results []ProfileResult, err error) {
	var (
		bf     waves.BaseFlow
		coords []float64
		ws     []waves.Wave
	)
	if m.Steps < 1 {
		err = fmt.Errorf("need at least one step, have %d", m.Steps)
		return
	}
	if bf, coords, ws, err = RandomProblem(m); err != nil {
		return
	}
	for _, kernel := range []types.Kernel{types.GridPoint, types.WaveInner} {
		var (
			af *acoustic_field.AcousticField
			r  = ProfileResult{Kernel: kernel}
		)
		if af, err = acoustic_field.NewAcousticField(m.Dim, coords, bf, kernel, procLimit); err != nil {
			return
		}
		if err = af.AddWaves(ws); err != nil {
			return
		}
		if err = af.Finalize(); err != nil {
			return
		}
		r.ParallelDegree = af.ParallelDegree()
		steps := func() (err error) {
			for n := 0; n < m.Steps; n++ {
				if err = af.Compute(float64(n) * 1.e-5); err != nil {
					return
				}
			}
			return
		}
		start := time.Now()
		if r.Cycles, err = countCycles(steps); err != nil {
			logger.Warn("hardware counters unavailable", zap.Error(err))
			start = time.Now()
			if err = steps(); err != nil {
				return
			}
		}
		r.PerCompute = time.Since(start) / time.Duration(m.Steps)
		logger.Info("profiled kernel",
			zap.Stringer("kernel", kernel),
			zap.Int("dim", m.Dim),
			zap.Int("points", m.NumPoints),
			zap.Int("waves", m.NumWaves),
			zap.Int("parallelDegree", r.ParallelDegree),
			zap.Duration("perCompute", r.PerCompute),
			zap.Uint64("cycles", r.Cycles),
			zap.Stringer("memory", utils.GetMemUsage()))
		results = append(results, r)
	}
	return
}
