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
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/notargets/gojabber/InputParameters"
	"github.com/notargets/gojabber/acoustic_field"
	"github.com/notargets/gojabber/readfiles"
	"github.com/notargets/gojabber/spectrum"
	"github.com/notargets/gojabber/utils"
	"github.com/notargets/gojabber/waves"
)

type RunModel struct {
	ICFile   string
	Output   string // Overrides Output.File
	WavesOut string // Overrides Output.WavesFile
}

var exampleFile = `
########################################
Title: "Single slow wave"
BaseFlow:
  rho: 0.1792
  p: 2000.
  U: [1000.]
  gamma: 1.4
Computation:
  t0: 0.
  dt: 1.e-5
  NumSteps: 10
  Kernel: GridPoint # Can be "Wave"
Points:
  Min: [0.]
  Max: [1.]
  NumPoints: [101]
Sources:
  - Type: SingleWave
    Amplitude: 10.
    Frequency: 1000.
    Phase: 60. # Degrees
    DirVector: [1.]
    Speed: S # S or F
########################################
`

// RunCmd represents the run command
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Evaluate the acoustic field at a point cloud over a series of time steps",
	Long: `Synthesizes the waves of every source in the input file, then writes a CSV
snapshot of density, momentum and energy at every point for each time step`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
			m   = &RunModel{}
		)
		m.ICFile, _ = cmd.Flags().GetString("inputConditionsFile")
		m.Output, _ = cmd.Flags().GetString("output")
		m.WavesOut, _ = cmd.Flags().GetString("waves-out")
		logger, err := newLogger(viper.GetBool("verbose"))
		exitOnError(nil, err)
		defer logger.Sync()
		ip, err := processInput(m.ICFile)
		exitOnError(logger, err)
		// Snapshots on stdout stay clean CSV
		if viper.GetBool("verbose") && (len(m.Output) != 0 || len(ip.Output.File) != 0) {
			ip.Print()
		}
		exitOnError(logger, RunField(m, ip, logger))
	},
}

func init() {
	rootCmd.AddCommand(RunCmd)
	RunCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- BaseFlow\n\t- Sources\n\t- Points")
	RunCmd.Flags().StringP("output", "o", "", "snapshot CSV file, defaults to Output.File or stdout")
	RunCmd.Flags().StringP("waves-out", "w", "", "also write the synthesized waves to this file")
}

func processInput(ICFile string) (ip *InputParameters.InputParameters, err error) {
	if len(ICFile) == 0 {
		fmt.Printf("Example File:%s\n", exampleFile)
		err = fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile)")
		return
	}
	return InputParameters.ReadConfig(ICFile)
}

// Synthesize builds and validates the wave list of every source in the input
func Synthesize(ip *InputParameters.InputParameters) (ws []waves.Wave, err error) {
	var (
		sources []spectrum.Source
		bf      = ip.Flow()
	)
	if err = bf.Validate(); err != nil {
		return
	}
	if sources, err = ip.ToSources(); err != nil {
		return
	}
	return spectrum.Build(sources, bf)
}

// NewField builds a finalized field of the waves at the points
func NewField(ip *InputParameters.InputParameters, coords []float64, ws []waves.Wave) (af *acoustic_field.AcousticField, err error) {
	var (
		bf = ip.Flow()
	)
	kernel, err := ip.Kernel()
	if err != nil {
		return
	}
	if af, err = acoustic_field.NewAcousticField(bf.Dim(), coords, bf, kernel, procLimit(ip.Computation.ProcLimit)); err != nil {
		return
	}
	if err = af.AddWaves(ws); err != nil {
		return
	}
	if err = af.Finalize(); err != nil {
		af = nil
	}
	return
}

func RunField(m *RunModel, ip *InputParameters.InputParameters, logger *zap.Logger) (err error) {
	var (
		outFile   = ip.Output.File
		wavesFile = ip.Output.WavesFile
		w         io.Writer
	)
	if len(m.Output) != 0 {
		outFile = m.Output
	}
	if len(m.WavesOut) != 0 {
		wavesFile = m.WavesOut
	}
	if len(outFile) == 0 {
		w = os.Stdout
	} else {
		var file *os.File
		if file, err = os.Create(outFile); err != nil {
			return
		}
		defer func() {
			if cerr := file.Close(); err == nil {
				err = cerr
			}
		}()
		w = file
	}
	return Simulate(ip, wavesFile, w, logger)
}

// Simulate writes every time step of the field to w, and the waves to wavesFile when set
func Simulate(ip *InputParameters.InputParameters, wavesFile string, w io.Writer, logger *zap.Logger) (err error) {
	var (
		ws     []waves.Wave
		coords []float64
		af     *acoustic_field.AcousticField
		cp     = ip.Computation
	)
	if ws, err = Synthesize(ip); err != nil {
		return
	}
	logger.Info("synthesized waves",
		zap.String("title", ip.Title),
		zap.Int("sources", len(ip.Sources)),
		zap.Int("waves", len(ws)))
	if len(wavesFile) != 0 {
		if err = waves.WriteWavesFile(wavesFile, ws); err != nil {
			return
		}
		logger.Info("wrote waves", zap.String("file", wavesFile))
	}
	if coords, err = ip.Points.Coords(ip.Flow().Dim()); err != nil {
		return
	}
	start := time.Now()
	if af, err = NewField(ip, coords, ws); err != nil {
		return
	}
	logger.Info("finalized field",
		zap.Int("points", af.NumPoints()),
		zap.Int("waves", af.NumWaves()),
		zap.Stringer("kernel", af.Kernel()),
		zap.Int("parallelDegree", af.ParallelDegree()),
		zap.Duration("elapsed", time.Since(start)))
	for n := 0; n < cp.NumSteps; n++ {
		t := cp.T0 + float64(n)*cp.Dt
		start = time.Now()
		if err = af.Compute(t); err != nil {
			return
		}
		if !utils.IsFinite(af.Density(), af.Energy()) {
			err = fmt.Errorf("non-finite field at step %d, t = %g", n, t)
			return
		}
		logger.Debug("computed step", zap.Int("step", n), zap.Float64("t", t),
			zap.Duration("elapsed", time.Since(start)))
		if err = readfiles.WriteSnapshot(w, af, n, t, n == 0); err != nil {
			return
		}
	}
	logger.Info("done", zap.Int("steps", cp.NumSteps))
	return
}
