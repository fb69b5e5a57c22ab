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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/notargets/gojabber/InputParameters"
	"github.com/notargets/gojabber/psd"
	"github.com/notargets/gojabber/waves"
)

type PSDModel struct {
	ICFile  string
	Point   []float64
	Samples int
	Dt      float64 // Overrides Computation.dt when positive
}

// PSDReport compares the power carried by the synthesized waves with a
// periodogram of the pressure perturbation sampled at one point
type PSDReport struct {
	Waves          []waves.Wave
	DiscretePower  float64 // Sum of A^2/2
	SignalPower    float64 // Mean square of the sampled signal
	EstimatedPower float64 // Integrated periodogram
	Freqs, Density []float64
}

// PSDCmd represents the psd command
var PSDCmd = &cobra.Command{
	Use:   "psd",
	Short: "Check the power of a synthesized spectrum against a spectral estimate",
	Long: `Synthesizes the waves of the input file, samples the pressure perturbation
at one point over time and compares its periodogram with the discrete wave power`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
			m   = &PSDModel{}
		)
		m.ICFile, _ = cmd.Flags().GetString("inputConditionsFile")
		m.Point, _ = cmd.Flags().GetFloat64Slice("point")
		m.Samples, _ = cmd.Flags().GetInt("samples")
		m.Dt, _ = cmd.Flags().GetFloat64("dt")
		logger, err := newLogger(viper.GetBool("verbose"))
		exitOnError(nil, err)
		defer logger.Sync()
		ip, err := processInput(m.ICFile)
		exitOnError(logger, err)
		rep, err := SpectralCheck(m, ip)
		exitOnError(logger, err)
		logger.Info("spectral check",
			zap.Int("waves", len(rep.Waves)),
			zap.Int("samples", m.Samples),
			zap.Float64("discretePower", rep.DiscretePower),
			zap.Float64("estimatedPower", rep.EstimatedPower))
		rep.Print(viper.GetBool("verbose"))
	},
}

func init() {
	rootCmd.AddCommand(PSDCmd)
	PSDCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters")
	PSDCmd.Flags().Float64SliceP("point", "x", nil, "probe point, defaults to the origin")
	PSDCmd.Flags().IntP("samples", "n", 4096, "number of time samples")
	PSDCmd.Flags().Float64P("dt", "t", 0, "sample interval, defaults to Computation.dt")
}

func SpectralCheck(m *PSDModel, ip *InputParameters.InputParameters) (rep PSDReport, err error) {
	var (
		dim   = ip.Flow().Dim()
		point = make([]float64, dim)
		dt    = ip.Computation.Dt
	)
	if len(m.Point) > dim {
		err = fmt.Errorf("%w: probe point has %d components, dimension is %d",
			waves.ErrLengthMismatch, len(m.Point), dim)
		return
	}
	copy(point, m.Point)
	if m.Dt > 0 {
		dt = m.Dt
	}
	ws, err := Synthesize(ip)
	if err != nil {
		return
	}
	af, err := NewField(ip, point, ws)
	if err != nil {
		return
	}
	rep.Waves = af.Waves()
	for _, w := range rep.Waves {
		rep.DiscretePower += 0.5 * w.Amplitude * w.Amplitude
	}
	var (
		bf     = af.BaseFlow()
		signal = make([]float64, m.Samples)
		cSq    = bf.SoundSpeed() * bf.SoundSpeed()
	)
	for n := range signal {
		if err = af.Compute(ip.Computation.T0 + float64(n)*dt); err != nil {
			return
		}
		// p' = c^2 rho'
		signal[n] = cSq * (af.Density()[0] - bf.Rho)
		rep.SignalPower += signal[n] * signal[n]
	}
	if m.Samples > 0 {
		rep.SignalPower /= float64(m.Samples)
	}
	if rep.Freqs, rep.Density, err = psd.Estimate(signal, dt); err != nil {
		return
	}
	rep.EstimatedPower = psd.TotalPower(rep.Freqs, rep.Density)
	return
}

func (rep PSDReport) Print(listWaves bool) {
	if listWaves {
		for i, w := range rep.Waves {
			fmt.Printf("Waves[%d] = %s\n", i, w.String())
		}
	}
	fmt.Printf("[%d]\t\t\t= Waves\n", len(rep.Waves))
	fmt.Printf("%12.6g\t\t= Discrete Power\n", rep.DiscretePower)
	fmt.Printf("%12.6g\t\t= Signal Mean Square\n", rep.SignalPower)
	fmt.Printf("%12.6g\t\t= Estimated Power\n", rep.EstimatedPower)
}
