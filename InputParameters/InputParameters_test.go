package InputParameters

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gojabber/spectrum"
	"github.com/notargets/gojabber/types"
)

var testConfig = `
########################################
Title: "Acoustic test case"
BaseFlow:
  rho: 0.1792
  p: 2000.
  U: [1000., 0.]
  gamma: 1.4
Computation:
  t0: 0.
  dt: 1.e-5
  NumSteps: 4
  Kernel: Wave
  ProcLimit: 2
Points:
  Min: [0., 0.]
  Max: [1., 2.]
  NumPoints: [2, 3]
Sources:
  - Type: SingleWave
    Amplitude: 10.
    Frequency: 1000.
    Phase: 60.
    DirVector: [1., 0.]
    Speed: S
  - Type: WaveSpectrum
    Amplitudes: [1., 2.]
    Frequencies: [100., 200.]
    Phases: [0., 90.]
    DirVectors: [[1., 0.], [0., 1.]]
    Speeds: [F, S]
  - Type: PSD
    InputPSD:
      Type: PiecewiseLogLog
      Data:
        Type: FromCSV
        File: psd.csv
    ScaleFactor: 2.
    PhaseSeed: 7
    Speed: S
    Discretization:
      Min: 1.e3
      Max: 5.e4
      NumWaves: 16
      Interval: MidpointLog
      Method:
        Type: RandomLog
        Seed: 3
    Direction:
      Type: RandomXYAngle
      MinAngle: -10.
      MaxAngle: 10.
      Seed: 5
    TransferFunction:
      Type: LowFrequencyLimit
  - Type: PSD
    InputPSD:
      Type: PiecewiseLinear
      Data:
        Type: Here
        XData: [1.e3, 5.e4]
        YData: [1.e-6, 1.e-7]
    Speed: F
    Discretization:
      Min: 1.e3
      Max: 5.e4
      NumWaves: 8
      Method:
        Type: Uniform
    Direction:
      Type: Constant
      Vector: [1., 1.]
    TransferFunction:
      Type: Input
      InputTF:
        Type: PiecewiseLinear
        Data:
          Type: Here
          XData: [1.e3, 5.e4]
          YData: [0.5, 0.5]
  - Type: WaveCSV
    File: waves.csv
########################################
`

func writeConfig(t *testing.T, config string) (file string) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "psd.csv"),
		[]byte("1e3,1e-6\n1e4,1e-7\n5e4,5e-7\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "waves.csv"),
		[]byte("1,500,0.25,F,0,2\n2,600,0.5,S,1,0\n"), 0644))
	file = filepath.Join(dir, "input.yaml")
	require.NoError(t, os.WriteFile(file, []byte(config), 0644))
	return
}

func TestReadConfig(t *testing.T) {
	ip, err := ReadConfig(writeConfig(t, testConfig))
	require.NoError(t, err)
	{ // Test scalar parameters
		assert.Equal(t, "Acoustic test case", ip.Title)
		bf := ip.Flow()
		require.NoError(t, bf.Validate())
		assert.Equal(t, []float64{1000, 0}, bf.U)
		assert.Equal(t, 4, ip.Computation.NumSteps)
		assert.Equal(t, 2, ip.Computation.ProcLimit)
		k, err := ip.Kernel()
		require.NoError(t, err)
		assert.Equal(t, types.WaveInner, k)
		assert.True(t, filepath.IsAbs(ip.Sources[2].InputPSD.Data.File))
	}
	{ // Test the point grid, x varies fastest
		coords, err := ip.Points.Coords(2)
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 0, 1, 0, 0, 1, 1, 1, 0, 2, 1, 2}, coords)
		_, err = ip.Points.Coords(3)
		assert.Error(t, err)
	}
	sources, err := ip.ToSources()
	require.NoError(t, err)
	require.Equal(t, 5, len(sources))
	{ // Each source converts to its variant
		sw, ok := sources[0].(spectrum.SingleWave)
		require.True(t, ok)
		assert.Equal(t, types.Slow, sw.Branch)
		assert.Equal(t, 60., sw.Phase)
		sp, ok := sources[1].(spectrum.WaveSpectrum)
		require.True(t, ok)
		assert.Equal(t, []types.Branch{types.Fast, types.Slow}, sp.Branches)
		ps, ok := sources[2].(spectrum.PSDSource)
		require.True(t, ok)
		assert.Equal(t, 2., ps.ScaleFactor)
		assert.Equal(t, types.MidpointLog10, ps.Interval)
		assert.Equal(t, spectrum.RandomLog{Seed: 3}, ps.Frequencies)
		assert.Equal(t, spectrum.RandomXYAngle{MinAngle: -10, MaxAngle: 10, Seed: 5}, ps.Direction)
		assert.Equal(t, spectrum.LowFrequencyLimit{}, ps.Transfer)
		assert.Equal(t, 1.e3, ps.PSD.Min())
		assert.Equal(t, 5.e4, ps.PSD.Max())
		ps, ok = sources[3].(spectrum.PSDSource)
		require.True(t, ok)
		assert.Equal(t, 1., ps.ScaleFactor)
		assert.Equal(t, types.Midpoint, ps.Interval)
		assert.Equal(t, spectrum.Uniform{}, ps.Frequencies)
		_, ok = sources[4].(spectrum.WaveCSV)
		assert.True(t, ok)
	}
	{ // Build the full wave list
		ws, err := spectrum.Build(sources, ip.Flow())
		require.NoError(t, err)
		require.Equal(t, 1+2+16+8+2, len(ws))
		assert.InDelta(t, math.Pi/3, ws[0].Phase, 1.e-15)
		assert.InDelta(t, math.Pi/2, ws[2].Phase, 1.e-15)
		// Input transfer of 0.5 on the last PSD
		for _, w := range ws[19:27] {
			assert.Equal(t, types.Fast, w.Branch)
			assert.InDeltaSlice(t, []float64{math.Sqrt2 / 2, math.Sqrt2 / 2}, w.Direction, 1.e-15)
		}
		assert.Equal(t, []float64{0, 1}, ws[27].Direction)
		assert.Equal(t, types.Slow, ws[28].Branch)
	}
}

func TestConfigErrors(t *testing.T) {
	{ // Unknown enumerators name the offending token
		for _, pair := range [][2]string{
			{"Speed: S\n", "Speed: Q\n"},
			{"Type: RandomLog\n", "Type: Sobol\n"},
			{"Type: RandomXYAngle\n", "Type: Spiral\n"},
			{"Type: LowFrequencyLimit\n", "Type: Sideways\n"},
			{"Type: PiecewiseLogLog\n", "Type: Cubic\n"},
			{"Type: WaveCSV\n", "Type: Mystery\n"},
			{"Interval: MidpointLog\n", "Interval: Trapezoid\n"},
		} {
			ip, err := ReadConfig(writeConfig(t, strings.Replace(testConfig, pair[0], pair[1], 1)))
			require.NoError(t, err)
			_, err = ip.ToSources()
			require.Error(t, err, pair[1])
			token := strings.TrimSpace(strings.SplitN(pair[1], ":", 2)[1])
			assert.Contains(t, err.Error(), token)
		}
	}
	{ // Missing external files fail at conversion or synthesis
		ip, err := ReadConfig(writeConfig(t, strings.Replace(testConfig, "File: psd.csv", "File: nope.csv", 1)))
		require.NoError(t, err)
		_, err = ip.ToSources()
		assert.Error(t, err)
		ip, err = ReadConfig(writeConfig(t, strings.Replace(testConfig, "File: waves.csv", "File: nope.csv", 1)))
		require.NoError(t, err)
		sources, err := ip.ToSources()
		require.NoError(t, err)
		_, err = spectrum.Build(sources, ip.Flow())
		assert.Error(t, err)
	}
	{ // Bad kernel and unreadable input
		ip := &InputParameters{}
		require.NoError(t, ip.Parse([]byte("Computation:\n  Kernel: Diagonal\n")))
		_, err := ip.Kernel()
		assert.Error(t, err)
		assert.Equal(t, 1, ip.Computation.NumSteps)
		_, err = ReadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
		assert.Error(t, ip.Parse([]byte("BaseFlow: [1, 2")))
	}
}

func TestCountAndDataKeys(t *testing.T) {
	var (
		ip   = &InputParameters{}
		yaml = `
Points:
  Min: [0.]
  Max: [1.]
  NumPoints: [11]
Sources:
  - Type: PSD
    InputPSD:
      Type: PiecewiseLinear
      Data:
        Type: Here
        XData: [1., 10.]
        YData: [2., 3.]
    Discretization:
      Min: 1.
      Max: 10.
      NumWaves: 5
`
	)
	require.NoError(t, ip.Parse([]byte(yaml)))
	assert.Equal(t, []int{11}, ip.Points.N)
	require.Equal(t, 1, len(ip.Sources))
	sp := ip.Sources[0]
	assert.Equal(t, 5, sp.Discretization.N)
	require.NotNil(t, sp.InputPSD)
	assert.Equal(t, []float64{1, 10}, sp.InputPSD.Data.X)
	assert.Equal(t, []float64{2, 3}, sp.InputPSD.Data.Y)
	coords, err := ip.Points.Coords(1)
	require.NoError(t, err)
	assert.Equal(t, 11, len(coords))
	assert.InDelta(t, 0.5, coords[5], 1.e-15)
	{ // Single letter N and Y are YAML booleans and never reach the parameters
		ip = &InputParameters{}
		require.NoError(t, ip.Parse([]byte("Points:\n  N: [11]\n")))
		assert.Empty(t, ip.Points.N)
	}
}
