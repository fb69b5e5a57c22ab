package InputParameters

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file. ghodss/yaml converts the
// YAML to JSON before decoding, so field keys are the json tags.
type InputParameters struct {
	Title       string                `json:"Title"`
	BaseFlow    BaseFlowParameters    `json:"BaseFlow"`
	Sources     []SourceParameters    `json:"Sources"`
	Computation ComputationParameters `json:"Computation"`
	Points      PointParameters       `json:"Points"`
	Output      OutputParameters      `json:"Output"`
}

type BaseFlowParameters struct {
	Rho   float64   `json:"rho"`
	P     float64   `json:"p"`
	U     []float64 `json:"U"`
	Gamma float64   `json:"gamma"`
}

type ComputationParameters struct {
	T0        float64 `json:"t0"`
	Dt        float64 `json:"dt"`
	NumSteps  int     `json:"NumSteps"`
	Kernel    string  `json:"Kernel"`    // GridPoint or Wave
	ProcLimit int     `json:"ProcLimit"` // 0 uses every CPU
}

// PointParameters gives the point cloud either as a CSV file with an x,y,z
// header or as a structured grid of NumPoints[d] points spanning [Min[d], Max[d]]
type PointParameters struct {
	File string    `json:"File"`
	Min  []float64 `json:"Min"`
	Max  []float64 `json:"Max"`
	N    []int     `json:"NumPoints"`
}

type OutputParameters struct {
	File      string `json:"File"`      // Field snapshots
	WavesFile string `json:"WavesFile"` // Synthesized wave list
}

func ReadConfig(file string) (ip *InputParameters, err error) {
	var (
		data []byte
	)
	if data, err = os.ReadFile(file); err != nil {
		err = fmt.Errorf("unable to read input parameters: %w", err)
		return
	}
	ip = &InputParameters{}
	if err = ip.Parse(data); err != nil {
		err = fmt.Errorf("%s: %w", file, err)
		ip = nil
		return
	}
	ip.ResolvePaths(filepath.Dir(file))
	return
}

func (ip *InputParameters) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, ip); err != nil {
		return
	}
	if ip.Computation.NumSteps < 1 {
		ip.Computation.NumSteps = 1
	}
	if len(ip.Computation.Kernel) == 0 {
		ip.Computation.Kernel = "GridPoint"
	}
	return
}

// ResolvePaths makes every relative input file relative to dir. Output paths are left alone.
func (ip *InputParameters) ResolvePaths(dir string) {
	resolve := func(f *string) {
		if len(*f) != 0 && !filepath.IsAbs(*f) {
			*f = filepath.Join(dir, *f)
		}
	}
	resolve(&ip.Points.File)
	for i := range ip.Sources {
		sp := &ip.Sources[i]
		resolve(&sp.File)
		if sp.InputPSD != nil {
			resolve(&sp.InputPSD.Data.File)
		}
		if sp.TransferFunction != nil && sp.TransferFunction.InputTF != nil {
			resolve(&sp.TransferFunction.InputTF.Data.File)
		}
	}
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("%8.5f\t\t= rho\n", ip.BaseFlow.Rho)
	fmt.Printf("%8.5f\t\t= p\n", ip.BaseFlow.P)
	fmt.Printf("%v\t\t= U\n", ip.BaseFlow.U)
	fmt.Printf("%8.5f\t\t= gamma\n", ip.BaseFlow.Gamma)
	fmt.Printf("%8.5g\t\t= t0\n", ip.Computation.T0)
	fmt.Printf("%8.5g\t\t= dt\n", ip.Computation.Dt)
	fmt.Printf("[%d]\t\t\t= NumSteps\n", ip.Computation.NumSteps)
	fmt.Printf("[%s]\t\t= Kernel\n", ip.Computation.Kernel)
	fmt.Printf("[%d]\t\t\t= ProcLimit\n", ip.Computation.ProcLimit)
	for i, sp := range ip.Sources {
		fmt.Printf("Sources[%d] = %s\n", i, sp.String())
	}
}
