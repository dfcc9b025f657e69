package InputParameters

import (
	"fmt"
	"math"

	"github.com/ghodss/yaml"

	"github.com/aerostudio/aerocalc/panelmethod"
)

// Parameters obtained from the YAML input file. AngleOfAttack is in degrees
// here, the way a parameter panel presents it; FlowState carries radians.
type FlowParameters struct {
	Title                string  `yaml:"Title"`
	Density              float64 `yaml:"Density"`       // kg/m^3
	Velocity             float64 `yaml:"Velocity"`      // m/s
	Temperature          float64 `yaml:"Temperature"`   // K
	Viscosity            float64 `yaml:"Viscosity"`     // Pa.s
	AngleOfAttack        float64 `yaml:"AngleOfAttack"` // degrees
	CharacteristicLength float64 `yaml:"CharacteristicLength"`
	LiftScale            float64 `yaml:"LiftScale"`
	DragScale            float64 `yaml:"DragScale"`
	ResidualTolerance    float64 `yaml:"ResidualTolerance"`
}

// Sea-level standard atmosphere defaults
const (
	DefaultDensity     = 1.225
	DefaultTemperature = 288.15
	DefaultViscosity   = 1.8e-5
)

func (fp *FlowParameters) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, fp); err != nil {
		return
	}
	if fp.Density == 0 {
		fp.Density = DefaultDensity
	}
	if fp.Temperature == 0 {
		fp.Temperature = DefaultTemperature
	}
	if fp.Viscosity == 0 {
		fp.Viscosity = DefaultViscosity
	}
	if fp.CharacteristicLength == 0 {
		fp.CharacteristicLength = 1
	}
	return
}

// FlowState converts the file values into the solver's flow description
func (fp *FlowParameters) FlowState() panelmethod.FlowState {
	return panelmethod.FlowState{
		Density:       fp.Density,
		Velocity:      fp.Velocity,
		Temperature:   fp.Temperature,
		Viscosity:     fp.Viscosity,
		AngleOfAttack: fp.AngleOfAttack * math.Pi / 180,
	}
}

// SolverOptions carries the optional overrides into the solver; zero values
// keep the solver defaults
func (fp *FlowParameters) SolverOptions() panelmethod.Options {
	return panelmethod.Options{
		LiftScale:         fp.LiftScale,
		DragScale:         fp.DragScale,
		ResidualTolerance: fp.ResidualTolerance,
	}
}

func (fp *FlowParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", fp.Title)
	fmt.Printf("%8.5f\t\t= Density [kg/m3]\n", fp.Density)
	fmt.Printf("%8.5f\t\t= Velocity [m/s]\n", fp.Velocity)
	fmt.Printf("%8.5f\t\t= Temperature [K]\n", fp.Temperature)
	fmt.Printf("%8.3e\t\t= Viscosity [Pa.s]\n", fp.Viscosity)
	fmt.Printf("%8.5f\t\t= Angle of Attack [deg]\n", fp.AngleOfAttack)
	fmt.Printf("%8.5f\t\t= Characteristic Length [m]\n", fp.CharacteristicLength)
}
