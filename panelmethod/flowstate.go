package panelmethod

import "fmt"

// FlowState describes the ambient free-stream conditions. Values are SI:
// Density kg/m^3, Velocity m/s, Temperature K, Viscosity Pa.s, AngleOfAttack
// radians. A FlowState is immutable once handed to the solver.
type FlowState struct {
	Density       float64
	Velocity      float64
	Temperature   float64
	Viscosity     float64
	AngleOfAttack float64
}

func (fs FlowState) Validate() (err error) {
	if fs.Density <= 0 {
		return fmt.Errorf("density must be positive, have %g", fs.Density)
	}
	if fs.Velocity < 0 {
		return fmt.Errorf("velocity must be non-negative, have %g", fs.Velocity)
	}
	if fs.Viscosity <= 0 {
		return fmt.Errorf("viscosity must be positive, have %g", fs.Viscosity)
	}
	return
}

// DynamicPressure is q_inf = 1/2 rho V^2
func (fs FlowState) DynamicPressure() float64 {
	return 0.5 * fs.Density * fs.Velocity * fs.Velocity
}

// ReynoldsNumber for a characteristic length L: Re = rho V L / mu
func (fs FlowState) ReynoldsNumber(characteristicLength float64) float64 {
	return fs.Density * fs.Velocity * characteristicLength / fs.Viscosity
}
