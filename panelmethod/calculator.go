package panelmethod

import (
	"fmt"
	"math"
	"runtime"

	"github.com/aerostudio/aerocalc/geometry"
)

// Options tune one force calculation. Zero values fall back to defaults.
type Options struct {
	LiftScale         float64
	DragScale         float64
	ResidualTolerance float64 // max |A.sigma - b| accepted from the solve
	Workers           int     // parallel degree for assembly and evaluation
}

func DefaultOptions() Options {
	return Options{
		LiftScale:         DefaultLiftScale,
		DragScale:         DefaultDragScale,
		ResidualTolerance: 1e-8,
		Workers:           runtime.NumCPU(),
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.LiftScale == 0 {
		o.LiftScale = d.LiftScale
	}
	if o.DragScale == 0 {
		o.DragScale = d.DragScale
	}
	if o.ResidualTolerance == 0 {
		o.ResidualTolerance = d.ResidualTolerance
	}
	if o.Workers == 0 {
		o.Workers = d.Workers
	}
	return o
}

// CalculateForces runs the whole pipeline as a pure function of its inputs:
// panel derivation, influence assembly, dense solve, surface field
// evaluation and force integration. It retains no reference to the mesh or
// flow state, returns no partial result on failure, and independent calls
// may run concurrently.
func CalculateForces(mesh *geometry.SurfaceMesh, flow FlowState, opts Options) (result *AerodynamicForces, err error) {
	opts = opts.withDefaults()
	if mesh == nil || mesh.Vertices == nil || mesh.Normals == nil {
		err = ErrMeshNotSet
		return
	}
	if err = flow.Validate(); err != nil {
		err = fmt.Errorf("invalid flow conditions: %w", err)
		return
	}
	panels, err := BuildPanels(mesh)
	if err != nil {
		return nil, err
	}
	if len(panels) == 0 {
		return nil, computationErr("panel derivation", fmt.Errorf("mesh yields no panels"))
	}

	A, b := AssembleSystem(panels, flow, opts.Workers)
	sigma, err := A.LUSolve(b)
	if err != nil {
		return nil, computationErr("linear solve", err)
	}
	residual := A.MulVec(sigma).Subtract(b.Copy()).InfNorm()
	if math.IsNaN(residual) || residual > opts.ResidualTolerance {
		return nil, computationErr("linear solve",
			fmt.Errorf("%w (residual %g)", ErrIllConditioned, residual))
	}

	Vt := SurfaceVelocities(panels, flow, sigma, opts.Workers)
	Cp := PressureCoefficients(Vt, flow)

	refArea, err := ReferenceArea(mesh)
	if err != nil {
		return nil, computationErr("force integration", err)
	}
	result = IntegrateForces(panels, Cp, flow, refArea, opts.LiftScale, opts.DragScale)
	return
}

// Calculator is the stateful face the surrounding application works with:
// set a mesh and flow conditions, then calculate. Internally it defers to
// the pure CalculateForces, so the setters exist only to report missing
// inputs as recoverable precondition errors. A Calculator is not safe for
// concurrent mutation; give each worker its own instance.
type Calculator struct {
	mesh *geometry.SurfaceMesh
	flow *FlowState
	opts Options
}

func NewCalculator(optsO ...Options) (c *Calculator) {
	c = &Calculator{opts: DefaultOptions()}
	if len(optsO) != 0 {
		c.opts = optsO[0].withDefaults()
	}
	return
}

// SetMesh replaces the mesh used by subsequent calculations. Geometry is
// accepted as-is beyond presence checks.
func (c *Calculator) SetMesh(vertices, normals []geometry.Point, faces [][3]int) {
	c.mesh = &geometry.SurfaceMesh{Vertices: vertices, Normals: normals, Faces: faces}
}

// SetFlowConditions replaces the flow state used by subsequent calculations
func (c *Calculator) SetFlowConditions(flow FlowState) {
	c.flow = &flow
}

// CalculateForces runs the full pipeline against the stored inputs
func (c *Calculator) CalculateForces() (*AerodynamicForces, error) {
	if c.mesh == nil {
		return nil, ErrMeshNotSet
	}
	if c.flow == nil {
		return nil, ErrFlowNotSet
	}
	return CalculateForces(c.mesh, *c.flow, c.opts)
}

// ReynoldsNumber computes Re = rho V L / mu for the stored flow conditions
func (c *Calculator) ReynoldsNumber(characteristicLength float64) (float64, error) {
	if c.flow == nil {
		return 0, ErrFlowNotSet
	}
	return c.flow.ReynoldsNumber(characteristicLength), nil
}

// ReferenceArea exposes the convex-hull projected area standalone
func (c *Calculator) ReferenceArea() (float64, error) {
	return ReferenceArea(c.mesh)
}
