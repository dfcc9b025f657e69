package panelmethod

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aerostudio/aerocalc/geometry"
)

// flat vertex soup, one triangle per three vertices, constant normal
func triSoup(normal geometry.Point, verts ...geometry.Point) *geometry.SurfaceMesh {
	normals := make([]geometry.Point, len(verts))
	for i := range normals {
		normals[i] = normal
	}
	return &geometry.SurfaceMesh{Vertices: verts, Normals: normals}
}

// ringMesh builds n panels around the unit circle in the x-z plane with
// radial normals. The apex of each triangle is pushed outward so every
// control point sits clear of its own panel chord - no sign ambiguity in
// the subtended angle.
func ringMesh(n int) *geometry.SurfaceMesh {
	mesh := &geometry.SurfaceMesh{}
	for k := 0; k < n; k++ {
		t0 := 2 * math.Pi * float64(k) / float64(n)
		t1 := 2 * math.Pi * float64(k+1) / float64(n)
		v1 := geometry.Point{math.Cos(t0), 0, math.Sin(t0)}
		v2 := geometry.Point{math.Cos(t1), 0, math.Sin(t1)}
		apex := v1.Add(v2).Scale(0.4)
		apex[1] = 1
		nrm := geometry.Point{math.Cos(t0), 0, math.Sin(t0)}
		mesh.Vertices = append(mesh.Vertices, v1, v2, apex)
		mesh.Normals = append(mesh.Normals, nrm, nrm, nrm)
	}
	return mesh
}

func TestBuildPanels(t *testing.T) {
	// Missing inputs fail before any numerics
	{
		_, err := BuildPanels(nil)
		assert.ErrorIs(t, err, ErrMeshNotSet)
		_, err = BuildPanels(&geometry.SurfaceMesh{Vertices: []geometry.Point{{0, 0, 0}}})
		assert.ErrorIs(t, err, ErrMeshNotSet)
	}
	// Control point is the corner mean; the normal comes from the FIRST
	// vertex of each triple, not an average
	{
		mesh := &geometry.SurfaceMesh{
			Vertices: []geometry.Point{{0, 0, 0}, {1, 0, 0}, {0, 0, 1}},
			Normals:  []geometry.Point{{0, 0, 2}, {1, 0, 0}, {0, 1, 0}},
		}
		panels, err := BuildPanels(mesh)
		assert.NoError(t, err)
		assert.Len(t, panels, 1)
		assert.Equal(t, geometry.Point{1. / 3., 0, 1. / 3.}, panels[0].Control)
		assert.Equal(t, geometry.Point{0, 0, 1}, panels[0].Normal)
		// Tangent is the normal turned a quarter in the x-z plane
		assert.InDelta(t, 1, panels[0].Tangent.X(), 1e-12)
		assert.InDelta(t, 0, panels[0].Tangent.Z(), 1e-12)
	}
	// Out-of-plane normal falls back to the +X tangent
	{
		mesh := triSoup(geometry.Point{0, 1, 0},
			geometry.Point{0, 0, 0}, geometry.Point{1, 0, 0}, geometry.Point{1, 0, 1})
		panels, err := BuildPanels(mesh)
		assert.NoError(t, err)
		assert.Equal(t, geometry.Point{1, 0, 0}, panels[0].Tangent)
	}
	// Bad face indices are rejected
	{
		mesh := &geometry.SurfaceMesh{
			Vertices: []geometry.Point{{0, 0, 0}},
			Normals:  []geometry.Point{{0, 1, 0}},
			Faces:    [][3]int{{0, 1, 2}},
		}
		_, err := BuildPanels(mesh)
		assert.Error(t, err)
	}
}

func TestRHSFreestreamProjection(t *testing.T) {
	var (
		flow = FlowState{Density: 1.225, Velocity: 10, Viscosity: 1.8e-5}
	)
	// Panel normal along +X, alpha = 0: b = -Vinf
	{
		mesh := triSoup(geometry.Point{1, 0, 0},
			geometry.Point{0, 0, 0}, geometry.Point{1, 0, 0}, geometry.Point{0.5, 0, 1})
		panels, err := BuildPanels(mesh)
		assert.NoError(t, err)
		_, b := AssembleSystem(panels, flow, 1)
		assert.InDelta(t, -10, b.AtVec(0), 1e-12)
	}
	// Panel normal along +Z, alpha = pi/2: b = -Vinf
	{
		mesh := triSoup(geometry.Point{0, 0, 1},
			geometry.Point{0, 0, 0}, geometry.Point{1, 0, 0}, geometry.Point{0.5, 0, 1})
		panels, err := BuildPanels(mesh)
		assert.NoError(t, err)
		flowAlpha := flow
		flowAlpha.AngleOfAttack = math.Pi / 2
		_, b := AssembleSystem(panels, flowAlpha, 1)
		assert.InDelta(t, -10, b.AtVec(0), 1e-12)
	}
}

func TestInfluenceMatrixWellDefined(t *testing.T) {
	var (
		mesh = ringMesh(16)
		flow = FlowState{Density: 1.225, Velocity: 10, Viscosity: 1.8e-5}
	)
	panels, err := BuildPanels(mesh)
	assert.NoError(t, err)
	A, b := AssembleSystem(panels, flow, 4)
	assert.True(t, A.IsFinite())
	nr, nc := A.Dims()
	assert.Equal(t, len(panels), nr)
	assert.Equal(t, len(panels), nc)
	// The self term stays finite and bounded by the half-angle limit even
	// though the kernel has a singular distance ratio at zero separation.
	// Every panel sees the same local geometry here, so the diagonal is
	// constant.
	for i := 0; i < nr; i++ {
		assert.Greater(t, A.At(i, i), 0.0)
		assert.Less(t, A.At(i, i), 0.5)
		assert.InDelta(t, A.At(0, 0), A.At(i, i), 1e-9)
	}
	assert.False(t, math.IsNaN(b.InfNorm()))
}

func TestAssemblyWorkerInvariance(t *testing.T) {
	var (
		mesh = ringMesh(12)
		flow = FlowState{Density: 1.225, Velocity: 10, Viscosity: 1.8e-5, AngleOfAttack: 0.1}
	)
	panels, err := BuildPanels(mesh)
	assert.NoError(t, err)
	A1, b1 := AssembleSystem(panels, flow, 1)
	A4, b4 := AssembleSystem(panels, flow, 4)
	assert.Equal(t, A1.RawMatrix().Data, A4.RawMatrix().Data)
	assert.Equal(t, b1.RawVector().Data, b4.RawVector().Data)
}

func TestSinglePanelNoPenetration(t *testing.T) {
	var (
		flow = FlowState{Density: 1.225, Velocity: 10, Viscosity: 1.8e-5}
		mesh = triSoup(geometry.Point{1, 0, 0},
			geometry.Point{0, 0, 0}, geometry.Point{1, 0, 0}, geometry.Point{0.5, 0, 1})
	)
	panels, err := BuildPanels(mesh)
	assert.NoError(t, err)
	A, b := AssembleSystem(panels, flow, 1)
	sigma, err := A.LUSolve(b)
	assert.NoError(t, err)
	// The solved strength satisfies the boundary condition: A.sigma - b ~ 0
	residual := A.MulVec(sigma).Subtract(b).InfNorm()
	assert.InDelta(t, 0, residual, 1e-10)
}

func TestPressureCoefficients(t *testing.T) {
	var (
		flow = FlowState{Density: 1.225, Velocity: 10, Viscosity: 1.8e-5}
	)
	Cp := PressureCoefficients([]float64{10, 0, 5}, flow)
	assert.InDelta(t, 0, Cp[0], 1e-12) // surface point at freestream speed
	assert.InDelta(t, 1, Cp[1], 1e-12) // stagnation
	assert.InDelta(t, 0.75, Cp[2], 1e-12)
}

func TestReynoldsNumberScaling(t *testing.T) {
	var (
		base = FlowState{Density: 1.2, Velocity: 10, Viscosity: 2e-5}
	)
	re := base.ReynoldsNumber(1)
	doubledRho := base
	doubledRho.Density *= 2
	assert.InDelta(t, 2*re, doubledRho.ReynoldsNumber(1), 1e-9)
	doubledV := base
	doubledV.Velocity *= 2
	assert.InDelta(t, 2*re, doubledV.ReynoldsNumber(1), 1e-9)
	doubledMu := base
	doubledMu.Viscosity *= 2
	assert.InDelta(t, re/2, doubledMu.ReynoldsNumber(1), 1e-9)
	assert.InDelta(t, 2*re, base.ReynoldsNumber(2), 1e-9)
}

func TestCalculatorPreconditions(t *testing.T) {
	c := NewCalculator()
	// No mesh: a recoverable precondition error, nothing mutated
	_, err := c.CalculateForces()
	assert.ErrorIs(t, err, ErrMeshNotSet)
	var precond *PreconditionError
	assert.ErrorAs(t, err, &precond)
	_, err = c.CalculateForces()
	assert.ErrorIs(t, err, ErrMeshNotSet)

	_, err = c.ReferenceArea()
	assert.ErrorIs(t, err, ErrMeshNotSet)
	_, err = c.ReynoldsNumber(1)
	assert.ErrorIs(t, err, ErrFlowNotSet)

	// Mesh without flow conditions
	mesh := triSoup(geometry.Point{0, 1, 0},
		geometry.Point{0, 0, 0}, geometry.Point{1, 0, 0}, geometry.Point{1, 0, 1})
	c.SetMesh(mesh.Vertices, mesh.Normals, nil)
	_, err = c.CalculateForces()
	assert.ErrorIs(t, err, ErrFlowNotSet)

	// Supplying the missing input recovers
	c.SetFlowConditions(FlowState{Density: 1.225, Velocity: 10, Viscosity: 1.8e-5})
	_, err = c.CalculateForces()
	assert.NoError(t, err)
}

func TestCalculateForcesSquarePlate(t *testing.T) {
	// Two triangles forming one square panel in the x-z plane, normals +Y
	var (
		mesh = triSoup(geometry.Point{0, 1, 0},
			geometry.Point{0, 0, 0}, geometry.Point{1, 0, 0}, geometry.Point{1, 0, 1},
			geometry.Point{0, 0, 0}, geometry.Point{1, 0, 1}, geometry.Point{0, 0, 1})
		flow = FlowState{Density: 1.225, Velocity: 10, AngleOfAttack: 0, Viscosity: 1.8e-5}
	)
	forces, err := CalculateForces(mesh, flow, Options{})
	assert.NoError(t, err)
	assert.False(t, math.IsNaN(forces.Lift) || math.IsInf(forces.Lift, 0))
	assert.False(t, math.IsNaN(forces.Drag) || math.IsInf(forces.Drag, 0))
	assert.False(t, math.IsNaN(forces.Moment) || math.IsInf(forces.Moment, 0))
	assert.Len(t, forces.PressureCoefficients, 2)
	for _, cp := range forces.PressureCoefficients {
		assert.LessOrEqual(t, cp, 1.0)
	}
}

func TestCalculateForcesRing(t *testing.T) {
	var (
		mesh = ringMesh(24)
		flow = FlowState{Density: 1.225, Velocity: 10, AngleOfAttack: 4 * math.Pi / 180, Viscosity: 1.8e-5}
	)
	forces, err := CalculateForces(mesh, flow, Options{Workers: 3})
	assert.NoError(t, err)
	assert.Len(t, forces.PressureCoefficients, 24)
	assert.Greater(t, forces.ReferenceArea, 0.0)
	for _, cp := range forces.PressureCoefficients {
		assert.False(t, math.IsNaN(cp))
		assert.LessOrEqual(t, cp, 1.0)
	}
	assert.LessOrEqual(t, forces.CpMin, forces.CpMean)
	assert.LessOrEqual(t, forces.CpMean, forces.CpMax)
	// Results are a pure function of the inputs
	again, err := CalculateForces(mesh, flow, Options{Workers: 1})
	assert.NoError(t, err)
	assert.Equal(t, forces.Lift, again.Lift)
	assert.Equal(t, forces.Drag, again.Drag)
}

func TestDragScaleAsymmetry(t *testing.T) {
	// The drag conversion carries its own calibration factor
	assert.Equal(t, 1.0, DefaultLiftScale)
	assert.Equal(t, 0.1, DefaultDragScale)
	var (
		mesh = ringMesh(8)
		flow = FlowState{Density: 1.225, Velocity: 10, AngleOfAttack: 0.1, Viscosity: 1.8e-5}
	)
	def, err := CalculateForces(mesh, flow, Options{})
	assert.NoError(t, err)
	scaled, err := CalculateForces(mesh, flow, Options{DragScale: 1.0})
	assert.NoError(t, err)
	assert.Equal(t, def.Lift, scaled.Lift)
	assert.InDelta(t, 10*def.Drag, scaled.Drag, math.Abs(def.Drag)*1e-9)
	// Coefficients are unaffected by the force-unit scales
	assert.Equal(t, def.Cd, scaled.Cd)
}
