package panelmethod

import (
	"math"

	"github.com/aerostudio/aerocalc/geometry"
)

const (
	// DefaultLiftScale converts the integrated lift sum to force units
	// together with q_inf and the reference area
	DefaultLiftScale = 1.0
	// DefaultDragScale carries an extra 0.1 on the drag conversion. The
	// factor is a calibration constant inherited from the original force
	// model, deliberately independent of the lift scale; override it per
	// solve rather than folding it into the formula.
	DefaultDragScale = 0.1
	// QuarterChord is the x station the pitching moment is taken about
	QuarterChord = 0.25
)

// AerodynamicForces is the result of one force calculation. It is built once
// per invocation and immutable afterwards; PressureCoefficients is indexed
// by panel in the same stable order the mesh's triangles were consumed, which
// is the alignment contract for downstream visualization.
type AerodynamicForces struct {
	Lift, Drag, Moment   float64
	Cl, Cd               float64
	ReferenceArea        float64
	PressureCoefficients []float64
	CpMin, CpMax, CpMean float64
}

// ReferenceArea is the convex-hull area of the mesh vertices projected onto
// the x-y plane, used to normalize forces into coefficients. A nil mesh is a
// precondition error distinct from pipeline failure, since this can be
// called standalone. Geometry whose x-y projection is degenerate has zero
// reference area - the force-unit outputs stay finite, the coefficients do
// not.
func ReferenceArea(mesh *geometry.SurfaceMesh) (area float64, err error) {
	if mesh == nil || len(mesh.Vertices) == 0 {
		err = ErrMeshNotSet
		return
	}
	area = geometry.ConvexHullArea(mesh.Vertices, geometry.ProjectXY)
	return
}

// IntegrateForces sums per-panel pressure loads into lift, drag and pitching
// moment. Each panel contributes -Cp * length decomposed through its normal's
// x and z components; the moment arm is the control point's x offset from the
// quarter chord. The coefficient sums are normalized by q_inf and the
// reference area, then scaled back to force units with the independent lift
// and drag scale factors.
func IntegrateForces(panels []Panel, Cp []float64, flow FlowState, refArea,
	liftScale, dragScale float64) (result *AerodynamicForces) {
	var (
		liftSum, dragSum, momentSum float64
		q                           = flow.DynamicPressure()
	)
	for i := range panels {
		var (
			c = -Cp[i] * panels[i].Length()
			n = panels[i].Normal
		)
		dragSum += c * n.X()
		liftSum += c * n.Z()
		momentSum += c * (panels[i].Control.X() - QuarterChord)
	}
	result = &AerodynamicForces{
		Lift:                 liftSum * q * refArea * liftScale,
		Drag:                 dragSum * q * refArea * dragScale,
		Moment:               momentSum * q * refArea,
		Cl:                   liftSum / (q * refArea),
		Cd:                   dragSum / (q * refArea),
		ReferenceArea:        refArea,
		PressureCoefficients: Cp,
	}
	result.summarizeCp()
	return
}

func (af *AerodynamicForces) summarizeCp() {
	if len(af.PressureCoefficients) == 0 {
		return
	}
	var (
		sum float64
	)
	af.CpMin, af.CpMax = math.Inf(1), math.Inf(-1)
	for _, cp := range af.PressureCoefficients {
		if cp < af.CpMin {
			af.CpMin = cp
		}
		if cp > af.CpMax {
			af.CpMax = cp
		}
		sum += cp
	}
	af.CpMean = sum / float64(len(af.PressureCoefficients))
}
