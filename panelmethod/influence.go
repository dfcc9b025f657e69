package panelmethod

import (
	"math"
	"sync"

	"github.com/aerostudio/aerocalc/geometry"
	"github.com/aerostudio/aerocalc/utils"
)

// panelFrame is the x-z geometry of one influencing panel segment seen from
// a field point: distances to the two endpoints and the subtended angle,
// with the point expressed in the panel-local frame.
type panelFrame struct {
	r1, r2 float64
	beta   float64
	sinT   float64 // panel inclination in the x-z plane
	cosT   float64
	xp, zp float64 // field point in panel-local coordinates
	length float64
}

func frameOf(p *Panel, pt geometry.Point2D) (f panelFrame) {
	var (
		e1, e2 = p.Edge()
		ex     = e2[0] - e1[0]
		ez     = e2[1] - e1[1]
	)
	f.length = math.Hypot(ex, ez)
	if f.length > 0 {
		f.cosT = ex / f.length
		f.sinT = ez / f.length
	} else {
		f.cosT = 1
	}
	dx, dz := pt[0]-e1[0], pt[1]-e1[1]
	f.xp = dx*f.cosT + dz*f.sinT
	f.zp = -dx*f.sinT + dz*f.cosT
	f.r1 = math.Hypot(f.xp, f.zp)
	f.r2 = math.Hypot(f.xp-f.length, f.zp)
	f.beta = math.Atan2(f.zp, f.xp-f.length) - math.Atan2(f.zp, f.xp)
	return
}

// normalInfluence is the boundary-condition coefficient of a unit-strength
// source on panel j evaluated at point pt: the log-of-distance-ratio term
// plus the subtended-angle term, normalized by 2 pi. It is finite whenever
// pt does not coincide with a segment endpoint; degenerate geometry is
// allowed to propagate as Inf/NaN into the solve (see the residual check).
func normalInfluence(pj *Panel, pt geometry.Point2D) float64 {
	f := frameOf(pj, pt)
	return (math.Log(f.r1/f.r2) + f.beta) / (2 * math.Pi)
}

// tangentialInfluence is the x-z velocity induced at pt by a unit-strength
// source on panel j, projected onto the tangential direction of the
// receiving panel. Structurally the same kernel as normalInfluence, with the
// induced velocity rotated back to the global frame and projected.
func tangentialInfluence(pj *Panel, pt geometry.Point2D, tangent geometry.Point) float64 {
	var (
		f  = frameOf(pj, pt)
		ul = math.Log(f.r1/f.r2) / (2 * math.Pi)
		wl = f.beta / (2 * math.Pi)
		u  = ul*f.cosT - wl*f.sinT
		w  = ul*f.sinT + wl*f.cosT
	)
	return u*tangent.X() + w*tangent.Z()
}

// freestream returns the x and z components of the free-stream velocity
func freestream(flow FlowState) (uInf, wInf float64) {
	uInf = flow.Velocity * math.Cos(flow.AngleOfAttack)
	wInf = flow.Velocity * math.Sin(flow.AngleOfAttack)
	return
}

// AssembleSystem builds the n x n influence matrix A and right-hand side b.
// Row i enforces no-penetration at panel i's control point: the combined
// normal velocity of all panel sources cancels the free-stream normal
// component, so b[i] is the negative free-stream projection onto panel i's
// normal. Rows are independent, so assembly is split across workers.
func AssembleSystem(panels []Panel, flow FlowState, workers int) (A utils.Matrix, b utils.Vector) {
	var (
		n  = len(panels)
		pm = utils.NewPartitionMap(workers, n)
		wg sync.WaitGroup
	)
	A = utils.NewMatrix(n, n)
	b = utils.NewVector(n)
	uInf, wInf := freestream(flow)
	for np := 0; np < pm.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			min, max := pm.GetBucketRange(np)
			for i := min; i < max; i++ {
				ctrl := geometry.ProjectXZ(panels[i].Control)
				for j := 0; j < n; j++ {
					A.Set(i, j, normalInfluence(&panels[j], ctrl))
				}
				ni := panels[i].Normal
				b.Set(i, -(uInf*ni.X() + wInf*ni.Z()))
			}
		}(np)
	}
	wg.Wait()
	return
}

// SurfaceVelocities computes the tangential velocity at each panel: the
// free-stream component along the panel tangent plus the superposed
// tangential influence of every solved source strength.
func SurfaceVelocities(panels []Panel, flow FlowState, sigma utils.Vector, workers int) (Vt []float64) {
	var (
		n  = len(panels)
		pm = utils.NewPartitionMap(workers, n)
		wg sync.WaitGroup
	)
	Vt = make([]float64, n)
	uInf, wInf := freestream(flow)
	for np := 0; np < pm.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			min, max := pm.GetBucketRange(np)
			for i := min; i < max; i++ {
				var (
					ti   = panels[i].Tangent
					ctrl = geometry.ProjectXZ(panels[i].Control)
					vt   = uInf*ti.X() + wInf*ti.Z()
				)
				for j := 0; j < n; j++ {
					vt += sigma.AtVec(j) * tangentialInfluence(&panels[j], ctrl, ti)
				}
				Vt[i] = vt
			}
		}(np)
	}
	wg.Wait()
	return
}

// PressureCoefficients applies the incompressible Bernoulli relation at the
// surface: Cp = 1 - (Vt/Vinf)^2
func PressureCoefficients(Vt []float64, flow FlowState) (Cp []float64) {
	Cp = make([]float64, len(Vt))
	for i, vt := range Vt {
		ratio := vt / flow.Velocity
		Cp[i] = 1 - ratio*ratio
	}
	return
}
