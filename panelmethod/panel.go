// Package panelmethod estimates aerodynamic forces on a triangulated surface
// in a uniform free stream using a source panel method.
//
// The influence formulas are a 2D source-panel formulation applied to a 3D
// mesh by projecting geometry onto the x-z plane. That is a deliberate
// modeling simplification: results are physically meaningful only for
// geometries whose relevant flow features lie predominantly in that plane,
// such as airfoil-like cross sections. Do not generalize the kernels to full
// 3D panel influence without revisiting the formulation - that is a
// different, more expensive algorithm.
package panelmethod

import (
	"math"

	"github.com/aerostudio/aerocalc/geometry"
)

// Panel is one flat element of the discretized surface: three corners, a
// control point where the boundary condition is enforced, an outward unit
// normal and a unit tangential direction for surface-flow projection.
// Panels are immutable once built; their order defines the row/column
// indexing of the influence system and must stay stable for one solve.
type Panel struct {
	P1, P2, P3 geometry.Point
	Control    geometry.Point
	Normal     geometry.Point
	Tangent    geometry.Point
}

// Edge returns the 2D source-panel segment in the x-z projection, spanning
// the first two corners
func (p *Panel) Edge() (e1, e2 geometry.Point2D) {
	e1 = geometry.ProjectXZ(p.P1)
	e2 = geometry.ProjectXZ(p.P2)
	return
}

// Length is the x-z projected length of the panel segment
func (p *Panel) Length() float64 {
	e1, e2 := p.Edge()
	dx, dz := e2[0]-e1[0], e2[1]-e1[1]
	return math.Hypot(dx, dz)
}

// BuildPanels derives one panel per triangle, consuming vertices in index
// order. The control point is the arithmetic mean of the three corners. The
// panel normal is the per-vertex normal of the FIRST vertex of the triple -
// not an average; downstream pressure-to-geometry alignment depends on this
// derivation rule, so it is preserved as found. The tangent is the normal
// rotated a quarter turn in the x-z plane, falling back to +X when the
// normal has no x-z projection.
func BuildPanels(mesh *geometry.SurfaceMesh) (panels []Panel, err error) {
	if mesh == nil || mesh.Vertices == nil || mesh.Normals == nil {
		err = ErrMeshNotSet
		return
	}
	if err = mesh.Validate(); err != nil {
		return
	}
	var (
		nf = mesh.NumFaces()
	)
	panels = make([]Panel, nf)
	for k := 0; k < nf; k++ {
		f := mesh.Face(k)
		p := &panels[k]
		p.P1, p.P2, p.P3 = mesh.Vertices[f[0]], mesh.Vertices[f[1]], mesh.Vertices[f[2]]
		p.Control = p.P1.Add(p.P2).Add(p.P3).Scale(1. / 3.)
		p.Normal = mesh.Normals[f[0]].Normalize()
		p.Tangent = tangentOf(p.Normal)
	}
	return
}

func tangentOf(normal geometry.Point) geometry.Point {
	var (
		tx = normal.Z()
		tz = -normal.X()
		n  = math.Hypot(tx, tz)
	)
	if n < 1e-12 {
		// Normal points out of the x-z plane, any in-plane direction works
		return geometry.Point{1, 0, 0}
	}
	return geometry.Point{tx / n, 0, tz / n}
}
