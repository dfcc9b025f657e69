package geometry

import (
	"fmt"
	"math"
)

// Point is a position or direction in 3D, stored [X, Y, Z]
type Point [3]float64

func (p Point) X() float64 { return p[0] }
func (p Point) Y() float64 { return p[1] }
func (p Point) Z() float64 { return p[2] }

func (p Point) Add(a Point) Point {
	return Point{p[0] + a[0], p[1] + a[1], p[2] + a[2]}
}

func (p Point) Sub(a Point) Point {
	return Point{p[0] - a[0], p[1] - a[1], p[2] - a[2]}
}

func (p Point) Scale(s float64) Point {
	return Point{p[0] * s, p[1] * s, p[2] * s}
}

func (p Point) Dot(a Point) float64 {
	return p[0]*a[0] + p[1]*a[1] + p[2]*a[2]
}

func (p Point) Cross(a Point) Point {
	return Point{
		p[1]*a[2] - p[2]*a[1],
		p[2]*a[0] - p[0]*a[2],
		p[0]*a[1] - p[1]*a[0],
	}
}

func (p Point) Norm() float64 {
	return math.Sqrt(p.Dot(p))
}

// Normalize returns the unit vector along p, or the zero vector when p has
// zero length
func (p Point) Normalize() Point {
	var (
		n = p.Norm()
	)
	if n == 0 {
		return Point{}
	}
	return p.Scale(1. / n)
}

// SurfaceMesh is a triangulated surface: vertex positions, matching
// per-vertex outward normals and triangular faces indexing into Vertices.
// The solver treats a mesh as read-only; the importer that produced it
// retains ownership.
type SurfaceMesh struct {
	Vertices []Point
	Normals  []Point
	Faces    [][3]int
}

// Validate checks index bounds and the vertex/normal count agreement. It does
// not check geometric quality - degenerate triangles pass.
func (sm *SurfaceMesh) Validate() (err error) {
	var (
		nv = len(sm.Vertices)
	)
	if len(sm.Normals) != nv {
		return fmt.Errorf("mesh has %d vertices but %d normals", nv, len(sm.Normals))
	}
	for k, f := range sm.Faces {
		for _, vi := range f {
			if vi < 0 || vi >= nv {
				return fmt.Errorf("face %d references vertex %d, valid range [0,%d)", k, vi, nv)
			}
		}
	}
	return
}

// NumFaces returns the triangle count. When Faces is empty the mesh is taken
// as a flat vertex soup consumed three vertices per triangle.
func (sm *SurfaceMesh) NumFaces() int {
	if len(sm.Faces) != 0 {
		return len(sm.Faces)
	}
	return len(sm.Vertices) / 3
}

// Face returns the vertex index triple of triangle k under the same
// indexing policy as NumFaces
func (sm *SurfaceMesh) Face(k int) [3]int {
	if len(sm.Faces) != 0 {
		return sm.Faces[k]
	}
	return [3]int{3 * k, 3*k + 1, 3*k + 2}
}

// Bounds returns the axis-aligned bounding box of the vertices
func (sm *SurfaceMesh) Bounds() (min, max Point) {
	if len(sm.Vertices) == 0 {
		return
	}
	min, max = sm.Vertices[0], sm.Vertices[0]
	for _, v := range sm.Vertices {
		for d := 0; d < 3; d++ {
			if v[d] < min[d] {
				min[d] = v[d]
			}
			if v[d] > max[d] {
				max[d] = v[d]
			}
		}
	}
	return
}
