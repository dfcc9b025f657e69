package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointOps(t *testing.T) {
	a := Point{1, 2, 3}
	b := Point{4, 5, 6}
	assert.Equal(t, Point{5, 7, 9}, a.Add(b))
	assert.Equal(t, Point{3, 3, 3}, b.Sub(a))
	assert.Equal(t, 32., a.Dot(b))
	assert.Equal(t, Point{-3, 6, -3}, a.Cross(b))
	assert.InDelta(t, math.Sqrt(14), a.Norm(), 1e-12)
	assert.InDelta(t, 1, a.Normalize().Norm(), 1e-12)
	assert.Equal(t, Point{}, Point{}.Normalize())
}

func TestSurfaceMesh(t *testing.T) {
	mesh := &SurfaceMesh{
		Vertices: []Point{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Normals:  []Point{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
	}
	assert.NoError(t, mesh.Validate())
	assert.Equal(t, 1, mesh.NumFaces())
	assert.Equal(t, [3]int{0, 1, 2}, mesh.Face(0))

	mesh.Faces = [][3]int{{0, 2, 1}}
	assert.Equal(t, [3]int{0, 2, 1}, mesh.Face(0))

	mesh.Faces = [][3]int{{0, 1, 5}}
	assert.Error(t, mesh.Validate())

	mesh.Faces = nil
	mesh.Normals = mesh.Normals[:2]
	assert.Error(t, mesh.Validate())
}

func TestBounds(t *testing.T) {
	mesh := &SurfaceMesh{Vertices: []Point{{-1, 2, 0}, {3, -4, 5}, {0, 0, 1}}}
	min, max := mesh.Bounds()
	assert.Equal(t, Point{-1, -4, 0}, min)
	assert.Equal(t, Point{3, 2, 5}, max)
}

func TestConvexHullArea(t *testing.T) {
	// Unit square with an interior point: hull ignores the interior
	{
		pts := []Point{
			{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}, {0.5, 0.5, 0},
		}
		assert.InDelta(t, 1, ConvexHullArea(pts, ProjectXY), 1e-12)
	}
	// Collinear projection has zero area, not an error
	{
		pts := []Point{{0, 0, 0}, {1, 0, 1}, {2, 0, 2}}
		assert.Equal(t, 0., ConvexHullArea(pts, ProjectXY))
	}
	// Triangle in the x-z projection
	{
		pts := []Point{{0, 9, 0}, {2, -1, 0}, {0, 3, 2}}
		assert.InDelta(t, 2, ConvexHullArea(pts, ProjectXZ), 1e-12)
	}
}

func TestConvexHullOrdering(t *testing.T) {
	hull := ConvexHull([]Point2D{{0, 0}, {1, 1}, {1, 0}, {0, 1}, {0.2, 0.7}})
	assert.Len(t, hull, 4)
	assert.InDelta(t, 1, PolygonArea(hull), 1e-12)
}
