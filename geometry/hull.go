package geometry

import "sort"

// Point2D is a planar projection of a Point
type Point2D [2]float64

// ProjectXY drops the Z coordinate
func ProjectXY(p Point) Point2D { return Point2D{p[0], p[1]} }

// ProjectXZ drops the Y coordinate
func ProjectXZ(p Point) Point2D { return Point2D{p[0], p[2]} }

func cross2D(o, a, b Point2D) float64 {
	return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
}

// ConvexHull computes the convex hull of a planar point set by monotone
// chain, returned in counter-clockwise order without repeating the first
// point. Degenerate inputs (fewer than 3 distinct points, or all collinear)
// return the degenerate chain; its polygon area is zero.
func ConvexHull(points []Point2D) (hull []Point2D) {
	var (
		pts = make([]Point2D, len(points))
	)
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i][0] != pts[j][0] {
			return pts[i][0] < pts[j][0]
		}
		return pts[i][1] < pts[j][1]
	})
	// Dedupe after sorting
	uniq := pts[:0]
	for i, p := range pts {
		if i == 0 || p != pts[i-1] {
			uniq = append(uniq, p)
		}
	}
	pts = uniq
	if len(pts) < 3 {
		return pts
	}
	var lower, upper []Point2D
	for _, p := range pts {
		for len(lower) >= 2 && cross2D(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}
	for i := len(pts) - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && cross2D(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}
	hull = append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	return
}

// PolygonArea is the shoelace area of a simple polygon. CCW winding gives a
// positive result; the absolute value is returned.
func PolygonArea(poly []Point2D) (area float64) {
	var (
		n = len(poly)
	)
	if n < 3 {
		return 0
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += poly[i][0]*poly[j][1] - poly[j][0]*poly[i][1]
	}
	area *= 0.5
	if area < 0 {
		area = -area
	}
	return
}

// ConvexHullArea is the projected reference area of a point cloud: the
// shoelace area of its convex hull under the given projection. Geometry
// that collapses under the projection simply has zero projected area.
func ConvexHullArea(points []Point, project func(Point) Point2D) (area float64) {
	var (
		pts = make([]Point2D, len(points))
	)
	for i, p := range points {
		pts[i] = project(p)
	}
	return PolygonArea(ConvexHull(pts))
}
