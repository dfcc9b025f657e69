package readfiles

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/aerostudio/aerocalc/geometry"
)

// ReadOBJ reads a Wavefront OBJ surface into a SurfaceMesh. Positions and
// normals are flattened per face corner - each triangle owns its three
// vertices - because the panel derivation consumes vertices in groups of
// three in array order and the Cp-to-geometry alignment downstream depends
// on that ordering. Polygonal faces are fan-triangulated about their first
// vertex. Face elements may appear as "v", "v/vt", "v//vn" or "v/vt/vn".
// When a corner carries no normal index, the face normal is computed from
// the corner cross product, falling back to +Y for degenerate faces.
func ReadOBJ(filename string) (mesh *geometry.SurfaceMesh, err error) {
	var (
		file *os.File
	)
	if file, err = os.Open(filename); err != nil {
		return nil, fmt.Errorf("unable to open OBJ file %s: %w", filename, err)
	}
	defer file.Close()

	var (
		positions []geometry.Point
		normals   []geometry.Point
		lineNo    int
	)
	mesh = &geometry.SurfaceMesh{}
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 1024), 1024*1024)
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "v":
			var p geometry.Point
			if p, err = parsePoint(fields[1:]); err != nil {
				return nil, fmt.Errorf("%s:%d: vertex: %w", filename, lineNo, err)
			}
			positions = append(positions, p)
		case "vn":
			var p geometry.Point
			if p, err = parsePoint(fields[1:]); err != nil {
				return nil, fmt.Errorf("%s:%d: normal: %w", filename, lineNo, err)
			}
			normals = append(normals, p)
		case "f":
			if err = appendFace(mesh, positions, normals, fields[1:]); err != nil {
				return nil, fmt.Errorf("%s:%d: face: %w", filename, lineNo, err)
			}
		}
		// vt, o, g, s, usemtl and friends carry nothing the solver needs
	}
	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	if len(mesh.Vertices) == 0 {
		return nil, fmt.Errorf("%s contains no faces", filename)
	}
	return
}

func parsePoint(fields []string) (p geometry.Point, err error) {
	if len(fields) < 3 {
		err = fmt.Errorf("expected 3 coordinates, have %d", len(fields))
		return
	}
	for d := 0; d < 3; d++ {
		if p[d], err = strconv.ParseFloat(fields[d], 64); err != nil {
			return
		}
	}
	return
}

type objCorner struct {
	pos    int
	normal int // -1 when absent
}

func parseCorner(elem string, nPos, nNorm int) (c objCorner, err error) {
	parts := strings.Split(elem, "/")
	c.normal = -1
	if c.pos, err = objIndex(parts[0], nPos); err != nil {
		return
	}
	if len(parts) == 3 && parts[2] != "" {
		if c.normal, err = objIndex(parts[2], nNorm); err != nil {
			return
		}
	}
	return
}

// objIndex resolves a 1-based, possibly negative (relative) OBJ index
func objIndex(s string, count int) (idx int, err error) {
	if idx, err = strconv.Atoi(s); err != nil {
		return
	}
	if idx < 0 {
		idx += count
	} else {
		idx--
	}
	if idx < 0 || idx >= count {
		err = fmt.Errorf("index %s out of range, %d entries defined", s, count)
	}
	return
}

func appendFace(mesh *geometry.SurfaceMesh, positions, normals []geometry.Point, elems []string) (err error) {
	if len(elems) < 3 {
		return fmt.Errorf("face needs at least 3 vertices, have %d", len(elems))
	}
	corners := make([]objCorner, len(elems))
	for i, elem := range elems {
		if corners[i], err = parseCorner(elem, len(positions), len(normals)); err != nil {
			return
		}
	}
	// Fan triangulation about the first corner
	for i := 1; i < len(corners)-1; i++ {
		tri := [3]objCorner{corners[0], corners[i], corners[i+1]}
		fallback := faceNormal(
			positions[tri[0].pos], positions[tri[1].pos], positions[tri[2].pos])
		base := len(mesh.Vertices)
		for _, c := range tri {
			mesh.Vertices = append(mesh.Vertices, positions[c.pos])
			if c.normal >= 0 {
				mesh.Normals = append(mesh.Normals, normals[c.normal])
			} else {
				mesh.Normals = append(mesh.Normals, fallback)
			}
		}
		mesh.Faces = append(mesh.Faces, [3]int{base, base + 1, base + 2})
	}
	return
}

// faceNormal is the unit cross product of the triangle edges, +Y when the
// triangle is degenerate
func faceNormal(v1, v2, v3 geometry.Point) geometry.Point {
	n := v2.Sub(v1).Cross(v3.Sub(v1))
	if n.Norm() == 0 {
		return geometry.Point{0, 1, 0}
	}
	return n.Normalize()
}

// NormalizeMesh centers the mesh on the origin and scales its largest
// bounding-box dimension to unit size, matching what the viewport importer
// does before display. Normals are directions and are left alone.
func NormalizeMesh(mesh *geometry.SurfaceMesh) {
	if len(mesh.Vertices) == 0 {
		return
	}
	var (
		min, max = mesh.Bounds()
		center   = min.Add(max).Scale(0.5)
		size     float64
	)
	for d := 0; d < 3; d++ {
		if s := max[d] - min[d]; s > size {
			size = s
		}
	}
	scale := 1.0
	if size > 0 {
		scale = 1.0 / size
	}
	for i, v := range mesh.Vertices {
		mesh.Vertices[i] = v.Sub(center).Scale(scale)
	}
}
