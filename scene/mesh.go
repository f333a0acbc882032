// SPDX-License-Identifier: Unlicense OR MIT

package scene

import (
	"image/color"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is a colored point of a mesh.
type Vertex struct {
	Position [3]float32
	Color    [4]uint8
}

// Mesh is a list of line segments and a list of triangles. Lines
// holds vertex pairs and Triangles vertex triples.
type Mesh struct {
	Lines     []Vertex
	Triangles []Vertex
}

func vert(p mgl32.Vec3, c color.RGBA) Vertex {
	return Vertex{Position: p, Color: [4]uint8{c.R, c.G, c.B, c.A}}
}

// Line adds the segment from a to b.
func (m *Mesh) Line(a, b mgl32.Vec3, c color.RGBA) {
	m.Lines = append(m.Lines, vert(a, c), vert(b, c))
}

// Triangle adds the triangle a, b, c.
func (m *Mesh) Triangle(a, b, c mgl32.Vec3, col color.RGBA) {
	m.Triangles = append(m.Triangles, vert(a, col), vert(b, col), vert(c, col))
}

// Quad adds the quad v0..v3 as the triangles v0, v1, v2 and v2, v3,
// v0.
func (m *Mesh) Quad(v0, v1, v2, v3 mgl32.Vec3, c color.RGBA) {
	m.Triangle(v0, v1, v2, c)
	m.Triangle(v2, v3, v0, c)
}

// Append adds the lines and triangles of o.
func (m *Mesh) Append(o Mesh) {
	m.Lines = append(m.Lines, o.Lines...)
	m.Triangles = append(m.Triangles, o.Triangles...)
}

// Transform returns a copy of m with positions transformed by t.
func (m Mesh) Transform(t mgl32.Mat4) Mesh {
	xf := func(vs []Vertex) []Vertex {
		out := make([]Vertex, len(vs))
		for i, v := range vs {
			out[i] = Vertex{Position: mgl32.TransformCoordinate(v.Position, t), Color: v.Color}
		}
		return out
	}
	return Mesh{Lines: xf(m.Lines), Triangles: xf(m.Triangles)}
}

// Empty reports whether m has no primitives.
func (m Mesh) Empty() bool {
	return len(m.Lines) == 0 && len(m.Triangles) == 0
}

// Bounds returns the bounding box of the vertices of m.
func (m Mesh) Bounds() (lo, hi mgl32.Vec3) {
	inf := math32.Inf(1)
	lo = mgl32.Vec3{inf, inf, inf}
	hi = lo.Mul(-1)
	for _, vs := range [][]Vertex{m.Lines, m.Triangles} {
		for _, v := range vs {
			for i := range v.Position {
				lo[i] = min(lo[i], v.Position[i])
				hi[i] = max(hi[i], v.Position[i])
			}
		}
	}
	return lo, hi
}

// IntersectRay returns the distance along dir to the closest
// triangle of m hit by the ray from origin.
func (m Mesh) IntersectRay(origin, dir mgl32.Vec3) (float32, bool) {
	best, hit := math32.Inf(1), false
	for i := 0; i+2 < len(m.Triangles); i += 3 {
		t, ok := intersectTriangle(origin, dir,
			m.Triangles[i].Position, m.Triangles[i+1].Position, m.Triangles[i+2].Position)
		if ok && t < best {
			best, hit = t, true
		}
	}
	return best, hit
}

// intersectTriangle is the Möller-Trumbore ray triangle test.
func intersectTriangle(o, d, v0, v1, v2 mgl32.Vec3) (float32, bool) {
	const eps = 1e-7
	e1, e2 := v1.Sub(v0), v2.Sub(v0)
	p := d.Cross(e2)
	det := e1.Dot(p)
	if math32.Abs(det) < eps {
		return 0, false
	}
	inv := 1 / det
	s := o.Sub(v0)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := d.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	return t, t > eps
}
