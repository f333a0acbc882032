// SPDX-License-Identifier: Unlicense OR MIT

package scene

import (
	"image/color"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	gridLight = color.RGBA{0xff, 0xff, 0xff, 0xff}
	gridDark  = color.RGBA{0x3f, 0x3f, 0x3f, 0xff}

	AxisX = color.RGBA{0x7f, 0x00, 0x00, 0xff}
	AxisY = color.RGBA{0x00, 0x7f, 0x00, 0xff}
	AxisZ = color.RGBA{0x00, 0x00, 0x7f, 0xff}
)

// basis returns two unit vectors orthogonal to n and each other.
func basis(n mgl32.Vec3) (u, v mgl32.Vec3) {
	n = n.Normalize()
	if math32.Abs(n.X()) > math32.Abs(n.Z()) {
		u = mgl32.Vec3{-n.Y(), n.X(), 0}
	} else {
		u = mgl32.Vec3{0, -n.Z(), n.Y()}
	}
	u = u.Normalize()
	return u, n.Cross(u)
}

func grid(center mgl32.Vec3, length float32, steps int, a, b int) Mesh {
	var m Mesh
	steps = max(steps, 1)
	half := length / 2
	step := length / float32(steps)
	for i := 0; i <= steps; i++ {
		c := gridLight
		if i%10 == 0 {
			c = gridDark
		}
		off := -half + float32(i)*step
		var s, e mgl32.Vec3
		s[a], s[b] = off, -half
		e[a], e[b] = off, half
		m.Line(center.Add(s), center.Add(e), c)
	}
	for i := 0; i <= steps; i++ {
		c := gridLight
		if i%10 == 0 {
			c = gridDark
		}
		off := -half + float32(i)*step
		var s, e mgl32.Vec3
		s[a], s[b] = -half, off
		e[a], e[b] = half, off
		m.Line(center.Add(s), center.Add(e), c)
	}
	return m
}

// GridXY returns a square grid of steps+1 lines per axis in the xy
// plane. Every tenth line is dark.
func GridXY(center mgl32.Vec3, length float32, steps int) Mesh {
	return grid(center, length, steps, 0, 1)
}

// GridXZ is like GridXY in the xz plane.
func GridXZ(center mgl32.Vec3, length float32, steps int) Mesh {
	return grid(center, length, steps, 0, 2)
}

// ring returns the points of a circle around center in the plane
// orthogonal to normal, with the length of normal as radius.
func ring(center, normal mgl32.Vec3, segs int) []mgl32.Vec3 {
	u, v := basis(normal)
	r := normal.Len()
	pts := make([]mgl32.Vec3, segs+1)
	for i := range pts {
		s, c := math32.Sincos(2 * math32.Pi * float32(i) / float32(segs))
		pts[i] = center.Add(u.Mul(c * r)).Add(v.Mul(s * r))
	}
	return pts
}

// Circle returns the outline of a circle around center.
func Circle(center, normal mgl32.Vec3, c color.RGBA, segs int) Mesh {
	var m Mesh
	pts := ring(center, normal, segs)
	for i := 0; i < segs; i++ {
		m.Line(pts[i], pts[i+1], c)
	}
	return m
}

// Disk returns a filled circle around center.
func Disk(center, normal mgl32.Vec3, c color.RGBA, segs int) Mesh {
	var m Mesh
	pts := ring(center, normal, segs)
	for i := 0; i < segs; i++ {
		m.Triangle(center, pts[i], pts[i+1], c)
	}
	return m
}

// Cone returns a cone with its base disk around center and its apex
// at height along normal.
func Cone(center, normal mgl32.Vec3, height float32, c color.RGBA, segs int) Mesh {
	m := Disk(center, normal.Mul(-1), c, segs)
	apex := center.Add(normal.Normalize().Mul(height))
	pts := ring(center, normal, segs)
	for i := 0; i < segs; i++ {
		m.Triangle(apex, pts[i], pts[i+1], c)
	}
	return m
}

// planeQuad adds the quad of half axes x and y around center, in
// counter clockwise order.
func (m *Mesh) planeQuad(center, x, y mgl32.Vec3, c color.RGBA) {
	v0 := center.Sub(x).Add(y)
	v1 := center.Add(x).Add(y)
	v2 := center.Add(x).Sub(y)
	v3 := center.Sub(x).Sub(y)
	m.Quad(v0, v1, v2, v3, c)
}

// Plane returns the rectangle of half axes x and y around center.
func Plane(center, x, y mgl32.Vec3, c color.RGBA) Mesh {
	var m Mesh
	m.planeQuad(center, x.Mul(-1), y, c)
	return m
}

// Cube returns the box from lo to hi.
func Cube(lo, hi mgl32.Vec3, c color.RGBA) Mesh {
	axes := [3]mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	return CubeBasis(axes, lo, hi, c)
}

// CubeBasis returns the box from lo to hi in the frame of axes.
func CubeBasis(axes [3]mgl32.Vec3, lo, hi mgl32.Vec3, c color.RGBA) Mesh {
	center := lo.Add(hi).Mul(0.5)
	ext := hi.Sub(center)
	x := axes[0].Mul(ext.X())
	y := axes[1].Mul(ext.Y())
	z := axes[2].Mul(ext.Z())
	var m Mesh
	m.planeQuad(center.Add(z), x.Mul(-1), y, c)
	m.planeQuad(center.Sub(z), x, y, c)
	m.planeQuad(center.Sub(x), z.Mul(-1), y, c)
	m.planeQuad(center.Add(x), z, y, c)
	m.planeQuad(center.Add(y), z.Mul(-1), x, c)
	m.planeQuad(center.Sub(y), z, x, c)
	return m
}

// Sphere returns a sphere made of a cube subdivided subdiv times and
// projected to the sphere.
func Sphere(center mgl32.Vec3, radius float32, subdiv int, c color.RGBA) Mesh {
	one := mgl32.Vec3{1, 1, 1}
	cube := Cube(center.Sub(one), center.Add(one), c)
	// Recover the quads from their triangle pairs.
	var quads [][4]mgl32.Vec3
	for i := 0; i+5 < len(cube.Triangles); i += 6 {
		t := cube.Triangles[i : i+6]
		quads = append(quads, [4]mgl32.Vec3{t[0].Position, t[1].Position, t[2].Position, t[4].Position})
	}
	for ; subdiv > 0; subdiv-- {
		next := make([][4]mgl32.Vec3, 0, 4*len(quads))
		for _, q := range quads {
			vc := q[0].Add(q[1]).Add(q[2]).Add(q[3]).Mul(0.25)
			v01 := q[0].Add(q[1]).Mul(0.5)
			v12 := q[1].Add(q[2]).Mul(0.5)
			v23 := q[2].Add(q[3]).Mul(0.5)
			v30 := q[3].Add(q[0]).Mul(0.5)
			next = append(next,
				[4]mgl32.Vec3{q[0], v01, vc, v30},
				[4]mgl32.Vec3{q[1], v12, vc, v01},
				[4]mgl32.Vec3{q[2], v23, vc, v12},
				[4]mgl32.Vec3{q[3], v30, vc, v23},
			)
		}
		quads = next
	}
	var m Mesh
	for _, q := range quads {
		var p [4]mgl32.Vec3
		for i, v := range q {
			p[i] = center.Add(v.Sub(center).Normalize().Mul(radius))
		}
		m.Quad(p[0], p[1], p[2], p[3], c)
	}
	return m
}

// ArrowCone returns a line from start to end whose last pct is a
// cone.
func ArrowCone(start, end mgl32.Vec3, pct float32, c color.RGBA) Mesh {
	seg := end.Sub(start)
	tipStart := start.Add(seg.Mul(1 - pct))
	m := Cone(tipStart, seg.Mul(pct*0.5), seg.Len()*pct, c, 8)
	m.Line(start, tipStart, c)
	return m
}

// ArrowBox is like ArrowCone with a box tip aligned on axes.
func ArrowBox(axes [3]mgl32.Vec3, start, end mgl32.Vec3, c color.RGBA) Mesh {
	seg := end.Sub(start)
	tip := seg.Mul(0.1).Len()
	ext := mgl32.Vec3{tip, tip, tip}
	tipStart := start.Add(seg.Mul(0.8))
	lo := tipStart.Add(seg.Mul(0.1)).Sub(ext)
	hi := end.Sub(seg.Mul(0.1)).Add(ext)
	m := CubeBasis(axes, lo, hi, c)
	m.Line(start, tipStart, c)
	return m
}

// ArrowSphere is like ArrowCone with a sphere tip of the given
// radius.
func ArrowSphere(start, end mgl32.Vec3, radius float32, c color.RGBA) Mesh {
	tipStart := start.Add(end.Sub(start).Mul(0.8))
	m := Sphere(tipStart, radius, 3, c)
	m.Line(start, tipStart, c)
	return m
}

// Axes returns cone arrows from center to x, y and z, colored red,
// green and blue.
func Axes(center, x, y, z mgl32.Vec3) Mesh {
	m := ArrowCone(center, x, 0.4, AxisX)
	m.Append(ArrowCone(center, y, 0.4, AxisY))
	m.Append(ArrowCone(center, z, 0.4, AxisZ))
	return m
}

// BoxAxes is like Axes with box tips.
func BoxAxes(center, x, y, z mgl32.Vec3) Mesh {
	axes := [3]mgl32.Vec3{x, y, z}
	m := ArrowBox(axes, center, x, AxisX)
	m.Append(ArrowBox(axes, center, y, AxisY))
	m.Append(ArrowBox(axes, center, z, AxisZ))
	return m
}
