// SPDX-License-Identifier: Unlicense OR MIT

package scene

import (
	"image"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"neocogi.org/f32"
)

// MinDistance is the closest a camera gets to its target.
const MinDistance = 0.5

// Camera orbits Target at Distance. Rotation orients the camera; the
// identity looks down the negative z axis with y up.
type Camera struct {
	Target   mgl32.Vec3
	Distance float32
	Rotation mgl32.Quat
	// FovY is the vertical field of view in radians.
	FovY   float32
	Aspect float32
	Near   float32
	Far    float32
}

// NewCamera returns a camera looking at target from distance with a
// 45 degrees field of view.
func NewCamera(target mgl32.Vec3, distance, aspect float32) Camera {
	return Camera{
		Target:   target,
		Distance: max(distance, MinDistance),
		Rotation: mgl32.QuatIdent(),
		FovY:     math32.Pi / 4,
		Aspect:   aspect,
		Near:     0.1,
		Far:      1000,
	}
}

// Eye returns the camera position.
func (c Camera) Eye() mgl32.Vec3 {
	return c.Target.Add(c.Rotation.Rotate(mgl32.Vec3{0, 0, c.Distance}))
}

func (c Camera) Up() mgl32.Vec3 {
	return c.Rotation.Rotate(mgl32.Vec3{0, 1, 0})
}

func (c Camera) Right() mgl32.Vec3 {
	return c.Rotation.Rotate(mgl32.Vec3{1, 0, 0})
}

func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye(), c.Target, c.Up())
}

func (c Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(c.FovY, c.Aspect, c.Near, c.Far)
}

// ViewProjection returns the product of the projection and view
// matrices.
func (c Camera) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}

// Zoom moves the camera by delta towards its target, stopping at
// MinDistance.
func (c *Camera) Zoom(delta float32) {
	c.Distance = max(c.Distance+delta, MinDistance)
}

// trackball maps a view point to the unit sphere, or to a hyperbolic
// sheet outside of it.
func trackball(size image.Point, p f32.Point) mgl32.Vec3 {
	r := float32(min(size.X, size.Y)) / 2
	if r <= 0 {
		return mgl32.Vec3{0, 0, 1}
	}
	x := (p.X - float32(size.X)/2) / r
	y := (float32(size.Y)/2 - p.Y) / r
	d2 := x*x + y*y
	var z float32
	if d2 <= 0.5 {
		z = math32.Sqrt(1 - d2)
	} else {
		z = 0.5 / math32.Sqrt(d2)
	}
	return mgl32.Vec3{x, y, z}.Normalize()
}

// Orbit rotates the camera around its target following a pointer
// drag from from to to in a view of the given size.
func (c *Camera) Orbit(size image.Point, from, to f32.Point) {
	a, b := trackball(size, from), trackball(size, to)
	axis := a.Cross(b)
	if axis.Len() < 1e-6 {
		return
	}
	angle := math32.Acos(min(max(a.Dot(b), -1), 1))
	// The axis is in camera space; the camera turns against the drag.
	q := mgl32.QuatRotate(-angle, axis.Normalize())
	c.Rotation = c.Rotation.Mul(q).Normalize()
}

// Pan moves the target so that the point under the pointer at the
// target distance follows a drag from from to to.
func (c *Camera) Pan(size image.Point, from, to f32.Point) {
	if size.Y <= 0 {
		return
	}
	scale := 2 * c.Distance * math32.Tan(c.FovY/2) / float32(size.Y)
	d := to.Sub(from)
	move := c.Right().Mul(-d.X * scale).Add(c.Up().Mul(d.Y * scale))
	c.Target = c.Target.Add(move)
}

// Ray returns the world space ray through the view point p.
func (c Camera) Ray(size image.Point, p f32.Point) (origin, dir mgl32.Vec3) {
	x := 2*p.X/float32(size.X) - 1
	y := 1 - 2*p.Y/float32(size.Y)
	inv := c.ViewProjection().Inv()
	near := inv.Mul4x1(mgl32.Vec4{x, y, -1, 1})
	far := inv.Mul4x1(mgl32.Vec4{x, y, 1, 1})
	n := near.Vec3().Mul(1 / near.W())
	f := far.Vec3().Mul(1 / far.W())
	return n, f.Sub(n).Normalize()
}
