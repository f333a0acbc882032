// SPDX-License-Identifier: Unlicense OR MIT

package scene

import (
	"image"
	"image/color"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neocogi.org/f32"
)

func TestPointerEvents(t *testing.T) {
	p := NewPointer()
	at := func(x, y float32, b ButtonState) EventKind {
		return p.Update(PointerState{Pos: f32.Pt(x, y), Button: b}).Kind
	}
	assert.Equal(t, EventNone, at(1, 1, ButtonReleased))
	assert.Equal(t, EventNone, at(1, 1, ButtonReleased))
	assert.Equal(t, EventMove, at(2, 1, ButtonReleased))
	assert.Equal(t, EventClick, at(2, 1, ButtonPressed))
	assert.Equal(t, EventDrag, at(5, 1, ButtonPressed))
	assert.Equal(t, EventRelease, at(5, 1, ButtonReleased))

	e := p.Update(PointerState{Pos: f32.Pt(5, 1), Button: ButtonScroll, Scroll: -2})
	assert.Equal(t, EventScroll, e.Kind)
	assert.Equal(t, float32(-2), e.Scroll)
	p.ResetButton()
	// Pressing after a reset is not a click.
	assert.Equal(t, EventNone, at(5, 1, ButtonPressed))
	assert.Equal(t, EventDrag, at(6, 2, ButtonPressed))
}

func TestPointerDragPositions(t *testing.T) {
	p := NewPointer()
	p.Update(PointerState{Pos: f32.Pt(0, 0), Button: ButtonReleased})
	p.Update(PointerState{Pos: f32.Pt(1, 1), Button: ButtonPressed, Pressure: 0.5})
	e := p.Update(PointerState{Pos: f32.Pt(4, 5), Button: ButtonPressed, Pressure: 0.75})
	assert.Equal(t, Event{Kind: EventDrag, From: f32.Pt(1, 1), To: f32.Pt(4, 5), Pressure: 0.75}, e)
}

func vecNear(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	assert.True(t, want.ApproxEqualThreshold(got, 1e-4), "want %v, got %v", want, got)
}

func TestCameraDefaults(t *testing.T) {
	c := NewCamera(mgl32.Vec3{1, 2, 3}, 10, 2)
	vecNear(t, mgl32.Vec3{1, 2, 13}, c.Eye())
	vecNear(t, mgl32.Vec3{0, 1, 0}, c.Up())
	vecNear(t, mgl32.Vec3{1, 0, 0}, c.Right())
	// The target projects to the center of the view.
	clip := c.ViewProjection().Mul4x1(c.Target.Vec4(1))
	assert.InDelta(t, 0, clip.X()/clip.W(), 1e-5)
	assert.InDelta(t, 0, clip.Y()/clip.W(), 1e-5)

	c.Zoom(-100)
	assert.Equal(t, float32(MinDistance), c.Distance)
	c.Zoom(1.5)
	assert.Equal(t, float32(2), c.Distance)
}

func TestCameraOrbit(t *testing.T) {
	size := image.Pt(200, 100)
	c := NewCamera(mgl32.Vec3{}, 5, 2)
	c.Orbit(size, f32.Pt(100, 50), f32.Pt(100, 50))
	assert.True(t, c.Rotation.ApproxEqual(mgl32.QuatIdent()))

	c.Orbit(size, f32.Pt(100, 50), f32.Pt(140, 50))
	eye := c.Eye()
	assert.InDelta(t, 5, eye.Len(), 1e-4)
	// A drag to the right turns the camera to the left of the target.
	assert.Less(t, eye.X(), float32(0))
	assert.InDelta(t, 0, eye.Y(), 1e-4)
	vecNear(t, mgl32.Vec3{}, c.Target)
}

func TestCameraPan(t *testing.T) {
	size := image.Pt(100, 100)
	c := NewCamera(mgl32.Vec3{}, 4, 1)
	c.Pan(size, f32.Pt(50, 50), f32.Pt(60, 40))
	scale := 2 * 4 * math32.Tan(c.FovY/2) / 100
	vecNear(t, mgl32.Vec3{-10 * scale, -10 * scale, 0}, c.Target)
	vecNear(t, c.Target.Add(mgl32.Vec3{0, 0, 4}), c.Eye())
}

func TestCameraRay(t *testing.T) {
	c := NewCamera(mgl32.Vec3{}, 5, 1)
	o, d := c.Ray(image.Pt(64, 64), f32.Pt(32, 32))
	vecNear(t, mgl32.Vec3{0, 0, -1}, d)
	assert.InDelta(t, 0, o.X(), 1e-4)
	assert.InDelta(t, 0, o.Y(), 1e-4)

	cube := Cube(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}, color.RGBA{A: 0xff})
	dist, ok := cube.IntersectRay(c.Eye().Add(mgl32.Vec3{0.3, 0.2, 0}), d)
	require.True(t, ok)
	assert.InDelta(t, 4, dist, 1e-4)

	_, ok = cube.IntersectRay(c.Eye(), mgl32.Vec3{0, 0, 1})
	assert.False(t, ok)
}

func TestView3D(t *testing.T) {
	v := NewView3D(NewCamera(mgl32.Vec3{}, 5, 1), image.Pt(200, 100))
	assert.Equal(t, float32(2), v.Camera().Aspect)
	before := v.PVM()

	_, handled := v.HandlePointer(PointerState{Pos: f32.Pt(100, 50), Button: ButtonReleased})
	assert.False(t, handled)
	v.HandlePointer(PointerState{Pos: f32.Pt(100, 50), Button: ButtonPressed})
	e, handled := v.HandlePointer(PointerState{Pos: f32.Pt(120, 50), Button: ButtonPressed})
	assert.True(t, handled)
	assert.Equal(t, EventDrag, e.Kind)
	assert.NotEqual(t, before, v.PVM())

	e, handled = v.HandlePointer(PointerState{Pos: f32.Pt(120, 50), Button: ButtonScroll, Scroll: -10})
	assert.True(t, handled)
	assert.Equal(t, EventScroll, e.Kind)
	assert.Equal(t, float32(MinDistance), v.Camera().Distance)

	v.SetMode(Pan)
	target := v.Camera().Target
	v.HandlePointer(PointerState{Pos: f32.Pt(10, 10), Button: ButtonReleased})
	v.HandlePointer(PointerState{Pos: f32.Pt(10, 10), Button: ButtonPressed})
	v.HandlePointer(PointerState{Pos: f32.Pt(30, 10), Button: ButtonPressed})
	assert.NotEqual(t, target, v.Camera().Target)

	v.Resize(image.Pt(50, 100))
	assert.Equal(t, float32(0.5), v.Camera().Aspect)
}

func TestViewCameraAccessors(t *testing.T) {
	v := NewView3D(NewCamera(mgl32.Vec3{1, 0, 0}, 5, 1), image.Pt(100, 100))
	assert.InDelta(t, 5, v.Camera().Eye().Sub(v.Camera().Target).Len(), 1e-4)
	assert.InDelta(t, 1, v.Camera().Up().Len(), 1e-4)
	assert.InDelta(t, 0, v.Camera().Up().Dot(v.Camera().Right()), 1e-4)
	assert.Equal(t, v.PVM(), v.Camera().ViewProjection())
	origin, dir := v.Camera().Ray(v.Size(), f32.Pt(50, 50))
	assert.InDelta(t, 1, dir.Len(), 1e-4)
	// The center ray heads for the target.
	toTarget := v.Camera().Target.Sub(origin).Normalize()
	assert.InDelta(t, 1, dir.Dot(toTarget), 1e-4)
}

func TestGrid(t *testing.T) {
	g := GridXZ(mgl32.Vec3{}, 10, 20)
	require.Len(t, g.Lines, 2*2*21)
	assert.Empty(t, g.Triangles)
	assert.Equal(t, [4]uint8{0x3f, 0x3f, 0x3f, 0xff}, g.Lines[0].Color)
	assert.Equal(t, [4]uint8{0xff, 0xff, 0xff, 0xff}, g.Lines[2].Color)
	assert.Equal(t, [4]uint8{0x3f, 0x3f, 0x3f, 0xff}, g.Lines[20].Color)
	lo, hi := g.Bounds()
	vecNear(t, mgl32.Vec3{-5, 0, -5}, lo)
	vecNear(t, mgl32.Vec3{5, 0, 5}, hi)

	lo, hi = GridXY(mgl32.Vec3{0, 0, 1}, 2, 2).Bounds()
	vecNear(t, mgl32.Vec3{-1, -1, 1}, lo)
	vecNear(t, mgl32.Vec3{1, 1, 1}, hi)
}

func TestBasis(t *testing.T) {
	for _, n := range []mgl32.Vec3{{0, 0, 1}, {1, 0, 0}, {0, 3, 0}, {1, 2, 3}} {
		u, v := basis(n)
		assert.InDelta(t, 1, u.Len(), 1e-5)
		assert.InDelta(t, 1, v.Len(), 1e-5)
		assert.InDelta(t, 0, u.Dot(v), 1e-5)
		assert.InDelta(t, 0, u.Dot(n), 1e-5)
		assert.InDelta(t, 0, v.Dot(n), 1e-5)
	}
}

func TestShapes(t *testing.T) {
	red := color.RGBA{R: 0xff, A: 0xff}
	circle := Circle(mgl32.Vec3{}, mgl32.Vec3{0, 0, 2}, red, 16)
	require.Len(t, circle.Lines, 32)
	for _, v := range circle.Lines {
		assert.InDelta(t, 2, mgl32.Vec3(v.Position).Len(), 1e-4)
		assert.InDelta(t, 0, v.Position[2], 1e-5)
	}
	assert.Len(t, Disk(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, red, 8).Triangles, 24)
	assert.Len(t, Cone(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, 2, red, 8).Triangles, 48)

	cube := Cube(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}, red)
	assert.Len(t, cube.Triangles, 36)
	sphere := Sphere(mgl32.Vec3{1, 0, 0}, 2, 1, red)
	require.Len(t, sphere.Triangles, 24*6)
	for _, v := range sphere.Triangles {
		assert.InDelta(t, 2, mgl32.Vec3(v.Position).Sub(mgl32.Vec3{1, 0, 0}).Len(), 1e-4)
	}

	axes := Axes(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1})
	assert.Len(t, axes.Lines, 6)
	assert.Equal(t, [4]uint8{0x7f, 0, 0, 0xff}, axes.Lines[0].Color)
	assert.Equal(t, [4]uint8{0, 0, 0x7f, 0xff}, axes.Lines[4].Color)
	_, hi := axes.Bounds()
	vecNear(t, mgl32.Vec3{1, 1, 1}, hi)

	var m Mesh
	m.Quad(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{1, 1, 0}, mgl32.Vec3{0, 1, 0}, red)
	want := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {1, 1, 0}, {0, 1, 0}, {0, 0, 0}}
	for i, v := range m.Triangles {
		assert.Equal(t, want[i], mgl32.Vec3(v.Position))
	}
	moved := m.Transform(mgl32.Translate3D(0, 0, 2))
	assert.Equal(t, mgl32.Vec3{1, 0, 2}, mgl32.Vec3(moved.Triangles[1].Position))
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, mgl32.Vec3(m.Triangles[1].Position))
}
