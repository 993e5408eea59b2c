package graphics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a free-flying first person camera. It caches the combined
// projection-view matrix and tracks whether it changed since the renderer
// last consumed it.
type Camera struct {
	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32

	position mgl32.Vec3
	yaw      float32 // degrees, -90 looks down -Z
	pitch    float32 // degrees, clamped to ±89

	projView  mgl32.Mat4
	viewDirty bool
}

func NewCamera(width, height int) *Camera {
	c := &Camera{
		AspectRatio: float32(width) / float32(height),
		FOV:         45.0,
		NearPlane:   0.1,
		FarPlane:    1000.0,
		yaw:         -90,
	}
	c.update()
	return c
}

func (c *Camera) update() {
	c.projView = c.ProjectionMatrix().Mul4(c.ViewMatrix())
	c.viewDirty = true
}

// SetViewport updates the aspect ratio for a new framebuffer size.
func (c *Camera) SetViewport(width, height int) {
	if height == 0 {
		return
	}
	c.AspectRatio = float32(width) / float32(height)
	c.update()
}

// SetFOV changes the vertical field of view in degrees.
func (c *Camera) SetFOV(fov float32) {
	c.FOV = fov
	c.update()
}

func (c *Camera) Position() mgl32.Vec3 { return c.position }

func (c *Camera) SetPosition(p mgl32.Vec3) {
	if p == c.position {
		return
	}
	c.position = p
	c.update()
}

// Move translates the camera along its own axes: forward, right and world up.
func (c *Camera) Move(forward, right, up float32) {
	if forward == 0 && right == 0 && up == 0 {
		return
	}
	front := c.Front()
	side := front.Cross(mgl32.Vec3{0, 1, 0}).Normalize()
	c.position = c.position.
		Add(front.Mul(forward)).
		Add(side.Mul(right)).
		Add(mgl32.Vec3{0, up, 0})
	c.update()
}

// Rotate adds yaw and pitch in degrees.
func (c *Camera) Rotate(yaw, pitch float32) {
	if yaw == 0 && pitch == 0 {
		return
	}
	c.yaw += yaw
	c.pitch = mgl32.Clamp(c.pitch+pitch, -89, 89)
	c.update()
}

func (c *Camera) Yaw() float32   { return c.yaw }
func (c *Camera) Pitch() float32 { return c.pitch }

// Front returns the unit view direction.
func (c *Camera) Front() mgl32.Vec3 {
	yaw := mgl32.DegToRad(c.yaw)
	pitch := mgl32.DegToRad(c.pitch)
	return mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}.Normalize()
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.Front()), mgl32.Vec3{0, 1, 0})
}

func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

// ProjectionView returns projection * view.
func (c *Camera) ProjectionView() mgl32.Mat4 { return c.projView }

// IsViewDirty reports whether the camera changed since ClearViewDirty.
func (c *Camera) IsViewDirty() bool { return c.viewDirty }

// ClearViewDirty is called by the renderer once every renderable has seen the frame.
func (c *Camera) ClearViewDirty() { c.viewDirty = false }
