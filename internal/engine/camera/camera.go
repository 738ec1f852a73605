// Package camera provides the orbit camera used to look around the tank.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center mgl32.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
	MoveSpeed       float32

	// Projection
	FOV  float32 // degrees
	Near float32
	Far  float32
}

// NewOrbitCamera creates an orbit camera framing the tank.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        80,
		RotationX:       0.52,
		RotationY:       0,
		MinDistance:     2,
		MaxDistance:     300,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		MoveSpeed:       0.02,
		FOV:             45,
		Near:            0.2,
		Far:             1000,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	pitch, yaw := c.RotationX, c.RotationY
	offset := mgl32.Vec3{
		c.Distance * math32.Cos(pitch) * math32.Sin(yaw),
		c.Distance * math32.Sin(pitch),
		c.Distance * math32.Cos(pitch) * math32.Cos(yaw),
	}
	return c.Center.Add(offset)
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Center, mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns a perspective projection for the given aspect
// ratio (width / height).
func (c *OrbitCamera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity
	c.RotationX = mgl32.Clamp(c.RotationX, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = mgl32.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// HandleMovement pans the center point. forward and right follow the
// camera's heading on the XZ plane; up moves along world Y.
func (c *OrbitCamera) HandleMovement(forward, right, up float32) {
	// Speed scales with distance for consistent feel
	speed := c.Distance * c.MoveSpeed

	sin, cos := math32.Sincos(c.RotationY)
	dirX, dirZ := sin, cos
	rightX, rightZ := cos, -sin

	// Negate forward so W moves into the scene
	c.Center[0] += (-dirX*forward + rightX*right) * speed
	c.Center[2] += (-dirZ*forward + rightZ*right) * speed
	c.Center[1] += up * speed
}

// Reset restores the starting view.
func (c *OrbitCamera) Reset() {
	fresh := NewOrbitCamera()
	c.Center = fresh.Center
	c.Distance = fresh.Distance
	c.RotationX = fresh.RotationX
	c.RotationY = fresh.RotationY
}
