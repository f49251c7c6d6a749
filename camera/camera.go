// Package camera implements the free-flying and chasing camera model.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mogaika/heliview/input"
	"github.com/mogaika/heliview/utils"
)

// Origin is the pose the free camera starts from and returns to on reset.
var Origin = mgl32.Vec3{1, 1, -1}

var worldUp = mgl32.Vec3{0, 1, 0}

type Params struct {
	TransStep float32 // units per tick
	RotStep   float32 // radians per tick
	Radius    float32 // chase standoff
	Gain      float32 // chase gain per tick
}

func DefaultParams() Params {
	return Params{
		TransStep: 1.0,
		RotStep:   0.03,
		Radius:    30,
		Gain:      0.02,
	}
}

// Camera is either free (Position plus Yaw/Pitch/Roll) or chasing a target.
// Angles are never wrapped, only their sine and cosine are used.
type Camera struct {
	Position mgl32.Vec3
	Yaw      float32 // phi, about Y
	Pitch    float32 // theta, about X
	Roll     float32 // psi, about Z
	Chase    bool

	Params Params
}

func New(params Params) Camera {
	return Camera{Position: Origin, Params: params}
}

// Reset returns the free pose to Origin. The chase flag is kept.
func (c *Camera) Reset() {
	c.Position = Origin
	c.Yaw, c.Pitch, c.Roll = 0, 0, 0
}

// Toggle switches between free and chase. Free angles are kept as they are,
// so leaving chase mode resumes the last free orientation.
func (c *Camera) Toggle() { c.Chase = !c.Chase }

// Apply integrates one tick of free-mode commands with fixed steps.
// Translation is taken in the camera yaw frame.
func (c *Camera) Apply(cmds input.Set) {
	step := c.Params.TransStep
	rot := c.Params.RotStep
	sin := float32(math.Sin(float64(c.Yaw)))
	cos := float32(math.Cos(float64(c.Yaw)))

	if cmds.Active(input.CameraLeft) {
		c.Position[0] += cos * step
		c.Position[2] += sin * step
	}
	if cmds.Active(input.CameraRight) {
		c.Position[0] -= cos * step
		c.Position[2] -= sin * step
	}
	if cmds.Active(input.CameraForward) {
		c.Position[0] -= sin * step
		c.Position[2] += cos * step
	}
	if cmds.Active(input.CameraBack) {
		c.Position[0] += sin * step
		c.Position[2] -= cos * step
	}
	// the view translates by +Position, so the world moves opposite to the eye
	if cmds.Active(input.CameraDown) {
		c.Position[1] += step
	}
	if cmds.Active(input.CameraUp) {
		c.Position[1] -= step
	}

	if cmds.Active(input.CameraYawRight) {
		c.Yaw += rot
	}
	if cmds.Active(input.CameraYawLeft) {
		c.Yaw -= rot
	}
	if cmds.Active(input.CameraPitchUp) {
		c.Pitch += rot
	}
	if cmds.Active(input.CameraPitchDown) {
		c.Pitch -= rot
	}
	if cmds.Active(input.CameraRollLeft) {
		c.Roll += rot
	}
	if cmds.Active(input.CameraRollRight) {
		c.Roll -= rot
	}

	if cmds.Active(input.CameraReset) {
		c.Reset()
	}
}

// FreeView is Rx(pitch) * Ry(yaw) * Rz(roll) * T(position).
// The rotation is applied after the translation; swapping the order turns
// orbiting into panning.
func (c *Camera) FreeView() mgl32.Mat4 {
	return mgl32.HomogRotate3DX(c.Pitch).
		Mul4(mgl32.HomogRotate3DY(c.Yaw)).
		Mul4(mgl32.HomogRotate3DZ(c.Roll)).
		Mul4(mgl32.Translate3D(c.Position[0], c.Position[1], c.Position[2]))
}

// ChaseLaw runs one step of the per-axis proportional controller
//
//	c -= k * (c - sign(c - t)*R - t)
//
// which pulls each axis towards t +- R on the side the camera is on. The side
// flips when the camera crosses the target on an axis, which shows as a snap.
func ChaseLaw(cam, target mgl32.Vec3, radius, gain float32) mgl32.Vec3 {
	for i := range cam {
		offset := utils.Sign(cam[i]-target[i]) * radius
		cam[i] -= gain * (cam[i] - offset - target[i])
	}
	return cam
}

// Follow moves the camera one chase step towards target.
func (c *Camera) Follow(target mgl32.Vec3) {
	c.Position = ChaseLaw(c.Position, target, c.Params.Radius, c.Params.Gain)
}

// ChaseView looks from the camera position at target with +Y up.
func (c *Camera) ChaseView(target mgl32.Vec3) mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, target, worldUp)
}

// View returns the view matrix for the current mode. In chase mode the
// camera takes one Follow step first.
func (c *Camera) View(target mgl32.Vec3) mgl32.Mat4 {
	if c.Chase {
		c.Follow(target)
		return c.ChaseView(target)
	}
	return c.FreeView()
}
