package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mogaika/heliview/input"
	"github.com/stretchr/testify/assert"
)

const eps = 1e-5

func TestResetRestoresOriginAndKeepsMode(t *testing.T) {
	for _, chase := range []bool{false, true} {
		c := New(DefaultParams())
		c.Position = mgl32.Vec3{40, -3, 12}
		c.Yaw, c.Pitch, c.Roll = 7, -2, 0.5
		c.Chase = chase

		c.Apply(input.Of(input.CameraReset))

		assert.Equal(t, mgl32.Vec3{1, 1, -1}, c.Position)
		assert.Zero(t, c.Yaw)
		assert.Zero(t, c.Pitch)
		assert.Zero(t, c.Roll)
		assert.Equal(t, chase, c.Chase)
	}
}

func TestFreeMovesUseYawFrame(t *testing.T) {
	p := DefaultParams()
	p.TransStep = 2

	c := New(p)
	c.Position = mgl32.Vec3{}
	c.Apply(input.Of(input.CameraForward))
	assert.True(t, c.Position.ApproxEqualThreshold(mgl32.Vec3{0, 0, 2}, eps), "%v", c.Position)

	c.Position = mgl32.Vec3{}
	c.Yaw = math.Pi / 2
	c.Apply(input.Of(input.CameraForward))
	assert.True(t, c.Position.ApproxEqualThreshold(mgl32.Vec3{-2, 0, 0}, eps), "%v", c.Position)

	c.Position = mgl32.Vec3{}
	c.Yaw = 0
	c.Apply(input.Of(input.CameraLeft, input.CameraUp))
	assert.True(t, c.Position.ApproxEqualThreshold(mgl32.Vec3{2, -2, 0}, eps), "%v", c.Position)

	// opposite commands cancel out
	c.Position = mgl32.Vec3{}
	c.Apply(input.Of(input.CameraLeft, input.CameraRight, input.CameraForward, input.CameraBack, input.CameraUp, input.CameraDown))
	assert.True(t, c.Position.ApproxEqualThreshold(mgl32.Vec3{}, eps), "%v", c.Position)
}

func TestFreeRotationSteps(t *testing.T) {
	c := New(DefaultParams())
	c.Apply(input.Of(input.CameraYawRight, input.CameraPitchUp, input.CameraRollRight))
	c.Apply(input.Of(input.CameraYawRight))

	assert.InDelta(t, 0.06, c.Yaw, 1e-6)
	assert.InDelta(t, 0.03, c.Pitch, 1e-6)
	assert.InDelta(t, -0.03, c.Roll, 1e-6)
}

func TestFreeViewOrder(t *testing.T) {
	c := New(DefaultParams())
	c.Position = mgl32.Vec3{3, -1, 2}
	c.Yaw, c.Pitch, c.Roll = 0.4, -0.2, 0.1

	expected := mgl32.HomogRotate3DX(-0.2).
		Mul4(mgl32.HomogRotate3DY(0.4)).
		Mul4(mgl32.HomogRotate3DZ(0.1)).
		Mul4(mgl32.Translate3D(3, -1, 2))
	assert.True(t, expected.ApproxEqualThreshold(c.FreeView(), eps))

	swapped := mgl32.Translate3D(3, -1, 2).
		Mul4(mgl32.HomogRotate3DX(-0.2)).
		Mul4(mgl32.HomogRotate3DY(0.4)).
		Mul4(mgl32.HomogRotate3DZ(0.1))
	assert.False(t, swapped.ApproxEqualThreshold(c.FreeView(), eps))
}

func TestChaseConvergesToRadiusPerAxis(t *testing.T) {
	const radius, gain = 10, 0.02
	target := mgl32.Vec3{5, 20, -7}

	for _, start := range []mgl32.Vec3{
		{100, 80, 60},   // outside
		{6, 21, -6},     // inside, positive side
		{2, 18, -9},     // inside, negative side
		{-40, 25, -100}, // mixed
	} {
		cam := start
		prev := cam
		for i := 0; i < 2000; i++ {
			cam = ChaseLaw(cam, target, radius, gain)
			for a := 0; a < 3; a++ {
				// a single step never moves further than gain times the error
				errBefore := math.Abs(float64(prev[a]-target[a])) - radius
				moved := math.Abs(float64(cam[a] - prev[a]))
				assert.LessOrEqual(t, moved, gain*math.Abs(errBefore)+1e-4)
			}
			prev = cam
		}
		for a := 0; a < 3; a++ {
			assert.InDelta(t, radius, math.Abs(float64(cam[a]-target[a])), 1e-3, "start %v axis %d", start, a)
			// the camera stays on the side it started from
			assert.Equal(t, start[a] > target[a], cam[a] > target[a])
		}
	}
}

func TestChaseOnTargetStaysPut(t *testing.T) {
	target := mgl32.Vec3{1, 2, 3}
	assert.Equal(t, target, ChaseLaw(target, target, 10, 0.02))
}

func TestChaseSignFlipSnaps(t *testing.T) {
	// camera just past the target on x: the pull reverses to the other side
	target := mgl32.Vec3{}
	left := ChaseLaw(mgl32.Vec3{-0.001, 10, 10}, target, 10, 0.5)
	right := ChaseLaw(mgl32.Vec3{0.001, 10, 10}, target, 10, 0.5)
	assert.Less(t, left[0], float32(-4))
	assert.Greater(t, right[0], float32(4))
}

func TestToggleKeepsFreeAngles(t *testing.T) {
	c := New(DefaultParams())
	c.Yaw, c.Pitch, c.Roll = 1, 2, 3

	c.Toggle()
	assert.True(t, c.Chase)
	c.View(mgl32.Vec3{50, 0, 50})
	c.Toggle()

	assert.False(t, c.Chase)
	assert.Equal(t, []float32{1, 2, 3}, []float32{c.Yaw, c.Pitch, c.Roll})
}

func TestViewBranchesOnMode(t *testing.T) {
	target := mgl32.Vec3{10, 0, 10}

	free := New(DefaultParams())
	assert.Equal(t, free.FreeView(), free.View(target))
	assert.Equal(t, Origin, free.Position)

	chase := New(DefaultParams())
	chase.Chase = true
	view := chase.View(target)
	assert.NotEqual(t, Origin, chase.Position)
	assert.True(t, mgl32.LookAtV(chase.Position, target, mgl32.Vec3{0, 1, 0}).ApproxEqualThreshold(view, eps))

	// the target sits straight ahead on the view axis
	eye := view.Mul4x1(target.Vec4(1))
	assert.InDelta(t, 0, eye[0], 1e-3)
	assert.InDelta(t, 0, eye[1], 1e-3)
	assert.Less(t, eye[2], float32(0))
}
