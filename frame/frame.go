// Package frame ties the scene graph, the animation table and the camera
// together into one tick per rendered frame.
package frame

import (
	"context"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mogaika/heliview/animation"
	"github.com/mogaika/heliview/camera"
	"github.com/mogaika/heliview/input"
	"github.com/mogaika/heliview/scene"
)

type Projection struct {
	FOV    float32 // vertical, degrees
	Aspect float32
	Near   float32
	Far    float32
}

func DefaultProjection() Projection {
	return Projection{FOV: 40, Aspect: 16.0 / 9.0, Near: 1, Far: 1000}
}

func (p Projection) Matrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(p.FOV), p.Aspect, p.Near, p.Far)
}

// PilotParams are the fixed per-tick steps of the piloted node.
type PilotParams struct {
	TransStep float32
	RotStep   float32
}

// State is everything a tick reads and writes. It is passed into Tick and
// handed back updated; nothing lives in package variables.
type State struct {
	Graph      *scene.Graph
	Animations *animation.Table
	Camera     camera.Camera
	Projection Projection

	// Chased is the node the chase camera follows.
	Chased scene.NodeID
	// Pilot is the node steered by pilot commands, scene.Nil for none.
	Pilot       scene.NodeID
	PilotParams PilotParams

	Frame uint64
	Time  float64
	Quit  bool

	// View and ViewProjection used by the last tick.
	View           mgl32.Mat4
	ViewProjection mgl32.Mat4
}

// Tick runs one frame:
// animate, propagate transforms, build view and projection, draw, then apply
// the commands sampled this tick so they take effect on the next one.
func Tick(st State, elapsed float64, cmds input.Set, sink scene.Sink) State {
	if elapsed < 0 || math.IsNaN(elapsed) {
		elapsed = 0
	}
	st.Frame++
	st.Time += elapsed

	st.Animations.Advance(elapsed)

	root := st.Graph.Root()
	st.Graph.UpdateTransforms(root, mgl32.Ident4())

	var target mgl32.Vec3
	if st.Chased != scene.Nil {
		target = st.Graph.WorldPosition(st.Chased)
	}
	st.View = st.Camera.View(target)
	st.ViewProjection = st.Projection.Matrix().Mul4(st.View)

	st.Graph.Draw(root, st.ViewProjection, sink)

	st.applyCommands(cmds)
	return st
}

func (st *State) applyCommands(cmds input.Set) {
	if cmds.Active(input.Quit) {
		st.Quit = true
	}
	if cmds.Active(input.ToggleChase) {
		st.Camera.Toggle()
	}
	if st.Camera.Chase {
		// position is owned by the chase law, only reset gets through
		if cmds.Active(input.CameraReset) {
			st.Camera.Reset()
		}
	} else {
		st.Camera.Apply(cmds)
	}

	if st.Pilot != scene.Nil {
		Steer(st.Graph.Node(st.Pilot), st.PilotParams, cmds)
	}
}

// Steer applies pilot commands to a node. Forward is -Z rotated by the yaw
// held in Rotation[0].
func Steer(n *scene.Node, p PilotParams, cmds input.Set) {
	sin := float32(math.Sin(float64(n.Rotation[0])))
	cos := float32(math.Cos(float64(n.Rotation[0])))

	if cmds.Active(input.PilotForward) {
		n.Position[0] -= sin * p.TransStep
		n.Position[2] -= cos * p.TransStep
	}
	if cmds.Active(input.PilotBack) {
		n.Position[0] += sin * p.TransStep
		n.Position[2] += cos * p.TransStep
	}
	if cmds.Active(input.PilotDescend) {
		n.Position[1] -= p.TransStep
	}
	if cmds.Active(input.PilotAscend) {
		n.Position[1] += p.TransStep
	}
	if cmds.Active(input.PilotTurnRight) {
		n.Rotation[0] -= p.RotStep
	}
	if cmds.Active(input.PilotTurnLeft) {
		n.Rotation[0] += p.RotStep
	}
}

// Clock reports seconds elapsed since its previous call.
type Clock interface {
	Elapsed() float64
}

// Sampler reports the commands active this tick.
type Sampler interface {
	Sample() input.Set
}

// Run ticks until a quit command arrives or ctx is cancelled. observe, when
// not nil, sees the state after every tick.
func Run(ctx context.Context, st State, clock Clock, sampler Sampler, sink scene.Sink, observe func(State)) State {
	for !st.Quit {
		select {
		case <-ctx.Done():
			return st
		default:
		}

		st = Tick(st, clock.Elapsed(), sampler.Sample(), sink)
		if observe != nil {
			observe(st)
		}
	}
	return st
}
