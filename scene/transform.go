package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Sink receives every drawable node during Draw.
// clip is viewProjection * world; world is passed on for lighting.
type Sink interface {
	DrawNode(clip, world mgl32.Mat4, geometry Geometry, indexCount int32)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(clip, world mgl32.Mat4, geometry Geometry, indexCount int32)

func (f SinkFunc) DrawNode(clip, world mgl32.Mat4, geometry Geometry, indexCount int32) {
	f(clip, world, geometry, indexCount)
}

// PivotRotation rotates about pivot:
// T(pivot) * Rz(roll) * Ry(yaw) * Rx(pitch) * T(-pivot),
// with rotation laid out as (yaw, pitch, roll).
func PivotRotation(rotation, pivot mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(pivot[0], pivot[1], pivot[2]).
		Mul4(mgl32.HomogRotate3DZ(rotation[2])).
		Mul4(mgl32.HomogRotate3DY(rotation[0])).
		Mul4(mgl32.HomogRotate3DX(rotation[1])).
		Mul4(mgl32.Translate3D(-pivot[0], -pivot[1], -pivot[2]))
}

// LocalTransform is T(position) * PivotRotation(rotation, referencePoint).
func LocalTransform(n *Node) mgl32.Mat4 {
	return mgl32.Translate3D(n.Position[0], n.Position[1], n.Position[2]).
		Mul4(PivotRotation(n.Rotation, n.ReferencePoint))
}

// UpdateTransforms recomputes world transforms of root and its subtree.
// Children are composed with the world transform their parent got in this
// same pass.
func (g *Graph) UpdateTransforms(root NodeID, parentWorld mgl32.Mat4) {
	n := g.Node(root)
	n.world = parentWorld.Mul4(LocalTransform(n))
	for _, child := range n.children {
		g.UpdateTransforms(child, n.world)
	}
}

// Draw hands every node with geometry to sink, parents first and siblings in
// insertion order. Grouping nodes are traversed but not drawn.
func (g *Graph) Draw(root NodeID, viewProjection mgl32.Mat4, sink Sink) {
	n := g.Node(root)
	if n.Geometry != nil {
		sink.DrawNode(viewProjection.Mul4(n.world), n.world, n.Geometry, n.IndexCount)
	}
	for _, child := range n.children {
		g.Draw(child, viewProjection, sink)
	}
}
