// Package scene implements the scene graph: an arena of transform nodes
// linked by ids, with top-down world transform propagation.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mogaika/heliview/utils"
	"github.com/pkg/errors"
)

// NodeID identifies a node in a Graph.
type NodeID int

// Nil represents an invalid NodeID.
const Nil NodeID = 0

var (
	ErrUnknownNode = errors.New("unknown node")
	ErrParented    = errors.New("node already has a parent")
	ErrCycle       = errors.New("node is an ancestor of its new parent")
	ErrRoot        = errors.New("root node can not be a child")
)

// Geometry is an opaque drawable handle produced by the rendering side.
// A nil Geometry marks a pure grouping node.
type Geometry interface{}

// Node is a single transform node.
// Rotation holds yaw (about Y), pitch (about X) and roll (about Z), in radians.
// The node rotates about ReferencePoint instead of its local origin.
type Node struct {
	Name string

	Position       mgl32.Vec3
	Rotation       mgl32.Vec3
	ReferencePoint mgl32.Vec3

	Geometry   Geometry
	IndexCount int32

	parent   NodeID
	children []NodeID
	world    mgl32.Mat4
}

// Graph owns every node. Slot 0 is reserved so that Nil is never a valid id.
type Graph struct {
	nodes []Node
	root  NodeID
}

// New creates a graph holding a single root node without geometry.
func New() *Graph {
	g := &Graph{nodes: make([]Node, 1, 16)}
	g.root = g.CreateNode()
	g.Node(g.root).Name = "root"
	return g
}

func (g *Graph) Root() NodeID { return g.root }

// Len returns the number of live nodes, root included.
func (g *Graph) Len() int { return len(g.nodes) - 1 }

func (g *Graph) Valid(id NodeID) bool {
	return id > Nil && int(id) < len(g.nodes)
}

// CreateNode creates a detached node with zero placement and no geometry.
// It has to be linked with AddChild to take part in traversals.
func (g *Graph) CreateNode() NodeID {
	g.nodes = append(g.nodes, Node{world: mgl32.Ident4()})
	return NodeID(len(g.nodes) - 1)
}

// Node returns the mutable node for id. The pointer is only valid until the
// next CreateNode call.
func (g *Graph) Node(id NodeID) *Node {
	if !g.Valid(id) {
		panic(errors.Wrapf(ErrUnknownNode, "node %d", id))
	}
	return &g.nodes[id]
}

func (g *Graph) Parent(id NodeID) NodeID { return g.Node(id).parent }

func (g *Graph) Children(id NodeID) []NodeID { return g.Node(id).children }

// World returns the world transform computed by the last UpdateTransforms.
func (g *Graph) World(id NodeID) mgl32.Mat4 { return g.Node(id).world }

// WorldPosition returns the translation part of the world transform.
func (g *Graph) WorldPosition(id NodeID) mgl32.Vec3 {
	return utils.Translation(g.Node(id).world)
}

// AddChild appends child to the children of parent.
// Tree invariants are checked here, so that the per-frame passes never have
// to deal with shared or cyclic links.
func (g *Graph) AddChild(parent, child NodeID) error {
	if !g.Valid(parent) {
		return errors.Wrapf(ErrUnknownNode, "parent %d", parent)
	}
	if !g.Valid(child) {
		return errors.Wrapf(ErrUnknownNode, "child %d", child)
	}
	if child == g.root {
		return ErrRoot
	}
	if g.nodes[child].parent != Nil {
		return errors.Wrapf(ErrParented, "child %d (parent %d)", child, g.nodes[child].parent)
	}
	for p := parent; p != Nil; p = g.nodes[p].parent {
		if p == child {
			return errors.Wrapf(ErrCycle, "child %d parent %d", child, parent)
		}
	}

	g.nodes[child].parent = parent
	g.nodes[parent].children = append(g.nodes[parent].children, child)
	return nil
}

func (g *Graph) MustAddChild(parent, child NodeID) {
	if err := g.AddChild(parent, child); err != nil {
		panic(err)
	}
}

// AttachGeometry sets the draw fields of a node. Placement is not touched.
func (g *Graph) AttachGeometry(id NodeID, geometry Geometry, indexCount int32) {
	n := g.Node(id)
	n.Geometry = geometry
	n.IndexCount = indexCount
}

// Walk calls f for root and each of its descendants, parents first.
func (g *Graph) Walk(root NodeID, f func(id NodeID, n *Node)) {
	f(root, &g.nodes[root])
	for _, child := range g.nodes[root].children {
		g.Walk(child, f)
	}
}
