// Package heli builds the helicopter scene: terrain, a squadron of
// helicopters flying a shared figure-eight and their spinning rotors.
package heli

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mogaika/heliview/animation"
	"github.com/mogaika/heliview/mesh"
	"github.com/mogaika/heliview/scene"
	"github.com/pkg/errors"
)

// Mesh names looked up by the builder.
const (
	MeshTerrain   = "terrain"
	MeshBody      = "body"
	MeshDoor      = "door"
	MeshMainRotor = "main_rotor"
	MeshTailRotor = "tail_rotor"
)

var partNames = []string{MeshTerrain, MeshBody, MeshDoor, MeshMainRotor, MeshTailRotor}

// TailRotorHub is the tail rotor pivot in helicopter space.
var TailRotorHub = mgl32.Vec3{0.35, 2.3, 10.4}

type Params struct {
	Helicopters   int
	PhaseOffset   float64 // seconds between consecutive helicopters on the path
	MainRotorRate float32 // radians per second
	TailRotorRate float32
	Altitude      float32
	// Pilot is the index of the hand-flown helicopter, -1 for none.
	Pilot int
}

func DefaultParams() Params {
	return Params{
		Helicopters:   5,
		PhaseOffset:   0.8,
		MainRotorRate: 20,
		TailRotorRate: 5,
		Altitude:      15,
		Pilot:         -1,
	}
}

// Part is an uploaded mesh.
type Part struct {
	Geometry   scene.Geometry
	IndexCount int32
}

type Parts map[string]Part

// Uploader turns mesh data into a drawable handle.
type Uploader interface {
	Upload(m mesh.Mesh) (scene.Geometry, error)
}

// Upload validates and uploads every part the builder needs.
func Upload(u Uploader, meshes map[string]mesh.Mesh) (Parts, error) {
	parts := make(Parts, len(partNames))
	for _, name := range partNames {
		m, ok := meshes[name]
		if !ok {
			return nil, errors.Errorf("mesh %q is missing", name)
		}
		if err := m.Validate(); err != nil {
			return nil, err
		}
		geometry, err := u.Upload(m)
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to upload %q", name)
		}
		parts[name] = Part{Geometry: geometry, IndexCount: m.IndexCount()}
	}
	return parts, nil
}

type Helicopter struct {
	Group     scene.NodeID
	Body      scene.NodeID
	Door      scene.NodeID
	MainRotor scene.NodeID
	TailRotor scene.NodeID
}

type Scene struct {
	Terrain     scene.NodeID
	Helicopters []Helicopter
	// Chased is the group of the first helicopter.
	Chased scene.NodeID
	// Pilot is the hand-flown group or scene.Nil.
	Pilot scene.NodeID
	// Meshes the parts were uploaded from, set by Setup.
	Meshes map[string]mesh.Mesh
}

// Build creates root -> terrain -> helicopter groups -> parts and binds the
// rotor spins and flight paths. Followers start placed on the path.
func Build(g *scene.Graph, table *animation.Table, parts Parts, p Params) (*Scene, error) {
	if p.Helicopters < 1 {
		return nil, errors.Errorf("need at least one helicopter, got %d", p.Helicopters)
	}
	if p.Pilot >= p.Helicopters {
		return nil, errors.Errorf("pilot index %d out of %d helicopters", p.Pilot, p.Helicopters)
	}
	for _, name := range partNames {
		if _, ok := parts[name]; !ok {
			return nil, errors.Errorf("part %q is missing", name)
		}
	}

	s := &Scene{Pilot: scene.Nil}
	s.Terrain = g.CreateNode()
	g.Node(s.Terrain).Name = MeshTerrain
	if err := g.AddChild(g.Root(), s.Terrain); err != nil {
		return nil, err
	}
	attach(g, s.Terrain, parts[MeshTerrain])

	for i := 0; i < p.Helicopters; i++ {
		h, err := buildHelicopter(g, s.Terrain, parts, i)
		if err != nil {
			return nil, errors.Wrapf(err, "helicopter %d", i)
		}
		g.Node(h.Group).Position[1] = p.Altitude

		if err := table.Bind(h.MainRotor, animation.SpinX(p.MainRotorRate), 0); err != nil {
			return nil, err
		}
		if err := table.Bind(h.TailRotor, animation.SpinY(p.TailRotorRate), 0); err != nil {
			return nil, err
		}
		if i == p.Pilot {
			s.Pilot = h.Group
			g.Node(h.Group).Position[2] = 20
		} else if err := table.Bind(h.Group, animation.FollowPath(), float64(i)*p.PhaseOffset); err != nil {
			return nil, err
		}
		s.Helicopters = append(s.Helicopters, h)
	}
	s.Chased = s.Helicopters[0].Group
	table.Place()

	log.Printf("[heli] built %d helicopters, %d nodes, %d bindings", len(s.Helicopters), g.Len(), table.Len())
	return s, nil
}

func buildHelicopter(g *scene.Graph, parent scene.NodeID, parts Parts, index int) (Helicopter, error) {
	h := Helicopter{
		Group:     g.CreateNode(),
		Body:      g.CreateNode(),
		Door:      g.CreateNode(),
		MainRotor: g.CreateNode(),
		TailRotor: g.CreateNode(),
	}
	g.Node(h.Group).Name = fmt.Sprintf("heli%d", index)
	g.Node(h.TailRotor).ReferencePoint = TailRotorHub

	for _, link := range []struct {
		parent, child scene.NodeID
		mesh          string
	}{
		{parent, h.Group, ""},
		{h.Group, h.Body, MeshBody},
		{h.Group, h.Door, MeshDoor},
		{h.Group, h.MainRotor, MeshMainRotor},
		{h.Group, h.TailRotor, MeshTailRotor},
	} {
		if err := g.AddChild(link.parent, link.child); err != nil {
			return h, err
		}
		if link.mesh != "" {
			g.Node(link.child).Name = fmt.Sprintf("heli%d.%s", index, link.mesh)
			attach(g, link.child, parts[link.mesh])
		}
	}
	return h, nil
}

func attach(g *scene.Graph, id scene.NodeID, part Part) {
	if part.Geometry != nil {
		g.AttachGeometry(id, part.Geometry, part.IndexCount)
	}
}
