// Package inspect captures read-only snapshots of the frame state for
// consumers outside the tick loop.
package inspect

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mogaika/heliview/frame"
	"github.com/mogaika/heliview/mesh"
	"github.com/mogaika/heliview/scene"
	"github.com/mogaika/heliview/utils"
)

type Node struct {
	ID             int         `json:"id"`
	Name           string      `json:"name"`
	Parent         int         `json:"parent"`
	Children       []int       `json:"children,omitempty"`
	Position       [3]float32  `json:"position"`
	Rotation       [3]float32  `json:"rotation"`
	ReferencePoint [3]float32  `json:"reference_point"`
	World          [16]float32 `json:"world"`
	Geometry       string      `json:"geometry,omitempty"`
	IndexCount     int32       `json:"index_count,omitempty"`
}

type Camera struct {
	Position [3]float32 `json:"position"`
	Yaw      float32    `json:"yaw"`
	Pitch    float32    `json:"pitch"`
	Roll     float32    `json:"roll"`
	Chase    bool       `json:"chase"`
	Radius   float32    `json:"chase_radius"`
}

type Snapshot struct {
	Session        string      `json:"session"`
	Captured       time.Time   `json:"captured"`
	Frame          uint64      `json:"frame"`
	Time           float64     `json:"time"`
	Chased         int         `json:"chased"`
	Pilot          int         `json:"pilot"`
	Camera         Camera      `json:"camera"`
	ViewProjection [16]float32 `json:"view_projection"`
	Nodes          []Node      `json:"nodes"`
}

// ExportNodes converts the snapshot nodes for mesh.ExportNodes.
func (s *Snapshot) ExportNodes() []mesh.ExportNode {
	nodes := make([]mesh.ExportNode, len(s.Nodes))
	for i, n := range s.Nodes {
		nodes[i] = mesh.ExportNode{Name: n.Name, World: n.World, Mesh: n.Geometry}
	}
	return nodes
}

// GeometryName labels a geometry handle: strings as they are, Stringers by
// their String, anything else by its type.
func GeometryName(g scene.Geometry) string {
	switch v := g.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Store keeps the latest snapshot. Publish is called from the tick loop,
// readers may run on any goroutine.
type Store struct {
	session uuid.UUID
	names   *utils.RandomNameGenerator

	lock     sync.RWMutex
	latest   *Snapshot
	assigned map[scene.NodeID]string
}

func NewStore() *Store {
	return &Store{
		session:  uuid.New(),
		names:    utils.NewRandomNameGenerator(0),
		assigned: make(map[scene.NodeID]string),
	}
}

func (s *Store) Session() uuid.UUID { return s.session }

// Latest returns the last published snapshot or nil before the first one.
// The snapshot must not be modified.
func (s *Store) Latest() *Snapshot {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.latest
}

// Publish captures st and makes it the latest snapshot.
func (s *Store) Publish(st frame.State) *Snapshot {
	snap := s.capture(st)
	s.lock.Lock()
	s.latest = snap
	s.lock.Unlock()
	return snap
}

func (s *Store) capture(st frame.State) *Snapshot {
	snap := &Snapshot{
		Session:        s.session.String(),
		Captured:       time.Now(),
		Frame:          st.Frame,
		Time:           st.Time,
		Chased:         int(st.Chased),
		Pilot:          int(st.Pilot),
		ViewProjection: st.ViewProjection,
		Camera: Camera{
			Position: st.Camera.Position,
			Yaw:      st.Camera.Yaw,
			Pitch:    st.Camera.Pitch,
			Roll:     st.Camera.Roll,
			Chase:    st.Camera.Chase,
			Radius:   st.Camera.Params.Radius,
		},
	}
	if st.Graph == nil {
		return snap
	}

	st.Graph.Walk(st.Graph.Root(), func(id scene.NodeID, n *scene.Node) {
		node := Node{
			ID:             int(id),
			Name:           s.nameOf(id, n),
			Parent:         int(st.Graph.Parent(id)),
			Position:       n.Position,
			Rotation:       n.Rotation,
			ReferencePoint: n.ReferencePoint,
			World:          st.Graph.World(id),
			Geometry:       GeometryName(n.Geometry),
			IndexCount:     n.IndexCount,
		}
		for _, child := range st.Graph.Children(id) {
			node.Children = append(node.Children, int(child))
		}
		snap.Nodes = append(snap.Nodes, node)
	})
	return snap
}

// nameOf gives unnamed nodes a stable random name.
func (s *Store) nameOf(id scene.NodeID, n *scene.Node) string {
	if n.Name != "" {
		return n.Name
	}
	name, ok := s.assigned[id]
	if !ok {
		name = s.names.RandomName()
		s.assigned[id] = name
	}
	return name
}
