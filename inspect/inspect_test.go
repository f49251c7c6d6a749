package inspect

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mogaika/heliview/animation"
	"github.com/mogaika/heliview/camera"
	"github.com/mogaika/heliview/frame"
	"github.com/mogaika/heliview/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type drawable struct{ name string }

func (d *drawable) String() string { return d.name }

func newState() (frame.State, scene.NodeID, scene.NodeID) {
	g := scene.New()
	heli := g.CreateNode()
	rotor := g.CreateNode()
	g.Node(heli).Name = "heli0"
	g.Node(heli).Position = mgl32.Vec3{1, 2, 3}
	g.MustAddChild(g.Root(), heli)
	g.MustAddChild(heli, rotor)
	g.AttachGeometry(rotor, &drawable{"main_rotor"}, 36)

	table := animation.NewTable(g, animation.DefaultPath())
	table.MustBind(rotor, animation.SpinX(20), 0)

	st := frame.State{
		Graph:      g,
		Animations: table,
		Camera:     camera.New(camera.DefaultParams()),
		Projection: frame.DefaultProjection(),
		Chased:     heli,
	}
	return frame.Tick(st, 0.5, nil, frame.NullSink{}), heli, rotor
}

func TestPublishCapturesState(t *testing.T) {
	st, heli, rotor := newState()
	store := NewStore()
	assert.Nil(t, store.Latest())

	snap := store.Publish(st)
	assert.Same(t, snap, store.Latest())
	assert.Equal(t, store.Session().String(), snap.Session)
	assert.Equal(t, uint64(1), snap.Frame)
	assert.Equal(t, 0.5, snap.Time)
	assert.Equal(t, int(heli), snap.Chased)
	assert.Equal(t, [3]float32(camera.Origin), snap.Camera.Position)

	require.Len(t, snap.Nodes, 3)
	root, h, r := snap.Nodes[0], snap.Nodes[1], snap.Nodes[2]
	assert.Equal(t, 0, root.Parent)
	assert.Equal(t, []int{int(heli)}, root.Children)
	assert.Equal(t, "heli0", h.Name)
	assert.Equal(t, int(rotor), r.ID)
	assert.Equal(t, int(heli), r.Parent)
	assert.Equal(t, "main_rotor", r.Geometry)
	assert.Equal(t, int32(36), r.IndexCount)
	assert.Equal(t, float32(10), r.Rotation[0])
	assert.Equal(t, [16]float32(st.Graph.World(rotor)), r.World)
	assert.Equal(t, "", h.Geometry)
}

func TestUnnamedNodesKeepTheirNames(t *testing.T) {
	st, _, _ := newState()
	store := NewStore()
	first := store.Publish(st)
	st = frame.Tick(st, 0.1, nil, frame.NullSink{})
	second := store.Publish(st)

	assert.NotEmpty(t, first.Nodes[2].Name)
	assert.Equal(t, first.Nodes[2].Name, second.Nodes[2].Name)
	assert.NotEqual(t, first.Nodes[0].Name, first.Nodes[2].Name)
}

func TestSnapshotJSON(t *testing.T) {
	st, _, _ := newState()
	data, err := json.Marshal(NewStore().Publish(st))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "nodes")
	assert.Contains(t, decoded, "camera")
	assert.Equal(t, float64(1), decoded["frame"])
}

func TestExportNodes(t *testing.T) {
	st, heli, _ := newState()
	nodes := NewStore().Publish(st).ExportNodes()
	require.Len(t, nodes, 3)
	assert.Equal(t, "heli0", nodes[1].Name)
	assert.Equal(t, "main_rotor", nodes[2].Mesh)
	assert.Equal(t, st.Graph.World(heli), nodes[1].World)
}

func TestGeometryName(t *testing.T) {
	assert.Equal(t, "", GeometryName(nil))
	assert.Equal(t, "body", GeometryName("body"))
	assert.Equal(t, "door", GeometryName(&drawable{"door"}))
	assert.Equal(t, "int", GeometryName(3))
}

func TestConcurrentReaders(t *testing.T) {
	st, _, _ := newState()
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if snap := store.Latest(); snap != nil {
					_ = len(snap.Nodes)
				}
			}
		}()
	}
	for i := 0; i < 50; i++ {
		st = frame.Tick(st, 0.01, nil, frame.NullSink{})
		store.Publish(st)
	}
	wg.Wait()
	assert.Equal(t, uint64(51), store.Latest().Frame)
}
