package heli

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mogaika/heliview/animation"
	"github.com/mogaika/heliview/config"
	"github.com/mogaika/heliview/frame"
	"github.com/mogaika/heliview/mesh"
	"github.com/mogaika/heliview/scene"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	uploaded []string
	fail     string
}

func (u *fakeUploader) Upload(m mesh.Mesh) (scene.Geometry, error) {
	if m.Name == u.fail {
		return nil, errors.New("out of memory")
	}
	u.uploaded = append(u.uploaded, m.Name)
	return m.Name, nil
}

func uploadedParts(t *testing.T) Parts {
	parts, err := Upload(&fakeUploader{}, ProceduralMeshes(200, 8))
	require.NoError(t, err)
	return parts
}

func TestUpload(t *testing.T) {
	u := &fakeUploader{}
	parts, err := Upload(u, ProceduralMeshes(200, 8))
	require.NoError(t, err)
	assert.Equal(t, partNames, u.uploaded)
	assert.Equal(t, int32(36), parts[MeshBody].IndexCount)
	assert.Equal(t, MeshDoor, parts[MeshDoor].Geometry)

	meshes := ProceduralMeshes(200, 8)
	delete(meshes, MeshDoor)
	_, err = Upload(u, meshes)
	assert.Error(t, err)

	_, err = Upload(&fakeUploader{fail: MeshTailRotor}, ProceduralMeshes(200, 8))
	assert.Error(t, err)
}

func TestBuildHierarchy(t *testing.T) {
	g := scene.New()
	table := animation.NewTable(g, animation.DefaultPath())
	p := DefaultParams()
	p.Helicopters = 3

	s, err := Build(g, table, uploadedParts(t), p)
	require.NoError(t, err)
	require.Len(t, s.Helicopters, 3)

	assert.Equal(t, g.Root(), g.Parent(s.Terrain))
	assert.Equal(t, 1+3*5, g.Len()-1)
	assert.Equal(t, s.Helicopters[0].Group, s.Chased)
	assert.Equal(t, scene.Nil, s.Pilot)

	for _, h := range s.Helicopters {
		assert.Equal(t, s.Terrain, g.Parent(h.Group))
		assert.Nil(t, g.Node(h.Group).Geometry)
		assert.Equal(t, []scene.NodeID{h.Body, h.Door, h.MainRotor, h.TailRotor}, g.Children(h.Group))
		assert.Equal(t, TailRotorHub, g.Node(h.TailRotor).ReferencePoint)
		assert.Equal(t, p.Altitude, g.Node(h.Group).Position[1])
	}

	// two spins per helicopter plus one flight path each
	assert.Equal(t, 3*3, table.Len())
}

func TestBuildStaggersAndPlaces(t *testing.T) {
	g := scene.New()
	path := animation.DefaultPath()
	table := animation.NewTable(g, path)
	p := DefaultParams()
	p.Helicopters = 2

	s, err := Build(g, table, uploadedParts(t), p)
	require.NoError(t, err)

	for i, h := range s.Helicopters {
		at := path.At(float64(i) * p.PhaseOffset)
		n := g.Node(h.Group)
		assert.InDelta(t, at.X, n.Position[0], 1e-5)
		assert.InDelta(t, at.Z, n.Position[2], 1e-5)
	}
	assert.NotEqual(t, g.Node(s.Helicopters[0].Group).Position, g.Node(s.Helicopters[1].Group).Position)
}

func TestBuildPilot(t *testing.T) {
	g := scene.New()
	table := animation.NewTable(g, animation.DefaultPath())
	p := DefaultParams()
	p.Helicopters = 2
	p.Pilot = 1

	s, err := Build(g, table, uploadedParts(t), p)
	require.NoError(t, err)
	assert.Equal(t, s.Helicopters[1].Group, s.Pilot)
	assert.Equal(t, 2*2+1, table.Len())
	for _, b := range table.Bindings() {
		assert.NotEqual(t, s.Pilot, b.Target)
	}
	assert.Equal(t, mgl32.Vec3{0, p.Altitude, 20}, g.Node(s.Pilot).Position)
}

func TestBuildRejectsBadParams(t *testing.T) {
	for _, test := range []struct {
		name   string
		mutate func(*Params)
	}{
		{"no helicopters", func(p *Params) { p.Helicopters = 0 }},
		{"pilot out of range", func(p *Params) { p.Pilot = p.Helicopters }},
	} {
		g := scene.New()
		p := DefaultParams()
		test.mutate(&p)
		_, err := Build(g, animation.NewTable(g, animation.DefaultPath()), uploadedParts(t), p)
		assert.Error(t, err, test.name)
	}

	g := scene.New()
	parts := uploadedParts(t)
	delete(parts, MeshMainRotor)
	_, err := Build(g, animation.NewTable(g, animation.DefaultPath()), parts, DefaultParams())
	assert.Error(t, err)
}

func TestProceduralTailRotorAroundHub(t *testing.T) {
	tail := ProceduralMeshes(100, 2)[MeshTailRotor]
	var centre mgl32.Vec3
	for i := 0; i < tail.VertexCount(); i++ {
		centre = centre.Add(mgl32.Vec3{tail.Vertices[i*3], tail.Vertices[i*3+1], tail.Vertices[i*3+2]})
	}
	centre = centre.Mul(1 / float32(tail.VertexCount()))
	assert.True(t, centre.ApproxEqualThreshold(TailRotorHub, 1e-5), "%v", centre)
}

func TestLoadMeshesWithoutFile(t *testing.T) {
	meshes, err := LoadMeshes("", 100, 2)
	require.NoError(t, err)
	assert.Len(t, meshes, len(partNames))

	_, err = LoadMeshes("does/not/exist.gltf", 100, 2)
	assert.Error(t, err)
}

func TestSetupFromConfig(t *testing.T) {
	c := config.Default()
	c.Scene.Helicopters = 2
	c.Pilot.Index = 1
	c.Camera.Chase = true

	st, s, err := Setup(c, NameUploader{}, 800, 400)
	require.NoError(t, err)
	assert.Equal(t, s.Chased, st.Chased)
	assert.Equal(t, s.Helicopters[1].Group, st.Pilot)
	assert.True(t, st.Camera.Chase)
	assert.Equal(t, float32(2), st.Projection.Aspect)
	assert.Equal(t, c.Scene.PathPeriod, st.Animations.Path().Period)
	assert.Equal(t, MeshBody, st.Graph.Node(s.Helicopters[0].Body).Geometry)
	assert.Len(t, s.Meshes, len(partNames))

	var sink frame.CountingSink
	st = frame.Tick(st, 0.1, nil, &sink)
	assert.Equal(t, 1+2*4, sink.Calls)
}
