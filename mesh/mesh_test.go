package mesh

import (
	"bytes"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var grey = [4]float32{0.5, 0.5, 0.5, 1}

func TestBox(t *testing.T) {
	m := Box("body", [3]float32{2, 4, 6}, grey)
	require.NoError(t, m.Validate())
	assert.Equal(t, 24, m.VertexCount())
	assert.Equal(t, int32(36), m.IndexCount())

	for i := 0; i < m.VertexCount(); i++ {
		v := m.Vertices[i*3 : i*3+3]
		assert.Contains(t, []float32{-1, 1}, v[0])
		assert.Contains(t, []float32{-2, 2}, v[1])
		assert.Contains(t, []float32{-3, 3}, v[2])
	}
}

func TestTerrain(t *testing.T) {
	m := Terrain(100, 4, 3, grey)
	require.NoError(t, m.Validate())
	assert.Equal(t, 25, m.VertexCount())
	assert.Equal(t, int32(4*4*6), m.IndexCount())
	assert.Equal(t, float32(-50), m.Vertices[0])
	assert.Equal(t, float32(50), m.Vertices[len(m.Vertices)-1])

	flat := Terrain(10, 0, 0, grey)
	require.NoError(t, flat.Validate())
	assert.Equal(t, 4, flat.VertexCount())
	for i := 0; i < flat.VertexCount(); i++ {
		assert.Equal(t, []float32{0, 1, 0}, flat.Normals[i*3:i*3+3])
	}
}

func TestValidate(t *testing.T) {
	good := Box("box", [3]float32{1, 1, 1}, grey)

	for _, test := range []struct {
		name   string
		mutate func(m *Mesh)
	}{
		{"ragged positions", func(m *Mesh) { m.Vertices = m.Vertices[:len(m.Vertices)-1] }},
		{"empty", func(m *Mesh) { m.Vertices = nil }},
		{"short colours", func(m *Mesh) { m.Colours = m.Colours[:4] }},
		{"short normals", func(m *Mesh) { m.Normals = m.Normals[3:] }},
		{"not triangles", func(m *Mesh) { m.Indices = m.Indices[:4] }},
		{"index out of range", func(m *Mesh) { m.Indices[5] = 24 }},
	} {
		m := good
		m.Vertices = append([]float32(nil), good.Vertices...)
		m.Indices = append([]uint32(nil), good.Indices...)
		m.Colours = append([]float32(nil), good.Colours...)
		m.Normals = append([]float32(nil), good.Normals...)
		test.mutate(&m)
		assert.Error(t, m.Validate(), test.name)
	}
	assert.NoError(t, good.Validate())
}

func TestDocumentRoundTrip(t *testing.T) {
	box := Box("door", [3]float32{1, 2, 0.1}, [4]float32{0.2, 0.4, 0.6, 1})
	doc := ToDocument([]Mesh{box})
	require.Len(t, doc.Nodes, 1)
	require.Len(t, doc.Scenes[0].Nodes, 1)

	meshes, err := FromDocument(doc)
	require.NoError(t, err)
	got, ok := meshes["door"]
	require.True(t, ok)

	assert.Equal(t, box.Vertices, got.Vertices)
	assert.Equal(t, box.Indices, got.Indices)
	assert.Equal(t, box.Normals, got.Normals)
	require.Len(t, got.Colours, len(box.Colours))
	for i := range box.Colours {
		assert.InDelta(t, box.Colours[i], got.Colours[i], 1.0/255)
	}
}

func TestExportNodes(t *testing.T) {
	box := Box("rotor", [3]float32{1, 1, 1}, grey)
	world := mgl32.Translate3D(1, 2, 3)
	nodes := []ExportNode{
		{Name: "group", World: mgl32.Ident4()},
		{Name: "rotor0", World: world, Mesh: "rotor"},
		{Name: "rotor1", World: world, Mesh: "rotor"},
	}

	var buf bytes.Buffer
	require.NoError(t, ExportNodes(&buf, nodes, map[string]Mesh{"rotor": box}))

	var doc gltf.Document
	require.NoError(t, gltf.NewDecoder(&buf).Decode(&doc))
	require.Len(t, doc.Nodes, 3)
	assert.Len(t, doc.Meshes, 1)
	assert.Len(t, doc.Scenes[0].Nodes, 3)
	assert.Nil(t, doc.Nodes[0].Mesh)
	assert.Equal(t, [16]float32(world), doc.Nodes[1].Matrix)
	require.NotNil(t, doc.Nodes[2].Mesh)
	assert.Equal(t, uint32(0), *doc.Nodes[2].Mesh)

	err := ExportNodes(&bytes.Buffer{}, nodes, nil)
	assert.Error(t, err)
}
