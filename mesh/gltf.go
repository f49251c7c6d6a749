package mesh

import (
	"fmt"
	"log"

	"github.com/mogaika/heliview/utils/gltfutils"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

var defaultColour = [4]float32{0.6, 0.6, 0.65, 1}

// LoadGLTF reads every mesh of a glTF file. Primitives of one mesh are merged
// into a single Mesh keyed by the mesh name.
func LoadGLTF(path string) (map[string]Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open %q", path)
	}
	return FromDocument(doc)
}

func FromDocument(doc *gltf.Document) (map[string]Mesh, error) {
	meshes := make(map[string]Mesh, len(doc.Meshes))
	for iMesh, gmesh := range doc.Meshes {
		name := gmesh.Name
		if name == "" {
			name = fmt.Sprintf("mesh%d", iMesh)
		}

		m := Mesh{Name: name}
		for iPrimitive, primitive := range gmesh.Primitives {
			if err := appendPrimitive(doc, &m, primitive); err != nil {
				return nil, errors.Wrapf(err, "mesh %q primitive %d", name, iPrimitive)
			}
		}
		if err := m.Validate(); err != nil {
			return nil, err
		}
		meshes[name] = m
	}
	return meshes, nil
}

func appendPrimitive(doc *gltf.Document, m *Mesh, primitive *gltf.Primitive) error {
	if primitive.Mode != gltf.PrimitiveTriangles {
		log.Printf("[mesh] skipping non-triangle primitive of %q", m.Name)
		return nil
	}
	positionIndex, ok := primitive.Attributes["POSITION"]
	if !ok {
		return errors.New("no POSITION attribute")
	}

	positions, err := modeler.ReadPosition(doc, doc.Accessors[positionIndex], nil)
	if err != nil {
		return errors.Wrapf(err, "Failed to read positions")
	}

	var indices []uint32
	if primitive.Indices != nil {
		if indices, err = modeler.ReadIndices(doc, doc.Accessors[*primitive.Indices], nil); err != nil {
			return errors.Wrapf(err, "Failed to read indices")
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	var normals [][3]float32
	if normalIndex, ok := primitive.Attributes["NORMAL"]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[normalIndex], nil); err != nil {
			return errors.Wrapf(err, "Failed to read normals")
		}
	}

	var colours [][4]uint8
	if colourIndex, ok := primitive.Attributes["COLOR_0"]; ok {
		if colours, err = modeler.ReadColor(doc, doc.Accessors[colourIndex], nil); err != nil {
			return errors.Wrapf(err, "Failed to read colours")
		}
	}

	base := uint32(m.VertexCount())
	for i, p := range positions {
		m.Vertices = append(m.Vertices, p[0], p[1], p[2])
		if i < len(normals) {
			m.Normals = append(m.Normals, normals[i][0], normals[i][1], normals[i][2])
		} else {
			m.Normals = append(m.Normals, 0, 1, 0)
		}
		if i < len(colours) {
			c := colours[i]
			m.Colours = append(m.Colours, float32(c[0])/255, float32(c[1])/255, float32(c[2])/255, float32(c[3])/255)
		} else {
			m.Colours = append(m.Colours, defaultColour[:]...)
		}
	}
	for _, index := range indices {
		m.Indices = append(m.Indices, base+index)
	}
	return nil
}

// ToDocument is the inverse of FromDocument: one glTF mesh and node per Mesh.
func ToDocument(meshes []Mesh) *gltf.Document {
	doc := gltfutils.NewDocument()
	for _, m := range meshes {
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name: m.Name,
			Mesh: gltf.Index(writeMesh(doc, m)),
		})
	}
	gltfutils.AddRootNodes(doc)
	return doc
}

func writeMesh(doc *gltf.Document, m Mesh) uint32 {
	count := m.VertexCount()
	positions := make([][3]float32, count)
	normals := make([][3]float32, count)
	colours := make([][4]uint8, count)
	for i := 0; i < count; i++ {
		copy(positions[i][:], m.Vertices[i*PositionComponents:])
		copy(normals[i][:], m.Normals[i*NormalComponents:])
		for c := 0; c < ColourComponents; c++ {
			colours[i][c] = uint8(m.Colours[i*ColourComponents+c]*255 + 0.5)
		}
	}

	indices := modeler.WriteIndices(doc, m.Indices)
	attributes := map[string]uint32{
		"POSITION": modeler.WritePosition(doc, positions),
		"NORMAL":   modeler.WriteNormal(doc, normals),
		"COLOR_0":  modeler.WriteColor(doc, colours),
	}
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: m.Name,
		Primitives: []*gltf.Primitive{
			{
				Indices:    gltf.Index(indices),
				Attributes: attributes,
			},
		},
	})
	return uint32(len(doc.Meshes) - 1)
}
