package mesh

import (
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mogaika/heliview/utils/gltfutils"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
)

// ExportNode is one node of a scene export, placed by its world matrix.
type ExportNode struct {
	Name  string
	World mgl32.Mat4
	// Mesh names an entry of the meshes passed to ExportNodes, empty for none.
	Mesh string
}

// ExportNodes writes a binary glTF with one flat node per ExportNode. Every
// mesh is written once no matter how many nodes share it.
func ExportNodes(w io.Writer, nodes []ExportNode, meshes map[string]Mesh) error {
	doc := gltfutils.NewDocument()
	written := make(map[string]uint32)

	for _, n := range nodes {
		node := &gltf.Node{Name: n.Name, Matrix: [16]float32(n.World)}
		if n.Mesh != "" {
			iMesh, ok := written[n.Mesh]
			if !ok {
				m, found := meshes[n.Mesh]
				if !found {
					return errors.Errorf("node %q: unknown mesh %q", n.Name, n.Mesh)
				}
				iMesh = writeMesh(doc, m)
				written[n.Mesh] = iMesh
			}
			node.Mesh = gltf.Index(iMesh)
		}
		doc.Nodes = append(doc.Nodes, node)
	}

	if err := gltfutils.ExportBinary(w, doc); err != nil {
		return errors.Wrapf(err, "Failed to encode glb")
	}
	return nil
}
