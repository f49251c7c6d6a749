package gltfutils

import (
	"io"

	"github.com/qmuntal/gltf"
)

// NewDocument returns an empty document holding one default scene.
func NewDocument() *gltf.Document {
	return gltf.NewDocument()
}

// AddRootNodes puts every node that is nobody's child into the default scene.
func AddRootNodes(doc *gltf.Document) {
	children := make(map[uint32]bool)
	for _, node := range doc.Nodes {
		for _, child := range node.Children {
			children[child] = true
		}
	}
	inScene := make(map[uint32]bool)
	for _, iNode := range doc.Scenes[0].Nodes {
		inScene[iNode] = true
	}
	for iNode := range doc.Nodes {
		if i := uint32(iNode); !children[i] && !inScene[i] {
			doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, i)
		}
	}
}

func ExportBinary(w io.Writer, doc *gltf.Document) error {
	AddRootNodes(doc)

	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	return encoder.Encode(doc)
}
