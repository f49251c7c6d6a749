package heli

import (
	"log"

	"github.com/mogaika/heliview/mesh"
	"github.com/pkg/errors"
)

var (
	colourTerrain = [4]float32{0.35, 0.5, 0.3, 1}
	colourBody    = [4]float32{0.25, 0.3, 0.35, 1}
	colourDoor    = [4]float32{0.5, 0.45, 0.3, 1}
	colourRotor   = [4]float32{0.1, 0.1, 0.1, 1}
)

// ProceduralMeshes builds box shaped helicopter parts laid out in helicopter
// space, so the tail rotor spins about TailRotorHub and the main rotor about
// the Y axis.
func ProceduralMeshes(terrainSize float32, terrainCells int) map[string]mesh.Mesh {
	body := mesh.Box(MeshBody, [3]float32{2.4, 2.2, 11}, colourBody)
	body.Translate([3]float32{0, 1.1, 3.5})

	door := mesh.Box(MeshDoor, [3]float32{0.1, 1.4, 1.6}, colourDoor)
	door.Translate([3]float32{1.25, 1, 0})

	mainRotor := mesh.Box(MeshMainRotor, [3]float32{0.3, 0.08, 14}, colourRotor)
	mainRotor.Translate([3]float32{0, 2.7, 0})

	tailRotor := mesh.Box(MeshTailRotor, [3]float32{0.05, 3, 0.25}, colourRotor)
	tailRotor.Translate([3]float32{TailRotorHub[0], TailRotorHub[1], TailRotorHub[2]})

	return map[string]mesh.Mesh{
		MeshTerrain:   mesh.Terrain(terrainSize, terrainCells, 4, colourTerrain),
		MeshBody:      body,
		MeshDoor:      door,
		MeshMainRotor: mainRotor,
		MeshTailRotor: tailRotor,
	}
}

// LoadMeshes starts from the procedural parts and replaces those found by
// name in the glTF file at path. An empty path keeps everything procedural.
func LoadMeshes(path string, terrainSize float32, terrainCells int) (map[string]mesh.Mesh, error) {
	meshes := ProceduralMeshes(terrainSize, terrainCells)
	if path == "" {
		return meshes, nil
	}

	loaded, err := mesh.LoadGLTF(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to load model")
	}
	for _, name := range partNames {
		if m, ok := loaded[name]; ok {
			meshes[name] = m
			log.Printf("[heli] %q: using %d vertices from %q", name, m.VertexCount(), path)
		}
	}
	return meshes, nil
}
