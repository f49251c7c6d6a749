// Package mesh holds loaded geometry before it is uploaded for drawing.
package mesh

import (
	"math"

	"github.com/pkg/errors"
)

const (
	PositionComponents = 3
	ColourComponents   = 4
	NormalComponents   = 3
)

// Mesh is flat vertex data: positions and normals are xyz triples, colours
// are rgba quads, indices form a triangle list.
type Mesh struct {
	Name     string
	Vertices []float32
	Indices  []uint32
	Colours  []float32
	Normals  []float32
}

func (m *Mesh) VertexCount() int { return len(m.Vertices) / PositionComponents }

func (m *Mesh) IndexCount() int32 { return int32(len(m.Indices)) }

// Validate checks that the per-vertex arrays agree with each other and that
// every index points at a vertex.
func (m *Mesh) Validate() error {
	if len(m.Vertices)%PositionComponents != 0 {
		return errors.Errorf("mesh %q: %d position floats is not a multiple of %d", m.Name, len(m.Vertices), PositionComponents)
	}
	count := m.VertexCount()
	if count == 0 {
		return errors.Errorf("mesh %q: no vertices", m.Name)
	}
	if len(m.Colours) != count*ColourComponents {
		return errors.Errorf("mesh %q: %d colour floats for %d vertices", m.Name, len(m.Colours), count)
	}
	if len(m.Normals) != count*NormalComponents {
		return errors.Errorf("mesh %q: %d normal floats for %d vertices", m.Name, len(m.Normals), count)
	}
	if len(m.Indices)%3 != 0 {
		return errors.Errorf("mesh %q: %d indices is not a triangle list", m.Name, len(m.Indices))
	}
	for i, index := range m.Indices {
		if int(index) >= count {
			return errors.Errorf("mesh %q: index %d at %d out of %d vertices", m.Name, index, i, count)
		}
	}
	return nil
}

// Fill sets every vertex colour to rgba.
func (m *Mesh) Fill(rgba [4]float32) {
	m.Colours = make([]float32, 0, m.VertexCount()*ColourComponents)
	for i := 0; i < m.VertexCount(); i++ {
		m.Colours = append(m.Colours, rgba[:]...)
	}
}

// Translate moves every vertex by offset.
func (m *Mesh) Translate(offset [3]float32) {
	for i := 0; i < len(m.Vertices); i += PositionComponents {
		m.Vertices[i] += offset[0]
		m.Vertices[i+1] += offset[1]
		m.Vertices[i+2] += offset[2]
	}
}

// Box is an axis aligned box centered at the origin, with flat normals.
func Box(name string, size [3]float32, rgba [4]float32) Mesh {
	hx, hy, hz := size[0]/2, size[1]/2, size[2]/2
	faces := []struct {
		normal  [3]float32
		corners [4][3]float32
	}{
		{[3]float32{0, 0, 1}, [4][3]float32{{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{hx, -hy, -hz}, {-hx, -hy, -hz}, {-hx, hy, -hz}, {hx, hy, -hz}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{hx, -hy, hz}, {hx, -hy, -hz}, {hx, hy, -hz}, {hx, hy, hz}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-hx, -hy, -hz}, {-hx, -hy, hz}, {-hx, hy, hz}, {-hx, hy, -hz}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-hx, hy, hz}, {hx, hy, hz}, {hx, hy, -hz}, {-hx, hy, -hz}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, -hy, hz}, {-hx, -hy, hz}}},
	}

	m := Mesh{Name: name}
	for _, f := range faces {
		base := uint32(m.VertexCount())
		for _, c := range f.corners {
			m.Vertices = append(m.Vertices, c[:]...)
			m.Normals = append(m.Normals, f.normal[:]...)
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	m.Fill(rgba)
	return m
}

// Terrain is a grid of cells*cells quads spanning size*size on XZ, with a
// sine height field of the given amplitude.
func Terrain(size float32, cells int, amplitude float32, rgba [4]float32) Mesh {
	m := Mesh{Name: "terrain"}
	if cells < 1 {
		cells = 1
	}
	step := size / float32(cells)
	half := size / 2
	height := func(x, z float64) float64 {
		return float64(amplitude) * math.Sin(x*0.05) * math.Cos(z*0.05)
	}

	for iz := 0; iz <= cells; iz++ {
		for ix := 0; ix <= cells; ix++ {
			x := float64(float32(ix)*step - half)
			z := float64(float32(iz)*step - half)
			y := height(x, z)

			// normal of the height field: (-dh/dx, 1, -dh/dz)
			dx := float64(amplitude) * 0.05 * math.Cos(x*0.05) * math.Cos(z*0.05)
			dz := -float64(amplitude) * 0.05 * math.Sin(x*0.05) * math.Sin(z*0.05)
			l := math.Sqrt(dx*dx + 1 + dz*dz)

			m.Vertices = append(m.Vertices, float32(x), float32(y), float32(z))
			m.Normals = append(m.Normals, float32(-dx/l), float32(1/l), float32(-dz/l))
		}
	}

	row := uint32(cells + 1)
	for iz := uint32(0); iz < uint32(cells); iz++ {
		for ix := uint32(0); ix < uint32(cells); ix++ {
			a := iz*row + ix
			b := a + 1
			c := a + row
			d := c + 1
			m.Indices = append(m.Indices, a, c, b, b, c, d)
		}
	}
	m.Fill(rgba)
	return m
}
