package r3d

import (
	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/mogaika/heliview/mesh"
	"github.com/mogaika/heliview/scene"
	"github.com/pkg/errors"
)

const sizeofFloat32 = 4

// Drawable is a mesh resident on the GPU: one vertex array with separate
// position, colour and normal buffers and a uint32 index buffer.
type Drawable struct {
	Name       string
	VAO        uint32
	buffers    [4]uint32
	IndexCount int32
}

func (d *Drawable) String() string { return d.Name }

func (d *Drawable) Delete() {
	gl.DeleteBuffers(int32(len(d.buffers)), &d.buffers[0])
	gl.DeleteVertexArrays(1, &d.VAO)
}

// Upload builds a Drawable for m. It implements heli.Uploader.
func (r *Renderer) Upload(m mesh.Mesh) (scene.Geometry, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if r.program.APosition < 0 {
		return nil, errors.New("program has no aPosition attribute")
	}

	d := &Drawable{Name: m.Name, IndexCount: m.IndexCount()}
	gl.GenVertexArrays(1, &d.VAO)
	gl.BindVertexArray(d.VAO)
	gl.GenBuffers(int32(len(d.buffers)), &d.buffers[0])

	for i, attrib := range []struct {
		location   int32
		components int32
		data       []float32
	}{
		{r.program.APosition, mesh.PositionComponents, m.Vertices},
		{r.program.AColor, mesh.ColourComponents, m.Colours},
		{r.program.ANormal, mesh.NormalComponents, m.Normals},
	} {
		gl.BindBuffer(gl.ARRAY_BUFFER, d.buffers[i])
		gl.BufferData(gl.ARRAY_BUFFER, len(attrib.data)*sizeofFloat32, gl.Ptr(attrib.data), gl.STATIC_DRAW)
		// attributes unused by the shader are optimized out
		if attrib.location >= 0 {
			gl.EnableVertexAttribArray(uint32(attrib.location))
			gl.VertexAttribPointerWithOffset(uint32(attrib.location), attrib.components, gl.FLOAT, false, 0, 0)
		}
	}

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, d.buffers[3])
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.drawables = append(r.drawables, d)
	return d, nil
}
