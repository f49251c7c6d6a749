// Package r3d draws the scene graph with OpenGL 4.3 core.
package r3d

import (
	"log"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/mogaika/heliview/scene"
)

var lightDir = mgl32.Vec3{-0.4, -1, -0.3}.Normalize()

// Renderer is the draw sink of the frame loop. An OpenGL context has to be
// current on the calling thread for every method.
type Renderer struct {
	program   *SceneProgram
	drawables []*Drawable

	ClearColor [3]float32
}

func NewRenderer() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, errors.Wrapf(err, "Failed to initialize OpenGL")
	}
	log.Printf("[r3d] OpenGL version: %q", gl.GoStr(gl.GetString(gl.VERSION)))
	EnableDebugOutput()

	program, err := LoadSceneProgram()
	if err != nil {
		return nil, err
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.MULTISAMPLE)

	return &Renderer{program: program, ClearColor: [3]float32{0.15, 0.15, 0.2}}, nil
}

// Begin clears the framebuffer for a new frame.
func (r *Renderer) Begin(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(r.ClearColor[0], r.ClearColor[1], r.ClearColor[2], 1.0)
	gl.ClearDepth(1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.program.Id)
	gl.Uniform3fv(r.program.ULightDir, 1, &lightDir[0])
}

func (r *Renderer) DrawNode(clip, world mgl32.Mat4, geometry scene.Geometry, indexCount int32) {
	d, ok := geometry.(*Drawable)
	if !ok {
		log.Printf("[r3d] skipping foreign geometry %T", geometry)
		return
	}
	gl.UniformMatrix4fv(r.program.UClip, 1, false, &clip[0])
	gl.UniformMatrix4fv(r.program.UModel, 1, false, &world[0])

	gl.BindVertexArray(d.VAO)
	gl.DrawElementsWithOffset(gl.TRIANGLES, indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

func (r *Renderer) Destroy() {
	for _, d := range r.drawables {
		d.Delete()
	}
	r.drawables = nil
	r.program.Delete()
}
