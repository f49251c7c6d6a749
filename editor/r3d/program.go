package r3d

import (
	_ "embed"
	"log"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/pkg/errors"
)

//go:embed shaders/scene.vert
var sceneVertexShader string

//go:embed shaders/scene.frag
var sceneFragmentShader string

var ErrUniformNotFound = errors.New("uniform not found")

// SceneProgram is the lit vertex colour program every node is drawn with.
type SceneProgram struct {
	*Program

	UClip     int32
	UModel    int32
	ULightDir int32

	APosition int32
	AColor    int32
	ANormal   int32
}

func LoadSceneProgram() (*SceneProgram, error) {
	p, err := LoadProgram(sceneVertexShader, sceneFragmentShader)
	if err != nil {
		return nil, err
	}
	sp := &SceneProgram{Program: p}

	for _, u := range []struct {
		name string
		loc  *int32
	}{
		{"umClip", &sp.UClip},
		{"umModel", &sp.UModel},
		{"uLightDir", &sp.ULightDir},
	} {
		if *u.loc, err = p.Uniform(u.name); err != nil {
			p.Delete()
			return nil, err
		}
	}

	sp.APosition = gl.GetAttribLocation(p.Id, gl.Str("aPosition"+"\x00"))
	sp.AColor = gl.GetAttribLocation(p.Id, gl.Str("aColor"+"\x00"))
	sp.ANormal = gl.GetAttribLocation(p.Id, gl.Str("aNormal"+"\x00"))
	return sp, nil
}

type Program struct {
	Id                           uint32
	VertexShader, FragmentShader uint32
}

func (p *Program) Delete() {
	gl.DetachShader(p.Id, p.VertexShader)
	gl.DetachShader(p.Id, p.FragmentShader)
	gl.DeleteProgram(p.Id)
	gl.DeleteShader(p.VertexShader)
	gl.DeleteShader(p.FragmentShader)
}

// Uniform looks up a uniform location. Unused uniforms are optimized out by
// the driver and reported as missing too.
func (p *Program) Uniform(name string) (int32, error) {
	loc := gl.GetUniformLocation(p.Id, gl.Str(name+"\x00"))
	if loc < 0 {
		return loc, errors.Wrapf(ErrUniformNotFound, "%q", name)
	}
	return loc, nil
}

func LoadProgram(vertexShaderText, fragmentShaderText string) (*Program, error) {
	p := &Program{}

	p.Id = gl.CreateProgram()

	if vs, err := LoadShader(gl.VERTEX_SHADER, vertexShaderText); err != nil {
		gl.DeleteProgram(p.Id)
		return nil, errors.Wrap(err, "vertex shader")
	} else {
		p.VertexShader = vs
	}

	if fs, err := LoadShader(gl.FRAGMENT_SHADER, fragmentShaderText); err != nil {
		gl.DeleteShader(p.VertexShader)
		gl.DeleteProgram(p.Id)
		return nil, errors.Wrap(err, "fragment shader")
	} else {
		p.FragmentShader = fs
	}

	gl.AttachShader(p.Id, p.VertexShader)
	gl.AttachShader(p.Id, p.FragmentShader)
	gl.LinkProgram(p.Id)

	var isLinked int32
	gl.GetProgramiv(p.Id, gl.LINK_STATUS, &isLinked)
	if isLinked == gl.FALSE {
		var logSize int32
		gl.GetProgramiv(p.Id, gl.INFO_LOG_LENGTH, &logSize)
		buf := make([]uint8, logSize+1)
		gl.GetProgramInfoLog(p.Id, int32(len(buf)), &logSize, &buf[0])
		errString := string(buf[:logSize])
		log.Printf("[r3d] Failed to link program:\n%s", errString)

		p.Delete()
		return nil, errors.Errorf("failed to link program: %q", errString)
	}
	return p, nil
}

func LoadShader(xtype uint32, text string) (shader uint32, err error) {
	glShaderSource := func(handle uint32, source string) {
		csource, free := gl.Strs(source + "\x00")
		defer free()

		gl.ShaderSource(handle, 1, csource, nil)
	}

	shader = gl.CreateShader(xtype)
	glShaderSource(shader, text)
	gl.CompileShader(shader)

	var success int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &success)
	if success == gl.FALSE {
		var logSize int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logSize)
		buf := make([]uint8, logSize+1)
		gl.GetShaderInfoLog(shader, int32(len(buf)), &logSize, &buf[0])
		errString := string(buf[:logSize])
		log.Printf("[r3d] Failed to compile shader:\n%s", errString)

		gl.DeleteShader(shader)
		return gl.INVALID_INDEX, errors.Errorf("failed to compile shader: %q", errString)
	}
	return shader, nil
}
