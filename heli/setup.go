package heli

import (
	"github.com/mogaika/heliview/animation"
	"github.com/mogaika/heliview/camera"
	"github.com/mogaika/heliview/config"
	"github.com/mogaika/heliview/frame"
	"github.com/mogaika/heliview/mesh"
	"github.com/mogaika/heliview/scene"
	"github.com/pkg/errors"
)

// NameUploader hands out the mesh name as geometry, for runs without a GPU.
type NameUploader struct{}

func (NameUploader) Upload(m mesh.Mesh) (scene.Geometry, error) { return m.Name, nil }

func ParamsFromConfig(c *config.Config) Params {
	return Params{
		Helicopters:   c.Scene.Helicopters,
		PhaseOffset:   c.Scene.PhaseOffset,
		MainRotorRate: c.Scene.MainRotorRate,
		TailRotorRate: c.Scene.TailRotorRate,
		Altitude:      c.Scene.Altitude,
		Pilot:         c.Pilot.Index,
	}
}

func PathFromConfig(c *config.Config) animation.Path {
	path := animation.DefaultPath()
	path.Period = c.Scene.PathPeriod
	path.Size = c.Scene.PathSize
	return path
}

// Setup loads the meshes, uploads them, builds the scene and returns the
// initial frame state for a viewport of width x height pixels.
func Setup(c *config.Config, u Uploader, width, height int) (frame.State, *Scene, error) {
	meshes, err := LoadMeshes(c.Scene.Model, c.Scene.TerrainSize, c.Scene.TerrainCells)
	if err != nil {
		return frame.State{}, nil, err
	}
	parts, err := Upload(u, meshes)
	if err != nil {
		return frame.State{}, nil, err
	}

	g := scene.New()
	table := animation.NewTable(g, PathFromConfig(c))
	s, err := Build(g, table, parts, ParamsFromConfig(c))
	if err != nil {
		return frame.State{}, nil, errors.Wrapf(err, "Failed to build scene")
	}
	s.Meshes = meshes

	cam := camera.New(camera.Params{
		TransStep: c.Camera.TransStep,
		RotStep:   c.Camera.RotStep,
		Radius:    c.Camera.Radius,
		Gain:      c.Camera.Gain,
	})
	cam.Chase = c.Camera.Chase

	st := frame.State{
		Graph:      g,
		Animations: table,
		Camera:     cam,
		Projection: frame.Projection{
			FOV:    c.Projection.FOV,
			Aspect: c.AspectFor(width, height),
			Near:   c.Projection.Near,
			Far:    c.Projection.Far,
		},
		Chased: s.Chased,
		Pilot:  s.Pilot,
		PilotParams: frame.PilotParams{
			TransStep: c.Pilot.TransStep,
			RotStep:   c.Pilot.RotStep,
		},
	}
	return st, s, nil
}
