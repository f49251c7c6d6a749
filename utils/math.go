package utils

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Sign returns -1, 0 or 1.
func Sign(v float32) float32 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Translation returns the translation column of an affine transform.
func Translation(m mgl32.Mat4) mgl32.Vec3 {
	return m.Col(3).Vec3()
}
