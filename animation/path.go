package animation

import (
	"math"
)

// Heading is a placement on the flight path.
// Yaw, Pitch and Roll follow the scene.Node rotation layout.
type Heading struct {
	X, Z             float32
	Yaw, Pitch, Roll float32
}

// Path is a closed figure-eight (lemniscate of Gerono) in the XZ plane:
//
//	x = Size * sin(w*t), z = Size * sin(w*t) * cos(w*t), w = 2*pi/Period
//
// The heading follows the tangent, banks into turns and keeps a constant
// nose-down tilt.
type Path struct {
	Period   float64 // seconds per loop
	Size     float64 // half-width of the eight
	BankGain float64 // roll per unit of yaw rate
	MaxBank  float64
	Tilt     float64
}

func DefaultPath() Path {
	return Path{
		Period:   24,
		Size:     60,
		BankGain: 0.6,
		MaxBank:  0.5,
		Tilt:     0.12,
	}
}

// At evaluates the path at time t. It is periodic in Period and has no state.
func (p Path) At(t float64) Heading {
	w := 2 * math.Pi / p.Period
	s, c := math.Sincos(w * t)
	s2, c2 := math.Sincos(2 * w * t)

	vx := p.Size * w * c
	vz := p.Size * w * c2
	ax := -p.Size * w * w * s
	az := -2 * p.Size * w * w * s2

	// forward is -Z at zero yaw
	yaw := math.Atan2(-vx, -vz)

	var yawRate float64
	if v2 := vx*vx + vz*vz; v2 > 0 {
		yawRate = (vz*ax - vx*az) / v2
	}
	roll := math.Max(-p.MaxBank, math.Min(p.MaxBank, p.BankGain*yawRate))

	return Heading{
		X:     float32(p.Size * s),
		Z:     float32(p.Size * s * c),
		Yaw:   float32(yaw),
		Pitch: float32(-p.Tilt),
		Roll:  float32(roll),
	}
}
