package frame

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mogaika/heliview/input"
	"github.com/mogaika/heliview/scene"
)

// WallClock measures real time between calls.
type WallClock struct {
	last time.Time
	now  func() time.Time
}

func NewWallClock() *WallClock {
	return &WallClock{now: time.Now}
}

// Elapsed returns 0 on the first call.
func (c *WallClock) Elapsed() float64 {
	now := c.now()
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	return dt
}

// FixedClock reports the same step on every call, for headless runs.
type FixedClock float64

func (c FixedClock) Elapsed() float64 { return float64(c) }

// Script replays a fixed list of command sets and then asks to quit.
type Script []input.Set

func (s *Script) Sample() input.Set {
	if len(*s) == 0 {
		return input.Of(input.Quit)
	}
	cmds := (*s)[0]
	*s = (*s)[1:]
	return cmds
}

// Idle never reports a command.
type Idle struct{}

func (Idle) Sample() input.Set { return nil }

// NullSink drops draw calls.
type NullSink struct{}

func (NullSink) DrawNode(clip, world mgl32.Mat4, geometry scene.Geometry, indexCount int32) {}

// CountingSink counts draw calls and indices, for headless statistics.
type CountingSink struct {
	Calls   int
	Indices int64
}

func (s *CountingSink) DrawNode(clip, world mgl32.Mat4, geometry scene.Geometry, indexCount int32) {
	s.Calls++
	s.Indices += int64(indexCount)
}
