// Package animation drives per-frame mutation of scene nodes through a flat
// table of bindings.
package animation

import (
	"github.com/mogaika/heliview/scene"
	"github.com/pkg/errors"
)

var ErrUnknownRule = errors.New("unknown animation rule")

type Kind int

const (
	KindSpinX Kind = iota
	KindSpinY
	KindFollowPath
)

func (k Kind) String() string {
	switch k {
	case KindSpinX:
		return "spin_x"
	case KindSpinY:
		return "spin_y"
	case KindFollowPath:
		return "follow_path"
	default:
		return "unknown"
	}
}

// Rule is an update rule. Rate is in radians per second and is only used by
// the spin kinds.
type Rule struct {
	Kind Kind
	Rate float32
}

// SpinX advances Rotation[0] (yaw, about Y) by rate per second.
func SpinX(rate float32) Rule { return Rule{Kind: KindSpinX, Rate: rate} }

// SpinY advances Rotation[1] (pitch, about X) by rate per second.
func SpinY(rate float32) Rule { return Rule{Kind: KindSpinY, Rate: rate} }

// FollowPath places the node on the flight path at its local time.
func FollowPath() Rule { return Rule{Kind: KindFollowPath} }

type Binding struct {
	Target    scene.NodeID
	LocalTime float64
	Rule      Rule
}

// Table is created with the scene and keeps the same bindings for the whole
// session.
type Table struct {
	graph    *scene.Graph
	path     Path
	bindings []Binding
}

func NewTable(graph *scene.Graph, path Path) *Table {
	return &Table{graph: graph, path: path}
}

func (t *Table) Path() Path { return t.path }

func (t *Table) Len() int { return len(t.bindings) }

// Bindings returns a copy of the bindings.
func (t *Table) Bindings() []Binding {
	return append([]Binding(nil), t.bindings...)
}

// Bind adds a binding whose clock starts at phase seconds.
// The target must already exist in the graph.
func (t *Table) Bind(target scene.NodeID, rule Rule, phase float64) error {
	if !t.graph.Valid(target) {
		return errors.Wrapf(scene.ErrUnknownNode, "binding target %d", target)
	}
	switch rule.Kind {
	case KindSpinX, KindSpinY, KindFollowPath:
	default:
		return errors.Wrapf(ErrUnknownRule, "kind %d", rule.Kind)
	}
	t.bindings = append(t.bindings, Binding{Target: target, LocalTime: phase, Rule: rule})
	return nil
}

func (t *Table) MustBind(target scene.NodeID, rule Rule, phase float64) {
	if err := t.Bind(target, rule, phase); err != nil {
		panic(err)
	}
}

// Advance moves every binding clock forward by elapsed seconds and applies
// its rule. A non-positive elapsed leaves every node untouched.
func (t *Table) Advance(elapsed float64) {
	if elapsed <= 0 {
		return
	}
	for i := range t.bindings {
		b := &t.bindings[i]
		b.LocalTime += elapsed
		t.apply(b, elapsed)
	}
}

// Place puts path followers at their current local time without advancing
// any clock.
func (t *Table) Place() {
	for i := range t.bindings {
		if b := &t.bindings[i]; b.Rule.Kind == KindFollowPath {
			t.apply(b, 0)
		}
	}
}

func (t *Table) apply(b *Binding, elapsed float64) {
	n := t.graph.Node(b.Target)
	switch b.Rule.Kind {
	case KindSpinX:
		n.Rotation[0] += b.Rule.Rate * float32(elapsed)
	case KindSpinY:
		n.Rotation[1] += b.Rule.Rate * float32(elapsed)
	case KindFollowPath:
		h := t.path.At(b.LocalTime)
		n.Position[0] = h.X
		n.Position[2] = h.Z
		n.Rotation[0] = h.Yaw
		n.Rotation[1] = h.Pitch
		n.Rotation[2] = h.Roll
	default:
		panic(errors.Wrapf(ErrUnknownRule, "kind %d", b.Rule.Kind))
	}
}
