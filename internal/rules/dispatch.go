package rules

import (
	"github.com/gnolang/solint/internal/ast"
)

// Phase tells whether an event fires when the traversal enters a node or
// when it leaves it.
type Phase uint8

const (
	Enter Phase = iota
	Exit
)

func (p Phase) String() string {
	if p == Exit {
		return "exit"
	}
	return "enter"
}

// Event is a key of the dispatch table.
type Event struct {
	Kind  ast.Kind
	Phase Phase
}

func (e Event) String() string {
	if e.Phase == Exit {
		return string(e.Kind) + ":exit"
	}
	return string(e.Kind)
}

// Handler processes one node. A non-nil error aborts the run.
type Handler func(n *ast.Node) error

// Registrar is what a rule sees while declaring its subscriptions.
type Registrar interface {
	On(kind ast.Kind, phase Phase, h Handler)
}

// Rule is a naming-convention check.
type Rule interface {
	ID() string
	Register(r Registrar)
}

// Dispatcher maps events to the handlers subscribed to them and implements
// ast.Visitor so it can be handed straight to ast.Walk.
type Dispatcher struct {
	handlers map[Event][]Handler
}

// NewDispatcher builds a dispatch table for the given rules. Handlers for
// the same event run in the order the rules are given.
func NewDispatcher(rules ...Rule) *Dispatcher {
	d := &Dispatcher{handlers: make(map[Event][]Handler)}
	for _, r := range rules {
		r.Register(d)
	}
	return d
}

// On subscribes h to the (kind, phase) event.
func (d *Dispatcher) On(kind ast.Kind, phase Phase, h Handler) {
	ev := Event{Kind: kind, Phase: phase}
	d.handlers[ev] = append(d.handlers[ev], h)
}

// Enter implements ast.Visitor.
func (d *Dispatcher) Enter(n *ast.Node) error {
	return d.dispatch(Event{Kind: n.Type, Phase: Enter}, n)
}

// Exit implements ast.Visitor.
func (d *Dispatcher) Exit(n *ast.Node) error {
	return d.dispatch(Event{Kind: n.Type, Phase: Exit}, n)
}

func (d *Dispatcher) dispatch(ev Event, n *ast.Node) error {
	for _, h := range d.handlers[ev] {
		if err := h(n); err != nil {
			return err
		}
	}
	return nil
}

// Run walks root and dispatches every event to the subscribed handlers.
func (d *Dispatcher) Run(root *ast.Node) error {
	return ast.Walk(root, d)
}

type subscriptionRecorder struct {
	events []Event
}

func (s *subscriptionRecorder) On(kind ast.Kind, phase Phase, _ Handler) {
	s.events = append(s.events, Event{Kind: kind, Phase: phase})
}

// Subscriptions lists the events r registers for, in registration order.
func Subscriptions(r Rule) []Event {
	rec := &subscriptionRecorder{}
	r.Register(rec)
	return rec.events
}
