package rules

import (
	"fmt"

	"github.com/gnolang/solint/internal/ast"
)

// Scope tracks whether the traversal is lexically inside a node of one kind
// that satisfied some condition when it was entered.
//
// It starts outside, moves inside when a qualifying node is entered and
// returns outside when that same node is exited. Every entered node is
// remembered, so an exit that does not match the innermost enter is
// reported as ErrInvariantViolation instead of silently corrupting state.
type Scope struct {
	kind   ast.Kind
	frames []scopeFrame
}

type scopeFrame struct {
	node      *ast.Node
	qualifies bool
}

// NewScope returns an outside scope for nodes of the given kind.
func NewScope(kind ast.Kind) Scope {
	return Scope{kind: kind}
}

// Enter records that the traversal entered n.
func (s *Scope) Enter(n *ast.Node, qualifies bool) error {
	if !n.Is(s.kind) {
		return fmt.Errorf("%w: %s scope entered with %s", ErrInvariantViolation, s.kind, n.Type)
	}
	s.frames = append(s.frames, scopeFrame{node: n, qualifies: qualifies})
	return nil
}

// Exit records that the traversal left n. Its signature matches Handler.
func (s *Scope) Exit(n *ast.Node) error {
	if len(s.frames) == 0 {
		return fmt.Errorf("%w: exit of %s %q without enter", ErrInvariantViolation, n.Type, n.Name)
	}
	top := s.frames[len(s.frames)-1]
	if top.node != n {
		return fmt.Errorf("%w: exit of %s %q while inside %q", ErrInvariantViolation, n.Type, n.Name, top.node.Name)
	}
	s.frames = s.frames[:len(s.frames)-1]
	return nil
}

// Inside reports whether the innermost entered node qualified.
func (s *Scope) Inside() bool {
	return len(s.frames) > 0 && s.frames[len(s.frames)-1].qualifies
}
