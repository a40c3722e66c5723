// Package rules implements the naming-convention rules and the dispatch
// table that connects them to the syntax tree traversal.
//
// A rule is constructed once per analysis run with the reporter that
// receives its findings. It declares the (node kind, phase) events it wants
// through Register, and the Dispatcher invokes its handlers as ast.Walk
// visits the tree. Rules never see each other.
package rules

import (
	"errors"
	"fmt"

	"github.com/gnolang/solint/internal/ast"
)

var (
	// ErrConfiguration is returned when a rule cannot be built from the
	// identity or configuration it was given.
	ErrConfiguration = errors.New("configuration error")

	// ErrInvariantViolation is returned when the traversal delivers events
	// out of order or a required collaborator is missing.
	ErrInvariantViolation = errors.New("invariant violation")
)

// Reporter receives the findings of every rule of a run.
type Reporter interface {
	Error(n *ast.Node, ruleID, message string)
	Warn(n *ast.Node, ruleID, message string)
}

// Base carries the identity and reporter shared by all rules.
// Rules embed it to get the Error and Warn primitives.
type Base struct {
	id       string
	reporter Reporter
	config   any
}

// NewBase validates the rule identity and reporter.
func NewBase(id string, reporter Reporter, config any) (Base, error) {
	if id == "" {
		return Base{}, fmt.Errorf("%w: missing rule id", ErrConfiguration)
	}
	if reporter == nil {
		return Base{}, fmt.Errorf("%w: rule %s has no reporter", ErrInvariantViolation, id)
	}
	return Base{id: id, reporter: reporter, config: config}, nil
}

// ID returns the rule identity attached to every finding.
func (b *Base) ID() string { return b.id }

// Config returns the opaque configuration the rule was built with.
func (b *Base) Config() any { return b.config }

// Error reports an error-level finding on n.
func (b *Base) Error(n *ast.Node, message string) {
	b.reporter.Error(n, b.id, message)
}

// Warn reports a warning-level finding on n.
func (b *Base) Warn(n *ast.Node, message string) {
	b.reporter.Warn(n, b.id, message)
}
