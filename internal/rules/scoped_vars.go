package rules

import (
	"github.com/gnolang/solint/internal/ast"
	"github.com/gnolang/solint/internal/naming"
)

const ScopedVarsLeadingUnderscoreID = "scoped-vars-leading-underscore"

// ScopedVarsLeadingUnderscore checks local variables declared directly in a
// loop or function body. Blocks nested inside the body are not inspected.
type ScopedVarsLeadingUnderscore struct {
	Base
}

func NewScopedVarsLeadingUnderscore(reporter Reporter, config any) (Rule, error) {
	base, err := NewBase(ScopedVarsLeadingUnderscoreID, reporter, config)
	if err != nil {
		return nil, err
	}
	return &ScopedVarsLeadingUnderscore{Base: base}, nil
}

func (r *ScopedVarsLeadingUnderscore) Register(reg Registrar) {
	for _, kind := range []ast.Kind{
		ast.ForStatement,
		ast.WhileStatement,
		ast.DoWhileStatement,
		ast.FunctionDefinition,
	} {
		reg.On(kind, Enter, r.check)
	}
}

func (r *ScopedVarsLeadingUnderscore) check(n *ast.Node) error {
	for _, stmt := range n.BodyStatements() {
		if !stmt.Is(ast.VariableDeclarationStatement) {
			continue
		}
		for _, v := range stmt.Variables {
			if v == nil || v.Name == "" {
				continue
			}
			if !naming.HasLeadingMarker(v.Name) {
				r.Error(v, shouldStartWith(v.Name))
			}
			if naming.HasTrailingMarker(v.Name) {
				r.Error(v, shouldNotEndWith(v.Name))
			}
		}
	}
	return nil
}
