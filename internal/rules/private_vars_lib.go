package rules

import (
	"github.com/gnolang/solint/internal/ast"
	"github.com/gnolang/solint/internal/naming"
)

const PrivateVarsLeadingUnderscoreLibID = "private-vars-leading-underscore-lib"

// PrivateVarsLeadingUnderscoreLib checks that library members start with the
// marker exactly when they are not reachable from outside the library.
type PrivateVarsLeadingUnderscoreLib struct {
	Base

	library     Scope
	declaration Scope
}

func NewPrivateVarsLeadingUnderscoreLib(reporter Reporter, config any) (Rule, error) {
	base, err := NewBase(PrivateVarsLeadingUnderscoreLibID, reporter, config)
	if err != nil {
		return nil, err
	}
	return &PrivateVarsLeadingUnderscoreLib{
		Base:        base,
		library:     NewScope(ast.ContractDefinition),
		declaration: NewScope(ast.VariableDeclarationStatement),
	}, nil
}

func (r *PrivateVarsLeadingUnderscoreLib) Register(reg Registrar) {
	reg.On(ast.ContractDefinition, Enter, r.enterContract)
	reg.On(ast.ContractDefinition, Exit, r.library.Exit)
	reg.On(ast.VariableDeclarationStatement, Enter, r.enterDeclaration)
	reg.On(ast.VariableDeclarationStatement, Exit, r.declaration.Exit)
	reg.On(ast.FunctionDefinition, Enter, r.check)
	reg.On(ast.VariableDeclaration, Enter, r.check)
}

func (r *PrivateVarsLeadingUnderscoreLib) enterContract(n *ast.Node) error {
	return r.library.Enter(n, n.Kind == ast.KindLibrary)
}

// locals are not library members
func (r *PrivateVarsLeadingUnderscoreLib) enterDeclaration(n *ast.Node) error {
	return r.declaration.Enter(n, true)
}

func (r *PrivateVarsLeadingUnderscoreLib) check(n *ast.Node) error {
	if !r.library.Inside() || r.declaration.Inside() || n.Name == "" {
		return nil
	}

	want := requiresLeadingMarker(n.Visibility)
	if naming.HasLeadingMarker(n.Name) != want {
		if want {
			r.Error(n, shouldStartWith(n.Name))
		} else {
			r.Error(n, shouldNotStartWith(n.Name))
		}
	}
	return nil
}

// requiresLeadingMarker treats the unspecified default accessibility as
// internal. Declarations without any accessibility are public-facing names
// (parameters) and must not carry the marker.
func requiresLeadingMarker(v ast.Visibility) bool {
	switch v {
	case ast.VisibilityPrivate, ast.VisibilityInternal, ast.VisibilityDefault:
		return true
	default:
		return false
	}
}
