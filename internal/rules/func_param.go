package rules

import (
	"github.com/gnolang/solint/internal/ast"
	"github.com/gnolang/solint/internal/naming"
)

const (
	FuncParamNameTrailingUnderscoreID       = "func-param-name-trailing-underscore"
	FuncReturnParamNameTrailingUnderscoreID = "func-return-param-name-trailing-underscore"
)

// FuncParamNameTrailingUnderscore checks the parameters of functions,
// modifiers, custom errors and events.
type FuncParamNameTrailingUnderscore struct {
	Base
}

func NewFuncParamNameTrailingUnderscore(reporter Reporter, config any) (Rule, error) {
	base, err := NewBase(FuncParamNameTrailingUnderscoreID, reporter, config)
	if err != nil {
		return nil, err
	}
	return &FuncParamNameTrailingUnderscore{Base: base}, nil
}

func (r *FuncParamNameTrailingUnderscore) Register(reg Registrar) {
	for _, kind := range []ast.Kind{
		ast.FunctionDefinition,
		ast.ModifierDefinition,
		ast.CustomErrorDefinition,
		ast.EventDefinition,
	} {
		reg.On(kind, Enter, r.check)
	}
}

func (r *FuncParamNameTrailingUnderscore) check(n *ast.Node) error {
	checkParameters(&r.Base, n.Parameters)
	return nil
}

// FuncReturnParamNameTrailingUnderscore checks the named return values of
// functions.
type FuncReturnParamNameTrailingUnderscore struct {
	Base
}

func NewFuncReturnParamNameTrailingUnderscore(reporter Reporter, config any) (Rule, error) {
	base, err := NewBase(FuncReturnParamNameTrailingUnderscoreID, reporter, config)
	if err != nil {
		return nil, err
	}
	return &FuncReturnParamNameTrailingUnderscore{Base: base}, nil
}

func (r *FuncReturnParamNameTrailingUnderscore) Register(reg Registrar) {
	reg.On(ast.FunctionDefinition, Enter, r.check)
}

func (r *FuncReturnParamNameTrailingUnderscore) check(n *ast.Node) error {
	checkParameters(&r.Base, n.ReturnParameters)
	return nil
}

// checkParameters requires the trailing marker and forbids the leading one.
// Both checks are independent and may report on the same parameter.
func checkParameters(b *Base, params []*ast.Node) {
	for _, param := range params {
		if param == nil || param.Name == "" {
			continue
		}
		if !naming.HasTrailingMarker(param.Name) {
			b.Error(param, shouldEndWith(param.Name))
		}
		if naming.HasLeadingMarker(param.Name) {
			b.Error(param, shouldNotStartWith(param.Name))
		}
	}
}
