package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gnolang/solint/internal/ast"
)

type finding struct {
	Severity string
	Rule     string
	Node     string
	Message  string
}

type recordingReporter struct {
	findings []finding
}

func (r *recordingReporter) Error(n *ast.Node, ruleID, message string) {
	r.findings = append(r.findings, finding{Severity: "error", Rule: ruleID, Node: n.Name, Message: message})
}

func (r *recordingReporter) Warn(n *ast.Node, ruleID, message string) {
	r.findings = append(r.findings, finding{Severity: "warn", Rule: ruleID, Node: n.Name, Message: message})
}

func (r *recordingReporter) messages() []string {
	out := make([]string, 0, len(r.findings))
	for _, f := range r.findings {
		out = append(out, f.Message)
	}
	return out
}

// run builds a fresh instance of the rule and walks root with it.
func run(t *testing.T, ctor Constructor, root *ast.Node) *recordingReporter {
	t.Helper()
	rep := &recordingReporter{}
	rule, err := ctor(rep, nil)
	require.NoError(t, err)
	require.NoError(t, NewDispatcher(rule).Run(root))
	return rep
}

func sourceUnit(children ...*ast.Node) *ast.Node {
	return &ast.Node{Type: ast.SourceUnit, SubNodes: children}
}

func contract(kind ast.ContractKind, name string, members ...*ast.Node) *ast.Node {
	return &ast.Node{Type: ast.ContractDefinition, Kind: kind, Name: name, SubNodes: members}
}

func param(name string) *ast.Node {
	return &ast.Node{Type: ast.VariableDeclaration, Name: name}
}

func params(names ...string) []*ast.Node {
	out := make([]*ast.Node, 0, len(names))
	for _, name := range names {
		out = append(out, param(name))
	}
	return out
}

func stateVar(vis ast.Visibility, name string) *ast.Node {
	return &ast.Node{
		Type:      ast.StateVariableDeclaration,
		Variables: []*ast.Node{{Type: ast.VariableDeclaration, Name: name, Visibility: vis}},
	}
}

func block(stmts ...*ast.Node) *ast.Node {
	return &ast.Node{Type: ast.Block, Statements: stmts}
}

func declare(names ...string) *ast.Node {
	return &ast.Node{Type: ast.VariableDeclarationStatement, Variables: params(names...)}
}

func function(vis ast.Visibility, name string, body *ast.Node) *ast.Node {
	return &ast.Node{Type: ast.FunctionDefinition, Name: name, Visibility: vis, Body: body}
}

func loop(kind ast.Kind, body *ast.Node) *ast.Node {
	return &ast.Node{Type: kind, Body: body}
}
