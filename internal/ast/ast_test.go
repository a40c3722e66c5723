package ast

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// library Math {
//     uint256 internal constant ONE = 1;
//     function _add(uint256 a_, uint256 b_) internal pure returns (uint256 c_) {
//         uint256 _sum = a_ + b_;
//     }
// }
const mathLibrary = `{
  "type": "SourceUnit",
  "loc": {"start": {"line": 1, "column": 0}, "end": {"line": 6, "column": 0}},
  "children": [{
    "type": "ContractDefinition",
    "name": "Math",
    "kind": "library",
    "baseContracts": [],
    "loc": {"start": {"line": 1, "column": 0}, "end": {"line": 6, "column": 0}},
    "subNodes": [
      {
        "type": "FunctionDefinition",
        "name": "_add",
        "visibility": "internal",
        "stateMutability": "pure",
        "modifiers": [],
        "isConstructor": false,
        "loc": {"start": {"line": 3, "column": 4}, "end": {"line": 5, "column": 4}},
        "returnParameters": [
          {"type": "VariableDeclaration", "name": "c_", "isStateVar": false,
           "loc": {"start": {"line": 3, "column": 65}, "end": {"line": 3, "column": 74}}}
        ],
        "parameters": [
          {"type": "VariableDeclaration", "name": "a_", "isStateVar": false,
           "loc": {"start": {"line": 3, "column": 18}, "end": {"line": 3, "column": 27}}},
          {"type": "VariableDeclaration", "name": "b_", "isStateVar": false,
           "loc": {"start": {"line": 3, "column": 29}, "end": {"line": 3, "column": 38}}}
        ],
        "body": {
          "type": "Block",
          "loc": {"start": {"line": 3, "column": 76}, "end": {"line": 5, "column": 4}},
          "statements": [{
            "type": "VariableDeclarationStatement",
            "loc": {"start": {"line": 4, "column": 8}, "end": {"line": 4, "column": 30}},
            "variables": [
              {"type": "VariableDeclaration", "name": "_sum",
               "loc": {"start": {"line": 4, "column": 8}, "end": {"line": 4, "column": 19}}}
            ],
            "initialValue": null
          }]
        }
      },
      {
        "type": "StateVariableDeclaration",
        "loc": {"start": {"line": 2, "column": 4}, "end": {"line": 2, "column": 37}},
        "variables": [
          {"type": "VariableDeclaration", "name": "ONE", "visibility": "internal", "isStateVar": true,
           "loc": {"start": {"line": 2, "column": 4}, "end": {"line": 2, "column": 33}}}
        ]
      }
    ]
  }]
}`

type recorder struct {
	events []string
}

func (r *recorder) Enter(n *Node) error {
	r.events = append(r.events, fmt.Sprintf("enter %s %s", n.Type, n.Name))
	return nil
}

func (r *recorder) Exit(n *Node) error {
	r.events = append(r.events, fmt.Sprintf("exit %s %s", n.Type, n.Name))
	return nil
}

func TestParse(t *testing.T) {
	t.Parallel()

	root, err := Parse([]byte(mathLibrary))
	require.NoError(t, err)
	require.Equal(t, SourceUnit, root.Type)
	require.Len(t, root.Children, 1)

	lib := root.Children[0]
	assert.Equal(t, ContractDefinition, lib.Type)
	assert.Equal(t, KindLibrary, lib.Kind)
	assert.Equal(t, "Math", lib.Name)
	require.Len(t, lib.SubNodes, 2)

	// document order, not field order
	require.Len(t, lib.Children, 2)
	assert.Equal(t, StateVariableDeclaration, lib.Children[0].Type)
	assert.Equal(t, FunctionDefinition, lib.Children[1].Type)

	fn := lib.Children[1]
	assert.Equal(t, VisibilityInternal, fn.Visibility)
	require.Len(t, fn.Parameters, 2)
	assert.Equal(t, "a_", fn.Parameters[0].Name)
	assert.Equal(t, "b_", fn.Parameters[1].Name)
	require.Len(t, fn.ReturnParameters, 1)
	assert.Equal(t, "c_", fn.ReturnParameters[0].Name)
	assert.Equal(t, VisibilityNone, fn.Parameters[0].Visibility)

	stmts := fn.BodyStatements()
	require.Len(t, stmts, 1)
	assert.True(t, stmts[0].Is(VariableDeclarationStatement))
	assert.Equal(t, "_sum", stmts[0].Variables[0].Name)

	require.NotNil(t, fn.Loc)
	assert.Equal(t, Position{Line: 3, Column: 4}, fn.Loc.Start)
}

func TestParseKeepsSkippedTupleComponents(t *testing.T) {
	t.Parallel()

	src := `{
	  "type": "VariableDeclarationStatement",
	  "variables": [null, {"type": "VariableDeclaration", "name": "b"}],
	  "initialValue": {"type": "FunctionCall", "expression": {"type": "Identifier", "name": "f"}, "arguments": []}
	}`

	n, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, n.Variables, 2)
	assert.Nil(t, n.Variables[0])
	assert.Equal(t, "b", n.Variables[1].Name)
	// nil entries are not children
	assert.Len(t, n.Children, 2)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{name: "not json", src: "contract Foo {}"},
		{name: "no type", src: `{"name": "Foo"}`},
		{name: "array root", src: `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.src))
			assert.Error(t, err)
		})
	}
}

func TestWalkOrder(t *testing.T) {
	t.Parallel()

	root, err := Parse([]byte(mathLibrary))
	require.NoError(t, err)

	r := &recorder{}
	require.NoError(t, Walk(root, r))

	expected := []string{
		"enter SourceUnit ",
		"enter ContractDefinition Math",
		"enter StateVariableDeclaration ",
		"enter VariableDeclaration ONE",
		"exit VariableDeclaration ONE",
		"exit StateVariableDeclaration ",
		"enter FunctionDefinition _add",
		"enter VariableDeclaration a_",
		"exit VariableDeclaration a_",
		"enter VariableDeclaration b_",
		"exit VariableDeclaration b_",
		"enter VariableDeclaration c_",
		"exit VariableDeclaration c_",
		"enter Block ",
		"enter VariableDeclarationStatement ",
		"enter VariableDeclaration _sum",
		"exit VariableDeclaration _sum",
		"exit VariableDeclarationStatement ",
		"exit Block ",
		"exit FunctionDefinition _add",
		"exit ContractDefinition Math",
		"exit SourceUnit ",
	}
	assert.Equal(t, expected, r.events)
}

type failingVisitor struct {
	recorder
	failOn Kind
}

func (f *failingVisitor) Enter(n *Node) error {
	if n.Type == f.failOn {
		return fmt.Errorf("boom at %s", n.Type)
	}
	return f.recorder.Enter(n)
}

func TestWalkStopsOnError(t *testing.T) {
	t.Parallel()

	root, err := Parse([]byte(mathLibrary))
	require.NoError(t, err)

	v := &failingVisitor{failOn: FunctionDefinition}
	err = Walk(root, v)
	require.Error(t, err)
	assert.NotContains(t, v.events, "enter Block ")
}

func TestNodesOfHandBuiltTree(t *testing.T) {
	t.Parallel()

	param := &Node{Type: VariableDeclaration, Name: "x_"}
	ret := &Node{Type: VariableDeclaration, Name: "y_"}
	body := &Node{Type: Block}
	fn := &Node{
		Type:             FunctionDefinition,
		Parameters:       []*Node{param, nil},
		ReturnParameters: []*Node{ret},
		Body:             body,
	}

	assert.Equal(t, []*Node{param, ret, body}, fn.Nodes())
	assert.Nil(t, (&Node{Type: ForStatement, Body: &Node{Type: ExpressionStatement}}).BodyStatements())
}
