// Package ast models the Solidity syntax tree produced by an external parser
// (@solidity-parser/parser with locations enabled) and drives the
// enter/exit traversal the rules subscribe to.
//
// Nodes are decoded once and never modified afterwards. Only the attributes
// the naming rules consult are kept as typed fields; every other nested node
// is still reachable through Children so the traversal visits the whole tree.
package ast

// Kind is the node type tag, e.g. "FunctionDefinition".
type Kind string

const (
	SourceUnit                   Kind = "SourceUnit"
	ContractDefinition           Kind = "ContractDefinition"
	FunctionDefinition           Kind = "FunctionDefinition"
	ModifierDefinition           Kind = "ModifierDefinition"
	CustomErrorDefinition        Kind = "CustomErrorDefinition"
	EventDefinition              Kind = "EventDefinition"
	StateVariableDeclaration     Kind = "StateVariableDeclaration"
	VariableDeclaration          Kind = "VariableDeclaration"
	VariableDeclarationStatement Kind = "VariableDeclarationStatement"
	Block                        Kind = "Block"
	ForStatement                 Kind = "ForStatement"
	WhileStatement               Kind = "WhileStatement"
	DoWhileStatement             Kind = "DoWhileStatement"
	ExpressionStatement          Kind = "ExpressionStatement"
	IfStatement                  Kind = "IfStatement"
)

// Visibility is the declared accessibility of a definition.
// Declarations that cannot carry one (parameters, locals) have VisibilityNone.
type Visibility string

const (
	VisibilityNone     Visibility = ""
	VisibilityPrivate  Visibility = "private"
	VisibilityInternal Visibility = "internal"
	VisibilityPublic   Visibility = "public"
	VisibilityExternal Visibility = "external"
	VisibilityDefault  Visibility = "default"
)

// ContractKind distinguishes the flavours of ContractDefinition.
type ContractKind string

const (
	KindContract  ContractKind = "contract"
	KindLibrary   ContractKind = "library"
	KindInterface ContractKind = "interface"
	KindAbstract  ContractKind = "abstract"
)

// Position is a point in the source as reported by the parser:
// 1-based line, 0-based column.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Location is the source span of a node.
type Location struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Node is a single syntax tree node.
type Node struct {
	Type       Kind
	Name       string
	Visibility Visibility
	Kind       ContractKind
	Loc        *Location

	// Parameters and ReturnParameters hold VariableDeclaration nodes.
	Parameters       []*Node
	ReturnParameters []*Node

	// Variables of a VariableDeclarationStatement or StateVariableDeclaration.
	// Entries may be nil for skipped tuple components.
	Variables []*Node

	// SubNodes of a ContractDefinition.
	SubNodes []*Node

	// Body of function-like and loop nodes, usually a Block.
	Body *Node

	// Statements of a Block.
	Statements []*Node

	// Children lists every nested node in document order. It is filled by
	// the decoder; hand-built trees may leave it nil, see Nodes.
	Children []*Node
}

// Is reports whether n is non-nil and of kind k.
func (n *Node) Is(k Kind) bool {
	return n != nil && n.Type == k
}

// Nodes returns the children of n in the order the traversal visits them.
func (n *Node) Nodes() []*Node {
	if n == nil {
		return nil
	}
	if n.Children != nil {
		return n.Children
	}

	var out []*Node
	for _, group := range [][]*Node{n.Parameters, n.ReturnParameters, n.Variables, n.SubNodes} {
		for _, child := range group {
			if child != nil {
				out = append(out, child)
			}
		}
	}
	if n.Body != nil {
		out = append(out, n.Body)
	}
	for _, child := range n.Statements {
		if child != nil {
			out = append(out, child)
		}
	}
	return out
}

// BodyStatements returns the immediate statements of n's body when the body
// is a block, and nil otherwise.
func (n *Node) BodyStatements() []*Node {
	if n == nil || !n.Body.Is(Block) {
		return nil
	}
	return n.Body.Statements
}
