package ast

// Visitor receives the traversal events. Exit is delivered for every node
// whose Enter succeeded, after all of its children.
type Visitor interface {
	Enter(n *Node) error
	Exit(n *Node) error
}

// Walk traverses the tree rooted at root in document order, pre-order for
// Enter and post-order for Exit. It stops at the first error a visitor
// returns.
func Walk(root *Node, v Visitor) error {
	if root == nil {
		return nil
	}
	if err := v.Enter(root); err != nil {
		return err
	}
	for _, child := range root.Nodes() {
		if err := Walk(child, v); err != nil {
			return err
		}
	}
	return v.Exit(root)
}
