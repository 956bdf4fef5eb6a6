package ast

// VisitDirection tells a Visitor whether it is entering or exiting a node.
type VisitDirection int

const (
	VisitEnter VisitDirection = iota
	VisitExit
)

// Visitor is called for every node reached by Walk. Returning a nil Visitor
// from Visit skips the node's children.
type Visitor interface {
	Visit(n Node, dir VisitDirection) Visitor
}

// VisitorFunc adapts a plain function to the Visitor interface.
type VisitorFunc func(n Node, dir VisitDirection) Visitor

func (f VisitorFunc) Visit(n Node, dir VisitDirection) Visitor { return f(n, dir) }

// Walk calls v.Visit(node, VisitEnter); if that returns a non-nil Visitor it
// recurses into node's children with that visitor, then calls
// v.Visit(node, VisitExit).
func Walk(v Visitor, node Node) {
	if node == nil {
		return
	}
	if w := v.Visit(node, VisitEnter); w != nil {
		node.Walk(w)
		w.Visit(node, VisitExit)
	}
}
