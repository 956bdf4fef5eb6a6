// Package ast defines the abstract syntax tree produced by the parser for
// a Forge source file, and a Visitor to walk it.
package ast

import "github.com/forgelang/forge/lang/token"

// Node is implemented by every AST node.
type Node interface {
	// Span reports the start and end position of the node.
	Span() (start, end token.Pos)
	// Walk visits the node's direct children, if any, with v.
	Walk(v Visitor)
}

// Expr is an expression node.
type Expr interface {
	Node
	expr()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmt()
}

// Chunk is the root node of a parsed file: an ordered list of top-level
// statements.
type Chunk struct {
	Name  string // source file name, may be empty
	Stmts []Stmt
	End   token.Pos // position of EOF
}

func (c *Chunk) Span() (token.Pos, token.Pos) {
	if len(c.Stmts) == 0 {
		return c.End, c.End
	}
	start, _ := c.Stmts[0].Span()
	return start, c.End
}
func (c *Chunk) Walk(v Visitor) {
	for _, s := range c.Stmts {
		Walk(v, s)
	}
}

// Block is a run of statements making up the body of a compound statement.
type Block struct {
	Stmts []Stmt
}

func (b *Block) Span() (token.Pos, token.Pos) {
	if len(b.Stmts) == 0 {
		return token.Pos(0), token.Pos(0)
	}
	start, _ := b.Stmts[0].Span()
	_, end := b.Stmts[len(b.Stmts)-1].Span()
	return start, end
}
func (b *Block) Walk(v Visitor) {
	for _, s := range b.Stmts {
		Walk(v, s)
	}
}
