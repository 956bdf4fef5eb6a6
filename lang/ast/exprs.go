package ast

import "github.com/forgelang/forge/lang/token"

func (*NumberExpr) expr() {}
func (*StringExpr) expr() {}
func (*BoolExpr) expr()   {}
func (*NullExpr) expr()   {}
func (*SuperExpr) expr()  {}
func (*IdentExpr) expr()  {}
func (*ParenExpr) expr()  {}
func (*UnaryExpr) expr()  {}
func (*BinaryExpr) expr() {}
func (*CallExpr) expr()   {}
func (*IndexExpr) expr()  {}
func (*DotExpr) expr()    {}
func (*BadExpr) expr()    {}

// NumberExpr is a numeric literal.
type NumberExpr struct {
	Pos   token.Pos
	Value float64
}

func (e *NumberExpr) Span() (token.Pos, token.Pos) { return e.Pos, e.Pos }
func (e *NumberExpr) Walk(Visitor)                 {}

// StringExpr is a string literal, already escape-decoded by the scanner.
type StringExpr struct {
	Pos   token.Pos
	Value string
}

func (e *StringExpr) Span() (token.Pos, token.Pos) { return e.Pos, e.Pos }
func (e *StringExpr) Walk(Visitor)                 {}

// BoolExpr is `true` or `false`.
type BoolExpr struct {
	Pos   token.Pos
	Value bool
}

func (e *BoolExpr) Span() (token.Pos, token.Pos) { return e.Pos, e.Pos }
func (e *BoolExpr) Walk(Visitor)                 {}

// NullExpr is the `null` literal.
type NullExpr struct {
	Pos token.Pos
}

func (e *NullExpr) Span() (token.Pos, token.Pos) { return e.Pos, e.Pos }
func (e *NullExpr) Walk(Visitor)                 {}

// SuperExpr is the `super` keyword. It parses in any expression position;
// evaluating it is always an error.
type SuperExpr struct {
	Pos token.Pos
}

func (e *SuperExpr) Span() (token.Pos, token.Pos) { return e.Pos, e.Pos }
func (e *SuperExpr) Walk(Visitor)                 {}

// IdentExpr is a bare identifier, used for both variable reads and as the
// left side of a plain call.
type IdentExpr struct {
	Pos  token.Pos
	Name string
}

func (e *IdentExpr) Span() (token.Pos, token.Pos) { return e.Pos, e.Pos }
func (e *IdentExpr) Walk(Visitor)                 {}

// ParenExpr is a parenthesized expression, kept distinct from its inner
// expression only so positions span the parens.
type ParenExpr struct {
	Lparen, Rparen token.Pos
	X              Expr
}

func (e *ParenExpr) Span() (token.Pos, token.Pos) { return e.Lparen, e.Rparen }
func (e *ParenExpr) Walk(v Visitor)               { Walk(v, e.X) }

// UnaryExpr is `-X` or `not X`.
type UnaryExpr struct {
	Pos token.Pos
	Op  token.Token // MINUS or NOT
	X   Expr
}

func (e *UnaryExpr) Span() (token.Pos, token.Pos) {
	_, end := e.X.Span()
	return e.Pos, end
}
func (e *UnaryExpr) Walk(v Visitor) { Walk(v, e.X) }

// BinaryExpr is any binary operator expression (arithmetic, comparison,
// logical `and`/`or`).
type BinaryExpr struct {
	Left  Expr
	Op    token.Token
	OpPos token.Pos
	Right Expr
}

func (e *BinaryExpr) Span() (token.Pos, token.Pos) {
	start, _ := e.Left.Span()
	_, end := e.Right.Span()
	return start, end
}
func (e *BinaryExpr) Walk(v Visitor) {
	Walk(v, e.Left)
	Walk(v, e.Right)
}

// CallExpr is `Fn(Args...)`. Fn is an *IdentExpr for a plain call or a
// *DotExpr for a method call (`expr.attr(args)`); any other postfix
// expression (e.g. `f()()`) also parses as Fn but is rejected when evaluated.
type CallExpr struct {
	Fn     Expr
	Args   []Expr
	Rparen token.Pos
}

func (e *CallExpr) Span() (token.Pos, token.Pos) {
	start, _ := e.Fn.Span()
	return start, e.Rparen
}
func (e *CallExpr) Walk(v Visitor) {
	Walk(v, e.Fn)
	for _, a := range e.Args {
		Walk(v, a)
	}
}

// IndexExpr is `Prefix[Index]`. For strings this yields a single
// byte-indexed character string; for arrays it yields the element.
type IndexExpr struct {
	Prefix Expr
	Index  Expr
	Rbrack token.Pos
}

func (e *IndexExpr) Span() (token.Pos, token.Pos) {
	start, _ := e.Prefix.Span()
	return start, e.Rbrack
}
func (e *IndexExpr) Walk(v Visitor) {
	Walk(v, e.Prefix)
	Walk(v, e.Index)
}

// DotExpr is `Left.Attr`.
type DotExpr struct {
	Left    Expr
	Attr    string
	AttrPos token.Pos
}

func (e *DotExpr) Span() (token.Pos, token.Pos) {
	start, _ := e.Left.Span()
	return start, e.AttrPos
}
func (e *DotExpr) Walk(v Visitor) { Walk(v, e.Left) }

// BadExpr is a placeholder for an expression that failed to parse.
type BadExpr struct {
	Start, End token.Pos
}

func (e *BadExpr) Span() (token.Pos, token.Pos) { return e.Start, e.End }
func (e *BadExpr) Walk(Visitor)                 {}
