package ast

import "github.com/forgelang/forge/lang/token"

func (*FuncStmt) stmt()      {}
func (*IfStmt) stmt()        {}
func (*WhileStmt) stmt()     {}
func (*NumForStmt) stmt()    {}
func (*ForInStmt) stmt()     {}
func (*TryStmt) stmt()       {}
func (*ReturnStmt) stmt()    {}
func (*PrintStmt) stmt()     {}
func (*AssignStmt) stmt()    {}
func (*ExprStmt) stmt()      {}
func (*LoadStmt) stmt()      {}
func (*ClassStmt) stmt()     {}
func (*ImportDLLStmt) stmt() {}
func (*BadStmt) stmt()       {}

// FuncStmt is a (possibly async) function definition.
//
//	[async ]function NAME(params):
//	    <Body>
type FuncStmt struct {
	Start   token.Pos
	Async   bool
	Name    string
	Params  []string
	Body    *Block
	EndPos  token.Pos
}

func (s *FuncStmt) Span() (token.Pos, token.Pos) { return s.Start, s.EndPos }
func (s *FuncStmt) Walk(v Visitor)               { Walk(v, s.Body) }

// IfStmt is an if/elif/else chain. Elif is modeled as a nested IfStmt stored
// in Else, so a chain of N elifs is N nested IfStmt values.
//
//	if COND:
//	    <Then>
//	elif COND:
//	    ...
//	else:
//	    <Else>
type IfStmt struct {
	Start  token.Pos
	Cond   Expr
	Then   *Block
	Else   *Block // may hold a single *IfStmt wrapped in a Block, for elif
	EndPos token.Pos
}

func (s *IfStmt) Span() (token.Pos, token.Pos) { return s.Start, s.EndPos }
func (s *IfStmt) Walk(v Visitor) {
	Walk(v, s.Cond)
	Walk(v, s.Then)
	if s.Else != nil {
		Walk(v, s.Else)
	}
}

// WhileStmt is `while COND:`.
type WhileStmt struct {
	Start  token.Pos
	Cond   Expr
	Body   *Block
	EndPos token.Pos
}

func (s *WhileStmt) Span() (token.Pos, token.Pos) { return s.Start, s.EndPos }
func (s *WhileStmt) Walk(v Visitor) {
	Walk(v, s.Cond)
	Walk(v, s.Body)
}

// NumForStmt is the inclusive numeric for loop `for V = LOW, HIGH do`.
type NumForStmt struct {
	Start  token.Pos
	Var    string
	Low    Expr
	High   Expr
	Body   *Block
	EndPos token.Pos
}

func (s *NumForStmt) Span() (token.Pos, token.Pos) { return s.Start, s.EndPos }
func (s *NumForStmt) Walk(v Visitor) {
	Walk(v, s.Low)
	Walk(v, s.High)
	Walk(v, s.Body)
}

// ForInStmt is `for V in ARRAY:`.
type ForInStmt struct {
	Start  token.Pos
	Var    string
	Array  Expr
	Body   *Block
	EndPos token.Pos
}

func (s *ForInStmt) Span() (token.Pos, token.Pos) { return s.Start, s.EndPos }
func (s *ForInStmt) Walk(v Visitor) {
	Walk(v, s.Array)
	Walk(v, s.Body)
}

// TryStmt is `try: ... catch: ...`.
type TryStmt struct {
	Start  token.Pos
	Try    *Block
	Catch  *Block
	EndPos token.Pos
}

func (s *TryStmt) Span() (token.Pos, token.Pos) { return s.Start, s.EndPos }
func (s *TryStmt) Walk(v Visitor) {
	Walk(v, s.Try)
	Walk(v, s.Catch)
}

// ReturnStmt is `return EXPR`.
type ReturnStmt struct {
	Start token.Pos
	Value Expr
}

func (s *ReturnStmt) Span() (token.Pos, token.Pos) {
	if s.Value != nil {
		_, end := s.Value.Span()
		return s.Start, end
	}
	return s.Start, s.Start
}
func (s *ReturnStmt) Walk(v Visitor) { Walk(v, s.Value) }

// PrintStmt is `print(args)`.
type PrintStmt struct {
	Start  token.Pos
	Args   []Expr
	EndPos token.Pos
}

func (s *PrintStmt) Span() (token.Pos, token.Pos) { return s.Start, s.EndPos }
func (s *PrintStmt) Walk(v Visitor) {
	for _, a := range s.Args {
		Walk(v, a)
	}
}

// AssignStmt is `NAME = EXPR`, `IDENT.attr = EXPR`, or `IDENT[i] = EXPR`.
// Left is restricted by the parser to *IdentExpr, *DotExpr or *IndexExpr.
type AssignStmt struct {
	Left  Expr
	Right Expr
}

func (s *AssignStmt) Span() (token.Pos, token.Pos) {
	start, _ := s.Left.Span()
	_, end := s.Right.Span()
	return start, end
}
func (s *AssignStmt) Walk(v Visitor) {
	Walk(v, s.Left)
	Walk(v, s.Right)
}

// ExprStmt is a call expression used as a statement; its value is discarded.
type ExprStmt struct {
	X Expr
}

func (s *ExprStmt) Span() (token.Pos, token.Pos) { return s.X.Span() }
func (s *ExprStmt) Walk(v Visitor)               { Walk(v, s.X) }

// LoadTarget distinguishes `load from DIR all` from `load from DIR FILE`.
type LoadTarget struct {
	All  bool
	File string // set only if !All
}

// LoadStmt is `load from FOLDER all` or `load from FOLDER FILE`.
type LoadStmt struct {
	Start  token.Pos
	Folder string
	Target LoadTarget
}

func (s *LoadStmt) Span() (token.Pos, token.Pos) { return s.Start, s.Start }
func (s *LoadStmt) Walk(Visitor)                 {}

// ClassStmt is a class definition. Its body is split by the parser into
// static-field assignments and method definitions.
type ClassStmt struct {
	Start   token.Pos
	Name    string
	Parent  string // empty if no parent
	Fields  []*AssignStmt
	Methods []*FuncStmt
	EndPos  token.Pos
}

func (s *ClassStmt) Span() (token.Pos, token.Pos) { return s.Start, s.EndPos }
func (s *ClassStmt) Walk(v Visitor) {
	for _, f := range s.Fields {
		Walk(v, f)
	}
	for _, m := range s.Methods {
		Walk(v, m)
	}
}

// ImportDLLStmt is `from dll "PATH" import NAME [as ALIAS]`.
type ImportDLLStmt struct {
	Start token.Pos
	Path  string
	Name  string
	Alias string // equals Name if no `as` clause
}

func (s *ImportDLLStmt) Span() (token.Pos, token.Pos) { return s.Start, s.Start }
func (s *ImportDLLStmt) Walk(Visitor)                 {}

// BadStmt is a placeholder for a statement that failed to parse. The parser
// has no error recovery and aborts on the first error, so it never produces
// one; the evaluator rejects it if one is built by other means.
type BadStmt struct {
	Start, EndPos token.Pos
}

func (s *BadStmt) Span() (token.Pos, token.Pos) { return s.Start, s.EndPos }
func (s *BadStmt) Walk(Visitor)                 {}
