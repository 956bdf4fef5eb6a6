package ast

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented dump of n to w, one node kind per line. It is
// used for debugging (the `parse` CLI subcommand), not for round-tripping
// source.
func Fprint(w io.Writer, n Node) error {
	p := &printer{w: w}
	Walk(p, n)
	return p.err
}

// Sprint is Fprint into a string.
func Sprint(n Node) string {
	var sb strings.Builder
	_ = Fprint(&sb, n)
	return sb.String()
}

type printer struct {
	w     io.Writer
	depth int
	err   error
}

func (p *printer) Visit(n Node, dir VisitDirection) Visitor {
	if dir == VisitExit {
		p.depth--
		return nil
	}
	if p.err != nil {
		return nil
	}
	_, err := fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", p.depth), describe(n))
	if err != nil {
		p.err = err
		return nil
	}
	p.depth++
	return p
}

func describe(n Node) string {
	switch n := n.(type) {
	case *Chunk:
		return fmt.Sprintf("chunk %q {stmts=%d}", n.Name, len(n.Stmts))
	case *Block:
		return fmt.Sprintf("block {stmts=%d}", len(n.Stmts))
	case *FuncStmt:
		return fmt.Sprintf("func %s(%s) async=%t", n.Name, strings.Join(n.Params, ", "), n.Async)
	case *IfStmt:
		return "if"
	case *WhileStmt:
		return "while"
	case *NumForStmt:
		return fmt.Sprintf("for %s = .., ..", n.Var)
	case *ForInStmt:
		return fmt.Sprintf("for %s in ..", n.Var)
	case *TryStmt:
		return "try/catch"
	case *ReturnStmt:
		return "return"
	case *PrintStmt:
		return fmt.Sprintf("print {args=%d}", len(n.Args))
	case *AssignStmt:
		return "assign"
	case *ExprStmt:
		return "expr-stmt"
	case *LoadStmt:
		if n.Target.All {
			return fmt.Sprintf("load from %s all", n.Folder)
		}
		return fmt.Sprintf("load from %s %s", n.Folder, n.Target.File)
	case *ClassStmt:
		return fmt.Sprintf("class %s(%s) {fields=%d, methods=%d}", n.Name, n.Parent, len(n.Fields), len(n.Methods))
	case *ImportDLLStmt:
		return fmt.Sprintf("from dll %q import %s as %s", n.Path, n.Name, n.Alias)
	case *BadStmt:
		return "<bad stmt>"
	case *NumberExpr:
		return fmt.Sprintf("number %v", n.Value)
	case *StringExpr:
		return fmt.Sprintf("string %q", n.Value)
	case *BoolExpr:
		return fmt.Sprintf("bool %t", n.Value)
	case *NullExpr:
		return "null"
	case *SuperExpr:
		return "super"
	case *IdentExpr:
		return fmt.Sprintf("ident %s", n.Name)
	case *ParenExpr:
		return "paren"
	case *UnaryExpr:
		return fmt.Sprintf("unary %s", n.Op)
	case *BinaryExpr:
		return fmt.Sprintf("binary %s", n.Op)
	case *CallExpr:
		return fmt.Sprintf("call {args=%d}", len(n.Args))
	case *IndexExpr:
		return "index"
	case *DotExpr:
		return fmt.Sprintf("dot .%s", n.Attr)
	case *BadExpr:
		return "<bad expr>"
	default:
		return fmt.Sprintf("%T", n)
	}
}
