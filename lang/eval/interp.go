// Package eval implements Forge's tree-walking evaluator: it walks the
// statement tree produced by lang/parser, resolving names, dispatching
// calls, constructing instances, and driving builtin invocation against a
// lang/env.Environment. There is no compilation step — every statement and
// expression is interpreted directly off the AST.
package eval

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/forgelang/forge/lang/ast"
	"github.com/forgelang/forge/lang/builtin"
	"github.com/forgelang/forge/lang/env"
	"github.com/forgelang/forge/lang/parser"
	"github.com/forgelang/forge/lang/value"
)

// DefaultMaxCallDepth bounds user-function/method call nesting when an
// Interp is constructed without an explicit override; it exists only to
// turn runaway recursion into a resource error instead of a crash.
const DefaultMaxCallDepth = 2048

// Interp carries the host collaborators the evaluator needs beyond the
// Environment itself: where print writes to, where load-from resolves
// relative paths, how deep calls may nest, and nothing else — all true I/O
// (files, sleep, stdin reads) lives behind builtins registered into the
// Environment.
type Interp struct {
	Out          io.Writer
	BaseDir      string
	MaxCallDepth int

	depth int
}

// New returns an Interp that writes to out and resolves load-from paths
// relative to baseDir, using DefaultMaxCallDepth.
func New(out io.Writer, baseDir string) *Interp {
	return &Interp{Out: out, BaseDir: baseDir, MaxCallDepth: DefaultMaxCallDepth}
}

// Run evaluates every statement of chunk into e, in order.
func (it *Interp) Run(chunk *ast.Chunk, e *env.Environment) error {
	return it.execStmts(chunk.Stmts, e)
}

func (it *Interp) execBlock(b *ast.Block, e *env.Environment) error {
	return it.execStmts(b.Stmts, e)
}

func (it *Interp) execStmts(stmts []ast.Stmt, e *env.Environment) error {
	for _, s := range stmts {
		if err := it.execStmt(s, e); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interp) execStmt(s ast.Stmt, e *env.Environment) error {
	switch s := s.(type) {
	case *ast.FuncStmt:
		e.DefineFunc(&value.FuncDescriptor{Name: s.Name, Params: s.Params, Body: s.Body, Async: s.Async})
		return nil

	case *ast.IfStmt:
		cond, err := it.eval(s.Cond, e)
		if err != nil {
			return err
		}
		if value.Truth(cond) {
			return it.execBlock(s.Then, e)
		}
		if s.Else != nil {
			return it.execBlock(s.Else, e)
		}
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := it.eval(s.Cond, e)
			if err != nil {
				return err
			}
			if !value.Truth(cond) {
				return nil
			}
			if err := it.execBlock(s.Body, e); err != nil {
				return err
			}
		}

	case *ast.NumForStmt:
		return it.execNumFor(s, e)

	case *ast.ForInStmt:
		return it.execForIn(s, e)

	case *ast.TryStmt:
		return it.execTry(s, e)

	case *ast.ReturnStmt:
		var v value.Value = value.Nil
		if s.Value != nil {
			var err error
			v, err = it.eval(s.Value, e)
			if err != nil {
				return err
			}
		}
		return &returnSignal{Value: v}

	case *ast.PrintStmt:
		parts := make([]string, len(s.Args))
		for i, a := range s.Args {
			v, err := it.eval(a, e)
			if err != nil {
				return err
			}
			parts[i] = v.Display()
		}
		fmt.Fprintln(it.Out, strings.Join(parts, " "))
		return nil

	case *ast.AssignStmt:
		return it.execAssign(s, e)

	case *ast.ExprStmt:
		_, err := it.eval(s.X, e)
		return err

	case *ast.LoadStmt:
		return it.execLoad(s, e)

	case *ast.ClassStmt:
		return it.execClassStmt(s, e)

	case *ast.ImportDLLStmt:
		return it.execImportDLL(s, e)

	case *ast.BadStmt:
		return nameErr(s.Start, "unparsed statement")

	default:
		start, _ := s.Span()
		return typeErr(start, "unsupported statement %T", s)
	}
}

func (it *Interp) execNumFor(s *ast.NumForStmt, e *env.Environment) error {
	lowV, err := it.eval(s.Low, e)
	if err != nil {
		return err
	}
	highV, err := it.eval(s.High, e)
	if err != nil {
		return err
	}
	low, ok := lowV.(value.Number)
	if !ok {
		start, _ := s.Span()
		return typeErr(start, "numeric for bounds must be numbers")
	}
	high, ok := highV.(value.Number)
	if !ok {
		start, _ := s.Span()
		return typeErr(start, "numeric for bounds must be numbers")
	}
	for i := int64(low); i <= int64(high); i++ {
		e.SetVar(s.Var, value.Number(i))
		if err := it.execBlock(s.Body, e); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interp) execForIn(s *ast.ForInStmt, e *env.Environment) error {
	arrV, err := it.eval(s.Array, e)
	if err != nil {
		return err
	}
	arr, ok := arrV.(*value.Array)
	if !ok {
		start, _ := s.Span()
		return typeErr(start, "for-in requires an array")
	}
	snapshot := slices.Clone(arr.Elems)
	for _, elem := range snapshot {
		e.SetVar(s.Var, elem)
		if err := it.execBlock(s.Body, e); err != nil {
			return err
		}
	}
	return nil
}

// execTry snapshots e's mutable state before running the try body. A real
// error (anything but a returnSignal) restores that snapshot and runs the
// catch body instead; a return propagates untouched.
func (it *Interp) execTry(s *ast.TryStmt, e *env.Environment) error {
	snap := e.Snapshot()
	err := it.execBlock(s.Try, e)
	if err == nil {
		return nil
	}
	if _, isReturn := err.(*returnSignal); isReturn {
		return err
	}
	e.Restore(snap)
	return it.execBlock(s.Catch, e)
}

func (it *Interp) execAssign(s *ast.AssignStmt, e *env.Environment) error {
	rhs, err := it.eval(s.Right, e)
	if err != nil {
		return err
	}
	switch left := s.Left.(type) {
	case *ast.IdentExpr:
		e.SetVar(left.Name, rhs)
		return nil
	case *ast.DotExpr:
		recv, err := it.eval(left.Left, e)
		if err != nil {
			return err
		}
		inst, ok := recv.(*value.Instance)
		if !ok {
			return typeErr(left.AttrPos, "cannot set attribute %q on a %s", left.Attr, recv.Kind())
		}
		inst.Fields.Put(left.Attr, rhs)
		return nil
	case *ast.IndexExpr:
		prefix, err := it.eval(left.Prefix, e)
		if err != nil {
			return err
		}
		idxV, err := it.eval(left.Index, e)
		if err != nil {
			return err
		}
		arr, ok := prefix.(*value.Array)
		if !ok {
			return typeErr(left.Rbrack, "cannot index-assign into a %s", prefix.Kind())
		}
		idx, ok := idxV.(value.Number)
		if !ok {
			return typeErr(left.Rbrack, "array index must be a number")
		}
		i := int(idx)
		if i < 0 || i >= len(arr.Elems) {
			return boundsErr(left.Rbrack, "array index %d out of range [0,%d)", i, len(arr.Elems))
		}
		arr.Elems[i] = rhs
		return nil
	default:
		start, _ := s.Span()
		return typeErr(start, "invalid assignment target %T", left)
	}
}

func (it *Interp) execClassStmt(s *ast.ClassStmt, e *env.Environment) error {
	var parent *value.Class
	if s.Parent != "" {
		p, ok := e.GetClass(s.Parent)
		if !ok {
			return nameErr(s.Start, "undefined parent class %q", s.Parent)
		}
		parent = p
	}
	cls := value.NewClass(s.Name, parent)
	for _, m := range s.Methods {
		cls.Methods[m.Name] = &value.FuncDescriptor{Name: m.Name, Params: m.Params, Body: m.Body, Async: m.Async}
	}
	for _, f := range s.Fields {
		ident, ok := f.Left.(*ast.IdentExpr)
		if !ok {
			start, _ := f.Span()
			return typeErr(start, "class field assignment must target a plain name")
		}
		v, err := it.eval(f.Right, e)
		if err != nil {
			return err
		}
		cls.Fields.Put(ident.Name, v)
	}
	e.DefineClass(cls)
	return nil
}

// execLoad resolves `load from FOLDER all|FILE`, parses and evaluates each
// resolved file into the current environment.
func (it *Interp) execLoad(s *ast.LoadStmt, e *env.Environment) error {
	files, err := it.resolveLoad(s)
	if err != nil {
		return err
	}
	for _, path := range files {
		src, err := readFile(path)
		if err != nil {
			return resourceErr(s.Start, "load from %s: %v", s.Folder, err)
		}
		chunk, err := parser.Parse(src, path)
		if err != nil {
			return resourceErr(s.Start, "load from %s: parse error in %s: %v", s.Folder, path, err)
		}
		if err := it.Run(chunk, e); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interp) execImportDLL(s *ast.ImportDLLStmt, e *env.Environment) error {
	lib, err := builtin.LoadLibrary(e, s.Path)
	if err != nil {
		return resourceErr(s.Start, "%v", err)
	}
	sym := s.Name
	e.DefineBuiltin(s.Alias, func(args []value.Value, e *env.Environment) (value.Value, error) {
		result, err := builtin.CallZeroArg(lib, sym)
		if err != nil {
			return nil, resourceErr(s.Start, "%v", err)
		}
		return value.Number(result), nil
	})
	return nil
}

