package eval

import (
	"github.com/forgelang/forge/lang/ast"
	"github.com/forgelang/forge/lang/env"
	"github.com/forgelang/forge/lang/token"
	"github.com/forgelang/forge/lang/value"
)

func (it *Interp) evalCall(x *ast.CallExpr, e *env.Environment) (value.Value, error) {
	switch fn := x.Fn.(type) {
	case *ast.IdentExpr:
		return it.callByName(fn, x, e)
	case *ast.DotExpr:
		return it.callMethod(fn, x, e)
	default:
		start, _ := x.Fn.Span()
		return nil, typeErr(start, "expression is not callable")
	}
}

// callByName implements the bare-call name resolution order: a class
// constructs an instance, a builtin is invoked directly, and only then is a
// user function tried.
func (it *Interp) callByName(fn *ast.IdentExpr, x *ast.CallExpr, e *env.Environment) (value.Value, error) {
	args, err := it.evalArgs(x.Args, e)
	if err != nil {
		return nil, err
	}

	if cls, ok := e.GetClass(fn.Name); ok {
		return it.construct(cls, args, x.Rparen, e)
	}
	if b, ok := e.GetBuiltin(fn.Name); ok {
		v, err := b(args, e)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
	if userFn, ok := e.GetFunc(fn.Name); ok {
		return it.invoke(userFn, nil, args, x.Rparen, e)
	}
	return nil, nameErr(fn.Pos, "undefined name %q", fn.Name)
}

// callMethod evaluates `recv.m(args)`: the attribute-lookup rule yields a
// bound Method, and the call prepends recv as the first argument.
func (it *Interp) callMethod(dot *ast.DotExpr, x *ast.CallExpr, e *env.Environment) (value.Value, error) {
	recvV, err := it.eval(dot.Left, e)
	if err != nil {
		return nil, err
	}
	args, err := it.evalArgs(x.Args, e)
	if err != nil {
		return nil, err
	}

	switch r := recvV.(type) {
	case *value.Instance:
		v, ok := value.Lookup(r, r, dot.Attr)
		if !ok {
			return nil, nameErr(dot.AttrPos, "instance of %s has no attribute %q", r.Class.Name, dot.Attr)
		}
		m, ok := v.(*value.Method)
		if !ok {
			return nil, typeErr(dot.AttrPos, "attribute %q is not callable", dot.Attr)
		}
		return it.invoke(m.Func, m.Receiver, args, x.Rparen, e)
	case *value.Class:
		m, ok := r.Methods[dot.Attr]
		if !ok {
			return nil, nameErr(dot.AttrPos, "class %s has no attribute %q", r.Name, dot.Attr)
		}
		return it.invoke(m, r, args, x.Rparen, e)
	default:
		return nil, typeErr(dot.AttrPos, "cannot call attribute %q on a %s", dot.Attr, recvV.Kind())
	}
}

func (it *Interp) evalArgs(exprs []ast.Expr, e *env.Environment) ([]value.Value, error) {
	args := make([]value.Value, len(exprs))
	for i, a := range exprs {
		v, err := it.eval(a, e)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

// invoke runs fn's body in a fresh child scope. If recv is non-nil it is
// prepended as the first argument, matching method-call binding. Argument
// count must match parameter count exactly.
func (it *Interp) invoke(fn *value.FuncDescriptor, recv value.Value, args []value.Value, callPos token.Pos, e *env.Environment) (value.Value, error) {
	if recv != nil {
		full := make([]value.Value, 0, len(args)+1)
		full = append(full, recv)
		full = append(full, args...)
		args = full
	}
	if len(args) != len(fn.Params) {
		return nil, typeErr(callPos, "%s expects %d argument(s), got %d", fn.Name, len(fn.Params), len(args))
	}

	if it.MaxCallDepth > 0 && it.depth >= it.MaxCallDepth {
		return nil, resourceErr(callPos, "call depth exceeded %d while calling %s", it.MaxCallDepth, fn.Name)
	}
	it.depth++
	defer func() { it.depth-- }()

	child := e.Child()
	for i, p := range fn.Params {
		child.SetVar(p, args[i])
	}

	err := it.execBlock(fn.Body, child)
	if err == nil {
		return value.Nil, nil
	}
	if ret, ok := err.(*returnSignal); ok {
		return ret.Value, nil
	}
	return nil, err
}

// construct creates a new Instance and, if the class defines __init__,
// invokes it with the instance bound as the receiver. No super-constructor
// is called automatically.
func (it *Interp) construct(cls *value.Class, args []value.Value, rparen token.Pos, e *env.Environment) (value.Value, error) {
	inst := value.NewInstance(cls)
	if initFn, ok := cls.Methods["__init__"]; ok {
		if _, err := it.invoke(initFn, inst, args, rparen, e); err != nil {
			return nil, err
		}
	}
	return inst, nil
}
