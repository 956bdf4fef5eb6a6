package eval

import (
	"math"

	"github.com/forgelang/forge/lang/ast"
	"github.com/forgelang/forge/lang/env"
	"github.com/forgelang/forge/lang/token"
	"github.com/forgelang/forge/lang/value"
)

// eval evaluates a single expression to a Value. Operands of a binary
// expression and arguments of a call evaluate left-to-right.
func (it *Interp) eval(x ast.Expr, e *env.Environment) (value.Value, error) {
	switch x := x.(type) {
	case *ast.NumberExpr:
		return value.Number(x.Value), nil
	case *ast.StringExpr:
		return value.String(x.Value), nil
	case *ast.BoolExpr:
		return value.Boolean(x.Value), nil
	case *ast.NullExpr:
		return value.Nil, nil
	case *ast.SuperExpr:
		return nil, nameErr(x.Pos, "super is not implemented")
	case *ast.IdentExpr:
		if v, ok := e.GetVar(x.Name); ok {
			return v, nil
		}
		return nil, nameErr(x.Pos, "undefined variable %q", x.Name)
	case *ast.ParenExpr:
		return it.eval(x.X, e)
	case *ast.UnaryExpr:
		return it.evalUnary(x, e)
	case *ast.BinaryExpr:
		return it.evalBinary(x, e)
	case *ast.CallExpr:
		return it.evalCall(x, e)
	case *ast.IndexExpr:
		return it.evalIndex(x, e)
	case *ast.DotExpr:
		return it.evalDot(x, e)
	case *ast.BadExpr:
		return nil, typeErr(x.Start, "unparsed expression")
	default:
		start, _ := x.Span()
		return nil, typeErr(start, "unsupported expression %T", x)
	}
}

func (it *Interp) evalUnary(x *ast.UnaryExpr, e *env.Environment) (value.Value, error) {
	v, err := it.eval(x.X, e)
	if err != nil {
		return nil, err
	}
	switch x.Op {
	case token.MINUS:
		n, ok := v.(value.Number)
		if !ok {
			return nil, typeErr(x.Pos, "unary '-' requires a number, got %s", v.Kind())
		}
		return -n, nil
	case token.NOT:
		return value.Boolean(!value.Truth(v)), nil
	default:
		return nil, typeErr(x.Pos, "unsupported unary operator %s", x.Op)
	}
}

func (it *Interp) evalBinary(x *ast.BinaryExpr, e *env.Environment) (value.Value, error) {
	if x.Op == token.AND || x.Op == token.OR {
		left, err := it.eval(x.Left, e)
		if err != nil {
			return nil, err
		}
		lt := value.Truth(left)
		if x.Op == token.AND && !lt {
			return value.Boolean(false), nil
		}
		if x.Op == token.OR && lt {
			return value.Boolean(true), nil
		}
		right, err := it.eval(x.Right, e)
		if err != nil {
			return nil, err
		}
		return value.Boolean(value.Truth(right)), nil
	}

	left, err := it.eval(x.Left, e)
	if err != nil {
		return nil, err
	}
	right, err := it.eval(x.Right, e)
	if err != nil {
		return nil, err
	}

	switch x.Op {
	case token.PLUS:
		return evalAdd(x.OpPos, left, right)
	case token.MINUS, token.STAR, token.SLASH, token.PERCENT:
		return evalArith(x.Op, x.OpPos, left, right)
	case token.EQL:
		return value.Boolean(value.Equal(left, right)), nil
	case token.NEQ:
		return value.Boolean(!value.Equal(left, right)), nil
	case token.LT, token.LE, token.GT, token.GE:
		return evalCompare(x.Op, x.OpPos, left, right)
	default:
		return nil, typeErr(x.OpPos, "unsupported binary operator %s", x.Op)
	}
}

func evalAdd(pos token.Pos, left, right value.Value) (value.Value, error) {
	if ln, ok := left.(value.Number); ok {
		if rn, ok := right.(value.Number); ok {
			return ln + rn, nil
		}
	}
	if la, ok := left.(*value.Array); ok {
		ra, ok := right.(*value.Array)
		if !ok {
			return nil, typeErr(pos, "'+' between an array and a %s is not supported", right.Kind())
		}
		combined := make([]value.Value, 0, len(la.Elems)+len(ra.Elems))
		combined = append(combined, la.Elems...)
		combined = append(combined, ra.Elems...)
		return value.NewArray(combined), nil
	}
	if _, ok := left.(value.String); ok {
		return value.String(left.Display() + right.Display()), nil
	}
	if _, ok := right.(value.String); ok {
		return value.String(left.Display() + right.Display()), nil
	}
	return nil, typeErr(pos, "'+' requires two numbers, two strings, two arrays, or a string and any value (got %s and %s)", left.Kind(), right.Kind())
}

func evalArith(op token.Token, pos token.Pos, left, right value.Value) (value.Value, error) {
	ln, ok := left.(value.Number)
	if !ok {
		return nil, typeErr(pos, "'%s' requires two numbers, got %s", op, left.Kind())
	}
	rn, ok := right.(value.Number)
	if !ok {
		return nil, typeErr(pos, "'%s' requires two numbers, got %s", op, right.Kind())
	}
	switch op {
	case token.MINUS:
		return ln - rn, nil
	case token.STAR:
		return ln * rn, nil
	case token.SLASH:
		if rn == 0 {
			return nil, arithErr(pos, "division by zero")
		}
		return ln / rn, nil
	case token.PERCENT:
		if rn == 0 {
			return nil, arithErr(pos, "modulus by zero")
		}
		return value.Number(math.Mod(float64(ln), float64(rn))), nil
	default:
		return nil, typeErr(pos, "unsupported arithmetic operator %s", op)
	}
}

// evalCompare implements the documented string-length-comparison oddity:
// two strings compare by length, not lexicographically.
func evalCompare(op token.Token, pos token.Pos, left, right value.Value) (value.Value, error) {
	var lt, eq bool
	switch l := left.(type) {
	case value.Number:
		r, ok := right.(value.Number)
		if !ok {
			return nil, typeErr(pos, "cannot compare number and %s", right.Kind())
		}
		lt, eq = l < r, l == r
	case value.String:
		r, ok := right.(value.String)
		if !ok {
			return nil, typeErr(pos, "cannot compare string and %s", right.Kind())
		}
		lt, eq = len(l) < len(r), len(l) == len(r)
	default:
		return nil, typeErr(pos, "%s is not comparable", left.Kind())
	}
	switch op {
	case token.LT:
		return value.Boolean(lt), nil
	case token.LE:
		return value.Boolean(lt || eq), nil
	case token.GT:
		return value.Boolean(!lt && !eq), nil
	case token.GE:
		return value.Boolean(!lt), nil
	default:
		return nil, typeErr(pos, "unsupported comparison operator %s", op)
	}
}

func (it *Interp) evalIndex(x *ast.IndexExpr, e *env.Environment) (value.Value, error) {
	prefix, err := it.eval(x.Prefix, e)
	if err != nil {
		return nil, err
	}
	idxV, err := it.eval(x.Index, e)
	if err != nil {
		return nil, err
	}
	idxN, ok := idxV.(value.Number)
	if !ok {
		return nil, typeErr(x.Rbrack, "index must be a number")
	}
	i := int(idxN)

	switch p := prefix.(type) {
	case *value.Array:
		if i < 0 || i >= len(p.Elems) {
			return nil, boundsErr(x.Rbrack, "array index %d out of range [0,%d)", i, len(p.Elems))
		}
		return p.Elems[i], nil
	case value.String:
		if i < 0 || i >= len(p) {
			return nil, boundsErr(x.Rbrack, "string index %d out of range [0,%d)", i, len(p))
		}
		return value.String(p[i]), nil
	default:
		return nil, typeErr(x.Rbrack, "cannot index a %s", prefix.Kind())
	}
}

func (it *Interp) evalDot(x *ast.DotExpr, e *env.Environment) (value.Value, error) {
	recv, err := it.eval(x.Left, e)
	if err != nil {
		return nil, err
	}
	switch r := recv.(type) {
	case *value.Instance:
		v, ok := value.Lookup(r, r, x.Attr)
		if !ok {
			return nil, nameErr(x.AttrPos, "instance of %s has no attribute %q", r.Class.Name, x.Attr)
		}
		return v, nil
	case *value.Class:
		if v, ok := r.Fields.Get(x.Attr); ok {
			return v, nil
		}
		if m, ok := r.Methods[x.Attr]; ok {
			return &value.Method{Func: m, Receiver: r}, nil
		}
		return nil, nameErr(x.AttrPos, "class %s has no attribute %q", r.Name, x.Attr)
	default:
		return nil, typeErr(x.AttrPos, "cannot access attribute %q on a %s", x.Attr, recv.Kind())
	}
}
