package parser

import (
	"github.com/forgelang/forge/lang/ast"
	"github.com/forgelang/forge/lang/token"
)

// parseExpr parses a full expression, lowest precedence (`or`) first.
func (p *parser) parseExpr() ast.Expr {
	return p.parseOr()
}

func (p *parser) parseOr() ast.Expr {
	x := p.parseAnd()
	for p.tok() == token.OR {
		opPos := p.cur().Pos
		p.advance()
		rhs := p.parseAnd()
		x = &ast.BinaryExpr{Left: x, Op: token.OR, OpPos: opPos, Right: rhs}
	}
	return x
}

func (p *parser) parseAnd() ast.Expr {
	x := p.parseComparison()
	for p.tok() == token.AND {
		opPos := p.cur().Pos
		p.advance()
		rhs := p.parseComparison()
		x = &ast.BinaryExpr{Left: x, Op: token.AND, OpPos: opPos, Right: rhs}
	}
	return x
}

func isComparisonOp(t token.Token) bool {
	switch t {
	case token.EQL, token.NEQ, token.LT, token.LE, token.GT, token.GE:
		return true
	default:
		return false
	}
}

func (p *parser) parseComparison() ast.Expr {
	x := p.parseAdditive()
	for isComparisonOp(p.tok()) {
		op := p.tok()
		opPos := p.cur().Pos
		p.advance()
		rhs := p.parseAdditive()
		x = &ast.BinaryExpr{Left: x, Op: op, OpPos: opPos, Right: rhs}
	}
	return x
}

func (p *parser) parseAdditive() ast.Expr {
	x := p.parseMultiplicative()
	for p.tok() == token.PLUS || p.tok() == token.MINUS {
		op := p.tok()
		opPos := p.cur().Pos
		p.advance()
		rhs := p.parseMultiplicative()
		x = &ast.BinaryExpr{Left: x, Op: op, OpPos: opPos, Right: rhs}
	}
	return x
}

func (p *parser) parseMultiplicative() ast.Expr {
	x := p.parseUnary()
	for p.tok() == token.STAR || p.tok() == token.SLASH || p.tok() == token.PERCENT {
		op := p.tok()
		opPos := p.cur().Pos
		p.advance()
		rhs := p.parseUnary()
		x = &ast.BinaryExpr{Left: x, Op: op, OpPos: opPos, Right: rhs}
	}
	return x
}

func (p *parser) parseUnary() ast.Expr {
	if p.tok() == token.MINUS || p.tok() == token.NOT {
		op := p.tok()
		pos := p.cur().Pos
		p.advance()
		x := p.parseUnary()
		return &ast.UnaryExpr{Pos: pos, Op: op, X: x}
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary expression followed by any chain of call,
// index and attribute suffixes: `f(1)[0].attr(2)`.
func (p *parser) parsePostfix() ast.Expr {
	x := p.parsePrimary()
	for {
		switch p.tok() {
		case token.LPAREN:
			p.advance()
			var args []ast.Expr
			for p.tok() != token.RPAREN {
				args = append(args, p.parseExpr())
				if p.tok() == token.COMMA {
					p.advance()
				} else {
					break
				}
			}
			rparen := p.expect(token.RPAREN).Pos
			x = &ast.CallExpr{Fn: x, Args: args, Rparen: rparen}
		case token.LBRACK:
			p.advance()
			idx := p.parseExpr()
			rbrack := p.expect(token.RBRACK).Pos
			x = &ast.IndexExpr{Prefix: x, Index: idx, Rbrack: rbrack}
		case token.DOT:
			p.advance()
			attr, attrPos := p.expectIdent()
			x = &ast.DotExpr{Left: x, Attr: attr, AttrPos: attrPos}
		default:
			return x
		}
	}
}

func (p *parser) parsePrimary() ast.Expr {
	v := p.cur()
	switch v.Tok {
	case token.NUMBER:
		p.advance()
		return &ast.NumberExpr{Pos: v.Pos, Value: v.Num}
	case token.STRING:
		p.advance()
		return &ast.StringExpr{Pos: v.Pos, Value: v.Str}
	case token.TRUE:
		p.advance()
		return &ast.BoolExpr{Pos: v.Pos, Value: true}
	case token.FALSE:
		p.advance()
		return &ast.BoolExpr{Pos: v.Pos, Value: false}
	case token.NULL:
		p.advance()
		return &ast.NullExpr{Pos: v.Pos}
	case token.SUPER:
		p.advance()
		return &ast.SuperExpr{Pos: v.Pos}
	case token.IDENT:
		p.advance()
		return &ast.IdentExpr{Pos: v.Pos, Name: v.Raw}
	case token.LPAREN:
		p.advance()
		x := p.parseExpr()
		rparen := p.expect(token.RPAREN).Pos
		return &ast.ParenExpr{Lparen: v.Pos, Rparen: rparen, X: x}
	default:
		p.errorf(v.Pos, "expected an expression, found %s", describeTok(v))
		panic("unreachable")
	}
}
