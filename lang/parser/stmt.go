package parser

import (
	"strings"

	"github.com/forgelang/forge/lang/ast"
	"github.com/forgelang/forge/lang/token"
)

// parseStmts parses a run of statements that all sit at exactly indent,
// stopping at the first token whose line is indented less (end of block) or
// at EOF. A token indented more than indent while a new statement is
// expected is a parse error: unexpected indentation always aborts the whole
// parse, there is no recovery.
func (p *parser) parseStmts(indent int) []ast.Stmt {
	var stmts []ast.Stmt
	for {
		if p.tok() == token.EOF {
			return stmts
		}
		cur := p.indent()
		if cur < indent {
			return stmts
		}
		if cur > indent {
			p.errorf(p.cur().Pos, "unexpected indentation")
		}
		stmts = append(stmts, p.parseStmt())
	}
}

// parseBody parses the indented block following a header whose own
// indentation was headerIndent. The body's indentation is whatever the
// first body line uses, as long as it is strictly greater than
// headerIndent.
func (p *parser) parseBody(headerIndent int) *ast.Block {
	if p.tok() == token.EOF {
		p.errorf(p.cur().Pos, "expected an indented block, found end of file")
	}
	bodyIndent := p.indent()
	if bodyIndent <= headerIndent {
		p.errorf(p.cur().Pos, "expected an indented block")
	}
	return &ast.Block{Stmts: p.parseStmts(bodyIndent)}
}

func (p *parser) parseStmt() ast.Stmt {
	indent := p.indent()
	switch p.tok() {
	case token.ASYNC, token.FUNCTION:
		return p.parseFuncStmt(indent)
	case token.IF:
		return p.parseIfStmt(indent)
	case token.WHILE:
		return p.parseWhileStmt(indent)
	case token.FOR:
		return p.parseForStmt(indent)
	case token.TRY:
		return p.parseTryStmt(indent)
	case token.RETURN:
		return p.parseReturnStmt()
	case token.PRINT:
		return p.parsePrintStmt()
	case token.LOAD:
		return p.parseLoadStmt()
	case token.CLASS:
		return p.parseClassStmt(indent)
	case token.FROM:
		return p.parseImportDLLStmt()
	default:
		return p.parseSimpleStmt()
	}
}

func (p *parser) parseFuncStmt(indent int) *ast.FuncStmt {
	start := p.cur().Pos
	async := false
	if p.tok() == token.ASYNC {
		async = true
		p.advance()
	}
	p.expect(token.FUNCTION)
	name, _ := p.expectIdent()
	p.expect(token.LPAREN)

	var params []string
	for p.tok() != token.RPAREN {
		pn, _ := p.expectIdent()
		params = append(params, pn)
		if p.tok() == token.COMMA {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RPAREN)
	p.expect(token.COLON)
	p.skipNewline()
	body := p.parseBody(indent)
	_, end := body.Span()
	if len(body.Stmts) == 0 {
		end = start
	}
	return &ast.FuncStmt{Start: start, Async: async, Name: name, Params: params, Body: body, EndPos: end}
}

func (p *parser) parseIfStmt(indent int) *ast.IfStmt {
	start := p.cur().Pos
	if p.tok() == token.ELIF {
		p.advance()
	} else {
		p.expect(token.IF)
	}
	cond := p.parseExpr()
	p.expect(token.COLON)
	p.skipNewline()
	then := p.parseBody(indent)

	stmt := &ast.IfStmt{Start: start, Cond: cond, Then: then}

	switch {
	case p.tok() == token.ELIF && p.indent() == indent:
		elifStart := p.cur().Pos
		elif := p.parseIfStmt(indent)
		elif.Start = elifStart
		stmt.Else = &ast.Block{Stmts: []ast.Stmt{elif}}
		_, stmt.EndPos = elif.Span()
	case p.tok() == token.ELSE && p.indent() == indent:
		p.advance()
		p.expect(token.COLON)
		p.skipNewline()
		stmt.Else = p.parseBody(indent)
		_, stmt.EndPos = stmt.Else.Span()
	default:
		_, stmt.EndPos = then.Span()
	}
	return stmt
}

func (p *parser) parseWhileStmt(indent int) *ast.WhileStmt {
	start := p.cur().Pos
	p.expect(token.WHILE)
	cond := p.parseExpr()
	p.expect(token.COLON)
	p.skipNewline()
	body := p.parseBody(indent)
	_, end := body.Span()
	return &ast.WhileStmt{Start: start, Cond: cond, Body: body, EndPos: end}
}

// parseForStmt disambiguates the numeric and for-in forms after the loop
// variable: `=` introduces `for V = LOW, HIGH do`, `in` introduces
// `for V in ARRAY:`.
func (p *parser) parseForStmt(indent int) ast.Stmt {
	start := p.cur().Pos
	p.expect(token.FOR)
	v, _ := p.expectIdent()

	switch p.tok() {
	case token.EQ:
		p.advance()
		low := p.parseExpr()
		p.expect(token.COMMA)
		high := p.parseExpr()
		p.expect(token.DO)
		p.skipNewline()
		body := p.parseBody(indent)
		_, end := body.Span()
		return &ast.NumForStmt{Start: start, Var: v, Low: low, High: high, Body: body, EndPos: end}
	case token.IN:
		p.advance()
		arr := p.parseExpr()
		p.expect(token.COLON)
		p.skipNewline()
		body := p.parseBody(indent)
		_, end := body.Span()
		return &ast.ForInStmt{Start: start, Var: v, Array: arr, Body: body, EndPos: end}
	default:
		p.errorf(p.cur().Pos, "expected '=' or 'in' after for-loop variable, found %s", describeTok(p.cur()))
		panic("unreachable")
	}
}

func (p *parser) parseTryStmt(indent int) *ast.TryStmt {
	start := p.cur().Pos
	p.expect(token.TRY)
	p.expect(token.COLON)
	p.skipNewline()
	try := p.parseBody(indent)

	if p.tok() != token.CATCH || p.indent() != indent {
		p.errorf(p.cur().Pos, "expected 'catch' after 'try' block")
	}
	p.advance()
	p.expect(token.COLON)
	p.skipNewline()
	catch := p.parseBody(indent)
	_, end := catch.Span()
	return &ast.TryStmt{Start: start, Try: try, Catch: catch, EndPos: end}
}

func (p *parser) parseReturnStmt() *ast.ReturnStmt {
	start := p.cur().Pos
	p.expect(token.RETURN)
	var val ast.Expr
	if p.tok() != token.NEWLINE && p.tok() != token.EOF {
		val = p.parseExpr()
	}
	p.skipNewline()
	return &ast.ReturnStmt{Start: start, Value: val}
}

func (p *parser) parsePrintStmt() *ast.PrintStmt {
	start := p.cur().Pos
	p.expect(token.PRINT)
	p.expect(token.LPAREN)
	var args []ast.Expr
	for p.tok() != token.RPAREN {
		args = append(args, p.parseExpr())
		if p.tok() == token.COMMA {
			p.advance()
		} else {
			break
		}
	}
	end := p.expect(token.RPAREN).Pos
	p.skipNewline()
	return &ast.PrintStmt{Start: start, Args: args, EndPos: end}
}

// parseLoadStmt parses `load from FOLDER all` or `load from FOLDER FILE`.
// FOLDER and FILE are bare path fragments (not string literals); FILE may
// contain a '.' (as in "util.forge"), which the scanner tokenizes as
// separate IDENT/DOT/IDENT tokens, so it is reassembled from raw token text.
func (p *parser) parseLoadStmt() *ast.LoadStmt {
	start := p.cur().Pos
	p.expect(token.LOAD)
	p.expect(token.FROM)
	folder, _ := p.expectIdent()

	if p.tok() == token.ALL {
		p.advance()
		p.skipNewline()
		return &ast.LoadStmt{Start: start, Folder: folder, Target: ast.LoadTarget{All: true}}
	}

	var sb strings.Builder
	for p.tok() != token.NEWLINE && p.tok() != token.EOF {
		sb.WriteString(p.advance().Raw)
	}
	if sb.Len() == 0 {
		p.errorf(p.cur().Pos, "expected 'all' or a file name after 'load from %s'", folder)
	}
	p.skipNewline()
	return &ast.LoadStmt{Start: start, Folder: folder, Target: ast.LoadTarget{File: sb.String()}}
}

func (p *parser) parseClassStmt(indent int) *ast.ClassStmt {
	start := p.cur().Pos
	p.expect(token.CLASS)
	name, _ := p.expectIdent()

	var parent string
	if p.tok() == token.LPAREN {
		p.advance()
		parent, _ = p.expectIdent()
		p.expect(token.RPAREN)
	}
	p.expect(token.COLON)
	p.skipNewline()
	body := p.parseBody(indent)

	stmt := &ast.ClassStmt{Start: start, Name: name, Parent: parent}
	for _, s := range body.Stmts {
		switch s := s.(type) {
		case *ast.AssignStmt:
			stmt.Fields = append(stmt.Fields, s)
		case *ast.FuncStmt:
			stmt.Methods = append(stmt.Methods, s)
		default:
			start, end := s.Span()
			_ = end
			p.errorf(start, "only field assignments and method definitions are allowed in a class body")
		}
	}
	_, stmt.EndPos = body.Span()
	if len(body.Stmts) == 0 {
		stmt.EndPos = start
	}
	return stmt
}

// parseImportDLLStmt parses `from dll "PATH" import NAME [as ALIAS]`.
func (p *parser) parseImportDLLStmt() *ast.ImportDLLStmt {
	start := p.cur().Pos
	p.expect(token.FROM)
	p.expect(token.DLL)
	pathTok := p.expect(token.STRING)
	p.expect(token.IMPORT)
	name, _ := p.expectIdent()

	alias := name
	if p.tok() == token.AS {
		p.advance()
		alias, _ = p.expectIdent()
	}
	p.skipNewline()
	return &ast.ImportDLLStmt{Start: start, Path: pathTok.Str, Name: name, Alias: alias}
}

// parseSimpleStmt parses an assignment or a call-expression statement; these
// are the only two forms left once every keyword-led statement has been
// ruled out.
func (p *parser) parseSimpleStmt() ast.Stmt {
	x := p.parseExpr()
	if p.tok() == token.EQ {
		if !isAssignable(x) {
			start, _ := x.Span()
			p.errorf(start, "left side of assignment must be a variable, attribute or index expression")
		}
		p.advance()
		rhs := p.parseExpr()
		p.skipNewline()
		return &ast.AssignStmt{Left: x, Right: rhs}
	}
	if _, ok := x.(*ast.CallExpr); !ok {
		start, _ := x.Span()
		p.errorf(start, "expected an assignment or a function call")
	}
	p.skipNewline()
	return &ast.ExprStmt{X: x}
}

func isAssignable(e ast.Expr) bool {
	switch e.(type) {
	case *ast.IdentExpr, *ast.DotExpr, *ast.IndexExpr:
		return true
	default:
		return false
	}
}
