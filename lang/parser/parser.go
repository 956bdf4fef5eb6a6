// Package parser implements the recursive-descent parser that turns a
// scanned Forge source file into an *ast.Chunk. Blocks are recognized by
// indentation rather than braces or `end` keywords: the parser tracks the
// indent of the statement currently being parsed and recurses into a body
// whenever it finds a run of lines indented strictly deeper than it.
package parser

import (
	"fmt"

	"github.com/forgelang/forge/lang/ast"
	"github.com/forgelang/forge/lang/scanner"
	"github.com/forgelang/forge/lang/token"
)

// Error is a single parse error tied to a source position.
type Error struct {
	Pos token.Pos
	Msg string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Pos, e.Msg) }

// ErrorList collects every parse error found before the parser gave up. The
// parser has no error recovery: the first failure aborts, so in practice
// this list holds at most one *Error, but the type matches the scanner's
// ErrorList shape for consistency and composes with errors.Is/As.
type ErrorList []*Error

func (el ErrorList) Error() string {
	if len(el) == 0 {
		return "no errors"
	}
	return el[0].Error()
}

func (el ErrorList) Unwrap() []error {
	errs := make([]error, len(el))
	for i, e := range el {
		errs[i] = e
	}
	return errs
}

// fatal is used internally to unwind the recursive descent on the first
// error.
type fatal struct{ err *Error }

type parser struct {
	name string
	toks []token.Value
	pos  int
}

// Parse scans and parses a single Forge source file, returning its AST. name
// is used only for *ast.Chunk.Name; errors carry positions but not name.
func Parse(src []byte, name string) (chunk *ast.Chunk, err error) {
	toks, scanErr := scanner.ScanAll(src)
	if scanErr != nil {
		return nil, scanErr
	}

	p := &parser{name: name, toks: toks}
	defer func() {
		if r := recover(); r != nil {
			f, ok := r.(fatal)
			if !ok {
				panic(r)
			}
			err = ErrorList{f.err}
		}
	}()

	stmts := p.parseStmts(0)
	p.expect(token.EOF)
	return &ast.Chunk{Name: name, Stmts: stmts, End: p.cur().Pos}, nil
}

func (p *parser) cur() token.Value  { return p.toks[p.pos] }
func (p *parser) tok() token.Token  { return p.toks[p.pos].Tok }
func (p *parser) advance() token.Value {
	v := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return v
}

// indent returns the indentation level of the current token, valid only
// when that token is the first one on its source line (true right after
// construction and right after consuming a NEWLINE).
func (p *parser) indent() int {
	c := p.cur().Pos.Col()
	if c == 0 {
		return 0
	}
	return c - 1
}

func (p *parser) errorf(pos token.Pos, format string, args ...any) {
	panic(fatal{&Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}})
}

func (p *parser) expect(tok token.Token) token.Value {
	if p.tok() != tok {
		p.errorf(p.cur().Pos, "expected %s, found %s", tok, describeTok(p.cur()))
	}
	return p.advance()
}

func (p *parser) expectIdent() (string, token.Pos) {
	v := p.expect(token.IDENT)
	return v.Raw, v.Pos
}

func describeTok(v token.Value) string {
	if v.Tok == token.IDENT || v.Tok == token.NUMBER || v.Tok == token.STRING {
		return fmt.Sprintf("%s %q", v.Tok, v.Raw)
	}
	return v.Tok.String()
}

// skipNewline consumes a single NEWLINE, required after most statement
// headers and simple statements.
func (p *parser) skipNewline() {
	if p.tok() == token.EOF {
		return
	}
	p.expect(token.NEWLINE)
}
