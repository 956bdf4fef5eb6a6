package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/forgelang/forge/lang/scanner"
	"github.com/forgelang/forge/lang/token"
)

// Tokenize prints the token stream of each file, one token per line.
func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	var lastErr error
	for _, path := range args {
		if err := tokenizeFile(stdio, path); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

func tokenizeFile(stdio mainer.Stdio, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	toks, err := scanner.ScanAll(src)
	for _, tok := range toks {
		fmt.Fprintf(stdio.Stdout, "%s: %s", tok.Pos, tok.Tok)
		if lit := literalOf(tok); lit != "" {
			fmt.Fprintf(stdio.Stdout, " %s", lit)
		}
		fmt.Fprintln(stdio.Stdout)
	}
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, err)
	}
	return err
}

func literalOf(tok token.Value) string {
	switch tok.Tok {
	case token.IDENT:
		return tok.Raw
	case token.STRING:
		return tok.Str
	case token.NUMBER:
		return tok.Raw
	default:
		return ""
	}
}
