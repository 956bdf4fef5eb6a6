package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/forgelang/forge/lang/ast"
	"github.com/forgelang/forge/lang/parser"
)

// Parse prints the parsed statement tree of each file.
func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	var lastErr error
	for _, path := range args {
		if err := parseFile(stdio, path); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

func parseFile(stdio mainer.Stdio, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	chunk, err := parser.Parse(src, path)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	return ast.Fprint(stdio.Stdout, chunk)
}
