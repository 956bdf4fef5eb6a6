package maincmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mna/mainer"

	"github.com/forgelang/forge/lang/builtin"
	"github.com/forgelang/forge/lang/env"
	"github.com/forgelang/forge/lang/eval"
	"github.com/forgelang/forge/lang/parser"
)

// Run parses and evaluates a single .forge file. It is the only form the
// runtime's external interface promises: a missing file, a wrong suffix, a
// parse error or a runtime error are all reported to stderr and turn into a
// non-zero exit code.
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	if len(args) != 1 {
		err := fmt.Errorf("run: expected exactly one file, got %d", len(args))
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	path := args[0]
	if filepath.Ext(path) != ".forge" {
		err := fmt.Errorf("run: %s: file must have a .forge suffix", path)
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	src, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("run: %w", err)
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	chunk, err := parser.Parse(src, path)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	builtin.SetMaxBytes(c.Config.HeapMaxBytes)

	e := env.New()
	builtin.Register(e, stdio.Stdin, stdio.Stdout)

	it := eval.New(stdio.Stdout, filepath.Dir(path))
	if c.Config.MaxCallDepth > 0 {
		it.MaxCallDepth = c.Config.MaxCallDepth
	}

	done := make(chan error, 1)
	go func() { done <- it.Run(chunk, e) }()

	select {
	case <-ctx.Done():
		err := ctx.Err()
		fmt.Fprintln(stdio.Stderr, err)
		return err
	case err := <-done:
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}
	}
	return nil
}
