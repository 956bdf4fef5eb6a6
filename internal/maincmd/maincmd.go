// Package maincmd implements the forge command-line driver: running it with
// a single .forge path parses and evaluates that file, while a couple of
// debugging subcommands expose individual pipeline stages.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/mna/mainer"
)

const binName = "forge"

var (
	shortUsage = fmt.Sprintf(`
usage: %s <file.forge>
       %[1]s tokenize|parse <file.forge>...
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s <file.forge>
       %[1]s tokenize|parse <file.forge>...
       %[1]s -h|--help
       %[1]s -v|--version

Runtime for the Forge scripting language.

Running %[1]s with a single path ending in '.forge' parses and evaluates
that file. The following subcommands expose individual pipeline stages for
debugging:

       tokenize <file.forge>...  Print the token stream for each file.
       parse <file.forge>...     Print the parsed statement tree for each file.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.

Configuration is also read from the environment:
       FORGE_MAX_CALL_DEPTH      Max nested user-function/method calls (default 2048).
       FORGE_HEAP_MAX_BYTES      Cap on the process-wide malloc heap, 0 for unlimited
                                 (default 16777216).
`, binName)
)

// Config holds the runtime's environment-driven resource limits. None of
// these affect language semantics, only how much a script may consume.
type Config struct {
	MaxCallDepth int   `env:"FORGE_MAX_CALL_DEPTH" envDefault:"2048"`
	HeapMaxBytes int64 `env:"FORGE_HEAP_MAX_BYTES" envDefault:"16777216"`
}

type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Config Config

	args  []string
	flags map[string]bool
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

func (c *Cmd) SetFlags(flags map[string]bool) {
	c.flags = flags
}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	if err := env.Parse(&c.Config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if len(c.args) == 0 {
		return errors.New("no file or command specified")
	}

	first := c.args[0]
	if strings.HasSuffix(first, ".forge") {
		c.cmdFn = c.Run
		return nil
	}

	commands := buildCmds(c)
	c.cmdFn = commands[first]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", first)
	}
	if len(c.args[1:]) == 0 {
		return fmt.Errorf("%s: at least one file must be provided", first)
	}
	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: strings.ToUpper(binName) + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)

	fileArgs := c.args[1:]
	if strings.HasSuffix(c.args[0], ".forge") {
		fileArgs = c.args
	}
	if err := c.cmdFn(ctx, stdio, fileArgs); err != nil {
		// each command takes care of printing its own errors
		return mainer.Failure
	}
	return mainer.Success
}

// valid commands are those that take a mainer.Stdio and a slice of strings
// as input, and return an error as output.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		// must take 4 parameters (including receiver) and return 1
		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}

		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
