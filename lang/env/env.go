// Package env implements Forge's scoped Environment: the five name tables
// (variables, user functions, builtins, classes, loaded libraries) plus the
// per-scope auxiliary state (byte memory and named registers) that together
// back every lookup the evaluator performs.
package env

import (
	"github.com/dolthub/swiss"
	"golang.org/x/exp/maps"

	"github.com/forgelang/forge/lang/value"
)

// MemSize is the size in bytes of the per-environment byte-memory buffer.
const MemSize = 65536

// Builtin is a host-provided function. It may block the single cooperative
// task (sleep, stdin reads) before returning.
type Builtin func(args []value.Value, e *Environment) (value.Value, error)

// Environment is a scope handle: its own variable table, snapshotted
// function/builtin/class/library tables inherited from the scope it was
// created in, a parent link for read-through variable lookup, and private
// byte memory and registers.
type Environment struct {
	parent *Environment

	vars      *swiss.Map[string, value.Value]
	funcs     map[string]*value.FuncDescriptor
	builtins  map[string]Builtin
	classes   map[string]*value.Class
	libraries map[string]*value.NativeLibrary

	mem  []byte
	regs *swiss.Map[string, int64]
}

// New returns a fresh root environment with empty tables.
func New() *Environment {
	return &Environment{
		vars:      swiss.NewMap[string, value.Value](8),
		funcs:     make(map[string]*value.FuncDescriptor),
		builtins:  make(map[string]Builtin),
		classes:   make(map[string]*value.Class),
		libraries: make(map[string]*value.NativeLibrary),
		mem:       make([]byte, MemSize),
		regs:      swiss.NewMap[string, int64](8),
	}
}

// Child produces a new scope: an empty variable table, cloned snapshots of
// the function/builtin/class/library tables, a parent link for read-through
// variable lookup, and cloned byte memory and registers. Mutations in the
// child never propagate back to the parent.
func (e *Environment) Child() *Environment {
	c := &Environment{
		parent:    e,
		vars:      swiss.NewMap[string, value.Value](8),
		funcs:     maps.Clone(e.funcs),
		builtins:  maps.Clone(e.builtins),
		classes:   maps.Clone(e.classes),
		libraries: maps.Clone(e.libraries),
		mem:       append([]byte(nil), e.mem...),
		regs:      cloneInt64Map(e.regs),
	}
	return c
}

// Snapshot captures the mutable parts of e (variable table, registers and
// byte memory) for later restoration by Restore, implementing the try/catch
// shallow-copy rule: shared referents inside Values are not reverted.
type Snapshot struct {
	vars *swiss.Map[string, value.Value]
	mem  []byte
	regs *swiss.Map[string, int64]
}

// Snapshot takes a shallow copy of e's mutable tables.
func (e *Environment) Snapshot() Snapshot {
	return Snapshot{
		vars: cloneValueMap(e.vars),
		mem:  append([]byte(nil), e.mem...),
		regs: cloneInt64Map(e.regs),
	}
}

// Restore replaces e's mutable tables with a previously taken Snapshot.
func (e *Environment) Restore(s Snapshot) {
	e.vars = s.vars
	e.mem = s.mem
	e.regs = s.regs
}

// GetVar walks the parent chain looking for name, read-only.
func (e *Environment) GetVar(name string) (value.Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.vars.Get(name); ok {
			return v, true
		}
	}
	return nil, false
}

// SetVar always targets e's own variable table: assignment never writes
// through to an enclosing scope.
func (e *Environment) SetVar(name string, v value.Value) {
	e.vars.Put(name, v)
}

// GetFunc looks up a user function declared in this scope or inherited
// through a Child snapshot.
func (e *Environment) GetFunc(name string) (*value.FuncDescriptor, bool) {
	fn, ok := e.funcs[name]
	return fn, ok
}

// DefineFunc declares a user function in the current scope.
func (e *Environment) DefineFunc(fn *value.FuncDescriptor) {
	e.funcs[fn.Name] = fn
}

// GetBuiltin looks up a host-provided builtin.
func (e *Environment) GetBuiltin(name string) (Builtin, bool) {
	b, ok := e.builtins[name]
	return b, ok
}

// DefineBuiltin registers a host-provided builtin under name.
func (e *Environment) DefineBuiltin(name string, fn Builtin) {
	e.builtins[name] = fn
}

// GetClass looks up a class by name.
func (e *Environment) GetClass(name string) (*value.Class, bool) {
	c, ok := e.classes[name]
	return c, ok
}

// DefineClass declares a class in the current scope.
func (e *Environment) DefineClass(c *value.Class) {
	e.classes[c.Name] = c
}

// GetLibrary returns a previously loaded native library cached under path.
func (e *Environment) GetLibrary(path string) (*value.NativeLibrary, bool) {
	l, ok := e.libraries[path]
	return l, ok
}

// CacheLibrary caches a loaded native library under its path so a second
// dll_load of the same path returns the same handle.
func (e *Environment) CacheLibrary(l *value.NativeLibrary) {
	e.libraries[l.Path] = l
}

// Mem returns the per-environment byte-memory buffer.
func (e *Environment) Mem() []byte { return e.mem }

// GetReg reads a named 64-bit register. The second return value is false if
// name has never been written by SetReg.
func (e *Environment) GetReg(name string) (int64, bool) {
	return e.regs.Get(name)
}

// SetReg writes a named 64-bit register.
func (e *Environment) SetReg(name string, v int64) {
	e.regs.Put(name, v)
}

func cloneValueMap(m *swiss.Map[string, value.Value]) *swiss.Map[string, value.Value] {
	out := swiss.NewMap[string, value.Value](uint32(m.Count()))
	m.Iter(func(k string, v value.Value) bool {
		out.Put(k, v)
		return false
	})
	return out
}

func cloneInt64Map(m *swiss.Map[string, int64]) *swiss.Map[string, int64] {
	out := swiss.NewMap[string, int64](uint32(m.Count()))
	m.Iter(func(k string, v int64) bool {
		out.Put(k, v)
		return false
	})
	return out
}
