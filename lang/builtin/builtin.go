// Package builtin implements the native functions the evaluator exposes by
// name: array/string helpers, file I/O, the process-wide byte heap, named
// registers, and the FFI primitives. Each one follows the registry contract
// of lang/env.Builtin: a function of (args, Environment) that may return an
// error instead of a Value.
package builtin

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/forgelang/forge/lang/env"
	"github.com/forgelang/forge/lang/value"
)

// Register installs every core builtin into e. stdin feeds the `input`
// builtin; stdout receives its prompt.
func Register(e *env.Environment, stdin io.Reader, stdout io.Writer) {
	in := bufio.NewReader(stdin)

	e.DefineBuiltin("sleep", biSleep)
	e.DefineBuiltin("array", biArray)
	e.DefineBuiltin("push", biPush)
	e.DefineBuiltin("pop", biPop)
	e.DefineBuiltin("length", biLength)
	e.DefineBuiltin("slice", biSlice)
	e.DefineBuiltin("get", biGet)
	e.DefineBuiltin("set", biSet)
	e.DefineBuiltin("input", func(args []value.Value, e *env.Environment) (value.Value, error) {
		return biInput(args, stdout, in)
	})
	e.DefineBuiltin("read", biRead)
	e.DefineBuiltin("write", biWrite)
	e.DefineBuiltin("append", biAppend)
	e.DefineBuiltin("file_exists", biFileExists)
	e.DefineBuiltin("upper", biUpper)
	e.DefineBuiltin("lower", biLower)
	e.DefineBuiltin("split", biSplit)
	e.DefineBuiltin("join", biJoin)
	e.DefineBuiltin("replace", biReplace)
	e.DefineBuiltin("contains", biContains)
	e.DefineBuiltin("tonumber", biToNumber)
	e.DefineBuiltin("type", biType)
	e.DefineBuiltin("mem_read", biMemRead)
	e.DefineBuiltin("mem_write", biMemWrite)
	e.DefineBuiltin("get_reg", biGetReg)
	e.DefineBuiltin("set_reg", biSetReg)
	e.DefineBuiltin("malloc", biMalloc)
	e.DefineBuiltin("free", biFree)
	e.DefineBuiltin("poke", biPoke)
	e.DefineBuiltin("peek", biPeek)
	e.DefineBuiltin("peek32", biPeek32)
	e.DefineBuiltin("dll_load", biDLLLoad)
	e.DefineBuiltin("dll_call", biDLLCall)
	e.DefineBuiltin("dll_free", biDLLFree)
	e.DefineBuiltin("exit", biExit)
}

func argErr(name string, want, got int) error {
	return fmt.Errorf("%s expects %d argument(s), got %d", name, want, got)
}

func typeErr(name, msg string) error {
	return fmt.Errorf("%s: %s", name, msg)
}

func biSleep(args []value.Value, _ *env.Environment) (value.Value, error) {
	if len(args) != 1 {
		return nil, argErr("sleep", 1, len(args))
	}
	ms, ok := args[0].(value.Number)
	if !ok {
		return nil, typeErr("sleep", "argument must be a number")
	}
	time.Sleep(time.Duration(ms) * time.Millisecond)
	return value.Nil, nil
}

func biArray(args []value.Value, _ *env.Environment) (value.Value, error) {
	elems := make([]value.Value, len(args))
	copy(elems, args)
	return value.NewArray(elems), nil
}

func biPush(args []value.Value, _ *env.Environment) (value.Value, error) {
	if len(args) != 2 {
		return nil, argErr("push", 2, len(args))
	}
	arr, ok := args[0].(*value.Array)
	if !ok {
		return nil, typeErr("push", "first argument must be an array")
	}
	arr.Elems = append(arr.Elems, args[1])
	return value.Number(len(arr.Elems)), nil
}

func biPop(args []value.Value, _ *env.Environment) (value.Value, error) {
	if len(args) != 1 {
		return nil, argErr("pop", 1, len(args))
	}
	arr, ok := args[0].(*value.Array)
	if !ok {
		return nil, typeErr("pop", "argument must be an array")
	}
	if len(arr.Elems) == 0 {
		return nil, typeErr("pop", "pop from empty array")
	}
	last := arr.Elems[len(arr.Elems)-1]
	arr.Elems = arr.Elems[:len(arr.Elems)-1]
	return last, nil
}

func biLength(args []value.Value, _ *env.Environment) (value.Value, error) {
	if len(args) != 1 {
		return nil, argErr("length", 1, len(args))
	}
	switch v := args[0].(type) {
	case *value.Array:
		return value.Number(len(v.Elems)), nil
	case value.String:
		return value.Number(len(v)), nil
	default:
		return nil, typeErr("length", "argument must be an array or string")
	}
}

func biSlice(args []value.Value, _ *env.Environment) (value.Value, error) {
	if len(args) != 3 {
		return nil, argErr("slice", 3, len(args))
	}
	arr, ok := args[0].(*value.Array)
	if !ok {
		return nil, typeErr("slice", "first argument must be an array")
	}
	startN, ok1 := args[1].(value.Number)
	endN, ok2 := args[2].(value.Number)
	if !ok1 || !ok2 {
		return nil, typeErr("slice", "start and end must be numbers")
	}
	start, end := int(startN), int(endN)
	if start > end {
		return nil, typeErr("slice", "start index must be <= end index")
	}
	if end > len(arr.Elems) || start < 0 {
		return nil, typeErr("slice", "index out of bounds")
	}
	out := make([]value.Value, end-start)
	copy(out, arr.Elems[start:end])
	return value.NewArray(out), nil
}

func biGet(args []value.Value, _ *env.Environment) (value.Value, error) {
	if len(args) != 2 {
		return nil, argErr("get", 2, len(args))
	}
	arr, ok := args[0].(*value.Array)
	if !ok {
		return nil, typeErr("get", "first argument must be an array")
	}
	idxN, ok := args[1].(value.Number)
	if !ok {
		return nil, typeErr("get", "second argument must be a number")
	}
	idx := int(idxN)
	if idx < 0 || idx >= len(arr.Elems) {
		return nil, typeErr("get", "index out of bounds")
	}
	return arr.Elems[idx], nil
}

func biSet(args []value.Value, _ *env.Environment) (value.Value, error) {
	if len(args) != 3 {
		return nil, argErr("set", 3, len(args))
	}
	arr, ok := args[0].(*value.Array)
	if !ok {
		return nil, typeErr("set", "first argument must be an array")
	}
	idxN, ok := args[1].(value.Number)
	if !ok {
		return nil, typeErr("set", "second argument must be a number")
	}
	idx := int(idxN)
	if idx < 0 || idx >= len(arr.Elems) {
		return nil, typeErr("set", "index out of bounds")
	}
	arr.Elems[idx] = args[2]
	return value.Nil, nil
}

func biInput(args []value.Value, stdout io.Writer, in *bufio.Reader) (value.Value, error) {
	if len(args) > 1 {
		return nil, argErr("input", 1, len(args))
	}
	if len(args) == 1 {
		prompt, ok := args[0].(value.String)
		if !ok {
			return nil, typeErr("input", "prompt must be a string")
		}
		fmt.Fprint(stdout, string(prompt))
	}
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return nil, typeErr("input", fmt.Sprintf("failed to read line: %v", err))
	}
	return value.String(strings.TrimRight(line, "\r\n")), nil
}

func biRead(args []value.Value, _ *env.Environment) (value.Value, error) {
	if len(args) != 1 {
		return nil, argErr("read", 1, len(args))
	}
	path, ok := args[0].(value.String)
	if !ok {
		return nil, typeErr("read", "argument must be a string")
	}
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, typeErr("read", err.Error())
	}
	return value.String(data), nil
}

func biWrite(args []value.Value, _ *env.Environment) (value.Value, error) {
	if len(args) != 2 {
		return nil, argErr("write", 2, len(args))
	}
	path, ok := args[0].(value.String)
	if !ok {
		return nil, typeErr("write", "first argument must be a string")
	}
	err := os.WriteFile(string(path), []byte(args[1].Display()), 0644)
	return value.Boolean(err == nil), nil
}

func biAppend(args []value.Value, _ *env.Environment) (value.Value, error) {
	if len(args) != 2 {
		return nil, argErr("append", 2, len(args))
	}
	path, ok := args[0].(value.String)
	if !ok {
		return nil, typeErr("append", "first argument must be a string")
	}
	f, err := os.OpenFile(string(path), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return value.Boolean(false), nil
	}
	defer f.Close()
	_, err = f.WriteString(args[1].Display())
	return value.Boolean(err == nil), nil
}

func biFileExists(args []value.Value, _ *env.Environment) (value.Value, error) {
	if len(args) != 1 {
		return nil, argErr("file_exists", 1, len(args))
	}
	path, ok := args[0].(value.String)
	if !ok {
		return nil, typeErr("file_exists", "argument must be a string")
	}
	_, err := os.Stat(string(path))
	return value.Boolean(err == nil), nil
}

func biUpper(args []value.Value, _ *env.Environment) (value.Value, error) {
	if len(args) != 1 {
		return nil, argErr("upper", 1, len(args))
	}
	s, ok := args[0].(value.String)
	if !ok {
		return nil, typeErr("upper", "argument must be a string")
	}
	return value.String(strings.ToUpper(string(s))), nil
}

func biLower(args []value.Value, _ *env.Environment) (value.Value, error) {
	if len(args) != 1 {
		return nil, argErr("lower", 1, len(args))
	}
	s, ok := args[0].(value.String)
	if !ok {
		return nil, typeErr("lower", "argument must be a string")
	}
	return value.String(strings.ToLower(string(s))), nil
}

func biSplit(args []value.Value, _ *env.Environment) (value.Value, error) {
	if len(args) != 2 {
		return nil, argErr("split", 2, len(args))
	}
	s, ok1 := args[0].(value.String)
	sep, ok2 := args[1].(value.String)
	if !ok1 || !ok2 {
		return nil, typeErr("split", "arguments must be strings")
	}
	parts := strings.Split(string(s), string(sep))
	elems := make([]value.Value, len(parts))
	for i, p := range parts {
		elems[i] = value.String(p)
	}
	return value.NewArray(elems), nil
}

func biJoin(args []value.Value, _ *env.Environment) (value.Value, error) {
	if len(args) != 2 {
		return nil, argErr("join", 2, len(args))
	}
	arr, ok := args[0].(*value.Array)
	if !ok {
		return nil, typeErr("join", "first argument must be an array")
	}
	sep, ok := args[1].(value.String)
	if !ok {
		return nil, typeErr("join", "second argument must be a string")
	}
	parts := make([]string, len(arr.Elems))
	for i, e := range arr.Elems {
		s, ok := e.(value.String)
		if !ok {
			return nil, typeErr("join", "array elements must be strings")
		}
		parts[i] = string(s)
	}
	return value.String(strings.Join(parts, string(sep))), nil
}

func biReplace(args []value.Value, _ *env.Environment) (value.Value, error) {
	if len(args) != 3 {
		return nil, argErr("replace", 3, len(args))
	}
	s, ok1 := args[0].(value.String)
	from, ok2 := args[1].(value.String)
	to, ok3 := args[2].(value.String)
	if !ok1 || !ok2 || !ok3 {
		return nil, typeErr("replace", "all arguments must be strings")
	}
	return value.String(strings.ReplaceAll(string(s), string(from), string(to))), nil
}

func biContains(args []value.Value, _ *env.Environment) (value.Value, error) {
	if len(args) != 2 {
		return nil, argErr("contains", 2, len(args))
	}
	s, ok1 := args[0].(value.String)
	sub, ok2 := args[1].(value.String)
	if !ok1 || !ok2 {
		return nil, typeErr("contains", "arguments must be strings")
	}
	return value.Boolean(strings.Contains(string(s), string(sub))), nil
}

// biToNumber returns 0 for any string that does not parse as a float,
// matching the documented tonumber("abc") == 0 behavior.
func biToNumber(args []value.Value, _ *env.Environment) (value.Value, error) {
	if len(args) != 1 {
		return nil, argErr("tonumber", 1, len(args))
	}
	switch v := args[0].(type) {
	case value.Number:
		return v, nil
	case value.Boolean:
		if v {
			return value.Number(1), nil
		}
		return value.Number(0), nil
	case value.String:
		n, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return value.Number(0), nil
		}
		return value.Number(n), nil
	default:
		return value.Number(0), nil
	}
}

func biType(args []value.Value, _ *env.Environment) (value.Value, error) {
	if len(args) != 1 {
		return nil, argErr("type", 1, len(args))
	}
	return value.String(args[0].Kind().String()), nil
}

func biMemRead(args []value.Value, e *env.Environment) (value.Value, error) {
	if len(args) != 1 {
		return nil, argErr("mem_read", 1, len(args))
	}
	addrN, ok := args[0].(value.Number)
	if !ok {
		return nil, typeErr("mem_read", "argument must be a number")
	}
	addr := int(addrN)
	mem := e.Mem()
	if addr < 0 || addr >= len(mem) {
		return nil, typeErr("mem_read", "address out of bounds")
	}
	return value.Number(mem[addr]), nil
}

func biMemWrite(args []value.Value, e *env.Environment) (value.Value, error) {
	if len(args) != 2 {
		return nil, argErr("mem_write", 2, len(args))
	}
	addrN, ok := args[0].(value.Number)
	if !ok {
		return nil, typeErr("mem_write", "first argument must be a number")
	}
	byteN, ok := args[1].(value.Number)
	if !ok {
		return nil, typeErr("mem_write", "second argument must be a number")
	}
	addr := int(addrN)
	mem := e.Mem()
	if addr < 0 || addr >= len(mem) {
		return nil, typeErr("mem_write", "address out of bounds")
	}
	mem[addr] = byte(int64(byteN))
	return value.Nil, nil
}

func biGetReg(args []value.Value, e *env.Environment) (value.Value, error) {
	if len(args) != 1 {
		return nil, argErr("get_reg", 1, len(args))
	}
	name, ok := args[0].(value.String)
	if !ok {
		return nil, typeErr("get_reg", "argument must be a string")
	}
	v, ok := e.GetReg(string(name))
	if !ok {
		return nil, typeErr("get_reg", fmt.Sprintf("register %q is not defined", string(name)))
	}
	return value.Number(v), nil
}

func biSetReg(args []value.Value, e *env.Environment) (value.Value, error) {
	if len(args) != 2 {
		return nil, argErr("set_reg", 2, len(args))
	}
	name, ok := args[0].(value.String)
	if !ok {
		return nil, typeErr("set_reg", "first argument must be a string")
	}
	n, ok := args[1].(value.Number)
	if !ok {
		return nil, typeErr("set_reg", "second argument must be a number")
	}
	e.SetReg(string(name), int64(n))
	return value.Nil, nil
}

func biMalloc(args []value.Value, _ *env.Environment) (value.Value, error) {
	if len(args) != 1 {
		return nil, argErr("malloc", 1, len(args))
	}
	size, ok := args[0].(value.Number)
	if !ok {
		return nil, typeErr("malloc", "argument must be a number")
	}
	if size < 0 {
		return nil, typeErr("malloc", "size must not be negative")
	}
	ptr, err := processHeap.malloc(int(size))
	if err != nil {
		return nil, typeErr("malloc", err.Error())
	}
	return value.Number(ptr), nil
}

func biFree(args []value.Value, _ *env.Environment) (value.Value, error) {
	if len(args) != 1 {
		return nil, argErr("free", 1, len(args))
	}
	ptr, ok := args[0].(value.Number)
	if !ok {
		return nil, typeErr("free", "argument must be a number")
	}
	processHeap.free(int64(ptr))
	return value.Nil, nil
}

func biPoke(args []value.Value, _ *env.Environment) (value.Value, error) {
	if len(args) != 3 {
		return nil, argErr("poke", 3, len(args))
	}
	ptr, ok1 := args[0].(value.Number)
	off, ok2 := args[1].(value.Number)
	b, ok3 := args[2].(value.Number)
	if !ok1 || !ok2 || !ok3 {
		return nil, typeErr("poke", "all arguments must be numbers")
	}
	block, ok := processHeap.block(int64(ptr))
	if !ok {
		return nil, typeErr("poke", "invalid pointer")
	}
	if int(off) < 0 || int(off) >= len(block) {
		return nil, typeErr("poke", "offset out of bounds")
	}
	block[int(off)] = byte(int64(b))
	return value.Nil, nil
}

func biPeek(args []value.Value, _ *env.Environment) (value.Value, error) {
	if len(args) != 2 {
		return nil, argErr("peek", 2, len(args))
	}
	ptr, ok1 := args[0].(value.Number)
	off, ok2 := args[1].(value.Number)
	if !ok1 || !ok2 {
		return nil, typeErr("peek", "arguments must be numbers")
	}
	block, ok := processHeap.block(int64(ptr))
	if !ok {
		return nil, typeErr("peek", "invalid pointer")
	}
	if int(off) < 0 || int(off) >= len(block) {
		return nil, typeErr("peek", "offset out of bounds")
	}
	return value.Number(block[int(off)]), nil
}

// biPeek32 reads 4 bytes little-endian starting at offset, boxed as Number.
func biPeek32(args []value.Value, _ *env.Environment) (value.Value, error) {
	if len(args) != 2 {
		return nil, argErr("peek32", 2, len(args))
	}
	ptr, ok1 := args[0].(value.Number)
	off, ok2 := args[1].(value.Number)
	if !ok1 || !ok2 {
		return nil, typeErr("peek32", "arguments must be numbers")
	}
	block, ok := processHeap.block(int64(ptr))
	if !ok {
		return nil, typeErr("peek32", "invalid pointer")
	}
	o := int(off)
	if o < 0 || o+3 >= len(block) {
		return nil, typeErr("peek32", "offset out of bounds for a 4-byte read")
	}
	v := uint32(block[o]) | uint32(block[o+1])<<8 | uint32(block[o+2])<<16 | uint32(block[o+3])<<24
	return value.Number(v), nil
}

func biDLLLoad(args []value.Value, e *env.Environment) (value.Value, error) {
	if len(args) != 1 {
		return nil, argErr("dll_load", 1, len(args))
	}
	path, ok := args[0].(value.String)
	if !ok {
		return nil, typeErr("dll_load", "argument must be a string")
	}
	lib, err := LoadLibrary(e, string(path))
	if err != nil {
		return nil, typeErr("dll_load", err.Error())
	}
	return lib, nil
}

func biDLLCall(args []value.Value, _ *env.Environment) (value.Value, error) {
	if len(args) < 2 {
		return nil, typeErr("dll_call", "expects at least 2 arguments")
	}
	lib, ok := args[0].(*value.NativeLibrary)
	if !ok {
		return nil, typeErr("dll_call", "first argument must be a dll handle")
	}
	name, ok := args[1].(value.String)
	if !ok {
		return nil, typeErr("dll_call", "second argument must be a string (function name)")
	}
	result, err := CallFFI(lib, string(name), args[2:])
	if err != nil {
		return nil, typeErr("dll_call", err.Error())
	}
	return value.Number(result), nil
}

// biDLLFree is advisory only: it validates the argument and does nothing
// else, matching the reference-counted "free while referenced" lifecycle
// where a handle simply lives on until its last Go reference drops.
func biDLLFree(args []value.Value, _ *env.Environment) (value.Value, error) {
	if len(args) != 1 {
		return nil, argErr("dll_free", 1, len(args))
	}
	if _, ok := args[0].(*value.NativeLibrary); !ok {
		return nil, typeErr("dll_free", "argument must be a dll handle")
	}
	return value.Nil, nil
}

// biExit is a contract-only stub: raw-mode keystroke reads are an external
// I/O concern out of scope for the core runtime, so this always errors.
func biExit(args []value.Value, _ *env.Environment) (value.Value, error) {
	return nil, typeErr("exit", "raw-mode key read is not available in this runtime")
}
