package builtin

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/forgelang/forge/lang/env"
	"github.com/forgelang/forge/lang/value"
)

// maxFFIArgs is the widest argument list dll_call and the `from dll ...
// import` wrapper support.
const maxFFIArgs = 12

// LoadLibrary loads (or reuses from e's cache) the shared library at path.
func LoadLibrary(e *env.Environment, path string) (*value.NativeLibrary, error) {
	if lib, ok := e.GetLibrary(path); ok {
		return lib, nil
	}
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("failed to load library %q: %w", path, err)
	}
	lib := &value.NativeLibrary{Path: path, Handle: handle}
	e.CacheLibrary(lib)
	return lib, nil
}

// CallZeroArg calls the zero-argument C ABI symbol name in lib, as used by
// an `from dll "PATH" import NAME [as ALIAS]` wrapper.
func CallZeroArg(lib *value.NativeLibrary, name string) (int64, error) {
	return CallFFI(lib, name, nil)
}

// CallFFI resolves name in lib and invokes it with args converted per the
// FFI contract: Number becomes a 64-bit integer, Boolean becomes 0/1, String
// becomes a NUL-terminated byte pointer valid only for the duration of the
// call. The return value is always a 64-bit integer.
func CallFFI(lib *value.NativeLibrary, name string, args []value.Value) (int64, error) {
	if len(args) > maxFFIArgs {
		return 0, fmt.Errorf("dll_call %s: too many arguments (%d, max %d)", name, len(args), maxFFIArgs)
	}
	sym, err := purego.Dlsym(lib.Handle, name)
	if err != nil {
		return 0, fmt.Errorf("symbol %q not found in %s: %w", name, lib.Path, err)
	}

	cargs := make([]uintptr, len(args))
	var pins [][]byte
	for i, a := range args {
		switch v := a.(type) {
		case value.Number:
			cargs[i] = uintptr(int64(v))
		case value.Boolean:
			if v {
				cargs[i] = 1
			}
		case value.String:
			buf := append([]byte(v), 0)
			pins = append(pins, buf)
			cargs[i] = uintptr(unsafe.Pointer(&buf[0]))
		default:
			return 0, fmt.Errorf("dll_call %s: unsupported argument kind %s", name, a.Kind())
		}
	}

	r1, _, _ := purego.SyscallN(sym, cargs...)
	runtime.KeepAlive(pins)
	return int64(r1), nil
}
