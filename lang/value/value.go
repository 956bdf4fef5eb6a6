// Package value implements Forge's runtime value model: a closed tagged
// union of the kinds a Forge program can compute with, plus the equality,
// truthiness, attribute-lookup and display rules that operate on them.
package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dolthub/swiss"

	"github.com/forgelang/forge/lang/ast"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBoolean
	KindNull
	KindArray
	KindClass
	KindInstance
	KindMethod
	KindNativeLibrary
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindNull:
		return "null"
	case KindArray:
		return "array"
	case KindClass:
		return "class"
	case KindInstance:
		return "instance"
	case KindMethod:
		return "method"
	case KindNativeLibrary:
		return "dll"
	default:
		return "unknown"
	}
}

// Value is any runtime value a Forge program can hold.
type Value interface {
	Kind() Kind
	Display() string
}

// Number is a 64-bit float used for every numeric role: arithmetic, byte
// values, pointers, and boolean-to-number conversions.
type Number float64

func (Number) Kind() Kind { return KindNumber }

func (n Number) Display() string {
	f := float64(n)
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// String is immutable text.
type String string

func (String) Kind() Kind       { return KindString }
func (s String) Display() string { return string(s) }

// Boolean is true/false.
type Boolean bool

func (Boolean) Kind() Kind        { return KindBoolean }
func (b Boolean) Display() string { return strconv.FormatBool(bool(b)) }

// Null is the unit/absent value. There is exactly one meaningful instance,
// Nil, but the zero value also satisfies Value.
type Null struct{}

func (Null) Kind() Kind       { return KindNull }
func (Null) Display() string  { return "null" }

// Nil is the canonical Null value.
var Nil = Null{}

// Array is an ordered, mutable sequence shared by reference: copying an
// Array value copies the pointer, not the backing slice.
type Array struct {
	Elems []Value
}

func NewArray(elems []Value) *Array { return &Array{Elems: elems} }

func (*Array) Kind() Kind { return KindArray }

func (a *Array) Display() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, e := range a.Elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.Display())
	}
	sb.WriteByte(']')
	return sb.String()
}

// FuncDescriptor is a function or method body, shared by every Value that
// wraps it (the defining Class, and any Method bound off it).
type FuncDescriptor struct {
	Name   string
	Params []string
	Body   *ast.Block
	Async  bool
}

// Class is name, optional parent, a mutable static-field mapping, and an
// immutable method table. Equality between classes is by name, not identity.
type Class struct {
	Name    string
	Parent  *Class
	Fields  *swiss.Map[string, Value]
	Methods map[string]*FuncDescriptor
}

func NewClass(name string, parent *Class) *Class {
	return &Class{
		Name:    name,
		Parent:  parent,
		Fields:  swiss.NewMap[string, Value](4),
		Methods: make(map[string]*FuncDescriptor),
	}
}

func (*Class) Kind() Kind        { return KindClass }
func (c *Class) Display() string { return fmt.Sprintf("<class %s>", c.Name) }

// Instance references its Class plus a mutable, shared instance-field
// mapping.
type Instance struct {
	Class  *Class
	Fields *swiss.Map[string, Value]
}

func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: swiss.NewMap[string, Value](4)}
}

func (*Instance) Kind() Kind { return KindInstance }

func (i *Instance) Display() string { return fmt.Sprintf("<instance of %s>", i.Class.Name) }

// Method is a bound pair of (function descriptor, receiver), constructed
// lazily on attribute access from a Class or Instance — it is never stored
// directly in a field map.
type Method struct {
	Func     *FuncDescriptor
	Receiver Value
}

func (*Method) Kind() Kind       { return KindMethod }
func (m *Method) Display() string { return fmt.Sprintf("<method %s>", m.Func.Name) }

// NativeLibrary is an opaque handle to a loaded shared library, shared by
// reference and alive while any handle references it.
type NativeLibrary struct {
	Path   string
	Handle uintptr
}

func (*NativeLibrary) Kind() Kind        { return KindNativeLibrary }
func (l *NativeLibrary) Display() string { return fmt.Sprintf("<library %s>", l.Path) }

// Truth converts v to a boolean: Boolean is itself; Number is nonzero;
// String and Array are nonempty; Null is false; everything else is true.
func Truth(v Value) bool {
	switch v := v.(type) {
	case Boolean:
		return bool(v)
	case Number:
		return float64(v) != 0
	case String:
		return len(v) != 0
	case Null:
		return false
	case *Array:
		return len(v.Elems) != 0
	default:
		return true
	}
}

// Equal compares two values: numbers, strings and booleans compare by
// value; arrays, instances, methods and libraries by identity; classes by
// name; Null equals Null.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case Number:
		b, ok := b.(Number)
		return ok && a == b
	case String:
		b, ok := b.(String)
		return ok && a == b
	case Boolean:
		b, ok := b.(Boolean)
		return ok && a == b
	case Null:
		_, ok := b.(Null)
		return ok
	case *Array:
		b, ok := b.(*Array)
		return ok && a == b
	case *Instance:
		b, ok := b.(*Instance)
		return ok && a == b
	case *Method:
		b, ok := b.(*Method)
		return ok && a == b
	case *NativeLibrary:
		b, ok := b.(*NativeLibrary)
		return ok && a == b
	case *Class:
		b, ok := b.(*Class)
		return ok && a.Name == b.Name
	default:
		return false
	}
}

// Lookup resolves attr in order: instance fields, then the class's static
// fields, then the class's methods (wrapped bound to recv). It does not walk
// the parent chain — inheritance is nominal only.
func Lookup(recv Value, inst *Instance, attr string) (Value, bool) {
	if v, ok := inst.Fields.Get(attr); ok {
		return v, true
	}
	if v, ok := inst.Class.Fields.Get(attr); ok {
		return v, true
	}
	if fn, ok := inst.Class.Methods[attr]; ok {
		return &Method{Func: fn, Receiver: recv}, true
	}
	return nil, false
}
