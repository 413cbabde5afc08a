// Package vm implements the stack-based interpreter that executes a single
// compiled Chunk.
package vm

import (
	"fmt"
	"io"

	"github.com/arnegard/flux/internal/bytecode"
	"github.com/arnegard/flux/internal/diag"
	"github.com/arnegard/flux/internal/errs"
	"github.com/arnegard/flux/internal/value"
)

// maxStack mirrors the one-byte slot-index contract locals/GET_LOCAL rely
// on: every addressable slot fits in a single operand byte.
const maxStack = 256

// Result is the three-state outcome of interpreting a Chunk.
type Result int

const (
	OK Result = iota
	CompileError
	RuntimeError
)

// VM is a stack interpreter over a single Chunk: it owns the value stack,
// the global-variable table, and the instruction pointer.
type VM struct {
	stack    [maxStack]value.Value
	stackTop int

	globals map[string]value.Value

	chunk *bytecode.Chunk
	ip    int

	stdout io.Writer
	stderr io.Writer
}

// New constructs a VM that prints program output to stdout and writes
// runtime diagnostics to stderr. Its globals persist across repeated Run
// calls, matching the REPL's need to accumulate bindings line by line.
func New(stdout, stderr io.Writer) *VM {
	return &VM{
		globals: make(map[string]value.Value),
		stdout:  stdout,
		stderr:  stderr,
	}
}

func (vm *VM) push(v value.Value) {
	if vm.stackTop >= maxStack {
		panic("vm: stack overflow")
	}
	vm.stack[vm.stackTop] = v
	vm.stackTop++
}

func (vm *VM) pop() value.Value {
	if vm.stackTop == 0 {
		panic("vm: stack underflow")
	}
	vm.stackTop--
	return vm.stack[vm.stackTop]
}

func (vm *VM) peek(distance int) value.Value {
	return vm.stack[vm.stackTop-1-distance]
}

func (vm *VM) resetStack() {
	vm.stackTop = 0
}

// Run executes chunk from ip 0 until OP_RETURN or a runtime error.
func (vm *VM) Run(chunk *bytecode.Chunk) (Result, error) {
	vm.chunk = chunk
	vm.ip = 0

	for {
		op := vm.readByte()

		switch op {
		case bytecode.OP_CONSTANT:
			vm.push(vm.readConstant())

		case bytecode.OP_NIL:
			vm.push(value.Nil())
		case bytecode.OP_TRUE:
			vm.push(value.Bool(true))
		case bytecode.OP_FALSE:
			vm.push(value.Bool(false))

		case bytecode.OP_POP:
			vm.pop()

		case bytecode.OP_PRINT:
			fmt.Fprintln(vm.stdout, value.Display(vm.pop()))

		case bytecode.OP_DEFINE_GLOBAL:
			name := vm.readString()
			vm.globals[name] = vm.peek(0)
			vm.pop()

		case bytecode.OP_GET_GLOBAL:
			name := vm.readString()
			v, ok := vm.globals[name]
			if !ok {
				return vm.runtimeError("Undefined variable '%s'.", name)
			}
			vm.push(v)

		case bytecode.OP_SET_GLOBAL:
			name := vm.readString()
			if _, ok := vm.globals[name]; !ok {
				return vm.runtimeError("Undefined variable '%s'.", name)
			}
			vm.globals[name] = vm.peek(0)

		case bytecode.OP_GET_LOCAL:
			slot := vm.readByte()
			vm.push(vm.stack[slot])

		case bytecode.OP_SET_LOCAL:
			slot := vm.readByte()
			vm.stack[slot] = vm.peek(0)

		case bytecode.OP_EQUAL:
			b := vm.pop()
			a := vm.pop()
			vm.push(value.Bool(value.Equal(a, b)))

		case bytecode.OP_GREATER:
			res, result, err := vm.numericCompare(func(a, b float64) bool { return a > b })
			if err != nil {
				return result, err
			}
			vm.push(res)

		case bytecode.OP_LESS:
			res, result, err := vm.numericCompare(func(a, b float64) bool { return a < b })
			if err != nil {
				return result, err
			}
			vm.push(res)

		case bytecode.OP_ADD:
			if err := vm.add(); err != nil {
				return RuntimeError, err
			}

		case bytecode.OP_SUBTRACT:
			res, result, err := vm.numericBinary(func(a, b float64) float64 { return a - b })
			if err != nil {
				return result, err
			}
			vm.push(res)

		case bytecode.OP_MULTIPLY:
			res, result, err := vm.numericBinary(func(a, b float64) float64 { return a * b })
			if err != nil {
				return result, err
			}
			vm.push(res)

		case bytecode.OP_DIVIDE:
			res, result, err := vm.numericBinary(func(a, b float64) float64 { return a / b })
			if err != nil {
				return result, err
			}
			vm.push(res)

		case bytecode.OP_NEGATE:
			if vm.peek(0).Kind != value.KindNumber {
				return vm.runtimeError("Operand must be a number.")
			}
			v := vm.pop()
			vm.push(value.Number(-v.Num))

		case bytecode.OP_NOT:
			vm.push(value.Bool(!value.Truthy(vm.pop())))

		case bytecode.OP_RETURN:
			return OK, nil

		default:
			panic(fmt.Sprintf("vm: unknown opcode 0x%02X", op))
		}
	}
}

func (vm *VM) readByte() byte {
	b := vm.chunk.Code[vm.ip]
	vm.ip++
	return b
}

func (vm *VM) readConstant() value.Value {
	return vm.chunk.Constants[vm.readByte()]
}

// readString asserts the next constant is a String; a non-String here is
// a compiler invariant violation, not a runtime error.
func (vm *VM) readString() string {
	v := vm.readConstant()
	if v.Kind != value.KindString {
		panic("vm: expected string constant")
	}
	return v.Str
}

func (vm *VM) add() error {
	b := vm.peek(0)
	a := vm.peek(1)
	switch {
	case a.Kind == value.KindNumber && b.Kind == value.KindNumber:
		vm.pop()
		vm.pop()
		vm.push(value.Number(a.Num + b.Num))
		return nil
	case a.Kind == value.KindString && b.Kind == value.KindString:
		vm.pop()
		vm.pop()
		vm.push(value.String(a.Str + b.Str))
		return nil
	default:
		_, err := vm.runtimeError("Operands must be two numbers or two strings.")
		return err
	}
}

func (vm *VM) numericBinary(f func(a, b float64) float64) (value.Value, Result, error) {
	b := vm.peek(0)
	a := vm.peek(1)
	if a.Kind != value.KindNumber || b.Kind != value.KindNumber {
		res, err := vm.runtimeError("Operands must be numbers.")
		return value.Value{}, res, err
	}
	vm.pop()
	vm.pop()
	return value.Number(f(a.Num, b.Num)), OK, nil
}

func (vm *VM) numericCompare(f func(a, b float64) bool) (value.Value, Result, error) {
	b := vm.peek(0)
	a := vm.peek(1)
	if a.Kind != value.KindNumber || b.Kind != value.KindNumber {
		res, err := vm.runtimeError("Operands must be numbers.")
		return value.Value{}, res, err
	}
	vm.pop()
	vm.pop()
	return value.Bool(f(a.Num, b.Num)), OK, nil
}

// runtimeError reports the diagnostic for the opcode that was just read
// (ip-1, not the opcode's byte value), resets the stack, and returns
// RuntimeError for the caller to propagate.
func (vm *VM) runtimeError(format string, args ...interface{}) (Result, error) {
	msg := fmt.Sprintf(format, args...)
	line := vm.chunk.Lines[vm.ip-1]
	diag.RuntimeError(vm.stderr, line, msg)
	vm.resetStack()
	return RuntimeError, &errs.RuntimeError{Line: line, Message: msg}
}
