// Package flux is the public facade wrapping the scanner, compiler, and VM
// behind a single entry point.
package flux

import (
	"io"
	"os"

	"github.com/arnegard/flux/internal/compiler"
	"github.com/arnegard/flux/internal/vm"
)

// Result is the three-state outcome of interpreting a source string.
type Result = vm.Result

const (
	OK           = vm.OK
	CompileError = vm.CompileError
	RuntimeError = vm.RuntimeError
)

// Interpreter wraps one persistent VM: its globals accumulate across
// successive Run calls, which is what a REPL needs between lines.
type Interpreter struct {
	stdout io.Writer
	stderr io.Writer
	vm     *vm.VM
}

// Option configures an Interpreter at construction time.
type Option func(*Interpreter)

// WithStdout redirects PRINT output away from os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(i *Interpreter) { i.stdout = w }
}

// WithStderr redirects diagnostics away from os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(i *Interpreter) { i.stderr = w }
}

// New constructs an Interpreter. Without options, output and diagnostics go
// to os.Stdout and os.Stderr.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range opts {
		opt(i)
	}
	i.vm = vm.New(i.stdout, i.stderr)
	return i
}

// Run compiles and executes source, returning the three-state result.
// Compile diagnostics and runtime diagnostics are both written to the
// configured stderr sink as they are produced; PRINT output goes to the
// configured stdout sink.
func (i *Interpreter) Run(source string) Result {
	chunk, err := compiler.Compile(source, i.stderr)
	if err != nil {
		return CompileError
	}
	result, _ := i.vm.Run(chunk)
	return result
}

// Interpret is a convenience one-shot entry point: it compiles and runs
// source against a fresh VM, with no globals surviving past the call.
func Interpret(source string, stdout, stderr io.Writer) Result {
	return New(WithStdout(stdout), WithStderr(stderr)).Run(source)
}
