// Package errs defines the typed errors returned by the compiler and VM,
// so callers of the Go API can distinguish the two taxonomies with
// errors.As instead of parsing diagnostic text.
package errs

import "fmt"

// CompileError represents one failed diagnostic produced while compiling.
type CompileError struct {
	Line    int
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// RuntimeError represents the single diagnostic produced by a failing VM
// run. The VM aborts after the first one; there is never more than one.
type RuntimeError struct {
	Line    int
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}
