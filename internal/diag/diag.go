// Package diag renders compile and runtime diagnostics in the exact wire
// format the VM and compiler are required to produce, so both error
// taxonomies share one formatting path.
package diag

import (
	"fmt"
	"io"
)

// CompileError writes a single compile diagnostic to w:
//
//	[line L] Error at TOK: MSG
//	[line L] Error at end: MSG
//	[line L] Error: MSG
//
// where is the " at ..." fragment (including its leading space), or "" for
// the Error-token case where the scanner's own message stands alone.
func CompileError(w io.Writer, line int, where, msg string) {
	fmt.Fprintf(w, "[line %d] Error%s: %s\n", line, where, msg)
}

// RuntimeError writes a single runtime diagnostic to w:
//
//	MSG
//	[line L] in script
func RuntimeError(w io.Writer, line int, msg string) {
	fmt.Fprintf(w, "%s\n[line %d] in script\n", msg, line)
}
