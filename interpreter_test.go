package flux

import (
	"bytes"
	"strings"
	"testing"
)

func TestInterpretArithmetic(t *testing.T) {
	var out, errOut bytes.Buffer
	res := Interpret("print 1 + 2 * 3;", &out, &errOut)
	if res != OK {
		t.Fatalf("expected OK, got %v (stderr: %s)", res, errOut.String())
	}
	if out.String() != "7\n" {
		t.Fatalf("expected 7, got %q", out.String())
	}
}

func TestInterpreterPersistsGlobalsAcrossRuns(t *testing.T) {
	var out, errOut bytes.Buffer
	interp := New(WithStdout(&out), WithStderr(&errOut))

	if res := interp.Run("var a = 1;"); res != OK {
		t.Fatalf("expected OK, got %v", res)
	}
	if res := interp.Run("print a + 1;"); res != OK {
		t.Fatalf("expected OK, got %v (stderr: %s)", res, errOut.String())
	}
	if out.String() != "2\n" {
		t.Fatalf("expected 2, got %q", out.String())
	}
}

func TestInterpretCompileError(t *testing.T) {
	var out, errOut bytes.Buffer
	res := Interpret("{ var a = a; }", &out, &errOut)
	if res != CompileError {
		t.Fatalf("expected CompileError, got %v", res)
	}
	if !strings.Contains(errOut.String(), "Can't read local variable in its own initializer.") {
		t.Fatalf("unexpected diagnostics: %q", errOut.String())
	}
}

func TestInterpretRuntimeError(t *testing.T) {
	var out, errOut bytes.Buffer
	res := Interpret("print -true;", &out, &errOut)
	if res != RuntimeError {
		t.Fatalf("expected RuntimeError, got %v", res)
	}
	if !strings.Contains(errOut.String(), "Operand must be a number.") {
		t.Fatalf("unexpected diagnostics: %q", errOut.String())
	}
}
