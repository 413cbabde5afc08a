package bytecode

import (
	"testing"

	"github.com/arnegard/flux/internal/value"
)

func TestChunkWriteRecordsLines(t *testing.T) {
	c := NewChunk()
	c.Write(OP_NIL, 1)
	c.Write(OP_RETURN, 2)

	if len(c.Code) != 2 || len(c.Lines) != 2 {
		t.Fatalf("expected parallel code/lines of length 2, got %d/%d", len(c.Code), len(c.Lines))
	}
	if c.Lines[0] != 1 || c.Lines[1] != 2 {
		t.Fatalf("unexpected lines: %v", c.Lines)
	}
}

func TestChunkAddConstant(t *testing.T) {
	c := NewChunk()
	idx := c.AddConstant(value.Number(42))
	if idx != 0 {
		t.Fatalf("expected first constant index 0, got %d", idx)
	}
	idx2 := c.AddConstant(value.String("hi"))
	if idx2 != 1 {
		t.Fatalf("expected second constant index 1, got %d", idx2)
	}
	if c.Constants[0].Num != 42 {
		t.Fatalf("unexpected constant at 0: %v", c.Constants[0])
	}
}

func TestChunkFull(t *testing.T) {
	c := NewChunk()
	for i := 0; i < MaxConstants; i++ {
		c.AddConstant(value.Number(float64(i)))
	}
	if !c.Full() {
		t.Fatalf("expected chunk to report full after %d constants", MaxConstants)
	}
}
