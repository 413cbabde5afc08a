package bytecode

import (
	"fmt"

	"github.com/arnegard/flux/internal/value"
)

// MaxConstants is the largest number of entries a constant pool may hold;
// constant operands are single bytes, so indices must fit in uint8.
const MaxConstants = 256

// Chunk is a compiled bytecode sequence with its constant pool and a
// per-byte line map used only for diagnostics.
type Chunk struct {
	Code      []byte
	Constants []value.Value
	Lines     []int
}

// NewChunk returns an empty chunk ready for writing.
func NewChunk() *Chunk {
	return &Chunk{}
}

// Write appends one byte to Code, recording line as the source line it was
// emitted from.
func (c *Chunk) Write(b byte, line int) {
	c.Code = append(c.Code, b)
	c.Lines = append(c.Lines, line)
}

// AddConstant appends v to the constant pool and returns its index. It
// panics if the pool is already full; callers must check Full() first so
// the compiler can turn this into a compile diagnostic instead.
func (c *Chunk) AddConstant(v value.Value) int {
	if len(c.Constants) >= MaxConstants {
		panic(fmt.Sprintf("chunk: constant pool overflow (max %d)", MaxConstants))
	}
	c.Constants = append(c.Constants, v)
	return len(c.Constants) - 1
}

// Full reports whether the constant pool has no room for another entry.
func (c *Chunk) Full() bool {
	return len(c.Constants) >= MaxConstants
}
