// Package compiler implements the single-pass Pratt compiler: it drives
// the lexer directly and emits bytecode into a Chunk as it parses, with no
// intermediate AST.
package compiler

import (
	"io"
	"strconv"

	"github.com/arnegard/flux/internal/bytecode"
	"github.com/arnegard/flux/internal/diag"
	"github.com/arnegard/flux/internal/errs"
	"github.com/arnegard/flux/internal/lexer"
	"github.com/arnegard/flux/internal/token"
	"github.com/arnegard/flux/internal/value"
)

// maxLocals mirrors the one-byte slot-index contract: a local's stack slot
// is encoded as a single operand byte.
const maxLocals = 256

// local is a variable bound in a non-global scope, addressed by its slot.
// depth == -1 marks "declared but not yet initialized".
type local struct {
	name  string
	depth int
}

// Compiler holds all single-pass compilation state: the token cursor, the
// chunk being written, and the scope/local bookkeeping used to resolve
// names to stack slots at compile time.
type Compiler struct {
	lex *lexer.Lexer
	out io.Writer

	current  token.Token
	previous token.Token

	hadError  bool
	panicMode bool
	firstErr  *errs.CompileError

	chunk *bytecode.Chunk

	locals     [maxLocals]local
	localCount int
	scopeDepth int
}

// Compile compiles source into a Chunk. Diagnostics for every reported
// error are written to out as they are discovered; the returned error is
// the first one, typed as *errs.CompileError so a caller can recover it
// with errors.As. The returned chunk is only meaningful when err is nil.
func Compile(source string, out io.Writer) (*bytecode.Chunk, error) {
	c := &Compiler{
		lex:   lexer.New(source),
		out:   out,
		chunk: bytecode.NewChunk(),
	}
	c.advance()
	for !c.match(token.Eof) {
		c.declaration()
	}
	c.emitReturn()
	if c.hadError {
		return c.chunk, c.firstErr
	}
	return c.chunk, nil
}

// --- token cursor -----------------------------------------------------

func (c *Compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.lex.NextToken()
		if c.current.Type != token.Error {
			break
		}
		c.errorAtCurrent(c.current.Literal)
	}
}

func (c *Compiler) check(t token.Type) bool {
	return c.current.Type == t
}

func (c *Compiler) match(t token.Type) bool {
	if !c.check(t) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) consume(t token.Type, msg string) {
	if c.current.Type == t {
		c.advance()
		return
	}
	c.errorAtCurrent(msg)
}

// --- diagnostics --------------------------------------------------------

func (c *Compiler) errorAtCurrent(msg string) {
	c.errorAt(c.current, msg)
}

func (c *Compiler) errorAtPrevious(msg string) {
	c.errorAt(c.previous, msg)
}

func (c *Compiler) errorAt(tok token.Token, msg string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true
	if c.firstErr == nil {
		c.firstErr = &errs.CompileError{Line: tok.Line, Message: msg}
	}

	switch tok.Type {
	case token.Eof:
		diag.CompileError(c.out, tok.Line, " at end", msg)
	case token.Error:
		diag.CompileError(c.out, tok.Line, "", msg)
	default:
		diag.CompileError(c.out, tok.Line, " at "+tok.Literal, msg)
	}
}

// synchronize skips tokens after a compile error until a likely statement
// boundary, so one malformed statement doesn't suppress the rest.
func (c *Compiler) synchronize() {
	c.panicMode = false

	for c.current.Type != token.Eof {
		if c.previous.Type == token.Semicolon {
			return
		}
		switch c.current.Type {
		case token.Class, token.Fun, token.Var, token.For,
			token.If, token.While, token.Print, token.Return:
			return
		}
		c.advance()
	}
}

// --- declarations and statements ---------------------------------------

func (c *Compiler) declaration() {
	if c.match(token.Var) {
		c.varDeclaration()
	} else {
		c.statement()
	}
	if c.panicMode {
		c.synchronize()
	}
}

func (c *Compiler) varDeclaration() {
	global := c.parseVariable("Expect variable name.")

	if c.match(token.Equal) {
		c.expression()
	} else {
		c.emitByte(bytecode.OP_NIL)
	}
	c.consume(token.Semicolon, "Expect ';' after variable declaration.")

	c.defineVariable(global)
}

func (c *Compiler) statement() {
	switch {
	case c.match(token.Print):
		c.printStatement()
	case c.match(token.LBrace):
		c.beginScope()
		c.block()
		c.endScope()
	default:
		c.expressionStatement()
	}
}

func (c *Compiler) printStatement() {
	c.expression()
	c.consume(token.Semicolon, "Expect ';' after value.")
	c.emitByte(bytecode.OP_PRINT)
}

func (c *Compiler) expressionStatement() {
	c.expression()
	c.consume(token.Semicolon, "Expect ';' after expression.")
	c.emitByte(bytecode.OP_POP)
}

func (c *Compiler) block() {
	for !c.check(token.RBrace) && !c.check(token.Eof) {
		c.declaration()
	}
	c.consume(token.RBrace, "Expect '}' after block.")
}

func (c *Compiler) beginScope() {
	c.scopeDepth++
}

func (c *Compiler) endScope() {
	c.scopeDepth--
	for c.localCount > 0 && c.locals[c.localCount-1].depth > c.scopeDepth {
		c.emitByte(bytecode.OP_POP)
		c.localCount--
	}
}

// --- variables -----------------------------------------------------------

// parseVariable consumes the identifier and, for a global, adds its name
// to the constant pool; for a local it just declares the slot and returns 0
// (the return value is a dummy global index, ignored by defineVariable).
func (c *Compiler) parseVariable(msg string) int {
	c.consume(token.Identifier, msg)
	name := c.previous.Literal

	c.declareVariable(name)
	if c.scopeDepth > 0 {
		return 0
	}
	return c.makeConstant(value.String(name))
}

func (c *Compiler) declareVariable(name string) {
	if c.scopeDepth == 0 {
		return
	}
	for i := c.localCount - 1; i >= 0; i-- {
		l := c.locals[i]
		if l.depth != -1 && l.depth < c.scopeDepth {
			break
		}
		if l.name == name {
			c.errorAtPrevious("Already a variable with this name in this scope.")
		}
	}
	c.addLocal(name)
}

func (c *Compiler) addLocal(name string) {
	if c.localCount == maxLocals {
		c.errorAtPrevious("Too many local variables in function.")
		return
	}
	c.locals[c.localCount] = local{name: name, depth: -1}
	c.localCount++
}

func (c *Compiler) defineVariable(global int) {
	if c.scopeDepth > 0 {
		c.locals[c.localCount-1].depth = c.scopeDepth
		return
	}
	c.emitBytes(bytecode.OP_DEFINE_GLOBAL, byte(global))
}

func (c *Compiler) resolveLocal(name string) int {
	for i := c.localCount - 1; i >= 0; i-- {
		l := c.locals[i]
		if l.name != name {
			continue
		}
		if l.depth == -1 {
			c.errorAtPrevious("Can't read local variable in its own initializer.")
		}
		return i
	}
	return -1
}

func (c *Compiler) namedVariable(name token.Token, canAssign bool) {
	var getOp, setOp byte
	var arg int

	if slot := c.resolveLocal(name.Literal); slot != -1 {
		getOp, setOp = bytecode.OP_GET_LOCAL, bytecode.OP_SET_LOCAL
		arg = slot
	} else {
		getOp, setOp = bytecode.OP_GET_GLOBAL, bytecode.OP_SET_GLOBAL
		arg = c.identifierConstant(name.Literal)
	}

	if canAssign && c.match(token.Equal) {
		c.expression()
		c.emitBytes(setOp, byte(arg))
	} else {
		c.emitBytes(getOp, byte(arg))
	}
}

func (c *Compiler) identifierConstant(name string) int {
	return c.makeConstant(value.String(name))
}

// makeConstant adds v to the chunk's constant pool, reporting a compile
// error instead of overflowing the one-byte index space.
func (c *Compiler) makeConstant(v value.Value) int {
	if c.chunk.Full() {
		c.errorAtPrevious("Too many constants in one chunk.")
		return 0
	}
	return c.chunk.AddConstant(v)
}

// --- expressions: Pratt parsing over the static rule table --------------

func (c *Compiler) expression() {
	c.parsePrecedence(PrecAssignment)
}

func (c *Compiler) parsePrecedence(prec Precedence) {
	c.advance()
	rule := getRule(c.previous.Type)
	if rule.prefix == nil {
		c.errorAtPrevious("Expect expression.")
		return
	}

	canAssign := prec <= PrecAssignment
	rule.prefix(c, canAssign)

	for prec <= getRule(c.current.Type).precedence {
		c.advance()
		infix := getRule(c.previous.Type).infix
		infix(c, canAssign)
	}

	if canAssign && c.match(token.Equal) {
		c.errorAtPrevious("Invalid assignment target.")
	}
}

func parseNumber(c *Compiler, canAssign bool) {
	n, err := strconv.ParseFloat(c.previous.Literal, 64)
	if err != nil {
		c.errorAtPrevious("Invalid number literal.")
		return
	}
	c.emitConstant(value.Number(n))
}

func parseString(c *Compiler, canAssign bool) {
	lit := c.previous.Literal
	// strip the surrounding quotes; the scanner does no escape processing.
	s := lit[1 : len(lit)-1]
	c.emitConstant(value.String(s))
}

func parseLiteral(c *Compiler, canAssign bool) {
	switch c.previous.Type {
	case token.False:
		c.emitByte(bytecode.OP_FALSE)
	case token.Nil:
		c.emitByte(bytecode.OP_NIL)
	case token.True:
		c.emitByte(bytecode.OP_TRUE)
	}
}

func parseGrouping(c *Compiler, canAssign bool) {
	c.expression()
	c.consume(token.RParen, "Expect ')' after expression.")
}

func parseUnary(c *Compiler, canAssign bool) {
	opType := c.previous.Type
	c.parsePrecedence(PrecUnary)
	switch opType {
	case token.Minus:
		c.emitByte(bytecode.OP_NEGATE)
	case token.Bang:
		c.emitByte(bytecode.OP_NOT)
	}
}

func parseBinary(c *Compiler, canAssign bool) {
	opType := c.previous.Type
	rule := getRule(opType)
	c.parsePrecedence(rule.precedence + 1)

	switch opType {
	case token.Plus:
		c.emitByte(bytecode.OP_ADD)
	case token.Minus:
		c.emitByte(bytecode.OP_SUBTRACT)
	case token.Star:
		c.emitByte(bytecode.OP_MULTIPLY)
	case token.Slash:
		c.emitByte(bytecode.OP_DIVIDE)
	case token.EqualEqual:
		c.emitByte(bytecode.OP_EQUAL)
	case token.BangEqual:
		c.emitBytes(bytecode.OP_EQUAL, bytecode.OP_NOT)
	case token.Greater:
		c.emitByte(bytecode.OP_GREATER)
	case token.GreaterEqual:
		c.emitBytes(bytecode.OP_LESS, bytecode.OP_NOT)
	case token.Less:
		c.emitByte(bytecode.OP_LESS)
	case token.LessEqual:
		c.emitBytes(bytecode.OP_GREATER, bytecode.OP_NOT)
	}
}

func parseVariableExpr(c *Compiler, canAssign bool) {
	c.namedVariable(c.previous, canAssign)
}

// --- emit helpers --------------------------------------------------------

func (c *Compiler) emitByte(b byte) {
	c.chunk.Write(b, c.previous.Line)
}

func (c *Compiler) emitBytes(b1, b2 byte) {
	c.emitByte(b1)
	c.emitByte(b2)
}

func (c *Compiler) emitReturn() {
	c.emitByte(bytecode.OP_RETURN)
}

func (c *Compiler) emitConstant(v value.Value) {
	c.emitBytes(bytecode.OP_CONSTANT, byte(c.makeConstant(v)))
}
