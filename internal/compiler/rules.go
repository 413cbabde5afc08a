package compiler

import "github.com/arnegard/flux/internal/token"

// Precedence orders binding strength from loosest to tightest.
type Precedence int

const (
	PrecNone       Precedence = iota
	PrecAssignment            // =
	PrecOr                    // or
	PrecAnd                   // and
	PrecEquality              // == !=
	PrecComparison            // < <= > >=
	PrecTerm                  // + -
	PrecFactor                // * /
	PrecUnary                 // ! -
	PrecCall                  // . ()
	PrecPrimary
)

// parseFn is a prefix or infix parse handler. canAssign is threaded through
// explicitly rather than read off hidden state, per the table below.
type parseFn func(c *Compiler, canAssign bool)

// ParseRule ties a token kind to its prefix/infix handlers and the
// precedence used when that token appears as an infix operator.
type ParseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence Precedence
}

// rules is a static, package-level dispatch table: no closures are
// allocated per parse, and no rule captures compiler state.
//
// Populated in init() rather than via a top-level initializer expression:
// the table's values reference parse functions that themselves call
// getRule, which reads this table, so a direct initializer creates a
// package initialization cycle.
var rules map[token.Type]ParseRule

func init() {
	rules = map[token.Type]ParseRule{
		token.LParen:       {parseGrouping, nil, PrecNone},
		token.RParen:       {nil, nil, PrecNone},
		token.LBrace:       {nil, nil, PrecNone},
		token.RBrace:       {nil, nil, PrecNone},
		token.Comma:        {nil, nil, PrecNone},
		token.Dot:          {nil, nil, PrecNone},
		token.Minus:        {parseUnary, parseBinary, PrecTerm},
		token.Plus:         {nil, parseBinary, PrecTerm},
		token.Semicolon:    {nil, nil, PrecNone},
		token.Slash:        {nil, parseBinary, PrecFactor},
		token.Star:         {nil, parseBinary, PrecFactor},
		token.Bang:         {parseUnary, nil, PrecNone},
		token.BangEqual:    {nil, parseBinary, PrecEquality},
		token.Equal:        {nil, nil, PrecNone},
		token.EqualEqual:   {nil, parseBinary, PrecEquality},
		token.Greater:      {nil, parseBinary, PrecComparison},
		token.GreaterEqual: {nil, parseBinary, PrecComparison},
		token.Less:         {nil, parseBinary, PrecComparison},
		token.LessEqual:    {nil, parseBinary, PrecComparison},
		token.Identifier:   {parseVariableExpr, nil, PrecNone},
		token.String:       {parseString, nil, PrecNone},
		token.Number:       {parseNumber, nil, PrecNone},
		token.And:          {nil, nil, PrecNone},
		token.Class:        {nil, nil, PrecNone},
		token.Else:         {nil, nil, PrecNone},
		token.False:        {parseLiteral, nil, PrecNone},
		token.For:          {nil, nil, PrecNone},
		token.Fun:          {nil, nil, PrecNone},
		token.If:           {nil, nil, PrecNone},
		token.Nil:          {parseLiteral, nil, PrecNone},
		token.Or:           {nil, nil, PrecNone},
		token.Print:        {nil, nil, PrecNone},
		token.Return:       {nil, nil, PrecNone},
		token.Super:        {nil, nil, PrecNone},
		token.This:         {nil, nil, PrecNone},
		token.True:         {parseLiteral, nil, PrecNone},
		token.Var:          {nil, nil, PrecNone},
		token.While:        {nil, nil, PrecNone},
		token.Error:        {nil, nil, PrecNone},
		token.Eof:          {nil, nil, PrecNone},
	}
}

// emptyRule is returned for any token kind missing from the table (there
// should be none, but this keeps parsePrecedence total).
var emptyRule = ParseRule{nil, nil, PrecNone}

func getRule(t token.Type) ParseRule {
	if r, ok := rules[t]; ok {
		return r
	}
	return emptyRule
}
