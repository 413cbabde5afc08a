package lexer

import "github.com/arnegard/flux/internal/token"

// Lexer converts source text into a stream of tokens, one at a time.
type Lexer struct {
	input string
	start int
	pos   int
	line  int
}

// New creates a lexer for the provided source text.
func New(input string) *Lexer {
	return &Lexer{input: input, line: 1}
}

// NextToken scans and returns the next token. It is safe to call again
// after an Eof token has been returned; it keeps returning Eof.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()
	l.start = l.pos

	if l.atEnd() {
		return l.makeToken(token.Eof)
	}

	ch := l.advance()

	if isLetter(ch) {
		return l.identifier()
	}
	if isDigit(ch) {
		return l.number()
	}

	switch ch {
	case '(':
		return l.makeToken(token.LParen)
	case ')':
		return l.makeToken(token.RParen)
	case '{':
		return l.makeToken(token.LBrace)
	case '}':
		return l.makeToken(token.RBrace)
	case ';':
		return l.makeToken(token.Semicolon)
	case ',':
		return l.makeToken(token.Comma)
	case '.':
		return l.makeToken(token.Dot)
	case '-':
		return l.makeToken(token.Minus)
	case '+':
		return l.makeToken(token.Plus)
	case '/':
		return l.makeToken(token.Slash)
	case '*':
		return l.makeToken(token.Star)
	case '!':
		return l.makeToken(l.selectIfMatch('=', token.BangEqual, token.Bang))
	case '=':
		return l.makeToken(l.selectIfMatch('=', token.EqualEqual, token.Equal))
	case '<':
		return l.makeToken(l.selectIfMatch('=', token.LessEqual, token.Less))
	case '>':
		return l.makeToken(l.selectIfMatch('=', token.GreaterEqual, token.Greater))
	case '"':
		return l.string()
	default:
		return l.errorToken("Unexpected character.")
	}
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) advance() byte {
	ch := l.input[l.pos]
	l.pos++
	return ch
}

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekNext() byte {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

// selectIfMatch consumes the next byte if it equals expected, returning
// matched; otherwise it leaves the cursor alone and returns fallback.
func (l *Lexer) selectIfMatch(expected byte, matched, fallback token.Type) token.Type {
	if l.atEnd() || l.input[l.pos] != expected {
		return fallback
	}
	l.pos++
	return matched
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() {
		switch l.peek() {
		case ' ', '\t', '\r':
			l.pos++
		case '\n':
			l.line++
			l.pos++
		case '/':
			if l.peekNext() == '/' {
				for !l.atEnd() && l.peek() != '\n' {
					l.pos++
				}
				continue
			}
			return
		default:
			return
		}
	}
}

func (l *Lexer) identifier() token.Token {
	for isLetter(l.peek()) || isDigit(l.peek()) {
		l.pos++
	}
	lit := l.input[l.start:l.pos]
	return l.makeToken(token.LookupIdent(lit))
}

func (l *Lexer) number() token.Token {
	for isDigit(l.peek()) {
		l.pos++
	}
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.pos++
		for isDigit(l.peek()) {
			l.pos++
		}
	}
	return l.makeToken(token.Number)
}

// string scans a "..." literal; the lexeme returned by makeToken includes
// the surrounding quotes. No escape sequences are processed.
func (l *Lexer) string() token.Token {
	for !l.atEnd() && l.peek() != '"' {
		if l.peek() == '\n' {
			l.line++
		}
		l.pos++
	}
	if l.atEnd() {
		return l.errorToken("Unterminated string.")
	}
	l.pos++ // closing quote
	return l.makeToken(token.String)
}

func (l *Lexer) makeToken(t token.Type) token.Token {
	return token.Token{
		Type:    t,
		Literal: l.input[l.start:l.pos],
		Line:    l.line,
	}
}

func (l *Lexer) errorToken(msg string) token.Token {
	return token.Token{
		Type:    token.Error,
		Literal: msg,
		Line:    l.line,
	}
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
