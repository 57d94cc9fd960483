package token

import (
	"fmt"
	"strings"
	"unicode"
)

// SyntaxError is a tokenization failure with the position it occurred at.
type SyntaxError struct {
	Msg string
	Pos Span
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// Tokenize turns source text into a token-tree stream. Parenthesized,
// bracketed and braced regions become nested groups; comments and whitespace
// are dropped.
func Tokenize(input string) (Stream, error) {
	l := newLexer(input)
	stream, err := l.lexStream(0)
	if err != nil {
		return nil, err
	}
	return stream, nil
}

type lexer struct {
	input  []rune
	pos    int  // index of the current rune
	ch     rune // current rune (0 = EOF)
	line   int  // 1-based line of the current rune
	column int  // 1-based column of the current rune
}

func newLexer(input string) *lexer {
	l := &lexer{input: []rune(input), pos: -1, line: 1}
	l.read()
	return l
}

// read advances to the next rune, tracking line and column.
func (l *lexer) read() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	l.pos++
	l.column++
	if l.pos >= len(l.input) {
		l.ch = 0
		return
	}
	l.ch = l.input[l.pos]
}

func (l *lexer) peek() rune {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

func (l *lexer) here() Span {
	return Span{Line: l.line, Column: l.column, Start: l.pos, End: l.pos + 1}
}

func (l *lexer) spanFrom(start Span) Span {
	start.End = l.pos
	return start
}

func (l *lexer) errorf(pos Span, format string, args ...any) error {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...), Pos: pos}
}

// lexStream reads trees until EOF or the given closing delimiter.
// The closing rune itself is left unconsumed for the caller.
func (l *lexer) lexStream(close rune) (Stream, error) {
	var stream Stream
	for {
		if err := l.skipTrivia(); err != nil {
			return nil, err
		}

		switch {
		case l.ch == 0:
			if close != 0 {
				return nil, l.errorf(l.here(), "unexpected end of input, expected %q", close)
			}
			return stream, nil
		case l.ch == close:
			return stream, nil
		case l.ch == '(' || l.ch == '[' || l.ch == '{':
			group, err := l.lexGroup()
			if err != nil {
				return nil, err
			}
			stream = append(stream, group)
		case l.ch == ')' || l.ch == ']' || l.ch == '}':
			return nil, l.errorf(l.here(), "unbalanced %q", l.ch)
		case isIdentStart(l.ch):
			stream = append(stream, l.lexIdent())
		case unicode.IsDigit(l.ch):
			stream = append(stream, l.lexNumber())
		case l.ch == '"':
			lit, err := l.lexString()
			if err != nil {
				return nil, err
			}
			stream = append(stream, lit)
		case l.ch == '\'':
			trees, err := l.lexQuote()
			if err != nil {
				return nil, err
			}
			stream = append(stream, trees...)
		default:
			stream = append(stream, l.lexPunct())
		}
	}
}

func (l *lexer) lexGroup() (Group, error) {
	open := l.ch
	var delim Delim
	var close rune
	switch open {
	case '(':
		delim, close = Paren, ')'
	case '[':
		delim, close = Bracket, ']'
	default:
		delim, close = Brace, '}'
	}

	start := l.here()
	l.read()
	inner, err := l.lexStream(close)
	if err != nil {
		return Group{}, err
	}
	if l.ch != close {
		return Group{}, l.errorf(start, "unterminated %q group", open)
	}
	l.read()
	return Group{Delim: delim, Trees: inner, Pos: l.spanFrom(start)}, nil
}

func (l *lexer) lexIdent() Ident {
	start := l.here()
	var b strings.Builder
	for isIdentStart(l.ch) || unicode.IsDigit(l.ch) {
		b.WriteRune(l.ch)
		l.read()
	}
	return Ident{Name: b.String(), Pos: l.spanFrom(start)}
}

func (l *lexer) lexNumber() Literal {
	start := l.here()
	var b strings.Builder
	for unicode.IsDigit(l.ch) || isIdentStart(l.ch) || l.ch == '.' {
		b.WriteRune(l.ch)
		l.read()
	}
	return Literal{Text: b.String(), Pos: l.spanFrom(start)}
}

func (l *lexer) lexString() (Literal, error) {
	start := l.here()
	var b strings.Builder
	b.WriteRune('"')
	l.read()
	for l.ch != '"' {
		if l.ch == 0 {
			return Literal{}, l.errorf(start, "unterminated string literal")
		}
		if l.ch == '\\' {
			b.WriteRune(l.ch)
			l.read()
			if l.ch == 0 {
				return Literal{}, l.errorf(start, "unterminated string literal")
			}
		}
		b.WriteRune(l.ch)
		l.read()
	}
	b.WriteRune('"')
	l.read()
	return Literal{Text: b.String(), Pos: l.spanFrom(start)}, nil
}

// lexQuote distinguishes a lifetime marker ('a) from a character literal
// ('a'). A lifetime becomes a joint quote punct followed by its identifier.
func (l *lexer) lexQuote() (Stream, error) {
	start := l.here()
	l.read()

	if isIdentStart(l.ch) && !l.isCharLiteralAhead() {
		quote := Punct{Ch: '\'', Joint: true, Pos: start}
		name := l.lexIdent()
		return Stream{quote, name}, nil
	}

	var b strings.Builder
	b.WriteRune('\'')
	if l.ch == 0 {
		return nil, l.errorf(start, "unterminated character literal")
	}
	if l.ch == '\\' {
		b.WriteRune(l.ch)
		l.read()
	}
	if l.ch == 0 {
		return nil, l.errorf(start, "unterminated character literal")
	}
	b.WriteRune(l.ch)
	l.read()
	if l.ch != '\'' {
		return nil, l.errorf(start, "unterminated character literal")
	}
	b.WriteRune('\'')
	l.read()
	return Stream{Literal{Text: b.String(), Pos: l.spanFrom(start)}}, nil
}

// isCharLiteralAhead reports whether the current position starts a
// single-character literal body like a' rather than a lifetime name.
func (l *lexer) isCharLiteralAhead() bool {
	return l.peek() == '\''
}

func (l *lexer) lexPunct() Punct {
	p := Punct{Ch: l.ch, Joint: isPunctRune(l.peek()), Pos: l.here()}
	l.read()
	return p
}

func (l *lexer) skipTrivia() error {
	for {
		switch {
		case unicode.IsSpace(l.ch):
			l.read()
		case l.ch == '/' && l.peek() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.read()
			}
		case l.ch == '/' && l.peek() == '*':
			if err := l.skipBlockComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (l *lexer) skipBlockComment() error {
	start := l.here()
	l.read() // '/'
	l.read() // '*'
	depth := 1
	for depth > 0 {
		switch {
		case l.ch == 0:
			return l.errorf(start, "unterminated block comment")
		case l.ch == '/' && l.peek() == '*':
			depth++
			l.read()
			l.read()
		case l.ch == '*' && l.peek() == '/':
			depth--
			l.read()
			l.read()
		default:
			l.read()
		}
	}
	return nil
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isPunctRune(r rune) bool {
	return strings.ContainsRune("!#$%&*+,-./:;<=>?@^|~", r)
}
