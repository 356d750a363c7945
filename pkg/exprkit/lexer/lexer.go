// Package lexer turns expression source into tokens.
//
// Scanning is single pass with one character of lookahead. Identifiers are
// runs of ASCII letters; "true" and "false" become boolean literals. Numbers
// are runs of digits and dots: no dot yields an integer, one dot a decimal.
// Strings run from a quote to the next quote of the same style with no
// escapes. The typographic glyphs "−", "×" and "÷" are accepted for minus,
// multiply and divide.
//
// By default the lexer is permissive: a lone '|', '&' or '=' and any
// unrecognized character are skipped. WithStrict turns them into errors.
package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	exprerrors "github.com/randalmurphal/exprkit/pkg/exprkit/errors"
	"github.com/randalmurphal/exprkit/pkg/exprkit/token"
)

// Option configures a Lexer.
type Option func(*Lexer)

// WithStrict makes stray characters a lex error instead of skipping them.
func WithStrict(strict bool) Option {
	return func(l *Lexer) {
		l.strict = strict
	}
}

// Lexer scans one source string.
type Lexer struct {
	input  string
	pos    int  // byte offset of ch
	col    int  // 1-based column of ch
	ch     rune // current character, or eof
	width  int  // byte width of ch
	strict bool
}

const eof = -1

// New creates a Lexer positioned at the start of source.
func New(source string, opts ...Option) *Lexer {
	l := &Lexer{input: source, col: 1}
	for _, opt := range opts {
		opt(l)
	}
	l.load()
	return l
}

// Tokenize scans source to completion.
func Tokenize(source string, opts ...Option) ([]token.Token, error) {
	l := New(source, opts...)
	var tokens []token.Token
	for {
		tok, ok, err := l.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// Next returns the next token. ok is false once the input is exhausted.
func (l *Lexer) Next() (tok token.Token, ok bool, err error) {
	for l.ch != eof {
		ch, col := l.ch, l.col

		switch {
		case isLetter(ch):
			return l.readName(), true, nil
		case isDigit(ch):
			tok, err := l.readNumber()
			return tok, err == nil, err
		case ch == '\'' || ch == '"':
			tok, err := l.readString()
			return tok, err == nil, err
		case unicode.IsSpace(ch):
			l.advance()
			continue
		}

		l.advance()
		switch ch {
		case '|':
			if l.accept('|') {
				return token.Op(token.Or), true, nil
			}
		case '&':
			if l.accept('&') {
				return token.Op(token.And), true, nil
			}
		case '=':
			if l.accept('=') {
				return token.Op(token.Equal), true, nil
			}
		case '!':
			return l.withEquals(token.Not, token.NotEqual), true, nil
		case '<':
			return l.withEquals(token.Less, token.LessOrEqual), true, nil
		case '>':
			return l.withEquals(token.Greater, token.GreaterOrEqual), true, nil
		case '(':
			return token.LeftParen(), true, nil
		case ')':
			return token.RightParen(), true, nil
		default:
			if op, found := token.LookupSymbol(string(ch)); found {
				return token.Op(op.Kind), true, nil
			}
		}

		if l.strict {
			return token.Token{}, false, &exprerrors.LexError{
				Column:  col,
				Char:    ch,
				Message: "unexpected character " + strconv.QuoteRune(ch),
			}
		}
	}
	return token.Token{}, false, nil
}

// load decodes the character at pos.
func (l *Lexer) load() {
	if l.pos >= len(l.input) {
		l.ch, l.width = eof, 0
		return
	}
	l.ch, l.width = utf8.DecodeRuneInString(l.input[l.pos:])
}

func (l *Lexer) advance() {
	l.pos += l.width
	l.col++
	l.load()
}

// accept consumes the current character if it is want.
func (l *Lexer) accept(want rune) bool {
	if l.ch != want {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) withEquals(bare, withEq token.OperatorKind) token.Token {
	if l.accept('=') {
		return token.Op(withEq)
	}
	return token.Op(bare)
}

func (l *Lexer) readName() token.Token {
	start := l.pos
	for isLetter(l.ch) {
		l.advance()
	}
	name := l.input[start:l.pos]
	switch name {
	case "true":
		return token.Lit(token.Bool(true))
	case "false":
		return token.Lit(token.Bool(false))
	}
	return token.Var(name)
}

func (l *Lexer) readNumber() (token.Token, error) {
	start, col := l.pos, l.col
	for isDigit(l.ch) || l.ch == '.' {
		l.advance()
	}
	text := l.input[start:l.pos]

	if !strings.Contains(text, ".") {
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return token.Token{}, &exprerrors.NumberFormatError{Column: col, Text: text, Err: err}
		}
		return token.Lit(token.Integer(n)), nil
	}

	// ParseFloat rejects a second '.', which covers "1.2.3".
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return token.Token{}, &exprerrors.NumberFormatError{Column: col, Text: text, Err: err}
	}
	return token.Lit(token.Decimal(f)), nil
}

func (l *Lexer) readString() (token.Token, error) {
	quote, col := l.ch, l.col
	l.advance()
	start := l.pos
	for l.ch != quote {
		if l.ch == eof {
			return token.Token{}, &exprerrors.LexError{
				Column:  col,
				Char:    quote,
				Message: "unterminated string literal",
			}
		}
		l.advance()
	}
	text := l.input[start:l.pos]
	l.advance()
	return token.Lit(token.String(text)), nil
}

func isLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
