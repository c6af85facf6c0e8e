// Package lexer supplies the concrete token source the parser's token
// buffer pulls from.
//
// spec.md treats the scanner as an external collaborator: the core only
// assumes a next_token() → (kind, text, line) function and a symbol
// table it may consult to reclassify a word once a typedef installs it.
// This package is one reasonable realization of that collaborator,
// tolerant in the same spirit as the recognizer it feeds: it never
// fails on unrecognized input, it just emits token.Word and moves on.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cflow-go/cflow/internal/config"
	"github.com/cflow-go/cflow/internal/token"
)

// TypeOracle is consulted to decide whether a bare word is a typedef
// name. internal/symtab.Table satisfies this.
type TypeOracle interface {
	IsTypeName(name string) bool
}

// Lexer scans C-like source text into a stream of classified tokens.
type Lexer struct {
	src    string
	pos    int
	line   int
	oracle TypeOracle

	types     map[string]bool
	modifiers map[string]bool
	structs   map[string]bool
	wrappers  map[string]bool
}

// New creates a Lexer over src. oracle may be nil, in which case no word
// is ever reclassified as a type name beyond the built-in keyword table.
// kw may be nil, in which case config.Default() is used.
func New(src string, oracle TypeOracle, kw *config.Keywords) *Lexer {
	if kw == nil {
		kw = config.Default()
	}
	types, modifiers, structs, wrappers := kw.Sets()
	return &Lexer{
		src:       src,
		line:      1,
		oracle:    oracle,
		types:     types,
		modifiers: modifiers,
		structs:   structs,
		wrappers:  wrappers,
	}
}

func (l *Lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekByteAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

// skipSpaceAndComments advances past whitespace and C comments,
// tracking line numbers. A brace in column zero (nothing before it on
// its line, not even indentation) later tokenizes as the
// indentation-guessed LBrace0/RBrace0 flavor.
func (l *Lexer) skipSpaceAndComments() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.line++
			l.pos++
		case c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f':
			l.pos++
		case c == '/' && l.peekByteAt(1) == '/':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case c == '/' && l.peekByteAt(1) == '*':
			l.pos += 2
			for l.pos < len(l.src) {
				if l.src[l.pos] == '\n' {
					l.line++
				}
				if l.src[l.pos] == '*' && l.peekByteAt(1) == '/' {
					l.pos += 2
					break
				}
				l.pos++
			}
		default:
			return
		}
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentCont(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// NextToken returns the next classified token. Once end-of-input is
// reached it keeps returning an EOF token forever.
func (l *Lexer) NextToken() token.Token {
	l.skipSpaceAndComments()
	if l.pos >= len(l.src) {
		return token.Token{Kind: token.EOF, Line: l.line}
	}

	line := l.line
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])

	switch {
	case isIdentStart(r):
		start := l.pos
		for l.pos < len(l.src) {
			r2, size2 := utf8.DecodeRuneInString(l.src[l.pos:])
			if !isIdentCont(r2) {
				break
			}
			l.pos += size2
		}
		word := l.src[start:l.pos]
		return token.Token{Kind: l.classifyWord(word), Text: word, Line: line}

	case unicode.IsDigit(r):
		start := l.pos
		for l.pos < len(l.src) && isNumberByte(l.src[l.pos]) {
			l.pos++
		}
		return token.Token{Kind: token.Word, Text: l.src[start:l.pos], Line: line}

	case r == '"':
		return l.scanQuoted('"', line)

	case r == '\'':
		return l.scanQuoted('\'', line)

	case r == '{':
		atCol0 := l.pos == 0 || l.src[l.pos-1] == '\n'
		l.pos++
		if atCol0 {
			return token.Token{Kind: token.LBrace0, Text: "{", Line: line}
		}
		return token.Token{Kind: token.LBrace, Text: "{", Line: line}

	case r == '}':
		atCol0 := l.pos == 0 || l.src[l.pos-1] == '\n'
		l.pos++
		if atCol0 {
			return token.Token{Kind: token.RBrace0, Text: "}", Line: line}
		}
		return token.Token{Kind: token.RBrace, Text: "}", Line: line}

	case r == '*':
		l.pos++
		return token.Token{Kind: token.Modifier, Text: "*", Line: line}

	case r == '.':
		if l.peekByteAt(1) == '.' && l.peekByteAt(2) == '.' {
			l.pos += 3
			return token.Token{Kind: token.Word, Text: "...", Line: line}
		}
		l.pos++
		return token.Token{Kind: token.MemberOf, Text: ".", Line: line}

	case r == '-' && l.peekByteAt(1) == '>':
		l.pos += 2
		return token.Token{Kind: token.MemberOf, Text: "->", Line: line}

	default:
		if op, ok := l.scanOperator(); ok {
			return token.Token{Kind: token.Op, Text: op, Line: line}
		}
		l.pos += size
		return token.Token{Kind: token.Kind(r), Text: string(r), Line: line}
	}
}

func isNumberByte(b byte) bool {
	switch {
	case b >= '0' && b <= '9':
		return true
	case b == '.' || b == 'x' || b == 'X':
		return true
	case b >= 'a' && b <= 'f', b >= 'A' && b <= 'F':
		return true
	case b == 'u' || b == 'U' || b == 'l' || b == 'L':
		return true
	}
	return false
}

// scanQuoted consumes a '"'- or '\''-delimited literal, tolerating an
// unterminated literal by stopping at end of input rather than erroring:
// malformed input must never abort the scanner.
func (l *Lexer) scanQuoted(quote byte, line int) token.Token {
	start := l.pos
	l.pos++ // opening quote
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '\\' && l.pos+1 < len(l.src) {
			l.pos += 2
			continue
		}
		if c == '\n' {
			l.line++
		}
		l.pos++
		if c == quote {
			break
		}
	}
	return token.Token{Kind: token.Word, Text: l.src[start:l.pos], Line: line}
}

// multiCharOperators lists operator lexemes longer than one character,
// longest first so a greedy scan never stops early.
var multiCharOperators = []string{
	"<<=", ">>=", "...",
	"==", "!=", "<=", ">=", "&&", "||", "++", "--",
	"->", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<", ">>", "::",
}

func (l *Lexer) scanOperator() (string, bool) {
	for _, op := range multiCharOperators {
		if strings.HasPrefix(l.src[l.pos:], op) {
			l.pos += len(op)
			return op, true
		}
	}
	return "", false
}

// reservedWords are the C keywords that are neither type specifiers nor
// storage classes. They tokenize as token.Word so the expression walker
// never mistakes `return` or `while` for a referenced identifier.
var reservedWords = map[string]bool{
	"if": true, "else": true, "for": true, "while": true, "do": true,
	"switch": true, "case": true, "default": true, "break": true,
	"continue": true, "goto": true, "return": true, "sizeof": true,
}

// classifyWord decides what kind of token a bare word is: a storage
// class keyword, a reserved word, a struct-family keyword, a
// parameter-wrapper macro, a modifier, a configured or oracle-confirmed
// type name, or a plain identifier.
func (l *Lexer) classifyWord(word string) token.Kind {
	switch word {
	case "extern":
		return token.Extern
	case "static":
		return token.Static
	case "typedef":
		return token.Typedef
	}
	if reservedWords[word] {
		return token.Word
	}
	if l.structs[word] {
		return token.StructKeyword
	}
	if l.wrappers[word] {
		return token.ParmWrapper
	}
	if l.modifiers[word] {
		return token.Modifier
	}
	if l.types[word] {
		return token.TypeName
	}
	if l.oracle != nil && l.oracle.IsTypeName(word) {
		return token.TypeName
	}
	return token.Identifier
}
