// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package filter

import (
	"encoding/json"
	"strconv"
	"strings"
)

type tokenKind uint8

const (
	tokenEOF tokenKind = iota
	tokenIdent
	tokenString
	tokenNumber
	tokenLParen
	tokenRParen
	tokenLBracket
	tokenRBracket
)

type token struct {
	kind tokenKind
	text string
	pos  int

	str string  // decoded string literal
	num float64 // decoded number literal
}

type lexer struct {
	input string
	pos   int
}

func newLexer(input string) *lexer {
	return &lexer{input: input}
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

// next scans the next token. It never fails on identifiers; malformed
// string and number literals yield a ParseError.
func (l *lexer) next() (token, error) {
	l.skipSpace()
	if l.pos >= len(l.input) {
		return token{kind: tokenEOF, pos: l.pos}, nil
	}

	start := l.pos
	switch ch := l.input[l.pos]; {
	case ch == '(':
		l.pos++
		return token{kind: tokenLParen, text: "(", pos: start}, nil
	case ch == ')':
		l.pos++
		return token{kind: tokenRParen, text: ")", pos: start}, nil
	case ch == '[':
		l.pos++
		return token{kind: tokenLBracket, text: "[", pos: start}, nil
	case ch == ']':
		l.pos++
		return token{kind: tokenRBracket, text: "]", pos: start}, nil
	case ch == '"':
		return l.scanString()
	case ch == '-' || isDigit(ch):
		return l.scanNumber()
	case isIdentStart(ch):
		return l.scanIdent()
	default:
		return token{}, &ParseError{Pos: start, Token: string(ch), Cause: "unexpected character"}
	}
}

// peek returns the next token without consuming it.
func (l *lexer) peek() (token, error) {
	save := l.pos
	tok, err := l.next()
	l.pos = save
	return tok, err
}

func (l *lexer) scanString() (token, error) {
	start := l.pos
	l.pos++ // opening quote
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case '\\':
			l.pos += 2
		case '"':
			l.pos++
			raw := l.input[start:l.pos]
			var decoded string
			if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
				return token{}, &ParseError{Pos: start, Token: raw, Cause: "malformed string literal"}
			}
			return token{kind: tokenString, text: raw, pos: start, str: decoded}, nil
		default:
			l.pos++
		}
	}
	return token{}, &ParseError{Pos: start, Token: l.input[start:], Cause: "unterminated string"}
}

func (l *lexer) scanNumber() (token, error) {
	start := l.pos
	if l.input[l.pos] == '-' {
		l.pos++
	}
	for l.pos < len(l.input) && (isDigit(l.input[l.pos]) || l.input[l.pos] == '.' || l.input[l.pos] == 'e' || l.input[l.pos] == 'E' || l.input[l.pos] == '+' || l.input[l.pos] == '-') {
		l.pos++
	}
	raw := l.input[start:l.pos]
	num, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return token{}, &ParseError{Pos: start, Token: raw, Cause: "malformed number literal"}
	}
	return token{kind: tokenNumber, text: raw, pos: start, num: num}, nil
}

func (l *lexer) scanIdent() (token, error) {
	start := l.pos
	for l.pos < len(l.input) && isIdentPart(l.input[l.pos]) {
		l.pos++
	}
	return token{kind: tokenIdent, text: l.input[start:l.pos], pos: start}, nil
}

// isKeyword reports whether the token matches the keyword, ignoring case.
func (t token) isKeyword(kw string) bool {
	return t.kind == tokenIdent && strings.EqualFold(t.text, kw)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '.'
}

// Identifier characters cover dotted sub-attributes, URN prefixes and
// extension attribute names.
func isIdentPart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || isDigit(ch) || ch == '_' || ch == '.' || ch == ':' || ch == '-' || ch == '$'
}
