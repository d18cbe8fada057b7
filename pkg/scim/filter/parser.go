// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package filter

import "strings"

// Parse parses a SCIM filter expression into its tree form.
func Parse(input string) (Expr, error) {
	p := &parser{lex: newLexer(input)}
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	tok, err := p.lex.next()
	if err != nil {
		return nil, err
	}
	if tok.kind != tokenEOF {
		return nil, &ParseError{Pos: tok.pos, Token: tok.text, Cause: "unexpected trailing input"}
	}
	return expr, nil
}

// ParseValueFilter parses the restricted expression form allowed inside
// PATCH path selectors: a full filter expression with logical or rejected.
func ParseValueFilter(input string) (Expr, error) {
	expr, err := Parse(input)
	if err != nil {
		return nil, err
	}
	if containsOr(expr) {
		return nil, &ParseError{Pos: 0, Token: "or", Cause: "logical or is not allowed in a value selector"}
	}
	return expr, nil
}

func containsOr(expr Expr) bool {
	switch e := expr.(type) {
	case Logical:
		if e.Op == LogicalOr {
			return true
		}
		return containsOr(e.Left) || containsOr(e.Right)
	case Not:
		return containsOr(e.Inner)
	case ValuePath:
		return containsOr(e.Predicate)
	default:
		return false
	}
}

type parser struct {
	lex *lexer
}

func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for {
		tok, err := p.lex.peek()
		if err != nil {
			return nil, err
		}
		if !tok.isKeyword("or") {
			return left, nil
		}
		if _, err := p.lex.next(); err != nil {
			return nil, err
		}

		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = Logical{Op: LogicalOr, Left: left, Right: right}
	}
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		tok, err := p.lex.peek()
		if err != nil {
			return nil, err
		}
		if !tok.isKeyword("and") {
			return left, nil
		}
		if _, err := p.lex.next(); err != nil {
			return nil, err
		}

		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = Logical{Op: LogicalAnd, Left: left, Right: right}
	}
}

func (p *parser) parseUnary() (Expr, error) {
	tok, err := p.lex.peek()
	if err != nil {
		return nil, err
	}
	if tok.isKeyword("not") {
		if _, err := p.lex.next(); err != nil {
			return nil, err
		}
		inner, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return Not{Inner: inner}, nil
	}

	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expr, error) {
	tok, err := p.lex.next()
	if err != nil {
		return nil, err
	}

	switch tok.kind {
	case tokenLParen:
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		closing, err := p.lex.next()
		if err != nil {
			return nil, err
		}
		if closing.kind != tokenRParen {
			return nil, &ParseError{Pos: closing.pos, Token: closing.text, Cause: "expected closing parenthesis"}
		}
		return expr, nil
	case tokenIdent:
		return p.parseAttrExpr(tok)
	case tokenEOF:
		return nil, &ParseError{Pos: tok.pos, Cause: "unexpected end of filter"}
	default:
		return nil, &ParseError{Pos: tok.pos, Token: tok.text, Cause: "expected attribute expression"}
	}
}

func (p *parser) parseAttrExpr(ident token) (Expr, error) {
	path, err := parsePath(ident)
	if err != nil {
		return nil, err
	}

	tok, err := p.lex.peek()
	if err != nil {
		return nil, err
	}
	if tok.kind == tokenLBracket {
		return p.parseValuePath(path, tok)
	}

	opTok, err := p.lex.next()
	if err != nil {
		return nil, err
	}
	if opTok.kind != tokenIdent {
		return nil, &ParseError{Pos: opTok.pos, Token: opTok.text, Cause: "expected comparison operator"}
	}

	op, ok := lookupOperator(opTok.text)
	if !ok {
		return nil, &ParseError{Pos: opTok.pos, Token: opTok.text, Cause: "unknown operator"}
	}

	if op == OpPr {
		next, err := p.lex.peek()
		if err != nil {
			return nil, err
		}
		if isLiteral(next) {
			return nil, &ParseError{Pos: next.pos, Token: next.text, Cause: "presence operator takes no value"}
		}
		return Presence{Path: path}, nil
	}

	val, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	return Comparison{Path: path, Op: op, Value: val}, nil
}

func (p *parser) parseValuePath(path Path, open token) (Expr, error) {
	if _, err := p.lex.next(); err != nil { // consume '['
		return nil, err
	}

	closing, err := p.lex.peek()
	if err != nil {
		return nil, err
	}
	if closing.kind == tokenRBracket {
		return nil, &ParseError{Pos: closing.pos, Token: "]", Cause: "empty value selector"}
	}

	pred, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	closing, err = p.lex.next()
	if err != nil {
		return nil, err
	}
	if closing.kind != tokenRBracket {
		return nil, &ParseError{Pos: closing.pos, Token: closing.text, Cause: "expected closing bracket"}
	}

	vp := ValuePath{Path: path, Predicate: pred}

	// An identifier immediately after the selector carries the
	// sub-attribute, lexed with its leading dot.
	next, err := p.lex.peek()
	if err != nil {
		return nil, err
	}
	if next.kind == tokenIdent && strings.HasPrefix(next.text, ".") {
		if _, err := p.lex.next(); err != nil {
			return nil, err
		}
		sub := strings.TrimPrefix(next.text, ".")
		if sub == "" {
			return nil, &ParseError{Pos: next.pos, Token: next.text, Cause: "missing sub-attribute"}
		}
		vp.Sub = sub
	}

	return vp, nil
}

func (p *parser) parseValue() (Value, error) {
	tok, err := p.lex.next()
	if err != nil {
		return Value{}, err
	}

	switch {
	case tok.kind == tokenString:
		return Value{Kind: StringValue, Str: tok.str}, nil
	case tok.kind == tokenNumber:
		return Value{Kind: NumberValue, Num: tok.num}, nil
	case tok.isKeyword("true"):
		return Value{Kind: BoolValue, Bool: true}, nil
	case tok.isKeyword("false"):
		return Value{Kind: BoolValue, Bool: false}, nil
	case tok.isKeyword("null"):
		return Value{Kind: NullValue}, nil
	case tok.kind == tokenEOF:
		return Value{}, &ParseError{Pos: tok.pos, Cause: "expected comparison value"}
	default:
		return Value{}, &ParseError{Pos: tok.pos, Token: tok.text, Cause: "expected comparison value"}
	}
}

func parsePath(tok token) (Path, error) {
	text := strings.TrimPrefix(tok.text, ".")
	var urn string
	if idx := strings.LastIndex(text, ":"); idx >= 0 {
		urn, text = text[:idx], text[idx+1:]
	}

	if text == "" {
		return Path{}, &ParseError{Pos: tok.pos, Token: tok.text, Cause: "missing attribute name"}
	}

	segments := strings.Split(text, ".")
	for _, seg := range segments {
		if seg == "" {
			return Path{}, &ParseError{Pos: tok.pos, Token: tok.text, Cause: "malformed attribute path"}
		}
	}

	return Path{URN: urn, Segments: segments}, nil
}

func lookupOperator(text string) (Operator, bool) {
	switch Operator(strings.ToLower(text)) {
	case OpEq, OpNe, OpCo, OpSw, OpEw, OpGt, OpGe, OpLt, OpLe, OpPr:
		return Operator(strings.ToLower(text)), true
	default:
		return "", false
	}
}

func isLiteral(tok token) bool {
	switch {
	case tok.kind == tokenString, tok.kind == tokenNumber:
		return true
	case tok.isKeyword("true"), tok.isKeyword("false"), tok.isKeyword("null"):
		return true
	default:
		return false
	}
}
