// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

// Package filter implements the SCIM filter grammar of RFC 7644 §3.4.2.2:
// a hand-rolled tokenizer and precedence-climbing parser producing an
// expression tree, plus an in-memory evaluator over JSON-shaped documents.
// Keywords are matched case-insensitively, string values are case-sensitive.
package filter

import (
	"fmt"
	"strings"
)

// Comparison operators of the grammar.
type Operator string

const (
	OpEq Operator = "eq"
	OpNe Operator = "ne"
	OpCo Operator = "co"
	OpSw Operator = "sw"
	OpEw Operator = "ew"
	OpGt Operator = "gt"
	OpGe Operator = "ge"
	OpLt Operator = "lt"
	OpLe Operator = "le"
	OpPr Operator = "pr"
)

// Logical operators.
type LogicalOp string

const (
	LogicalAnd LogicalOp = "and"
	LogicalOr  LogicalOp = "or"
)

// Path is a dotted attribute path with an optional schema URN prefix,
// e.g. urn:ietf:params:scim:schemas:core:2.0:User:name.familyName.
type Path struct {
	URN      string
	Segments []string
}

// String renders the path without the URN prefix.
func (p Path) String() string {
	return strings.Join(p.Segments, ".")
}

// Kinds of literal values accepted by the grammar.
type ValueKind uint8

const (
	StringValue ValueKind = iota
	NumberValue
	BoolValue
	NullValue
)

// Value is a literal comparison operand.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Bool bool
}

// Interface returns the literal as a plain Go value.
func (v Value) Interface() interface{} {
	switch v.Kind {
	case StringValue:
		return v.Str
	case NumberValue:
		return v.Num
	case BoolValue:
		return v.Bool
	default:
		return nil
	}
}

// String renders the literal the way it appeared in the filter.
func (v Value) String() string {
	switch v.Kind {
	case StringValue:
		return fmt.Sprintf("%q", v.Str)
	case NumberValue:
		return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%f", v.Num), "0"), ".")
	case BoolValue:
		return fmt.Sprintf("%t", v.Bool)
	default:
		return "null"
	}
}

// Expr is a node of the parsed filter tree.
type Expr interface {
	String() string
	isExpr()
}

// Comparison is an attribute-operator-value predicate.
type Comparison struct {
	Path  Path
	Op    Operator
	Value Value
}

// Presence is an attribute pr predicate.
type Presence struct {
	Path Path
}

// Logical joins two sub-expressions with and/or.
type Logical struct {
	Op    LogicalOp
	Left  Expr
	Right Expr
}

// Not negates its inner expression.
type Not struct {
	Inner Expr
}

// ValuePath filters a multi-valued attribute with a bracketed
// sub-expression, optionally followed by a sub-attribute:
// emails[type eq "work"].value.
type ValuePath struct {
	Path      Path
	Predicate Expr
	Sub       string
}

func (Comparison) isExpr() {}
func (Presence) isExpr()   {}
func (Logical) isExpr()    {}
func (Not) isExpr()        {}
func (ValuePath) isExpr()  {}

func (c Comparison) String() string {
	return fmt.Sprintf("%s %s %s", c.Path, c.Op, c.Value)
}

func (p Presence) String() string {
	return fmt.Sprintf("%s pr", p.Path)
}

func (l Logical) String() string {
	return fmt.Sprintf("(%s %s %s)", l.Left, l.Op, l.Right)
}

func (n Not) String() string {
	return fmt.Sprintf("not (%s)", n.Inner)
}

func (v ValuePath) String() string {
	if v.Sub != "" {
		return fmt.Sprintf("%s[%s].%s", v.Path, v.Predicate, v.Sub)
	}
	return fmt.Sprintf("%s[%s]", v.Path, v.Predicate)
}

// ParseError reports the position and offending token of a malformed
// filter. Positions are zero-based byte offsets into the filter text.
type ParseError struct {
	Pos   int
	Token string
	Cause string
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("%s at position %d", e.Cause, e.Pos)
	}
	return fmt.Sprintf("%s at position %d near %q", e.Cause, e.Pos, e.Token)
}
