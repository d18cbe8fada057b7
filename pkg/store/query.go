// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package store

// CondOp enumerates the operations of the predicate language. It covers
// what every backend can express: equality, case-insensitive string
// comparison, substring, prefix, suffix, lexical/temporal ordering,
// presence, and array-any-match.
type CondOp string

const (
	CondEq        CondOp = "eq"
	CondNe        CondOp = "ne"
	CondContains  CondOp = "contains"
	CondHasPrefix CondOp = "hasPrefix"
	CondHasSuffix CondOp = "hasSuffix"
	CondGt        CondOp = "gt"
	CondGe        CondOp = "ge"
	CondLt        CondOp = "lt"
	CondLe        CondOp = "le"
	CondDefined   CondOp = "defined"
)

// Predicate is a node of the backend-neutral query tree.
type Predicate interface {
	isPredicate()
}

// Cond compares a document field against a literal. Path is the dotted
// store field path; FoldCase requests case-insensitive string comparison.
// Values are always carried as operands: backends bind them as
// parameters, never rendered into query text.
type Cond struct {
	Path     string
	Op       CondOp
	Value    interface{}
	FoldCase bool
}

// And is the conjunction of its children.
type And []Predicate

// Or is the disjunction of its children.
type Or []Predicate

// Not negates its inner predicate.
type Not struct {
	Inner Predicate
}

// Any matches documents where at least one element of the array at Path
// satisfies the element-scoped predicate.
type Any struct {
	Path string
	Pred Predicate
}

func (Cond) isPredicate() {}
func (And) isPredicate()  {}
func (Or) isPredicate()   {}
func (Not) isPredicate()  {}
func (Any) isPredicate()  {}
