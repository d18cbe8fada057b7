// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package filter

import "strings"

// Matches evaluates the expression against a JSON-shaped document
// (the unmarshaled form: maps, slices, strings, float64 numbers, bools).
// Attribute names are matched case-insensitively, string values
// case-sensitively. Ordered comparisons on strings are lexical, which
// orders RFC 3339 timestamps correctly.
func Matches(expr Expr, doc map[string]interface{}) bool {
	switch e := expr.(type) {
	case Comparison:
		return anyValue(resolvePath(doc, e.Path.Segments), func(v interface{}) bool {
			return compare(e.Op, v, e.Value)
		})
	case Presence:
		return anyValue(resolvePath(doc, e.Path.Segments), present)
	case Logical:
		if e.Op == LogicalAnd {
			return Matches(e.Left, doc) && Matches(e.Right, doc)
		}
		return Matches(e.Left, doc) || Matches(e.Right, doc)
	case Not:
		return !Matches(e.Inner, doc)
	case ValuePath:
		return len(SelectElements(doc, e)) > 0
	default:
		return false
	}
}

// SelectElements returns the elements of the multi-valued attribute named
// by the value path that satisfy its predicate.
func SelectElements(doc map[string]interface{}, vp ValuePath) []map[string]interface{} {
	var out []map[string]interface{}
	for _, raw := range resolvePath(doc, vp.Path.Segments) {
		elems, ok := raw.([]interface{})
		if !ok {
			continue
		}
		for _, el := range elems {
			elem, ok := el.(map[string]interface{})
			if !ok {
				continue
			}
			if Matches(vp.Predicate, elem) {
				out = append(out, elem)
			}
		}
	}
	return out
}

// resolvePath walks the segments over the document. Multi-valued
// attributes fan out: each element contributes its own leaf value.
func resolvePath(doc interface{}, segments []string) []interface{} {
	current := []interface{}{doc}
	for _, seg := range segments {
		var next []interface{}
		for _, c := range current {
			switch v := c.(type) {
			case map[string]interface{}:
				if val, ok := lookup(v, seg); ok {
					next = append(next, val)
				}
			case []interface{}:
				for _, el := range v {
					if m, ok := el.(map[string]interface{}); ok {
						if val, ok := lookup(m, seg); ok {
							next = append(next, val)
						}
					}
				}
			}
		}
		current = next
	}
	return current
}

func lookup(m map[string]interface{}, key string) (interface{}, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

func anyValue(vals []interface{}, pred func(interface{}) bool) bool {
	for _, v := range vals {
		if slice, ok := v.([]interface{}); ok {
			for _, el := range slice {
				if pred(el) {
					return true
				}
			}
			continue
		}
		if pred(v) {
			return true
		}
	}
	return false
}

func present(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case map[string]interface{}:
		return len(val) > 0
	case []interface{}:
		return len(val) > 0
	default:
		return true
	}
}

func compare(op Operator, actual interface{}, lit Value) bool {
	if lit.Kind == NullValue {
		switch op {
		case OpEq:
			return actual == nil
		case OpNe:
			return actual != nil
		default:
			return false
		}
	}

	switch a := actual.(type) {
	case string:
		if lit.Kind != StringValue {
			return false
		}
		b := lit.Str
		switch op {
		case OpEq:
			return a == b
		case OpNe:
			return a != b
		case OpCo:
			return strings.Contains(a, b)
		case OpSw:
			return strings.HasPrefix(a, b)
		case OpEw:
			return strings.HasSuffix(a, b)
		case OpGt:
			return a > b
		case OpGe:
			return a >= b
		case OpLt:
			return a < b
		case OpLe:
			return a <= b
		}
	case float64:
		if lit.Kind != NumberValue {
			return false
		}
		b := lit.Num
		switch op {
		case OpEq:
			return a == b
		case OpNe:
			return a != b
		case OpGt:
			return a > b
		case OpGe:
			return a >= b
		case OpLt:
			return a < b
		case OpLe:
			return a <= b
		}
	case bool:
		if lit.Kind != BoolValue {
			return false
		}
		switch op {
		case OpEq:
			return a == lit.Bool
		case OpNe:
			return a != lit.Bool
		}
	}

	return false
}
