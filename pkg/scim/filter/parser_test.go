// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package filter_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idrelay/idrelay/pkg/scim/filter"
)

func TestParseComparison(t *testing.T) {
	expr, err := filter.Parse(`userName eq "jdoe"`)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	cmp, ok := expr.(filter.Comparison)
	require.True(t, ok, "expected a comparison")
	assert.Equal(t, "userName", cmp.Path.String())
	assert.Equal(t, filter.OpEq, cmp.Op)
	assert.Equal(t, "jdoe", cmp.Value.Str)
}

func TestParsePrecedence(t *testing.T) {
	// or binds loosest: (a and b) or c.
	expr, err := filter.Parse(`userName sw "j" and active eq true or userName eq "root"`)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	or, ok := expr.(filter.Logical)
	require.True(t, ok, "expected a logical node")
	assert.Equal(t, filter.LogicalOr, or.Op)

	and, ok := or.Left.(filter.Logical)
	require.True(t, ok, "expected and on the left")
	assert.Equal(t, filter.LogicalAnd, and.Op)
}

func TestParseNot(t *testing.T) {
	expr, err := filter.Parse(`not (active eq true)`)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	not, ok := expr.(filter.Not)
	require.True(t, ok, "expected a negation")
	_, ok = not.Inner.(filter.Comparison)
	assert.True(t, ok, "expected a comparison inside the negation")
}

func TestParseGroupingOverridesPrecedence(t *testing.T) {
	expr, err := filter.Parse(`userName sw "j" and (active eq true or active eq false)`)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	and, ok := expr.(filter.Logical)
	require.True(t, ok, "expected a logical node")
	assert.Equal(t, filter.LogicalAnd, and.Op)

	or, ok := and.Right.(filter.Logical)
	require.True(t, ok, "expected or on the right")
	assert.Equal(t, filter.LogicalOr, or.Op)
}

func TestParsePresence(t *testing.T) {
	expr, err := filter.Parse(`emails pr`)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	pr, ok := expr.(filter.Presence)
	require.True(t, ok, "expected a presence node")
	assert.Equal(t, "emails", pr.Path.String())
}

func TestParseValuePath(t *testing.T) {
	expr, err := filter.Parse(`emails[type eq "work" and value co "@corp"]`)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	vp, ok := expr.(filter.ValuePath)
	require.True(t, ok, "expected a value path")
	assert.Equal(t, "emails", vp.Path.String())
	assert.Empty(t, vp.Sub)

	and, ok := vp.Predicate.(filter.Logical)
	require.True(t, ok, "expected a logical selector")
	assert.Equal(t, filter.LogicalAnd, and.Op)
}

func TestParseValuePathSubAttribute(t *testing.T) {
	expr, err := filter.Parse(`emails[type eq "work"].value`)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	vp, ok := expr.(filter.ValuePath)
	require.True(t, ok, "expected a value path")
	assert.Equal(t, "emails", vp.Path.String())
	assert.Equal(t, "value", vp.Sub)
}

func TestParseURNPrefixedPath(t *testing.T) {
	expr, err := filter.Parse(`urn:ietf:params:scim:schemas:core:2.0:User:userName eq "jdoe"`)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	cmp, ok := expr.(filter.Comparison)
	require.True(t, ok, "expected a comparison")
	assert.Equal(t, "urn:ietf:params:scim:schemas:core:2.0:User", cmp.Path.URN)
	assert.Equal(t, "userName", cmp.Path.String())
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		desc  string
		input string
	}{
		{desc: "empty input", input: ""},
		{desc: "missing value", input: "userName eq"},
		{desc: "unknown operator", input: `userName resembles "jdoe"`},
		{desc: "presence with value", input: `userName pr "jdoe"`},
		{desc: "unbalanced parenthesis", input: `(userName eq "jdoe"`},
		{desc: "empty value selector", input: "emails[]"},
		{desc: "trailing input", input: `userName eq "jdoe" extra`},
	}

	for _, tc := range cases {
		_, err := filter.Parse(tc.input)
		assert.Error(t, err, tc.desc)

		var perr *filter.ParseError
		assert.ErrorAs(t, err, &perr, tc.desc)
	}
}

func TestParseValueFilterRejectsOr(t *testing.T) {
	_, err := filter.ParseValueFilter(`type eq "work" or type eq "home"`)
	assert.Error(t, err, "expected or rejection inside a value selector")

	expr, err := filter.ParseValueFilter(`type eq "work" and primary eq true`)
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.NotNil(t, expr)
}

func TestMatches(t *testing.T) {
	doc := map[string]interface{}{
		"type":    "work",
		"value":   "jdoe@corp.example",
		"primary": true,
	}

	cases := []struct {
		desc    string
		input   string
		matches bool
	}{
		{desc: "equality hit", input: `type eq "work"`, matches: true},
		{desc: "equality miss", input: `type eq "home"`, matches: false},
		{desc: "substring", input: `value co "@corp"`, matches: true},
		{desc: "bool literal", input: `primary eq true`, matches: true},
		{desc: "conjunction", input: `type eq "work" and primary eq false`, matches: false},
	}

	for _, tc := range cases {
		expr, err := filter.Parse(tc.input)
		require.Nil(t, err, fmt.Sprintf("%s: unexpected error: %s", tc.desc, err))
		got := filter.Matches(expr, doc)
		assert.Equal(t, tc.matches, got, fmt.Sprintf("%s: expected %t got %t", tc.desc, tc.matches, got))
	}
}
