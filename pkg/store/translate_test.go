// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package store_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idrelay/idrelay/pkg/errors"
	svcerr "github.com/idrelay/idrelay/pkg/errors/service"
	"github.com/idrelay/idrelay/pkg/scim/filter"
	"github.com/idrelay/idrelay/pkg/store"
)

func translate(t *testing.T, input string) store.Predicate {
	t.Helper()

	expr, err := filter.Parse(input)
	require.Nil(t, err, fmt.Sprintf("unexpected parse error: %s", err))
	pred, err := store.Translate(expr)
	require.Nil(t, err, fmt.Sprintf("unexpected translate error: %s", err))
	return pred
}

func TestTranslateComparison(t *testing.T) {
	cases := []struct {
		desc  string
		input string
		pred  store.Predicate
	}{
		{
			desc:  "userName folds case",
			input: `userName eq "JDoe"`,
			pred:  store.Cond{Path: "userName", Op: store.CondEq, Value: "JDoe", FoldCase: true},
		},
		{
			desc:  "displayName is case-sensitive",
			input: `displayName co "Eng"`,
			pred:  store.Cond{Path: "displayName", Op: store.CondContains, Value: "Eng"},
		},
		{
			desc:  "active compares as bool",
			input: "active eq true",
			pred:  store.Cond{Path: "active", Op: store.CondEq, Value: true},
		},
		{
			desc:  "nested single-valued attribute",
			input: `name.familyName sw "Do"`,
			pred:  store.Cond{Path: "name.familyName", Op: store.CondHasPrefix, Value: "Do"},
		},
		{
			desc:  "attribute names match case-insensitively",
			input: `USERNAME eq "jdoe"`,
			pred:  store.Cond{Path: "userName", Op: store.CondEq, Value: "jdoe", FoldCase: true},
		},
		{
			desc:  "meta timestamp ordering",
			input: `meta.lastModified gt "2026-01-01T00:00:00Z"`,
			pred:  store.Cond{Path: "meta.lastModified", Op: store.CondGt, Value: "2026-01-01T00:00:00Z"},
		},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.pred, translate(t, tc.input), tc.desc)
	}
}

func TestTranslatePresence(t *testing.T) {
	pred := translate(t, "emails.value pr")
	assert.Equal(t, store.Any{
		Path: "emails",
		Pred: store.Cond{Path: "value", Op: store.CondDefined, FoldCase: true},
	}, pred)
}

func TestTranslateArrayAttribute(t *testing.T) {
	pred := translate(t, `emails.value co "@corp"`)
	assert.Equal(t, store.Any{
		Path: "emails",
		Pred: store.Cond{Path: "value", Op: store.CondContains, Value: "@corp", FoldCase: true},
	}, pred)
}

func TestTranslateLogical(t *testing.T) {
	pred := translate(t, `userName eq "jdoe" and active eq true`)
	assert.Equal(t, store.And{
		store.Cond{Path: "userName", Op: store.CondEq, Value: "jdoe", FoldCase: true},
		store.Cond{Path: "active", Op: store.CondEq, Value: true},
	}, pred)

	pred = translate(t, `not (active eq false)`)
	assert.Equal(t, store.Not{
		Inner: store.Cond{Path: "active", Op: store.CondEq, Value: false},
	}, pred)
}

func TestTranslateValuePath(t *testing.T) {
	pred := translate(t, `emails[type eq "work" and value co "@corp"]`)
	assert.Equal(t, store.Any{
		Path: "emails",
		Pred: store.And{
			store.Cond{Path: "type", Op: store.CondEq, Value: "work"},
			store.Cond{Path: "value", Op: store.CondContains, Value: "@corp"},
		},
	}, pred)
}

func TestTranslateValuePathSubAttribute(t *testing.T) {
	// The trailing sub-attribute narrows the match to elements that
	// carry it.
	pred := translate(t, `emails[type eq "work"].value`)
	assert.Equal(t, store.Any{
		Path: "emails",
		Pred: store.And{
			store.Cond{Path: "type", Op: store.CondEq, Value: "work"},
			store.Cond{Path: "value", Op: store.CondDefined},
		},
	}, pred)
}

func TestTranslateUnknownAttribute(t *testing.T) {
	cases := []struct {
		desc  string
		input string
	}{
		{desc: "unknown attribute", input: `favoriteColor eq "red"`},
		{desc: "value selector on unknown attribute", input: `pets[name eq "Rex"]`},
	}

	for _, tc := range cases {
		expr, err := filter.Parse(tc.input)
		require.Nil(t, err, fmt.Sprintf("%s: unexpected parse error: %s", tc.desc, err))
		_, err = store.Translate(expr)
		assert.True(t, errors.Contains(err, svcerr.ErrInvalidFilter), fmt.Sprintf("%s: expected invalid filter, got %v", tc.desc, err))
	}
}
