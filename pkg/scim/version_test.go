// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package scim_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idrelay/idrelay/pkg/scim"
)

func TestNextVersion(t *testing.T) {
	cases := []struct {
		desc    string
		current string
		next    string
	}{
		{desc: "first successor", current: scim.FirstVersion(), next: `W/"2"`},
		{desc: "later successor", current: `W/"41"`, next: `W/"42"`},
		{desc: "bare counter", current: `"7"`, next: `W/"8"`},
		{desc: "unparsable token restarts", current: "garbage", next: scim.FirstVersion()},
		{desc: "empty token restarts", current: "", next: scim.FirstVersion()},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.next, scim.NextVersion(tc.current), tc.desc)
	}
}

func TestVersionMatches(t *testing.T) {
	cases := []struct {
		desc    string
		ifMatch string
		stored  string
		matches bool
	}{
		{desc: "exact weak match", ifMatch: `W/"3"`, stored: `W/"3"`, matches: true},
		{desc: "strong candidate against weak stored", ifMatch: `"3"`, stored: `W/"3"`, matches: true},
		{desc: "wildcard", ifMatch: "*", stored: `W/"3"`, matches: true},
		{desc: "wildcard against missing version", ifMatch: "*", stored: "", matches: false},
		{desc: "candidate list", ifMatch: `W/"1", W/"3"`, stored: `W/"3"`, matches: true},
		{desc: "stale", ifMatch: `W/"2"`, stored: `W/"3"`, matches: false},
	}

	for _, tc := range cases {
		got := scim.VersionMatches(tc.ifMatch, tc.stored)
		assert.Equal(t, tc.matches, got, fmt.Sprintf("%s: expected %t got %t", tc.desc, tc.matches, got))
	}
}
