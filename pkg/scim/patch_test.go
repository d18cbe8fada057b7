// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package scim_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idrelay/idrelay/pkg/errors"
	"github.com/idrelay/idrelay/pkg/scim"
)

func patchDoc() scim.Document {
	return scim.Document{
		"id":       "user-1",
		"userName": "jdoe",
		"name": map[string]interface{}{
			"givenName":  "John",
			"familyName": "Doe",
		},
		"emails": []interface{}{
			map[string]interface{}{"value": "jdoe@example.com", "type": "work"},
			map[string]interface{}{"value": "john@home.example", "type": "home"},
		},
	}
}

func patchValue(t *testing.T, raw string) scim.PatchValue {
	t.Helper()

	val, err := scim.ParsePatchValue(json.RawMessage(raw))
	require.Nil(t, err, fmt.Sprintf("unexpected value parse error: %s", err))
	return val
}

func TestApplyPatchAdd(t *testing.T) {
	doc := patchDoc()

	ops := []scim.PatchOperation{
		{Op: scim.PatchAdd, Path: "displayName", Value: patchValue(t, `"John Doe"`)},
		{Op: scim.PatchAdd, Path: "emails", Value: patchValue(t, `[{"value": "j@corp.example", "type": "other"}]`)},
	}

	err := scim.ApplyPatch(doc, ops)
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, "John Doe", doc["displayName"])
	assert.Len(t, doc["emails"], 3)
}

func TestApplyPatchAddIsIdempotent(t *testing.T) {
	doc := patchDoc()

	op := scim.PatchOperation{
		Op:    scim.PatchAdd,
		Path:  "emails",
		Value: patchValue(t, `[{"value": "jdoe@example.com", "type": "work"}]`),
	}

	// The element already exists, keyed on its value field.
	err := scim.ApplyPatch(doc, []scim.PatchOperation{op, op})
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Len(t, doc["emails"], 2)
}

func TestApplyPatchAddPathless(t *testing.T) {
	doc := patchDoc()

	ops := []scim.PatchOperation{
		{Op: scim.PatchAdd, Value: patchValue(t, `{"title": "Engineer", "nickName": "JD"}`)},
	}

	err := scim.ApplyPatch(doc, ops)
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, "Engineer", doc["title"])
	assert.Equal(t, "JD", doc["nickName"])
}

func TestApplyPatchReplace(t *testing.T) {
	doc := patchDoc()

	ops := []scim.PatchOperation{
		{Op: scim.PatchReplace, Path: "name.givenName", Value: patchValue(t, `"Jane"`)},
		{Op: scim.PatchReplace, Path: `emails[type eq "work"].value`, Value: patchValue(t, `"jane@example.com"`)},
	}

	err := scim.ApplyPatch(doc, ops)
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	name := doc["name"].(map[string]interface{})
	assert.Equal(t, "Jane", name["givenName"])

	emails := doc["emails"].([]interface{})
	work := emails[0].(map[string]interface{})
	assert.Equal(t, "jane@example.com", work["value"])
	home := emails[1].(map[string]interface{})
	assert.Equal(t, "john@home.example", home["value"])
}

func TestApplyPatchReplaceUnmatchedSelector(t *testing.T) {
	doc := patchDoc()

	ops := []scim.PatchOperation{
		{Op: scim.PatchReplace, Path: `emails[type eq "mobile"].value`, Value: patchValue(t, `"x@example.com"`)},
	}

	err := scim.ApplyPatch(doc, ops)
	assert.True(t, errors.Contains(err, scim.ErrNoTarget), fmt.Sprintf("expected no target, got %v", err))
}

func TestApplyPatchAddUnmatchedSelectorUpserts(t *testing.T) {
	doc := patchDoc()

	ops := []scim.PatchOperation{
		{Op: scim.PatchAdd, Path: `emails[type eq "mobile"]`, Value: patchValue(t, `{"value": "m@example.com", "type": "mobile"}`)},
	}

	err := scim.ApplyPatch(doc, ops)
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Len(t, doc["emails"], 3)
}

func TestApplyPatchRemove(t *testing.T) {
	doc := patchDoc()

	ops := []scim.PatchOperation{
		{Op: scim.PatchRemove, Path: `emails[type eq "home"]`},
		{Op: scim.PatchRemove, Path: "name.familyName"},
	}

	err := scim.ApplyPatch(doc, ops)
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	emails := doc["emails"].([]interface{})
	assert.Len(t, emails, 1)
	name := doc["name"].(map[string]interface{})
	assert.NotContains(t, name, "familyName")
}

func TestApplyPatchRemoveLastElementClearsAttribute(t *testing.T) {
	doc := patchDoc()

	ops := []scim.PatchOperation{
		{Op: scim.PatchRemove, Path: `emails[value pr]`},
	}

	err := scim.ApplyPatch(doc, ops)
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.NotContains(t, doc, "emails")
}

func TestApplyPatchReadOnlyPaths(t *testing.T) {
	cases := []struct {
		desc string
		path string
	}{
		{desc: "resource id", path: "id"},
		{desc: "resource meta", path: "meta.version"},
		{desc: "computed groups", path: "groups"},
	}

	for _, tc := range cases {
		doc := patchDoc()
		ops := []scim.PatchOperation{
			{Op: scim.PatchReplace, Path: tc.path, Value: patchValue(t, `"x"`)},
		}
		err := scim.ApplyPatch(doc, ops)
		assert.True(t, errors.Contains(err, scim.ErrReadOnlyPath), fmt.Sprintf("%s: expected read-only rejection, got %v", tc.desc, err))
	}
}

func TestApplyPatchUnknownOp(t *testing.T) {
	doc := patchDoc()

	err := scim.ApplyPatch(doc, []scim.PatchOperation{{Op: "merge", Path: "userName"}})
	assert.True(t, errors.Contains(err, scim.ErrPatchValue), fmt.Sprintf("expected malformed value, got %v", err))
}

func TestApplyPatchMalformedPath(t *testing.T) {
	doc := patchDoc()

	err := scim.ApplyPatch(doc, []scim.PatchOperation{{Op: scim.PatchRemove, Path: "emails[type eq"}})
	assert.True(t, errors.Contains(err, scim.ErrPatchPath), fmt.Sprintf("expected unresolvable path, got %v", err))
}
