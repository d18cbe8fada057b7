// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package scim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idrelay/idrelay/pkg/scim"
)

func projectable() scim.Document {
	return scim.Document{
		"schemas":     []interface{}{scim.SchemaUser},
		"id":          "user-1",
		"meta":        map[string]interface{}{"version": `W/"1"`},
		"userName":    "jdoe",
		"displayName": "John Doe",
		"emails":      []interface{}{map[string]interface{}{"value": "jdoe@example.com"}},
	}
}

func TestProjectNoSelection(t *testing.T) {
	doc := projectable()
	assert.Equal(t, doc, scim.Project(doc, nil, nil))
}

func TestProjectInclude(t *testing.T) {
	out := scim.Project(projectable(), []string{"userName"}, nil)

	assert.Contains(t, out, "userName")
	assert.NotContains(t, out, "displayName")
	assert.NotContains(t, out, "emails")
	// Always-returned attributes survive every projection.
	assert.Contains(t, out, "schemas")
	assert.Contains(t, out, "id")
	assert.Contains(t, out, "meta")
}

func TestProjectIncludeSubAttribute(t *testing.T) {
	out := scim.Project(projectable(), []string{"emails.value"}, nil)

	assert.Contains(t, out, "emails")
	assert.NotContains(t, out, "userName")
}

func TestProjectExclude(t *testing.T) {
	out := scim.Project(projectable(), nil, []string{"emails", "displayname"})

	assert.NotContains(t, out, "emails")
	assert.NotContains(t, out, "displayName")
	assert.Contains(t, out, "userName")
	assert.Contains(t, out, "id")
}

func TestProjectExcludeNeverStripsAlwaysReturned(t *testing.T) {
	out := scim.Project(projectable(), nil, []string{"id", "meta", "schemas"})

	assert.Contains(t, out, "id")
	assert.Contains(t, out, "meta")
	assert.Contains(t, out, "schemas")
}

func TestProjectIncludeWins(t *testing.T) {
	out := scim.Project(projectable(), []string{"userName"}, []string{"userName"})

	assert.Contains(t, out, "userName")
	assert.NotContains(t, out, "displayName")
}
