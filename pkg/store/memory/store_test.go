// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package memory_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idrelay/idrelay/pkg/errors"
	repoerr "github.com/idrelay/idrelay/pkg/errors/repository"
	"github.com/idrelay/idrelay/pkg/scim"
	"github.com/idrelay/idrelay/pkg/store"
	"github.com/idrelay/idrelay/pkg/store/memory"
)

const tenantID = "tenant-1"

func userDoc(id, userName string, active bool) scim.Document {
	return scim.Document{
		"id":       id,
		"userName": userName,
		"active":   active,
		"meta": map[string]interface{}{
			"version": scim.FirstVersion(),
		},
	}
}

func seed(t *testing.T, ms store.Store, docs ...scim.Document) {
	t.Helper()

	for _, doc := range docs {
		err := ms.CreateItem(context.Background(), store.ContainerUsers, tenantID, doc)
		require.Nil(t, err, fmt.Sprintf("unexpected seed error: %s", err))
	}
}

func TestCreateItem(t *testing.T) {
	ms := memory.New()

	cases := []struct {
		desc   string
		tenant string
		doc    scim.Document
		err    error
	}{
		{
			desc:   "create successfully",
			tenant: tenantID,
			doc:    userDoc("user-1", "jdoe", true),
			err:    nil,
		},
		{
			desc:   "duplicate id",
			tenant: tenantID,
			doc:    userDoc("user-1", "other", true),
			err:    repoerr.ErrConflict,
		},
		{
			desc:   "duplicate natural key",
			tenant: tenantID,
			doc:    userDoc("user-2", "jdoe", true),
			err:    repoerr.ErrConflict,
		},
		{
			desc:   "same natural key in another tenant",
			tenant: "tenant-2",
			doc:    userDoc("user-1", "jdoe", true),
			err:    nil,
		},
		{
			desc:   "missing partition key",
			tenant: "",
			doc:    userDoc("user-3", "nobody", true),
			err:    repoerr.ErrMissingPartitionKey,
		},
		{
			desc:   "missing id",
			tenant: tenantID,
			doc:    scim.Document{"userName": "anon"},
			err:    repoerr.ErrMalformedEntity,
		},
	}

	for _, tc := range cases {
		err := ms.CreateItem(context.Background(), store.ContainerUsers, tc.tenant, tc.doc)
		assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected %v got %v", tc.desc, tc.err, err))
	}
}

func TestReadItemIsolation(t *testing.T) {
	ms := memory.New()
	seed(t, ms, userDoc("user-1", "jdoe", true))

	doc, err := ms.ReadItem(context.Background(), store.ContainerUsers, tenantID, "user-1")
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	// Mutating the returned copy must not leak into the store.
	doc["userName"] = "tampered"
	stored, err := ms.ReadItem(context.Background(), store.ContainerUsers, tenantID, "user-1")
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, "jdoe", stored["userName"])

	_, err = ms.ReadItem(context.Background(), store.ContainerUsers, "tenant-2", "user-1")
	assert.True(t, errors.Contains(err, repoerr.ErrNotFound), fmt.Sprintf("expected cross-tenant miss, got %v", err))
}

func TestUpsertItem(t *testing.T) {
	ms := memory.New()
	seed(t, ms, userDoc("user-1", "jdoe", true), userDoc("user-2", "asmith", true))

	cases := []struct {
		desc    string
		doc     scim.Document
		ifMatch string
		err     error
	}{
		{
			desc:    "matching precondition",
			doc:     userDoc("user-1", "jdoe", false),
			ifMatch: scim.FirstVersion(),
			err:     nil,
		},
		{
			desc:    "no precondition",
			doc:     userDoc("user-1", "jdoe", true),
			ifMatch: "",
			err:     nil,
		},
		{
			desc:    "stale precondition",
			doc:     userDoc("user-1", "jdoe", false),
			ifMatch: `W/"9"`,
			err:     repoerr.ErrVersionConflict,
		},
		{
			desc:    "natural key collision",
			doc:     userDoc("user-1", "asmith", true),
			ifMatch: "",
			err:     repoerr.ErrConflict,
		},
		{
			desc:    "unknown id",
			doc:     userDoc("user-9", "ghost", true),
			ifMatch: "",
			err:     repoerr.ErrNotFound,
		},
	}

	for _, tc := range cases {
		err := ms.UpsertItem(context.Background(), store.ContainerUsers, tenantID, tc.doc, tc.ifMatch)
		assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected %v got %v", tc.desc, tc.err, err))
	}
}

func TestDeleteItem(t *testing.T) {
	ms := memory.New()
	seed(t, ms, userDoc("user-1", "jdoe", true))

	err := ms.DeleteItem(context.Background(), store.ContainerUsers, tenantID, "user-1", `W/"9"`)
	assert.True(t, errors.Contains(err, repoerr.ErrVersionConflict), fmt.Sprintf("expected version conflict, got %v", err))

	err = ms.DeleteItem(context.Background(), store.ContainerUsers, tenantID, "user-1", scim.FirstVersion())
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	err = ms.DeleteItem(context.Background(), store.ContainerUsers, tenantID, "user-1", "")
	assert.True(t, errors.Contains(err, repoerr.ErrNotFound), fmt.Sprintf("expected not found, got %v", err))
}

func TestQueryItems(t *testing.T) {
	ms := memory.New()
	seed(t, ms,
		userDoc("user-1", "adama", true),
		userDoc("user-2", "baltar", false),
		userDoc("user-3", "cottle", true),
	)
	work := userDoc("user-4", "dualla", true)
	work["emails"] = []interface{}{
		map[string]interface{}{"value": "dualla@corp.example", "type": "work"},
	}
	seed(t, ms, work)

	cases := []struct {
		desc string
		pred store.Predicate
		ids  []string
	}{
		{
			desc: "no predicate matches everything",
			pred: nil,
			ids:  []string{"user-1", "user-2", "user-3", "user-4"},
		},
		{
			desc: "bool equality",
			pred: store.Cond{Path: "active", Op: store.CondEq, Value: true},
			ids:  []string{"user-1", "user-3", "user-4"},
		},
		{
			desc: "case-folded string equality",
			pred: store.Cond{Path: "userName", Op: store.CondEq, Value: "BALTAR", FoldCase: true},
			ids:  []string{"user-2"},
		},
		{
			desc: "array any-match with conjunction",
			pred: store.Any{Path: "emails", Pred: store.And{
				store.Cond{Path: "type", Op: store.CondEq, Value: "work"},
				store.Cond{Path: "value", Op: store.CondDefined},
			}},
			ids: []string{"user-4"},
		},
		{
			desc: "negation",
			pred: store.Not{Inner: store.Cond{Path: "active", Op: store.CondEq, Value: true}},
			ids:  []string{"user-2"},
		},
	}

	for _, tc := range cases {
		page, err := ms.QueryItems(context.Background(), store.ContainerUsers, tenantID, tc.pred, store.Page{SortBy: "id"})
		require.Nil(t, err, fmt.Sprintf("%s: unexpected error: %s", tc.desc, err))

		var ids []string
		for _, doc := range page.Items {
			ids = append(ids, store.DocumentID(doc))
		}
		assert.Equal(t, tc.ids, ids, tc.desc)
		assert.Equal(t, uint64(len(tc.ids)), page.Total, tc.desc)
	}
}

func TestQueryItemsPaging(t *testing.T) {
	ms := memory.New()
	seed(t, ms,
		userDoc("user-1", "adama", true),
		userDoc("user-2", "baltar", true),
		userDoc("user-3", "cottle", true),
	)

	page, err := ms.QueryItems(context.Background(), store.ContainerUsers, tenantID, nil, store.Page{StartIndex: 2, Count: 1, SortBy: "userName"})
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	require.Len(t, page.Items, 1)
	assert.Equal(t, "baltar", page.Items[0]["userName"])
	assert.Equal(t, uint64(3), page.Total)
	assert.Equal(t, 2, page.StartIndex)

	page, err = ms.QueryItems(context.Background(), store.ContainerUsers, tenantID, nil, store.Page{StartIndex: 1, Count: 2, SortBy: "userName", Descending: true})
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	require.Len(t, page.Items, 2)
	assert.Equal(t, "cottle", page.Items[0]["userName"])
}
