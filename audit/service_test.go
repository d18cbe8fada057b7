// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package audit_test

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/idrelay/idrelay/audit"
	"github.com/idrelay/idrelay/audit/mocks"
	"github.com/idrelay/idrelay/logger"
	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/pkg/uuid"
)

var session = authn.Session{TenantID: "tenant-1", ActorID: "actor-1", ActorType: authn.ActorUser}

func TestWriterPersistsSubmittedEntries(t *testing.T) {
	repo := new(mocks.Repository)
	slogger, err := logger.New(io.Discard, "debug")
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	var saved []audit.Entry
	var tenants []string
	repo.On("Save", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		tenants = append(tenants, args.Get(1).(string))
		saved = append(saved, args.Get(2).(audit.Entry))
	}).Return(nil)

	sink := audit.NewWriter(repo, uuid.NewMock(), slogger, 16)
	sink.Submit(audit.Entry{
		TenantID:  "tenant-1",
		ActorID:   "actor-1",
		Operation: "user.create",
		Outcome:   audit.OutcomeSuccess,
	})
	sink.Submit(audit.Entry{
		TenantID:  "tenant-2",
		ActorID:   "actor-2",
		Operation: "group.delete",
		Outcome:   audit.OutcomeFailure,
		Detail:    "entity not found",
	})
	sink.Close()

	require.Len(t, saved, 2)
	assert.Equal(t, []string{"tenant-1", "tenant-2"}, tenants)
	for _, entry := range saved {
		// The writer owns defaulting: ids, timestamps and retention.
		assert.NotEmpty(t, entry.ID)
		assert.False(t, entry.OccurredAt.IsZero())
		assert.Equal(t, audit.DefTTL, entry.TTL)
		assert.Empty(t, entry.TenantID)
	}
	assert.Equal(t, "user.create", saved[0].Operation)
	assert.Equal(t, "entity not found", saved[1].Detail)
}

func TestWriterCloseIsIdempotent(t *testing.T) {
	repo := new(mocks.Repository)
	slogger, err := logger.New(io.Discard, "debug")
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	sink := audit.NewWriter(repo, uuid.NewMock(), slogger, 1)
	sink.Close()
	sink.Close()
}

func TestListEntries(t *testing.T) {
	repo := new(mocks.Repository)
	svc := audit.NewService(repo)

	page := audit.Page{StartIndex: 1, Count: 10, Operation: "user.delete"}
	expected := audit.EntriesPage{
		Total:        1,
		StartIndex:   1,
		ItemsPerPage: 1,
		Entries:      []audit.Entry{{ID: "entry-1", Operation: "user.delete", Outcome: audit.OutcomeSuccess}},
	}
	call := repo.On("RetrieveAll", context.Background(), "tenant-1", page).Return(expected, nil)
	defer call.Unset()

	res, err := svc.ListEntries(context.Background(), session, page)
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, expected, res)
}

func TestListEntriesMissingTenant(t *testing.T) {
	repo := new(mocks.Repository)
	svc := audit.NewService(repo)

	_, err := svc.ListEntries(context.Background(), authn.Session{}, audit.Page{})
	assert.NotNil(t, err)
	repo.AssertNotCalled(t, "RetrieveAll", mock.Anything, mock.Anything, mock.Anything)
}

func TestListEntriesDefaultsStartIndex(t *testing.T) {
	repo := new(mocks.Repository)
	svc := audit.NewService(repo)

	expected := audit.Page{StartIndex: 1}
	call := repo.On("RetrieveAll", context.Background(), "tenant-1", expected).Return(audit.EntriesPage{}, nil)
	defer call.Unset()

	_, err := svc.ListEntries(context.Background(), session, audit.Page{StartIndex: 0})
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
}
