// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package users_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idrelay/idrelay/pkg/errors"
	repoerr "github.com/idrelay/idrelay/pkg/errors/repository"
	svcerr "github.com/idrelay/idrelay/pkg/errors/service"
	"github.com/idrelay/idrelay/pkg/scim"
	"github.com/idrelay/idrelay/pkg/store/memory"
	"github.com/idrelay/idrelay/users"
)

func storedUser(id, userName string, active bool) scim.User {
	return scim.User{
		ID:       id,
		Schemas:  []string{scim.SchemaUser},
		UserName: userName,
		Active:   &active,
		Meta: &scim.Meta{
			ResourceType: scim.ResourceTypeUser,
			Version:      scim.FirstVersion(),
		},
	}
}

func seedUsers(t *testing.T, repo users.Repository, list ...scim.User) {
	t.Helper()

	for _, user := range list {
		_, err := repo.Save(context.Background(), "tenant-1", user)
		require.Nil(t, err, fmt.Sprintf("unexpected seed error: %s", err))
	}
}

func TestRepositorySaveUniqueness(t *testing.T) {
	repo := users.NewRepository(memory.New())
	seedUsers(t, repo, storedUser("user-1", "jdoe", true))

	_, err := repo.Save(context.Background(), "tenant-1", storedUser("user-2", "jdoe", true))
	assert.True(t, errors.Contains(err, svcerr.ErrUniqueness), fmt.Sprintf("expected uniqueness violation, got %v", err))

	// The same userName in another tenant is a distinct resource.
	_, err = repo.Save(context.Background(), "tenant-2", storedUser("user-2", "jdoe", true))
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
}

func TestRepositoryRetrieveByUserName(t *testing.T) {
	repo := users.NewRepository(memory.New())
	seedUsers(t, repo,
		storedUser("user-1", "jdoe", true),
		storedUser("user-2", "asmith", true),
	)

	user, err := repo.RetrieveByUserName(context.Background(), "tenant-1", "jdoe")
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "tenant-1", user.TenantID)

	// The natural key lookup is exact, not case-folded.
	_, err = repo.RetrieveByUserName(context.Background(), "tenant-1", "JDoe")
	assert.True(t, errors.Contains(err, repoerr.ErrNotFound), fmt.Sprintf("expected not found, got %v", err))

	_, err = repo.RetrieveByUserName(context.Background(), "tenant-2", "jdoe")
	assert.True(t, errors.Contains(err, repoerr.ErrNotFound), fmt.Sprintf("expected cross-tenant miss, got %v", err))
}

func TestRepositoryRetrieveAllActiveFilter(t *testing.T) {
	repo := users.NewRepository(memory.New())
	seedUsers(t, repo,
		storedUser("user-1", "adama", true),
		storedUser("user-2", "baltar", false),
		storedUser("user-3", "cottle", true),
	)

	page, err := repo.RetrieveAll(context.Background(), "tenant-1", users.Page{
		StartIndex: 1,
		Filter:     "active eq true",
		SortBy:     "userName",
	})
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	assert.Equal(t, uint64(2), page.Total)
	require.Len(t, page.Users, 2)
	assert.Equal(t, "adama", page.Users[0].UserName)
	assert.Equal(t, "cottle", page.Users[1].UserName)
}

func TestRepositoryRetrieveAllValuePathFilter(t *testing.T) {
	repo := users.NewRepository(memory.New())

	withEmail := storedUser("user-1", "jdoe", true)
	withEmail.Emails = []scim.MultiValued{
		{Value: "jdoe@corp.example", Type: "work"},
		{Value: "john@home.example", Type: "home"},
	}
	bare := storedUser("user-2", "asmith", true)
	seedUsers(t, repo, withEmail, bare)

	page, err := repo.RetrieveAll(context.Background(), "tenant-1", users.Page{
		StartIndex: 1,
		Filter:     `emails[type eq "work"].value`,
	})
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	require.Len(t, page.Users, 1)
	assert.Equal(t, "jdoe", page.Users[0].UserName)
}

func TestRepositoryRetrieveAllInvalidFilter(t *testing.T) {
	repo := users.NewRepository(memory.New())

	_, err := repo.RetrieveAll(context.Background(), "tenant-1", users.Page{StartIndex: 1, Filter: "userName eq"})
	assert.True(t, errors.Contains(err, svcerr.ErrInvalidFilter), fmt.Sprintf("expected invalid filter, got %v", err))
}

func TestRepositoryUpdateVersionConflict(t *testing.T) {
	repo := users.NewRepository(memory.New())
	seedUsers(t, repo, storedUser("user-1", "jdoe", true))

	update := storedUser("user-1", "jdoe", false)
	update.Meta.Version = scim.NextVersion(scim.FirstVersion())

	_, err := repo.Update(context.Background(), "tenant-1", update, `W/"9"`)
	assert.True(t, errors.Contains(err, svcerr.ErrVersionMismatch), fmt.Sprintf("expected version mismatch, got %v", err))

	updated, err := repo.Update(context.Background(), "tenant-1", update, scim.FirstVersion())
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.False(t, updated.IsActive())
}
