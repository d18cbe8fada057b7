// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package groups_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idrelay/idrelay/groups"
	"github.com/idrelay/idrelay/pkg/errors"
	repoerr "github.com/idrelay/idrelay/pkg/errors/repository"
	svcerr "github.com/idrelay/idrelay/pkg/errors/service"
	"github.com/idrelay/idrelay/pkg/scim"
	"github.com/idrelay/idrelay/pkg/store/memory"
)

func storedGroup(id, displayName string, members ...scim.Member) scim.Group {
	return scim.Group{
		ID:          id,
		Schemas:     []string{scim.SchemaGroup},
		DisplayName: displayName,
		Members:     members,
		Meta: &scim.Meta{
			ResourceType: scim.ResourceTypeGroup,
			Version:      scim.FirstVersion(),
		},
	}
}

func seedGroups(t *testing.T, repo groups.Repository, list ...scim.Group) {
	t.Helper()

	for _, group := range list {
		_, err := repo.Save(context.Background(), "tenant-1", group)
		require.Nil(t, err, fmt.Sprintf("unexpected seed error: %s", err))
	}
}

func TestRepositorySaveUniqueness(t *testing.T) {
	repo := groups.NewRepository(memory.New())
	seedGroups(t, repo, storedGroup("group-1", "Engineering"))

	_, err := repo.Save(context.Background(), "tenant-1", storedGroup("group-2", "Engineering"))
	assert.True(t, errors.Contains(err, svcerr.ErrUniqueness), fmt.Sprintf("expected uniqueness violation, got %v", err))

	_, err = repo.Save(context.Background(), "tenant-2", storedGroup("group-2", "Engineering"))
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
}

func TestRepositoryRetrieveByDisplayName(t *testing.T) {
	repo := groups.NewRepository(memory.New())
	seedGroups(t, repo,
		storedGroup("group-1", "Engineering"),
		storedGroup("group-2", "Finance"),
	)

	group, err := repo.RetrieveByDisplayName(context.Background(), "tenant-1", "Engineering")
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, "group-1", group.ID)
	assert.Equal(t, "tenant-1", group.TenantID)

	// The natural key lookup is exact, not case-folded.
	_, err = repo.RetrieveByDisplayName(context.Background(), "tenant-1", "engineering")
	assert.True(t, errors.Contains(err, repoerr.ErrNotFound), fmt.Sprintf("expected not found, got %v", err))

	_, err = repo.RetrieveByDisplayName(context.Background(), "tenant-2", "Engineering")
	assert.True(t, errors.Contains(err, repoerr.ErrNotFound), fmt.Sprintf("expected cross-tenant miss, got %v", err))
}

func TestRepositoryRetrieveAllMemberFilter(t *testing.T) {
	repo := groups.NewRepository(memory.New())
	seedGroups(t, repo,
		storedGroup("group-1", "Engineering", scim.Member{Value: "user-1", Type: scim.MemberTypeUser}),
		storedGroup("group-2", "Finance", scim.Member{Value: "user-2", Type: scim.MemberTypeUser}),
	)

	page, err := repo.RetrieveAll(context.Background(), "tenant-1", groups.Page{
		StartIndex: 1,
		Filter:     `members.value eq "user-1"`,
	})
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	assert.Equal(t, uint64(1), page.Total)
	require.Len(t, page.Groups, 1)
	assert.Equal(t, "Engineering", page.Groups[0].DisplayName)
}

func TestRepositoryDeleteVersioned(t *testing.T) {
	repo := groups.NewRepository(memory.New())
	seedGroups(t, repo, storedGroup("group-1", "Engineering"))

	err := repo.Delete(context.Background(), "tenant-1", "group-1", `W/"9"`)
	assert.True(t, errors.Contains(err, svcerr.ErrVersionMismatch), fmt.Sprintf("expected version mismatch, got %v", err))

	err = repo.Delete(context.Background(), "tenant-1", "group-1", scim.FirstVersion())
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	_, err = repo.RetrieveByID(context.Background(), "tenant-1", "group-1")
	assert.True(t, errors.Contains(err, repoerr.ErrNotFound), fmt.Sprintf("expected not found, got %v", err))
}
