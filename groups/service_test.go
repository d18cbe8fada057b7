// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package groups_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/idrelay/idrelay/groups"
	"github.com/idrelay/idrelay/groups/mocks"
	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/pkg/errors"
	svcerr "github.com/idrelay/idrelay/pkg/errors/service"
	"github.com/idrelay/idrelay/pkg/scim"
	"github.com/idrelay/idrelay/pkg/uuid"
)

var (
	idProvider   = uuid.NewMock()
	validSession = authn.Session{TenantID: "tenant-1", ActorID: "actor-1", ActorType: authn.ActorService}
	validGroup   = scim.Group{
		DisplayName: "Engineering",
		Members: []scim.Member{
			{Value: "user-1", Type: scim.MemberTypeUser},
		},
	}
)

func newService() (groups.Service, *mocks.Repository) {
	repo := new(mocks.Repository)
	svc := groups.NewService(repo, idProvider)

	return svc, repo
}

func TestCreateGroup(t *testing.T) {
	svc, repo := newService()

	cases := []struct {
		desc    string
		session authn.Session
		group   scim.Group
		saveErr error
		err     error
	}{
		{
			desc:    "create group successfully",
			session: validSession,
			group:   validGroup,
			err:     nil,
		},
		{
			desc: "create group without tenant",
			group: validGroup,
			err:  svcerr.ErrMalformedEntity,
		},
		{
			desc:    "create group without displayName",
			session: validSession,
			group:   scim.Group{},
			err:     svcerr.ErrMalformedEntity,
		},
		{
			desc:    "create group with duplicate displayName",
			session: validSession,
			group:   validGroup,
			saveErr: svcerr.ErrUniqueness,
			err:     svcerr.ErrUniqueness,
		},
	}

	for _, tc := range cases {
		repoCall := repo.On("Save", context.Background(), tc.session.TenantID, mock.Anything).Return(tc.group, tc.saveErr)
		created, err := svc.CreateGroup(context.Background(), tc.session, tc.group)
		assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected %v got %v", tc.desc, tc.err, err))
		if err == nil {
			assert.Equal(t, tc.group.DisplayName, created.DisplayName, tc.desc)
		}
		repoCall.Unset()
	}
}

func TestCreateGroupDedupesMembers(t *testing.T) {
	svc, repo := newService()

	group := validGroup
	group.Members = []scim.Member{
		{Value: "user-1", Type: scim.MemberTypeUser},
		{Value: "user-1", Type: scim.MemberTypeUser},
		{Value: "user-2", Type: scim.MemberTypeUser},
	}

	var saved scim.Group
	repoCall := repo.On("Save", context.Background(), validSession.TenantID, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(2).(scim.Group)
	}).Return(scim.Group{}, nil)
	defer repoCall.Unset()

	_, err := svc.CreateGroup(context.Background(), validSession, group)
	assert.True(t, errors.Contains(err, svcerr.ErrMalformedEntity), "expected duplicate member rejection")

	group.Members = []scim.Member{
		{Value: "user-1", Type: scim.MemberTypeUser},
		{Value: "user-2", Type: scim.MemberTypeUser},
	}
	_, err = svc.CreateGroup(context.Background(), validSession, group)
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Len(t, saved.Members, 2)
	assert.Equal(t, scim.FirstVersion(), saved.Meta.Version)
}

func TestPatchGroupAddMemberIdempotent(t *testing.T) {
	svc, repo := newService()

	stored := validGroup
	stored.ID = "group-1"
	stored.Schemas = []string{scim.SchemaGroup}
	stored.Meta = &scim.Meta{
		ResourceType: scim.ResourceTypeGroup,
		Version:      `W/"1"`,
		Location:     "/scim/v2/Groups/group-1",
	}

	ops := []scim.PatchOperation{
		{
			Op:   scim.PatchAdd,
			Path: "members",
			Value: scim.PatchValue{
				Kind: scim.PatchValueList,
				List: []scim.Document{
					{"value": "user-1", "type": "User"},
					{"value": "user-2", "type": "User"},
				},
			},
		},
	}

	var written scim.Group
	retrieveCall := repo.On("RetrieveByID", context.Background(), validSession.TenantID, stored.ID).Return(stored, nil)
	updateCall := repo.On("Update", context.Background(), validSession.TenantID, mock.Anything, `W/"1"`).Run(func(args mock.Arguments) {
		written = args.Get(2).(scim.Group)
	}).Return(stored, nil)
	defer retrieveCall.Unset()
	defer updateCall.Unset()

	_, err := svc.PatchGroup(context.Background(), validSession, stored.ID, ops, "")
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	// user-1 was already a member, so only user-2 is added.
	assert.Len(t, written.Members, 2)
	assert.Equal(t, `W/"2"`, written.Meta.Version)
}

func TestPatchGroupRemoveMember(t *testing.T) {
	svc, repo := newService()

	stored := validGroup
	stored.ID = "group-1"
	stored.Schemas = []string{scim.SchemaGroup}
	stored.Members = []scim.Member{
		{Value: "user-1", Type: scim.MemberTypeUser},
		{Value: "user-2", Type: scim.MemberTypeUser},
	}
	stored.Meta = &scim.Meta{
		ResourceType: scim.ResourceTypeGroup,
		Version:      `W/"2"`,
	}

	ops := []scim.PatchOperation{
		{
			Op:   scim.PatchRemove,
			Path: `members[value eq "user-1"]`,
		},
	}

	var written scim.Group
	retrieveCall := repo.On("RetrieveByID", context.Background(), validSession.TenantID, stored.ID).Return(stored, nil)
	updateCall := repo.On("Update", context.Background(), validSession.TenantID, mock.Anything, `W/"2"`).Run(func(args mock.Arguments) {
		written = args.Get(2).(scim.Group)
	}).Return(stored, nil)
	defer retrieveCall.Unset()
	defer updateCall.Unset()

	_, err := svc.PatchGroup(context.Background(), validSession, stored.ID, ops, "")
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Len(t, written.Members, 1)
	assert.Equal(t, "user-2", written.Members[0].Value)
}

func TestUpdateGroupStaleVersion(t *testing.T) {
	svc, repo := newService()

	stored := validGroup
	stored.ID = "group-1"
	stored.Meta = &scim.Meta{Version: `W/"5"`}

	update := validGroup
	update.ID = stored.ID

	retrieveCall := repo.On("RetrieveByID", context.Background(), validSession.TenantID, stored.ID).Return(stored, nil)
	defer retrieveCall.Unset()

	// The stale precondition is rejected against the stored version
	// before anything is written.
	_, err := svc.UpdateGroup(context.Background(), validSession, update, `W/"4"`)
	assert.True(t, errors.Contains(err, svcerr.ErrVersionMismatch), fmt.Sprintf("expected version mismatch, got %v", err))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteGroup(t *testing.T) {
	svc, repo := newService()

	repoCall := repo.On("Delete", context.Background(), validSession.TenantID, "group-1", "").Return(nil)
	defer repoCall.Unset()

	err := svc.DeleteGroup(context.Background(), validSession, "group-1", "")
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
}
