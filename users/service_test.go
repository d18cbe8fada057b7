// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package users_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/pkg/errors"
	repoerr "github.com/idrelay/idrelay/pkg/errors/repository"
	svcerr "github.com/idrelay/idrelay/pkg/errors/service"
	"github.com/idrelay/idrelay/pkg/scim"
	"github.com/idrelay/idrelay/pkg/uuid"
	"github.com/idrelay/idrelay/users"
	"github.com/idrelay/idrelay/users/mocks"
)

var (
	idProvider   = uuid.NewMock()
	validSession = authn.Session{TenantID: "tenant-1", ActorID: "actor-1", ActorType: authn.ActorService}
	validUser    = scim.User{
		UserName: "jdoe@example.com",
		Name:     &scim.Name{GivenName: "John", FamilyName: "Doe"},
		Emails: []scim.MultiValued{
			{Value: "jdoe@example.com", Type: "work", Primary: true},
		},
	}
)

func newService() (users.Service, *mocks.Repository) {
	repo := new(mocks.Repository)
	svc := users.NewService(repo, idProvider)

	return svc, repo
}

func TestCreateUser(t *testing.T) {
	svc, repo := newService()

	cases := []struct {
		desc    string
		session authn.Session
		user    scim.User
		saveErr error
		err     error
	}{
		{
			desc:    "create user successfully",
			session: validSession,
			user:    validUser,
			err:     nil,
		},
		{
			desc: "create user without tenant",
			user: validUser,
			err:  svcerr.ErrMalformedEntity,
		},
		{
			desc:    "create user without userName",
			session: validSession,
			user:    scim.User{},
			err:     svcerr.ErrMalformedEntity,
		},
		{
			desc:    "create user with duplicate userName",
			session: validSession,
			user:    validUser,
			saveErr: svcerr.ErrUniqueness,
			err:     svcerr.ErrUniqueness,
		},
	}

	for _, tc := range cases {
		repoCall := repo.On("Save", context.Background(), tc.session.TenantID, mock.Anything).Return(tc.user, tc.saveErr)
		created, err := svc.CreateUser(context.Background(), tc.session, tc.user)
		assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected %v got %v", tc.desc, tc.err, err))
		if err == nil {
			ok := repo.AssertCalled(t, "Save", context.Background(), tc.session.TenantID, mock.Anything)
			assert.True(t, ok, fmt.Sprintf("%s: Save was not called", tc.desc))
			assert.Equal(t, tc.user.UserName, created.UserName, tc.desc)
		}
		repoCall.Unset()
	}
}

func TestCreateUserMetadata(t *testing.T) {
	svc, repo := newService()

	var saved scim.User
	repoCall := repo.On("Save", context.Background(), validSession.TenantID, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(2).(scim.User)
	}).Return(scim.User{}, nil)
	defer repoCall.Unset()

	_, err := svc.CreateUser(context.Background(), validSession, validUser)
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	assert.NotEmpty(t, saved.ID, "expected server-assigned id")
	assert.NotNil(t, saved.Active, "expected active materialized")
	assert.True(t, saved.IsActive(), "expected active default true")
	assert.NotNil(t, saved.Meta, "expected metadata block")
	assert.Equal(t, scim.ResourceTypeUser, saved.Meta.ResourceType)
	assert.Equal(t, scim.FirstVersion(), saved.Meta.Version)
	assert.Equal(t, "/scim/v2/Users/"+saved.ID, saved.Meta.Location)
	assert.Contains(t, saved.Schemas, scim.SchemaUser)
	assert.False(t, saved.Meta.Created.IsZero(), "expected created timestamp")
}

func TestViewUser(t *testing.T) {
	svc, repo := newService()

	stored := validUser
	stored.ID = "user-1"

	cases := []struct {
		desc        string
		id          string
		retrieveErr error
		err         error
	}{
		{
			desc: "view existing user",
			id:   stored.ID,
			err:  nil,
		},
		{
			desc:        "view non-existent user",
			id:          "missing",
			retrieveErr: repoerr.ErrNotFound,
			err:         svcerr.ErrNotFound,
		},
	}

	for _, tc := range cases {
		repoCall := repo.On("RetrieveByID", context.Background(), validSession.TenantID, tc.id).Return(stored, tc.retrieveErr)
		user, err := svc.ViewUser(context.Background(), validSession, tc.id)
		assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected %v got %v", tc.desc, tc.err, err))
		if err == nil {
			assert.Equal(t, stored.ID, user.ID, tc.desc)
		}
		repoCall.Unset()
	}
}

func TestUpdateUser(t *testing.T) {
	svc, repo := newService()

	stored := validUser
	stored.ID = "user-1"
	stored.Meta = &scim.Meta{
		ResourceType: scim.ResourceTypeUser,
		Version:      `W/"3"`,
		Location:     "/scim/v2/Users/user-1",
	}

	update := validUser
	update.ID = stored.ID
	update.DisplayName = "John Doe"

	var written scim.User
	retrieveCall := repo.On("RetrieveByID", context.Background(), validSession.TenantID, stored.ID).Return(stored, nil)
	updateCall := repo.On("Update", context.Background(), validSession.TenantID, mock.Anything, `W/"3"`).Run(func(args mock.Arguments) {
		written = args.Get(2).(scim.User)
	}).Return(update, nil)
	defer retrieveCall.Unset()
	defer updateCall.Unset()

	_, err := svc.UpdateUser(context.Background(), validSession, update, `W/"3"`)
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, `W/"4"`, written.Meta.Version, "expected version bump")
	assert.Equal(t, stored.Meta.Location, written.Meta.Location, "expected location preserved")
}

func TestPatchUser(t *testing.T) {
	svc, repo := newService()

	active := true
	stored := validUser
	stored.ID = "user-1"
	stored.Active = &active
	stored.Meta = &scim.Meta{
		ResourceType: scim.ResourceTypeUser,
		Version:      `W/"1"`,
		Location:     "/scim/v2/Users/user-1",
	}

	ops := []scim.PatchOperation{
		{
			Op:    scim.PatchReplace,
			Path:  "active",
			Value: scim.PatchValue{Kind: scim.PatchValuePrimitive, Prim: false},
		},
		{
			Op:   scim.PatchReplace,
			Path: "name.givenName",
			Value: scim.PatchValue{
				Kind: scim.PatchValuePrimitive,
				Prim: "Jane",
			},
		},
	}

	var written scim.User
	retrieveCall := repo.On("RetrieveByID", context.Background(), validSession.TenantID, stored.ID).Return(stored, nil)
	updateCall := repo.On("Update", context.Background(), validSession.TenantID, mock.Anything, `W/"1"`).Run(func(args mock.Arguments) {
		written = args.Get(2).(scim.User)
	}).Return(stored, nil)
	defer retrieveCall.Unset()
	defer updateCall.Unset()

	_, err := svc.PatchUser(context.Background(), validSession, stored.ID, ops, "")
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.False(t, written.IsActive(), "expected active set to false")
	assert.Equal(t, "Jane", written.Name.GivenName, "expected given name replaced")
	assert.Equal(t, `W/"2"`, written.Meta.Version, "expected version bump")
}

func TestPatchUserCommitsReadVersion(t *testing.T) {
	svc, repo := newService()

	stored := validUser
	stored.ID = "user-1"
	stored.Meta = &scim.Meta{
		ResourceType: scim.ResourceTypeUser,
		Version:      `W/"7"`,
		Location:     "/scim/v2/Users/user-1",
	}

	ops := []scim.PatchOperation{
		{
			Op:    scim.PatchReplace,
			Path:  "displayName",
			Value: scim.PatchValue{Kind: scim.PatchValuePrimitive, Prim: "Johnny"},
		},
	}

	// No client precondition: the commit still carries the version read
	// during materialization, so a concurrent writer cannot be overwritten.
	retrieveCall := repo.On("RetrieveByID", context.Background(), validSession.TenantID, stored.ID).Return(stored, nil)
	updateCall := repo.On("Update", context.Background(), validSession.TenantID, mock.Anything, `W/"7"`).Return(stored, nil)
	defer retrieveCall.Unset()
	defer updateCall.Unset()

	_, err := svc.PatchUser(context.Background(), validSession, stored.ID, ops, "")
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	ok := repo.AssertCalled(t, "Update", context.Background(), validSession.TenantID, mock.Anything, `W/"7"`)
	assert.True(t, ok, "expected commit with the stored version")
}

func TestPatchUserStaleIfMatch(t *testing.T) {
	svc, repo := newService()

	stored := validUser
	stored.ID = "user-1"
	stored.Meta = &scim.Meta{
		ResourceType: scim.ResourceTypeUser,
		Version:      `W/"7"`,
		Location:     "/scim/v2/Users/user-1",
	}

	ops := []scim.PatchOperation{
		{
			Op:    scim.PatchReplace,
			Path:  "displayName",
			Value: scim.PatchValue{Kind: scim.PatchValuePrimitive, Prim: "Johnny"},
		},
	}

	retrieveCall := repo.On("RetrieveByID", context.Background(), validSession.TenantID, stored.ID).Return(stored, nil)
	defer retrieveCall.Unset()

	_, err := svc.PatchUser(context.Background(), validSession, stored.ID, ops, `W/"6"`)
	assert.True(t, errors.Contains(err, svcerr.ErrVersionMismatch), fmt.Sprintf("expected version mismatch, got %v", err))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPatchUserInvalidPath(t *testing.T) {
	svc, repo := newService()

	stored := validUser
	stored.ID = "user-1"

	ops := []scim.PatchOperation{
		{
			Op:    scim.PatchReplace,
			Path:  "id",
			Value: scim.PatchValue{Kind: scim.PatchValuePrimitive, Prim: "other"},
		},
	}

	retrieveCall := repo.On("RetrieveByID", context.Background(), validSession.TenantID, stored.ID).Return(stored, nil)
	defer retrieveCall.Unset()

	_, err := svc.PatchUser(context.Background(), validSession, stored.ID, ops, "")
	assert.True(t, errors.Contains(err, scim.ErrReadOnlyPath), fmt.Sprintf("expected read-only path error, got %v", err))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteUser(t *testing.T) {
	svc, repo := newService()

	cases := []struct {
		desc    string
		id      string
		ifMatch string
		repoErr error
		err     error
	}{
		{
			desc: "delete existing user",
			id:   "user-1",
			err:  nil,
		},
		{
			desc:    "delete with stale version",
			id:      "user-1",
			ifMatch: `W/"1"`,
			repoErr: svcerr.ErrVersionMismatch,
			err:     svcerr.ErrVersionMismatch,
		},
		{
			desc:    "delete non-existent user",
			id:      "missing",
			repoErr: repoerr.ErrNotFound,
			err:     repoerr.ErrNotFound,
		},
	}

	for _, tc := range cases {
		repoCall := repo.On("Delete", context.Background(), validSession.TenantID, tc.id, tc.ifMatch).Return(tc.repoErr)
		err := svc.DeleteUser(context.Background(), validSession, tc.id, tc.ifMatch)
		assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected %v got %v", tc.desc, tc.err, err))
		repoCall.Unset()
	}
}

func TestListUsers(t *testing.T) {
	svc, repo := newService()

	page := users.Page{StartIndex: 1, Count: 10, Filter: `userName eq "jdoe@example.com"`}
	result := users.UsersPage{
		Total:        1,
		StartIndex:   1,
		ItemsPerPage: 1,
		Users:        []scim.User{validUser},
	}

	repoCall := repo.On("RetrieveAll", context.Background(), validSession.TenantID, page).Return(result, nil)
	defer repoCall.Unset()

	got, err := svc.ListUsers(context.Background(), validSession, page)
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, result.Total, got.Total)
	assert.Len(t, got.Users, 1)
}
