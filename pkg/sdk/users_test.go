// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package sdk_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/idrelay/idrelay/logger"
	"github.com/idrelay/idrelay/pkg/authn"
	authmocks "github.com/idrelay/idrelay/pkg/authn/mocks"
	"github.com/idrelay/idrelay/pkg/errors"
	svcerr "github.com/idrelay/idrelay/pkg/errors/service"
	sdk "github.com/idrelay/idrelay/pkg/sdk"
	"github.com/idrelay/idrelay/pkg/scim"
	"github.com/idrelay/idrelay/users"
	uapi "github.com/idrelay/idrelay/users/api"
	umocks "github.com/idrelay/idrelay/users/mocks"
)

const validToken = "valid"

var session = authn.Session{TenantID: "tenant-1", ActorID: "actor-1", ActorType: authn.ActorService}

func setupUsers(t *testing.T) (sdk.SDK, *umocks.Service, *authmocks.Authentication) {
	svc := new(umocks.Service)
	auth := new(authmocks.Authentication)

	slogger, err := logger.New(io.Discard, "debug")
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	mux := uapi.MakeHandler(svc, auth, chi.NewRouter(), slogger)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	return sdk.NewSDK(sdk.Config{HostURL: ts.URL}), svc, auth
}

func TestSDKCreateUser(t *testing.T) {
	s, svc, auth := setupUsers(t)

	created := scim.User{
		ID:       "user-1",
		UserName: "jdoe@example.com",
		Meta:     &scim.Meta{Version: `W/"1"`},
	}
	auth.On("Authenticate", mock.Anything, validToken).Return(session, nil)
	svc.On("CreateUser", mock.Anything, session, mock.Anything).Return(created, nil)

	user, err := s.CreateUser(scim.User{UserName: "jdoe@example.com"}, validToken)
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, created.ID, user.ID)
	assert.Equal(t, created.UserName, user.UserName)
}

func TestSDKCreateUserUnauthorized(t *testing.T) {
	s, _, auth := setupUsers(t)

	auth.On("Authenticate", mock.Anything, "bad").Return(authn.Session{}, svcerr.ErrAuthentication)

	_, err := s.CreateUser(scim.User{UserName: "jdoe@example.com"}, "bad")
	require.NotNil(t, err)
	assert.Equal(t, http.StatusUnauthorized, err.StatusCode())
}

func TestSDKUsers(t *testing.T) {
	s, svc, auth := setupUsers(t)

	page := users.UsersPage{
		Total:        2,
		StartIndex:   1,
		ItemsPerPage: 2,
		Users: []scim.User{
			{ID: "user-1", UserName: "jdoe@example.com"},
			{ID: "user-2", UserName: "asmith@example.com"},
		},
	}
	auth.On("Authenticate", mock.Anything, validToken).Return(session, nil)
	svc.On("ListUsers", mock.Anything, session, users.Page{StartIndex: 1, Count: 2}).Return(page, nil)

	res, err := s.Users(sdk.PageMetadata{StartIndex: 1, Count: 2}, validToken)
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, uint64(2), res.TotalResults)
	require.Len(t, res.Resources, 2)
	assert.Equal(t, "user-1", res.Resources[0].ID)
}

func TestSDKUpdateUserVersionMismatch(t *testing.T) {
	s, svc, auth := setupUsers(t)

	auth.On("Authenticate", mock.Anything, validToken).Return(session, nil)
	svc.On("UpdateUser", mock.Anything, session, mock.Anything, `W/"1"`).
		Return(scim.User{}, errors.Wrap(svcerr.ErrVersionMismatch, errors.New("stale version")))

	_, err := s.UpdateUser(scim.User{ID: "user-1", UserName: "jdoe@example.com"}, `W/"1"`, validToken)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusConflict, err.StatusCode())
}

func TestSDKPatchUser(t *testing.T) {
	s, svc, auth := setupUsers(t)

	patched := scim.User{ID: "user-1", UserName: "jdoe@example.com", Active: boolPtr(false)}
	auth.On("Authenticate", mock.Anything, validToken).Return(session, nil)
	svc.On("PatchUser", mock.Anything, session, "user-1", mock.Anything, "").Return(patched, nil)

	user, err := s.PatchUser("user-1", []sdk.PatchOp{{Op: "replace", Path: "active", Value: false}}, "", validToken)
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	require.NotNil(t, user.Active)
	assert.False(t, *user.Active)
}

func TestSDKDeleteUser(t *testing.T) {
	s, svc, auth := setupUsers(t)

	auth.On("Authenticate", mock.Anything, validToken).Return(session, nil)
	svc.On("DeleteUser", mock.Anything, session, "user-1", `W/"2"`).Return(nil)

	err := s.DeleteUser("user-1", `W/"2"`, validToken)
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
}

func boolPtr(b bool) *bool {
	return &b
}
