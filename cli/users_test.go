// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package cli_test

import (
	"bytes"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/idrelay/idrelay/cli"
	"github.com/idrelay/idrelay/logger"
	"github.com/idrelay/idrelay/pkg/authn"
	authmocks "github.com/idrelay/idrelay/pkg/authn/mocks"
	svcerr "github.com/idrelay/idrelay/pkg/errors/service"
	idsdk "github.com/idrelay/idrelay/pkg/sdk"
	"github.com/idrelay/idrelay/pkg/scim"
	"github.com/idrelay/idrelay/users"
	uapi "github.com/idrelay/idrelay/users/api"
	umocks "github.com/idrelay/idrelay/users/mocks"
)

const token = "valid"

var session = authn.Session{TenantID: "tenant-1", ActorID: "actor-1", ActorType: authn.ActorUser}

func setup(t *testing.T) (*umocks.Service, *authmocks.Authentication) {
	svc := new(umocks.Service)
	auth := new(authmocks.Authentication)

	slogger, err := logger.New(io.Discard, "debug")
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	mux := uapi.MakeHandler(svc, auth, chi.NewRouter(), slogger)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	cli.SetSDK(idsdk.NewSDK(idsdk.Config{HostURL: ts.URL}))

	return svc, auth
}

func execute(t *testing.T, args ...string) string {
	out := new(bytes.Buffer)
	cmd := cli.NewUsersCmd()
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	return out.String()
}

func TestGetUserCmd(t *testing.T) {
	svc, auth := setup(t)

	auth.On("Authenticate", mock.Anything, token).Return(session, nil)
	svc.On("ViewUser", mock.Anything, session, "user-1").
		Return(scim.User{ID: "user-1", UserName: "jdoe@example.com"}, nil)

	out := execute(t, "get", "user-1", token)
	assert.Contains(t, out, "jdoe@example.com")
}

func TestGetUsersCmd(t *testing.T) {
	svc, auth := setup(t)

	auth.On("Authenticate", mock.Anything, token).Return(session, nil)
	svc.On("ListUsers", mock.Anything, session, mock.Anything).
		Return(users.UsersPage{}, nil)

	out := execute(t, "get", token)
	assert.Contains(t, out, "totalResults")
}

func TestGetUserCmdUnauthorized(t *testing.T) {
	_, auth := setup(t)

	auth.On("Authenticate", mock.Anything, "bad").
		Return(authn.Session{}, svcerr.ErrAuthentication)

	out := execute(t, "get", "user-1", "bad")
	assert.Contains(t, out, "error")
}

func TestDeleteUserCmd(t *testing.T) {
	svc, auth := setup(t)

	auth.On("Authenticate", mock.Anything, token).Return(session, nil)
	svc.On("DeleteUser", mock.Anything, session, "user-1", "").Return(nil)

	out := execute(t, "delete", "user-1", token)
	assert.Contains(t, out, "ok")
}
