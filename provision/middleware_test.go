// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package provision_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	gmocks "github.com/idrelay/idrelay/groups/mocks"
	"github.com/idrelay/idrelay/pkg/errors"
	svcerr "github.com/idrelay/idrelay/pkg/errors/service"
	"github.com/idrelay/idrelay/pkg/scim"
	"github.com/idrelay/idrelay/provision"
	"github.com/idrelay/idrelay/provision/mocks"
	umocks "github.com/idrelay/idrelay/users/mocks"
)

func TestUsersMiddlewareFansOut(t *testing.T) {
	inner := new(umocks.Service)
	orchestrator := new(mocks.Orchestrator)
	svc := provision.UsersMiddleware(inner, orchestrator)

	user := scim.User{UserName: "jdoe@example.com"}
	created := scim.User{ID: "user-1", UserName: "jdoe@example.com"}
	inner.On("CreateUser", mock.Anything, session, user).Return(created, nil)
	orchestrator.On("UserSynced", mock.Anything, session, provision.OpCreate, created).Return()

	res, err := svc.CreateUser(context.Background(), session, user)
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, created, res)
	orchestrator.AssertCalled(t, "UserSynced", mock.Anything, session, provision.OpCreate, created)
}

func TestUsersMiddlewareSkipsFanOutOnError(t *testing.T) {
	inner := new(umocks.Service)
	orchestrator := new(mocks.Orchestrator)
	svc := provision.UsersMiddleware(inner, orchestrator)

	inner.On("DeleteUser", mock.Anything, session, "user-1", "").Return(errors.Wrap(svcerr.ErrNotFound, errors.New("user-1")))

	err := svc.DeleteUser(context.Background(), session, "user-1", "")
	assert.True(t, errors.Contains(err, svcerr.ErrNotFound), fmt.Sprintf("expected not found, got %v", err))
	orchestrator.AssertNotCalled(t, "UserSynced", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGroupsMiddlewareFansOutPatch(t *testing.T) {
	inner := new(gmocks.Service)
	orchestrator := new(mocks.Orchestrator)
	svc := provision.GroupsMiddleware(inner, orchestrator)

	ops := []scim.PatchOperation{{Op: "add", Path: "members"}}
	patched := scim.Group{ID: "group-1", DisplayName: "Engineering"}
	inner.On("PatchGroup", mock.Anything, session, "group-1", ops, `W/"1"`).Return(patched, nil)
	orchestrator.On("GroupSynced", mock.Anything, session, provision.OpUpdate, patched).Return()

	res, err := svc.PatchGroup(context.Background(), session, "group-1", ops, `W/"1"`)
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, patched, res)
	orchestrator.AssertCalled(t, "GroupSynced", mock.Anything, session, provision.OpUpdate, patched)
}
