// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package middleware_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/idrelay/idrelay/audit"
	"github.com/idrelay/idrelay/audit/middleware"
	"github.com/idrelay/idrelay/audit/mocks"
	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/pkg/errors"
	svcerr "github.com/idrelay/idrelay/pkg/errors/service"
	"github.com/idrelay/idrelay/pkg/scim"
	umocks "github.com/idrelay/idrelay/users/mocks"
)

var session = authn.Session{TenantID: "tenant-1", ActorID: "actor-1", ActorType: authn.ActorUser}

func TestCreateUserAudited(t *testing.T) {
	inner := new(umocks.Service)
	sink := new(mocks.Sink)
	svc := middleware.UsersMiddleware(inner, sink)

	created := scim.User{ID: "user-1", UserName: "jdoe@example.com"}
	inner.On("CreateUser", mock.Anything, session, mock.Anything).Return(created, nil)

	var entry audit.Entry
	sink.On("Submit", mock.Anything).Run(func(args mock.Arguments) {
		entry = args.Get(0).(audit.Entry)
	}).Return()

	_, err := svc.CreateUser(context.Background(), session, scim.User{UserName: "jdoe@example.com"})
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, "user.create", entry.Operation)
	assert.Equal(t, audit.OutcomeSuccess, entry.Outcome)
	assert.Equal(t, "user-1", entry.ResourceID)
	assert.Equal(t, "actor-1", entry.ActorID)
}

func TestDeleteUserSnapshotsResource(t *testing.T) {
	inner := new(umocks.Service)
	sink := new(mocks.Sink)
	svc := middleware.UsersMiddleware(inner, sink)

	stored := scim.User{ID: "user-1", UserName: "jdoe@example.com"}
	inner.On("ViewUser", mock.Anything, session, "user-1").Return(stored, nil)
	inner.On("DeleteUser", mock.Anything, session, "user-1", "").Return(nil)

	var entry audit.Entry
	sink.On("Submit", mock.Anything).Run(func(args mock.Arguments) {
		entry = args.Get(0).(audit.Entry)
	}).Return()

	err := svc.DeleteUser(context.Background(), session, "user-1", "")
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	require.NotNil(t, entry.Snapshot)
	assert.Equal(t, "jdoe@example.com", entry.Snapshot["userName"])
	assert.Equal(t, "user.delete", entry.Operation)
}

func TestFailedOperationAudited(t *testing.T) {
	inner := new(umocks.Service)
	sink := new(mocks.Sink)
	svc := middleware.UsersMiddleware(inner, sink)

	inner.On("UpdateUser", mock.Anything, session, mock.Anything, `W/"4"`).
		Return(scim.User{}, errors.Wrap(svcerr.ErrVersionMismatch, errors.New("stale")))

	var entry audit.Entry
	sink.On("Submit", mock.Anything).Run(func(args mock.Arguments) {
		entry = args.Get(0).(audit.Entry)
	}).Return()

	_, err := svc.UpdateUser(context.Background(), session, scim.User{ID: "user-1"}, `W/"4"`)
	assert.True(t, errors.Contains(err, svcerr.ErrVersionMismatch), fmt.Sprintf("expected version mismatch, got %v", err))
	assert.Equal(t, audit.OutcomeFailure, entry.Outcome)
	assert.Contains(t, entry.Detail, "version")
}

func TestReadsNotAudited(t *testing.T) {
	inner := new(umocks.Service)
	sink := new(mocks.Sink)
	svc := middleware.UsersMiddleware(inner, sink)

	inner.On("ViewUser", mock.Anything, session, "user-1").Return(scim.User{ID: "user-1"}, nil)

	_, err := svc.ViewUser(context.Background(), session, "user-1")
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	sink.AssertNotCalled(t, "Submit", mock.Anything)
}
