// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package provision_test

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/idrelay/idrelay/adapters"
	amocks "github.com/idrelay/idrelay/adapters/mocks"
	"github.com/idrelay/idrelay/logger"
	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/pkg/errors"
	"github.com/idrelay/idrelay/pkg/scim"
	"github.com/idrelay/idrelay/pkg/uuid"
	"github.com/idrelay/idrelay/provision"
	"github.com/idrelay/idrelay/provision/mocks"
	"github.com/idrelay/idrelay/transform"
	tmocks "github.com/idrelay/idrelay/transform/mocks"
)

var session = authn.Session{TenantID: "tenant-1", ActorID: "actor-1", ActorType: authn.ActorService}

func newService(t *testing.T, registry *adapters.Registry) (provision.Service, *tmocks.Service, *mocks.Repository, *mocks.Notifier) {
	engine := new(tmocks.Service)
	repo := new(mocks.Repository)
	notifier := new(mocks.Notifier)
	slogger, err := logger.New(io.Discard, "debug")
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	cfg := provision.Config{
		Async:         false,
		MaxRetries:    2,
		RetryInterval: time.Millisecond,
		SyncTimeout:   time.Minute,
	}
	svc := provision.NewService(cfg, registry, engine, repo, notifier, uuid.NewMock(), slogger)

	return svc, engine, repo, notifier
}

func TestUserSyncedFanOut(t *testing.T) {
	registry := adapters.NewRegistry()
	salesforce := new(amocks.Adapter)
	servicenow := new(amocks.Adapter)
	registry.Register("tenant-1", "salesforce", salesforce)
	registry.Register("tenant-1", "servicenow", servicenow)

	svc, _, repo, _ := newService(t, registry)

	user := scim.User{ID: "user-1", UserName: "jdoe@example.com"}
	salesforce.On("CreateUser", mock.Anything, user).Return(user, nil)
	servicenow.On("CreateUser", mock.Anything, user).Return(user, nil)

	var states []provision.SyncState
	repo.On("Save", mock.Anything, "tenant-1", mock.Anything).Run(func(args mock.Arguments) {
		states = append(states, args.Get(2).(provision.SyncState))
	}).Return(provision.SyncState{}, nil)

	svc.UserSynced(context.Background(), session, provision.OpCreate, user)

	require.Len(t, states, 2)
	for _, state := range states {
		assert.Equal(t, provision.StatusSynced, state.Status)
		assert.Equal(t, scim.ResourceTypeUser, state.ResourceType)
		assert.Equal(t, "user-1", state.ResourceID)
		assert.Equal(t, 1, state.Attempts)
	}
	assert.Equal(t, "salesforce", states[0].ProviderID)
	assert.Equal(t, "servicenow", states[1].ProviderID)
}

func TestUserSyncedRetriesRetryable(t *testing.T) {
	registry := adapters.NewRegistry()
	adapter := new(amocks.Adapter)
	registry.Register("tenant-1", "salesforce", adapter)

	svc, _, repo, _ := newService(t, registry)

	user := scim.User{ID: "user-1"}
	throttled := adapters.TranslateError("salesforce", 429, "", "rate limited", time.Second)
	adapter.On("UpdateUser", mock.Anything, user).Return(scim.User{}, throttled).Twice()
	adapter.On("UpdateUser", mock.Anything, user).Return(user, nil).Once()

	var state provision.SyncState
	repo.On("Save", mock.Anything, "tenant-1", mock.Anything).Run(func(args mock.Arguments) {
		state = args.Get(2).(provision.SyncState)
	}).Return(provision.SyncState{}, nil)

	svc.UserSynced(context.Background(), session, provision.OpUpdate, user)

	assert.Equal(t, provision.StatusSynced, state.Status)
	assert.Equal(t, 3, state.Attempts)
	adapter.AssertNumberOfCalls(t, "UpdateUser", 3)
}

func TestUserSyncedPermanentFailure(t *testing.T) {
	registry := adapters.NewRegistry()
	adapter := new(amocks.Adapter)
	registry.Register("tenant-1", "salesforce", adapter)

	svc, _, repo, _ := newService(t, registry)

	notFound := adapters.TranslateError("salesforce", 404, "", "no such user", 0)
	adapter.On("DeleteUser", mock.Anything, "user-1").Return(notFound)

	var state provision.SyncState
	repo.On("Save", mock.Anything, "tenant-1", mock.Anything).Run(func(args mock.Arguments) {
		state = args.Get(2).(provision.SyncState)
	}).Return(provision.SyncState{}, nil)

	svc.UserSynced(context.Background(), session, provision.OpDelete, scim.User{ID: "user-1"})

	assert.Equal(t, provision.StatusFailed, state.Status)
	assert.Equal(t, 1, state.Attempts)
	assert.Contains(t, state.LastError, "no such user")
	adapter.AssertNumberOfCalls(t, "DeleteUser", 1)
}

func TestGroupSyncedTransformsAndMaps(t *testing.T) {
	registry := adapters.NewRegistry()
	adapter := new(amocks.Adapter)
	registry.Register("tenant-1", "salesforce", adapter)

	svc, engine, repo, _ := newService(t, registry)

	group := scim.Group{ID: "group-1", DisplayName: "Sales_EMEA_Rep"}
	entitlements := []transform.Entitlement{
		{ProviderEntitlementID: "Sales_EMEA_Rep", Name: "Sales_EMEA_Rep", Type: "role", MappedGroups: []string{"Sales_EMEA_Rep"}},
	}
	engine.On("Transform", mock.Anything, "tenant-1", "salesforce", "Sales_EMEA_Rep").Return(entitlements, nil)
	adapter.On("CreateGroup", mock.Anything, group).Return(group, nil)
	adapter.On("MapGroupToEntitlement", mock.Anything, "Sales_EMEA_Rep", entitlements).Return(nil)

	var state provision.SyncState
	repo.On("Save", mock.Anything, "tenant-1", mock.Anything).Run(func(args mock.Arguments) {
		state = args.Get(2).(provision.SyncState)
	}).Return(provision.SyncState{}, nil)

	svc.GroupSynced(context.Background(), session, provision.OpCreate, group)

	assert.Equal(t, provision.StatusSynced, state.Status)
	assert.Equal(t, "Sales_EMEA_Rep", state.GroupName)
	assert.Equal(t, entitlements, state.Entitlements)
	adapter.AssertCalled(t, "MapGroupToEntitlement", mock.Anything, "Sales_EMEA_Rep", entitlements)
}

func TestGroupSyncedDeleteSkipsTransform(t *testing.T) {
	registry := adapters.NewRegistry()
	adapter := new(amocks.Adapter)
	registry.Register("tenant-1", "workday", adapter)

	svc, engine, repo, _ := newService(t, registry)

	adapter.On("DeleteGroup", mock.Anything, "group-1").Return(nil)
	repo.On("Save", mock.Anything, "tenant-1", mock.Anything).Return(provision.SyncState{}, nil)

	svc.GroupSynced(context.Background(), session, provision.OpDelete, scim.Group{ID: "group-1"})

	engine.AssertNotCalled(t, "Transform", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	adapter.AssertCalled(t, "DeleteGroup", mock.Anything, "group-1")
}

func TestRecordConflict(t *testing.T) {
	svc, _, repo, notifier := newService(t, adapters.NewRegistry())

	conflict := transform.Conflict{
		TenantID:   "tenant-1",
		ProviderID: "salesforce",
		GroupName:  "Finance",
		RuleIDs:    []string{"rule-a", "rule-b"},
	}

	var state provision.SyncState
	repo.On("Save", mock.Anything, "tenant-1", mock.Anything).Run(func(args mock.Arguments) {
		state = args.Get(2).(provision.SyncState)
	}).Return(provision.SyncState{}, nil)
	notifier.On("NotifyConflict", mock.Anything, conflict).Return(errors.New("smtp down"))

	err := svc.RecordConflict(context.Background(), conflict)
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, provision.StatusPendingReview, state.Status)
	assert.Equal(t, []string{"rule-a", "rule-b"}, state.ConflictRuleIDs)
	assert.Equal(t, "Finance", state.GroupName)
	notifier.AssertCalled(t, "NotifyConflict", mock.Anything, conflict)
}

func TestListSyncStatesMissingTenant(t *testing.T) {
	svc, _, _, _ := newService(t, adapters.NewRegistry())

	_, err := svc.ListSyncStates(context.Background(), authn.Session{}, provision.Page{})
	assert.NotNil(t, err)
}
