// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package providers_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/idrelay/idrelay/adapters"
	amocks "github.com/idrelay/idrelay/adapters/mocks"
	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/pkg/errors"
	svcerr "github.com/idrelay/idrelay/pkg/errors/service"
	"github.com/idrelay/idrelay/providers"
)

var session = authn.Session{TenantID: "tenant-1", ActorID: "actor-1", ActorType: authn.ActorAdmin}

func newPool(t *testing.T) *adapters.Pool {
	pool := adapters.NewPool(adapters.PoolConfig{
		MaxConnections: 2,
		Lifetime:       time.Minute,
		IdleTimeout:    time.Minute,
		RequestTimeout: time.Second,
	})
	t.Cleanup(pool.Close)

	return pool
}

func TestListProviders(t *testing.T) {
	registry := adapters.NewRegistry()
	registry.Register("tenant-1", "workday", new(amocks.Adapter))
	registry.Register("tenant-1", "salesforce", new(amocks.Adapter))
	registry.Register("tenant-2", "servicenow", new(amocks.Adapter))

	svc := providers.NewService(registry, newPool(t))

	page, err := svc.ListProviders(context.Background(), session)
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Providers, 2)
	assert.Equal(t, "salesforce", page.Providers[0].ID)
	assert.Equal(t, "workday", page.Providers[1].ID)
}

func TestListProvidersMissingTenant(t *testing.T) {
	svc := providers.NewService(adapters.NewRegistry(), newPool(t))

	_, err := svc.ListProviders(context.Background(), authn.Session{})
	assert.True(t, errors.Contains(err, svcerr.ErrMalformedEntity), fmt.Sprintf("expected malformed entity, got %v", err))
}

func TestCheckHealth(t *testing.T) {
	adapter := new(amocks.Adapter)
	registry := adapters.NewRegistry()
	registry.Register("tenant-1", "salesforce", adapter)
	svc := providers.NewService(registry, newPool(t))

	adapter.On("CheckHealth", mock.Anything).Return(nil).Once()

	health, err := svc.CheckHealth(context.Background(), session, "salesforce")
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, providers.StatusUp, health.Status)
	assert.Equal(t, "salesforce", health.ProviderID)
	assert.False(t, health.CheckedAt.IsZero())
}

func TestCheckHealthDown(t *testing.T) {
	adapter := new(amocks.Adapter)
	registry := adapters.NewRegistry()
	registry.Register("tenant-1", "workday", adapter)
	svc := providers.NewService(registry, newPool(t))

	probeErr := &adapters.Error{ProviderName: "workday", HTTPStatusCode: 503, Message: "maintenance window"}
	adapter.On("CheckHealth", mock.Anything).Return(probeErr).Once()

	health, err := svc.CheckHealth(context.Background(), session, "workday")
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, providers.StatusDown, health.Status)
	assert.Contains(t, health.Detail, "maintenance window")
}

func TestCheckHealthUnknownProvider(t *testing.T) {
	svc := providers.NewService(adapters.NewRegistry(), newPool(t))

	_, err := svc.CheckHealth(context.Background(), session, "salesforce")
	assert.True(t, errors.Contains(err, svcerr.ErrAdapterNotFound), fmt.Sprintf("expected adapter not found, got %v", err))
}

func TestViewStats(t *testing.T) {
	pool := newPool(t)
	registry := adapters.NewRegistry()
	registry.Register("tenant-1", "salesforce", new(amocks.Adapter))
	svc := providers.NewService(registry, pool)

	client, err := pool.Acquire(context.Background(), "tenant-1/salesforce")
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	pool.Release("tenant-1/salesforce", client)

	stats, err := svc.ViewStats(context.Background(), session, "salesforce")
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, uint64(1), stats.TotalRequests)
	assert.Equal(t, 1, stats.Idle)
}

func TestViewCapabilities(t *testing.T) {
	adapter := new(amocks.Adapter)
	registry := adapters.NewRegistry()
	registry.Register("tenant-1", "servicenow", adapter)
	svc := providers.NewService(registry, newPool(t))

	caps := adapters.Capabilities{
		Provider:         "servicenow",
		SupportsUsers:    true,
		SupportsGroups:   true,
		SupportsMembers:  true,
		EntitlementTypes: []string{"group"},
		MaxPageSize:      1000,
	}
	adapter.On("GetCapabilities", mock.Anything).Return(caps, nil).Once()

	got, err := svc.ViewCapabilities(context.Background(), session, "servicenow")
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, caps, got)
}

func TestViewCapabilitiesProviderError(t *testing.T) {
	adapter := new(amocks.Adapter)
	registry := adapters.NewRegistry()
	registry.Register("tenant-1", "servicenow", adapter)
	svc := providers.NewService(registry, newPool(t))

	provErr := &adapters.Error{ProviderName: "servicenow", HTTPStatusCode: 500, Retryable: true, Message: "boom"}
	adapter.On("GetCapabilities", mock.Anything).Return(adapters.Capabilities{}, provErr).Once()

	_, err := svc.ViewCapabilities(context.Background(), session, "servicenow")
	assert.True(t, errors.Contains(err, svcerr.ErrViewEntity), fmt.Sprintf("expected view entity error, got %v", err))
}
