// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package sdk_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/idrelay/idrelay/adapters"
	"github.com/idrelay/idrelay/logger"
	authmocks "github.com/idrelay/idrelay/pkg/authn/mocks"
	"github.com/idrelay/idrelay/pkg/errors"
	svcerr "github.com/idrelay/idrelay/pkg/errors/service"
	sdk "github.com/idrelay/idrelay/pkg/sdk"
	"github.com/idrelay/idrelay/providers"
	papi "github.com/idrelay/idrelay/providers/api"
	pmocks "github.com/idrelay/idrelay/providers/mocks"
	"github.com/idrelay/idrelay/provision"
	provmocks "github.com/idrelay/idrelay/provision/mocks"
)

func setupProviders(t *testing.T) (sdk.SDK, *pmocks.Service, *provmocks.Service, *authmocks.Authentication) {
	svc := new(pmocks.Service)
	psvc := new(provmocks.Service)
	auth := new(authmocks.Authentication)

	slogger, err := logger.New(io.Discard, "debug")
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	mux := papi.MakeHandler(svc, psvc, auth, chi.NewRouter(), slogger)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	return sdk.NewSDK(sdk.Config{HostURL: ts.URL}), svc, psvc, auth
}

func TestSDKProviders(t *testing.T) {
	s, svc, _, auth := setupProviders(t)

	page := providers.ProvidersPage{
		Total:     2,
		Providers: []providers.Provider{{ID: "salesforce"}, {ID: "workday"}},
	}
	auth.On("Authenticate", mock.Anything, validToken).Return(session, nil)
	svc.On("ListProviders", mock.Anything, session).Return(page, nil)

	res, err := s.Providers(validToken)
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, 2, res.TotalResults)
	require.Len(t, res.Providers, 2)
	assert.Equal(t, "salesforce", res.Providers[0].ID)
}

func TestSDKProviderHealthDown(t *testing.T) {
	s, svc, _, auth := setupProviders(t)

	health := providers.Health{
		ProviderID: "workday",
		Status:     providers.StatusDown,
		Detail:     "connection refused",
		CheckedAt:  time.Now().UTC(),
	}
	auth.On("Authenticate", mock.Anything, validToken).Return(session, nil)
	svc.On("CheckHealth", mock.Anything, session, "workday").Return(health, nil)

	res, err := s.ProviderHealth("workday", validToken)
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, providers.StatusDown, res.Status)
	assert.Equal(t, "connection refused", res.Detail)
}

func TestSDKProviderStats(t *testing.T) {
	s, svc, _, auth := setupProviders(t)

	stats := adapters.Stats{Active: 1, Idle: 3, TotalRequests: 40, PoolHits: 36, HitRate: 0.9}
	auth.On("Authenticate", mock.Anything, validToken).Return(session, nil)
	svc.On("ViewStats", mock.Anything, session, "salesforce").Return(stats, nil)

	res, err := s.ProviderStats("salesforce", validToken)
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, uint64(40), res.TotalRequests)
	assert.Equal(t, 0.9, res.HitRate)
}

func TestSDKProviderCapabilities(t *testing.T) {
	s, svc, _, auth := setupProviders(t)

	caps := adapters.Capabilities{
		Provider:         "servicenow",
		SupportsUsers:    true,
		SupportsGroups:   true,
		SupportsMembers:  true,
		EntitlementTypes: []string{"group"},
		MaxPageSize:      1000,
	}
	auth.On("Authenticate", mock.Anything, validToken).Return(session, nil)
	svc.On("ViewCapabilities", mock.Anything, session, "servicenow").Return(caps, nil)

	res, err := s.ProviderCapabilities("servicenow", validToken)
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, "servicenow", res.Provider)
	assert.Equal(t, []string{"group"}, res.EntitlementTypes)
}

func TestSDKSyncStates(t *testing.T) {
	s, _, psvc, auth := setupProviders(t)

	page := provision.SyncStatesPage{
		Total:        1,
		StartIndex:   1,
		ItemsPerPage: 1,
		States: []provision.SyncState{{
			ID:           "state-1",
			ProviderID:   "salesforce",
			ResourceType: "User",
			ResourceID:   "user-1",
			Operation:    provision.OpCreate,
			Status:       provision.StatusFailed,
			Attempts:     3,
			LastError:    "salesforce: too many requests",
		}},
	}
	auth.On("Authenticate", mock.Anything, validToken).Return(session, nil)
	psvc.On("ListSyncStates", mock.Anything, session, provision.Page{
		StartIndex: 1,
		Count:      100,
		Status:     provision.StatusFailed,
	}).Return(page, nil)

	res, err := s.SyncStates(sdk.PageMetadata{Status: provision.StatusFailed}, validToken)
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	require.Len(t, res.Resources, 1)
	assert.Equal(t, provision.StatusFailed, res.Resources[0].Status)
	assert.Equal(t, 3, res.Resources[0].Attempts)
}

func TestSDKSyncStateNotFound(t *testing.T) {
	s, _, psvc, auth := setupProviders(t)

	auth.On("Authenticate", mock.Anything, validToken).Return(session, nil)
	psvc.On("ViewSyncState", mock.Anything, session, "missing").
		Return(provision.SyncState{}, errors.Wrap(svcerr.ErrNotFound, errors.New("missing")))

	_, err := s.SyncState("missing", validToken)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusNotFound, err.StatusCode())
}
