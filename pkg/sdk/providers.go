// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package sdk

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/idrelay/idrelay/pkg/errors"
)

const (
	providersEndpoint = "/providers"
	syncEndpoint      = "/sync"
)

// Provider is a registered downstream target.
type Provider struct {
	ID string `json:"id"`
}

// ProvidersPage lists the registered providers of a tenant.
type ProvidersPage struct {
	TotalResults int        `json:"totalResults"`
	Providers    []Provider `json:"providers"`
}

// ProviderHealth is the outcome of a provider reachability probe.
type ProviderHealth struct {
	ProviderID string    `json:"providerId"`
	Status     string    `json:"status"`
	Detail     string    `json:"detail,omitempty"`
	CheckedAt  time.Time `json:"checkedAt"`
}

// PoolStats reports connection pool statistics of a provider.
type PoolStats struct {
	Active        int     `json:"active"`
	Idle          int     `json:"idle"`
	TotalRequests uint64  `json:"totalRequests"`
	PoolHits      uint64  `json:"poolHits"`
	TotalCreated  uint64  `json:"totalCreated"`
	Recycled      uint64  `json:"recycled"`
	HitRate       float64 `json:"hitRate"`
}

// Capabilities describes what a provider supports.
type Capabilities struct {
	Provider           string   `json:"provider"`
	SupportsUsers      bool     `json:"supportsUsers"`
	SupportsGroups     bool     `json:"supportsGroups"`
	SupportsMembers    bool     `json:"supportsMembers"`
	EntitlementTypes   []string `json:"entitlementTypes"`
	MaxPageSize        int      `json:"maxPageSize,omitempty"`
	SupportsSoftDelete bool     `json:"supportsSoftDelete"`
}

// SyncState records the downstream provisioning outcome of a resource.
type SyncState struct {
	ID              string    `json:"id"`
	ProviderID      string    `json:"providerId"`
	ResourceType    string    `json:"resourceType"`
	ResourceID      string    `json:"resourceId"`
	Operation       string    `json:"operation"`
	Status          string    `json:"status"`
	Attempts        int       `json:"attempts"`
	LastError       string    `json:"lastError,omitempty"`
	GroupName       string    `json:"groupName,omitempty"`
	ConflictRuleIDs []string  `json:"conflictRuleIds,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// SyncStatesPage is a page of sync-state records.
type SyncStatesPage struct {
	TotalResults uint64      `json:"totalResults"`
	StartIndex   int         `json:"startIndex"`
	ItemsPerPage int         `json:"itemsPerPage"`
	Resources    []SyncState `json:"Resources"`
}

func (sdk idSDK) Providers(token string) (ProvidersPage, errors.SDKError) {
	url := sdk.hostURL + providersEndpoint

	_, body, sdkerr := sdk.processRequest(http.MethodGet, url, token, nil, nil, http.StatusOK)
	if sdkerr != nil {
		return ProvidersPage{}, sdkerr
	}

	var page ProvidersPage
	if err := json.Unmarshal(body, &page); err != nil {
		return ProvidersPage{}, errors.NewSDKError(err)
	}

	return page, nil
}

func (sdk idSDK) ProviderHealth(id, token string) (ProviderHealth, errors.SDKError) {
	url := sdk.hostURL + providersEndpoint + "/" + id + "/health"

	// A down provider answers 503 with the probe body, not an error
	// envelope.
	_, body, sdkerr := sdk.processRequest(http.MethodGet, url, token, nil, nil, http.StatusOK, http.StatusServiceUnavailable)
	if sdkerr != nil {
		return ProviderHealth{}, sdkerr
	}

	var health ProviderHealth
	if err := json.Unmarshal(body, &health); err != nil {
		return ProviderHealth{}, errors.NewSDKError(err)
	}

	return health, nil
}

func (sdk idSDK) ProviderStats(id, token string) (PoolStats, errors.SDKError) {
	url := sdk.hostURL + providersEndpoint + "/" + id + "/stats"

	_, body, sdkerr := sdk.processRequest(http.MethodGet, url, token, nil, nil, http.StatusOK)
	if sdkerr != nil {
		return PoolStats{}, sdkerr
	}

	var stats PoolStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return PoolStats{}, errors.NewSDKError(err)
	}

	return stats, nil
}

func (sdk idSDK) ProviderCapabilities(id, token string) (Capabilities, errors.SDKError) {
	url := sdk.hostURL + providersEndpoint + "/" + id + "/capabilities"

	_, body, sdkerr := sdk.processRequest(http.MethodGet, url, token, nil, nil, http.StatusOK)
	if sdkerr != nil {
		return Capabilities{}, sdkerr
	}

	var caps Capabilities
	if err := json.Unmarshal(body, &caps); err != nil {
		return Capabilities{}, errors.NewSDKError(err)
	}

	return caps, nil
}

func (sdk idSDK) SyncStates(pm PageMetadata, token string) (SyncStatesPage, errors.SDKError) {
	url, err := sdk.withQueryParams(sdk.hostURL, syncEndpoint, pm)
	if err != nil {
		return SyncStatesPage{}, errors.NewSDKError(err)
	}

	_, body, sdkerr := sdk.processRequest(http.MethodGet, url, token, nil, nil, http.StatusOK)
	if sdkerr != nil {
		return SyncStatesPage{}, sdkerr
	}

	var page SyncStatesPage
	if err := json.Unmarshal(body, &page); err != nil {
		return SyncStatesPage{}, errors.NewSDKError(err)
	}

	return page, nil
}

func (sdk idSDK) SyncState(id, token string) (SyncState, errors.SDKError) {
	url := sdk.hostURL + syncEndpoint + "/" + id

	_, body, sdkerr := sdk.processRequest(http.MethodGet, url, token, nil, nil, http.StatusOK)
	if sdkerr != nil {
		return SyncState{}, sdkerr
	}

	var state SyncState
	if err := json.Unmarshal(body, &state); err != nil {
		return SyncState{}, errors.NewSDKError(err)
	}

	return state, nil
}
