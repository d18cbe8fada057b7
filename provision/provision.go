// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

// Package provision fans mutating SCIM operations out to the downstream
// providers registered for a tenant. Every fan-out leaves a per-provider
// sync-state record behind, and MANUAL_REVIEW transformation conflicts
// land here as PENDING_REVIEW records awaiting an operator.
package provision

import (
	"context"
	"encoding/json"
	"time"

	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/pkg/scim"
	"github.com/idrelay/idrelay/transform"
)

// Sync-state statuses.
const (
	StatusPending       = "PENDING"
	StatusSynced        = "SYNCED"
	StatusFailed        = "FAILED"
	StatusPendingReview = "PENDING_REVIEW"
)

// Operations recorded on sync-state entries.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// SyncState tracks the provisioning outcome of one resource on one
// provider.
type SyncState struct {
	ID              string                  `json:"id"`
	TenantID        string                  `json:"tenantId,omitempty"`
	ProviderID      string                  `json:"providerId"`
	ResourceType    string                  `json:"resourceType"`
	ResourceID      string                  `json:"resourceId,omitempty"`
	Operation       string                  `json:"operation"`
	Status          string                  `json:"status"`
	Attempts        int                     `json:"attempts"`
	LastError       string                  `json:"lastError,omitempty"`
	GroupName       string                  `json:"groupName,omitempty"`
	ConflictRuleIDs []string                `json:"conflictRuleIds,omitempty"`
	Entitlements    []transform.Entitlement `json:"entitlements,omitempty"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
}

// Page filters sync-state listings.
type Page struct {
	StartIndex int
	Count      int
	ProviderID string
	Status     string
}

// SyncStatesPage is a page of sync-state records with the total count.
type SyncStatesPage struct {
	Total        uint64      `json:"totalResults"`
	StartIndex   int         `json:"startIndex"`
	ItemsPerPage int         `json:"itemsPerPage"`
	States       []SyncState `json:"Resources"`
}

func (page SyncStatesPage) MarshalJSON() ([]byte, error) {
	type Alias SyncStatesPage
	a := struct {
		Alias
	}{
		Alias: Alias(page),
	}

	if a.States == nil {
		a.States = make([]SyncState, 0)
	}

	return json.Marshal(a)
}

// Orchestrator receives mutating resource events and drives the
// per-provider fan-out. The users and groups service wrappers call it
// after the canonical write commits.
//
//go:generate mockery --name Orchestrator --output=./mocks --filename orchestrator.go --quiet --note "Copyright (c) IdRelay"
type Orchestrator interface {
	// UserSynced fans a committed user mutation out to every provider
	// registered for the session tenant. For deletes only user.ID is set.
	UserSynced(ctx context.Context, session authn.Session, op string, user scim.User)

	// GroupSynced fans a committed group mutation out, transforming the
	// display name into provider entitlements first.
	GroupSynced(ctx context.Context, session authn.Session, op string, group scim.Group)
}

// Service is the provisioning surface: the orchestrator hooks, the
// conflict sink fed by the transformation engine, and tenant-scoped
// sync-state reads for the operator API.
//
//go:generate mockery --name Service --output=./mocks --filename service.go --quiet --note "Copyright (c) IdRelay"
type Service interface {
	Orchestrator
	transform.ConflictSink

	// ViewSyncState retrieves a sync-state record by id.
	ViewSyncState(ctx context.Context, session authn.Session, id string) (SyncState, error)

	// ListSyncStates retrieves a page of sync-state records.
	ListSyncStates(ctx context.Context, session authn.Session, page Page) (SyncStatesPage, error)
}

// Repository specifies sync-state persistence.
//
//go:generate mockery --name Repository --output=./mocks --filename repository.go --quiet --note "Copyright (c) IdRelay"
type Repository interface {
	// Save persists a new sync-state record.
	Save(ctx context.Context, tenantID string, state SyncState) (SyncState, error)

	// RetrieveByID retrieves a record by id.
	RetrieveByID(ctx context.Context, tenantID, id string) (SyncState, error)

	// RetrieveAll retrieves a page of records matching the page filter,
	// newest first.
	RetrieveAll(ctx context.Context, tenantID string, page Page) (SyncStatesPage, error)
}

// Notifier delivers best-effort operator notifications. Failures are
// logged, never propagated.
//
//go:generate mockery --name Notifier --output=./mocks --filename notifier.go --quiet --note "Copyright (c) IdRelay"
type Notifier interface {
	NotifyConflict(ctx context.Context, conflict transform.Conflict) error
}
