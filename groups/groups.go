// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package groups

import (
	"context"
	"encoding/json"

	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/pkg/scim"
)

// Page is used to filter and page group listings. Filter carries the raw
// filter expression; StartIndex is 1-based.
type Page struct {
	StartIndex int    `json:"startIndex"`
	Count      int    `json:"count"`
	Filter     string `json:"filter,omitempty"`
	SortBy     string `json:"sortBy,omitempty"`
	SortOrder  string `json:"sortOrder,omitempty"`
}

// GroupsPage contains a page of groups together with the total match count.
type GroupsPage struct {
	Total        uint64
	StartIndex   int
	ItemsPerPage int
	Groups       []scim.Group
}

func (page GroupsPage) MarshalJSON() ([]byte, error) {
	type Alias GroupsPage
	a := struct {
		Alias
	}{
		Alias: Alias(page),
	}

	if a.Groups == nil {
		a.Groups = make([]scim.Group, 0)
	}

	return json.Marshal(a)
}

// Service specifies an API for managing group resources. Membership is
// manipulated through UpdateGroup and PatchGroup; member additions are
// set-semantic, so adding a present member is a no-op.
//
//go:generate mockery --name Service --output=./mocks --filename service.go --quiet --note "Copyright (c) IdRelay"
type Service interface {
	// CreateGroup adds a new group within the session tenant and returns
	// it with server-assigned id, metadata and version.
	CreateGroup(ctx context.Context, session authn.Session, group scim.Group) (scim.Group, error)

	// ViewGroup retrieves a group by id.
	ViewGroup(ctx context.Context, session authn.Session, id string) (scim.Group, error)

	// ListGroups retrieves a page of groups matching the filter.
	ListGroups(ctx context.Context, session authn.Session, page Page) (GroupsPage, error)

	// UpdateGroup replaces the group resource, members included. A
	// non-empty ifMatch is compared against the stored version first.
	UpdateGroup(ctx context.Context, session authn.Session, group scim.Group, ifMatch string) (scim.Group, error)

	// PatchGroup applies the operations atomically and returns the
	// modified group.
	PatchGroup(ctx context.Context, session authn.Session, id string, ops []scim.PatchOperation, ifMatch string) (scim.Group, error)

	// DeleteGroup removes the group by id, honoring ifMatch.
	DeleteGroup(ctx context.Context, session authn.Session, id string, ifMatch string) error
}

// Repository specifies group persistence API.
//
//go:generate mockery --name Repository --output=./mocks --filename repository.go --quiet --note "Copyright (c) IdRelay"
type Repository interface {
	// Save persists a new group. Natural-key collisions surface as a
	// conflict error.
	Save(ctx context.Context, tenantID string, group scim.Group) (scim.Group, error)

	// RetrieveByID retrieves a group by its unique identifier.
	RetrieveByID(ctx context.Context, tenantID, id string) (scim.Group, error)

	// RetrieveByDisplayName retrieves a group by its tenant-scoped
	// natural key. The comparison is exact.
	RetrieveByDisplayName(ctx context.Context, tenantID, displayName string) (scim.Group, error)

	// RetrieveAll retrieves a page of groups matching the filter.
	RetrieveAll(ctx context.Context, tenantID string, page Page) (GroupsPage, error)

	// Update replaces the stored group after the version precondition check.
	Update(ctx context.Context, tenantID string, group scim.Group, ifMatch string) (scim.Group, error)

	// Delete removes the group after the version precondition check.
	Delete(ctx context.Context, tenantID, id, ifMatch string) error
}
