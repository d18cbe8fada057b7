// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package users

import (
	"context"
	"encoding/json"

	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/pkg/scim"
)

// Page is used to filter and page user listings. Filter carries the raw
// filter expression; StartIndex is 1-based.
type Page struct {
	StartIndex int    `json:"startIndex"`
	Count      int    `json:"count"`
	Filter     string `json:"filter,omitempty"`
	SortBy     string `json:"sortBy,omitempty"`
	SortOrder  string `json:"sortOrder,omitempty"`
}

// UsersPage contains a page of users together with the total match count.
type UsersPage struct {
	Total        uint64
	StartIndex   int
	ItemsPerPage int
	Users        []scim.User
}

func (page UsersPage) MarshalJSON() ([]byte, error) {
	type Alias UsersPage
	a := struct {
		Alias
	}{
		Alias: Alias(page),
	}

	if a.Users == nil {
		a.Users = make([]scim.User, 0)
	}

	return json.Marshal(a)
}

// Service specifies an API for managing user resources.
//
//go:generate mockery --name Service --output=./mocks --filename service.go --quiet --note "Copyright (c) IdRelay"
type Service interface {
	// CreateUser adds a new user within the session tenant and returns it
	// with server-assigned id, metadata and version.
	CreateUser(ctx context.Context, session authn.Session, user scim.User) (scim.User, error)

	// ViewUser retrieves a user by id.
	ViewUser(ctx context.Context, session authn.Session, id string) (scim.User, error)

	// ListUsers retrieves a page of users matching the filter.
	ListUsers(ctx context.Context, session authn.Session, page Page) (UsersPage, error)

	// UpdateUser replaces the user resource. Server-controlled attributes
	// of the stored resource are preserved. A non-empty ifMatch is
	// compared against the stored version first.
	UpdateUser(ctx context.Context, session authn.Session, user scim.User, ifMatch string) (scim.User, error)

	// PatchUser applies the operations atomically and returns the
	// modified user. Either all operations apply or none do.
	PatchUser(ctx context.Context, session authn.Session, id string, ops []scim.PatchOperation, ifMatch string) (scim.User, error)

	// DeleteUser removes the user by id, honoring ifMatch.
	DeleteUser(ctx context.Context, session authn.Session, id string, ifMatch string) error
}

// Repository specifies user persistence API.
//
//go:generate mockery --name Repository --output=./mocks --filename repository.go --quiet --note "Copyright (c) IdRelay"
type Repository interface {
	// Save persists a new user. Natural-key collisions surface as a
	// conflict error.
	Save(ctx context.Context, tenantID string, user scim.User) (scim.User, error)

	// RetrieveByID retrieves a user by its unique identifier.
	RetrieveByID(ctx context.Context, tenantID, id string) (scim.User, error)

	// RetrieveByUserName retrieves a user by its tenant-scoped natural
	// key. The comparison is exact.
	RetrieveByUserName(ctx context.Context, tenantID, userName string) (scim.User, error)

	// RetrieveAll retrieves a page of users matching the filter.
	RetrieveAll(ctx context.Context, tenantID string, page Page) (UsersPage, error)

	// Update replaces the stored user after the version precondition check.
	Update(ctx context.Context, tenantID string, user scim.User, ifMatch string) (scim.User, error)

	// Delete removes the user after the version precondition check.
	Delete(ctx context.Context, tenantID, id, ifMatch string) error
}
