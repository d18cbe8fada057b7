// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

// Package audit records who did what to which resource. Entries are
// written asynchronously through a bounded queue so a slow audit store
// can never fail or stall a user-visible request.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/pkg/scim"
)

// DefTTL is the retention applied to entries, in seconds (90 days).
const DefTTL int64 = 7776000

// Outcomes of an audited operation.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Entry is one audit record.
type Entry struct {
	ID           string        `json:"id"`
	TenantID     string        `json:"tenantId,omitempty"`
	ActorID      string        `json:"actorId"`
	ActorType    string        `json:"actorType,omitempty"`
	Operation    string        `json:"operation"`
	ResourceType string        `json:"resourceType,omitempty"`
	ResourceID   string        `json:"resourceId,omitempty"`
	Outcome      string        `json:"outcome"`
	Detail       string        `json:"detail,omitempty"`
	Snapshot     scim.Document `json:"snapshot,omitempty"`
	OccurredAt   time.Time     `json:"occurredAt"`
	TTL          int64         `json:"ttl"`
}

// Page filters audit listings. Before and After bound occurredAt.
type Page struct {
	StartIndex   int
	Count        int
	ActorID      string
	Operation    string
	ResourceType string
	ResourceID   string
	Before       time.Time
	After        time.Time
}

// EntriesPage is a page of audit entries with the total match count.
type EntriesPage struct {
	Total        uint64  `json:"totalResults"`
	StartIndex   int     `json:"startIndex"`
	ItemsPerPage int     `json:"itemsPerPage"`
	Entries      []Entry `json:"Resources"`
}

func (page EntriesPage) MarshalJSON() ([]byte, error) {
	type Alias EntriesPage
	a := struct {
		Alias
	}{
		Alias: Alias(page),
	}

	if a.Entries == nil {
		a.Entries = make([]Entry, 0)
	}

	return json.Marshal(a)
}

// Sink accepts entries for asynchronous persistence. Submit never
// blocks; entries are dropped with a log line when the queue is full.
//
//go:generate mockery --name Sink --output=./mocks --filename sink.go --quiet --note "Copyright (c) IdRelay"
type Sink interface {
	Submit(entry Entry)

	// Close drains the queue and stops the writer.
	Close()
}

// Service is the tenant-scoped audit read surface.
//
//go:generate mockery --name Service --output=./mocks --filename service.go --quiet --note "Copyright (c) IdRelay"
type Service interface {
	// ListEntries retrieves a page of entries matching the filters,
	// newest first.
	ListEntries(ctx context.Context, session authn.Session, page Page) (EntriesPage, error)
}

// Repository specifies audit persistence.
//
//go:generate mockery --name Repository --output=./mocks --filename repository.go --quiet --note "Copyright (c) IdRelay"
type Repository interface {
	// Save persists an entry.
	Save(ctx context.Context, tenantID string, entry Entry) error

	// RetrieveAll retrieves a page of entries matching the filters,
	// newest first.
	RetrieveAll(ctx context.Context, tenantID string, page Page) (EntriesPage, error)
}
