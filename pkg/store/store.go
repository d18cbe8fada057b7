// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

// Package store defines the partitioned document store contract the
// repositories are built on, the backend-neutral query predicate model,
// and the SCIM filter translator. Backends live in the subpackages
// postgres, mongodb and memory.
package store

import (
	"context"

	"github.com/idrelay/idrelay/pkg/scim"
)

// Container names the five persisted collections.
type Container string

const (
	ContainerUsers     Container = "users"
	ContainerGroups    Container = "groups"
	ContainerSyncState Container = "sync-state"
	ContainerRules     Container = "transformation-rules"
	ContainerAudit     Container = "audit-logs"
)

// NaturalKey returns the tenant-scoped unique attribute of a container,
// or empty when the container has none. userName and displayName
// uniqueness is case-sensitive.
func (c Container) NaturalKey() string {
	switch c {
	case ContainerUsers:
		return "userName"
	case ContainerGroups:
		return "displayName"
	default:
		return ""
	}
}

// Page carries 1-based paging and sorting for queries.
type Page struct {
	StartIndex int
	Count      int
	SortBy     string
	Descending bool
}

// ItemsPage is a page of matching documents.
type ItemsPage struct {
	Items      []scim.Document
	Total      uint64
	StartIndex int
}

// Store is the partitioned document contract. The partition key is the
// tenant id and is a required argument on every call: backends refuse
// empty partition keys, which keeps every query tenant-scoped by
// construction. Not-found is signaled as repoerr.ErrNotFound, natural-key
// collisions as repoerr.ErrConflict, stale version preconditions as
// repoerr.ErrVersionConflict.
type Store interface {
	// CreateItem persists a new document. The document must carry an id
	// and, for containers with a natural key, that attribute.
	CreateItem(ctx context.Context, container Container, partitionKey string, doc scim.Document) error

	// ReadItem is a point read by id within the partition.
	ReadItem(ctx context.Context, container Container, partitionKey, id string) (scim.Document, error)

	// UpsertItem replaces the stored document. A non-empty ifMatch is
	// compared against the stored meta.version before the write.
	UpsertItem(ctx context.Context, container Container, partitionKey string, doc scim.Document, ifMatch string) error

	// DeleteItem removes the document by id, honoring ifMatch.
	DeleteItem(ctx context.Context, container Container, partitionKey, id string, ifMatch string) error

	// QueryItems evaluates the predicate within the partition and
	// returns the requested page plus the total match count.
	QueryItems(ctx context.Context, container Container, partitionKey string, pred Predicate, page Page) (ItemsPage, error)
}

// DocumentID extracts the id attribute of a document.
func DocumentID(doc scim.Document) string {
	id, _ := doc["id"].(string)
	return id
}

// DocumentVersion extracts meta.version of a document.
func DocumentVersion(doc scim.Document) string {
	meta, ok := doc["meta"].(map[string]interface{})
	if !ok {
		return ""
	}
	version, _ := meta["version"].(string)
	return version
}

// DocumentString extracts a top-level string attribute of a document.
func DocumentString(doc scim.Document, key string) string {
	s, _ := doc[key].(string)
	return s
}
