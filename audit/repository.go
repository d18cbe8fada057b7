// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package audit

import (
	"context"
	"time"

	"github.com/idrelay/idrelay/pkg/errors"
	repoerr "github.com/idrelay/idrelay/pkg/errors/repository"
	"github.com/idrelay/idrelay/pkg/scim"
	"github.com/idrelay/idrelay/pkg/store"
)

var _ Repository = (*auditRepo)(nil)

type auditRepo struct {
	store store.Store
}

// NewRepository returns an audit repository over the document store.
func NewRepository(st store.Store) Repository {
	return &auditRepo{store: st}
}

func (repo *auditRepo) Save(ctx context.Context, tenantID string, entry Entry) error {
	entry.TenantID = ""
	doc, err := scim.ToDocument(entry)
	if err != nil {
		return errors.Wrap(repoerr.ErrCreateEntity, err)
	}
	if err := repo.store.CreateItem(ctx, store.ContainerAudit, tenantID, doc); err != nil {
		return errors.Wrap(repoerr.ErrCreateEntity, err)
	}

	return nil
}

func (repo *auditRepo) RetrieveAll(ctx context.Context, tenantID string, page Page) (EntriesPage, error) {
	conds := []store.Predicate{}
	if page.ActorID != "" {
		conds = append(conds, store.Cond{Path: "actorId", Op: store.CondEq, Value: page.ActorID})
	}
	if page.Operation != "" {
		conds = append(conds, store.Cond{Path: "operation", Op: store.CondEq, Value: page.Operation})
	}
	if page.ResourceType != "" {
		conds = append(conds, store.Cond{Path: "resourceType", Op: store.CondEq, Value: page.ResourceType})
	}
	if page.ResourceID != "" {
		conds = append(conds, store.Cond{Path: "resourceId", Op: store.CondEq, Value: page.ResourceID})
	}
	if !page.Before.IsZero() {
		conds = append(conds, store.Cond{Path: "occurredAt", Op: store.CondLt, Value: page.Before.UTC().Format(time.RFC3339Nano)})
	}
	if !page.After.IsZero() {
		conds = append(conds, store.Cond{Path: "occurredAt", Op: store.CondGe, Value: page.After.UTC().Format(time.RFC3339Nano)})
	}
	var pred store.Predicate
	switch len(conds) {
	case 0:
		pred = nil
	case 1:
		pred = conds[0]
	default:
		pred = store.And(conds)
	}

	items, err := repo.store.QueryItems(ctx, store.ContainerAudit, tenantID, pred, store.Page{
		StartIndex: page.StartIndex,
		Count:      page.Count,
		SortBy:     "id",
		Descending: true,
	})
	if err != nil {
		return EntriesPage{}, errors.Wrap(repoerr.ErrViewEntity, err)
	}

	entries := make([]Entry, 0, len(items.Items))
	for _, doc := range items.Items {
		var entry Entry
		if err := scim.FromDocument(doc, &entry); err != nil {
			return EntriesPage{}, errors.Wrap(repoerr.ErrViewEntity, err)
		}
		entry.TenantID = tenantID
		entries = append(entries, entry)
	}

	return EntriesPage{
		Total:        items.Total,
		StartIndex:   items.StartIndex,
		ItemsPerPage: len(entries),
		Entries:      entries,
	}, nil
}
