// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"context"

	"github.com/idrelay/idrelay/pkg/errors"
	repoerr "github.com/idrelay/idrelay/pkg/errors/repository"
	"github.com/idrelay/idrelay/pkg/scim"
	"github.com/idrelay/idrelay/pkg/store"
)

var _ Repository = (*syncRepo)(nil)

type syncRepo struct {
	store store.Store
}

// NewRepository returns a sync-state repository over the document store.
func NewRepository(st store.Store) Repository {
	return &syncRepo{store: st}
}

func (repo *syncRepo) Save(ctx context.Context, tenantID string, state SyncState) (SyncState, error) {
	state.TenantID = ""
	doc, err := scim.ToDocument(state)
	if err != nil {
		return SyncState{}, errors.Wrap(repoerr.ErrCreateEntity, err)
	}
	if err := repo.store.CreateItem(ctx, store.ContainerSyncState, tenantID, doc); err != nil {
		return SyncState{}, errors.Wrap(repoerr.ErrCreateEntity, err)
	}
	state.TenantID = tenantID

	return state, nil
}

func (repo *syncRepo) RetrieveByID(ctx context.Context, tenantID, id string) (SyncState, error) {
	doc, err := repo.store.ReadItem(ctx, store.ContainerSyncState, tenantID, id)
	if err != nil {
		return SyncState{}, errors.Wrap(repoerr.ErrViewEntity, err)
	}

	return materialize(doc, tenantID)
}

func (repo *syncRepo) RetrieveAll(ctx context.Context, tenantID string, page Page) (SyncStatesPage, error) {
	conds := []store.Predicate{}
	if page.ProviderID != "" {
		conds = append(conds, store.Cond{Path: "providerId", Op: store.CondEq, Value: page.ProviderID})
	}
	if page.Status != "" {
		conds = append(conds, store.Cond{Path: "status", Op: store.CondEq, Value: page.Status})
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

	items, err := repo.store.QueryItems(ctx, store.ContainerSyncState, tenantID, pred, store.Page{
		StartIndex: page.StartIndex,
		Count:      page.Count,
		SortBy:     "id",
		Descending: true,
	})
	if err != nil {
		return SyncStatesPage{}, errors.Wrap(repoerr.ErrViewEntity, err)
	}

	states := make([]SyncState, 0, len(items.Items))
	for _, doc := range items.Items {
		state, err := materialize(doc, tenantID)
		if err != nil {
			return SyncStatesPage{}, err
		}
		states = append(states, state)
	}

	return SyncStatesPage{
		Total:        items.Total,
		StartIndex:   items.StartIndex,
		ItemsPerPage: len(states),
		States:       states,
	}, nil
}

func materialize(doc scim.Document, tenantID string) (SyncState, error) {
	var state SyncState
	if err := scim.FromDocument(doc, &state); err != nil {
		return SyncState{}, errors.Wrap(repoerr.ErrViewEntity, err)
	}
	state.TenantID = tenantID

	return state, nil
}
