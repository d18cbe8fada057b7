// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package groups

import (
	"context"
	"strings"

	"github.com/idrelay/idrelay/pkg/errors"
	repoerr "github.com/idrelay/idrelay/pkg/errors/repository"
	svcerr "github.com/idrelay/idrelay/pkg/errors/service"
	"github.com/idrelay/idrelay/pkg/scim"
	"github.com/idrelay/idrelay/pkg/scim/filter"
	"github.com/idrelay/idrelay/pkg/store"
)

var _ Repository = (*groupRepo)(nil)

// sortableAttributes maps SCIM sortBy values onto store field paths.
var sortableAttributes = map[string]string{
	"id":                "id",
	"displayname":       "displayName",
	"meta.created":      "meta.created",
	"meta.lastmodified": "meta.lastModified",
}

type groupRepo struct {
	store store.Store
}

// NewRepository instantiates a group repository over the document store.
func NewRepository(s store.Store) Repository {
	return &groupRepo{store: s}
}

func (repo *groupRepo) Save(ctx context.Context, tenantID string, group scim.Group) (scim.Group, error) {
	group.TenantID = ""
	doc, err := scim.ToDocument(group)
	if err != nil {
		return scim.Group{}, errors.Wrap(repoerr.ErrMalformedEntity, err)
	}

	if err := repo.store.CreateItem(ctx, store.ContainerGroups, tenantID, doc); err != nil {
		if errors.Contains(err, repoerr.ErrConflict) {
			return scim.Group{}, errors.Wrap(svcerr.ErrUniqueness, err)
		}
		return scim.Group{}, errors.Wrap(repoerr.ErrCreateEntity, err)
	}

	group.TenantID = tenantID

	return group, nil
}

func (repo *groupRepo) RetrieveByID(ctx context.Context, tenantID, id string) (scim.Group, error) {
	doc, err := repo.store.ReadItem(ctx, store.ContainerGroups, tenantID, id)
	if err != nil {
		return scim.Group{}, err
	}

	return materialize(doc, tenantID)
}

func (repo *groupRepo) RetrieveByDisplayName(ctx context.Context, tenantID, displayName string) (scim.Group, error) {
	pred := store.Cond{Path: "displayName", Op: store.CondEq, Value: displayName}
	items, err := repo.store.QueryItems(ctx, store.ContainerGroups, tenantID, pred, store.Page{StartIndex: 1, Count: 1})
	if err != nil {
		return scim.Group{}, errors.Wrap(repoerr.ErrViewEntity, err)
	}
	if len(items.Items) == 0 {
		return scim.Group{}, repoerr.ErrNotFound
	}

	return materialize(items.Items[0], tenantID)
}

func (repo *groupRepo) RetrieveAll(ctx context.Context, tenantID string, page Page) (GroupsPage, error) {
	pred, err := compileFilter(page.Filter)
	if err != nil {
		return GroupsPage{}, err
	}
	storePage, err := compilePage(page)
	if err != nil {
		return GroupsPage{}, err
	}

	items, err := repo.store.QueryItems(ctx, store.ContainerGroups, tenantID, pred, storePage)
	if err != nil {
		return GroupsPage{}, errors.Wrap(repoerr.ErrViewEntity, err)
	}

	result := GroupsPage{
		Total:        items.Total,
		StartIndex:   items.StartIndex,
		ItemsPerPage: len(items.Items),
	}
	for _, doc := range items.Items {
		group, err := materialize(doc, tenantID)
		if err != nil {
			return GroupsPage{}, err
		}
		result.Groups = append(result.Groups, group)
	}

	return result, nil
}

func (repo *groupRepo) Update(ctx context.Context, tenantID string, group scim.Group, ifMatch string) (scim.Group, error) {
	group.TenantID = ""
	doc, err := scim.ToDocument(group)
	if err != nil {
		return scim.Group{}, errors.Wrap(repoerr.ErrMalformedEntity, err)
	}

	if err := repo.store.UpsertItem(ctx, store.ContainerGroups, tenantID, doc, ifMatch); err != nil {
		switch {
		case errors.Contains(err, repoerr.ErrVersionConflict):
			return scim.Group{}, errors.Wrap(svcerr.ErrVersionMismatch, err)
		case errors.Contains(err, repoerr.ErrConflict):
			return scim.Group{}, errors.Wrap(svcerr.ErrUniqueness, err)
		case errors.Contains(err, repoerr.ErrNotFound):
			return scim.Group{}, err
		default:
			return scim.Group{}, errors.Wrap(repoerr.ErrUpdateEntity, err)
		}
	}

	group.TenantID = tenantID

	return group, nil
}

func (repo *groupRepo) Delete(ctx context.Context, tenantID, id, ifMatch string) error {
	if err := repo.store.DeleteItem(ctx, store.ContainerGroups, tenantID, id, ifMatch); err != nil {
		if errors.Contains(err, repoerr.ErrVersionConflict) {
			return errors.Wrap(svcerr.ErrVersionMismatch, err)
		}
		return err
	}

	return nil
}

func materialize(doc scim.Document, tenantID string) (scim.Group, error) {
	var group scim.Group
	if err := scim.FromDocument(doc, &group); err != nil {
		return scim.Group{}, errors.Wrap(repoerr.ErrMalformedEntity, err)
	}
	group.TenantID = tenantID

	return group, nil
}

// compileFilter parses and translates the raw filter expression. The
// empty filter matches everything.
func compileFilter(raw string) (store.Predicate, error) {
	if raw == "" {
		return nil, nil
	}
	expr, err := filter.Parse(raw)
	if err != nil {
		return nil, errors.Wrap(svcerr.ErrInvalidFilter, err)
	}

	return store.Translate(expr)
}

func compilePage(page Page) (store.Page, error) {
	sortBy := ""
	if page.SortBy != "" {
		mapped, ok := sortableAttributes[strings.ToLower(page.SortBy)]
		if !ok {
			return store.Page{}, errors.Wrap(svcerr.ErrInvalidPath, errors.New("unsortable attribute "+page.SortBy))
		}
		sortBy = mapped
	}

	return store.Page{
		StartIndex: page.StartIndex,
		Count:      page.Count,
		SortBy:     sortBy,
		Descending: page.SortOrder == "descending",
	}, nil
}
