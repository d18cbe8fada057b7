// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package users

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

var _ Repository = (*userRepo)(nil)

// sortableAttributes maps SCIM sortBy values onto store field paths.
var sortableAttributes = map[string]string{
	"id":                "id",
	"username":          "userName",
	"displayname":       "displayName",
	"meta.created":      "meta.created",
	"meta.lastmodified": "meta.lastModified",
}

type userRepo struct {
	store store.Store
}

// NewRepository instantiates a user repository over the document store.
func NewRepository(s store.Store) Repository {
	return &userRepo{store: s}
}

func (repo *userRepo) Save(ctx context.Context, tenantID string, user scim.User) (scim.User, error) {
	user.TenantID = ""
	doc, err := scim.ToDocument(user)
	if err != nil {
		return scim.User{}, errors.Wrap(repoerr.ErrMalformedEntity, err)
	}

	if err := repo.store.CreateItem(ctx, store.ContainerUsers, tenantID, doc); err != nil {
		if errors.Contains(err, repoerr.ErrConflict) {
			return scim.User{}, errors.Wrap(svcerr.ErrUniqueness, err)
		}
		return scim.User{}, errors.Wrap(repoerr.ErrCreateEntity, err)
	}

	user.TenantID = tenantID

	return user, nil
}

func (repo *userRepo) RetrieveByID(ctx context.Context, tenantID, id string) (scim.User, error) {
	doc, err := repo.store.ReadItem(ctx, store.ContainerUsers, tenantID, id)
	if err != nil {
		return scim.User{}, err
	}

	return materialize(doc, tenantID)
}

func (repo *userRepo) RetrieveByUserName(ctx context.Context, tenantID, userName string) (scim.User, error) {
	pred := store.Cond{Path: "userName", Op: store.CondEq, Value: userName}
	items, err := repo.store.QueryItems(ctx, store.ContainerUsers, tenantID, pred, store.Page{StartIndex: 1, Count: 1})
	if err != nil {
		return scim.User{}, errors.Wrap(repoerr.ErrViewEntity, err)
	}
	if len(items.Items) == 0 {
		return scim.User{}, repoerr.ErrNotFound
	}

	return materialize(items.Items[0], tenantID)
}

func (repo *userRepo) RetrieveAll(ctx context.Context, tenantID string, page Page) (UsersPage, error) {
	pred, err := compileFilter(page.Filter)
	if err != nil {
		return UsersPage{}, err
	}
	storePage, err := compilePage(page)
	if err != nil {
		return UsersPage{}, err
	}

	items, err := repo.store.QueryItems(ctx, store.ContainerUsers, tenantID, pred, storePage)
	if err != nil {
		return UsersPage{}, errors.Wrap(repoerr.ErrViewEntity, err)
	}

	result := UsersPage{
		Total:        items.Total,
		StartIndex:   items.StartIndex,
		ItemsPerPage: len(items.Items),
	}
	for _, doc := range items.Items {
		user, err := materialize(doc, tenantID)
		if err != nil {
			return UsersPage{}, err
		}
		result.Users = append(result.Users, user)
	}

	return result, nil
}

func (repo *userRepo) Update(ctx context.Context, tenantID string, user scim.User, ifMatch string) (scim.User, error) {
	user.TenantID = ""
	doc, err := scim.ToDocument(user)
	if err != nil {
		return scim.User{}, errors.Wrap(repoerr.ErrMalformedEntity, err)
	}

	if err := repo.store.UpsertItem(ctx, store.ContainerUsers, tenantID, doc, ifMatch); err != nil {
		switch {
		case errors.Contains(err, repoerr.ErrVersionConflict):
			return scim.User{}, errors.Wrap(svcerr.ErrVersionMismatch, err)
		case errors.Contains(err, repoerr.ErrConflict):
			return scim.User{}, errors.Wrap(svcerr.ErrUniqueness, err)
		case errors.Contains(err, repoerr.ErrNotFound):
			return scim.User{}, err
		default:
			return scim.User{}, errors.Wrap(repoerr.ErrUpdateEntity, err)
		}
	}

	user.TenantID = tenantID

	return user, nil
}

func (repo *userRepo) Delete(ctx context.Context, tenantID, id, ifMatch string) error {
	if err := repo.store.DeleteItem(ctx, store.ContainerUsers, tenantID, id, ifMatch); err != nil {
		if errors.Contains(err, repoerr.ErrVersionConflict) {
			return errors.Wrap(svcerr.ErrVersionMismatch, err)
		}
		return err
	}

	return nil
}

func materialize(doc scim.Document, tenantID string) (scim.User, error) {
	var user scim.User
	if err := scim.FromDocument(doc, &user); err != nil {
		return scim.User{}, errors.Wrap(repoerr.ErrMalformedEntity, err)
	}
	user.TenantID = tenantID

	return user, nil
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
