// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"context"

	"github.com/idrelay/idrelay/pkg/errors"
	repoerr "github.com/idrelay/idrelay/pkg/errors/repository"
	svcerr "github.com/idrelay/idrelay/pkg/errors/service"
	"github.com/idrelay/idrelay/pkg/scim"
	"github.com/idrelay/idrelay/pkg/store"
)

var _ Repository = (*ruleRepo)(nil)

type ruleRepo struct {
	store store.Store
}

// NewRepository instantiates a rule repository over the document store.
func NewRepository(s store.Store) Repository {
	return &ruleRepo{store: s}
}

func (repo *ruleRepo) Save(ctx context.Context, tenantID string, rule Rule) (Rule, error) {
	rule.TenantID = ""
	doc, err := scim.ToDocument(rule)
	if err != nil {
		return Rule{}, errors.Wrap(repoerr.ErrMalformedEntity, err)
	}

	if err := repo.store.CreateItem(ctx, store.ContainerRules, tenantID, doc); err != nil {
		if errors.Contains(err, repoerr.ErrConflict) {
			return Rule{}, errors.Wrap(svcerr.ErrUniqueness, err)
		}
		return Rule{}, errors.Wrap(repoerr.ErrCreateEntity, err)
	}

	rule.TenantID = tenantID

	return rule, nil
}

func (repo *ruleRepo) RetrieveByID(ctx context.Context, tenantID, id string) (Rule, error) {
	doc, err := repo.store.ReadItem(ctx, store.ContainerRules, tenantID, id)
	if err != nil {
		return Rule{}, err
	}

	return materialize(doc, tenantID)
}

func (repo *ruleRepo) RetrieveAll(ctx context.Context, tenantID string, page Page) (RulesPage, error) {
	var pred store.Predicate
	if page.ProviderID != "" {
		pred = store.Cond{Path: "providerId", Op: store.CondEq, Value: page.ProviderID}
	}

	items, err := repo.store.QueryItems(ctx, store.ContainerRules, tenantID, pred, store.Page{
		StartIndex: page.StartIndex,
		Count:      page.Count,
		SortBy:     "priority",
	})
	if err != nil {
		return RulesPage{}, errors.Wrap(repoerr.ErrViewEntity, err)
	}

	result := RulesPage{
		Total:      items.Total,
		StartIndex: items.StartIndex,
	}
	for _, doc := range items.Items {
		rule, err := materialize(doc, tenantID)
		if err != nil {
			return RulesPage{}, err
		}
		result.Rules = append(result.Rules, rule)
	}

	return result, nil
}

func (repo *ruleRepo) RetrieveEnabled(ctx context.Context, tenantID, providerID string) ([]Rule, error) {
	pred := store.And{
		store.Cond{Path: "providerId", Op: store.CondEq, Value: providerID},
		store.Cond{Path: "enabled", Op: store.CondEq, Value: true},
	}

	items, err := repo.store.QueryItems(ctx, store.ContainerRules, tenantID, pred, store.Page{
		StartIndex: 1,
		SortBy:     "priority",
	})
	if err != nil {
		return nil, errors.Wrap(repoerr.ErrViewEntity, err)
	}

	rules := make([]Rule, 0, len(items.Items))
	for _, doc := range items.Items {
		rule, err := materialize(doc, tenantID)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return rules, nil
}

func (repo *ruleRepo) Update(ctx context.Context, tenantID string, rule Rule, ifMatch string) (Rule, error) {
	rule.TenantID = ""
	doc, err := scim.ToDocument(rule)
	if err != nil {
		return Rule{}, errors.Wrap(repoerr.ErrMalformedEntity, err)
	}

	if err := repo.store.UpsertItem(ctx, store.ContainerRules, tenantID, doc, ifMatch); err != nil {
		switch {
		case errors.Contains(err, repoerr.ErrVersionConflict):
			return Rule{}, errors.Wrap(svcerr.ErrVersionMismatch, err)
		case errors.Contains(err, repoerr.ErrNotFound):
			return Rule{}, err
		default:
			return Rule{}, errors.Wrap(repoerr.ErrUpdateEntity, err)
		}
	}

	rule.TenantID = tenantID

	return rule, nil
}

func (repo *ruleRepo) Delete(ctx context.Context, tenantID, id, ifMatch string) error {
	if err := repo.store.DeleteItem(ctx, store.ContainerRules, tenantID, id, ifMatch); err != nil {
		if errors.Contains(err, repoerr.ErrVersionConflict) {
			return errors.Wrap(svcerr.ErrVersionMismatch, err)
		}
		return err
	}

	return nil
}

func materialize(doc scim.Document, tenantID string) (Rule, error) {
	var rule Rule
	if err := scim.FromDocument(doc, &rule); err != nil {
		return Rule{}, errors.Wrap(repoerr.ErrMalformedEntity, err)
	}
	rule.TenantID = tenantID

	return rule, nil
}
