// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"context"
	"time"

	"github.com/idrelay/idrelay"
	"github.com/idrelay/idrelay/pkg/apiutil"
	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/pkg/errors"
	repoerr "github.com/idrelay/idrelay/pkg/errors/repository"
	svcerr "github.com/idrelay/idrelay/pkg/errors/service"
	"github.com/idrelay/idrelay/pkg/scim"
)

type service struct {
	repo       Repository
	cache      Cache
	tester     Tester
	idProvider idrelay.IDProvider
}

// NewService returns a new rule management service implementation.
func NewService(repo Repository, cache Cache, tester Tester, idp idrelay.IDProvider) Service {
	return &service{
		repo:       repo,
		cache:      cache,
		tester:     tester,
		idProvider: idp,
	}
}

func (svc *service) CreateRule(ctx context.Context, session authn.Session, rule Rule) (Rule, error) {
	if session.TenantID == "" {
		return Rule{}, errors.Wrap(svcerr.ErrMalformedEntity, apiutil.ErrMissingTenant)
	}
	if err := rule.Validate(); err != nil {
		return Rule{}, errors.Wrap(svcerr.ErrMalformedEntity, err)
	}

	id, err := svc.idProvider.ID()
	if err != nil {
		return Rule{}, errors.Wrap(svcerr.ErrUniqueID, err)
	}
	now := time.Now().UTC()
	rule.ID = id
	rule.TenantID = session.TenantID
	rule.Meta = &scim.Meta{
		Created:      now,
		LastModified: now,
		Version:      scim.FirstVersion(),
	}

	saved, err := svc.repo.Save(ctx, session.TenantID, rule)
	if err != nil {
		return Rule{}, err
	}
	if err := svc.cache.Remove(ctx, session.TenantID, saved.ProviderID); err != nil {
		return Rule{}, errors.Wrap(svcerr.ErrCreateEntity, err)
	}

	return saved, nil
}

func (svc *service) ViewRule(ctx context.Context, session authn.Session, id string) (Rule, error) {
	rule, err := svc.repo.RetrieveByID(ctx, session.TenantID, id)
	if err != nil {
		return Rule{}, errors.Wrap(svcerr.ErrNotFound, err)
	}

	return rule, nil
}

func (svc *service) ListRules(ctx context.Context, session authn.Session, page Page) (RulesPage, error) {
	rulesPage, err := svc.repo.RetrieveAll(ctx, session.TenantID, page)
	if err != nil {
		return RulesPage{}, err
	}

	return rulesPage, nil
}

func (svc *service) UpdateRule(ctx context.Context, session authn.Session, rule Rule, ifMatch string) (Rule, error) {
	stored, err := svc.repo.RetrieveByID(ctx, session.TenantID, rule.ID)
	if err != nil {
		return Rule{}, errors.Wrap(svcerr.ErrNotFound, err)
	}
	if err := rule.Validate(); err != nil {
		return Rule{}, errors.Wrap(svcerr.ErrMalformedEntity, err)
	}

	rule.TenantID = session.TenantID
	rule.Meta = nextMeta(stored.Meta)

	updated, err := svc.repo.Update(ctx, session.TenantID, rule, ifMatch)
	if err != nil {
		return Rule{}, err
	}
	if err := svc.invalidate(ctx, session.TenantID, stored.ProviderID, updated.ProviderID); err != nil {
		return Rule{}, err
	}

	return updated, nil
}

func (svc *service) DeleteRule(ctx context.Context, session authn.Session, id string, ifMatch string) error {
	stored, err := svc.repo.RetrieveByID(ctx, session.TenantID, id)
	if err != nil {
		return errors.Wrap(svcerr.ErrNotFound, err)
	}

	if err := svc.repo.Delete(ctx, session.TenantID, id, ifMatch); err != nil {
		return err
	}

	return svc.invalidate(ctx, session.TenantID, stored.ProviderID, stored.ProviderID)
}

func (svc *service) EnableRule(ctx context.Context, session authn.Session, id string) (Rule, error) {
	return svc.setEnabled(ctx, session, id, true)
}

func (svc *service) DisableRule(ctx context.Context, session authn.Session, id string) (Rule, error) {
	return svc.setEnabled(ctx, session, id, false)
}

func (svc *service) TestRule(ctx context.Context, session authn.Session, rule Rule, inputs []string) ([]TestResult, error) {
	if err := rule.Validate(); err != nil {
		return nil, errors.Wrap(svcerr.ErrMalformedEntity, err)
	}
	rule.TenantID = session.TenantID

	return svc.tester.TestRule(ctx, rule, inputs)
}

func (svc *service) ListEnabled(ctx context.Context, tenantID, providerID string) ([]Rule, error) {
	cached, err := svc.cache.Get(ctx, tenantID, providerID)
	if err == nil {
		return cached, nil
	}
	if !errors.Contains(err, repoerr.ErrNotFound) {
		return nil, err
	}

	enabled, err := svc.repo.RetrieveEnabled(ctx, tenantID, providerID)
	if err != nil {
		return nil, err
	}
	if err := svc.cache.Save(ctx, tenantID, providerID, enabled); err != nil {
		return nil, err
	}

	return enabled, nil
}

func (svc *service) setEnabled(ctx context.Context, session authn.Session, id string, enabled bool) (Rule, error) {
	stored, err := svc.repo.RetrieveByID(ctx, session.TenantID, id)
	if err != nil {
		return Rule{}, errors.Wrap(svcerr.ErrNotFound, err)
	}
	if stored.Enabled == enabled {
		return stored, nil
	}

	stored.Enabled = enabled
	stored.Meta = nextMeta(stored.Meta)

	updated, err := svc.repo.Update(ctx, session.TenantID, stored, "")
	if err != nil {
		return Rule{}, err
	}
	if err := svc.cache.Remove(ctx, session.TenantID, updated.ProviderID); err != nil {
		return Rule{}, errors.Wrap(svcerr.ErrUpdateEntity, err)
	}

	return updated, nil
}

// invalidate drops the snapshots of both the previous and the new
// provider of a mutated rule.
func (svc *service) invalidate(ctx context.Context, tenantID, previous, current string) error {
	if err := svc.cache.Remove(ctx, tenantID, previous); err != nil {
		return errors.Wrap(svcerr.ErrUpdateEntity, err)
	}
	if current != previous {
		if err := svc.cache.Remove(ctx, tenantID, current); err != nil {
			return errors.Wrap(svcerr.ErrUpdateEntity, err)
		}
	}

	return nil
}

func nextMeta(stored *scim.Meta) *scim.Meta {
	meta := scim.Meta{LastModified: time.Now().UTC()}
	if stored != nil {
		meta.Created = stored.Created
		meta.Version = scim.NextVersion(stored.Version)
	} else {
		meta.Version = scim.FirstVersion()
	}

	return &meta
}
