// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package providers

import (
	"context"
	"time"

	"github.com/idrelay/idrelay/adapters"
	"github.com/idrelay/idrelay/pkg/apiutil"
	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/pkg/errors"
	svcerr "github.com/idrelay/idrelay/pkg/errors/service"
)

// healthTimeout caps a single reachability probe so a hung provider
// cannot pin the admin API.
const healthTimeout = 10 * time.Second

type service struct {
	registry *adapters.Registry
	pool     *adapters.Pool
}

// NewService returns a provider administration service backed by the
// adapter registry and the shared connection pool.
func NewService(registry *adapters.Registry, pool *adapters.Pool) Service {
	return &service{
		registry: registry,
		pool:     pool,
	}
}

func (svc *service) ListProviders(ctx context.Context, session authn.Session) (ProvidersPage, error) {
	if session.TenantID == "" {
		return ProvidersPage{}, errors.Wrap(svcerr.ErrMalformedEntity, apiutil.ErrMissingTenant)
	}

	ids := svc.registry.Providers(session.TenantID)
	providers := make([]Provider, 0, len(ids))
	for _, id := range ids {
		providers = append(providers, Provider{ID: id})
	}

	return ProvidersPage{
		Total:     len(providers),
		Providers: providers,
	}, nil
}

func (svc *service) CheckHealth(ctx context.Context, session authn.Session, providerID string) (Health, error) {
	adapter, err := svc.lookup(session, providerID)
	if err != nil {
		return Health{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	health := Health{
		ProviderID: providerID,
		Status:     StatusUp,
		CheckedAt:  time.Now().UTC(),
	}
	if err := adapter.CheckHealth(ctx); err != nil {
		health.Status = StatusDown
		health.Detail = err.Error()
	}

	return health, nil
}

func (svc *service) ViewStats(ctx context.Context, session authn.Session, providerID string) (adapters.Stats, error) {
	if _, err := svc.lookup(session, providerID); err != nil {
		return adapters.Stats{}, err
	}

	return svc.pool.Stats(session.TenantID + "/" + providerID), nil
}

func (svc *service) ViewCapabilities(ctx context.Context, session authn.Session, providerID string) (adapters.Capabilities, error) {
	adapter, err := svc.lookup(session, providerID)
	if err != nil {
		return adapters.Capabilities{}, err
	}

	caps, err := adapter.GetCapabilities(ctx)
	if err != nil {
		return adapters.Capabilities{}, errors.Wrap(svcerr.ErrViewEntity, adapters.ServiceError(err))
	}

	return caps, nil
}

func (svc *service) lookup(session authn.Session, providerID string) (adapters.Adapter, error) {
	if session.TenantID == "" {
		return nil, errors.Wrap(svcerr.ErrMalformedEntity, apiutil.ErrMissingTenant)
	}

	return svc.registry.Lookup(session.TenantID, providerID)
}
