// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

// Package providers exposes the per-tenant administrative view of the
// downstream provisioning targets: which adapters a tenant has, whether
// they are reachable, what they can do, and how their connection pools
// are behaving.
package providers

import (
	"context"
	"time"

	"github.com/idrelay/idrelay/adapters"
	"github.com/idrelay/idrelay/pkg/authn"
)

// Health statuses.
const (
	StatusUp   = "up"
	StatusDown = "down"
)

// Provider is a registered downstream target of a tenant.
type Provider struct {
	ID string `json:"id"`
}

// ProvidersPage is the list response for registered providers.
type ProvidersPage struct {
	Total     int        `json:"totalResults"`
	Providers []Provider `json:"providers"`
}

// Health is the outcome of a provider reachability probe.
type Health struct {
	ProviderID string    `json:"providerId"`
	Status     string    `json:"status"`
	Detail     string    `json:"detail,omitempty"`
	CheckedAt  time.Time `json:"checkedAt"`
}

// Service is the provider administration surface.
//
//go:generate mockery --name Service --output=./mocks --filename service.go --quiet --note "Copyright (c) IdRelay"
type Service interface {
	// ListProviders lists the providers registered for the session tenant.
	ListProviders(ctx context.Context, session authn.Session) (ProvidersPage, error)

	// CheckHealth probes a provider and reports reachability. A failed
	// probe is a valid outcome, not an error.
	CheckHealth(ctx context.Context, session authn.Session, providerID string) (Health, error)

	// ViewStats reports connection pool statistics for a provider.
	ViewStats(ctx context.Context, session authn.Session, providerID string) (adapters.Stats, error)

	// ViewCapabilities reports what a provider supports.
	ViewCapabilities(ctx context.Context, session authn.Session, providerID string) (adapters.Capabilities, error)
}
