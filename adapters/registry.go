// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package adapters

import (
	"sort"
	"sync"

	"github.com/idrelay/idrelay/pkg/errors"
	svcerr "github.com/idrelay/idrelay/pkg/errors/service"
)

type registryKey struct {
	tenantID   string
	providerID string
}

// Registry maps (tenant, provider) pairs onto adapters.
type Registry struct {
	mu       sync.RWMutex
	adapters map[registryKey]Adapter
}

// NewRegistry returns an empty adapter registry.
func NewRegistry() *Registry {
	return &Registry{adapters: make(map[registryKey]Adapter)}
}

// Register binds an adapter to a (tenant, provider) pair, replacing any
// previous binding.
func (r *Registry) Register(tenantID, providerID string, adapter Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters[registryKey{tenantID: tenantID, providerID: providerID}] = adapter
}

// Lookup resolves the adapter of a (tenant, provider) pair.
func (r *Registry) Lookup(tenantID, providerID string) (Adapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	adapter, ok := r.adapters[registryKey{tenantID: tenantID, providerID: providerID}]
	if !ok {
		return nil, errors.Wrap(svcerr.ErrAdapterNotFound, errors.New(providerID))
	}

	return adapter, nil
}

// Providers lists the provider ids registered for a tenant, sorted.
func (r *Registry) Providers(tenantID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0)
	for key := range r.adapters {
		if key.tenantID == tenantID {
			ids = append(ids, key.providerID)
		}
	}
	sort.Strings(ids)

	return ids
}
