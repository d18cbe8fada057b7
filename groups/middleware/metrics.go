// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package middleware

import (
	"context"
	"time"

	"github.com/go-kit/kit/metrics"

	"github.com/idrelay/idrelay/groups"
	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/pkg/scim"
)

var _ groups.Service = (*metricsMiddleware)(nil)

type metricsMiddleware struct {
	counter metrics.Counter
	latency metrics.Histogram
	svc     groups.Service
}

// MetricsMiddleware instruments the group service by tracking request
// count and latency.
func MetricsMiddleware(svc groups.Service, counter metrics.Counter, latency metrics.Histogram) groups.Service {
	return &metricsMiddleware{
		counter: counter,
		latency: latency,
		svc:     svc,
	}
}

func (ms *metricsMiddleware) CreateGroup(ctx context.Context, session authn.Session, group scim.Group) (scim.Group, error) {
	defer func(begin time.Time) {
		ms.counter.With("method", "create_group").Add(1)
		ms.latency.With("method", "create_group").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return ms.svc.CreateGroup(ctx, session, group)
}

func (ms *metricsMiddleware) ViewGroup(ctx context.Context, session authn.Session, id string) (scim.Group, error) {
	defer func(begin time.Time) {
		ms.counter.With("method", "view_group").Add(1)
		ms.latency.With("method", "view_group").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return ms.svc.ViewGroup(ctx, session, id)
}

func (ms *metricsMiddleware) ListGroups(ctx context.Context, session authn.Session, page groups.Page) (groups.GroupsPage, error) {
	defer func(begin time.Time) {
		ms.counter.With("method", "list_groups").Add(1)
		ms.latency.With("method", "list_groups").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return ms.svc.ListGroups(ctx, session, page)
}

func (ms *metricsMiddleware) UpdateGroup(ctx context.Context, session authn.Session, group scim.Group, ifMatch string) (scim.Group, error) {
	defer func(begin time.Time) {
		ms.counter.With("method", "update_group").Add(1)
		ms.latency.With("method", "update_group").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return ms.svc.UpdateGroup(ctx, session, group, ifMatch)
}

func (ms *metricsMiddleware) PatchGroup(ctx context.Context, session authn.Session, id string, ops []scim.PatchOperation, ifMatch string) (scim.Group, error) {
	defer func(begin time.Time) {
		ms.counter.With("method", "patch_group").Add(1)
		ms.latency.With("method", "patch_group").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return ms.svc.PatchGroup(ctx, session, id, ops, ifMatch)
}

func (ms *metricsMiddleware) DeleteGroup(ctx context.Context, session authn.Session, id string, ifMatch string) error {
	defer func(begin time.Time) {
		ms.counter.With("method", "delete_group").Add(1)
		ms.latency.With("method", "delete_group").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return ms.svc.DeleteGroup(ctx, session, id, ifMatch)
}
