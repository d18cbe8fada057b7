// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package middleware

import (
	"context"
	"time"

	"github.com/go-kit/kit/metrics"

	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/pkg/scim"
	"github.com/idrelay/idrelay/users"
)

var _ users.Service = (*metricsMiddleware)(nil)

type metricsMiddleware struct {
	counter metrics.Counter
	latency metrics.Histogram
	svc     users.Service
}

// MetricsMiddleware instruments the user service by tracking request count
// and latency.
func MetricsMiddleware(svc users.Service, counter metrics.Counter, latency metrics.Histogram) users.Service {
	return &metricsMiddleware{
		counter: counter,
		latency: latency,
		svc:     svc,
	}
}

func (ms *metricsMiddleware) CreateUser(ctx context.Context, session authn.Session, user scim.User) (scim.User, error) {
	defer func(begin time.Time) {
		ms.counter.With("method", "create_user").Add(1)
		ms.latency.With("method", "create_user").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return ms.svc.CreateUser(ctx, session, user)
}

func (ms *metricsMiddleware) ViewUser(ctx context.Context, session authn.Session, id string) (scim.User, error) {
	defer func(begin time.Time) {
		ms.counter.With("method", "view_user").Add(1)
		ms.latency.With("method", "view_user").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return ms.svc.ViewUser(ctx, session, id)
}

func (ms *metricsMiddleware) ListUsers(ctx context.Context, session authn.Session, page users.Page) (users.UsersPage, error) {
	defer func(begin time.Time) {
		ms.counter.With("method", "list_users").Add(1)
		ms.latency.With("method", "list_users").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return ms.svc.ListUsers(ctx, session, page)
}

func (ms *metricsMiddleware) UpdateUser(ctx context.Context, session authn.Session, user scim.User, ifMatch string) (scim.User, error) {
	defer func(begin time.Time) {
		ms.counter.With("method", "update_user").Add(1)
		ms.latency.With("method", "update_user").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return ms.svc.UpdateUser(ctx, session, user, ifMatch)
}

func (ms *metricsMiddleware) PatchUser(ctx context.Context, session authn.Session, id string, ops []scim.PatchOperation, ifMatch string) (scim.User, error) {
	defer func(begin time.Time) {
		ms.counter.With("method", "patch_user").Add(1)
		ms.latency.With("method", "patch_user").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return ms.svc.PatchUser(ctx, session, id, ops, ifMatch)
}

func (ms *metricsMiddleware) DeleteUser(ctx context.Context, session authn.Session, id string, ifMatch string) error {
	defer func(begin time.Time) {
		ms.counter.With("method", "delete_user").Add(1)
		ms.latency.With("method", "delete_user").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return ms.svc.DeleteUser(ctx, session, id, ifMatch)
}
