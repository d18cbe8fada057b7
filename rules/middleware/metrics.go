// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package middleware

import (
	"context"
	"time"

	"github.com/go-kit/kit/metrics"

	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/rules"
)

var _ rules.Service = (*metricsMiddleware)(nil)

type metricsMiddleware struct {
	counter metrics.Counter
	latency metrics.Histogram
	svc     rules.Service
}

// MetricsMiddleware instruments the rule service by tracking request
// count and latency.
func MetricsMiddleware(svc rules.Service, counter metrics.Counter, latency metrics.Histogram) rules.Service {
	return &metricsMiddleware{
		counter: counter,
		latency: latency,
		svc:     svc,
	}
}

func (ms *metricsMiddleware) CreateRule(ctx context.Context, session authn.Session, rule rules.Rule) (rules.Rule, error) {
	defer func(begin time.Time) {
		ms.counter.With("method", "create_rule").Add(1)
		ms.latency.With("method", "create_rule").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return ms.svc.CreateRule(ctx, session, rule)
}

func (ms *metricsMiddleware) ViewRule(ctx context.Context, session authn.Session, id string) (rules.Rule, error) {
	defer func(begin time.Time) {
		ms.counter.With("method", "view_rule").Add(1)
		ms.latency.With("method", "view_rule").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return ms.svc.ViewRule(ctx, session, id)
}

func (ms *metricsMiddleware) ListRules(ctx context.Context, session authn.Session, page rules.Page) (rules.RulesPage, error) {
	defer func(begin time.Time) {
		ms.counter.With("method", "list_rules").Add(1)
		ms.latency.With("method", "list_rules").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return ms.svc.ListRules(ctx, session, page)
}

func (ms *metricsMiddleware) UpdateRule(ctx context.Context, session authn.Session, rule rules.Rule, ifMatch string) (rules.Rule, error) {
	defer func(begin time.Time) {
		ms.counter.With("method", "update_rule").Add(1)
		ms.latency.With("method", "update_rule").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return ms.svc.UpdateRule(ctx, session, rule, ifMatch)
}

func (ms *metricsMiddleware) DeleteRule(ctx context.Context, session authn.Session, id string, ifMatch string) error {
	defer func(begin time.Time) {
		ms.counter.With("method", "delete_rule").Add(1)
		ms.latency.With("method", "delete_rule").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return ms.svc.DeleteRule(ctx, session, id, ifMatch)
}

func (ms *metricsMiddleware) EnableRule(ctx context.Context, session authn.Session, id string) (rules.Rule, error) {
	defer func(begin time.Time) {
		ms.counter.With("method", "enable_rule").Add(1)
		ms.latency.With("method", "enable_rule").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return ms.svc.EnableRule(ctx, session, id)
}

func (ms *metricsMiddleware) DisableRule(ctx context.Context, session authn.Session, id string) (rules.Rule, error) {
	defer func(begin time.Time) {
		ms.counter.With("method", "disable_rule").Add(1)
		ms.latency.With("method", "disable_rule").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return ms.svc.DisableRule(ctx, session, id)
}

func (ms *metricsMiddleware) TestRule(ctx context.Context, session authn.Session, rule rules.Rule, inputs []string) ([]rules.TestResult, error) {
	defer func(begin time.Time) {
		ms.counter.With("method", "test_rule").Add(1)
		ms.latency.With("method", "test_rule").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return ms.svc.TestRule(ctx, session, rule, inputs)
}

func (ms *metricsMiddleware) ListEnabled(ctx context.Context, tenantID, providerID string) ([]rules.Rule, error) {
	defer func(begin time.Time) {
		ms.counter.With("method", "list_enabled_rules").Add(1)
		ms.latency.With("method", "list_enabled_rules").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return ms.svc.ListEnabled(ctx, tenantID, providerID)
}
