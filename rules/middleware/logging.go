// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/rules"
)

var _ rules.Service = (*loggingMiddleware)(nil)

type loggingMiddleware struct {
	logger *slog.Logger
	svc    rules.Service
}

// LoggingMiddleware adds logging facilities to the rule service.
func LoggingMiddleware(svc rules.Service, logger *slog.Logger) rules.Service {
	return &loggingMiddleware{logger, svc}
}

func (lm *loggingMiddleware) CreateRule(ctx context.Context, session authn.Session, rule rules.Rule) (r rules.Rule, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("tenant_id", session.TenantID),
			slog.Group("rule",
				slog.String("id", r.ID),
				slog.String("provider_id", rule.ProviderID),
				slog.String("type", string(rule.RuleType)),
				slog.Int("priority", rule.Priority),
			),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Create rule failed", args...)
			return
		}
		lm.logger.Info("Create rule completed successfully", args...)
	}(time.Now())

	return lm.svc.CreateRule(ctx, session, rule)
}

func (lm *loggingMiddleware) ViewRule(ctx context.Context, session authn.Session, id string) (r rules.Rule, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("tenant_id", session.TenantID),
			slog.String("rule_id", id),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("View rule failed", args...)
			return
		}
		lm.logger.Info("View rule completed successfully", args...)
	}(time.Now())

	return lm.svc.ViewRule(ctx, session, id)
}

func (lm *loggingMiddleware) ListRules(ctx context.Context, session authn.Session, page rules.Page) (rp rules.RulesPage, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("tenant_id", session.TenantID),
			slog.Group("page",
				slog.String("provider_id", page.ProviderID),
				slog.Int("start_index", page.StartIndex),
				slog.Int("count", page.Count),
				slog.Uint64("total", rp.Total),
			),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("List rules failed", args...)
			return
		}
		lm.logger.Info("List rules completed successfully", args...)
	}(time.Now())

	return lm.svc.ListRules(ctx, session, page)
}

func (lm *loggingMiddleware) UpdateRule(ctx context.Context, session authn.Session, rule rules.Rule, ifMatch string) (r rules.Rule, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("tenant_id", session.TenantID),
			slog.Group("rule",
				slog.String("id", rule.ID),
				slog.String("provider_id", rule.ProviderID),
				slog.String("type", string(rule.RuleType)),
			),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Update rule failed", args...)
			return
		}
		lm.logger.Info("Update rule completed successfully", args...)
	}(time.Now())

	return lm.svc.UpdateRule(ctx, session, rule, ifMatch)
}

func (lm *loggingMiddleware) DeleteRule(ctx context.Context, session authn.Session, id string, ifMatch string) (err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("tenant_id", session.TenantID),
			slog.String("rule_id", id),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Delete rule failed", args...)
			return
		}
		lm.logger.Info("Delete rule completed successfully", args...)
	}(time.Now())

	return lm.svc.DeleteRule(ctx, session, id, ifMatch)
}

func (lm *loggingMiddleware) EnableRule(ctx context.Context, session authn.Session, id string) (r rules.Rule, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("tenant_id", session.TenantID),
			slog.String("rule_id", id),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Enable rule failed", args...)
			return
		}
		lm.logger.Info("Enable rule completed successfully", args...)
	}(time.Now())

	return lm.svc.EnableRule(ctx, session, id)
}

func (lm *loggingMiddleware) DisableRule(ctx context.Context, session authn.Session, id string) (r rules.Rule, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("tenant_id", session.TenantID),
			slog.String("rule_id", id),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Disable rule failed", args...)
			return
		}
		lm.logger.Info("Disable rule completed successfully", args...)
	}(time.Now())

	return lm.svc.DisableRule(ctx, session, id)
}

func (lm *loggingMiddleware) TestRule(ctx context.Context, session authn.Session, rule rules.Rule, inputs []string) (results []rules.TestResult, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("tenant_id", session.TenantID),
			slog.Group("rule",
				slog.String("provider_id", rule.ProviderID),
				slog.String("type", string(rule.RuleType)),
				slog.Int("inputs", len(inputs)),
			),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Test rule failed", args...)
			return
		}
		lm.logger.Info("Test rule completed successfully", args...)
	}(time.Now())

	return lm.svc.TestRule(ctx, session, rule, inputs)
}

func (lm *loggingMiddleware) ListEnabled(ctx context.Context, tenantID, providerID string) (enabled []rules.Rule, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("tenant_id", tenantID),
			slog.String("provider_id", providerID),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("List enabled rules failed", args...)
			return
		}
		lm.logger.Info("List enabled rules completed successfully", args...)
	}(time.Now())

	return lm.svc.ListEnabled(ctx, tenantID, providerID)
}
