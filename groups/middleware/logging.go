// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/idrelay/idrelay/groups"
	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/pkg/scim"
)

var _ groups.Service = (*loggingMiddleware)(nil)

type loggingMiddleware struct {
	logger *slog.Logger
	svc    groups.Service
}

// LoggingMiddleware adds logging facilities to the group service.
func LoggingMiddleware(svc groups.Service, logger *slog.Logger) groups.Service {
	return &loggingMiddleware{logger, svc}
}

func (lm *loggingMiddleware) CreateGroup(ctx context.Context, session authn.Session, group scim.Group) (g scim.Group, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("tenant_id", session.TenantID),
			slog.Group("group",
				slog.String("id", g.ID),
				slog.String("display_name", group.DisplayName),
				slog.Int("members", len(group.Members)),
			),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Create group failed", args...)
			return
		}
		lm.logger.Info("Create group completed successfully", args...)
	}(time.Now())

	return lm.svc.CreateGroup(ctx, session, group)
}

func (lm *loggingMiddleware) ViewGroup(ctx context.Context, session authn.Session, id string) (g scim.Group, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("tenant_id", session.TenantID),
			slog.String("group_id", id),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("View group failed", args...)
			return
		}
		lm.logger.Info("View group completed successfully", args...)
	}(time.Now())

	return lm.svc.ViewGroup(ctx, session, id)
}

func (lm *loggingMiddleware) ListGroups(ctx context.Context, session authn.Session, page groups.Page) (gp groups.GroupsPage, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("tenant_id", session.TenantID),
			slog.Group("page",
				slog.String("filter", page.Filter),
				slog.Int("start_index", page.StartIndex),
				slog.Int("count", page.Count),
				slog.Uint64("total", gp.Total),
			),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("List groups failed", args...)
			return
		}
		lm.logger.Info("List groups completed successfully", args...)
	}(time.Now())

	return lm.svc.ListGroups(ctx, session, page)
}

func (lm *loggingMiddleware) UpdateGroup(ctx context.Context, session authn.Session, group scim.Group, ifMatch string) (g scim.Group, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("tenant_id", session.TenantID),
			slog.Group("group",
				slog.String("id", group.ID),
				slog.String("display_name", group.DisplayName),
				slog.Int("members", len(group.Members)),
			),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Update group failed", args...)
			return
		}
		lm.logger.Info("Update group completed successfully", args...)
	}(time.Now())

	return lm.svc.UpdateGroup(ctx, session, group, ifMatch)
}

func (lm *loggingMiddleware) PatchGroup(ctx context.Context, session authn.Session, id string, ops []scim.PatchOperation, ifMatch string) (g scim.Group, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("tenant_id", session.TenantID),
			slog.String("group_id", id),
			slog.Int("operations", len(ops)),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Patch group failed", args...)
			return
		}
		lm.logger.Info("Patch group completed successfully", args...)
	}(time.Now())

	return lm.svc.PatchGroup(ctx, session, id, ops, ifMatch)
}

func (lm *loggingMiddleware) DeleteGroup(ctx context.Context, session authn.Session, id string, ifMatch string) (err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("tenant_id", session.TenantID),
			slog.String("group_id", id),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Delete group failed", args...)
			return
		}
		lm.logger.Info("Delete group completed successfully", args...)
	}(time.Now())

	return lm.svc.DeleteGroup(ctx, session, id, ifMatch)
}
