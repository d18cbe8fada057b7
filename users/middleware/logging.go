// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/pkg/scim"
	"github.com/idrelay/idrelay/users"
)

var _ users.Service = (*loggingMiddleware)(nil)

type loggingMiddleware struct {
	logger *slog.Logger
	svc    users.Service
}

// LoggingMiddleware adds logging facilities to the user service.
func LoggingMiddleware(svc users.Service, logger *slog.Logger) users.Service {
	return &loggingMiddleware{logger, svc}
}

func (lm *loggingMiddleware) CreateUser(ctx context.Context, session authn.Session, user scim.User) (u scim.User, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("tenant_id", session.TenantID),
			slog.Group("user",
				slog.String("id", u.ID),
				slog.String("user_name", user.UserName),
			),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Create user failed", args...)
			return
		}
		lm.logger.Info("Create user completed successfully", args...)
	}(time.Now())

	return lm.svc.CreateUser(ctx, session, user)
}

func (lm *loggingMiddleware) ViewUser(ctx context.Context, session authn.Session, id string) (u scim.User, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("tenant_id", session.TenantID),
			slog.String("user_id", id),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("View user failed", args...)
			return
		}
		lm.logger.Info("View user completed successfully", args...)
	}(time.Now())

	return lm.svc.ViewUser(ctx, session, id)
}

func (lm *loggingMiddleware) ListUsers(ctx context.Context, session authn.Session, page users.Page) (up users.UsersPage, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("tenant_id", session.TenantID),
			slog.Group("page",
				slog.String("filter", page.Filter),
				slog.Int("start_index", page.StartIndex),
				slog.Int("count", page.Count),
				slog.Uint64("total", up.Total),
			),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("List users failed", args...)
			return
		}
		lm.logger.Info("List users completed successfully", args...)
	}(time.Now())

	return lm.svc.ListUsers(ctx, session, page)
}

func (lm *loggingMiddleware) UpdateUser(ctx context.Context, session authn.Session, user scim.User, ifMatch string) (u scim.User, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("tenant_id", session.TenantID),
			slog.Group("user",
				slog.String("id", user.ID),
				slog.String("user_name", user.UserName),
			),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Update user failed", args...)
			return
		}
		lm.logger.Info("Update user completed successfully", args...)
	}(time.Now())

	return lm.svc.UpdateUser(ctx, session, user, ifMatch)
}

func (lm *loggingMiddleware) PatchUser(ctx context.Context, session authn.Session, id string, ops []scim.PatchOperation, ifMatch string) (u scim.User, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("tenant_id", session.TenantID),
			slog.String("user_id", id),
			slog.Int("operations", len(ops)),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Patch user failed", args...)
			return
		}
		lm.logger.Info("Patch user completed successfully", args...)
	}(time.Now())

	return lm.svc.PatchUser(ctx, session, id, ops, ifMatch)
}

func (lm *loggingMiddleware) DeleteUser(ctx context.Context, session authn.Session, id string, ifMatch string) (err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("tenant_id", session.TenantID),
			slog.String("user_id", id),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Delete user failed", args...)
			return
		}
		lm.logger.Info("Delete user completed successfully", args...)
	}(time.Now())

	return lm.svc.DeleteUser(ctx, session, id, ifMatch)
}
