// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/idrelay/idrelay"
	"github.com/idrelay/idrelay/adapters"
	"github.com/idrelay/idrelay/pkg/apiutil"
	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/pkg/errors"
	svcerr "github.com/idrelay/idrelay/pkg/errors/service"
	"github.com/idrelay/idrelay/pkg/scim"
	"github.com/idrelay/idrelay/transform"
)

var _ Service = (*service)(nil)

type service struct {
	cfg      Config
	registry *adapters.Registry
	engine   transform.Service
	repo     Repository
	notifier Notifier
	idp      idrelay.IDProvider
	logger   *slog.Logger
}

// NewService returns the provisioning orchestrator. The id provider is
// expected to generate ULIDs so sync-state listings sort by creation
// time.
func NewService(cfg Config, registry *adapters.Registry, engine transform.Service, repo Repository, notifier Notifier, idp idrelay.IDProvider, logger *slog.Logger) Service {
	return &service{
		cfg:      cfg,
		registry: registry,
		engine:   engine,
		repo:     repo,
		notifier: notifier,
		idp:      idp,
		logger:   logger,
	}
}

func (s *service) UserSynced(ctx context.Context, session authn.Session, op string, user scim.User) {
	s.dispatch(ctx, func(ctx context.Context) {
		s.syncUser(ctx, session, op, user)
	})
}

func (s *service) GroupSynced(ctx context.Context, session authn.Session, op string, group scim.Group) {
	s.dispatch(ctx, func(ctx context.Context) {
		s.syncGroup(ctx, session, op, group)
	})
}

// dispatch runs the fan-out. In async mode the caller's request returns
// immediately and the fan-out continues on a detached context, so a
// client disconnect cannot abort a half-applied sync.
func (s *service) dispatch(ctx context.Context, fn func(ctx context.Context)) {
	if !s.cfg.Async {
		fn(ctx)
		return
	}
	detached := context.WithoutCancel(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(detached, s.cfg.SyncTimeout)
		defer cancel()
		fn(ctx)
	}()
}

func (s *service) syncUser(ctx context.Context, session authn.Session, op string, user scim.User) {
	for _, providerID := range s.registry.Providers(session.TenantID) {
		adapter, err := s.registry.Lookup(session.TenantID, providerID)
		if err != nil {
			continue
		}
		state := s.newState(providerID, scim.ResourceTypeUser, user.ID, op)
		err = s.withRetry(ctx, &state, func() error {
			switch op {
			case OpCreate:
				_, err := adapter.CreateUser(ctx, user)
				return err
			case OpUpdate:
				_, err := adapter.UpdateUser(ctx, user)
				return err
			case OpDelete:
				return adapter.DeleteUser(ctx, user.ID)
			default:
				return backoff.Permanent(errors.Wrap(svcerr.ErrMalformedEntity, errors.New(op)))
			}
		})
		s.finish(ctx, session.TenantID, state, err)
	}
}

func (s *service) syncGroup(ctx context.Context, session authn.Session, op string, group scim.Group) {
	for _, providerID := range s.registry.Providers(session.TenantID) {
		adapter, err := s.registry.Lookup(session.TenantID, providerID)
		if err != nil {
			continue
		}
		state := s.newState(providerID, scim.ResourceTypeGroup, group.ID, op)
		state.GroupName = group.DisplayName

		var entitlements []transform.Entitlement
		if op != OpDelete {
			entitlements, err = s.engine.Transform(ctx, session.TenantID, providerID, group.DisplayName)
			if err != nil {
				s.finish(ctx, session.TenantID, state, err)
				continue
			}
			state.Entitlements = entitlements
		}

		err = s.withRetry(ctx, &state, func() error {
			switch op {
			case OpCreate:
				if _, err := adapter.CreateGroup(ctx, group); err != nil {
					return err
				}
			case OpUpdate:
				if _, err := adapter.UpdateGroup(ctx, group); err != nil {
					return err
				}
			case OpDelete:
				return adapter.DeleteGroup(ctx, group.ID)
			default:
				return backoff.Permanent(errors.Wrap(svcerr.ErrMalformedEntity, errors.New(op)))
			}
			if len(entitlements) == 0 {
				return nil
			}
			return adapter.MapGroupToEntitlement(ctx, group.DisplayName, entitlements)
		})
		s.finish(ctx, session.TenantID, state, err)
	}
}

// RecordConflict persists a MANUAL_REVIEW outcome as a PENDING_REVIEW
// record and notifies the operators. Notification failures are logged
// and swallowed.
func (s *service) RecordConflict(ctx context.Context, conflict transform.Conflict) error {
	state := s.newState(conflict.ProviderID, scim.ResourceTypeGroup, "", "transform")
	state.Status = StatusPendingReview
	state.GroupName = conflict.GroupName
	state.ConflictRuleIDs = conflict.RuleIDs
	state.Entitlements = conflict.Entitlements
	if _, err := s.repo.Save(ctx, conflict.TenantID, state); err != nil {
		return err
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyConflict(ctx, conflict); err != nil {
			s.logger.Warn("failed to send conflict notification",
				slog.String("tenant_id", conflict.TenantID),
				slog.String("group_name", conflict.GroupName),
				slog.Any("error", err),
			)
		}
	}

	return nil
}

func (s *service) ViewSyncState(ctx context.Context, session authn.Session, id string) (SyncState, error) {
	if session.TenantID == "" {
		return SyncState{}, errors.Wrap(svcerr.ErrMalformedEntity, apiutil.ErrMissingTenant)
	}

	return s.repo.RetrieveByID(ctx, session.TenantID, id)
}

func (s *service) ListSyncStates(ctx context.Context, session authn.Session, page Page) (SyncStatesPage, error) {
	if session.TenantID == "" {
		return SyncStatesPage{}, errors.Wrap(svcerr.ErrMalformedEntity, apiutil.ErrMissingTenant)
	}

	return s.repo.RetrieveAll(ctx, session.TenantID, page)
}

func (s *service) newState(providerID, resourceType, resourceID, op string) SyncState {
	id, err := s.idp.ID()
	if err != nil {
		id = ""
	}
	now := time.Now().UTC()

	return SyncState{
		ID:           id,
		ProviderID:   providerID,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Operation:    op,
		Status:       StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// withRetry runs op with exponential backoff. Only adapter errors
// marked retryable are retried; everything else aborts immediately.
func (s *service) withRetry(ctx context.Context, state *SyncState, op func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = s.cfg.RetryInterval

	attempt := func() error {
		state.Attempts++
		err := op()
		if err == nil {
			return nil
		}
		var ae *adapters.Error
		if adapters.AsError(err, &ae) && ae.Retryable {
			return err
		}
		return backoff.Permanent(err)
	}

	return backoff.Retry(attempt, backoff.WithContext(backoff.WithMaxRetries(policy, s.cfg.MaxRetries), ctx))
}

func (s *service) finish(ctx context.Context, tenantID string, state SyncState, err error) {
	state.Status = StatusSynced
	if err != nil {
		state.Status = StatusFailed
		state.LastError = err.Error()
	}
	state.UpdatedAt = time.Now().UTC()
	if _, serr := s.repo.Save(ctx, tenantID, state); serr != nil {
		s.logger.Warn("failed to persist sync state",
			slog.String("tenant_id", tenantID),
			slog.String("provider_id", state.ProviderID),
			slog.Any("error", serr),
		)
	}
	if err != nil {
		s.logger.Warn("provisioning fan-out failed",
			slog.String("tenant_id", tenantID),
			slog.String("provider_id", state.ProviderID),
			slog.String("operation", state.Operation),
			slog.Int("attempts", state.Attempts),
			slog.Any("error", err),
		)
	}
}
