// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

// Package middleware wraps the resource services with audit recording.
// Entries are submitted to the sink after the operation completes, with
// the outcome and, for deletes, a snapshot of the removed resource.
package middleware

import (
	"context"

	"github.com/idrelay/idrelay/audit"
	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/pkg/scim"
	"github.com/idrelay/idrelay/users"
)

var _ users.Service = (*usersMiddleware)(nil)

type usersMiddleware struct {
	svc  users.Service
	sink audit.Sink
}

// UsersMiddleware records an audit entry for every mutating user
// operation. Reads are not audited.
func UsersMiddleware(svc users.Service, sink audit.Sink) users.Service {
	return &usersMiddleware{svc: svc, sink: sink}
}

func (am *usersMiddleware) record(session authn.Session, operation, resourceID string, snapshot scim.Document, err error) {
	entry := audit.Entry{
		TenantID:     session.TenantID,
		ActorID:      session.ActorID,
		ActorType:    session.ActorType,
		Operation:    operation,
		ResourceType: scim.ResourceTypeUser,
		ResourceID:   resourceID,
		Outcome:      audit.OutcomeSuccess,
		Snapshot:     snapshot,
	}
	if err != nil {
		entry.Outcome = audit.OutcomeFailure
		entry.Detail = err.Error()
	}
	am.sink.Submit(entry)
}

func (am *usersMiddleware) CreateUser(ctx context.Context, session authn.Session, user scim.User) (scim.User, error) {
	created, err := am.svc.CreateUser(ctx, session, user)
	am.record(session, "user.create", created.ID, nil, err)

	return created, err
}

func (am *usersMiddleware) ViewUser(ctx context.Context, session authn.Session, id string) (scim.User, error) {
	return am.svc.ViewUser(ctx, session, id)
}

func (am *usersMiddleware) ListUsers(ctx context.Context, session authn.Session, page users.Page) (users.UsersPage, error) {
	return am.svc.ListUsers(ctx, session, page)
}

func (am *usersMiddleware) UpdateUser(ctx context.Context, session authn.Session, user scim.User, ifMatch string) (scim.User, error) {
	updated, err := am.svc.UpdateUser(ctx, session, user, ifMatch)
	am.record(session, "user.update", user.ID, nil, err)

	return updated, err
}

func (am *usersMiddleware) PatchUser(ctx context.Context, session authn.Session, id string, ops []scim.PatchOperation, ifMatch string) (scim.User, error) {
	patched, err := am.svc.PatchUser(ctx, session, id, ops, ifMatch)
	am.record(session, "user.patch", id, nil, err)

	return patched, err
}

func (am *usersMiddleware) DeleteUser(ctx context.Context, session authn.Session, id string, ifMatch string) error {
	var snapshot scim.Document
	if user, err := am.svc.ViewUser(ctx, session, id); err == nil {
		snapshot, _ = scim.ToDocument(user)
	}

	err := am.svc.DeleteUser(ctx, session, id, ifMatch)
	if err != nil {
		snapshot = nil
	}
	am.record(session, "user.delete", id, snapshot, err)

	return err
}
