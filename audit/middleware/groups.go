// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package middleware

import (
	"context"

	"github.com/idrelay/idrelay/audit"
	"github.com/idrelay/idrelay/groups"
	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/pkg/scim"
)

var _ groups.Service = (*groupsMiddleware)(nil)

type groupsMiddleware struct {
	svc  groups.Service
	sink audit.Sink
}

// GroupsMiddleware records an audit entry for every mutating group
// operation. Reads are not audited.
func GroupsMiddleware(svc groups.Service, sink audit.Sink) groups.Service {
	return &groupsMiddleware{svc: svc, sink: sink}
}

func (am *groupsMiddleware) record(session authn.Session, operation, resourceID string, snapshot scim.Document, err error) {
	entry := audit.Entry{
		TenantID:     session.TenantID,
		ActorID:      session.ActorID,
		ActorType:    session.ActorType,
		Operation:    operation,
		ResourceType: scim.ResourceTypeGroup,
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

func (am *groupsMiddleware) CreateGroup(ctx context.Context, session authn.Session, group scim.Group) (scim.Group, error) {
	created, err := am.svc.CreateGroup(ctx, session, group)
	am.record(session, "group.create", created.ID, nil, err)

	return created, err
}

func (am *groupsMiddleware) ViewGroup(ctx context.Context, session authn.Session, id string) (scim.Group, error) {
	return am.svc.ViewGroup(ctx, session, id)
}

func (am *groupsMiddleware) ListGroups(ctx context.Context, session authn.Session, page groups.Page) (groups.GroupsPage, error) {
	return am.svc.ListGroups(ctx, session, page)
}

func (am *groupsMiddleware) UpdateGroup(ctx context.Context, session authn.Session, group scim.Group, ifMatch string) (scim.Group, error) {
	updated, err := am.svc.UpdateGroup(ctx, session, group, ifMatch)
	am.record(session, "group.update", group.ID, nil, err)

	return updated, err
}

func (am *groupsMiddleware) PatchGroup(ctx context.Context, session authn.Session, id string, ops []scim.PatchOperation, ifMatch string) (scim.Group, error) {
	patched, err := am.svc.PatchGroup(ctx, session, id, ops, ifMatch)
	am.record(session, "group.patch", id, nil, err)

	return patched, err
}

func (am *groupsMiddleware) DeleteGroup(ctx context.Context, session authn.Session, id string, ifMatch string) error {
	var snapshot scim.Document
	if group, err := am.svc.ViewGroup(ctx, session, id); err == nil {
		snapshot, _ = scim.ToDocument(group)
	}

	err := am.svc.DeleteGroup(ctx, session, id, ifMatch)
	if err != nil {
		snapshot = nil
	}
	am.record(session, "group.delete", id, snapshot, err)

	return err
}
