// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package events

import (
	"context"

	"github.com/idrelay/idrelay/groups"
	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/pkg/events"
	"github.com/idrelay/idrelay/pkg/events/store"
	"github.com/idrelay/idrelay/pkg/scim"
)

const streamID = "idrelay.groups"

var _ groups.Service = (*eventStore)(nil)

type eventStore struct {
	events.Publisher
	svc groups.Service
}

// NewEventStoreMiddleware returns a group service wrapper that emits
// lifecycle events to the event store.
func NewEventStoreMiddleware(ctx context.Context, svc groups.Service, url string) (groups.Service, error) {
	publisher, err := store.NewPublisher(ctx, url, streamID)
	if err != nil {
		return nil, err
	}

	return &eventStore{
		Publisher: publisher,
		svc:       svc,
	}, nil
}

func (es *eventStore) CreateGroup(ctx context.Context, session authn.Session, group scim.Group) (scim.Group, error) {
	saved, err := es.svc.CreateGroup(ctx, session, group)
	if err != nil {
		return saved, err
	}

	event := createGroupEvent{tenantID: session.TenantID, group: saved}
	if err := es.Publish(ctx, event); err != nil {
		return saved, err
	}

	return saved, nil
}

func (es *eventStore) ViewGroup(ctx context.Context, session authn.Session, id string) (scim.Group, error) {
	return es.svc.ViewGroup(ctx, session, id)
}

func (es *eventStore) ListGroups(ctx context.Context, session authn.Session, page groups.Page) (groups.GroupsPage, error) {
	return es.svc.ListGroups(ctx, session, page)
}

func (es *eventStore) UpdateGroup(ctx context.Context, session authn.Session, group scim.Group, ifMatch string) (scim.Group, error) {
	updated, err := es.svc.UpdateGroup(ctx, session, group, ifMatch)
	if err != nil {
		return updated, err
	}

	event := updateGroupEvent{operation: groupUpdate, tenantID: session.TenantID, group: updated}
	if err := es.Publish(ctx, event); err != nil {
		return updated, err
	}

	return updated, nil
}

func (es *eventStore) PatchGroup(ctx context.Context, session authn.Session, id string, ops []scim.PatchOperation, ifMatch string) (scim.Group, error) {
	patched, err := es.svc.PatchGroup(ctx, session, id, ops, ifMatch)
	if err != nil {
		return patched, err
	}

	event := updateGroupEvent{operation: groupPatch, tenantID: session.TenantID, group: patched}
	if err := es.Publish(ctx, event); err != nil {
		return patched, err
	}

	return patched, nil
}

func (es *eventStore) DeleteGroup(ctx context.Context, session authn.Session, id string, ifMatch string) error {
	if err := es.svc.DeleteGroup(ctx, session, id, ifMatch); err != nil {
		return err
	}

	event := removeGroupEvent{tenantID: session.TenantID, id: id}

	return es.Publish(ctx, event)
}
