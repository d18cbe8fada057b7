// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package events

import (
	"context"

	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/pkg/events"
	"github.com/idrelay/idrelay/pkg/events/store"
	"github.com/idrelay/idrelay/pkg/scim"
	"github.com/idrelay/idrelay/users"
)

const streamID = "idrelay.users"

var _ users.Service = (*eventStore)(nil)

type eventStore struct {
	events.Publisher
	svc users.Service
}

// NewEventStoreMiddleware returns a user service wrapper that emits
// lifecycle events to the event store.
func NewEventStoreMiddleware(ctx context.Context, svc users.Service, url string) (users.Service, error) {
	publisher, err := store.NewPublisher(ctx, url, streamID)
	if err != nil {
		return nil, err
	}

	return &eventStore{
		Publisher: publisher,
		svc:       svc,
	}, nil
}

func (es *eventStore) CreateUser(ctx context.Context, session authn.Session, user scim.User) (scim.User, error) {
	saved, err := es.svc.CreateUser(ctx, session, user)
	if err != nil {
		return saved, err
	}

	event := createUserEvent{tenantID: session.TenantID, user: saved}
	if err := es.Publish(ctx, event); err != nil {
		return saved, err
	}

	return saved, nil
}

func (es *eventStore) ViewUser(ctx context.Context, session authn.Session, id string) (scim.User, error) {
	return es.svc.ViewUser(ctx, session, id)
}

func (es *eventStore) ListUsers(ctx context.Context, session authn.Session, page users.Page) (users.UsersPage, error) {
	return es.svc.ListUsers(ctx, session, page)
}

func (es *eventStore) UpdateUser(ctx context.Context, session authn.Session, user scim.User, ifMatch string) (scim.User, error) {
	updated, err := es.svc.UpdateUser(ctx, session, user, ifMatch)
	if err != nil {
		return updated, err
	}

	event := updateUserEvent{operation: userUpdate, tenantID: session.TenantID, user: updated}
	if err := es.Publish(ctx, event); err != nil {
		return updated, err
	}

	return updated, nil
}

func (es *eventStore) PatchUser(ctx context.Context, session authn.Session, id string, ops []scim.PatchOperation, ifMatch string) (scim.User, error) {
	patched, err := es.svc.PatchUser(ctx, session, id, ops, ifMatch)
	if err != nil {
		return patched, err
	}

	event := updateUserEvent{operation: userPatch, tenantID: session.TenantID, user: patched}
	if err := es.Publish(ctx, event); err != nil {
		return patched, err
	}

	return patched, nil
}

func (es *eventStore) DeleteUser(ctx context.Context, session authn.Session, id string, ifMatch string) error {
	if err := es.svc.DeleteUser(ctx, session, id, ifMatch); err != nil {
		return err
	}

	event := removeUserEvent{tenantID: session.TenantID, id: id}

	return es.Publish(ctx, event)
}
