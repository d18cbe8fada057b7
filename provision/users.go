// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"context"

	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/pkg/scim"
	"github.com/idrelay/idrelay/users"
)

var _ users.Service = (*usersMiddleware)(nil)

type usersMiddleware struct {
	svc          users.Service
	orchestrator Orchestrator
}

// UsersMiddleware wraps the user service so every committed mutation
// fans out to the tenant's providers. Reads pass through untouched.
func UsersMiddleware(svc users.Service, orchestrator Orchestrator) users.Service {
	return &usersMiddleware{svc: svc, orchestrator: orchestrator}
}

func (pm *usersMiddleware) CreateUser(ctx context.Context, session authn.Session, user scim.User) (scim.User, error) {
	created, err := pm.svc.CreateUser(ctx, session, user)
	if err != nil {
		return created, err
	}
	pm.orchestrator.UserSynced(ctx, session, OpCreate, created)

	return created, nil
}

func (pm *usersMiddleware) ViewUser(ctx context.Context, session authn.Session, id string) (scim.User, error) {
	return pm.svc.ViewUser(ctx, session, id)
}

func (pm *usersMiddleware) ListUsers(ctx context.Context, session authn.Session, page users.Page) (users.UsersPage, error) {
	return pm.svc.ListUsers(ctx, session, page)
}

func (pm *usersMiddleware) UpdateUser(ctx context.Context, session authn.Session, user scim.User, ifMatch string) (scim.User, error) {
	updated, err := pm.svc.UpdateUser(ctx, session, user, ifMatch)
	if err != nil {
		return updated, err
	}
	pm.orchestrator.UserSynced(ctx, session, OpUpdate, updated)

	return updated, nil
}

func (pm *usersMiddleware) PatchUser(ctx context.Context, session authn.Session, id string, ops []scim.PatchOperation, ifMatch string) (scim.User, error) {
	patched, err := pm.svc.PatchUser(ctx, session, id, ops, ifMatch)
	if err != nil {
		return patched, err
	}
	pm.orchestrator.UserSynced(ctx, session, OpUpdate, patched)

	return patched, nil
}

func (pm *usersMiddleware) DeleteUser(ctx context.Context, session authn.Session, id string, ifMatch string) error {
	if err := pm.svc.DeleteUser(ctx, session, id, ifMatch); err != nil {
		return err
	}
	pm.orchestrator.UserSynced(ctx, session, OpDelete, scim.User{ID: id})

	return nil
}
