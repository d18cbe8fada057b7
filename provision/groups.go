// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"context"

	"github.com/idrelay/idrelay/groups"
	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/pkg/scim"
)

var _ groups.Service = (*groupsMiddleware)(nil)

type groupsMiddleware struct {
	svc          groups.Service
	orchestrator Orchestrator
}

// GroupsMiddleware wraps the group service so every committed mutation,
// membership changes included, fans out to the tenant's providers.
func GroupsMiddleware(svc groups.Service, orchestrator Orchestrator) groups.Service {
	return &groupsMiddleware{svc: svc, orchestrator: orchestrator}
}

func (pm *groupsMiddleware) CreateGroup(ctx context.Context, session authn.Session, group scim.Group) (scim.Group, error) {
	created, err := pm.svc.CreateGroup(ctx, session, group)
	if err != nil {
		return created, err
	}
	pm.orchestrator.GroupSynced(ctx, session, OpCreate, created)

	return created, nil
}

func (pm *groupsMiddleware) ViewGroup(ctx context.Context, session authn.Session, id string) (scim.Group, error) {
	return pm.svc.ViewGroup(ctx, session, id)
}

func (pm *groupsMiddleware) ListGroups(ctx context.Context, session authn.Session, page groups.Page) (groups.GroupsPage, error) {
	return pm.svc.ListGroups(ctx, session, page)
}

func (pm *groupsMiddleware) UpdateGroup(ctx context.Context, session authn.Session, group scim.Group, ifMatch string) (scim.Group, error) {
	updated, err := pm.svc.UpdateGroup(ctx, session, group, ifMatch)
	if err != nil {
		return updated, err
	}
	pm.orchestrator.GroupSynced(ctx, session, OpUpdate, updated)

	return updated, nil
}

func (pm *groupsMiddleware) PatchGroup(ctx context.Context, session authn.Session, id string, ops []scim.PatchOperation, ifMatch string) (scim.Group, error) {
	patched, err := pm.svc.PatchGroup(ctx, session, id, ops, ifMatch)
	if err != nil {
		return patched, err
	}
	pm.orchestrator.GroupSynced(ctx, session, OpUpdate, patched)

	return patched, nil
}

func (pm *groupsMiddleware) DeleteGroup(ctx context.Context, session authn.Session, id string, ifMatch string) error {
	if err := pm.svc.DeleteGroup(ctx, session, id, ifMatch); err != nil {
		return err
	}
	pm.orchestrator.GroupSynced(ctx, session, OpDelete, scim.Group{ID: id})

	return nil
}
