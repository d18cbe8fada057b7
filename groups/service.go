// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package groups

import (
	"context"
	"time"

	"github.com/idrelay/idrelay"
	"github.com/idrelay/idrelay/pkg/apiutil"
	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/pkg/errors"
	svcerr "github.com/idrelay/idrelay/pkg/errors/service"
	"github.com/idrelay/idrelay/pkg/scim"
)

type service struct {
	repo       Repository
	idProvider idrelay.IDProvider
}

// NewService returns a new group management service implementation.
func NewService(repo Repository, idp idrelay.IDProvider) Service {
	return &service{
		repo:       repo,
		idProvider: idp,
	}
}

func (svc *service) CreateGroup(ctx context.Context, session authn.Session, group scim.Group) (scim.Group, error) {
	if session.TenantID == "" {
		return scim.Group{}, errors.Wrap(svcerr.ErrMalformedEntity, apiutil.ErrMissingTenant)
	}
	if err := scim.ValidateGroup(group); err != nil {
		return scim.Group{}, errors.Wrap(svcerr.ErrMalformedEntity, err)
	}

	id, err := svc.idProvider.ID()
	if err != nil {
		return scim.Group{}, errors.Wrap(svcerr.ErrUniqueID, err)
	}
	now := time.Now().UTC()
	group.ID = id
	group.TenantID = session.TenantID
	group.Schemas = withSchema(group.Schemas, scim.SchemaGroup)
	group.Members = dedupeMembers(group.Members)
	group.Meta = &scim.Meta{
		ResourceType: scim.ResourceTypeGroup,
		Created:      now,
		LastModified: now,
		Location:     "/scim/v2/Groups/" + id,
		Version:      scim.FirstVersion(),
	}

	saved, err := svc.repo.Save(ctx, session.TenantID, group)
	if err != nil {
		return scim.Group{}, err
	}

	return saved, nil
}

func (svc *service) ViewGroup(ctx context.Context, session authn.Session, id string) (scim.Group, error) {
	group, err := svc.repo.RetrieveByID(ctx, session.TenantID, id)
	if err != nil {
		return scim.Group{}, errors.Wrap(svcerr.ErrNotFound, err)
	}

	return group, nil
}

func (svc *service) ListGroups(ctx context.Context, session authn.Session, page Page) (GroupsPage, error) {
	groupsPage, err := svc.repo.RetrieveAll(ctx, session.TenantID, page)
	if err != nil {
		return GroupsPage{}, err
	}

	return groupsPage, nil
}

func (svc *service) UpdateGroup(ctx context.Context, session authn.Session, group scim.Group, ifMatch string) (scim.Group, error) {
	stored, err := svc.repo.RetrieveByID(ctx, session.TenantID, group.ID)
	if err != nil {
		return scim.Group{}, errors.Wrap(svcerr.ErrNotFound, err)
	}
	if err := checkVersion(stored.Meta, ifMatch); err != nil {
		return scim.Group{}, err
	}
	if err := scim.ValidateGroup(group); err != nil {
		return scim.Group{}, errors.Wrap(svcerr.ErrMalformedEntity, err)
	}

	group.TenantID = session.TenantID
	group.Schemas = withSchema(group.Schemas, scim.SchemaGroup)
	group.Members = dedupeMembers(group.Members)
	group.Meta = nextMeta(stored.Meta)

	updated, err := svc.repo.Update(ctx, session.TenantID, group, storedVersion(stored.Meta))
	if err != nil {
		return scim.Group{}, err
	}

	return updated, nil
}

func (svc *service) PatchGroup(ctx context.Context, session authn.Session, id string, ops []scim.PatchOperation, ifMatch string) (scim.Group, error) {
	stored, err := svc.repo.RetrieveByID(ctx, session.TenantID, id)
	if err != nil {
		return scim.Group{}, errors.Wrap(svcerr.ErrNotFound, err)
	}
	if err := checkVersion(stored.Meta, ifMatch); err != nil {
		return scim.Group{}, err
	}

	doc, err := scim.ToDocument(stored)
	if err != nil {
		return scim.Group{}, errors.Wrap(svcerr.ErrMalformedEntity, err)
	}
	if err := scim.ApplyPatch(doc, ops); err != nil {
		return scim.Group{}, err
	}

	var patched scim.Group
	if err := scim.FromDocument(doc, &patched); err != nil {
		return scim.Group{}, errors.Wrap(svcerr.ErrMalformedEntity, err)
	}
	if err := scim.ValidateGroup(patched); err != nil {
		return scim.Group{}, errors.Wrap(svcerr.ErrMalformedEntity, err)
	}

	patched.ID = stored.ID
	patched.TenantID = session.TenantID
	patched.Members = dedupeMembers(patched.Members)
	patched.Meta = nextMeta(stored.Meta)

	// Committing with the version read above turns any concurrent write
	// between materialization and commit into a version conflict.
	updated, err := svc.repo.Update(ctx, session.TenantID, patched, storedVersion(stored.Meta))
	if err != nil {
		return scim.Group{}, err
	}

	return updated, nil
}

func (svc *service) DeleteGroup(ctx context.Context, session authn.Session, id string, ifMatch string) error {
	return svc.repo.Delete(ctx, session.TenantID, id, ifMatch)
}

// dedupeMembers keeps the first occurrence of each member value so
// repeated additions behave as set inserts.
func dedupeMembers(members []scim.Member) []scim.Member {
	if len(members) == 0 {
		return members
	}

	seen := make(map[string]struct{}, len(members))
	out := members[:0]
	for _, m := range members {
		if _, ok := seen[m.Value]; ok {
			continue
		}
		seen[m.Value] = struct{}{}
		out = append(out, m)
	}

	return out
}

// checkVersion compares a client-supplied If-Match against the stored
// version. An absent header passes.
func checkVersion(meta *scim.Meta, ifMatch string) error {
	if ifMatch == "" {
		return nil
	}
	if meta == nil || !scim.VersionMatches(ifMatch, meta.Version) {
		return svcerr.ErrVersionMismatch
	}

	return nil
}

func storedVersion(meta *scim.Meta) string {
	if meta == nil {
		return ""
	}

	return meta.Version
}

// nextMeta preserves creation metadata and advances the version.
func nextMeta(stored *scim.Meta) *scim.Meta {
	meta := scim.Meta{LastModified: time.Now().UTC()}
	if stored != nil {
		meta.ResourceType = stored.ResourceType
		meta.Created = stored.Created
		meta.Location = stored.Location
		meta.Version = scim.NextVersion(stored.Version)
	} else {
		meta.Version = scim.FirstVersion()
	}

	return &meta
}

func withSchema(schemas []string, urn string) []string {
	for _, s := range schemas {
		if s == urn {
			return schemas
		}
	}

	return append(schemas, urn)
}
