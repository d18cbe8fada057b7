// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package users

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

// NewService returns a new user management service implementation.
func NewService(repo Repository, idp idrelay.IDProvider) Service {
	return &service{
		repo:       repo,
		idProvider: idp,
	}
}

func (svc *service) CreateUser(ctx context.Context, session authn.Session, user scim.User) (scim.User, error) {
	if session.TenantID == "" {
		return scim.User{}, errors.Wrap(svcerr.ErrMalformedEntity, apiutil.ErrMissingTenant)
	}
	if err := scim.ValidateUser(user); err != nil {
		return scim.User{}, errors.Wrap(svcerr.ErrMalformedEntity, err)
	}

	id, err := svc.idProvider.ID()
	if err != nil {
		return scim.User{}, errors.Wrap(svcerr.ErrUniqueID, err)
	}
	now := time.Now().UTC()
	user.ID = id
	user.TenantID = session.TenantID
	user.Schemas = withSchema(user.Schemas, scim.SchemaUser)
	user.Groups = nil
	defaultActive(&user)
	user.Meta = &scim.Meta{
		ResourceType: scim.ResourceTypeUser,
		Created:      now,
		LastModified: now,
		Location:     "/scim/v2/Users/" + id,
		Version:      scim.FirstVersion(),
	}

	saved, err := svc.repo.Save(ctx, session.TenantID, user)
	if err != nil {
		return scim.User{}, err
	}

	return saved, nil
}

func (svc *service) ViewUser(ctx context.Context, session authn.Session, id string) (scim.User, error) {
	user, err := svc.repo.RetrieveByID(ctx, session.TenantID, id)
	if err != nil {
		return scim.User{}, errors.Wrap(svcerr.ErrNotFound, err)
	}

	return user, nil
}

func (svc *service) ListUsers(ctx context.Context, session authn.Session, page Page) (UsersPage, error) {
	usersPage, err := svc.repo.RetrieveAll(ctx, session.TenantID, page)
	if err != nil {
		return UsersPage{}, err
	}

	return usersPage, nil
}

func (svc *service) UpdateUser(ctx context.Context, session authn.Session, user scim.User, ifMatch string) (scim.User, error) {
	stored, err := svc.repo.RetrieveByID(ctx, session.TenantID, user.ID)
	if err != nil {
		return scim.User{}, errors.Wrap(svcerr.ErrNotFound, err)
	}
	if err := checkVersion(stored.Meta, ifMatch); err != nil {
		return scim.User{}, err
	}
	if err := scim.ValidateUser(user); err != nil {
		return scim.User{}, errors.Wrap(svcerr.ErrMalformedEntity, err)
	}

	user.TenantID = session.TenantID
	user.Schemas = withSchema(user.Schemas, scim.SchemaUser)
	user.Groups = stored.Groups
	user.Meta = nextMeta(stored.Meta)
	defaultActive(&user)

	updated, err := svc.repo.Update(ctx, session.TenantID, user, storedVersion(stored.Meta))
	if err != nil {
		return scim.User{}, err
	}

	return updated, nil
}

func (svc *service) PatchUser(ctx context.Context, session authn.Session, id string, ops []scim.PatchOperation, ifMatch string) (scim.User, error) {
	stored, err := svc.repo.RetrieveByID(ctx, session.TenantID, id)
	if err != nil {
		return scim.User{}, errors.Wrap(svcerr.ErrNotFound, err)
	}
	if err := checkVersion(stored.Meta, ifMatch); err != nil {
		return scim.User{}, err
	}

	doc, err := scim.ToDocument(stored)
	if err != nil {
		return scim.User{}, errors.Wrap(svcerr.ErrMalformedEntity, err)
	}
	if err := scim.ApplyPatch(doc, ops); err != nil {
		return scim.User{}, err
	}

	var patched scim.User
	if err := scim.FromDocument(doc, &patched); err != nil {
		return scim.User{}, errors.Wrap(svcerr.ErrMalformedEntity, err)
	}
	if err := scim.ValidateUser(patched); err != nil {
		return scim.User{}, errors.Wrap(svcerr.ErrMalformedEntity, err)
	}

	patched.ID = stored.ID
	patched.TenantID = session.TenantID
	patched.Groups = stored.Groups
	patched.Meta = nextMeta(stored.Meta)
	defaultActive(&patched)

	// Committing with the version read above turns any concurrent write
	// between materialization and commit into a version conflict.
	updated, err := svc.repo.Update(ctx, session.TenantID, patched, storedVersion(stored.Meta))
	if err != nil {
		return scim.User{}, err
	}

	return updated, nil
}

func (svc *service) DeleteUser(ctx context.Context, session authn.Session, id string, ifMatch string) error {
	return svc.repo.Delete(ctx, session.TenantID, id, ifMatch)
}

// defaultActive materializes the active default so stored documents
// always carry the attribute and filters on it behave uniformly.
func defaultActive(u *scim.User) {
	if u.Active == nil {
		active := true
		u.Active = &active
	}
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
