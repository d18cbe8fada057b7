// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package audit

import (
	"context"

	"github.com/idrelay/idrelay/pkg/apiutil"
	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/pkg/errors"
	svcerr "github.com/idrelay/idrelay/pkg/errors/service"
)

var _ Service = (*service)(nil)

type service struct {
	repo Repository
}

// NewService returns the audit read service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListEntries(ctx context.Context, session authn.Session, page Page) (EntriesPage, error) {
	if session.TenantID == "" {
		return EntriesPage{}, errors.Wrap(svcerr.ErrMalformedEntity, apiutil.ErrMissingTenant)
	}
	if page.StartIndex < 1 {
		page.StartIndex = 1
	}

	entries, err := s.repo.RetrieveAll(ctx, session.TenantID, page)
	if err != nil {
		return EntriesPage{}, errors.Wrap(svcerr.ErrViewEntity, err)
	}

	return entries, nil
}
