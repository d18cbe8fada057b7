// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"github.com/idrelay/idrelay/pkg/apiutil"
	"github.com/idrelay/idrelay/provision"
)

type listProvidersReq struct{}

func (req listProvidersReq) validate() error {
	return nil
}

type providerReq struct {
	providerID string
}

func (req providerReq) validate() error {
	if req.providerID == "" {
		return apiutil.ErrMissingID
	}

	return nil
}

type listSyncStatesReq struct {
	page provision.Page
}

func (req listSyncStatesReq) validate() error {
	if req.page.StartIndex < 1 {
		return apiutil.ErrInvalidStartIndex
	}
	switch req.page.Status {
	case "", provision.StatusPending, provision.StatusSynced, provision.StatusFailed, provision.StatusPendingReview:
	default:
		return apiutil.ErrInvalidQueryParams
	}

	return nil
}

type viewSyncStateReq struct {
	id string
}

func (req viewSyncStateReq) validate() error {
	if req.id == "" {
		return apiutil.ErrMissingID
	}

	return nil
}
