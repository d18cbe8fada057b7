// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"github.com/idrelay/idrelay/pkg/apiutil"
	"github.com/idrelay/idrelay/pkg/scim"
	"github.com/idrelay/idrelay/users"
)

type createUserReq struct {
	user scim.User
}

func (req createUserReq) validate() error {
	if req.user.UserName == "" {
		return apiutil.ErrMissingUserName
	}

	return nil
}

type viewUserReq struct {
	id string
}

func (req viewUserReq) validate() error {
	if req.id == "" {
		return apiutil.ErrMissingID
	}

	return nil
}

type listUsersReq struct {
	page       users.Page
	attributes []string
	excluded   []string
}

func (req listUsersReq) validate() error {
	if req.page.StartIndex < 1 {
		return apiutil.ErrInvalidStartIndex
	}
	if req.page.Count < 0 {
		return apiutil.ErrInvalidCount
	}
	if req.page.SortOrder != "" && req.page.SortOrder != ascDir && req.page.SortOrder != descDir {
		return apiutil.ErrInvalidOrder
	}

	return nil
}

type updateUserReq struct {
	id      string
	ifMatch string
	user    scim.User
}

func (req updateUserReq) validate() error {
	if req.id == "" {
		return apiutil.ErrMissingID
	}
	if req.user.UserName == "" {
		return apiutil.ErrMissingUserName
	}

	return nil
}

type patchUserReq struct {
	id      string
	ifMatch string
	ops     []scim.PatchOperation
}

func (req patchUserReq) validate() error {
	if req.id == "" {
		return apiutil.ErrMissingID
	}
	if len(req.ops) == 0 {
		return apiutil.ErrMissingPatchOps
	}
	for _, op := range req.ops {
		switch op.Op {
		case scim.PatchAdd, scim.PatchReplace, scim.PatchRemove:
		default:
			return apiutil.ErrInvalidPatchOp
		}
		if op.Op != scim.PatchRemove && op.Path == "" && op.Value.Kind != scim.PatchValueObject {
			return apiutil.ErrMissingPatchValue
		}
	}

	return nil
}

type deleteUserReq struct {
	id      string
	ifMatch string
}

func (req deleteUserReq) validate() error {
	if req.id == "" {
		return apiutil.ErrMissingID
	}

	return nil
}
