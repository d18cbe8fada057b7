// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"github.com/idrelay/idrelay/groups"
	"github.com/idrelay/idrelay/pkg/apiutil"
	"github.com/idrelay/idrelay/pkg/scim"
)

type createGroupReq struct {
	group scim.Group
}

func (req createGroupReq) validate() error {
	if req.group.DisplayName == "" {
		return apiutil.ErrMissingDisplayName
	}

	return nil
}

type viewGroupReq struct {
	id string
}

func (req viewGroupReq) validate() error {
	if req.id == "" {
		return apiutil.ErrMissingID
	}

	return nil
}

type listGroupsReq struct {
	page       groups.Page
	attributes []string
	excluded   []string
}

func (req listGroupsReq) validate() error {
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

type updateGroupReq struct {
	id      string
	ifMatch string
	group   scim.Group
}

func (req updateGroupReq) validate() error {
	if req.id == "" {
		return apiutil.ErrMissingID
	}
	if req.group.DisplayName == "" {
		return apiutil.ErrMissingDisplayName
	}

	return nil
}

type patchGroupReq struct {
	id      string
	ifMatch string
	ops     []scim.PatchOperation
}

func (req patchGroupReq) validate() error {
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

type deleteGroupReq struct {
	id      string
	ifMatch string
}

func (req deleteGroupReq) validate() error {
	if req.id == "" {
		return apiutil.ErrMissingID
	}

	return nil
}
