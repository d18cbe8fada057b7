// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"net/http"

	"github.com/idrelay/idrelay"
	"github.com/idrelay/idrelay/pkg/scim"
)

var (
	_ idrelay.Response = (*groupRes)(nil)
	_ idrelay.Response = (*listGroupsRes)(nil)
	_ idrelay.Response = (*deleteGroupRes)(nil)
)

type groupRes struct {
	scim.Group
	created bool
}

func (res groupRes) Code() int {
	if res.created {
		return http.StatusCreated
	}

	return http.StatusOK
}

func (res groupRes) Headers() map[string]string {
	headers := map[string]string{}
	if res.Meta != nil {
		headers["ETag"] = res.Meta.Version
		if res.created {
			headers["Location"] = res.Meta.Location
		}
	}

	return headers
}

func (res groupRes) Empty() bool {
	return false
}

type listGroupsRes struct {
	Schemas      []string        `json:"schemas"`
	TotalResults uint64          `json:"totalResults"`
	StartIndex   int             `json:"startIndex"`
	ItemsPerPage int             `json:"itemsPerPage"`
	Resources    []scim.Document `json:"Resources"`
}

func (res listGroupsRes) Code() int {
	return http.StatusOK
}

func (res listGroupsRes) Headers() map[string]string {
	return map[string]string{}
}

func (res listGroupsRes) Empty() bool {
	return false
}

type deleteGroupRes struct{}

func (res deleteGroupRes) Code() int {
	return http.StatusNoContent
}

func (res deleteGroupRes) Headers() map[string]string {
	return map[string]string{}
}

func (res deleteGroupRes) Empty() bool {
	return true
}
