// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"net/http"

	"github.com/idrelay/idrelay"
	"github.com/idrelay/idrelay/pkg/scim"
)

var (
	_ idrelay.Response = (*userRes)(nil)
	_ idrelay.Response = (*listUsersRes)(nil)
	_ idrelay.Response = (*deleteUserRes)(nil)
)

type userRes struct {
	scim.User
	created bool
}

func (res userRes) Code() int {
	if res.created {
		return http.StatusCreated
	}

	return http.StatusOK
}

func (res userRes) Headers() map[string]string {
	headers := map[string]string{}
	if res.Meta != nil {
		headers["ETag"] = res.Meta.Version
		if res.created {
			headers["Location"] = res.Meta.Location
		}
	}

	return headers
}

func (res userRes) Empty() bool {
	return false
}

type listUsersRes struct {
	Schemas      []string        `json:"schemas"`
	TotalResults uint64          `json:"totalResults"`
	StartIndex   int             `json:"startIndex"`
	ItemsPerPage int             `json:"itemsPerPage"`
	Resources    []scim.Document `json:"Resources"`
}

func (res listUsersRes) Code() int {
	return http.StatusOK
}

func (res listUsersRes) Headers() map[string]string {
	return map[string]string{}
}

func (res listUsersRes) Empty() bool {
	return false
}

type deleteUserRes struct{}

func (res deleteUserRes) Code() int {
	return http.StatusNoContent
}

func (res deleteUserRes) Headers() map[string]string {
	return map[string]string{}
}

func (res deleteUserRes) Empty() bool {
	return true
}
