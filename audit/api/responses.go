// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"net/http"

	"github.com/idrelay/idrelay"
	"github.com/idrelay/idrelay/audit"
)

var _ idrelay.Response = (*listEntriesRes)(nil)

type listEntriesRes struct {
	audit.EntriesPage
}

func (res listEntriesRes) Code() int {
	return http.StatusOK
}

func (res listEntriesRes) Headers() map[string]string {
	return map[string]string{}
}

func (res listEntriesRes) Empty() bool {
	return false
}
