// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"github.com/idrelay/idrelay/audit"
	"github.com/idrelay/idrelay/pkg/apiutil"
)

type listEntriesReq struct {
	page audit.Page
}

func (req listEntriesReq) validate() error {
	if req.page.StartIndex < 1 {
		return apiutil.ErrInvalidStartIndex
	}

	return nil
}
