// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"

	"github.com/go-kit/kit/endpoint"

	"github.com/idrelay/idrelay/audit"
	"github.com/idrelay/idrelay/internal/api"
	"github.com/idrelay/idrelay/pkg/apiutil"
	"github.com/idrelay/idrelay/pkg/errors"
	svcerr "github.com/idrelay/idrelay/pkg/errors/service"
)

func listEntriesEndpoint(svc audit.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(listEntriesReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}
		session, ok := api.SessionFromContext(ctx)
		if !ok {
			return nil, errors.Wrap(apiutil.ErrValidation, svcerr.ErrAuthentication)
		}

		page, err := svc.ListEntries(ctx, session, req.page)
		if err != nil {
			return nil, err
		}

		return listEntriesRes{EntriesPage: page}, nil
	}
}
