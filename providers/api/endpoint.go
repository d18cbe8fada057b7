// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"

	"github.com/go-kit/kit/endpoint"

	"github.com/idrelay/idrelay/internal/api"
	"github.com/idrelay/idrelay/pkg/apiutil"
	"github.com/idrelay/idrelay/pkg/errors"
	svcerr "github.com/idrelay/idrelay/pkg/errors/service"
	"github.com/idrelay/idrelay/providers"
	"github.com/idrelay/idrelay/provision"
)

func listProvidersEndpoint(svc providers.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		session, ok := api.SessionFromContext(ctx)
		if !ok {
			return nil, svcerr.ErrAuthentication
		}

		page, err := svc.ListProviders(ctx, session)
		if err != nil {
			return nil, err
		}

		return listProvidersRes{ProvidersPage: page}, nil
	}
}

func checkHealthEndpoint(svc providers.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(providerReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}
		session, ok := api.SessionFromContext(ctx)
		if !ok {
			return nil, svcerr.ErrAuthentication
		}

		health, err := svc.CheckHealth(ctx, session, req.providerID)
		if err != nil {
			return nil, err
		}

		return healthRes{Health: health}, nil
	}
}

func viewStatsEndpoint(svc providers.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(providerReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}
		session, ok := api.SessionFromContext(ctx)
		if !ok {
			return nil, svcerr.ErrAuthentication
		}

		stats, err := svc.ViewStats(ctx, session, req.providerID)
		if err != nil {
			return nil, err
		}

		return statsRes{Stats: stats}, nil
	}
}

func viewCapabilitiesEndpoint(svc providers.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(providerReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}
		session, ok := api.SessionFromContext(ctx)
		if !ok {
			return nil, svcerr.ErrAuthentication
		}

		caps, err := svc.ViewCapabilities(ctx, session, req.providerID)
		if err != nil {
			return nil, err
		}

		return capabilitiesRes{Capabilities: caps}, nil
	}
}

func listSyncStatesEndpoint(svc provision.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(listSyncStatesReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}
		session, ok := api.SessionFromContext(ctx)
		if !ok {
			return nil, svcerr.ErrAuthentication
		}

		page, err := svc.ListSyncStates(ctx, session, req.page)
		if err != nil {
			return nil, err
		}

		return listSyncStatesRes{SyncStatesPage: page}, nil
	}
}

func viewSyncStateEndpoint(svc provision.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(viewSyncStateReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}
		session, ok := api.SessionFromContext(ctx)
		if !ok {
			return nil, svcerr.ErrAuthentication
		}

		state, err := svc.ViewSyncState(ctx, session, req.id)
		if err != nil {
			return nil, err
		}

		return syncStateRes{SyncState: state}, nil
	}
}
