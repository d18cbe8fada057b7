// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

// Package api contains the provider administration HTTP transport:
// registered providers, health probes, pool statistics, capabilities
// and sync-state records.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	kithttp "github.com/go-kit/kit/transport/http"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/idrelay/idrelay/internal/api"
	"github.com/idrelay/idrelay/pkg/apiutil"
	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/pkg/errors"
	"github.com/idrelay/idrelay/providers"
	"github.com/idrelay/idrelay/provision"
)

const (
	statusKey     = "status"
	providerIDKey = "providerId"
)

// MakeHandler registers the provider administration routes on the given
// router.
func MakeHandler(svc providers.Service, psvc provision.Service, authenticator authn.Authentication, mux *chi.Mux, logger *slog.Logger) *chi.Mux {
	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(apiutil.LoggingErrorEncoder(logger, api.EncodeError)),
	}

	mux.Route("/providers", func(r chi.Router) {
		r.Use(api.AuthenticateMiddleware(authenticator))

		r.Get("/", otelhttp.NewHandler(kithttp.NewServer(
			listProvidersEndpoint(svc),
			decodeListProvidersReq,
			api.EncodeResponse,
			opts...,
		), "list_providers").ServeHTTP)

		r.Get("/{providerID}/health", otelhttp.NewHandler(kithttp.NewServer(
			checkHealthEndpoint(svc),
			decodeProviderReq,
			api.EncodeResponse,
			opts...,
		), "check_provider_health").ServeHTTP)

		r.Get("/{providerID}/stats", otelhttp.NewHandler(kithttp.NewServer(
			viewStatsEndpoint(svc),
			decodeProviderReq,
			api.EncodeResponse,
			opts...,
		), "view_provider_stats").ServeHTTP)

		r.Get("/{providerID}/capabilities", otelhttp.NewHandler(kithttp.NewServer(
			viewCapabilitiesEndpoint(svc),
			decodeProviderReq,
			api.EncodeResponse,
			opts...,
		), "view_provider_capabilities").ServeHTTP)

		r.Get("/{providerID}/sync", otelhttp.NewHandler(kithttp.NewServer(
			listSyncStatesEndpoint(psvc),
			decodeListSyncStatesReq,
			api.EncodeResponse,
			opts...,
		), "list_provider_sync_states").ServeHTTP)
	})

	mux.Route("/sync", func(r chi.Router) {
		r.Use(api.AuthenticateMiddleware(authenticator))

		r.Get("/", otelhttp.NewHandler(kithttp.NewServer(
			listSyncStatesEndpoint(psvc),
			decodeListSyncStatesReq,
			api.EncodeResponse,
			opts...,
		), "list_sync_states").ServeHTTP)

		r.Get("/{stateID}", otelhttp.NewHandler(kithttp.NewServer(
			viewSyncStateEndpoint(psvc),
			decodeViewSyncStateReq,
			api.EncodeResponse,
			opts...,
		), "view_sync_state").ServeHTTP)
	})

	return mux
}

func decodeListProvidersReq(_ context.Context, _ *http.Request) (interface{}, error) {
	return listProvidersReq{}, nil
}

func decodeProviderReq(_ context.Context, r *http.Request) (interface{}, error) {
	return providerReq{providerID: chi.URLParam(r, "providerID")}, nil
}

func decodeListSyncStatesReq(_ context.Context, r *http.Request) (interface{}, error) {
	startIndex, err := apiutil.ReadNumQuery[int](r, api.StartIndexKey, api.DefStartIndex)
	if err != nil {
		return nil, errors.Wrap(apiutil.ErrValidation, err)
	}
	count, err := apiutil.ReadNumQuery[int](r, api.CountKey, api.DefCount)
	if err != nil {
		return nil, errors.Wrap(apiutil.ErrValidation, err)
	}
	if count > api.MaxCount {
		count = api.MaxCount
	}
	status, err := apiutil.ReadStringQuery(r, statusKey, "")
	if err != nil {
		return nil, errors.Wrap(apiutil.ErrValidation, err)
	}
	providerID, err := apiutil.ReadStringQuery(r, providerIDKey, "")
	if err != nil {
		return nil, errors.Wrap(apiutil.ErrValidation, err)
	}
	// The provider-scoped route pins the filter to the path parameter.
	if id := chi.URLParam(r, "providerID"); id != "" {
		providerID = id
	}

	return listSyncStatesReq{page: provision.Page{
		StartIndex: startIndex,
		Count:      count,
		ProviderID: providerID,
		Status:     status,
	}}, nil
}

func decodeViewSyncStateReq(_ context.Context, r *http.Request) (interface{}, error) {
	return viewSyncStateReq{id: chi.URLParam(r, "stateID")}, nil
}
