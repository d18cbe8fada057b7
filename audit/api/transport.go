// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

// Package api contains the tenant-scoped audit listing transport.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	kithttp "github.com/go-kit/kit/transport/http"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/idrelay/idrelay/audit"
	"github.com/idrelay/idrelay/internal/api"
	"github.com/idrelay/idrelay/pkg/apiutil"
	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/pkg/errors"
)

// Query parameter names of the audit listing.
const (
	actorKey        = "actor"
	operationKey    = "operation"
	resourceTypeKey = "resourceType"
	resourceIDKey   = "resourceId"
	beforeKey       = "before"
	afterKey        = "after"
)

// MakeHandler registers the audit routes on the given router.
func MakeHandler(svc audit.Service, authenticator authn.Authentication, mux *chi.Mux, logger *slog.Logger) *chi.Mux {
	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(apiutil.LoggingErrorEncoder(logger, api.EncodeError)),
	}

	mux.Route("/audit", func(r chi.Router) {
		r.Use(api.AuthenticateMiddleware(authenticator))

		r.Get("/", otelhttp.NewHandler(kithttp.NewServer(
			listEntriesEndpoint(svc),
			decodeListEntriesReq,
			api.EncodeResponse,
			opts...,
		), "list_audit_entries").ServeHTTP)
	})

	return mux
}

func decodeListEntriesReq(_ context.Context, r *http.Request) (interface{}, error) {
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
	actor, err := apiutil.ReadStringQuery(r, actorKey, "")
	if err != nil {
		return nil, errors.Wrap(apiutil.ErrValidation, err)
	}
	operation, err := apiutil.ReadStringQuery(r, operationKey, "")
	if err != nil {
		return nil, errors.Wrap(apiutil.ErrValidation, err)
	}
	resourceType, err := apiutil.ReadStringQuery(r, resourceTypeKey, "")
	if err != nil {
		return nil, errors.Wrap(apiutil.ErrValidation, err)
	}
	resourceID, err := apiutil.ReadStringQuery(r, resourceIDKey, "")
	if err != nil {
		return nil, errors.Wrap(apiutil.ErrValidation, err)
	}
	before, err := readTimeQuery(r, beforeKey)
	if err != nil {
		return nil, errors.Wrap(apiutil.ErrValidation, err)
	}
	after, err := readTimeQuery(r, afterKey)
	if err != nil {
		return nil, errors.Wrap(apiutil.ErrValidation, err)
	}

	return listEntriesReq{page: audit.Page{
		StartIndex:   startIndex,
		Count:        count,
		ActorID:      actor,
		Operation:    operation,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Before:       before,
		After:        after,
	}}, nil
}

func readTimeQuery(r *http.Request, key string) (time.Time, error) {
	raw, err := apiutil.ReadStringQuery(r, key, "")
	if err != nil || raw == "" {
		return time.Time{}, err
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, errors.Wrap(apiutil.ErrInvalidQueryParams, err)
	}

	return ts, nil
}
