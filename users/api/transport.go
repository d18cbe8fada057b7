// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

// Package api contains the SCIM HTTP transport for user resources.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	kithttp "github.com/go-kit/kit/transport/http"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/idrelay/idrelay/internal/api"
	"github.com/idrelay/idrelay/pkg/apiutil"
	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/pkg/errors"
	"github.com/idrelay/idrelay/pkg/scim"
	"github.com/idrelay/idrelay/users"
)

const (
	ascDir  = "ascending"
	descDir = "descending"
)

// MakeHandler registers the user routes on the given router.
func MakeHandler(svc users.Service, authenticator authn.Authentication, mux *chi.Mux, logger *slog.Logger) *chi.Mux {
	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(apiutil.LoggingErrorEncoder(logger, api.EncodeError)),
	}

	mux.Route("/scim/v2/Users", func(r chi.Router) {
		r.Use(api.AuthenticateMiddleware(authenticator))

		r.Post("/", otelhttp.NewHandler(kithttp.NewServer(
			createUserEndpoint(svc),
			decodeCreateUserReq,
			api.EncodeResponse,
			opts...,
		), "create_user").ServeHTTP)

		r.Get("/", otelhttp.NewHandler(kithttp.NewServer(
			listUsersEndpoint(svc),
			decodeListUsersReq,
			api.EncodeResponse,
			opts...,
		), "list_users").ServeHTTP)

		r.Get("/{userID}", otelhttp.NewHandler(kithttp.NewServer(
			viewUserEndpoint(svc),
			decodeViewUserReq,
			api.EncodeResponse,
			opts...,
		), "view_user").ServeHTTP)

		r.Put("/{userID}", otelhttp.NewHandler(kithttp.NewServer(
			updateUserEndpoint(svc),
			decodeUpdateUserReq,
			api.EncodeResponse,
			opts...,
		), "update_user").ServeHTTP)

		r.Patch("/{userID}", otelhttp.NewHandler(kithttp.NewServer(
			patchUserEndpoint(svc),
			decodePatchUserReq,
			api.EncodeResponse,
			opts...,
		), "patch_user").ServeHTTP)

		r.Delete("/{userID}", otelhttp.NewHandler(kithttp.NewServer(
			deleteUserEndpoint(svc),
			decodeDeleteUserReq,
			api.EncodeResponse,
			opts...,
		), "delete_user").ServeHTTP)
	})

	return mux
}

func decodeCreateUserReq(_ context.Context, r *http.Request) (interface{}, error) {
	if err := api.CheckContentType(r); err != nil {
		return nil, err
	}

	var user scim.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		return nil, errors.Wrap(apiutil.ErrMalformedBody, err)
	}

	return createUserReq{user: user}, nil
}

func decodeViewUserReq(_ context.Context, r *http.Request) (interface{}, error) {
	return viewUserReq{id: chi.URLParam(r, "userID")}, nil
}

func decodeListUsersReq(_ context.Context, r *http.Request) (interface{}, error) {
	page, err := decodePageQuery(r)
	if err != nil {
		return nil, errors.Wrap(apiutil.ErrValidation, err)
	}
	attributes, err := apiutil.ReadStringQuery(r, api.AttributesKey, "")
	if err != nil {
		return nil, errors.Wrap(apiutil.ErrValidation, err)
	}
	excluded, err := apiutil.ReadStringQuery(r, api.ExcludedAttributesKey, "")
	if err != nil {
		return nil, errors.Wrap(apiutil.ErrValidation, err)
	}

	return listUsersReq{
		page:       page,
		attributes: api.SplitAttributes(attributes),
		excluded:   api.SplitAttributes(excluded),
	}, nil
}

func decodeUpdateUserReq(_ context.Context, r *http.Request) (interface{}, error) {
	if err := api.CheckContentType(r); err != nil {
		return nil, err
	}

	var user scim.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		return nil, errors.Wrap(apiutil.ErrMalformedBody, err)
	}

	return updateUserReq{
		id:      chi.URLParam(r, "userID"),
		ifMatch: r.Header.Get("If-Match"),
		user:    user,
	}, nil
}

func decodePatchUserReq(_ context.Context, r *http.Request) (interface{}, error) {
	if err := api.CheckContentType(r); err != nil {
		return nil, err
	}

	ops, err := api.DecodePatchBody(r)
	if err != nil {
		return nil, err
	}

	return patchUserReq{
		id:      chi.URLParam(r, "userID"),
		ifMatch: r.Header.Get("If-Match"),
		ops:     ops,
	}, nil
}

func decodeDeleteUserReq(_ context.Context, r *http.Request) (interface{}, error) {
	return deleteUserReq{
		id:      chi.URLParam(r, "userID"),
		ifMatch: r.Header.Get("If-Match"),
	}, nil
}

func decodePageQuery(r *http.Request) (users.Page, error) {
	filter, err := apiutil.ReadStringQuery(r, api.FilterKey, "")
	if err != nil {
		return users.Page{}, err
	}
	startIndex, err := apiutil.ReadNumQuery[int](r, api.StartIndexKey, api.DefStartIndex)
	if err != nil {
		return users.Page{}, err
	}
	count, err := apiutil.ReadNumQuery[int](r, api.CountKey, api.DefCount)
	if err != nil {
		return users.Page{}, err
	}
	if count > api.MaxCount {
		count = api.MaxCount
	}
	sortBy, err := apiutil.ReadStringQuery(r, api.SortByKey, "")
	if err != nil {
		return users.Page{}, err
	}
	sortOrder, err := apiutil.ReadStringQuery(r, api.SortOrderKey, "")
	if err != nil {
		return users.Page{}, err
	}

	return users.Page{
		StartIndex: startIndex,
		Count:      count,
		Filter:     filter,
		SortBy:     sortBy,
		SortOrder:  sortOrder,
	}, nil
}

