// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

// Package api contains the SCIM HTTP transport for group resources.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	kithttp "github.com/go-kit/kit/transport/http"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/idrelay/idrelay/groups"
	"github.com/idrelay/idrelay/internal/api"
	"github.com/idrelay/idrelay/pkg/apiutil"
	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/pkg/errors"
	"github.com/idrelay/idrelay/pkg/scim"
)

const (
	ascDir  = "ascending"
	descDir = "descending"
)

// MakeHandler registers the group routes on the given router.
func MakeHandler(svc groups.Service, authenticator authn.Authentication, mux *chi.Mux, logger *slog.Logger) *chi.Mux {
	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(apiutil.LoggingErrorEncoder(logger, api.EncodeError)),
	}

	mux.Route("/scim/v2/Groups", func(r chi.Router) {
		r.Use(api.AuthenticateMiddleware(authenticator))

		r.Post("/", otelhttp.NewHandler(kithttp.NewServer(
			createGroupEndpoint(svc),
			decodeCreateGroupReq,
			api.EncodeResponse,
			opts...,
		), "create_group").ServeHTTP)

		r.Get("/", otelhttp.NewHandler(kithttp.NewServer(
			listGroupsEndpoint(svc),
			decodeListGroupsReq,
			api.EncodeResponse,
			opts...,
		), "list_groups").ServeHTTP)

		r.Get("/{groupID}", otelhttp.NewHandler(kithttp.NewServer(
			viewGroupEndpoint(svc),
			decodeViewGroupReq,
			api.EncodeResponse,
			opts...,
		), "view_group").ServeHTTP)

		r.Put("/{groupID}", otelhttp.NewHandler(kithttp.NewServer(
			updateGroupEndpoint(svc),
			decodeUpdateGroupReq,
			api.EncodeResponse,
			opts...,
		), "update_group").ServeHTTP)

		r.Patch("/{groupID}", otelhttp.NewHandler(kithttp.NewServer(
			patchGroupEndpoint(svc),
			decodePatchGroupReq,
			api.EncodeResponse,
			opts...,
		), "patch_group").ServeHTTP)

		r.Delete("/{groupID}", otelhttp.NewHandler(kithttp.NewServer(
			deleteGroupEndpoint(svc),
			decodeDeleteGroupReq,
			api.EncodeResponse,
			opts...,
		), "delete_group").ServeHTTP)
	})

	return mux
}

func decodeCreateGroupReq(_ context.Context, r *http.Request) (interface{}, error) {
	if err := api.CheckContentType(r); err != nil {
		return nil, err
	}

	var group scim.Group
	if err := json.NewDecoder(r.Body).Decode(&group); err != nil {
		return nil, errors.Wrap(apiutil.ErrMalformedBody, err)
	}

	return createGroupReq{group: group}, nil
}

func decodeViewGroupReq(_ context.Context, r *http.Request) (interface{}, error) {
	return viewGroupReq{id: chi.URLParam(r, "groupID")}, nil
}

func decodeListGroupsReq(_ context.Context, r *http.Request) (interface{}, error) {
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

	return listGroupsReq{
		page:       page,
		attributes: api.SplitAttributes(attributes),
		excluded:   api.SplitAttributes(excluded),
	}, nil
}

func decodeUpdateGroupReq(_ context.Context, r *http.Request) (interface{}, error) {
	if err := api.CheckContentType(r); err != nil {
		return nil, err
	}

	var group scim.Group
	if err := json.NewDecoder(r.Body).Decode(&group); err != nil {
		return nil, errors.Wrap(apiutil.ErrMalformedBody, err)
	}

	return updateGroupReq{
		id:      chi.URLParam(r, "groupID"),
		ifMatch: r.Header.Get("If-Match"),
		group:   group,
	}, nil
}

func decodePatchGroupReq(_ context.Context, r *http.Request) (interface{}, error) {
	if err := api.CheckContentType(r); err != nil {
		return nil, err
	}

	ops, err := api.DecodePatchBody(r)
	if err != nil {
		return nil, err
	}

	return patchGroupReq{
		id:      chi.URLParam(r, "groupID"),
		ifMatch: r.Header.Get("If-Match"),
		ops:     ops,
	}, nil
}

func decodeDeleteGroupReq(_ context.Context, r *http.Request) (interface{}, error) {
	return deleteGroupReq{
		id:      chi.URLParam(r, "groupID"),
		ifMatch: r.Header.Get("If-Match"),
	}, nil
}

func decodePageQuery(r *http.Request) (groups.Page, error) {
	filter, err := apiutil.ReadStringQuery(r, api.FilterKey, "")
	if err != nil {
		return groups.Page{}, err
	}
	startIndex, err := apiutil.ReadNumQuery[int](r, api.StartIndexKey, api.DefStartIndex)
	if err != nil {
		return groups.Page{}, err
	}
	count, err := apiutil.ReadNumQuery[int](r, api.CountKey, api.DefCount)
	if err != nil {
		return groups.Page{}, err
	}
	if count > api.MaxCount {
		count = api.MaxCount
	}
	sortBy, err := apiutil.ReadStringQuery(r, api.SortByKey, "")
	if err != nil {
		return groups.Page{}, err
	}
	sortOrder, err := apiutil.ReadStringQuery(r, api.SortOrderKey, "")
	if err != nil {
		return groups.Page{}, err
	}

	return groups.Page{
		StartIndex: startIndex,
		Count:      count,
		Filter:     filter,
		SortBy:     sortBy,
		SortOrder:  sortOrder,
	}, nil
}
