// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

// Package api contains the admin HTTP transport for transformation rules.
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
	"github.com/idrelay/idrelay/rules"
)

const providerIDKey = "providerId"

// MakeHandler registers the rule admin routes on the given router.
func MakeHandler(svc rules.Service, authenticator authn.Authentication, mux *chi.Mux, logger *slog.Logger) *chi.Mux {
	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(apiutil.LoggingErrorEncoder(logger, api.EncodeError)),
	}

	mux.Route("/rules", func(r chi.Router) {
		r.Use(api.AuthenticateMiddleware(authenticator))

		r.Post("/", otelhttp.NewHandler(kithttp.NewServer(
			createRuleEndpoint(svc),
			decodeCreateRuleReq,
			api.EncodeResponse,
			opts...,
		), "create_rule").ServeHTTP)

		r.Get("/", otelhttp.NewHandler(kithttp.NewServer(
			listRulesEndpoint(svc),
			decodeListRulesReq,
			api.EncodeResponse,
			opts...,
		), "list_rules").ServeHTTP)

		r.Post("/test", otelhttp.NewHandler(kithttp.NewServer(
			testRuleEndpoint(svc),
			decodeTestRuleReq,
			api.EncodeResponse,
			opts...,
		), "test_rule").ServeHTTP)

		r.Get("/{ruleID}", otelhttp.NewHandler(kithttp.NewServer(
			viewRuleEndpoint(svc),
			decodeViewRuleReq,
			api.EncodeResponse,
			opts...,
		), "view_rule").ServeHTTP)

		r.Put("/{ruleID}", otelhttp.NewHandler(kithttp.NewServer(
			updateRuleEndpoint(svc),
			decodeUpdateRuleReq,
			api.EncodeResponse,
			opts...,
		), "update_rule").ServeHTTP)

		r.Delete("/{ruleID}", otelhttp.NewHandler(kithttp.NewServer(
			deleteRuleEndpoint(svc),
			decodeDeleteRuleReq,
			api.EncodeResponse,
			opts...,
		), "delete_rule").ServeHTTP)

		r.Post("/{ruleID}/enable", otelhttp.NewHandler(kithttp.NewServer(
			changeRuleStateEndpoint(svc),
			decodeEnableRuleReq,
			api.EncodeResponse,
			opts...,
		), "enable_rule").ServeHTTP)

		r.Post("/{ruleID}/disable", otelhttp.NewHandler(kithttp.NewServer(
			changeRuleStateEndpoint(svc),
			decodeDisableRuleReq,
			api.EncodeResponse,
			opts...,
		), "disable_rule").ServeHTTP)
	})

	return mux
}

func decodeCreateRuleReq(_ context.Context, r *http.Request) (interface{}, error) {
	if err := api.CheckContentType(r); err != nil {
		return nil, err
	}

	var rule rules.Rule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		return nil, errors.Wrap(apiutil.ErrMalformedBody, err)
	}

	return createRuleReq{rule: rule}, nil
}

func decodeViewRuleReq(_ context.Context, r *http.Request) (interface{}, error) {
	return viewRuleReq{id: chi.URLParam(r, "ruleID")}, nil
}

func decodeListRulesReq(_ context.Context, r *http.Request) (interface{}, error) {
	providerID, err := apiutil.ReadStringQuery(r, providerIDKey, "")
	if err != nil {
		return nil, errors.Wrap(apiutil.ErrValidation, err)
	}
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

	return listRulesReq{page: rules.Page{
		StartIndex: startIndex,
		Count:      count,
		ProviderID: providerID,
	}}, nil
}

func decodeUpdateRuleReq(_ context.Context, r *http.Request) (interface{}, error) {
	if err := api.CheckContentType(r); err != nil {
		return nil, err
	}

	var rule rules.Rule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		return nil, errors.Wrap(apiutil.ErrMalformedBody, err)
	}

	return updateRuleReq{
		id:      chi.URLParam(r, "ruleID"),
		ifMatch: r.Header.Get("If-Match"),
		rule:    rule,
	}, nil
}

func decodeDeleteRuleReq(_ context.Context, r *http.Request) (interface{}, error) {
	return deleteRuleReq{
		id:      chi.URLParam(r, "ruleID"),
		ifMatch: r.Header.Get("If-Match"),
	}, nil
}

func decodeEnableRuleReq(_ context.Context, r *http.Request) (interface{}, error) {
	return changeRuleStateReq{id: chi.URLParam(r, "ruleID"), enabled: true}, nil
}

func decodeDisableRuleReq(_ context.Context, r *http.Request) (interface{}, error) {
	return changeRuleStateReq{id: chi.URLParam(r, "ruleID"), enabled: false}, nil
}

func decodeTestRuleReq(_ context.Context, r *http.Request) (interface{}, error) {
	if err := api.CheckContentType(r); err != nil {
		return nil, err
	}

	var body struct {
		Rule   rules.Rule `json:"rule"`
		Inputs []string   `json:"inputs"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, errors.Wrap(apiutil.ErrMalformedBody, err)
	}

	return testRuleReq{rule: body.Rule, inputs: body.Inputs}, nil
}
