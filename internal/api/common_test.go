// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idrelay/idrelay/internal/api"
	"github.com/idrelay/idrelay/pkg/apiutil"
	"github.com/idrelay/idrelay/pkg/errors"
	repoerr "github.com/idrelay/idrelay/pkg/errors/repository"
	svcerr "github.com/idrelay/idrelay/pkg/errors/service"
	"github.com/idrelay/idrelay/pkg/scim"
)

type errorBody struct {
	Schemas  []string `json:"schemas"`
	ScimType string   `json:"scimType,omitempty"`
	Detail   string   `json:"detail,omitempty"`
	Status   string   `json:"status"`
}

func encode(t *testing.T, err error) (*httptest.ResponseRecorder, errorBody) {
	t.Helper()

	w := httptest.NewRecorder()
	api.EncodeError(context.Background(), err, w)

	var body errorBody
	require.Nil(t, json.NewDecoder(w.Body).Decode(&body), "error body must decode")

	return w, body
}

func TestEncodeErrorMapping(t *testing.T) {
	cases := []struct {
		desc     string
		err      error
		status   int
		scimType string
	}{
		{
			desc:   "authentication failure",
			err:    svcerr.ErrAuthentication,
			status: http.StatusUnauthorized,
		},
		{
			desc:     "invalid filter",
			err:      errors.Wrap(svcerr.ErrInvalidFilter, errors.New("bad token")),
			status:   http.StatusBadRequest,
			scimType: api.ScimTypeInvalidFilter,
		},
		{
			desc:     "malformed body",
			err:      errors.Wrap(apiutil.ErrMalformedBody, errors.New("unexpected EOF")),
			status:   http.StatusBadRequest,
			scimType: api.ScimTypeInvalidSyntax,
		},
		{
			desc:     "entity validation failure",
			err:      errors.Wrap(svcerr.ErrMalformedEntity, apiutil.ErrInvalidEmail),
			status:   http.StatusBadRequest,
			scimType: api.ScimTypeInvalidSyntax,
		},
		{
			desc:     "request validation failure",
			err:      errors.Wrap(apiutil.ErrValidation, apiutil.ErrMissingID),
			status:   http.StatusBadRequest,
			scimType: api.ScimTypeInvalidSyntax,
		},
		{
			desc:   "not found",
			err:    repoerr.ErrNotFound,
			status: http.StatusNotFound,
		},
		{
			desc:     "natural key collision",
			err:      svcerr.ErrUniqueness,
			status:   http.StatusConflict,
			scimType: api.ScimTypeUniqueness,
		},
		{
			desc:   "stale version",
			err:    svcerr.ErrVersionMismatch,
			status: http.StatusConflict,
		},
		{
			desc:   "conflicting transformation rules",
			err:    svcerr.ErrTransformationConflict,
			status: http.StatusUnprocessableEntity,
		},
		{
			desc:   "missing required precondition",
			err:    svcerr.ErrPreconditionRequired,
			status: http.StatusPreconditionFailed,
		},
		{
			desc:     "rate limited",
			err:      svcerr.ErrTooManyRequests,
			status:   http.StatusTooManyRequests,
			scimType: api.ScimTypeTooMany,
		},
		{
			desc:     "unmapped failure",
			err:      errors.New("disk on fire"),
			status:   http.StatusInternalServerError,
			scimType: api.ScimTypeUnavailable,
		},
	}

	for _, tc := range cases {
		w, body := encode(t, tc.err)
		assert.Equal(t, tc.status, w.Code, tc.desc)
		assert.Equal(t, tc.scimType, body.ScimType, tc.desc)
		assert.Equal(t, strconv.Itoa(tc.status), body.Status, tc.desc)
		assert.Equal(t, []string{scim.SchemaError}, body.Schemas, tc.desc)
		assert.Equal(t, scim.ContentType, w.Header().Get("Content-Type"), tc.desc)
	}
}

func TestEncodeErrorRetryAfter(t *testing.T) {
	w, _ := encode(t, svcerr.ErrTooManyRequests)
	assert.Equal(t, strconv.Itoa(api.DefRetryAfter), w.Header().Get("Retry-After"))
}

func TestRequireIfMatch(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := api.RequireIfMatch(next)

	cases := []struct {
		desc    string
		method  string
		path    string
		ifMatch string
		status  int
	}{
		{
			desc:   "patch without precondition",
			method: http.MethodPatch,
			path:   "/scim/v2/Users/user-1",
			status: http.StatusPreconditionFailed,
		},
		{
			desc:   "delete without precondition",
			method: http.MethodDelete,
			path:   "/scim/v2/Groups/group-1",
			status: http.StatusPreconditionFailed,
		},
		{
			desc:    "put with precondition",
			method:  http.MethodPut,
			path:    "/scim/v2/Users/user-1",
			ifMatch: `W/"1"`,
			status:  http.StatusOK,
		},
		{
			desc:   "read is never gated",
			method: http.MethodGet,
			path:   "/scim/v2/Users/user-1",
			status: http.StatusOK,
		},
		{
			desc:   "non-resource routes are never gated",
			method: http.MethodDelete,
			path:   "/rules/rule-1",
			status: http.StatusOK,
		},
	}

	for _, tc := range cases {
		r := httptest.NewRequest(tc.method, tc.path, http.NoBody)
		if tc.ifMatch != "" {
			r.Header.Set("If-Match", tc.ifMatch)
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, tc.status, w.Code, fmt.Sprintf("%s: expected %d got %d", tc.desc, tc.status, w.Code))
	}
}

func TestSplitAttributes(t *testing.T) {
	assert.Nil(t, api.SplitAttributes(""))
	assert.Equal(t, []string{"userName", "emails"}, api.SplitAttributes("userName,emails"))
	assert.Equal(t, []string{"userName", "name.givenName"}, api.SplitAttributes(" userName , name.givenName ,"))
}
