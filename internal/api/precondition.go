// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"net/http"
	"strings"

	svcerr "github.com/idrelay/idrelay/pkg/errors/service"
)

// RequireIfMatch enforces the policy demanding a version precondition on
// every mutating resource request. Requests without an If-Match header
// are rejected with 412 before reaching the service.
func RequireIfMatch(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut, http.MethodPatch, http.MethodDelete:
			if strings.HasPrefix(r.URL.Path, "/scim/v2/") && r.Header.Get("If-Match") == "" {
				EncodeError(r.Context(), svcerr.ErrPreconditionRequired, w)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}
