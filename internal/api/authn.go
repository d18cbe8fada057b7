// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"net/http"

	"github.com/idrelay/idrelay/pkg/apiutil"
	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/pkg/errors"
)

type sessionKeyType struct{}

var sessionKey = sessionKeyType{}

// AuthenticateMiddleware resolves the bearer token into a session and
// stores it on the request context. Requests without a valid token never
// reach the handlers.
func AuthenticateMiddleware(authenticator authn.Authentication) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := apiutil.ExtractBearerToken(r)
			if token == "" {
				EncodeError(r.Context(), errors.Wrap(apiutil.ErrValidation, apiutil.ErrBearerToken), w)
				return
			}

			session, err := authenticator.Authenticate(r.Context(), token)
			if err != nil {
				EncodeError(r.Context(), err, w)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext retrieves the session stored by AuthenticateMiddleware.
func SessionFromContext(ctx context.Context) (authn.Session, bool) {
	session, ok := ctx.Value(sessionKey).(authn.Session)
	return session, ok
}
