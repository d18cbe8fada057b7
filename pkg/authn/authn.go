// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

// Package authn contains the authentication contract consumed by the
// gateway. Bearer tokens are validated upstream; the gateway only needs
// the resolved session carrying the tenant partition and the actor.
package authn

import "context"

// Actor types attached to sessions.
const (
	ActorUser    = "user"
	ActorService = "service"
	ActorAdmin   = "admin"
)

// Session is the authenticated context attached to every SCIM request.
type Session struct {
	TenantID  string
	ActorID   string
	ActorType string
}

// Authentication resolves an opaque bearer token into a Session.
type Authentication interface {
	Authenticate(ctx context.Context, token string) (Session, error)
}
