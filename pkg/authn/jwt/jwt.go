// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

// Package jwt provides a JWT-backed implementation of the authentication
// contract. Tokens are signed by the upstream identity layer with a shared
// HMAC secret and carry the tenant and actor claims.
package jwt

import (
	"context"

	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/pkg/errors"
	svcerr "github.com/idrelay/idrelay/pkg/errors/service"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	tenantClaim    = "tenant_id"
	actorTypeClaim = "actor_type"
	issuer         = "idrelay.auth"
)

var (
	errParseToken     = errors.New("failed to parse bearer token")
	errMissingTenant  = errors.New("token carries no tenant claim")
	errMissingSubject = errors.New("token carries no subject")
)

var _ authn.Authentication = (*tokenizer)(nil)

type tokenizer struct {
	secret []byte
}

// New returns a JWT authenticator validating tokens with the given secret.
func New(secret []byte) authn.Authentication {
	return &tokenizer{secret: secret}
}

func (t *tokenizer) Authenticate(ctx context.Context, token string) (authn.Session, error) {
	tkn, err := jwt.Parse(
		[]byte(token),
		jwt.WithValidate(true),
		jwt.WithKey(jwa.HS512, t.secret),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		return authn.Session{}, errors.Wrap(svcerr.ErrAuthentication, errors.Wrap(errParseToken, err))
	}

	tenant, ok := tkn.Get(tenantClaim)
	if !ok {
		return authn.Session{}, errors.Wrap(svcerr.ErrAuthentication, errMissingTenant)
	}
	tenantID, ok := tenant.(string)
	if !ok || tenantID == "" {
		return authn.Session{}, errors.Wrap(svcerr.ErrAuthentication, errMissingTenant)
	}

	if tkn.Subject() == "" {
		return authn.Session{}, errors.Wrap(svcerr.ErrAuthentication, errMissingSubject)
	}

	actorType := authn.ActorUser
	if at, ok := tkn.Get(actorTypeClaim); ok {
		if s, ok := at.(string); ok && s != "" {
			actorType = s
		}
	}

	return authn.Session{
		TenantID:  tenantID,
		ActorID:   tkn.Subject(),
		ActorType: actorType,
	}, nil
}
