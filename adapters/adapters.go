// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

// Package adapters defines the downstream provider contract, the
// per-tenant adapter registry and the bounded connection pool. Provider
// implementations live in the salesforce, workday and servicenow
// subpackages.
package adapters

import (
	"context"
	"fmt"
	"time"

	svcerr "github.com/idrelay/idrelay/pkg/errors/service"
	"github.com/idrelay/idrelay/pkg/scim"
	"github.com/idrelay/idrelay/transform"
)

// Capabilities describes what a provider supports.
type Capabilities struct {
	Provider           string   `json:"provider"`
	SupportsUsers      bool     `json:"supportsUsers"`
	SupportsGroups     bool     `json:"supportsGroups"`
	SupportsMembers    bool     `json:"supportsMembers"`
	EntitlementTypes   []string `json:"entitlementTypes"`
	MaxPageSize        int      `json:"maxPageSize,omitempty"`
	SupportsSoftDelete bool     `json:"supportsSoftDelete"`
}

// Adapter is the uniform downstream provider surface. Implementations
// translate provider-native errors into *Error before returning them.
//
//go:generate mockery --name Adapter --output=./mocks --filename adapter.go --quiet --note "Copyright (c) IdRelay"
type Adapter interface {
	CreateUser(ctx context.Context, user scim.User) (scim.User, error)
	GetUser(ctx context.Context, id string) (scim.User, error)
	UpdateUser(ctx context.Context, user scim.User) (scim.User, error)
	DeleteUser(ctx context.Context, id string) error
	ListUsers(ctx context.Context) ([]scim.User, error)

	CreateGroup(ctx context.Context, group scim.Group) (scim.Group, error)
	GetGroup(ctx context.Context, id string) (scim.Group, error)
	UpdateGroup(ctx context.Context, group scim.Group) (scim.Group, error)
	DeleteGroup(ctx context.Context, id string) error
	ListGroups(ctx context.Context) ([]scim.Group, error)

	AddUserToGroup(ctx context.Context, userID, groupID string) error
	RemoveUserFromGroup(ctx context.Context, userID, groupID string) error
	GetGroupMembers(ctx context.Context, groupID string) ([]scim.Member, error)

	// MapGroupToEntitlement applies the provider-side view of a mapped
	// group, provisioning the entitlements produced by the
	// transformation engine.
	MapGroupToEntitlement(ctx context.Context, groupName string, entitlements []transform.Entitlement) error

	CheckHealth(ctx context.Context) error
	GetCapabilities(ctx context.Context) (Capabilities, error)
}

// Error is the uniform provider error crossing the adapter boundary.
type Error struct {
	ProviderName      string        `json:"providerName"`
	HTTPStatusCode    int           `json:"httpStatusCode,omitempty"`
	ProviderErrorCode string        `json:"providerErrorCode,omitempty"`
	ScimErrorType     string        `json:"scimErrorType,omitempty"`
	Retryable         bool          `json:"retryable"`
	RetryAfter        time.Duration `json:"retryAfter,omitempty"`
	Message           string        `json:"message,omitempty"`
}

func (e *Error) Error() string {
	if e.ProviderErrorCode != "" {
		return fmt.Sprintf("%s: %s (%s)", e.ProviderName, e.Message, e.ProviderErrorCode)
	}

	return fmt.Sprintf("%s: %s", e.ProviderName, e.Message)
}

// TranslateError maps a provider HTTP status onto the uniform error.
// 429 and 5xx responses are retryable.
func TranslateError(provider string, status int, code, message string, retryAfter time.Duration) *Error {
	e := &Error{
		ProviderName:      provider,
		HTTPStatusCode:    status,
		ProviderErrorCode: code,
		Message:           message,
		RetryAfter:        retryAfter,
	}
	switch {
	case status == 429:
		e.ScimErrorType = "tooMany"
		e.Retryable = true
	case status >= 500:
		e.ScimErrorType = "serverUnavailable"
		e.Retryable = true
	case status == 404:
		e.ScimErrorType = "invalidPath"
	case status == 409:
		e.ScimErrorType = "uniqueness"
	case status == 401 || status == 403:
		e.ScimErrorType = "invalidValue"
	}

	return e
}

// ServiceError maps a provider error onto the service error taxonomy so
// the HTTP edge renders the right SCIM response.
func ServiceError(err error) error {
	var ae *Error
	if !AsError(err, &ae) {
		return err
	}
	switch {
	case ae.HTTPStatusCode == 429:
		return svcerr.ErrTooManyRequests
	case ae.HTTPStatusCode == 404:
		return svcerr.ErrNotFound
	case ae.HTTPStatusCode == 409:
		return svcerr.ErrUniqueness
	case ae.HTTPStatusCode == 422:
		return svcerr.ErrUnprocessable
	default:
		return err
	}
}

// AsError unwraps err looking for an adapter *Error.
func AsError(err error, target **Error) bool {
	for err != nil {
		if ae, ok := err.(*Error); ok {
			*target = ae
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}

	return false
}
