// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package service

import "github.com/idrelay/idrelay/pkg/errors"

// Wrapper for Service errors.
var (
	// ErrAuthentication indicates failure occurred while authenticating the entity.
	ErrAuthentication = errors.New("authentication error")

	// ErrAuthorization indicates failure occurred while authorizing the entity.
	ErrAuthorization = errors.New("failed to perform authorization over the entity")

	// ErrMalformedEntity indicates a malformed entity specification.
	ErrMalformedEntity = errors.New("malformed entity specification")

	// ErrInvalidFilter indicates a filter that failed to parse or translate.
	ErrInvalidFilter = errors.New("invalid filter expression")

	// ErrInvalidPath indicates an unresolvable PATCH path or route target.
	ErrInvalidPath = errors.New("invalid attribute path")

	// ErrNotFound indicates a non-existent entity request.
	ErrNotFound = errors.New("entity not found")

	// ErrUniqueness indicates a tenant-scoped natural key collision.
	ErrUniqueness = errors.New("resource violates a uniqueness constraint")

	// ErrVersionMismatch indicates a stale If-Match precondition.
	ErrVersionMismatch = errors.New("resource version does not match precondition")

	// ErrPreconditionRequired indicates a missing If-Match header where the
	// tenant policy demands one.
	ErrPreconditionRequired = errors.New("precondition required")

	// ErrUnprocessable indicates an entity that is well-formed but violates
	// cross-resource referential rules.
	ErrUnprocessable = errors.New("unprocessable entity")

	// ErrTooManyRequests indicates a rate-limit signal from a downstream provider.
	ErrTooManyRequests = errors.New("too many requests")

	// ErrNotImplemented indicates a capability gap.
	ErrNotImplemented = errors.New("operation not implemented")

	// ErrTransformationConflict indicates conflicting rule matches under the
	// ERROR resolution strategy.
	ErrTransformationConflict = errors.New("conflicting transformation rules")

	// ErrAdapterNotFound indicates a (tenant, provider) pair with no
	// registered adapter.
	ErrAdapterNotFound = errors.New("no adapter registered for provider")

	// ErrCreateEntity indicates error in creating entity or entities.
	ErrCreateEntity = errors.New("failed to create entity in the store")

	// ErrRemoveEntity indicates error in removing entity.
	ErrRemoveEntity = errors.New("failed to remove entity")

	// ErrViewEntity indicates error in viewing entity or entities.
	ErrViewEntity = errors.New("view entity failed")

	// ErrUpdateEntity indicates error in updating entity or entities.
	ErrUpdateEntity = errors.New("update entity failed")

	// ErrUniqueID indicates an error in generating a unique ID.
	ErrUniqueID = errors.New("failed to generate unique identifier")
)
