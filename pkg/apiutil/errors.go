// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package apiutil

import "github.com/idrelay/idrelay/pkg/errors"

// Errors defined in this file are used by the LoggingErrorEncoder decorator
// to distinguish and log API request validation errors and avoid that service
// errors are logged twice.
var (
	// ErrValidation indicates that an error was returned by the API.
	ErrValidation = errors.New("something went wrong with the request")

	// ErrBearerToken indicates missing or invalid bearer user token.
	ErrBearerToken = errors.New("missing or invalid bearer user token")

	// ErrMissingID indicates missing resource ID.
	ErrMissingID = errors.New("missing resource id")

	// ErrMissingTenant indicates a request without a tenant in its session.
	ErrMissingTenant = errors.New("missing tenant id")

	// ErrMissingUserName indicates a user resource without userName.
	ErrMissingUserName = errors.New("missing userName attribute")

	// ErrMissingDisplayName indicates a group resource without displayName.
	ErrMissingDisplayName = errors.New("missing displayName attribute")

	// ErrNameSize indicates that a named string attribute exceeds the cap.
	ErrNameSize = errors.New("attribute exceeds maximum length")

	// ErrMultiplePrimary indicates more than one primary element in a
	// multi-valued attribute.
	ErrMultiplePrimary = errors.New("multiple elements marked primary")

	// ErrInvalidEmail indicates a malformed email value.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrInvalidPhone indicates a malformed phone number value.
	ErrInvalidPhone = errors.New("invalid phone number")

	// ErrInvalidAddressType indicates an address type outside work|home|other.
	ErrInvalidAddressType = errors.New("invalid address type")

	// ErrInvalidMemberType indicates a member type outside User|Group.
	ErrInvalidMemberType = errors.New("invalid member type")

	// ErrDuplicateMember indicates a repeated member value within a group.
	ErrDuplicateMember = errors.New("duplicate member value")

	// ErrInvalidSchemas indicates a schemas list missing the canonical URN.
	ErrInvalidSchemas = errors.New("schemas must contain the canonical resource URN")

	// ErrMissingPatchOps indicates a PATCH request without operations.
	ErrMissingPatchOps = errors.New("missing patch operations")

	// ErrInvalidPatchOp indicates an operation outside add|replace|remove.
	ErrInvalidPatchOp = errors.New("invalid patch operation")

	// ErrMissingPatchPath indicates a patch operation that requires a path.
	ErrMissingPatchPath = errors.New("missing patch path")

	// ErrMissingPatchValue indicates an add or replace operation without value.
	ErrMissingPatchValue = errors.New("missing patch value")

	// ErrInvalidStartIndex indicates startIndex < 1.
	ErrInvalidStartIndex = errors.New("startIndex must be 1 or greater")

	// ErrInvalidCount indicates count outside [1, 1000].
	ErrInvalidCount = errors.New("count must be between 1 and 1000")

	// ErrInvalidOrder indicates an invalid sort order.
	ErrInvalidOrder = errors.New("invalid sort order provided")

	// ErrInvalidQueryParams indicates invalid query parameters.
	ErrInvalidQueryParams = errors.New("invalid query parameters")

	// ErrUnsupportedContentType indicates unacceptable or lack of Content-Type.
	ErrUnsupportedContentType = errors.New("unsupported content type")

	// ErrMalformedBody indicates a request body that is not valid JSON.
	ErrMalformedBody = errors.New("malformed request body")

	// ErrMissingProviderID indicates a rule or dispatch request without a
	// provider id.
	ErrMissingProviderID = errors.New("missing provider id")

	// ErrMissingSourcePattern indicates a rule without a source pattern.
	ErrMissingSourcePattern = errors.New("missing rule source pattern")

	// ErrMissingTargetMapping indicates a rule without a target mapping.
	ErrMissingTargetMapping = errors.New("missing rule target mapping")

	// ErrInvalidRuleType indicates a rule type outside the known set.
	ErrInvalidRuleType = errors.New("invalid rule type")

	// ErrInvalidConflictStrategy indicates an unknown conflict strategy.
	ErrInvalidConflictStrategy = errors.New("invalid conflict resolution strategy")

	// ErrInvalidRulePriority indicates a priority below 1.
	ErrInvalidRulePriority = errors.New("rule priority must be 1 or greater")

	// ErrEmptyList indicates that entity data is empty.
	ErrEmptyList = errors.New("empty list provided")

	// ErrRollbackTx indicates failed to rollback transaction.
	ErrRollbackTx = errors.New("failed to rollback transaction")

	// ErrNotFoundParam indicates that the parameter was not found in the query.
	ErrNotFoundParam = errors.New("parameter not found in the query")
)
