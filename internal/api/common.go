// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

// Package api contains the transport helpers shared by all HTTP
// endpoints: response encoding, the protocol error body, and the
// authentication middleware.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/idrelay/idrelay"
	"github.com/idrelay/idrelay/pkg/apiutil"
	"github.com/idrelay/idrelay/pkg/errors"
	repoerr "github.com/idrelay/idrelay/pkg/errors/repository"
	svcerr "github.com/idrelay/idrelay/pkg/errors/service"
	"github.com/idrelay/idrelay/pkg/scim"
)

const (
	// ContentType is the SCIM media type used on every response.
	ContentType = scim.ContentType

	FilterKey             = "filter"
	StartIndexKey         = "startIndex"
	CountKey              = "count"
	SortByKey             = "sortBy"
	SortOrderKey          = "sortOrder"
	AttributesKey         = "attributes"
	ExcludedAttributesKey = "excludedAttributes"

	AscDir  = "ascending"
	DescDir = "descending"

	DefStartIndex = 1
	DefCount      = 100
	MaxCount      = 1000

	// DefRetryAfter is the Retry-After value returned on rate-limit
	// responses when the downstream provider did not supply one.
	DefRetryAfter = 30
)

// SCIM protocol error keywords.
const (
	ScimTypeInvalidFilter = "invalidFilter"
	ScimTypeInvalidPath   = "invalidPath"
	ScimTypeInvalidValue  = "invalidValue"
	ScimTypeInvalidSyntax = "invalidSyntax"
	ScimTypeNoTarget      = "noTarget"
	ScimTypeUniqueness    = "uniqueness"
	ScimTypeMutability    = "mutability"
	ScimTypeTooMany       = "tooMany"
	ScimTypeUnavailable   = "serverUnavailable"
)

// EncodeResponse encodes successful response.
func EncodeResponse(_ context.Context, w http.ResponseWriter, response interface{}) error {
	if ar, ok := response.(idrelay.Response); ok {
		for k, v := range ar.Headers() {
			w.Header().Set(k, v)
		}
		w.Header().Set("Content-Type", ContentType)
		w.WriteHeader(ar.Code())

		if ar.Empty() {
			return nil
		}
	}

	return json.NewEncoder(w).Encode(response)
}

type errorRes struct {
	Schemas  []string `json:"schemas"`
	ScimType string   `json:"scimType,omitempty"`
	Detail   string   `json:"detail,omitempty"`
	Status   string   `json:"status"`
}

// EncodeError encodes an error as a SCIM error body. Every error path
// through the transport funnels into this mapping.
func EncodeError(_ context.Context, err error, w http.ResponseWriter) {
	var wrapper error
	if errors.Contains(err, apiutil.ErrValidation) {
		wrapper, err = errors.Unwrap(err)
	}

	status := http.StatusInternalServerError
	scimType := ""

	switch {
	case errors.Contains(err, svcerr.ErrAuthentication),
		errors.Contains(err, apiutil.ErrBearerToken):
		err = unwrap(err)
		status = http.StatusUnauthorized

	case errors.Contains(err, svcerr.ErrAuthorization):
		err = unwrap(err)
		status = http.StatusForbidden

	case errors.Contains(err, svcerr.ErrInvalidFilter):
		err = unwrap(err)
		status = http.StatusBadRequest
		scimType = ScimTypeInvalidFilter

	case errors.Contains(err, svcerr.ErrInvalidPath),
		errors.Contains(err, scim.ErrPatchPath),
		errors.Contains(err, scim.ErrReadOnlyPath),
		errors.Contains(err, apiutil.ErrMissingPatchPath):
		err = unwrap(err)
		status = http.StatusBadRequest
		scimType = ScimTypeInvalidPath

	case errors.Contains(err, scim.ErrNoTarget):
		err = unwrap(err)
		status = http.StatusBadRequest
		scimType = ScimTypeNoTarget

	case errors.Contains(err, apiutil.ErrMalformedBody):
		err = unwrap(err)
		status = http.StatusBadRequest
		scimType = ScimTypeInvalidSyntax

	case errors.Contains(err, svcerr.ErrMalformedEntity),
		errors.Contains(err, repoerr.ErrMalformedEntity),
		errors.Contains(err, scim.ErrPatchValue),
		errors.Contains(err, apiutil.ErrValidation):
		err = unwrap(err)
		status = http.StatusBadRequest
		scimType = ScimTypeInvalidSyntax

	case errors.Contains(err, svcerr.ErrNotFound),
		errors.Contains(err, repoerr.ErrNotFound),
		errors.Contains(err, svcerr.ErrAdapterNotFound),
		errors.Contains(err, apiutil.ErrNotFoundParam):
		err = unwrap(err)
		status = http.StatusNotFound

	case errors.Contains(err, svcerr.ErrUniqueness),
		errors.Contains(err, repoerr.ErrConflict):
		err = unwrap(err)
		status = http.StatusConflict
		scimType = ScimTypeUniqueness

	case errors.Contains(err, svcerr.ErrVersionMismatch),
		errors.Contains(err, repoerr.ErrVersionConflict):
		err = unwrap(err)
		status = http.StatusConflict

	case errors.Contains(err, svcerr.ErrTransformationConflict):
		err = unwrap(err)
		status = http.StatusUnprocessableEntity

	case errors.Contains(err, svcerr.ErrPreconditionRequired):
		err = unwrap(err)
		status = http.StatusPreconditionFailed

	case errors.Contains(err, svcerr.ErrUnprocessable):
		err = unwrap(err)
		status = http.StatusUnprocessableEntity

	case errors.Contains(err, svcerr.ErrTooManyRequests):
		err = unwrap(err)
		status = http.StatusTooManyRequests
		scimType = ScimTypeTooMany
		w.Header().Set("Retry-After", strconv.Itoa(DefRetryAfter))

	case errors.Contains(err, apiutil.ErrUnsupportedContentType):
		err = unwrap(err)
		status = http.StatusUnsupportedMediaType

	case errors.Contains(err, svcerr.ErrNotImplemented):
		err = unwrap(err)
		status = http.StatusNotImplemented

	case errors.Contains(err, svcerr.ErrCreateEntity),
		errors.Contains(err, svcerr.ErrUpdateEntity),
		errors.Contains(err, svcerr.ErrRemoveEntity),
		errors.Contains(err, svcerr.ErrViewEntity):
		err = unwrap(err)
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		scimType = ScimTypeUnavailable
	}

	if wrapper != nil {
		err = errors.Wrap(wrapper, err)
	}

	detail := ""
	if err != nil {
		detail = err.Error()
	}

	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(status)

	res := errorRes{
		Schemas:  []string{scim.SchemaError},
		ScimType: scimType,
		Detail:   detail,
		Status:   strconv.Itoa(status),
	}
	if encErr := json.NewEncoder(w).Encode(res); encErr != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func unwrap(err error) error {
	wrapper, err := errors.Unwrap(err)
	if wrapper != nil {
		return wrapper
	}
	return err
}
