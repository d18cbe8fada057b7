// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package adapters_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idrelay/idrelay/adapters"
	"github.com/idrelay/idrelay/adapters/mocks"
	"github.com/idrelay/idrelay/pkg/errors"
	svcerr "github.com/idrelay/idrelay/pkg/errors/service"
)

func TestRegistryLookup(t *testing.T) {
	registry := adapters.NewRegistry()
	salesforce := new(mocks.Adapter)
	workday := new(mocks.Adapter)
	registry.Register("tenant-1", "salesforce", salesforce)
	registry.Register("tenant-1", "workday", workday)
	registry.Register("tenant-2", "salesforce", new(mocks.Adapter))

	adapter, err := registry.Lookup("tenant-1", "salesforce")
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Same(t, salesforce, adapter)

	_, err = registry.Lookup("tenant-1", "servicenow")
	assert.True(t, errors.Contains(err, svcerr.ErrAdapterNotFound), fmt.Sprintf("expected adapter not found, got %v", err))

	// Tenants do not see each other's registrations.
	_, err = registry.Lookup("tenant-2", "workday")
	assert.True(t, errors.Contains(err, svcerr.ErrAdapterNotFound), fmt.Sprintf("expected adapter not found, got %v", err))

	assert.Equal(t, []string{"salesforce", "workday"}, registry.Providers("tenant-1"))
	assert.Equal(t, []string{"salesforce"}, registry.Providers("tenant-2"))
	assert.Empty(t, registry.Providers("tenant-3"))
}

func TestTranslateError(t *testing.T) {
	cases := []struct {
		desc      string
		status    int
		scimType  string
		retryable bool
	}{
		{desc: "rate limited", status: 429, scimType: "tooMany", retryable: true},
		{desc: "server error", status: 503, scimType: "serverUnavailable", retryable: true},
		{desc: "not found", status: 404, scimType: "invalidPath"},
		{desc: "conflict", status: 409, scimType: "uniqueness"},
		{desc: "unauthorized", status: 401, scimType: "invalidValue"},
		{desc: "forbidden", status: 403, scimType: "invalidValue"},
		{desc: "bad request", status: 400, scimType: ""},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			e := adapters.TranslateError("salesforce", tc.status, "CODE", "boom", time.Second)
			assert.Equal(t, tc.scimType, e.ScimErrorType)
			assert.Equal(t, tc.retryable, e.Retryable)
			assert.Equal(t, "salesforce", e.ProviderName)
			assert.Contains(t, e.Error(), "boom")
		})
	}
}

func TestServiceError(t *testing.T) {
	cases := []struct {
		desc     string
		status   int
		expected error
	}{
		{desc: "rate limited", status: 429, expected: svcerr.ErrTooManyRequests},
		{desc: "not found", status: 404, expected: svcerr.ErrNotFound},
		{desc: "conflict", status: 409, expected: svcerr.ErrUniqueness},
		{desc: "unprocessable", status: 422, expected: svcerr.ErrUnprocessable},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			err := adapters.ServiceError(adapters.TranslateError("workday", tc.status, "", "boom", 0))
			assert.True(t, errors.Contains(err, tc.expected), fmt.Sprintf("expected %v, got %v", tc.expected, err))
		})
	}

	// Non-adapter errors pass through untouched.
	plain := errors.New("plain")
	assert.Equal(t, plain, adapters.ServiceError(plain))
}
