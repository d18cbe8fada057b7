// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

// Package secret defines the credential retrieval contract used by the
// provider adapters.
package secret

import (
	"context"
	"os"
	"strings"

	"github.com/idrelay/idrelay/pkg/errors"
)

// ErrNotFound indicates a secret path with no stored value.
var ErrNotFound = errors.New("secret not found")

// Provider retrieves opaque credential material by path.
type Provider interface {
	Get(ctx context.Context, path string) ([]byte, error)
}

var _ Provider = (*envProvider)(nil)

type envProvider struct {
	prefix string
}

// NewEnv returns a Provider reading secrets from environment variables.
// A path such as "adapters/salesforce/client_secret" is resolved to the
// variable IR_SECRET_ADAPTERS_SALESFORCE_CLIENT_SECRET.
func NewEnv(prefix string) Provider {
	return &envProvider{prefix: prefix}
}

func (p *envProvider) Get(_ context.Context, path string) ([]byte, error) {
	key := p.prefix + strings.ToUpper(strings.NewReplacer("/", "_", "-", "_", ".", "_").Replace(path))
	val, ok := os.LookupEnv(key)
	if !ok {
		return nil, ErrNotFound
	}

	return []byte(val), nil
}
