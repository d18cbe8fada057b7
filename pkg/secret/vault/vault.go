// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

// Package vault provides a HashiCorp Vault KV v2 backed secret provider.
package vault

import (
	"context"

	"github.com/hashicorp/vault/api"
	"github.com/idrelay/idrelay/pkg/errors"
	"github.com/idrelay/idrelay/pkg/secret"
)

const valueKey = "value"

var (
	errConfigure = errors.New("failed to configure vault client")
	errRead      = errors.New("failed to read secret from vault")
	errMalformed = errors.New("secret payload is not a string value")
)

// Config holds the Vault connection settings.
type Config struct {
	Address string `env:"ADDRESS" envDefault:"http://localhost:8200"`
	Token   string `env:"TOKEN"   envDefault:""`
	Mount   string `env:"MOUNT"   envDefault:"secret"`
}

var _ secret.Provider = (*provider)(nil)

type provider struct {
	client *api.Client
	mount  string
}

// New returns a secret provider reading from Vault KV v2.
func New(cfg Config) (secret.Provider, error) {
	conf := api.DefaultConfig()
	conf.Address = cfg.Address
	client, err := api.NewClient(conf)
	if err != nil {
		return nil, errors.Wrap(errConfigure, err)
	}
	client.SetToken(cfg.Token)

	return &provider{client: client, mount: cfg.Mount}, nil
}

func (p *provider) Get(ctx context.Context, path string) ([]byte, error) {
	sec, err := p.client.KVv2(p.mount).Get(ctx, path)
	if err != nil {
		return nil, errors.Wrap(errRead, err)
	}
	if sec == nil || sec.Data == nil {
		return nil, secret.ErrNotFound
	}

	raw, ok := sec.Data[valueKey]
	if !ok {
		return nil, secret.ErrNotFound
	}
	val, ok := raw.(string)
	if !ok {
		return nil, errMalformed
	}

	return []byte(val), nil
}
