// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"os"
	"time"

	"github.com/pelletier/go-toml"

	"github.com/idrelay/idrelay/adapters"
	"github.com/idrelay/idrelay/adapters/salesforce"
	"github.com/idrelay/idrelay/adapters/servicenow"
	"github.com/idrelay/idrelay/adapters/workday"
	"github.com/idrelay/idrelay/pkg/errors"
	"github.com/idrelay/idrelay/pkg/secret"
)

var (
	errFailedToReadConfig = errors.New("failed to read provisioning config file")
	errUnknownProvider    = errors.New("unknown provider type in provisioning config")
)

// ProviderConf is one registry bootstrap entry binding a tenant to a
// downstream provider. Credentials stay in the secret provider; the
// file only carries their paths.
type ProviderConf struct {
	TenantID         string `toml:"tenant_id"`
	Provider         string `toml:"provider"`
	InstanceURL      string `toml:"instance_url"`
	TokenURL         string `toml:"token_url,omitempty"`
	WorkdayTenant    string `toml:"workday_tenant,omitempty"`
	ClientIDPath     string `toml:"client_id_path,omitempty"`
	ClientSecretPath string `toml:"client_secret_path,omitempty"`
	UsernamePath     string `toml:"username_path,omitempty"`
	PasswordPath     string `toml:"password_path,omitempty"`
}

// AdapterID derives the pool identity of the entry.
func (c ProviderConf) AdapterID() string {
	return c.TenantID + "/" + c.Provider
}

// Config holds the orchestrator settings and the provider registry
// bootstrap entries. The file values are merged over the env defaults.
type Config struct {
	File          string         `toml:"-"              env:"CONFIG_FILE"    envDefault:""`
	Async         bool           `toml:"async"          env:"ASYNC"          envDefault:"true"`
	MaxRetries    uint64         `toml:"max_retries"    env:"MAX_RETRIES"    envDefault:"3"`
	RetryInterval time.Duration  `toml:"retry_interval" env:"RETRY_INTERVAL" envDefault:"1s"`
	SyncTimeout   time.Duration  `toml:"sync_timeout"   env:"SYNC_TIMEOUT"   envDefault:"2m"`
	Providers     []ProviderConf `toml:"providers"`
}

// Read merges the TOML file at path into cfg. A missing path leaves cfg
// untouched.
func Read(cfg Config, path string) (Config, error) {
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errFailedToReadConfig, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errFailedToReadConfig, err)
	}

	return cfg, nil
}

// Save stores the config as TOML at path.
func Save(cfg Config, path string) error {
	if path == "" {
		return errors.New("empty config path")
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(errFailedToReadConfig, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errFailedToReadConfig, err)
	}

	return nil
}

// Bootstrap builds the adapter registry from the config entries.
func Bootstrap(cfg Config, pool *adapters.Pool, secrets secret.Provider) (*adapters.Registry, error) {
	registry := adapters.NewRegistry()
	for _, entry := range cfg.Providers {
		var adapter adapters.Adapter
		switch entry.Provider {
		case "salesforce":
			adapter = salesforce.New(salesforce.Config{
				AdapterID:        entry.AdapterID(),
				InstanceURL:      entry.InstanceURL,
				TokenURL:         entry.TokenURL,
				ClientIDPath:     entry.ClientIDPath,
				ClientSecretPath: entry.ClientSecretPath,
			}, pool, secrets)
		case "workday":
			adapter = workday.New(workday.Config{
				AdapterID:        entry.AdapterID(),
				BaseURL:          entry.InstanceURL,
				WorkdayTenant:    entry.WorkdayTenant,
				TokenURL:         entry.TokenURL,
				ClientIDPath:     entry.ClientIDPath,
				ClientSecretPath: entry.ClientSecretPath,
			}, pool, secrets)
		case "servicenow":
			adapter = servicenow.New(servicenow.Config{
				AdapterID:    entry.AdapterID(),
				InstanceURL:  entry.InstanceURL,
				UsernamePath: entry.UsernamePath,
				PasswordPath: entry.PasswordPath,
			}, pool, secrets)
		default:
			return nil, errors.Wrap(errUnknownProvider, errors.New(entry.Provider))
		}
		registry.Register(entry.TenantID, entry.Provider, adapter)
	}

	return registry, nil
}
