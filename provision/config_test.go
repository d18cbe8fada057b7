// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package provision_test

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idrelay/idrelay/adapters"
	"github.com/idrelay/idrelay/pkg/secret"
	"github.com/idrelay/idrelay/provision"
)

func testConfig() provision.Config {
	return provision.Config{
		Async:         true,
		MaxRetries:    3,
		RetryInterval: time.Second,
		SyncTimeout:   2 * time.Minute,
		Providers: []provision.ProviderConf{
			{
				TenantID:         "tenant-1",
				Provider:         "salesforce",
				InstanceURL:      "https://acme.my.salesforce.com",
				TokenURL:         "https://login.salesforce.com/services/oauth2/token",
				ClientIDPath:     "adapters/salesforce/client_id",
				ClientSecretPath: "adapters/salesforce/client_secret",
			},
			{
				TenantID:     "tenant-1",
				Provider:     "servicenow",
				InstanceURL:  "https://acme.service-now.com",
				UsernamePath: "adapters/servicenow/username",
				PasswordPath: "adapters/servicenow/password",
			},
		},
	}
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "provision.toml")
	cfg := testConfig()

	err := provision.Save(cfg, path)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	loaded, err := provision.Read(provision.Config{}, path)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, cfg.Providers, loaded.Providers)
	assert.Equal(t, cfg.MaxRetries, loaded.MaxRetries)
}

func TestReadMissingPathKeepsDefaults(t *testing.T) {
	cfg := testConfig()
	loaded, err := provision.Read(cfg, "")
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, cfg, loaded)
}

func TestBootstrap(t *testing.T) {
	pool := adapters.NewPool(adapters.PoolConfig{MaxConnections: 1, Lifetime: time.Hour, IdleTimeout: time.Hour, RequestTimeout: time.Second})
	defer pool.Close()
	secrets := secret.NewEnv("IR_SECRET_")

	registry, err := provision.Bootstrap(testConfig(), pool, secrets)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, []string{"salesforce", "servicenow"}, registry.Providers("tenant-1"))

	bad := testConfig()
	bad.Providers[0].Provider = "unknown"
	_, err = provision.Bootstrap(bad, pool, secrets)
	assert.NotNil(t, err)
}
