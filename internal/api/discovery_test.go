// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idrelay/idrelay/internal/api"
	"github.com/idrelay/idrelay/pkg/scim"
)

func newDiscoveryServer() *httptest.Server {
	return httptest.NewServer(api.MountDiscovery(chi.NewRouter()))
}

func TestServiceProviderConfig(t *testing.T) {
	ts := newDiscoveryServer()
	defer ts.Close()

	res, err := http.Get(ts.URL + "/scim/v2/ServiceProviderConfig")
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, scim.ContentType, res.Header.Get("Content-Type"))

	var cfg scim.ServiceProviderConfig
	err = json.NewDecoder(res.Body).Decode(&cfg)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, []string{scim.SchemaServiceProviderConfig}, cfg.Schemas)
	assert.True(t, cfg.Patch.Supported)
	assert.True(t, cfg.ETag.Supported)
	assert.False(t, cfg.Bulk.Supported)
	assert.Equal(t, api.MaxCount, cfg.Filter.MaxResults)
}

func TestResourceTypes(t *testing.T) {
	ts := newDiscoveryServer()
	defer ts.Close()

	res, err := http.Get(ts.URL + "/scim/v2/ResourceTypes")
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var body struct {
		Schemas   []string            `json:"schemas"`
		Total     int                 `json:"totalResults"`
		Resources []scim.ResourceType `json:"Resources"`
	}
	err = json.NewDecoder(res.Body).Decode(&body)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, []string{scim.SchemaListResponse}, body.Schemas)
	require.Equal(t, 2, body.Total)
	assert.Equal(t, "User", body.Resources[0].ID)
	assert.Equal(t, "/Users", body.Resources[0].Endpoint)
	assert.Equal(t, "Group", body.Resources[1].ID)
}

func TestResourceTypeByID(t *testing.T) {
	ts := newDiscoveryServer()
	defer ts.Close()

	res, err := http.Get(ts.URL + "/scim/v2/ResourceTypes/Group")
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var rt scim.ResourceType
	err = json.NewDecoder(res.Body).Decode(&rt)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, scim.SchemaGroup, rt.Schema)
}

func TestSchemas(t *testing.T) {
	ts := newDiscoveryServer()
	defer ts.Close()

	res, err := http.Get(ts.URL + "/scim/v2/Schemas")
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var body struct {
		Total     int                     `json:"totalResults"`
		Resources []scim.SchemaDefinition `json:"Resources"`
	}
	err = json.NewDecoder(res.Body).Decode(&body)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	require.Equal(t, 3, body.Total)

	ids := []string{body.Resources[0].ID, body.Resources[1].ID, body.Resources[2].ID}
	assert.Contains(t, ids, scim.SchemaUser)
	assert.Contains(t, ids, scim.SchemaEnterpriseUser)
	assert.Contains(t, ids, scim.SchemaGroup)
}

func TestSchemaByIDNotFound(t *testing.T) {
	ts := newDiscoveryServer()
	defer ts.Close()

	res, err := http.Get(ts.URL + "/scim/v2/Schemas/urn:example:unknown")
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	defer res.Body.Close()

	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	var body struct {
		Schemas []string `json:"schemas"`
		Status  string   `json:"status"`
	}
	err = json.NewDecoder(res.Body).Decode(&body)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, []string{scim.SchemaError}, body.Schemas)
	assert.Equal(t, "404", body.Status)
}
