// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

// Package sdk is the typed Go client for the IdRelay HTTP API.
package sdk

import (
	"bytes"
	"crypto/tls"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"moul.io/http2curl"

	"github.com/idrelay/idrelay/pkg/errors"
	"github.com/idrelay/idrelay/pkg/scim"
)

const (
	// CTSCIM is the SCIM media type used on resource endpoints.
	CTSCIM ContentType = scim.ContentType

	// CTJSON is the plain JSON content type.
	CTJSON ContentType = "application/json"

	// BearerPrefix is prepended to raw tokens.
	BearerPrefix = "Bearer "
)

// ContentType represents all possible content types.
type ContentType string

// PatchOp is a single SCIM PatchOp operation as it appears on the wire.
type PatchOp struct {
	Op    string      `json:"op"`
	Path  string      `json:"path,omitempty"`
	Value interface{} `json:"value,omitempty"`
}

// PageMetadata carries the query parameters of list requests.
type PageMetadata struct {
	StartIndex   int    `json:"startIndex,omitempty"`
	Count        int    `json:"count,omitempty"`
	Filter       string `json:"filter,omitempty"`
	SortBy       string `json:"sortBy,omitempty"`
	SortOrder    string `json:"sortOrder,omitempty"`
	Status       string `json:"status,omitempty"`
	ProviderID   string `json:"providerId,omitempty"`
	Actor        string `json:"actor,omitempty"`
	Operation    string `json:"operation,omitempty"`
	ResourceType string `json:"resourceType,omitempty"`
	ResourceID   string `json:"resourceId,omitempty"`
	Before       string `json:"before,omitempty"`
	After        string `json:"after,omitempty"`
}

// SDK is the IdRelay client surface. One method per API operation.
type SDK interface {
	// CreateUser provisions a new user resource.
	CreateUser(user scim.User, token string) (scim.User, errors.SDKError)

	// User retrieves a user by id.
	User(id, token string) (scim.User, errors.SDKError)

	// Users lists users matching the page query.
	Users(pm PageMetadata, token string) (UsersPage, errors.SDKError)

	// UpdateUser replaces a user resource. The ifMatch version guards
	// against concurrent writes.
	UpdateUser(user scim.User, ifMatch, token string) (scim.User, errors.SDKError)

	// PatchUser applies partial modifications to a user resource.
	PatchUser(id string, ops []PatchOp, ifMatch, token string) (scim.User, errors.SDKError)

	// DeleteUser removes a user resource.
	DeleteUser(id, ifMatch, token string) errors.SDKError

	// CreateGroup provisions a new group resource.
	CreateGroup(group scim.Group, token string) (scim.Group, errors.SDKError)

	// Group retrieves a group by id.
	Group(id, token string) (scim.Group, errors.SDKError)

	// Groups lists groups matching the page query.
	Groups(pm PageMetadata, token string) (GroupsPage, errors.SDKError)

	// UpdateGroup replaces a group resource.
	UpdateGroup(group scim.Group, ifMatch, token string) (scim.Group, errors.SDKError)

	// PatchGroup applies partial modifications to a group resource.
	PatchGroup(id string, ops []PatchOp, ifMatch, token string) (scim.Group, errors.SDKError)

	// DeleteGroup removes a group resource.
	DeleteGroup(id, ifMatch, token string) errors.SDKError

	// CreateRule adds a transformation rule.
	CreateRule(rule Rule, token string) (Rule, errors.SDKError)

	// Rule retrieves a transformation rule by id.
	Rule(id, token string) (Rule, errors.SDKError)

	// Rules lists transformation rules.
	Rules(pm PageMetadata, token string) (RulesPage, errors.SDKError)

	// UpdateRule replaces a transformation rule.
	UpdateRule(rule Rule, ifMatch, token string) (Rule, errors.SDKError)

	// DeleteRule removes a transformation rule.
	DeleteRule(id, ifMatch, token string) errors.SDKError

	// EnableRule activates a transformation rule.
	EnableRule(id, token string) (Rule, errors.SDKError)

	// DisableRule deactivates a transformation rule.
	DisableRule(id, token string) (Rule, errors.SDKError)

	// TestRule evaluates a rule against sample inputs without storing it.
	TestRule(rule Rule, inputs []string, token string) ([]TestResult, errors.SDKError)

	// Providers lists the downstream providers of the tenant.
	Providers(token string) (ProvidersPage, errors.SDKError)

	// ProviderHealth probes a downstream provider.
	ProviderHealth(id, token string) (ProviderHealth, errors.SDKError)

	// ProviderStats reports connection pool statistics of a provider.
	ProviderStats(id, token string) (PoolStats, errors.SDKError)

	// ProviderCapabilities reports what a provider supports.
	ProviderCapabilities(id, token string) (Capabilities, errors.SDKError)

	// SyncStates lists provisioning sync-state records.
	SyncStates(pm PageMetadata, token string) (SyncStatesPage, errors.SDKError)

	// SyncState retrieves a sync-state record by id.
	SyncState(id, token string) (SyncState, errors.SDKError)

	// AuditEntries lists audit log entries.
	AuditEntries(pm PageMetadata, token string) (AuditPage, errors.SDKError)

	// Health returns the gateway health check.
	Health() (HealthInfo, errors.SDKError)
}

var _ SDK = (*idSDK)(nil)

type idSDK struct {
	hostURL  string
	client   *http.Client
	curlFlag bool
}

// Config contains the SDK configuration.
type Config struct {
	HostURL         string
	TLSVerification bool
	CurlFlag        bool
}

// NewSDK returns a new IdRelay SDK instance.
func NewSDK(conf Config) SDK {
	return &idSDK{
		hostURL: conf.HostURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: !conf.TLSVerification,
				},
			},
		},
		curlFlag: conf.CurlFlag,
	}
}

// processRequest creates and sends a new HTTP request, and checks for
// errors in the HTTP response.
func (sdk idSDK) processRequest(method, reqURL, token string, data []byte, headers map[string]string, expectedRespCodes ...int) (http.Header, []byte, errors.SDKError) {
	req, err := http.NewRequest(method, reqURL, bytes.NewReader(data))
	if err != nil {
		return make(http.Header), []byte{}, errors.NewSDKError(err)
	}

	// Default Content-Type, overridden by the headers argument.
	req.Header.Add("Content-Type", string(CTSCIM))

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	if token != "" {
		req.Header.Set("Authorization", BearerPrefix+token)
	}

	if sdk.curlFlag {
		curlCommand, err := http2curl.GetCurlCommand(req)
		if err != nil {
			return nil, nil, errors.NewSDKError(err)
		}
		log.Println(curlCommand.String())
	}

	resp, err := sdk.client.Do(req)
	if err != nil {
		return make(http.Header), []byte{}, errors.NewSDKError(err)
	}
	defer resp.Body.Close()

	sdkerr := errors.CheckError(resp, expectedRespCodes...)
	if sdkerr != nil {
		return make(http.Header), []byte{}, sdkerr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return make(http.Header), []byte{}, errors.NewSDKError(err)
	}

	return resp.Header, body, nil
}

func (sdk idSDK) withQueryParams(baseURL, endpoint string, pm PageMetadata) (string, error) {
	q := url.Values{}
	if pm.StartIndex != 0 {
		q.Add("startIndex", strconv.Itoa(pm.StartIndex))
	}
	if pm.Count != 0 {
		q.Add("count", strconv.Itoa(pm.Count))
	}
	if pm.Filter != "" {
		q.Add("filter", pm.Filter)
	}
	if pm.SortBy != "" {
		q.Add("sortBy", pm.SortBy)
	}
	if pm.SortOrder != "" {
		q.Add("sortOrder", pm.SortOrder)
	}
	if pm.Status != "" {
		q.Add("status", pm.Status)
	}
	if pm.ProviderID != "" {
		q.Add("providerId", pm.ProviderID)
	}
	if pm.Actor != "" {
		q.Add("actor", pm.Actor)
	}
	if pm.Operation != "" {
		q.Add("operation", pm.Operation)
	}
	if pm.ResourceType != "" {
		q.Add("resourceType", pm.ResourceType)
	}
	if pm.ResourceID != "" {
		q.Add("resourceId", pm.ResourceID)
	}
	if pm.Before != "" {
		q.Add("before", pm.Before)
	}
	if pm.After != "" {
		q.Add("after", pm.After)
	}

	if len(q) == 0 {
		return baseURL + endpoint, nil
	}

	return baseURL + endpoint + "?" + q.Encode(), nil
}
