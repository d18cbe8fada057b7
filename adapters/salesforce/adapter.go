// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

// Package salesforce provides the Salesforce adapter. Users and groups
// go through the instance SCIM endpoint; group-to-entitlement mappings
// are applied through a custom REST resource that assigns roles and
// permission sets.
package salesforce

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/idrelay/idrelay/adapters"
	"github.com/idrelay/idrelay/pkg/scim"
	"github.com/idrelay/idrelay/pkg/secret"
	"github.com/idrelay/idrelay/transform"
)

const providerName = "salesforce"

// Config holds the per-tenant Salesforce connection settings. Secret
// paths are resolved through the secret provider at call time, never
// stored.
type Config struct {
	AdapterID        string
	InstanceURL      string
	TokenURL         string
	ClientIDPath     string
	ClientSecretPath string
}

type adapter struct {
	cfg     Config
	pool    *adapters.Pool
	secrets secret.Provider
	tokens  *adapters.TokenSource
}

// New returns a Salesforce adapter over the shared connection pool.
func New(cfg Config, pool *adapters.Pool, secrets secret.Provider) adapters.Adapter {
	a := &adapter{cfg: cfg, pool: pool, secrets: secrets}
	a.tokens = adapters.NewTokenSource(a.fetchToken)

	return a
}

func (a *adapter) fetchToken(ctx context.Context) (adapters.Token, error) {
	clientID, err := a.secrets.Get(ctx, a.cfg.ClientIDPath)
	if err != nil {
		return adapters.Token{}, err
	}
	clientSecret, err := a.secrets.Get(ctx, a.cfg.ClientSecretPath)
	if err != nil {
		return adapters.Token{}, err
	}
	client, err := a.pool.Acquire(ctx, a.cfg.AdapterID)
	if err != nil {
		return adapters.Token{}, err
	}
	defer a.pool.Release(a.cfg.AdapterID, client)

	return adapters.ClientCredentials(ctx, client.Client, a.cfg.TokenURL, string(clientID), string(clientSecret), nil)
}

func (a *adapter) do(ctx context.Context, method, path string, body, out interface{}) error {
	bearer, err := a.tokens.Bearer(ctx)
	if err != nil {
		return err
	}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+bearer)
	req := adapters.Request{
		Method: method,
		URL:    a.cfg.InstanceURL + path,
		Header: header,
		Body:   body,
	}
	err = adapters.Do(ctx, a.pool, a.cfg.AdapterID, req, out, translate)
	var ae *adapters.Error
	if adapters.AsError(err, &ae) && ae.HTTPStatusCode == http.StatusUnauthorized {
		a.tokens.Invalidate()
	}

	return err
}

// translate decodes Salesforce error bodies. The SCIM endpoint answers
// with a detail field, the REST endpoints with an array of message and
// errorCode pairs.
func translate(status int, body []byte) *adapters.Error {
	var scimErr struct {
		Detail   string `json:"detail"`
		ScimType string `json:"scimType"`
	}
	if err := json.Unmarshal(body, &scimErr); err == nil && scimErr.Detail != "" {
		e := adapters.TranslateError(providerName, status, "", scimErr.Detail, 0)
		if scimErr.ScimType != "" {
			e.ScimErrorType = scimErr.ScimType
		}
		return e
	}

	var restErrs []struct {
		Message   string `json:"message"`
		ErrorCode string `json:"errorCode"`
	}
	if err := json.Unmarshal(body, &restErrs); err == nil && len(restErrs) > 0 {
		return adapters.TranslateError(providerName, status, restErrs[0].ErrorCode, restErrs[0].Message, 0)
	}

	return adapters.TranslateError(providerName, status, "", string(body), 0)
}

func (a *adapter) CreateUser(ctx context.Context, user scim.User) (scim.User, error) {
	var created scim.User
	if err := a.do(ctx, http.MethodPost, "/services/scim/v2/Users", user, &created); err != nil {
		return scim.User{}, err
	}

	return created, nil
}

func (a *adapter) GetUser(ctx context.Context, id string) (scim.User, error) {
	var user scim.User
	if err := a.do(ctx, http.MethodGet, "/services/scim/v2/Users/"+id, nil, &user); err != nil {
		return scim.User{}, err
	}

	return user, nil
}

func (a *adapter) UpdateUser(ctx context.Context, user scim.User) (scim.User, error) {
	var updated scim.User
	if err := a.do(ctx, http.MethodPut, "/services/scim/v2/Users/"+user.ID, user, &updated); err != nil {
		return scim.User{}, err
	}

	return updated, nil
}

func (a *adapter) DeleteUser(ctx context.Context, id string) error {
	return a.do(ctx, http.MethodDelete, "/services/scim/v2/Users/"+id, nil, nil)
}

func (a *adapter) ListUsers(ctx context.Context) ([]scim.User, error) {
	var page struct {
		Resources []scim.User `json:"Resources"`
	}
	if err := a.do(ctx, http.MethodGet, "/services/scim/v2/Users", nil, &page); err != nil {
		return nil, err
	}

	return page.Resources, nil
}

func (a *adapter) CreateGroup(ctx context.Context, group scim.Group) (scim.Group, error) {
	var created scim.Group
	if err := a.do(ctx, http.MethodPost, "/services/scim/v2/Groups", group, &created); err != nil {
		return scim.Group{}, err
	}

	return created, nil
}

func (a *adapter) GetGroup(ctx context.Context, id string) (scim.Group, error) {
	var group scim.Group
	if err := a.do(ctx, http.MethodGet, "/services/scim/v2/Groups/"+id, nil, &group); err != nil {
		return scim.Group{}, err
	}

	return group, nil
}

func (a *adapter) UpdateGroup(ctx context.Context, group scim.Group) (scim.Group, error) {
	var updated scim.Group
	if err := a.do(ctx, http.MethodPut, "/services/scim/v2/Groups/"+group.ID, group, &updated); err != nil {
		return scim.Group{}, err
	}

	return updated, nil
}

func (a *adapter) DeleteGroup(ctx context.Context, id string) error {
	return a.do(ctx, http.MethodDelete, "/services/scim/v2/Groups/"+id, nil, nil)
}

func (a *adapter) ListGroups(ctx context.Context) ([]scim.Group, error) {
	var page struct {
		Resources []scim.Group `json:"Resources"`
	}
	if err := a.do(ctx, http.MethodGet, "/services/scim/v2/Groups", nil, &page); err != nil {
		return nil, err
	}

	return page.Resources, nil
}

func (a *adapter) AddUserToGroup(ctx context.Context, userID, groupID string) error {
	patch := map[string]interface{}{
		"schemas": []string{scim.SchemaPatchOp},
		"Operations": []map[string]interface{}{
			{"op": "add", "path": "members", "value": []map[string]string{{"value": userID}}},
		},
	}

	return a.do(ctx, http.MethodPatch, "/services/scim/v2/Groups/"+groupID, patch, nil)
}

func (a *adapter) RemoveUserFromGroup(ctx context.Context, userID, groupID string) error {
	patch := map[string]interface{}{
		"schemas": []string{scim.SchemaPatchOp},
		"Operations": []map[string]interface{}{
			{"op": "remove", "path": fmt.Sprintf("members[value eq %q]", userID)},
		},
	}

	return a.do(ctx, http.MethodPatch, "/services/scim/v2/Groups/"+groupID, patch, nil)
}

func (a *adapter) GetGroupMembers(ctx context.Context, groupID string) ([]scim.Member, error) {
	group, err := a.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	return group.Members, nil
}

func (a *adapter) MapGroupToEntitlement(ctx context.Context, groupName string, entitlements []transform.Entitlement) error {
	body := map[string]interface{}{
		"groupName":    groupName,
		"entitlements": entitlements,
	}

	return a.do(ctx, http.MethodPost, "/services/apexrest/idrelay/groupmappings", body, nil)
}

func (a *adapter) CheckHealth(ctx context.Context) error {
	return a.do(ctx, http.MethodGet, "/services/data", nil, nil)
}

func (a *adapter) GetCapabilities(_ context.Context) (adapters.Capabilities, error) {
	return adapters.Capabilities{
		Provider:           providerName,
		SupportsUsers:      true,
		SupportsGroups:     true,
		SupportsMembers:    true,
		EntitlementTypes:   []string{"role", "permission_set"},
		MaxPageSize:        200,
		SupportsSoftDelete: true,
	}, nil
}
