// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

// Package workday provides the Workday adapter. Workday has no SCIM
// surface, so workers and organizations are mapped to and from the
// canonical resource model at the adapter boundary. Entitlements are
// organization assignments in the supervisory hierarchy.
package workday

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/idrelay/idrelay/adapters"
	"github.com/idrelay/idrelay/pkg/scim"
	"github.com/idrelay/idrelay/pkg/secret"
	"github.com/idrelay/idrelay/transform"
)

const providerName = "workday"

// Config holds the per-tenant Workday connection settings.
type Config struct {
	AdapterID        string
	BaseURL          string
	WorkdayTenant    string
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

// New returns a Workday adapter over the shared connection pool.
func New(cfg Config, pool *adapters.Pool, secrets secret.Provider) adapters.Adapter {
	a := &adapter{cfg: cfg, pool: pool, secrets: secrets}
	a.tokens = adapters.NewTokenSource(a.fetchToken)

	return a
}

// worker is the Workday-native user shape.
type worker struct {
	ID               string `json:"id,omitempty"`
	Descriptor       string `json:"descriptor,omitempty"`
	UserName         string `json:"userName,omitempty"`
	PrimaryWorkEmail string `json:"primaryWorkEmail,omitempty"`
	Active           bool   `json:"active"`
}

// organization is the Workday-native group shape.
type organization struct {
	ID         string   `json:"id,omitempty"`
	Name       string   `json:"name,omitempty"`
	MemberRefs []string `json:"memberRefs,omitempty"`
}

// listing is the envelope Workday wraps collection responses in.
type listing[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func toWorker(user scim.User) worker {
	w := worker{
		ID:         user.ID,
		Descriptor: user.DisplayName,
		UserName:   user.UserName,
		Active:     user.IsActive(),
	}
	for _, email := range user.Emails {
		if email.Primary || w.PrimaryWorkEmail == "" {
			w.PrimaryWorkEmail = email.Value
		}
	}

	return w
}

func fromWorker(w worker) scim.User {
	active := w.Active
	user := scim.User{
		ID:          w.ID,
		Schemas:     []string{scim.SchemaUser},
		UserName:    w.UserName,
		DisplayName: w.Descriptor,
		Active:      &active,
	}
	if w.PrimaryWorkEmail != "" {
		user.Emails = []scim.MultiValued{{Value: w.PrimaryWorkEmail, Primary: true}}
	}

	return user
}

func toOrganization(group scim.Group) organization {
	org := organization{ID: group.ID, Name: group.DisplayName}
	for _, member := range group.Members {
		org.MemberRefs = append(org.MemberRefs, member.Value)
	}

	return org
}

func fromOrganization(org organization) scim.Group {
	group := scim.Group{
		ID:          org.ID,
		Schemas:     []string{scim.SchemaGroup},
		DisplayName: org.Name,
	}
	for _, ref := range org.MemberRefs {
		group.Members = append(group.Members, scim.Member{Value: ref, Type: scim.MemberTypeUser})
	}

	return group
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
		URL:    a.cfg.BaseURL + "/ccx/api/v1/" + a.cfg.WorkdayTenant + path,
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

func translate(status int, body []byte) *adapters.Error {
	var wdErr struct {
		Error  string `json:"error"`
		Errors []struct {
			Error string `json:"error"`
			Field string `json:"field"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &wdErr); err == nil {
		msg := wdErr.Error
		if msg == "" && len(wdErr.Errors) > 0 {
			msg = wdErr.Errors[0].Error
		}
		if msg != "" {
			return adapters.TranslateError(providerName, status, "", msg, 0)
		}
	}

	return adapters.TranslateError(providerName, status, "", string(body), 0)
}

func (a *adapter) CreateUser(ctx context.Context, user scim.User) (scim.User, error) {
	var created worker
	if err := a.do(ctx, http.MethodPost, "/workers", toWorker(user), &created); err != nil {
		return scim.User{}, err
	}

	return fromWorker(created), nil
}

func (a *adapter) GetUser(ctx context.Context, id string) (scim.User, error) {
	var w worker
	if err := a.do(ctx, http.MethodGet, "/workers/"+id, nil, &w); err != nil {
		return scim.User{}, err
	}

	return fromWorker(w), nil
}

func (a *adapter) UpdateUser(ctx context.Context, user scim.User) (scim.User, error) {
	var updated worker
	if err := a.do(ctx, http.MethodPut, "/workers/"+user.ID, toWorker(user), &updated); err != nil {
		return scim.User{}, err
	}

	return fromWorker(updated), nil
}

// DeleteUser deactivates the worker. Workday does not hard-delete
// worker records.
func (a *adapter) DeleteUser(ctx context.Context, id string) error {
	body := map[string]interface{}{"active": false}

	return a.do(ctx, http.MethodPut, "/workers/"+id, body, nil)
}

func (a *adapter) ListUsers(ctx context.Context) ([]scim.User, error) {
	var page listing[worker]
	if err := a.do(ctx, http.MethodGet, "/workers", nil, &page); err != nil {
		return nil, err
	}
	users := make([]scim.User, 0, len(page.Data))
	for _, w := range page.Data {
		users = append(users, fromWorker(w))
	}

	return users, nil
}

func (a *adapter) CreateGroup(ctx context.Context, group scim.Group) (scim.Group, error) {
	var created organization
	if err := a.do(ctx, http.MethodPost, "/organizations", toOrganization(group), &created); err != nil {
		return scim.Group{}, err
	}

	return fromOrganization(created), nil
}

func (a *adapter) GetGroup(ctx context.Context, id string) (scim.Group, error) {
	var org organization
	if err := a.do(ctx, http.MethodGet, "/organizations/"+id, nil, &org); err != nil {
		return scim.Group{}, err
	}

	return fromOrganization(org), nil
}

func (a *adapter) UpdateGroup(ctx context.Context, group scim.Group) (scim.Group, error) {
	var updated organization
	if err := a.do(ctx, http.MethodPut, "/organizations/"+group.ID, toOrganization(group), &updated); err != nil {
		return scim.Group{}, err
	}

	return fromOrganization(updated), nil
}

func (a *adapter) DeleteGroup(ctx context.Context, id string) error {
	return a.do(ctx, http.MethodDelete, "/organizations/"+id, nil, nil)
}

func (a *adapter) ListGroups(ctx context.Context) ([]scim.Group, error) {
	var page listing[organization]
	if err := a.do(ctx, http.MethodGet, "/organizations", nil, &page); err != nil {
		return nil, err
	}
	groups := make([]scim.Group, 0, len(page.Data))
	for _, org := range page.Data {
		groups = append(groups, fromOrganization(org))
	}

	return groups, nil
}

func (a *adapter) AddUserToGroup(ctx context.Context, userID, groupID string) error {
	body := map[string]interface{}{"workerRef": userID}

	return a.do(ctx, http.MethodPost, "/organizations/"+groupID+"/members", body, nil)
}

func (a *adapter) RemoveUserFromGroup(ctx context.Context, userID, groupID string) error {
	return a.do(ctx, http.MethodDelete, "/organizations/"+groupID+"/members/"+userID, nil, nil)
}

func (a *adapter) GetGroupMembers(ctx context.Context, groupID string) ([]scim.Member, error) {
	var page listing[worker]
	if err := a.do(ctx, http.MethodGet, "/organizations/"+groupID+"/members", nil, &page); err != nil {
		return nil, err
	}
	members := make([]scim.Member, 0, len(page.Data))
	for _, w := range page.Data {
		members = append(members, scim.Member{Value: w.ID, Display: w.Descriptor, Type: scim.MemberTypeUser})
	}

	return members, nil
}

func (a *adapter) MapGroupToEntitlement(ctx context.Context, groupName string, entitlements []transform.Entitlement) error {
	orgs := make([]string, 0, len(entitlements))
	for _, ent := range entitlements {
		orgs = append(orgs, ent.ProviderEntitlementID)
	}
	body := map[string]interface{}{
		"groupName":     groupName,
		"organizations": orgs,
	}

	return a.do(ctx, http.MethodPost, "/organizationAssignments", body, nil)
}

func (a *adapter) CheckHealth(ctx context.Context) error {
	return a.do(ctx, http.MethodGet, "/workers?limit=1", nil, nil)
}

func (a *adapter) GetCapabilities(_ context.Context) (adapters.Capabilities, error) {
	return adapters.Capabilities{
		Provider:         providerName,
		SupportsUsers:    true,
		SupportsGroups:   true,
		SupportsMembers:  true,
		EntitlementTypes: []string{"organization"},
		MaxPageSize:      100,
	}, nil
}
