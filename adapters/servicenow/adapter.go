// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

// Package servicenow provides the ServiceNow adapter on top of the
// Table API with basic authentication. Users map to sys_user records,
// groups to sys_user_group and memberships to sys_user_grmember.
// ServiceNow groups are themselves the entitlement, so mapping a group
// reduces to membership synchronization.
package servicenow

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/idrelay/idrelay/adapters"
	"github.com/idrelay/idrelay/pkg/scim"
	"github.com/idrelay/idrelay/pkg/secret"
	"github.com/idrelay/idrelay/transform"
)

const providerName = "servicenow"

// Config holds the per-tenant ServiceNow connection settings.
type Config struct {
	AdapterID    string
	InstanceURL  string
	UsernamePath string
	PasswordPath string
}

type adapter struct {
	cfg     Config
	pool    *adapters.Pool
	secrets secret.Provider
}

// New returns a ServiceNow adapter over the shared connection pool.
func New(cfg Config, pool *adapters.Pool, secrets secret.Provider) adapters.Adapter {
	return &adapter{cfg: cfg, pool: pool, secrets: secrets}
}

// sysUser is the sys_user table shape.
type sysUser struct {
	SysID     string `json:"sys_id,omitempty"`
	UserName  string `json:"user_name,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Active    string `json:"active,omitempty"`
}

// sysGroup is the sys_user_group table shape.
type sysGroup struct {
	SysID string `json:"sys_id,omitempty"`
	Name  string `json:"name,omitempty"`
}

// grMember is the sys_user_grmember table shape.
type grMember struct {
	SysID string `json:"sys_id,omitempty"`
	User  string `json:"user,omitempty"`
	Group string `json:"group,omitempty"`
}

type result[T any] struct {
	Result T `json:"result"`
}

func toSysUser(user scim.User) sysUser {
	su := sysUser{
		SysID:    user.ID,
		UserName: user.UserName,
		Active:   fmt.Sprintf("%t", user.IsActive()),
	}
	if user.Name != nil {
		su.FirstName = user.Name.GivenName
		su.LastName = user.Name.FamilyName
	}
	for _, email := range user.Emails {
		if email.Primary || su.Email == "" {
			su.Email = email.Value
		}
	}

	return su
}

func fromSysUser(su sysUser) scim.User {
	active := su.Active != "false"
	user := scim.User{
		ID:       su.SysID,
		Schemas:  []string{scim.SchemaUser},
		UserName: su.UserName,
		Active:   &active,
	}
	if su.FirstName != "" || su.LastName != "" {
		user.Name = &scim.Name{GivenName: su.FirstName, FamilyName: su.LastName}
	}
	if su.Email != "" {
		user.Emails = []scim.MultiValued{{Value: su.Email, Primary: true}}
	}

	return user
}

func (a *adapter) do(ctx context.Context, method, path string, body, out interface{}) error {
	username, err := a.secrets.Get(ctx, a.cfg.UsernamePath)
	if err != nil {
		return err
	}
	password, err := a.secrets.Get(ctx, a.cfg.PasswordPath)
	if err != nil {
		return err
	}
	header := http.Header{}
	header.Set("Accept", "application/json")
	req := adapters.Request{
		Method: method,
		URL:    a.cfg.InstanceURL + path,
		Header: header,
		Body:   body,
	}
	req.Header.Set("Authorization", basicAuth(string(username), string(password)))

	return adapters.Do(ctx, a.pool, a.cfg.AdapterID, req, out, translate)
}

func basicAuth(username, password string) string {
	r, _ := http.NewRequest(http.MethodGet, "/", nil)
	r.SetBasicAuth(username, password)

	return r.Header.Get("Authorization")
}

func translate(status int, body []byte) *adapters.Error {
	var snErr struct {
		Error struct {
			Message string `json:"message"`
			Detail  string `json:"detail"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &snErr); err == nil && snErr.Error.Message != "" {
		return adapters.TranslateError(providerName, status, snErr.Error.Detail, snErr.Error.Message, 0)
	}

	return adapters.TranslateError(providerName, status, "", string(body), 0)
}

func (a *adapter) CreateUser(ctx context.Context, user scim.User) (scim.User, error) {
	var created result[sysUser]
	if err := a.do(ctx, http.MethodPost, "/api/now/table/sys_user", toSysUser(user), &created); err != nil {
		return scim.User{}, err
	}

	return fromSysUser(created.Result), nil
}

func (a *adapter) GetUser(ctx context.Context, id string) (scim.User, error) {
	var fetched result[sysUser]
	if err := a.do(ctx, http.MethodGet, "/api/now/table/sys_user/"+id, nil, &fetched); err != nil {
		return scim.User{}, err
	}

	return fromSysUser(fetched.Result), nil
}

func (a *adapter) UpdateUser(ctx context.Context, user scim.User) (scim.User, error) {
	var updated result[sysUser]
	if err := a.do(ctx, http.MethodPut, "/api/now/table/sys_user/"+user.ID, toSysUser(user), &updated); err != nil {
		return scim.User{}, err
	}

	return fromSysUser(updated.Result), nil
}

func (a *adapter) DeleteUser(ctx context.Context, id string) error {
	return a.do(ctx, http.MethodDelete, "/api/now/table/sys_user/"+id, nil, nil)
}

func (a *adapter) ListUsers(ctx context.Context) ([]scim.User, error) {
	var page result[[]sysUser]
	if err := a.do(ctx, http.MethodGet, "/api/now/table/sys_user", nil, &page); err != nil {
		return nil, err
	}
	users := make([]scim.User, 0, len(page.Result))
	for _, su := range page.Result {
		users = append(users, fromSysUser(su))
	}

	return users, nil
}

func (a *adapter) CreateGroup(ctx context.Context, group scim.Group) (scim.Group, error) {
	var created result[sysGroup]
	if err := a.do(ctx, http.MethodPost, "/api/now/table/sys_user_group", sysGroup{Name: group.DisplayName}, &created); err != nil {
		return scim.Group{}, err
	}

	return scim.Group{ID: created.Result.SysID, Schemas: []string{scim.SchemaGroup}, DisplayName: created.Result.Name}, nil
}

func (a *adapter) GetGroup(ctx context.Context, id string) (scim.Group, error) {
	var fetched result[sysGroup]
	if err := a.do(ctx, http.MethodGet, "/api/now/table/sys_user_group/"+id, nil, &fetched); err != nil {
		return scim.Group{}, err
	}
	group := scim.Group{ID: fetched.Result.SysID, Schemas: []string{scim.SchemaGroup}, DisplayName: fetched.Result.Name}
	members, err := a.GetGroupMembers(ctx, id)
	if err != nil {
		return scim.Group{}, err
	}
	group.Members = members

	return group, nil
}

func (a *adapter) UpdateGroup(ctx context.Context, group scim.Group) (scim.Group, error) {
	var updated result[sysGroup]
	if err := a.do(ctx, http.MethodPut, "/api/now/table/sys_user_group/"+group.ID, sysGroup{Name: group.DisplayName}, &updated); err != nil {
		return scim.Group{}, err
	}

	return scim.Group{ID: updated.Result.SysID, Schemas: []string{scim.SchemaGroup}, DisplayName: updated.Result.Name}, nil
}

func (a *adapter) DeleteGroup(ctx context.Context, id string) error {
	return a.do(ctx, http.MethodDelete, "/api/now/table/sys_user_group/"+id, nil, nil)
}

func (a *adapter) ListGroups(ctx context.Context) ([]scim.Group, error) {
	var page result[[]sysGroup]
	if err := a.do(ctx, http.MethodGet, "/api/now/table/sys_user_group", nil, &page); err != nil {
		return nil, err
	}
	groups := make([]scim.Group, 0, len(page.Result))
	for _, sg := range page.Result {
		groups = append(groups, scim.Group{ID: sg.SysID, Schemas: []string{scim.SchemaGroup}, DisplayName: sg.Name})
	}

	return groups, nil
}

func (a *adapter) AddUserToGroup(ctx context.Context, userID, groupID string) error {
	return a.do(ctx, http.MethodPost, "/api/now/table/sys_user_grmember", grMember{User: userID, Group: groupID}, nil)
}

func (a *adapter) RemoveUserFromGroup(ctx context.Context, userID, groupID string) error {
	membership, err := a.findMembership(ctx, userID, groupID)
	if err != nil {
		return err
	}

	return a.do(ctx, http.MethodDelete, "/api/now/table/sys_user_grmember/"+membership, nil, nil)
}

func (a *adapter) findMembership(ctx context.Context, userID, groupID string) (string, error) {
	query := url.QueryEscape(fmt.Sprintf("user=%s^group=%s", userID, groupID))
	var page result[[]grMember]
	if err := a.do(ctx, http.MethodGet, "/api/now/table/sys_user_grmember?sysparm_query="+query, nil, &page); err != nil {
		return "", err
	}
	if len(page.Result) == 0 {
		return "", adapters.TranslateError(providerName, http.StatusNotFound, "", "membership not found", 0)
	}

	return page.Result[0].SysID, nil
}

func (a *adapter) GetGroupMembers(ctx context.Context, groupID string) ([]scim.Member, error) {
	query := url.QueryEscape("group=" + groupID)
	var page result[[]grMember]
	if err := a.do(ctx, http.MethodGet, "/api/now/table/sys_user_grmember?sysparm_query="+query, nil, &page); err != nil {
		return nil, err
	}
	members := make([]scim.Member, 0, len(page.Result))
	for _, gm := range page.Result {
		members = append(members, scim.Member{Value: gm.User, Type: scim.MemberTypeUser})
	}

	return members, nil
}

// MapGroupToEntitlement ensures a native group exists for every mapped
// entitlement. Membership fan-out follows through AddUserToGroup.
func (a *adapter) MapGroupToEntitlement(ctx context.Context, groupName string, entitlements []transform.Entitlement) error {
	for _, ent := range entitlements {
		query := url.QueryEscape("name=" + ent.Name)
		var page result[[]sysGroup]
		if err := a.do(ctx, http.MethodGet, "/api/now/table/sys_user_group?sysparm_query="+query, nil, &page); err != nil {
			return err
		}
		if len(page.Result) > 0 {
			continue
		}
		if err := a.do(ctx, http.MethodPost, "/api/now/table/sys_user_group", sysGroup{Name: ent.Name}, nil); err != nil {
			return err
		}
	}

	return nil
}

func (a *adapter) CheckHealth(ctx context.Context) error {
	return a.do(ctx, http.MethodGet, "/api/now/table/sys_user?sysparm_limit=1", nil, nil)
}

func (a *adapter) GetCapabilities(_ context.Context) (adapters.Capabilities, error) {
	return adapters.Capabilities{
		Provider:           providerName,
		SupportsUsers:      true,
		SupportsGroups:     true,
		SupportsMembers:    true,
		EntitlementTypes:   []string{"group"},
		MaxPageSize:        1000,
		SupportsSoftDelete: true,
	}, nil
}
