// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package sdk

import (
	"encoding/json"
	"net/http"

	"github.com/idrelay/idrelay/pkg/errors"
	"github.com/idrelay/idrelay/pkg/scim"
)

const usersEndpoint = "/scim/v2/Users"

// UsersPage is a SCIM list response of users.
type UsersPage struct {
	Schemas      []string    `json:"schemas"`
	TotalResults uint64      `json:"totalResults"`
	StartIndex   int         `json:"startIndex"`
	ItemsPerPage int         `json:"itemsPerPage"`
	Resources    []scim.User `json:"Resources"`
}

func (sdk idSDK) CreateUser(user scim.User, token string) (scim.User, errors.SDKError) {
	data, err := json.Marshal(user)
	if err != nil {
		return scim.User{}, errors.NewSDKError(err)
	}

	url := sdk.hostURL + usersEndpoint

	_, body, sdkerr := sdk.processRequest(http.MethodPost, url, token, data, nil, http.StatusCreated)
	if sdkerr != nil {
		return scim.User{}, sdkerr
	}

	user = scim.User{}
	if err := json.Unmarshal(body, &user); err != nil {
		return scim.User{}, errors.NewSDKError(err)
	}

	return user, nil
}

func (sdk idSDK) User(id, token string) (scim.User, errors.SDKError) {
	url := sdk.hostURL + usersEndpoint + "/" + id

	_, body, sdkerr := sdk.processRequest(http.MethodGet, url, token, nil, nil, http.StatusOK)
	if sdkerr != nil {
		return scim.User{}, sdkerr
	}

	var user scim.User
	if err := json.Unmarshal(body, &user); err != nil {
		return scim.User{}, errors.NewSDKError(err)
	}

	return user, nil
}

func (sdk idSDK) Users(pm PageMetadata, token string) (UsersPage, errors.SDKError) {
	url, err := sdk.withQueryParams(sdk.hostURL, usersEndpoint, pm)
	if err != nil {
		return UsersPage{}, errors.NewSDKError(err)
	}

	_, body, sdkerr := sdk.processRequest(http.MethodGet, url, token, nil, nil, http.StatusOK)
	if sdkerr != nil {
		return UsersPage{}, sdkerr
	}

	var page UsersPage
	if err := json.Unmarshal(body, &page); err != nil {
		return UsersPage{}, errors.NewSDKError(err)
	}

	return page, nil
}

func (sdk idSDK) UpdateUser(user scim.User, ifMatch, token string) (scim.User, errors.SDKError) {
	data, err := json.Marshal(user)
	if err != nil {
		return scim.User{}, errors.NewSDKError(err)
	}

	url := sdk.hostURL + usersEndpoint + "/" + user.ID

	_, body, sdkerr := sdk.processRequest(http.MethodPut, url, token, data, ifMatchHeader(ifMatch), http.StatusOK)
	if sdkerr != nil {
		return scim.User{}, sdkerr
	}

	user = scim.User{}
	if err := json.Unmarshal(body, &user); err != nil {
		return scim.User{}, errors.NewSDKError(err)
	}

	return user, nil
}

func (sdk idSDK) PatchUser(id string, ops []PatchOp, ifMatch, token string) (scim.User, errors.SDKError) {
	data, err := json.Marshal(patchBody{
		Schemas:    []string{scim.SchemaPatchOp},
		Operations: ops,
	})
	if err != nil {
		return scim.User{}, errors.NewSDKError(err)
	}

	url := sdk.hostURL + usersEndpoint + "/" + id

	_, body, sdkerr := sdk.processRequest(http.MethodPatch, url, token, data, ifMatchHeader(ifMatch), http.StatusOK)
	if sdkerr != nil {
		return scim.User{}, sdkerr
	}

	var user scim.User
	if err := json.Unmarshal(body, &user); err != nil {
		return scim.User{}, errors.NewSDKError(err)
	}

	return user, nil
}

func (sdk idSDK) DeleteUser(id, ifMatch, token string) errors.SDKError {
	url := sdk.hostURL + usersEndpoint + "/" + id

	_, _, sdkerr := sdk.processRequest(http.MethodDelete, url, token, nil, ifMatchHeader(ifMatch), http.StatusNoContent)

	return sdkerr
}

type patchBody struct {
	Schemas    []string  `json:"schemas"`
	Operations []PatchOp `json:"Operations"`
}

func ifMatchHeader(ifMatch string) map[string]string {
	if ifMatch == "" {
		return nil
	}

	return map[string]string{"If-Match": ifMatch}
}
