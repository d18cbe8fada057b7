// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package sdk

import (
	"encoding/json"
	"net/http"

	"github.com/idrelay/idrelay/pkg/errors"
	"github.com/idrelay/idrelay/pkg/scim"
)

const groupsEndpoint = "/scim/v2/Groups"

// GroupsPage is a SCIM list response of groups.
type GroupsPage struct {
	Schemas      []string     `json:"schemas"`
	TotalResults uint64       `json:"totalResults"`
	StartIndex   int          `json:"startIndex"`
	ItemsPerPage int          `json:"itemsPerPage"`
	Resources    []scim.Group `json:"Resources"`
}

func (sdk idSDK) CreateGroup(group scim.Group, token string) (scim.Group, errors.SDKError) {
	data, err := json.Marshal(group)
	if err != nil {
		return scim.Group{}, errors.NewSDKError(err)
	}

	url := sdk.hostURL + groupsEndpoint

	_, body, sdkerr := sdk.processRequest(http.MethodPost, url, token, data, nil, http.StatusCreated)
	if sdkerr != nil {
		return scim.Group{}, sdkerr
	}

	group = scim.Group{}
	if err := json.Unmarshal(body, &group); err != nil {
		return scim.Group{}, errors.NewSDKError(err)
	}

	return group, nil
}

func (sdk idSDK) Group(id, token string) (scim.Group, errors.SDKError) {
	url := sdk.hostURL + groupsEndpoint + "/" + id

	_, body, sdkerr := sdk.processRequest(http.MethodGet, url, token, nil, nil, http.StatusOK)
	if sdkerr != nil {
		return scim.Group{}, sdkerr
	}

	var group scim.Group
	if err := json.Unmarshal(body, &group); err != nil {
		return scim.Group{}, errors.NewSDKError(err)
	}

	return group, nil
}

func (sdk idSDK) Groups(pm PageMetadata, token string) (GroupsPage, errors.SDKError) {
	url, err := sdk.withQueryParams(sdk.hostURL, groupsEndpoint, pm)
	if err != nil {
		return GroupsPage{}, errors.NewSDKError(err)
	}

	_, body, sdkerr := sdk.processRequest(http.MethodGet, url, token, nil, nil, http.StatusOK)
	if sdkerr != nil {
		return GroupsPage{}, sdkerr
	}

	var page GroupsPage
	if err := json.Unmarshal(body, &page); err != nil {
		return GroupsPage{}, errors.NewSDKError(err)
	}

	return page, nil
}

func (sdk idSDK) UpdateGroup(group scim.Group, ifMatch, token string) (scim.Group, errors.SDKError) {
	data, err := json.Marshal(group)
	if err != nil {
		return scim.Group{}, errors.NewSDKError(err)
	}

	url := sdk.hostURL + groupsEndpoint + "/" + group.ID

	_, body, sdkerr := sdk.processRequest(http.MethodPut, url, token, data, ifMatchHeader(ifMatch), http.StatusOK)
	if sdkerr != nil {
		return scim.Group{}, sdkerr
	}

	group = scim.Group{}
	if err := json.Unmarshal(body, &group); err != nil {
		return scim.Group{}, errors.NewSDKError(err)
	}

	return group, nil
}

func (sdk idSDK) PatchGroup(id string, ops []PatchOp, ifMatch, token string) (scim.Group, errors.SDKError) {
	data, err := json.Marshal(patchBody{
		Schemas:    []string{scim.SchemaPatchOp},
		Operations: ops,
	})
	if err != nil {
		return scim.Group{}, errors.NewSDKError(err)
	}

	url := sdk.hostURL + groupsEndpoint + "/" + id

	_, body, sdkerr := sdk.processRequest(http.MethodPatch, url, token, data, ifMatchHeader(ifMatch), http.StatusOK)
	if sdkerr != nil {
		return scim.Group{}, sdkerr
	}

	var group scim.Group
	if err := json.Unmarshal(body, &group); err != nil {
		return scim.Group{}, errors.NewSDKError(err)
	}

	return group, nil
}

func (sdk idSDK) DeleteGroup(id, ifMatch, token string) errors.SDKError {
	url := sdk.hostURL + groupsEndpoint + "/" + id

	_, _, sdkerr := sdk.processRequest(http.MethodDelete, url, token, nil, ifMatchHeader(ifMatch), http.StatusNoContent)

	return sdkerr
}
