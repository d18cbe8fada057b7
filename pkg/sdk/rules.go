// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package sdk

import (
	"encoding/json"
	"net/http"

	"github.com/idrelay/idrelay/pkg/errors"
	"github.com/idrelay/idrelay/pkg/scim"
)

const rulesEndpoint = "/rules"

// Rule is a transformation rule as it appears on the wire.
type Rule struct {
	ID                 string                 `json:"id,omitempty"`
	ProviderID         string                 `json:"providerId"`
	RuleType           string                 `json:"ruleType"`
	SourcePattern      string                 `json:"sourcePattern"`
	TargetType         string                 `json:"targetType"`
	TargetMapping      string                 `json:"targetMapping"`
	Priority           int                    `json:"priority"`
	Enabled            bool                   `json:"enabled"`
	ConflictResolution string                 `json:"conflictResolution,omitempty"`
	Metadata           map[string]interface{} `json:"metadata,omitempty"`
	Examples           []RuleExample          `json:"examples,omitempty"`
	Meta               *scim.Meta             `json:"meta,omitempty"`
}

// RuleExample is a documented input/output sample of a rule.
type RuleExample struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// TestResult is the outcome of evaluating a rule against one input.
type TestResult struct {
	Input        string `json:"input"`
	ActualOutput string `json:"actualOutput"`
	Passed       bool   `json:"passed"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// RulesPage is a page of transformation rules.
type RulesPage struct {
	TotalResults uint64 `json:"totalResults"`
	StartIndex   int    `json:"startIndex"`
	Rules        []Rule `json:"rules"`
}

func (sdk idSDK) CreateRule(rule Rule, token string) (Rule, errors.SDKError) {
	data, err := json.Marshal(rule)
	if err != nil {
		return Rule{}, errors.NewSDKError(err)
	}

	url := sdk.hostURL + rulesEndpoint

	_, body, sdkerr := sdk.processRequest(http.MethodPost, url, token, data, nil, http.StatusCreated)
	if sdkerr != nil {
		return Rule{}, sdkerr
	}

	rule = Rule{}
	if err := json.Unmarshal(body, &rule); err != nil {
		return Rule{}, errors.NewSDKError(err)
	}

	return rule, nil
}

func (sdk idSDK) Rule(id, token string) (Rule, errors.SDKError) {
	url := sdk.hostURL + rulesEndpoint + "/" + id

	_, body, sdkerr := sdk.processRequest(http.MethodGet, url, token, nil, nil, http.StatusOK)
	if sdkerr != nil {
		return Rule{}, sdkerr
	}

	var rule Rule
	if err := json.Unmarshal(body, &rule); err != nil {
		return Rule{}, errors.NewSDKError(err)
	}

	return rule, nil
}

func (sdk idSDK) Rules(pm PageMetadata, token string) (RulesPage, errors.SDKError) {
	url, err := sdk.withQueryParams(sdk.hostURL, rulesEndpoint, pm)
	if err != nil {
		return RulesPage{}, errors.NewSDKError(err)
	}

	_, body, sdkerr := sdk.processRequest(http.MethodGet, url, token, nil, nil, http.StatusOK)
	if sdkerr != nil {
		return RulesPage{}, sdkerr
	}

	var page RulesPage
	if err := json.Unmarshal(body, &page); err != nil {
		return RulesPage{}, errors.NewSDKError(err)
	}

	return page, nil
}

func (sdk idSDK) UpdateRule(rule Rule, ifMatch, token string) (Rule, errors.SDKError) {
	data, err := json.Marshal(rule)
	if err != nil {
		return Rule{}, errors.NewSDKError(err)
	}

	url := sdk.hostURL + rulesEndpoint + "/" + rule.ID

	_, body, sdkerr := sdk.processRequest(http.MethodPut, url, token, data, ifMatchHeader(ifMatch), http.StatusOK)
	if sdkerr != nil {
		return Rule{}, sdkerr
	}

	rule = Rule{}
	if err := json.Unmarshal(body, &rule); err != nil {
		return Rule{}, errors.NewSDKError(err)
	}

	return rule, nil
}

func (sdk idSDK) DeleteRule(id, ifMatch, token string) errors.SDKError {
	url := sdk.hostURL + rulesEndpoint + "/" + id

	_, _, sdkerr := sdk.processRequest(http.MethodDelete, url, token, nil, ifMatchHeader(ifMatch), http.StatusNoContent)

	return sdkerr
}

func (sdk idSDK) EnableRule(id, token string) (Rule, errors.SDKError) {
	return sdk.changeRuleState(id, "enable", token)
}

func (sdk idSDK) DisableRule(id, token string) (Rule, errors.SDKError) {
	return sdk.changeRuleState(id, "disable", token)
}

func (sdk idSDK) changeRuleState(id, action, token string) (Rule, errors.SDKError) {
	url := sdk.hostURL + rulesEndpoint + "/" + id + "/" + action

	_, body, sdkerr := sdk.processRequest(http.MethodPost, url, token, nil, nil, http.StatusOK)
	if sdkerr != nil {
		return Rule{}, sdkerr
	}

	var rule Rule
	if err := json.Unmarshal(body, &rule); err != nil {
		return Rule{}, errors.NewSDKError(err)
	}

	return rule, nil
}

func (sdk idSDK) TestRule(rule Rule, inputs []string, token string) ([]TestResult, errors.SDKError) {
	data, err := json.Marshal(struct {
		Rule   Rule     `json:"rule"`
		Inputs []string `json:"inputs"`
	}{Rule: rule, Inputs: inputs})
	if err != nil {
		return nil, errors.NewSDKError(err)
	}

	url := sdk.hostURL + rulesEndpoint + "/test"

	_, body, sdkerr := sdk.processRequest(http.MethodPost, url, token, data, nil, http.StatusOK)
	if sdkerr != nil {
		return nil, sdkerr
	}

	var res struct {
		Results []TestResult `json:"results"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, errors.NewSDKError(err)
	}

	return res.Results, nil
}
