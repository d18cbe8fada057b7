// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"net/http"

	"github.com/idrelay/idrelay"
	"github.com/idrelay/idrelay/rules"
)

var (
	_ idrelay.Response = (*ruleRes)(nil)
	_ idrelay.Response = (*listRulesRes)(nil)
	_ idrelay.Response = (*deleteRuleRes)(nil)
	_ idrelay.Response = (*testRuleRes)(nil)
)

type ruleRes struct {
	rules.Rule
	created bool
}

func (res ruleRes) Code() int {
	if res.created {
		return http.StatusCreated
	}

	return http.StatusOK
}

func (res ruleRes) Headers() map[string]string {
	headers := map[string]string{}
	if res.Meta != nil {
		headers["ETag"] = res.Meta.Version
	}

	return headers
}

func (res ruleRes) Empty() bool {
	return false
}

type listRulesRes struct {
	rules.RulesPage
}

func (res listRulesRes) Code() int {
	return http.StatusOK
}

func (res listRulesRes) Headers() map[string]string {
	return map[string]string{}
}

func (res listRulesRes) Empty() bool {
	return false
}

type deleteRuleRes struct{}

func (res deleteRuleRes) Code() int {
	return http.StatusNoContent
}

func (res deleteRuleRes) Headers() map[string]string {
	return map[string]string{}
}

func (res deleteRuleRes) Empty() bool {
	return true
}

type testRuleRes struct {
	Results []rules.TestResult `json:"results"`
}

func (res testRuleRes) Code() int {
	return http.StatusOK
}

func (res testRuleRes) Headers() map[string]string {
	return map[string]string{}
}

func (res testRuleRes) Empty() bool {
	return false
}
