// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"github.com/idrelay/idrelay/pkg/apiutil"
	"github.com/idrelay/idrelay/rules"
)

type createRuleReq struct {
	rule rules.Rule
}

func (req createRuleReq) validate() error {
	if req.rule.ProviderID == "" {
		return apiutil.ErrMissingProviderID
	}

	return nil
}

type viewRuleReq struct {
	id string
}

func (req viewRuleReq) validate() error {
	if req.id == "" {
		return apiutil.ErrMissingID
	}

	return nil
}

type listRulesReq struct {
	page rules.Page
}

func (req listRulesReq) validate() error {
	if req.page.StartIndex < 1 {
		return apiutil.ErrInvalidStartIndex
	}

	return nil
}

type updateRuleReq struct {
	id      string
	ifMatch string
	rule    rules.Rule
}

func (req updateRuleReq) validate() error {
	if req.id == "" {
		return apiutil.ErrMissingID
	}

	return nil
}

type deleteRuleReq struct {
	id      string
	ifMatch string
}

func (req deleteRuleReq) validate() error {
	if req.id == "" {
		return apiutil.ErrMissingID
	}

	return nil
}

type changeRuleStateReq struct {
	id      string
	enabled bool
}

func (req changeRuleStateReq) validate() error {
	if req.id == "" {
		return apiutil.ErrMissingID
	}

	return nil
}

type testRuleReq struct {
	rule   rules.Rule
	inputs []string
}

func (req testRuleReq) validate() error {
	if len(req.inputs) == 0 {
		return apiutil.ErrEmptyList
	}

	return nil
}
