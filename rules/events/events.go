// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package events

import (
	"github.com/idrelay/idrelay/pkg/events"
	"github.com/idrelay/idrelay/rules"
)

const (
	rulePrefix  = "rule."
	ruleCreate  = rulePrefix + "create"
	ruleUpdate  = rulePrefix + "update"
	ruleRemove  = rulePrefix + "remove"
	ruleEnable  = rulePrefix + "enable"
	ruleDisable = rulePrefix + "disable"
)

var (
	_ events.Event = (*ruleEvent)(nil)
	_ events.Event = (*removeRuleEvent)(nil)
)

type ruleEvent struct {
	operation string
	tenantID  string
	rule      rules.Rule
}

func (re ruleEvent) Encode() (map[string]interface{}, error) {
	val := map[string]interface{}{
		"operation":   re.operation,
		"tenant_id":   re.tenantID,
		"id":          re.rule.ID,
		"provider_id": re.rule.ProviderID,
		"rule_type":   string(re.rule.RuleType),
		"priority":    re.rule.Priority,
		"enabled":     re.rule.Enabled,
	}
	if re.rule.Meta != nil {
		val["updated_at"] = re.rule.Meta.LastModified
		val["version"] = re.rule.Meta.Version
	}

	return val, nil
}

type removeRuleEvent struct {
	tenantID string
	id       string
}

func (rre removeRuleEvent) Encode() (map[string]interface{}, error) {
	return map[string]interface{}{
		"operation": ruleRemove,
		"tenant_id": rre.tenantID,
		"id":        rre.id,
	}, nil
}
