// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package transform

import (
	"context"
	"strconv"
	"strings"

	"github.com/idrelay/idrelay/rules"
)

// match evaluates a single rule against a group display name. On a
// match it returns the substituted entitlement name.
func (eng *engine) match(ctx context.Context, rule rules.Rule, groupName string) (string, bool, error) {
	switch rule.RuleType {
	case rules.RuleExact:
		if rule.SourcePattern != groupName {
			return "", false, nil
		}
		return rule.TargetMapping, true, nil

	case rules.RuleRegex:
		re, err := eng.regexes.get(rule.SourcePattern)
		if err != nil {
			return "", false, err
		}
		captures, err := matchTimed(ctx, re, groupName, eng.matchTimeout)
		if err != nil {
			return "", false, err
		}
		if captures == nil {
			return "", false, nil
		}
		return substituteCaptures(rule.TargetMapping, captures), true, nil

	case rules.RuleHierarchical:
		want := strings.Split(rule.SourcePattern, rules.HierarchySeparator)
		got := strings.Split(groupName, rules.HierarchySeparator)
		if len(got) < len(want) {
			return "", false, nil
		}
		return substituteLevels(rule.TargetMapping, got), true, nil

	case rules.RuleConditional:
		matched, err := eng.matchCondition(ctx, rule.SourcePattern, groupName)
		if err != nil || !matched {
			return "", false, err
		}
		return rule.TargetMapping, true, nil
	}

	return "", false, nil
}

// matchCondition evaluates a conditional source pattern. String
// comparisons are case-insensitive.
func (eng *engine) matchCondition(ctx context.Context, pattern, groupName string) (bool, error) {
	op, operand := rules.SplitCondition(pattern)
	name := strings.ToLower(groupName)
	value := strings.ToLower(operand)

	switch op {
	case "CONTAINS":
		return strings.Contains(name, value), nil
	case "STARTS_WITH":
		return strings.HasPrefix(name, value), nil
	case "ENDS_WITH":
		return strings.HasSuffix(name, value), nil
	case "EQUALS":
		return name == value, nil
	default:
		re, err := eng.regexes.get("(?i)" + operand)
		if err != nil {
			return false, err
		}
		captures, err := matchTimed(ctx, re, groupName, eng.matchTimeout)
		if err != nil {
			return false, err
		}
		return captures != nil, nil
	}
}

// substituteCaptures replaces ${N} variables with regex captures.
// References are 1-based; out-of-range references substitute empty.
func substituteCaptures(template string, captures []string) string {
	return rules.TemplateRef.ReplaceAllStringFunc(template, func(ref string) string {
		idx := strings.TrimSuffix(strings.TrimPrefix(ref, "${"), "}")
		n, err := strconv.Atoi(idx)
		if err != nil || n < 0 || n >= len(captures) {
			return ""
		}
		return captures[n]
	})
}

// substituteLevels replaces ${levelK} and ${N} variables with the
// 0-based components of the group name.
func substituteLevels(template string, components []string) string {
	return rules.TemplateRef.ReplaceAllStringFunc(template, func(ref string) string {
		idx := strings.TrimSuffix(strings.TrimPrefix(ref, "${"), "}")
		idx = strings.TrimPrefix(idx, "level")
		n, err := strconv.Atoi(idx)
		if err != nil || n < 0 || n >= len(components) {
			return ""
		}
		return components[n]
	})
}
