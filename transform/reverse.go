// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package transform

import (
	"context"
	"regexp"
	"strings"

	"github.com/idrelay/idrelay/rules"
)

// metaChars are the regex metacharacters that mark a reconstructed
// group name as irreversible.
const metaChars = `\^$.|?*+()[]{}`

func (eng *engine) Reverse(ctx context.Context, tenantID, providerID, entitlementID, entitlementType string) ([]string, error) {
	enabled, err := eng.source.ListEnabled(ctx, tenantID, providerID)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0)
	for _, rule := range enabled {
		if entitlementType != "" && rule.TargetType != entitlementType {
			continue
		}
		switch rule.RuleType {
		case rules.RuleExact:
			if rule.TargetMapping == entitlementID {
				names = append(names, rule.SourcePattern)
			}
		case rules.RuleRegex:
			name, ok, err := eng.reverseRegex(ctx, rule, entitlementID)
			if err != nil {
				return nil, err
			}
			if ok {
				names = append(names, name)
			}
		case rules.RuleHierarchical:
			if name, ok := eng.reverseHierarchical(ctx, rule, entitlementID); ok {
				names = append(names, name)
			}
		case rules.RuleConditional:
			// Conditional rules carry no structure to invert.
		}
	}

	return names, nil
}

// reverseRegex turns the mapping template into a capture pattern,
// matches the entitlement id against it, and substitutes the captured
// fragments back into the capture groups of the source pattern. A
// reconstruction that still contains regex metacharacters is rejected
// as irreversible.
func (eng *engine) reverseRegex(ctx context.Context, rule rules.Rule, entitlementID string) (string, bool, error) {
	capturePattern := "^" + templateToPattern(rule.TargetMapping) + "$"
	re, err := eng.regexes.get(capturePattern)
	if err != nil {
		return "", false, err
	}
	captures, err := matchTimed(ctx, re, entitlementID, eng.matchTimeout)
	if err != nil {
		return "", false, err
	}
	if captures == nil {
		return "", false, nil
	}

	source := strings.TrimSuffix(strings.TrimPrefix(rule.SourcePattern, "^"), "$")
	name, ok := fillGroups(source, captures[1:])
	if !ok || strings.ContainsAny(name, metaChars) {
		return "", false, nil
	}

	return name, true, nil
}

// reverseHierarchical recovers the single referenced level when the
// mapping template references exactly one and the entitlement id
// matches the template shape. The result is a hint, not a full name.
func (eng *engine) reverseHierarchical(ctx context.Context, rule rules.Rule, entitlementID string) (string, bool) {
	refs := rules.TemplateRef.FindAllString(rule.TargetMapping, -1)
	if len(refs) != 1 {
		return "", false
	}

	capturePattern := "^" + templateToPattern(rule.TargetMapping) + "$"
	re, err := eng.regexes.get(capturePattern)
	if err != nil {
		return "", false
	}
	captures, err := matchTimed(ctx, re, entitlementID, eng.matchTimeout)
	if err != nil || len(captures) < 2 {
		return "", false
	}

	return captures[1], true
}

// templateToPattern converts a mapping template into a regex where
// every ${...} variable becomes a capture group and everything else is
// matched literally.
func templateToPattern(template string) string {
	var b strings.Builder
	rest := template
	for {
		loc := rules.TemplateRef.FindStringIndex(rest)
		if loc == nil {
			b.WriteString(regexp.QuoteMeta(rest))
			break
		}
		b.WriteString(regexp.QuoteMeta(rest[:loc[0]]))
		b.WriteString("(.*)")
		rest = rest[loc[1]:]
	}

	return b.String()
}

// fillGroups substitutes values into the top-level capture groups of a
// regex pattern, left to right. It reports failure when the pattern has
// fewer groups than values.
func fillGroups(pattern string, values []string) (string, bool) {
	var b strings.Builder
	depth := 0
	vi := 0
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\' && i+1 < len(pattern):
			if depth == 0 {
				b.WriteByte(pattern[i+1])
			}
			i++
		case c == '(':
			if depth == 0 {
				if vi >= len(values) {
					return "", false
				}
				b.WriteString(values[vi])
				vi++
			}
			depth++
		case c == ')':
			if depth == 0 {
				return "", false
			}
			depth--
		default:
			if depth == 0 {
				b.WriteByte(c)
			}
		}
	}

	return b.String(), vi == len(values)
}
