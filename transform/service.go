// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package transform

import (
	"context"
	"log/slog"
	"time"

	"github.com/idrelay/idrelay/pkg/errors"
	svcerr "github.com/idrelay/idrelay/pkg/errors/service"
	"github.com/idrelay/idrelay/rules"
)

// DefMatchTimeout is the hard per-match regex timeout.
const DefMatchTimeout = 5 * time.Second

var (
	_ Service      = (*engine)(nil)
	_ rules.Tester = (*engine)(nil)
)

type engine struct {
	source       RuleSource
	sink         ConflictSink
	logger       *slog.Logger
	regexes      *regexCache
	matchTimeout time.Duration
}

// NewEngine returns a transformation engine over the given rule source.
// MANUAL_REVIEW conflicts are handed to the sink.
func NewEngine(source RuleSource, sink ConflictSink, logger *slog.Logger) Service {
	return &engine{
		source:       source,
		sink:         sink,
		logger:       logger,
		regexes:      newRegexCache(),
		matchTimeout: DefMatchTimeout,
	}
}

type matched struct {
	rule        rules.Rule
	entitlement Entitlement
}

func (eng *engine) Transform(ctx context.Context, tenantID, providerID, groupName string) ([]Entitlement, error) {
	enabled, err := eng.source.ListEnabled(ctx, tenantID, providerID)
	if err != nil {
		return nil, err
	}

	var matches []matched
	for _, rule := range enabled {
		name, ok, err := eng.match(ctx, rule, groupName)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		matches = append(matches, matched{
			rule: rule,
			entitlement: Entitlement{
				ProviderEntitlementID: name,
				Name:                  name,
				Type:                  rule.TargetType,
				MappedGroups:          []string{groupName},
				Priority:              rule.Priority,
				SourceRuleID:          rule.ID,
				Metadata:              rule.Metadata,
			},
		})
	}

	switch len(matches) {
	case 0:
		return []Entitlement{}, nil
	case 1:
		return []Entitlement{matches[0].entitlement}, nil
	}

	return eng.resolve(ctx, tenantID, providerID, groupName, matches)
}

// resolve applies the conflict strategy of the first matched rule. The
// rule source returns rules sorted by ascending priority, so the first
// match is also the lowest-priority one.
func (eng *engine) resolve(ctx context.Context, tenantID, providerID, groupName string, matches []matched) ([]Entitlement, error) {
	switch matches[0].rule.ConflictResolution {
	case rules.ResolveUnion:
		seen := make(map[string]bool, len(matches))
		result := make([]Entitlement, 0, len(matches))
		for _, m := range matches {
			if seen[m.entitlement.ProviderEntitlementID] {
				continue
			}
			seen[m.entitlement.ProviderEntitlementID] = true
			result = append(result, m.entitlement)
		}
		return result, nil

	case rules.ResolveFirstMatch:
		return []Entitlement{matches[0].entitlement}, nil

	case rules.ResolveHighestPrivilege:
		return eng.resolveHighestPrivilege(tenantID, providerID, groupName, matches), nil

	case rules.ResolveManualReview:
		conflict := Conflict{
			TenantID:   tenantID,
			ProviderID: providerID,
			GroupName:  groupName,
		}
		for _, m := range matches {
			conflict.RuleIDs = append(conflict.RuleIDs, m.rule.ID)
			conflict.Entitlements = append(conflict.Entitlements, m.entitlement)
		}
		if err := eng.sink.RecordConflict(ctx, conflict); err != nil {
			return nil, err
		}
		return []Entitlement{}, nil

	case rules.ResolveError:
		return nil, errors.Wrap(svcerr.ErrTransformationConflict,
			errors.New("group "+groupName+" matched by multiple rules"))
	}

	return []Entitlement{matches[0].entitlement}, nil
}

func (eng *engine) resolveHighestPrivilege(tenantID, providerID, groupName string, matches []matched) []Entitlement {
	best := -1
	declared := false
	var winner Entitlement
	for _, m := range matches {
		if _, ok := m.rule.Metadata["privilegeLevel"]; !ok {
			continue
		}
		md, err := m.rule.DecodeMetadata()
		if err != nil {
			continue
		}
		declared = true
		if md.PrivilegeLevel > best {
			best = md.PrivilegeLevel
			winner = m.entitlement
		}
	}
	if !declared {
		eng.logger.Warn("No privilege levels declared, degrading to first match",
			slog.String("tenant_id", tenantID),
			slog.String("provider_id", providerID),
			slog.String("group", groupName),
		)
		return []Entitlement{matches[0].entitlement}
	}

	return []Entitlement{winner}
}

func (eng *engine) TestRule(ctx context.Context, rule rules.Rule, inputs []string) ([]rules.TestResult, error) {
	expected := make(map[string]string, len(rule.Examples))
	for _, ex := range rule.Examples {
		expected[ex.Input] = ex.Output
	}

	results := make([]rules.TestResult, 0, len(inputs))
	for _, input := range inputs {
		row := rules.TestResult{Input: input}
		name, ok, err := eng.match(ctx, rule, input)
		switch {
		case err != nil:
			row.ErrorMessage = err.Error()
		case ok:
			row.ActualOutput = name
			if want, has := expected[input]; has {
				row.Passed = want == name
			} else {
				row.Passed = true
			}
		default:
			if want, has := expected[input]; has && want == "" {
				row.Passed = true
			}
		}
		results = append(results, row)
	}

	return results, nil
}
