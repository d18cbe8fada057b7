// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package transform_test

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/idrelay/idrelay/logger"
	"github.com/idrelay/idrelay/pkg/errors"
	svcerr "github.com/idrelay/idrelay/pkg/errors/service"
	"github.com/idrelay/idrelay/rules"
	rmocks "github.com/idrelay/idrelay/rules/mocks"
	"github.com/idrelay/idrelay/transform"
	"github.com/idrelay/idrelay/transform/mocks"
)

const (
	tenantID   = "tenant-1"
	providerID = "salesforce"
)

func newEngine(t *testing.T) (transform.Service, *rmocks.Service, *mocks.ConflictSink) {
	source := new(rmocks.Service)
	sink := new(mocks.ConflictSink)
	slogger, err := logger.New(io.Discard, "debug")
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	return transform.NewEngine(source, sink, slogger), source, sink
}

func TestTransformRegexUnion(t *testing.T) {
	eng, source, _ := newEngine(t)

	enabled := []rules.Rule{
		{
			ID:                 "rule-1",
			ProviderID:         providerID,
			RuleType:           rules.RuleRegex,
			SourcePattern:      `^Sales_(.+)_Rep$`,
			TargetType:         "role",
			TargetMapping:      "Sales_${1}_Rep",
			Priority:           1,
			Enabled:            true,
			ConflictResolution: rules.ResolveUnion,
		},
		{
			ID:                 "rule-2",
			ProviderID:         providerID,
			RuleType:           rules.RuleRegex,
			SourcePattern:      `^Sales_(.+)_.+$`,
			TargetType:         "role",
			TargetMapping:      "Sales_${1}_Manager",
			Priority:           2,
			Enabled:            true,
			ConflictResolution: rules.ResolveUnion,
		},
	}
	sourceCall := source.On("ListEnabled", context.Background(), tenantID, providerID).Return(enabled, nil)
	defer sourceCall.Unset()

	entitlements, err := eng.Transform(context.Background(), tenantID, providerID, "Sales_EMEA_Rep")
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	require.Len(t, entitlements, 2)
	assert.Equal(t, "Sales_EMEA_Rep", entitlements[0].Name)
	assert.Equal(t, "Sales_EMEA_Manager", entitlements[1].Name)
	assert.Equal(t, "rule-1", entitlements[0].SourceRuleID)
	assert.Equal(t, []string{"Sales_EMEA_Rep"}, entitlements[0].MappedGroups)
}

func TestTransformHighestPrivilege(t *testing.T) {
	eng, source, _ := newEngine(t)

	enabled := []rules.Rule{
		{
			ID:                 "rule-rep",
			RuleType:           rules.RuleExact,
			SourcePattern:      "Sales",
			TargetType:         "role",
			TargetMapping:      "Sales_Rep",
			Priority:           1,
			ConflictResolution: rules.ResolveHighestPrivilege,
			Metadata:           map[string]interface{}{"privilegeLevel": float64(1)},
		},
		{
			ID:                 "rule-manager",
			RuleType:           rules.RuleExact,
			SourcePattern:      "Sales",
			TargetType:         "role",
			TargetMapping:      "Sales_Manager",
			Priority:           2,
			ConflictResolution: rules.ResolveHighestPrivilege,
			Metadata:           map[string]interface{}{"privilegeLevel": float64(5)},
		},
	}
	sourceCall := source.On("ListEnabled", context.Background(), tenantID, providerID).Return(enabled, nil)
	defer sourceCall.Unset()

	entitlements, err := eng.Transform(context.Background(), tenantID, providerID, "Sales")
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	require.Len(t, entitlements, 1)
	assert.Equal(t, "Sales_Manager", entitlements[0].Name)
}

func TestTransformHierarchical(t *testing.T) {
	eng, source, _ := newEngine(t)

	enabled := []rules.Rule{
		{
			ID:                 "rule-org",
			RuleType:           rules.RuleHierarchical,
			SourcePattern:      "Org/Division/Team",
			TargetType:         "organization",
			TargetMapping:      "${level1}_${level2}",
			Priority:           1,
			ConflictResolution: rules.ResolveFirstMatch,
		},
	}
	sourceCall := source.On("ListEnabled", context.Background(), tenantID, "workday").Return(enabled, nil)
	defer sourceCall.Unset()

	entitlements, err := eng.Transform(context.Background(), tenantID, "workday", "Acme/Sales/EMEA")
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	require.Len(t, entitlements, 1)
	assert.Equal(t, "Sales_EMEA", entitlements[0].Name)

	// Shallower inputs do not match.
	entitlements, err = eng.Transform(context.Background(), tenantID, "workday", "Acme/Sales")
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Empty(t, entitlements)
}

func TestTransformConditional(t *testing.T) {
	eng, source, _ := newEngine(t)

	enabled := []rules.Rule{
		{
			ID:                 "rule-admins",
			RuleType:           rules.RuleConditional,
			SourcePattern:      "CONTAINS admin",
			TargetType:         "group",
			TargetMapping:      "Administrators",
			Priority:           1,
			ConflictResolution: rules.ResolveFirstMatch,
		},
	}
	sourceCall := source.On("ListEnabled", context.Background(), tenantID, "servicenow").Return(enabled, nil)
	defer sourceCall.Unset()

	entitlements, err := eng.Transform(context.Background(), tenantID, "servicenow", "Platform Admins")
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	require.Len(t, entitlements, 1)
	assert.Equal(t, "Administrators", entitlements[0].Name)

	entitlements, err = eng.Transform(context.Background(), tenantID, "servicenow", "Engineering")
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Empty(t, entitlements)
}

func TestTransformManualReview(t *testing.T) {
	eng, source, sink := newEngine(t)

	enabled := []rules.Rule{
		{
			ID:                 "rule-a",
			RuleType:           rules.RuleExact,
			SourcePattern:      "Finance",
			TargetType:         "role",
			TargetMapping:      "Finance_A",
			Priority:           1,
			ConflictResolution: rules.ResolveManualReview,
		},
		{
			ID:                 "rule-b",
			RuleType:           rules.RuleExact,
			SourcePattern:      "Finance",
			TargetType:         "role",
			TargetMapping:      "Finance_B",
			Priority:           2,
			ConflictResolution: rules.ResolveManualReview,
		},
	}
	sourceCall := source.On("ListEnabled", context.Background(), tenantID, providerID).Return(enabled, nil)
	var recorded transform.Conflict
	sinkCall := sink.On("RecordConflict", context.Background(), mock.Anything).Run(func(args mock.Arguments) {
		recorded = args.Get(1).(transform.Conflict)
	}).Return(nil)
	defer sourceCall.Unset()
	defer sinkCall.Unset()

	entitlements, err := eng.Transform(context.Background(), tenantID, providerID, "Finance")
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Empty(t, entitlements)
	assert.Equal(t, []string{"rule-a", "rule-b"}, recorded.RuleIDs)
	assert.Equal(t, "Finance", recorded.GroupName)
}

func TestTransformErrorStrategy(t *testing.T) {
	eng, source, _ := newEngine(t)

	enabled := []rules.Rule{
		{
			ID:                 "rule-a",
			RuleType:           rules.RuleExact,
			SourcePattern:      "Ops",
			TargetType:         "role",
			TargetMapping:      "Ops_A",
			Priority:           1,
			ConflictResolution: rules.ResolveError,
		},
		{
			ID:                 "rule-b",
			RuleType:           rules.RuleExact,
			SourcePattern:      "Ops",
			TargetType:         "role",
			TargetMapping:      "Ops_B",
			Priority:           2,
			ConflictResolution: rules.ResolveError,
		},
	}
	sourceCall := source.On("ListEnabled", context.Background(), tenantID, providerID).Return(enabled, nil)
	defer sourceCall.Unset()

	_, err := eng.Transform(context.Background(), tenantID, providerID, "Ops")
	assert.True(t, errors.Contains(err, svcerr.ErrTransformationConflict), fmt.Sprintf("expected conflict error, got %v", err))
}

func TestReverseRegex(t *testing.T) {
	eng, source, _ := newEngine(t)

	enabled := []rules.Rule{
		{
			ID:                 "rule-1",
			RuleType:           rules.RuleRegex,
			SourcePattern:      `^Sales_(.+)_Rep$`,
			TargetType:         "role",
			TargetMapping:      "SF_${1}_Rep",
			Priority:           1,
			ConflictResolution: rules.ResolveUnion,
		},
	}
	sourceCall := source.On("ListEnabled", context.Background(), tenantID, providerID).Return(enabled, nil)
	defer sourceCall.Unset()

	names, err := eng.Reverse(context.Background(), tenantID, providerID, "SF_EMEA_Rep", "role")
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, []string{"Sales_EMEA_Rep"}, names)

	names, err = eng.Reverse(context.Background(), tenantID, providerID, "Marketing_EMEA", "role")
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Empty(t, names)
}

func TestReverseExact(t *testing.T) {
	eng, source, _ := newEngine(t)

	enabled := []rules.Rule{
		{
			ID:                 "rule-1",
			RuleType:           rules.RuleExact,
			SourcePattern:      "Engineering",
			TargetType:         "role",
			TargetMapping:      "Eng_Role",
			Priority:           1,
			ConflictResolution: rules.ResolveUnion,
		},
	}
	sourceCall := source.On("ListEnabled", context.Background(), tenantID, providerID).Return(enabled, nil)
	defer sourceCall.Unset()

	names, err := eng.Reverse(context.Background(), tenantID, providerID, "Eng_Role", "")
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, []string{"Engineering"}, names)
}

func TestTestRule(t *testing.T) {
	eng, _, _ := newEngine(t)

	rule := rules.Rule{
		RuleType:           rules.RuleRegex,
		SourcePattern:      `^Sales_(.+)$`,
		TargetType:         "role",
		TargetMapping:      "SF_${1}",
		Priority:           1,
		ConflictResolution: rules.ResolveUnion,
		Examples: []rules.Example{
			{Input: "Sales_EMEA", Output: "SF_EMEA"},
			{Input: "Marketing", Output: ""},
		},
	}

	results, err := eng.TestRule(context.Background(), rule, []string{"Sales_EMEA", "Marketing", "Sales_APAC"})
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	require.Len(t, results, 3)
	assert.True(t, results[0].Passed)
	assert.Equal(t, "SF_EMEA", results[0].ActualOutput)
	assert.True(t, results[1].Passed)
	assert.Empty(t, results[1].ActualOutput)
	assert.True(t, results[2].Passed)
	assert.Equal(t, "SF_APAC", results[2].ActualOutput)
}
