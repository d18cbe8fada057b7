// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package rules_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/pkg/errors"
	repoerr "github.com/idrelay/idrelay/pkg/errors/repository"
	svcerr "github.com/idrelay/idrelay/pkg/errors/service"
	"github.com/idrelay/idrelay/pkg/uuid"
	"github.com/idrelay/idrelay/rules"
	"github.com/idrelay/idrelay/rules/mocks"
)

var (
	idProvider   = uuid.NewMock()
	validSession = authn.Session{TenantID: "tenant-1", ActorID: "actor-1", ActorType: authn.ActorAdmin}
	validRule    = rules.Rule{
		ProviderID:         "salesforce",
		RuleType:           rules.RuleRegex,
		SourcePattern:      `^Sales_(.+)_(.+)$`,
		TargetType:         "role",
		TargetMapping:      "Sales_${1}_${2}",
		Priority:           1,
		Enabled:            true,
		ConflictResolution: rules.ResolveUnion,
	}
)

func newService() (rules.Service, *mocks.Repository, *mocks.Cache, *mocks.Tester) {
	repo := new(mocks.Repository)
	cache := new(mocks.Cache)
	tester := new(mocks.Tester)
	svc := rules.NewService(repo, cache, tester, idProvider)

	return svc, repo, cache, tester
}

func TestCreateRule(t *testing.T) {
	svc, repo, cache, _ := newService()

	invalidRegex := validRule
	invalidRegex.SourcePattern = `^Sales_([a-z+$`

	badTemplate := validRule
	badTemplate.TargetMapping = "Sales_${3}"

	cases := []struct {
		desc    string
		session authn.Session
		rule    rules.Rule
		err     error
	}{
		{
			desc:    "create rule successfully",
			session: validSession,
			rule:    validRule,
			err:     nil,
		},
		{
			desc: "create rule without tenant",
			rule: validRule,
			err:  svcerr.ErrMalformedEntity,
		},
		{
			desc:    "create rule with invalid regex",
			session: validSession,
			rule:    invalidRegex,
			err:     svcerr.ErrMalformedEntity,
		},
		{
			desc:    "create rule with template beyond capture count",
			session: validSession,
			rule:    badTemplate,
			err:     svcerr.ErrMalformedEntity,
		},
	}

	for _, tc := range cases {
		repoCall := repo.On("Save", context.Background(), tc.session.TenantID, mock.Anything).Return(tc.rule, nil)
		cacheCall := cache.On("Remove", context.Background(), tc.session.TenantID, tc.rule.ProviderID).Return(nil)
		created, err := svc.CreateRule(context.Background(), tc.session, tc.rule)
		assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected %v got %v", tc.desc, tc.err, err))
		if err == nil {
			assert.Equal(t, tc.rule.ProviderID, created.ProviderID, tc.desc)
		}
		repoCall.Unset()
		cacheCall.Unset()
	}
}

func TestListEnabledCacheAside(t *testing.T) {
	svc, repo, cache, _ := newService()

	snapshot := []rules.Rule{validRule}

	missCall := cache.On("Get", context.Background(), "tenant-1", "salesforce").Return(nil, repoerr.ErrNotFound).Once()
	repoCall := repo.On("RetrieveEnabled", context.Background(), "tenant-1", "salesforce").Return(snapshot, nil).Once()
	saveCall := cache.On("Save", context.Background(), "tenant-1", "salesforce", snapshot).Return(nil).Once()

	enabled, err := svc.ListEnabled(context.Background(), "tenant-1", "salesforce")
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Len(t, enabled, 1)
	missCall.Unset()
	repoCall.Unset()
	saveCall.Unset()

	// Second call is served from the cache without touching the repository.
	hitCall := cache.On("Get", context.Background(), "tenant-1", "salesforce").Return(snapshot, nil).Once()
	enabled, err = svc.ListEnabled(context.Background(), "tenant-1", "salesforce")
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Len(t, enabled, 1)
	repo.AssertNumberOfCalls(t, "RetrieveEnabled", 1)
	hitCall.Unset()
}

func TestUpdateRuleInvalidatesBothProviders(t *testing.T) {
	svc, repo, cache, _ := newService()

	stored := validRule
	stored.ID = "rule-1"

	moved := validRule
	moved.ID = stored.ID
	moved.ProviderID = "workday"
	moved.RuleType = rules.RuleHierarchical
	moved.SourcePattern = "Org/Division/Team"
	moved.TargetMapping = "${level1}_${level2}"

	retrieveCall := repo.On("RetrieveByID", context.Background(), validSession.TenantID, stored.ID).Return(stored, nil)
	updateCall := repo.On("Update", context.Background(), validSession.TenantID, mock.Anything, "").Return(moved, nil)
	oldCall := cache.On("Remove", context.Background(), validSession.TenantID, "salesforce").Return(nil)
	newCall := cache.On("Remove", context.Background(), validSession.TenantID, "workday").Return(nil)
	defer retrieveCall.Unset()
	defer updateCall.Unset()
	defer oldCall.Unset()
	defer newCall.Unset()

	_, err := svc.UpdateRule(context.Background(), validSession, moved, "")
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	cache.AssertCalled(t, "Remove", context.Background(), validSession.TenantID, "salesforce")
	cache.AssertCalled(t, "Remove", context.Background(), validSession.TenantID, "workday")
}

func TestDisableRule(t *testing.T) {
	svc, repo, cache, _ := newService()

	stored := validRule
	stored.ID = "rule-1"

	disabled := stored
	disabled.Enabled = false

	retrieveCall := repo.On("RetrieveByID", context.Background(), validSession.TenantID, stored.ID).Return(stored, nil)
	updateCall := repo.On("Update", context.Background(), validSession.TenantID, mock.Anything, "").Return(disabled, nil)
	cacheCall := cache.On("Remove", context.Background(), validSession.TenantID, stored.ProviderID).Return(nil)
	defer retrieveCall.Unset()
	defer updateCall.Unset()
	defer cacheCall.Unset()

	rule, err := svc.DisableRule(context.Background(), validSession, stored.ID)
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.False(t, rule.Enabled)
}

func TestDisableRuleAlreadyDisabled(t *testing.T) {
	svc, repo, _, _ := newService()

	stored := validRule
	stored.ID = "rule-1"
	stored.Enabled = false

	retrieveCall := repo.On("RetrieveByID", context.Background(), validSession.TenantID, stored.ID).Return(stored, nil)
	defer retrieveCall.Unset()

	rule, err := svc.DisableRule(context.Background(), validSession, stored.ID)
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.False(t, rule.Enabled)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTestRuleDelegatesToEngine(t *testing.T) {
	svc, _, _, tester := newService()

	results := []rules.TestResult{
		{Input: "Sales_EMEA_Rep", ActualOutput: "Sales_EMEA_Rep", Passed: true},
	}

	testerCall := tester.On("TestRule", context.Background(), mock.Anything, []string{"Sales_EMEA_Rep"}).Return(results, nil)
	defer testerCall.Unset()

	rows, err := svc.TestRule(context.Background(), validSession, validRule, []string{"Sales_EMEA_Rep"})
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Len(t, rows, 1)
	assert.True(t, rows[0].Passed)
}

func TestViewRuleNotFound(t *testing.T) {
	svc, repo, _, _ := newService()

	repoCall := repo.On("RetrieveByID", context.Background(), validSession.TenantID, "missing").Return(rules.Rule{}, repoerr.ErrNotFound)
	defer repoCall.Unset()

	_, err := svc.ViewRule(context.Background(), validSession, "missing")
	assert.True(t, errors.Contains(err, svcerr.ErrNotFound), fmt.Sprintf("expected not found, got %v", err))
}
