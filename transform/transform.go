// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

// Package transform maps SCIM group display names onto provider
// entitlements by evaluating ordered transformation rules, and maps
// provider entitlements back onto group names where the rules permit.
package transform

import (
	"context"

	"github.com/idrelay/idrelay/rules"
)

// Entitlement is the result of a forward transformation. It is immutable
// once returned.
type Entitlement struct {
	ProviderEntitlementID string                 `json:"providerEntitlementId"`
	Name                  string                 `json:"name"`
	Type                  string                 `json:"type"`
	MappedGroups          []string               `json:"mappedGroups"`
	Priority              int                    `json:"priority"`
	SourceRuleID          string                 `json:"sourceRuleId"`
	Metadata              map[string]interface{} `json:"metadata,omitempty"`
}

// Conflict captures a MANUAL_REVIEW resolution outcome: the group name,
// the rules that matched it, and the entitlements they produced.
type Conflict struct {
	TenantID     string        `json:"tenantId"`
	ProviderID   string        `json:"providerId"`
	GroupName    string        `json:"groupName"`
	RuleIDs      []string      `json:"ruleIds"`
	Entitlements []Entitlement `json:"entitlements"`
}

// RuleSource delivers the enabled rules of a (tenant, provider) pair
// sorted by ascending priority. The rule service implements it through
// its cache.
type RuleSource interface {
	ListEnabled(ctx context.Context, tenantID, providerID string) ([]rules.Rule, error)
}

// SourceFunc adapts a function to a RuleSource. It allows wiring the
// engine to a rule service that is constructed after the engine, since
// the service itself needs the engine as its rule tester.
type SourceFunc func(ctx context.Context, tenantID, providerID string) ([]rules.Rule, error)

// ListEnabled calls f.
func (f SourceFunc) ListEnabled(ctx context.Context, tenantID, providerID string) ([]rules.Rule, error) {
	return f(ctx, tenantID, providerID)
}

// ConflictSink records MANUAL_REVIEW conflicts for later resolution.
//
//go:generate mockery --name ConflictSink --output=./mocks --filename sink.go --quiet --note "Copyright (c) IdRelay"
type ConflictSink interface {
	RecordConflict(ctx context.Context, conflict Conflict) error
}

// SinkFunc adapts a function to a ConflictSink.
type SinkFunc func(ctx context.Context, conflict Conflict) error

// RecordConflict calls f.
func (f SinkFunc) RecordConflict(ctx context.Context, conflict Conflict) error {
	return f(ctx, conflict)
}

// Service is the transformation engine contract. TestRule also
// satisfies rules.Tester.
//
//go:generate mockery --name Service --output=./mocks --filename service.go --quiet --note "Copyright (c) IdRelay"
type Service interface {
	// Transform maps a group display name onto provider entitlements.
	Transform(ctx context.Context, tenantID, providerID, groupName string) ([]Entitlement, error)

	// Reverse maps a provider entitlement back onto the group names that
	// could have produced it.
	Reverse(ctx context.Context, tenantID, providerID, entitlementID, entitlementType string) ([]string, error)

	// TestRule dry-runs a rule against sample inputs.
	TestRule(ctx context.Context, rule rules.Rule, inputs []string) ([]rules.TestResult, error)
}
