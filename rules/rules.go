// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

// Package rules manages the per-tenant transformation rules that map
// SCIM group names onto provider entitlements.
package rules

import (
	"context"
	"encoding/json"

	"github.com/mitchellh/mapstructure"

	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/pkg/errors"
	svcerr "github.com/idrelay/idrelay/pkg/errors/service"
	"github.com/idrelay/idrelay/pkg/scim"
)

// RuleType names the matching strategy of a rule.
type RuleType string

const (
	RuleExact        RuleType = "EXACT"
	RuleRegex        RuleType = "REGEX"
	RuleHierarchical RuleType = "HIERARCHICAL"
	RuleConditional  RuleType = "CONDITIONAL"
)

// ConflictResolution names the strategy applied when several rules match
// the same group name.
type ConflictResolution string

const (
	ResolveUnion            ConflictResolution = "UNION"
	ResolveFirstMatch       ConflictResolution = "FIRST_MATCH"
	ResolveHighestPrivilege ConflictResolution = "HIGHEST_PRIVILEGE"
	ResolveManualReview     ConflictResolution = "MANUAL_REVIEW"
	ResolveError            ConflictResolution = "ERROR"
)

// HierarchySeparator splits hierarchical source patterns and group names
// into path components.
const HierarchySeparator = "/"

// Rule is a single ordered transformation rule. Priority 1 is the
// highest; lower numbers win ties.
type Rule struct {
	ID                 string                 `json:"id"`
	TenantID           string                 `json:"tenantId,omitempty"`
	ProviderID         string                 `json:"providerId"`
	RuleType           RuleType               `json:"ruleType"`
	SourcePattern      string                 `json:"sourcePattern"`
	TargetType         string                 `json:"targetType"`
	TargetMapping      string                 `json:"targetMapping"`
	Priority           int                    `json:"priority"`
	Enabled            bool                   `json:"enabled"`
	ConflictResolution ConflictResolution     `json:"conflictResolution"`
	Metadata           map[string]interface{} `json:"metadata,omitempty"`
	Examples           []Example              `json:"examples,omitempty"`
	Meta               *scim.Meta             `json:"meta,omitempty"`
}

// Example documents an expected input/output pair of a rule.
type Example struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// Metadata is the typed view of the free-form metadata map.
type Metadata struct {
	PrivilegeLevel int    `mapstructure:"privilegeLevel"`
	Condition      string `mapstructure:"condition"`
	Fallback       string `mapstructure:"fallback"`
}

// DecodeMetadata decodes the metadata map into its typed form. JSON
// round-trips deliver numbers as float64, so decoding is weakly typed.
func (r Rule) DecodeMetadata() (Metadata, error) {
	var md Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &md,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Metadata{}, err
	}
	if err := dec.Decode(r.Metadata); err != nil {
		return Metadata{}, errors.Wrap(svcerr.ErrMalformedEntity, err)
	}

	return md, nil
}

// TestResult is one row of a rule dry run.
type TestResult struct {
	Input        string `json:"input"`
	ActualOutput string `json:"actualOutput"`
	Passed       bool   `json:"passed"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// Page carries paging and the optional provider filter for rule listings.
type Page struct {
	StartIndex int
	Count      int
	ProviderID string
}

// RulesPage is a page of rules together with the total match count.
type RulesPage struct {
	Total      uint64 `json:"totalResults"`
	StartIndex int    `json:"startIndex"`
	Rules      []Rule `json:"rules"`
}

// MarshalJSON serializes an empty rule list as [] rather than null.
func (page RulesPage) MarshalJSON() ([]byte, error) {
	type Alias RulesPage
	a := struct {
		Alias
	}{
		Alias: Alias(page),
	}
	if a.Rules == nil {
		a.Rules = make([]Rule, 0)
	}

	return json.Marshal(a)
}

// Tester runs a rule dry run against sample inputs. The transformation
// engine provides the implementation.
//
//go:generate mockery --name Tester --output=./mocks --filename tester.go --quiet --note "Copyright (c) IdRelay"
type Tester interface {
	TestRule(ctx context.Context, rule Rule, inputs []string) ([]TestResult, error)
}

// Service is the rule management API.
//
//go:generate mockery --name Service --output=./mocks --filename service.go --quiet --note "Copyright (c) IdRelay"
type Service interface {
	// CreateRule validates and persists a new rule for the session tenant.
	CreateRule(ctx context.Context, session authn.Session, rule Rule) (Rule, error)

	// ViewRule retrieves a rule by id.
	ViewRule(ctx context.Context, session authn.Session, id string) (Rule, error)

	// ListRules pages through the tenant's rules, optionally scoped to a
	// provider.
	ListRules(ctx context.Context, session authn.Session, page Page) (RulesPage, error)

	// UpdateRule replaces a rule, honoring the If-Match precondition.
	UpdateRule(ctx context.Context, session authn.Session, rule Rule, ifMatch string) (Rule, error)

	// DeleteRule removes a rule.
	DeleteRule(ctx context.Context, session authn.Session, id string, ifMatch string) error

	// EnableRule marks a rule as active for transformation.
	EnableRule(ctx context.Context, session authn.Session, id string) (Rule, error)

	// DisableRule excludes a rule from transformation without deleting it.
	DisableRule(ctx context.Context, session authn.Session, id string) (Rule, error)

	// TestRule dry-runs a rule against sample inputs without persisting it.
	TestRule(ctx context.Context, session authn.Session, rule Rule, inputs []string) ([]TestResult, error)

	// ListEnabled returns the tenant's enabled rules for a provider,
	// sorted by priority, through the rule cache.
	ListEnabled(ctx context.Context, tenantID, providerID string) ([]Rule, error)
}

// Repository is the rule persistence contract.
//
//go:generate mockery --name Repository --output=./mocks --filename repository.go --quiet --note "Copyright (c) IdRelay"
type Repository interface {
	// Save persists a new rule within the tenant partition.
	Save(ctx context.Context, tenantID string, rule Rule) (Rule, error)

	// RetrieveByID retrieves a rule by its id.
	RetrieveByID(ctx context.Context, tenantID, id string) (Rule, error)

	// RetrieveAll pages through the tenant's rules.
	RetrieveAll(ctx context.Context, tenantID string, page Page) (RulesPage, error)

	// RetrieveEnabled returns the enabled rules for a provider sorted by
	// ascending priority.
	RetrieveEnabled(ctx context.Context, tenantID, providerID string) ([]Rule, error)

	// Update replaces a stored rule, honoring ifMatch.
	Update(ctx context.Context, tenantID string, rule Rule, ifMatch string) (Rule, error)

	// Delete removes a rule, honoring ifMatch.
	Delete(ctx context.Context, tenantID, id, ifMatch string) error
}

// Cache holds per-provider snapshots of enabled rules.
//
//go:generate mockery --name Cache --output=./mocks --filename cache.go --quiet --note "Copyright (c) IdRelay"
type Cache interface {
	// Save stores the enabled-rule snapshot for a (tenant, provider) pair.
	Save(ctx context.Context, tenantID, providerID string, rules []Rule) error

	// Get retrieves a cached snapshot, or repoerr.ErrNotFound on a miss.
	Get(ctx context.Context, tenantID, providerID string) ([]Rule, error)

	// Remove drops the snapshot for a (tenant, provider) pair.
	Remove(ctx context.Context, tenantID, providerID string) error
}
