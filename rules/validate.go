// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/idrelay/idrelay/pkg/errors"
)

var (
	// ErrInvalidRegex indicates a source pattern that fails to compile.
	ErrInvalidRegex = errors.New("invalid regular expression")

	// ErrInvalidTemplate indicates a target mapping referencing capture
	// groups or hierarchy levels the source pattern does not provide.
	ErrInvalidTemplate = errors.New("invalid mapping template")

	errMissingProvider = errors.New("missing providerId")
	errMissingPattern  = errors.New("missing sourcePattern")
	errMissingTarget   = errors.New("missing targetType or targetMapping")
	errMissingPriority = errors.New("priority must be 1 or greater")
	errUnknownRuleType = errors.New("unknown rule type")
	errUnknownStrategy = errors.New("unknown conflict resolution strategy")
)

// TemplateRef matches ${N} and ${levelK} variables in mapping templates.
var TemplateRef = regexp.MustCompile(`\$\{(\d+|level\d+)\}`)

// Conditional source patterns accept an operator form; anything else is
// treated as a bare regex.
var conditionalOps = []string{"CONTAINS", "STARTS_WITH", "ENDS_WITH", "EQUALS", "MATCHES"}

// SplitCondition splits a conditional source pattern into its operator
// and operand. Bare patterns report the MATCHES operator.
func SplitCondition(pattern string) (op, operand string) {
	for _, candidate := range conditionalOps {
		if strings.HasPrefix(pattern, candidate+" ") {
			return candidate, strings.TrimSpace(strings.TrimPrefix(pattern, candidate+" "))
		}
	}

	return "MATCHES", pattern
}

// Validate checks a rule for structural soundness. It does not consult
// the store; uniqueness and referential checks happen at persistence.
func (r Rule) Validate() error {
	if r.ProviderID == "" {
		return errMissingProvider
	}
	if r.SourcePattern == "" {
		return errMissingPattern
	}
	if r.TargetType == "" || r.TargetMapping == "" {
		return errMissingTarget
	}
	if r.Priority < 1 {
		return errMissingPriority
	}
	switch r.RuleType {
	case RuleExact, RuleRegex, RuleHierarchical, RuleConditional:
	default:
		return errors.Wrap(errUnknownRuleType, errors.New(string(r.RuleType)))
	}
	switch r.ConflictResolution {
	case ResolveUnion, ResolveFirstMatch, ResolveHighestPrivilege, ResolveManualReview, ResolveError:
	default:
		return errors.Wrap(errUnknownStrategy, errors.New(string(r.ConflictResolution)))
	}

	switch r.RuleType {
	case RuleRegex:
		re, err := regexp.Compile(r.SourcePattern)
		if err != nil {
			return errors.Wrap(ErrInvalidRegex, err)
		}
		if err := checkCaptureRefs(r.TargetMapping, re.NumSubexp()); err != nil {
			return err
		}
	case RuleHierarchical:
		depth := len(strings.Split(r.SourcePattern, HierarchySeparator))
		if err := checkLevelRefs(r.TargetMapping, depth); err != nil {
			return err
		}
	case RuleConditional:
		if op, operand := SplitCondition(r.SourcePattern); op == "MATCHES" {
			if _, err := regexp.Compile("(?i)" + operand); err != nil {
				return errors.Wrap(ErrInvalidRegex, err)
			}
		}
	}

	return nil
}

// Warnings reports non-fatal rule quality issues surfaced to admins.
func (r Rule) Warnings() []string {
	var warnings []string
	if r.RuleType == RuleRegex {
		if !strings.HasPrefix(r.SourcePattern, "^") || !strings.HasSuffix(r.SourcePattern, "$") {
			warnings = append(warnings, "regex pattern is not anchored and may match substrings")
		}
	}
	if r.RuleType == RuleHierarchical {
		for _, ex := range r.Examples {
			got := len(strings.Split(ex.Input, HierarchySeparator))
			want := len(strings.Split(r.SourcePattern, HierarchySeparator))
			if got != want {
				warnings = append(warnings, fmt.Sprintf("example %q has depth %d, pattern expects %d", ex.Input, got, want))
			}
		}
	}
	if len(r.Examples) == 0 {
		warnings = append(warnings, "rule has no examples")
	}

	return warnings
}

// checkCaptureRefs validates ${N} references against the capture group
// count of a regex pattern. References are 1-based.
func checkCaptureRefs(template string, captures int) error {
	for _, match := range TemplateRef.FindAllStringSubmatch(template, -1) {
		ref := match[1]
		if strings.HasPrefix(ref, "level") {
			continue
		}
		n, err := strconv.Atoi(ref)
		if err != nil {
			continue
		}
		if n < 1 || n > captures {
			return errors.Wrap(ErrInvalidTemplate, fmt.Errorf("${%d} exceeds %d capture groups", n, captures))
		}
	}

	return nil
}

// checkLevelRefs validates ${levelK} and ${N} references against the
// hierarchy depth of the pattern. Levels are 0-based.
func checkLevelRefs(template string, depth int) error {
	for _, match := range TemplateRef.FindAllStringSubmatch(template, -1) {
		ref := strings.TrimPrefix(match[1], "level")
		n, err := strconv.Atoi(ref)
		if err != nil {
			continue
		}
		if n < 0 || n >= depth {
			return errors.Wrap(ErrInvalidTemplate, fmt.Errorf("${%s} exceeds hierarchy depth %d", match[1], depth))
		}
	}

	return nil
}
