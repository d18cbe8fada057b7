// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package scim

import (
	"regexp"

	"github.com/idrelay/idrelay/pkg/apiutil"
)

// AttributeLengthCap is the default cap on named string attributes.
const AttributeLengthCap = 256

var (
	// Email format: a single @ separating non-empty local and domain
	// parts. Anything stricter rejects addresses providers do send,
	// short internal domains included.
	emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)
	// Loose E.164-ish phone check.
	phoneRegex = regexp.MustCompile(`^\+?(\d{1,3})?[\d\s().\-]+$`)
)

var addressTypes = map[string]bool{"work": true, "home": true, "other": true}

// ValidateUser checks the invariants enforced on every user write path:
// required userName, length caps, at most one primary per multi-valued
// attribute, email and phone formats, address types and, when the client
// supplied schemas, the canonical URN.
//
// userName uniqueness is tenant-scoped and case-sensitive; the comparison
// itself lives in the store's unique constraint.
func ValidateUser(u User) error {
	if u.UserName == "" {
		return apiutil.ErrMissingUserName
	}
	for _, s := range []string{u.UserName, u.DisplayName, u.NickName, u.Title, u.UserType, u.ExternalID} {
		if len(s) > AttributeLengthCap {
			return apiutil.ErrNameSize
		}
	}
	if len(u.Schemas) > 0 && !containsSchema(u.Schemas, SchemaUser) {
		return apiutil.ErrInvalidSchemas
	}

	for _, mv := range [][]MultiValued{u.Emails, u.PhoneNumbers, u.IMs, u.Photos, u.X509Certificates, u.Entitlements, u.Roles} {
		if err := validateSinglePrimary(mv); err != nil {
			return err
		}
	}
	if err := validateSingleAddressPrimary(u.Addresses); err != nil {
		return err
	}

	for _, e := range u.Emails {
		if e.Value != "" && !emailRegex.MatchString(e.Value) {
			return apiutil.ErrInvalidEmail
		}
	}
	for _, p := range u.PhoneNumbers {
		if p.Value != "" && !phoneRegex.MatchString(p.Value) {
			return apiutil.ErrInvalidPhone
		}
	}
	for _, a := range u.Addresses {
		if a.Type != "" && !addressTypes[a.Type] {
			return apiutil.ErrInvalidAddressType
		}
	}

	return nil
}

// ValidateGroup checks required displayName, length cap, member types and
// the member value set invariant.
func ValidateGroup(g Group) error {
	if g.DisplayName == "" {
		return apiutil.ErrMissingDisplayName
	}
	if len(g.DisplayName) > AttributeLengthCap || len(g.ExternalID) > AttributeLengthCap {
		return apiutil.ErrNameSize
	}
	if len(g.Schemas) > 0 && !containsSchema(g.Schemas, SchemaGroup) {
		return apiutil.ErrInvalidSchemas
	}

	seen := make(map[string]bool, len(g.Members))
	for _, m := range g.Members {
		if m.Type != "" && m.Type != MemberTypeUser && m.Type != MemberTypeGroup {
			return apiutil.ErrInvalidMemberType
		}
		if seen[m.Value] {
			return apiutil.ErrDuplicateMember
		}
		seen[m.Value] = true
	}

	return nil
}

func validateSinglePrimary(elems []MultiValued) error {
	primaries := 0
	for _, e := range elems {
		if e.Primary {
			primaries++
		}
	}
	if primaries > 1 {
		return apiutil.ErrMultiplePrimary
	}
	return nil
}

func validateSingleAddressPrimary(addrs []Address) error {
	primaries := 0
	for _, a := range addrs {
		if a.Primary {
			primaries++
		}
	}
	if primaries > 1 {
		return apiutil.ErrMultiplePrimary
	}
	return nil
}

func containsSchema(schemas []string, urn string) bool {
	for _, s := range schemas {
		if s == urn {
			return true
		}
	}
	return false
}
