// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package scim_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idrelay/idrelay/pkg/apiutil"
	"github.com/idrelay/idrelay/pkg/errors"
	"github.com/idrelay/idrelay/pkg/scim"
)

func TestValidateUser(t *testing.T) {
	cases := []struct {
		desc string
		user scim.User
		err  error
	}{
		{
			desc: "minimal user",
			user: scim.User{UserName: "jdoe"},
			err:  nil,
		},
		{
			desc: "missing userName",
			user: scim.User{},
			err:  apiutil.ErrMissingUserName,
		},
		{
			desc: "userName over the length cap",
			user: scim.User{UserName: strings.Repeat("a", scim.AttributeLengthCap+1)},
			err:  apiutil.ErrNameSize,
		},
		{
			desc: "schemas without the canonical URN",
			user: scim.User{UserName: "jdoe", Schemas: []string{scim.SchemaEnterpriseUser}},
			err:  apiutil.ErrInvalidSchemas,
		},
		{
			desc: "short internal domain",
			user: scim.User{
				UserName: "b",
				Emails:   []scim.MultiValued{{Value: "b@x"}},
			},
			err: nil,
		},
		{
			desc: "ordinary address",
			user: scim.User{
				UserName: "jdoe",
				Emails:   []scim.MultiValued{{Value: "jdoe@example.com", Type: "work"}},
			},
			err: nil,
		},
		{
			desc: "email without local part",
			user: scim.User{
				UserName: "jdoe",
				Emails:   []scim.MultiValued{{Value: "@example.com"}},
			},
			err: apiutil.ErrInvalidEmail,
		},
		{
			desc: "email without separator",
			user: scim.User{
				UserName: "jdoe",
				Emails:   []scim.MultiValued{{Value: "example.com"}},
			},
			err: apiutil.ErrInvalidEmail,
		},
		{
			desc: "email with whitespace",
			user: scim.User{
				UserName: "jdoe",
				Emails:   []scim.MultiValued{{Value: "j doe@example.com"}},
			},
			err: apiutil.ErrInvalidEmail,
		},
		{
			desc: "two primary emails",
			user: scim.User{
				UserName: "jdoe",
				Emails: []scim.MultiValued{
					{Value: "a@example.com", Primary: true},
					{Value: "b@example.com", Primary: true},
				},
			},
			err: apiutil.ErrMultiplePrimary,
		},
		{
			desc: "malformed phone number",
			user: scim.User{
				UserName:     "jdoe",
				PhoneNumbers: []scim.MultiValued{{Value: "call me"}},
			},
			err: apiutil.ErrInvalidPhone,
		},
		{
			desc: "unknown address type",
			user: scim.User{
				UserName:  "jdoe",
				Addresses: []scim.Address{{Type: "vacation"}},
			},
			err: apiutil.ErrInvalidAddressType,
		},
	}

	for _, tc := range cases {
		err := scim.ValidateUser(tc.user)
		assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected %v got %v", tc.desc, tc.err, err))
	}
}

func TestValidateGroup(t *testing.T) {
	cases := []struct {
		desc  string
		group scim.Group
		err   error
	}{
		{
			desc:  "minimal group",
			group: scim.Group{DisplayName: "Engineering"},
			err:   nil,
		},
		{
			desc:  "missing displayName",
			group: scim.Group{},
			err:   apiutil.ErrMissingDisplayName,
		},
		{
			desc: "unknown member type",
			group: scim.Group{
				DisplayName: "Engineering",
				Members:     []scim.Member{{Value: "user-1", Type: "Robot"}},
			},
			err: apiutil.ErrInvalidMemberType,
		},
		{
			desc: "duplicate member",
			group: scim.Group{
				DisplayName: "Engineering",
				Members: []scim.Member{
					{Value: "user-1", Type: scim.MemberTypeUser},
					{Value: "user-1", Type: scim.MemberTypeUser},
				},
			},
			err: apiutil.ErrDuplicateMember,
		},
	}

	for _, tc := range cases {
		err := scim.ValidateGroup(tc.group)
		assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected %v got %v", tc.desc, tc.err, err))
	}
}
