// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

// Package scim holds the canonical SCIM 2.0 resource model (RFC 7643)
// persisted by the gateway, together with resource validation, weak ETag
// versioning and the PATCH engine (RFC 7644 §3.5.2).
package scim

import (
	"encoding/json"
	"time"
)

// Canonical schema URNs.
const (
	SchemaUser           = "urn:ietf:params:scim:schemas:core:2.0:User"
	SchemaGroup          = "urn:ietf:params:scim:schemas:core:2.0:Group"
	SchemaEnterpriseUser = "urn:ietf:params:scim:schemas:extension:enterprise:2.0:User"
	SchemaPatchOp        = "urn:ietf:params:scim:api:messages:2.0:PatchOp"
	SchemaListResponse   = "urn:ietf:params:scim:api:messages:2.0:ListResponse"
	SchemaError          = "urn:ietf:params:scim:api:messages:2.0:Error"
)

// Resource types.
const (
	ResourceTypeUser  = "User"
	ResourceTypeGroup = "Group"
)

// Member types.
const (
	MemberTypeUser  = "User"
	MemberTypeGroup = "Group"
)

// ContentType is the SCIM media type used on the HTTP surface.
const ContentType = "application/scim+json"

// Meta carries the common per-resource metadata block.
type Meta struct {
	ResourceType string    `json:"resourceType,omitempty"`
	Created      time.Time `json:"created,omitempty"`
	LastModified time.Time `json:"lastModified,omitempty"`
	Location     string    `json:"location,omitempty"`
	Version      string    `json:"version,omitempty"`
}

// Name represents a user's name components.
type Name struct {
	Formatted       string `json:"formatted,omitempty"`
	FamilyName      string `json:"familyName,omitempty"`
	GivenName       string `json:"givenName,omitempty"`
	MiddleName      string `json:"middleName,omitempty"`
	HonorificPrefix string `json:"honorificPrefix,omitempty"`
	HonorificSuffix string `json:"honorificSuffix,omitempty"`
}

// MultiValued is one element of a multi-valued simple attribute
// (emails, phoneNumbers, ims, photos, x509Certificates, entitlements, roles).
type MultiValued struct {
	Value   string `json:"value"`
	Display string `json:"display,omitempty"`
	Type    string `json:"type,omitempty"`
	Primary bool   `json:"primary,omitempty"`
}

// Address represents a physical mailing address.
type Address struct {
	Formatted     string `json:"formatted,omitempty"`
	StreetAddress string `json:"streetAddress,omitempty"`
	Locality      string `json:"locality,omitempty"`
	Region        string `json:"region,omitempty"`
	PostalCode    string `json:"postalCode,omitempty"`
	Country       string `json:"country,omitempty"`
	Type          string `json:"type,omitempty"`
	Primary       bool   `json:"primary,omitempty"`
}

// GroupRef is a read-only back-reference from a user to a group.
type GroupRef struct {
	Value   string `json:"value"`
	Ref     string `json:"$ref,omitempty"`
	Display string `json:"display,omitempty"`
	Type    string `json:"type,omitempty"`
}

// Manager is the enterprise extension manager reference.
type Manager struct {
	Value       string `json:"value,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

// EnterpriseUser is the enterprise user extension block.
type EnterpriseUser struct {
	EmployeeNumber string   `json:"employeeNumber,omitempty"`
	CostCenter     string   `json:"costCenter,omitempty"`
	Organization   string   `json:"organization,omitempty"`
	Division       string   `json:"division,omitempty"`
	Department     string   `json:"department,omitempty"`
	Manager        *Manager `json:"manager,omitempty"`
}

// User is the canonical SCIM user view persisted per tenant.
type User struct {
	ID                string          `json:"id,omitempty"`
	ExternalID        string          `json:"externalId,omitempty"`
	TenantID          string          `json:"tenantId,omitempty"`
	Schemas           []string        `json:"schemas,omitempty"`
	Meta              *Meta           `json:"meta,omitempty"`
	UserName          string          `json:"userName,omitempty"`
	Name              *Name           `json:"name,omitempty"`
	DisplayName       string          `json:"displayName,omitempty"`
	NickName          string          `json:"nickName,omitempty"`
	ProfileURL        string          `json:"profileUrl,omitempty"`
	Title             string          `json:"title,omitempty"`
	UserType          string          `json:"userType,omitempty"`
	PreferredLanguage string          `json:"preferredLanguage,omitempty"`
	Locale            string          `json:"locale,omitempty"`
	Timezone          string          `json:"timezone,omitempty"`
	Active            *bool           `json:"active,omitempty"`
	Emails            []MultiValued   `json:"emails,omitempty"`
	PhoneNumbers      []MultiValued   `json:"phoneNumbers,omitempty"`
	IMs               []MultiValued   `json:"ims,omitempty"`
	Photos            []MultiValued   `json:"photos,omitempty"`
	Addresses         []Address       `json:"addresses,omitempty"`
	X509Certificates  []MultiValued   `json:"x509Certificates,omitempty"`
	Entitlements      []MultiValued   `json:"entitlements,omitempty"`
	Roles             []MultiValued   `json:"roles,omitempty"`
	Groups            []GroupRef      `json:"groups,omitempty"`
	EnterpriseUser    *EnterpriseUser `json:"urn:ietf:params:scim:schemas:extension:enterprise:2.0:User,omitempty"`
}

// IsActive treats an absent active attribute as true.
func (u User) IsActive() bool {
	return u.Active == nil || *u.Active
}

// Member is one element of a group's members attribute.
type Member struct {
	Value   string `json:"value"`
	Ref     string `json:"$ref,omitempty"`
	Type    string `json:"type,omitempty"`
	Display string `json:"display,omitempty"`
}

// Group is the canonical SCIM group view persisted per tenant.
type Group struct {
	ID          string   `json:"id,omitempty"`
	ExternalID  string   `json:"externalId,omitempty"`
	TenantID    string   `json:"tenantId,omitempty"`
	Schemas     []string `json:"schemas,omitempty"`
	Meta        *Meta    `json:"meta,omitempty"`
	DisplayName string   `json:"displayName,omitempty"`
	Members     []Member `json:"members,omitempty"`
}

// Document is the JSON-shaped form of a resource as held by the store.
type Document map[string]interface{}

// ToDocument converts any resource to its document form via its JSON
// representation.
func ToDocument(resource interface{}) (Document, error) {
	data, err := json.Marshal(resource)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// FromDocument decodes a document into the given typed resource.
func FromDocument(doc Document, resource interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, resource)
}
