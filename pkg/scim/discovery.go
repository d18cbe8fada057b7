// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package scim

// Discovery document schema URNs.
const (
	SchemaServiceProviderConfig = "urn:ietf:params:scim:schemas:core:2.0:ServiceProviderConfig"
	SchemaResourceType          = "urn:ietf:params:scim:schemas:core:2.0:ResourceType"
	SchemaSchema                = "urn:ietf:params:scim:schemas:core:2.0:Schema"
)

// ServiceProviderConfig advertises the protocol features this service
// supports. Served on /scim/v2/ServiceProviderConfig.
type ServiceProviderConfig struct {
	Schemas               []string               `json:"schemas"`
	DocumentationURI      string                 `json:"documentationUri,omitempty"`
	Patch                 Feature                `json:"patch"`
	Bulk                  BulkFeature            `json:"bulk"`
	Filter                FilterFeature          `json:"filter"`
	ChangePassword        Feature                `json:"changePassword"`
	Sort                  Feature                `json:"sort"`
	ETag                  Feature                `json:"etag"`
	AuthenticationSchemes []AuthenticationScheme `json:"authenticationSchemes"`
}

// Feature indicates whether an optional protocol feature is supported.
type Feature struct {
	Supported bool `json:"supported"`
}

// BulkFeature describes bulk operation support.
type BulkFeature struct {
	Supported      bool `json:"supported"`
	MaxOperations  int  `json:"maxOperations"`
	MaxPayloadSize int  `json:"maxPayloadSize"`
}

// FilterFeature describes filtering support.
type FilterFeature struct {
	Supported  bool `json:"supported"`
	MaxResults int  `json:"maxResults"`
}

// AuthenticationScheme describes a supported authentication mechanism.
type AuthenticationScheme struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	SpecURI     string `json:"specUri,omitempty"`
	Primary     bool   `json:"primary,omitempty"`
}

// ResourceType describes an endpoint-addressable resource. Served on
// /scim/v2/ResourceTypes.
type ResourceType struct {
	Schemas          []string          `json:"schemas"`
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Endpoint         string            `json:"endpoint"`
	Description      string            `json:"description,omitempty"`
	Schema           string            `json:"schema"`
	SchemaExtensions []SchemaExtension `json:"schemaExtensions,omitempty"`
}

// SchemaExtension references an extension schema of a resource type.
type SchemaExtension struct {
	Schema   string `json:"schema"`
	Required bool   `json:"required"`
}

// SchemaDefinition describes the attributes of a resource schema.
// Served on /scim/v2/Schemas.
type SchemaDefinition struct {
	Schemas     []string    `json:"schemas"`
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Attributes  []Attribute `json:"attributes"`
}

// Attribute describes a single schema attribute.
type Attribute struct {
	Name            string      `json:"name"`
	Type            string      `json:"type"`
	SubAttributes   []Attribute `json:"subAttributes,omitempty"`
	MultiValued     bool        `json:"multiValued"`
	Description     string      `json:"description,omitempty"`
	Required        bool        `json:"required"`
	CaseExact       bool        `json:"caseExact"`
	Mutability      string      `json:"mutability"`
	Returned        string      `json:"returned"`
	Uniqueness      string      `json:"uniqueness,omitempty"`
	ReferenceTypes  []string    `json:"referenceTypes,omitempty"`
	CanonicalValues []string    `json:"canonicalValues,omitempty"`
}

// ProviderConfig returns the service provider configuration document.
// Bulk operations are not offered; filtering is bounded by maxResults
// so a single query cannot scan an entire tenant container.
func ProviderConfig(maxResults int) ServiceProviderConfig {
	return ServiceProviderConfig{
		Schemas: []string{SchemaServiceProviderConfig},
		Patch:   Feature{Supported: true},
		Bulk:    BulkFeature{Supported: false},
		Filter: FilterFeature{
			Supported:  true,
			MaxResults: maxResults,
		},
		ChangePassword: Feature{Supported: false},
		Sort:           Feature{Supported: true},
		ETag:           Feature{Supported: true},
		AuthenticationSchemes: []AuthenticationScheme{
			{
				Type:        "oauthbearertoken",
				Name:        "OAuth Bearer Token",
				Description: "Authentication scheme using the OAuth Bearer Token Standard",
				SpecURI:     "http://www.rfc-editor.org/info/rfc6750",
				Primary:     true,
			},
		},
	}
}

// ResourceTypes returns the resource type documents for Users and Groups.
func ResourceTypes() []ResourceType {
	return []ResourceType{
		{
			Schemas:     []string{SchemaResourceType},
			ID:          "User",
			Name:        "User",
			Endpoint:    "/Users",
			Description: "User Account",
			Schema:      SchemaUser,
			SchemaExtensions: []SchemaExtension{
				{Schema: SchemaEnterpriseUser, Required: false},
			},
		},
		{
			Schemas:     []string{SchemaResourceType},
			ID:          "Group",
			Name:        "Group",
			Endpoint:    "/Groups",
			Description: "Group",
			Schema:      SchemaGroup,
		},
	}
}

// SchemaDefinitions returns the attribute definitions for every schema
// this service serves.
func SchemaDefinitions() []SchemaDefinition {
	return []SchemaDefinition{userSchema(), enterpriseUserSchema(), groupSchema()}
}

func userSchema() SchemaDefinition {
	nameSub := []Attribute{
		{Name: "formatted", Type: "string", Mutability: "readWrite", Returned: "default"},
		{Name: "familyName", Type: "string", Mutability: "readWrite", Returned: "default"},
		{Name: "givenName", Type: "string", Mutability: "readWrite", Returned: "default"},
		{Name: "middleName", Type: "string", Mutability: "readWrite", Returned: "default"},
		{Name: "honorificPrefix", Type: "string", Mutability: "readWrite", Returned: "default"},
		{Name: "honorificSuffix", Type: "string", Mutability: "readWrite", Returned: "default"},
	}
	multiValuedSub := []Attribute{
		{Name: "value", Type: "string", Mutability: "readWrite", Returned: "default"},
		{Name: "display", Type: "string", Mutability: "readWrite", Returned: "default"},
		{Name: "type", Type: "string", Mutability: "readWrite", Returned: "default", CanonicalValues: []string{"work", "home", "other"}},
		{Name: "primary", Type: "boolean", Mutability: "readWrite", Returned: "default"},
	}

	return SchemaDefinition{
		Schemas:     []string{SchemaSchema},
		ID:          SchemaUser,
		Name:        "User",
		Description: "User Account",
		Attributes: []Attribute{
			{Name: "userName", Type: "string", Required: true, Mutability: "readWrite", Returned: "default", Uniqueness: "server"},
			{Name: "externalId", Type: "string", CaseExact: true, Mutability: "readWrite", Returned: "default"},
			{Name: "name", Type: "complex", Mutability: "readWrite", Returned: "default", SubAttributes: nameSub},
			{Name: "displayName", Type: "string", Mutability: "readWrite", Returned: "default"},
			{Name: "title", Type: "string", Mutability: "readWrite", Returned: "default"},
			{Name: "preferredLanguage", Type: "string", Mutability: "readWrite", Returned: "default"},
			{Name: "locale", Type: "string", Mutability: "readWrite", Returned: "default"},
			{Name: "timezone", Type: "string", Mutability: "readWrite", Returned: "default"},
			{Name: "active", Type: "boolean", Mutability: "readWrite", Returned: "default"},
			{Name: "emails", Type: "complex", MultiValued: true, Mutability: "readWrite", Returned: "default", SubAttributes: multiValuedSub},
			{Name: "phoneNumbers", Type: "complex", MultiValued: true, Mutability: "readWrite", Returned: "default", SubAttributes: multiValuedSub},
			{Name: "groups", Type: "complex", MultiValued: true, Mutability: "readOnly", Returned: "default", SubAttributes: []Attribute{
				{Name: "value", Type: "string", Mutability: "readOnly", Returned: "default"},
				{Name: "$ref", Type: "reference", Mutability: "readOnly", Returned: "default", ReferenceTypes: []string{"Group"}},
				{Name: "display", Type: "string", Mutability: "readOnly", Returned: "default"},
			}},
		},
	}
}

func enterpriseUserSchema() SchemaDefinition {
	return SchemaDefinition{
		Schemas:     []string{SchemaSchema},
		ID:          SchemaEnterpriseUser,
		Name:        "EnterpriseUser",
		Description: "Enterprise User",
		Attributes: []Attribute{
			{Name: "employeeNumber", Type: "string", Mutability: "readWrite", Returned: "default"},
			{Name: "costCenter", Type: "string", Mutability: "readWrite", Returned: "default"},
			{Name: "organization", Type: "string", Mutability: "readWrite", Returned: "default"},
			{Name: "division", Type: "string", Mutability: "readWrite", Returned: "default"},
			{Name: "department", Type: "string", Mutability: "readWrite", Returned: "default"},
			{Name: "manager", Type: "complex", Mutability: "readWrite", Returned: "default", SubAttributes: []Attribute{
				{Name: "value", Type: "string", Mutability: "readWrite", Returned: "default"},
				{Name: "$ref", Type: "reference", Mutability: "readWrite", Returned: "default", ReferenceTypes: []string{"User"}},
				{Name: "displayName", Type: "string", Mutability: "readOnly", Returned: "default"},
			}},
		},
	}
}

func groupSchema() SchemaDefinition {
	return SchemaDefinition{
		Schemas:     []string{SchemaSchema},
		ID:          SchemaGroup,
		Name:        "Group",
		Description: "Group",
		Attributes: []Attribute{
			{Name: "displayName", Type: "string", Required: true, Mutability: "readWrite", Returned: "default", Uniqueness: "server"},
			{Name: "externalId", Type: "string", CaseExact: true, Mutability: "readWrite", Returned: "default"},
			{Name: "members", Type: "complex", MultiValued: true, Mutability: "readWrite", Returned: "default", SubAttributes: []Attribute{
				{Name: "value", Type: "string", Mutability: "immutable", Returned: "default"},
				{Name: "$ref", Type: "reference", Mutability: "immutable", Returned: "default", ReferenceTypes: []string{"User", "Group"}},
				{Name: "type", Type: "string", Mutability: "immutable", Returned: "default", CanonicalValues: []string{"User", "Group"}},
				{Name: "display", Type: "string", Mutability: "immutable", Returned: "default"},
			}},
		},
	}
}
