// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"strings"

	"github.com/idrelay/idrelay/pkg/errors"
	svcerr "github.com/idrelay/idrelay/pkg/errors/service"
	"github.com/idrelay/idrelay/pkg/scim/filter"
)

// attribute maps a SCIM filter path onto a store field. Array attributes
// translate to array-any-match; foldCase marks attributes compared
// case-insensitively (userName and emails.value).
type attribute struct {
	field     string
	arrayPath string // non-empty for elements of a multi-valued attribute
	elemField string
	foldCase  bool
}

// attributeTable is the documented SCIM-path to store-field map. Unknown
// paths are rejected, never silently dropped.
var attributeTable = map[string]attribute{
	"id":                 {field: "id"},
	"externalid":         {field: "externalId"},
	"username":           {field: "userName", foldCase: true},
	"displayname":        {field: "displayName"},
	"active":             {field: "active"},
	"name.familyname":    {field: "name.familyName"},
	"name.givenname":     {field: "name.givenName"},
	"meta.created":       {field: "meta.created"},
	"meta.lastmodified":  {field: "meta.lastModified"},
	"meta.resourcetype":  {field: "meta.resourceType"},
	"emails.value":       {arrayPath: "emails", elemField: "value", foldCase: true},
	"emails.type":        {arrayPath: "emails", elemField: "type"},
	"phonenumbers.value": {arrayPath: "phoneNumbers", elemField: "value"},
	"members.value":      {arrayPath: "members", elemField: "value"},
	"members.type":       {arrayPath: "members", elemField: "type"},
	"members.display":    {arrayPath: "members", elemField: "display"},
}

// arrayAttributes names the multi-valued attributes value selectors may
// target, mapped to their store paths.
var arrayAttributes = map[string]string{
	"emails":           "emails",
	"phonenumbers":     "phoneNumbers",
	"ims":              "ims",
	"photos":           "photos",
	"addresses":        "addresses",
	"x509certificates": "x509Certificates",
	"entitlements":     "entitlements",
	"roles":            "roles",
	"members":          "members",
}

var comparisonOps = map[filter.Operator]CondOp{
	filter.OpEq: CondEq,
	filter.OpNe: CondNe,
	filter.OpCo: CondContains,
	filter.OpSw: CondHasPrefix,
	filter.OpEw: CondHasSuffix,
	filter.OpGt: CondGt,
	filter.OpGe: CondGe,
	filter.OpLt: CondLt,
	filter.OpLe: CondLe,
}

// Translate compiles a parsed filter into the store predicate tree.
// Tenant scoping is not part of the predicate: the Store API carries the
// partition key separately and backends refuse queries without one.
func Translate(expr filter.Expr) (Predicate, error) {
	switch e := expr.(type) {
	case filter.Comparison:
		return translateComparison(e)
	case filter.Presence:
		return translatePath(e.Path, CondDefined, nil)
	case filter.Logical:
		left, err := Translate(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := Translate(e.Right)
		if err != nil {
			return nil, err
		}
		if e.Op == filter.LogicalAnd {
			return And{left, right}, nil
		}
		return Or{left, right}, nil
	case filter.Not:
		inner, err := Translate(e.Inner)
		if err != nil {
			return nil, err
		}
		return Not{Inner: inner}, nil
	case filter.ValuePath:
		return translateValuePath(e)
	default:
		return nil, svcerr.ErrInvalidFilter
	}
}

func translateComparison(c filter.Comparison) (Predicate, error) {
	op, ok := comparisonOps[c.Op]
	if !ok {
		return nil, svcerr.ErrInvalidFilter
	}
	return translatePath(c.Path, op, c.Value.Interface())
}

func translatePath(path filter.Path, op CondOp, value interface{}) (Predicate, error) {
	key := strings.ToLower(path.String())
	attr, ok := attributeTable[key]
	if !ok {
		return nil, errors.Wrap(svcerr.ErrInvalidFilter, errors.New("unknown attribute "+path.String()))
	}

	if attr.arrayPath != "" {
		return Any{
			Path: attr.arrayPath,
			Pred: Cond{Path: attr.elemField, Op: op, Value: value, FoldCase: attr.foldCase},
		}, nil
	}

	return Cond{Path: attr.field, Op: op, Value: value, FoldCase: attr.foldCase}, nil
}

func translateValuePath(vp filter.ValuePath) (Predicate, error) {
	arrayPath, ok := arrayAttributes[strings.ToLower(vp.Path.String())]
	if !ok {
		return nil, errors.Wrap(svcerr.ErrInvalidFilter, errors.New("value selector on unknown attribute "+vp.Path.String()))
	}

	pred, err := translateElem(vp.Predicate)
	if err != nil {
		return nil, err
	}

	// A trailing sub-attribute narrows the match to elements carrying
	// it: emails[type eq "work"].value selects work emails with a value.
	if vp.Sub != "" {
		pred = And{pred, Cond{Path: vp.Sub, Op: CondDefined}}
	}

	return Any{Path: arrayPath, Pred: pred}, nil
}

// translateElem compiles a selector sub-expression scoped to one array
// element: paths resolve against the element's own fields.
func translateElem(expr filter.Expr) (Predicate, error) {
	switch e := expr.(type) {
	case filter.Comparison:
		op, ok := comparisonOps[e.Op]
		if !ok {
			return nil, svcerr.ErrInvalidFilter
		}
		return Cond{Path: e.Path.String(), Op: op, Value: e.Value.Interface()}, nil
	case filter.Presence:
		return Cond{Path: e.Path.String(), Op: CondDefined}, nil
	case filter.Logical:
		left, err := translateElem(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := translateElem(e.Right)
		if err != nil {
			return nil, err
		}
		if e.Op == filter.LogicalAnd {
			return And{left, right}, nil
		}
		return Or{left, right}, nil
	case filter.Not:
		inner, err := translateElem(e.Inner)
		if err != nil {
			return nil, err
		}
		return Not{Inner: inner}, nil
	default:
		return nil, errors.Wrap(svcerr.ErrInvalidFilter, errors.New("nested value selectors are not supported"))
	}
}
