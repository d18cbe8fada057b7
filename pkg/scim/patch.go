// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package scim

import (
	"encoding/json"
	"strings"

	"github.com/idrelay/idrelay/pkg/errors"
	"github.com/idrelay/idrelay/pkg/scim/filter"
)

// PATCH operation names.
const (
	PatchAdd     = "add"
	PatchReplace = "replace"
	PatchRemove  = "remove"
)

// Patch errors surfaced to the repository layer.
var (
	// ErrPatchPath indicates a path that does not parse or resolve.
	ErrPatchPath = errors.New("unresolvable patch path")

	// ErrPatchValue indicates a value whose shape does not fit the target.
	ErrPatchValue = errors.New("malformed patch value")

	// ErrReadOnlyPath indicates an operation on a server-controlled attribute.
	ErrReadOnlyPath = errors.New("attribute is read-only")

	// ErrNoTarget indicates a replace selector that matched no element.
	ErrNoTarget = errors.New("patch path matched no target")
)

// Kinds of the PATCH value union.
type PatchValueKind uint8

const (
	PatchValueNone PatchValueKind = iota
	PatchValuePrimitive
	PatchValueObject
	PatchValueList
)

// PatchValue is the closed union of value shapes a PATCH operation may
// carry: a primitive, a shaped object, or a list of shaped objects. It is
// parsed at the HTTP edge so the repository never sees raw JSON.
type PatchValue struct {
	Kind PatchValueKind
	Prim interface{}
	Obj  Document
	List []Document
}

// ParsePatchValue decodes a raw JSON value into the union.
func ParsePatchValue(raw json.RawMessage) (PatchValue, error) {
	if len(raw) == 0 {
		return PatchValue{Kind: PatchValueNone}, nil
	}

	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return PatchValue{}, errors.Wrap(ErrPatchValue, err)
	}

	switch v := generic.(type) {
	case nil:
		return PatchValue{Kind: PatchValueNone}, nil
	case map[string]interface{}:
		return PatchValue{Kind: PatchValueObject, Obj: Document(v)}, nil
	case []interface{}:
		list := make([]Document, 0, len(v))
		for _, el := range v {
			obj, ok := el.(map[string]interface{})
			if !ok {
				return PatchValue{}, ErrPatchValue
			}
			list = append(list, Document(obj))
		}
		return PatchValue{Kind: PatchValueList, List: list}, nil
	default:
		return PatchValue{Kind: PatchValuePrimitive, Prim: v}, nil
	}
}

// PatchOperation is one element of a SCIM PATCH request.
type PatchOperation struct {
	Op    string
	Path  string
	Value PatchValue
}

// patchPath is the parsed form of a PATCH path:
// attr, attr.sub, attr[selector], attr[selector].sub, optionally
// URN-prefixed for extension attributes.
type patchPath struct {
	urn      string
	segments []string
	selector filter.Expr
	sub      []string
}

func parsePatchPath(path string) (patchPath, error) {
	var pp patchPath

	rest := path
	if open := strings.Index(path, "["); open >= 0 {
		closing := strings.LastIndex(path, "]")
		if closing < open {
			return pp, errors.Wrap(ErrPatchPath, errors.New("unbalanced value selector"))
		}
		pred, err := filter.ParseValueFilter(path[open+1 : closing])
		if err != nil {
			return pp, errors.Wrap(ErrPatchPath, err)
		}
		pp.selector = pred
		if after := path[closing+1:]; after != "" {
			if !strings.HasPrefix(after, ".") || len(after) == 1 {
				return pp, errors.Wrap(ErrPatchPath, errors.New("malformed sub-attribute"))
			}
			pp.sub = strings.Split(after[1:], ".")
		}
		rest = path[:open]
	}

	if idx := strings.LastIndex(rest, ":"); idx >= 0 {
		pp.urn, rest = rest[:idx], rest[idx+1:]
	}
	if rest == "" {
		return pp, errors.Wrap(ErrPatchPath, errors.New("missing attribute name"))
	}
	pp.segments = strings.Split(rest, ".")
	for _, seg := range pp.segments {
		if seg == "" {
			return pp, errors.Wrap(ErrPatchPath, errors.New("malformed attribute path"))
		}
	}

	switch strings.ToLower(pp.segments[0]) {
	case "id", "meta", "groups":
		return pp, ErrReadOnlyPath
	}

	return pp, nil
}

// ApplyPatch applies the ordered operations to the document in place.
// The caller materializes the resource, applies the whole batch, then
// re-validates and commits; any returned error aborts the batch.
func ApplyPatch(doc Document, ops []PatchOperation) error {
	for _, op := range ops {
		var err error
		switch strings.ToLower(op.Op) {
		case PatchAdd:
			err = applyAdd(doc, op)
		case PatchReplace:
			err = applyReplace(doc, op)
		case PatchRemove:
			err = applyRemove(doc, op)
		default:
			err = errors.Wrap(ErrPatchValue, errors.New("unknown patch op "+op.Op))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func applyAdd(doc Document, op PatchOperation) error {
	if op.Path == "" {
		// RFC 7644 full form: the value is a resource-shaped object
		// merged attribute by attribute.
		if op.Value.Kind != PatchValueObject {
			return ErrPatchValue
		}
		for k, v := range op.Value.Obj {
			if err := addValue(doc, []string{k}, rawToPatchValue(v)); err != nil {
				return err
			}
		}
		return nil
	}

	pp, err := parsePatchPath(op.Path)
	if err != nil {
		return err
	}

	target := targetDocument(doc, pp.urn, true)
	if pp.selector != nil {
		return addWithSelector(target, pp, op.Value)
	}
	return addValue(target, pp.segments, op.Value)
}

func addValue(doc Document, segments []string, val PatchValue) error {
	parent, key, err := navigate(doc, segments, true)
	if err != nil {
		return err
	}

	existing, exists := lookupKey(parent, key)
	switch val.Kind {
	case PatchValueList:
		list, _ := existing.([]interface{})
		for _, el := range val.List {
			list = appendUnique(list, map[string]interface{}(el))
		}
		setKey(parent, key, list)
	case PatchValueObject:
		if list, ok := existing.([]interface{}); ok && exists {
			setKey(parent, key, appendUnique(list, map[string]interface{}(val.Obj)))
			return nil
		}
		if obj, ok := existing.(map[string]interface{}); ok && exists {
			for k, v := range val.Obj {
				obj[k] = v
			}
			return nil
		}
		setKey(parent, key, map[string]interface{}(val.Obj))
	case PatchValuePrimitive:
		if list, ok := existing.([]interface{}); ok && exists {
			setKey(parent, key, appendUnique(list, val.Prim))
			return nil
		}
		setKey(parent, key, val.Prim)
	default:
		return ErrPatchValue
	}
	return nil
}

func addWithSelector(doc Document, pp patchPath, val PatchValue) error {
	list, parent, key, err := selectList(doc, pp)
	if err != nil {
		return err
	}

	matched := false
	for _, el := range list {
		elem, ok := el.(map[string]interface{})
		if !ok || !filter.Matches(pp.selector, elem) {
			continue
		}
		matched = true
		if len(pp.sub) > 0 {
			if err := setSub(elem, pp.sub, val); err != nil {
				return err
			}
			continue
		}
		if val.Kind != PatchValueObject {
			return ErrPatchValue
		}
		for k, v := range val.Obj {
			elem[k] = v
		}
	}

	// Upsert: a selector that matched nothing appends the new element.
	if !matched {
		if val.Kind != PatchValueObject {
			return ErrNoTarget
		}
		setKey(parent, key, appendUnique(list, map[string]interface{}(val.Obj)))
	}
	return nil
}

func applyReplace(doc Document, op PatchOperation) error {
	if op.Path == "" {
		if op.Value.Kind != PatchValueObject {
			return ErrPatchValue
		}
		for k, v := range op.Value.Obj {
			switch strings.ToLower(k) {
			case "id", "meta", "groups", "schemas":
				continue
			}
			setKey(doc, k, v)
		}
		return nil
	}

	pp, err := parsePatchPath(op.Path)
	if err != nil {
		return err
	}

	target := targetDocument(doc, pp.urn, true)
	if pp.selector != nil {
		return replaceWithSelector(target, pp, op.Value)
	}

	parent, key, err := navigate(target, pp.segments, true)
	if err != nil {
		return err
	}
	setKey(parent, key, patchValueToRaw(op.Value))
	return nil
}

func replaceWithSelector(doc Document, pp patchPath, val PatchValue) error {
	list, _, _, err := selectList(doc, pp)
	if err != nil {
		return err
	}

	matched := false
	for i, el := range list {
		elem, ok := el.(map[string]interface{})
		if !ok || !filter.Matches(pp.selector, elem) {
			continue
		}
		matched = true
		if len(pp.sub) > 0 {
			if err := setSub(elem, pp.sub, val); err != nil {
				return err
			}
			continue
		}
		if val.Kind != PatchValueObject {
			return ErrPatchValue
		}
		list[i] = map[string]interface{}(val.Obj)
	}

	if !matched {
		return ErrNoTarget
	}
	return nil
}

func applyRemove(doc Document, op PatchOperation) error {
	if op.Path == "" {
		// Path-less remove strips whatever the shaped value describes.
		if op.Value.Kind != PatchValueObject {
			return errors.Wrap(ErrPatchValue, errors.New("remove without path requires a shaped value"))
		}
		for k, v := range op.Value.Obj {
			elems, ok := v.([]interface{})
			if !ok {
				deleteKey(doc, k)
				continue
			}
			existing, exists := lookupKey(doc, k)
			list, ok := existing.([]interface{})
			if !exists || !ok {
				continue
			}
			setKey(doc, k, removeListed(list, elems))
		}
		return nil
	}

	pp, err := parsePatchPath(op.Path)
	if err != nil {
		return err
	}

	target := targetDocument(doc, pp.urn, false)
	if target == nil {
		return nil
	}

	if pp.selector == nil {
		parent, key, err := navigate(target, pp.segments, false)
		if err != nil || parent == nil {
			return err
		}
		// A remove without selector clears the whole attribute, including
		// primary-bearing arrays.
		deleteKey(parent, key)
		return nil
	}

	list, parent, key, err := selectList(target, pp)
	if err != nil {
		return err
	}

	if len(pp.sub) > 0 {
		for _, el := range list {
			elem, ok := el.(map[string]interface{})
			if !ok || !filter.Matches(pp.selector, elem) {
				continue
			}
			subParent, subKey, err := navigate(Document(elem), pp.sub, false)
			if err != nil || subParent == nil {
				continue
			}
			deleteKey(subParent, subKey)
		}
		return nil
	}

	var kept []interface{}
	for _, el := range list {
		if elem, ok := el.(map[string]interface{}); ok && filter.Matches(pp.selector, elem) {
			continue
		}
		kept = append(kept, el)
	}
	if len(kept) == 0 {
		deleteKey(parent, key)
		return nil
	}
	setKey(parent, key, kept)
	return nil
}

// targetDocument resolves the document that URN-prefixed paths operate
// on: extension attributes live under the extension URN key.
func targetDocument(doc Document, urn string, create bool) Document {
	if urn == "" || strings.EqualFold(urn, SchemaUser) || strings.EqualFold(urn, SchemaGroup) {
		return doc
	}
	existing, ok := lookupKey(doc, urn)
	if nested, isMap := existing.(map[string]interface{}); ok && isMap {
		return Document(nested)
	}
	if !create {
		return nil
	}
	nested := map[string]interface{}{}
	setKey(doc, urn, nested)
	return Document(nested)
}

// navigate resolves all but the last segment, returning the parent map
// and the final key. Missing intermediates are created on demand.
func navigate(doc Document, segments []string, create bool) (map[string]interface{}, string, error) {
	parent := map[string]interface{}(doc)
	for _, seg := range segments[:len(segments)-1] {
		existing, ok := lookupKey(Document(parent), seg)
		if nested, isMap := existing.(map[string]interface{}); ok && isMap {
			parent = nested
			continue
		}
		if !create {
			return nil, "", nil
		}
		nested := map[string]interface{}{}
		setKey(Document(parent), seg, nested)
		parent = nested
	}
	return parent, segments[len(segments)-1], nil
}

func selectList(doc Document, pp patchPath) ([]interface{}, map[string]interface{}, string, error) {
	parent, key, err := navigate(doc, pp.segments, true)
	if err != nil {
		return nil, nil, "", err
	}
	existing, _ := lookupKey(Document(parent), key)
	list, ok := existing.([]interface{})
	if !ok && existing != nil {
		return nil, nil, "", errors.Wrap(ErrPatchPath, errors.New("value selector on single-valued attribute"))
	}
	return list, parent, key, nil
}

func setSub(elem map[string]interface{}, sub []string, val PatchValue) error {
	parent, key, err := navigate(Document(elem), sub, true)
	if err != nil {
		return err
	}
	setKey(Document(parent), key, patchValueToRaw(val))
	return nil
}

// appendUnique implements the idempotent set semantics of multi-valued
// adds: complex values dedupe on their value field, primitives on
// themselves.
func appendUnique(list []interface{}, el interface{}) []interface{} {
	if obj, ok := el.(map[string]interface{}); ok {
		v, hasValue := lookupKey(Document(obj), "value")
		if hasValue {
			for _, existing := range list {
				if em, ok := existing.(map[string]interface{}); ok {
					if ev, ok := lookupKey(Document(em), "value"); ok && ev == v {
						return list
					}
				}
			}
		}
		return append(list, el)
	}
	for _, existing := range list {
		if existing == el {
			return list
		}
	}
	return append(list, el)
}

func removeListed(list []interface{}, remove []interface{}) []interface{} {
	drop := make(map[interface{}]bool)
	for _, r := range remove {
		if obj, ok := r.(map[string]interface{}); ok {
			if v, ok := lookupKey(Document(obj), "value"); ok {
				drop[v] = true
			}
		}
	}
	var kept []interface{}
	for _, el := range list {
		if obj, ok := el.(map[string]interface{}); ok {
			if v, ok := lookupKey(Document(obj), "value"); ok && drop[v] {
				continue
			}
		}
		kept = append(kept, el)
	}
	return kept
}

func rawToPatchValue(v interface{}) PatchValue {
	switch val := v.(type) {
	case map[string]interface{}:
		return PatchValue{Kind: PatchValueObject, Obj: Document(val)}
	case []interface{}:
		list := make([]Document, 0, len(val))
		for _, el := range val {
			if obj, ok := el.(map[string]interface{}); ok {
				list = append(list, Document(obj))
			}
		}
		return PatchValue{Kind: PatchValueList, List: list}
	default:
		return PatchValue{Kind: PatchValuePrimitive, Prim: v}
	}
}

func patchValueToRaw(val PatchValue) interface{} {
	switch val.Kind {
	case PatchValueObject:
		return map[string]interface{}(val.Obj)
	case PatchValueList:
		list := make([]interface{}, 0, len(val.List))
		for _, el := range val.List {
			list = append(list, map[string]interface{}(el))
		}
		return list
	case PatchValuePrimitive:
		return val.Prim
	default:
		return nil
	}
}

// Case-insensitive document key helpers. Writes reuse the stored key when
// one matches to avoid duplicating attributes that differ only by case.

func lookupKey(doc Document, key string) (interface{}, bool) {
	if v, ok := doc[key]; ok {
		return v, true
	}
	for k, v := range doc {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

func setKey(doc Document, key string, val interface{}) {
	if _, ok := doc[key]; ok {
		doc[key] = val
		return
	}
	for k := range doc {
		if strings.EqualFold(k, key) {
			doc[k] = val
			return
		}
	}
	doc[key] = val
}

func deleteKey(doc map[string]interface{}, key string) {
	if _, ok := doc[key]; ok {
		delete(doc, key)
		return
	}
	for k := range doc {
		if strings.EqualFold(k, key) {
			delete(doc, k)
			return
		}
	}
}
