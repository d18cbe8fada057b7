// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

// Package memory provides an in-memory store backend used by tests and
// single-node evaluation deployments.
package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"

	repoerr "github.com/idrelay/idrelay/pkg/errors/repository"
	"github.com/idrelay/idrelay/pkg/scim"
	"github.com/idrelay/idrelay/pkg/store"
)

var _ store.Store = (*memStore)(nil)

type partitionKey struct {
	container store.Container
	tenant    string
}

type memStore struct {
	mu    sync.RWMutex
	items map[partitionKey]map[string]scim.Document
}

// New returns an empty in-memory store.
func New() store.Store {
	return &memStore{items: make(map[partitionKey]map[string]scim.Document)}
}

func (ms *memStore) CreateItem(_ context.Context, container store.Container, pk string, doc scim.Document) error {
	if pk == "" {
		return repoerr.ErrMissingPartitionKey
	}
	id := store.DocumentID(doc)
	if id == "" {
		return repoerr.ErrMalformedEntity
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	key := partitionKey{container, pk}
	part := ms.items[key]
	if part == nil {
		part = make(map[string]scim.Document)
		ms.items[key] = part
	}

	if _, ok := part[id]; ok {
		return repoerr.ErrConflict
	}
	if natural := container.NaturalKey(); natural != "" {
		val := store.DocumentString(doc, natural)
		for _, existing := range part {
			if store.DocumentString(existing, natural) == val {
				return repoerr.ErrConflict
			}
		}
	}

	part[id] = deepCopy(doc)
	return nil
}

func (ms *memStore) ReadItem(_ context.Context, container store.Container, pk, id string) (scim.Document, error) {
	if pk == "" {
		return nil, repoerr.ErrMissingPartitionKey
	}

	ms.mu.RLock()
	defer ms.mu.RUnlock()

	doc, ok := ms.items[partitionKey{container, pk}][id]
	if !ok {
		return nil, repoerr.ErrNotFound
	}
	return deepCopy(doc), nil
}

func (ms *memStore) UpsertItem(_ context.Context, container store.Container, pk string, doc scim.Document, ifMatch string) error {
	if pk == "" {
		return repoerr.ErrMissingPartitionKey
	}
	id := store.DocumentID(doc)

	ms.mu.Lock()
	defer ms.mu.Unlock()

	part := ms.items[partitionKey{container, pk}]
	stored, ok := part[id]
	if !ok {
		return repoerr.ErrNotFound
	}
	if ifMatch != "" && !scim.VersionMatches(ifMatch, store.DocumentVersion(stored)) {
		return repoerr.ErrVersionConflict
	}
	if natural := container.NaturalKey(); natural != "" {
		val := store.DocumentString(doc, natural)
		for otherID, existing := range part {
			if otherID != id && store.DocumentString(existing, natural) == val {
				return repoerr.ErrConflict
			}
		}
	}

	part[id] = deepCopy(doc)
	return nil
}

func (ms *memStore) DeleteItem(_ context.Context, container store.Container, pk, id, ifMatch string) error {
	if pk == "" {
		return repoerr.ErrMissingPartitionKey
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	part := ms.items[partitionKey{container, pk}]
	stored, ok := part[id]
	if !ok {
		return repoerr.ErrNotFound
	}
	if ifMatch != "" && !scim.VersionMatches(ifMatch, store.DocumentVersion(stored)) {
		return repoerr.ErrVersionConflict
	}

	delete(part, id)
	return nil
}

func (ms *memStore) QueryItems(_ context.Context, container store.Container, pk string, pred store.Predicate, page store.Page) (store.ItemsPage, error) {
	if pk == "" {
		return store.ItemsPage{}, repoerr.ErrMissingPartitionKey
	}

	ms.mu.RLock()
	defer ms.mu.RUnlock()

	var matched []scim.Document
	for _, doc := range ms.items[partitionKey{container, pk}] {
		if pred == nil || evaluate(pred, doc) {
			matched = append(matched, deepCopy(doc))
		}
	}

	sortBy := page.SortBy
	if sortBy == "" {
		sortBy = "id"
	}
	sort.Slice(matched, func(i, j int) bool {
		less := compareField(matched[i], matched[j], sortBy)
		if page.Descending {
			return !less
		}
		return less
	})

	total := uint64(len(matched))
	start := page.StartIndex
	if start < 1 {
		start = 1
	}
	offset := start - 1
	if offset > len(matched) {
		offset = len(matched)
	}
	end := len(matched)
	if page.Count > 0 && offset+page.Count < end {
		end = offset + page.Count
	}

	return store.ItemsPage{
		Items:      matched[offset:end],
		Total:      total,
		StartIndex: start,
	}, nil
}

// evaluate applies the predicate tree directly to the document.
func evaluate(pred store.Predicate, doc scim.Document) bool {
	switch p := pred.(type) {
	case store.Cond:
		return evalCond(p, map[string]interface{}(doc))
	case store.And:
		for _, child := range p {
			if !evaluate(child, doc) {
				return false
			}
		}
		return true
	case store.Or:
		for _, child := range p {
			if evaluate(child, doc) {
				return true
			}
		}
		return false
	case store.Not:
		return !evaluate(p.Inner, doc)
	case store.Any:
		raw := fieldValue(map[string]interface{}(doc), p.Path)
		elems, ok := raw.([]interface{})
		if !ok {
			return false
		}
		for _, el := range elems {
			if elem, ok := el.(map[string]interface{}); ok {
				if evaluate(p.Pred, scim.Document(elem)) {
					return true
				}
			}
		}
		return false
	default:
		return false
	}
}

func evalCond(c store.Cond, doc map[string]interface{}) bool {
	actual := fieldValue(doc, c.Path)

	if c.Op == store.CondDefined {
		switch v := actual.(type) {
		case nil:
			return false
		case string:
			return v != ""
		case []interface{}:
			return len(v) > 0
		default:
			return true
		}
	}

	switch want := c.Value.(type) {
	case string:
		got, ok := actual.(string)
		if !ok {
			return false
		}
		if c.FoldCase {
			got, want = strings.ToLower(got), strings.ToLower(want)
		}
		switch c.Op {
		case store.CondEq:
			return got == want
		case store.CondNe:
			return got != want
		case store.CondContains:
			return strings.Contains(got, want)
		case store.CondHasPrefix:
			return strings.HasPrefix(got, want)
		case store.CondHasSuffix:
			return strings.HasSuffix(got, want)
		case store.CondGt:
			return got > want
		case store.CondGe:
			return got >= want
		case store.CondLt:
			return got < want
		case store.CondLe:
			return got <= want
		}
	case float64:
		got, ok := actual.(float64)
		if !ok {
			return false
		}
		switch c.Op {
		case store.CondEq:
			return got == want
		case store.CondNe:
			return got != want
		case store.CondGt:
			return got > want
		case store.CondGe:
			return got >= want
		case store.CondLt:
			return got < want
		case store.CondLe:
			return got <= want
		}
	case bool:
		got, ok := actual.(bool)
		if !ok {
			return false
		}
		switch c.Op {
		case store.CondEq:
			return got == want
		case store.CondNe:
			return got != want
		}
	case nil:
		switch c.Op {
		case store.CondEq:
			return actual == nil
		case store.CondNe:
			return actual != nil
		}
	}

	return false
}

func fieldValue(doc map[string]interface{}, path string) interface{} {
	var current interface{} = doc
	for _, seg := range strings.Split(path, ".") {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		current, ok = m[seg]
		if !ok {
			return nil
		}
	}
	return current
}

func compareField(a, b scim.Document, path string) bool {
	av := fieldValue(map[string]interface{}(a), path)
	bv := fieldValue(map[string]interface{}(b), path)
	as, aok := av.(string)
	bs, bok := bv.(string)
	if aok && bok {
		return as < bs
	}
	af, aok := av.(float64)
	bf, bok := bv.(float64)
	if aok && bok {
		return af < bf
	}
	return store.DocumentID(a) < store.DocumentID(b)
}

func deepCopy(doc scim.Document) scim.Document {
	data, err := json.Marshal(doc)
	if err != nil {
		return doc
	}
	var out scim.Document
	if err := json.Unmarshal(data, &out); err != nil {
		return doc
	}
	return out
}
