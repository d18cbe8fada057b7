// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

// Package mongodb implements the document store on MongoDB collections,
// one collection per container.
package mongodb

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/idrelay/idrelay/pkg/errors"
	repoerr "github.com/idrelay/idrelay/pkg/errors/repository"
	"github.com/idrelay/idrelay/pkg/scim"
	"github.com/idrelay/idrelay/pkg/store"
)

var _ store.Store = (*mongoStore)(nil)

type mongoStore struct {
	db *mongo.Database
}

// record is the stored shape: scoping fields beside the document so the
// document's own keys never collide with them.
type record struct {
	TenantID   string        `bson:"tenantId"`
	ID         string        `bson:"id"`
	NaturalKey string        `bson:"naturalKey,omitempty"`
	Doc        scim.Document `bson:"doc"`
}

// NewStore instantiates a MongoDB-backed document store.
func NewStore(db *mongo.Database) store.Store {
	return &mongoStore{db: db}
}

// EnsureIndexes creates the per-container scoping and uniqueness indexes.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, container := range []store.Container{
		store.ContainerUsers, store.ContainerGroups, store.ContainerSyncState,
		store.ContainerRules, store.ContainerAudit,
	} {
		coll := db.Collection(string(container))
		models := []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "tenantId", Value: 1}, {Key: "id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		}
		if container.NaturalKey() != "" {
			models = append(models, mongo.IndexModel{
				Keys: bson.D{{Key: "tenantId", Value: 1}, {Key: "naturalKey", Value: 1}},
				Options: options.Index().SetUnique(true).SetPartialFilterExpression(
					bson.M{"naturalKey": bson.M{"$exists": true, "$gt": ""}},
				),
			})
		}
		if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}

func (ms *mongoStore) CreateItem(ctx context.Context, container store.Container, pk string, doc scim.Document) error {
	if pk == "" {
		return repoerr.ErrMissingPartitionKey
	}
	id := store.DocumentID(doc)
	if id == "" {
		return repoerr.ErrMalformedEntity
	}

	rec := record{
		TenantID:   pk,
		ID:         id,
		NaturalKey: naturalKey(container, doc),
		Doc:        doc,
	}
	if _, err := ms.db.Collection(string(container)).InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repoerr.ErrConflict
		}
		return errors.Wrap(repoerr.ErrCreateEntity, err)
	}
	return nil
}

func (ms *mongoStore) ReadItem(ctx context.Context, container store.Container, pk, id string) (scim.Document, error) {
	if pk == "" {
		return nil, repoerr.ErrMissingPartitionKey
	}

	var rec record
	err := ms.db.Collection(string(container)).
		FindOne(ctx, bson.M{"tenantId": pk, "id": id}).Decode(&rec)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repoerr.ErrNotFound
		}
		return nil, errors.Wrap(repoerr.ErrViewEntity, err)
	}
	return rec.Doc, nil
}

func (ms *mongoStore) UpsertItem(ctx context.Context, container store.Container, pk string, doc scim.Document, ifMatch string) error {
	if pk == "" {
		return repoerr.ErrMissingPartitionKey
	}
	id := store.DocumentID(doc)

	coll := ms.db.Collection(string(container))
	var stored record
	if err := coll.FindOne(ctx, bson.M{"tenantId": pk, "id": id}).Decode(&stored); err != nil {
		if err == mongo.ErrNoDocuments {
			return repoerr.ErrNotFound
		}
		return errors.Wrap(repoerr.ErrUpdateEntity, err)
	}
	storedVersion := store.DocumentVersion(stored.Doc)
	if ifMatch != "" && !scim.VersionMatches(ifMatch, storedVersion) {
		return repoerr.ErrVersionConflict
	}

	rec := record{
		TenantID:   pk,
		ID:         id,
		NaturalKey: naturalKey(container, doc),
		Doc:        doc,
	}
	// The stored version is part of the replace filter so a concurrent
	// writer loses instead of being silently overwritten.
	res, err := coll.ReplaceOne(ctx, bson.M{
		"tenantId":         pk,
		"id":               id,
		"doc.meta.version": storedVersion,
	}, rec)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repoerr.ErrConflict
		}
		return errors.Wrap(repoerr.ErrUpdateEntity, err)
	}
	if res.MatchedCount == 0 {
		return repoerr.ErrVersionConflict
	}
	return nil
}

func (ms *mongoStore) DeleteItem(ctx context.Context, container store.Container, pk, id, ifMatch string) error {
	if pk == "" {
		return repoerr.ErrMissingPartitionKey
	}

	coll := ms.db.Collection(string(container))
	var stored record
	if err := coll.FindOne(ctx, bson.M{"tenantId": pk, "id": id}).Decode(&stored); err != nil {
		if err == mongo.ErrNoDocuments {
			return repoerr.ErrNotFound
		}
		return errors.Wrap(repoerr.ErrRemoveEntity, err)
	}
	if ifMatch != "" && !scim.VersionMatches(ifMatch, store.DocumentVersion(stored.Doc)) {
		return repoerr.ErrVersionConflict
	}

	if _, err := coll.DeleteOne(ctx, bson.M{"tenantId": pk, "id": id}); err != nil {
		return errors.Wrap(repoerr.ErrRemoveEntity, err)
	}
	return nil
}

func (ms *mongoStore) QueryItems(ctx context.Context, container store.Container, pk string, pred store.Predicate, page store.Page) (store.ItemsPage, error) {
	if pk == "" {
		return store.ItemsPage{}, repoerr.ErrMissingPartitionKey
	}

	filter := bson.M{"tenantId": pk}
	if pred != nil {
		clause, err := renderPredicate(pred, "doc.")
		if err != nil {
			return store.ItemsPage{}, err
		}
		filter = bson.M{"$and": bson.A{filter, clause}}
	}

	coll := ms.db.Collection(string(container))
	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return store.ItemsPage{}, errors.Wrap(repoerr.ErrViewEntity, err)
	}

	start := page.StartIndex
	if start < 1 {
		start = 1
	}
	sortBy := "doc.id"
	if page.SortBy != "" {
		sortBy = "doc." + page.SortBy
	}
	dir := 1
	if page.Descending {
		dir = -1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: sortBy, Value: dir}}).
		SetSkip(int64(start - 1))
	if page.Count > 0 {
		opts = opts.SetLimit(int64(page.Count))
	}

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return store.ItemsPage{}, errors.Wrap(repoerr.ErrViewEntity, err)
	}
	defer cursor.Close(ctx)

	var items []scim.Document
	for cursor.Next(ctx) {
		var rec record
		if err := cursor.Decode(&rec); err != nil {
			return store.ItemsPage{}, errors.Wrap(repoerr.ErrViewEntity, err)
		}
		items = append(items, rec.Doc)
	}
	if err := cursor.Err(); err != nil {
		return store.ItemsPage{}, errors.Wrap(repoerr.ErrViewEntity, err)
	}

	return store.ItemsPage{Items: items, Total: uint64(total), StartIndex: start}, nil
}

func naturalKey(container store.Container, doc scim.Document) string {
	natural := container.NaturalKey()
	if natural == "" {
		return ""
	}
	return store.DocumentString(doc, natural)
}

// renderPredicate compiles a predicate tree into a Mongo filter. The
// prefix anchors field paths at the stored document subtree; element
// predicates inside $elemMatch use an empty prefix.
func renderPredicate(pred store.Predicate, prefix string) (bson.M, error) {
	switch p := pred.(type) {
	case store.Cond:
		return renderCond(p, prefix)
	case store.And:
		clauses, err := renderChildren([]store.Predicate(p), prefix)
		if err != nil {
			return nil, err
		}
		return bson.M{"$and": clauses}, nil
	case store.Or:
		clauses, err := renderChildren([]store.Predicate(p), prefix)
		if err != nil {
			return nil, err
		}
		return bson.M{"$or": clauses}, nil
	case store.Not:
		inner, err := renderPredicate(p.Inner, prefix)
		if err != nil {
			return nil, err
		}
		return bson.M{"$nor": bson.A{inner}}, nil
	case store.Any:
		inner, err := renderPredicate(p.Pred, "")
		if err != nil {
			return nil, err
		}
		return bson.M{prefix + p.Path: bson.M{"$elemMatch": inner}}, nil
	default:
		return nil, repoerr.ErrMalformedEntity
	}
}

func renderChildren(children []store.Predicate, prefix string) (bson.A, error) {
	clauses := make(bson.A, 0, len(children))
	for _, child := range children {
		clause, err := renderPredicate(child, prefix)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause)
	}
	return clauses, nil
}

func renderCond(c store.Cond, prefix string) (bson.M, error) {
	field := prefix + c.Path

	if c.Op == store.CondDefined {
		return bson.M{field: bson.M{"$exists": true, "$nin": bson.A{nil, ""}}}, nil
	}

	if s, ok := c.Value.(string); ok {
		switch c.Op {
		case store.CondEq:
			if c.FoldCase {
				return bson.M{field: caseRegex("^" + regexp.QuoteMeta(s) + "$")}, nil
			}
			return bson.M{field: s}, nil
		case store.CondNe:
			if c.FoldCase {
				return bson.M{field: bson.M{"$not": caseRegex("^" + regexp.QuoteMeta(s) + "$")}}, nil
			}
			return bson.M{field: bson.M{"$ne": s}}, nil
		case store.CondContains:
			return bson.M{field: matchRegex(regexp.QuoteMeta(s), c.FoldCase)}, nil
		case store.CondHasPrefix:
			return bson.M{field: matchRegex("^"+regexp.QuoteMeta(s), c.FoldCase)}, nil
		case store.CondHasSuffix:
			return bson.M{field: matchRegex(regexp.QuoteMeta(s)+"$", c.FoldCase)}, nil
		}
	}

	switch c.Op {
	case store.CondEq:
		return bson.M{field: c.Value}, nil
	case store.CondNe:
		return bson.M{field: bson.M{"$ne": c.Value}}, nil
	case store.CondGt:
		return bson.M{field: bson.M{"$gt": c.Value}}, nil
	case store.CondGe:
		return bson.M{field: bson.M{"$gte": c.Value}}, nil
	case store.CondLt:
		return bson.M{field: bson.M{"$lt": c.Value}}, nil
	case store.CondLe:
		return bson.M{field: bson.M{"$lte": c.Value}}, nil
	default:
		return nil, repoerr.ErrMalformedEntity
	}
}

func caseRegex(pattern string) bson.M {
	return bson.M{"$regex": pattern, "$options": "i"}
}

func matchRegex(pattern string, foldCase bool) bson.M {
	if foldCase {
		return caseRegex(pattern)
	}
	return bson.M{"$regex": pattern}
}
