// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

// Package postgres implements the document store on PostgreSQL JSONB.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/idrelay/idrelay/pkg/errors"
	repoerr "github.com/idrelay/idrelay/pkg/errors/repository"
	pgclient "github.com/idrelay/idrelay/pkg/postgres"
	"github.com/idrelay/idrelay/pkg/scim"
	"github.com/idrelay/idrelay/pkg/store"
)

var _ store.Store = (*pgStore)(nil)

type pgStore struct {
	db pgclient.Database
}

// NewStore instantiates a PostgreSQL-backed document store.
func NewStore(db pgclient.Database) store.Store {
	return &pgStore{db: db}
}

func (ps *pgStore) CreateItem(ctx context.Context, container store.Container, pk string, doc scim.Document) error {
	if pk == "" {
		return repoerr.ErrMissingPartitionKey
	}
	id := store.DocumentID(doc)
	if id == "" {
		return repoerr.ErrMalformedEntity
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(repoerr.ErrMalformedEntity, err)
	}

	q := `INSERT INTO documents (container, tenant_id, id, natural_key, doc)
		VALUES (:container, :tenant_id, :id, :natural_key, :doc)`
	dbdoc := dbDocument{
		Container:  string(container),
		TenantID:   pk,
		ID:         id,
		NaturalKey: naturalKey(container, doc),
		Doc:        data,
	}
	if _, err := ps.db.NamedExecContext(ctx, q, dbdoc); err != nil {
		return pgclient.HandleError(repoerr.ErrCreateEntity, err)
	}

	return nil
}

func (ps *pgStore) ReadItem(ctx context.Context, container store.Container, pk, id string) (scim.Document, error) {
	if pk == "" {
		return nil, repoerr.ErrMissingPartitionKey
	}

	q := `SELECT doc FROM documents WHERE container = $1 AND tenant_id = $2 AND id = $3`
	var data []byte
	if err := ps.db.QueryRowxContext(ctx, q, string(container), pk, id).Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return nil, repoerr.ErrNotFound
		}
		return nil, pgclient.HandleError(repoerr.ErrViewEntity, err)
	}

	var doc scim.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(repoerr.ErrMalformedEntity, err)
	}
	return doc, nil
}

func (ps *pgStore) UpsertItem(ctx context.Context, container store.Container, pk string, doc scim.Document, ifMatch string) error {
	if pk == "" {
		return repoerr.ErrMissingPartitionKey
	}
	id := store.DocumentID(doc)
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(repoerr.ErrMalformedEntity, err)
	}

	tx, err := ps.db.BeginTxx(ctx, nil)
	if err != nil {
		return pgclient.HandleError(repoerr.ErrUpdateEntity, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var stored string
	q := `SELECT doc #>> '{meta,version}' FROM documents
		WHERE container = $1 AND tenant_id = $2 AND id = $3 FOR UPDATE`
	if err := tx.QueryRowxContext(ctx, q, string(container), pk, id).Scan(&stored); err != nil {
		if err == sql.ErrNoRows {
			return repoerr.ErrNotFound
		}
		return pgclient.HandleError(repoerr.ErrUpdateEntity, err)
	}
	if ifMatch != "" && !scim.VersionMatches(ifMatch, stored) {
		return repoerr.ErrVersionConflict
	}

	q = `UPDATE documents SET doc = $1, natural_key = $2
		WHERE container = $3 AND tenant_id = $4 AND id = $5`
	if _, err := tx.ExecContext(ctx, q, data, naturalKey(container, doc), string(container), pk, id); err != nil {
		return pgclient.HandleError(repoerr.ErrUpdateEntity, err)
	}

	if err := tx.Commit(); err != nil {
		return pgclient.HandleError(repoerr.ErrUpdateEntity, err)
	}
	return nil
}

func (ps *pgStore) DeleteItem(ctx context.Context, container store.Container, pk, id, ifMatch string) error {
	if pk == "" {
		return repoerr.ErrMissingPartitionKey
	}

	tx, err := ps.db.BeginTxx(ctx, nil)
	if err != nil {
		return pgclient.HandleError(repoerr.ErrRemoveEntity, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var stored string
	q := `SELECT doc #>> '{meta,version}' FROM documents
		WHERE container = $1 AND tenant_id = $2 AND id = $3 FOR UPDATE`
	if err := tx.QueryRowxContext(ctx, q, string(container), pk, id).Scan(&stored); err != nil {
		if err == sql.ErrNoRows {
			return repoerr.ErrNotFound
		}
		return pgclient.HandleError(repoerr.ErrRemoveEntity, err)
	}
	if ifMatch != "" && !scim.VersionMatches(ifMatch, stored) {
		return repoerr.ErrVersionConflict
	}

	q = `DELETE FROM documents WHERE container = $1 AND tenant_id = $2 AND id = $3`
	if _, err := tx.ExecContext(ctx, q, string(container), pk, id); err != nil {
		return pgclient.HandleError(repoerr.ErrRemoveEntity, err)
	}

	if err := tx.Commit(); err != nil {
		return pgclient.HandleError(repoerr.ErrRemoveEntity, err)
	}
	return nil
}

func (ps *pgStore) QueryItems(ctx context.Context, container store.Container, pk string, pred store.Predicate, page store.Page) (store.ItemsPage, error) {
	if pk == "" {
		return store.ItemsPage{}, repoerr.ErrMissingPartitionKey
	}

	r := &renderer{args: []interface{}{string(container), pk}}
	where := "container = $1 AND tenant_id = $2"
	if pred != nil {
		clause, err := r.render(pred, "doc")
		if err != nil {
			return store.ItemsPage{}, err
		}
		where = where + " AND " + clause
	}

	start := page.StartIndex
	if start < 1 {
		start = 1
	}
	q := fmt.Sprintf(`SELECT doc FROM documents WHERE %s ORDER BY %s OFFSET %d`,
		where, orderClause(page), start-1)
	if page.Count > 0 {
		q = fmt.Sprintf("%s LIMIT %d", q, page.Count)
	}

	rows, err := ps.db.QueryxContext(ctx, q, r.args...)
	if err != nil {
		return store.ItemsPage{}, pgclient.HandleError(repoerr.ErrViewEntity, err)
	}
	defer rows.Close()

	var items []scim.Document
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return store.ItemsPage{}, pgclient.HandleError(repoerr.ErrViewEntity, err)
		}
		var doc scim.Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return store.ItemsPage{}, errors.Wrap(repoerr.ErrMalformedEntity, err)
		}
		items = append(items, doc)
	}
	if err := rows.Err(); err != nil {
		return store.ItemsPage{}, pgclient.HandleError(repoerr.ErrViewEntity, err)
	}

	cq := fmt.Sprintf(`SELECT COUNT(*) FROM documents WHERE %s`, where)
	var total uint64
	if err := ps.db.QueryRowxContext(ctx, cq, r.args...).Scan(&total); err != nil {
		return store.ItemsPage{}, pgclient.HandleError(repoerr.ErrViewEntity, err)
	}

	return store.ItemsPage{Items: items, Total: total, StartIndex: start}, nil
}

type dbDocument struct {
	Container  string `db:"container"`
	TenantID   string `db:"tenant_id"`
	ID         string `db:"id"`
	NaturalKey string `db:"natural_key"`
	Doc        []byte `db:"doc"`
}

func naturalKey(container store.Container, doc scim.Document) string {
	natural := container.NaturalKey()
	if natural == "" {
		return ""
	}
	return store.DocumentString(doc, natural)
}

// renderer turns a predicate tree into a SQL clause over a JSONB column.
// Literals are always bound as parameters, never interpolated into the
// query text.
type renderer struct {
	args []interface{}
}

func (r *renderer) bind(value interface{}) string {
	r.args = append(r.args, value)
	return fmt.Sprintf("$%d", len(r.args))
}

func (r *renderer) render(pred store.Predicate, column string) (string, error) {
	switch p := pred.(type) {
	case store.Cond:
		return r.renderCond(p, column)
	case store.And:
		return r.renderJoin([]store.Predicate(p), column, " AND ")
	case store.Or:
		return r.renderJoin([]store.Predicate(p), column, " OR ")
	case store.Not:
		inner, err := r.render(p.Inner, column)
		if err != nil {
			return "", err
		}
		return "NOT " + inner, nil
	case store.Any:
		inner, err := r.render(p.Pred, "elem")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(
			`EXISTS (SELECT 1 FROM jsonb_array_elements(%s -> '%s') AS elem WHERE %s)`,
			column, p.Path, inner,
		), nil
	default:
		return "", repoerr.ErrMalformedEntity
	}
}

func (r *renderer) renderJoin(children []store.Predicate, column, sep string) (string, error) {
	clauses := make([]string, 0, len(children))
	for _, child := range children {
		clause, err := r.render(child, column)
		if err != nil {
			return "", err
		}
		clauses = append(clauses, clause)
	}
	return "(" + strings.Join(clauses, sep) + ")", nil
}

func (r *renderer) renderCond(c store.Cond, column string) (string, error) {
	path := jsonPath(column, c.Path)

	if c.Op == store.CondDefined {
		raw := jsonRaw(column, c.Path)
		return fmt.Sprintf(`(%s IS NOT NULL AND %s <> 'null'::jsonb)`, raw, raw), nil
	}

	switch v := c.Value.(type) {
	case string:
		expr := path
		param := r.bind(v)
		if c.FoldCase {
			expr = "lower(" + expr + ")"
			param = "lower(" + param + ")"
		}
		switch c.Op {
		case store.CondEq:
			return fmt.Sprintf("%s = %s", expr, param), nil
		case store.CondNe:
			return fmt.Sprintf("%s <> %s", expr, param), nil
		case store.CondContains:
			return fmt.Sprintf("strpos(%s, %s) > 0", expr, param), nil
		case store.CondHasPrefix:
			return fmt.Sprintf("left(%s, length(%s)) = %s", expr, param, param), nil
		case store.CondHasSuffix:
			return fmt.Sprintf("right(%s, length(%s)) = %s", expr, param, param), nil
		case store.CondGt, store.CondGe, store.CondLt, store.CondLe:
			return fmt.Sprintf("%s %s %s", expr, sqlOp(c.Op), param), nil
		}
	case float64:
		param := r.bind(v)
		switch c.Op {
		case store.CondEq, store.CondNe, store.CondGt, store.CondGe, store.CondLt, store.CondLe:
			return fmt.Sprintf("(%s)::numeric %s %s", path, sqlOp(c.Op), param), nil
		}
	case bool:
		param := r.bind(v)
		switch c.Op {
		case store.CondEq:
			return fmt.Sprintf("(%s)::boolean = %s", path, param), nil
		case store.CondNe:
			return fmt.Sprintf("(%s)::boolean <> %s", path, param), nil
		}
	case nil:
		raw := jsonRaw(column, c.Path)
		switch c.Op {
		case store.CondEq:
			return fmt.Sprintf(`(%s IS NULL OR %s = 'null'::jsonb)`, raw, raw), nil
		case store.CondNe:
			return fmt.Sprintf(`(%s IS NOT NULL AND %s <> 'null'::jsonb)`, raw, raw), nil
		}
	}

	return "", repoerr.ErrMalformedEntity
}

func sqlOp(op store.CondOp) string {
	switch op {
	case store.CondEq:
		return "="
	case store.CondNe:
		return "<>"
	case store.CondGt:
		return ">"
	case store.CondGe:
		return ">="
	case store.CondLt:
		return "<"
	default:
		return "<="
	}
}

// jsonPath renders a text-valued JSONB access for a dotted field path.
func jsonPath(column, path string) string {
	return fmt.Sprintf(`%s #>> '{%s}'`, column, strings.ReplaceAll(path, ".", ","))
}

// jsonRaw renders a JSONB-valued access for a dotted field path.
func jsonRaw(column, path string) string {
	return fmt.Sprintf(`%s #> '{%s}'`, column, strings.ReplaceAll(path, ".", ","))
}

func orderClause(page store.Page) string {
	dir := "ASC"
	if page.Descending {
		dir = "DESC"
	}
	sortBy := page.SortBy
	if sortBy == "" || sortBy == "id" {
		return "id " + dir
	}
	return fmt.Sprintf("%s %s NULLS LAST, id ASC", jsonPath("doc", sortBy), dir)
}
