package docstore

import (
	"context"
	"fmt"
	"sort"

	"parley/internal/errs"
)

// Op is a query predicate operator.
type Op string

const (
	// Equal matches a field deep-equal to a value (arrays included).
	Equal Op = "=="
	// ArrayContains matches an array field containing a value.
	ArrayContains Op = "array-contains"
)

// Dir is a sort direction.
type Dir string

const (
	Asc  Dir = "asc"
	Desc Dir = "desc"
)

type cond struct {
	field string
	op    Op
	value any
}

// Query filters and orders one collection. Predicates are evaluated
// client-side over the decoded documents.
type Query struct {
	col        *Collection
	conds      []cond
	orderField string
	orderDir   Dir
}

// Query starts a query over the collection.
func (c *Collection) Query() *Query {
	return &Query{col: c}
}

// Where adds a predicate. Returns the query for chaining.
func (q *Query) Where(field string, op Op, value any) *Query {
	q.conds = append(q.conds, cond{field: field, op: op, value: value})
	return q
}

// OrderBy sorts results by a field. Missing fields sort as zero values.
func (q *Query) OrderBy(field string, dir Dir) *Query {
	q.orderField = field
	q.orderDir = dir
	return q
}

// GetAll runs the query and returns the full matching result set.
func (q *Query) GetAll(ctx context.Context) ([]Doc, error) {
	rows, err := q.col.store.db.QueryContext(ctx, `
		SELECT id, data FROM documents WHERE collection = ?`, q.col.path)
	if err != nil {
		return nil, fmt.Errorf("%w: query %s: %v", errs.ErrStoreUnavailable, q.col.path, err)
	}
	defer func() { _ = rows.Close() }()

	var docs []Doc
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("%w: scan %s: %v", errs.ErrStoreUnavailable, q.col.path, err)
		}
		doc, err := decodeDoc(id, raw)
		if err != nil {
			return nil, err
		}
		if q.matches(doc) {
			docs = append(docs, *doc)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: query %s: %v", errs.ErrStoreUnavailable, q.col.path, err)
	}

	if q.orderField != "" {
		field, dir := q.orderField, q.orderDir
		sort.SliceStable(docs, func(i, j int) bool {
			c := compareValues(docs[i].Data[field], docs[j].Data[field])
			if dir == Desc {
				return c > 0
			}
			return c < 0
		})
	}
	return docs, nil
}

func (q *Query) matches(doc *Doc) bool {
	for _, c := range q.conds {
		v, ok := doc.Data[c.field]
		if !ok {
			return false
		}
		switch c.op {
		case Equal:
			if !valuesEqual(v, c.value) {
				return false
			}
		case ArrayContains:
			if !arrayContains(v, c.value) {
				return false
			}
		default:
			return false
		}
	}
	return true
}
