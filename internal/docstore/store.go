// Package docstore implements a local document store: schemaless JSON
// documents grouped into collections, equality and
// array-contains queries, per-document atomic merges, and live queries that
// redeliver the full matching result set after every relevant write.
package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"parley/internal/bus"
	"parley/internal/errs"
)

// Store exposes document collections backed by a single SQLite database.
// Writes to one document apply in commit order; ordering across documents
// is undefined.
type Store struct {
	db  *DB
	bus *bus.Bus
}

// New creates a store on top of an opened, migrated database.
func New(db *DB, b *bus.Bus) *Store {
	return &Store{db: db, bus: b}
}

// Collection addresses a collection by path. Subcollections use slash paths,
// e.g. "threads/<id>/messages".
func (s *Store) Collection(path string) *Collection {
	return &Collection{store: s, path: path}
}

// Collection is a handle to one document collection.
type Collection struct {
	store *Store
	path  string
}

// Path returns the collection path.
func (c *Collection) Path() string { return c.path }

// Insert adds a new document with a server-assigned id and returns the id.
func (c *Collection) Insert(ctx context.Context, data map[string]any) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	id := uuid.NewString()
	now := time.Now().UnixMilli()
	_, err = c.store.db.ExecContext(ctx, `
		INSERT INTO documents (collection, id, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		c.path, id, string(raw), now, now)
	if err != nil {
		return "", fmt.Errorf("%w: insert %s: %v", errs.ErrStoreUnavailable, c.path, err)
	}
	c.store.notifyChanged(c.path)
	return id, nil
}

// Get reads a single document by id. Returns errs.ErrNotFound if absent.
func (c *Collection) Get(ctx context.Context, id string) (*Doc, error) {
	var raw string
	err := c.store.db.QueryRowContext(ctx, `
		SELECT data FROM documents WHERE collection = ? AND id = ?`,
		c.path, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s/%s", errs.ErrNotFound, c.path, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get %s/%s: %v", errs.ErrStoreUnavailable, c.path, id, err)
	}
	return decodeDoc(id, raw)
}

// Merge applies a shallow merge of fields onto an existing document. The
// read-modify-write runs in one transaction, so merges to a single document
// are atomic and apply in commit order. Returns errs.ErrNotFound if the
// document does not exist.
func (c *Collection) Merge(ctx context.Context, id string, fields map[string]any) error {
	tx, err := c.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin merge: %v", errs.ErrStoreUnavailable, err)
	}
	defer func() { _ = tx.Rollback() }()

	var raw string
	err = tx.QueryRowContext(ctx, `
		SELECT data FROM documents WHERE collection = ? AND id = ?`,
		c.path, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: %s/%s", errs.ErrNotFound, c.path, id)
	}
	if err != nil {
		return fmt.Errorf("%w: read for merge: %v", errs.ErrStoreUnavailable, err)
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return fmt.Errorf("decode document %s/%s: %w", c.path, id, err)
	}
	for k, v := range fields {
		data[k] = v
	}

	merged, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE documents SET data = ?, updated_at = ? WHERE collection = ? AND id = ?`,
		string(merged), time.Now().UnixMilli(), c.path, id); err != nil {
		return fmt.Errorf("%w: write merge: %v", errs.ErrStoreUnavailable, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit merge: %v", errs.ErrStoreUnavailable, err)
	}
	c.store.notifyChanged(c.path)
	return nil
}

func (s *Store) notifyChanged(collection string) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(bus.Event{
		Kind:      "doc." + collection,
		Timestamp: time.Now(),
		Payload:   collection,
	})
}

func decodeDoc(id, raw string) (*Doc, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", id, err)
	}
	return &Doc{ID: id, Data: data}, nil
}
