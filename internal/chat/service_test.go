package chat

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"parley/internal/bus"
	"parley/internal/docstore"
)

func testService(t *testing.T) *Service {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := docstore.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Migrate(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewService(docstore.New(db, bus.New()), zap.NewNop())
}

var (
	alice = User{UID: "U1", Email: "a@x.com", PhotoURL: "https://x.com/a.png", Name: "Alice"}
	bob   = User{UID: "U2", Email: "b@x.com", PhotoURL: "https://x.com/b.png", Name: "Bob"}
)
