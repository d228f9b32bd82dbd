package chat

import (
	"time"

	"go.uber.org/zap"
	"parley/internal/docstore"
)

const threadsCollection = "threads"

func messagesCollection(threadID string) string {
	return threadsCollection + "/" + threadID + "/messages"
}

// Service is the chat engine. All writes go through it: threads are created
// only by ResolveOrCreate, upgraded only by SyncParticipant, and mirrored
// only by SendMessage. Every thread write is a targeted merge except the
// resolver's create, which is a plain insert.
type Service struct {
	store  *docstore.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates the engine on top of a document store.
func NewService(store *docstore.Store, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) threads() *docstore.Collection {
	return s.store.Collection(threadsCollection)
}

func (s *Service) messages(threadID string) *docstore.Collection {
	return s.store.Collection(messagesCollection(threadID))
}
