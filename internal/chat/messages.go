package chat

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"parley/internal/docstore"
	"parley/internal/errs"
)

// MessagesSnapshot is one delivery of a thread's live message list.
type MessagesSnapshot struct {
	Messages []Message
	Err      error
}

// SubscribeMessages returns a live chronological view of a thread's
// messages, oldest first. A thread with no messages yet delivers an empty
// set, not an error.
func (s *Service) SubscribeMessages(threadID string) (<-chan MessagesSnapshot, func()) {
	snaps, cancel := s.messages(threadID).Query().
		OrderBy("sentAt", docstore.Asc).
		Subscribe()

	out := make(chan MessagesSnapshot, 1)
	go func() {
		defer close(out)
		for snap := range snaps {
			cur := MessagesSnapshot{Err: snap.Err}
			for i := range snap.Docs {
				cur.Messages = append(cur.Messages, messageFromDoc(&snap.Docs[i]))
			}
			sendLatest(out, cur)
		}
	}()
	return out, cancel
}

// SendMessage appends a message to the thread and merges the latest-message
// mirror onto the thread document, so the chat list reorders without reading
// the message subcollection. The mirror write and the append are separate
// commits; observers must treat the mirror as a best-effort preview.
func (s *Service) SendMessage(ctx context.Context, threadID, text, sender string) (*Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: message text is empty", errs.ErrInvalidArgument)
	}
	if sender == "" {
		return nil, fmt.Errorf("%w: message sender is required", errs.ErrInvalidArgument)
	}

	sentAt := s.now()
	id, err := s.messages(threadID).Insert(ctx, map[string]any{
		"text":   text,
		"sender": sender,
		"sentAt": sentAt.UnixMilli(),
	})
	if err != nil {
		return nil, err
	}

	err = s.threads().Merge(ctx, threadID, map[string]any{
		"latestMessage": map[string]any{
			"text":   text,
			"sender": sender,
			"sentAt": sentAt.UnixMilli(),
		},
		"latestMessageAt": sentAt.UnixMilli(),
	})
	if err != nil {
		return nil, fmt.Errorf("mirror latest message on thread %s: %w", threadID, err)
	}

	s.logger.Debug("message sent",
		zap.String("thread", threadID),
		zap.String("id", id),
	)
	return &Message{ID: id, Text: text, Sender: sender, SentAt: sentAt}, nil
}
