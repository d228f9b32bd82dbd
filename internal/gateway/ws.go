package gateway

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"parley/internal/chat"
)

// GET /api/ws/chats?email=
// Streams the viewer's chat list: one JSON frame per snapshot, full result
// set each time.
func (s *Server) watchThreads(c *websocket.Conn) {
	email := c.Query("email")
	if email == "" {
		_ = c.WriteJSON(fiber.Map{"error": "email is required"})
		return
	}

	snaps, cancel := s.engine.SubscribeUserThreads(email)
	defer cancel()

	closed := readUntilClosed(c)
	for {
		select {
		case snap, ok := <-snaps:
			if !ok {
				return
			}
			if snap.Err != nil {
				if err := c.WriteJSON(fiber.Map{"error": snap.Err.Error()}); err != nil {
					return
				}
				continue
			}
			threads := snap.Threads
			if threads == nil {
				threads = []chat.ThreadSummary{}
			}
			if err := c.WriteJSON(fiber.Map{"threads": threads}); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}

// GET /api/ws/chats/:id/messages
// Streams a thread's messages in chronological order.
func (s *Server) watchMessages(c *websocket.Conn) {
	snaps, cancel := s.engine.SubscribeMessages(c.Params("id"))
	defer cancel()

	closed := readUntilClosed(c)
	for {
		select {
		case snap, ok := <-snaps:
			if !ok {
				return
			}
			if snap.Err != nil {
				if err := c.WriteJSON(fiber.Map{"error": snap.Err.Error()}); err != nil {
					return
				}
				continue
			}
			messages := snap.Messages
			if messages == nil {
				messages = []chat.Message{}
			}
			if err := c.WriteJSON(fiber.Map{"messages": messages}); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}

// readUntilClosed drains inbound frames and closes the returned channel when
// the peer disconnects, so writers stop and the subscription is released.
func readUntilClosed(c *websocket.Conn) <-chan struct{} {
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()
	return closed
}
