// Package gateway exposes the chat engine over HTTP and websockets: thread
// resolution, the authentication-completion sync hook, message send, the two
// live subscriptions, and the translation utility.
package gateway

import (
	"context"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"parley/internal/chat"
	"parley/internal/translate"
)

// Server is the HTTP/websocket gateway.
type Server struct {
	app        *fiber.App
	addr       string
	engine     *chat.Service
	translator translate.Translator
	logger     *zap.Logger
}

// New creates the gateway and registers its routes.
func New(addr string, engine *chat.Service, translator translate.Translator, logger *zap.Logger) *Server {
	s := &Server{
		app:        fiber.New(fiber.Config{DisableStartupMessage: true}),
		addr:       addr,
		engine:     engine,
		translator: translator,
		logger:     logger,
	}

	s.app.Post("/api/chats/resolve", s.resolveChat)
	s.app.Post("/api/participants/sync", s.syncParticipant)
	s.app.Post("/api/chats/:id/messages", s.sendMessage)
	s.app.Get("/api/translate", s.translateText)

	s.app.Use("/api/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	s.app.Get("/api/ws/chats", websocket.New(s.watchThreads))
	s.app.Get("/api/ws/chats/:id/messages", websocket.New(s.watchMessages))

	return s
}

// Listen serves requests. Blocks until Shutdown.
func (s *Server) Listen() error {
	s.logger.Info("gateway listening", zap.String("addr", s.addr))
	return s.app.Listen(s.addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("gateway stopping")
	return s.app.ShutdownWithContext(ctx)
}
