package gateway

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"parley/internal/chat"
	"parley/internal/errs"
)

type resolveRequest struct {
	Kind        string    `json:"kind"`
	ActingUser  chat.User `json:"actingUser"`
	OtherEmails []string  `json:"otherEmails"`
	GroupName   string    `json:"groupName"`
	GroupImage  string    `json:"groupImage"`
}

// POST /api/chats/resolve
func (s *Server) resolveChat(c *fiber.Ctx) error {
	var req resolveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}

	var meta *chat.GroupMeta
	if req.GroupName != "" || req.GroupImage != "" {
		meta = &chat.GroupMeta{Name: req.GroupName, Image: req.GroupImage}
	}

	thread, err := s.engine.ResolveOrCreate(c.UserContext(), chat.Kind(req.Kind), req.ActingUser, req.OtherEmails, meta)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(thread)
}

// POST /api/participants/sync
// The authentication flow calls this once per sign-in.
func (s *Server) syncParticipant(c *fiber.Ctx) error {
	var profile chat.Profile
	if err := c.BodyParser(&profile); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	if err := s.engine.SyncParticipant(c.UserContext(), profile); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type sendRequest struct {
	Text   string `json:"text"`
	Sender string `json:"sender"`
}

// POST /api/chats/:id/messages
func (s *Server) sendMessage(c *fiber.Ctx) error {
	var req sendRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	msg, err := s.engine.SendMessage(c.UserContext(), c.Params("id"), req.Text, req.Sender)
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

// GET /api/translate?text=&src=&tgt=
func (s *Server) translateText(c *fiber.Ctx) error {
	text := c.Query("text")
	if strings.TrimSpace(text) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "text is required"})
	}
	src := c.Query("src", "eng_Latn")
	tgt := c.Query("tgt", "spa_Latn")

	res, err := s.translator.Translate(c.UserContext(), text, src, tgt)
	if err != nil {
		s.logger.Warn("translation failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(res)
}

func (s *Server) fail(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrInvalidArgument):
		code = fiber.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, errs.ErrStoreUnavailable):
		code = fiber.StatusServiceUnavailable
	}
	if code == fiber.StatusInternalServerError || code == fiber.StatusServiceUnavailable {
		s.logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
