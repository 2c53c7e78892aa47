package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"github.com/benbeisheim/boardtutor-backend/internal/middleware"
	"github.com/benbeisheim/boardtutor-backend/internal/model"
	"github.com/benbeisheim/boardtutor-backend/internal/service"
	"github.com/benbeisheim/boardtutor-backend/internal/ws"
)

type SessionController struct {
	sessionService *service.SessionService
}

func NewSessionController(sessionService *service.SessionService) *SessionController {
	return &SessionController{sessionService: sessionService}
}

func (sc *SessionController) CreateSession(c *fiber.Ctx) error {
	var req service.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return sendError(c, errors.Wrap(service.ErrInvalidRequest, err.Error()))
	}

	view, err := sc.sessionService.CreateSession(middleware.ClientID(c), req)
	if err != nil {
		return sendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

func (sc *SessionController) GetSession(c *fiber.Ctx) error {
	view, err := sc.sessionService.GetSession(c.Params("sessionId"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(view)
}

func (sc *SessionController) DeleteSession(c *fiber.Ctx) error {
	if err := sc.sessionService.DeleteSession(c.Params("sessionId"), middleware.ClientID(c)); err != nil {
		return sendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (sc *SessionController) Click(c *fiber.Ctx) error {
	var p ws.ClickPayload
	if err := c.BodyParser(&p); err != nil {
		return sendError(c, errors.Wrap(service.ErrInvalidRequest, err.Error()))
	}
	return sc.respond(c, service.Input{Kind: ws.MessageTypeClick, Square: model.Pos(p.X, p.Y)})
}

func (sc *SessionController) Promote(c *fiber.Ctx) error {
	var p ws.PromotePayload
	if err := c.BodyParser(&p); err != nil || p.Type == "" {
		return sendError(c, errors.Wrap(service.ErrInvalidRequest, "promotion type is required"))
	}
	return sc.respond(c, service.Input{Kind: ws.MessageTypePromote, Piece: model.PieceType(p.Type)})
}

func (sc *SessionController) Undo(c *fiber.Ctx) error {
	return sc.respond(c, service.Input{Kind: ws.MessageTypeUndo})
}

func (sc *SessionController) Reset(c *fiber.Ctx) error {
	return sc.respond(c, service.Input{Kind: ws.MessageTypeReset})
}

func (sc *SessionController) Flip(c *fiber.Ctx) error {
	return sc.respond(c, service.Input{Kind: ws.MessageTypeFlip})
}

func (sc *SessionController) Answer(c *fiber.Ctx) error {
	var p ws.AnswerPayload
	if err := c.BodyParser(&p); err != nil {
		return sendError(c, errors.Wrap(service.ErrInvalidRequest, err.Error()))
	}
	return sc.respond(c, service.Input{Kind: ws.MessageTypeAnswer, Option: p.Option})
}

func (sc *SessionController) respond(c *fiber.Ctx, in service.Input) error {
	view, err := sc.sessionService.HandleInput(c.Params("sessionId"), middleware.ClientID(c), in)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(view)
}

func (sc *SessionController) ListLessons(c *fiber.Ctx) error {
	lessons, err := sc.sessionService.Lessons(model.Variant(c.Query("variant", string(model.VariantChess))))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"lessons": lessons,
	})
}
