package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/benbeisheim/boardtutor-backend/internal/middleware"
	"github.com/benbeisheim/boardtutor-backend/internal/service"
)

// SetupRoutes mounts the REST and websocket endpoints on app.
func SetupRoutes(app *fiber.App, sessionService *service.SessionService, origins []string) {
	sessionController := NewSessionController(sessionService)
	wsController := NewWebSocketController(sessionService)

	app.Use("/ws/*", middleware.EnsureClientID())
	app.Get("/ws/session/:sessionId", middleware.WebSocketUpgrade(), websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         origins,
	}))

	api := app.Group("/api", middleware.EnsureClientID())
	api.Get("/lessons", sessionController.ListLessons)

	sessions := api.Group("/sessions")
	sessions.Post("/", sessionController.CreateSession)
	sessions.Get("/:sessionId", sessionController.GetSession)
	sessions.Delete("/:sessionId", sessionController.DeleteSession)
	sessions.Post("/:sessionId/click", sessionController.Click)
	sessions.Post("/:sessionId/promote", sessionController.Promote)
	sessions.Post("/:sessionId/undo", sessionController.Undo)
	sessions.Post("/:sessionId/reset", sessionController.Reset)
	sessions.Post("/:sessionId/flip", sessionController.Flip)
	sessions.Post("/:sessionId/answer", sessionController.Answer)
}
