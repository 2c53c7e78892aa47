package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/text"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/benbeisheim/boardtutor-backend/internal/config"
	"github.com/benbeisheim/boardtutor-backend/internal/controller"
	"github.com/benbeisheim/boardtutor-backend/internal/service"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	log.SetHandler(text.New(os.Stderr))
	log.SetLevel(cfg.LogLevel)

	app := fiber.New(fiber.Config{
		AppName:               "boardtutor",
		DisableStartupMessage: true,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowedOrigins, ","),
		AllowHeaders:     "Origin, Content-Type, Accept, X-Client-ID",
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		AllowCredentials: true,
	}))
	app.Use(requestLogger)

	sessionManager := service.NewSessionManager(service.ManagerConfig{
		StrictChess: cfg.StrictChess,
		SessionTTL:  cfg.SessionTTL,
	})
	defer sessionManager.Close()
	sessionService := service.NewSessionService(sessionManager)

	controller.SetupRoutes(app, sessionService, cfg.AllowedOrigins)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			log.WithError(err).Error("shutdown")
		}
	}()

	log.WithFields(log.Fields{
		"addr":        cfg.Addr,
		"strictChess": cfg.StrictChess,
		"sessionTTL":  cfg.SessionTTL,
	}).Info("listening")
	if err := app.Listen(cfg.Addr); err != nil {
		log.WithError(err).Fatal("listen")
	}
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	log.WithFields(log.Fields{
		"method":   c.Method(),
		"path":     c.Path(),
		"status":   c.Response().StatusCode(),
		"duration": time.Since(start),
	}).Debug("request")
	return err
}
