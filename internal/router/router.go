package router

import (
	"commission-central/internal/config"
	"commission-central/internal/repository"
	"commission-central/internal/service"
	"commission-central/internal/utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/sirupsen/logrus"
)

// Dependencies are the backends selected from config by the entry point.
type Dependencies struct {
	Commissions repository.CommissionRepository
	Sessions    repository.ImportSessionStore
	Ticker      service.Ticker
	Logger      *logrus.Logger
}

func Setup(app *fiber.App, cfg *config.Config, deps Dependencies) {
	if deps.Logger == nil {
		deps.Logger = utils.GetLogger()
	}

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":      "ok",
			"app":         cfg.AppName,
			"data_source": cfg.DataSource,
		})
	})

	viewSessions := session.New(session.Config{
		Expiration:     24 * time.Hour,
		KeyLookup:      "cookie:commission_view",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})

	h := newHandlers(cfg, deps, viewSessions)

	// Web routes (HTML)
	web := app.Group("")
	setupWebRoutes(web, h, viewSessions)

	// API routes (JSON)
	api := app.Group("/api/v1")
	SetupAPIRoutes(api, h, viewSessions)
}

func setupWebRoutes(router fiber.Router, h *handlers, viewSessions *session.Store) {
	router.Get("/", viewState(viewSessions), h.dashboard.Index)
}
