package router

import (
	"commission-central/internal/config"
	"commission-central/internal/handler"
	"commission-central/internal/middleware"
	"commission-central/internal/repository"
	"commission-central/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

type handlers struct {
	dashboard *handler.DashboardHandler
	imports   *handler.ImportHandler
}

func newHandlers(cfg *config.Config, deps Dependencies, viewSessions *session.Store) *handlers {
	// Initialize services
	excelService := service.NewExcelService()
	dashboardService := service.NewDashboardService(deps.Commissions, deps.Logger)
	importController := service.NewImportController(deps.Sessions, deps.Ticker, cfg.ImportTickStep, deps.Logger)

	return &handlers{
		dashboard: handler.NewDashboardHandler(dashboardService, excelService, viewSessions, cfg.AppName),
		imports: handler.NewImportHandler(
			importController,
			excelService,
			repository.NewSampleCommissionRepository(),
			deps.Logger,
		),
	}
}

func viewState(store *session.Store) fiber.Handler {
	return middleware.ViewStateMiddleware(store)
}

func SetupAPIRoutes(router fiber.Router, h *handlers, viewSessions *session.Store) {
	// Dashboard routes
	dashboard := router.Group("/dashboard", viewState(viewSessions))
	dashboard.Get("/", h.dashboard.GetDashboard)
	dashboard.Get("/export", h.dashboard.ExportDashboard)

	// View state routes
	view := router.Group("/view", viewState(viewSessions))
	view.Get("/", h.dashboard.GetView)
	view.Post("/period", h.dashboard.SetPeriod)
	view.Post("/details/toggle", h.dashboard.ToggleDetails)

	// Import routes
	imports := router.Group("/imports")
	imports.Post("/", h.imports.OpenSession)
	imports.Get("/template", h.imports.DownloadTemplate)
	imports.Get("/:code", h.imports.GetSession)
	imports.Post("/:code/file", h.imports.SelectFile)
	imports.Post("/:code/reset", h.imports.ResetSession)
	imports.Delete("/:code", h.imports.CloseSession)
}
