package handler

import (
	"commission-central/internal/middleware"
	"commission-central/internal/models"
	"commission-central/internal/service"
	"commission-central/internal/utils"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
	excelService     *service.ExcelService
	sessions         *session.Store
	appName          string
}

func NewDashboardHandler(
	dashboardService *service.DashboardService,
	excelService *service.ExcelService,
	sessions *session.Store,
	appName string,
) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		excelService:     excelService,
		sessions:         sessions,
		appName:          appName,
	}
}

// Index renders the dashboard page.
func (h *DashboardHandler) Index(c *fiber.Ctx) error {
	dashboard, err := h.dashboardService.GetDashboard(c.UserContext(), middleware.CurrentViewState(c))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load commission data")
	}

	return c.Render("dashboard/index", fiber.Map{
		"Title":     h.appName,
		"Dashboard": dashboard,
	})
}

func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	dashboard, err := h.dashboardService.GetDashboard(c.UserContext(), middleware.CurrentViewState(c))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load commission data", err)
	}

	return utils.SuccessResponse(c, "Dashboard retrieved successfully", dashboard)
}

func (h *DashboardHandler) ExportDashboard(c *fiber.Ctx) error {
	data, err := h.dashboardService.LoadDataset(c.UserContext())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load commission data", err)
	}

	content, err := h.excelService.ExportDashboard(data)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to export dashboard", err)
	}

	return sendWorkbook(c, "commission-dashboard.xlsx", content)
}

func (h *DashboardHandler) GetView(c *fiber.Ctx) error {
	view := middleware.CurrentViewState(c)
	return utils.SuccessResponse(c, "View state retrieved successfully", h.withSourceLabel(c, view))
}

type SetPeriodRequest struct {
	Period string `json:"period" form:"period"`
}

func (h *DashboardHandler) SetPeriod(c *fiber.Ctx) error {
	var req SetPeriodRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if !middleware.ValidPeriod(req.Period) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, fmt.Sprintf("Unknown period %q", req.Period), nil)
	}

	view := middleware.CurrentViewState(c)
	view.SelectedPeriod = req.Period
	if err := middleware.SaveViewState(c, h.sessions, view); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save view state", err)
	}

	return utils.SuccessResponse(c, "Period updated", h.withSourceLabel(c, view))
}

func (h *DashboardHandler) ToggleDetails(c *fiber.Ctx) error {
	view := middleware.CurrentViewState(c)
	view.ShowDetails = !view.ShowDetails
	if err := middleware.SaveViewState(c, h.sessions, view); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save view state", err)
	}

	return utils.SuccessResponse(c, "Details toggled", h.withSourceLabel(c, view))
}

// withSourceLabel fills the data source label from the current dataset. The
// label is informational, so a load failure leaves it empty.
func (h *DashboardHandler) withSourceLabel(c *fiber.Ctx, view models.ViewState) models.ViewState {
	if data, err := h.dashboardService.LoadDataset(c.UserContext()); err == nil {
		view.DataSource = service.SourceLabel(data.Source)
	}
	return view
}

func sendWorkbook(c *fiber.Ctx, filename string, content []byte) error {
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(content)
}
