package handler

import (
	"commission-central/internal/repository"
	"commission-central/internal/service"
	"commission-central/internal/utils"
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ImportHandler struct {
	controller   *service.ImportController
	excelService *service.ExcelService
	templateRepo repository.CommissionRepository
	logger       *logrus.Logger
}

func NewImportHandler(
	controller *service.ImportController,
	excelService *service.ExcelService,
	templateRepo repository.CommissionRepository,
	logger *logrus.Logger,
) *ImportHandler {
	return &ImportHandler{
		controller:   controller,
		excelService: excelService,
		templateRepo: templateRepo,
		logger:       logger,
	}
}

// OpenSession backs opening the import dialog.
func (h *ImportHandler) OpenSession(c *fiber.Ctx) error {
	session, err := h.controller.Open(c.UserContext())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to open import session", err)
	}

	c.Status(fiber.StatusCreated)
	return utils.SuccessResponse(c, "Import session opened", session)
}

func (h *ImportHandler) GetSession(c *fiber.Ctx) error {
	session, err := h.controller.Get(c.UserContext(), c.Params("code"))
	if err != nil {
		return h.sessionError(c, "Failed to get import session", err)
	}

	return utils.SuccessResponse(c, "Import session retrieved successfully", session)
}

// SelectFile starts the simulated import. The file content is never read and
// its extension is not checked. A request without a file leaves the session
// as it was.
func (h *ImportHandler) SelectFile(c *fiber.Ctx) error {
	var file *service.FileHandle
	if header, err := c.FormFile("file"); err == nil {
		file = &service.FileHandle{Name: header.Filename, Size: header.Size}
	}

	// Ticks must outlive the request.
	ctx := context.WithoutCancel(c.UserContext())
	session, err := h.controller.BeginImport(ctx, c.Params("code"), file)
	if err != nil {
		return h.sessionError(c, "Failed to start import", err)
	}

	return utils.SuccessResponse(c, "Import session updated", session)
}

// ResetSession backs the "View Dashboard" button.
func (h *ImportHandler) ResetSession(c *fiber.Ctx) error {
	session, err := h.controller.Reset(c.UserContext(), c.Params("code"))
	if err != nil {
		return h.sessionError(c, "Failed to reset import session", err)
	}

	return utils.SuccessResponse(c, "Import session reset", session)
}

// CloseSession backs closing the dialog.
func (h *ImportHandler) CloseSession(c *fiber.Ctx) error {
	if err := h.controller.Close(c.UserContext(), c.Params("code")); err != nil {
		return h.sessionError(c, "Failed to close import session", err)
	}

	return utils.SuccessResponse(c, "Import session closed", nil)
}

// DownloadTemplate serves an example workbook in the accepted layout.
func (h *ImportHandler) DownloadTemplate(c *fiber.Ctx) error {
	data, err := h.templateRepo.LoadCommissionData(c.UserContext())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load template data", err)
	}

	content, err := h.excelService.GenerateImportTemplate(data.TeamMembers)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate template", err)
	}

	return sendWorkbook(c, "commission-import-template.xlsx", content)
}

func (h *ImportHandler) sessionError(c *fiber.Ctx, message string, err error) error {
	if errors.Is(err, repository.ErrSessionNotFound) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Import session not found", err)
	}

	h.logger.WithError(err).WithField("session_code", c.Params("code")).Error(message)
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, message, err)
}
