package handler

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/dxf-analyzer/internal/pkg/errors"
	"github.com/dxf-analyzer/internal/pkg/utils"
	"github.com/dxf-analyzer/internal/pkg/validator"
	"github.com/dxf-analyzer/internal/usecase"
	"github.com/dxf-analyzer/internal/usecase/dto"
)

// AnalysisHandler - обработчик запросов анализа чертежей
type AnalysisHandler struct {
	analysisUC   *usecase.AnalysisUseCase
	maxFileBytes int64
	logger       *zap.Logger
}

// NewAnalysisHandler создает новый экземпляр AnalysisHandler
func NewAnalysisHandler(analysisUC *usecase.AnalysisUseCase, maxFileSizeMB int, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analysisUC:   analysisUC,
		maxFileBytes: int64(maxFileSizeMB) * 1024 * 1024,
		logger:       logger,
	}
}

// AnalyzeDXF godoc
// @Summary Анализ DXF файла
// @Description Принимает DXF чертёж, классифицирует сущности на валидные и фантомные, возвращает статистику, bounding box и суммарную длину реза. Формат ответа фиксирован.
// @Tags Analysis
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "DXF файл"
// @Success 200 {object} dto.AnalysisResponse
// @Failure 400 {object} dto.AnalysisErrorResponse
// @Failure 422 {object} dto.AnalysisErrorResponse
// @Router /analyze-dxf [post]
func (h *AnalysisHandler) AnalyzeDXF(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return sendAnalysisError(c, apperrors.ErrInvalidFile)
	}

	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".dxf") {
		return sendAnalysisError(c, apperrors.ErrInvalidFile)
	}

	if fileHeader.Size > h.maxFileBytes {
		h.logger.Warn("Upload rejected: file too large",
			zap.String("file", fileHeader.Filename),
			zap.Int64("size", fileHeader.Size),
		)
		return sendAnalysisError(c, apperrors.ErrFileTooLarge)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return sendAnalysisError(c, apperrors.ErrUnreadableFile)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return sendAnalysisError(c, apperrors.ErrUnreadableFile)
	}

	resp, err := h.analysisUC.AnalyzeFile(c.Context(), fileHeader.Filename, content)
	if err != nil {
		h.logger.Error("Analysis failed",
			zap.String("file", fileHeader.Filename),
			zap.Error(err),
		)
		return sendAnalysisError(c, err)
	}

	return c.JSON(resp)
}

// ListAnalyses godoc
// @Summary История анализов
// @Description Возвращает сводки последних анализов из истории
// @Tags Analysis
// @Produce json
// @Param limit query int false "Максимальное количество записей" default(20)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 501 {object} utils.ErrorResponse
// @Router /api/v1/analyses [get]
func (h *AnalysisHandler) ListAnalyses(c *fiber.Ctx) error {
	req := dto.ListAnalysesRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	records, err := h.analysisUC.ListAnalyses(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, records, &utils.Meta{
		Total:  len(records),
		Limit:  req.Limit,
		Offset: req.Offset,
	})
}

// GetAnalysis godoc
// @Summary Запись истории анализов
// @Description Возвращает сводку одного анализа по идентификатору
// @Tags Analysis
// @Produce json
// @Param id path string true "ID анализа (UUID)"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/analyses/{id} [get]
func (h *AnalysisHandler) GetAnalysis(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidAnalysisID)
	}

	record, err := h.analysisUC.GetAnalysis(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, record, nil)
}

// sendAnalysisError отвечает плоским форматом ошибок анализа:
// {"success": false, "error": ..., "message": ...}
func sendAnalysisError(c *fiber.Ctx, err error) error {
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		appErr = apperrors.ErrInternalServer
	}

	return c.Status(appErr.StatusCode).JSON(dto.AnalysisErrorResponse{
		Success: false,
		Error:   appErr.Code,
		Message: appErr.Message,
	})
}
