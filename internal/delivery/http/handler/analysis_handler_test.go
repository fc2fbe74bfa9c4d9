package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dxf-analyzer/internal/config"
	"github.com/dxf-analyzer/internal/delivery/http/handler"
	"github.com/dxf-analyzer/internal/domain"
	"github.com/dxf-analyzer/internal/usecase"
	"github.com/dxf-analyzer/internal/usecase/dto"
)

// stubParser returns a fixed entity set regardless of input
type stubParser struct {
	entities []domain.Entity
	err      error
}

func (s *stubParser) Parse(r io.Reader) ([]domain.Entity, error) {
	return s.entities, s.err
}

func newTestApp(t *testing.T, parser usecase.DrawingParser) *fiber.App {
	t.Helper()

	classifier, err := usecase.NewClassifier(config.ClassifierConfig{
		PhantomLayers:     []string{"DEFPOINTS", "PHANTOM", "HIDDEN", "CONSTRUCTION", "TEMP"},
		OriginEpsilon:     0.001,
		MaxLengthFactor:   10,
		MaxDistanceFactor: 5,
		CoordinateBound:   50000,
	})
	require.NoError(t, err)

	uc := usecase.NewAnalysisUseCase(parser, classifier, nil, nil, time.Hour, zap.NewNop())
	h := handler.NewAnalysisHandler(uc, 25, zap.NewNop())

	app := fiber.New()
	app.Post("/analyze-dxf", h.AnalyzeDXF)
	app.Get("/api/v1/analyses", h.ListAnalyses)
	app.Get("/api/v1/analyses/:id", h.GetAnalysis)
	return app
}

func uploadRequest(t *testing.T, fileName, content string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = io.WriteString(part, content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze-dxf", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestAnalyzeDXF_Success(t *testing.T) {
	app := newTestApp(t, &stubParser{
		entities: []domain.Entity{
			{
				Type:    domain.EntityLine,
				Layer:   "CUT",
				Points:  []domain.Point{{X: 5, Y: 5}, {X: 15, Y: 5}},
				Visible: true,
			},
		},
	})

	resp, err := app.Test(uploadRequest(t, "part.dxf", "drawing"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result dto.AnalysisResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Statistics.ValidEntities)
	assert.Equal(t, 10.0, result.CutLength.TotalMM)
	assert.Equal(t, 10.0, result.BoundingBox.Width)
}

func TestAnalyzeDXF_RejectsNonDXFExtension(t *testing.T) {
	app := newTestApp(t, &stubParser{})

	resp, err := app.Test(uploadRequest(t, "drawing.pdf", "content"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var result dto.AnalysisErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.False(t, result.Success)
	assert.Equal(t, "INVALID_FILE", result.Error)
}

func TestAnalyzeDXF_MissingFile(t *testing.T) {
	app := newTestApp(t, &stubParser{})

	req := httptest.NewRequest(http.MethodPost, "/analyze-dxf", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAnalyzeDXF_MalformedGeometry(t *testing.T) {
	app := newTestApp(t, &stubParser{
		entities: []domain.Entity{
			{
				Type:    domain.EntityCircle,
				Layer:   "CUT",
				Points:  []domain.Point{{X: 10, Y: 10}},
				Radius:  -1,
				Visible: true,
			},
		},
	})

	resp, err := app.Test(uploadRequest(t, "bad.dxf", "drawing"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var result dto.AnalysisErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "MALFORMED_GEOMETRY", result.Error)
}

func TestListAnalyses_HistoryDisabled(t *testing.T) {
	app := newTestApp(t, &stubParser{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
}

func TestGetAnalysis_InvalidID(t *testing.T) {
	app := newTestApp(t, &stubParser{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/not-a-uuid", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
