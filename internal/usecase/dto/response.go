package dto

import (
	"github.com/dxf-analyzer/internal/domain"
)

// AnalysisResponse - контракт ответа POST /analyze-dxf. Имена и вложенность
// полей являются внешним контрактом, менять их нельзя.
type AnalysisResponse struct {
	Success     bool              `json:"success"`
	Statistics  domain.Statistics `json:"statistics"`
	BoundingBox BoundingBox       `json:"bounding_box"`
	CutLength   domain.CutLength  `json:"cut_length"`
	Entities    EntityLists       `json:"entities"`
}

// BoundingBox - bounding box с производными размерами, как его отдаёт API
type BoundingBox struct {
	MinX   float64 `json:"min_x"`
	MinY   float64 `json:"min_y"`
	MaxX   float64 `json:"max_x"`
	MaxY   float64 `json:"max_y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Area   float64 `json:"area"`
}

type EntityLists struct {
	Valid   []domain.ProcessedEntity `json:"valid"`
	Phantom []domain.ProcessedEntity `json:"phantom"`
}

// AnalysisErrorResponse - ответ при неудачном анализе, плоский формат без envelope
type AnalysisErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// NewAnalysisResponse собирает контрактный ответ из отчёта движка
func NewAnalysisResponse(report *domain.AnalysisReport) *AnalysisResponse {
	bbox := report.BoundingBox
	return &AnalysisResponse{
		Success:    true,
		Statistics: report.Statistics,
		BoundingBox: BoundingBox{
			MinX:   bbox.MinX,
			MinY:   bbox.MinY,
			MaxX:   bbox.MaxX,
			MaxY:   bbox.MaxY,
			Width:  bbox.Width(),
			Height: bbox.Height(),
			Area:   bbox.Area(),
		},
		CutLength: report.CutLength,
		Entities: EntityLists{
			Valid:   report.Valid,
			Phantom: report.Phantom,
		},
	}
}
