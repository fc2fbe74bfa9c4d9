package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/dxf-analyzer/internal/domain"
)

// AnalysisRepository определяет методы для хранения истории анализов
type AnalysisRepository interface {
	// Save сохраняет сводку анализа
	Save(ctx context.Context, record domain.AnalysisRecord) error

	// List возвращает последние записи (сортировка по created_at desc)
	List(ctx context.Context, limit, offset int) ([]domain.AnalysisRecord, error)

	// GetByID возвращает запись по идентификатору
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AnalysisRecord, error)
}
