package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dxf-analyzer/internal/domain"
	"github.com/dxf-analyzer/internal/domain/repository"
)

const createAnalysesTable = `
CREATE TABLE IF NOT EXISTS analyses (
	id               UUID PRIMARY KEY,
	file_name        TEXT NOT NULL,
	checksum         TEXT NOT NULL,
	total_entities   INTEGER NOT NULL,
	valid_entities   INTEGER NOT NULL,
	phantom_entities INTEGER NOT NULL,
	cut_length_mm    DOUBLE PRECISION NOT NULL,
	max_dimension    DOUBLE PRECISION NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS analyses_created_at_idx ON analyses (created_at DESC);
`

type analysisRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewAnalysisRepository создает репозиторий истории анализов и при
// необходимости создаёт таблицу
func NewAnalysisRepository(ctx context.Context, db *DB, logger *zap.Logger) (repository.AnalysisRepository, error) {
	if _, err := db.ExecContext(ctx, createAnalysesTable); err != nil {
		return nil, fmt.Errorf("create analyses table: %w", err)
	}

	return &analysisRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *analysisRepository) Save(ctx context.Context, record domain.AnalysisRecord) error {
	query := `
		INSERT INTO analyses (
			id, file_name, checksum, total_entities, valid_entities,
			phantom_entities, cut_length_mm, max_dimension, created_at
		) VALUES (
			:id, :file_name, :checksum, :total_entities, :valid_entities,
			:phantom_entities, :cut_length_mm, :max_dimension, :created_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		r.logger.Error("failed to insert analysis record",
			zap.String("id", record.ID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("insert analysis record: %w", err)
	}

	return nil
}

func (r *analysisRepository) List(ctx context.Context, limit, offset int) ([]domain.AnalysisRecord, error) {
	query := `
		SELECT id, file_name, checksum, total_entities, valid_entities,
		       phantom_entities, cut_length_mm, max_dimension, created_at
		FROM analyses
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	records := make([]domain.AnalysisRecord, 0)
	if err := r.db.SelectContext(ctx, &records, query, limit, offset); err != nil {
		return nil, fmt.Errorf("list analysis records: %w", err)
	}

	return records, nil
}

func (r *analysisRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AnalysisRecord, error) {
	query := `
		SELECT id, file_name, checksum, total_entities, valid_entities,
		       phantom_entities, cut_length_mm, max_dimension, created_at
		FROM analyses
		WHERE id = $1`

	var record domain.AnalysisRecord
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get analysis record: %w", err)
	}

	return &record, nil
}
