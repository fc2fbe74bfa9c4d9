package usecase

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dxf-analyzer/internal/domain"
	"github.com/dxf-analyzer/internal/domain/repository"
	"github.com/dxf-analyzer/internal/geometry"
	apperrors "github.com/dxf-analyzer/internal/pkg/errors"
	"github.com/dxf-analyzer/internal/usecase/dto"
)

// emptyDesignDimension - габарит, который отдаётся в статистике пустого
// чертежа. Для порогов классификатора не используется.
const emptyDesignDimension = 1000

// DrawingParser - внешний коллаборатор, превращающий байты чертежа в
// последовательность типизированных сущностей
type DrawingParser interface {
	Parse(r io.Reader) ([]domain.Entity, error)
}

// AnalysisUseCase обрабатывает бизнес-логику анализа чертежа: статистика,
// классификация, агрегация длины реза, кеширование отчётов и история.
// Репозитории опциональны: при nil кеш и история просто выключены.
type AnalysisUseCase struct {
	parser      DrawingParser
	classifier  *Classifier
	cacheRepo   repository.CacheRepository
	historyRepo repository.AnalysisRepository
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// NewAnalysisUseCase создает новый экземпляр AnalysisUseCase
func NewAnalysisUseCase(
	parser DrawingParser,
	classifier *Classifier,
	cacheRepo repository.CacheRepository,
	historyRepo repository.AnalysisRepository,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *AnalysisUseCase {
	return &AnalysisUseCase{
		parser:      parser,
		classifier:  classifier,
		cacheRepo:   cacheRepo,
		historyRepo: historyRepo,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

// Analyze - один проход движка по снимку сущностей:
// статистика полного набора -> классификация -> разбиение на valid/phantom ->
// агрегация длины реза -> bounding box по валидной части -> отчёт.
// Детерминирован: повторный вызов на том же входе даёт идентичный отчёт.
// Единственная ошибка - неизмеримая геометрия, она прерывает весь анализ
// без частичного отчёта.
func (uc *AnalysisUseCase) Analyze(entities []domain.Entity) (*domain.AnalysisReport, error) {
	stats := ComputeDesignStatistics(entities)

	valid := make([]domain.ProcessedEntity, 0)
	phantom := make([]domain.ProcessedEntity, 0)

	for _, e := range entities {
		// SPLINE и неизвестные типы учитываются только в total_entities
		if !e.Type.Measurable() {
			continue
		}

		points := geometry.EntityPoints(e)

		verdict, err := uc.classifier.Classify(e, points, stats)
		if err != nil {
			return nil, fmt.Errorf("classify %s entity: %w", e.Type, err)
		}

		length := 0.0
		if verdict.Reason != domain.ReasonNoValidPoints {
			length, err = geometry.EntityLength(e)
			if err != nil {
				return nil, fmt.Errorf("measure %s entity: %w", e.Type, err)
			}
		}

		processed := domain.ProcessedEntity{
			EntityType: e.Type,
			// JSON не переносит NaN/Inf, такие точки из отчёта выпадают
			Points:  finitePoints(points),
			Length:  length,
			Layer:   e.Layer,
			IsValid: !verdict.IsPhantom,
		}

		if verdict.IsPhantom {
			processed.RejectionReason = verdict.Reason
			phantom = append(phantom, processed)
		} else {
			valid = append(valid, processed)
		}
	}

	// Bounding box отчёта считается заново и только по валидной части -
	// это не та же рамка, по которой считались пороги.
	bbox, _ := ComputeValidBoundingBox(valid)

	reportStats := domain.Statistics{
		TotalEntities:      len(entities),
		ValidEntities:      len(valid),
		PhantomEntities:    len(phantom),
		DesignCenter:       stats.Center,
		MaxDesignDimension: stats.MaxDimension,
	}
	if stats.Empty {
		reportStats.MaxDesignDimension = emptyDesignDimension
	}

	return &domain.AnalysisReport{
		Statistics:  reportStats,
		BoundingBox: bbox,
		CutLength:   AggregateCutLength(valid),
		Valid:       valid,
		Phantom:     phantom,
	}, nil
}

// AnalyzeFile парсит загруженный чертёж и прогоняет его через движок.
// Отчёты кешируются по контрольной сумме содержимого; успешные анализы
// best-effort записываются в историю.
func (uc *AnalysisUseCase) AnalyzeFile(ctx context.Context, fileName string, content []byte) (*dto.AnalysisResponse, error) {
	sum := sha256.Sum256(content)
	checksum := hex.EncodeToString(sum[:])
	cacheKey := "report:" + checksum

	if uc.cacheRepo != nil {
		cached, err := uc.cacheRepo.Get(ctx, cacheKey)
		if err != nil {
			uc.logger.Warn("Failed to get report from cache", zap.Error(err))
		} else if cached != nil {
			var resp dto.AnalysisResponse
			if err := json.Unmarshal(cached, &resp); err != nil {
				uc.logger.Warn("Failed to decode cached report, recomputing", zap.Error(err))
			} else {
				uc.logger.Debug("Analysis report fetched from cache", zap.String("checksum", checksum))
				return &resp, nil
			}
		}
	}

	entities, err := uc.parser.Parse(bytes.NewReader(content))
	if err != nil {
		uc.logger.Warn("Failed to parse drawing",
			zap.String("file", fileName),
			zap.Error(err),
		)
		return nil, apperrors.ErrInvalidFile
	}

	uc.logger.Info("Analyzing drawing",
		zap.String("file", fileName),
		zap.Int("entities", len(entities)),
	)

	report, err := uc.Analyze(entities)
	if err != nil {
		if errors.Is(err, geometry.ErrMalformedGeometry) {
			uc.logger.Warn("Drawing contains malformed geometry",
				zap.String("file", fileName),
				zap.Error(err),
			)
			return nil, apperrors.ErrMalformedGeometry
		}
		return nil, err
	}

	uc.logger.Info("Analysis completed",
		zap.String("file", fileName),
		zap.Int("valid", report.Statistics.ValidEntities),
		zap.Int("phantom", report.Statistics.PhantomEntities),
		zap.Float64("cut_length_mm", report.CutLength.TotalMM),
	)

	resp := dto.NewAnalysisResponse(report)

	if uc.cacheRepo != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := uc.cacheRepo.Set(ctx, cacheKey, data, uc.cacheTTL); err != nil {
				uc.logger.Warn("Failed to cache report", zap.Error(err))
			}
		}
	}

	if uc.historyRepo != nil {
		record := domain.NewAnalysisRecord(fileName, checksum, report)
		if err := uc.historyRepo.Save(ctx, record); err != nil {
			// История вторична, результат анализа уже есть
			uc.logger.Warn("Failed to save analysis record", zap.Error(err))
		}
	}

	return resp, nil
}

// ListAnalyses возвращает последние записи истории анализов
func (uc *AnalysisUseCase) ListAnalyses(ctx context.Context, req dto.ListAnalysesRequest) ([]domain.AnalysisRecord, error) {
	if uc.historyRepo == nil {
		return nil, apperrors.ErrHistoryDisabled
	}

	records, err := uc.historyRepo.List(ctx, req.Limit, req.Offset)
	if err != nil {
		uc.logger.Error("Failed to list analyses", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return records, nil
}

// GetAnalysis возвращает запись истории по идентификатору
func (uc *AnalysisUseCase) GetAnalysis(ctx context.Context, id uuid.UUID) (*domain.AnalysisRecord, error) {
	if uc.historyRepo == nil {
		return nil, apperrors.ErrHistoryDisabled
	}

	record, err := uc.historyRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Error("Failed to get analysis", zap.String("id", id.String()), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	if record == nil {
		return nil, apperrors.ErrAnalysisNotFound
	}
	return record, nil
}

func finitePoints(points []domain.Point) []domain.Point {
	for _, p := range points {
		if !p.Finite() {
			filtered := make([]domain.Point, 0, len(points))
			for _, q := range points {
				if q.Finite() {
					filtered = append(filtered, q)
				}
			}
			return filtered
		}
	}
	return points
}
