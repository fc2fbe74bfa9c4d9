package usecase

import (
	"math"

	"github.com/dxf-analyzer/internal/domain"
	"github.com/dxf-analyzer/internal/geometry"
)

// ComputeDesignStatistics считает опорные характеристики чертежа по полному,
// ещё не отфильтрованному набору сущностей: центр масс (среднее всех
// представительных точек) и максимальный габарит bounding box. Именно эти
// значения служат масштабом для порогов классификатора, поэтому считать их
// нужно до классификации. Неконечные точки пропускаются.
func ComputeDesignStatistics(entities []domain.Entity) domain.DesignStatistics {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	var sumX, sumY float64
	count := 0

	for _, e := range entities {
		if !e.Type.Measurable() {
			continue
		}
		for _, p := range geometry.EntityPoints(e) {
			if !p.Finite() {
				continue
			}
			minX = math.Min(minX, p.X)
			maxX = math.Max(maxX, p.X)
			minY = math.Min(minY, p.Y)
			maxY = math.Max(maxY, p.Y)
			sumX += p.X
			sumY += p.Y
			count++
		}
	}

	if count == 0 {
		return domain.DesignStatistics{Empty: true}
	}

	return domain.DesignStatistics{
		Center: domain.Point{
			X: sumX / float64(count),
			Y: sumY / float64(count),
		},
		MaxDimension: math.Max(maxX-minX, maxY-minY),
	}
}

// ComputeValidBoundingBox считает bounding box только по валидным сущностям
// для итогового отчёта. Это отдельное вычисление, а не переиспользование
// статистики полного набора: фантомные сущности не должны растягивать бокс.
// ok=false означает вырожденный бокс (валидных точек нет) - это не то же
// самое, что бокс с нулевой площадью.
func ComputeValidBoundingBox(entities []domain.ProcessedEntity) (domain.BoundingBox, bool) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	found := false

	for _, e := range entities {
		for _, p := range e.Points {
			minX = math.Min(minX, p.X)
			maxX = math.Max(maxX, p.X)
			minY = math.Min(minY, p.Y)
			maxY = math.Max(maxY, p.Y)
			found = true
		}
	}

	if !found {
		return domain.BoundingBox{}, false
	}

	return domain.BoundingBox{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}, true
}
