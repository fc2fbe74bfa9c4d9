package usecase

import (
	"math"

	"github.com/dxf-analyzer/internal/domain"
)

// AggregateCutLength суммирует измеренные длины сущностей, признанных
// валидными. Вырожденные сущности нулевой длины остаются в сумме (дают 0).
// Результат округляется перед сериализацией: миллиметры до сотых,
// метры до тысячных.
func AggregateCutLength(valid []domain.ProcessedEntity) domain.CutLength {
	total := 0.0
	for _, e := range valid {
		total += e.Length
	}

	return domain.CutLength{
		TotalMM: roundTo(total, 2),
		TotalM:  roundTo(total/1000, 3),
	}
}

func roundTo(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}
