package usecase

import (
	"fmt"
	"math"
	"strings"

	"github.com/dxf-analyzer/internal/config"
	"github.com/dxf-analyzer/internal/domain"
	"github.com/dxf-analyzer/internal/geometry"
	"github.com/dxf-analyzer/internal/pkg/validator"
)

// classifierThresholds - провалидированные пороги классификатора
type classifierThresholds struct {
	PhantomLayers     []string `validate:"min=1,dive,required"`
	OriginEpsilon     float64  `validate:"gt=0"`
	MaxLengthFactor   float64  `validate:"gt=0"`
	MaxDistanceFactor float64  `validate:"gt=0"`
	CoordinateBound   float64  `validate:"gt=0"`
}

// Classifier выносит вердикт valid/phantom для каждой сущности чертежа.
// Правила проверяются в строгом порядке приоритета, первое совпавшее
// определяет причину, остальные не проверяются.
type Classifier struct {
	thresholds classifierThresholds
	layers     map[string]struct{}
}

// NewClassifier создаёт классификатор, проверяя конфигурацию порогов
func NewClassifier(cfg config.ClassifierConfig) (*Classifier, error) {
	thresholds := classifierThresholds{
		PhantomLayers:     cfg.PhantomLayers,
		OriginEpsilon:     cfg.OriginEpsilon,
		MaxLengthFactor:   cfg.MaxLengthFactor,
		MaxDistanceFactor: cfg.MaxDistanceFactor,
		CoordinateBound:   cfg.CoordinateBound,
	}
	if err := validator.Validate(&thresholds); err != nil {
		return nil, fmt.Errorf("invalid classifier config: %w", err)
	}

	layers := make(map[string]struct{}, len(cfg.PhantomLayers))
	for _, l := range cfg.PhantomLayers {
		layers[strings.ToUpper(strings.TrimSpace(l))] = struct{}{}
	}

	return &Classifier{thresholds: thresholds, layers: layers}, nil
}

// ruleContext - входные данные правил для одной сущности. Длина сущности
// измеряется лениво: до правила длины дело доходит не всегда.
type ruleContext struct {
	entity domain.Entity
	points []domain.Point
	stats  domain.DesignStatistics

	length    float64
	lengthErr error
	measured  bool
}

func (rc *ruleContext) measuredLength() (float64, error) {
	if !rc.measured {
		rc.length, rc.lengthErr = geometry.EntityLength(rc.entity)
		rc.measured = true
	}
	return rc.length, rc.lengthErr
}

// rule - пара предикат + код причины
type rule struct {
	reason domain.RejectionReason
	match  func(*Classifier, *ruleContext) (bool, error)
}

// phantomRules - цепочка правил в порядке приоритета
var phantomRules = []rule{
	{domain.ReasonBlacklistedLayer, (*Classifier).matchBlacklistedLayer},
	{domain.ReasonInvisible, (*Classifier).matchInvisible},
	{domain.ReasonNoValidPoints, (*Classifier).matchNoValidPoints},
	{domain.ReasonConnectsToOrigin, (*Classifier).matchConnectsToOrigin},
	{domain.ReasonExcessiveLength, (*Classifier).matchExcessiveLength},
	{domain.ReasonFarFromCenter, (*Classifier).matchFarFromCenter},
	{domain.ReasonExtremeCoordinate, (*Classifier).matchExtremeCoordinate},
}

// Classify выносит вердикт для одной сущности. points - её представительные
// точки, stats - статистика полного набора. Ошибка возвращается только при
// неизмеримой геометрии и прерывает весь анализ.
func (c *Classifier) Classify(entity domain.Entity, points []domain.Point, stats domain.DesignStatistics) (domain.ClassificationVerdict, error) {
	// Пустой чертёж не даёт масштаба для порогов - классификация
	// невозможна, все сущности считаются фантомными.
	if stats.Empty {
		return domain.PhantomVerdict(domain.ReasonNoValidPoints), nil
	}

	rc := &ruleContext{entity: entity, points: points, stats: stats}
	for _, r := range phantomRules {
		matched, err := r.match(c, rc)
		if err != nil {
			return domain.ClassificationVerdict{}, err
		}
		if matched {
			return domain.PhantomVerdict(r.reason), nil
		}
	}

	return domain.ValidVerdict(), nil
}

// Правило 1: сущность лежит на служебном слое
func (c *Classifier) matchBlacklistedLayer(rc *ruleContext) (bool, error) {
	layer := strings.ToUpper(strings.TrimSpace(rc.entity.Layer))
	_, blacklisted := c.layers[layer]
	return blacklisted, nil
}

// Правило 2: сущность помечена невидимой
func (c *Classifier) matchInvisible(rc *ruleContext) (bool, error) {
	return !rc.entity.Visible, nil
}

// Правило 3: нет точек или координаты неконечны
func (c *Classifier) matchNoValidPoints(rc *ruleContext) (bool, error) {
	if len(rc.points) == 0 {
		return true, nil
	}
	for _, p := range rc.points {
		if !p.Finite() {
			return true, nil
		}
	}
	return false, nil
}

// Правило 4: линия, один из концов которой лежит в начале координат -
// типичный чертёжный артефакт, а не реальная линия реза
func (c *Classifier) matchConnectsToOrigin(rc *ruleContext) (bool, error) {
	if rc.entity.Type != domain.EntityLine || len(rc.entity.Points) < 2 {
		return false, nil
	}
	eps := c.thresholds.OriginEpsilon
	for _, p := range rc.entity.Points[:2] {
		if math.Abs(p.X) < eps && math.Abs(p.Y) < eps {
			return true, nil
		}
	}
	return false, nil
}

// Правило 5: измеренная длина превышает MaxLengthFactor габаритов чертежа
func (c *Classifier) matchExcessiveLength(rc *ruleContext) (bool, error) {
	length, err := rc.measuredLength()
	if err != nil {
		return false, err
	}
	return length > c.thresholds.MaxLengthFactor*rc.stats.MaxDimension, nil
}

// Правило 6: сущность слишком далеко от центра чертежа
func (c *Classifier) matchFarFromCenter(rc *ruleContext) (bool, error) {
	center := geometry.Centroid(rc.points)
	distance := center.DistanceTo(rc.stats.Center)
	return distance > c.thresholds.MaxDistanceFactor*rc.stats.MaxDimension, nil
}

// Правило 7: хотя бы одна координата выходит за абсолютную границу
func (c *Classifier) matchExtremeCoordinate(rc *ruleContext) (bool, error) {
	bound := c.thresholds.CoordinateBound
	for _, p := range rc.points {
		if math.Abs(p.X) > bound || math.Abs(p.Y) > bound {
			return true, nil
		}
	}
	return false, nil
}
