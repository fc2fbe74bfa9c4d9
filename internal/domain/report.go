package domain

// BoundingBox - осевой ограничивающий прямоугольник.
// Инвариант: MinX <= MaxX, MinY <= MaxY. Вырожденный бокс (нет валидных
// точек) отличается от нулевого по площади флагом ok у вычисляющих функций.
type BoundingBox struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

func (b BoundingBox) Width() float64 {
	return b.MaxX - b.MinX
}

func (b BoundingBox) Height() float64 {
	return b.MaxY - b.MinY
}

func (b BoundingBox) Area() float64 {
	return b.Width() * b.Height()
}

// DesignStatistics - характеристики чертежа, вычисленные по полному
// (нефильтрованному) набору сущностей. Служат опорным масштабом для
// относительных порогов классификатора.
type DesignStatistics struct {
	Center       Point
	MaxDimension float64
	// Empty выставляется, когда набор не дал ни одной конечной точки.
	// В этом случае классификация невозможна и Center/MaxDimension
	// не должны использоваться как пороги.
	Empty bool
}

// CutLength - суммарная длина реза по валидным сущностям. Всегда >= 0.
// Единицы исходного чертежа не инспектируются, считаем что это миллиметры.
type CutLength struct {
	TotalMM float64 `json:"total_mm"`
	TotalM  float64 `json:"total_m"`
}

// ProcessedEntity - сущность после классификации и измерения.
// Points содержит представительные точки (для окружностей и дуг -
// сэмплированный периметр), Length - измеренную длину в мм.
type ProcessedEntity struct {
	EntityType      EntityType      `json:"entity_type"`
	Points          []Point         `json:"points"`
	Length          float64         `json:"length"`
	Layer           string          `json:"layer"`
	IsValid         bool            `json:"is_valid"`
	RejectionReason RejectionReason `json:"rejection_reason,omitempty"`
}

// Statistics - сводка по результату анализа
type Statistics struct {
	TotalEntities      int     `json:"total_entities"`
	ValidEntities      int     `json:"valid_entities"`
	PhantomEntities    int     `json:"phantom_entities"`
	DesignCenter       Point   `json:"design_center"`
	MaxDesignDimension float64 `json:"max_design_dimension"`
}

// AnalysisReport - полный результат одного вызова анализа.
// Собирается один раз, после сборки не изменяется. BoundingBox здесь
// считается только по валидным сущностям и намеренно отличается от
// полного набора, по которому считались DesignStatistics.
type AnalysisReport struct {
	Statistics  Statistics
	BoundingBox BoundingBox
	CutLength   CutLength
	Valid       []ProcessedEntity
	Phantom     []ProcessedEntity
}
