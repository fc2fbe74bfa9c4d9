package domain

import "math"

// EntityType - тип DXF сущности из секции ENTITIES
type EntityType string

const (
	EntityLine       EntityType = "LINE"
	EntityLWPolyline EntityType = "LWPOLYLINE"
	EntityPolyline   EntityType = "POLYLINE"
	EntityCircle     EntityType = "CIRCLE"
	EntityArc        EntityType = "ARC"
	EntitySpline     EntityType = "SPLINE"
)

// Measurable сообщает, умеет ли движок измерять и классифицировать этот тип.
// SPLINE пока не поддерживается: такие сущности учитываются в total_entities,
// но не попадают ни в valid, ни в phantom.
func (t EntityType) Measurable() bool {
	switch t {
	case EntityLine, EntityLWPolyline, EntityPolyline, EntityCircle, EntityArc:
		return true
	}
	return false
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceTo - евклидово расстояние до другой точки
func (p Point) DistanceTo(other Point) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// Finite проверяет, что обе координаты конечны
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Entity - сущность чертежа в том виде, в котором её отдаёт парсер.
// Points хранит определяющие точки: концы для LINE, вершины для полилиний,
// центр для CIRCLE/ARC. Геометрия окружностей дополняется Radius и углами
// (в градусах, как в DXF). После парсинга сущность не изменяется.
type Entity struct {
	Type       EntityType
	Layer      string
	Points     []Point
	Visible    bool
	Radius     float64
	StartAngle float64
	EndAngle   float64
	Closed     bool
}
