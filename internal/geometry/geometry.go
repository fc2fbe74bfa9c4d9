// Package geometry содержит чистые геометрические примитивы движка анализа:
// длины отрезков, полилиний, дуг и окружностей, а также сэмплирование
// представительных точек сущности. Некорректная геометрия (неконечные
// координаты, отрицательный радиус, нехватка точек) сигнализируется
// ошибкой ErrMalformedGeometry, а не NaN или нулём.
package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/dxf-analyzer/internal/domain"
)

// ErrMalformedGeometry - геометрию сущности невозможно измерить
var ErrMalformedGeometry = errors.New("malformed geometry")

// circleSegments - количество сегментов при сэмплировании окружностей и дуг
const circleSegments = 16

// SegmentLength - евклидова длина отрезка между двумя точками
func SegmentLength(a, b domain.Point) (float64, error) {
	if !a.Finite() || !b.Finite() {
		return 0, fmt.Errorf("%w: non-finite segment endpoints", ErrMalformedGeometry)
	}
	return a.DistanceTo(b), nil
}

// PolylineLength - сумма длин последовательных отрезков полилинии.
// Для замкнутой полилинии добавляется отрезок от последней точки к первой.
func PolylineLength(points []domain.Point, closed bool) (float64, error) {
	if len(points) < 2 {
		return 0, fmt.Errorf("%w: polyline with %d points", ErrMalformedGeometry, len(points))
	}

	total := 0.0
	for i := 0; i < len(points)-1; i++ {
		d, err := SegmentLength(points[i], points[i+1])
		if err != nil {
			return 0, err
		}
		total += d
	}

	if closed {
		d, err := SegmentLength(points[len(points)-1], points[0])
		if err != nil {
			return 0, err
		}
		total += d
	}

	return total, nil
}

// ArcLength - длина дуги radius * delta, где delta - угол дуги,
// нормализованный в (0, 2π]. Углы задаются в градусах, как в DXF.
// Совпадающие начальный и конечный углы означают полную окружность.
func ArcLength(radius, startDeg, endDeg float64) (float64, error) {
	if err := checkRadius(radius); err != nil {
		return 0, err
	}
	if !finite(startDeg) || !finite(endDeg) {
		return 0, fmt.Errorf("%w: non-finite arc angles", ErrMalformedGeometry)
	}
	return radius * arcDelta(startDeg, endDeg), nil
}

// CircleCircumference - длина окружности 2π·radius
func CircleCircumference(radius float64) (float64, error) {
	if err := checkRadius(radius); err != nil {
		return 0, err
	}
	return 2 * math.Pi * radius, nil
}

// EntityLength измеряет длину сущности, выбирая примитив по её типу.
// Для неподдерживаемых типов возвращает 0 без ошибки.
func EntityLength(e domain.Entity) (float64, error) {
	switch e.Type {
	case domain.EntityLine:
		if len(e.Points) < 2 {
			return 0, fmt.Errorf("%w: line with %d points", ErrMalformedGeometry, len(e.Points))
		}
		return SegmentLength(e.Points[0], e.Points[1])
	case domain.EntityLWPolyline, domain.EntityPolyline:
		return PolylineLength(e.Points, e.Closed)
	case domain.EntityCircle:
		return CircleCircumference(e.Radius)
	case domain.EntityArc:
		return ArcLength(e.Radius, e.StartAngle, e.EndAngle)
	}
	return 0, nil
}

// EntityPoints возвращает представительные точки сущности: вершины для
// линий и полилиний, сэмплированный периметр для окружностей и дуг.
// Точки используются для статистики чертежа, bounding box и правил
// классификатора; сама сущность не изменяется.
func EntityPoints(e domain.Entity) []domain.Point {
	switch e.Type {
	case domain.EntityCircle:
		if len(e.Points) == 0 {
			return nil
		}
		return sampleCircle(e.Points[0], e.Radius)
	case domain.EntityArc:
		if len(e.Points) == 0 {
			return nil
		}
		return sampleArc(e.Points[0], e.Radius, e.StartAngle, e.EndAngle)
	}
	return e.Points
}

// Centroid - среднее арифметическое набора точек
func Centroid(points []domain.Point) domain.Point {
	if len(points) == 0 {
		return domain.Point{}
	}
	var sumX, sumY float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
	}
	n := float64(len(points))
	return domain.Point{X: sumX / n, Y: sumY / n}
}

// sampleCircle - точки периметра окружности, circleSegments штук
func sampleCircle(center domain.Point, radius float64) []domain.Point {
	points := make([]domain.Point, 0, circleSegments)
	for i := 0; i < circleSegments; i++ {
		angle := 2 * math.Pi * float64(i) / circleSegments
		points = append(points, domain.Point{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		})
	}
	return points
}

// sampleArc - точки дуги от начального угла до конечного, включая оба конца
func sampleArc(center domain.Point, radius, startDeg, endDeg float64) []domain.Point {
	start := startDeg * math.Pi / 180
	delta := arcDelta(startDeg, endDeg)

	points := make([]domain.Point, 0, circleSegments+1)
	for i := 0; i <= circleSegments; i++ {
		angle := start + delta*float64(i)/circleSegments
		points = append(points, domain.Point{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		})
	}
	return points
}

// arcDelta - угол дуги в радианах, нормализованный в (0, 2π].
// Совпадение углов трактуется как полная окружность, не как нулевая дуга.
func arcDelta(startDeg, endDeg float64) float64 {
	delta := math.Mod((endDeg-startDeg)*math.Pi/180, 2*math.Pi)
	if delta < 0 {
		delta += 2 * math.Pi
	}
	if delta == 0 {
		delta = 2 * math.Pi
	}
	return delta
}

func checkRadius(radius float64) error {
	if !finite(radius) || radius < 0 {
		return fmt.Errorf("%w: invalid radius %v", ErrMalformedGeometry, radius)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
