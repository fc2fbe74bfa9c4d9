// Package parser читает ASCII DXF и превращает секцию ENTITIES в
// последовательность доменных сущностей. Формат построчный: пары
// "групповой код / значение". Парсер не валидирует метаданные чертежа -
// движку анализа нужны только геометрия и атрибуты сущностей.
package parser

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/dxf-analyzer/internal/domain"
)

// Групповые коды DXF, которые понимает парсер
const (
	codeEntityType = 0
	codeSectionTag = 2
	codeLayer      = 8
	codeX          = 10
	codeY          = 20
	codeEndX       = 11
	codeEndY       = 21
	codeRadius     = 40
	codeStartAngle = 50
	codeEndAngle   = 51
	codeInvisible  = 60
	codeFlags      = 70
)

// closedFlag - бит 0 кода 70 у полилиний
const closedFlag = 1

type pair struct {
	code  int
	value string
}

// DXFParser - парсер чертежей для движка анализа
type DXFParser struct {
	logger *zap.Logger
}

// New создает новый экземпляр DXFParser
func New(logger *zap.Logger) *DXFParser {
	return &DXFParser{logger: logger}
}

// Parse читает DXF и возвращает все сущности секции ENTITIES в порядке
// следования. Неподдерживаемые типы возвращаются с пустой геометрией:
// движок учитывает их в total_entities, но не классифицирует.
func (p *DXFParser) Parse(r io.Reader) ([]domain.Entity, error) {
	pairs, err := readPairs(r)
	if err != nil {
		return nil, err
	}

	start := -1
	for i := 0; i+1 < len(pairs); i++ {
		if pairs[i].code == codeEntityType && pairs[i].value == "SECTION" &&
			pairs[i+1].code == codeSectionTag && pairs[i+1].value == "ENTITIES" {
			start = i + 2
			break
		}
	}
	if start < 0 {
		return nil, fmt.Errorf("dxf: ENTITIES section not found")
	}

	entities := make([]domain.Entity, 0)
	i := start
	for i < len(pairs) {
		if pairs[i].code != codeEntityType {
			i++
			continue
		}
		name := pairs[i].value
		if name == "ENDSEC" {
			break
		}

		block, next := entityBlock(pairs, i+1)

		var entity domain.Entity
		switch entityType := domain.EntityType(name); entityType {
		case domain.EntityLine:
			entity, err = buildLine(block)
		case domain.EntityLWPolyline:
			entity, err = buildLWPolyline(block)
		case domain.EntityPolyline:
			entity, next, err = buildPolyline(pairs, block, next)
		case domain.EntityCircle, domain.EntityArc:
			entity, err = buildCircular(entityType, block)
		case domain.EntitySpline:
			entity, err = buildSpline(block)
		default:
			p.logger.Debug("Unsupported entity type", zap.String("type", name))
			entity = domain.Entity{Type: entityType, Visible: true}
			if attrs, attrErr := collectAttrs(block); attrErr == nil {
				entity.Layer = attrs.layer
				entity.Visible = attrs.visible
			}
		}
		if err != nil {
			return nil, fmt.Errorf("dxf: %s entity: %w", name, err)
		}

		entities = append(entities, entity)
		i = next
	}

	return entities, nil
}

// readPairs читает все пары "код/значение" из потока
func readPairs(r io.Reader) ([]pair, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var pairs []pair
	for sc.Scan() {
		codeLine := strings.TrimSpace(sc.Text())
		if codeLine == "" {
			continue
		}

		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, fmt.Errorf("dxf: read value: %w", err)
			}
			return nil, fmt.Errorf("dxf: group code %q without value", codeLine)
		}
		value := strings.TrimSpace(sc.Text())

		code, err := strconv.Atoi(codeLine)
		if err != nil {
			return nil, fmt.Errorf("dxf: invalid group code %q", codeLine)
		}
		pairs = append(pairs, pair{code: code, value: value})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("dxf: read: %w", err)
	}
	return pairs, nil
}

// entityBlock возвращает атрибуты сущности до следующего кода 0
func entityBlock(pairs []pair, from int) ([]pair, int) {
	j := from
	for j < len(pairs) && pairs[j].code != codeEntityType {
		j++
	}
	return pairs[from:j], j
}

type entityAttrs struct {
	layer      string
	visible    bool
	xs, ys     []float64
	endX, endY float64
	hasEndX    bool
	hasEndY    bool
	radius     float64
	startAngle float64
	endAngle   float64
	flags      int
}

func collectAttrs(block []pair) (entityAttrs, error) {
	attrs := entityAttrs{visible: true}
	for _, p := range block {
		var err error
		switch p.code {
		case codeLayer:
			attrs.layer = p.value
		case codeInvisible:
			if v, convErr := strconv.Atoi(p.value); convErr == nil && v == 1 {
				attrs.visible = false
			}
		case codeX:
			var x float64
			if x, err = parseFloat(p.value); err == nil {
				attrs.xs = append(attrs.xs, x)
			}
		case codeY:
			var y float64
			if y, err = parseFloat(p.value); err == nil {
				attrs.ys = append(attrs.ys, y)
			}
		case codeEndX:
			attrs.endX, err = parseFloat(p.value)
			attrs.hasEndX = err == nil
		case codeEndY:
			attrs.endY, err = parseFloat(p.value)
			attrs.hasEndY = err == nil
		case codeRadius:
			attrs.radius, err = parseFloat(p.value)
		case codeStartAngle:
			attrs.startAngle, err = parseFloat(p.value)
		case codeEndAngle:
			attrs.endAngle, err = parseFloat(p.value)
		case codeFlags:
			attrs.flags, _ = strconv.Atoi(p.value)
		}
		if err != nil {
			return attrs, err
		}
	}
	return attrs, nil
}

// vertices собирает точки из последовательностей кодов 10/20
func (a entityAttrs) vertices() []domain.Point {
	n := len(a.xs)
	if len(a.ys) < n {
		n = len(a.ys)
	}
	points := make([]domain.Point, 0, n)
	for i := 0; i < n; i++ {
		points = append(points, domain.Point{X: a.xs[i], Y: a.ys[i]})
	}
	return points
}

func buildLine(block []pair) (domain.Entity, error) {
	attrs, err := collectAttrs(block)
	if err != nil {
		return domain.Entity{}, err
	}

	points := attrs.vertices()
	if len(points) > 1 {
		points = points[:1]
	}
	if attrs.hasEndX && attrs.hasEndY {
		points = append(points, domain.Point{X: attrs.endX, Y: attrs.endY})
	}

	return domain.Entity{
		Type:    domain.EntityLine,
		Layer:   attrs.layer,
		Points:  points,
		Visible: attrs.visible,
	}, nil
}

func buildLWPolyline(block []pair) (domain.Entity, error) {
	attrs, err := collectAttrs(block)
	if err != nil {
		return domain.Entity{}, err
	}

	return domain.Entity{
		Type:    domain.EntityLWPolyline,
		Layer:   attrs.layer,
		Points:  attrs.vertices(),
		Visible: attrs.visible,
		Closed:  attrs.flags&closedFlag != 0,
	}, nil
}

// buildPolyline собирает классическую POLYLINE: вершины идут отдельными
// VERTEX сущностями до SEQEND
func buildPolyline(pairs []pair, block []pair, next int) (domain.Entity, int, error) {
	attrs, err := collectAttrs(block)
	if err != nil {
		return domain.Entity{}, next, err
	}

	var points []domain.Point
	i := next
	for i < len(pairs) {
		if pairs[i].code != codeEntityType {
			i++
			continue
		}
		if pairs[i].value == "SEQEND" {
			_, i = entityBlock(pairs, i+1)
			break
		}
		if pairs[i].value != "VERTEX" {
			break
		}

		vertexBlock, after := entityBlock(pairs, i+1)
		vertexAttrs, err := collectAttrs(vertexBlock)
		if err != nil {
			return domain.Entity{}, after, err
		}
		points = append(points, vertexAttrs.vertices()...)
		i = after
	}

	return domain.Entity{
		Type:    domain.EntityPolyline,
		Layer:   attrs.layer,
		Points:  points,
		Visible: attrs.visible,
		Closed:  attrs.flags&closedFlag != 0,
	}, i, nil
}

func buildCircular(entityType domain.EntityType, block []pair) (domain.Entity, error) {
	attrs, err := collectAttrs(block)
	if err != nil {
		return domain.Entity{}, err
	}

	points := attrs.vertices()
	if len(points) > 1 {
		points = points[:1]
	}

	return domain.Entity{
		Type:       entityType,
		Layer:      attrs.layer,
		Points:     points,
		Visible:    attrs.visible,
		Radius:     attrs.radius,
		StartAngle: attrs.startAngle,
		EndAngle:   attrs.endAngle,
	}, nil
}

func buildSpline(block []pair) (domain.Entity, error) {
	attrs, err := collectAttrs(block)
	if err != nil {
		return domain.Entity{}, err
	}

	return domain.Entity{
		Type:    domain.EntitySpline,
		Layer:   attrs.layer,
		Points:  attrs.vertices(),
		Visible: attrs.visible,
		Closed:  attrs.flags&closedFlag != 0,
	}, nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid coordinate %q", s)
	}
	return v, nil
}
