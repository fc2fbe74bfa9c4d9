package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dxf-analyzer/internal/domain"
	"github.com/dxf-analyzer/internal/parser"
)

// dxf assembles an ASCII DXF document from code/value pairs
func dxf(pairs ...string) string {
	return strings.Join(pairs, "\n") + "\n"
}

func TestParse_Line(t *testing.T) {
	doc := dxf(
		"0", "SECTION",
		"2", "ENTITIES",
		"0", "LINE",
		"8", "CUT",
		"10", "5.0",
		"20", "5.0",
		"11", "15.0",
		"21", "5.0",
		"0", "ENDSEC",
		"0", "EOF",
	)

	p := parser.New(zap.NewNop())
	entities, err := p.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, entities, 1)

	e := entities[0]
	assert.Equal(t, domain.EntityLine, e.Type)
	assert.Equal(t, "CUT", e.Layer)
	assert.True(t, e.Visible)
	require.Len(t, e.Points, 2)
	assert.Equal(t, domain.Point{X: 5, Y: 5}, e.Points[0])
	assert.Equal(t, domain.Point{X: 15, Y: 5}, e.Points[1])
}

func TestParse_InvisibleEntity(t *testing.T) {
	doc := dxf(
		"0", "SECTION",
		"2", "ENTITIES",
		"0", "LINE",
		"8", "CUT",
		"60", "1",
		"10", "0.0",
		"20", "0.0",
		"11", "1.0",
		"21", "1.0",
		"0", "ENDSEC",
	)

	entities, err := parser.New(zap.NewNop()).Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, entities, 1)
	assert.False(t, entities[0].Visible)
}

func TestParse_ClosedLWPolyline(t *testing.T) {
	doc := dxf(
		"0", "SECTION",
		"2", "ENTITIES",
		"0", "LWPOLYLINE",
		"8", "0",
		"70", "1",
		"10", "0",
		"20", "0",
		"10", "10",
		"20", "0",
		"10", "10",
		"20", "10",
		"0", "ENDSEC",
	)

	entities, err := parser.New(zap.NewNop()).Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, entities, 1)

	e := entities[0]
	assert.Equal(t, domain.EntityLWPolyline, e.Type)
	assert.True(t, e.Closed)
	require.Len(t, e.Points, 3)
	assert.Equal(t, domain.Point{X: 10, Y: 10}, e.Points[2])
}

func TestParse_PolylineWithVertices(t *testing.T) {
	doc := dxf(
		"0", "SECTION",
		"2", "ENTITIES",
		"0", "POLYLINE",
		"8", "FRAME",
		"0", "VERTEX",
		"8", "FRAME",
		"10", "1",
		"20", "2",
		"0", "VERTEX",
		"8", "FRAME",
		"10", "3",
		"20", "4",
		"0", "SEQEND",
		"0", "CIRCLE",
		"8", "0",
		"10", "50",
		"20", "50",
		"40", "10",
		"0", "ENDSEC",
	)

	entities, err := parser.New(zap.NewNop()).Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, entities, 2)

	poly := entities[0]
	assert.Equal(t, domain.EntityPolyline, poly.Type)
	assert.Equal(t, "FRAME", poly.Layer)
	require.Len(t, poly.Points, 2)
	assert.Equal(t, domain.Point{X: 3, Y: 4}, poly.Points[1])

	circle := entities[1]
	assert.Equal(t, domain.EntityCircle, circle.Type)
	require.Len(t, circle.Points, 1)
	assert.Equal(t, domain.Point{X: 50, Y: 50}, circle.Points[0])
	assert.Equal(t, 10.0, circle.Radius)
}

func TestParse_Arc(t *testing.T) {
	doc := dxf(
		"0", "SECTION",
		"2", "ENTITIES",
		"0", "ARC",
		"8", "0",
		"10", "0",
		"20", "0",
		"40", "5",
		"50", "0",
		"51", "90",
		"0", "ENDSEC",
	)

	entities, err := parser.New(zap.NewNop()).Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, entities, 1)

	e := entities[0]
	assert.Equal(t, domain.EntityArc, e.Type)
	assert.Equal(t, 5.0, e.Radius)
	assert.Equal(t, 0.0, e.StartAngle)
	assert.Equal(t, 90.0, e.EndAngle)
}

func TestParse_UnsupportedTypesAreCounted(t *testing.T) {
	doc := dxf(
		"0", "SECTION",
		"2", "ENTITIES",
		"0", "SPLINE",
		"8", "0",
		"10", "0",
		"20", "0",
		"10", "5",
		"20", "5",
		"0", "TEXT",
		"8", "NOTES",
		"0", "ENDSEC",
	)

	entities, err := parser.New(zap.NewNop()).Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, entities, 2)

	assert.Equal(t, domain.EntitySpline, entities[0].Type)
	assert.False(t, entities[0].Type.Measurable())
	require.Len(t, entities[0].Points, 2)

	assert.Equal(t, domain.EntityType("TEXT"), entities[1].Type)
	assert.Equal(t, "NOTES", entities[1].Layer)
	assert.False(t, entities[1].Type.Measurable())
}

func TestParse_Errors(t *testing.T) {
	t.Run("missing ENTITIES section", func(t *testing.T) {
		doc := dxf("0", "SECTION", "2", "HEADER", "0", "ENDSEC")
		_, err := parser.New(zap.NewNop()).Parse(strings.NewReader(doc))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ENTITIES")
	})

	t.Run("invalid coordinate", func(t *testing.T) {
		doc := dxf(
			"0", "SECTION",
			"2", "ENTITIES",
			"0", "LINE",
			"10", "not-a-number",
			"20", "0",
			"0", "ENDSEC",
		)
		_, err := parser.New(zap.NewNop()).Parse(strings.NewReader(doc))
		require.Error(t, err)
	})

	t.Run("dangling group code", func(t *testing.T) {
		_, err := parser.New(zap.NewNop()).Parse(strings.NewReader("0\n"))
		require.Error(t, err)
	})
}
