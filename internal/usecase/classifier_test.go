package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dxf-analyzer/internal/config"
	"github.com/dxf-analyzer/internal/domain"
	"github.com/dxf-analyzer/internal/geometry"
	"github.com/dxf-analyzer/internal/usecase"
)

func testClassifierConfig() config.ClassifierConfig {
	return config.ClassifierConfig{
		PhantomLayers:     []string{"DEFPOINTS", "PHANTOM", "HIDDEN", "CONSTRUCTION", "TEMP"},
		OriginEpsilon:     0.001,
		MaxLengthFactor:   10,
		MaxDistanceFactor: 5,
		CoordinateBound:   50000,
	}
}

func testStats() domain.DesignStatistics {
	return domain.DesignStatistics{
		Center:       domain.Point{X: 50, Y: 50},
		MaxDimension: 100,
	}
}

func classify(t *testing.T, e domain.Entity, stats domain.DesignStatistics) domain.ClassificationVerdict {
	t.Helper()
	c, err := usecase.NewClassifier(testClassifierConfig())
	require.NoError(t, err)

	verdict, err := c.Classify(e, geometry.EntityPoints(e), stats)
	require.NoError(t, err)
	return verdict
}

func TestNewClassifier_InvalidConfig(t *testing.T) {
	cfg := testClassifierConfig()
	cfg.MaxLengthFactor = -1

	_, err := usecase.NewClassifier(cfg)
	require.Error(t, err)

	cfg = testClassifierConfig()
	cfg.PhantomLayers = nil
	_, err = usecase.NewClassifier(cfg)
	require.Error(t, err)
}

func TestClassify_BlacklistedLayer(t *testing.T) {
	// Layer match is case-insensitive and ignores geometry
	for _, layer := range []string{"DEFPOINTS", "defpoints", "  Hidden "} {
		e := domain.Entity{
			Type:    domain.EntityLine,
			Layer:   layer,
			Points:  []domain.Point{{X: 40, Y: 40}, {X: 60, Y: 60}},
			Visible: true,
		}

		verdict := classify(t, e, testStats())
		assert.True(t, verdict.IsPhantom, "layer %q", layer)
		assert.Equal(t, domain.ReasonBlacklistedLayer, verdict.Reason)
	}
}

func TestClassify_Invisible(t *testing.T) {
	e := domain.Entity{
		Type:    domain.EntityLine,
		Layer:   "CUT",
		Points:  []domain.Point{{X: 40, Y: 40}, {X: 60, Y: 60}},
		Visible: false,
	}

	verdict := classify(t, e, testStats())
	assert.True(t, verdict.IsPhantom)
	assert.Equal(t, domain.ReasonInvisible, verdict.Reason)
}

func TestClassify_RulePriority(t *testing.T) {
	// Invisible entity on a blacklisted layer: the first rule wins
	e := domain.Entity{
		Type:    domain.EntityLine,
		Layer:   "PHANTOM",
		Points:  []domain.Point{{X: 40, Y: 40}, {X: 60, Y: 60}},
		Visible: false,
	}

	verdict := classify(t, e, testStats())
	assert.Equal(t, domain.ReasonBlacklistedLayer, verdict.Reason)
}

func TestClassify_NoValidPoints(t *testing.T) {
	e := domain.Entity{
		Type:    domain.EntityLWPolyline,
		Layer:   "CUT",
		Visible: true,
	}

	verdict := classify(t, e, testStats())
	assert.True(t, verdict.IsPhantom)
	assert.Equal(t, domain.ReasonNoValidPoints, verdict.Reason)
}

func TestClassify_ConnectsToOrigin(t *testing.T) {
	tests := []struct {
		name    string
		points  []domain.Point
		phantom bool
	}{
		{
			name:    "start at origin",
			points:  []domain.Point{{X: 0, Y: 0}, {X: 60, Y: 50}},
			phantom: true,
		},
		{
			name:    "end within epsilon of origin",
			points:  []domain.Point{{X: 60, Y: 50}, {X: 0.0005, Y: -0.0005}},
			phantom: true,
		},
		{
			name:    "near but outside epsilon",
			points:  []domain.Point{{X: 0.01, Y: 0.01}, {X: 60, Y: 50}},
			phantom: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := domain.Entity{
				Type:    domain.EntityLine,
				Layer:   "CUT",
				Points:  tt.points,
				Visible: true,
			}

			verdict := classify(t, e, testStats())
			assert.Equal(t, tt.phantom, verdict.IsPhantom)
			if tt.phantom {
				assert.Equal(t, domain.ReasonConnectsToOrigin, verdict.Reason)
			}
		})
	}
}

func TestClassify_OriginRuleIsLineOnly(t *testing.T) {
	// Polyline through the origin is not a drawing artifact
	e := domain.Entity{
		Type:    domain.EntityLWPolyline,
		Layer:   "CUT",
		Points:  []domain.Point{{X: 0, Y: 0}, {X: 60, Y: 50}, {X: 70, Y: 50}},
		Visible: true,
	}

	verdict := classify(t, e, testStats())
	assert.False(t, verdict.IsPhantom)
}

func TestClassify_ExcessiveLength(t *testing.T) {
	// Length 2000 against design dimension 100 and factor 10
	e := domain.Entity{
		Type:    domain.EntityLine,
		Layer:   "CUT",
		Points:  []domain.Point{{X: 50, Y: 50}, {X: 2050, Y: 50}},
		Visible: true,
	}

	verdict := classify(t, e, testStats())
	assert.True(t, verdict.IsPhantom)
	assert.Equal(t, domain.ReasonExcessiveLength, verdict.Reason)
}

func TestClassify_FarFromCenter(t *testing.T) {
	// Short line 700 units from center, threshold is 5*100
	e := domain.Entity{
		Type:    domain.EntityLine,
		Layer:   "CUT",
		Points:  []domain.Point{{X: 750, Y: 50}, {X: 751, Y: 50}},
		Visible: true,
	}

	verdict := classify(t, e, testStats())
	assert.True(t, verdict.IsPhantom)
	assert.Equal(t, domain.ReasonFarFromCenter, verdict.Reason)
}

func TestClassify_ExtremeCoordinate(t *testing.T) {
	// Stats from the drawing itself so the length and distance rules
	// do not fire before the seventh rule
	e := domain.Entity{
		Type:    domain.EntityLine,
		Layer:   "CUT",
		Points:  []domain.Point{{X: 99000, Y: 0}, {X: 100000, Y: 0}},
		Visible: true,
	}
	stats := usecase.ComputeDesignStatistics([]domain.Entity{e})

	verdict := classify(t, e, stats)
	assert.True(t, verdict.IsPhantom)
	assert.Equal(t, domain.ReasonExtremeCoordinate, verdict.Reason)
}

func TestClassify_ValidEntity(t *testing.T) {
	e := domain.Entity{
		Type:    domain.EntityCircle,
		Layer:   "CUT",
		Points:  []domain.Point{{X: 50, Y: 50}},
		Radius:  10,
		Visible: true,
	}

	verdict := classify(t, e, testStats())
	assert.False(t, verdict.IsPhantom)
	assert.Equal(t, domain.ReasonNone, verdict.Reason)
}

func TestClassify_EmptyDesign(t *testing.T) {
	e := domain.Entity{
		Type:    domain.EntityLine,
		Layer:   "CUT",
		Points:  []domain.Point{{X: 1, Y: 1}, {X: 2, Y: 2}},
		Visible: true,
	}

	verdict := classify(t, e, domain.DesignStatistics{Empty: true})
	assert.True(t, verdict.IsPhantom)
	assert.Equal(t, domain.ReasonNoValidPoints, verdict.Reason)
}
