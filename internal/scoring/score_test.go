// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/resilience-engine/pkg/types"
)

func TestScore_TwoPartnerScenario(t *testing.T) {
	imports := types.PartnerValueMap{"A": 600, "B": 400}
	exports := types.PartnerValueMap{}

	got, err := Score(imports, exports, 10)
	require.NoError(t, err)

	assert.Equal(t, 1000.0, got.TotalImports)
	assert.Equal(t, 0.0, got.TotalExports)
	assert.Equal(t, 0.52, got.HHI)
	assert.Equal(t, 0.2, got.DiversityScore)
	assert.Equal(t, 1.0, got.IDI)
	// (0.52 + 0.8 + 1.0) / 3
	assert.Equal(t, 0.7733, got.SCRI)
	assert.Equal(t, 2, got.ImportPartnerCount)
}

func TestScore_NoImportsIsTerminal(t *testing.T) {
	_, err := Score(types.PartnerValueMap{}, types.PartnerValueMap{"A": 100}, 10)
	assert.ErrorIs(t, err, ErrNoImportData)

	_, err = Score(nil, nil, 10)
	assert.ErrorIs(t, err, ErrNoImportData)
}

func TestScore_HHIBounds(t *testing.T) {
	// Single partner holds 100% of imports.
	got, err := Score(types.PartnerValueMap{"A": 500}, nil, 100)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.HHI)

	// Equal shares across N partners give HHI = 1/N.
	got, err = Score(types.PartnerValueMap{"A": 100, "B": 100, "C": 100, "D": 100}, nil, 100)
	require.NoError(t, err)
	assert.Equal(t, 0.25, got.HHI)
	assert.GreaterOrEqual(t, got.HHI, 0.0)
	assert.LessOrEqual(t, got.HHI, 1.0)
}

func TestScore_DiversityMonotoneAndCapped(t *testing.T) {
	imports := types.PartnerValueMap{}
	prev := 0.0
	for i := 0; i < 8; i++ {
		imports[string(rune('A'+i))] = 100
		got, err := Score(imports, nil, 5)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got.DiversityScore, prev)
		assert.LessOrEqual(t, got.DiversityScore, 1.0)
		prev = got.DiversityScore
	}
	// 8 partners over denominator 5 caps at 1.0.
	assert.Equal(t, 1.0, prev)
}

func TestScore_IDIEdges(t *testing.T) {
	imports := types.PartnerValueMap{"A": 100}

	// No exports at all: fully import dependent.
	got, err := Score(imports, nil, 10)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.IDI)

	// Exports equal imports: dependency zero.
	got, err = Score(imports, types.PartnerValueMap{"B": 100}, 10)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.IDI)

	// Net exporter clamps at zero rather than going negative.
	got, err = Score(imports, types.PartnerValueMap{"B": 250}, 10)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.IDI)
}

func TestScore_ZeroDenominatorMeansNoDiversityPenalty(t *testing.T) {
	got, err := Score(types.PartnerValueMap{"A": 100}, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.DiversityScore)
}

func TestScoreResult_Level(t *testing.T) {
	tests := []struct {
		scri float64
		want types.RiskLevel
	}{
		{0.9, types.RiskHigh},
		{0.51, types.RiskHigh},
		{0.5, types.RiskMedium},
		{0.21, types.RiskMedium},
		{0.2, types.RiskLow},
		{0.0, types.RiskLow},
	}
	for _, tt := range tests {
		r := types.ScoreResult{SCRI: tt.scri}
		assert.Equal(t, tt.want, r.Level(), "scri=%v", tt.scri)
	}
}
