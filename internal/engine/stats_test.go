package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fairhire360/internal/types"
)

func TestCalculateStatsEmpty(t *testing.T) {
	stats := CalculateStats(nil)

	assert.Equal(t, 0, stats.CandidatesAnalyzed)
	assert.Equal(t, 0.0, stats.FairnessScore)
	assert.Equal(t, 0, stats.BiasCorrections)
	assert.Equal(t, 0.0, stats.AvgScoreChange)
}

func TestCalculateStats(t *testing.T) {
	candidates := []types.Candidate{
		{
			OriginalScore: 70,
			AdjustedScore: 82,
			BiasFactors:   []types.BiasFactor{{Type: types.BiasNameProxy}},
		},
		{
			OriginalScore: 65,
			AdjustedScore: 74,
			BiasFactors: []types.BiasFactor{
				{Type: types.BiasAccentPenalty},
				{Type: types.BiasLanguageFluency},
			},
		},
		{
			OriginalScore: 80,
			AdjustedScore: 80,
		},
	}

	stats := CalculateStats(candidates)

	assert.Equal(t, 3, stats.CandidatesAnalyzed)
	assert.Equal(t, 3, stats.BiasCorrections)
	// (12 + 9 + 0) / 3 = 7.0
	assert.Equal(t, 7.0, stats.AvgScoreChange)
	// min(100, 70 + 7*2) = 84
	assert.Equal(t, 84.0, stats.FairnessScore)
}

func TestCalculateStatsFairnessCap(t *testing.T) {
	candidates := []types.Candidate{
		{OriginalScore: 55, AdjustedScore: 95},
	}

	stats := CalculateStats(candidates)

	// 70 + 40*2 would exceed the cap.
	assert.Equal(t, 100.0, stats.FairnessScore)
	assert.Equal(t, 40.0, stats.AvgScoreChange)
}

func TestCalculateStatsRounding(t *testing.T) {
	candidates := []types.Candidate{
		{OriginalScore: 70, AdjustedScore: 75},
		{OriginalScore: 70, AdjustedScore: 76},
		{OriginalScore: 70, AdjustedScore: 78},
	}

	stats := CalculateStats(candidates)

	// 19/3 = 6.333... -> 6.3
	assert.Equal(t, 6.3, stats.AvgScoreChange)
	// 70 + 6.333*2 = 82.666... -> 82.7
	assert.Equal(t, 82.7, stats.FairnessScore)
}
