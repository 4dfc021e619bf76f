package engine

import (
	"math"

	"fairhire360/internal/types"
)

// CalculateStats reduces a candidate collection (already filtered by JD if
// applicable) into the dashboard summary. An empty collection yields the
// zero value, never an error.
func CalculateStats(candidates []types.Candidate) types.DashboardStats {
	if len(candidates) == 0 {
		return types.DashboardStats{}
	}

	totalBiasFactors := 0
	totalScoreChange := 0
	for _, c := range candidates {
		totalBiasFactors += len(c.BiasFactors)
		totalScoreChange += c.AdjustedScore - c.OriginalScore
	}

	avgChange := float64(totalScoreChange) / float64(len(candidates))
	fairness := 70 + avgChange*2
	if fairness > 100 {
		fairness = 100
	}

	return types.DashboardStats{
		CandidatesAnalyzed: len(candidates),
		FairnessScore:      round1(fairness),
		BiasCorrections:    totalBiasFactors,
		AvgScoreChange:     round1(avgChange),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
