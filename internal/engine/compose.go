package engine

import (
	"math"
	"strconv"

	"fairhire360/internal/hashutil"
	"fairhire360/internal/types"
)

// Score clamps applied by the composer.
const (
	baseScoreMin  = 60
	baseScoreMax  = 90
	finalScoreMin = 55
	finalScoreMax = 92
	adjustedCap   = 95
)

// ProcessCandidate evaluates one candidate against a job description and
// returns the fully populated record. index is the candidate's position
// among those already processed for this JD; it only varies the
// deterministic review decision. The function is pure: identical inputs and
// index always produce an identical Candidate (the caller-supplied clock
// stamps ProcessedAt but affects nothing computed).
func (e *Engine) ProcessCandidate(in *CandidateInput, jd *types.JobDescription, index int) *types.Candidate {
	factors := e.DetectBiasFactors(in, jd)

	factor := descriptionMatchFactor(in, jd)
	originalScore := baseScore(in, jd)
	originalScore = clamp(int(math.Round(float64(originalScore)*factor)), finalScoreMin, finalScoreMax)

	totalCorrection := 0
	for _, f := range factors {
		totalCorrection += abs(f.Contribution)
	}

	adjustedScore := originalScore + totalCorrection
	if adjustedScore > adjustedCap {
		adjustedScore = adjustedCap
	}

	biasLevel := types.SeverityLow
	switch {
	case totalCorrection >= 15:
		biasLevel = types.SeverityHigh
	case totalCorrection >= 8:
		biasLevel = types.SeverityMedium
	}

	review := needsReview(in.Name, index)
	status := types.StatusProcessed
	if review {
		status = types.StatusReview
	}

	explanations := buildExplanations(factors, jd)
	if review {
		explanations = append([]types.CandidateExplanation{reviewWarning()}, explanations...)
	}
	explanations = append(explanations, resumeInsights(in, jd)...)

	return &types.Candidate{
		ID:                     candidateID(in.Name, jd.ID, index),
		Name:                   in.Name,
		Position:               jd.RoleTitle,
		OriginalScore:          originalScore,
		AdjustedScore:          adjustedScore,
		BiasLevel:              biasLevel,
		Modalities:             in.Modalities,
		Status:                 status,
		JobDescriptionID:       jd.ID,
		ModalityScores:         e.modalityScores(in, jd, factors),
		BiasFactors:            factors,
		Explanations:           explanations,
		Counterfactuals:        buildCounterfactuals(originalScore, factors),
		FairnessSummary:        buildFairnessSummary(e.Lexicon(), in.Name, factors, originalScore, adjustedScore, jd, review),
		ProcessedAt:            e.now(),
		ParsedResume:           in.ParsedResume,
		JDMatchResult:          in.JDMatchResult,
		JDDescriptionAlignment: buildDescriptionAlignment(in, jd),
		ResumeFileName:         in.ResumeFileName,
		InterviewVideo:         in.InterviewVideo,
		CrossModalConsistency:  analyzeCrossModal(in, factors, jd),
	}
}

// baseScore derives the pre-correction ATS score. With a JD match result
// the match score anchors it; otherwise it is simulated from the name hash.
func baseScore(in *CandidateInput, jd *types.JobDescription) int {
	if in.JDMatchResult != nil {
		return clamp(in.JDMatchResult.OverallScore-5+hashutil.Mod(in.Name, 10), baseScoreMin, baseScoreMax)
	}
	return 60 + hashutil.Mod(in.Name+jd.ID, 31)
}

// needsReview flags roughly one in five candidates for human review.
func needsReview(name string, index int) bool {
	return index%5 == 2 || hashutil.Mod(name+"review", 7) == 0
}

// candidateID derives a stable identifier so reprocessing the same input at
// the same index yields the same record.
func candidateID(name, jdID string, index int) string {
	return strconv.FormatInt(int64(hashutil.Sum(name+jdID+"#"+strconv.Itoa(index))), 36)
}

// modalityScores breaks the evaluation down per supplied modality, charging
// each modality only the factors its channel produced.
func (e *Engine) modalityScores(in *CandidateInput, jd *types.JobDescription, factors []types.BiasFactor) []types.ModalityScore {
	scores := make([]types.ModalityScore, 0, len(in.Modalities))

	for _, modality := range in.Modalities {
		hash := hashutil.Sum(in.Name + string(modality) + jd.ID)
		base := 60 + hash%25

		var modalityBias []types.BiasFactor
		for _, f := range factors {
			if factorModality(f.Type) == modality {
				modalityBias = append(modalityBias, f)
			}
		}

		penalty := 0
		for _, f := range modalityBias {
			penalty += f.Contribution
		}
		adjusted := clamp(base-penalty, 60, adjustedCap)

		scores = append(scores, types.ModalityScore{
			Modality:        modality,
			OriginalScore:   base,
			AdjustedScore:   adjusted,
			BiasFactors:     modalityBias,
			ConfidenceScore: 85 + hash%12,
		})
	}

	return scores
}

// factorModality maps a bias category to the input channel it examines.
func factorModality(t types.BiasType) types.Modality {
	switch t {
	case types.BiasAppearance, types.BiasBackgroundEnvironment:
		return types.ModalityVideo
	case types.BiasAccentPenalty, types.BiasLanguageFluency:
		return types.ModalityAudio
	default:
		return types.ModalityResume
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
