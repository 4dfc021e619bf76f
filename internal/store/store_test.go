package store

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"fairhire360/internal/errors"
	"fairhire360/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testJD(id string) types.JobDescription {
	return types.JobDescription{
		ID:                   id,
		RoleTitle:            "Backend Engineer",
		RoleType:             "engineering",
		RequiredSkills:       []string{"Go", "SQL"},
		ExperienceRange:      types.ExperienceRange{Min: 1, Max: 5},
		LanguageRequirements: []string{"English"},
		SkillsWeight:         60,
		CreatedAt:            time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC),
	}
}

func testCandidate(id, jdID string, status types.CandidateStatus) types.Candidate {
	return types.Candidate{
		ID:               id,
		Name:             "Test Person",
		Position:         "Backend Engineer",
		OriginalScore:    70,
		AdjustedScore:    75,
		BiasLevel:        types.SeverityLow,
		Modalities:       []types.Modality{types.ModalityResume},
		Status:           status,
		JobDescriptionID: jdID,
		ProcessedAt:      time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		FairnessSummary:  "No bias factors detected.",
	}
}

func TestJDRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	jd := testJD("jd-1")
	jd.Description = "Build and operate backend services."
	jd.ParsedFeatures = &types.JDParsedFeatures{
		DetectedSkills: []string{"Go"},
		Domain:         "engineering",
		Complexity:     "mid",
		Keywords:       []string{"backend", "services"},
	}
	require.NoError(t, s.SaveJD(ctx, jd))

	got, err := s.GetJD(ctx, "jd-1")
	require.NoError(t, err)
	assert.Equal(t, jd, *got)
}

func TestGetJDNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetJD(context.Background(), "missing")
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, errors.ErrCodeNotFound, appErr.Code)
}

func TestListJDsNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	older := testJD("jd-old")
	older.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := testJD("jd-new")
	newer.CreatedAt = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.SaveJD(ctx, older))
	require.NoError(t, s.SaveJD(ctx, newer))

	jds, err := s.ListJDs(ctx)
	require.NoError(t, err)
	require.Len(t, jds, 2)
	assert.Equal(t, "jd-new", jds[0].ID)
	assert.Equal(t, "jd-old", jds[1].ID)
}

func TestCandidateRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	c := testCandidate("c-1", "jd-1", types.StatusProcessed)
	c.BiasFactors = []types.BiasFactor{{
		Type:         types.BiasNameProxy,
		Label:        "Name-Based Bias",
		Severity:     types.SeverityHigh,
		Contribution: -12,
		Explanation:  "explanation",
		JDContext:    "context",
	}}
	c.ModalityScores = []types.ModalityScore{{
		Modality:        types.ModalityResume,
		OriginalScore:   70,
		AdjustedScore:   82,
		BiasFactors:     c.BiasFactors,
		ConfidenceScore: 94,
	}}
	require.NoError(t, s.SaveCandidate(ctx, c, 0))

	got, err := s.GetCandidate(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, c, *got)
}

func TestCandidateCapEnforced(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < CandidateCap; i++ {
		c := testCandidate(fmt.Sprintf("c-%d", i), "jd-1", types.StatusProcessed)
		require.NoError(t, s.SaveCandidate(ctx, c, i))
	}

	over := testCandidate("c-over", "jd-1", types.StatusProcessed)
	err := s.SaveCandidate(ctx, over, CandidateCap)
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, errors.ErrCodeCandidateCap, appErr.Code)

	// The cap is per job description, other JDs are unaffected.
	other := testCandidate("c-other", "jd-2", types.StatusProcessed)
	assert.NoError(t, s.SaveCandidate(ctx, other, 0))

	n, err := s.CandidateCount(ctx, "jd-1")
	require.NoError(t, err)
	assert.Equal(t, CandidateCap, n)
}

func TestListCandidatesFilters(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveCandidate(ctx, testCandidate("c-1", "jd-1", types.StatusProcessed), 0))
	require.NoError(t, s.SaveCandidate(ctx, testCandidate("c-2", "jd-1", types.StatusReview), 1))
	require.NoError(t, s.SaveCandidate(ctx, testCandidate("c-3", "jd-2", types.StatusProcessed), 0))

	all, err := s.ListCandidates(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byJD, err := s.ListCandidates(ctx, "jd-1", "")
	require.NoError(t, err)
	require.Len(t, byJD, 2)
	assert.Equal(t, "c-1", byJD[0].ID)
	assert.Equal(t, "c-2", byJD[1].ID)

	byStatus, err := s.ListCandidates(ctx, "jd-1", types.StatusReview)
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "c-2", byStatus[0].ID)

	empty, err := s.ListCandidates(ctx, "jd-2", types.StatusReview)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDeleteCandidates(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveCandidate(ctx, testCandidate("c-1", "jd-1", types.StatusProcessed), 0))
	require.NoError(t, s.SaveCandidate(ctx, testCandidate("c-2", "jd-1", types.StatusProcessed), 1))
	require.NoError(t, s.SaveCandidate(ctx, testCandidate("c-3", "jd-2", types.StatusProcessed), 0))

	n, err := s.DeleteCandidates(ctx, "jd-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	remaining, err := s.ListCandidates(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "c-3", remaining[0].ID)

	// Deleting frees the per-JD slots.
	count, err := s.CandidateCount(ctx, "jd-1")
	require.NoError(t, err)
	assert.Zero(t, count)
}
