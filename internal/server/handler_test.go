package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairhire360/internal/config"
	"fairhire360/internal/engine"
	fairhireErrors "fairhire360/internal/errors"
	"fairhire360/internal/observability"
	"fairhire360/internal/store"
	"fairhire360/internal/types"
)

func newTestServer(t *testing.T, apiKeys ...string) (*Server, *http.ServeMux) {
	t.Helper()

	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	logger, err := fairhireErrors.New("error")
	require.NoError(t, err)

	clock := func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}

	appCfg := &config.Config{}
	appCfg.Server.MaxRequestBytes = 1 << 20

	s := NewServer(appCfg, ServerConfig{
		Host:           "127.0.0.1",
		Port:           "0",
		Version:        "test",
		APIKeys:        apiKeys,
		MaxRequestSize: 1 << 20,
	}, engine.New(engine.WithClock(clock)), st, logger)

	om, err := observability.NewObservabilityManager(observability.ObservabilityConfig{Enabled: false}, appCfg)
	require.NoError(t, err)

	return s, s.setupRoutes(om)
}

func doJSON(t *testing.T, mux *http.ServeMux, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func createTestJD(t *testing.T, mux *http.ServeMux) types.JobDescription {
	t.Helper()

	rec := doJSON(t, mux, http.MethodPost, "/jd", engine.JobDescriptionInput{
		RoleTitle:       "Backend Engineer",
		RoleType:        "engineering",
		RequiredSkills:  []string{"Go", "PostgreSQL"},
		ExperienceRange: types.ExperienceRange{Min: 2, Max: 6},
		SkillsWeight:    60,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var jd types.JobDescription
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &jd))
	require.NotEmpty(t, jd.ID)
	return jd
}

func TestHealthEndpoint(t *testing.T) {
	_, mux := newTestServer(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "fairhire360", body["service"])
}

func TestCreateAndFetchJD(t *testing.T) {
	_, mux := newTestServer(t)

	jd := createTestJD(t, mux)

	rec := doJSON(t, mux, http.MethodGet, "/jd/"+jd.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched types.JobDescription
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, jd.ID, fetched.ID)
	assert.Equal(t, "Backend Engineer", fetched.RoleTitle)

	rec = doJSON(t, mux, http.MethodGet, "/jd", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []types.JobDescription
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestCreateJDValidation(t *testing.T) {
	_, mux := newTestServer(t)

	rec := doJSON(t, mux, http.MethodPost, "/jd", engine.JobDescriptionInput{
		RoleTitle:    "X",
		SkillsWeight: 60,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetJDNotFound(t *testing.T) {
	_, mux := newTestServer(t)

	rec := doJSON(t, mux, http.MethodGet, "/jd/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestParseEndpoint(t *testing.T) {
	_, mux := newTestServer(t)

	resume := "Jordan Reyes\nEmail: jordan.reyes@example.com\n\nSKILLS\nGo, Docker, Kubernetes\n"
	rec := doJSON(t, mux, http.MethodPost, "/parse", ParseRequest{
		FileName: "resume.txt",
		Content:  base64.StdEncoding.EncodeToString([]byte(resume)),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var parsed types.ParsedResume
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	assert.NotEmpty(t, parsed.RawText)
	assert.Contains(t, parsed.Skills, "Go")
}

func TestParseEndpointBadBase64(t *testing.T) {
	_, mux := newTestServer(t)

	rec := doJSON(t, mux, http.MethodPost, "/parse", ParseRequest{
		FileName: "resume.txt",
		Content:  "not base64 !!!",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMatchEndpoint(t *testing.T) {
	_, mux := newTestServer(t)
	jd := createTestJD(t, mux)

	rec := doJSON(t, mux, http.MethodPost, "/match", MatchRequest{
		Resume: &types.ParsedResume{
			CandidateName: "Jordan Reyes",
			Skills:        []string{"Go", "Docker"},
		},
		JobDescriptionID: jd.ID,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result types.JDMatchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Contains(t, result.MatchedSkills, "Go")
	assert.GreaterOrEqual(t, result.OverallScore, 0)
	assert.LessOrEqual(t, result.OverallScore, 100)
}

func TestMatchEndpointRequiresJD(t *testing.T) {
	_, mux := newTestServer(t)

	rec := doJSON(t, mux, http.MethodPost, "/match", MatchRequest{
		Resume: &types.ParsedResume{CandidateName: "Jordan Reyes"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProcessSampleCandidates(t *testing.T) {
	_, mux := newTestServer(t)
	jd := createTestJD(t, mux)

	rec := doJSON(t, mux, http.MethodPost, "/candidates", ProcessCandidateRequest{
		JobDescriptionID: jd.ID,
		Sample:           true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var candidates []types.Candidate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &candidates))
	require.Len(t, candidates, 6)
	for _, c := range candidates {
		assert.NotEmpty(t, c.ID)
		assert.Equal(t, jd.ID, c.JobDescriptionID)
		assert.GreaterOrEqual(t, c.AdjustedScore, c.OriginalScore)
	}

	// The roster fills the per-JD slots, so one more candidate overflows.
	rec = doJSON(t, mux, http.MethodPost, "/candidates", ProcessCandidateRequest{
		JobDescriptionID: jd.ID,
		Name:             "Alex Morgan",
		Modalities:       []types.Modality{types.ModalityResume},
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestProcessCandidateWithResumeCarriesMatch(t *testing.T) {
	_, mux := newTestServer(t)
	jd := createTestJD(t, mux)

	rec := doJSON(t, mux, http.MethodPost, "/candidates", ProcessCandidateRequest{
		JobDescriptionID: jd.ID,
		Name:             "Jordan Reyes",
		Modalities:       []types.Modality{types.ModalityResume},
		Resume: &types.ParsedResume{
			CandidateName:   "Jordan Reyes",
			RawText:         "go postgresql docker",
			Skills:          []string{"Go", "PostgreSQL", "Docker"},
			ParseConfidence: 90,
			Languages:       []string{"English"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var c types.Candidate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))

	// Attaching a resume computes the JD match, anchoring the base score
	// and feeding the skill-match explanation.
	require.NotNil(t, c.JDMatchResult)
	assert.Contains(t, c.JDMatchResult.MatchedSkills, "Go")
	titles := make([]string, 0, len(c.Explanations))
	for _, ex := range c.Explanations {
		titles = append(titles, ex.Title)
	}
	assert.Contains(t, titles, "JD Skill Match Analysis")

	// A caller-supplied match result is kept as-is.
	supplied := &types.JDMatchResult{OverallScore: 88, MatchedSkills: []string{"Go"}}
	rec = doJSON(t, mux, http.MethodPost, "/candidates", ProcessCandidateRequest{
		JobDescriptionID: jd.ID,
		Name:             "Casey Nguyen",
		Modalities:       []types.Modality{types.ModalityResume},
		Resume:           &types.ParsedResume{CandidateName: "Casey Nguyen", Skills: []string{"Go"}},
		JDMatchResult:    supplied,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	require.NotNil(t, c.JDMatchResult)
	assert.Equal(t, 88, c.JDMatchResult.OverallScore)
}

func TestProcessCandidateRequiresName(t *testing.T) {
	_, mux := newTestServer(t)
	jd := createTestJD(t, mux)

	rec := doJSON(t, mux, http.MethodPost, "/candidates", ProcessCandidateRequest{
		JobDescriptionID: jd.ID,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListCandidatesStatusFilter(t *testing.T) {
	_, mux := newTestServer(t)
	jd := createTestJD(t, mux)

	rec := doJSON(t, mux, http.MethodPost, "/candidates", ProcessCandidateRequest{
		JobDescriptionID: jd.ID,
		Sample:           true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, fmt.Sprintf("/candidates?jd=%s&status=review", jd.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var reviews []types.Candidate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reviews))
	require.NotEmpty(t, reviews)
	for _, c := range reviews {
		assert.Equal(t, types.StatusReview, c.Status)
	}
}

func TestDeleteCandidatesAndDashboard(t *testing.T) {
	_, mux := newTestServer(t)
	jd := createTestJD(t, mux)

	rec := doJSON(t, mux, http.MethodPost, "/candidates", ProcessCandidateRequest{
		JobDescriptionID: jd.ID,
		Sample:           true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/dashboard?jd="+jd.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats types.DashboardStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 6, stats.CandidatesAnalyzed)

	rec = doJSON(t, mux, http.MethodDelete, "/candidates?jd="+jd.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var deleted map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &deleted))
	assert.EqualValues(t, 6, deleted["deleted"])

	rec = doJSON(t, mux, http.MethodGet, "/dashboard?jd="+jd.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 0, stats.CandidatesAnalyzed)
}

func TestAuthMiddleware(t *testing.T) {
	_, mux := newTestServer(t, "secret-key-123456")

	// Missing key
	rec := doJSON(t, mux, http.MethodGet, "/jd", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Wrong key
	req := httptest.NewRequest(http.MethodGet, "/jd", nil)
	req.Header.Set("X-API-Key", "wrong")
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid key via header
	req = httptest.NewRequest(http.MethodGet, "/jd", nil)
	req.Header.Set("X-API-Key", "secret-key-123456")
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Valid key via bearer token
	req = httptest.NewRequest(http.MethodGet, "/jd", nil)
	req.Header.Set("Authorization", "Bearer secret-key-123456")
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Health stays open
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestSizeLimit(t *testing.T) {
	s, _ := newTestServer(t)
	s.MaxRequestSize = 64

	om, err := observability.NewObservabilityManager(observability.ObservabilityConfig{Enabled: false}, s.AppConfig)
	require.NoError(t, err)
	mux := s.setupRoutes(om)

	big := bytes.Repeat([]byte("a"), 256)
	req := httptest.NewRequest(http.MethodPost, "/jd", bytes.NewReader(big))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
