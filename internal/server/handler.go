package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"fairhire360/internal/engine"
	fairhireErrors "fairhire360/internal/errors"
	"fairhire360/internal/observability"
	"fairhire360/internal/parser"
	"fairhire360/internal/store"
	"fairhire360/internal/types"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// createJDHandler wraps job description creation with observability
func (s *Server) createJDHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("fairhire360.api")
		ctx, span := tracer.Start(ctx, "api.jd.create")
		defer span.End()

		var req engine.JobDescriptionInput
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		jd, err := engine.NewJobDescription(&req, s.Engine.Now())
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid job description", err.Error(), http.StatusBadRequest)
			return
		}

		if err := s.Store.SaveJD(ctx, *jd); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "store"))
			writeErrorResponse(w, "Failed to save job description", err.Error(), http.StatusInternalServerError)
			return
		}

		om.GetMetrics().RecordJDCreated(ctx)
		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("jd.id", jd.ID),
			attribute.String("jd.role_type", jd.RoleType),
		)

		writeJSONResponse(w, span, http.StatusCreated, jd)
	}
}

// listJDsHandler returns all stored job descriptions, newest first
func (s *Server) listJDsHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("fairhire360.api")
		ctx, span := tracer.Start(ctx, "api.jd.list")
		defer span.End()

		jds, err := s.Store.ListJDs(ctx)
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Failed to list job descriptions", err.Error(), http.StatusInternalServerError)
			return
		}

		span.SetAttributes(attribute.Int("jd.count", len(jds)))
		writeJSONResponse(w, span, http.StatusOK, jds)
	}
}

// getJDHandler fetches one job description by id
func (s *Server) getJDHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("fairhire360.api")
		ctx, span := tracer.Start(ctx, "api.jd.get")
		defer span.End()

		id := r.PathValue("id")
		jd, err := s.Store.GetJD(ctx, id)
		if err != nil {
			span.RecordError(err)
			writeStoreError(w, err, "Failed to fetch job description")
			return
		}

		span.SetAttributes(attribute.String("jd.id", id))
		writeJSONResponse(w, span, http.StatusOK, jd)
	}
}

// parseHandler extracts and parses a resume document
func (s *Server) parseHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("fairhire360.api")
		ctx, span := tracer.Start(ctx, "api.parse")
		defer span.End()

		var req ParseRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Content) == "" {
			err := fmt.Errorf("missing document content")
			span.RecordError(err)
			writeErrorResponse(w, "Missing document content", "content field is required (base64)", http.StatusBadRequest)
			return
		}

		data, err := base64.StdEncoding.DecodeString(req.Content)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid document content", "content must be valid base64", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.String("request.file_name", req.FileName),
			attribute.Int("request.document_bytes", len(data)),
			attribute.String("operation", "parse"),
		)

		metrics := om.GetMetrics()
		var result *types.ParsedResume
		err = metrics.TrackPipelineOperation(ctx, "parse", om, func(ctx context.Context) error {
			var parseErr error
			result, parseErr = parser.ParseDocument(req.FileName, data)
			return parseErr
		})
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "parse"))
			metrics.RecordResumeParsed(ctx, false, 0)
			status := http.StatusInternalServerError
			if fairhireErrors.IsParseError(err) {
				status = http.StatusUnprocessableEntity
			}
			writeErrorResponse(w, "Failed to parse document", err.Error(), status)
			return
		}

		metrics.RecordResumeParsed(ctx, true, result.ParseConfidence)
		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("resume.parse_confidence", result.ParseConfidence),
			attribute.Int("resume.skills_count", len(result.Skills)),
		)

		writeJSONResponse(w, span, http.StatusOK, result)
	}
}

// matchHandler scores a parsed resume against a job description
func (s *Server) matchHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("fairhire360.api")
		ctx, span := tracer.Start(ctx, "api.match")
		defer span.End()

		var req MatchRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}
		if req.Resume == nil {
			err := fmt.Errorf("missing resume")
			span.RecordError(err)
			writeErrorResponse(w, "Missing resume", "resume field is required", http.StatusBadRequest)
			return
		}

		jd, err := s.resolveJD(ctx, req.JobDescriptionID, req.JobDescription)
		if err != nil {
			span.RecordError(err)
			writeStoreError(w, err, "Failed to resolve job description")
			return
		}

		span.SetAttributes(
			attribute.String("jd.id", jd.ID),
			attribute.String("operation", "match"),
		)

		result := parser.MatchResumeToJD(req.Resume, jd)
		om.GetMetrics().RecordMatchComputed(ctx, result.OverallScore)

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("match.overall_score", result.OverallScore),
			attribute.Int("match.matched_skills", len(result.MatchedSkills)),
		)

		writeJSONResponse(w, span, http.StatusOK, result)
	}
}

// processCandidatesHandler runs the scoring pipeline for one candidate or
// the demo roster and persists the results, honoring the per-JD cap
func (s *Server) processCandidatesHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("fairhire360.api")
		ctx, span := tracer.Start(ctx, "api.candidates.process")
		defer span.End()

		var req ProcessCandidateRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.JobDescriptionID) == "" {
			err := fmt.Errorf("missing job description id")
			span.RecordError(err)
			writeErrorResponse(w, "Missing job description id", "jobDescriptionId field is required", http.StatusBadRequest)
			return
		}

		jd, err := s.Store.GetJD(ctx, req.JobDescriptionID)
		if err != nil {
			span.RecordError(err)
			writeStoreError(w, err, "Failed to fetch job description")
			return
		}

		inputs, err := buildCandidateInputs(&req)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid candidate input", err.Error(), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.String("jd.id", jd.ID),
			attribute.Bool("request.sample", req.Sample),
			attribute.Int("request.candidate_count", len(inputs)),
			attribute.String("operation", "process"),
		)

		metrics := om.GetMetrics()
		processed := make([]types.Candidate, 0, len(inputs))
		for i := range inputs {
			in := &inputs[i]
			if in.EnsureMatch(jd) {
				metrics.RecordMatchComputed(ctx, in.JDMatchResult.OverallScore)
			}
			slot, err := s.Store.CandidateCount(ctx, jd.ID)
			if err != nil {
				span.RecordError(err)
				writeErrorResponse(w, "Failed to process candidate", err.Error(), http.StatusInternalServerError)
				return
			}

			var c *types.Candidate
			err = metrics.TrackPipelineOperation(ctx, "process", om, func(ctx context.Context) error {
				c = s.Engine.ProcessCandidate(in, jd, slot)
				return s.Store.SaveCandidate(ctx, *c, slot)
			})
			if err != nil {
				span.RecordError(err)
				if isAppErrorCode(err, fairhireErrors.ErrCodeCandidateCap) {
					span.SetAttributes(attribute.String("error.type", "candidate_cap"))
					writeErrorResponse(w, "Candidate cap reached",
						fmt.Sprintf("job description %s already has %d candidates", jd.ID, store.CandidateCap),
						http.StatusConflict)
					return
				}
				writeErrorResponse(w, "Failed to process candidate", err.Error(), http.StatusInternalServerError)
				return
			}

			metrics.RecordCandidateProcessed(ctx, c, om)
			processed = append(processed, *c)
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.candidate_count", len(processed)),
		)

		if req.Sample {
			writeJSONResponse(w, span, http.StatusCreated, processed)
			return
		}
		writeJSONResponse(w, span, http.StatusCreated, processed[0])
	}
}

// listCandidatesHandler lists candidates, optionally filtered by JD and status
func (s *Server) listCandidatesHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("fairhire360.api")
		ctx, span := tracer.Start(ctx, "api.candidates.list")
		defer span.End()

		jdID := r.URL.Query().Get("jd")
		status := types.CandidateStatus(r.URL.Query().Get("status"))

		candidates, err := s.Store.ListCandidates(ctx, jdID, status)
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Failed to list candidates", err.Error(), http.StatusInternalServerError)
			return
		}

		span.SetAttributes(attribute.Int("candidates.count", len(candidates)))
		writeJSONResponse(w, span, http.StatusOK, candidates)
	}
}

// getCandidateHandler fetches one candidate by id
func (s *Server) getCandidateHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("fairhire360.api")
		ctx, span := tracer.Start(ctx, "api.candidates.get")
		defer span.End()

		id := r.PathValue("id")
		c, err := s.Store.GetCandidate(ctx, id)
		if err != nil {
			span.RecordError(err)
			writeStoreError(w, err, "Failed to fetch candidate")
			return
		}

		span.SetAttributes(attribute.String("candidate.id", id))
		writeJSONResponse(w, span, http.StatusOK, c)
	}
}

// deleteCandidatesHandler clears all candidates for a JD
func (s *Server) deleteCandidatesHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("fairhire360.api")
		ctx, span := tracer.Start(ctx, "api.candidates.delete")
		defer span.End()

		jdID := r.URL.Query().Get("jd")
		if jdID == "" {
			err := fmt.Errorf("missing jd query parameter")
			span.RecordError(err)
			writeErrorResponse(w, "Missing jd parameter", "jd query parameter is required", http.StatusBadRequest)
			return
		}

		deleted, err := s.Store.DeleteCandidates(ctx, jdID)
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Failed to delete candidates", err.Error(), http.StatusInternalServerError)
			return
		}

		span.SetAttributes(
			attribute.String("jd.id", jdID),
			attribute.Int64("candidates.deleted", deleted),
		)

		writeJSONResponse(w, span, http.StatusOK, map[string]any{
			"jobDescriptionId": jdID,
			"deleted":          deleted,
		})
	}
}

// dashboardHandler derives summary stats over the candidate collection
func (s *Server) dashboardHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("fairhire360.api")
		ctx, span := tracer.Start(ctx, "api.dashboard")
		defer span.End()

		jdID := r.URL.Query().Get("jd")
		candidates, err := s.Store.ListCandidates(ctx, jdID, "")
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Failed to load candidates", err.Error(), http.StatusInternalServerError)
			return
		}

		stats := engine.CalculateStats(candidates)
		span.SetAttributes(
			attribute.Int("stats.candidates_analyzed", stats.CandidatesAnalyzed),
			attribute.Float64("stats.fairness_score", stats.FairnessScore),
		)

		writeJSONResponse(w, span, http.StatusOK, stats)
	}
}

// resolveJD loads a stored JD by id or mints one from inline input
func (s *Server) resolveJD(ctx context.Context, id string, inline *engine.JobDescriptionInput) (*types.JobDescription, error) {
	if id != "" {
		return s.Store.GetJD(ctx, id)
	}
	if inline != nil {
		return engine.NewJobDescription(inline, s.Engine.Now())
	}
	return nil, fairhireErrors.NewValidationError(fairhireErrors.ErrCodeInvalidRequest,
		"either jobDescriptionId or jobDescription must be provided", nil)
}

// buildCandidateInputs expands a process request into engine inputs
func buildCandidateInputs(req *ProcessCandidateRequest) ([]engine.CandidateInput, error) {
	if req.Sample {
		return engine.SampleCandidates(), nil
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name field is required unless sample=true")
	}
	modalities := req.Modalities
	if len(modalities) == 0 {
		modalities = []types.Modality{types.ModalityResume}
	}

	in := engine.CandidateInput{
		Name:           req.Name,
		Position:       req.Position,
		Modalities:     modalities,
		ParsedResume:   req.Resume,
		JDMatchResult:  req.JDMatchResult,
		ResumeFileName: req.ResumeFileName,
		InterviewVideo: req.InterviewVideo,
	}
	return []engine.CandidateInput{in}, nil
}

// isAppErrorCode reports whether err carries the given application error code
func isAppErrorCode(err error, code string) bool {
	var appErr *fairhireErrors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// writeStoreError maps store errors to HTTP status codes
func writeStoreError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case isAppErrorCode(err, fairhireErrors.ErrCodeNotFound):
		writeErrorResponse(w, "Not found", err.Error(), http.StatusNotFound)
	case isAppErrorCode(err, fairhireErrors.ErrCodeInvalidRequest),
		isAppErrorCode(err, fairhireErrors.ErrCodeInvalidJD):
		writeErrorResponse(w, "Invalid request", err.Error(), http.StatusBadRequest)
	default:
		writeErrorResponse(w, fallback, err.Error(), http.StatusInternalServerError)
	}
}

// writeJSONResponse encodes a JSON response body with the given status
func writeJSONResponse(w http.ResponseWriter, span trace.Span, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		span.RecordError(err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordRateLimitHit(r.Context(), om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
