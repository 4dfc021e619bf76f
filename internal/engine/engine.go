// Package engine implements the deterministic candidate-scoring simulation:
// a fixed battery of bias-detection rules, a score composer, cross-modal
// consistency analysis, and explanation generation. Every computation is
// referentially transparent; the hash utility stands in for randomness so
// identical inputs always reproduce identical outcomes.
package engine

import (
	"sync/atomic"
	"time"

	"fairhire360/internal/parser"
	"fairhire360/internal/types"
)

// CandidateInput is everything the composer needs to evaluate one candidate.
type CandidateInput struct {
	Name           string                `json:"name"`
	Position       string                `json:"position"`
	Modalities     []types.Modality      `json:"modalities"`
	ParsedResume   *types.ParsedResume   `json:"parsedResume,omitempty"`
	JDMatchResult  *types.JDMatchResult  `json:"jdMatchResult,omitempty"`
	ResumeFileName string                `json:"resumeFileName,omitempty"`
	InterviewVideo *types.InterviewVideo `json:"interviewVideo,omitempty"`
}

// EnsureMatch fills in the resume-to-JD match when a resume is attached and
// the caller did not supply a precomputed result. The match anchors the base
// score and feeds the skill-match explanations, so every processing path
// calls this before ProcessCandidate. Reports whether a match was computed.
func (in *CandidateInput) EnsureMatch(jd *types.JobDescription) bool {
	if in.JDMatchResult != nil || in.ParsedResume == nil {
		return false
	}
	in.JDMatchResult = parser.MatchResumeToJD(in.ParsedResume, jd)
	return true
}

func (in *CandidateInput) hasModality(m types.Modality) bool {
	for _, have := range in.Modalities {
		if have == m {
			return true
		}
	}
	return false
}

// Engine evaluates candidates against job descriptions. Safe for concurrent
// use; the lexicon can be swapped at runtime without disturbing in-flight
// evaluations.
type Engine struct {
	lexicon atomic.Pointer[Lexicon]
	now     func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithLexicon replaces the default rule lexicon.
func WithLexicon(lex *Lexicon) Option {
	return func(e *Engine) {
		e.lexicon.Store(lex)
	}
}

// WithClock replaces the wall clock, used by tests to pin ProcessedAt.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an Engine with the default lexicon.
func New(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	e.lexicon.Store(DefaultLexicon())
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetLexicon atomically swaps the rule lexicon. Used by the serve-mode file
// watcher for hot reloads.
func (e *Engine) SetLexicon(lex *Lexicon) {
	e.lexicon.Store(lex)
}

// Lexicon returns the current rule lexicon.
func (e *Engine) Lexicon() *Lexicon {
	return e.lexicon.Load()
}

// Now returns the engine's current time. Callers minting timestamped
// records (job descriptions, candidates) use this so tests with a pinned
// clock stay reproducible.
func (e *Engine) Now() time.Time {
	return e.now()
}
