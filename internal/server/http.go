package server

import (
	"time"

	"fairhire360/internal/config"
	"fairhire360/internal/engine"
	fairhireErrors "fairhire360/internal/errors"
	"fairhire360/internal/store"
	"fairhire360/internal/types"
)

// ParseRequest represents the request body for the parse endpoint. Content
// is the base64-encoded document; the file name drives format sniffing.
type ParseRequest struct {
	FileName string `json:"fileName"`
	Content  string `json:"content"`
}

// MatchRequest represents the request body for the match endpoint. Either
// JobDescriptionID (a stored JD) or JobDescription (inline) must be set.
type MatchRequest struct {
	Resume           *types.ParsedResume         `json:"resume"`
	JobDescriptionID string                      `json:"jobDescriptionId,omitempty"`
	JobDescription   *engine.JobDescriptionInput `json:"jobDescription,omitempty"`
}

// ProcessCandidateRequest represents the request body for the candidates
// endpoint. Sample=true loads the demo roster instead of a single candidate.
type ProcessCandidateRequest struct {
	JobDescriptionID string                `json:"jobDescriptionId"`
	Sample           bool                  `json:"sample,omitempty"`
	Name             string                `json:"name,omitempty"`
	Position         string                `json:"position,omitempty"`
	Modalities       []types.Modality      `json:"modalities,omitempty"`
	Resume           *types.ParsedResume   `json:"resume,omitempty"`
	JDMatchResult    *types.JDMatchResult  `json:"jdMatchResult,omitempty"`
	ResumeFileName   string                `json:"resumeFileName,omitempty"`
	InterviewVideo   *types.InterviewVideo `json:"interviewVideo,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// Domain components
	Engine *engine.Engine
	Store  *store.Store

	// Lexicon hot-reload
	LexiconWatcher *LexiconWatcher

	// TLS Configuration
	TLSConfig config.TLSConfig

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *LimiterManager

	// Logger
	Logger *fairhireErrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, eng *engine.Engine, st *store.Store, logger *fairhireErrors.Logger) *Server {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *LimiterManager
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewLimiterManager(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		Engine:         eng,
		Store:          st,
		TLSConfig:      cfg.TLSConfig,
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Logger:         logger,
	}
}
