package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// healthCheckTimeout bounds the store ping during health checks.
const healthCheckTimeout = 5 * time.Second

// healthHandler provides a health check endpoint covering the scoring
// engine and the candidate store
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"status":  "healthy",
		"service": "fairhire360",
		"version": s.Version,
	}

	overallHealthy := true

	// Check engine lexicon validity
	engineStatus := s.checkEngineHealth()
	response["engine"] = engineStatus
	if healthy, ok := engineStatus["healthy"].(bool); ok && !healthy {
		overallHealthy = false
	}

	// Check store connectivity
	storeStatus := s.checkStoreHealth(r.Context())
	response["store"] = storeStatus
	if healthy, ok := storeStatus["healthy"].(bool); ok && !healthy {
		overallHealthy = false
	}

	// Check lexicon watcher status if running
	if s.LexiconWatcher != nil {
		response["lexicon_watcher"] = map[string]any{
			"running":      s.LexiconWatcher.IsRunning(),
			"watched_file": s.LexiconWatcher.WatchedFile(),
		}
	}

	if !overallHealthy {
		response["status"] = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode health response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// checkEngineHealth validates the active lexicon
func (s *Server) checkEngineHealth() map[string]any {
	engineStatus := make(map[string]any)

	lex := s.Engine.Lexicon()
	if lex == nil {
		engineStatus["healthy"] = false
		engineStatus["error"] = "no lexicon loaded"
		return engineStatus
	}

	if err := lex.Validate(); err != nil {
		engineStatus["healthy"] = false
		engineStatus["error"] = fmt.Sprintf("lexicon validation failed: %v", err)
		return engineStatus
	}

	engineStatus["healthy"] = true
	engineStatus["message"] = "lexicon loaded and valid"
	return engineStatus
}

// checkStoreHealth pings the candidate store
func (s *Server) checkStoreHealth(ctx context.Context) map[string]any {
	storeStatus := make(map[string]any)

	if s.Store == nil {
		storeStatus["healthy"] = false
		storeStatus["error"] = "store not configured"
		return storeStatus
	}

	pingCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if err := s.Store.Ping(pingCtx); err != nil {
		storeStatus["healthy"] = false
		storeStatus["error"] = fmt.Sprintf("store ping failed: %v", err)
		return storeStatus
	}

	storeStatus["healthy"] = true
	storeStatus["message"] = "store reachable"
	return storeStatus
}

// statsHandler provides server statistics including rate limiting info
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"service": "fairhire360",
		"version": s.Version,
		"server": map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
		},
	}

	// Add rate limiting stats if enabled
	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{
			"enabled": false,
		}
	}

	// Add configuration info
	if s.RateLimit != nil {
		response["rate_limit_config"] = map[string]any{
			"enabled":          s.RateLimit.Enabled,
			"requests_per_min": s.RateLimit.RequestsPerMin,
			"burst_capacity":   s.RateLimit.BurstCapacity,
			"by_ip":            s.RateLimit.ByIP,
			"by_api_key":       s.RateLimit.ByAPIKey,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode stats response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// parseJSONRequest parses JSON request body into the provided struct
func parseJSONRequest(r *http.Request, v any) error {
	if r.Header.Get("Content-Type") != "application/json" {
		return fmt.Errorf("content-type must be application/json")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return fmt.Errorf("request body too large (limit is %d bytes)", maxBytesErr.Limit)
		}
		return fmt.Errorf("failed to read request body: %w", err)
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.Printf("Failed to close request body: %v", err)
		}
	}()

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	return nil
}

// writeErrorResponse writes a standardized error response
func writeErrorResponse(w http.ResponseWriter, error, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error:   error,
		Message: message,
	}

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode error response: %v", err)
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}
