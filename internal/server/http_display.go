package server

import "fmt"

// displayServerInfo shows server configuration information
func (s *Server) displayServerInfo() {
	s.displayEndpoints()
	s.displayAuthInfo()
	s.displayRequestLimitInfo()
	s.displayRateLimitInfo()
	s.displayLexiconInfo()
}

// displayEndpoints shows available API endpoints
func (s *Server) displayEndpoints() {
	fmt.Println("Available endpoints:")
	fmt.Println("  GET    /health           - Health check")
	fmt.Println("  GET    /stats            - Server statistics")
	fmt.Println("  POST   /jd               - Create job description (requires API key)")
	fmt.Println("  GET    /jd               - List job descriptions (requires API key)")
	fmt.Println("  GET    /jd/{id}          - Fetch job description (requires API key)")
	fmt.Println("  POST   /parse            - Parse resume document (requires API key)")
	fmt.Println("  POST   /match            - Match resume to job description (requires API key)")
	fmt.Println("  POST   /candidates       - Process candidate(s) (requires API key)")
	fmt.Println("  GET    /candidates       - List candidates (requires API key)")
	fmt.Println("  GET    /candidates/{id}  - Fetch candidate (requires API key)")
	fmt.Println("  DELETE /candidates       - Clear a JD's candidates (requires API key)")
	fmt.Println("  GET    /dashboard        - Dashboard stats (requires API key)")
}

// displayAuthInfo shows authentication configuration
func (s *Server) displayAuthInfo() {
	if len(s.APIKeys) > 0 {
		fmt.Printf("API authentication: ENABLED (%d keys configured)\n", len(s.APIKeys))
		fmt.Println("Include 'X-API-Key: <your-key>' header in API requests")
	} else {
		fmt.Println("API authentication: DISABLED (no API keys configured)")
		fmt.Println("WARNING: API endpoints are publicly accessible!")
	}
}

// displayRequestLimitInfo shows request size limit configuration
func (s *Server) displayRequestLimitInfo() {
	if s.MaxRequestSize > 0 {
		fmt.Printf("Request size limit: %d bytes (%.1f MB)\n", s.MaxRequestSize, float64(s.MaxRequestSize)/(1024*1024))
	} else {
		fmt.Println("Request size limit: DISABLED")
		fmt.Println("WARNING: No request size limits configured!")
	}
}

// displayRateLimitInfo shows rate limiting configuration
func (s *Server) displayRateLimitInfo() {
	if s.RateLimit != nil && s.RateLimit.Enabled {
		fmt.Printf("Rate limiting: ENABLED (%d requests/min, burst: %d)\n",
			s.RateLimit.RequestsPerMin, s.RateLimit.BurstCapacity)
		if s.RateLimit.ByAPIKey {
			fmt.Println("  - Per API key rate limiting enabled")
		}
		if s.RateLimit.ByIP {
			fmt.Println("  - Per IP address rate limiting enabled")
		}
	} else {
		fmt.Println("Rate limiting: DISABLED")
		fmt.Println("WARNING: No rate limiting configured!")
	}
}

// displayLexiconInfo shows lexicon configuration
func (s *Server) displayLexiconInfo() {
	if s.AppConfig.Engine.LexiconFile == "" {
		fmt.Println("Bias lexicon: built-in defaults")
		return
	}
	fmt.Printf("Bias lexicon: %s\n", s.AppConfig.Engine.LexiconFile)
	if s.AppConfig.Engine.AutoReload.Enabled {
		fmt.Println("  - Auto-reload enabled")
	}
}
