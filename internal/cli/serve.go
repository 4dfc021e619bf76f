package cli

import (
	"fmt"

	"fairhire360/internal/config"
	"fairhire360/internal/engine"
	"fairhire360/internal/server"
	"fairhire360/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for candidate scoring",
	Long: `Start an HTTP server that exposes the scoring pipeline as a REST API.

Available endpoints:
- POST /jd: Create a job description
- GET /jd, /jd/{id}: List and fetch job descriptions
- POST /parse: Parse a resume document
- POST /match: Match a resume against a job description
- POST /candidates: Process candidate(s) for a job description
- GET /candidates, /candidates/{id}: List and fetch candidates
- DELETE /candidates: Clear a job description's candidates
- GET /dashboard: Dashboard statistics
- GET /health, /stats: Health check and server statistics

TLS Configuration:
- Use --tls-mode to set TLS mode: disabled, server, mutual
- Use --cert-file and --key-file for TLS certificates
- Use --ca-file for mutual TLS client certificate verification`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (default from config)")
	serveCmd.Flags().String("host", "", "Host to bind to (default from config)")
	serveCmd.Flags().String("store", "", "Candidate store database path (overrides config)")
	serveCmd.Flags().String("lexicon", "", "Bias lexicon override file (overrides config)")
	serveCmd.Flags().String("tls-mode", "", "TLS mode: disabled, server, mutual (overrides config)")
	serveCmd.Flags().String("cert-file", "", "Server certificate file (PEM, overrides config)")
	serveCmd.Flags().String("key-file", "", "Server private key file (PEM, overrides config)")
	serveCmd.Flags().String("ca-file", "", "CA certificate file for client cert verification (PEM, overrides config)")

	// Bind flags to viper config keys
	bindFlag := func(key, flagName string) {
		if err := viper.BindPFlag(key, serveCmd.Flags().Lookup(flagName)); err != nil {
			panic(err)
		}
	}

	bindFlag("server.port", "port")
	bindFlag("server.host", "host")
	bindFlag("store.path", "store")
	bindFlag("engine.lexiconfile", "lexicon")
	bindFlag("server.tls.mode", "tls-mode")
	bindFlag("server.tls.certfile", "cert-file")
	bindFlag("server.tls.keyfile", "key-file")
	bindFlag("server.tls.cafile", "ca-file")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Validate TLS configuration after applying overrides
	tempConfig := &config.Config{Server: cfg.Server}
	if err := tempConfig.ValidateTLSConfig(); err != nil {
		return fmt.Errorf("invalid TLS configuration: %w", err)
	}

	eng, err := newEngineFromConfig(cfg)
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.LogError(closeErr, "Failed to close candidate store")
		}
	}()

	serverCfg := server.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		Version:        Version,
		TLSConfig:      cfg.Server.TLS,
		APIKeys:        cfg.Server.APIKeys,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxRequestSize: cfg.Server.MaxRequestBytes,
		RateLimit:      &cfg.Server.RateLimit,
	}
	return server.NewServer(cfg, serverCfg, eng, st, logger).Start()
}

// newEngineFromConfig builds the scoring engine, applying the configured
// lexicon override when one is set
func newEngineFromConfig(cfg *config.Config) (*engine.Engine, error) {
	if cfg.Engine.LexiconFile == "" {
		return engine.New(), nil
	}

	lex, err := engine.LoadLexicon(cfg.Engine.LexiconFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load lexicon %s: %w", cfg.Engine.LexiconFile, err)
	}
	return engine.New(engine.WithLexicon(lex)), nil
}
