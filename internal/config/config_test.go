package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func defaultTestConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			AutoReload: LexiconReloadConfig{Enabled: true, DebounceDelay: time.Second},
		},
		Store: StoreConfig{Path: "fairhire360.db"},
		Server: ServerConfig{
			Host:            "localhost",
			Port:            "8080",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			MaxRequestBytes: 2 * 1024 * 1024,
			TLS:             TLSConfig{Mode: "disabled", MinVersion: "1.2"},
		},
		App: AppConfig{
			LogLevel:         "info",
			DefaultFormat:    "json",
			SupportedFormats: []string{"json", "text", "markdown"},
			MaxFileSize:      1024 * 1024,
		},
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want %q", cfg.Server.Port, "8080")
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, 30*time.Second)
	}
	if cfg.Store.Path != "fairhire360.db" {
		t.Errorf("Store.Path = %q, want %q", cfg.Store.Path, "fairhire360.db")
	}
	if cfg.App.DefaultFormat != "json" {
		t.Errorf("App.DefaultFormat = %q, want %q", cfg.App.DefaultFormat, "json")
	}
	if cfg.Server.TLS.Mode != "disabled" {
		t.Errorf("Server.TLS.Mode = %q, want %q", cfg.Server.TLS.Mode, "disabled")
	}
	if !cfg.Engine.AutoReload.Enabled {
		t.Error("Engine.AutoReload.Enabled = false, want true")
	}
	if cfg.Observability.ServiceName != "fairhire360" {
		t.Errorf("Observability.ServiceName = %q, want %q", cfg.Observability.ServiceName, "fairhire360")
	}
	if cfg.Observability.ServiceInstance == "" {
		t.Error("Observability.ServiceInstance should be auto-generated")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
server:
  port: "9999"
  host: 0.0.0.0
engine:
  lexiconFile: lexicon.yaml
store:
  path: ":memory:"
app:
  logLevel: debug
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != "9999" {
		t.Errorf("Server.Port = %q, want %q", cfg.Server.Port, "9999")
	}
	if cfg.Engine.LexiconFile != "lexicon.yaml" {
		t.Errorf("Engine.LexiconFile = %q, want %q", cfg.Engine.LexiconFile, "lexicon.yaml")
	}
	if cfg.Store.Path != ":memory:" {
		t.Errorf("Store.Path = %q, want %q", cfg.Store.Path, ":memory:")
	}
	// Debug level forces console output on
	if !cfg.Observability.ConsoleOutput {
		t.Error("ConsoleOutput should be enabled when logLevel is debug")
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FAIRHIRE_SERVER_PORT", "7070")
	t.Setenv("FAIRHIRE_APP_LOGLEVEL", "warn")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != "7070" {
		t.Errorf("Server.Port = %q, want %q", cfg.Server.Port, "7070")
	}
	if cfg.App.LogLevel != "warn" {
		t.Errorf("App.LogLevel = %q, want %q", cfg.App.LogLevel, "warn")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing port",
			mutate:  func(c *Config) { c.Server.Port = "" },
			wantErr: "server port is required",
		},
		{
			name:    "missing store path",
			mutate:  func(c *Config) { c.Store.Path = "" },
			wantErr: "store path is required",
		},
		{
			name:    "unsupported default format",
			mutate:  func(c *Config) { c.App.DefaultFormat = "xml" },
			wantErr: "invalid default format",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.App.LogLevel = "verbose" },
			wantErr: "invalid log level",
		},
		{
			name:    "non-positive request size cap",
			mutate:  func(c *Config) { c.Server.MaxRequestBytes = 0 },
			wantErr: "maxRequestBytes must be positive",
		},
		{
			name: "rate limit enabled with zero rpm",
			mutate: func(c *Config) {
				c.Server.RateLimit.Enabled = true
				c.Server.RateLimit.BurstCapacity = 10
			},
			wantErr: "requestsPerMin must be positive",
		},
		{
			name: "rate limit enabled with zero burst",
			mutate: func(c *Config) {
				c.Server.RateLimit.Enabled = true
				c.Server.RateLimit.RequestsPerMin = 60
			},
			wantErr: "burstCapacity must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultTestConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() error = nil, want containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestAPIKeysFromEnv(t *testing.T) {
	t.Setenv("FAIRHIRE_SERVER_APIKEYS", "key-one, key-two ,key-three")

	cfg := defaultTestConfig()
	cfg.applyFallbacks()

	want := []string{"key-one", "key-two", "key-three"}
	if len(cfg.Server.APIKeys) != len(want) {
		t.Fatalf("APIKeys = %v, want %v", cfg.Server.APIKeys, want)
	}
	for i, key := range want {
		if cfg.Server.APIKeys[i] != key {
			t.Errorf("APIKeys[%d] = %q, want %q", i, cfg.Server.APIKeys[i], key)
		}
	}
}

func TestAPIKeysFromEnvDoesNotOverrideConfig(t *testing.T) {
	t.Setenv("FAIRHIRE_SERVER_APIKEYS", "env-key")

	cfg := defaultTestConfig()
	cfg.Server.APIKeys = []string{"file-key"}
	cfg.applyFallbacks()

	if len(cfg.Server.APIKeys) != 1 || cfg.Server.APIKeys[0] != "file-key" {
		t.Errorf("APIKeys = %v, want [file-key]", cfg.Server.APIKeys)
	}
}
