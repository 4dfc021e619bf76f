package config

import (
	"strings"
	"testing"
)

func TestValidateTLSConfig(t *testing.T) {
	tests := []struct {
		name    string
		tls     TLSConfig
		wantErr string
	}{
		{
			name: "disabled mode needs nothing",
			tls:  TLSConfig{Mode: "disabled"},
		},
		{
			name: "server mode with files",
			tls:  TLSConfig{Mode: "server", CertFile: "cert.pem", KeyFile: "key.pem"},
		},
		{
			name: "server mode with content",
			tls:  TLSConfig{Mode: "server", CertContent: "CERT", KeyContent: "KEY"},
		},
		{
			name:    "server mode missing key",
			tls:     TLSConfig{Mode: "server", CertFile: "cert.pem"},
			wantErr: "certificate and key are required",
		},
		{
			name:    "server mode cert from both sources",
			tls:     TLSConfig{Mode: "server", CertFile: "cert.pem", CertContent: "CERT", KeyFile: "key.pem"},
			wantErr: "cannot specify both certFile and certContent",
		},
		{
			name:    "server mode key from both sources",
			tls:     TLSConfig{Mode: "server", CertFile: "cert.pem", KeyFile: "key.pem", KeyContent: "KEY"},
			wantErr: "cannot specify both keyFile and keyContent",
		},
		{
			name: "mutual mode with CA file",
			tls:  TLSConfig{Mode: "mutual", CertFile: "cert.pem", KeyFile: "key.pem", CAFile: "ca.pem"},
		},
		{
			name:    "mutual mode missing CA",
			tls:     TLSConfig{Mode: "mutual", CertFile: "cert.pem", KeyFile: "key.pem"},
			wantErr: "CA certificate is required",
		},
		{
			name:    "mutual mode CA from both sources",
			tls:     TLSConfig{Mode: "mutual", CertFile: "cert.pem", KeyFile: "key.pem", CAFile: "ca.pem", CAContent: "CA"},
			wantErr: "cannot specify both caFile and caContent",
		},
		{
			name:    "mutual mode invalid client auth policy",
			tls:     TLSConfig{Mode: "mutual", CertFile: "cert.pem", KeyFile: "key.pem", CAFile: "ca.pem", ClientAuthPolicy: "always"},
			wantErr: "invalid clientAuthPolicy",
		},
		{
			name: "mutual mode valid client auth policies",
			tls:  TLSConfig{Mode: "mutual", CertFile: "cert.pem", KeyFile: "key.pem", CAFile: "ca.pem", ClientAuthPolicy: "verify"},
		},
		{
			name:    "invalid mode",
			tls:     TLSConfig{Mode: "sideways"},
			wantErr: "invalid TLS mode",
		},
		{
			name:    "invalid min version",
			tls:     TLSConfig{Mode: "disabled", MinVersion: "1.0"},
			wantErr: "invalid TLS minVersion",
		},
		{
			name: "min version 1.3 accepted",
			tls:  TLSConfig{Mode: "server", CertFile: "cert.pem", KeyFile: "key.pem", MinVersion: "1.3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultTestConfig()
			cfg.Server.TLS = tt.tls
			err := cfg.ValidateTLSConfig()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidateTLSConfig() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateTLSConfig() error = nil, want containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateTLSConfig() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
