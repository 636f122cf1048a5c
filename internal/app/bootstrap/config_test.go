// internal/app/bootstrap/config_test.go
package bootstrap

import (
	"testing"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func validAppCfg() AppConfig {
	return AppConfig{
		MongoURI:      "mongodb://localhost:27017",
		MongoDatabase: "project_hub_test",
		SessionKey:    "0123456789abcdef0123456789abcdef",
	}
}

func TestValidateConfig(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name    string
		env     string
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{
			name:   "valid dev config",
			env:    "dev",
			mutate: func(c *AppConfig) {},
		},
		{
			name:    "bad mongo uri",
			env:     "dev",
			mutate:  func(c *AppConfig) { c.MongoURI = "not-a-uri" },
			wantErr: true,
		},
		{
			name:    "prod requires session key",
			env:     "prod",
			mutate:  func(c *AppConfig) { c.SessionKey = "" },
			wantErr: true,
		},
		{
			name:   "dev tolerates empty session key",
			env:    "dev",
			mutate: func(c *AppConfig) { c.SessionKey = "" },
		},
		{
			name:    "google client id without secret",
			env:     "dev",
			mutate:  func(c *AppConfig) { c.GoogleClientID = "client-id" },
			wantErr: true,
		},
		{
			name: "google client id with secret",
			env:  "dev",
			mutate: func(c *AppConfig) {
				c.GoogleClientID = "client-id"
				c.GoogleClientSecret = "client-secret"
			},
		},
		{
			name:    "admin email without password",
			env:     "dev",
			mutate:  func(c *AppConfig) { c.AdminEmail = "admin@example.edu" },
			wantErr: true,
		},
		{
			name: "admin email with password",
			env:  "dev",
			mutate: func(c *AppConfig) {
				c.AdminEmail = "admin@example.edu"
				c.AdminPassword = "hunter2hunter2"
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			appCfg := validAppCfg()
			tc.mutate(&appCfg)
			err := ValidateConfig(&config.CoreConfig{Env: tc.env}, appCfg, logger)
			if tc.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
