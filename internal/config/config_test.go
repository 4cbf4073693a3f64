package config

import (
	"encoding/base64"
	"testing"
	"time"
)

var validSecret = base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))

func TestLoad(t *testing.T) {
	t.Setenv("APP_MODE", "prod")
	t.Setenv("PROD_JWT_SECRET", validSecret)
	t.Setenv("PROD_DB_NAME", "qna_prod")
	t.Setenv("TOKEN_VALIDITY_HOURS", "12")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.IsProd() || cfg.StoreDriver != StoreMemory {
		t.Errorf("mode/store = %s/%s", cfg.AppMode, cfg.StoreDriver)
	}
	if cfg.Database.DBName != "qna_prod" {
		t.Errorf("DBName = %q", cfg.Database.DBName)
	}
	if cfg.JWT.TokenValidity != 12*time.Hour {
		t.Errorf("TokenValidity = %v", cfg.JWT.TokenValidity)
	}
	if cfg.Redis.DB != 3 {
		t.Errorf("Redis.DB = %d", cfg.Redis.DB)
	}
	if cfg.DigestCron != "55 23 * * *" {
		t.Errorf("DigestCron = %q", cfg.DigestCron)
	}
	if cfg.SeedDevData {
		t.Error("prod must not seed dev data")
	}
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad mode", map[string]string{"APP_MODE": "staging", "DEV_JWT_SECRET": validSecret}},
		{"missing secret", map[string]string{"APP_MODE": "dev", "DEV_JWT_SECRET": ""}},
		{"secret not base64", map[string]string{"APP_MODE": "dev", "DEV_JWT_SECRET": "***"}},
		{"bad store", map[string]string{"APP_MODE": "dev", "DEV_JWT_SECRET": validSecret, "STORE_DRIVER": "postgres"}},
		{"zero validity", map[string]string{"APP_MODE": "dev", "DEV_JWT_SECRET": validSecret, "TOKEN_VALIDITY_HOURS": "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
