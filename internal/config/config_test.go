package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_MODE", "dev")
	t.Setenv("DEV_API_BASE_URL", "https://api.example.test/v1/")
	t.Setenv("API_TIMEOUT_SECONDS", "")
	t.Setenv("TAB_MODE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "https://api.example.test/v1" {
		t.Fatalf("base url = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 15*time.Second {
		t.Fatalf("timeout = %v", cfg.API.Timeout)
	}
	if cfg.Views.TabMode != "eager" || cfg.Views.PageSize != 20 {
		t.Fatalf("views = %+v", cfg.Views)
	}
	if cfg.Cookie.TokenName != "token" || cfg.Cookie.AssociationName != "associationId" {
		t.Fatalf("cookie = %+v", cfg.Cookie)
	}
	if cfg.GetAllowedOrigins() != "*" {
		t.Fatalf("origins = %q", cfg.GetAllowedOrigins())
	}
}

func TestLoadProdPrefix(t *testing.T) {
	t.Setenv("APP_MODE", "prod")
	t.Setenv("PROD_API_BASE_URL", "https://prod.example.test")
	t.Setenv("TAB_MODE", "on_demand")
	t.Setenv("API_TIMEOUT_SECONDS", "0")
	t.Setenv("PROD_COOKIE_SECURE", "true")
	t.Setenv("COOKIE_SAMESITE", "strict")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.IsProd() || cfg.API.BaseURL != "https://prod.example.test" || cfg.API.Debug {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Views.TabMode != "on_demand" || cfg.API.Timeout != 0 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if !cfg.Cookie.Secure || cfg.Cookie.SameSite != "strict" {
		t.Fatalf("cookie = %+v", cfg.Cookie)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]map[string]string{
		"mode":    {"APP_MODE": "staging"},
		"url":     {"APP_MODE": "dev", "DEV_API_BASE_URL": "ftp://x"},
		"timeout": {"APP_MODE": "dev", "DEV_API_BASE_URL": "http://x", "API_TIMEOUT_SECONDS": "soon"},
		"tabs":    {"APP_MODE": "dev", "DEV_API_BASE_URL": "http://x", "API_TIMEOUT_SECONDS": "1", "TAB_MODE": "lazy"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
