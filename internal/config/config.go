package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the console
type Config struct {
	AppMode string
	Port    string
	API     APIConfig
	Views   ViewsConfig
	Cookie  CookieConfig
}

// APIConfig points the console at the remote cooperative API
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
	Debug   bool
}

// ViewsConfig controls page behavior
type ViewsConfig struct {
	TabMode     string // "eager" or "on_demand"
	PageSize    int
	Concurrency int
}

// CookieConfig names the cookies the login flow leaves behind. Secure and
// SameSite apply when the console clears them on sign-out.
type CookieConfig struct {
	TokenName       string
	AssociationName string
	CooperativeName string
	Secure          bool
	SameSite        string
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	apiCfg, err := loadAPIConfig(appMode)
	if err != nil {
		return nil, err
	}
	viewsCfg, err := loadViewsConfig()
	if err != nil {
		return nil, err
	}

	config := &Config{
		AppMode: appMode,
		Port:    getEnv("PORT", "3000"),
		API:     apiCfg,
		Views:   viewsCfg,
		Cookie:  loadCookieConfig(appMode),
	}

	log.Printf("✅ Configuration loaded successfully [MODE: %s, API: %s]", appMode, apiCfg.BaseURL)
	return config, nil
}

// loadAPIConfig loads API config based on mode
func loadAPIConfig(mode string) (APIConfig, error) {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	baseURL := strings.TrimRight(getEnv(prefix+"API_BASE_URL", "http://localhost:8080/api"), "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return APIConfig{}, fmt.Errorf("invalid %sAPI_BASE_URL: '%s'", prefix, baseURL)
	}

	// 0 disables the client timeout
	secs, err := strconv.Atoi(getEnv("API_TIMEOUT_SECONDS", "15"))
	if err != nil || secs < 0 {
		return APIConfig{}, fmt.Errorf("invalid API_TIMEOUT_SECONDS: '%s'", os.Getenv("API_TIMEOUT_SECONDS"))
	}

	debug, _ := strconv.ParseBool(getEnv("API_DEBUG", strconv.FormatBool(mode == "dev")))

	return APIConfig{
		BaseURL: baseURL,
		Timeout: time.Duration(secs) * time.Second,
		Debug:   debug,
	}, nil
}

// loadViewsConfig loads page behavior settings
func loadViewsConfig() (ViewsConfig, error) {
	tabMode := strings.ToLower(strings.TrimSpace(getEnv("TAB_MODE", "eager")))
	if tabMode != "eager" && tabMode != "on_demand" {
		return ViewsConfig{}, fmt.Errorf("invalid TAB_MODE: '%s' (must be 'eager' or 'on_demand')", tabMode)
	}

	pageSize, _ := strconv.Atoi(getEnv("PAGE_SIZE", "20"))
	if pageSize < 1 {
		pageSize = 20
	}
	concurrency, _ := strconv.Atoi(getEnv("TAB_CONCURRENCY", "4"))
	if concurrency < 1 {
		concurrency = 1
	}

	return ViewsConfig{
		TabMode:     tabMode,
		PageSize:    pageSize,
		Concurrency: concurrency,
	}, nil
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	secure, _ := strconv.ParseBool(getEnv(prefix+"COOKIE_SECURE", "false"))

	return CookieConfig{
		TokenName:       getEnv("COOKIE_TOKEN", "token"),
		AssociationName: getEnv("COOKIE_ASSOCIATION_ID", "associationId"),
		CooperativeName: getEnv("COOKIE_COOPERATIVE_ID", "cooperativeId"),
		Secure:          secure,
		SameSite:        getEnv("COOKIE_SAMESITE", "lax"),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://console.coop.local"
	}
	return origins
}
