package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"resume-builder/internal/llm/huggingface"
)

// ErrMissingAPIToken is returned by Load when HF_API_TOKEN is unset.
var ErrMissingAPIToken = errors.New("HF_API_TOKEN is required")

// Config holds application configuration.
type Config struct {
	Port string
	Env  string

	HFAPIToken     string
	HFAPIURL       string
	EnhanceTimeout time.Duration
	EnhanceDefault bool

	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string

	DatabaseURL string

	CORSAllowOrigins      []string
	GenerateRatePerMinute int
	GenerateBurst         int
}

// Load reads configuration from the environment, after best-effort loading of
// local env files. A missing generation API token is an error.
func Load() (Config, error) {
	loadEnvFiles(".env", "cmd/.env")
	return FromEnv()
}

// FromEnv reads configuration from the process environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:                  getEnv("PORT", "5000"),
		Env:                   normalizeEnv(getEnv("ENV", "dev")),
		HFAPIToken:            strings.TrimSpace(os.Getenv("HF_API_TOKEN")),
		HFAPIURL:              getEnv("HF_API_URL", huggingface.DefaultURL),
		EnhanceTimeout:        time.Duration(getEnvInt("ENHANCE_TIMEOUT_SECONDS", 30)) * time.Second,
		EnhanceDefault:        getEnvBool("ENHANCE_DEFAULT", false),
		ObjectStoreType:       normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:         getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:             getEnv("AWS_REGION", ""),
		S3Bucket:              getEnv("S3_BUCKET", ""),
		S3Prefix:              getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:           getEnv("SSE_KMS_KEY_ID", ""),
		DatabaseURL:           strings.TrimSpace(os.Getenv("DATABASE_URL")),
		CORSAllowOrigins:      splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "*")),
		GenerateRatePerMinute: getEnvInt("GENERATE_RATE_PER_MINUTE", 0),
		GenerateBurst:         getEnvInt("GENERATE_BURST", 5),
	}

	if cfg.HFAPIToken == "" {
		return cfg, ErrMissingAPIToken
	}
	if cfg.Env == "production" && cfg.DatabaseURL == "" {
		return cfg, errors.New("DATABASE_URL is required in production")
	}
	if cfg.ObjectStoreType == "s3" && cfg.S3Bucket == "" {
		return cfg, errors.New("S3_BUCKET is required when OBJECT_STORE=s3")
	}
	if cfg.EnhanceTimeout <= 0 {
		cfg.EnhanceTimeout = huggingface.DefaultTimeout
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func getEnvBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
