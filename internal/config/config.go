package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendSupabase = "supabase"
	BackendMinio    = "minio"
	BackendMemory   = "memory"
)

type Config struct {
	// Supabase
	SupabaseURL            string
	SupabasePublishableKey string
	SupabaseServiceRoleKey string
	SupabaseJWTSecret      string
	SupabaseStorageBucket  string

	// Database
	DatabaseURL string

	// Backends
	StoreBackend string
	BlobBackend  string

	// MinIO
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	// Local state (drafts, wishlist)
	LocalDBPath string

	// Studio
	TokenAllowance       int
	DraftRows            int
	ProgressStepInterval time.Duration

	// Server
	BaseURL        string
	Port           string
	Environment    string
	LogLevel       string
	AllowedOrigins []string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabasePublishableKey: getEnv("SUPABASE_PUBLISHABLE_KEY", ""),
		SupabaseServiceRoleKey: getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
		SupabaseJWTSecret:      getEnv("SUPABASE_JWT_SECRET", ""),
		SupabaseStorageBucket:  getEnv("SUPABASE_STORAGE_BUCKET", "genai-space"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		StoreBackend: getEnv("STORE_BACKEND", BackendSupabase),
		BlobBackend:  getEnv("BLOB_BACKEND", BackendSupabase),

		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getEnv("MINIO_BUCKET", "genai-space"),

		LocalDBPath: getEnv("LOCAL_DB_PATH", "genai-space.db"),

		BaseURL:        getEnv("BASE_URL", "http://localhost:8080"),
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	var err error
	if cfg.MinioUseSSL, err = getEnvBool("MINIO_USE_SSL", false); err != nil {
		return nil, err
	}
	if cfg.TokenAllowance, err = getEnvInt("TOKEN_ALLOWANCE", 100); err != nil {
		return nil, err
	}
	if cfg.DraftRows, err = getEnvInt("DRAFT_ROWS", 8); err != nil {
		return nil, err
	}
	if cfg.ProgressStepInterval, err = getEnvDuration("PROGRESS_STEP_INTERVAL", 2*time.Second); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SupabaseJWTSecret == "" {
		return fmt.Errorf("SUPABASE_JWT_SECRET is required")
	}

	switch c.StoreBackend {
	case BackendSupabase:
		if c.SupabaseURL == "" {
			return fmt.Errorf("SUPABASE_URL is required")
		}
		if c.SupabaseServiceRoleKey == "" {
			return fmt.Errorf("SUPABASE_SERVICE_ROLE_KEY is required")
		}
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("STORE_BACKEND must be %s or %s, got %q", BackendSupabase, BackendMemory, c.StoreBackend)
	}

	switch c.BlobBackend {
	case BackendSupabase:
		if c.SupabaseURL == "" {
			return fmt.Errorf("SUPABASE_URL is required")
		}
		if c.SupabaseServiceRoleKey == "" {
			return fmt.Errorf("SUPABASE_SERVICE_ROLE_KEY is required")
		}
	case BackendMinio:
		if c.MinioAccessKey == "" || c.MinioSecretKey == "" {
			return fmt.Errorf("MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("BLOB_BACKEND must be %s, %s or %s, got %q", BackendSupabase, BackendMinio, BackendMemory, c.BlobBackend)
	}

	if c.TokenAllowance < 0 {
		return fmt.Errorf("TOKEN_ALLOWANCE must not be negative")
	}
	if c.DraftRows <= 0 {
		return fmt.Errorf("DRAFT_ROWS must be positive")
	}
	if c.ProgressStepInterval < 0 {
		return fmt.Errorf("PROGRESS_STEP_INTERVAL must not be negative")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
