package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the Bhumi server.
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Redis  RedisConfig
	Gemini GeminiConfig
	Auth   AuthConfig
}

type ServerConfig struct {
	Port           int
	Env            string
	AllowedOrigins []string
}

// Store backends selectable via STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
)

type StoreConfig struct {
	Backend  string
	Postgres PostgresConfig
	Mongo    MongoConfig
}

type PostgresConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	URL string
}

type GeminiConfig struct {
	APIKey         string
	BaseURL        string
	ReasoningModel string
	VisionModel    string
	FastModel      string
	Timeout        time.Duration
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	// AutoRegister mirrors the original mock backend: login fabricates an
	// account for any unknown email. Only the memory backend behaves this
	// way; real backends require signup.
	AutoRegister bool
}

var validBackends = map[string]bool{
	BackendMemory:   true,
	BackendPostgres: true,
	BackendMongo:    true,
}

// Load reads configuration from environment variables (and an optional .env
// file) and returns a validated Config. Returns an error with a descriptive
// message if any required value is missing or invalid.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           envInt("BHUMI_PORT", 8080),
			Env:            envString("BHUMI_ENV", "development"),
			AllowedOrigins: envList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Store: StoreConfig{
			Backend: envString("STORE_BACKEND", BackendMemory),
			Postgres: PostgresConfig{
				URL:             os.Getenv("DATABASE_URL"),
				MaxOpenConns:    envInt("DATABASE_MAX_OPEN_CONNS", 25),
				MaxIdleConns:    envInt("DATABASE_MAX_IDLE_CONNS", 5),
				ConnMaxLifetime: envDuration("DATABASE_CONN_MAX_LIFETIME", 5*time.Minute),
			},
			Mongo: MongoConfig{
				URI:      os.Getenv("MONGO_URI"),
				Database: envString("MONGO_DB", "bhumi"),
			},
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Gemini: GeminiConfig{
			APIKey:         os.Getenv("GEMINI_API_KEY"),
			BaseURL:        envString("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
			ReasoningModel: envString("GEMINI_REASONING_MODEL", "gemini-3-pro-preview"),
			VisionModel:    envString("GEMINI_VISION_MODEL", "gemini-3-pro-preview"),
			FastModel:      envString("GEMINI_FAST_MODEL", "gemini-3-flash-preview"),
			Timeout:        envDurationSecs("GEMINI_TIMEOUT_SECS", 60*time.Second),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
			TokenTTL:  envDuration("TOKEN_TTL", 24*time.Hour),
		},
	}

	cfg.Auth.AutoRegister = cfg.Store.Backend == BackendMemory

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if !validBackends[c.Store.Backend] {
		return fmt.Errorf("STORE_BACKEND must be one of memory, postgres, mongo; got %q", c.Store.Backend)
	}

	if c.Store.Backend == BackendPostgres && c.Store.Postgres.URL == "" {
		return fmt.Errorf("DATABASE_URL is required when STORE_BACKEND is postgres")
	}
	if c.Store.Backend == BackendMongo && c.Store.Mongo.URI == "" {
		return fmt.Errorf("MONGO_URI is required when STORE_BACKEND is mongo")
	}

	if !strings.HasPrefix(c.Gemini.BaseURL, "http://") && !strings.HasPrefix(c.Gemini.BaseURL, "https://") {
		return fmt.Errorf("GEMINI_BASE_URL must start with http:// or https://, got %q", c.Gemini.BaseURL)
	}

	// GEMINI_API_KEY is deliberately not required here: the server starts
	// without it and each AI feature fails closed until the key is set.

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	return nil
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

func envDurationSecs(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return time.Duration(secs) * time.Second
}

func envList(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
