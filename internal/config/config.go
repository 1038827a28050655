package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Chunkr ChunkrConfig
	S3     S3Config
	Auth   AuthConfig
	CORS   CORSConfig
	Queue  QueueConfig
	Email  EmailConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// ChunkrConfig holds Chunkr legacy API settings.
type ChunkrConfig struct {
	APIKey           string `mapstructure:"api_key"`
	BaseURL          string `mapstructure:"url"`
	Model            string `mapstructure:"model"`
	OCRStrategy      string `mapstructure:"ocr_strategy"`
	TimeoutSecs      int    `mapstructure:"timeout_secs"`
	CreateAttempts   int    `mapstructure:"create_attempts"`
	PollAttempts     int    `mapstructure:"poll_attempts"`
	PollIntervalSecs int    `mapstructure:"poll_interval_secs"`
}

// S3Config holds AWS S3 settings for source-document archival.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// AuthConfig holds API authentication settings. When JWTSecret is empty the
// API runs open, matching the original single-tenant deployment.
type AuthConfig struct {
	JWTSecret    string        `mapstructure:"jwt_secret"`
	APIKeyHash   string        `mapstructure:"api_key_hash"`
	AccessExpiry time.Duration `mapstructure:"access_expiry"`
	Issuer       string        `mapstructure:"issuer"`
}

// Enabled reports whether request authentication is configured.
func (a *AuthConfig) Enabled() bool {
	return a.JWTSecret != ""
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// QueueConfig holds extraction queue worker settings.
type QueueConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	MaxRetries       int `mapstructure:"max_retries"`
	Concurrency      int `mapstructure:"concurrency"`
}

// EmailConfig holds job-notification email settings.
type EmailConfig struct {
	Provider      string `mapstructure:"provider"`
	Region        string `mapstructure:"region"`
	FromAddress   string `mapstructure:"from_address"`
	FromName      string `mapstructure:"from_name"`
	NotifyAddress string `mapstructure:"notify_address"`
}

// Load reads configuration from environment variables with the CHUNKR_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CHUNKR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "chunkr")
	v.SetDefault("db.password", "chunkr_secret")
	v.SetDefault("db.name", "chunkr_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Chunkr defaults
	v.SetDefault("chunkr.api_key", "")
	v.SetDefault("chunkr.url", "https://legacy-api.chunkr.ai")
	v.SetDefault("chunkr.model", "Fast")
	v.SetDefault("chunkr.ocr_strategy", "Auto")
	v.SetDefault("chunkr.timeout_secs", 90)
	v.SetDefault("chunkr.create_attempts", 5)
	v.SetDefault("chunkr.poll_attempts", 120)
	v.SetDefault("chunkr.poll_interval_secs", 2)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "airrate-documents")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 50)
	v.SetDefault("s3.presign_expiry", 3600)

	// Auth defaults (disabled unless a secret is provided)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.api_key_hash", "")
	v.SetDefault("auth.access_expiry", "1h")
	v.SetDefault("auth.issuer", "chunkr-pdf-extraction")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Queue defaults
	v.SetDefault("queue.poll_interval_secs", 5)
	v.SetDefault("queue.max_retries", 3)
	v.SetDefault("queue.concurrency", 2)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@example.com")
	v.SetDefault("email.from_name", "Airfreight Rates")
	v.SetDefault("email.notify_address", "")

	// Bind environment variables explicitly for nested keys. The chunkr
	// section keeps the original flat names (CHUNKR_API_KEY, CHUNKR_URL).
	envBindings := map[string]string{
		"server.port":               "CHUNKR_SERVER_PORT",
		"server.read_timeout":       "CHUNKR_SERVER_READ_TIMEOUT",
		"server.write_timeout":      "CHUNKR_SERVER_WRITE_TIMEOUT",
		"server.environment":        "CHUNKR_SERVER_ENVIRONMENT",
		"db.host":                   "CHUNKR_DB_HOST",
		"db.port":                   "CHUNKR_DB_PORT",
		"db.user":                   "CHUNKR_DB_USER",
		"db.password":               "CHUNKR_DB_PASSWORD",
		"db.name":                   "CHUNKR_DB_NAME",
		"db.sslmode":                "CHUNKR_DB_SSLMODE",
		"db.max_open":               "CHUNKR_DB_MAX_OPEN",
		"db.max_idle":               "CHUNKR_DB_MAX_IDLE",
		"chunkr.api_key":            "CHUNKR_API_KEY",
		"chunkr.url":                "CHUNKR_URL",
		"chunkr.model":              "CHUNKR_MODEL",
		"chunkr.ocr_strategy":       "CHUNKR_OCR_STRATEGY",
		"chunkr.timeout_secs":       "CHUNKR_TIMEOUT_SECS",
		"chunkr.create_attempts":    "CHUNKR_CREATE_ATTEMPTS",
		"chunkr.poll_attempts":      "CHUNKR_POLL_ATTEMPTS",
		"chunkr.poll_interval_secs": "CHUNKR_POLL_INTERVAL_SECS",
		"s3.region":                 "CHUNKR_S3_REGION",
		"s3.bucket":                 "CHUNKR_S3_BUCKET",
		"s3.endpoint":               "CHUNKR_S3_ENDPOINT",
		"s3.access_key":             "CHUNKR_S3_ACCESS_KEY",
		"s3.secret_key":             "CHUNKR_S3_SECRET_KEY",
		"s3.max_file_size_mb":       "CHUNKR_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":         "CHUNKR_S3_PRESIGN_EXPIRY",
		"auth.jwt_secret":           "CHUNKR_AUTH_JWT_SECRET",
		"auth.api_key_hash":         "CHUNKR_AUTH_API_KEY_HASH",
		"auth.access_expiry":        "CHUNKR_AUTH_ACCESS_EXPIRY",
		"auth.issuer":               "CHUNKR_AUTH_ISSUER",
		"cors.allowed_origins":      "CHUNKR_CORS_ALLOWED_ORIGINS",
		"queue.poll_interval_secs":  "CHUNKR_QUEUE_POLL_INTERVAL_SECS",
		"queue.max_retries":         "CHUNKR_QUEUE_MAX_RETRIES",
		"queue.concurrency":         "CHUNKR_QUEUE_CONCURRENCY",
		"email.provider":            "CHUNKR_EMAIL_PROVIDER",
		"email.region":              "CHUNKR_EMAIL_REGION",
		"email.from_address":        "CHUNKR_EMAIL_FROM_ADDRESS",
		"email.from_name":           "CHUNKR_EMAIL_FROM_NAME",
		"email.notify_address":      "CHUNKR_EMAIL_NOTIFY_ADDRESS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if CHUNKR_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("CHUNKR_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Chunkr = ChunkrConfig{
		APIKey:           v.GetString("chunkr.api_key"),
		BaseURL:          v.GetString("chunkr.url"),
		Model:            v.GetString("chunkr.model"),
		OCRStrategy:      v.GetString("chunkr.ocr_strategy"),
		TimeoutSecs:      v.GetInt("chunkr.timeout_secs"),
		CreateAttempts:   v.GetInt("chunkr.create_attempts"),
		PollAttempts:     v.GetInt("chunkr.poll_attempts"),
		PollIntervalSecs: v.GetInt("chunkr.poll_interval_secs"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Auth = AuthConfig{
		JWTSecret:    v.GetString("auth.jwt_secret"),
		APIKeyHash:   v.GetString("auth.api_key_hash"),
		AccessExpiry: v.GetDuration("auth.access_expiry"),
		Issuer:       v.GetString("auth.issuer"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Queue = QueueConfig{
		PollIntervalSecs: v.GetInt("queue.poll_interval_secs"),
		MaxRetries:       v.GetInt("queue.max_retries"),
		Concurrency:      v.GetInt("queue.concurrency"),
	}
	cfg.Email = EmailConfig{
		Provider:      v.GetString("email.provider"),
		Region:        v.GetString("email.region"),
		FromAddress:   v.GetString("email.from_address"),
		FromName:      v.GetString("email.from_name"),
		NotifyAddress: v.GetString("email.notify_address"),
	}

	return cfg, nil
}
