package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Development origins allowed when CORS_ORIGINS is unset.
const defaultCORSOrigins = "http://localhost:3000,http://localhost:5173,http://localhost:8081"

type Config struct {
	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string

	// JWT sessions issued by the identity provider
	JWTSecret       string
	JWTAccessExpiry time.Duration

	// Admin allow-list
	AdminEmails string

	// SessionRecheck makes every auth-state change re-check the directory
	// enabled flag instead of leaving that to the user login path.
	SessionRecheck bool

	// Servers
	Port         string
	UploaderPort string
	CORSOrigins  string
	FrontendURL  string

	// Upload service
	UploaderURL   string
	BaseURL       string
	UploadTimeout time.Duration

	// Photo storage
	PhotoStorage    string
	PhotosDir       string
	S3Bucket        string
	S3Prefix        string
	S3PublicBaseURL string
	AWSRegion       string
	AWSEndpointURL  string

	// Misc
	SeedDemoCases    bool
	LogRetentionDays int
	SentryDSN        string
	AppEnv           string
}

func Load() *Config {
	uploaderPort := getEnv("UPLOADER_PORT", "5000")

	return &Config{
		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "court_cases"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBPath:     getEnv("DB_PATH", "court_cases.db"),

		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTAccessExpiry: parseDuration(getEnv("JWT_ACCESS_EXPIRY", "24h"), 24*time.Hour),

		AdminEmails:    getEnv("ADMIN_EMAILS", "admin@savedeities.com,admin@courtcases.com"),
		SessionRecheck: parseBool(getEnv("SESSION_RECHECK_ENABLED", "false")),

		Port:         getEnv("PORT", "8080"),
		UploaderPort: uploaderPort,
		CORSOrigins:  getEnv("CORS_ORIGINS", defaultCORSOrigins),
		FrontendURL:  getEnv("FRONTEND_URL", ""),

		UploaderURL:   strings.TrimRight(getEnv("UPLOADER_URL", "http://localhost:"+uploaderPort), "/"),
		BaseURL:       strings.TrimRight(getEnv("BASE_URL", "http://localhost:"+uploaderPort), "/"),
		UploadTimeout: parseDuration(getEnv("UPLOAD_TIMEOUT", "30s"), 30*time.Second),

		PhotoStorage:    getEnv("PHOTO_STORAGE", "local"),
		PhotosDir:       getEnv("PHOTOS_DIR", "photos"),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", "photos"),
		S3PublicBaseURL: strings.TrimRight(getEnv("S3_PUBLIC_BASE_URL", ""), "/"),
		AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL:  getEnv("AWS_ENDPOINT_URL", ""),

		SeedDemoCases:    parseBool(getEnv("SEED_DEMO_CASES", "false")),
		LogRetentionDays: parseInt(getEnv("LOG_RETENTION_DAYS", "30"), 30),
		SentryDSN:        getEnv("SENTRY_DSN", ""),
		AppEnv:           getEnv("APP_ENV", "development"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// AllowedOrigins returns the CORS allow-list with FRONTEND_URL appended.
func (c *Config) AllowedOrigins() string {
	origins := ParseCSV(c.CORSOrigins)
	if c.FrontendURL != "" {
		origins = append(origins, c.FrontendURL)
	}
	return strings.Join(origins, ",")
}

// AdminEmailList returns the administrator allow-list.
func (c *Config) AdminEmailList() []string {
	return ParseCSV(c.AdminEmails)
}

// ParseCSV splits a comma separated list, dropping blanks.
func ParseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
