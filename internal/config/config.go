package config

import (
	"errors"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config regroupe la configuration de l'API
type Config struct {
	Port string
	URL  string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Redis sert au verrou "vote en cours"; vide = verrou en mémoire
	RedisURL    string
	VoteLockTTL time.Duration

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	SessionDuration time.Duration
	ReportTimeout   time.Duration
}

// LoadConfig charge le fichier .env (s'il existe) puis les variables d'environnement
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg := &Config{
		Port: getenv("PORT", "8080"),
		URL:  getenv("API_URL", "http://localhost:8080"),

		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     getenv("DB_USER", "studyhub"),
		DBPassword: getenv("DB_PASSWORD", "studyhub"),
		DBName:     getenv("DB_NAME", "studyhub"),

		RedisURL:    getenv("REDIS_URL", ""),
		VoteLockTTL: time.Duration(getenvInt("VOTE_LOCK_TTL_MS", 5000)) * time.Millisecond,

		CloudinaryCloudName: getenv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getenv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getenv("CLOUDINARY_API_SECRET", ""),

		SessionDuration: time.Duration(getenvInt("SESSION_HOURS", 24)) * time.Hour,
		ReportTimeout:   time.Duration(getenvInt("REPORT_TIMEOUT_SECONDS", 30)) * time.Second,
	}

	if cfg.VoteLockTTL <= 0 {
		return nil, errors.New("VOTE_LOCK_TTL_MS must be positive")
	}

	return cfg, nil
}

// DatabaseURL construit la DSN PostgreSQL (identifiants échappés)
func (c *Config) DatabaseURL() string {
	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   net.JoinHostPort(c.DBHost, c.DBPort),
		Path:   "/" + c.DBName,
	}
	return dsn.String()
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
