package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	logrus "github.com/sirupsen/logrus"
)

// Config holds every runtime setting, read from the environment (and .env).
type Config struct {
	AppPort string `env:"APP_PORT,default=5000"`
	AppEnv  string `env:"APP_ENV,default=development"`

	DBHost     string `env:"DB_HOST,default=localhost"`
	DBPort     string `env:"DB_PORT,default=5432"`
	DBUser     string `env:"DB_USER,default=postgres"`
	DBPassword string `env:"DB_PASSWORD,default=password"`
	DBName     string `env:"DB_NAME,default=farm_market"`
	DBSSLMode  string `env:"DB_SSLMODE,default=disable"`
	DBTimezone string `env:"DB_TIMEZONE,default=UTC"`

	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,default=1h"`

	// ImageStore selects the backend: "cloudinary" or "local".
	ImageStore          string `env:"IMAGE_STORE,default=cloudinary"`
	CloudinaryCloudName string `env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `env:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `env:"CLOUDINARY_API_SECRET"`
	ImageFolder         string `env:"IMAGE_FOLDER,default=farmer-products"`
	UploadDir           string `env:"UPLOAD_DIR,default=./uploads"`
	PublicBaseURL       string `env:"PUBLIC_BASE_URL,default=http://localhost:5000"`
	MaxImageBytes       int64  `env:"MAX_IMAGE_BYTES,default=5242880"`

	CORSOrigins string `env:"CORS_ORIGINS,default=http://localhost:5173"`

	LogFile  string `env:"LOG_FILE,default=./logs/app.log"`
	LogLevel string `env:"LOG_LEVEL,default=debug"`

	AuthRatePerSec float64 `env:"AUTH_RATE_PER_SEC,default=2"`
	AuthRateBurst  int     `env:"AUTH_RATE_BURST,default=5"`
}

// Load reads .env (if present) and decodes the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found – relying on env vars")
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	switch c.ImageStore {
	case "cloudinary":
		if c.CloudinaryCloudName == "" || c.CloudinaryAPIKey == "" || c.CloudinaryAPISecret == "" {
			return errors.New("CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET are required for the cloudinary image store")
		}
	case "local":
		if c.UploadDir == "" {
			return errors.New("UPLOAD_DIR is required for the local image store")
		}
	default:
		return fmt.Errorf("unknown IMAGE_STORE %q", c.ImageStore)
	}
	if c.MaxImageBytes <= 0 {
		return errors.New("MAX_IMAGE_BYTES must be positive")
	}
	return nil
}

// IsProduction reports whether the app runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// DSN builds the Postgres data source name.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode, c.DBTimezone,
	)
}
