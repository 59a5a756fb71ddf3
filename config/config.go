package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

const (
	DefaultPort            = "8080"
	DefaultTokenExpiryMin  = 1440
	DefaultBcryptCost      = 10
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "json"
	DefaultFrontendURL     = "http://localhost:5173"
	DefaultS3Bucket        = "course-images"
	DefaultS3Region        = "us-east-1"
	DefaultMaxImageSizeMB  = 5
	productionEnv          = "production"
	developmentEnv         = "development"
	devConfigFile          = ".env.dev"
	prodConfigFile         = ".env.prod"
	configDir              = "config"
	missingConfigFormatter = "Missing required config: %s"
)

type Config struct {
	Env              string
	Port             string
	DBURL            string
	AdminTokenSecret string
	UserTokenSecret  string
	TokenExpiryMin   int
	BcryptCost       int
	LogLevel         string
	LogFormat        string
	FrontendURL      string
	MaxImageSizeMB   int
	S3               S3Config
}

// S3Config points the course image store at an S3 compatible bucket.
// Endpoint is only set for non-AWS providers and switches to path-style URLs.
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PublicURL       string
}

// Load reads config/.env.dev (or config/.env.prod when ENV=production) and
// lets process environment variables override the file.
func Load() *Config {
	env := getEnv("ENV", developmentEnv)

	v := viper.New()
	v.SetConfigFile(filepath.Join(configDir, configFileFor(env)))
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		log.Printf("config file not loaded, using environment only: %v", err)
	}
	v.AutomaticEnv()

	cfg := &Config{
		Env:              env,
		Port:             getString(v, "PORT", DefaultPort),
		DBURL:            mustGetString(v, "DB_URL"),
		AdminTokenSecret: mustGetString(v, "ADMIN_TOKEN_SECRET"),
		UserTokenSecret:  mustGetString(v, "USER_TOKEN_SECRET"),
		TokenExpiryMin:   getInt(v, "TOKEN_EXPIRY", DefaultTokenExpiryMin),
		BcryptCost:       getInt(v, "BCRYPT_COST", DefaultBcryptCost),
		LogLevel:         getString(v, "LOG_LEVEL", DefaultLogLevel),
		LogFormat:        getString(v, "LOG_FORMAT", DefaultLogFormat),
		FrontendURL:      getString(v, "FRONTEND_URL", DefaultFrontendURL),
		MaxImageSizeMB:   getInt(v, "MAX_IMAGE_SIZE_MB", DefaultMaxImageSizeMB),
		S3: S3Config{
			Bucket:          getString(v, "S3_BUCKET", DefaultS3Bucket),
			Region:          getString(v, "S3_REGION", DefaultS3Region),
			Endpoint:        getString(v, "S3_ENDPOINT", ""),
			AccessKeyID:     getString(v, "S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getString(v, "S3_SECRET_ACCESS_KEY", ""),
			PublicURL:       getString(v, "S3_PUBLIC_URL", ""),
		},
	}

	if cfg.AdminTokenSecret == cfg.UserTokenSecret {
		log.Fatalf("ADMIN_TOKEN_SECRET and USER_TOKEN_SECRET must differ")
	}

	return cfg
}

func (c *Config) IsProduction() bool {
	return c.Env == productionEnv
}

func (c *Config) MaxImageSizeBytes() int64 {
	return int64(c.MaxImageSizeMB) << 20
}

func configFileFor(env string) string {
	if env == productionEnv {
		return prodConfigFile
	}
	return devConfigFile
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getString(v *viper.Viper, key, defaultVal string) string {
	if value := strings.TrimSpace(v.GetString(key)); value != "" {
		return value
	}
	return defaultVal
}

func mustGetString(v *viper.Viper, key string) string {
	if value := strings.TrimSpace(v.GetString(key)); value != "" {
		return value
	}
	log.Fatalf(missingConfigFormatter, key)
	return ""
}

func getInt(v *viper.Viper, key string, defaultVal int) int {
	valStr := strings.TrimSpace(v.GetString(key))
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}
