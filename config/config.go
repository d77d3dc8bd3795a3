package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Mail         MailConfig
	Storage      StorageConfig
	RateLimit    RateLimitConfig
	Verification VerificationConfig
}

type AppConfig struct {
	Port           string
	Env            string
	LogLevel       string
	UploadMaxBytes int64
}

type DBConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	SSLMode        string
	TimeZone       string
	MigrationsPath string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

type MailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// StorageConfig holds Cloudinary credentials for uploaded images.
type StorageConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// RateLimitConfig tunes the per-IP limiter. TrustProxy honours X-Forwarded-For and
// is meant only for deployments behind a reverse proxy.
type RateLimitConfig struct {
	RPS        float64
	Burst      int
	TrustProxy bool
}

type VerificationConfig struct {
	CodeTTL time.Duration
}

// LoadConfig reads the given .env file (if present) and overlays environment variables.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	accessExpiry, err := time.ParseDuration(v.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(v.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	codeTTL, err := time.ParseDuration(v.GetString("VERIFICATION_CODE_TTL"))
	if err != nil {
		codeTTL = 10 * time.Minute
	}

	config := &Config{
		App: AppConfig{
			Port:           v.GetString("APP_PORT"),
			Env:            v.GetString("APP_ENV"),
			LogLevel:       v.GetString("LOG_LEVEL"),
			UploadMaxBytes: v.GetInt64("UPLOAD_MAX_BYTES"),
		},
		DB: DBConfig{
			Host:           v.GetString("DB_HOST"),
			Port:           v.GetString("DB_PORT"),
			User:           v.GetString("DB_USER"),
			Password:       v.GetString("DB_PASSWORD"),
			Name:           v.GetString("DB_NAME"),
			SSLMode:        v.GetString("DB_SSLMODE"),
			TimeZone:       v.GetString("DB_TIMEZONE"),
			MigrationsPath: v.GetString("DB_MIGRATIONS_PATH"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        v.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Mail: MailConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			User:     v.GetString("SMTP_USER"),
			Password: v.GetString("SMTP_PASSWORD"),
			From:     v.GetString("SMTP_FROM"),
		},
		Storage: StorageConfig{
			CloudName: v.GetString("CLOUDINARY_CLOUD_NAME"),
			APIKey:    v.GetString("CLOUDINARY_API_KEY"),
			APISecret: v.GetString("CLOUDINARY_API_SECRET"),
			Folder:    v.GetString("CLOUDINARY_FOLDER"),
		},
		RateLimit: RateLimitConfig{
			RPS:        v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:      v.GetInt("RATE_LIMIT_BURST"),
			TrustProxy: v.GetBool("RATE_LIMIT_TRUST_PROXY"),
		},
		Verification: VerificationConfig{
			CodeTTL: codeTTL,
		},
	}

	if config.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("UPLOAD_MAX_BYTES", 10<<20)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_MIGRATIONS_PATH", "migrations")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("CLOUDINARY_FOLDER", "dawrni")
	v.SetDefault("RATE_LIMIT_RPS", 1)
	v.SetDefault("RATE_LIMIT_BURST", 5)
	v.SetDefault("RATE_LIMIT_TRUST_PROXY", false)
}
