// internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Environment string `json:"environment"`
	Database    struct {
		Host       string `json:"host"`
		Port       string `json:"port"`
		User       string `json:"user"`
		Password   string `json:"password"`
		Name       string `json:"name"`
		SSLMode    string `json:"sslmode"`
		SearchPath string `json:"schema"`
	} `json:"database"`
	JWT struct {
		Secret       string        `json:"secret"`
		ExpiryPeriod time.Duration `json:"expiry_period"`
	} `json:"jwt"`
	Session struct {
		CookieName string `json:"cookie_name"`
	} `json:"session"`
	Server struct {
		Port         string        `json:"port"`
		ReadTimeout  time.Duration `json:"read_timeout"`
		WriteTimeout time.Duration `json:"write_timeout"`
	} `json:"server"`
	GenAI struct {
		APIKey  string        `json:"api_key"`
		BaseURL string        `json:"base_url"`
		Model   string        `json:"model"`
		Timeout time.Duration `json:"timeout"`
	} `json:"genai"`
	AppCache struct {
		Size int           `json:"size"`
		TTL  time.Duration `json:"ttl"`
	} `json:"app_cache"`
	Email struct {
		Provider string `json:"provider"`
		FromName string `json:"from_name"`
	} `json:"email"`
	Sendgrid struct {
		APIKey string `json:"api_key"`
		From   string `json:"from"`
	} `json:"sendgrid"`
	SMTP struct {
		Host     string `json:"host"`
		Port     int    `json:"port"`
		Username string `json:"username"`
		Password string `json:"password"`
		From     string `json:"from"`
	} `json:"smtp"`
	CORS struct {
		AllowedOrigins []string `json:"allowed_origins"`
	} `json:"cors"`
	BaseURL string `json:"base_url"`
}

// IsProduction reports whether diagnostic detail must be withheld from clients.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Load reads configuration from the environment, optionally layered over the
// file named by CONFIG_FILE.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", file, err)
		}
	}

	cfg := &Config{}
	cfg.Environment = v.GetString("APP_ENV")

	// Database configuration
	cfg.Database.Host = v.GetString("DB_HOST")
	cfg.Database.Port = v.GetString("DB_PORT")
	cfg.Database.User = v.GetString("DB_USER")
	cfg.Database.Password = v.GetString("DB_PASSWORD")
	cfg.Database.Name = v.GetString("DB_NAME")
	cfg.Database.SSLMode = v.GetString("DB_SSLMODE")
	cfg.Database.SearchPath = v.GetString("DB_SCHEMA")

	// JWT and session cookie
	cfg.JWT.Secret = v.GetString("JWT_SECRET")
	cfg.JWT.ExpiryPeriod = v.GetDuration("JWT_EXPIRY")
	cfg.Session.CookieName = v.GetString("SESSION_COOKIE_NAME")

	// Server configuration
	cfg.Server.Port = v.GetString("SERVER_PORT")
	cfg.Server.ReadTimeout = v.GetDuration("SERVER_READ_TIMEOUT")
	cfg.Server.WriteTimeout = v.GetDuration("SERVER_WRITE_TIMEOUT")

	// Generative AI provider
	cfg.GenAI.APIKey = v.GetString("GENAI_API_KEY")
	cfg.GenAI.BaseURL = v.GetString("GENAI_BASE_URL")
	cfg.GenAI.Model = v.GetString("GENAI_MODEL")
	cfg.GenAI.Timeout = v.GetDuration("GENAI_TIMEOUT")

	cfg.AppCache.Size = v.GetInt("APP_CACHE_SIZE")
	cfg.AppCache.TTL = v.GetDuration("APP_CACHE_TTL")

	// Email delivery
	cfg.Email.Provider = v.GetString("EMAIL_PROVIDER")
	cfg.Email.FromName = v.GetString("EMAIL_FROM_NAME")
	cfg.Sendgrid.APIKey = v.GetString("SENDGRID_API_KEY")
	cfg.Sendgrid.From = v.GetString("SENDGRID_FROM")
	cfg.SMTP.Host = v.GetString("SMTP_HOST")
	cfg.SMTP.Port = v.GetInt("SMTP_PORT")
	cfg.SMTP.Username = v.GetString("SMTP_USERNAME")
	cfg.SMTP.Password = v.GetString("SMTP_PASSWORD")
	cfg.SMTP.From = v.GetString("SMTP_FROM")

	cfg.BaseURL = v.GetString("BASE_URL")
	cfg.CORS.AllowedOrigins = splitList(v.GetStringSlice("CORS_ALLOWED_ORIGINS"))
	if len(cfg.CORS.AllowedOrigins) == 0 && cfg.BaseURL != "" {
		cfg.CORS.AllowedOrigins = []string{cfg.BaseURL}
	}

	if cfg.IsProduction() && cfg.JWT.Secret == defaultJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set in production")
	}

	return cfg, nil
}

const defaultJWTSecret = "your-secret-key"

// splitList accepts both a YAML list and a comma-separated env value.
func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", EnvDevelopment)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "audiencelab")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_SCHEMA", "public")

	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY", 7*24*time.Hour)
	v.SetDefault("SESSION_COOKIE_NAME", "auth-token")

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_READ_TIMEOUT", 15*time.Second)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 90*time.Second)

	v.SetDefault("GENAI_MODEL", "gemini-1.5-pro")
	v.SetDefault("GENAI_TIMEOUT", 60*time.Second)

	v.SetDefault("APP_CACHE_SIZE", 1024)
	v.SetDefault("APP_CACHE_TTL", 5*time.Minute)

	v.SetDefault("EMAIL_PROVIDER", "none")
	v.SetDefault("EMAIL_FROM_NAME", "AudienceLab")
	v.SetDefault("SMTP_PORT", 587)

	v.SetDefault("BASE_URL", "http://localhost:3000")
}
