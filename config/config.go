// Package config loads application settings from the environment.
// File: config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every runtime setting the server needs.
type Config struct {
	Env             string
	Port            int
	ApplicationURL  string
	WebsocketURL    string
	SessionSecret   string
	SessionName     string
	SessionMaxAge   time.Duration
	SecureCookies   bool
	CredentialsFile string
	UploadDir       string
	TemplatesDir    string
	StaticDir       string
	LogDir          string

	MetricsEnabled   bool
	MetricsNamespace string
	TracingEnabled   bool
	AWSRegion        string
}

// IsProduction reports whether the server runs with production settings.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func defaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("port", 8080)
	v.SetDefault("application_url", "http://localhost:8080")
	v.SetDefault("websocket_url", "ws://localhost:8080/notifications")
	v.SetDefault("session_secret", "dev-secret-change-me")
	v.SetDefault("session_name", "dashboard_session")
	v.SetDefault("session_max_age", 7*24*time.Hour)
	v.SetDefault("secure_cookies", false)
	v.SetDefault("credentials_file", "./config/credentials.yaml")
	v.SetDefault("upload_dir", "./uploads")
	v.SetDefault("templates_dir", "./templates")
	v.SetDefault("static_dir", "./static")
	v.SetDefault("log_dir", "./logs")
	v.SetDefault("metrics_enabled", false)
	v.SetDefault("metrics_namespace", "StudentDashboard")
	v.SetDefault("tracing_enabled", false)
	v.SetDefault("aws_region", "ap-southeast-2")
}

// Load reads an optional dotenv file and then the process environment.
// A missing dotenv file is not an error.
func Load(dotEnvPath string) (Config, error) {
	if dotEnvPath != "" {
		if _, err := os.Stat(dotEnvPath); err == nil {
			if err := godotenv.Load(dotEnvPath); err != nil {
				return Config{}, fmt.Errorf("config: load %s: %w", dotEnvPath, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("config: stat %s: %w", dotEnvPath, err)
		}
	}

	v := viper.New()
	v.SetTypeByDefaultValue(true)
	defaults(v)
	v.AutomaticEnv()

	cfg := Config{
		Env:              v.GetString("env"),
		Port:             v.GetInt("port"),
		ApplicationURL:   v.GetString("application_url"),
		WebsocketURL:     v.GetString("websocket_url"),
		SessionSecret:    v.GetString("session_secret"),
		SessionName:      v.GetString("session_name"),
		SessionMaxAge:    v.GetDuration("session_max_age"),
		SecureCookies:    v.GetBool("secure_cookies"),
		CredentialsFile:  v.GetString("credentials_file"),
		UploadDir:        v.GetString("upload_dir"),
		TemplatesDir:     v.GetString("templates_dir"),
		StaticDir:        v.GetString("static_dir"),
		LogDir:           v.GetString("log_dir"),
		MetricsEnabled:   v.GetBool("metrics_enabled"),
		MetricsNamespace: v.GetString("metrics_namespace"),
		TracingEnabled:   v.GetBool("tracing_enabled"),
		AWSRegion:        v.GetString("aws_region"),
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("config: invalid PORT %d", cfg.Port)
	}
	if cfg.IsProduction() && cfg.SessionSecret == "dev-secret-change-me" {
		return Config{}, fmt.Errorf("config: SESSION_SECRET must be set in production")
	}
	return cfg, nil
}
