// Package config loads the server configuration from environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

const (
	defaultPort     = "5000"
	defaultMongoURI = "mongodb://localhost:27017/airport_survey"
	defaultDBName   = "airport_survey"
)

// Config holds everything cmd/server needs to start.
type Config struct {
	Port        string
	MongoURI    string
	DBName      string
	LogLevel    string
	Environment string

	// AllowedOrigins feeds the CORS middleware. Defaults to ["*"].
	AllowedOrigins []string

	Notify NotifyConfig
}

// NotifyConfig configures the new-feedback email notifier. Email is sent
// only when both ResendAPIKey and To are set.
type NotifyConfig struct {
	ResendAPIKey string
	From         string
	To           []string
}

// Enabled reports whether email notifications are configured.
func (n NotifyConfig) Enabled() bool {
	return n.ResendAPIKey != "" && len(n.To) > 0
}

// IsProduction reports whether ENVIRONMENT is "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// bindEnvVars binds config keys to one or more environment variables.
// The first variable that is set wins.
func bindEnvVars(v *viper.Viper, bindings map[string][]string) error {
	for key, envs := range bindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	return nil
}

// Load reads the configuration from the environment, applying defaults.
// A .env file, if any, must be loaded by the caller beforehand.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("port", defaultPort)
	v.SetDefault("mongo.uri", defaultMongoURI)
	v.SetDefault("log_level", "info")
	v.SetDefault("environment", "development")
	v.SetDefault("allowed_origins", "*")
	v.SetDefault("notify.from", "Airport Feedback <feedback@example.com>")

	err := bindEnvVars(v, map[string][]string{
		"port":                  {"PORT"},
		"mongo.uri":             {"MONGODB_URI", "MONGO_URI"},
		"mongo.db_name":         {"DB_NAME"},
		"log_level":             {"LOG_LEVEL"},
		"environment":           {"ENVIRONMENT"},
		"allowed_origins":       {"ALLOWED_ORIGINS"},
		"notify.resend_api_key": {"RESEND_API_KEY"},
		"notify.from":           {"NOTIFY_FROM"},
		"notify.to":             {"NOTIFY_TO"},
	})
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:           v.GetString("port"),
		MongoURI:       v.GetString("mongo.uri"),
		DBName:         v.GetString("mongo.db_name"),
		LogLevel:       v.GetString("log_level"),
		Environment:    v.GetString("environment"),
		AllowedOrigins: splitCSV(v.GetString("allowed_origins")),
		Notify: NotifyConfig{
			ResendAPIKey: v.GetString("notify.resend_api_key"),
			From:         v.GetString("notify.from"),
			To:           splitCSV(v.GetString("notify.to")),
		},
	}

	if _, err := url.Parse(cfg.MongoURI); err != nil {
		return nil, fmt.Errorf("invalid MONGODB_URI: %w", err)
	}
	if cfg.DBName == "" {
		cfg.DBName = dbNameFromURI(cfg.MongoURI)
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}

	return cfg, nil
}

// dbNameFromURI returns the database path segment of a Mongo URI, or the
// default database name when the URI has none.
func dbNameFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return defaultDBName
	}
	if name := strings.Trim(u.Path, "/"); name != "" {
		return name
	}
	return defaultDBName
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
