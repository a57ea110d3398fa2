// Package config loads service configuration from an optional YAML file with
// environment variable overrides. Environment always wins.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds every recognized setting.
type Config struct {
	Port int `yaml:"port"`

	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`

	AccessTokenSecret string `yaml:"access_token_secret"`

	AllowedOrigins []string `yaml:"allowed_origins"`

	Bkash BkashConfig `yaml:"bkash"`

	FrontendSuccessURL string `yaml:"frontend_success_url"`
	FrontendFailURL    string `yaml:"frontend_fail_url"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	RateLimitRPS   int `yaml:"rate_limit_rps"`
	RateLimitBurst int `yaml:"rate_limit_burst"`
}

// BkashConfig holds payment provider credentials.
type BkashConfig struct {
	BaseURL     string `yaml:"base_url"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	AppKey      string `yaml:"app_key"`
	AppSecret   string `yaml:"app_secret"`
	CallbackURL string `yaml:"callback_url"`
}

const sandboxBaseURL = "https://tokenized.sandbox.bka.sh/v1.2.0-beta"

// Load reads the optional config file at path (skipped when path is empty or
// the file is missing), applies environment overrides, then defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	setString(&c.MongoURI, "MONGODB_URI")
	setString(&c.MongoDatabase, "MONGODB_DATABASE")
	setString(&c.AccessTokenSecret, "ACCESS_TOKEN_SECRET")
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitCSV(v)
	}
	setString(&c.Bkash.BaseURL, "BKASH_BASE_URL")
	setString(&c.Bkash.Username, "BKASH_USERNAME")
	setString(&c.Bkash.Password, "BKASH_PASSWORD")
	setString(&c.Bkash.AppKey, "BKASH_APP_KEY")
	setString(&c.Bkash.AppSecret, "BKASH_APP_SECRET")
	setString(&c.Bkash.CallbackURL, "BKASH_CALLBACK_URL")
	setString(&c.FrontendSuccessURL, "FRONTEND_SUCCESS_URL")
	setString(&c.FrontendFailURL, "FRONTEND_FAIL_URL")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.LogFormat, "LOG_FORMAT")
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if rps, err := strconv.Atoi(v); err == nil {
			c.RateLimitRPS = rps
		}
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		if burst, err := strconv.Atoi(v); err == nil {
			c.RateLimitBurst = burst
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = 5000
	}
	if c.MongoDatabase == "" {
		c.MongoDatabase = "NiNSupply"
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"https://nin-supply.vercel.app", "http://localhost:5173"}
	}
	if c.Bkash.BaseURL == "" {
		c.Bkash.BaseURL = sandboxBaseURL
	}
	if c.Bkash.CallbackURL == "" {
		c.Bkash.CallbackURL = fmt.Sprintf("http://localhost:%d/bkash-callback", c.Port)
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "json"
	}
	if c.RateLimitRPS == 0 {
		c.RateLimitRPS = 50
	}
	if c.RateLimitBurst == 0 {
		c.RateLimitBurst = 100
	}
}

// Validate checks settings the server cannot run without.
func (c *Config) Validate() error {
	if c.AccessTokenSecret == "" {
		return fmt.Errorf("ACCESS_TOKEN_SECRET is required")
	}
	if c.MongoURI == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
