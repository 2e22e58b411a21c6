package infra

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything the CLIs and the callback server need. Values
// come from an optional YAML file overridden by environment variables.
type Config struct {
	AppEnv           string
	APIBaseURL       string
	AuthAPIBaseURL   string
	CallbackPort     string
	Currency         string
	SessionFile      string
	RequestTimeout   time.Duration
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

// fileConfig mirrors the YAML layout of ~/.jobboard/config.yaml.
type fileConfig struct {
	APIBaseURL     string `yaml:"api_base_url"`
	AuthAPIBaseURL string `yaml:"auth_api_base_url"`
	CallbackPort   string `yaml:"callback_port"`
	Currency       string `yaml:"currency"`
	SessionFile    string `yaml:"session_file"`
}

// LoadConfig reads the optional config file, then applies environment
// variables and defaults. A missing or unreadable file is not an error.
func LoadConfig() (*Config, error) {
	var fc fileConfig
	if path := configFilePath(); path != "" {
		if raw, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(raw, &fc)
		}
	}

	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		APIBaseURL:       getEnv("JOBBOARD_API_URL", coalesce(fc.APIBaseURL, "https://job-board-api.onrender.com/api/v1")),
		AuthAPIBaseURL:   getEnv("JOBBOARD_AUTH_API_URL", fc.AuthAPIBaseURL),
		CallbackPort:     getEnv("JOBBOARD_CALLBACK_PORT", coalesce(fc.CallbackPort, "8380")),
		Currency:         getEnv("JOBBOARD_CURRENCY", coalesce(fc.Currency, "BDT")),
		SessionFile:      getEnv("JOBBOARD_SESSION_FILE", fc.SessionFile),
		RequestTimeout:   time.Second * time.Duration(getEnvInt("JOBBOARD_REQUEST_TIMEOUT_SECONDS", 30)),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
	}

	if cfg.AuthAPIBaseURL == "" {
		cfg.AuthAPIBaseURL = cfg.APIBaseURL
	}
	if cfg.SessionFile == "" {
		cfg.SessionFile = defaultSessionFile()
	}
	return cfg, nil
}

func configFilePath() string {
	if v := os.Getenv("JOBBOARD_CONFIG"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".jobboard", "config.yaml")
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "authTokens.json"
	}
	return filepath.Join(home, ".jobboard", "authTokens.json")
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
