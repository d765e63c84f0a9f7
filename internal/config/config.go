package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App   AppConfig
	Auth  AuthConfig
	Model ModelConfig
	Audit AuditConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type AuthConfig struct {
	CredentialsFile  string
	CookieName       string
	CookieKey        string
	CookieExpiryDays int
	CookieSecure     bool
}

// DefaultCookieKey is only good for local development. Anyone who knows it
// can sign a session cookie for any allow-listed user.
const DefaultCookieKey = "abc123"

// MinProductionCookieKeyLen is the shortest signing key accepted in production.
const MinProductionCookieKeyLen = 16

var ErrWeakCookieKey = errors.New("weak cookie signing key")

// CheckCookieKey runs after MergeCookie. An empty key is always rejected;
// production also rejects the built-in default and short keys.
func (a AuthConfig) CheckCookieKey(production bool) error {
	if a.CookieKey == "" {
		return fmt.Errorf("%w: COOKIE_KEY is empty", ErrWeakCookieKey)
	}
	if !production {
		return nil
	}
	if a.CookieKey == DefaultCookieKey {
		return fmt.Errorf("%w: COOKIE_KEY is the built-in development default", ErrWeakCookieKey)
	}
	if len(a.CookieKey) < MinProductionCookieKeyLen {
		return fmt.Errorf("%w: COOKIE_KEY must be at least %d bytes", ErrWeakCookieKey, MinProductionCookieKeyLen)
	}
	return nil
}

// IsProduction reports whether GO_ENV selects production behaviour.
func (a AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

type ModelConfig struct {
	PreprocessorPath string
	ClassifierPath   string
}

type AuditConfig struct {
	SecretsFile     string
	SpreadsheetName string
	WorksheetName   string
	Timezone        string
	TimeoutSeconds  int
	Topic           string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8501"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:8501"),
		},
		Auth: AuthConfig{
			CredentialsFile:  getEnv("CREDENTIALS_FILE", "allowed_users.yaml"),
			CookieName:       getEnv("COOKIE_NAME", "news_app_cookie_test"),
			CookieKey:        getEnv("COOKIE_KEY", DefaultCookieKey),
			CookieExpiryDays: getEnvAsInt("COOKIE_EXPIRY_DAYS", 7),
			CookieSecure:     getEnvAsBool("COOKIE_SECURE", false),
		},
		Model: ModelConfig{
			PreprocessorPath: getEnv("PREPROCESSOR_PATH", "preprocessor_dur_hml_5t_trk.json"),
			ClassifierPath:   getEnv("CLASSIFIER_PATH", "voting_classifier_ex_xgb_dur_hml_5t_trk.json"),
		},
		Audit: AuditConfig{
			SecretsFile:     getEnv("SECRETS_FILE", ".streamlit/secrets.toml"),
			SpreadsheetName: getEnv("AUDIT_SPREADSHEET_NAME", "Streamlit_login_track"),
			WorksheetName:   getEnv("AUDIT_WORKSHEET_NAME", "hindi_news_app"),
			Timezone:        getEnv("AUDIT_TIMEZONE", "Asia/Kolkata"),
			TimeoutSeconds:  getEnvAsInt("AUDIT_TIMEOUT_SECONDS", 10),
			Topic:           getEnv("AUDIT_TOPIC_NAME", "LOGIN_RECORDED"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
