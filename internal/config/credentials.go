package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// AllowedUser is one entry of the static allow-list. Password holds a bcrypt
// hash, never a plain password.
type AllowedUser struct {
	Email    string `yaml:"email"`
	Name     string `yaml:"name"`
	Password string `yaml:"password"`
}

// CookieSettings is the optional cookie section of the credentials file.
type CookieSettings struct {
	Name       string `yaml:"name"`
	Key        string `yaml:"key"`
	ExpiryDays int    `yaml:"expiry_days"`
}

type Credentials struct {
	Usernames map[string]AllowedUser `yaml:"usernames"`
}

type CredentialsFile struct {
	Credentials Credentials    `yaml:"credentials"`
	Cookie      CookieSettings `yaml:"cookie"`
}

// LoadCredentials reads the allow-list YAML. Usernames are matched
// case-insensitively, so keys are lowered here.
func LoadCredentials(path string) (*CredentialsFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials %s: %w", path, err)
	}
	return ParseCredentials(raw)
}

func ParseCredentials(raw []byte) (*CredentialsFile, error) {
	var file CredentialsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	if len(file.Credentials.Usernames) == 0 {
		return nil, errors.New("credentials: no usernames configured")
	}

	users := make(map[string]AllowedUser, len(file.Credentials.Usernames))
	for username, u := range file.Credentials.Usernames {
		key := strings.ToLower(strings.TrimSpace(username))
		if key == "" {
			return nil, errors.New("credentials: empty username")
		}
		if u.Password == "" {
			return nil, fmt.Errorf("credentials: user %q has no password hash", username)
		}
		if _, dup := users[key]; dup {
			return nil, fmt.Errorf("credentials: duplicate username %q", key)
		}
		if u.Name == "" {
			u.Name = username
		}
		users[key] = u
	}
	file.Credentials.Usernames = users

	return &file, nil
}

// MergeCookie fills cookie settings from the credentials file where the
// environment did not set them.
func (a AuthConfig) MergeCookie(c CookieSettings) AuthConfig {
	if _, set := os.LookupEnv("COOKIE_NAME"); !set && c.Name != "" {
		a.CookieName = c.Name
	}
	if _, set := os.LookupEnv("COOKIE_KEY"); !set && c.Key != "" {
		a.CookieKey = c.Key
	}
	if _, set := os.LookupEnv("COOKIE_EXPIRY_DAYS"); !set && c.ExpiryDays > 0 {
		a.CookieExpiryDays = c.ExpiryDays
	}
	return a
}
