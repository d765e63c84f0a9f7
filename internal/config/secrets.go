package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const serviceAccountTable = "service_account"

// LoadServiceAccount returns the service-account credential as the JSON
// document Google client libraries expect. A .json path is returned as is;
// anything else is read as a secrets TOML file with a [service_account] table.
func LoadServiceAccount(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read secrets %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return raw, nil
	}
	return ServiceAccountFromTOML(raw)
}

func ServiceAccountFromTOML(raw []byte) ([]byte, error) {
	var secrets map[string]interface{}
	if err := toml.Unmarshal(raw, &secrets); err != nil {
		return nil, fmt.Errorf("parse secrets: %w", err)
	}

	table, ok := secrets[serviceAccountTable].(map[string]interface{})
	if !ok {
		return nil, errors.New("secrets: missing [service_account] table")
	}
	for _, field := range []string{"client_email", "private_key"} {
		if v, _ := table[field].(string); v == "" {
			return nil, fmt.Errorf("secrets: service_account.%s is empty", field)
		}
	}

	out, err := json.Marshal(table)
	if err != nil {
		return nil, fmt.Errorf("encode service account: %w", err)
	}
	return out, nil
}
